/*
Copyright 2025 The AlaudaDevops Authors.

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package notice

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/AlaudaDevops/toolbox/renovate-config/pkg/platform"
)

// maxListed caps the repositories listed per status in one message
const maxListed = 10

// WeComNotifier implements Notifier interface for WeChat Work (Enterprise WeChat)
type WeComNotifier struct {
	// webhookURL is the WeChat Work webhook URL
	webhookURL string
	// httpClient is the HTTP client for making requests
	httpClient *http.Client
}

// WeComMessageCard represents a WeChat Work message card
type WeComMessageCard struct {
	MsgType  string        `json:"msgtype"`
	Markdown WeComMarkdown `json:"markdown"`
}

// WeComMarkdown represents the markdown content for WeChat Work
type WeComMarkdown struct {
	Content string `json:"content"`
}

// NewWeComNotifier creates a new WeChat Work notifier
func NewWeComNotifier(webhookURL string) *WeComNotifier {
	return &WeComNotifier{
		webhookURL: webhookURL,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// Notify posts the report as a markdown message
func (w *WeComNotifier) Notify(ctx context.Context, report Report) error {
	logrus.Debugf("Sending WeChat Work notification for %s", report.Source)

	jsonData, err := json.Marshal(WeComMessageCard{
		MsgType:  "markdown",
		Markdown: WeComMarkdown{Content: buildMessage(report)},
	})
	if err != nil {
		return fmt.Errorf("failed to marshal WeChat Work message: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, w.webhookURL, bytes.NewReader(jsonData))
	if err != nil {
		return fmt.Errorf("failed to create HTTP request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := w.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send WeChat Work notification: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("WeChat Work notification failed with status: %d", resp.StatusCode)
	}

	logrus.Infof("WeChat Work notification sent for %s", report.Source)
	return nil
}

func buildMessage(report Report) string {
	var msg bytes.Buffer
	counts := report.Counts()

	fmt.Fprintf(&msg, "# Renovate target check: %s\n\n", report.Source)
	fmt.Fprintf(&msg, "**Platform:** %s\n", report.Platform)
	fmt.Fprintf(&msg, "**Summary:** %d repositories, %d ok, %d missing, %d errors, %d skipped forks, %d archived\n\n",
		len(report.Results),
		counts[platform.StatusOK],
		counts[platform.StatusMissing],
		counts[platform.StatusError],
		counts[platform.StatusSkippedFork],
		counts[platform.StatusArchived],
	)

	for _, status := range []platform.Status{platform.StatusMissing, platform.StatusError, platform.StatusSkippedFork, platform.StatusArchived} {
		if counts[status] == 0 {
			continue
		}
		fmt.Fprintf(&msg, "**%s:**\n", status)
		listed := 0
		for _, r := range report.Results {
			if r.Status != status {
				continue
			}
			if listed == maxListed {
				fmt.Fprintf(&msg, " - and %d more\n", counts[status]-listed)
				break
			}
			fmt.Fprintf(&msg, " - %s: %s\n", r.Repository, r.Message)
			listed++
		}
		msg.WriteString("\n")
	}
	return msg.String()
}
