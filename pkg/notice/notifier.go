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

// Package notice sends repository verification reports to chat webhooks
package notice

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/AlaudaDevops/toolbox/renovate-config/pkg/platform"
)

// Report is the outcome of one verify run
type Report struct {
	// Source describes where the configuration came from
	Source   string
	Platform string
	Results  []platform.Result
}

// Counts returns the number of results per status
func (r Report) Counts() map[platform.Status]int {
	counts := map[platform.Status]int{}
	for _, result := range r.Results {
		counts[result.Status]++
	}
	return counts
}

// Notifier delivers a verification report
type Notifier interface {
	Notify(ctx context.Context, report Report) error
}

// NewNotifier creates a notifier of the given kind. An empty kind disables
// notifications and returns a nil Notifier.
func NewNotifier(kind, webhookURL string) (Notifier, error) {
	switch kind {
	case "wecom", "wechat":
		if webhookURL == "" {
			return nil, fmt.Errorf("webhook URL is required for WeChat Work notifier")
		}
		logrus.Debug("Creating WeChat Work notifier")
		return NewWeComNotifier(webhookURL), nil
	case "":
		return nil, nil
	default:
		return nil, fmt.Errorf("unsupported notification type: %s", kind)
	}
}
