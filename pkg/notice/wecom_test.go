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
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AlaudaDevops/toolbox/renovate-config/pkg/platform"
)

func sampleReport() Report {
	return Report{
		Source:   "renovate.json",
		Platform: "github",
		Results: []platform.Result{
			{Repository: "org/app", Status: platform.StatusOK},
			{Repository: "org/gone", Status: platform.StatusMissing, Message: "repository not found on github"},
			{Repository: "org/fork", Status: platform.StatusSkippedFork, Message: "repository is a fork and includeForks is false"},
		},
	}
}

func TestNewNotifier(t *testing.T) {
	n, err := NewNotifier("", "")
	require.NoError(t, err)
	assert.Nil(t, n)

	n, err = NewNotifier("wecom", "https://example.com/hook")
	require.NoError(t, err)
	assert.IsType(t, &WeComNotifier{}, n)

	_, err = NewNotifier("wechat", "")
	assert.Error(t, err)

	_, err = NewNotifier("slack", "https://example.com/hook")
	assert.ErrorContains(t, err, "unsupported notification type")
}

func TestWeComNotifier_Notify(t *testing.T) {
	var received WeComMessageCard
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&received))
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	err := NewWeComNotifier(server.URL).Notify(context.Background(), sampleReport())
	require.NoError(t, err)

	assert.Equal(t, "markdown", received.MsgType)
	assert.Contains(t, received.Markdown.Content, "3 repositories, 1 ok, 1 missing, 0 errors, 1 skipped forks, 0 archived")
	assert.Contains(t, received.Markdown.Content, "org/gone: repository not found on github")
	assert.NotContains(t, received.Markdown.Content, "org/app")
}

func TestWeComNotifier_NotifyFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	err := NewWeComNotifier(server.URL).Notify(context.Background(), sampleReport())
	assert.ErrorContains(t, err, "status: 502")
}

func TestBuildMessage_Truncates(t *testing.T) {
	report := Report{Source: "preset.yaml", Platform: "gitlab"}
	for i := 0; i < maxListed+3; i++ {
		report.Results = append(report.Results, platform.Result{
			Repository: fmt.Sprintf("group/app-%d", i),
			Status:     platform.StatusMissing,
		})
	}

	msg := buildMessage(report)
	assert.Equal(t, maxListed, strings.Count(msg, " - group/app-"))
	assert.Contains(t, msg, " - and 3 more")
}
