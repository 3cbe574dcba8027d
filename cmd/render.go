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

package cmd

import (
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/AlaudaDevops/toolbox/renovate-config/pkg/config"
)

var (
	// renderFormat is the output format of render
	renderFormat string
	// renderOutput is the file render writes to, empty for stdout
	renderOutput string
)

var renderCmd = &cobra.Command{
	Use:   "render",
	Short: "Render the configuration in the format Renovate reads",
	Long: `render loads and validates the configuration, then writes it as
renovate.json (json), as a config.js module (js) or with canonical field
names (yaml).`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, source, err := loadAutomationConfig()
		if err != nil {
			return fmt.Errorf("failed to load configuration: %w", err)
		}
		logrus.Debugf("Rendering %s as %s", source, renderFormat)

		data, err := renderConfig(cfg, renderFormat)
		if err != nil {
			return err
		}
		if renderOutput == "" {
			_, err = cmd.OutOrStdout().Write(data)
			return err
		}
		if err := os.WriteFile(renderOutput, data, 0o644); err != nil {
			return fmt.Errorf("failed to write %s: %w", renderOutput, err)
		}
		logrus.Infof("Wrote %s", renderOutput)
		return nil
	},
}

func init() {
	renderCmd.Flags().StringVar(&renderFormat, "format", "json", "output format: json, js or yaml")
	renderCmd.Flags().StringVarP(&renderOutput, "output", "o", "", "file to write (default: stdout)")
}

func renderConfig(cfg config.AutomationConfig, format string) ([]byte, error) {
	switch format {
	case "json":
		return config.RenderJSON(cfg)
	case "js":
		return config.RenderJS(cfg)
	case "yaml":
		return config.RenderYAML(cfg)
	default:
		return nil, fmt.Errorf("unsupported format %q, must be one of json, js, yaml", format)
	}
}
