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
	"errors"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const EnvPrefix = "RENOVATE_CONFIG"

var (
	// settingsFile is the settings file of the tool itself
	settingsFile string
)

func init() {
	cobra.OnInitialize(initConfig)
	flags := rootCmd.PersistentFlags()
	flags.StringVar(&settingsFile, "settings", "", "settings file of this tool (default: .renovate-config.yaml in the current or home directory)")

	flags.StringSlice("config", []string{}, "configuration file to load, repeat to merge several files")
	flags.String("dir", ".", "path to the project directory holding the configuration")
	flags.String("repo.url", "", "repository URL to clone and read the configuration from (alternative to dir)")
	flags.String("repo.branch", "", "branch to clone (default: the remote default branch)")
	flags.String("git.token", "", "access token for the platform API (used by verify)")
	flags.String("git.baseUrl", "", "base API URL of the platform (e.g., https://gitlab.example.com), empty for the public instance")
	flags.Bool("debug", false, "enable debug log output")
	viper.BindPFlags(flags)
}

func initConfig() {
	viper.SetEnvPrefix(EnvPrefix)
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if settingsFile != "" {
		viper.SetConfigFile(settingsFile)
	} else {
		viper.AddConfigPath(".")
		viper.AddConfigPath("$HOME")
		viper.SetConfigType("yaml")
		viper.SetConfigName(".renovate-config")
	}
	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			logrus.Debugf("No settings file found: %v", err)
		} else {
			logrus.Warn("Can't read settings:", err)
		}
	}

	if viper.GetBool("debug") {
		logrus.SetLevel(logrus.DebugLevel)
		logrus.Debug("Debug logging enabled")
	} else {
		logrus.SetLevel(logrus.InfoLevel)
	}
}
