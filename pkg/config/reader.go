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

package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"
)

// ErrConfigNotFound is returned when a repository holds no configuration file
var ErrConfigNotFound = errors.New("no renovate configuration found")

// repoConfigFiles are searched in order, the first match wins
var repoConfigFiles = []string{
	"renovate.json",
	"renovate.yaml",
	".renovaterc",
	".renovaterc.json",
	filepath.Join(".github", "renovate.json"),
	filepath.Join(".gitlab", "renovate.json"),
	"renovate-config.js",
}

// ConfigReader handles reading and merging configuration files
type ConfigReader struct{}

// NewConfigReader creates a new configuration reader
func NewConfigReader() *ConfigReader {
	return &ConfigReader{}
}

// ReadRepoConfig finds and loads the configuration file of a repository
// checkout. It returns the loaded configuration and the file it came from.
func (c *ConfigReader) ReadRepoConfig(projectPath string) (AutomationConfig, string, error) {
	for _, name := range repoConfigFiles {
		configPath := filepath.Join(projectPath, name)
		if _, err := os.Stat(configPath); err == nil {
			logrus.Debugf("Found repository configuration: %s", configPath)
			cfg, err := c.ReadFile(configPath)
			return cfg, configPath, err
		}
	}
	return AutomationConfig{}, "", fmt.Errorf("%w in %s", ErrConfigNotFound, projectPath)
}

// ReadFile reads and loads one configuration file.
// The format is detected from the file content.
func (c *ConfigReader) ReadFile(configPath string) (AutomationConfig, error) {
	data, err := os.ReadFile(configPath)
	if err != nil {
		return AutomationConfig{}, fmt.Errorf("failed to read config file %s: %w", configPath, err)
	}

	if DetectFormat(data) == FormatRenovate {
		logrus.Debugf("Detected Renovate format in %s", configPath)
		return LoadRenovate(data)
	}
	logrus.Debugf("Detected canonical format in %s", configPath)
	return Load(data)
}

// ReadAndMerge reads several configuration files and loads their merge.
// Later files override earlier ones: mappings merge recursively, rules are
// appended and every other value is replaced. When any file uses Renovate's
// option names, errors are reported with those names.
func (c *ConfigReader) ReadAndMerge(configPaths ...string) (AutomationConfig, error) {
	switch len(configPaths) {
	case 0:
		return AutomationConfig{}, errors.New("no configuration files given")
	case 1:
		return c.ReadFile(configPaths[0])
	}

	var (
		merged    *yaml.Node
		anyNative bool
	)
	for _, configPath := range configPaths {
		data, err := os.ReadFile(configPath)
		if err != nil {
			return AutomationConfig{}, fmt.Errorf("failed to read config file %s: %w", configPath, err)
		}

		root, err := c.canonicalNode(data)
		if err != nil {
			return AutomationConfig{}, fmt.Errorf("failed to parse config file %s: %w", configPath, err)
		}
		if root.native {
			anyNative = true
		}

		if merged == nil {
			merged = root.node
			continue
		}
		logrus.Debugf("Merging configuration: %s", configPath)
		mergeNodes(merged, root.node)
	}

	if !anyNative {
		return loadNode(merged)
	}

	fillRenovateDefaults(merged)
	cfg, err := loadNode(merged)
	if err != nil {
		return AutomationConfig{}, renovatePaths(err)
	}
	return cfg, nil
}

type parsedNode struct {
	node   *yaml.Node
	native bool
}

func (c *ConfigReader) canonicalNode(data []byte) (parsedNode, error) {
	if DetectFormat(data) != FormatRenovate {
		root, err := parseDocument(data)
		return parsedNode{node: root}, err
	}

	root, err := parseDocument(StripJSModule(data))
	if err != nil {
		return parsedNode{}, err
	}
	canonical, err := fromRenovateNode(root)
	return parsedNode{node: canonical, native: true}, err
}

// mergeNodes merges the mapping src into dst in place
func mergeNodes(dst, src *yaml.Node) {
	for i := 0; i+1 < len(src.Content); i += 2 {
		key, value := src.Content[i], resolve(src.Content[i+1])

		existing := lookupField(dst, key.Value)
		switch {
		case existing == nil:
			dst.Content = append(dst.Content, key, value)
		case existing.Kind == yaml.MappingNode && value.Kind == yaml.MappingNode:
			mergeNodes(existing, value)
		case key.Value == "rules" && existing.Kind == yaml.SequenceNode && value.Kind == yaml.SequenceNode:
			existing.Content = append(existing.Content, value.Content...)
		default:
			setField(dst, key.Value, value)
		}
	}
}
