// Copyright 2025 walteh LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package config loads optional run defaults from a .dirsync.yaml file.
// Command-line arguments always win over file values.
package config

import (
	"bytes"
	"context"
	"io"
	"os"

	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"
	"gopkg.in/yaml.v3"
)

// DefaultFileName is looked for in the working directory when no
// config path is given.
const DefaultFileName = ".dirsync.yaml"

// 🔧 Config holds run defaults.
type Config struct {
	Source      string   `yaml:"source,omitempty"`
	Destination string   `yaml:"destination,omitempty"`
	DryRun      bool     `yaml:"dry_run,omitempty"`
	Parallel    bool     `yaml:"parallel,omitempty"`
	Exclude     []string `yaml:"exclude,omitempty"`
}

// 📝 Load reads a config file. A missing file is not an error: every
// field can be supplied on the command line instead.
func Load(ctx context.Context, path string) (*Config, error) {
	logger := zerolog.Ctx(ctx)

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			logger.Debug().Str("path", path).Msg("no config file, using defaults")
			return &Config{}, nil
		}
		return nil, errors.Errorf("reading config file: %w", err)
	}

	var cfg Config
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, errors.Errorf("parsing config file %q: %w", path, err)
	}

	logger.Debug().Str("path", path).Msg("loaded config file")
	return &cfg, nil
}
