/*
   Copyright 2025 The PatternSaver Authors

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

package main

import (
	"bytes"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"patternsaver.dev/patterns/pscore/codec"
	"patternsaver.dev/patterns/pscore/model"
	"patternsaver.dev/patterns/pscore/model/device"
	"patternsaver.dev/patterns/pscore/model/revision"
)

const (
	envLogMode     = "PSVALIDATE_LOG_MODE"
	envMode        = "PSVALIDATE_MODE"
	envMetricsFile = "PSVALIDATE_METRICS_FILE"
)

// config is the on-disk configuration of psvalidate. Zero fields keep their
// defaults.
type config struct {
	LogMode       string            `yaml:"log_mode"`
	Mode          model.Mode        `yaml:"mode"`
	TB303Revision revision.Revision `yaml:"tb303_revision"`
	MetricsFile   string            `yaml:"metrics_file"`
}

func defaultConfig() config {
	return config{LogMode: "development", Mode: model.FailFast}
}

// loadConfig reads path (when non-empty), then applies environment
// overrides. Unknown YAML keys are rejected.
func loadConfig(path string, getenv func(string) string) (config, error) {
	cfg := defaultConfig()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return config{}, fmt.Errorf("read config: %w", err)
		}
		if err := decodeConfig(data, &cfg); err != nil {
			return config{}, fmt.Errorf("parse config %s: %w", path, err)
		}
	}
	if err := applyEnv(&cfg, getenv); err != nil {
		return config{}, err
	}
	if cfg.Mode.IsZero() {
		cfg.Mode = model.FailFast
	}
	return cfg, nil
}

func decodeConfig(data []byte, cfg *config) error {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil
	}
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	return dec.Decode(cfg)
}

func applyEnv(cfg *config, getenv func(string) string) error {
	if v := strings.TrimSpace(getenv(envLogMode)); v != "" {
		cfg.LogMode = v
	}
	if v := strings.TrimSpace(getenv(envMode)); v != "" {
		m, err := model.ParseMode(v)
		if err != nil {
			return fmt.Errorf("%s: %w", envMode, err)
		}
		cfg.Mode = m
	}
	if v := strings.TrimSpace(getenv(envMetricsFile)); v != "" {
		cfg.MetricsFile = v
	}
	return nil
}

// newCodec builds the pattern codec selected by the configuration.
func (c config) newCodec() (*codec.Codec, error) {
	if c.TB303Revision.IsZero() {
		return codec.Default(), nil
	}
	return codec.New(codec.WithRevision(device.TB303, c.TB303Revision))
}
