/*
Copyright 2024 The Nuclio Authors.

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

package bridgeconfig

import (
	"io"
	"os"

	"github.com/nuclio/errors"
	"gopkg.in/yaml.v3"
)

type Reader struct{}

func NewReader() *Reader {
	return &Reader{}
}

func (r *Reader) Read(reader io.Reader, config *Config) error {
	configBytes, err := io.ReadAll(reader)
	if err != nil {
		return errors.Wrap(err, "Failed to read bridge configuration")
	}

	return yaml.Unmarshal(configBytes, config)
}

// ReadFileOrDefault parses the configuration at the given path. An empty
// path or a missing file yields the default configuration
func (r *Reader) ReadFileOrDefault(configurationPath string) (*Config, error) {
	if configurationPath == "" {
		return r.GetDefaultConfiguration(), nil
	}

	configurationFile, err := os.Open(configurationPath)
	if err != nil {
		return r.GetDefaultConfiguration(), nil
	}

	// close after
	defer configurationFile.Close() // nolint: errcheck

	var configuration Config
	if err := r.Read(configurationFile, &configuration); err != nil {
		return nil, errors.Wrap(err, "Failed to read configuration file")
	}

	return &configuration, nil
}

func (r *Reader) GetDefaultConfiguration() *Config {
	trueValue := true

	return &Config{
		Capabilities: Capabilities{
			Arrays: &trueValue,
			Frames: &trueValue,
		},
		Logger: Logger{
			Level: "info",
		},
	}
}
