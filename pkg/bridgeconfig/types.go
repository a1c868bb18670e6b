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
	"github.com/nuclio/portbridge/pkg/bridge/wire"
)

type Config struct {
	Capabilities Capabilities `yaml:"capabilities,omitempty"`
	Logger       Logger       `yaml:"logger,omitempty"`
}

// Capabilities selects which tagged wire forms this instance supports. Nil
// means enabled.
type Capabilities struct {
	Arrays *bool `yaml:"arrays,omitempty"`
	Frames *bool `yaml:"frames,omitempty"`
}

type Logger struct {
	Level string `yaml:"level,omitempty"`
}

// WireCapabilities resolves the optional flags into the codec's capability
// set. Frames cannot exist without their backing arrays, so disabling arrays
// disables frames as well
func (c *Config) WireCapabilities() wire.Capabilities {
	capabilities := wire.Capabilities{
		Arrays: c.Capabilities.Arrays == nil || *c.Capabilities.Arrays,
		Frames: c.Capabilities.Frames == nil || *c.Capabilities.Frames,
	}

	if !capabilities.Arrays {
		capabilities.Frames = false
	}

	return capabilities
}
