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

package app

import (
	"os"

	"github.com/nuclio/portbridge/pkg/bridge"
	"github.com/nuclio/portbridge/pkg/bridge/module"

	// load all builtin modules
	_ "github.com/nuclio/portbridge/pkg/bridge/module/builtin"
	"github.com/nuclio/portbridge/pkg/bridge/wire"
	"github.com/nuclio/portbridge/pkg/bridgeconfig"

	"github.com/nuclio/errors"
	"github.com/nuclio/logger"
	nucliozap "github.com/nuclio/zap"
)

// Bridge ties configuration, logging and the dispatch loop together over
// the process's standard streams
type Bridge struct {
	logger         logger.Logger
	bridgeInstance *bridge.Bridge
}

// NewBridge reads the configuration (or defaults when the file is absent)
// and wires the codec, the module registry and the loop
func NewBridge(configurationPath string) (*Bridge, error) {
	configuration, err := bridgeconfig.NewReader().ReadFileOrDefault(configurationPath)
	if err != nil {
		return nil, errors.Wrap(err, "Failed to read configuration")
	}

	// stdout carries the protocol, so all logging goes to stderr
	rootLogger, err := nucliozap.NewNuclioZap("portbridge",
		"console",
		nil,
		os.Stderr,
		os.Stderr,
		resolveLoggerLevel(configuration.Logger.Level))
	if err != nil {
		return nil, errors.Wrap(err, "Failed to create logger")
	}

	newBridge := &Bridge{
		logger: rootLogger,
		bridgeInstance: bridge.NewBridge(rootLogger,
			wire.NewCodec(configuration.WireCapabilities()),
			module.RegistrySingleton,
			os.Stdin,
			os.Stdout),
	}

	return newBridge, nil
}

// Run blocks until the input stream ends
func (b *Bridge) Run() error {
	return b.bridgeInstance.Run()
}

func resolveLoggerLevel(level string) nucliozap.Level {
	switch level {
	case "debug":
		return nucliozap.DebugLevel
	case "warn":
		return nucliozap.WarnLevel
	case "error":
		return nucliozap.ErrorLevel
	default:
		return nucliozap.InfoLevel
	}
}
