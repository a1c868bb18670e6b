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

package builtin

import (
	"github.com/google/uuid"
	"github.com/nuclio/portbridge/pkg/bridge/module"
)

func newUUIDModule() module.Module {
	return module.NewMapModule("uuid", map[string]module.Function{
		"new": module.Positional("new", func(args []interface{}) (interface{}, error) {
			return uuid.New().String(), nil
		}),

		"parse": module.Positional("parse", func(args []interface{}) (interface{}, error) {
			value, err := stringAt("parse", args, 0)
			if err != nil {
				return nil, err
			}

			parsed, err := uuid.Parse(value)
			if err != nil {
				return nil, module.NewValueError("badly formed uuid: %s", err)
			}

			return parsed.String(), nil
		}),
	})
}

func init() {
	module.RegistrySingleton.Register(newUUIDModule())
}
