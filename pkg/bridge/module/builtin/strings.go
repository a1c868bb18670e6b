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
	"strings"

	"github.com/nuclio/portbridge/pkg/bridge/module"
)

func newStringsModule() module.Module {
	return module.NewMapModule("strings", map[string]module.Function{
		"upper": module.Positional("upper", func(args []interface{}) (interface{}, error) {
			value, err := stringAt("upper", args, 0)
			if err != nil {
				return nil, err
			}

			return strings.ToUpper(value), nil
		}),

		"lower": module.Positional("lower", func(args []interface{}) (interface{}, error) {
			value, err := stringAt("lower", args, 0)
			if err != nil {
				return nil, err
			}

			return strings.ToLower(value), nil
		}),

		"split": module.Positional("split", func(args []interface{}) (interface{}, error) {
			value, err := stringAt("split", args, 0)
			if err != nil {
				return nil, err
			}

			separator, err := stringAt("split", args, 1)
			if err != nil {
				return nil, err
			}

			parts := strings.Split(value, separator)
			result := make([]interface{}, len(parts))
			for index, part := range parts {
				result[index] = part
			}

			return result, nil
		}),

		"join": module.Positional("join", func(args []interface{}) (interface{}, error) {
			values, err := sequenceAt("join", args, 0)
			if err != nil {
				return nil, err
			}

			separator, err := stringAt("join", args, 1)
			if err != nil {
				return nil, err
			}

			parts := make([]string, len(values))
			for index := range values {
				part, err := stringAt("join", values, index)
				if err != nil {
					return nil, err
				}

				parts[index] = part
			}

			return strings.Join(parts, separator), nil
		}),

		"contains": module.Positional("contains", func(args []interface{}) (interface{}, error) {
			value, err := stringAt("contains", args, 0)
			if err != nil {
				return nil, err
			}

			substring, err := stringAt("contains", args, 1)
			if err != nil {
				return nil, err
			}

			return strings.Contains(value, substring), nil
		}),

		"length": module.Positional("length", func(args []interface{}) (interface{}, error) {
			value, err := stringAt("length", args, 0)
			if err != nil {
				return nil, err
			}

			return len(value), nil
		}),
	})
}

func init() {
	module.RegistrySingleton.Register(newStringsModule())
}
