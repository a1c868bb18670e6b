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
	"math"

	"github.com/nuclio/portbridge/pkg/bridge/module"
)

func newMathModule() module.Module {
	return module.NewMapModule("math", map[string]module.Function{
		"sqrt": module.Positional("sqrt", func(args []interface{}) (interface{}, error) {
			value, err := numberAt("sqrt", args, 0)
			if err != nil {
				return nil, err
			}

			if value < 0 {
				return nil, module.NewValueError("math domain error")
			}

			return math.Sqrt(value), nil
		}),

		"pow": module.Positional("pow", func(args []interface{}) (interface{}, error) {
			base, err := numberAt("pow", args, 0)
			if err != nil {
				return nil, err
			}

			exponent, err := numberAt("pow", args, 1)
			if err != nil {
				return nil, err
			}

			return math.Pow(base, exponent), nil
		}),

		"abs": module.Positional("abs", func(args []interface{}) (interface{}, error) {
			value, err := numberAt("abs", args, 0)
			if err != nil {
				return nil, err
			}

			return math.Abs(value), nil
		}),

		"floor": module.Positional("floor", func(args []interface{}) (interface{}, error) {
			value, err := numberAt("floor", args, 0)
			if err != nil {
				return nil, err
			}

			return math.Floor(value), nil
		}),

		"ceil": module.Positional("ceil", func(args []interface{}) (interface{}, error) {
			value, err := numberAt("ceil", args, 0)
			if err != nil {
				return nil, err
			}

			return math.Ceil(value), nil
		}),

		"sum": module.Positional("sum", func(args []interface{}) (interface{}, error) {
			values, err := sequenceAt("sum", args, 0)
			if err != nil {
				return nil, err
			}

			var total float64
			for index := range values {
				value, err := numberAt("sum", values, index)
				if err != nil {
					return nil, err
				}

				total += value
			}

			return total, nil
		}),

		"mean": module.Positional("mean", func(args []interface{}) (interface{}, error) {
			values, err := sequenceAt("mean", args, 0)
			if err != nil {
				return nil, err
			}

			if len(values) == 0 {
				return nil, module.NewValueError("mean of empty sequence")
			}

			var total float64
			for index := range values {
				value, err := numberAt("mean", values, index)
				if err != nil {
					return nil, err
				}

				total += value
			}

			return total / float64(len(values)), nil
		}),

		// round takes an optional "ndigits" keyword argument
		"round": module.FunctionFunc(func(args []interface{}, kwargs map[string]interface{}) (interface{}, error) {
			value, err := numberAt("round", args, 0)
			if err != nil {
				return nil, err
			}

			digits := 0.0
			if rawDigits, found := kwargs["ndigits"]; found {
				typedDigits, ok := rawDigits.(float64)
				if !ok {
					return nil, module.NewTypeError("round() ndigits must be a number, got %T", rawDigits)
				}

				digits = typedDigits
			}

			scale := math.Pow(10, digits)
			return math.Round(value*scale) / scale, nil
		}),
	})
}

func init() {
	module.RegistrySingleton.Register(newMathModule())
}
