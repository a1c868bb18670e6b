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
	"github.com/nuclio/portbridge/pkg/bridge/module"
	"github.com/nuclio/portbridge/pkg/bridge/wire"
)

// the array module operates on typed arrays end to end - arguments arrive as
// decoded *wire.Array values and results are re-encoded by the codec on the
// way out
func newArrayModule() module.Module {
	return module.NewMapModule("array", map[string]module.Function{
		"zeros": module.Positional("zeros", func(args []interface{}) (interface{}, error) {
			shape := make([]int, len(args))
			count := 1
			for index := range args {
				dimension, err := intAt("zeros", args, index)
				if err != nil {
					return nil, err
				}

				if dimension < 0 {
					return nil, module.NewValueError("negative dimension %d", dimension)
				}

				shape[index] = dimension
				count *= dimension
			}

			return wire.ArrayFromFloat64s(make([]float64, count), shape...), nil
		}),

		"arange": module.Positional("arange", func(args []interface{}) (interface{}, error) {
			stop, err := intAt("arange", args, 0)
			if err != nil {
				return nil, err
			}

			if stop < 0 {
				return nil, module.NewValueError("negative range %d", stop)
			}

			values := make([]int64, stop)
			for index := range values {
				values[index] = int64(index)
			}

			return wire.ArrayFromInt64s(values), nil
		}),

		"sum": module.Positional("sum", func(args []interface{}) (interface{}, error) {
			array, err := arrayAt("sum", args, 0)
			if err != nil {
				return nil, err
			}

			values, err := array.Float64s()
			if err != nil {
				return nil, err
			}

			var total float64
			for _, value := range values {
				total += value
			}

			return total, nil
		}),

		"reshape": module.Positional("reshape", func(args []interface{}) (interface{}, error) {
			array, err := arrayAt("reshape", args, 0)
			if err != nil {
				return nil, err
			}

			shape := make([]int, len(args)-1)
			for index := range shape {
				dimension, err := intAt("reshape", args, index+1)
				if err != nil {
					return nil, err
				}

				shape[index] = dimension
			}

			reshaped, err := array.Reshape(shape...)
			if err != nil {
				return nil, module.NewValueError("%s", err.Error())
			}

			return reshaped, nil
		}),

		"shape": module.Positional("shape", func(args []interface{}) (interface{}, error) {
			array, err := arrayAt("shape", args, 0)
			if err != nil {
				return nil, err
			}

			shape := make([]interface{}, len(array.Shape))
			for index, dimension := range array.Shape {
				shape[index] = dimension
			}

			return shape, nil
		}),
	})
}

func init() {
	module.RegistrySingleton.Register(newArrayModule())
}
