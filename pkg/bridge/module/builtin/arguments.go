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

// Package builtin provides the worker's out-of-the-box modules. Importing it
// for side effects registers them in the module registry singleton.
package builtin

import (
	"github.com/nuclio/portbridge/pkg/bridge/module"
	"github.com/nuclio/portbridge/pkg/bridge/wire"
)

// argument accessors shared by the builtin modules. JSON decoding hands
// scalars over as float64; values unpacked from typed arrays arrive widened
// to int64/uint64/float64.

func numberAt(functionName string, args []interface{}, index int) (float64, error) {
	if index >= len(args) {
		return 0, module.NewTypeError("%s() missing argument %d", functionName, index+1)
	}

	switch typedValue := args[index].(type) {
	case float64:
		return typedValue, nil
	case float32:
		return float64(typedValue), nil
	case int:
		return float64(typedValue), nil
	case int64:
		return float64(typedValue), nil
	case uint64:
		return float64(typedValue), nil
	default:
		return 0, module.NewTypeError("%s() argument %d must be a number, got %T",
			functionName, index+1, args[index])
	}
}

func intAt(functionName string, args []interface{}, index int) (int, error) {
	value, err := numberAt(functionName, args, index)
	if err != nil {
		return 0, err
	}

	if value != float64(int(value)) {
		return 0, module.NewTypeError("%s() argument %d must be an integer", functionName, index+1)
	}

	return int(value), nil
}

func stringAt(functionName string, args []interface{}, index int) (string, error) {
	if index >= len(args) {
		return "", module.NewTypeError("%s() missing argument %d", functionName, index+1)
	}

	typedValue, ok := args[index].(string)
	if !ok {
		return "", module.NewTypeError("%s() argument %d must be a string, got %T",
			functionName, index+1, args[index])
	}

	return typedValue, nil
}

func sequenceAt(functionName string, args []interface{}, index int) ([]interface{}, error) {
	if index >= len(args) {
		return nil, module.NewTypeError("%s() missing argument %d", functionName, index+1)
	}

	typedValue, ok := args[index].([]interface{})
	if !ok {
		return nil, module.NewTypeError("%s() argument %d must be a sequence, got %T",
			functionName, index+1, args[index])
	}

	return typedValue, nil
}

func arrayAt(functionName string, args []interface{}, index int) (*wire.Array, error) {
	if index >= len(args) {
		return nil, module.NewTypeError("%s() missing argument %d", functionName, index+1)
	}

	typedValue, ok := args[index].(*wire.Array)
	if !ok {
		return nil, module.NewTypeError("%s() argument %d must be an array, got %T",
			functionName, index+1, args[index])
	}

	return typedValue, nil
}
