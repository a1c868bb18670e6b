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

// Package module models the callable registry the bridge dispatches into: a
// module is a named set of functions, resolvable by two strings and callable
// with positional and keyword arguments.
package module

import (
	"github.com/nuclio/errors"
)

// Function is an invocable unit. Implementations receive decoded extended
// values and return a value encodable by the wire codec. A nil kwargs map
// means no keyword arguments were passed.
type Function interface {
	Call(args []interface{}, kwargs map[string]interface{}) (interface{}, error)
}

// FunctionFunc adapts a plain function to the Function interface
type FunctionFunc func(args []interface{}, kwargs map[string]interface{}) (interface{}, error)

func (f FunctionFunc) Call(args []interface{}, kwargs map[string]interface{}) (interface{}, error) {
	return f(args, kwargs)
}

type positionalFunction struct {
	name string
	fn   func(args []interface{}) (interface{}, error)
}

// Positional adapts a positional-only function. Keyword arguments fail with
// a type error, but calling with zero of them is always allowed
func Positional(name string, fn func(args []interface{}) (interface{}, error)) Function {
	return &positionalFunction{name: name, fn: fn}
}

func (p *positionalFunction) Call(args []interface{}, kwargs map[string]interface{}) (interface{}, error) {
	if len(kwargs) != 0 {
		return nil, NewTypeError("%s() takes no keyword arguments", p.name)
	}

	return p.fn(args)
}

// Module resolves functions by name
type Module interface {

	// Name returns the name the module is registered under
	Name() string

	// Function returns the named function or an explicit not-found error
	Function(name string) (Function, error)
}

// MapModule is a Module over a static function map
type MapModule struct {
	name      string
	functions map[string]Function
}

func NewMapModule(name string, functions map[string]Function) *MapModule {
	return &MapModule{
		name:      name,
		functions: functions,
	}
}

func (m *MapModule) Name() string {
	return m.name
}

func (m *MapModule) Function(name string) (Function, error) {
	function, found := m.functions[name]
	if !found {
		return nil, errors.Errorf("module %q has no attribute %q", m.name, name)
	}

	return function, nil
}
