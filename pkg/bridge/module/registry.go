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

package module

import (
	"github.com/nuclio/portbridge/pkg/registry"
)

// Registry holds the modules the bridge can dispatch into
type Registry struct {
	registry *registry.Registry
}

// global singleton - builtin modules register here on package initialization
var RegistrySingleton = NewRegistry()

func NewRegistry() *Registry {
	return &Registry{
		registry: registry.NewRegistry("module"),
	}
}

// Register adds a module under its own name, panicking on duplicates
func (r *Registry) Register(moduleInstance Module) {
	r.registry.Register(moduleInstance.Name(), moduleInstance)
}

// Get returns the named module or an explicit not-found error
func (r *Registry) Get(name string) (Module, error) {
	registeree, err := r.registry.Get(name)
	if err != nil {
		return nil, err
	}

	return registeree.(Module), nil
}

// GetNames returns the registered module names, sorted
func (r *Registry) GetNames() []string {
	return r.registry.GetNames()
}
