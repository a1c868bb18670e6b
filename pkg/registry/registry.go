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

package registry

import (
	"fmt"
	"sort"
	"sync"

	"github.com/nuclio/errors"
	"github.com/samber/lo"
)

// Registry is a locked name->registeree map. Registration happens during
// package initialization, lookup happens at request time.
type Registry struct {
	className  string
	lock       sync.Locker
	registered map[string]interface{}
}

func NewRegistry(className string) *Registry {
	return &Registry{
		className:  className,
		lock:       &sync.Mutex{},
		registered: map[string]interface{}{},
	}
}

func (r *Registry) Register(name string, registeree interface{}) {
	r.lock.Lock()
	defer r.lock.Unlock()

	if _, found := r.registered[name]; found {

		// registries register things on package initialization; no place for error handling
		panic(fmt.Sprintf("Already registered: %s", name))
	}

	r.registered[name] = registeree
}

func (r *Registry) Get(name string) (interface{}, error) {
	r.lock.Lock()
	defer r.lock.Unlock()

	registeree, found := r.registered[name]
	if !found {
		return nil, errors.Errorf("Registry for %s failed to find: %s", r.className, name)
	}

	return registeree, nil
}

func (r *Registry) GetNames() []string {
	r.lock.Lock()
	defer r.lock.Unlock()

	names := lo.Keys(r.registered)
	sort.Strings(names)

	return names
}
