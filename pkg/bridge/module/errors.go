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
	"fmt"
)

// TypeError reports an argument of the wrong kind or arity. The dispatch
// loop prefixes it with "Type error:" on the wire.
type TypeError struct {
	message string
}

func NewTypeError(format string, args ...interface{}) *TypeError {
	return &TypeError{message: fmt.Sprintf(format, args...)}
}

func (e *TypeError) Error() string {
	return e.message
}

// ValueError reports an argument of the right kind but an unusable value.
// The dispatch loop prefixes it with "Value error:" on the wire.
type ValueError struct {
	message string
}

func NewValueError(format string, args ...interface{}) *ValueError {
	return &ValueError{message: fmt.Sprintf(format, args...)}
}

func (e *ValueError) Error() string {
	return e.message
}
