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

package wire

import (
	"github.com/nuclio/errors"
)

// Frame is a named-column table backed by a single 2-D array. A nil Index
// means the implicit 0..n-1 range and is omitted on the wire.
type Frame struct {
	Columns []string
	Values  *Array
	Index   []interface{}
}

// NewFrame validates column and index counts against the backing array
func NewFrame(columns []string, values *Array, index []interface{}) (*Frame, error) {
	if values == nil {
		return nil, errors.New("Frame requires a backing array")
	}

	if len(columns) != 0 {
		if len(values.Shape) != 2 {
			return nil, errors.Errorf("Frame with %d columns requires a 2-D array, got shape %v",
				len(columns),
				values.Shape)
		}

		if values.Shape[1] != len(columns) {
			return nil, errors.Errorf("Frame has %d columns but array holds %d",
				len(columns),
				values.Shape[1])
		}
	}

	// an empty explicit index means the implicit range, same as absent
	if len(index) == 0 {
		index = nil
	}

	if index != nil && len(values.Shape) != 0 && len(index) != values.Shape[0] {
		return nil, errors.Errorf("Frame index has %d entries for %d rows",
			len(index),
			values.Shape[0])
	}

	return &Frame{
		Columns: columns,
		Values:  values,
		Index:   index,
	}, nil
}

// Rows returns the number of rows
func (f *Frame) Rows() int {
	if len(f.Values.Shape) == 0 {
		return f.Values.Len()
	}

	return f.Values.Shape[0]
}

// Series is a single named column. It is never produced by decoding - on the
// wire it degrades to its values' typed array, losing name and index.
type Series struct {
	Name   string
	Values *Array
}
