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
	"encoding/binary"
	"math"

	"github.com/nuclio/errors"
)

// Array is an N-dimensional numeric buffer. Data holds raw little-endian
// element bytes; Shape may be empty, in which case the array is flat. The
// byte length is not validated against the shape on construction - accessors
// surface the mismatch when the array is materialized.
type Array struct {
	Dtype Dtype
	Shape []int
	Data  []byte
}

// NewArray returns an array over the given raw bytes
func NewArray(dtype Dtype, shape []int, data []byte) *Array {
	return &Array{
		Dtype: dtype,
		Shape: shape,
		Data:  data,
	}
}

// ArrayFromInt64s packs the values as a little-endian i64 array
func ArrayFromInt64s(values []int64, shape ...int) *Array {
	data := make([]byte, 8*len(values))
	for index, value := range values {
		binary.LittleEndian.PutUint64(data[8*index:], uint64(value))
	}

	return NewArray(Int64, shape, data)
}

// ArrayFromInt32s packs the values as a little-endian i32 array
func ArrayFromInt32s(values []int32, shape ...int) *Array {
	data := make([]byte, 4*len(values))
	for index, value := range values {
		binary.LittleEndian.PutUint32(data[4*index:], uint32(value))
	}

	return NewArray(Int32, shape, data)
}

// ArrayFromFloat64s packs the values as a little-endian f64 array
func ArrayFromFloat64s(values []float64, shape ...int) *Array {
	data := make([]byte, 8*len(values))
	for index, value := range values {
		binary.LittleEndian.PutUint64(data[8*index:], math.Float64bits(value))
	}

	return NewArray(Float64, shape, data)
}

// ArrayFromFloat32s packs the values as a little-endian f32 array
func ArrayFromFloat32s(values []float32, shape ...int) *Array {
	data := make([]byte, 4*len(values))
	for index, value := range values {
		binary.LittleEndian.PutUint32(data[4*index:], math.Float32bits(value))
	}

	return NewArray(Float32, shape, data)
}

// Itemsize returns the element size in bytes
func (a *Array) Itemsize() int {
	return a.Dtype.Size()
}

// Len returns the number of elements actually stored in the buffer
func (a *Array) Len() int {
	itemsize := a.Itemsize()
	if itemsize == 0 {
		return 0
	}

	return len(a.Data) / itemsize
}

// Count returns the number of elements the shape declares. A flat array
// (empty shape) counts its stored elements
func (a *Array) Count() int {
	if len(a.Shape) == 0 {
		return a.Len()
	}

	count := 1
	for _, dimension := range a.Shape {
		count *= dimension
	}

	return count
}

// Reshape returns a view of the same buffer under a new shape
func (a *Array) Reshape(shape ...int) (*Array, error) {
	count := 1
	for _, dimension := range shape {
		count *= dimension
	}

	if count != a.Len() {
		return nil, errors.Errorf("Cannot reshape array of %d elements into %v", a.Len(), shape)
	}

	return NewArray(a.Dtype, shape, a.Data), nil
}

func (a *Array) validate() error {
	if !a.Dtype.Valid() {
		return errors.Errorf("Unknown dtype %q", a.Dtype)
	}

	if a.Itemsize()*a.Len() != len(a.Data) {
		return errors.Errorf("Array data length %d is not a multiple of itemsize %d",
			len(a.Data),
			a.Itemsize())
	}

	if a.Count() != a.Len() {
		return errors.Errorf("Array shape %v wants %d elements, buffer holds %d",
			a.Shape,
			a.Count(),
			a.Len())
	}

	return nil
}

// At returns element i widened to int64, uint64 or float64 depending on the
// dtype family. It assumes i is within range
func (a *Array) At(i int) interface{} {
	offset := i * a.Itemsize()
	data := a.Data[offset:]

	switch a.Dtype {
	case Int64:
		return int64(binary.LittleEndian.Uint64(data))
	case Int32:
		return int64(int32(binary.LittleEndian.Uint32(data)))
	case Int16:
		return int64(int16(binary.LittleEndian.Uint16(data)))
	case Int8:
		return int64(int8(data[0]))
	case Uint64:
		return binary.LittleEndian.Uint64(data)
	case Uint32:
		return uint64(binary.LittleEndian.Uint32(data))
	case Uint16:
		return uint64(binary.LittleEndian.Uint16(data))
	case Uint8:
		return uint64(data[0])
	case Float32:
		return float64(math.Float32frombits(binary.LittleEndian.Uint32(data)))
	default:
		return math.Float64frombits(binary.LittleEndian.Uint64(data))
	}
}

// Float64s materializes every element as float64
func (a *Array) Float64s() ([]float64, error) {
	if err := a.validate(); err != nil {
		return nil, err
	}

	values := make([]float64, a.Len())
	for index := range values {
		switch typedValue := a.At(index).(type) {
		case int64:
			values[index] = float64(typedValue)
		case uint64:
			values[index] = float64(typedValue)
		case float64:
			values[index] = typedValue
		}
	}

	return values, nil
}

// Nested materializes the array as nested sequences following the shape, with
// leaf elements widened as in At. A flat array materializes as one sequence
func (a *Array) Nested() (interface{}, error) {
	if err := a.validate(); err != nil {
		return nil, err
	}

	shape := a.Shape
	if len(shape) == 0 {
		shape = []int{a.Len()}
	}

	nested, _ := a.nest(shape, 0)
	return nested, nil
}

func (a *Array) nest(shape []int, offset int) (interface{}, int) {
	if len(shape) == 0 {
		return a.At(offset), offset + 1
	}

	values := make([]interface{}, shape[0])
	for index := range values {
		values[index], offset = a.nest(shape[1:], offset)
	}

	return values, offset
}
