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

// Dtype identifies the element kind of a typed array. The set is closed at
// the wire level - an unknown tag on decode falls back to Float64 rather
// than failing.
type Dtype string

const (
	Int64   Dtype = "i64"
	Int32   Dtype = "i32"
	Int16   Dtype = "i16"
	Int8    Dtype = "i8"
	Uint64  Dtype = "u64"
	Uint32  Dtype = "u32"
	Uint16  Dtype = "u16"
	Uint8   Dtype = "u8"
	Float32 Dtype = "f32"
	Float64 Dtype = "f64"
)

var dtypeSizes = map[Dtype]int{
	Int64:   8,
	Int32:   4,
	Int16:   2,
	Int8:    1,
	Uint64:  8,
	Uint32:  4,
	Uint16:  2,
	Uint8:   1,
	Float32: 4,
	Float64: 8,
}

// Size returns the element size in bytes, or zero for an unknown tag
func (d Dtype) Size() int {
	return dtypeSizes[d]
}

// Valid returns whether the tag is one of the ten supported kinds
func (d Dtype) Valid() bool {
	_, found := dtypeSizes[d]
	return found
}

// DtypeOf maps a native element value to its wire tag, defaulting to Float64
// for unrecognized kinds
func DtypeOf(value interface{}) Dtype {
	switch value.(type) {
	case int64, int:
		return Int64
	case int32:
		return Int32
	case int16:
		return Int16
	case int8:
		return Int8
	case uint64, uint:
		return Uint64
	case uint32:
		return Uint32
	case uint16:
		return Uint16
	case uint8:
		return Uint8
	case float32:
		return Float32
	case float64:
		return Float64
	default:
		return Float64
	}
}
