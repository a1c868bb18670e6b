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
	"encoding/base64"
	"fmt"
	"reflect"

	"github.com/mitchellh/mapstructure"
	"github.com/nuclio/errors"
)

// reserved marker keys
const (
	BytesKey = "__bytes__"
	ArrayKey = "__numpy_array__"
	FrameKey = "__pandas_df__"
)

// Capabilities gates the optional tagged forms. Both variants of the
// protocol share one codec - a capability switched off makes the matching
// marker an explicit decode error and drops its native type to the encoder's
// fallback rules.
type Capabilities struct {
	Arrays bool
	Frames bool
}

// Codec converts between wire values and extended native values
type Codec struct {
	capabilities Capabilities
}

// NewCodec returns a codec with the given capability set
func NewCodec(capabilities Capabilities) *Codec {
	return &Codec{capabilities: capabilities}
}

// Capabilities returns the codec's capability set
func (c *Codec) Capabilities() Capabilities {
	return c.capabilities
}

type arrayPayload struct {
	Dtype string `mapstructure:"dtype"`
	Shape []int  `mapstructure:"shape"`
	Data  string `mapstructure:"data"`
}

type framePayload struct {
	Columns []string      `mapstructure:"columns"`
	Data    interface{}   `mapstructure:"data"`
	Index   []interface{} `mapstructure:"index"`
}

// Decode converts a wire value to its extended native form, depth first.
// Marker keys take precedence over plain-mapping recursion, in the order
// array, frame, bytes; other keys alongside a marker are ignored. Decoding
// never fails for well-formed extended values - only malformed marker
// payloads error out
func (c *Codec) Decode(value interface{}) (interface{}, error) {
	switch typedValue := value.(type) {
	case map[string]interface{}:
		if payload, found := typedValue[ArrayKey]; found {
			if !c.capabilities.Arrays {
				return nil, errors.Errorf("Unsupported wire type %q: array support is disabled", ArrayKey)
			}

			return c.decodeArray(payload)
		}

		if payload, found := typedValue[FrameKey]; found {
			if !c.capabilities.Frames {
				return nil, errors.Errorf("Unsupported wire type %q: frame support is disabled", FrameKey)
			}

			return c.decodeFrame(payload)
		}

		if payload, found := typedValue[BytesKey]; found {
			return c.decodeBytes(payload)
		}

		decodedMap := make(map[string]interface{}, len(typedValue))
		for key, mapValue := range typedValue {
			decodedValue, err := c.Decode(mapValue)
			if err != nil {
				return nil, err
			}

			decodedMap[key] = decodedValue
		}

		return decodedMap, nil

	case []interface{}:
		decodedSlice := make([]interface{}, len(typedValue))
		for index, sliceValue := range typedValue {
			decodedValue, err := c.Decode(sliceValue)
			if err != nil {
				return nil, err
			}

			decodedSlice[index] = decodedValue
		}

		return decodedSlice, nil

	default:
		return value, nil
	}
}

func (c *Codec) decodeBytes(payload interface{}) ([]byte, error) {
	encoded, ok := payload.(string)
	if !ok {
		return nil, errors.Errorf("Expected %q to carry a base64 string, got %T", BytesKey, payload)
	}

	decoded, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return nil, errors.Wrap(err, "Failed to decode byte buffer")
	}

	return decoded, nil
}

func (c *Codec) decodeArray(payload interface{}) (*Array, error) {
	var arrayInfo arrayPayload
	if err := mapstructure.Decode(payload, &arrayInfo); err != nil {
		return nil, errors.Wrap(err, "Failed to decode array payload")
	}

	data, err := base64.StdEncoding.DecodeString(arrayInfo.Data)
	if err != nil {
		return nil, errors.Wrap(err, "Failed to decode array data")
	}

	// unknown tags fall back to f64, a deliberate lenient default
	dtype := Dtype(arrayInfo.Dtype)
	if !dtype.Valid() {
		dtype = Float64
	}

	return NewArray(dtype, arrayInfo.Shape, data), nil
}

func (c *Codec) decodeFrame(payload interface{}) (*Frame, error) {
	var frameInfo framePayload
	if err := mapstructure.Decode(payload, &frameInfo); err != nil {
		return nil, errors.Wrap(err, "Failed to decode frame payload")
	}

	// the inner payload is the bare {dtype, shape, data} object, not a
	// nested marker
	values, err := c.decodeArray(frameInfo.Data)
	if err != nil {
		return nil, err
	}

	return NewFrame(frameInfo.Columns, values, frameInfo.Index)
}

// Encode converts a native value to its wire form. Dispatch is by native
// kind, in a fixed priority order, and is total: an unrecognized value
// degrades to its textual representation rather than failing
func (c *Codec) Encode(value interface{}) interface{} {
	if value == nil {
		return nil
	}

	switch typedValue := value.(type) {
	case bool, string,
		int, int8, int16, int32, int64,
		uint, uint8, uint16, uint32, uint64,
		float32, float64:
		return typedValue

	case []byte:
		return map[string]interface{}{
			BytesKey: base64.StdEncoding.EncodeToString(typedValue),
		}

	case []interface{}:
		encodedSlice := make([]interface{}, len(typedValue))
		for index, sliceValue := range typedValue {
			encodedSlice[index] = c.Encode(sliceValue)
		}

		return encodedSlice

	case map[string]interface{}:
		encodedMap := make(map[string]interface{}, len(typedValue))
		for key, mapValue := range typedValue {
			encodedMap[key] = c.Encode(mapValue)
		}

		return encodedMap

	case *Array:
		if typedValue == nil {
			return nil
		}

		if c.capabilities.Arrays {
			return map[string]interface{}{
				ArrayKey: c.encodeArrayPayload(typedValue),
			}
		}

	case *Frame:
		if typedValue == nil {
			return nil
		}

		if c.capabilities.Frames && typedValue.Values != nil {
			return map[string]interface{}{
				FrameKey: map[string]interface{}{
					"columns": typedValue.Columns,
					"data":    c.encodeArrayPayload(typedValue.Values),
					"index":   typedValue.Index,
				},
			}
		}

	case *Series:
		if typedValue == nil {
			return nil
		}

		// a series degrades to its values, losing name and index
		if c.capabilities.Arrays && typedValue.Values != nil {
			return map[string]interface{}{
				ArrayKey: c.encodeArrayPayload(typedValue.Values),
			}
		}

	case error:
		return typedValue.Error()

	default:
		if encoded, handled := c.encodeReflected(value); handled {
			return encoded
		}
	}

	return stringify(value)
}

// encodeReflected covers named and composite kinds the type switch misses
func (c *Codec) encodeReflected(value interface{}) (interface{}, bool) {
	reflected := reflect.ValueOf(value)

	switch reflected.Kind() {
	case reflect.Bool:
		return reflected.Bool(), true
	case reflect.String:
		return reflected.String(), true
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return reflected.Int(), true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return reflected.Uint(), true
	case reflect.Float32, reflect.Float64:
		return reflected.Float(), true

	case reflect.Slice, reflect.Array:
		if reflected.Kind() == reflect.Slice && reflected.Type().Elem().Kind() == reflect.Uint8 {
			return map[string]interface{}{
				BytesKey: base64.StdEncoding.EncodeToString(reflected.Bytes()),
			}, true
		}

		encodedSlice := make([]interface{}, reflected.Len())
		for index := range encodedSlice {
			encodedSlice[index] = c.Encode(reflected.Index(index).Interface())
		}

		return encodedSlice, true

	case reflect.Map:
		encodedMap := make(map[string]interface{}, reflected.Len())
		mapIter := reflected.MapRange()
		for mapIter.Next() {
			encodedMap[stringify(mapIter.Key().Interface())] = c.Encode(mapIter.Value().Interface())
		}

		return encodedMap, true

	case reflect.Ptr, reflect.Interface:
		if reflected.IsNil() {
			return nil, true
		}

		return c.Encode(reflected.Elem().Interface()), true
	}

	return nil, false
}

func (c *Codec) encodeArrayPayload(array *Array) map[string]interface{} {
	shape := array.Shape
	if shape == nil {
		shape = []int{}
	}

	return map[string]interface{}{
		"dtype": string(array.Dtype),
		"shape": shape,
		"data":  base64.StdEncoding.EncodeToString(array.Data),
	}
}

func stringify(value interface{}) string {
	if stringer, ok := value.(fmt.Stringer); ok {
		return stringer.String()
	}

	return fmt.Sprintf("%v", value)
}
