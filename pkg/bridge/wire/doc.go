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

// Package wire converts between JSON-safe wire values and extended native
// values. On top of the plain JSON grammar (null, bool, number, string,
// sequence, string-keyed mapping) the codec understands three tagged mapping
// forms, each carrying a single reserved marker key:
//
//	{"__bytes__": <base64>}                                   raw byte buffer
//	{"__numpy_array__": {"dtype": ..., "shape": ..., "data": ...}}  typed array
//	{"__pandas_df__": {"columns": ..., "data": ..., "index": ...}}  frame
//
// Marker keys are reserved: a user mapping that legitimately contains one is
// indistinguishable from the tagged form and will be decoded as the tagged
// type, ignoring any other keys. The protocol has no escaping mechanism for
// this; it is a known limitation.
//
// Array and frame support are capability-gated. Decoding a gated marker while
// its capability is disabled is an explicit error rather than a silent
// fall-through to plain-mapping semantics.
package wire
