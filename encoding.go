// Copyright 2025 Edgeo SCADA
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package bacnet

import (
	"fmt"
	"math"
)

// unsignedLen returns the narrowest byte length (1-4) that holds v.
func unsignedLen(v uint32) uint32 {
	switch {
	case v < 0x100:
		return 1
	case v < 0x10000:
		return 2
	case v < 0x1000000:
		return 3
	default:
		return 4
	}
}

// encodeUnsigned writes v big-endian in exactly length bytes.
func encodeUnsigned(w *Writer, length uint32, v uint32) error {
	switch length {
	case 1:
		return w.Push(byte(v))
	case 2:
		return w.Append(byte(v >> 8), byte(v))
	case 3:
		return w.Append(byte(v >> 16), byte(v >> 8), byte(v))
	case 4:
		return w.Append(byte(v >> 24), byte(v >> 16), byte(v >> 8), byte(v))
	default:
		return fmt.Errorf("%w: unsigned length %d", ErrInvalidValue, length)
	}
}

// decodeUnsigned reads a big-endian unsigned of exactly the declared length.
func decodeUnsigned(length uint32, r *Reader) (uint32, error) {
	if length < 1 || length > 4 {
		return 0, fmt.Errorf("%w: unsigned length %d", ErrInvalidValue, length)
	}
	s, err := r.ReadSlice(int(length))
	if err != nil {
		return 0, err
	}
	var v uint32
	for _, b := range s {
		v = v<<8 | uint32(b)
	}
	return v, nil
}

// encodeReal writes a float32 big-endian.
func encodeReal(w *Writer, v float32) error {
	bits := math.Float32bits(v)
	return w.Append(byte(bits >> 24), byte(bits >> 16), byte(bits >> 8), byte(bits))
}

// decodeReal reads a 4-byte big-endian float32.
func decodeReal(r *Reader) (float32, error) {
	s, err := r.ReadSlice(4)
	if err != nil {
		return 0, err
	}
	bits := uint32(s[0])<<24 | uint32(s[1])<<16 | uint32(s[2])<<8 | uint32(s[3])
	return math.Float32frombits(bits), nil
}

// encodeDouble writes a float64 big-endian.
func encodeDouble(w *Writer, v float64) error {
	bits := math.Float64bits(v)
	return w.Append(
		byte(bits>>56), byte(bits>>48), byte(bits>>40), byte(bits>>32),
		byte(bits>>24), byte(bits>>16), byte(bits>>8), byte(bits))
}

// decodeDouble reads an 8-byte big-endian float64.
func decodeDouble(r *Reader) (float64, error) {
	s, err := r.ReadSlice(8)
	if err != nil {
		return 0, err
	}
	var bits uint64
	for _, b := range s {
		bits = bits<<8 | uint64(b)
	}
	return math.Float64frombits(bits), nil
}

// encodeContextUnsigned writes a context tag with a minimal-length unsigned.
func encodeContextUnsigned(w *Writer, number uint8, v uint32) error {
	length := unsignedLen(v)
	if err := contextTag(number, length).Encode(w); err != nil {
		return err
	}
	return encodeUnsigned(w, length, v)
}

// encodeAppUnsigned writes an application-tagged minimal-length unsigned.
func encodeAppUnsigned(w *Writer, tag ApplicationTag, v uint32) error {
	length := unsignedLen(v)
	if err := applicationTag(tag, length).Encode(w); err != nil {
		return err
	}
	return encodeUnsigned(w, length, v)
}
