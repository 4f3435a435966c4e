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
	"bytes"
	"errors"
	"testing"
)

func TestUnsignedLen(t *testing.T) {
	tests := []struct {
		v    uint32
		want uint32
	}{
		{0, 1},
		{1, 1},
		{255, 1},
		{256, 2},
		{65535, 2},
		{65536, 3},
		{16777215, 3},
		{16777216, 4},
		{0xFFFFFFFF, 4},
	}
	for _, tt := range tests {
		if got := unsignedLen(tt.v); got != tt.want {
			t.Errorf("unsignedLen(%d) = %d, want %d", tt.v, got, tt.want)
		}
	}
}

func TestUnsignedRoundTrip(t *testing.T) {
	for _, v := range []uint32{0, 1, 255, 256, 47808, 65535, 65536, 16777215, 16777216, 0xFFFFFFFF} {
		length := unsignedLen(v)
		w := NewWriter(make([]byte, 4))
		if err := encodeUnsigned(w, length, v); err != nil {
			t.Fatalf("encodeUnsigned(%d) error = %v", v, err)
		}
		if w.Len() != int(length) {
			t.Errorf("encodeUnsigned(%d) wrote %d bytes, want %d", v, w.Len(), length)
		}
		got, err := decodeUnsigned(length, NewReader(w.Bytes()))
		if err != nil {
			t.Fatalf("decodeUnsigned(%d) error = %v", v, err)
		}
		if got != v {
			t.Errorf("round trip of %d = %d", v, got)
		}
	}
}

func TestDecodeUnsignedErrors(t *testing.T) {
	if _, err := decodeUnsigned(0, NewReader(nil)); !errors.Is(err, ErrInvalidValue) {
		t.Errorf("length 0 error = %v, want %v", err, ErrInvalidValue)
	}
	if _, err := decodeUnsigned(5, NewReader([]byte{1, 2, 3, 4, 5})); !errors.Is(err, ErrInvalidValue) {
		t.Errorf("length 5 error = %v, want %v", err, ErrInvalidValue)
	}
	if _, err := decodeUnsigned(4, NewReader([]byte{1, 2})); !errors.Is(err, ErrTruncated) {
		t.Errorf("short buffer error = %v, want %v", err, ErrTruncated)
	}
}

func TestEncodeContextUnsigned(t *testing.T) {
	tests := map[string]struct {
		number uint8
		v      uint32
		want   []byte
	}{
		"one-byte":    {1, 85, []byte{0x19, 0x55}},
		"two-bytes":   {0, 47808, []byte{0x0A, 0xBA, 0xC0}},
		"three-bytes": {2, 0x123456, []byte{0x2B, 0x12, 0x34, 0x56}},
		"four-bytes":  {3, 0x01020304, []byte{0x3C, 0x01, 0x02, 0x03, 0x04}},
	}
	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			w := NewWriter(make([]byte, 8))
			if err := encodeContextUnsigned(w, tt.number, tt.v); err != nil {
				t.Fatal(err)
			}
			if !bytes.Equal(w.Bytes(), tt.want) {
				t.Errorf("encodeContextUnsigned(%d, %d) = % X, want % X", tt.number, tt.v, w.Bytes(), tt.want)
			}
		})
	}
}

func TestRealDoubleRoundTrip(t *testing.T) {
	for _, v := range []float32{0, 1, -1, 72.5, 3.14159, -40} {
		w := NewWriter(make([]byte, 4))
		if err := encodeReal(w, v); err != nil {
			t.Fatal(err)
		}
		got, err := decodeReal(NewReader(w.Bytes()))
		if err != nil {
			t.Fatal(err)
		}
		if got != v {
			t.Errorf("real round trip of %g = %g", v, got)
		}
	}

	w := NewWriter(make([]byte, 8))
	if err := encodeDouble(w, 1234.5678); err != nil {
		t.Fatal(err)
	}
	got, err := decodeDouble(NewReader(w.Bytes()))
	if err != nil {
		t.Fatal(err)
	}
	if got != 1234.5678 {
		t.Errorf("double round trip = %g", got)
	}
}

func TestWriterOverflow(t *testing.T) {
	w := NewWriter(make([]byte, 2))
	if err := w.Append(1, 2); err != nil {
		t.Fatal(err)
	}
	if err := w.Push(3); !errors.Is(err, ErrOverflow) {
		t.Errorf("Push into full writer error = %v, want %v", err, ErrOverflow)
	}
}
