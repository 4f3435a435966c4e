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

func encodeTag(t *testing.T, tag Tag) []byte {
	t.Helper()
	w := NewWriter(make([]byte, 16))
	if err := tag.Encode(w); err != nil {
		t.Fatalf("Encode(%+v) error = %v", tag, err)
	}
	return w.Bytes()
}

func TestTagEncode(t *testing.T) {
	tests := map[string]struct {
		tag  Tag
		want []byte
	}{
		"app-null":          {applicationTag(TagNull, 0), []byte{0x00}},
		"app-boolean-true":  {applicationTag(TagBoolean, 1), []byte{0x11}},
		"app-unsigned-1":    {applicationTag(TagUnsignedInt, 1), []byte{0x21}},
		"app-real":          {applicationTag(TagReal, 4), []byte{0x44}},
		"app-objectid":      {applicationTag(TagObjectID, 4), []byte{0xC4}},
		"ctx-0-len-4":       {contextTag(0, 4), []byte{0x0C}},
		"ctx-1-len-1":       {contextTag(1, 1), []byte{0x19}},
		"opening-3":         {openingTag(3), []byte{0x3E}},
		"closing-3":         {closingTag(3), []byte{0x3F}},
		"ctx-15-len-0":      {contextTag(15, 0), []byte{0xF8, 0x0F}},
		"ctx-200-len-2":     {contextTag(200, 2), []byte{0xFA, 0xC8}},
		"ext-len-5":         {applicationTag(TagOctetString, 5), []byte{0x65, 0x05}},
		"ext-len-253":       {applicationTag(TagOctetString, 253), []byte{0x65, 0xFD}},
		"ext-len-254":       {applicationTag(TagOctetString, 254), []byte{0x65, 0xFE, 0x00, 0xFE}},
		"ext-len-65535":     {applicationTag(TagOctetString, 65535), []byte{0x65, 0xFE, 0xFF, 0xFF}},
		"ext-len-65536":     {applicationTag(TagOctetString, 65536), []byte{0x65, 0xFF, 0x00, 0x01, 0x00, 0x00}},
		"opening-escaped":   {openingTag(33), []byte{0xFE, 0x21}},
	}
	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			if got := encodeTag(t, tt.tag); !bytes.Equal(got, tt.want) {
				t.Errorf("Encode() = % X, want % X", got, tt.want)
			}
		})
	}
}

func TestTagRoundTrip(t *testing.T) {
	tags := []Tag{
		applicationTag(TagNull, 0),
		applicationTag(TagBoolean, 1),
		applicationTag(TagUnsignedInt, 4),
		applicationTag(TagCharacterString, 300),
		applicationTag(TagOctetString, 70000),
		contextTag(0, 4),
		contextTag(14, 2),
		contextTag(15, 1),
		contextTag(254, 5),
		openingTag(0),
		closingTag(0),
		openingTag(200),
		closingTag(200),
	}
	for _, tag := range tags {
		data := encodeTag(t, tag)
		got, err := DecodeTag(NewReader(data))
		if err != nil {
			t.Fatalf("DecodeTag(% X) error = %v", data, err)
		}
		if got != tag {
			t.Errorf("DecodeTag(% X) = %+v, want %+v", data, got, tag)
		}
	}
}

func TestDecodeTagErrors(t *testing.T) {
	tests := map[string]struct {
		data    []byte
		wantErr error
	}{
		"empty":               {nil, ErrTruncated},
		"missing-number":      {[]byte{0xF8}, ErrTruncated},
		"missing-ext-length":  {[]byte{0x65}, ErrTruncated},
		"short-u16-length":    {[]byte{0x65, 0xFE, 0x01}, ErrTruncated},
		"short-u32-length":    {[]byte{0x65, 0xFF, 0x00, 0x01}, ErrTruncated},
		"app-reserved-6":      {[]byte{0x06}, ErrInvalidTag},
		"app-reserved-7":      {[]byte{0x07}, ErrInvalidTag},
	}
	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := DecodeTag(NewReader(tt.data))
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("DecodeTag() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestExpectContextTag(t *testing.T) {
	w := NewWriter(make([]byte, 8))
	if err := contextTag(1, 2).Encode(w); err != nil {
		t.Fatal(err)
	}

	if _, err := expectContextTag(NewReader(w.Bytes()), 1); err != nil {
		t.Errorf("expectContextTag(1) error = %v", err)
	}
	if _, err := expectContextTag(NewReader(w.Bytes()), 2); !errors.Is(err, ErrInvalidTag) {
		t.Errorf("expectContextTag(2) error = %v, want %v", err, ErrInvalidTag)
	}
	if _, err := expectContextTag(NewReader([]byte{0x21}), 2); !errors.Is(err, ErrInvalidTag) {
		t.Errorf("expectContextTag on application tag error = %v, want %v", err, ErrInvalidTag)
	}
}

func TestExpectBracketTags(t *testing.T) {
	if err := expectOpeningTag(NewReader([]byte{0x3E}), 3); err != nil {
		t.Errorf("expectOpeningTag(3) error = %v", err)
	}
	if err := expectOpeningTag(NewReader([]byte{0x3F}), 3); !errors.Is(err, ErrInvalidTag) {
		t.Errorf("expectOpeningTag on closing tag error = %v, want %v", err, ErrInvalidTag)
	}
	if err := expectClosingTag(NewReader([]byte{0x3F}), 3); err != nil {
		t.Errorf("expectClosingTag(3) error = %v", err)
	}
	if err := expectClosingTag(NewReader([]byte{0x4F}), 3); !errors.Is(err, ErrInvalidTag) {
		t.Errorf("expectClosingTag with wrong number error = %v, want %v", err, ErrInvalidTag)
	}
}
