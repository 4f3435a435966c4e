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

import "fmt"

// TagClass distinguishes application tags (self-describing primitive types)
// from context-specific tags (meaning given by position in the payload).
type TagClass uint8

const (
	TagClassApplication TagClass = 0
	TagClassContext     TagClass = 1
)

// ApplicationTag numbers for primitive values.
type ApplicationTag uint8

const (
	TagNull            ApplicationTag = 0
	TagBoolean         ApplicationTag = 1
	TagUnsignedInt     ApplicationTag = 2
	TagSignedInt       ApplicationTag = 3
	TagReal            ApplicationTag = 4
	TagDouble          ApplicationTag = 5
	TagOctetString     ApplicationTag = 6
	TagCharacterString ApplicationTag = 7
	TagBitString       ApplicationTag = 8
	TagEnumerated      ApplicationTag = 9
	TagDate            ApplicationTag = 10
	TagTime            ApplicationTag = 11
	TagObjectID        ApplicationTag = 12
)

func (t ApplicationTag) String() string {
	names := map[ApplicationTag]string{
		TagNull:            "null",
		TagBoolean:         "boolean",
		TagUnsignedInt:     "unsigned-int",
		TagSignedInt:       "signed-int",
		TagReal:            "real",
		TagDouble:          "double",
		TagOctetString:     "octet-string",
		TagCharacterString: "character-string",
		TagBitString:       "bit-string",
		TagEnumerated:      "enumerated",
		TagDate:            "date",
		TagTime:            "time",
		TagObjectID:        "object-identifier",
	}
	if name, ok := names[t]; ok {
		return name
	}
	return fmt.Sprintf("application-tag(%d)", uint8(t))
}

// Tag is the self-describing header preceding every encoded value. Value
// carries the payload length in bytes, except for Boolean application tags
// where it carries the value itself. Opening/Closing mark the bracketing
// tags around constructed context data and carry no value.
type Tag struct {
	Class   TagClass
	Number  uint8
	Value   uint32
	Opening bool
	Closing bool
}

func applicationTag(num ApplicationTag, value uint32) Tag {
	return Tag{Class: TagClassApplication, Number: uint8(num), Value: value}
}

func contextTag(num uint8, value uint32) Tag {
	return Tag{Class: TagClassContext, Number: num, Value: value}
}

func openingTag(num uint8) Tag {
	return Tag{Class: TagClassContext, Number: num, Opening: true}
}

func closingTag(num uint8) Tag {
	return Tag{Class: TagClassContext, Number: num, Closing: true}
}

// Encode writes the tag header. Tag numbers 0-14 pack into the initial
// octet; 15 and above use the 0x0F escape followed by the number byte.
// Values 0-4 ride in the length nibble; larger values set the nibble to 5
// and append a 1, 2 or 4 byte extended length chosen by magnitude.
func (t Tag) Encode(w *Writer) error {
	var lvt byte
	switch {
	case t.Opening:
		lvt = 0x06
	case t.Closing:
		lvt = 0x07
	case t.Value < 5:
		lvt = byte(t.Value)
	default:
		lvt = 0x05
	}

	initial := lvt
	if t.Class == TagClassContext || t.Opening || t.Closing {
		initial |= 0x08
	}

	if t.Number < 15 {
		if err := w.Push(initial | t.Number<<4); err != nil {
			return err
		}
	} else {
		if err := w.Push(initial | 0xF0); err != nil {
			return err
		}
		if err := w.Push(t.Number); err != nil {
			return err
		}
	}

	if t.Opening || t.Closing || t.Value < 5 {
		return nil
	}

	switch {
	case t.Value < 254:
		return w.Push(byte(t.Value))
	case t.Value <= 0xFFFF:
		if err := w.Push(254); err != nil {
			return err
		}
		return w.Append(byte(t.Value >> 8), byte(t.Value))
	default:
		if err := w.Push(255); err != nil {
			return err
		}
		return w.Append(byte(t.Value>>24), byte(t.Value>>16), byte(t.Value>>8), byte(t.Value))
	}
}

// DecodeTag reads one tag header from r.
func DecodeTag(r *Reader) (Tag, error) {
	initial, err := r.ReadByte()
	if err != nil {
		return Tag{}, err
	}

	tag := Tag{Number: initial >> 4}
	if initial&0x08 != 0 {
		tag.Class = TagClassContext
	}
	lvt := initial & 0x07

	if tag.Number == 0x0F {
		num, err := r.ReadByte()
		if err != nil {
			return Tag{}, err
		}
		tag.Number = num
	}

	if tag.Class == TagClassContext {
		switch lvt {
		case 0x06:
			tag.Opening = true
			return tag, nil
		case 0x07:
			tag.Closing = true
			return tag, nil
		}
	} else if lvt > 5 {
		// 6 and 7 are reserved in the application class.
		return Tag{}, fmt.Errorf("%w: reserved length nibble %d", ErrInvalidTag, lvt)
	}

	if lvt < 5 {
		tag.Value = uint32(lvt)
		return tag, nil
	}

	ext, err := r.ReadByte()
	if err != nil {
		return Tag{}, err
	}
	switch {
	case ext < 254:
		tag.Value = uint32(ext)
	case ext == 254:
		v, err := r.ReadUint16()
		if err != nil {
			return Tag{}, err
		}
		tag.Value = uint32(v)
	default:
		s, err := r.ReadSlice(4)
		if err != nil {
			return Tag{}, err
		}
		tag.Value = uint32(s[0])<<24 | uint32(s[1])<<16 | uint32(s[2])<<8 | uint32(s[3])
	}
	return tag, nil
}

// expectContextTag reads a tag and checks it is the primitive context tag
// with the given number.
func expectContextTag(r *Reader, number uint8) (Tag, error) {
	tag, err := DecodeTag(r)
	if err != nil {
		return Tag{}, err
	}
	if tag.Class != TagClassContext || tag.Number != number || tag.Opening || tag.Closing {
		return Tag{}, fmt.Errorf("%w: expected context tag %d", ErrInvalidTag, number)
	}
	return tag, nil
}

// expectOpeningTag reads a tag and checks it opens constructed data with the
// given number.
func expectOpeningTag(r *Reader, number uint8) error {
	tag, err := DecodeTag(r)
	if err != nil {
		return err
	}
	if !tag.Opening || tag.Number != number {
		return fmt.Errorf("%w: expected opening tag %d", ErrInvalidTag, number)
	}
	return nil
}

// expectClosingTag reads a tag and checks it closes constructed data with
// the given number.
func expectClosingTag(r *Reader, number uint8) error {
	tag, err := DecodeTag(r)
	if err != nil {
		return err
	}
	if !tag.Closing || tag.Number != number {
		return fmt.Errorf("%w: expected closing tag %d", ErrInvalidTag, number)
	}
	return nil
}
