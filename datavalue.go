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
	"time"
	"unicode/utf8"
)

// ApplicationDataValue is a decoded BACnet application-tagged value.
// Implementations are the primitive value types of the application layer.
type ApplicationDataValue interface {
	// Encode appends the value, including its application tag, to w.
	Encode(w *Writer) error
	dataValue()
}

// Null represents the BACnet Null value
type Null struct{}

func (Null) dataValue() {}

func (Null) Encode(w *Writer) error {
	return applicationTag(TagNull, 0).Encode(w)
}

func (Null) String() string { return "null" }

// Boolean represents the BACnet Boolean value. The value lives in the tag
// header itself; a Boolean has no content octets.
type Boolean bool

func (Boolean) dataValue() {}

func (b Boolean) Encode(w *Writer) error {
	var v uint32
	if b {
		v = 1
	}
	return applicationTag(TagBoolean, v).Encode(w)
}

func (b Boolean) String() string {
	if b {
		return "true"
	}
	return "false"
}

// UnsignedInteger represents the BACnet Unsigned value
type UnsignedInteger uint32

func (UnsignedInteger) dataValue() {}

func (u UnsignedInteger) Encode(w *Writer) error {
	return encodeAppUnsigned(w, TagUnsignedInt, uint32(u))
}

func (u UnsignedInteger) String() string { return fmt.Sprintf("%d", uint32(u)) }

// Real represents the BACnet Real (IEEE-754 single precision) value
type Real float32

func (Real) dataValue() {}

func (r Real) Encode(w *Writer) error {
	if err := applicationTag(TagReal, 4).Encode(w); err != nil {
		return err
	}
	return encodeReal(w, float32(r))
}

func (r Real) String() string { return fmt.Sprintf("%g", float32(r)) }

// Double represents the BACnet Double (IEEE-754 double precision) value
type Double float64

func (Double) dataValue() {}

func (d Double) Encode(w *Writer) error {
	if err := applicationTag(TagDouble, 8).Encode(w); err != nil {
		return err
	}
	return encodeDouble(w, float64(d))
}

func (d Double) String() string { return fmt.Sprintf("%g", float64(d)) }

// DateWildcard is the octet value matching any field of a Date or Time.
const DateWildcard = 0xFF

// Date represents the BACnet Date value. Year is stored as an offset from
// 1900, Weekday runs Monday=1 through Sunday=7. Any field may hold
// DateWildcard.
type Date struct {
	Year    uint8
	Month   uint8
	Day     uint8
	Weekday uint8
}

// NewDate creates a Date from a calendar year
func NewDate(year uint16, month, day, weekday uint8) Date {
	return Date{
		Year:    uint8(year - 1900),
		Month:   month,
		Day:     day,
		Weekday: weekday,
	}
}

// DateOf converts a time.Time to a BACnet Date
func DateOf(t time.Time) Date {
	weekday := uint8((int(t.Weekday())+6)%7 + 1)
	return NewDate(uint16(t.Year()), uint8(t.Month()), uint8(t.Day()), weekday)
}

// CalendarYear returns the full year, or 0 if the year is wildcarded
func (d Date) CalendarYear() uint16 {
	if d.Year == DateWildcard {
		return 0
	}
	return uint16(d.Year) + 1900
}

func (Date) dataValue() {}

func (d Date) Encode(w *Writer) error {
	if err := applicationTag(TagDate, 4).Encode(w); err != nil {
		return err
	}
	return w.Append(d.Year, d.Month, d.Day, d.Weekday)
}

func decodeDate(length uint32, r *Reader) (Date, error) {
	if length != 4 {
		return Date{}, fmt.Errorf("%w: date length %d", ErrInvalidValue, length)
	}
	b, err := r.ReadSlice(4)
	if err != nil {
		return Date{}, err
	}
	return Date{Year: b[0], Month: b[1], Day: b[2], Weekday: b[3]}, nil
}

func (d Date) String() string {
	if d.Year == DateWildcard && d.Month == DateWildcard && d.Day == DateWildcard {
		return "any-date"
	}
	return fmt.Sprintf("%04d-%02d-%02d", d.CalendarYear(), d.Month, d.Day)
}

// Time represents the BACnet Time value with hundredths-of-a-second
// resolution. Any field may hold DateWildcard.
type Time struct {
	Hour       uint8
	Minute     uint8
	Second     uint8
	Hundredths uint8
}

// TimeOf converts a time.Time to a BACnet Time
func TimeOf(t time.Time) Time {
	return Time{
		Hour:       uint8(t.Hour()),
		Minute:     uint8(t.Minute()),
		Second:     uint8(t.Second()),
		Hundredths: uint8(t.Nanosecond() / 10_000_000),
	}
}

func (Time) dataValue() {}

func (t Time) Encode(w *Writer) error {
	if err := applicationTag(TagTime, 4).Encode(w); err != nil {
		return err
	}
	return w.Append(t.Hour, t.Minute, t.Second, t.Hundredths)
}

func decodeTime(length uint32, r *Reader) (Time, error) {
	if length != 4 {
		return Time{}, fmt.Errorf("%w: time length %d", ErrInvalidValue, length)
	}
	b, err := r.ReadSlice(4)
	if err != nil {
		return Time{}, err
	}
	return Time{Hour: b[0], Minute: b[1], Second: b[2], Hundredths: b[3]}, nil
}

func (t Time) String() string {
	return fmt.Sprintf("%02d:%02d:%02d.%02d", t.Hour, t.Minute, t.Second, t.Hundredths)
}

// CharacterString represents a BACnet character string. Only the UTF-8
// character set is supported. Value is a view into the decoded buffer and
// is only valid while that buffer is.
type CharacterString struct {
	Value []byte
}

// NewCharacterString creates a CharacterString from a Go string
func NewCharacterString(s string) CharacterString {
	return CharacterString{Value: []byte(s)}
}

func (CharacterString) dataValue() {}

func (c CharacterString) Encode(w *Writer) error {
	if err := applicationTag(TagCharacterString, uint32(len(c.Value))+1).Encode(w); err != nil {
		return err
	}
	// Character set selector, 0 = UTF-8.
	if err := w.Push(0); err != nil {
		return err
	}
	return w.Append(c.Value...)
}

func decodeCharacterString(length uint32, r *Reader) (CharacterString, error) {
	if length < 1 {
		return CharacterString{}, fmt.Errorf("%w: empty character string header", ErrInvalidValue)
	}
	charset, err := r.ReadByte()
	if err != nil {
		return CharacterString{}, err
	}
	if charset != 0 {
		return CharacterString{}, fmt.Errorf("%w: unsupported character set %d", ErrInvalidValue, charset)
	}
	b, err := r.ReadSlice(int(length) - 1)
	if err != nil {
		return CharacterString{}, err
	}
	if !utf8.Valid(b) {
		return CharacterString{}, fmt.Errorf("%w: character string is not valid UTF-8", ErrInvalidValue)
	}
	return CharacterString{Value: b}, nil
}

func (c CharacterString) String() string { return string(c.Value) }

// EnumeratedKind discriminates the interpretation of an Enumerated value
type EnumeratedKind uint8

const (
	EnumUnknown EnumeratedKind = iota
	EnumUnits
	EnumBinary
	EnumObjectType
	EnumEventState
	EnumNotifyType
	EnumLoggingType
)

// Enumerated represents a BACnet Enumerated value. Its interpretation
// depends on the property and object type it was read for; Kind records the
// interpretation chosen during decode. Raw always holds the wire value.
type Enumerated struct {
	Kind EnumeratedKind
	Raw  uint32
}

// NewUnitsValue creates an Enumerated carrying engineering units
func NewUnitsValue(u EngineeringUnits) Enumerated {
	return Enumerated{Kind: EnumUnits, Raw: uint32(u)}
}

// NewBinaryValue creates an Enumerated carrying a binary present value
func NewBinaryValue(b Binary) Enumerated {
	return Enumerated{Kind: EnumBinary, Raw: uint32(b)}
}

// NewEventStateValue creates an Enumerated carrying an event state
func NewEventStateValue(e EventState) Enumerated {
	return Enumerated{Kind: EnumEventState, Raw: uint32(e)}
}

// NewNotifyTypeValue creates an Enumerated carrying a notify type
func NewNotifyTypeValue(n NotifyType) Enumerated {
	return Enumerated{Kind: EnumNotifyType, Raw: uint32(n)}
}

// NewLoggingTypeValue creates an Enumerated carrying a logging type
func NewLoggingTypeValue(l LoggingType) Enumerated {
	return Enumerated{Kind: EnumLoggingType, Raw: uint32(l)}
}

// NewObjectTypeValue creates an Enumerated carrying an object type
func NewObjectTypeValue(t ObjectType) Enumerated {
	return Enumerated{Kind: EnumObjectType, Raw: uint32(t)}
}

// Units returns the value as engineering units
func (e Enumerated) Units() (EngineeringUnits, bool) {
	return EngineeringUnits(e.Raw), e.Kind == EnumUnits
}

// Binary returns the value as a binary present value
func (e Enumerated) Binary() (Binary, bool) {
	return Binary(e.Raw), e.Kind == EnumBinary
}

// ObjectType returns the value as an object type
func (e Enumerated) ObjectType() (ObjectType, bool) {
	return ObjectType(e.Raw), e.Kind == EnumObjectType
}

// EventState returns the value as an event state
func (e Enumerated) EventState() (EventState, bool) {
	return EventState(e.Raw), e.Kind == EnumEventState
}

// NotifyType returns the value as a notify type
func (e Enumerated) NotifyType() (NotifyType, bool) {
	return NotifyType(e.Raw), e.Kind == EnumNotifyType
}

// LoggingType returns the value as a logging type
func (e Enumerated) LoggingType() (LoggingType, bool) {
	return LoggingType(e.Raw), e.Kind == EnumLoggingType
}

func (Enumerated) dataValue() {}

func (e Enumerated) Encode(w *Writer) error {
	return encodeAppUnsigned(w, TagEnumerated, e.Raw)
}

func (e Enumerated) String() string {
	switch e.Kind {
	case EnumUnits:
		return EngineeringUnits(e.Raw).String()
	case EnumBinary:
		return Binary(e.Raw).String()
	case EnumObjectType:
		return ObjectType(e.Raw).String()
	case EnumEventState:
		return EventState(e.Raw).String()
	case EnumNotifyType:
		return NotifyType(e.Raw).String()
	case EnumLoggingType:
		return LoggingType(e.Raw).String()
	}
	return fmt.Sprintf("enumerated(%d)", e.Raw)
}

func decodeEnumerated(length uint32, objectID ObjectIdentifier, propertyID PropertyIdentifier, r *Reader) (Enumerated, error) {
	raw, err := decodeUnsigned(length, r)
	if err != nil {
		return Enumerated{}, err
	}
	switch propertyID {
	case PropertyPresentValue:
		switch objectID.Type {
		case ObjectTypeBinaryInput, ObjectTypeBinaryOutput, ObjectTypeBinaryValue:
			// The binary set is closed; anything else is a malformed peer.
			if raw > uint32(BinaryActive) {
				return Enumerated{}, fmt.Errorf("%w: binary present-value %d", ErrInvalidValue, raw)
			}
			return Enumerated{Kind: EnumBinary, Raw: raw}, nil
		}
	case PropertyUnits:
		if raw <= uint32(maxKnownEngineeringUnits) {
			return Enumerated{Kind: EnumUnits, Raw: raw}, nil
		}
	case PropertyObjectType:
		if raw <= uint32(maxKnownObjectType) {
			return Enumerated{Kind: EnumObjectType, Raw: raw}, nil
		}
	case PropertyEventState:
		if raw <= uint32(maxKnownEventState) {
			return Enumerated{Kind: EnumEventState, Raw: raw}, nil
		}
	case PropertyNotifyType:
		if raw <= uint32(maxKnownNotifyType) {
			return Enumerated{Kind: EnumNotifyType, Raw: raw}, nil
		}
	case PropertyLoggingType:
		if raw <= uint32(maxKnownLoggingType) {
			return Enumerated{Kind: EnumLoggingType, Raw: raw}, nil
		}
	}
	return Enumerated{Kind: EnumUnknown, Raw: raw}, nil
}

// BitStringKind discriminates the interpretation of a BitString value
type BitStringKind uint8

const (
	BitStringCustom BitStringKind = iota
	BitStringStatusFlags
	BitStringLogBufferResultFlags
)

// CustomBitStream is a raw BACnet bit string. Bits is a view into the
// decoded buffer; UnusedBits counts the trailing pad bits of the last octet.
type CustomBitStream struct {
	UnusedBits uint8
	Bits       []byte
}

// BitString represents a BACnet BitString value. Well-known flag sets are
// decoded into their typed forms; any other bit string is kept raw in
// Custom.
type BitString struct {
	Kind   BitStringKind
	Status StatusFlags
	Result LogBufferResultFlags
	Custom CustomBitStream
}

// NewStatusFlagsValue creates a BitString carrying status flags
func NewStatusFlagsValue(s StatusFlags) BitString {
	return BitString{Kind: BitStringStatusFlags, Status: s}
}

// NewLogBufferResultFlagsValue creates a BitString carrying log buffer
// result flags
func NewLogBufferResultFlagsValue(f LogBufferResultFlags) BitString {
	return BitString{Kind: BitStringLogBufferResultFlags, Result: f}
}

// NewCustomBitString creates a BitString carrying raw bits
func NewCustomBitString(unusedBits uint8, bits []byte) BitString {
	return BitString{Kind: BitStringCustom, Custom: CustomBitStream{UnusedBits: unusedBits, Bits: bits}}
}

func (BitString) dataValue() {}

func (b BitString) Encode(w *Writer) error {
	switch b.Kind {
	case BitStringStatusFlags:
		if err := applicationTag(TagBitString, 2).Encode(w); err != nil {
			return err
		}
		return w.Append(4, b.Status.encodeByte())
	case BitStringLogBufferResultFlags:
		if err := applicationTag(TagBitString, 2).Encode(w); err != nil {
			return err
		}
		return w.Append(5, b.Result.encodeByte())
	}
	if err := applicationTag(TagBitString, uint32(len(b.Custom.Bits))+1).Encode(w); err != nil {
		return err
	}
	if err := w.Push(b.Custom.UnusedBits); err != nil {
		return err
	}
	return w.Append(b.Custom.Bits...)
}

func (b BitString) String() string {
	switch b.Kind {
	case BitStringStatusFlags:
		return b.Status.String()
	case BitStringLogBufferResultFlags:
		return b.Result.String()
	}
	return fmt.Sprintf("bit-string(%d bits)", len(b.Custom.Bits)*8-int(b.Custom.UnusedBits))
}

func decodeBitString(length uint32, propertyID PropertyIdentifier, r *Reader) (BitString, error) {
	if length < 1 {
		return BitString{}, fmt.Errorf("%w: empty bit string header", ErrInvalidValue)
	}
	switch propertyID {
	case PropertyStatusFlags:
		b, err := r.ReadSlice(int(length))
		if err != nil {
			return BitString{}, err
		}
		if length != 2 || b[0] != 4 || b[1]&0xF0 != 0 {
			return BitString{}, fmt.Errorf("%w: malformed status-flags bit string", ErrInvalidValue)
		}
		return BitString{Kind: BitStringStatusFlags, Status: DecodeStatusFlags(b[1])}, nil
	case PropertyLogBuffer:
		b, err := r.ReadSlice(int(length))
		if err != nil {
			return BitString{}, err
		}
		if length != 2 || b[0] != 5 || b[1]&0xF8 != 0 {
			return BitString{}, fmt.Errorf("%w: malformed log buffer result flags", ErrInvalidValue)
		}
		return BitString{Kind: BitStringLogBufferResultFlags, Result: DecodeLogBufferResultFlags(b[1])}, nil
	}
	unused, err := r.ReadByte()
	if err != nil {
		return BitString{}, err
	}
	if unused > 7 {
		return BitString{}, fmt.Errorf("%w: %d unused bits in bit string", ErrInvalidValue, unused)
	}
	bits, err := r.ReadSlice(int(length) - 1)
	if err != nil {
		return BitString{}, err
	}
	return BitString{Kind: BitStringCustom, Custom: CustomBitStream{UnusedBits: unused, Bits: bits}}, nil
}

// ObjectIdentifier as an application data value.

func (ObjectIdentifier) dataValue() {}

// Encode appends the object identifier with its application tag to w
func (o ObjectIdentifier) Encode(w *Writer) error {
	if err := applicationTag(TagObjectID, objectIDLen).Encode(w); err != nil {
		return err
	}
	return o.encodeValue(w)
}

// TimeValue pairs a time of day with the value a schedule takes from that
// time on.
type TimeValue struct {
	Time  Time
	Value ApplicationDataValue
}

// WeeklySchedule represents the weekly-schedule property of a schedule
// object, one list of time/value pairs per day, Monday first.
type WeeklySchedule struct {
	Days [7][]TimeValue
}

func (WeeklySchedule) dataValue() {}

// Encode is not supported for weekly schedules.
func (WeeklySchedule) Encode(w *Writer) error {
	return fmt.Errorf("%w: weekly schedule encoding", ErrUnimplemented)
}

func (s WeeklySchedule) String() string {
	n := 0
	for _, day := range s.Days {
		n += len(day)
	}
	return fmt.Sprintf("weekly-schedule(%d entries)", n)
}

func decodeWeeklySchedule(objectID ObjectIdentifier, r *Reader) (WeeklySchedule, error) {
	var s WeeklySchedule
	for day := 0; day < 7; day++ {
		if err := expectOpeningTag(r, 0); err != nil {
			return WeeklySchedule{}, err
		}
		for {
			t, err := DecodeTag(r)
			if err != nil {
				return WeeklySchedule{}, err
			}
			if t.Closing && t.Number == 0 {
				break
			}
			if t.Class != TagClassApplication || t.Number != uint8(TagTime) {
				return WeeklySchedule{}, fmt.Errorf("%w: expected time in schedule entry", ErrInvalidTag)
			}
			tod, err := decodeTime(t.Value, r)
			if err != nil {
				return WeeklySchedule{}, err
			}
			vt, err := DecodeTag(r)
			if err != nil {
				return WeeklySchedule{}, err
			}
			value, err := decodeDataValue(vt, objectID, PropertyWeeklySchedule, r)
			if err != nil {
				return WeeklySchedule{}, err
			}
			s.Days[day] = append(s.Days[day], TimeValue{Time: tod, Value: value})
		}
	}
	return s, nil
}

// DecodeApplicationDataValue decodes one application-tagged value from r.
// The object and property the value was read for steer the interpretation
// of Enumerated and BitString content, and of the weekly-schedule list
// form. Decoded strings and bit streams alias the reader's buffer.
func DecodeApplicationDataValue(objectID ObjectIdentifier, propertyID PropertyIdentifier, r *Reader) (ApplicationDataValue, error) {
	if propertyID == PropertyWeeklySchedule {
		return decodeWeeklySchedule(objectID, r)
	}
	t, err := DecodeTag(r)
	if err != nil {
		return nil, err
	}
	return decodeDataValue(t, objectID, propertyID, r)
}

func decodeDataValue(t Tag, objectID ObjectIdentifier, propertyID PropertyIdentifier, r *Reader) (ApplicationDataValue, error) {
	if t.Class != TagClassApplication {
		return nil, fmt.Errorf("%w: expected application tag, got context tag %d", ErrInvalidTag, t.Number)
	}
	switch ApplicationTag(t.Number) {
	case TagNull:
		if t.Value != 0 {
			return nil, fmt.Errorf("%w: null with length %d", ErrInvalidValue, t.Value)
		}
		return Null{}, nil
	case TagBoolean:
		if t.Value > 1 {
			return nil, fmt.Errorf("%w: boolean value %d", ErrInvalidValue, t.Value)
		}
		return Boolean(t.Value == 1), nil
	case TagUnsignedInt:
		v, err := decodeUnsigned(t.Value, r)
		if err != nil {
			return nil, err
		}
		return UnsignedInteger(v), nil
	case TagSignedInt:
		return nil, fmt.Errorf("%w: signed integer values", ErrUnimplemented)
	case TagReal:
		if t.Value != 4 {
			return nil, fmt.Errorf("%w: real length %d", ErrInvalidValue, t.Value)
		}
		v, err := decodeReal(r)
		if err != nil {
			return nil, err
		}
		return Real(v), nil
	case TagDouble:
		if t.Value != 8 {
			return nil, fmt.Errorf("%w: double length %d", ErrInvalidValue, t.Value)
		}
		v, err := decodeDouble(r)
		if err != nil {
			return nil, err
		}
		return Double(v), nil
	case TagOctetString:
		return nil, fmt.Errorf("%w: octet string values", ErrUnimplemented)
	case TagCharacterString:
		return decodeCharacterString(t.Value, r)
	case TagBitString:
		return decodeBitString(t.Value, propertyID, r)
	case TagEnumerated:
		return decodeEnumerated(t.Value, objectID, propertyID, r)
	case TagDate:
		return decodeDate(t.Value, r)
	case TagTime:
		return decodeTime(t.Value, r)
	case TagObjectID:
		return decodeObjectIdentifier(t.Value, r)
	}
	return nil, fmt.Errorf("%w: application tag %d", ErrInvalidValue, t.Number)
}
