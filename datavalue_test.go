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
	"time"
)

func encodeValue(t *testing.T, v ApplicationDataValue) []byte {
	t.Helper()
	w := NewWriter(make([]byte, 64))
	if err := v.Encode(w); err != nil {
		t.Fatalf("Encode(%v) error = %v", v, err)
	}
	return w.Bytes()
}

func decodeValue(t *testing.T, objectID ObjectIdentifier, propertyID PropertyIdentifier, data []byte) ApplicationDataValue {
	t.Helper()
	v, err := DecodeApplicationDataValue(objectID, propertyID, NewReader(data))
	if err != nil {
		t.Fatalf("DecodeApplicationDataValue(% X) error = %v", data, err)
	}
	return v
}

var analogInput = NewObjectIdentifier(ObjectTypeAnalogInput, 1)

func TestDataValueEncode(t *testing.T) {
	tests := map[string]struct {
		value ApplicationDataValue
		want  []byte
	}{
		"null":          {Null{}, []byte{0x00}},
		"bool-true":     {Boolean(true), []byte{0x11}},
		"bool-false":    {Boolean(false), []byte{0x10}},
		"unsigned-0":    {UnsignedInteger(0), []byte{0x21, 0x00}},
		"unsigned-486":  {UnsignedInteger(486), []byte{0x22, 0x01, 0xE6}},
		"real-72.5":     {Real(72.5), []byte{0x44, 0x42, 0x91, 0x00, 0x00}},
		"date":          {NewDate(2024, 1, 15, 1), []byte{0xA4, 0x7C, 0x01, 0x0F, 0x01}},
		"time":          {Time{14, 30, 45, 50}, []byte{0xB4, 0x0E, 0x1E, 0x2D, 0x32}},
		"charstring":    {NewCharacterString("AB"), []byte{0x73, 0x00, 0x41, 0x42}},
		"charstring-5":  {NewCharacterString("Temp"), []byte{0x75, 0x05, 0x00, 0x54, 0x65, 0x6D, 0x70}},
		"enum-units":    {NewUnitsValue(UnitsDegreesCelsius), []byte{0x91, 0x3E}},
		"objectid":      {NewObjectIdentifier(ObjectTypeDevice, 79079), []byte{0xC4, 0x02, 0x01, 0x34, 0xE7}},
		"status-flags":  {NewStatusFlagsValue(StatusFlags{InAlarm: true, Fault: true}), []byte{0x82, 0x04, 0x0C}},
		"custom-bits":   {NewCustomBitString(3, []byte{0xA8}), []byte{0x82, 0x03, 0xA8}},
	}
	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			if got := encodeValue(t, tt.value); !bytes.Equal(got, tt.want) {
				t.Errorf("Encode() = % X, want % X", got, tt.want)
			}
		})
	}
}

func TestDataValueRoundTrip(t *testing.T) {
	values := []ApplicationDataValue{
		Null{},
		Boolean(true),
		UnsignedInteger(305419896),
		Real(-40.25),
		Double(98765.4321),
		NewDate(2024, 1, 15, 1),
		Time{23, 59, 59, 99},
		NewObjectIdentifier(ObjectTypeAnalogValue, 42),
	}
	for _, v := range values {
		data := encodeValue(t, v)
		got := decodeValue(t, analogInput, PropertyDescription, data)
		if got != v {
			t.Errorf("round trip of %v = %v", v, got)
		}
	}
}

func TestDateOf(t *testing.T) {
	// 2024-01-15 is a Monday
	d := DateOf(time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC))
	if d != (Date{Year: 124, Month: 1, Day: 15, Weekday: 1}) {
		t.Errorf("DateOf(monday) = %+v", d)
	}
	// 2024-01-21 is a Sunday
	d = DateOf(time.Date(2024, 1, 21, 0, 0, 0, 0, time.UTC))
	if d.Weekday != 7 {
		t.Errorf("DateOf(sunday).Weekday = %d, want 7", d.Weekday)
	}
	if d.CalendarYear() != 2024 {
		t.Errorf("CalendarYear() = %d, want 2024", d.CalendarYear())
	}
}

func TestDateWildcards(t *testing.T) {
	data := []byte{0xA4, 0xFF, 0xFF, 0xFF, 0xFF}
	v := decodeValue(t, analogInput, PropertyLocalDate, data)
	d, ok := v.(Date)
	if !ok {
		t.Fatalf("decoded %T, want Date", v)
	}
	if d.Year != DateWildcard || d.Month != DateWildcard || d.Day != DateWildcard || d.Weekday != DateWildcard {
		t.Errorf("wildcard date = %+v", d)
	}
	if d.CalendarYear() != 0 {
		t.Errorf("wildcard CalendarYear() = %d, want 0", d.CalendarYear())
	}
	if d.String() != "any-date" {
		t.Errorf("wildcard String() = %q", d.String())
	}
}

func TestDateYearRange(t *testing.T) {
	tests := map[string]struct {
		calendar uint16
		stored   uint8
	}{
		"epoch": {1900, 0},
		"max":   {2154, 254},
	}
	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			d := NewDate(tt.calendar, 6, 1, 1)
			if d.Year != tt.stored {
				t.Errorf("Year = %d, want %d", d.Year, tt.stored)
			}
			if got := d.CalendarYear(); got != tt.calendar {
				t.Errorf("CalendarYear() = %d, want %d", got, tt.calendar)
			}
		})
	}

	// Stored byte 255 is the wildcard, so 2155 is not representable.
	if d := NewDate(2155, 6, 1, 1); d.Year != DateWildcard || d.CalendarYear() != 0 {
		t.Errorf("NewDate(2155) = %+v, want wildcard year", d)
	}
}

func TestTimeOf(t *testing.T) {
	tm := TimeOf(time.Date(2024, 1, 15, 14, 30, 45, 500_000_000, time.UTC))
	if tm != (Time{14, 30, 45, 50}) {
		t.Errorf("TimeOf() = %+v", tm)
	}
}

func TestCharacterStringDecode(t *testing.T) {
	v := decodeValue(t, analogInput, PropertyObjectName, []byte{0x75, 0x05, 0x00, 0x54, 0x65, 0x6D, 0x70})
	cs, ok := v.(CharacterString)
	if !ok {
		t.Fatalf("decoded %T, want CharacterString", v)
	}
	if cs.String() != "Temp" {
		t.Errorf("String() = %q, want %q", cs.String(), "Temp")
	}
}

func TestCharacterStringErrors(t *testing.T) {
	tests := map[string][]byte{
		"non-utf8-charset": {0x73, 0x01, 0x41, 0x42}, // UCS-2 selector
		"invalid-utf8":     {0x73, 0x00, 0xFF, 0xFE},
	}
	for name, data := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := DecodeApplicationDataValue(analogInput, PropertyObjectName, NewReader(data))
			if !errors.Is(err, ErrInvalidValue) {
				t.Errorf("error = %v, want %v", err, ErrInvalidValue)
			}
		})
	}
}

func TestEnumeratedDispatch(t *testing.T) {
	binaryInput := NewObjectIdentifier(ObjectTypeBinaryInput, 2)

	t.Run("binary-present-value", func(t *testing.T) {
		v := decodeValue(t, binaryInput, PropertyPresentValue, []byte{0x91, 0x01})
		e := v.(Enumerated)
		b, ok := e.Binary()
		if !ok || b != BinaryActive {
			t.Errorf("Binary() = %v, %v", b, ok)
		}
	})

	t.Run("binary-out-of-range", func(t *testing.T) {
		_, err := DecodeApplicationDataValue(binaryInput, PropertyPresentValue, NewReader([]byte{0x91, 0x02}))
		if !errors.Is(err, ErrInvalidValue) {
			t.Errorf("error = %v, want %v", err, ErrInvalidValue)
		}
	})

	t.Run("units", func(t *testing.T) {
		v := decodeValue(t, analogInput, PropertyUnits, []byte{0x91, 0x3E})
		u, ok := v.(Enumerated).Units()
		if !ok || u != UnitsDegreesCelsius {
			t.Errorf("Units() = %v, %v", u, ok)
		}
	})

	t.Run("units-unknown-passthrough", func(t *testing.T) {
		v := decodeValue(t, analogInput, PropertyUnits, []byte{0x91, 0xFE})
		e := v.(Enumerated)
		if e.Kind != EnumUnknown || e.Raw != 254 {
			t.Errorf("decoded %+v, want unknown raw 254", e)
		}
	})

	t.Run("event-state", func(t *testing.T) {
		v := decodeValue(t, analogInput, PropertyEventState, []byte{0x91, 0x00})
		s, ok := v.(Enumerated).EventState()
		if !ok || s != EventStateNormal {
			t.Errorf("EventState() = %v, %v", s, ok)
		}
	})

	t.Run("object-type", func(t *testing.T) {
		v := decodeValue(t, analogInput, PropertyObjectType, []byte{0x91, 0x08})
		ot, ok := v.(Enumerated).ObjectType()
		if !ok || ot != ObjectTypeDevice {
			t.Errorf("ObjectType() = %v, %v", ot, ok)
		}
	})
}

func TestBitStringDecode(t *testing.T) {
	t.Run("status-flags", func(t *testing.T) {
		v := decodeValue(t, analogInput, PropertyStatusFlags, []byte{0x82, 0x04, 0x0C})
		bs := v.(BitString)
		if bs.Kind != BitStringStatusFlags {
			t.Fatalf("Kind = %v", bs.Kind)
		}
		want := StatusFlags{InAlarm: true, Fault: true}
		if bs.Status != want {
			t.Errorf("Status = %+v, want %+v", bs.Status, want)
		}
	})

	t.Run("status-flags-bad-unused", func(t *testing.T) {
		_, err := DecodeApplicationDataValue(analogInput, PropertyStatusFlags, NewReader([]byte{0x82, 0x05, 0x0C}))
		if !errors.Is(err, ErrInvalidValue) {
			t.Errorf("error = %v, want %v", err, ErrInvalidValue)
		}
	})

	t.Run("custom", func(t *testing.T) {
		v := decodeValue(t, analogInput, PropertyProtocolServicesSupported, []byte{0x83, 0x06, 0xDE, 0x40})
		bs := v.(BitString)
		if bs.Kind != BitStringCustom {
			t.Fatalf("Kind = %v", bs.Kind)
		}
		if bs.Custom.UnusedBits != 6 || !bytes.Equal(bs.Custom.Bits, []byte{0xDE, 0x40}) {
			t.Errorf("Custom = %+v", bs.Custom)
		}
	})

	t.Run("custom-too-many-unused", func(t *testing.T) {
		_, err := DecodeApplicationDataValue(analogInput, PropertyProtocolServicesSupported, NewReader([]byte{0x82, 0x08, 0x00}))
		if !errors.Is(err, ErrInvalidValue) {
			t.Errorf("error = %v, want %v", err, ErrInvalidValue)
		}
	})
}

func TestDecodeDataValueErrors(t *testing.T) {
	tests := map[string]struct {
		data    []byte
		wantErr error
	}{
		"null-nonzero-length":  {[]byte{0x01, 0x00}, ErrInvalidValue},
		"boolean-bad-value":    {[]byte{0x12}, ErrInvalidValue},
		"real-bad-length":      {[]byte{0x43, 0x00, 0x00, 0x00}, ErrInvalidValue},
		"double-bad-length":    {[]byte{0x54, 0x00, 0x00, 0x00, 0x00}, ErrInvalidValue},
		"date-bad-length":      {[]byte{0xA3, 0x7C, 0x01, 0x0F}, ErrInvalidValue},
		"signed-unimplemented": {[]byte{0x31, 0x05}, ErrUnimplemented},
		"octet-unimplemented":  {[]byte{0x61, 0x41}, ErrUnimplemented},
		"truncated-unsigned":   {[]byte{0x22, 0x01}, ErrTruncated},
	}
	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := DecodeApplicationDataValue(analogInput, PropertyDescription, NewReader(tt.data))
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestWeeklyScheduleDecode(t *testing.T) {
	w := NewWriter(make([]byte, 256))
	for day := 0; day < 7; day++ {
		if err := openingTag(0).Encode(w); err != nil {
			t.Fatal(err)
		}
		if day == 0 {
			// One entry on Monday: 08:00 -> 21.5
			if err := (Time{8, 0, 0, 0}).Encode(w); err != nil {
				t.Fatal(err)
			}
			if err := Real(21.5).Encode(w); err != nil {
				t.Fatal(err)
			}
		}
		if err := closingTag(0).Encode(w); err != nil {
			t.Fatal(err)
		}
	}

	schedule := NewObjectIdentifier(ObjectTypeSchedule, 1)
	v, err := DecodeApplicationDataValue(schedule, PropertyWeeklySchedule, NewReader(w.Bytes()))
	if err != nil {
		t.Fatalf("decode weekly schedule: %v", err)
	}
	ws, ok := v.(WeeklySchedule)
	if !ok {
		t.Fatalf("decoded %T, want WeeklySchedule", v)
	}
	if len(ws.Days[0]) != 1 {
		t.Fatalf("monday has %d entries, want 1", len(ws.Days[0]))
	}
	entry := ws.Days[0][0]
	if entry.Time != (Time{8, 0, 0, 0}) {
		t.Errorf("entry time = %+v", entry.Time)
	}
	if entry.Value != Real(21.5) {
		t.Errorf("entry value = %v", entry.Value)
	}
	for day := 1; day < 7; day++ {
		if len(ws.Days[day]) != 0 {
			t.Errorf("day %d has %d entries, want 0", day, len(ws.Days[day]))
		}
	}
}

func TestWeeklyScheduleEncodeUnimplemented(t *testing.T) {
	w := NewWriter(make([]byte, 16))
	if err := (WeeklySchedule{}).Encode(w); !errors.Is(err, ErrUnimplemented) {
		t.Errorf("Encode() error = %v, want %v", err, ErrUnimplemented)
	}
}
