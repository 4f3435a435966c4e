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

func encodeAPDU(t *testing.T, pdu ApplicationPDU) []byte {
	t.Helper()
	w := NewWriter(make([]byte, MaxAPDULength))
	if err := pdu.Encode(w); err != nil {
		t.Fatalf("Encode() error = %v", err)
	}
	return w.Bytes()
}

func decodeAPDU(t *testing.T, data []byte) ApplicationPDU {
	t.Helper()
	pdu, err := DecodeAPDU(NewReader(data))
	if err != nil {
		t.Fatalf("DecodeAPDU(% X) error = %v", data, err)
	}
	return pdu
}

func TestWhoIsRoundTrip(t *testing.T) {
	t.Run("unbounded", func(t *testing.T) {
		data := encodeAPDU(t, &UnconfirmedRequest{Service: &WhoIs{}})
		if !bytes.Equal(data, []byte{0x10, 0x08}) {
			t.Errorf("encoded = % X", data)
		}
		pdu := decodeAPDU(t, data)
		whois := pdu.(*UnconfirmedRequest).Service.(*WhoIs)
		if whois.Low != nil || whois.High != nil {
			t.Errorf("limits = %v, %v, want nil", whois.Low, whois.High)
		}
	})

	t.Run("range", func(t *testing.T) {
		data := encodeAPDU(t, &UnconfirmedRequest{Service: NewWhoIsRange(1, 50000)})
		pdu := decodeAPDU(t, data)
		whois := pdu.(*UnconfirmedRequest).Service.(*WhoIs)
		if whois.Low == nil || *whois.Low != 1 {
			t.Errorf("Low = %v, want 1", whois.Low)
		}
		if whois.High == nil || *whois.High != 50000 {
			t.Errorf("High = %v, want 50000", whois.High)
		}
	})

	t.Run("inverted-range", func(t *testing.T) {
		w := NewWriter(make([]byte, 16))
		if err := encodeContextUnsigned(w, 0, 100); err != nil {
			t.Fatal(err)
		}
		if err := encodeContextUnsigned(w, 1, 1); err != nil {
			t.Fatal(err)
		}
		data := append([]byte{0x10, 0x08}, w.Bytes()...)
		if _, err := DecodeAPDU(NewReader(data)); !errors.Is(err, ErrInvalidValue) {
			t.Errorf("error = %v, want %v", err, ErrInvalidValue)
		}
	})
}

func TestIAmRoundTrip(t *testing.T) {
	iam := &IAm{
		DeviceID:     NewObjectIdentifier(ObjectTypeDevice, 79079),
		MaxAPDU:      1476,
		Segmentation: SegmentationNone,
		VendorID:     260,
	}
	data := encodeAPDU(t, &UnconfirmedRequest{Service: iam})
	pdu := decodeAPDU(t, data)
	got := pdu.(*UnconfirmedRequest).Service.(*IAm)
	if *got != *iam {
		t.Errorf("round trip = %+v, want %+v", got, iam)
	}
}

func TestIAmDecodeErrors(t *testing.T) {
	encode := func(oid ObjectIdentifier, seg uint32, vendor uint32) []byte {
		w := NewWriter(make([]byte, 32))
		if err := oid.Encode(w); err != nil {
			t.Fatal(err)
		}
		if err := encodeAppUnsigned(w, TagUnsignedInt, 480); err != nil {
			t.Fatal(err)
		}
		if err := encodeAppUnsigned(w, TagEnumerated, seg); err != nil {
			t.Fatal(err)
		}
		if err := encodeAppUnsigned(w, TagUnsignedInt, vendor); err != nil {
			t.Fatal(err)
		}
		return append([]byte{0x10, 0x00}, w.Bytes()...)
	}

	device := NewObjectIdentifier(ObjectTypeDevice, 1)
	tests := map[string][]byte{
		"wrong-object-type": encode(NewObjectIdentifier(ObjectTypeAnalogInput, 1), 0, 15),
		"bad-segmentation":  encode(device, 4, 15),
		"vendor-overflow":   encode(device, 0, 0x10000),
	}
	for name, data := range tests {
		t.Run(name, func(t *testing.T) {
			if _, err := DecodeAPDU(NewReader(data)); !errors.Is(err, ErrInvalidValue) {
				t.Errorf("error = %v, want %v", err, ErrInvalidValue)
			}
		})
	}
}

func TestTimeSynchronizationRoundTrip(t *testing.T) {
	local := time.Date(2024, 1, 15, 14, 30, 45, 500_000_000, time.Local)

	t.Run("local", func(t *testing.T) {
		sync := NewTimeSynchronization(local, false)
		data := encodeAPDU(t, &UnconfirmedRequest{Service: sync})
		if data[1] != byte(ServiceTimeSynchronization) {
			t.Errorf("service choice = %d", data[1])
		}
		got := decodeAPDU(t, data).(*UnconfirmedRequest).Service.(*TimeSynchronization)
		if got.Date != (Date{Year: 124, Month: 1, Day: 15, Weekday: 1}) {
			t.Errorf("Date = %+v", got.Date)
		}
		if got.Time != (Time{14, 30, 45, 50}) {
			t.Errorf("Time = %+v", got.Time)
		}
		if got.UTC {
			t.Error("UTC = true, want false")
		}
	})

	t.Run("utc", func(t *testing.T) {
		sync := NewTimeSynchronization(local, true)
		data := encodeAPDU(t, &UnconfirmedRequest{Service: sync})
		if data[1] != byte(ServiceUTCTimeSynchronization) {
			t.Errorf("service choice = %d", data[1])
		}
		got := decodeAPDU(t, data).(*UnconfirmedRequest).Service.(*TimeSynchronization)
		if !got.UTC {
			t.Error("UTC = false, want true")
		}
		utc := local.UTC()
		if got.Date.CalendarYear() != uint16(utc.Year()) || got.Time.Hour != uint8(utc.Hour()) {
			t.Errorf("decoded %v %v, want UTC equivalent of %v", got.Date, got.Time, local)
		}
	})
}

func TestReadPropertyRoundTrip(t *testing.T) {
	index := uint32(3)
	req := &ReadPropertyRequest{
		ObjectID:   NewObjectIdentifier(ObjectTypeDevice, 79079),
		PropertyID: PropertyObjectList,
		ArrayIndex: &index,
	}
	data := encodeAPDU(t, &ConfirmedRequest{InvokeID: 7, MaxAPDU: MaxAPDU1476, Service: req})
	pdu := decodeAPDU(t, data)

	confirmed := pdu.(*ConfirmedRequest)
	if confirmed.InvokeID != 7 {
		t.Errorf("InvokeID = %d, want 7", confirmed.InvokeID)
	}
	got := confirmed.Service.(*ReadPropertyRequest)
	if got.ObjectID != req.ObjectID || got.PropertyID != req.PropertyID {
		t.Errorf("round trip = %+v", got)
	}
	if got.ArrayIndex == nil || *got.ArrayIndex != 3 {
		t.Errorf("ArrayIndex = %v, want 3", got.ArrayIndex)
	}
}

func TestReadPropertyGoldenBytes(t *testing.T) {
	req := &ReadPropertyRequest{
		ObjectID:   NewObjectIdentifier(ObjectTypeAnalogInput, 5),
		PropertyID: PropertyPresentValue,
	}
	data := encodeAPDU(t, &ConfirmedRequest{InvokeID: 1, MaxAPDU: MaxAPDU1476, Service: req})
	want := []byte{
		0x00, 0x05, 0x01, 0x0C, // confirmed request, max APDU 1476, invoke 1, ReadProperty
		0x0C, 0x00, 0x00, 0x00, 0x05, // object-identifier analog-input:5
		0x19, 0x55, // property-identifier present-value
	}
	if !bytes.Equal(data, want) {
		t.Errorf("encoded = % X, want % X", data, want)
	}
}

func TestReadPropertyAckRoundTrip(t *testing.T) {
	ack := &ReadPropertyAck{
		ObjectID:   NewObjectIdentifier(ObjectTypeAnalogInput, 5),
		PropertyID: PropertyPresentValue,
		Value:      Real(72.5),
	}
	data := encodeAPDU(t, &ComplexAck{InvokeID: 1, Ack: ack})
	pdu := decodeAPDU(t, data)

	complexAck := pdu.(*ComplexAck)
	got := complexAck.Ack.(*ReadPropertyAck)
	if got.ObjectID != ack.ObjectID || got.PropertyID != ack.PropertyID {
		t.Errorf("round trip = %+v", got)
	}
	if got.Value != Real(72.5) {
		t.Errorf("Value = %v, want 72.5", got.Value)
	}
}

func TestReadPropertyAckMultipleValues(t *testing.T) {
	w := NewWriter(make([]byte, 64))
	if err := encodeContextObjectID(w, 0, NewObjectIdentifier(ObjectTypeDevice, 1)); err != nil {
		t.Fatal(err)
	}
	if err := encodeContextUnsigned(w, 1, uint32(PropertyObjectList)); err != nil {
		t.Fatal(err)
	}
	if err := openingTag(3).Encode(w); err != nil {
		t.Fatal(err)
	}
	// Two values where one is expected
	if err := (UnsignedInteger(1)).Encode(w); err != nil {
		t.Fatal(err)
	}
	if err := (UnsignedInteger(2)).Encode(w); err != nil {
		t.Fatal(err)
	}
	if err := closingTag(3).Encode(w); err != nil {
		t.Fatal(err)
	}

	data := append([]byte{0x30, 0x01, 0x0C}, w.Bytes()...)
	if _, err := DecodeAPDU(NewReader(data)); !errors.Is(err, ErrUnimplemented) {
		t.Errorf("error = %v, want %v", err, ErrUnimplemented)
	}
}

func TestWritePropertyRoundTrip(t *testing.T) {
	priority := uint8(8)
	req := &WritePropertyRequest{
		ObjectID:   NewObjectIdentifier(ObjectTypeAnalogOutput, 2),
		PropertyID: PropertyPresentValue,
		Value:      Real(75.5),
		Priority:   &priority,
	}
	data := encodeAPDU(t, &ConfirmedRequest{InvokeID: 42, MaxAPDU: MaxAPDU1476, Service: req})
	pdu := decodeAPDU(t, data)

	got := pdu.(*ConfirmedRequest).Service.(*WritePropertyRequest)
	if got.ObjectID != req.ObjectID || got.PropertyID != req.PropertyID {
		t.Errorf("round trip = %+v", got)
	}
	if got.Value != Real(75.5) {
		t.Errorf("Value = %v", got.Value)
	}
	if got.Priority == nil || *got.Priority != 8 {
		t.Errorf("Priority = %v, want 8", got.Priority)
	}
}

func TestWritePropertyPriorityRange(t *testing.T) {
	for _, priority := range []uint8{0, 17} {
		p := priority
		req := &WritePropertyRequest{
			ObjectID:   NewObjectIdentifier(ObjectTypeAnalogOutput, 2),
			PropertyID: PropertyPresentValue,
			Value:      Real(1),
			Priority:   &p,
		}
		w := NewWriter(make([]byte, 64))
		err := (&ConfirmedRequest{InvokeID: 1, MaxAPDU: MaxAPDU1476, Service: req}).Encode(w)
		if !errors.Is(err, ErrInvalidValue) {
			t.Errorf("priority %d: error = %v, want %v", priority, err, ErrInvalidValue)
		}
	}
}

func TestReadPropertyMultipleRoundTrip(t *testing.T) {
	req := &ReadPropertyMultipleRequest{
		Specs: []ReadAccessSpec{
			{
				ObjectID: NewObjectIdentifier(ObjectTypeDevice, 79079),
				Properties: []PropertyReference{
					{PropertyID: PropertyLocalDate},
					{PropertyID: PropertyLocalTime},
				},
			},
		},
	}
	data := encodeAPDU(t, &ConfirmedRequest{InvokeID: 9, MaxAPDU: MaxAPDU1476, Service: req})
	pdu := decodeAPDU(t, data)

	got := pdu.(*ConfirmedRequest).Service.(*ReadPropertyMultipleRequest)
	if len(got.Specs) != 1 {
		t.Fatalf("specs = %d, want 1", len(got.Specs))
	}
	spec := got.Specs[0]
	if spec.ObjectID != req.Specs[0].ObjectID {
		t.Errorf("ObjectID = %v", spec.ObjectID)
	}
	if len(spec.Properties) != 2 ||
		spec.Properties[0].PropertyID != PropertyLocalDate ||
		spec.Properties[1].PropertyID != PropertyLocalTime {
		t.Errorf("Properties = %+v", spec.Properties)
	}
}

func TestReadPropertyMultipleEmpty(t *testing.T) {
	w := NewWriter(make([]byte, 16))
	err := (&ConfirmedRequest{InvokeID: 1, MaxAPDU: MaxAPDU1476, Service: &ReadPropertyMultipleRequest{}}).Encode(w)
	if !errors.Is(err, ErrInvalidValue) {
		t.Errorf("empty specs error = %v, want %v", err, ErrInvalidValue)
	}
}

func TestReadPropertyMultipleAckRoundTrip(t *testing.T) {
	ack := &ReadPropertyMultipleAck{
		Objects: []ReadAccessResult{
			{
				ObjectID: NewObjectIdentifier(ObjectTypeDevice, 79079),
				Results: []PropertyResult{
					{PropertyID: PropertyLocalDate, Value: NewDate(2024, 1, 15, 1)},
					{PropertyID: PropertyLocalTime, Value: Time{14, 30, 45, 0}},
					{PropertyID: PropertyDescription, Error: &PropertyAccessError{
						Class: ErrorClassProperty,
						Code:  ErrorCodeUnknownProperty,
					}},
				},
			},
		},
	}
	data := encodeAPDU(t, &ComplexAck{InvokeID: 9, Ack: ack})
	pdu := decodeAPDU(t, data)

	got := pdu.(*ComplexAck).Ack.(*ReadPropertyMultipleAck)
	if len(got.Objects) != 1 {
		t.Fatalf("objects = %d, want 1", len(got.Objects))
	}
	results := got.Objects[0].Results
	if len(results) != 3 {
		t.Fatalf("results = %d, want 3", len(results))
	}
	if results[0].Value != (Date{Year: 124, Month: 1, Day: 15, Weekday: 1}) {
		t.Errorf("local-date = %v", results[0].Value)
	}
	if results[1].Value != (Time{14, 30, 45, 0}) {
		t.Errorf("local-time = %v", results[1].Value)
	}
	if results[2].Error == nil {
		t.Fatal("expected property access error")
	}
	if results[2].Error.Class != ErrorClassProperty || results[2].Error.Code != ErrorCodeUnknownProperty {
		t.Errorf("error arm = %+v", results[2].Error)
	}
}
