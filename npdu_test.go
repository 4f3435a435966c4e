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

func encodeNPDU(t *testing.T, n *NetworkPDU) []byte {
	t.Helper()
	w := NewWriter(make([]byte, MaxAPDULength))
	if err := n.Encode(w); err != nil {
		t.Fatalf("Encode() error = %v", err)
	}
	return w.Bytes()
}

func TestNPDUBroadcastWhoIs(t *testing.T) {
	n := &NetworkPDU{
		Dst:      &NetworkAddress{Net: BroadcastNetwork},
		HopCount: 255,
		APDU:     &UnconfirmedRequest{Service: &WhoIs{}},
	}
	data := encodeNPDU(t, n)
	want := []byte{0x01, 0x20, 0xFF, 0xFF, 0x00, 0xFF, 0x10, 0x08}
	if !bytes.Equal(data, want) {
		t.Errorf("encoded = % X, want % X", data, want)
	}

	got, err := DecodeNetworkPDU(NewReader(data))
	if err != nil {
		t.Fatalf("DecodeNetworkPDU() error = %v", err)
	}
	if got.Dst == nil || got.Dst.Net != BroadcastNetwork || len(got.Dst.Addr) != 0 {
		t.Errorf("Dst = %+v", got.Dst)
	}
	if got.HopCount != 255 {
		t.Errorf("HopCount = %d, want 255", got.HopCount)
	}
	if _, ok := got.APDU.(*UnconfirmedRequest); !ok {
		t.Errorf("APDU = %T", got.APDU)
	}
}

func TestNPDURoutedRoundTrip(t *testing.T) {
	n := &NetworkPDU{
		ExpectingReply: true,
		Priority:       PriorityUrgent,
		Dst:            &NetworkAddress{Net: 100, Addr: []byte{0x05}},
		Src:            &NetworkAddress{Net: 200, Addr: []byte{0xC0, 0xA8, 0x01, 0x0A, 0xBA, 0xC0}},
		HopCount:       254,
		APDU: &ConfirmedRequest{
			InvokeID: 1,
			MaxAPDU:  MaxAPDU1476,
			Service: &ReadPropertyRequest{
				ObjectID:   NewObjectIdentifier(ObjectTypeAnalogInput, 1),
				PropertyID: PropertyPresentValue,
			},
		},
	}
	got, err := DecodeNetworkPDU(NewReader(encodeNPDU(t, n)))
	if err != nil {
		t.Fatalf("DecodeNetworkPDU() error = %v", err)
	}
	if !got.ExpectingReply || got.Priority != PriorityUrgent {
		t.Errorf("control round trip = reply %v, priority %v", got.ExpectingReply, got.Priority)
	}
	if got.Dst.Net != 100 || !bytes.Equal(got.Dst.Addr, []byte{0x05}) {
		t.Errorf("Dst = %+v", got.Dst)
	}
	if got.Src.Net != 200 || len(got.Src.Addr) != 6 {
		t.Errorf("Src = %+v", got.Src)
	}
	if got.HopCount != 254 {
		t.Errorf("HopCount = %d", got.HopCount)
	}
}

func TestNPDUNetworkMessage(t *testing.T) {
	mt := NetworkMessageWhoIsRouterToNetwork
	n := &NetworkPDU{MessageType: &mt, Payload: []byte{0x00, 0x64}}
	data := encodeNPDU(t, n)
	want := []byte{0x01, 0x80, 0x00, 0x00, 0x64}
	if !bytes.Equal(data, want) {
		t.Errorf("encoded = % X, want % X", data, want)
	}

	got, err := DecodeNetworkPDU(NewReader(data))
	if err != nil {
		t.Fatalf("DecodeNetworkPDU() error = %v", err)
	}
	if got.MessageType == nil || *got.MessageType != NetworkMessageWhoIsRouterToNetwork {
		t.Errorf("MessageType = %v", got.MessageType)
	}
	if !bytes.Equal(got.Payload, []byte{0x00, 0x64}) {
		t.Errorf("Payload = % X", got.Payload)
	}
	if got.APDU != nil {
		t.Errorf("APDU = %v, want nil", got.APDU)
	}
}

func TestDecodeNPDUErrors(t *testing.T) {
	tests := map[string]struct {
		data    []byte
		wantErr error
	}{
		"empty":               {nil, ErrInvalidNPDU},
		"bad-version":         {[]byte{0x02, 0x00, 0x10, 0x08}, ErrInvalidNPDU},
		"missing-control":     {[]byte{0x01}, ErrInvalidNPDU},
		"short-dst":           {[]byte{0x01, 0x20, 0xFF}, ErrInvalidNPDU},
		"missing-hop-count":   {[]byte{0x01, 0x20, 0xFF, 0xFF, 0x00}, ErrInvalidNPDU},
		"broadcast-source":    {[]byte{0x01, 0x08, 0xFF, 0xFF, 0x00, 0x10, 0x08}, ErrInvalidNPDU},
		"no-payload":          {[]byte{0x01, 0x00}, ErrInvalidAPDU},
	}
	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := DecodeNetworkPDU(NewReader(tt.data))
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}
