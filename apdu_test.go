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
	"errors"
	"testing"
)

func TestDecodeAPDUSegmentationRejected(t *testing.T) {
	tests := map[string][]byte{
		"segmented-confirmed-request": {0x08, 0x05, 0x01, 0x0C, 0x00, 0x01},
		"more-follows-confirmed":      {0x04, 0x05, 0x01, 0x0C},
		"segmented-complex-ack":       {0x38, 0x01, 0x0C, 0x00, 0x01},
		"segment-ack":                 {0x40, 0x00, 0x01, 0x02, 0x03},
	}
	for name, data := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := DecodeAPDU(NewReader(data))
			if !errors.Is(err, ErrSegmentationNotSupported) {
				t.Errorf("error = %v, want %v", err, ErrSegmentationNotSupported)
			}
		})
	}
}

func TestDecodeAPDUUnsupportedService(t *testing.T) {
	tests := map[string][]byte{
		"confirmed-subscribe-cov": {0x00, 0x05, 0x01, 0x05},
		"confirmed-atomic-read":   {0x00, 0x05, 0x01, 0x06},
		"unconfirmed-cov":         {0x10, 0x02},
	}
	for name, data := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := DecodeAPDU(NewReader(data))
			if !errors.Is(err, ErrUnsupportedService) {
				t.Errorf("error = %v, want %v", err, ErrUnsupportedService)
			}
		})
	}
}

func TestSimpleAckRoundTrip(t *testing.T) {
	data := encodeAPDU(t, &SimpleAck{InvokeID: 12, Service: ServiceWriteProperty})
	got := decodeAPDU(t, data).(*SimpleAck)
	if got.InvokeID != 12 || got.Service != ServiceWriteProperty {
		t.Errorf("round trip = %+v", got)
	}
}

func TestErrorPDURoundTrip(t *testing.T) {
	pdu := &ErrorPDU{
		InvokeID: 3,
		Service:  ServiceReadProperty,
		Class:    ErrorClassObject,
		Code:     ErrorCodeUnknownObject,
	}
	got := decodeAPDU(t, encodeAPDU(t, pdu)).(*ErrorPDU)
	if *got != *pdu {
		t.Errorf("round trip = %+v, want %+v", got, pdu)
	}

	var bacErr *BACnetError
	if err := got.Err(); !errors.As(err, &bacErr) {
		t.Fatalf("Err() = %v, want *BACnetError", err)
	}
	if bacErr.Class != ErrorClassObject || bacErr.Code != ErrorCodeUnknownObject {
		t.Errorf("Err() = %+v", bacErr)
	}
}

func TestRejectRoundTrip(t *testing.T) {
	pdu := &Reject{InvokeID: 5, Reason: RejectReasonUnrecognizedService}
	got := decodeAPDU(t, encodeAPDU(t, pdu)).(*Reject)
	if *got != *pdu {
		t.Errorf("round trip = %+v, want %+v", got, pdu)
	}

	var rejectErr *RejectError
	if err := got.Err(); !errors.As(err, &rejectErr) {
		t.Fatalf("Err() = %v, want *RejectError", err)
	}
}

func TestAbortRoundTrip(t *testing.T) {
	for _, server := range []bool{false, true} {
		pdu := &Abort{InvokeID: 8, Server: server, Reason: AbortReasonBufferOverflow}
		got := decodeAPDU(t, encodeAPDU(t, pdu)).(*Abort)
		if *got != *pdu {
			t.Errorf("round trip = %+v, want %+v", got, pdu)
		}
	}
}

func TestDecodeAPDUErrors(t *testing.T) {
	tests := map[string]struct {
		data    []byte
		wantErr error
	}{
		"empty":            {nil, ErrInvalidAPDU},
		"unknown-pdu-type": {[]byte{0x80, 0x00}, ErrInvalidAPDU},
		"short-confirmed":  {[]byte{0x00, 0x05}, ErrInvalidAPDU},
		"short-simple-ack": {[]byte{0x20, 0x01}, ErrInvalidAPDU},
		"short-reject":     {[]byte{0x60}, ErrInvalidAPDU},
		"short-abort":      {[]byte{0x70, 0x01}, ErrInvalidAPDU},
	}
	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := DecodeAPDU(NewReader(tt.data))
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestMaxAPDULengthFromCode(t *testing.T) {
	tests := []struct {
		code uint8
		want uint16
	}{
		{MaxAPDU50, 50},
		{MaxAPDU128, 128},
		{MaxAPDU1476, 1476},
	}
	for _, tt := range tests {
		if got := MaxAPDULengthFromCode(tt.code); got != tt.want {
			t.Errorf("MaxAPDULengthFromCode(%d) = %d, want %d", tt.code, got, tt.want)
		}
	}
}
