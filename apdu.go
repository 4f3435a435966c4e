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

// PDUType identifies the APDU variant in the high nibble of the first octet
type PDUType uint8

const (
	PDUTypeConfirmedRequest   PDUType = 0x00
	PDUTypeUnconfirmedRequest PDUType = 0x10
	PDUTypeSimpleAck          PDUType = 0x20
	PDUTypeComplexAck         PDUType = 0x30
	PDUTypeSegmentAck         PDUType = 0x40
	PDUTypeError              PDUType = 0x50
	PDUTypeReject             PDUType = 0x60
	PDUTypeAbort              PDUType = 0x70
)

// ConfirmedServiceChoice identifies a confirmed service
type ConfirmedServiceChoice uint8

const (
	ServiceAcknowledgeAlarm           ConfirmedServiceChoice = 0
	ServiceConfirmedCOVNotification   ConfirmedServiceChoice = 1
	ServiceConfirmedEventNotification ConfirmedServiceChoice = 2
	ServiceGetAlarmSummary            ConfirmedServiceChoice = 3
	ServiceGetEnrollmentSummary       ConfirmedServiceChoice = 4
	ServiceSubscribeCOV               ConfirmedServiceChoice = 5
	ServiceAtomicReadFile             ConfirmedServiceChoice = 6
	ServiceAtomicWriteFile            ConfirmedServiceChoice = 7
	ServiceAddListElement             ConfirmedServiceChoice = 8
	ServiceRemoveListElement          ConfirmedServiceChoice = 9
	ServiceCreateObject               ConfirmedServiceChoice = 10
	ServiceDeleteObject               ConfirmedServiceChoice = 11
	ServiceReadProperty               ConfirmedServiceChoice = 12
	ServiceReadPropertyConditional    ConfirmedServiceChoice = 13
	ServiceReadPropertyMultiple       ConfirmedServiceChoice = 14
	ServiceWriteProperty              ConfirmedServiceChoice = 15
	ServiceWritePropertyMultiple      ConfirmedServiceChoice = 16
	ServiceDeviceCommunicationControl ConfirmedServiceChoice = 17
	ServiceConfirmedPrivateTransfer   ConfirmedServiceChoice = 18
	ServiceConfirmedTextMessage       ConfirmedServiceChoice = 19
	ServiceReinitializeDevice         ConfirmedServiceChoice = 20
	ServiceVTOpen                     ConfirmedServiceChoice = 21
	ServiceVTClose                    ConfirmedServiceChoice = 22
	ServiceVTData                     ConfirmedServiceChoice = 23
	ServiceAuthenticate               ConfirmedServiceChoice = 24
	ServiceRequestKey                 ConfirmedServiceChoice = 25
	ServiceReadRange                  ConfirmedServiceChoice = 26
	ServiceLifeSafetyOperation        ConfirmedServiceChoice = 27
	ServiceSubscribeCOVProperty       ConfirmedServiceChoice = 28
	ServiceGetEventInformation        ConfirmedServiceChoice = 29
)

func (s ConfirmedServiceChoice) String() string {
	names := map[ConfirmedServiceChoice]string{
		ServiceAcknowledgeAlarm:           "AcknowledgeAlarm",
		ServiceConfirmedCOVNotification:   "ConfirmedCOVNotification",
		ServiceConfirmedEventNotification: "ConfirmedEventNotification",
		ServiceGetAlarmSummary:            "GetAlarmSummary",
		ServiceGetEnrollmentSummary:       "GetEnrollmentSummary",
		ServiceSubscribeCOV:               "SubscribeCOV",
		ServiceAtomicReadFile:             "AtomicReadFile",
		ServiceAtomicWriteFile:            "AtomicWriteFile",
		ServiceAddListElement:             "AddListElement",
		ServiceRemoveListElement:          "RemoveListElement",
		ServiceCreateObject:               "CreateObject",
		ServiceDeleteObject:               "DeleteObject",
		ServiceReadProperty:               "ReadProperty",
		ServiceReadPropertyConditional:    "ReadPropertyConditional",
		ServiceReadPropertyMultiple:       "ReadPropertyMultiple",
		ServiceWriteProperty:              "WriteProperty",
		ServiceWritePropertyMultiple:      "WritePropertyMultiple",
		ServiceDeviceCommunicationControl: "DeviceCommunicationControl",
		ServiceConfirmedPrivateTransfer:   "ConfirmedPrivateTransfer",
		ServiceConfirmedTextMessage:       "ConfirmedTextMessage",
		ServiceReinitializeDevice:         "ReinitializeDevice",
		ServiceVTOpen:                     "VTOpen",
		ServiceVTClose:                    "VTClose",
		ServiceVTData:                     "VTData",
		ServiceAuthenticate:               "Authenticate",
		ServiceRequestKey:                 "RequestKey",
		ServiceReadRange:                  "ReadRange",
		ServiceLifeSafetyOperation:        "LifeSafetyOperation",
		ServiceSubscribeCOVProperty:       "SubscribeCOVProperty",
		ServiceGetEventInformation:        "GetEventInformation",
	}
	if name, ok := names[s]; ok {
		return name
	}
	return fmt.Sprintf("Unknown(%d)", s)
}

// UnconfirmedServiceChoice identifies an unconfirmed service
type UnconfirmedServiceChoice uint8

const (
	ServiceIAm                          UnconfirmedServiceChoice = 0
	ServiceIHave                        UnconfirmedServiceChoice = 1
	ServiceUnconfirmedCOVNotification   UnconfirmedServiceChoice = 2
	ServiceUnconfirmedEventNotification UnconfirmedServiceChoice = 3
	ServiceUnconfirmedPrivateTransfer   UnconfirmedServiceChoice = 4
	ServiceUnconfirmedTextMessage       UnconfirmedServiceChoice = 5
	ServiceTimeSynchronization          UnconfirmedServiceChoice = 6
	ServiceWhoHas                       UnconfirmedServiceChoice = 7
	ServiceWhoIs                        UnconfirmedServiceChoice = 8
	ServiceUTCTimeSynchronization       UnconfirmedServiceChoice = 9
	ServiceWriteGroup                   UnconfirmedServiceChoice = 10
)

func (s UnconfirmedServiceChoice) String() string {
	names := map[UnconfirmedServiceChoice]string{
		ServiceIAm:                          "I-Am",
		ServiceIHave:                        "I-Have",
		ServiceUnconfirmedCOVNotification:   "UnconfirmedCOVNotification",
		ServiceUnconfirmedEventNotification: "UnconfirmedEventNotification",
		ServiceUnconfirmedPrivateTransfer:   "UnconfirmedPrivateTransfer",
		ServiceUnconfirmedTextMessage:       "UnconfirmedTextMessage",
		ServiceTimeSynchronization:          "TimeSynchronization",
		ServiceWhoHas:                       "Who-Has",
		ServiceWhoIs:                        "Who-Is",
		ServiceUTCTimeSynchronization:       "UTCTimeSynchronization",
		ServiceWriteGroup:                   "WriteGroup",
	}
	if name, ok := names[s]; ok {
		return name
	}
	return fmt.Sprintf("Unknown(%d)", s)
}

// MaxAPDU codes for the max-APDU-length-accepted field of a confirmed
// request header.
const (
	MaxAPDU50   uint8 = 0
	MaxAPDU128  uint8 = 1
	MaxAPDU206  uint8 = 2
	MaxAPDU480  uint8 = 3
	MaxAPDU1024 uint8 = 4
	MaxAPDU1476 uint8 = 5
)

// MaxAPDULengthFromCode converts a max-APDU code to the octet count it
// stands for.
func MaxAPDULengthFromCode(code uint8) uint16 {
	lengths := [...]uint16{50, 128, 206, 480, 1024, 1476}
	if int(code) < len(lengths) {
		return lengths[code]
	}
	return 0
}

// ConfirmedServiceRequest is the payload of a confirmed request APDU
type ConfirmedServiceRequest interface {
	serviceChoice() ConfirmedServiceChoice
	encodePayload(w *Writer) error
}

// UnconfirmedServiceRequest is the payload of an unconfirmed request APDU
type UnconfirmedServiceRequest interface {
	unconfirmedChoice() UnconfirmedServiceChoice
	encodePayload(w *Writer) error
}

// ServiceAck is the payload of a complex ack APDU
type ServiceAck interface {
	ackChoice() ConfirmedServiceChoice
	encodePayload(w *Writer) error
}

// ApplicationPDU is a decoded application-layer PDU
type ApplicationPDU interface {
	// Encode appends the PDU header and service payload to w.
	Encode(w *Writer) error
	apdu()
}

// ConfirmedRequest is a confirmed request APDU. Segmentation is not
// supported; MaxSegments and MaxAPDU only describe what this side accepts.
type ConfirmedRequest struct {
	InvokeID    uint8
	MaxSegments uint8
	MaxAPDU     uint8
	Service     ConfirmedServiceRequest
}

func (*ConfirmedRequest) apdu() {}

func (p *ConfirmedRequest) Encode(w *Writer) error {
	if err := w.Append(byte(PDUTypeConfirmedRequest), p.MaxSegments<<4|p.MaxAPDU&0x0F, p.InvokeID, byte(p.Service.serviceChoice())); err != nil {
		return err
	}
	return p.Service.encodePayload(w)
}

// UnconfirmedRequest is an unconfirmed request APDU
type UnconfirmedRequest struct {
	Service UnconfirmedServiceRequest
}

func (*UnconfirmedRequest) apdu() {}

func (p *UnconfirmedRequest) Encode(w *Writer) error {
	if err := w.Append(byte(PDUTypeUnconfirmedRequest), byte(p.Service.unconfirmedChoice())); err != nil {
		return err
	}
	return p.Service.encodePayload(w)
}

// SimpleAck is a simple ack APDU
type SimpleAck struct {
	InvokeID uint8
	Service  ConfirmedServiceChoice
}

func (*SimpleAck) apdu() {}

func (p *SimpleAck) Encode(w *Writer) error {
	return w.Append(byte(PDUTypeSimpleAck), p.InvokeID, byte(p.Service))
}

// ComplexAck is a complex ack APDU carrying a service-specific result
type ComplexAck struct {
	InvokeID uint8
	Ack      ServiceAck
}

func (*ComplexAck) apdu() {}

func (p *ComplexAck) Encode(w *Writer) error {
	if err := w.Append(byte(PDUTypeComplexAck), p.InvokeID, byte(p.Ack.ackChoice())); err != nil {
		return err
	}
	return p.Ack.encodePayload(w)
}

// ErrorPDU reports a service error for a confirmed request
type ErrorPDU struct {
	InvokeID uint8
	Service  ConfirmedServiceChoice
	Class    ErrorClass
	Code     ErrorCode
}

func (*ErrorPDU) apdu() {}

func (p *ErrorPDU) Encode(w *Writer) error {
	if err := w.Append(byte(PDUTypeError), p.InvokeID, byte(p.Service)); err != nil {
		return err
	}
	if err := encodeAppUnsigned(w, TagEnumerated, uint32(p.Class)); err != nil {
		return err
	}
	return encodeAppUnsigned(w, TagEnumerated, uint32(p.Code))
}

// Err converts the PDU to a BACnetError
func (p *ErrorPDU) Err() error {
	return NewBACnetError(p.Class, p.Code)
}

// Reject is a reject APDU
type Reject struct {
	InvokeID uint8
	Reason   RejectReason
}

func (*Reject) apdu() {}

func (p *Reject) Encode(w *Writer) error {
	return w.Append(byte(PDUTypeReject), p.InvokeID, byte(p.Reason))
}

// Err converts the PDU to a RejectError
func (p *Reject) Err() error {
	return &RejectError{InvokeID: p.InvokeID, Reason: p.Reason}
}

// Abort is an abort APDU
type Abort struct {
	InvokeID uint8
	Server   bool
	Reason   AbortReason
}

func (*Abort) apdu() {}

func (p *Abort) Encode(w *Writer) error {
	initial := byte(PDUTypeAbort)
	if p.Server {
		initial |= 0x01
	}
	return w.Append(initial, p.InvokeID, byte(p.Reason))
}

// Err converts the PDU to an AbortError
func (p *Abort) Err() error {
	return &AbortError{InvokeID: p.InvokeID, Server: p.Server, Reason: p.Reason}
}

// DecodeAPDU decodes one application PDU from r. Segmented PDUs are
// rejected with ErrSegmentationNotSupported.
func DecodeAPDU(r *Reader) (ApplicationPDU, error) {
	initial, err := r.ReadByte()
	if err != nil {
		return nil, fmt.Errorf("%w: missing PDU type", ErrInvalidAPDU)
	}
	switch PDUType(initial & 0xF0) {
	case PDUTypeConfirmedRequest:
		if initial&0x0C != 0 {
			return nil, fmt.Errorf("%w: segmented confirmed request", ErrSegmentationNotSupported)
		}
		return decodeConfirmedRequest(r)
	case PDUTypeUnconfirmedRequest:
		return decodeUnconfirmedRequest(r)
	case PDUTypeSimpleAck:
		b, err := r.ReadSlice(2)
		if err != nil {
			return nil, fmt.Errorf("%w: short simple ack", ErrInvalidAPDU)
		}
		return &SimpleAck{InvokeID: b[0], Service: ConfirmedServiceChoice(b[1])}, nil
	case PDUTypeComplexAck:
		if initial&0x0C != 0 {
			return nil, fmt.Errorf("%w: segmented complex ack", ErrSegmentationNotSupported)
		}
		return decodeComplexAck(r)
	case PDUTypeSegmentAck:
		return nil, fmt.Errorf("%w: segment ack", ErrSegmentationNotSupported)
	case PDUTypeError:
		return decodeErrorPDU(r)
	case PDUTypeReject:
		b, err := r.ReadSlice(2)
		if err != nil {
			return nil, fmt.Errorf("%w: short reject", ErrInvalidAPDU)
		}
		return &Reject{InvokeID: b[0], Reason: RejectReason(b[1])}, nil
	case PDUTypeAbort:
		b, err := r.ReadSlice(2)
		if err != nil {
			return nil, fmt.Errorf("%w: short abort", ErrInvalidAPDU)
		}
		return &Abort{InvokeID: b[0], Server: initial&0x01 != 0, Reason: AbortReason(b[1])}, nil
	}
	return nil, fmt.Errorf("%w: PDU type 0x%02X", ErrInvalidAPDU, initial&0xF0)
}

func decodeConfirmedRequest(r *Reader) (*ConfirmedRequest, error) {
	b, err := r.ReadSlice(3)
	if err != nil {
		return nil, fmt.Errorf("%w: short confirmed request header", ErrInvalidAPDU)
	}
	req := &ConfirmedRequest{
		MaxSegments: b[0] >> 4,
		MaxAPDU:     b[0] & 0x0F,
		InvokeID:    b[1],
	}
	choice := ConfirmedServiceChoice(b[2])
	switch choice {
	case ServiceReadProperty:
		req.Service, err = decodeReadProperty(r)
	case ServiceReadPropertyMultiple:
		req.Service, err = decodeReadPropertyMultiple(r)
	case ServiceWriteProperty:
		req.Service, err = decodeWriteProperty(r)
	default:
		return nil, fmt.Errorf("%w: confirmed service %s", ErrUnsupportedService, choice)
	}
	if err != nil {
		return nil, err
	}
	return req, nil
}

func decodeUnconfirmedRequest(r *Reader) (*UnconfirmedRequest, error) {
	b, err := r.ReadByte()
	if err != nil {
		return nil, fmt.Errorf("%w: missing service choice", ErrInvalidAPDU)
	}
	req := &UnconfirmedRequest{}
	choice := UnconfirmedServiceChoice(b)
	switch choice {
	case ServiceIAm:
		req.Service, err = decodeIAm(r)
	case ServiceWhoIs:
		req.Service, err = decodeWhoIs(r)
	case ServiceTimeSynchronization, ServiceUTCTimeSynchronization:
		req.Service, err = decodeTimeSynchronization(choice, r)
	default:
		return nil, fmt.Errorf("%w: unconfirmed service %s", ErrUnsupportedService, choice)
	}
	if err != nil {
		return nil, err
	}
	return req, nil
}

func decodeComplexAck(r *Reader) (*ComplexAck, error) {
	b, err := r.ReadSlice(2)
	if err != nil {
		return nil, fmt.Errorf("%w: short complex ack header", ErrInvalidAPDU)
	}
	ack := &ComplexAck{InvokeID: b[0]}
	choice := ConfirmedServiceChoice(b[1])
	switch choice {
	case ServiceReadProperty:
		ack.Ack, err = decodeReadPropertyAck(r)
	case ServiceReadPropertyMultiple:
		ack.Ack, err = decodeReadPropertyMultipleAck(r)
	default:
		return nil, fmt.Errorf("%w: complex ack for %s", ErrUnsupportedService, choice)
	}
	if err != nil {
		return nil, err
	}
	return ack, nil
}

func decodeErrorPDU(r *Reader) (*ErrorPDU, error) {
	b, err := r.ReadSlice(2)
	if err != nil {
		return nil, fmt.Errorf("%w: short error PDU header", ErrInvalidAPDU)
	}
	pdu := &ErrorPDU{InvokeID: b[0], Service: ConfirmedServiceChoice(b[1])}
	class, err := decodeAppEnumerated(r)
	if err != nil {
		return nil, err
	}
	code, err := decodeAppEnumerated(r)
	if err != nil {
		return nil, err
	}
	pdu.Class = ErrorClass(class)
	pdu.Code = ErrorCode(code)
	return pdu, nil
}

// decodeAppEnumerated reads one application-tagged enumerated as a raw
// unsigned.
func decodeAppEnumerated(r *Reader) (uint32, error) {
	t, err := DecodeTag(r)
	if err != nil {
		return 0, err
	}
	if t.Class != TagClassApplication || t.Number != uint8(TagEnumerated) {
		return 0, fmt.Errorf("%w: expected enumerated", ErrInvalidTag)
	}
	return decodeUnsigned(t.Value, r)
}
