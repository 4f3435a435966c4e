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

// ReadPropertyRequest asks for one property of one object
type ReadPropertyRequest struct {
	ObjectID   ObjectIdentifier
	PropertyID PropertyIdentifier
	ArrayIndex *uint32
}

func (*ReadPropertyRequest) serviceChoice() ConfirmedServiceChoice {
	return ServiceReadProperty
}

func (s *ReadPropertyRequest) encodePayload(w *Writer) error {
	if err := encodeContextObjectID(w, 0, s.ObjectID); err != nil {
		return err
	}
	if err := encodeContextUnsigned(w, 1, uint32(s.PropertyID)); err != nil {
		return err
	}
	if s.ArrayIndex != nil {
		return encodeContextUnsigned(w, 2, *s.ArrayIndex)
	}
	return nil
}

func decodeReadProperty(r *Reader) (*ReadPropertyRequest, error) {
	oid, err := decodeContextObjectID(r, 0)
	if err != nil {
		return nil, err
	}
	t, err := expectContextTag(r, 1)
	if err != nil {
		return nil, err
	}
	prop, err := decodeUnsigned(t.Value, r)
	if err != nil {
		return nil, err
	}
	req := &ReadPropertyRequest{ObjectID: oid, PropertyID: PropertyIdentifier(prop)}
	if r.Remaining() > 0 {
		t, err = expectContextTag(r, 2)
		if err != nil {
			return nil, err
		}
		index, err := decodeUnsigned(t.Value, r)
		if err != nil {
			return nil, err
		}
		req.ArrayIndex = &index
	}
	return req, nil
}

// ReadPropertyAck carries the value read by a ReadProperty request
type ReadPropertyAck struct {
	ObjectID   ObjectIdentifier
	PropertyID PropertyIdentifier
	ArrayIndex *uint32
	Value      ApplicationDataValue
}

func (*ReadPropertyAck) ackChoice() ConfirmedServiceChoice {
	return ServiceReadProperty
}

func (a *ReadPropertyAck) encodePayload(w *Writer) error {
	if err := encodeContextObjectID(w, 0, a.ObjectID); err != nil {
		return err
	}
	if err := encodeContextUnsigned(w, 1, uint32(a.PropertyID)); err != nil {
		return err
	}
	if a.ArrayIndex != nil {
		if err := encodeContextUnsigned(w, 2, *a.ArrayIndex); err != nil {
			return err
		}
	}
	if err := openingTag(3).Encode(w); err != nil {
		return err
	}
	if err := a.Value.Encode(w); err != nil {
		return err
	}
	return closingTag(3).Encode(w)
}

func decodeReadPropertyAck(r *Reader) (*ReadPropertyAck, error) {
	oid, err := decodeContextObjectID(r, 0)
	if err != nil {
		return nil, err
	}
	t, err := expectContextTag(r, 1)
	if err != nil {
		return nil, err
	}
	prop, err := decodeUnsigned(t.Value, r)
	if err != nil {
		return nil, err
	}
	ack := &ReadPropertyAck{ObjectID: oid, PropertyID: PropertyIdentifier(prop)}

	b, err := r.peekByte()
	if err != nil {
		return nil, err
	}
	// Optional array index rides in context tag 2 ahead of the opening tag.
	if b>>4 == 2 && b&0x08 != 0 && b&0x07 < 5 {
		t, err = expectContextTag(r, 2)
		if err != nil {
			return nil, err
		}
		index, err := decodeUnsigned(t.Value, r)
		if err != nil {
			return nil, err
		}
		ack.ArrayIndex = &index
	}

	if err := expectOpeningTag(r, 3); err != nil {
		return nil, err
	}
	ack.Value, err = DecodeApplicationDataValue(oid, ack.PropertyID, r)
	if err != nil {
		return nil, err
	}
	if err := expectClosingTag(r, 3); err != nil {
		if r.Remaining() > 0 {
			return nil, fmt.Errorf("%w: multiple values in read property ack", ErrUnimplemented)
		}
		return nil, err
	}
	return ack, nil
}
