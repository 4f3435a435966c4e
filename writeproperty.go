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

// WritePropertyRequest writes one property of one object. Priority, when
// set, must be 1 through 16.
type WritePropertyRequest struct {
	ObjectID   ObjectIdentifier
	PropertyID PropertyIdentifier
	ArrayIndex *uint32
	Value      ApplicationDataValue
	Priority   *uint8
}

func (*WritePropertyRequest) serviceChoice() ConfirmedServiceChoice {
	return ServiceWriteProperty
}

func (s *WritePropertyRequest) encodePayload(w *Writer) error {
	if s.Priority != nil && (*s.Priority < 1 || *s.Priority > 16) {
		return fmt.Errorf("%w: write priority %d", ErrInvalidValue, *s.Priority)
	}
	if err := encodeContextObjectID(w, 0, s.ObjectID); err != nil {
		return err
	}
	if err := encodeContextUnsigned(w, 1, uint32(s.PropertyID)); err != nil {
		return err
	}
	if s.ArrayIndex != nil {
		if err := encodeContextUnsigned(w, 2, *s.ArrayIndex); err != nil {
			return err
		}
	}
	if err := openingTag(3).Encode(w); err != nil {
		return err
	}
	if err := s.Value.Encode(w); err != nil {
		return err
	}
	if err := closingTag(3).Encode(w); err != nil {
		return err
	}
	if s.Priority != nil {
		return encodeContextUnsigned(w, 4, uint32(*s.Priority))
	}
	return nil
}

func decodeWriteProperty(r *Reader) (*WritePropertyRequest, error) {
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
	req := &WritePropertyRequest{ObjectID: oid, PropertyID: PropertyIdentifier(prop)}

	if b, err := r.peekByte(); err == nil && b>>4 == 2 && b&0x08 != 0 && !isOpeningOrClosing(b) {
		t, err := expectContextTag(r, 2)
		if err != nil {
			return nil, err
		}
		index, err := decodeUnsigned(t.Value, r)
		if err != nil {
			return nil, err
		}
		req.ArrayIndex = &index
	}

	if err := expectOpeningTag(r, 3); err != nil {
		return nil, err
	}
	req.Value, err = DecodeApplicationDataValue(oid, req.PropertyID, r)
	if err != nil {
		return nil, err
	}
	if err := expectClosingTag(r, 3); err != nil {
		return nil, err
	}

	if r.Remaining() > 0 {
		t, err := expectContextTag(r, 4)
		if err != nil {
			return nil, err
		}
		priority, err := decodeUnsigned(t.Value, r)
		if err != nil {
			return nil, err
		}
		if priority < 1 || priority > 16 {
			return nil, fmt.Errorf("%w: write priority %d", ErrInvalidValue, priority)
		}
		p := uint8(priority)
		req.Priority = &p
	}
	return req, nil
}
