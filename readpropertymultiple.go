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

// PropertyReference names one property, optionally one array element of it
type PropertyReference struct {
	PropertyID PropertyIdentifier
	ArrayIndex *uint32
}

// ReadAccessSpec names the properties to read from one object
type ReadAccessSpec struct {
	ObjectID   ObjectIdentifier
	Properties []PropertyReference
}

// ReadPropertyMultipleRequest reads several properties across several
// objects in one round trip.
type ReadPropertyMultipleRequest struct {
	Specs []ReadAccessSpec
}

func (*ReadPropertyMultipleRequest) serviceChoice() ConfirmedServiceChoice {
	return ServiceReadPropertyMultiple
}

func (s *ReadPropertyMultipleRequest) encodePayload(w *Writer) error {
	if len(s.Specs) == 0 {
		return fmt.Errorf("%w: empty read access specification", ErrInvalidValue)
	}
	for _, spec := range s.Specs {
		if err := encodeContextObjectID(w, 0, spec.ObjectID); err != nil {
			return err
		}
		if err := openingTag(1).Encode(w); err != nil {
			return err
		}
		for _, ref := range spec.Properties {
			if err := encodeContextUnsigned(w, 0, uint32(ref.PropertyID)); err != nil {
				return err
			}
			if ref.ArrayIndex != nil {
				if err := encodeContextUnsigned(w, 1, *ref.ArrayIndex); err != nil {
					return err
				}
			}
		}
		if err := closingTag(1).Encode(w); err != nil {
			return err
		}
	}
	return nil
}

func decodeReadPropertyMultiple(r *Reader) (*ReadPropertyMultipleRequest, error) {
	req := &ReadPropertyMultipleRequest{}
	for r.Remaining() > 0 {
		oid, err := decodeContextObjectID(r, 0)
		if err != nil {
			return nil, err
		}
		spec := ReadAccessSpec{ObjectID: oid}
		if err := expectOpeningTag(r, 1); err != nil {
			return nil, err
		}
		for {
			t, err := DecodeTag(r)
			if err != nil {
				return nil, err
			}
			if t.Closing && t.Number == 1 {
				break
			}
			if t.Class != TagClassContext || t.Number != 0 {
				return nil, fmt.Errorf("%w: expected property identifier", ErrInvalidTag)
			}
			prop, err := decodeUnsigned(t.Value, r)
			if err != nil {
				return nil, err
			}
			ref := PropertyReference{PropertyID: PropertyIdentifier(prop)}
			if b, err := r.peekByte(); err == nil && b>>4 == 1 && b&0x08 != 0 && !isOpeningOrClosing(b) {
				t, err := expectContextTag(r, 1)
				if err != nil {
					return nil, err
				}
				index, err := decodeUnsigned(t.Value, r)
				if err != nil {
					return nil, err
				}
				ref.ArrayIndex = &index
			}
			spec.Properties = append(spec.Properties, ref)
		}
		if len(spec.Properties) == 0 {
			return nil, fmt.Errorf("%w: empty property reference list", ErrInvalidValue)
		}
		req.Specs = append(req.Specs, spec)
	}
	if len(req.Specs) == 0 {
		return nil, fmt.Errorf("%w: empty read access specification", ErrInvalidValue)
	}
	return req, nil
}

// PropertyAccessError reports why one property of a multiple read failed
type PropertyAccessError struct {
	Class ErrorClass
	Code  ErrorCode
}

// Err converts the access error to a BACnetError
func (e *PropertyAccessError) Err() error {
	return NewBACnetError(e.Class, e.Code)
}

// PropertyResult is the outcome for one requested property: either a value
// or an access error, never both.
type PropertyResult struct {
	PropertyID PropertyIdentifier
	ArrayIndex *uint32
	Value      ApplicationDataValue
	Error      *PropertyAccessError
}

// ReadAccessResult groups the property results of one object
type ReadAccessResult struct {
	ObjectID ObjectIdentifier
	Results  []PropertyResult
}

// ReadPropertyMultipleAck answers a ReadPropertyMultiple request
type ReadPropertyMultipleAck struct {
	Objects []ReadAccessResult
}

func (*ReadPropertyMultipleAck) ackChoice() ConfirmedServiceChoice {
	return ServiceReadPropertyMultiple
}

func (a *ReadPropertyMultipleAck) encodePayload(w *Writer) error {
	for _, obj := range a.Objects {
		if err := encodeContextObjectID(w, 0, obj.ObjectID); err != nil {
			return err
		}
		if err := openingTag(1).Encode(w); err != nil {
			return err
		}
		for _, res := range obj.Results {
			if err := encodeContextUnsigned(w, 2, uint32(res.PropertyID)); err != nil {
				return err
			}
			if res.ArrayIndex != nil {
				if err := encodeContextUnsigned(w, 3, *res.ArrayIndex); err != nil {
					return err
				}
			}
			if res.Error != nil {
				if err := openingTag(5).Encode(w); err != nil {
					return err
				}
				if err := encodeAppUnsigned(w, TagEnumerated, uint32(res.Error.Class)); err != nil {
					return err
				}
				if err := encodeAppUnsigned(w, TagEnumerated, uint32(res.Error.Code)); err != nil {
					return err
				}
				if err := closingTag(5).Encode(w); err != nil {
					return err
				}
				continue
			}
			if err := openingTag(4).Encode(w); err != nil {
				return err
			}
			if err := res.Value.Encode(w); err != nil {
				return err
			}
			if err := closingTag(4).Encode(w); err != nil {
				return err
			}
		}
		if err := closingTag(1).Encode(w); err != nil {
			return err
		}
	}
	return nil
}

func decodeReadPropertyMultipleAck(r *Reader) (*ReadPropertyMultipleAck, error) {
	ack := &ReadPropertyMultipleAck{}
	for r.Remaining() > 0 {
		oid, err := decodeContextObjectID(r, 0)
		if err != nil {
			return nil, err
		}
		obj := ReadAccessResult{ObjectID: oid}
		if err := expectOpeningTag(r, 1); err != nil {
			return nil, err
		}
		for {
			t, err := DecodeTag(r)
			if err != nil {
				return nil, err
			}
			if t.Closing && t.Number == 1 {
				break
			}
			if t.Class != TagClassContext || t.Number != 2 || t.Opening {
				return nil, fmt.Errorf("%w: expected property identifier", ErrInvalidTag)
			}
			prop, err := decodeUnsigned(t.Value, r)
			if err != nil {
				return nil, err
			}
			res := PropertyResult{PropertyID: PropertyIdentifier(prop)}
			if b, err := r.peekByte(); err == nil && b>>4 == 3 && b&0x08 != 0 && !isOpeningOrClosing(b) {
				t, err := expectContextTag(r, 3)
				if err != nil {
					return nil, err
				}
				index, err := decodeUnsigned(t.Value, r)
				if err != nil {
					return nil, err
				}
				res.ArrayIndex = &index
			}
			t, err = DecodeTag(r)
			if err != nil {
				return nil, err
			}
			switch {
			case t.Opening && t.Number == 4:
				res.Value, err = DecodeApplicationDataValue(oid, res.PropertyID, r)
				if err != nil {
					return nil, err
				}
				ct, err := DecodeTag(r)
				if err != nil {
					return nil, err
				}
				if !ct.Closing || ct.Number != 4 {
					return nil, fmt.Errorf("%w: multiple values for one property", ErrUnimplemented)
				}
			case t.Opening && t.Number == 5:
				class, err := decodeAppEnumerated(r)
				if err != nil {
					return nil, err
				}
				code, err := decodeAppEnumerated(r)
				if err != nil {
					return nil, err
				}
				if err := expectClosingTag(r, 5); err != nil {
					return nil, err
				}
				res.Error = &PropertyAccessError{Class: ErrorClass(class), Code: ErrorCode(code)}
			default:
				return nil, fmt.Errorf("%w: expected property value or error", ErrInvalidTag)
			}
			obj.Results = append(obj.Results, res)
		}
		ack.Objects = append(ack.Objects, obj)
	}
	return ack, nil
}

// isOpeningOrClosing reports whether the initial octet carries an opening
// or closing tag.
func isOpeningOrClosing(b byte) bool {
	return b&0x08 != 0 && (b&0x07 == 0x06 || b&0x07 == 0x07)
}
