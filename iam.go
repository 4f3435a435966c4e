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

// IAm announces a device in response to Who-Is
type IAm struct {
	DeviceID     ObjectIdentifier
	MaxAPDU      uint32
	Segmentation Segmentation
	VendorID     uint16
}

func (*IAm) unconfirmedChoice() UnconfirmedServiceChoice {
	return ServiceIAm
}

func (s *IAm) encodePayload(w *Writer) error {
	if err := s.DeviceID.Encode(w); err != nil {
		return err
	}
	if err := encodeAppUnsigned(w, TagUnsignedInt, s.MaxAPDU); err != nil {
		return err
	}
	if err := encodeAppUnsigned(w, TagEnumerated, uint32(s.Segmentation)); err != nil {
		return err
	}
	return encodeAppUnsigned(w, TagUnsignedInt, uint32(s.VendorID))
}

func decodeIAm(r *Reader) (*IAm, error) {
	t, err := DecodeTag(r)
	if err != nil {
		return nil, err
	}
	if t.Class != TagClassApplication || t.Number != uint8(TagObjectID) {
		return nil, fmt.Errorf("%w: expected device identifier", ErrInvalidTag)
	}
	deviceID, err := decodeObjectIdentifier(t.Value, r)
	if err != nil {
		return nil, err
	}
	if deviceID.Type != ObjectTypeDevice {
		return nil, fmt.Errorf("%w: i-am object type %s", ErrInvalidValue, deviceID.Type)
	}
	t, err = DecodeTag(r)
	if err != nil {
		return nil, err
	}
	if t.Class != TagClassApplication || t.Number != uint8(TagUnsignedInt) {
		return nil, fmt.Errorf("%w: expected max APDU length", ErrInvalidTag)
	}
	maxAPDU, err := decodeUnsigned(t.Value, r)
	if err != nil {
		return nil, err
	}
	seg, err := decodeAppEnumerated(r)
	if err != nil {
		return nil, err
	}
	if seg > uint32(SegmentationNone) {
		return nil, fmt.Errorf("%w: segmentation %d", ErrInvalidValue, seg)
	}
	t, err = DecodeTag(r)
	if err != nil {
		return nil, err
	}
	if t.Class != TagClassApplication || t.Number != uint8(TagUnsignedInt) {
		return nil, fmt.Errorf("%w: expected vendor identifier", ErrInvalidTag)
	}
	vendor, err := decodeUnsigned(t.Value, r)
	if err != nil {
		return nil, err
	}
	if vendor > 0xFFFF {
		return nil, fmt.Errorf("%w: vendor identifier %d", ErrInvalidValue, vendor)
	}
	return &IAm{
		DeviceID:     deviceID,
		MaxAPDU:      maxAPDU,
		Segmentation: Segmentation(seg),
		VendorID:     uint16(vendor),
	}, nil
}
