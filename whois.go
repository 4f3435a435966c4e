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

// WhoIs asks devices to announce themselves with I-Am. With both limits nil
// every device answers; with limits set only devices whose instance falls
// inside the range do. Limits go together.
type WhoIs struct {
	Low  *uint32
	High *uint32
}

// NewWhoIsRange creates a WhoIs limited to an instance range
func NewWhoIsRange(low, high uint32) *WhoIs {
	return &WhoIs{Low: &low, High: &high}
}

func (*WhoIs) unconfirmedChoice() UnconfirmedServiceChoice {
	return ServiceWhoIs
}

func (s *WhoIs) encodePayload(w *Writer) error {
	if s.Low == nil || s.High == nil {
		return nil
	}
	if err := encodeContextUnsigned(w, 0, *s.Low); err != nil {
		return err
	}
	return encodeContextUnsigned(w, 1, *s.High)
}

func decodeWhoIs(r *Reader) (*WhoIs, error) {
	s := &WhoIs{}
	if r.Remaining() == 0 {
		return s, nil
	}
	t, err := expectContextTag(r, 0)
	if err != nil {
		return nil, err
	}
	low, err := decodeUnsigned(t.Value, r)
	if err != nil {
		return nil, err
	}
	t, err = expectContextTag(r, 1)
	if err != nil {
		return nil, err
	}
	high, err := decodeUnsigned(t.Value, r)
	if err != nil {
		return nil, err
	}
	if low > high {
		return nil, fmt.Errorf("%w: who-is range %d..%d", ErrInvalidValue, low, high)
	}
	s.Low, s.High = &low, &high
	return s, nil
}
