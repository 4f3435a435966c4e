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
	"fmt"
	"time"
)

// TimeSynchronization tells a device the current date and time. With UTC
// set the UTC variant of the service is used and the device applies its own
// offset.
type TimeSynchronization struct {
	Date Date
	Time Time
	UTC  bool
}

// NewTimeSynchronization creates a TimeSynchronization from a time.Time
func NewTimeSynchronization(t time.Time, utc bool) *TimeSynchronization {
	if utc {
		t = t.UTC()
	}
	return &TimeSynchronization{Date: DateOf(t), Time: TimeOf(t), UTC: utc}
}

func (s *TimeSynchronization) unconfirmedChoice() UnconfirmedServiceChoice {
	if s.UTC {
		return ServiceUTCTimeSynchronization
	}
	return ServiceTimeSynchronization
}

func (s *TimeSynchronization) encodePayload(w *Writer) error {
	if err := s.Date.Encode(w); err != nil {
		return err
	}
	return s.Time.Encode(w)
}

func decodeTimeSynchronization(choice UnconfirmedServiceChoice, r *Reader) (*TimeSynchronization, error) {
	dt, err := DecodeTag(r)
	if err != nil {
		return nil, err
	}
	if dt.Class != TagClassApplication || dt.Number != uint8(TagDate) {
		return nil, fmt.Errorf("%w: expected date", ErrInvalidTag)
	}
	date, err := decodeDate(dt.Value, r)
	if err != nil {
		return nil, err
	}
	tt, err := DecodeTag(r)
	if err != nil {
		return nil, err
	}
	if tt.Class != TagClassApplication || tt.Number != uint8(TagTime) {
		return nil, fmt.Errorf("%w: expected time", ErrInvalidTag)
	}
	tod, err := decodeTime(tt.Value, r)
	if err != nil {
		return nil, err
	}
	return &TimeSynchronization{
		Date: date,
		Time: tod,
		UTC:  choice == ServiceUTCTimeSynchronization,
	}, nil
}
