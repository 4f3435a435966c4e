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

// DefaultPort is the standard BACnet/IP UDP port
const DefaultPort = 47808

// MaxAPDULength is the maximum APDU length for BACnet/IP
const MaxAPDULength = 1476

// bvllType identifies a BACnet/IP virtual link frame.
const bvllType = 0x81

// BVLCFunction identifies the virtual link control function of a frame
type BVLCFunction uint8

const (
	BVLCResult                            BVLCFunction = 0x00
	BVLCWriteBroadcastDistributionTable   BVLCFunction = 0x01
	BVLCReadBroadcastDistributionTable    BVLCFunction = 0x02
	BVLCReadBroadcastDistributionTableAck BVLCFunction = 0x03
	BVLCForwardedNPDU                     BVLCFunction = 0x04
	BVLCRegisterForeignDevice             BVLCFunction = 0x05
	BVLCReadForeignDeviceTable            BVLCFunction = 0x06
	BVLCReadForeignDeviceTableAck         BVLCFunction = 0x07
	BVLCDeleteForeignDeviceTableEntry     BVLCFunction = 0x08
	BVLCDistributeBroadcastToNetwork      BVLCFunction = 0x09
	BVLCOriginalUnicastNPDU               BVLCFunction = 0x0A
	BVLCOriginalBroadcastNPDU             BVLCFunction = 0x0B
	BVLCSecureBVLL                        BVLCFunction = 0x0C
)

func (f BVLCFunction) String() string {
	names := map[BVLCFunction]string{
		BVLCResult:                            "Result",
		BVLCWriteBroadcastDistributionTable:   "Write-Broadcast-Distribution-Table",
		BVLCReadBroadcastDistributionTable:    "Read-Broadcast-Distribution-Table",
		BVLCReadBroadcastDistributionTableAck: "Read-Broadcast-Distribution-Table-Ack",
		BVLCForwardedNPDU:                     "Forwarded-NPDU",
		BVLCRegisterForeignDevice:             "Register-Foreign-Device",
		BVLCReadForeignDeviceTable:            "Read-Foreign-Device-Table",
		BVLCReadForeignDeviceTableAck:         "Read-Foreign-Device-Table-Ack",
		BVLCDeleteForeignDeviceTableEntry:     "Delete-Foreign-Device-Table-Entry",
		BVLCDistributeBroadcastToNetwork:      "Distribute-Broadcast-To-Network",
		BVLCOriginalUnicastNPDU:               "Original-Unicast-NPDU",
		BVLCOriginalBroadcastNPDU:             "Original-Broadcast-NPDU",
		BVLCSecureBVLL:                        "Secure-BVLL",
	}
	if name, ok := names[f]; ok {
		return name
	}
	return fmt.Sprintf("bvlc-function(0x%02X)", uint8(f))
}

// BVLC result codes.
const (
	ResultSuccess                         uint16 = 0x0000
	ResultWriteBroadcastTableNak          uint16 = 0x0010
	ResultReadBroadcastTableNak           uint16 = 0x0020
	ResultRegisterForeignDeviceNak        uint16 = 0x0030
	ResultReadForeignDeviceTableNak       uint16 = 0x0040
	ResultDeleteForeignDeviceTableNak     uint16 = 0x0050
	ResultDistributeBroadcastToNetworkNak uint16 = 0x0060
)

// DataLink is one BACnet/IP virtual link frame. The populated fields depend
// on Function: NPDU for the original unicast, original broadcast, forwarded
// and distribute-broadcast functions, Origin additionally for forwarded
// frames, Result for result frames and TTL for foreign device registration.
type DataLink struct {
	Function BVLCFunction
	NPDU     *NetworkPDU
	Origin   []byte
	Result   uint16
	TTL      uint16
}

// NewUnicastFrame wraps an APDU for unicast delivery
func NewUnicastFrame(apdu ApplicationPDU) *DataLink {
	return &DataLink{
		Function: BVLCOriginalUnicastNPDU,
		NPDU:     &NetworkPDU{ExpectingReply: expectsReply(apdu), APDU: apdu},
	}
}

// NewBroadcastFrame wraps an APDU for local broadcast
func NewBroadcastFrame(apdu ApplicationPDU) *DataLink {
	return &DataLink{
		Function: BVLCOriginalBroadcastNPDU,
		NPDU: &NetworkPDU{
			Dst:      &NetworkAddress{Net: BroadcastNetwork},
			HopCount: 255,
			APDU:     apdu,
		},
	}
}

func expectsReply(apdu ApplicationPDU) bool {
	_, ok := apdu.(*ConfirmedRequest)
	return ok
}

// Encode appends the complete frame to w. The length field is patched in
// once the payload size is known.
func (d *DataLink) Encode(w *Writer) error {
	start := w.Len()
	if err := w.Append(bvllType, byte(d.Function), 0, 0); err != nil {
		return err
	}
	switch d.Function {
	case BVLCResult:
		if err := w.Append(byte(d.Result>>8), byte(d.Result)); err != nil {
			return err
		}
	case BVLCRegisterForeignDevice:
		if err := w.Append(byte(d.TTL>>8), byte(d.TTL)); err != nil {
			return err
		}
	case BVLCForwardedNPDU:
		if len(d.Origin) != 6 {
			return fmt.Errorf("%w: forwarded origin length %d", ErrInvalidFrame, len(d.Origin))
		}
		if err := w.Append(d.Origin...); err != nil {
			return err
		}
		if err := d.NPDU.Encode(w); err != nil {
			return err
		}
	case BVLCOriginalUnicastNPDU, BVLCOriginalBroadcastNPDU, BVLCDistributeBroadcastToNetwork:
		if d.NPDU == nil {
			return fmt.Errorf("%w: missing NPDU", ErrInvalidFrame)
		}
		if err := d.NPDU.Encode(w); err != nil {
			return err
		}
	default:
		return fmt.Errorf("%w: encoding %s frames", ErrUnimplemented, d.Function)
	}
	length := w.Len() - start
	if length > 0xFFFF {
		return ErrOverflow
	}
	w.putUint16At(start+2, uint16(length))
	return nil
}

// DecodeDataLink decodes one frame from r. The frame length field must
// account for every remaining octet of the buffer.
func DecodeDataLink(r *Reader) (*DataLink, error) {
	b, err := r.ReadSlice(4)
	if err != nil {
		return nil, fmt.Errorf("%w: short header", ErrInvalidFrame)
	}
	if b[0] != bvllType {
		return nil, fmt.Errorf("%w: link type 0x%02X", ErrInvalidFrame, b[0])
	}
	length := uint16(b[2])<<8 | uint16(b[3])
	if int(length) != 4+r.Remaining() {
		return nil, fmt.Errorf("%w: length %d with %d octets", ErrInvalidFrame, length, 4+r.Remaining())
	}
	d := &DataLink{Function: BVLCFunction(b[1])}
	switch d.Function {
	case BVLCResult:
		v, err := r.ReadUint16()
		if err != nil {
			return nil, fmt.Errorf("%w: short result", ErrInvalidFrame)
		}
		d.Result = v
	case BVLCRegisterForeignDevice:
		v, err := r.ReadUint16()
		if err != nil {
			return nil, fmt.Errorf("%w: short registration", ErrInvalidFrame)
		}
		d.TTL = v
	case BVLCForwardedNPDU:
		d.Origin, err = r.ReadSlice(6)
		if err != nil {
			return nil, fmt.Errorf("%w: short forwarded origin", ErrInvalidFrame)
		}
		d.NPDU, err = DecodeNetworkPDU(r)
		if err != nil {
			return nil, err
		}
	case BVLCOriginalUnicastNPDU, BVLCOriginalBroadcastNPDU, BVLCDistributeBroadcastToNetwork:
		d.NPDU, err = DecodeNetworkPDU(r)
		if err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("%w: %s frames", ErrUnimplemented, d.Function)
	}
	return d, nil
}
