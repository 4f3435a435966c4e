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

// protocolVersion is the only network layer protocol version in use.
const protocolVersion = 1

// BroadcastNetwork is the DNET value addressing all networks
const BroadcastNetwork uint16 = 0xFFFF

// MessagePriority is the network priority of an NPDU
type MessagePriority uint8

const (
	PriorityNormal     MessagePriority = 0
	PriorityUrgent     MessagePriority = 1
	PriorityCritical   MessagePriority = 2
	PriorityLifeSafety MessagePriority = 3
)

func (p MessagePriority) String() string {
	names := map[MessagePriority]string{
		PriorityNormal:     "normal",
		PriorityUrgent:     "urgent",
		PriorityCritical:   "critical",
		PriorityLifeSafety: "life-safety",
	}
	if name, ok := names[p]; ok {
		return name
	}
	return fmt.Sprintf("priority(%d)", p)
}

// NetworkMessageType identifies a network layer message
type NetworkMessageType uint8

const (
	NetworkMessageWhoIsRouterToNetwork          NetworkMessageType = 0x00
	NetworkMessageIAmRouterToNetwork            NetworkMessageType = 0x01
	NetworkMessageICouldBeRouterToNetwork       NetworkMessageType = 0x02
	NetworkMessageRejectMessageToNetwork        NetworkMessageType = 0x03
	NetworkMessageRouterBusyToNetwork           NetworkMessageType = 0x04
	NetworkMessageRouterAvailableToNetwork      NetworkMessageType = 0x05
	NetworkMessageInitializeRoutingTable        NetworkMessageType = 0x06
	NetworkMessageInitializeRoutingTableAck     NetworkMessageType = 0x07
	NetworkMessageEstablishConnectionToNetwork  NetworkMessageType = 0x08
	NetworkMessageDisconnectConnectionToNetwork NetworkMessageType = 0x09
	NetworkMessageWhatIsNetworkNumber           NetworkMessageType = 0x12
	NetworkMessageNetworkNumberIs               NetworkMessageType = 0x13
)

func (m NetworkMessageType) String() string {
	names := map[NetworkMessageType]string{
		NetworkMessageWhoIsRouterToNetwork:          "Who-Is-Router-To-Network",
		NetworkMessageIAmRouterToNetwork:            "I-Am-Router-To-Network",
		NetworkMessageICouldBeRouterToNetwork:       "I-Could-Be-Router-To-Network",
		NetworkMessageRejectMessageToNetwork:        "Reject-Message-To-Network",
		NetworkMessageRouterBusyToNetwork:           "Router-Busy-To-Network",
		NetworkMessageRouterAvailableToNetwork:      "Router-Available-To-Network",
		NetworkMessageInitializeRoutingTable:        "Initialize-Routing-Table",
		NetworkMessageInitializeRoutingTableAck:     "Initialize-Routing-Table-Ack",
		NetworkMessageEstablishConnectionToNetwork:  "Establish-Connection-To-Network",
		NetworkMessageDisconnectConnectionToNetwork: "Disconnect-Connection-To-Network",
		NetworkMessageWhatIsNetworkNumber:           "What-Is-Network-Number",
		NetworkMessageNetworkNumberIs:               "Network-Number-Is",
	}
	if name, ok := names[m]; ok {
		return name
	}
	return fmt.Sprintf("network-message(0x%02x)", uint8(m))
}

// NetworkAddress is a routed source or destination. An empty Addr with a
// destination network means broadcast on that network.
type NetworkAddress struct {
	Net  uint16
	Addr []byte
}

// NetworkPDU is a network layer PDU. Either APDU or MessageType is set:
// application traffic carries an APDU, network layer messages carry a
// message type and an uninterpreted payload.
type NetworkPDU struct {
	ExpectingReply bool
	Priority       MessagePriority
	Dst            *NetworkAddress
	Src            *NetworkAddress
	HopCount       uint8
	APDU           ApplicationPDU
	MessageType    *NetworkMessageType
	Payload        []byte
}

// Encode appends the NPDU, including its application or network payload,
// to w.
func (n *NetworkPDU) Encode(w *Writer) error {
	if err := w.Push(protocolVersion); err != nil {
		return err
	}
	control := byte(n.Priority & 0x03)
	if n.MessageType != nil {
		control |= 0x80
	}
	if n.Dst != nil {
		control |= 0x20
	}
	if n.Src != nil {
		control |= 0x08
	}
	if n.ExpectingReply {
		control |= 0x04
	}
	if err := w.Push(control); err != nil {
		return err
	}
	if n.Dst != nil {
		if err := encodeNetworkAddress(w, n.Dst); err != nil {
			return err
		}
	}
	if n.Src != nil {
		if err := encodeNetworkAddress(w, n.Src); err != nil {
			return err
		}
	}
	if n.Dst != nil {
		if err := w.Push(n.HopCount); err != nil {
			return err
		}
	}
	if n.MessageType != nil {
		if err := w.Push(byte(*n.MessageType)); err != nil {
			return err
		}
		return w.Append(n.Payload...)
	}
	if n.APDU == nil {
		return fmt.Errorf("%w: no payload", ErrInvalidNPDU)
	}
	return n.APDU.Encode(w)
}

func encodeNetworkAddress(w *Writer, a *NetworkAddress) error {
	if len(a.Addr) > 255 {
		return fmt.Errorf("%w: address length %d", ErrInvalidNPDU, len(a.Addr))
	}
	if err := w.Append(byte(a.Net>>8), byte(a.Net), byte(len(a.Addr))); err != nil {
		return err
	}
	return w.Append(a.Addr...)
}

// DecodeNetworkPDU decodes one NPDU and its payload from r. Decoded
// addresses and network message payloads alias the reader's buffer.
func DecodeNetworkPDU(r *Reader) (*NetworkPDU, error) {
	version, err := r.ReadByte()
	if err != nil {
		return nil, fmt.Errorf("%w: missing version", ErrInvalidNPDU)
	}
	if version != protocolVersion {
		return nil, fmt.Errorf("%w: version %d", ErrInvalidNPDU, version)
	}
	control, err := r.ReadByte()
	if err != nil {
		return nil, fmt.Errorf("%w: missing control octet", ErrInvalidNPDU)
	}
	n := &NetworkPDU{
		ExpectingReply: control&0x04 != 0,
		Priority:       MessagePriority(control & 0x03),
	}
	if control&0x20 != 0 {
		n.Dst, err = decodeNetworkAddress(r)
		if err != nil {
			return nil, err
		}
	}
	if control&0x08 != 0 {
		n.Src, err = decodeNetworkAddress(r)
		if err != nil {
			return nil, err
		}
		if n.Src.Net == BroadcastNetwork {
			return nil, fmt.Errorf("%w: broadcast source network", ErrInvalidNPDU)
		}
	}
	if n.Dst != nil {
		n.HopCount, err = r.ReadByte()
		if err != nil {
			return nil, fmt.Errorf("%w: missing hop count", ErrInvalidNPDU)
		}
	}
	if control&0x80 != 0 {
		mt, err := r.ReadByte()
		if err != nil {
			return nil, fmt.Errorf("%w: missing message type", ErrInvalidNPDU)
		}
		t := NetworkMessageType(mt)
		n.MessageType = &t
		n.Payload, err = r.ReadSlice(r.Remaining())
		if err != nil {
			return nil, err
		}
		return n, nil
	}
	n.APDU, err = DecodeAPDU(r)
	if err != nil {
		return nil, err
	}
	return n, nil
}

func decodeNetworkAddress(r *Reader) (*NetworkAddress, error) {
	b, err := r.ReadSlice(3)
	if err != nil {
		return nil, fmt.Errorf("%w: short network address", ErrInvalidNPDU)
	}
	addr, err := r.ReadSlice(int(b[2]))
	if err != nil {
		return nil, fmt.Errorf("%w: short link address", ErrInvalidNPDU)
	}
	return &NetworkAddress{Net: uint16(b[0])<<8 | uint16(b[1]), Addr: addr}, nil
}
