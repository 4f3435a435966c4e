// Package transport provides the UDP transport for BACnet/IP communication
package transport

import (
	"context"
	"fmt"
	"net"
	"sync"
	"time"
)

// maxFrameSize bounds one BACnet/IP frame: 1476 octets of APDU plus the
// link and network layer overhead fits a standard Ethernet payload.
const maxFrameSize = 1500

// UDPTransport implements BACnet/IP transport over UDP
type UDPTransport struct {
	localAddr     string
	broadcastAddr net.IP

	mu           sync.RWMutex
	conn         *net.UDPConn
	readTimeout  time.Duration
	writeTimeout time.Duration
	closed       bool
}

// NewUDPTransport creates a new UDP transport bound to localAddr, or to an
// ephemeral port on all interfaces when localAddr is empty.
func NewUDPTransport(localAddr string) *UDPTransport {
	return &UDPTransport{
		localAddr:     localAddr,
		broadcastAddr: net.IPv4bcast,
		readTimeout:   3 * time.Second,
		writeTimeout:  3 * time.Second,
	}
}

// SetReadTimeout sets the read timeout
func (t *UDPTransport) SetReadTimeout(d time.Duration) {
	t.mu.Lock()
	t.readTimeout = d
	t.mu.Unlock()
}

// SetWriteTimeout sets the write timeout
func (t *UDPTransport) SetWriteTimeout(d time.Duration) {
	t.mu.Lock()
	t.writeTimeout = d
	t.mu.Unlock()
}

// SetBroadcastAddress overrides the address used by Broadcast, for
// networks where the limited broadcast address does not reach the devices.
func (t *UDPTransport) SetBroadcastAddress(ip net.IP) {
	t.mu.Lock()
	t.broadcastAddr = ip
	t.mu.Unlock()
}

// Open opens the UDP connection
func (t *UDPTransport) Open(ctx context.Context) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.conn != nil {
		return nil
	}

	var addr *net.UDPAddr
	var err error

	if t.localAddr != "" {
		addr, err = net.ResolveUDPAddr("udp4", t.localAddr)
		if err != nil {
			return fmt.Errorf("resolve local address: %w", err)
		}
	}

	conn, err := net.ListenUDP("udp4", addr)
	if err != nil {
		return fmt.Errorf("listen UDP: %w", err)
	}

	t.conn = conn
	t.closed = false
	return nil
}

// Close closes the UDP connection
func (t *UDPTransport) Close() error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.conn == nil || t.closed {
		return nil
	}

	t.closed = true
	return t.conn.Close()
}

// LocalAddr returns the local address
func (t *UDPTransport) LocalAddr() net.Addr {
	t.mu.RLock()
	defer t.mu.RUnlock()

	if t.conn == nil {
		return nil
	}
	return t.conn.LocalAddr()
}

// Send sends one frame to a specific address
func (t *UDPTransport) Send(ctx context.Context, addr *net.UDPAddr, data []byte) error {
	t.mu.RLock()
	conn := t.conn
	writeTimeout := t.writeTimeout
	t.mu.RUnlock()

	if conn == nil {
		return fmt.Errorf("transport not open")
	}

	deadline, ok := ctx.Deadline()
	if !ok {
		deadline = time.Now().Add(writeTimeout)
	}
	if err := conn.SetWriteDeadline(deadline); err != nil {
		return fmt.Errorf("set write deadline: %w", err)
	}

	n, err := conn.WriteToUDP(data, addr)
	if err != nil {
		return fmt.Errorf("write UDP: %w", err)
	}
	if n != len(data) {
		return fmt.Errorf("partial write: %d of %d bytes", n, len(data))
	}

	return nil
}

// Broadcast sends one frame to the broadcast address
func (t *UDPTransport) Broadcast(ctx context.Context, port int, data []byte) error {
	t.mu.RLock()
	ip := t.broadcastAddr
	t.mu.RUnlock()

	return t.Send(ctx, &net.UDPAddr{IP: ip, Port: port}, data)
}

// Receive receives one frame. The returned slice is freshly allocated so
// decoded views of it stay valid after the next receive.
func (t *UDPTransport) Receive(ctx context.Context) ([]byte, *net.UDPAddr, error) {
	t.mu.RLock()
	conn := t.conn
	readTimeout := t.readTimeout
	t.mu.RUnlock()

	if conn == nil {
		return nil, nil, fmt.Errorf("transport not open")
	}

	deadline, ok := ctx.Deadline()
	if !ok {
		deadline = time.Now().Add(readTimeout)
	}
	if err := conn.SetReadDeadline(deadline); err != nil {
		return nil, nil, fmt.Errorf("set read deadline: %w", err)
	}

	buf := make([]byte, maxFrameSize)
	n, addr, err := conn.ReadFromUDP(buf)
	if err != nil {
		return nil, nil, err
	}

	return buf[:n], addr, nil
}

// ReceiveWithTimeout receives one frame with a specific timeout
func (t *UDPTransport) ReceiveWithTimeout(timeout time.Duration) ([]byte, *net.UDPAddr, error) {
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	return t.Receive(ctx)
}

// IsClosed returns true if the transport is closed
func (t *UDPTransport) IsClosed() bool {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.closed
}
