package bacnet

import (
	"context"
	"fmt"
	"log/slog"
	"net"
	"sync"
	"sync/atomic"
	"time"

	"github.com/edgeo/protocols/bacnet/internal/transport"
)

// ConnectionState represents the client connection state
type ConnectionState int32

const (
	StateDisconnected ConnectionState = iota
	StateConnecting
	StateConnected
)

func (s ConnectionState) String() string {
	switch s {
	case StateDisconnected:
		return "disconnected"
	case StateConnecting:
		return "connecting"
	case StateConnected:
		return "connected"
	default:
		return "unknown"
	}
}

// DeviceInfo describes a device discovered through Who-Is
type DeviceInfo struct {
	DeviceID     uint32
	Address      *net.UDPAddr
	Network      *NetworkAddress
	MaxAPDU      uint32
	Segmentation Segmentation
	VendorID     uint16
}

// Client is a BACnet/IP client
type Client struct {
	opts      *clientOptions
	transport *transport.UDPTransport

	state    atomic.Int32
	invokeID atomic.Uint32

	// Pending requests
	pendingMu sync.RWMutex
	pending   map[uint8]chan ApplicationPDU

	// Discovered devices
	devicesMu sync.RWMutex
	devices   map[uint32]*DeviceInfo

	// Metrics
	metrics *Metrics

	// Logger
	logger *slog.Logger

	// Receiver goroutine
	receiverCtx    context.Context
	receiverCancel context.CancelFunc
	receiverDone   chan struct{}
}

// NewClient creates a new BACnet client
func NewClient(opts ...Option) (*Client, error) {
	options := defaultOptions()
	for _, opt := range opts {
		opt(options)
	}

	c := &Client{
		opts:    options,
		pending: make(map[uint8]chan ApplicationPDU),
		devices: make(map[uint32]*DeviceInfo),
		metrics: NewMetrics(),
		logger:  options.logger,
	}

	c.transport = transport.NewUDPTransport(options.localAddress)
	c.transport.SetReadTimeout(options.timeout)
	c.transport.SetWriteTimeout(options.timeout)

	return c, nil
}

// Connect opens the BACnet client connection
func (c *Client) Connect(ctx context.Context) error {
	if !c.state.CompareAndSwap(int32(StateDisconnected), int32(StateConnecting)) {
		return ErrAlreadyConnected
	}

	c.metrics.ConnectAttempts.Inc()

	if err := c.transport.Open(ctx); err != nil {
		c.state.Store(int32(StateDisconnected))
		c.metrics.ConnectFailures.Inc()
		return fmt.Errorf("open transport: %w", err)
	}

	c.receiverCtx, c.receiverCancel = context.WithCancel(context.Background())
	c.receiverDone = make(chan struct{})
	go c.receiver()

	c.state.Store(int32(StateConnected))
	c.metrics.ConnectSuccesses.Inc()

	c.logger.Info("connected",
		slog.String("local_addr", c.transport.LocalAddr().String()),
	)

	// Register as foreign device if BBMD is configured
	if c.opts.bbmdAddress != "" {
		if err := c.registerForeignDevice(ctx); err != nil {
			c.logger.Warn("failed to register as foreign device",
				slog.String("error", err.Error()),
			)
		}
	}

	return nil
}

// Close closes the BACnet client connection
func (c *Client) Close() error {
	if c.state.Load() == int32(StateDisconnected) {
		return nil
	}

	c.state.Store(int32(StateDisconnected))
	c.metrics.Disconnects.Inc()

	if c.receiverCancel != nil {
		c.receiverCancel()
		<-c.receiverDone
	}

	c.pendingMu.Lock()
	for _, ch := range c.pending {
		close(ch)
	}
	c.pending = make(map[uint8]chan ApplicationPDU)
	c.pendingMu.Unlock()

	if err := c.transport.Close(); err != nil {
		return fmt.Errorf("close transport: %w", err)
	}

	c.logger.Info("disconnected")
	return nil
}

// State returns the current connection state
func (c *Client) State() ConnectionState {
	return ConnectionState(c.state.Load())
}

// Metrics returns the client metrics
func (c *Client) Metrics() *Metrics {
	return c.metrics
}

// nextInvokeID returns the next invoke ID
func (c *Client) nextInvokeID() uint8 {
	return uint8(c.invokeID.Add(1) & 0xFF)
}

// receiver handles incoming frames
func (c *Client) receiver() {
	defer close(c.receiverDone)

	for {
		select {
		case <-c.receiverCtx.Done():
			return
		default:
		}

		data, addr, err := c.transport.ReceiveWithTimeout(100 * time.Millisecond)
		if err != nil {
			if netErr, ok := err.(net.Error); ok && netErr.Timeout() {
				continue
			}
			if c.transport.IsClosed() {
				return
			}
			c.logger.Debug("receive error", slog.String("error", err.Error()))
			continue
		}

		c.metrics.BytesReceived.Add(int64(len(data)))
		c.metrics.RecordActivity()

		c.handleFrame(data, addr)
	}
}

// handleFrame processes one incoming frame
func (c *Client) handleFrame(data []byte, addr *net.UDPAddr) {
	frame, err := DecodeDataLink(NewReader(data))
	if err != nil {
		c.metrics.DecodeErrors.Inc()
		c.logger.Debug("invalid frame",
			slog.String("remote_addr", addr.String()),
			slog.String("error", err.Error()),
		)
		return
	}

	if frame.Function == BVLCResult {
		if frame.Result != ResultSuccess {
			c.logger.Warn("link layer failure",
				slog.String("remote_addr", addr.String()),
				slog.Uint64("result", uint64(frame.Result)),
			)
		}
		return
	}

	npdu := frame.NPDU
	if npdu == nil || npdu.MessageType != nil {
		return
	}

	c.metrics.ResponsesReceived.Inc()

	switch p := npdu.APDU.(type) {
	case *UnconfirmedRequest:
		if iam, ok := p.Service.(*IAm); ok {
			c.handleIAm(iam, addr, npdu)
		}
	case *SimpleAck:
		c.dispatch(p.InvokeID, p)
	case *ComplexAck:
		c.dispatch(p.InvokeID, p)
	case *ErrorPDU:
		c.metrics.ErrorsReceived.Inc()
		c.dispatch(p.InvokeID, p)
	case *Reject:
		c.metrics.RejectsReceived.Inc()
		c.dispatch(p.InvokeID, p)
	case *Abort:
		c.metrics.AbortsReceived.Inc()
		c.dispatch(p.InvokeID, p)
	}
}

// handleIAm records a device announcement
func (c *Client) handleIAm(iam *IAm, addr *net.UDPAddr, npdu *NetworkPDU) {
	c.metrics.IAmReceived.Inc()

	device := &DeviceInfo{
		DeviceID:     iam.DeviceID.Instance,
		Address:      addr,
		Network:      npdu.Src,
		MaxAPDU:      iam.MaxAPDU,
		Segmentation: iam.Segmentation,
		VendorID:     iam.VendorID,
	}

	c.devicesMu.Lock()
	_, exists := c.devices[device.DeviceID]
	c.devices[device.DeviceID] = device
	c.devicesMu.Unlock()

	if !exists {
		c.metrics.DevicesDiscovered.Inc()
	}

	c.logger.Debug("device discovered",
		slog.Uint64("device_id", uint64(device.DeviceID)),
		slog.String("address", addr.String()),
		slog.Uint64("vendor_id", uint64(device.VendorID)),
	)
}

// dispatch routes a response to the pending request it answers
func (c *Client) dispatch(invokeID uint8, pdu ApplicationPDU) {
	c.pendingMu.RLock()
	ch, ok := c.pending[invokeID]
	c.pendingMu.RUnlock()

	if ok {
		select {
		case ch <- pdu:
		default:
		}
	}
}

// encodeFrame serializes a frame into a fresh buffer
func encodeFrame(frame *DataLink) ([]byte, error) {
	w := NewWriter(make([]byte, MaxAPDULength+64))
	if err := frame.Encode(w); err != nil {
		return nil, err
	}
	return w.Bytes(), nil
}

// sendRequest sends a confirmed request and waits for its answer, retrying
// per the client options on timeout.
func (c *Client) sendRequest(ctx context.Context, addr *net.UDPAddr, service ConfirmedServiceRequest) (ApplicationPDU, error) {
	if c.State() != StateConnected {
		return nil, ErrNotConnected
	}

	invokeID := c.nextInvokeID()
	respCh := make(chan ApplicationPDU, 1)

	c.pendingMu.Lock()
	c.pending[invokeID] = respCh
	c.pendingMu.Unlock()

	defer func() {
		c.pendingMu.Lock()
		delete(c.pending, invokeID)
		c.pendingMu.Unlock()
	}()

	frame := NewUnicastFrame(&ConfirmedRequest{
		InvokeID: invokeID,
		MaxAPDU:  MaxAPDU1476,
		Service:  service,
	})
	packet, err := encodeFrame(frame)
	if err != nil {
		return nil, fmt.Errorf("encode request: %w", err)
	}

	c.metrics.ActiveRequests.Inc()
	defer c.metrics.ActiveRequests.Dec()

	var lastErr error
	for attempt := 0; attempt <= c.opts.retries; attempt++ {
		if attempt > 0 {
			c.metrics.RequestRetries.Inc()
			select {
			case <-ctx.Done():
				return nil, ErrTimeout
			case <-time.After(c.opts.retryDelay):
			}
		}

		start := time.Now()
		c.metrics.RequestsSent.Inc()

		if err := c.transport.Send(ctx, addr, packet); err != nil {
			c.metrics.RequestsFailed.Inc()
			lastErr = fmt.Errorf("send request: %w", err)
			continue
		}
		c.metrics.BytesSent.Add(int64(len(packet)))

		timeout := time.NewTimer(c.opts.timeout)
		select {
		case <-ctx.Done():
			timeout.Stop()
			c.metrics.RequestsTimedOut.Inc()
			return nil, ErrTimeout

		case <-timeout.C:
			c.metrics.RequestsTimedOut.Inc()
			lastErr = ErrTimeout
			continue

		case resp, ok := <-respCh:
			timeout.Stop()
			c.metrics.RequestLatency.Record(time.Since(start))

			if !ok {
				return nil, ErrConnectionClosed
			}

			switch p := resp.(type) {
			case *SimpleAck, *ComplexAck:
				c.metrics.RequestsSucceeded.Inc()
				return resp, nil
			case *ErrorPDU:
				c.metrics.RequestsFailed.Inc()
				return nil, p.Err()
			case *Reject:
				c.metrics.RequestsFailed.Inc()
				return nil, p.Err()
			case *Abort:
				c.metrics.RequestsFailed.Inc()
				return nil, p.Err()
			default:
				return nil, fmt.Errorf("%w: unexpected PDU %T", ErrInvalidResponse, resp)
			}
		}
	}
	return nil, lastErr
}

// sendUnconfirmed sends an unconfirmed request, broadcast or unicast
func (c *Client) sendUnconfirmed(ctx context.Context, addr *net.UDPAddr, broadcast bool, service UnconfirmedServiceRequest) error {
	if c.State() != StateConnected {
		return ErrNotConnected
	}

	apdu := &UnconfirmedRequest{Service: service}
	var frame *DataLink
	if broadcast {
		frame = NewBroadcastFrame(apdu)
	} else {
		frame = NewUnicastFrame(apdu)
	}

	packet, err := encodeFrame(frame)
	if err != nil {
		return fmt.Errorf("encode request: %w", err)
	}

	c.metrics.RequestsSent.Inc()

	if broadcast {
		err = c.transport.Broadcast(ctx, DefaultPort, packet)
	} else {
		err = c.transport.Send(ctx, addr, packet)
	}
	if err != nil {
		c.metrics.RequestsFailed.Inc()
		return fmt.Errorf("send unconfirmed request: %w", err)
	}

	c.metrics.BytesSent.Add(int64(len(packet)))
	c.metrics.RequestsSucceeded.Inc()
	return nil
}

// registerForeignDevice registers with the configured BBMD so broadcasts
// reach this client across the router.
func (c *Client) registerForeignDevice(ctx context.Context) error {
	addr, err := net.ResolveUDPAddr("udp4", fmt.Sprintf("%s:%d", c.opts.bbmdAddress, c.opts.bbmdPort))
	if err != nil {
		return fmt.Errorf("resolve BBMD address: %w", err)
	}

	frame := &DataLink{
		Function: BVLCRegisterForeignDevice,
		TTL:      uint16(c.opts.foreignDeviceTTL.Seconds()),
	}
	packet, err := encodeFrame(frame)
	if err != nil {
		return fmt.Errorf("encode registration: %w", err)
	}

	if err := c.transport.Send(ctx, addr, packet); err != nil {
		return fmt.Errorf("send registration: %w", err)
	}

	c.logger.Info("registered as foreign device",
		slog.String("bbmd", addr.String()),
		slog.Duration("ttl", c.opts.foreignDeviceTTL),
	)

	return nil
}

// WhoIs broadcasts a Who-Is request and collects the devices that answer
// within the discovery window.
func (c *Client) WhoIs(ctx context.Context, opts ...DiscoverOption) ([]*DeviceInfo, error) {
	options := defaultDiscoverOptions()
	for _, opt := range opts {
		opt(options)
	}

	whoIs := &WhoIs{Low: options.LowLimit, High: options.HighLimit}
	if err := c.sendUnconfirmed(ctx, nil, true, whoIs); err != nil {
		return nil, err
	}
	c.metrics.WhoIsSent.Inc()

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case <-time.After(options.Timeout):
	}

	c.devicesMu.RLock()
	devices := make([]*DeviceInfo, 0, len(c.devices))
	for _, dev := range c.devices {
		if options.LowLimit != nil && dev.DeviceID < *options.LowLimit {
			continue
		}
		if options.HighLimit != nil && dev.DeviceID > *options.HighLimit {
			continue
		}
		devices = append(devices, dev)
	}
	c.devicesMu.RUnlock()

	return devices, nil
}

// GetDevice returns information about a discovered device
func (c *Client) GetDevice(deviceID uint32) (*DeviceInfo, bool) {
	c.devicesMu.RLock()
	defer c.devicesMu.RUnlock()
	dev, ok := c.devices[deviceID]
	return dev, ok
}

// resolveDevice resolves a device ID to its address, discovering it first
// if needed.
func (c *Client) resolveDevice(ctx context.Context, deviceID uint32) (*net.UDPAddr, error) {
	c.devicesMu.RLock()
	dev, ok := c.devices[deviceID]
	c.devicesMu.RUnlock()

	if !ok {
		_, err := c.WhoIs(ctx, WithDeviceRange(deviceID, deviceID), WithDiscoveryTimeout(c.opts.discoverTimeout))
		if err != nil {
			return nil, err
		}

		c.devicesMu.RLock()
		dev, ok = c.devices[deviceID]
		c.devicesMu.RUnlock()

		if !ok {
			return nil, ErrDeviceNotFound
		}
	}

	return dev.Address, nil
}

// ReadProperty reads one property of one object
func (c *Client) ReadProperty(ctx context.Context, deviceID uint32, objectID ObjectIdentifier, propertyID PropertyIdentifier, opts ...ReadOption) (ApplicationDataValue, error) {
	options := &ReadOptions{}
	for _, opt := range opts {
		opt(options)
	}

	addr, err := c.resolveDevice(ctx, deviceID)
	if err != nil {
		return nil, err
	}

	resp, err := c.sendRequest(ctx, addr, &ReadPropertyRequest{
		ObjectID:   objectID,
		PropertyID: propertyID,
		ArrayIndex: options.ArrayIndex,
	})
	if err != nil {
		return nil, err
	}

	complexAck, ok := resp.(*ComplexAck)
	if !ok {
		return nil, fmt.Errorf("%w: expected complex ack", ErrInvalidResponse)
	}
	ack, ok := complexAck.Ack.(*ReadPropertyAck)
	if !ok {
		return nil, fmt.Errorf("%w: expected read property ack", ErrInvalidResponse)
	}
	return ack.Value, nil
}

// ReadPropertyMultiple reads several properties in one round trip
func (c *Client) ReadPropertyMultiple(ctx context.Context, deviceID uint32, specs []ReadAccessSpec) ([]ReadAccessResult, error) {
	addr, err := c.resolveDevice(ctx, deviceID)
	if err != nil {
		return nil, err
	}

	resp, err := c.sendRequest(ctx, addr, &ReadPropertyMultipleRequest{Specs: specs})
	if err != nil {
		return nil, err
	}

	complexAck, ok := resp.(*ComplexAck)
	if !ok {
		return nil, fmt.Errorf("%w: expected complex ack", ErrInvalidResponse)
	}
	ack, ok := complexAck.Ack.(*ReadPropertyMultipleAck)
	if !ok {
		return nil, fmt.Errorf("%w: expected read property multiple ack", ErrInvalidResponse)
	}
	return ack.Objects, nil
}

// WriteProperty writes one property of one object
func (c *Client) WriteProperty(ctx context.Context, deviceID uint32, objectID ObjectIdentifier, propertyID PropertyIdentifier, value ApplicationDataValue, opts ...WriteOption) error {
	options := &WriteOptions{}
	for _, opt := range opts {
		opt(options)
	}

	addr, err := c.resolveDevice(ctx, deviceID)
	if err != nil {
		return err
	}

	_, err = c.sendRequest(ctx, addr, &WritePropertyRequest{
		ObjectID:   objectID,
		PropertyID: propertyID,
		ArrayIndex: options.ArrayIndex,
		Value:      value,
		Priority:   options.Priority,
	})
	return err
}

// TimeSync sends the current time to one device
func (c *Client) TimeSync(ctx context.Context, deviceID uint32, t time.Time, utc bool) error {
	addr, err := c.resolveDevice(ctx, deviceID)
	if err != nil {
		return err
	}

	if err := c.sendUnconfirmed(ctx, addr, false, NewTimeSynchronization(t, utc)); err != nil {
		return err
	}
	c.metrics.TimeSyncsSent.Inc()
	return nil
}

// TimeSyncBroadcast sends the current time to every device on the local
// network.
func (c *Client) TimeSyncBroadcast(ctx context.Context, t time.Time, utc bool) error {
	if err := c.sendUnconfirmed(ctx, nil, true, NewTimeSynchronization(t, utc)); err != nil {
		return err
	}
	c.metrics.TimeSyncsSent.Inc()
	return nil
}

// ReadDateTime reads a device's local date and time in one round trip
func (c *Client) ReadDateTime(ctx context.Context, deviceID uint32) (time.Time, error) {
	results, err := c.ReadPropertyMultiple(ctx, deviceID, []ReadAccessSpec{{
		ObjectID: NewObjectIdentifier(ObjectTypeDevice, deviceID),
		Properties: []PropertyReference{
			{PropertyID: PropertyLocalDate},
			{PropertyID: PropertyLocalTime},
		},
	}})
	if err != nil {
		return time.Time{}, err
	}

	var date *Date
	var tod *Time
	for _, obj := range results {
		for _, res := range obj.Results {
			if res.Error != nil {
				return time.Time{}, res.Error.Err()
			}
			switch v := res.Value.(type) {
			case Date:
				date = &v
			case Time:
				tod = &v
			}
		}
	}
	if date == nil || tod == nil {
		return time.Time{}, fmt.Errorf("%w: device returned no date or time", ErrInvalidResponse)
	}
	return time.Date(
		int(date.CalendarYear()), time.Month(date.Month), int(date.Day),
		int(tod.Hour), int(tod.Minute), int(tod.Second), int(tod.Hundredths)*10_000_000,
		time.Local,
	), nil
}

// GetObjectList retrieves the list of objects from a device one array
// element at a time.
func (c *Client) GetObjectList(ctx context.Context, deviceID uint32) ([]ObjectIdentifier, error) {
	deviceOID := NewObjectIdentifier(ObjectTypeDevice, deviceID)

	lengthVal, err := c.ReadProperty(ctx, deviceID, deviceOID, PropertyObjectList, WithArrayIndex(0))
	if err != nil {
		return nil, err
	}
	length, ok := lengthVal.(UnsignedInteger)
	if !ok {
		return nil, fmt.Errorf("%w: object-list length is %T", ErrInvalidResponse, lengthVal)
	}

	objects := make([]ObjectIdentifier, 0, length)
	for i := uint32(1); i <= uint32(length); i++ {
		val, err := c.ReadProperty(ctx, deviceID, deviceOID, PropertyObjectList, WithArrayIndex(i))
		if err != nil {
			continue
		}
		if oid, ok := val.(ObjectIdentifier); ok {
			objects = append(objects, oid)
		}
	}
	return objects, nil
}
