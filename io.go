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

// Writer appends bytes sequentially into a caller-owned buffer. It never
// grows the buffer: running out of space returns ErrOverflow so callers with
// fixed-size transmit buffers fail cleanly instead of allocating.
type Writer struct {
	buf []byte
	n   int
}

// NewWriter wraps buf for sequential writing starting at offset 0.
func NewWriter(buf []byte) *Writer {
	return &Writer{buf: buf}
}

// Push writes a single byte.
func (w *Writer) Push(b byte) error {
	if w.n >= len(w.buf) {
		return ErrOverflow
	}
	w.buf[w.n] = b
	w.n++
	return nil
}

// Append writes p in full or fails with ErrOverflow without partial writes.
func (w *Writer) Append(p ...byte) error {
	if w.n+len(p) > len(w.buf) {
		return ErrOverflow
	}
	copy(w.buf[w.n:], p)
	w.n += len(p)
	return nil
}

// Len returns the number of bytes written so far.
func (w *Writer) Len() int {
	return w.n
}

// Bytes returns the written prefix of the underlying buffer.
func (w *Writer) Bytes() []byte {
	return w.buf[:w.n]
}

// putUint16At patches a big-endian u16 at an already-written offset. Used by
// the link layer to fill in the frame length after encoding the payload.
func (w *Writer) putUint16At(off int, v uint16) {
	w.buf[off] = byte(v >> 8)
	w.buf[off+1] = byte(v)
}

// Reader consumes bytes sequentially from a borrowed buffer. Every read is
// bounds checked and fails with ErrTruncated past the end; it never panics,
// which is the binding safety property for untrusted network input.
type Reader struct {
	buf []byte
	off int
}

// NewReader wraps buf for sequential reading starting at offset 0.
func NewReader(buf []byte) *Reader {
	return &Reader{buf: buf}
}

// ReadByte consumes and returns one byte.
func (r *Reader) ReadByte() (byte, error) {
	if r.off >= len(r.buf) {
		return 0, ErrTruncated
	}
	b := r.buf[r.off]
	r.off++
	return b, nil
}

// ReadSlice borrows the next n bytes of the underlying buffer and advances.
// The returned slice aliases the input buffer; callers that retain it past
// the buffer's release must copy it out first.
func (r *Reader) ReadSlice(n int) ([]byte, error) {
	if n < 0 || r.off+n > len(r.buf) {
		return nil, ErrTruncated
	}
	s := r.buf[r.off : r.off+n]
	r.off += n
	return s, nil
}

// ReadUint16 consumes a big-endian u16.
func (r *Reader) ReadUint16() (uint16, error) {
	s, err := r.ReadSlice(2)
	if err != nil {
		return 0, err
	}
	return uint16(s[0])<<8 | uint16(s[1]), nil
}

// Remaining returns the number of unread bytes.
func (r *Reader) Remaining() int {
	return len(r.buf) - r.off
}

// peekByte returns the next byte without advancing.
func (r *Reader) peekByte() (byte, error) {
	if r.off >= len(r.buf) {
		return 0, ErrTruncated
	}
	return r.buf[r.off], nil
}
