// Package telemetry streams board snapshots to an external consumer as
// newline-delimited JSON.
package telemetry

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"time"
)

// Sink delivers telemetry records.
type Sink interface {
	Emit(record any) error
	Close() error
}

// WriterSink writes one JSON object per line to an io.Writer.
type WriterSink struct {
	enc    *json.Encoder
	closer io.Closer
}

// NewWriterSink creates a sink over w. If w is also an io.Closer it is
// closed by Close.
func NewWriterSink(w io.Writer) *WriterSink {
	s := &WriterSink{enc: json.NewEncoder(w)}
	if c, ok := w.(io.Closer); ok {
		s.closer = c
	}
	return s
}

// Emit encodes record followed by a newline.
func (s *WriterSink) Emit(record any) error {
	if err := s.enc.Encode(record); err != nil {
		return fmt.Errorf("telemetry: encode: %w", err)
	}
	return nil
}

// Close closes the underlying writer when it supports closing.
func (s *WriterSink) Close() error {
	if s.closer == nil {
		return nil
	}
	return s.closer.Close()
}

// DefaultDialTimeout bounds connection attempts of a TCPSink.
const DefaultDialTimeout = 2 * time.Second

// DefaultWriteTimeout bounds a single record write of a TCPSink.
const DefaultWriteTimeout = time.Second

// DefaultRedialDelay is how long a TCPSink waits after a failed dial before
// dialling again.
const DefaultRedialDelay = 5 * time.Second

// ErrBackoff is returned by TCPSink.Emit while a failed dial is cooling down.
// The record is dropped without touching the network.
var ErrBackoff = errors.New("telemetry: waiting to redial")

// TCPSink streams records to a TCP listener. The connection is dialled on
// the first Emit and re-dialled on the Emit after a failure. After a failed
// dial no new dial is attempted for RedialDelay. Not safe for concurrent use.
type TCPSink struct {
	addr         string
	dialTimeout  time.Duration
	writeTimeout time.Duration
	redialDelay  time.Duration
	now          func() time.Time

	conn     net.Conn
	enc      *json.Encoder
	nextDial time.Time
}

// NewTCPSink creates a sink for addr ("host:port"). No connection is made
// until the first record is emitted.
func NewTCPSink(addr string) *TCPSink {
	return &TCPSink{
		addr:         addr,
		dialTimeout:  DefaultDialTimeout,
		writeTimeout: DefaultWriteTimeout,
		redialDelay:  DefaultRedialDelay,
		now:          time.Now,
	}
}

// SetRedialDelay changes the wait after a failed dial. Zero disables it.
func (s *TCPSink) SetRedialDelay(d time.Duration) {
	s.redialDelay = d
}

// Addr returns the destination address.
func (s *TCPSink) Addr() string {
	return s.addr
}

// Connected reports whether a connection is currently open.
func (s *TCPSink) Connected() bool {
	return s.conn != nil
}

// Emit sends record as one JSON line. On a write failure the connection is
// dropped so the next call dials again.
func (s *TCPSink) Emit(record any) error {
	if s.conn == nil {
		if now := s.now(); now.Before(s.nextDial) {
			return fmt.Errorf("%w %s in %s", ErrBackoff, s.addr, s.nextDial.Sub(now))
		}
		conn, err := net.DialTimeout("tcp", s.addr, s.dialTimeout)
		if err != nil {
			s.nextDial = s.now().Add(s.redialDelay)
			return fmt.Errorf("telemetry: dial %s: %w", s.addr, err)
		}
		s.conn = conn
		s.enc = json.NewEncoder(conn)
	}

	if s.writeTimeout > 0 {
		_ = s.conn.SetWriteDeadline(time.Now().Add(s.writeTimeout))
	}
	if err := s.enc.Encode(record); err != nil {
		s.drop()
		return fmt.Errorf("telemetry: send to %s: %w", s.addr, err)
	}
	return nil
}

// Close closes the connection if one is open.
func (s *TCPSink) Close() error {
	if s.conn == nil {
		return nil
	}
	err := s.conn.Close()
	s.conn = nil
	s.enc = nil
	return err
}

func (s *TCPSink) drop() {
	_ = s.Close()
}
