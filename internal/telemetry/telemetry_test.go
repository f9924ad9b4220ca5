package telemetry

import (
	"bufio"
	"bytes"
	"encoding/json"
	"errors"
	"net"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	tetris "github.com/vovakirdan/tetris-gym/internal/games/tetris/core"
)

func sampleSnapshot() tetris.Snapshot {
	return tetris.Snapshot{
		Contour:             []int{1, -1, 0, 0, 2, 0, 0, -2, 0},
		CurrentPiece:        "T",
		NormalLinesCleared:  3,
		GarbageLinesCleared: 1,
	}
}

func TestWriterSinkWritesOneLinePerRecord(t *testing.T) {
	var buf bytes.Buffer
	sink := NewWriterSink(&buf)

	require.NoError(t, sink.Emit(sampleSnapshot()))
	require.NoError(t, sink.Emit(sampleSnapshot()))
	require.NoError(t, sink.Close())

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 2)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &decoded))
	assert.Equal(t, "T", decoded["currentPiece"])
	assert.Equal(t, 3.0, decoded["normalLinesCleared"])
	assert.Equal(t, 1.0, decoded["garbageLinesCleared"])
	assert.Len(t, decoded["contour"], 9)
	assert.NotContains(t, decoded, "grid")
}

func TestTCPSinkDeliversAndRedials(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	defer ln.Close()

	received := make(chan string, 4)
	go func() {
		for {
			conn, err := ln.Accept()
			if err != nil {
				return
			}
			go func(c net.Conn) {
				defer c.Close()
				scanner := bufio.NewScanner(c)
				for scanner.Scan() {
					received <- scanner.Text()
				}
			}(conn)
		}
	}()

	sink := NewTCPSink(ln.Addr().String())
	assert.False(t, sink.Connected(), "dial is lazy")

	require.NoError(t, sink.Emit(sampleSnapshot()))
	assert.True(t, sink.Connected())
	require.NoError(t, sink.Close())
	assert.False(t, sink.Connected())

	require.NoError(t, sink.Emit(sampleSnapshot()))
	defer sink.Close()

	for i := 0; i < 2; i++ {
		select {
		case line := <-received:
			assert.Contains(t, line, `"currentPiece":"T"`)
		case <-time.After(2 * time.Second):
			t.Fatalf("timed out waiting for record %d", i)
		}
	}
}

func TestTCPSinkDialFailure(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	addr := ln.Addr().String()
	require.NoError(t, ln.Close())

	sink := NewTCPSink(addr)
	err = sink.Emit(sampleSnapshot())

	require.Error(t, err)
	assert.Contains(t, err.Error(), "telemetry: dial")
	assert.False(t, sink.Connected())
}

func TestTCPSinkWaitsBeforeRedial(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	addr := ln.Addr().String()
	require.NoError(t, ln.Close())

	clock := time.Unix(1000, 0)
	sink := NewTCPSink(addr)
	sink.now = func() time.Time { return clock }
	sink.SetRedialDelay(10 * time.Second)

	err = sink.Emit(sampleSnapshot())
	require.Error(t, err)
	assert.False(t, errors.Is(err, ErrBackoff), "first failure is a real dial")

	clock = clock.Add(5 * time.Second)
	err = sink.Emit(sampleSnapshot())
	assert.True(t, errors.Is(err, ErrBackoff), "no dial while cooling down, got %v", err)

	// Once the delay has passed the sink dials again and reaches the listener.
	ln, err = net.Listen("tcp", addr)
	require.NoError(t, err)
	defer ln.Close()
	go func() {
		conn, err := ln.Accept()
		if err == nil {
			conn.Close()
		}
	}()

	clock = clock.Add(5 * time.Second)
	require.NoError(t, sink.Emit(sampleSnapshot()))
	assert.True(t, sink.Connected())
	require.NoError(t, sink.Close())
}

type flakySink struct {
	fail    bool
	records int
}

func (f *flakySink) Emit(any) error {
	if f.fail {
		return errors.New("connection refused")
	}
	f.records++
	return nil
}

func (f *flakySink) Close() error { return nil }

func TestReporterSwallowsFailures(t *testing.T) {
	sink := &flakySink{fail: true}
	r := NewReporter(sink, nil)

	r.Observe(sampleSnapshot())
	r.Observe(sampleSnapshot())
	assert.Equal(t, 2, r.Failures())
	assert.Equal(t, 0, r.Sent())

	sink.fail = false
	r.Observe(sampleSnapshot())
	assert.Equal(t, 1, r.Sent())
	assert.Equal(t, 1, sink.records)
}
