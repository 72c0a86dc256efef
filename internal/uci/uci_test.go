package uci_test

import (
	"bytes"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/corvidchess/corvid/internal/config"
	"github.com/corvidchess/corvid/internal/uci"
)

// syncBuffer lets a test inspect output emitted asynchronously from the
// search goroutine's result callback without racing the Handler's own
// internal synchronization.
type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func newHandler(t *testing.T) *uci.Handler {
	t.Helper()
	cfg := config.Default()
	cfg.Search.HashSizeMb = 1
	return uci.New(cfg)
}

// Scenario 1 (§8): "uci" yields id lines, at least one option line, then uciok.
func TestUciCommandIdentifiesEngineAndOptions(t *testing.T) {
	h := newHandler(t)
	out := h.Command("uci")

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.NotEmpty(t, lines)
	assert.True(t, strings.HasPrefix(lines[0], "id name "))
	assert.True(t, strings.Contains(out, "id author "))
	assert.True(t, strings.Contains(out, "option name Threads"))
	assert.Equal(t, "uciok", lines[len(lines)-1])
}

// Scenario 2 (§8): position startpos, go depth 1 -> a legal bestmove,
// reported asynchronously through the result callback once the search
// finishes.
func TestPositionStartposGoDepthOneProducesBestMove(t *testing.T) {
	h := newHandler(t)
	buf := &syncBuffer{}
	h.SetOutput(buf)

	h.Command("position startpos")
	h.Command("go depth 1")

	deadline := time.Now().Add(5 * time.Second)
	for time.Now().Before(deadline) && !strings.Contains(buf.String(), "bestmove") {
		time.Sleep(20 * time.Millisecond)
	}
	assert.Contains(t, buf.String(), "bestmove")
}

// Scenario 6 (§8): a known opening sequence is accepted without diagnostics.
func TestPositionMovesIsAcceptedWithoutDiagnostic(t *testing.T) {
	h := newHandler(t)
	out := h.Command("position startpos moves e2e4 e7e5 g1f3")
	assert.Empty(t, out)
}

func TestPositionWithInvalidMoveReportsInfoString(t *testing.T) {
	h := newHandler(t)
	out := h.Command("position startpos moves e2e5")
	assert.Contains(t, out, "info string")
}

// Scenario 5 (§8): "go infinite" then "stop" shortly after must produce a
// bestmove promptly.
func TestStopAfterInfiniteSearchProducesBestMoveQuickly(t *testing.T) {
	h := newHandler(t)
	h.Command("position startpos")
	h.Command("go infinite")

	time.Sleep(100 * time.Millisecond)
	start := time.Now()
	out := h.Command("stop")
	assert.Less(t, time.Since(start), 200*time.Millisecond)
	assert.Contains(t, out, "bestmove")
}

func TestSetOptionOutOfRangeIsReportedAsInfoString(t *testing.T) {
	h := newHandler(t)
	out := h.Command("setoption name Threads value 999999")
	assert.Contains(t, out, "info string")
	assert.Contains(t, out, "out of range")
}

func TestSetOptionUnknownNameIsReportedAsInfoString(t *testing.T) {
	h := newHandler(t)
	out := h.Command("setoption name NotAnOption value 1")
	assert.Contains(t, out, "info string")
}
