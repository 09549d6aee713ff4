package consolehandler

import (
	"bytes"
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/philipp01105/dailylog/core"
	"github.com/philipp01105/dailylog/formatter"
	"github.com/philipp01105/dailylog/handler"
	"github.com/philipp01105/dailylog/handler/asynchandler"
)

func newEntry(level core.Level, msg string) *core.Entry {
	entry := core.GetEntry()
	entry.Level = level
	entry.Timestamp = "2026-10-15 09:30:00"
	entry.Message = msg
	return entry
}

func TestConsoleHandler_Sync(t *testing.T) {
	var buf bytes.Buffer
	h := NewConsoleHandler(ConsoleConfig{
		Writer:    &buf,
		Formatter: formatter.NewLineFormatter(formatter.LineConfig{}),
	})
	defer h.Close()

	require.NoError(t, h.Handle(newEntry(core.InfoLevel, "test message")))
	assert.Equal(t, "[info][2026-10-15 09:30:00]: test message\n", buf.String())
	assert.True(t, handler.CanRecycle(h))
}

func TestConsoleHandler_DefaultFormatterIsColorized(t *testing.T) {
	var buf bytes.Buffer
	h := NewConsoleHandler(ConsoleConfig{Writer: &buf})
	defer h.Close()

	require.NoError(t, h.Handle(newEntry(core.InfoLevel, "colored")))
	assert.Contains(t, buf.String(), "\x1b[32m")
	assert.Contains(t, buf.String(), "]: colored\n")
}

func TestConsoleHandler_Async(t *testing.T) {
	var buf bytes.Buffer
	h := NewConsoleHandler(ConsoleConfig{
		Writer:     &buf,
		Async:      true,
		BufferSize: 100,
		Formatter:  formatter.NewLineFormatter(formatter.LineConfig{}),
	})
	_, isAsync := h.(*asynchandler.Handler)
	require.True(t, isAsync)

	for i := 0; i < 50; i++ {
		require.NoError(t, h.Handle(newEntry(core.InfoLevel, "async test")))
	}
	require.NoError(t, h.Close())

	assert.Equal(t, 50, strings.Count(buf.String(), "async test"))
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) { return 0, errors.New("broken pipe") }

func TestConsoleHandler_WriteError(t *testing.T) {
	h := NewConsoleHandler(ConsoleConfig{
		Writer:    failingWriter{},
		Formatter: formatter.NewJSONFormatter(formatter.Config{}),
	})
	defer h.Close()

	err := h.Handle(newEntry(core.ErrorLevel, "lost"))
	require.EqualError(t, err, "broken pipe")

	snap := h.(handler.StatsProvider).Stats()
	assert.Equal(t, uint64(1), snap.FailedTotal)
	assert.Zero(t, snap.ProcessedTotal)
}

func TestConsoleHandler_Parallel(t *testing.T) {
	var buf bytes.Buffer
	h := NewConsoleHandler(ConsoleConfig{
		Writer:    &buf,
		Formatter: formatter.NewLineFormatter(formatter.LineConfig{}),
	})
	defer h.Close()

	const goroutines = 8
	const msgs = 100
	var wg sync.WaitGroup
	for g := 0; g < goroutines; g++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < msgs; i++ {
				entry := newEntry(core.InfoLevel, "parallel safe test")
				_ = h.Handle(entry)
				core.PutEntry(entry)
			}
		}()
	}
	wg.Wait()

	snap := h.(handler.StatsProvider).Stats()
	assert.Equal(t, uint64(goroutines*msgs), snap.ProcessedTotal)

	lines := strings.Split(strings.TrimSuffix(buf.String(), "\n"), "\n")
	require.Len(t, lines, goroutines*msgs)
	for _, line := range lines {
		assert.Equal(t, "[info][2026-10-15 09:30:00]: parallel safe test", line)
	}
}

func TestConsoleHandler_FlushNonFile(t *testing.T) {
	h := NewConsoleHandler(ConsoleConfig{Writer: &bytes.Buffer{}})
	assert.NoError(t, handler.Flush(h))
	assert.NoError(t, h.Close())
	assert.NoError(t, h.Close(), "second close is a no-op")
}
