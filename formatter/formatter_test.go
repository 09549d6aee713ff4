package formatter

import (
	"encoding/json"
	"regexp"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/philipp01105/dailylog/core"
)

var ansi = regexp.MustCompile(`\x1b\[[0-9;]*m`)

func stripANSI(s string) string {
	return ansi.ReplaceAllString(s, "")
}

func TestLineFormatter_Basic(t *testing.T) {
	f := NewLineFormatter(LineConfig{})

	entry := &core.Entry{
		Time:    time.Date(2026, 2, 18, 13, 4, 5, 0, time.UTC),
		Level:   core.InfoLevel,
		Message: "test message",
	}

	result, err := f.Format(entry)
	require.NoError(t, err)
	assert.Equal(t, "[info][2026-02-18 13:04:05]: test message\n", string(result))
}

func TestLineFormatter_UsesPipelineTimestamp(t *testing.T) {
	f := NewLineFormatter(LineConfig{})

	entry := &core.Entry{
		Time:      time.Date(2026, 2, 18, 13, 4, 5, 0, time.UTC),
		Timestamp: "stamped",
		Level:     core.WarnLevel,
		Message:   "m",
	}

	result, err := f.Format(entry)
	require.NoError(t, err)
	assert.Equal(t, "[warn][stamped]: m\n", string(result))
}

func TestLineFormatter_Colorize(t *testing.T) {
	plain := NewLineFormatter(LineConfig{})
	colored := NewLineFormatter(LineConfig{Colorize: true})

	entry := &core.Entry{
		Time:    time.Date(2026, 2, 18, 13, 4, 5, 0, time.UTC),
		Level:   core.ErrorLevel,
		Message: "failed",
	}

	p, err := plain.Format(entry)
	require.NoError(t, err)
	c, err := colored.Format(entry)
	require.NoError(t, err)

	assert.NotContains(t, string(p), "\x1b[")
	assert.Contains(t, string(c), "\x1b[31m")
	assert.Equal(t, string(p), stripANSI(string(c)))
}

func TestLineFormatter_Stack(t *testing.T) {
	f := NewLineFormatter(LineConfig{})

	entry := &core.Entry{
		Time:    time.Date(2026, 2, 18, 13, 4, 5, 0, time.UTC),
		Level:   core.ErrorLevel,
		Message: "boom",
		Stack:   "main.main\n\t/app/main.go:10",
	}

	result, err := f.Format(entry)
	require.NoError(t, err)
	assert.Equal(t, "[error][2026-02-18 13:04:05]: boom\nmain.main\n\t/app/main.go:10\n", string(result))
}

func TestLineFormatter_WithFields(t *testing.T) {
	entry := &core.Entry{
		Time:    time.Now(),
		Level:   core.InfoLevel,
		Message: "test",
		Fields: []core.Field{
			{Key: "key1", Type: core.StringType, Str: "value1"},
			{Key: "key2", Type: core.IntType, Int64: 42},
		},
	}

	without, err := NewLineFormatter(LineConfig{}).Format(entry)
	require.NoError(t, err)
	assert.NotContains(t, string(without), "key1=value1")

	with, err := NewLineFormatter(LineConfig{Config: Config{IncludeFields: true}}).Format(entry)
	require.NoError(t, err)
	assert.Contains(t, string(with), "test key1=value1 key2=42\n")
}

func TestLineFormatter_WithCaller(t *testing.T) {
	f := NewLineFormatter(LineConfig{Config: Config{IncludeCaller: true}})

	entry := &core.Entry{
		Time:    time.Now(),
		Level:   core.InfoLevel,
		Message: "test",
		Caller: core.CallerInfo{
			File:      "/path/to/file.go",
			ShortFile: "file.go",
			Line:      123,
			Function:  "main.main",
			Defined:   true,
		},
	}

	result, err := f.Format(entry)
	require.NoError(t, err)
	assert.Contains(t, string(result), "[file.go:123] test")
}

func TestJSONFormatter_Basic(t *testing.T) {
	f := NewJSONFormatter(Config{})

	entry := &core.Entry{
		Time:    time.Date(2026, 2, 18, 13, 0, 0, 0, time.UTC),
		Level:   core.InfoLevel,
		Message: "test \"quoted\" message",
		Stack:   "frame\n\tfile.go:1",
	}

	result, err := f.Format(entry)
	require.NoError(t, err)

	var data map[string]interface{}
	require.NoError(t, json.Unmarshal(result, &data))
	assert.Equal(t, "info", data["level"])
	assert.Equal(t, "2026-02-18 13:00:00", data["timestamp"])
	assert.Equal(t, "test \"quoted\" message", data["message"])
	assert.Equal(t, "frame\n\tfile.go:1", data["stack"])
}

func TestJSONFormatter_WithFields(t *testing.T) {
	f := NewJSONFormatter(Config{})

	entry := &core.Entry{
		Time:    time.Now(),
		Level:   core.InfoLevel,
		Message: "test",
		Fields: []core.Field{
			{Key: "str", Type: core.StringType, Str: "value"},
			{Key: "int", Type: core.IntType, Int64: 42},
			{Key: "bool", Type: core.BoolType, Int64: 1},
			{Key: "obj", Type: core.AnyType, Any: map[string]int{"b": 2, "a": 1}},
		},
	}

	result, err := f.Format(entry)
	require.NoError(t, err)
	assert.Contains(t, string(result), `"obj":{"a":1,"b":2}`)

	var data map[string]interface{}
	require.NoError(t, json.Unmarshal(result, &data))
	assert.Equal(t, "value", data["str"])
	assert.Equal(t, float64(42), data["int"])
	assert.Equal(t, true, data["bool"])
}

func TestJSONFormatter_WithCaller(t *testing.T) {
	f := NewJSONFormatter(Config{IncludeCaller: true})

	entry := &core.Entry{
		Time:    time.Now(),
		Level:   core.InfoLevel,
		Message: "test",
		Caller: core.CallerInfo{
			File:      "/path/to/file.go",
			ShortFile: "file.go",
			Line:      123,
			Function:  "main.main",
			Defined:   true,
		},
	}

	result, err := f.Format(entry)
	require.NoError(t, err)

	var data map[string]interface{}
	require.NoError(t, json.Unmarshal(result, &data))

	caller, ok := data["caller"].(map[string]interface{})
	require.True(t, ok, "expected caller object in JSON")
	assert.Equal(t, "file.go", caller["file"])
	assert.Equal(t, float64(123), caller["line"])
}

func TestDefaultPipeline_LineShape(t *testing.T) {
	pattern := regexp.MustCompile(`^\[info\]\[\d{4}-\d{2}-\d{2} \d{2}:\d{2}:\d{2}\]: (.*)\n$`)
	f := NewLineFormatter(LineConfig{})
	p := DefaultPipeline(DefaultTimestampFormat)

	for _, msg := range []string{"hello", "", "with spaces and : colons", "unicode ✓"} {
		entry := &core.Entry{Time: time.Now(), Level: core.InfoLevel, Value: msg}
		require.NoError(t, p.Apply(entry))

		out, err := f.Format(entry)
		require.NoError(t, err)

		m := pattern.FindStringSubmatch(string(out))
		require.NotNil(t, m, "line %q does not match", out)
		assert.Equal(t, msg, m[1])
	}
}

func BenchmarkLineFormatter(b *testing.B) {
	f := NewLineFormatter(LineConfig{Colorize: true})
	entry := &core.Entry{
		Time:      time.Now(),
		Timestamp: "2026-10-15 09:30:00",
		Level:     core.InfoLevel,
		Message:   "test message",
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = f.Format(entry)
	}
}

func BenchmarkJSONFormatter(b *testing.B) {
	f := NewJSONFormatter(Config{})
	entry := &core.Entry{
		Time:    time.Now(),
		Level:   core.InfoLevel,
		Message: "test message",
		Fields: []core.Field{
			{Key: "key1", Type: core.StringType, Str: "value1"},
			{Key: "key2", Type: core.IntType, Int64: 42},
		},
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = f.Format(entry)
	}
}
