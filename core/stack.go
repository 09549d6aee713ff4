package core

import (
	"runtime"
	"strconv"
	"strings"
)

const maxStackDepth = 32

// CaptureStack records the program counters of the calling goroutine.
// skip follows runtime.Caller: 0 is the function calling CaptureStack.
func CaptureStack(skip int) []uintptr {
	pcs := make([]uintptr, maxStackDepth)
	n := runtime.Callers(skip+2, pcs)
	return pcs[:n]
}

// FormatStack renders program counters one frame per two lines, the same
// shape runtime/debug.Stack uses for a single goroutine.
func FormatStack(pcs []uintptr) string {
	if len(pcs) == 0 {
		return ""
	}

	var sb strings.Builder
	frames := runtime.CallersFrames(pcs)
	for {
		frame, more := frames.Next()
		if frame.Function != "" {
			if sb.Len() > 0 {
				sb.WriteByte('\n')
			}
			sb.WriteString(frame.Function)
			sb.WriteString("\n\t")
			sb.WriteString(frame.File)
			sb.WriteByte(':')
			sb.WriteString(strconv.Itoa(frame.Line))
		}
		if !more {
			break
		}
	}
	return sb.String()
}
