package formatter

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"
	"go.uber.org/multierr"

	"github.com/philipp01105/dailylog/core"
)

// Stage transforms an entry in place. Stages run in order, once per record,
// before the entry is handed to any handler.
type Stage func(entry *core.Entry) error

// Pipeline is an ordered list of stages.
type Pipeline []Stage

// Combine builds a pipeline from the given stages.
func Combine(stages ...Stage) Pipeline {
	return Pipeline(stages)
}

// DefaultPipeline stamps the time with layout, interpolates arguments,
// resolves errors with their stack and renders non-string values as JSON.
// Level colorization is done by the console renderer.
func DefaultPipeline(layout string) Pipeline {
	return Combine(
		Timestamp(layout),
		Splat(),
		Errors(true),
		Message(),
	)
}

// Apply runs every stage. A failing stage does not stop the ones after it;
// all failures are returned together.
func (p Pipeline) Apply(entry *core.Entry) error {
	var err error
	for _, stage := range p {
		err = multierr.Append(err, stage(entry))
	}
	return err
}

// Timestamp renders entry.Time into entry.Timestamp.
func Timestamp(layout string) Stage {
	if layout == "" {
		layout = DefaultTimestampFormat
	}
	return func(entry *core.Entry) error {
		entry.Timestamp = entry.Time.Format(layout)
		return nil
	}
}

// Splat interpolates entry.Args into a string value. Verbs consume
// arguments left to right and leftovers are appended to the message
// separated by spaces. The first leftover error also becomes the record
// error.
func Splat() Stage {
	return func(entry *core.Entry) error {
		args := entry.Args
		msg, isString := entry.Value.(string)
		if !isString {
			captureError(entry, args)
			return nil
		}
		if len(args) == 0 {
			entry.Message = msg
			return nil
		}

		n := countVerbs(msg)
		if n > len(args) {
			n = len(args)
		}
		if n > 0 {
			msg = fmt.Sprintf(msg, args[:n]...)
		}

		var sb strings.Builder
		sb.WriteString(msg)
		for _, arg := range args[n:] {
			if err, ok := arg.(error); ok && entry.Err == nil {
				entry.Err = err
			}
			sb.WriteByte(' ')
			fmt.Fprintf(&sb, "%v", arg)
		}
		entry.Message = sb.String()
		return nil
	}
}

func captureError(entry *core.Entry, args []interface{}) {
	if entry.Err != nil {
		return
	}
	for _, arg := range args {
		if err, ok := arg.(error); ok {
			entry.Err = err
			return
		}
	}
}

// countVerbs counts the formatting directives in a printf-style template.
// "%%" is a literal and does not consume an argument.
func countVerbs(s string) int {
	n := 0
	for i := 0; i < len(s); i++ {
		if s[i] != '%' {
			continue
		}
		i++
		if i >= len(s) {
			break
		}
		if s[i] == '%' {
			continue
		}
		// skip flags, width, precision and argument indexes up to the verb
		for i < len(s) && strings.IndexByte("+-# 0123456789.[]*", s[i]) >= 0 {
			i++
		}
		n++
	}
	return n
}

type stackTracer interface {
	StackTrace() errors.StackTrace
}

// Errors resolves error values. When the logged value is an error its text
// becomes the message. When withStack is set and the record carries an
// error, entry.Stack is the error's own stack if it has one, otherwise the
// stack captured at the log call.
func Errors(withStack bool) Stage {
	return func(entry *core.Entry) error {
		if err, ok := entry.Value.(error); ok {
			if entry.Err == nil {
				entry.Err = err
			}
			if entry.Message == "" {
				entry.Message = err.Error()
			}
		}
		if !withStack || entry.Err == nil {
			return nil
		}

		var st stackTracer
		if errors.As(entry.Err, &st) {
			entry.Stack = strings.TrimPrefix(fmt.Sprintf("%+v", st.StackTrace()), "\n")
			return nil
		}
		entry.Stack = core.FormatStack(entry.PCs)
		return nil
	}
}

// Message renders whatever is still unrendered: strings as they are, any
// other value through Stringify. When serialization fails the value is
// rendered with %+v and the error is returned.
func Message() Stage {
	return func(entry *core.Entry) error {
		if entry.Message != "" {
			return nil
		}
		if v, ok := entry.Value.(string); ok {
			entry.Message = v
			return nil
		}

		s, err := Stringify(entry.Value)
		if err != nil {
			entry.Message = fmt.Sprintf("%+v", entry.Value)
			return errors.Wrap(err, "stringify log message")
		}
		entry.Message = s
		return nil
	}
}
