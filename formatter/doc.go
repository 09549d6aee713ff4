// Package formatter turns log records into text.
//
// Formatting happens in two steps. A Pipeline of Stages runs once per
// record inside the logger: Timestamp stamps the record, Splat interpolates
// positional arguments, Errors resolves error values and their stacks, and
// Message renders any remaining non-string value with Stringify. The
// completed entry is then handed to every handler, whose Formatter only
// lays the already rendered pieces out. This keeps console and file output
// identical apart from the colorized level label.
//
// Stringify encodes values as JSON with github.com/segmentio/encoding.
// Integers are written digit for digit, so identifiers above 2^53 are not
// rounded the way a float64 round trip would round them.
//
// LineFormatter writes
//
//	[info][2026-10-15 09:30:00]: message
//
// and JSONFormatter writes one object per line. Both implement
// BufferFormatter so handlers can format into their own buffer; Format
// uses a pooled bytes.Buffer. Buffers larger than 64 KiB are not returned
// to the pool.
package formatter
