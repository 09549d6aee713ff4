package formatter

import (
	"github.com/segmentio/encoding/json"
)

// Stringify serializes v as compact JSON with map keys sorted. Integer
// types, *big.Int and json.Number are written digit for digit, so values
// beyond 2^53 survive unchanged. HTML characters are left unescaped since
// the output is meant for log lines, not markup.
func Stringify(v interface{}) (string, error) {
	b, err := AppendStringify(nil, v)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// AppendStringify appends the Stringify form of v to b.
func AppendStringify(b []byte, v interface{}) ([]byte, error) {
	return json.Append(b, v, json.SortMapKeys)
}
