// Package json wraps sonic so the whole codebase shares one JSON implementation.
// Sonic ships a pure-Go fallback, so the wrapper works on every architecture.
package json

import (
	"io"

	"github.com/bytedance/sonic"
)

// Encoder writes JSON values to a stream.
type Encoder interface {
	Encode(v interface{}) error
}

// Decoder reads JSON values from a stream.
type Decoder interface {
	Decode(v interface{}) error
}

// Marshal encodes v into JSON bytes.
func Marshal(v interface{}) ([]byte, error) {
	return sonic.ConfigDefault.Marshal(v)
}

// Unmarshal decodes JSON bytes into v.
func Unmarshal(data []byte, v interface{}) error {
	return sonic.ConfigDefault.Unmarshal(data, v)
}

// MarshalString encodes v into a JSON string.
func MarshalString(v interface{}) (string, error) {
	return sonic.ConfigDefault.MarshalToString(v)
}

// NewEncoder creates a JSON encoder writing to w.
func NewEncoder(w io.Writer) Encoder {
	return sonic.ConfigDefault.NewEncoder(w)
}

// NewDecoder creates a JSON decoder reading from r.
func NewDecoder(r io.Reader) Decoder {
	return sonic.ConfigDefault.NewDecoder(r)
}
