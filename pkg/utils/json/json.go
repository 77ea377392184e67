// Package json is the codec for wire payloads and the session file.
//
// sonic backs it on amd64 and arm64 with its std-compatible config, so nil
// pointers still encode as null and map keys stay sorted. Other platforms use
// encoding/json.
package json

import (
	stdjson "encoding/json"
	"io"
	"runtime"

	"github.com/bytedance/sonic"
)

// RawMessage is a raw encoded JSON value.
type RawMessage = stdjson.RawMessage

// Encoder writes JSON values to a stream.
type Encoder interface {
	Encode(v any) error
}

// Decoder reads JSON values from a stream.
type Decoder interface {
	Decode(v any) error
}

type codec interface {
	Marshal(v any) ([]byte, error)
	MarshalIndent(v any, prefix, indent string) ([]byte, error)
	Unmarshal(data []byte, v any) error
	NewEncoder(w io.Writer) Encoder
	NewDecoder(r io.Reader) Decoder
}

type sonicCodec struct{ api sonic.API }

func (s sonicCodec) Marshal(v any) ([]byte, error) { return s.api.Marshal(v) }
func (s sonicCodec) MarshalIndent(v any, prefix, indent string) ([]byte, error) {
	return s.api.MarshalIndent(v, prefix, indent)
}
func (s sonicCodec) Unmarshal(data []byte, v any) error { return s.api.Unmarshal(data, v) }
func (s sonicCodec) NewEncoder(w io.Writer) Encoder     { return s.api.NewEncoder(w) }
func (s sonicCodec) NewDecoder(r io.Reader) Decoder     { return s.api.NewDecoder(r) }

type stdCodec struct{}

func (stdCodec) Marshal(v any) ([]byte, error) { return stdjson.Marshal(v) }
func (stdCodec) MarshalIndent(v any, prefix, indent string) ([]byte, error) {
	return stdjson.MarshalIndent(v, prefix, indent)
}
func (stdCodec) Unmarshal(data []byte, v any) error { return stdjson.Unmarshal(data, v) }
func (stdCodec) NewEncoder(w io.Writer) Encoder     { return stdjson.NewEncoder(w) }
func (stdCodec) NewDecoder(r io.Reader) Decoder     { return stdjson.NewDecoder(r) }

var active = pick(runtime.GOARCH)

func pick(arch string) codec {
	switch arch {
	case "amd64", "arm64":
		return sonicCodec{api: sonic.ConfigStd}
	default:
		return stdCodec{}
	}
}

// Marshal encodes v.
func Marshal(v any) ([]byte, error) { return active.Marshal(v) }

// MarshalIndent encodes v with indentation.
func MarshalIndent(v any, prefix, indent string) ([]byte, error) {
	return active.MarshalIndent(v, prefix, indent)
}

// Unmarshal decodes data into v.
func Unmarshal(data []byte, v any) error { return active.Unmarshal(data, v) }

// NewEncoder returns an encoder writing to w.
func NewEncoder(w io.Writer) Encoder { return active.NewEncoder(w) }

// NewDecoder returns a decoder reading from r.
func NewDecoder(r io.Reader) Decoder { return active.NewDecoder(r) }

// IsUsingSonic reports whether sonic backs the codec.
func IsUsingSonic() bool {
	_, ok := active.(sonicCodec)
	return ok
}
