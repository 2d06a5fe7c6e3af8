package transport

import (
	"fmt"
	"strings"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/ianaindex"
)

// DefaultOutputEncoding is the text encoding of captured command output
// unless configured otherwise.
const DefaultOutputEncoding = "gbk"

// OutputDecoder turns raw stdout/stderr bytes into strings using one fixed
// encoding. No detection is attempted.
type OutputDecoder struct {
	name string
	enc  encoding.Encoding // nil means the bytes are already UTF-8
}

// NewOutputDecoder resolves name through the IANA registry. An empty name
// selects DefaultOutputEncoding; "utf-8" passes bytes through unchanged.
func NewOutputDecoder(name string) (OutputDecoder, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		name = DefaultOutputEncoding
	}
	if strings.EqualFold(name, "utf-8") || strings.EqualFold(name, "utf8") {
		return OutputDecoder{name: "utf-8"}, nil
	}

	enc, err := ianaindex.IANA.Encoding(name)
	if err != nil {
		return OutputDecoder{}, fmt.Errorf("unsupported output encoding %q: %w", name, err)
	}
	if enc == nil {
		return OutputDecoder{}, fmt.Errorf("unsupported output encoding %q", name)
	}
	return OutputDecoder{name: name, enc: enc}, nil
}

// Name returns the encoding name.
func (d OutputDecoder) Name() string {
	if d.name == "" {
		return "utf-8"
	}
	return d.name
}

// Decode converts b to a string. Undecodable input is returned as-is.
func (d OutputDecoder) Decode(b []byte) string {
	if d.enc == nil || len(b) == 0 {
		return string(b)
	}
	out, err := d.enc.NewDecoder().Bytes(b)
	if err != nil {
		return string(b)
	}
	return string(out)
}
