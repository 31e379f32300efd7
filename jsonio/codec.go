// SPDX-License-Identifier: MIT

package jsonio

import (
	"fmt"
	"io"
	"os"

	"github.com/gnames/gnfmt"

	"github.com/katalvlaran/metatwin/measurement"
	"github.com/katalvlaran/metatwin/network"
	"github.com/katalvlaran/metatwin/twin"
)

// Encode marshals any document with gnfmt.GNjson.
func Encode(v any, pretty bool) ([]byte, error) {
	enc := gnfmt.GNjson{Pretty: pretty}
	b, err := enc.Encode(v)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrEncode, err)
	}

	return b, nil
}

// Decode unmarshals b into the document pointed to by v.
func Decode(b []byte, v any) error {
	enc := gnfmt.GNjson{}
	if err := enc.Decode(b, v); err != nil {
		return fmt.Errorf("%w: %w", ErrDecode, err)
	}

	return nil
}

// Dump writes v as JSON followed by a newline.
func Dump(w io.Writer, v any, pretty bool) error {
	b, err := Encode(v, pretty)
	if err != nil {
		return err
	}
	if _, err = w.Write(append(b, '\n')); err != nil {
		return fmt.Errorf("jsonio: write: %w", err)
	}

	return nil
}

func load(r io.Reader, v any) error {
	b, err := io.ReadAll(r)
	if err != nil {
		return fmt.Errorf("jsonio: read: %w", err)
	}

	return Decode(b, v)
}

// LoadNetwork reads a network document.
func LoadNetwork(r io.Reader) (*network.Network, error) {
	var doc NetworkDoc
	if err := load(r, &doc); err != nil {
		return nil, err
	}

	return NetworkFromDoc(doc)
}

// DumpNetwork writes n as a pretty-printed document.
func DumpNetwork(w io.Writer, n *network.Network) error {
	return Dump(w, NetworkToDoc(n), true)
}

// LoadContext reads a context document.
func LoadContext(r io.Reader) (*measurement.Context, error) {
	var doc ContextDoc
	if err := load(r, &doc); err != nil {
		return nil, err
	}

	return ContextFromDoc(doc)
}

// DumpContext writes c as a pretty-printed document.
func DumpContext(w io.Writer, c *measurement.Context) error {
	return Dump(w, ContextToDoc(c), true)
}

// LoadTwin reads a twin document.
func LoadTwin(r io.Reader) (*twin.Twin, error) {
	var doc TwinDoc
	if err := load(r, &doc); err != nil {
		return nil, err
	}

	return TwinFromDoc(doc)
}

// DumpTwin writes t as a pretty-printed document.
func DumpTwin(w io.Writer, t *twin.Twin) error {
	return Dump(w, TwinToDoc(t), true)
}

// ReadNetworkFile loads a network document from path.
func ReadNetworkFile(path string) (*network.Network, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return LoadNetwork(f)
}

// ReadContextFile loads a context document from path.
func ReadContextFile(path string) (*measurement.Context, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return LoadContext(f)
}

// ReadTwinFile loads a twin document from path.
func ReadTwinFile(path string) (*twin.Twin, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return LoadTwin(f)
}

// WriteFile writes v as pretty JSON to path, replacing any existing file.
func WriteFile(path string, v any) error {
	b, err := Encode(v, true)
	if err != nil {
		return err
	}

	return os.WriteFile(path, append(b, '\n'), 0o644)
}
