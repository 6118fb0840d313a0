// Package format renders CLI payloads as JSON or EDN.
package format

import (
	"encoding/json"
	"fmt"
	"io"
)

const (
	JSON = "json"
	EDN  = "edn"
)

// Check reports whether name is a supported output format. Empty means JSON.
func Check(name string) error {
	switch name {
	case "", JSON, EDN:
		return nil
	default:
		return fmt.Errorf("unknown format: %s", name)
	}
}

// Write renders v in the named format followed by a newline.
func Write(w io.Writer, v any, name string, pretty bool) error {
	if err := Check(name); err != nil {
		return err
	}
	if name == EDN {
		return WriteEDN(w, v, pretty)
	}
	return WriteJSON(w, v, pretty)
}

// WriteJSON writes strict JSON. Anything beyond the payload belongs in a
// `meta` object next to `data`.
func WriteJSON(w io.Writer, v any, pretty bool) error {
	var (
		b   []byte
		err error
	)
	if pretty {
		b, err = json.MarshalIndent(v, "", "  ")
	} else {
		b, err = json.Marshal(v)
	}
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, string(b))
	return err
}
