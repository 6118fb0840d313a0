package format

import (
	"bytes"
	"strings"
	"testing"
)

type sample struct {
	Name  string  `json:"name"`
	Width float64 `json:"width"`
	Shown bool    `json:"shown"`
	Tags  []any   `json:"tags"`
}

func TestWriteEDN_Compact(t *testing.T) {
	var buf bytes.Buffer
	v := map[string]any{"data": sample{Name: "mobile/shown", Width: 767.5, Shown: true, Tags: []any{280, nil}}}
	if err := WriteEDN(&buf, v, false); err != nil {
		t.Fatalf("WriteEDN: %v", err)
	}
	got := strings.TrimSpace(buf.String())
	want := `{:data {:name "mobile/shown" :shown true :tags [280 nil] :width 767.5}}`
	if got != want {
		t.Fatalf("got  %s\nwant %s", got, want)
	}
}

func TestWriteEDN_Pretty(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteEDN(&buf, map[string]any{"a": []any{1, 2}, "b": map[string]any{}}, true); err != nil {
		t.Fatalf("WriteEDN: %v", err)
	}
	want := "{\n  :a [\n    1\n    2\n  ]\n  :b {}\n}\n"
	if buf.String() != want {
		t.Fatalf("got:\n%q\nwant:\n%q", buf.String(), want)
	}
}

func TestWrite_Formats(t *testing.T) {
	var buf bytes.Buffer
	if err := Write(&buf, map[string]any{"data": 1}, "", false); err != nil {
		t.Fatalf("Write json: %v", err)
	}
	if strings.TrimSpace(buf.String()) != `{"data":1}` {
		t.Fatalf("json output=%q", buf.String())
	}
	if err := Write(&buf, 1, "yaml", false); err == nil {
		t.Fatalf("expected unknown format error")
	}
	if err := Check(EDN); err != nil {
		t.Fatalf("Check(edn): %v", err)
	}
}
