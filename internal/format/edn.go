package format

import (
	"encoding/json"
	"fmt"
	"io"
	"math"
	"sort"
	"strconv"
	"strings"
)

// WriteEDN writes v as EDN. Values go through encoding/json first so struct
// tags and TextMarshaler implementations decide the field names and scalar
// forms; object keys become keywords.
func WriteEDN(w io.Writer, v any, pretty bool) error {
	b, err := json.Marshal(v)
	if err != nil {
		return err
	}
	var generic any
	if err := json.Unmarshal(b, &generic); err != nil {
		return err
	}

	e := ednWriter{pretty: pretty}
	e.value(generic, 0)
	e.sb.WriteByte('\n')
	_, err = io.WriteString(w, e.sb.String())
	return err
}

type ednWriter struct {
	sb     strings.Builder
	pretty bool
}

func (e *ednWriter) value(v any, depth int) {
	switch t := v.(type) {
	case nil:
		e.sb.WriteString("nil")
	case bool:
		e.sb.WriteString(strconv.FormatBool(t))
	case string:
		e.sb.WriteString(strconv.Quote(t))
	case float64:
		e.sb.WriteString(ednNumber(t))
	case []any:
		e.vector(t, depth)
	case map[string]any:
		e.mapping(t, depth)
	default:
		e.sb.WriteString(strconv.Quote(fmt.Sprint(v)))
	}
}

// ednNumber prints integral values without a fractional part (820, not 820.0).
func ednNumber(f float64) string {
	if f == math.Trunc(f) && math.Abs(f) < 1<<53 {
		return strconv.FormatInt(int64(f), 10)
	}
	return strconv.FormatFloat(f, 'f', -1, 64)
}

func (e *ednWriter) open(depth int) {
	if e.pretty {
		e.sb.WriteByte('\n')
		e.pad(depth + 1)
	}
}

func (e *ednWriter) sep(depth int) {
	if e.pretty {
		e.sb.WriteByte('\n')
		e.pad(depth + 1)
		return
	}
	e.sb.WriteByte(' ')
}

func (e *ednWriter) close(depth int) {
	if e.pretty {
		e.sb.WriteByte('\n')
		e.pad(depth)
	}
}

func (e *ednWriter) pad(depth int) {
	e.sb.WriteString(strings.Repeat("  ", depth))
}

func (e *ednWriter) vector(xs []any, depth int) {
	e.sb.WriteByte('[')
	if len(xs) > 0 {
		e.open(depth)
		for i, x := range xs {
			if i > 0 {
				e.sep(depth)
			}
			e.value(x, depth+1)
		}
		e.close(depth)
	}
	e.sb.WriteByte(']')
}

func (e *ednWriter) mapping(m map[string]any, depth int) {
	e.sb.WriteByte('{')
	if len(m) > 0 {
		keys := make([]string, 0, len(m))
		for k := range m {
			keys = append(keys, k)
		}
		sort.Strings(keys)

		e.open(depth)
		for i, k := range keys {
			if i > 0 {
				e.sep(depth)
			}
			e.sb.WriteByte(':')
			e.sb.WriteString(ednKeyword(k))
			e.sb.WriteByte(' ')
			e.value(m[k], depth+1)
		}
		e.close(depth)
	}
	e.sb.WriteByte('}')
}

func ednKeyword(s string) string {
	return strings.ReplaceAll(strings.TrimSpace(s), " ", "-")
}
