package layout

import "fmt"

// Breakpoint is the viewport width (px) at and above which the layout is Desktop.
//
// The renderer must classify widths with the same threshold; if the two ever
// disagree the controller's notion of state and what is drawn diverge.
const Breakpoint = 768.0

type ViewportClass int

const (
	Mobile ViewportClass = iota
	Desktop
)

// Classify maps a viewport width to its class. 767.98 is Mobile, 768 is Desktop.
func Classify(width float64) ViewportClass {
	if width >= Breakpoint {
		return Desktop
	}
	return Mobile
}

func (v ViewportClass) String() string {
	switch v {
	case Mobile:
		return "mobile"
	case Desktop:
		return "desktop"
	default:
		return fmt.Sprintf("viewport(%d)", int(v))
	}
}

func (v ViewportClass) MarshalText() ([]byte, error) {
	return []byte(v.String()), nil
}
