package layout

import "testing"

func TestClassify_Breakpoint(t *testing.T) {
	t.Parallel()

	tests := []struct {
		width float64
		want  ViewportClass
	}{
		{0, Mobile},
		{500, Mobile},
		{767, Mobile},
		{767.98, Mobile},
		{768, Desktop},
		{768.01, Desktop},
		{1200, Desktop},
		{3840, Desktop},
	}
	for _, tc := range tests {
		if got := Classify(tc.width); got != tc.want {
			t.Fatalf("Classify(%v)=%v; want %v", tc.width, got, tc.want)
		}
	}
}

func TestParseCollapseState(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in     string
		want   CollapseState
		wantOK bool
	}{
		{"collapsed", Collapsed, true},
		{"expanded", Expanded, true},
		{"", Expanded, false},
		{"Collapsed", Expanded, false},
		{" collapsed", Expanded, false},
		{"true", Expanded, false},
	}
	for _, tc := range tests {
		got, ok := ParseCollapseState(tc.in)
		if got != tc.want || ok != tc.wantOK {
			t.Fatalf("ParseCollapseState(%q)=(%v,%v); want (%v,%v)", tc.in, got, ok, tc.want, tc.wantOK)
		}
	}
}
