package tui

import "testing"

func TestGlyphs_FromEnv(t *testing.T) {
	t.Setenv("CONSOLE_TUI_GLYPHS", "")
	setGlyphs(glyphSetUnicode)
	applyGlyphPreference()
	if got := glyphToggle(); got != "☰" {
		t.Fatalf("expected unicode toggle by default; got %q", got)
	}

	t.Setenv("CONSOLE_TUI_GLYPHS", "ascii")
	applyGlyphPreference()
	if got := glyphToggle(); got != "=" {
		t.Fatalf("expected ascii toggle; got %q", got)
	}
	for _, s := range consoleSections {
		if s.glyph() != s.iconASC {
			t.Fatalf("%s: expected ascii icon %q; got %q", s.id, s.iconASC, s.glyph())
		}
	}

	// Unknown values are ignored.
	t.Setenv("CONSOLE_TUI_GLYPHS", "bogus")
	applyGlyphPreference()
	if got := glyphs(); got != glyphSetASCII {
		t.Fatalf("expected unknown value to keep ascii; got %v", got)
	}
	setGlyphs(glyphSetUnicode)
}
