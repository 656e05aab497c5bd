// Package config carries the embedder-supplied constants the layout engine
// needs and has no business discovering on its own: the content area's
// pixel width and the fixed glyph metrics used for text measurement.
package config

// Config is a plain literal struct with no file or environment loader:
// configuration loading is outside the core's scope, so callers either use
// DefaultConfig or build one by hand from whatever window chrome or terminal
// size they have on hand.
type Config struct {
	ContentAreaWidth int
	GlyphWidth       int
	GlyphHeight      int
}

// DefaultConfig returns the constants the reference renderer uses absent any
// other signal: an 800px content area and 8x16 fixed-width glyphs.
func DefaultConfig() *Config {
	return &Config{
		ContentAreaWidth: 800,
		GlyphWidth:       8,
		GlyphHeight:      16,
	}
}
