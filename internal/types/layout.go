package types

// LayoutOptions is a hint bundle forwarded opaquely to the renderer.
// The core never interprets the point/inch values; it only compares the
// renderer's reported page count to one.
type LayoutOptions struct {
	BodyFontSize     int     `json:"body_font_size"`
	NameFontSize     int     `json:"name_font_size"`
	SectionTitleSize int     `json:"section_title_size"`
	PagePadding      string  `json:"page_padding"`
	LineHeight       float64 `json:"line_height"`
}

// DefaultLayout returns the baseline one-page layout hints
func DefaultLayout() LayoutOptions {
	return LayoutOptions{
		BodyFontSize:     10,
		NameFontSize:     16,
		SectionTitleSize: 11,
		PagePadding:      "0.5in 0.5in",
		LineHeight:       1.15,
	}
}

// AggressiveLayout returns the smallest allowed fonts with tightened
// padding and line height, content unchanged.
func AggressiveLayout() LayoutOptions {
	return LayoutOptions{
		BodyFontSize:     8,
		NameFontSize:     12,
		SectionTitleSize: 9,
		PagePadding:      "0.125in 0.125in",
		LineHeight:       1.0,
	}
}

// MinPaddingLayout returns the smallest body font at the minimum page padding
func MinPaddingLayout() LayoutOptions {
	opts := DefaultLayout()
	opts.BodyFontSize = 8
	opts.PagePadding = "0.25in 0.25in"
	return opts
}

// WithBodyFontSize returns a copy of the options with the body font size replaced
func (o LayoutOptions) WithBodyFontSize(size int) LayoutOptions {
	o.BodyFontSize = size
	return o
}
