package icon

const (
	classInteractable = "interactable"
	classSecondary    = "secondary-button"
	classPrimary      = "primary-button"
	classGlyphFamily  = "fa-solid"

	buttonImageSize = "20px 20px"
	imageGlyph      = "▣"

	buttonFallbackText     = "?"
	previewEmptyText       = "(no preview)"
	previewUnsupportedText = "(unsupported format)"
)

// HostColors describes the host's native send control. OK is false when
// the control could not be found.
type HostColors struct {
	Text    string
	Primary bool
	OK      bool
}

// Visual is a descriptor rendered for one target. Exactly one of Image,
// Text or a glyph class is the content.
type Visual struct {
	Classes   []string
	Image     string
	ImageSize string
	Text      string
	Color     string
	FontSize  string
	Glyph     string // terminal representation
}

// HasClass reports whether the visual carries class c.
func (v Visual) HasClass(c string) bool {
	for _, have := range v.Classes {
		if have == c {
			return true
		}
	}
	return false
}

// ButtonVisual renders a descriptor for the live overlay button. When
// match is set and the host control is known, the button takes over its
// text color and primary/secondary look.
func ButtonVisual(d Descriptor, host HostColors, match bool) Visual {
	v := Visual{Classes: []string{classInteractable, classSecondary}}

	switch {
	case d.Variant == BuiltinGlyph:
		v.Classes = append(v.Classes, classGlyphFamily, d.GlyphID)
		v.Glyph = GlyphRune(d.GlyphID)
	case d.IsImage():
		v.Image = d.URI
		v.ImageSize = buttonImageSize
		v.Glyph = imageGlyph
	default:
		v.Text = buttonFallbackText
		v.Glyph = buttonFallbackText
	}

	if match && host.OK {
		v.Color = host.Text
		if host.Primary {
			v.Classes[1] = classPrimary
		}
	}
	return v
}

// PreviewVisual renders a descriptor for the preview popup. Unresolvable
// content gets an explanatory message instead of the button's terse "?".
func PreviewVisual(d Descriptor) Visual {
	var v Visual

	switch {
	case d.Variant == BuiltinGlyph:
		v.Classes = []string{classGlyphFamily, d.GlyphID}
		v.FontSize = "24px"
		v.Glyph = GlyphRune(d.GlyphID)
	case d.IsImage():
		v.Image = d.URI
		v.ImageSize = buttonImageSize
		v.Glyph = imageGlyph
	default:
		v.Text = previewUnsupportedText
		if d.Reason == ReasonEmpty {
			v.Text = previewEmptyText
		}
		v.FontSize = "14px"
		v.Glyph = v.Text
	}
	return v
}
