package icon

import (
	"strings"
)

// Variant identifies the shape of a resolved icon.
type Variant int

const (
	BuiltinGlyph Variant = iota
	InlineVectorImage
	RemoteOrEncodedImage
	PartialBase64Image
	Unresolvable
)

func (v Variant) String() string {
	switch v {
	case BuiltinGlyph:
		return "builtin-glyph"
	case InlineVectorImage:
		return "inline-vector-image"
	case RemoteOrEncodedImage:
		return "remote-or-encoded-image"
	case PartialBase64Image:
		return "partial-base64-image"
	case Unresolvable:
		return "unresolvable"
	default:
		return "unknown"
	}
}

// Reason explains an Unresolvable descriptor.
type Reason int

const (
	ReasonNone Reason = iota
	ReasonEmpty
	ReasonUnrecognized
)

// Descriptor is the resolved, renderable form of a Spec.
type Descriptor struct {
	Variant Variant
	GlyphID string // BuiltinGlyph only
	URI     string // image variants only
	Reason  Reason // Unresolvable only
}

// IsImage reports whether the descriptor carries an image URI.
func (d Descriptor) IsImage() bool {
	switch d.Variant {
	case InlineVectorImage, RemoteOrEncodedImage, PartialBase64Image:
		return true
	}
	return false
}

const (
	svgDataPrefix   = "data:image/svg+xml;charset=utf-8,"
	pngBase64Prefix = "data:image/png;base64,"
	base64Marker    = "base64,"
)

var imageExtensions = []string{".png", ".jpg", ".svg", ".gif"}

type classifier struct {
	match func(content string) bool
	build func(content string) Descriptor
}

// customPipeline classifies trimmed custom content; the first match wins.
var customPipeline = []classifier{
	{
		match: func(c string) bool { return c == "" },
		build: func(string) Descriptor { return Descriptor{Variant: Unresolvable, Reason: ReasonEmpty} },
	},
	{
		match: func(c string) bool { return strings.HasPrefix(c, "<svg") && strings.Contains(c, "</svg>") },
		build: func(c string) Descriptor {
			return Descriptor{Variant: InlineVectorImage, URI: svgDataPrefix + EncodeURIComponent(c)}
		},
	},
	{
		match: isURIOrImagePath,
		build: func(c string) Descriptor { return Descriptor{Variant: RemoteOrEncodedImage, URI: c} },
	},
	{
		match: func(c string) bool { return strings.Contains(c, base64Marker) },
		build: func(c string) Descriptor {
			_, payload, _ := strings.Cut(c, base64Marker)
			return Descriptor{Variant: PartialBase64Image, URI: pngBase64Prefix + payload}
		},
	},
}

func isURIOrImagePath(c string) bool {
	if strings.HasPrefix(c, "data:") || strings.HasPrefix(c, "http") {
		return true
	}
	for _, ext := range imageExtensions {
		if strings.HasSuffix(c, ext) {
			return true
		}
	}
	return false
}

// Resolve maps a spec to exactly one descriptor. It never fails: unknown
// kinds resolve to the rocket glyph and unrecognized custom content to
// Unresolvable.
func Resolve(spec Spec) Descriptor {
	if spec.Kind != KindCustom {
		return Descriptor{Variant: BuiltinGlyph, GlyphID: GlyphID(spec.Kind)}
	}
	return classifyCustom(strings.TrimSpace(spec.CustomContent))
}

func classifyCustom(content string) Descriptor {
	for _, c := range customPipeline {
		if c.match(content) {
			return c.build(content)
		}
	}
	return Descriptor{Variant: Unresolvable, Reason: ReasonUnrecognized}
}

// EncodeURIComponent percent-encodes s the way browsers encode URI
// components: everything except A-Z a-z 0-9 - _ . ! ~ * ' ( ).
func EncodeURIComponent(s string) string {
	const hex = "0123456789ABCDEF"
	var b strings.Builder
	b.Grow(len(s) * 3)
	for i := 0; i < len(s); i++ {
		c := s[i]
		if uriUnreserved(c) {
			b.WriteByte(c)
			continue
		}
		b.WriteByte('%')
		b.WriteByte(hex[c>>4])
		b.WriteByte(hex[c&0x0F])
	}
	return b.String()
}

func uriUnreserved(c byte) bool {
	switch {
	case 'a' <= c && c <= 'z', 'A' <= c && c <= 'Z', '0' <= c && c <= '9':
		return true
	}
	switch c {
	case '-', '_', '.', '!', '~', '*', '\'', '(', ')':
		return true
	}
	return false
}
