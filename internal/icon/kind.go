// Package icon resolves an icon specification into a renderable visual.
package icon

import "strings"

// Kind selects the icon shown on the overlay button.
type Kind string

const (
	KindRocket  Kind = "rocket"
	KindComment Kind = "comment"
	KindStar    Kind = "star"
	KindBolt    Kind = "bolt"
	KindCustom  Kind = "custom"
)

// Kinds returns every kind in display order.
func Kinds() []Kind {
	return []Kind{KindRocket, KindComment, KindStar, KindBolt, KindCustom}
}

// Spec is the stored (kind, content) pair. CustomContent is only read when
// Kind is KindCustom.
type Spec struct {
	Kind          Kind
	CustomContent string
}

type glyph struct {
	id    string
	rune  string
	label string
}

var glyphs = map[Kind]glyph{
	KindRocket:  {id: "fa-rocket", rune: "🚀", label: "Rocket"},
	KindComment: {id: "fa-comment", rune: "💬", label: "Comment"},
	KindStar:    {id: "fa-star", rune: "★", label: "Star"},
	KindBolt:    {id: "fa-bolt", rune: "⚡", label: "Bolt"},
}

// ParseKind maps a persisted tag to a Kind. Unknown tags report false.
func ParseKind(tag string) (Kind, bool) {
	k := Kind(strings.ToLower(strings.TrimSpace(tag)))
	if k == KindCustom {
		return k, true
	}
	_, ok := glyphs[k]
	return k, ok
}

// Builtin reports whether k is a non-custom kind with a glyph.
func (k Kind) Builtin() bool {
	_, ok := glyphs[k]
	return ok
}

// Label returns the human-readable name of the kind.
func (k Kind) Label() string {
	if k == KindCustom {
		return "Custom"
	}
	return glyphFor(k).label
}

// GlyphID returns the glyph identifier for k, falling back to the rocket.
func GlyphID(k Kind) string {
	return glyphFor(k).id
}

// GlyphRune returns the terminal rune for a glyph identifier.
func GlyphRune(glyphID string) string {
	for _, g := range glyphs {
		if g.id == glyphID {
			return g.rune
		}
	}
	return glyphs[KindRocket].rune
}

func glyphFor(k Kind) glyph {
	if g, ok := glyphs[k]; ok {
		return g
	}
	return glyphs[KindRocket]
}
