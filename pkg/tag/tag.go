package tag

import (
	"github.com/google/uuid"
)

type Tag struct {
	Id    uuid.UUID
	Name  string
	Style Style
}

// Style is how tasks carrying a tag are painted.
type Style struct {
	Background Color
	Foreground Color
	// Accent is the color the user picked; it is also used for borders.
	Accent Color
}

// UnknownName labels tasks whose tag no longer exists.
const UnknownName = "Unknown tag"

// FallbackStyle paints uncategorized tasks and tasks pointing at a deleted tag.
var FallbackStyle = Style{
	Background: MustParseColor("#f3f4f6"),
	Foreground: MustParseColor("#374151"),
	Accent:     MustParseColor("#9ca3af"),
}

// Color returns the color the tag was created from.
func (t Tag) Color() Color {
	return t.Style.Accent
}

// DeriveStyle builds the three style colors from a single chosen color: a light tint for the
// background, a dark shade for text, and the color itself as accent.
func DeriveStyle(c Color) Style {
	base := c.colorful()
	return Style{
		Background: fromColorful(base.BlendLab(white, 0.8)),
		Foreground: fromColorful(base.BlendLab(black, 0.6)),
		Accent:     c,
	}
}
