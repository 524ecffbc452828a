package tag

import (
	"fmt"

	"github.com/lucasb-eyer/go-colorful"
)

// Color is an sRGB color carried as a value, not as a styling token string.
type Color struct {
	R, G, B uint8
}

var (
	white = colorful.Color{R: 1, G: 1, B: 1}
	black = colorful.Color{R: 0, G: 0, B: 0}
)

// ParseColor accepts "#rrggbb" or "#rgb".
func ParseColor(value string) (Color, error) {
	c, err := colorful.Hex(value)
	if err != nil {
		return Color{}, fmt.Errorf("invalid color %q: %w", value, err)
	}
	return fromColorful(c), nil
}

// MustParseColor is ParseColor for constants; it panics on malformed input.
func MustParseColor(value string) Color {
	c, err := ParseColor(value)
	if err != nil {
		panic(err)
	}
	return c
}

func (c Color) Hex() string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

func (c Color) String() string {
	return c.Hex()
}

func (c Color) MarshalText() ([]byte, error) {
	return []byte(c.Hex()), nil
}

func (c *Color) UnmarshalText(text []byte) error {
	parsed, err := ParseColor(string(text))
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

func (c Color) colorful() colorful.Color {
	return colorful.Color{R: float64(c.R) / 255, G: float64(c.G) / 255, B: float64(c.B) / 255}
}

func fromColorful(c colorful.Color) Color {
	r, g, b := c.Clamped().RGB255()
	return Color{R: r, G: g, B: b}
}
