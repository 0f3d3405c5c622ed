package mapnik

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"golang.org/x/image/colornames"
)

// ErrInvalidColor is returned by ParseColor for unparseable input.
var ErrInvalidColor = errors.New("invalid color")

// Color is an 8-bit RGBA color.
type Color struct {
	R, G, B, A uint8
}

var (
	// Black is the default stroke and text color.
	Black = Color{A: 255}
	// White is the default halo color.
	White = Color{R: 255, G: 255, B: 255, A: 255}
	// Gray is the default polygon fill.
	Gray = Color{R: 128, G: 128, B: 128, A: 255}
	// Transparent is fully transparent black.
	Transparent = Color{}
)

// ParseColor parses a CSS color: a named color, "transparent",
// #rgb, #rrggbb, #rrggbbaa, rgb(r,g,b) or rgba(r,g,b,a). The rgb
// components may be integers or percentages; alpha is 0-1.
func ParseColor(s string) (Color, error) {
	v := strings.ToLower(strings.TrimSpace(s))
	switch {
	case v == "":
		return Color{}, fmt.Errorf("%w: empty value", ErrInvalidColor)
	case v == "transparent":
		return Transparent, nil
	case strings.HasPrefix(v, "#"):
		return parseHex(v[1:], s)
	case strings.HasPrefix(v, "rgba(") && strings.HasSuffix(v, ")"):
		return parseFunctional(v[len("rgba("):len(v)-1], true, s)
	case strings.HasPrefix(v, "rgb(") && strings.HasSuffix(v, ")"):
		return parseFunctional(v[len("rgb("):len(v)-1], false, s)
	}

	if named, ok := colornames.Map[v]; ok {
		return Color{R: named.R, G: named.G, B: named.B, A: 255}, nil
	}
	return Color{}, fmt.Errorf("%w: %q", ErrInvalidColor, s)
}

// MustParseColor is ParseColor for constants; it panics on error.
func MustParseColor(s string) Color {
	c, err := ParseColor(s)
	if err != nil {
		panic(err)
	}
	return c
}

func parseHex(digits, orig string) (Color, error) {
	switch len(digits) {
	case 3:
		expanded := make([]byte, 0, 6)
		for i := 0; i < 3; i++ {
			expanded = append(expanded, digits[i], digits[i])
		}
		digits = string(expanded)
	case 6, 8:
	default:
		return Color{}, fmt.Errorf("%w: %q", ErrInvalidColor, orig)
	}

	n, err := strconv.ParseUint(digits, 16, 32)
	if err != nil {
		return Color{}, fmt.Errorf("%w: %q", ErrInvalidColor, orig)
	}
	if len(digits) == 6 {
		return Color{R: uint8(n >> 16), G: uint8(n >> 8), B: uint8(n), A: 255}, nil
	}
	return Color{R: uint8(n >> 24), G: uint8(n >> 16), B: uint8(n >> 8), A: uint8(n)}, nil
}

func parseFunctional(args string, withAlpha bool, orig string) (Color, error) {
	parts := strings.Split(args, ",")
	want := 3
	if withAlpha {
		want = 4
	}
	if len(parts) != want {
		return Color{}, fmt.Errorf("%w: %q", ErrInvalidColor, orig)
	}

	var rgb [3]uint8
	for i := 0; i < 3; i++ {
		c, err := parseChannel(strings.TrimSpace(parts[i]))
		if err != nil {
			return Color{}, fmt.Errorf("%w: %q", ErrInvalidColor, orig)
		}
		rgb[i] = c
	}

	alpha := uint8(255)
	if withAlpha {
		a, err := strconv.ParseFloat(strings.TrimSpace(parts[3]), 64)
		if err != nil {
			return Color{}, fmt.Errorf("%w: %q", ErrInvalidColor, orig)
		}
		alpha = clampByte(a * 255)
	}
	return Color{R: rgb[0], G: rgb[1], B: rgb[2], A: alpha}, nil
}

func parseChannel(s string) (uint8, error) {
	if strings.HasSuffix(s, "%") {
		p, err := strconv.ParseFloat(strings.TrimSuffix(s, "%"), 64)
		if err != nil {
			return 0, err
		}
		return clampByte(p * 255 / 100), nil
	}
	n, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, err
	}
	return clampByte(n), nil
}

func clampByte(f float64) uint8 {
	switch {
	case f <= 0:
		return 0
	case f >= 255:
		return 255
	default:
		return uint8(f + 0.5)
	}
}

// String formats the color the way Mapnik serializes it:
// rgb(r,g,b) when opaque, rgba(r,g,b,a) otherwise.
func (c Color) String() string {
	if c.A == 255 {
		return fmt.Sprintf("rgb(%d,%d,%d)", c.R, c.G, c.B)
	}
	alpha := strconv.FormatFloat(float64(c.A)/255, 'g', 3, 64)
	return fmt.Sprintf("rgba(%d,%d,%d,%s)", c.R, c.G, c.B, alpha)
}

// Hex returns the color as #rrggbb, dropping alpha.
func (c Color) Hex() string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}
