package render

import (
	"errors"
	"fmt"
	"image/color"
	"strconv"
	"strings"

	"github.com/yolokit/go-annotate/result"
	"golang.org/x/image/colornames"
)

var (
	Black  = color.RGBA{R: 0, G: 0, B: 0, A: 255}
	Yellow = color.RGBA{R: 255, G: 255, B: 50, A: 255}
	Pink   = color.RGBA{R: 255, G: 0, B: 255, A: 255}
)

var errUnknownFormat = errors.New("unrecognised color format")

// ColorParseError is returned when a detection or connection color can not
// be understood.  Rendering skips the affected detection only
type ColorParseError struct {
	Value string
	Err   error
}

func (e *ColorParseError) Error() string {
	return fmt.Sprintf("invalid color %q: %v", e.Value, e.Err)
}

func (e *ColorParseError) Unwrap() error {
	return e.Err
}

// ParseColor converts a class color into RGBA.  Color strings may be hex
// (#rgb, #rgba, #rrggbb, #rrggbbaa), functional (rgb(r,g,b) or rgba(r,g,b,a)
// with integer or percentage components) or an SVG color name.  gocv takes
// care of the BGR channel order OpenCV draws with
func ParseColor(c result.Color) (color.RGBA, error) {

	if rgb, ok := c.Triple(); ok {
		return color.RGBA{R: rgb[0], G: rgb[1], B: rgb[2], A: 255}, nil
	}

	s := strings.ToLower(strings.TrimSpace(c.String()))

	var (
		clr color.RGBA
		err error
	)

	switch {
	case s == "":
		err = errors.New("empty color")

	case strings.HasPrefix(s, "#"):
		clr, err = parseHex(s[1:])

	case strings.HasPrefix(s, "rgb"):
		clr, err = parseFunctional(s)

	default:
		var ok bool
		clr, ok = colornames.Map[strings.ReplaceAll(s, " ", "")]

		if !ok {
			err = errUnknownFormat
		}
	}

	if err != nil {
		return color.RGBA{}, &ColorParseError{Value: c.String(), Err: err}
	}

	return clr, nil
}

// parseHex parses the digits of a hex color
func parseHex(digits string) (color.RGBA, error) {

	// short forms repeat each digit, #0fc is #00ffcc
	if len(digits) == 3 || len(digits) == 4 {
		var long strings.Builder

		for _, d := range digits {
			long.WriteRune(d)
			long.WriteRune(d)
		}

		digits = long.String()
	}

	if len(digits) != 6 && len(digits) != 8 {
		return color.RGBA{}, fmt.Errorf("hex color needs 3, 4, 6 or 8 digits, got %d", len(digits))
	}

	v, err := strconv.ParseUint(digits, 16, 32)

	if err != nil {
		return color.RGBA{}, fmt.Errorf("bad hex digits: %w", err)
	}

	if len(digits) == 6 {
		return color.RGBA{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v), A: 255}, nil
	}

	return color.RGBA{R: uint8(v >> 24), G: uint8(v >> 16), B: uint8(v >> 8), A: uint8(v)}, nil
}

// parseFunctional parses rgb(r,g,b) and rgba(r,g,b,a)
func parseFunctional(s string) (color.RGBA, error) {

	open := strings.IndexByte(s, '(')

	if open < 0 || !strings.HasSuffix(s, ")") {
		return color.RGBA{}, errUnknownFormat
	}

	name := strings.TrimSpace(s[:open])
	parts := strings.Split(s[open+1:len(s)-1], ",")

	want := 3
	if name == "rgba" {
		want = 4
	} else if name != "rgb" {
		return color.RGBA{}, errUnknownFormat
	}

	if len(parts) != want {
		return color.RGBA{}, fmt.Errorf("%s needs %d components, got %d", name, want, len(parts))
	}

	var comps [4]uint8
	comps[3] = 255

	for i, part := range parts[:3] {
		v, err := parseComponent(strings.TrimSpace(part))

		if err != nil {
			return color.RGBA{}, err
		}

		comps[i] = v
	}

	if want == 4 {
		a, err := strconv.ParseFloat(strings.TrimSpace(parts[3]), 64)

		if err != nil || a < 0 || a > 1 {
			return color.RGBA{}, fmt.Errorf("alpha %q must be between 0 and 1", parts[3])
		}

		comps[3] = uint8(a*255 + 0.5)
	}

	return color.RGBA{R: comps[0], G: comps[1], B: comps[2], A: comps[3]}, nil
}

// parseComponent parses a 0-255 integer or 0-100% percentage component
func parseComponent(s string) (uint8, error) {

	if pct, ok := strings.CutSuffix(s, "%"); ok {
		v, err := strconv.ParseFloat(pct, 64)

		if err != nil || v < 0 || v > 100 {
			return 0, fmt.Errorf("bad percentage component %q", s)
		}

		return uint8(v*255/100 + 0.5), nil
	}

	v, err := strconv.Atoi(s)

	if err != nil || v < 0 || v > 255 {
		return 0, fmt.Errorf("bad component %q", s)
	}

	return uint8(v), nil
}
