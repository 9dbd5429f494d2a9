// Package styles resolves the visual treatment of coach cards.
//
// Colors come from three sources in priority order: the dataset's
// team_colors lookup, the root accent for currently active head
// coaches without a team color, and a neutral default. Text color is
// picked for contrast against the resolved fill.
package styles

import "strconv"

// Default card palette.
const (
	DefaultFill   = "#f4f1ea"
	DefaultStroke = "#8a8577"
	RootFill      = "#2c3e50"
	RootStroke    = "#1a252f"
	TextDark      = "#2b2b2b"
	TextLight     = "#f8f8f2"
	EdgeStroke    = "#b0a999"
	OverlapStroke = "#c9a33b"
	HighlightRing = "#e74c3c"
)

// Card is the resolved visual treatment for one coach card.
type Card struct {
	Fill   string
	Stroke string
	Text   string
}

// Resolve picks the card treatment for a coach. Team colors win over
// the root accent; roots with no team color get the accent so they
// still stand out as the anchor generation.
func Resolve(teamColor string, root bool) Card {
	switch {
	case teamColor != "":
		return Card{Fill: teamColor, Stroke: darken(teamColor), Text: contrastText(teamColor)}
	case root:
		return Card{Fill: RootFill, Stroke: RootStroke, Text: TextLight}
	default:
		return Card{Fill: DefaultFill, Stroke: DefaultStroke, Text: TextDark}
	}
}

// contrastText returns a dark or light text color depending on the
// perceived luminance of the background. Malformed colors get dark
// text, matching the default card.
func contrastText(hex string) string {
	r, g, b, ok := parseHex(hex)
	if !ok {
		return TextDark
	}
	// ITU-R BT.601 luma.
	if 0.299*float64(r)+0.587*float64(g)+0.114*float64(b) > 150 {
		return TextDark
	}
	return TextLight
}

// darken shifts a color toward black for use as the card outline.
func darken(hex string) string {
	r, g, b, ok := parseHex(hex)
	if !ok {
		return DefaultStroke
	}
	scale := func(v uint8) uint8 { return uint8(float64(v) * 0.65) }
	return "#" + toHex(scale(r)) + toHex(scale(g)) + toHex(scale(b))
}

func parseHex(hex string) (r, g, b uint8, ok bool) {
	if len(hex) != 7 || hex[0] != '#' {
		return 0, 0, 0, false
	}
	rv, errR := strconv.ParseUint(hex[1:3], 16, 8)
	gv, errG := strconv.ParseUint(hex[3:5], 16, 8)
	bv, errB := strconv.ParseUint(hex[5:7], 16, 8)
	if errR != nil || errG != nil || errB != nil {
		return 0, 0, 0, false
	}
	return uint8(rv), uint8(gv), uint8(bv), true
}

func toHex(v uint8) string {
	const digits = "0123456789abcdef"
	return string([]byte{digits[v>>4], digits[v&0x0f]})
}
