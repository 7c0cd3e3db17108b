package html

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/matzehuels/slidelinker/pkg/project"
)

// Default hotspot tint, used when a style color cannot be parsed.
const defaultR, defaultG, defaultB = 99, 200, 255

// hexToRGB parses "#rrggbb". Channels that fail to parse fall back to the
// default tint individually; strings shorter than six digits fall back
// entirely.
func hexToRGB(hex string) (r, g, b uint8) {
	hex = strings.TrimPrefix(hex, "#")
	if len(hex) < 6 {
		return defaultR, defaultG, defaultB
	}
	channel := func(s string, fallback uint8) uint8 {
		v, err := strconv.ParseUint(s, 16, 8)
		if err != nil {
			return fallback
		}
		return uint8(v)
	}
	return channel(hex[0:2], defaultR), channel(hex[2:4], defaultG), channel(hex[4:6], defaultB)
}

// num formats a float with the shortest exact representation.
func num(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

var (
	ratioPattern    = regexp.MustCompile(`^\d+(\.\d+)?:\d+(\.\d+)?$`)
	cssValuePattern = regexp.MustCompile(`^[#a-zA-Z0-9(),.% -]{1,64}$`)
)

// aspectCSS turns "16:9" into the CSS aspect-ratio value "16/9".
func aspectCSS(ratio string) string {
	if !ratioPattern.MatchString(ratio) {
		ratio = project.AspectWide
	}
	return strings.Replace(ratio, ":", "/", 1)
}

// cssValue passes through simple color-like values and replaces anything
// that could terminate a declaration.
func cssValue(v, fallback string) string {
	v = strings.TrimSpace(v)
	if !cssValuePattern.MatchString(v) {
		return fallback
	}
	return v
}

func fontWeight(v string) string {
	switch v {
	case "normal", "bold", "bolder", "lighter",
		"100", "200", "300", "400", "500", "600", "700", "800", "900":
		return v
	}
	return "normal"
}

func textAlign(v string) string {
	switch v {
	case "left", "center", "right", "justify":
		return v
	}
	return "left"
}

func rectCSS(r project.Rect) string {
	return fmt.Sprintf("left:%s%%;top:%s%%;width:%s%%;height:%s%%;", num(r.X), num(r.Y), num(r.W), num(r.H))
}

func hotspotCSS(h project.Hotspot) string {
	css := rectCSS(h.Rect)
	if s := h.Style; s != nil {
		r, g, b := hexToRGB(s.Color)
		css += fmt.Sprintf("border-color:%s;background:rgba(%d,%d,%d,%s);border-radius:%s%%;",
			cssValue(s.Color, fmt.Sprintf("rgb(%d,%d,%d)", defaultR, defaultG, defaultB)),
			r, g, b, num(s.Opacity), num(s.BorderRadius))
	}
	return css
}

func overlayCSS(o project.TextOverlay) string {
	return rectCSS(o.Rect) + fmt.Sprintf(
		"font-size:%spx;font-weight:%s;color:%s;background:%s;text-align:%s;border-radius:%spx;",
		num(o.FontSize),
		fontWeight(o.FontWeight),
		cssValue(o.Color, "#000000"),
		cssValue(o.BackgroundColor, "transparent"),
		textAlign(o.TextAlign),
		num(o.BorderRadius),
	)
}
