package terminal

import (
	"os"
	"strings"

	"github.com/gdamore/tcell/v2"
)

// ColorMode indicates terminal color capability
type ColorMode uint8

const (
	ColorMode256       ColorMode = iota // xterm-256 palette
	ColorModeTrueColor                  // 24-bit RGB
)

// String returns the config spelling of the mode
func (m ColorMode) String() string {
	if m == ColorModeTrueColor {
		return "truecolor"
	}
	return "256"
}

// Color cube values for 6x6x6 palette (indices 16-231)
// Levels: 0, 95, 135, 175, 215, 255
var cubeValues = [6]int{0, 95, 135, 175, 215, 255}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

// cubeIndex maps a channel value to the nearest cube level
func cubeIndex(v int) int {
	best := 0
	bestDist := abs(v - cubeValues[0])
	for j := 1; j < 6; j++ {
		if d := abs(v - cubeValues[j]); d < bestDist {
			bestDist = d
			best = j
		}
	}
	return best
}

// RGBTo256 finds the nearest 256-color palette index for an RGB value
func RGBTo256(r, g, b uint8) uint8 {
	ri, gi, bi := cubeIndex(int(r)), cubeIndex(int(g)), cubeIndex(int(b))

	// Grayscale ramp 232-255 maps to luminance 8, 18, ..., 238
	gray := (int(r) + int(g) + int(b)) / 3
	maxDiff := max(abs(int(r)-gray), abs(int(g)-gray), abs(int(b)-gray))
	if maxDiff < 10 && gray >= 4 && gray <= 243 {
		grayIdx := 232 + (gray-8)/10
		if grayIdx < 232 {
			grayIdx = 232
		}
		if grayIdx > 255 {
			grayIdx = 255
		}
		level := 8 + (grayIdx-232)*10
		grayDist := abs(int(r)-level) + abs(int(g)-level) + abs(int(b)-level)
		cubeDist := abs(int(r)-cubeValues[ri]) + abs(int(g)-cubeValues[gi]) + abs(int(b)-cubeValues[bi])
		if grayDist < cubeDist {
			return uint8(grayIdx)
		}
	}

	return uint8(16 + 36*ri + 6*gi + bi)
}

// colorKind classifies a tcell color for SGR emission
type colorKind uint8

const (
	colorDefault colorKind = iota
	colorPalette
	colorRGB
)

// classify resolves a tcell color to its SGR form
// Palette colors return their index, RGB colors return packed 0xRRGGBB
func classify(c tcell.Color) (colorKind, int32) {
	switch {
	case !c.Valid():
		// ColorDefault and ColorReset both fall back to the terminal default
		return colorDefault, 0
	case c.IsRGB():
		return colorRGB, c.Hex()
	default:
		return colorPalette, int32(c - tcell.ColorValid)
	}
}

// DetectColorMode determines terminal color capability from environment
func DetectColorMode() ColorMode {
	colorterm := os.Getenv("COLORTERM")
	if colorterm == "truecolor" || colorterm == "24bit" {
		return ColorModeTrueColor
	}

	if os.Getenv("KITTY_WINDOW_ID") != "" ||
		os.Getenv("KONSOLE_VERSION") != "" ||
		os.Getenv("ITERM_SESSION_ID") != "" ||
		os.Getenv("ALACRITTY_WINDOW_ID") != "" ||
		os.Getenv("ALACRITTY_LOG") != "" ||
		os.Getenv("WEZTERM_PANE") != "" {
		return ColorModeTrueColor
	}

	term := strings.ToLower(os.Getenv("TERM"))
	if strings.Contains(term, "truecolor") ||
		strings.Contains(term, "24bit") ||
		strings.Contains(term, "direct") {
		return ColorModeTrueColor
	}

	return ColorMode256
}
