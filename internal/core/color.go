package core

import "strconv"

// Color is the foreground of a screen cell. Apart from ColorDefault, the
// value is the cell's ANSI 256-color index, so renderers need no lookup.
type Color uint8

// ColorDefault keeps the terminal's own foreground. Index 0 (black) is not
// drawable on most terminal backgrounds, so it doubles as the sentinel.
const ColorDefault Color = 0

// Base and bright ANSI colors.
const (
	ColorRed     Color = 1
	ColorGreen   Color = 2
	ColorYellow  Color = 3
	ColorBlue    Color = 4
	ColorMagenta Color = 5
	ColorCyan    Color = 6
	ColorWhite   Color = 7

	ColorBrightRed     Color = 9
	ColorBrightGreen   Color = 10
	ColorBrightYellow  Color = 11
	ColorBrightBlue    Color = 12
	ColorBrightMagenta Color = 13
	ColorBrightCyan    Color = 14
	ColorBrightWhite   Color = 15
)

// Extended palette entries used by the games.
const (
	ColorOrange Color = 208
	ColorGray   Color = 245
)

// IsDefault reports whether c leaves the terminal foreground alone.
func (c Color) IsDefault() bool {
	return c == ColorDefault
}

// ANSI returns the 256-color index as a decimal string, or "" for
// ColorDefault.
func (c Color) ANSI() string {
	if c.IsDefault() {
		return ""
	}
	return strconv.Itoa(int(c))
}
