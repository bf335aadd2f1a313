package core

// Color is a foreground color for a screen cell. The platform maps each
// value to an ANSI 256-color code.
type Color uint8

// Colors used by the voyager presenter.
const (
	ColorDefault Color = iota
	ColorRed
	ColorYellow
	ColorCyan
	ColorMagenta
	ColorBrightWhite
	ColorOrange
	ColorGray
)
