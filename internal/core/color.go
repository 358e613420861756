package core

// Color is the foreground colour of a screen cell. The platform maps it to
// an ANSI 256-colour code.
type Color uint8

const (
	ColorDefault Color = iota // Terminal default
	ColorRed
	ColorGreen // Pipes
	ColorYellow
	ColorWhite
	ColorBrightRed    // Crashed bird, game over box
	ColorBrightYellow // Bird, title box
	ColorBrightCyan   // Pause box
	ColorBrightWhite
	ColorOrange // Ground
	ColorGray   // Clouds
)

var ansiCodes = [...]string{
	ColorDefault:      "",
	ColorRed:          "1",
	ColorGreen:        "2",
	ColorYellow:       "3",
	ColorWhite:        "7",
	ColorBrightRed:    "9",
	ColorBrightYellow: "11",
	ColorBrightCyan:   "14",
	ColorBrightWhite:  "15",
	ColorOrange:       "208",
	ColorGray:         "245",
}

// ANSI returns the ANSI 256-colour code, or "" for the terminal default and
// unknown colours.
func (c Color) ANSI() string {
	if int(c) >= len(ansiCodes) {
		return ""
	}
	return ansiCodes[c]
}
