package memory

import "github.com/carelink/brainarcade/internal/core"

// Token is one kind of matchable card face.
type Token struct {
	Name  string     // icon identity, e.g. "musical-notes"
	Label string     // short face text, at most 7 runes
	Color core.Color // face color in the terminal
}

// tokenPool is the fixed set of faces a deck is drawn from.
var tokenPool = []Token{
	{"heart", "HEART", core.ColorBrightRed},
	{"leaf", "LEAF", core.ColorBrightGreen},
	{"flash", "FLASH", core.ColorBrightYellow},
	{"moon", "MOON", core.ColorBrightBlue},
	{"sunny", "SUN", core.ColorYellow},
	{"cloud", "CLOUD", core.ColorBrightCyan},
	{"star", "STAR", core.ColorBrightYellow},
	{"cellular", "SIGNAL", core.ColorGreen},
	{"airplane", "PLANE", core.ColorCyan},
	{"bicycle", "BIKE", core.ColorBlue},
	{"bonfire", "FIRE", core.ColorOrange},
	{"bulb", "BULB", core.ColorYellow},
	{"football", "BALL", core.ColorWhite},
	{"fitness", "GYM", core.ColorMagenta},
	{"flame", "FLAME", core.ColorRed},
	{"beaker", "BEAKER", core.ColorBrightCyan},
	{"calculator", "CALC", core.ColorBrightWhite},
	{"pizza", "PIZZA", core.ColorOrange},
	{"happy", "SMILE", core.ColorBrightYellow},
	{"musical-notes", "NOTES", core.ColorBrightMagenta},
	{"rocket", "ROCKET", core.ColorBrightRed},
	{"trophy", "TROPHY", core.ColorYellow},
	{"planet", "PLANET", core.ColorBrightBlue},
	{"watch", "WATCH", core.ColorWhite},
	{"medkit", "MEDKIT", core.ColorRed},
	{"notifications", "BELL", core.ColorBrightYellow},
	{"sparkles", "SPARKLE", core.ColorBrightMagenta},
	{"game-controller", "GAMEPAD", core.ColorBrightGreen},
	{"umbrella", "UMBRELA", core.ColorMagenta},
	{"water", "WATER", core.ColorBlue},
}

// PoolSize returns the number of distinct tokens available.
func PoolSize() int {
	return len(tokenPool)
}

// Tokens returns a copy of the token pool.
func Tokens() []Token {
	return append([]Token(nil), tokenPool...)
}
