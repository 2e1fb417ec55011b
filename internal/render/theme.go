package render

// Raw SGR codes used across themes. 256-color entries pick hues the 16-color
// palette cannot express.
const (
	green        = "\x1b[32m"
	yellow       = "\x1b[33m"
	red          = "\x1b[31m"
	dim          = "\x1b[2m"
	bold         = "\x1b[1m"
	cyan         = "\x1b[36m"
	blue         = "\x1b[34m"
	magenta      = "\x1b[35m"
	white        = "\x1b[37m"
	brightWhite  = "\x1b[97m"
	brightGreen  = "\x1b[92m"
	brightYellow = "\x1b[93m"
	brightRed    = "\x1b[91m"
	orange256    = "\x1b[38;5;208m"
	prideViolet  = "\x1b[38;5;135m"
	prideGreen   = "\x1b[38;5;49m"
	pridePink    = "\x1b[38;5;199m"
	frostIce     = "\x1b[38;5;159m"
	frostSteel   = "\x1b[38;5;75m"
	emberGold    = "\x1b[38;5;220m"
	emberHot     = "\x1b[38;5;202m"
	candyPink    = "\x1b[38;5;213m"
	candyPurple  = "\x1b[38;5;141m"
	candyCyan    = "\x1b[38;5;51m"
)

// Theme maps usage levels to SGR color codes.
type Theme struct {
	Low  string
	Mid  string
	High string
}

// RainbowTheme is the name of the animated theme; it bypasses the threshold
// colors entirely and is rendered by the compositor instead.
const RainbowTheme = "rainbow"

// Themes is the fixed set of named themes. The rainbow entry carries
// representative colors for previews only.
var Themes = map[string]Theme{
	"default": {Low: green, Mid: yellow, High: red},
	"ocean":   {Low: cyan, Mid: blue, High: magenta},
	"sunset":  {Low: yellow, Mid: orange256, High: red},
	"mono":    {Low: white, Mid: white, High: brightWhite},
	"neon":    {Low: brightGreen, Mid: brightYellow, High: brightRed},
	"pride":   {Low: prideViolet, Mid: prideGreen, High: pridePink},
	"frost":   {Low: frostIce, Mid: frostSteel, High: brightWhite},
	"ember":   {Low: emberGold, Mid: emberHot, High: brightRed},
	"candy":   {Low: candyPink, Mid: candyPurple, High: candyCyan},
	RainbowTheme: {Low: brightGreen, Mid: brightYellow, High: magenta},
}

// ThemeNames lists themes in a stable display order.
var ThemeNames = []string{
	"default", "ocean", "sunset", "mono", "neon",
	"pride", "frost", "ember", "candy", RainbowTheme,
}

// GetTheme returns the named theme, falling back to default for unknown names.
func GetTheme(name string) Theme {
	if t, ok := Themes[name]; ok {
		return t
	}
	return Themes["default"]
}

// TextColors names the base colors available for non-bar text.
var TextColors = map[string]string{
	"white":        "\x1b[37m",
	"bright_white": "\x1b[97m",
	"cyan":         "\x1b[36m",
	"blue":         "\x1b[34m",
	"green":        "\x1b[32m",
	"yellow":       "\x1b[33m",
	"magenta":      "\x1b[35m",
	"red":          "\x1b[31m",
	"orange":       "\x1b[38;5;208m",
	"violet":       "\x1b[38;5;135m",
	"pink":         "\x1b[38;5;199m",
	"dim":          "\x1b[2;37m",
	"default":      "\x1b[39m",
	"none":         "",
}

// themeTextDefaults picks a readable text color per theme. The rainbow theme
// colors its own text, so it gets none.
var themeTextDefaults = map[string]string{
	"default": "white",
	"ocean":   "white",
	"sunset":  "white",
	"mono":    "dim",
	"neon":    "white",
	"pride":   "white",
	"frost":   "white",
	"ember":   "white",
	"candy":   "white",
	RainbowTheme: "none",
}

// ResolveTextColor returns the SGR code for a configured text color choice.
// "auto" resolves per theme.
func ResolveTextColor(themeName, choice string) string {
	if choice == "auto" || choice == "" {
		name, ok := themeTextDefaults[themeName]
		if !ok {
			name = "white"
		}
		return TextColors[name]
	}
	if code, ok := TextColors[choice]; ok {
		return code
	}
	return TextColors["white"]
}
