package resume

import "strings"

// Fallback styling used when a template leaves a field empty.
const (
	DefaultFontFamily     = "sans-serif"
	DefaultFontSize       = "12px"
	DefaultPrimaryColor   = "#000000"
	DefaultSecondaryColor = "#0066cc"
)

// Styles are the template styling parameters. Headings and accents use
// PrimaryColor, links use SecondaryColor.
type Styles struct {
	PrimaryColor   string `json:"primaryColor"`
	SecondaryColor string `json:"secondaryColor"`
	FontFamily     string `json:"fontFamily"`
	FontSize       string `json:"fontSize"`
}

// WithDefaults returns a copy where every empty field holds its fallback.
func (s Styles) WithDefaults() Styles {
	return Styles{
		PrimaryColor:   orDefault(s.PrimaryColor, DefaultPrimaryColor),
		SecondaryColor: orDefault(s.SecondaryColor, DefaultSecondaryColor),
		FontFamily:     orDefault(s.FontFamily, DefaultFontFamily),
		FontSize:       orDefault(s.FontSize, DefaultFontSize),
	}
}

func orDefault(value, fallback string) string {
	if v := strings.TrimSpace(value); v != "" {
		return v
	}
	return fallback
}
