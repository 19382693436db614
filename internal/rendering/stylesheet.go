package rendering

import (
	"fmt"
	"strings"

	"github.com/hariombhu/hariombhu-Smart-Resume-Builder/internal/resume"
)

// cssValue drops characters that could end a declaration or open a new rule,
// so template-supplied style values stay inside their property.
func cssValue(v string) string {
	return strings.Map(func(r rune) rune {
		switch r {
		case ';', '{', '}', '<', '>', '\\', '"', '`', '@', '(', ')':
			return -1
		}
		return r
	}, v)
}

// Stylesheet builds the page CSS from resolved template styles. Headings use
// the primary color and links the secondary color.
func Stylesheet(s resume.Styles) string {
	s = s.WithDefaults()
	primary := cssValue(s.PrimaryColor)
	secondary := cssValue(s.SecondaryColor)
	family := cssValue(s.FontFamily)
	if family != resume.DefaultFontFamily {
		family += ", " + resume.DefaultFontFamily
	}

	return fmt.Sprintf(`
* { margin: 0; padding: 0; box-sizing: border-box; }
body { font-family: %s; font-size: %s; line-height: 1.6; color: #333; }
.container { padding: 20px; position: relative; }
h1 { font-size: 28px; margin-bottom: 5px; color: %s; }
h2 { font-size: 18px; margin-top: 15px; margin-bottom: 10px; border-bottom: 2px solid %s; padding-bottom: 5px; color: %s; }
h3 { font-size: 14px; margin-bottom: 5px; }
a { color: %s; text-decoration: none; }
.contact-info { margin-bottom: 10px; font-size: 11px; }
.section { margin-bottom: 15px; }
.item { margin-bottom: 10px; }
.item-header { display: flex; justify-content: space-between; margin-bottom: 3px; }
.date { font-style: italic; color: #666; font-size: 11px; }
.skills-container { display: flex; flex-wrap: wrap; gap: 8px; }
.skill-tag { display: inline-block; padding: 4px 10px; background: #f0f0f0; border-radius: 4px; font-size: 11px; }
ul { margin-left: 20px; }
li { margin-bottom: 3px; }
.qr-code { position: absolute; top: 20px; right: 20px; width: 80px; height: 80px; }
`, family, cssValue(s.FontSize), primary, primary, primary, secondary)
}
