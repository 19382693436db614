package rendering

import (
	"strings"
	"testing"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/hariombhu/hariombhu-Smart-Resume-Builder/internal/resume"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleResume() *resume.Resume {
	return &resume.Resume{
		PersonalInfo: resume.PersonalInfo{
			FullName: "Ada Lovelace",
			Email:    "ada@example.com",
			Phone:    "555-0100",
			Location: "London",
			LinkedIn: "https://linkedin.com/in/ada",
			GitHub:   "https://github.com/ada",
			Summary:  "Mathematician and first programmer.",
		},
		Experience: []resume.Experience{{
			Company:      "Analytical Engines",
			Position:     "Programmer",
			StartDate:    resume.NewDate(1842, time.January, 15),
			EndDate:      resume.NewDate(1843, time.August, 1),
			Achievements: []string{"Published the first algorithm"},
		}},
		Education: []resume.Education{{
			Institution: "University of London",
			Degree:      "BSc",
			Field:       "Mathematics",
			Grade:       "First",
		}},
		Skills: []resume.Skill{{Name: "Mathematics"}, {Name: "Analysis"}, {Name: "Writing"}},
		Projects: []resume.Project{{
			Title:        "Note G",
			Technologies: []string{"Analytical Engine", "Punched cards"},
			Link:         "https://example.com/note-g",
		}},
		Certifications: []resume.Certification{{
			Name:   "Royal Society Fellow",
			Issuer: "Royal Society",
			Date:   resume.NewDate(1843, time.March, 5),
		}},
	}
}

func renderSample(t *testing.T, r *resume.Resume, styles resume.Styles, qr string) (string, *goquery.Document) {
	t.Helper()
	doc, err := resume.Assemble(r, styles, qr)
	require.NoError(t, err)

	html, err := RenderHTML(doc)
	require.NoError(t, err)

	parsed, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	require.NoError(t, err)
	return html, parsed
}

func TestRenderHTML_SectionOrderAndHeadings(t *testing.T) {
	_, page := renderSample(t, sampleResume(), resume.Styles{}, "")

	var kinds, headings []string
	page.Find("div.section").Each(func(_ int, s *goquery.Selection) {
		kind, _ := s.Attr("data-kind")
		kinds = append(kinds, kind)
		headings = append(headings, s.Find("h2").Text())
	})

	assert.Equal(t, []string{"summary", "experience", "education", "skills", "projects", "certifications"}, kinds)
	assert.Equal(t, []string{
		"Professional Summary", "Work Experience", "Education", "Skills", "Projects", "Certifications",
	}, headings)
}

func TestRenderHTML_HeaderOnly(t *testing.T) {
	r := &resume.Resume{PersonalInfo: resume.PersonalInfo{FullName: "Ada", Email: "ada@example.com"}}
	_, page := renderSample(t, r, resume.Styles{}, "")

	assert.Equal(t, "Ada", page.Find("h1").Text())
	assert.Equal(t, 0, page.Find("div.section").Length())
	assert.Equal(t, "ada@example.com", page.Find(".contact-line").Text())
	assert.Equal(t, 0, page.Find(".links").Length())
}

func TestRenderHTML_Header(t *testing.T) {
	_, page := renderSample(t, sampleResume(), resume.Styles{}, "")

	assert.Equal(t, "ada@example.com | 555-0100 | London", page.Find(".contact-line").Text())

	links := page.Find(".links a")
	require.Equal(t, 2, links.Length())
	assert.Equal(t, "LinkedIn", links.Eq(0).Text())
	href, _ := links.Eq(1).Attr("href")
	assert.Equal(t, "https://github.com/ada", href)
}

func TestRenderHTML_Entries(t *testing.T) {
	_, page := renderSample(t, sampleResume(), resume.Styles{}, "")

	exp := page.Find(`div.section[data-kind="experience"] .item`).First()
	assert.Equal(t, "Programmer - Analytical Engines", exp.Find("h3").Text())
	assert.Equal(t, "Jan 1842 - Aug 1843", exp.Find(".date").Text())
	assert.Equal(t, "Published the first algorithm", exp.Find("li").Text())

	edu := page.Find(`div.section[data-kind="education"] .item`).First()
	assert.Equal(t, "BSc in Mathematics", edu.Find("h3").Text())
	assert.Contains(t, edu.Text(), "Grade: First")

	tags := page.Find(".skill-tag").Map(func(_ int, s *goquery.Selection) string { return s.Text() })
	assert.Equal(t, []string{"Mathematics", "Analysis", "Writing"}, tags)

	proj := page.Find(`div.section[data-kind="projects"]`)
	assert.Contains(t, proj.Text(), "Technologies: Analytical Engine, Punched cards")

	cert := page.Find(`div.section[data-kind="certifications"] .item`).First()
	assert.Equal(t, "Mar 1843", cert.Find(".date").Text())
}

func TestRenderHTML_EscapesContent(t *testing.T) {
	r := sampleResume()
	r.PersonalInfo.FullName = `<script>alert("x")</script>`
	r.PersonalInfo.LinkedIn = "javascript:alert(1)"

	html, page := renderSample(t, r, resume.Styles{}, "")

	assert.NotContains(t, html, "<script>")
	assert.Equal(t, `<script>alert("x")</script>`, page.Find("h1").Text())
	href, _ := page.Find(".links a").First().Attr("href")
	assert.NotContains(t, href, "javascript:")
}

func TestRenderHTML_QRCode(t *testing.T) {
	_, page := renderSample(t, sampleResume(), resume.Styles{}, "data:image/png;base64,iVBORw0KGgo=")
	src, ok := page.Find("img.qr-code").Attr("src")
	require.True(t, ok)
	assert.Equal(t, "data:image/png;base64,iVBORw0KGgo=", src)

	_, page = renderSample(t, sampleResume(), resume.Styles{}, "https://evil.example/qr.png")
	assert.Equal(t, 0, page.Find("img.qr-code").Length())
}

func TestRenderHTML_NilDocument(t *testing.T) {
	_, err := RenderHTML(nil)
	var renderErr *RenderError
	require.ErrorAs(t, err, &renderErr)
	assert.Equal(t, StageDocument, renderErr.Stage)
}

func TestStylesheet(t *testing.T) {
	css := Stylesheet(resume.Styles{PrimaryColor: "#3b82f6", FontFamily: "Inter", FontSize: "14px"})

	assert.Contains(t, css, "font-family: Inter, sans-serif;")
	assert.Contains(t, css, "font-size: 14px;")
	assert.Contains(t, css, "border-bottom: 2px solid #3b82f6;")
	assert.Contains(t, css, "a { color: #0066cc;")
}

func TestStylesheet_Defaults(t *testing.T) {
	css := Stylesheet(resume.Styles{})
	assert.Contains(t, css, "font-family: sans-serif;")
	assert.Contains(t, css, "font-size: 12px;")
	assert.Contains(t, css, "color: #000000;")
}

func TestCSSValue(t *testing.T) {
	assert.Equal(t, "red  body  background: urlx", cssValue("red; } body { background: url(x)"))
	assert.Equal(t, "Times New Roman", cssValue("Times New Roman"))
}

func TestContactLine(t *testing.T) {
	assert.Equal(t, "a@b.c", ContactLine(&resume.HeaderSection{Email: "a@b.c"}))
	assert.Equal(t, "a@b.c | Paris", ContactLine(&resume.HeaderSection{Email: "a@b.c", Location: "Paris"}))
}
