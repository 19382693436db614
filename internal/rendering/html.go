// Package rendering serializes assembled resume documents into printable HTML
// and plain text.
package rendering

import (
	"embed"
	"fmt"
	"html/template"
	"strings"
	"sync"

	"github.com/hariombhu/hariombhu-Smart-Resume-Builder/internal/resume"
)

//go:embed templates/resume.html.tmpl
var templateFS embed.FS

const templateName = "resume.html.tmpl"

// qrDataURIPrefix is the only image source accepted for the QR overlay.
const qrDataURIPrefix = "data:image/png;base64,"

var (
	parsedTemplate *template.Template
	parseOnce      sync.Once
	parseErr       error
)

// pageData is the view handed to the HTML template.
type pageData struct {
	Stylesheet  template.CSS
	Header      *resume.HeaderSection
	ContactLine string
	QRCode      template.URL
	Sections    []sectionView
}

// sectionView exposes one non-header section; exactly one field is set.
type sectionView struct {
	Summary        *resume.SummarySection
	Experience     *resume.ExperienceSection
	Education      *resume.EducationSection
	Skills         *resume.SkillsSection
	Projects       *resume.ProjectsSection
	Certifications *resume.CertificationsSection
}

func loadTemplate() (*template.Template, error) {
	parseOnce.Do(func() {
		parsedTemplate, parseErr = template.New(templateName).ParseFS(templateFS, "templates/"+templateName)
	})
	if parseErr != nil {
		return nil, &RenderError{Stage: StageTemplate, Message: "failed to parse resume template", Cause: parseErr}
	}
	return parsedTemplate, nil
}

// RenderHTML renders a document into a standalone HTML page suitable for
// printing to PDF.
func RenderHTML(doc *resume.Document) (string, error) {
	if doc == nil {
		return "", &RenderError{Stage: StageDocument, Message: "document is nil"}
	}

	data, err := buildPageData(doc)
	if err != nil {
		return "", err
	}

	tmpl, err := loadTemplate()
	if err != nil {
		return "", err
	}

	var out strings.Builder
	if err := tmpl.Execute(&out, data); err != nil {
		return "", &RenderError{Stage: StageTemplate, Message: "failed to execute template", Cause: err}
	}
	return out.String(), nil
}

func buildPageData(doc *resume.Document) (*pageData, error) {
	header := doc.Header()
	if header == nil {
		return nil, &RenderError{Stage: StageDocument, Message: "document has no header section"}
	}

	data := &pageData{
		Stylesheet:  template.CSS(Stylesheet(doc.Style)),
		Header:      header,
		ContactLine: ContactLine(header),
	}
	if strings.HasPrefix(header.QRCode, qrDataURIPrefix) {
		data.QRCode = template.URL(header.QRCode)
	}

	for _, s := range doc.Sections {
		switch sec := s.(type) {
		case *resume.HeaderSection:
		case *resume.SummarySection:
			data.Sections = append(data.Sections, sectionView{Summary: sec})
		case *resume.ExperienceSection:
			data.Sections = append(data.Sections, sectionView{Experience: sec})
		case *resume.EducationSection:
			data.Sections = append(data.Sections, sectionView{Education: sec})
		case *resume.SkillsSection:
			data.Sections = append(data.Sections, sectionView{Skills: sec})
		case *resume.ProjectsSection:
			data.Sections = append(data.Sections, sectionView{Projects: sec})
		case *resume.CertificationsSection:
			data.Sections = append(data.Sections, sectionView{Certifications: sec})
		default:
			return nil, &RenderError{Stage: StageDocument, Message: fmt.Sprintf("unsupported section kind %q", s.Kind())}
		}
	}
	return data, nil
}

// ContactLine joins email, phone and location with " | ", skipping empty parts.
func ContactLine(h *resume.HeaderSection) string {
	parts := []string{h.Email}
	if h.Phone != "" {
		parts = append(parts, h.Phone)
	}
	if h.Location != "" {
		parts = append(parts, h.Location)
	}
	return strings.Join(parts, " | ")
}
