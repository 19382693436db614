package resume

import "encoding/json"

// SectionKind identifies a document section.
type SectionKind string

// Section kinds, listed in document order.
const (
	KindHeader         SectionKind = "header"
	KindSummary        SectionKind = "summary"
	KindExperience     SectionKind = "experience"
	KindEducation      SectionKind = "education"
	KindSkills         SectionKind = "skills"
	KindProjects       SectionKind = "projects"
	KindCertifications SectionKind = "certifications"
)

// Section is one typed block of an assembled document. The set of
// implementations is closed to this package.
type Section interface {
	Kind() SectionKind
	isSection()
}

// Document is the renderer-independent form of a resume: resolved styling
// and an ordered list of sections.
type Document struct {
	Style    Styles
	Sections []Section
}

// Kinds returns the section kinds in document order.
func (d *Document) Kinds() []SectionKind {
	kinds := make([]SectionKind, 0, len(d.Sections))
	for _, s := range d.Sections {
		kinds = append(kinds, s.Kind())
	}
	return kinds
}

// Header returns the header section. Every assembled document has one.
func (d *Document) Header() *HeaderSection {
	for _, s := range d.Sections {
		if h, ok := s.(*HeaderSection); ok {
			return h
		}
	}
	return nil
}

type taggedSection struct {
	Kind SectionKind `json:"kind"`
	Data Section     `json:"data"`
}

// MarshalJSON encodes sections as {"kind": ..., "data": ...} pairs.
func (d *Document) MarshalJSON() ([]byte, error) {
	tagged := make([]taggedSection, 0, len(d.Sections))
	for _, s := range d.Sections {
		tagged = append(tagged, taggedSection{Kind: s.Kind(), Data: s})
	}
	return json.Marshal(struct {
		Style    Styles          `json:"style"`
		Sections []taggedSection `json:"sections"`
	}{Style: d.Style, Sections: tagged})
}

// Link is a labeled external link in the header.
type Link struct {
	Label string `json:"label"`
	URL   string `json:"url"`
}

// HeaderSection carries identity and contact details. QRCode, when set, is an
// image data URI placed as an overlay rather than in the section flow.
type HeaderSection struct {
	FullName string `json:"fullName"`
	Email    string `json:"email"`
	Phone    string `json:"phone,omitempty"`
	Location string `json:"location,omitempty"`
	Links    []Link `json:"links,omitempty"`
	QRCode   string `json:"qrCode,omitempty"`
}

// SummarySection is the professional summary paragraph.
type SummarySection struct {
	Text string `json:"text"`
}

// ExperienceItem is one rendered job.
type ExperienceItem struct {
	Position     string   `json:"position"`
	Company      string   `json:"company"`
	StartLabel   string   `json:"startLabel"`
	EndLabel     string   `json:"endLabel"`
	Description  string   `json:"description,omitempty"`
	Achievements []string `json:"achievements,omitempty"`
}

// ExperienceSection lists jobs in entry order.
type ExperienceSection struct {
	Items []ExperienceItem `json:"items"`
}

// EducationItem is one rendered education entry.
type EducationItem struct {
	DegreeLine  string `json:"degreeLine"`
	Institution string `json:"institution"`
	StartLabel  string `json:"startLabel"`
	EndLabel    string `json:"endLabel"`
	Grade       string `json:"grade,omitempty"`
	Description string `json:"description,omitempty"`
}

// EducationSection lists education entries in entry order.
type EducationSection struct {
	Items []EducationItem `json:"items"`
}

// SkillsSection is a set of name-only tags.
type SkillsSection struct {
	Tags []string `json:"tags"`
}

// ProjectItem is one rendered project. Technologies is already joined.
type ProjectItem struct {
	Title        string `json:"title"`
	Description  string `json:"description,omitempty"`
	Technologies string `json:"technologies,omitempty"`
	Link         string `json:"link,omitempty"`
}

// ProjectsSection lists projects in entry order.
type ProjectsSection struct {
	Items []ProjectItem `json:"items"`
}

// CertificationItem is one rendered certification with a single date.
type CertificationItem struct {
	Name      string `json:"name"`
	Issuer    string `json:"issuer,omitempty"`
	DateLabel string `json:"dateLabel"`
	Link      string `json:"link,omitempty"`
}

// CertificationsSection lists certifications in entry order.
type CertificationsSection struct {
	Items []CertificationItem `json:"items"`
}

func (*HeaderSection) Kind() SectionKind         { return KindHeader }
func (*SummarySection) Kind() SectionKind        { return KindSummary }
func (*ExperienceSection) Kind() SectionKind     { return KindExperience }
func (*EducationSection) Kind() SectionKind      { return KindEducation }
func (*SkillsSection) Kind() SectionKind         { return KindSkills }
func (*ProjectsSection) Kind() SectionKind       { return KindProjects }
func (*CertificationsSection) Kind() SectionKind { return KindCertifications }

func (*HeaderSection) isSection()         {}
func (*SummarySection) isSection()        {}
func (*ExperienceSection) isSection()     {}
func (*EducationSection) isSection()      {}
func (*SkillsSection) isSection()         {}
func (*ProjectsSection) isSection()       {}
func (*CertificationsSection) isSection() {}
