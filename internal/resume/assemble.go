package resume

import "strings"

// technologiesSeparator joins project technologies into one label.
const technologiesSeparator = ", "

// Assemble builds the document for a resume under the given template styles.
// qrCode is an optional image data URI attached to the header.
//
// Sections appear in the fixed order header, summary, experience, education,
// skills, projects, certifications; every section after the header is
// omitted when its source data is empty. Assemble only fails when the full
// name or email is missing.
func Assemble(r *Resume, styles Styles, qrCode string) (*Document, error) {
	if r == nil || !present(r.PersonalInfo.FullName) {
		return nil, &ErrMissingRequiredField{Field: "fullName"}
	}
	if !present(r.PersonalInfo.Email) {
		return nil, &ErrMissingRequiredField{Field: "email"}
	}

	doc := &Document{
		Style:    styles.WithDefaults(),
		Sections: []Section{buildHeader(r.PersonalInfo, qrCode)},
	}

	if r.PersonalInfo.Summary != "" {
		doc.Sections = append(doc.Sections, &SummarySection{Text: r.PersonalInfo.Summary})
	}
	if len(r.Experience) > 0 {
		doc.Sections = append(doc.Sections, buildExperience(r.Experience))
	}
	if len(r.Education) > 0 {
		doc.Sections = append(doc.Sections, buildEducation(r.Education))
	}
	if len(r.Skills) > 0 {
		doc.Sections = append(doc.Sections, buildSkills(r.Skills))
	}
	if len(r.Projects) > 0 {
		doc.Sections = append(doc.Sections, buildProjects(r.Projects))
	}
	if len(r.Certifications) > 0 {
		doc.Sections = append(doc.Sections, buildCertifications(r.Certifications))
	}

	return doc, nil
}

func buildHeader(p PersonalInfo, qrCode string) *HeaderSection {
	h := &HeaderSection{
		FullName: p.FullName,
		Email:    p.Email,
		Phone:    p.Phone,
		Location: p.Location,
		QRCode:   qrCode,
	}
	candidates := []Link{
		{Label: "LinkedIn", URL: p.LinkedIn},
		{Label: "GitHub", URL: p.GitHub},
		{Label: "Portfolio", URL: p.Portfolio},
	}
	for _, link := range candidates {
		if present(link.URL) {
			h.Links = append(h.Links, link)
		}
	}
	return h
}

func buildExperience(entries []Experience) *ExperienceSection {
	section := &ExperienceSection{Items: make([]ExperienceItem, 0, len(entries))}
	for _, e := range entries {
		item := ExperienceItem{
			Position:    e.Position,
			Company:     e.Company,
			StartLabel:  FormatDate(e.StartDate),
			EndLabel:    experienceEndLabel(e),
			Description: e.Description,
		}
		for _, a := range e.Achievements {
			if present(a) {
				item.Achievements = append(item.Achievements, a)
			}
		}
		section.Items = append(section.Items, item)
	}
	return section
}

// DegreeLine renders "{degree} in {field}", or the degree alone without a field.
func DegreeLine(degree, field string) string {
	if !present(field) {
		return degree
	}
	return degree + " in " + field
}

func buildEducation(entries []Education) *EducationSection {
	section := &EducationSection{Items: make([]EducationItem, 0, len(entries))}
	for _, e := range entries {
		section.Items = append(section.Items, EducationItem{
			DegreeLine:  DegreeLine(e.Degree, e.Field),
			Institution: e.Institution,
			StartLabel:  FormatDate(e.StartDate),
			EndLabel:    FormatDate(e.EndDate),
			Grade:       e.Grade,
			Description: e.Description,
		})
	}
	return section
}

func buildSkills(skills []Skill) *SkillsSection {
	section := &SkillsSection{Tags: make([]string, 0, len(skills))}
	for _, s := range skills {
		section.Tags = append(section.Tags, s.Name)
	}
	return section
}

func buildProjects(entries []Project) *ProjectsSection {
	section := &ProjectsSection{Items: make([]ProjectItem, 0, len(entries))}
	for _, p := range entries {
		section.Items = append(section.Items, ProjectItem{
			Title:        p.Title,
			Description:  p.Description,
			Technologies: strings.Join(p.Technologies, technologiesSeparator),
			Link:         p.Link,
		})
	}
	return section
}

func buildCertifications(entries []Certification) *CertificationsSection {
	section := &CertificationsSection{Items: make([]CertificationItem, 0, len(entries))}
	for _, c := range entries {
		section.Items = append(section.Items, CertificationItem{
			Name:      c.Name,
			Issuer:    c.Issuer,
			DateLabel: FormatDate(c.Date),
			Link:      c.Link,
		})
	}
	return section
}
