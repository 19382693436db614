package resume

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fullResume() *Resume {
	return &Resume{
		PersonalInfo: PersonalInfo{
			FullName:  "Ada Lovelace",
			Email:     "ada@example.com",
			Phone:     "555-0100",
			Location:  "London",
			LinkedIn:  "https://linkedin.com/in/ada",
			GitHub:    "https://github.com/ada",
			Portfolio: "https://ada.dev",
			Summary:   "Mathematician and first programmer.",
		},
		Education: []Education{{
			Institution: "University of London",
			Degree:      "BSc",
			Field:       "Mathematics",
			StartDate:   NewDate(1830, time.September, 1),
			EndDate:     NewDate(1833, time.June, 30),
			Grade:       "First",
		}},
		Experience: []Experience{{
			Company:      "Analytical Engines",
			Position:     "Programmer",
			StartDate:    NewDate(1842, time.January, 15),
			EndDate:      NewDate(1843, time.August, 1),
			Achievements: []string{"Published the first algorithm"},
		}},
		Skills: []Skill{
			{Name: "Mathematics", Level: LevelExpert},
			{Name: "Analysis", Level: LevelAdvanced},
			{Name: "Writing"},
		},
		Projects: []Project{{
			Title:        "Note G",
			Description:  "Bernoulli numbers",
			Technologies: []string{"Analytical Engine", "Punched cards"},
			Link:         "https://example.com/note-g",
		}},
		Certifications: []Certification{{
			Name:   "Royal Society Fellow",
			Issuer: "Royal Society",
			Date:   NewDate(1843, time.March, 5),
		}},
	}
}

func TestAssemble_FullResumeOrder(t *testing.T) {
	doc, err := Assemble(fullResume(), Styles{}, "")
	require.NoError(t, err)

	assert.Equal(t, []SectionKind{
		KindHeader, KindSummary, KindExperience, KindEducation,
		KindSkills, KindProjects, KindCertifications,
	}, doc.Kinds())
}

func TestAssemble_OnlyProjects(t *testing.T) {
	r := contactOnly()
	r.Projects = []Project{{Title: "Compiler"}}

	doc, err := Assemble(r, Styles{}, "")
	require.NoError(t, err)
	assert.Equal(t, []SectionKind{KindHeader, KindProjects}, doc.Kinds())
}

func TestAssemble_ContactOnlyIsHeaderOnly(t *testing.T) {
	doc, err := Assemble(contactOnly(), Styles{}, "")
	require.NoError(t, err)
	assert.Equal(t, []SectionKind{KindHeader}, doc.Kinds())
}

func TestAssemble_WhitespaceSummaryIsKept(t *testing.T) {
	r := contactOnly()
	r.PersonalInfo.Summary = "   "

	doc, err := Assemble(r, Styles{}, "")
	require.NoError(t, err)
	assert.Equal(t, []SectionKind{KindHeader, KindSummary}, doc.Kinds())
	assert.Equal(t, 17, Score(r))
}

func TestAssemble_MissingRequiredFields(t *testing.T) {
	_, err := Assemble(&Resume{PersonalInfo: PersonalInfo{Email: "a@b.c"}}, Styles{}, "")
	var missing *ErrMissingRequiredField
	require.ErrorAs(t, err, &missing)
	assert.Equal(t, "fullName", missing.Field)

	_, err = Assemble(&Resume{PersonalInfo: PersonalInfo{FullName: "Ada"}}, Styles{}, "")
	require.ErrorAs(t, err, &missing)
	assert.Equal(t, "email", missing.Field)

	_, err = Assemble(nil, Styles{}, "")
	assert.Error(t, err)
}

func TestAssemble_Header(t *testing.T) {
	r := fullResume()
	r.PersonalInfo.GitHub = ""

	doc, err := Assemble(r, Styles{}, "data:image/png;base64,AAAA")
	require.NoError(t, err)

	h := doc.Header()
	require.NotNil(t, h)
	assert.Equal(t, "Ada Lovelace", h.FullName)
	assert.Equal(t, "555-0100", h.Phone)
	assert.Equal(t, "London", h.Location)
	assert.Equal(t, []Link{
		{Label: "LinkedIn", URL: "https://linkedin.com/in/ada"},
		{Label: "Portfolio", URL: "https://ada.dev"},
	}, h.Links)
	assert.Equal(t, "data:image/png;base64,AAAA", h.QRCode)
}

func TestAssemble_CurrentExperienceEndsPresent(t *testing.T) {
	r := contactOnly()
	r.Experience = []Experience{{
		Company:   "Acme",
		Position:  "Engineer",
		StartDate: NewDate(2020, time.March, 1),
		EndDate:   NewDate(2021, time.May, 1),
		Current:   true,
	}}

	doc, err := Assemble(r, Styles{}, "")
	require.NoError(t, err)

	exp, ok := doc.Sections[1].(*ExperienceSection)
	require.True(t, ok)
	assert.Equal(t, "Mar 2020", exp.Items[0].StartLabel)
	assert.Equal(t, "Present", exp.Items[0].EndLabel)
}

func TestAssemble_ExperienceWithoutAchievements(t *testing.T) {
	r := contactOnly()
	r.Experience = []Experience{{Company: "Acme", Position: "Engineer", Achievements: []string{}}}

	doc, err := Assemble(r, Styles{}, "")
	require.NoError(t, err)

	exp := doc.Sections[1].(*ExperienceSection)
	assert.Empty(t, exp.Items[0].Achievements)
	assert.Equal(t, "", exp.Items[0].StartLabel)
	assert.Equal(t, "", exp.Items[0].EndLabel)
}

func TestDegreeLine(t *testing.T) {
	assert.Equal(t, "BSc", DegreeLine("BSc", ""))
	assert.Equal(t, "BSc in Physics", DegreeLine("BSc", "Physics"))
}

func TestAssemble_Education(t *testing.T) {
	r := contactOnly()
	r.Education = []Education{
		{Institution: "MIT", Degree: "BSc", EndDate: NewDate(2019, time.June, 1)},
		{Institution: "ETH", Degree: "MSc", Field: "Physics"},
	}

	doc, err := Assemble(r, Styles{}, "")
	require.NoError(t, err)

	edu := doc.Sections[1].(*EducationSection)
	require.Len(t, edu.Items, 2)
	assert.Equal(t, "BSc", edu.Items[0].DegreeLine)
	assert.Equal(t, "", edu.Items[0].StartLabel)
	assert.Equal(t, "Jun 2019", edu.Items[0].EndLabel)
	assert.Equal(t, "MSc in Physics", edu.Items[1].DegreeLine)
}

func TestAssemble_SkillsAreNameOnly(t *testing.T) {
	r := contactOnly()
	r.Skills = []Skill{{Name: "Go", Level: LevelExpert}, {Name: "SQL", Level: LevelBeginner}}

	doc, err := Assemble(r, Styles{}, "")
	require.NoError(t, err)

	s := doc.Sections[1].(*SkillsSection)
	assert.Equal(t, []string{"Go", "SQL"}, s.Tags)
}

func TestAssemble_ProjectsAndCertifications(t *testing.T) {
	doc, err := Assemble(fullResume(), Styles{}, "")
	require.NoError(t, err)

	projects := doc.Sections[5].(*ProjectsSection)
	assert.Equal(t, "Analytical Engine, Punched cards", projects.Items[0].Technologies)

	certs := doc.Sections[6].(*CertificationsSection)
	assert.Equal(t, "Mar 1843", certs.Items[0].DateLabel)
	assert.Equal(t, "Royal Society", certs.Items[0].Issuer)
}

func TestAssemble_StyleFallbacks(t *testing.T) {
	doc, err := Assemble(contactOnly(), Styles{PrimaryColor: "#3b82f6"}, "")
	require.NoError(t, err)

	assert.Equal(t, Styles{
		PrimaryColor:   "#3b82f6",
		SecondaryColor: DefaultSecondaryColor,
		FontFamily:     DefaultFontFamily,
		FontSize:       DefaultFontSize,
	}, doc.Style)
}

func TestAssemble_Idempotent(t *testing.T) {
	r := fullResume()
	styles := Styles{FontFamily: "Inter", FontSize: "14px"}

	first, err := Assemble(r, styles, "qr")
	require.NoError(t, err)
	second, err := Assemble(r, styles, "qr")
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestDocument_MarshalJSON(t *testing.T) {
	r := contactOnly()
	r.PersonalInfo.Summary = "Hello"

	doc, err := Assemble(r, Styles{}, "")
	require.NoError(t, err)

	data, err := json.Marshal(doc)
	require.NoError(t, err)

	var decoded struct {
		Style    Styles `json:"style"`
		Sections []struct {
			Kind SectionKind     `json:"kind"`
			Data json.RawMessage `json:"data"`
		} `json:"sections"`
	}
	require.NoError(t, json.Unmarshal(data, &decoded))
	require.Len(t, decoded.Sections, 2)
	assert.Equal(t, KindHeader, decoded.Sections[0].Kind)
	assert.Equal(t, KindSummary, decoded.Sections[1].Kind)
	assert.JSONEq(t, `{"text":"Hello"}`, string(decoded.Sections[1].Data))
	assert.Equal(t, DefaultFontSize, decoded.Style.FontSize)
}
