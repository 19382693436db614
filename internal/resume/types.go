// Package resume holds the resume content model together with the two pure
// computations built on it: completeness scoring and document assembly.
package resume

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// SkillLevel is the self-assessed proficiency of a skill.
type SkillLevel string

// Skill levels
const (
	LevelBeginner     SkillLevel = "beginner"
	LevelIntermediate SkillLevel = "intermediate"
	LevelAdvanced     SkillLevel = "advanced"
	LevelExpert       SkillLevel = "expert"
)

// Resume is the user-authored content of a resume record.
type Resume struct {
	PersonalInfo   PersonalInfo    `json:"personalInfo"`
	Education      []Education     `json:"education"`
	Experience     []Experience    `json:"experience"`
	Skills         []Skill         `json:"skills"`
	Projects       []Project       `json:"projects"`
	Certifications []Certification `json:"certifications"`
}

// PersonalInfo is the contact block of a resume. FullName and Email are required.
type PersonalInfo struct {
	FullName     string `json:"fullName"`
	Email        string `json:"email"`
	Phone        string `json:"phone,omitempty"`
	Location     string `json:"location,omitempty"`
	ProfilePhoto string `json:"profilePhoto,omitempty"`
	LinkedIn     string `json:"linkedIn,omitempty"`
	GitHub       string `json:"github,omitempty"`
	Portfolio    string `json:"portfolio,omitempty"`
	Summary      string `json:"summary,omitempty"`
}

// Education is a single education entry.
type Education struct {
	Institution string `json:"institution"`
	Degree      string `json:"degree"`
	Field       string `json:"field,omitempty"`
	StartDate   *Date  `json:"startDate,omitempty"`
	EndDate     *Date  `json:"endDate,omitempty"`
	Grade       string `json:"grade,omitempty"`
	Description string `json:"description,omitempty"`
}

// Experience is a single work history entry.
type Experience struct {
	Company      string   `json:"company"`
	Position     string   `json:"position"`
	StartDate    *Date    `json:"startDate,omitempty"`
	EndDate      *Date    `json:"endDate,omitempty"`
	Current      bool     `json:"current"`
	Description  string   `json:"description,omitempty"`
	Achievements []string `json:"achievements"`
}

// Skill is a named skill. Level is stored but not scored or rendered.
type Skill struct {
	Name  string     `json:"name"`
	Level SkillLevel `json:"level"`
}

// Project is a single project entry.
type Project struct {
	Title        string   `json:"title"`
	Description  string   `json:"description,omitempty"`
	Technologies []string `json:"technologies"`
	Link         string   `json:"link,omitempty"`
	StartDate    *Date    `json:"startDate,omitempty"`
	EndDate      *Date    `json:"endDate,omitempty"`
}

// Certification is a single certification entry.
type Certification struct {
	Name   string `json:"name"`
	Issuer string `json:"issuer,omitempty"`
	Date   *Date  `json:"date,omitempty"`
	Link   string `json:"link,omitempty"`
}

// Normalize fills defaults: nil sections become empty slices and skills
// without a level become intermediate.
func (r *Resume) Normalize() {
	if r.Education == nil {
		r.Education = []Education{}
	}
	if r.Experience == nil {
		r.Experience = []Experience{}
	}
	if r.Skills == nil {
		r.Skills = []Skill{}
	}
	if r.Projects == nil {
		r.Projects = []Project{}
	}
	if r.Certifications == nil {
		r.Certifications = []Certification{}
	}
	for i := range r.Experience {
		if r.Experience[i].Achievements == nil {
			r.Experience[i].Achievements = []string{}
		}
	}
	for i := range r.Skills {
		if r.Skills[i].Level == "" {
			r.Skills[i].Level = LevelIntermediate
		}
	}
	for i := range r.Projects {
		if r.Projects[i].Technologies == nil {
			r.Projects[i].Technologies = []string{}
		}
	}
}

// present reports whether a text field carries content once surrounding
// whitespace is trimmed. Summary is not trimmed and is checked as-is.
func present(s string) bool {
	return strings.TrimSpace(s) != ""
}

// Date is a calendar date. It accepts "2006-01-02", "2006-01" and RFC 3339
// timestamps on input and always serializes as "2006-01-02".
type Date struct {
	time.Time
}

var dateLayouts = []string{"2006-01-02", time.RFC3339, time.RFC3339Nano, "2006-01"}

// NewDate builds a Date at midnight UTC.
func NewDate(year int, month time.Month, day int) *Date {
	return &Date{Time: time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

// ParseDate parses any of the accepted input layouts.
func ParseDate(s string) (*Date, error) {
	s = strings.TrimSpace(s)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return &Date{Time: t.UTC()}, nil
		}
	}
	return nil, fmt.Errorf("invalid date %q: expected YYYY-MM-DD", s)
}

// MarshalJSON implements json.Marshaler
func (d Date) MarshalJSON() ([]byte, error) {
	if d.IsZero() {
		return []byte("null"), nil
	}
	return json.Marshal(d.Format("2006-01-02"))
}

// UnmarshalJSON implements json.Unmarshaler
func (d *Date) UnmarshalJSON(data []byte) error {
	str := string(data)
	if str == "null" || str == `""` {
		return nil
	}
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("invalid date: %w", err)
	}
	parsed, err := ParseDate(raw)
	if err != nil {
		return err
	}
	d.Time = parsed.Time
	return nil
}
