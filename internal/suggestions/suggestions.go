// Package suggestions produces writing advice for resumes: rule-based
// section checks, role keywords and single-sentence rewrites.
package suggestions

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/hariombhu/hariombhu-Smart-Resume-Builder/internal/resume"
)

// Suggestion types
const (
	TypeImprovement = "improvement"
	TypeWarning     = "warning"
	TypeInfo        = "info"
	TypeSuggestion  = "suggestion"
)

// Thresholds below which a section is flagged
const (
	MinSummaryLength     = 100
	MinDescriptionLength = 50
	MinSkills            = 5
	TargetCompleteness   = 80
)

// Suggestion is one piece of advice
type Suggestion struct {
	Type    string `json:"type"`
	Section string `json:"section,omitempty"`
	Message string `json:"message"`
}

// Suggestions groups advice by the part of the resume it concerns
type Suggestions struct {
	Summary    []Suggestion `json:"summary"`
	Experience []Suggestion `json:"experience"`
	Skills     []Suggestion `json:"skills"`
	General    []Suggestion `json:"general"`
}

// Count returns the total number of suggestions
func (s Suggestions) Count() int {
	return len(s.Summary) + len(s.Experience) + len(s.Skills) + len(s.General)
}

// ForResume checks a resume against the section rules. completeness is the
// stored score of the resume.
func ForResume(r *resume.Resume, completeness int) Suggestions {
	out := Suggestions{
		Summary:    []Suggestion{},
		Experience: []Suggestion{},
		Skills:     []Suggestion{},
		General:    []Suggestion{},
	}
	if r == nil {
		r = &resume.Resume{}
	}

	if utf8.RuneCountInString(strings.TrimSpace(r.PersonalInfo.Summary)) < MinSummaryLength {
		out.Summary = append(out.Summary, Suggestion{
			Type:    TypeImprovement,
			Message: "Add a compelling professional summary (100-200 words) highlighting your key achievements and career goals.",
		})
	}

	if len(r.Experience) == 0 {
		out.Experience = append(out.Experience, Suggestion{
			Type:    TypeWarning,
			Message: "Add work experience to make your resume more competitive.",
		})
	}
	for i, exp := range r.Experience {
		section := fmt.Sprintf("Experience %d", i+1)
		if len(exp.Achievements) == 0 {
			out.Experience = append(out.Experience, Suggestion{
				Type:    TypeImprovement,
				Section: section,
				Message: `Add quantifiable achievements (e.g., "Increased sales by 25%", "Reduced costs by $50K")`,
			})
		}
		if n := utf8.RuneCountInString(exp.Description); n > 0 && n < MinDescriptionLength {
			out.Experience = append(out.Experience, Suggestion{
				Type:    TypeImprovement,
				Section: section,
				Message: "Expand job description to better showcase your responsibilities and impact.",
			})
		}
	}

	if len(r.Skills) < MinSkills {
		out.Skills = append(out.Skills, Suggestion{
			Type:    TypeImprovement,
			Message: "Add more relevant skills. Aim for 8-12 skills that match your target role.",
		})
	}

	if completeness < TargetCompleteness {
		out.General = append(out.General, Suggestion{
			Type:    TypeInfo,
			Message: "Complete all sections to increase your resume score above 80%.",
		})
	}
	if len(r.Projects) == 0 {
		out.General = append(out.General, Suggestion{
			Type:    TypeSuggestion,
			Message: "Add projects to showcase your practical skills and initiative.",
		})
	}
	if len(r.Certifications) == 0 {
		out.General = append(out.General, Suggestion{
			Type:    TypeSuggestion,
			Message: "Add relevant certifications to strengthen your credentials.",
		})
	}
	return out
}
