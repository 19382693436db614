package resume

// Points awarded per completeness category. The allocation sums to exactly MaxScore.
const (
	contactPoints        = 10
	phonePoints          = 3
	summaryPoints        = 7
	educationPoints      = 15
	experiencePoints     = 20
	manySkillsPoints     = 15
	fewSkillsPoints      = 10
	projectsPoints       = 15
	certificationsPoints = 15

	// manySkillsThreshold is the skill count at which the higher skills tier applies.
	manySkillsThreshold = 3

	// MaxScore is the upper bound of a completeness score.
	MaxScore = 100
)

// ScoreItem is one category of the completeness checklist.
type ScoreItem struct {
	Category string `json:"category"`
	Points   int    `json:"points"`
	Max      int    `json:"max"`
}

// Breakdown evaluates every checklist category independently. Categories that
// do not apply contribute zero points. Skills contribute at most one tier.
func Breakdown(r *Resume) []ScoreItem {
	if r == nil {
		r = &Resume{}
	}
	p := r.PersonalInfo

	items := []ScoreItem{
		{Category: "contact", Max: contactPoints},
		{Category: "phone", Max: phonePoints},
		{Category: "summary", Max: summaryPoints},
		{Category: "education", Max: educationPoints},
		{Category: "experience", Max: experiencePoints},
		{Category: "skills", Max: manySkillsPoints},
		{Category: "projects", Max: projectsPoints},
		{Category: "certifications", Max: certificationsPoints},
	}

	if present(p.FullName) && present(p.Email) {
		items[0].Points = contactPoints
	}
	if present(p.Phone) {
		items[1].Points = phonePoints
	}
	if p.Summary != "" {
		items[2].Points = summaryPoints
	}
	if len(r.Education) > 0 {
		items[3].Points = educationPoints
	}
	if len(r.Experience) > 0 {
		items[4].Points = experiencePoints
	}
	if len(r.Skills) >= manySkillsThreshold {
		items[5].Points = manySkillsPoints
	} else if len(r.Skills) > 0 {
		items[5].Points = fewSkillsPoints
	}
	if len(r.Projects) > 0 {
		items[6].Points = projectsPoints
	}
	if len(r.Certifications) > 0 {
		items[7].Points = certificationsPoints
	}

	return items
}

// Score returns the completeness of a resume as an integer in [0, MaxScore].
// It never fails: absent sections score zero.
func Score(r *Resume) int {
	total := 0
	for _, item := range Breakdown(r) {
		total += item.Points
	}
	return clampScore(total)
}

func clampScore(total int) int {
	if total < 0 {
		return 0
	}
	if total > MaxScore {
		return MaxScore
	}
	return total
}
