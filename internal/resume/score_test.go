package resume

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func contactOnly() *Resume {
	return &Resume{PersonalInfo: PersonalInfo{FullName: "Ada Lovelace", Email: "ada@example.com"}}
}

func skills(n int) []Skill {
	out := make([]Skill, n)
	for i := range out {
		out[i] = Skill{Name: strings.Repeat("s", i+1)}
	}
	return out
}

func TestScore_ContactBaseline(t *testing.T) {
	assert.Equal(t, 10, Score(contactOnly()))
}

func TestScore_MissingContactFields(t *testing.T) {
	tests := []struct {
		name string
		info PersonalInfo
		want int
	}{
		{name: "no email", info: PersonalInfo{FullName: "Ada"}, want: 0},
		{name: "no name", info: PersonalInfo{Email: "ada@example.com"}, want: 0},
		{name: "whitespace name", info: PersonalInfo{FullName: "  ", Email: "ada@example.com"}, want: 0},
		{name: "phone only", info: PersonalInfo{Phone: "555"}, want: 3},
		{name: "summary only", info: PersonalInfo{Summary: "Engineer"}, want: 7},
		{name: "whitespace phone", info: PersonalInfo{Phone: "   "}, want: 0},
		{name: "whitespace summary counts", info: PersonalInfo{FullName: "A", Email: "a@b.c", Summary: "   "}, want: 17},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Score(&Resume{PersonalInfo: tt.info}))
		})
	}
}

func TestScore_NilResume(t *testing.T) {
	assert.Equal(t, 0, Score(nil))
}

func TestScore_SkillsTiersDoNotStack(t *testing.T) {
	tests := []struct {
		count int
		want  int
	}{
		{count: 0, want: 10},
		{count: 1, want: 20},
		{count: 2, want: 20},
		{count: 3, want: 25},
		{count: 12, want: 25},
	}

	for _, tt := range tests {
		r := contactOnly()
		r.Skills = skills(tt.count)
		assert.Equal(t, tt.want, Score(r), "skills=%d", tt.count)
	}
}

func TestScore_WorkedExample(t *testing.T) {
	r := &Resume{
		PersonalInfo: PersonalInfo{
			FullName: "Ada Lovelace",
			Email:    "ada@example.com",
			Phone:    "+44 20 0000 0000",
			Summary:  strings.Repeat("a", 200),
		},
		Education:  []Education{{Institution: "UCL", Degree: "BSc"}},
		Experience: []Experience{{Company: "Analytical Engines", Position: "Programmer"}},
		Skills:     skills(4),
	}

	assert.Equal(t, 70, Score(r))
}

func TestScore_FullResumeIsMax(t *testing.T) {
	r := fullResume()
	assert.Equal(t, MaxScore, Score(r))
}

func TestScore_AlwaysInRange(t *testing.T) {
	// Every combination of the eight categories being filled or empty.
	for mask := 0; mask < 1<<8; mask++ {
		r := &Resume{}
		if mask&1 != 0 {
			r.PersonalInfo.FullName = "A"
			r.PersonalInfo.Email = "a@b.c"
		}
		if mask&2 != 0 {
			r.PersonalInfo.Phone = "1"
		}
		if mask&4 != 0 {
			r.PersonalInfo.Summary = "s"
		}
		if mask&8 != 0 {
			r.Education = []Education{{}}
		}
		if mask&16 != 0 {
			r.Experience = []Experience{{}}
		}
		if mask&32 != 0 {
			r.Skills = skills(mask%5 + 1)
		}
		if mask&64 != 0 {
			r.Projects = []Project{{}}
		}
		if mask&128 != 0 {
			r.Certifications = []Certification{{}}
		}

		got := Score(r)
		assert.GreaterOrEqual(t, got, 0)
		assert.LessOrEqual(t, got, MaxScore)
		assert.Equal(t, got, Score(r), "score must be stable")
	}
}

func TestBreakdown_SumsToScore(t *testing.T) {
	r := fullResume()
	total := 0
	maxTotal := 0
	for _, item := range Breakdown(r) {
		total += item.Points
		maxTotal += item.Max
	}
	assert.Equal(t, Score(r), total)
	assert.Equal(t, MaxScore, maxTotal)
}

func TestClampScore(t *testing.T) {
	assert.Equal(t, 0, clampScore(-5))
	assert.Equal(t, 100, clampScore(130))
	assert.Equal(t, 42, clampScore(42))
}
