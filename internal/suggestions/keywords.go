package suggestions

import "strings"

// roleKeywords is checked in order; the first role contained in the query wins.
var roleKeywords = []struct {
	role     string
	keywords []string
}{
	{"software engineer", []string{"Agile", "Git", "CI/CD", "Testing", "Code Review", "APIs", "Databases"}},
	{"frontend developer", []string{"React", "Vue", "Angular", "HTML/CSS", "JavaScript", "Responsive Design", "UI/UX"}},
	{"backend developer", []string{"Node.js", "Python", "Java", "Databases", "APIs", "Microservices", "Cloud"}},
	{"data scientist", []string{"Python", "Machine Learning", "Statistics", "SQL", "Data Visualization", "R", "TensorFlow"}},
	{"product manager", []string{"Roadmap", "Stakeholder Management", "Agile", "Analytics", "User Research", "Strategy"}},
	{"designer", []string{"Figma", "Adobe XD", "UI/UX", "Prototyping", "User Research", "Design Systems"}},
}

var genericKeywords = []string{"Leadership", "Communication", "Problem Solving", "Teamwork", "Project Management"}

// Keywords suggests skills for a target role, falling back to general ones
func Keywords(role string) []string {
	role = strings.ToLower(role)
	for _, rk := range roleKeywords {
		if strings.Contains(role, rk.role) {
			return append([]string(nil), rk.keywords...)
		}
	}
	return append([]string(nil), genericKeywords...)
}
