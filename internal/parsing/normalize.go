package parsing

import (
	"regexp"
	"strings"
	"unicode"
)

// listMarker matches a bullet or "1." prefix the model sometimes leaves on
// an entry.
var listMarker = regexp.MustCompile(`^(?:[-*•·]+|\d{1,2}[.)])(?:\s+|$)`)

// canonicalSkills maps lowercase variants to the spelling used in output.
var canonicalSkills = map[string]string{
	"go": "Go", "golang": "Go", "go lang": "Go",
	"javascript": "JavaScript", "js": "JavaScript", "ecmascript": "JavaScript",
	"typescript": "TypeScript", "ts": "TypeScript",
	"node": "Node.js", "nodejs": "Node.js", "node.js": "Node.js", "node js": "Node.js",
	"react": "React", "reactjs": "React", "react.js": "React", "react js": "React",
	"vue": "Vue", "vuejs": "Vue", "vue.js": "Vue",
	"angular": "Angular", "angularjs": "Angular", "angular.js": "Angular",
	"next.js": "Next.js", "nextjs": "Next.js",
	"express": "Express", "express.js": "Express", "expressjs": "Express",
	"c#": "C#", "csharp": "C#", "c++": "C++", "cpp": "C++",
	".net": ".NET", "dotnet": ".NET",
	"k8s": "Kubernetes", "kubernetes": "Kubernetes",
	"postgres": "PostgreSQL", "postgresql": "PostgreSQL", "psql": "PostgreSQL",
	"mysql": "MySQL", "mongodb": "MongoDB", "mongo": "MongoDB",
	"nosql": "NoSQL", "graphql": "GraphQL", "sqlite": "SQLite",
	"scikit learn": "scikit-learn", "scikit-learn": "scikit-learn", "sklearn": "scikit-learn",
	"tensorflow": "TensorFlow", "pytorch": "PyTorch", "numpy": "NumPy", "pandas": "pandas",
	"matplotlib": "Matplotlib", "jupyter": "Jupyter",
	"github": "GitHub", "gitlab": "GitLab", "github actions": "GitHub Actions",
	"power bi": "Power BI", "powerbi": "Power BI", "tableau": "Tableau",
	"ms excel": "Excel", "microsoft excel": "Excel", "excel": "Excel",
	"amazon web services": "AWS", "google cloud": "GCP", "google cloud platform": "GCP",
	"azure": "Azure", "microsoft azure": "Azure",
	"ci/cd": "CI/CD", "cicd": "CI/CD", "ci cd": "CI/CD",
	"machine learning": "Machine Learning", "deep learning": "Deep Learning",
	"rest api": "REST APIs", "rest apis": "REST APIs", "restful apis": "REST APIs",
}

// acronyms are written in upper case whatever the input casing.
var acronyms = map[string]bool{
	"aws": true, "gcp": true, "sql": true, "html": true, "css": true,
	"etl": true, "elt": true, "nlp": true, "api": true, "rest": true,
	"json": true, "xml": true, "yaml": true, "ml": true, "ai": true,
	"llm": true, "oop": true, "tdd": true, "ui": true, "ux": true,
	"seo": true, "crm": true, "erp": true, "saas": true, "gcs": true,
	"s3": true, "ec2": true, "bi": true, "php": true, "jvm": true,
}

// maxAcronymLen bounds how long an unknown all-caps word may be and still
// be read as an acronym. Longer ones are title-cased.
const maxAcronymLen = 5

// NormalizeSkillName returns the canonical spelling of a skill. Known
// variants map to one name, acronyms are upper-cased, lowercase single words
// get a leading capital and anything else is kept as written.
func NormalizeSkillName(skillName string) string {
	name := strings.Join(strings.Fields(skillName), " ")
	name = listMarker.ReplaceAllString(name, "")
	name = strings.Trim(name, "`\"'*,;:")
	name = strings.TrimSpace(name)
	if name == "" {
		return ""
	}

	lower := strings.ToLower(name)
	if canonical, ok := canonicalSkills[lower]; ok {
		return canonical
	}
	if acronyms[lower] {
		return strings.ToUpper(name)
	}
	if strings.Contains(name, " ") {
		return name
	}

	switch {
	case name == lower:
		return capitalize(name)
	case name == strings.ToUpper(name) && hasLetter(name):
		if len([]rune(name)) <= maxAcronymLen {
			return name
		}
		return capitalize(lower)
	default:
		return name
	}
}

func capitalize(s string) string {
	r := []rune(s)
	r[0] = unicode.ToUpper(r[0])
	return string(r)
}

func hasLetter(s string) bool {
	return strings.IndexFunc(s, unicode.IsLetter) >= 0
}

// NormalizeSkills normalizes every name, drops empty ones and removes
// duplicates. The first spelling of each skill wins and order is preserved.
func NormalizeSkills(skills []string) []string {
	out := make([]string, 0, len(skills))
	seen := make(map[string]bool, len(skills))
	for _, s := range skills {
		n := NormalizeSkillName(s)
		if n == "" {
			continue
		}
		key := strings.ToLower(n)
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, n)
	}
	return out
}
