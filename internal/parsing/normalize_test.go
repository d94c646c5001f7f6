package parsing

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeSkillName(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"Golang", "Go"},
		{"GOLANG", "Go"},
		{"go lang", "Go"},
		{"js", "JavaScript"},
		{"JS", "JavaScript"},
		{"k8s", "Kubernetes"},
		{"react.js", "React"},
		{"nodejs", "Node.js"},
		{"c#", "C#"},
		{"postgres", "PostgreSQL"},
		{"sklearn", "scikit-learn"},
		{"Amazon Web Services", "AWS"},
		{"python", "Python"},
		{"PYTHON", "Python"},
		{"Python", "Python"},
		{"etl", "ETL"},
		{"ETL", "ETL"},
		{"Nlp", "NLP"},
		{"HIPAA", "HIPAA"},
		{"TERRAFORM", "Terraform"},
		{"FastAPI", "FastAPI"},
		{"Distributed   Systems", "Distributed Systems"},
		{"- Docker", "Docker"},
		{"1. Airflow", "Airflow"},
		{"**Spark**", "Spark"},
		{"`dbt`,", "Dbt"},
		{"élasticsearch", "Élasticsearch"},
		{".NET", ".NET"},
		{"3D Modeling", "3D Modeling"},
		{"", ""},
		{"   ", ""},
		{"- ", ""},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.want, NormalizeSkillName(tt.input))
		})
	}
}

func TestNormalizeSkills(t *testing.T) {
	tests := []struct {
		name  string
		input []string
		want  []string
	}{
		{"variants collapse", []string{"Go", "Golang", "golang"}, []string{"Go"}},
		{"case duplicates", []string{"Docker", "DOCKER", "docker"}, []string{"Docker"}},
		{"empty dropped", []string{"", "  ", "Python"}, []string{"Python"}},
		{"acronyms", []string{"aws", "sql", "etl"}, []string{"AWS", "SQL", "ETL"}},
		{"order kept", []string{"Terraform", "k8s", "Go", "Kubernetes"}, []string{"Terraform", "Kubernetes", "Go"}},
		{"nil input", nil, []string{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NormalizeSkills(tt.input))
		})
	}
}

// Both sides of an analysis must normalize to the same spelling or the gap
// computation sees two different skills.
func TestNormalizeSkillName_ConsistentAcrossCasing(t *testing.T) {
	for _, group := range [][]string{
		{"python", "Python", "PYTHON"},
		{"etl", "ETL", "Etl"},
		{"postgresql", "Postgres", "POSTGRESQL"},
		{"kubernetes", "K8s", "KUBERNETES"},
	} {
		want := NormalizeSkillName(group[0])
		for _, v := range group[1:] {
			assert.Equal(t, want, NormalizeSkillName(v), v)
		}
	}
}
