package selection

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestToggle_AddsThenRemoves(t *testing.T) {
	s := New()
	s = s.Toggle("Docker")
	assert.True(t, s.Contains("Docker"))
	assert.Equal(t, 1, s.Len())

	s = s.Toggle("Docker")
	assert.False(t, s.Contains("Docker"))
	assert.True(t, s.IsEmpty())
}

func TestToggle_DoesNotMutateReceiver(t *testing.T) {
	base := New("Go", "Rust")
	added := base.Toggle("Kafka")
	removed := base.Toggle("Go")

	assert.Equal(t, []string{"Go", "Rust"}, base.Skills())
	assert.Equal(t, []string{"Go", "Rust", "Kafka"}, added.Skills())
	assert.Equal(t, []string{"Rust"}, removed.Skills())
}

func TestNew_DropsDuplicatesAndEmpty(t *testing.T) {
	s := New("Go", "", "Go", "AWS")
	assert.Equal(t, []string{"Go", "AWS"}, s.Skills())
}

func TestIsValidAgainst(t *testing.T) {
	tests := []struct {
		name    string
		set     Set
		missing []string
		want    bool
	}{
		{"empty set always valid", New(), nil, true},
		{"subset", New("Docker"), []string{"Docker", "AWS"}, true},
		{"equal", New("Docker", "AWS"), []string{"AWS", "Docker"}, true},
		{"not subset", New("Docker", "Go"), []string{"Docker"}, false},
		{"against empty", New("Docker"), []string{}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.set.IsValidAgainst(tt.missing))
		})
	}
}

func TestReconcile_YieldsSubsetOfMissing(t *testing.T) {
	tests := []struct {
		name    string
		set     Set
		missing []string
		want    []string
	}{
		{"drops stale skill", New("Docker", "AWS"), []string{"AWS"}, []string{"AWS"}},
		{"keeps order", New("C", "B", "A"), []string{"A", "B", "C"}, []string{"C", "B", "A"}},
		{"all gone", New("Docker"), []string{"Python"}, nil},
		{"nil missing", New("Docker"), nil, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.set.Reconcile(tt.missing)
			assert.Equal(t, tt.want, got.Skills())
			assert.True(t, got.IsValidAgainst(tt.missing))
		})
	}
}

func TestReconcile_Idempotent(t *testing.T) {
	s := New("Docker", "AWS", "Terraform")
	missing := []string{"AWS", "Terraform", "Kafka"}

	once := s.Reconcile(missing)
	twice := once.Reconcile(missing)
	assert.Equal(t, once.Skills(), twice.Skills())
}

func TestSkills_ReturnsCopy(t *testing.T) {
	s := New("Go")
	skills := s.Skills()
	skills[0] = "Rust"
	assert.True(t, s.Contains("Go"))
}
