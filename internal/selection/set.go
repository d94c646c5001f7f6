// Package selection tracks which missing skills the user picked for follow-up.
package selection

// Set is an immutable, insertion-ordered set of skill names. Operations return
// a new Set and never modify the receiver.
type Set struct {
	skills []string
}

// New builds a Set from skills, dropping duplicates and empty names.
func New(skills ...string) Set {
	var s Set
	for _, skill := range skills {
		if skill == "" || s.Contains(skill) {
			continue
		}
		s.skills = append(s.skills, skill)
	}
	return s
}

// Toggle adds skill when absent and removes it when present.
func (s Set) Toggle(skill string) Set {
	if s.Contains(skill) {
		out := make([]string, 0, len(s.skills)-1)
		for _, v := range s.skills {
			if v != skill {
				out = append(out, v)
			}
		}
		return Set{skills: out}
	}
	out := make([]string, len(s.skills), len(s.skills)+1)
	copy(out, s.skills)
	return Set{skills: append(out, skill)}
}

// Contains reports whether skill is selected.
func (s Set) Contains(skill string) bool {
	for _, v := range s.skills {
		if v == skill {
			return true
		}
	}
	return false
}

// Len returns the number of selected skills.
func (s Set) Len() int { return len(s.skills) }

// IsEmpty reports whether nothing is selected.
func (s Set) IsEmpty() bool { return len(s.skills) == 0 }

// Skills returns a copy of the selected skills in selection order.
func (s Set) Skills() []string {
	return append([]string(nil), s.skills...)
}

// IsValidAgainst reports whether every selected skill is in missing.
func (s Set) IsValidAgainst(missing []string) bool {
	allowed := toLookup(missing)
	for _, v := range s.skills {
		if _, ok := allowed[v]; !ok {
			return false
		}
	}
	return true
}

// Reconcile intersects the selection with missing. Skills that are no longer
// missing are dropped silently; order of the survivors is kept.
func (s Set) Reconcile(missing []string) Set {
	allowed := toLookup(missing)
	var out []string
	for _, v := range s.skills {
		if _, ok := allowed[v]; ok {
			out = append(out, v)
		}
	}
	return Set{skills: out}
}

func toLookup(skills []string) map[string]struct{} {
	m := make(map[string]struct{}, len(skills))
	for _, v := range skills {
		m[v] = struct{}{}
	}
	return m
}
