// Package reference holds the static lookup tables used by the estimator and the classifier.
// The tables are data, not logic: they live in reference.yaml and are embedded into the binary.
package reference

import (
	_ "embed"
	"fmt"
	"strings"
	"sync"

	"github.com/jonathan/admissions-advisor/internal/types"
	"gopkg.in/yaml.v3"
)

//go:embed reference.yaml
var embeddedTables []byte

// School is one entry in the school table.
// Selectivity is zero for schools that are only known by name (classifier aliases).
type School struct {
	Name        string   `yaml:"name" json:"name"`
	Selectivity int      `yaml:"selectivity" json:"selectivity,omitempty"`
	Aliases     []string `yaml:"aliases" json:"-"`
}

// GoalBucket maps a goal category to the keywords that select it.
type GoalBucket struct {
	Category types.GoalCategory `yaml:"category"`
	Keywords []string           `yaml:"keywords"`
}

// ActivityKeywords are the two disjoint activity keyword sets.
type ActivityKeywords struct {
	Leadership []string `yaml:"leadership"`
	General    []string `yaml:"general"`
}

// AwardKeywords are the award trigger words and the level-signalling subsets.
type AwardKeywords struct {
	Keywords      []string `yaml:"keywords"`
	National      []string `yaml:"national"`
	International []string `yaml:"international"`
}

// Tables is the full set of reference data.
type Tables struct {
	DefaultSelectivity int              `yaml:"default_selectivity"`
	Schools            []School         `yaml:"schools"`
	SchoolIntents      []string         `yaml:"school_intents"`
	Activity           ActivityKeywords `yaml:"activity"`
	Award              AwardKeywords    `yaml:"award"`
	Goals              []GoalBucket     `yaml:"goals"`
}

var (
	defaultOnce   sync.Once
	defaultTables *Tables
)

// Default returns the embedded tables. The embedded file is part of the build,
// so a parse failure here is a programming error and panics.
func Default() *Tables {
	defaultOnce.Do(func() {
		t, err := Parse(embeddedTables)
		if err != nil {
			panic(fmt.Sprintf("reference: embedded tables are invalid: %v", err))
		}
		defaultTables = t
	})
	return defaultTables
}

// Parse decodes and validates a reference table document.
func Parse(data []byte) (*Tables, error) {
	var t Tables
	if err := yaml.Unmarshal(data, &t); err != nil {
		return nil, fmt.Errorf("failed to parse reference tables: %w", err)
	}
	if err := t.validate(); err != nil {
		return nil, err
	}
	return &t, nil
}

func (t *Tables) validate() error {
	if t.DefaultSelectivity < 1 || t.DefaultSelectivity > 95 {
		return fmt.Errorf("default_selectivity must be within 1..95, got %d", t.DefaultSelectivity)
	}
	seen := make(map[string]bool, len(t.Schools))
	for i, s := range t.Schools {
		if strings.TrimSpace(s.Name) == "" {
			return fmt.Errorf("schools[%d]: name is required", i)
		}
		key := strings.ToLower(s.Name)
		if seen[key] {
			return fmt.Errorf("schools[%d]: duplicate school %q", i, s.Name)
		}
		seen[key] = true
		if s.Selectivity < 0 || s.Selectivity > 95 {
			return fmt.Errorf("schools[%d] %s: selectivity must be within 0..95, got %d", i, s.Name, s.Selectivity)
		}
	}
	for i, g := range t.Goals {
		if g.Category == "" || len(g.Keywords) == 0 {
			return fmt.Errorf("goals[%d]: category and keywords are required", i)
		}
	}
	return nil
}

// Selectivity returns the base admission percentage for a school.
// The lookup is a case-insensitive literal match on the canonical name; schools
// without a selectivity entry report false.
func (t *Tables) Selectivity(name string) (int, bool) {
	key := strings.ToLower(strings.TrimSpace(name))
	for _, s := range t.Schools {
		if s.Selectivity > 0 && strings.ToLower(s.Name) == key {
			return s.Selectivity, true
		}
	}
	return t.DefaultSelectivity, false
}

// SelectiveSchools returns the schools that carry a selectivity figure, in table order.
func (t *Tables) SelectiveSchools() []School {
	out := make([]School, 0, len(t.Schools))
	for _, s := range t.Schools {
		if s.Selectivity > 0 {
			out = append(out, s)
		}
	}
	return out
}
