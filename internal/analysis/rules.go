package analysis

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Category is a fixed diagnostic label assigned by keyword matching
// against incident text.
type Category string

const (
	CategoryMemoryPressure    Category = "memory-pressure"
	CategoryDeploymentRelated Category = "deployment-related"
	CategoryLatency           Category = "latency"
	CategoryErrorRate         Category = "error-rate"
	CategoryCapacity          Category = "capacity"
)

// RuleSet maps categories to the keywords that trigger them. The
// mapping is data, not behavior: it can be replaced wholesale from a
// YAML file without touching the classification algorithm.
type RuleSet struct {
	// Order fixes category iteration order for classification output
	// and recommendation block ordering.
	Order    []Category
	Keywords map[Category][]string
}

// DefaultRules returns the built-in keyword rules.
func DefaultRules() RuleSet {
	return RuleSet{
		Order: []Category{
			CategoryMemoryPressure,
			CategoryDeploymentRelated,
			CategoryLatency,
			CategoryErrorRate,
			CategoryCapacity,
		},
		Keywords: map[Category][]string{
			CategoryMemoryPressure:    {"oom", "memory", "oomkilled"},
			CategoryDeploymentRelated: {"deploy", "rollout", "release", "config change"},
			CategoryLatency:           {"latency", "slow", "timeout", "p99"},
			CategoryErrorRate:         {"5xx", "error rate", "errors", "exception"},
			CategoryCapacity:          {"cpu", "throttl", "saturat", "disk"},
		},
	}
}

// ruleFile is the on-disk shape of a rule set: an ordered list of
// category entries so file order becomes iteration order.
type ruleFile struct {
	Categories []struct {
		Name     string   `yaml:"name"`
		Keywords []string `yaml:"keywords"`
	} `yaml:"categories"`
}

// LoadRules reads a replacement rule set from a YAML file.
func LoadRules(path string) (RuleSet, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return RuleSet{}, fmt.Errorf("read rules file: %w", err)
	}

	var rf ruleFile
	if err := yaml.Unmarshal(data, &rf); err != nil {
		return RuleSet{}, fmt.Errorf("parse rules file %s: %w", path, err)
	}
	if len(rf.Categories) == 0 {
		return RuleSet{}, fmt.Errorf("rules file %s defines no categories", path)
	}

	rs := RuleSet{Keywords: make(map[Category][]string, len(rf.Categories))}
	for _, entry := range rf.Categories {
		if entry.Name == "" {
			return RuleSet{}, fmt.Errorf("rules file %s has a category with no name", path)
		}
		if len(entry.Keywords) == 0 {
			return RuleSet{}, fmt.Errorf("category %q has no keywords", entry.Name)
		}
		cat := Category(entry.Name)
		rs.Order = append(rs.Order, cat)
		rs.Keywords[cat] = entry.Keywords
	}
	return rs, nil
}
