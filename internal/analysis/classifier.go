package analysis

import "strings"

// Classifier assigns diagnostic categories to incidents by substring
// keyword matching over the title and description.
type Classifier struct {
	rules RuleSet
}

// NewClassifier creates a classifier over the given rule set.
func NewClassifier(rules RuleSet) *Classifier {
	return &Classifier{rules: rules}
}

// Classify returns the categories matching the incident's text, in the
// rule set's fixed enumeration order. Classification is non-exclusive:
// several categories may match at once, and none matching yields an
// empty slice (the baseline recommendation still applies). Pure; no
// state is read or written.
func (c *Classifier) Classify(incident *Incident) []Category {
	text := strings.ToLower(incident.Title) + "\n" + strings.ToLower(incident.Description)

	var matched []Category
	for _, cat := range c.rules.Order {
		for _, kw := range c.rules.Keywords[cat] {
			if strings.Contains(text, strings.ToLower(kw)) {
				matched = append(matched, cat)
				break
			}
		}
	}
	return matched
}
