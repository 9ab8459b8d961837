package textproc

import "strings"

// Category is an advisory label guessed from question text. It is never
// used to drive assembly, only surfaced as a suggestion.
type Category string

const (
	CategoryComposition   Category = "Composition"
	CategoryLetterWriting Category = "Letter Writing"
	CategoryFunctional    Category = "Functional Writing"
	CategoryComprehension Category = "Comprehension"
	CategoryGrammar       Category = "Grammar"
	CategoryUnknown       Category = "Unknown"
)

// classifyRule pairs trigger substrings with a category. Rules are not
// mutually exclusive; order is priority.
type classifyRule struct {
	triggers []string
	category Category
}

var classifyRules = []classifyRule{
	{[]string{"composition", "story"}, CategoryComposition},
	{[]string{"letter"}, CategoryLetterWriting},
	{[]string{"notice", "email"}, CategoryFunctional},
	{[]string{"read the passage", "comprehension"}, CategoryComprehension},
	{[]string{"fill in", "grammar"}, CategoryGrammar},
}

// Classify returns the first matching category for a question text, or
// CategoryUnknown when nothing triggers.
func Classify(text string) Category {
	t := strings.ToLower(text)
	for _, rule := range classifyRules {
		for _, trigger := range rule.triggers {
			if strings.Contains(t, trigger) {
				return rule.category
			}
		}
	}
	return CategoryUnknown
}
