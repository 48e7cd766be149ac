package engine

import "strings"

// ParseCategory parses user input to a RuleCategory.
// Supported: risk, entry, exit, psychology, process.
// If input is empty or unrecognized, returns DefaultCategory.
func ParseCategory(input string) RuleCategory {
	s := strings.TrimSpace(strings.ToLower(input))
	switch s {
	case "":
		return DefaultCategory
	case "risk":
		return CategoryRisk
	case "entry", "entries":
		return CategoryEntry
	case "exit", "exits":
		return CategoryExit
	case "psychology", "psych", "mindset":
		return CategoryPsychology
	case "process":
		return CategoryProcess
	default:
		return DefaultCategory
	}
}

// ParseKind parses user input to a ProgressObjectKind, falling back to
// DefaultKind on empty or unrecognized input.
func ParseKind(input string) ProgressObjectKind {
	s := strings.TrimSpace(strings.ToLower(input))
	k := ProgressObjectKind(s)
	if k.IsValid() {
		return k
	}
	return DefaultKind
}
