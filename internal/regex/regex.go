package regex

import "regexp"

var (
	// Template placeholder grammar. The whole string leaf must match;
	// PROMPT and INPUT are synonyms, the _MULTI suffix selects multi-line
	// collection.
	Placeholder = regexp.MustCompile(`^\{\{\s*(PROMPT|INPUT)(_MULTI)?\s*:\s*(.*?)\s*\}\}$`)

	// Document paths joined with '.'; anything outside this set is rejected
	// before a field mutation is attempted.
	DocumentPath = regexp.MustCompile(`^[a-zA-Z0-9._-]+$`)

	// Jira issue keys, e.g. CORE-42
	IssueKey = regexp.MustCompile(`^[A-Z][A-Z0-9]+-\d+$`)
)
