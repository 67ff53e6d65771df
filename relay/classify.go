package relay

import "strings"

// Category is the user-facing classification of a completion failure.
type Category string

const (
	CategoryNone         Category = ""
	CategoryRateLimited  Category = "rate_limited"
	CategoryTimeout      Category = "timeout"
	CategoryAuthFailure  Category = "auth_failure"
	CategoryUnclassified Category = "unclassified"
)

// Classification works on the failure's textual description, not its type:
// an ordered list of substring rules evaluated top to bottom, first match
// wins. This is fragile (it can match on incidental substrings) but no
// stronger signal is available from the upstream APIs.
var classifyRules = []struct {
	substr   string
	category Category
}{
	{"rate limit", CategoryRateLimited},
	{"timeout", CategoryTimeout},
	{"token", CategoryAuthFailure},
}

// Classify maps a failure description to a Category. Matching is
// case-insensitive; unmatched details classify as CategoryUnclassified.
func Classify(detail string) Category {
	lower := strings.ToLower(detail)
	for _, rule := range classifyRules {
		if strings.Contains(lower, rule.substr) {
			return rule.category
		}
	}
	return CategoryUnclassified
}

// Notice renders the user-facing reply text for a failure category. The
// unclassified notice embeds the raw detail so the caller sees what actually
// went wrong.
func Notice(category Category, detail string) string {
	switch category {
	case CategoryRateLimited:
		return "The model is currently rate limited. Please wait a moment and try again."
	case CategoryTimeout:
		return "The completion request timed out. Please try again."
	case CategoryAuthFailure:
		return "The completion API rejected the configured credential. Check your API token."
	default:
		return "Error calling the completion API: " + detail
	}
}
