// Package compliance validates real estate marketing content against the
// Federal Fair Housing Act. Violations can result in fines of $16,000+ each,
// so every piece of generated text passes through Check before it leaves the
// service.
package compliance

import (
	"regexp"
	"strings"

	"github.com/listing-magic/content-backend/internal/platform/observability"
)

const severityHigh = "high"

const (
	messageNoContent = "No content to check"
	messageCompliant = "Content is Fair Housing compliant"
)

// Violation is a single detected Fair Housing issue.
type Violation struct {
	Category   string   `json:"category"`
	Matches    []string `json:"matches"`
	Severity   string   `json:"severity"`
	Suggestion string   `json:"suggestion"`
}

// Result of a compliance check.
type Result struct {
	IsCompliant bool        `json:"is_compliant"`
	Violations  []Violation `json:"violations"`
	Message     string      `json:"message"`
}

// Check scans text for prohibited phrases. It never fails: any string,
// including empty input, produces a well-formed Result.
func Check(text string) Result {
	if text == "" {
		return Result{
			IsCompliant: true,
			Violations:  []Violation{},
			Message:     messageNoContent,
		}
	}

	lower := strings.ToLower(text)

	var violations []Violation

	for _, cat := range categories {
		var matches []string

		for _, pattern := range cat.patterns {
			for _, m := range pattern.FindAllStringSubmatch(lower, -1) {
				// First capture group is the full prohibited phrase.
				matches = append(matches, m[1])
			}
		}

		if len(matches) == 0 {
			continue
		}

		violations = append(violations, Violation{
			Category:   cat.name,
			Matches:    dedupe(matches),
			Severity:   cat.severity,
			Suggestion: cat.suggestion,
		})
	}

	if len(violations) == 0 {
		observability.ComplianceChecks.WithLabelValues("compliant").Inc()

		return Result{
			IsCompliant: true,
			Violations:  []Violation{},
			Message:     messageCompliant,
		}
	}

	observability.ComplianceChecks.WithLabelValues("violation").Inc()

	names := make([]string, 0, len(violations))
	for _, v := range violations {
		observability.ComplianceViolations.WithLabelValues(v.Category).Inc()

		names = append(names, titleCase(v.Category))
	}

	message := "Fair Housing violations detected in: " + strings.Join(names, ", ") +
		". Please revise content to describe the property, not potential residents."

	return Result{
		IsCompliant: false,
		Violations:  violations,
		Message:     message,
	}
}

// dedupe removes duplicate matches while preserving first-seen order.
func dedupe(matches []string) []string {
	seen := make(map[string]struct{}, len(matches))
	unique := make([]string, 0, len(matches))

	for _, m := range matches {
		if _, ok := seen[m]; ok {
			continue
		}

		seen[m] = struct{}{}

		unique = append(unique, m)
	}

	return unique
}

// titleCase turns a category key like "familial_status" into "Familial Status".
func titleCase(s string) string {
	words := strings.Split(strings.ReplaceAll(s, "_", " "), " ")
	for i, w := range words {
		if w == "" {
			continue
		}

		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}

	return strings.Join(words, " ")
}

var (
	sanitizeRules = []struct {
		pattern     *regexp.Regexp
		replacement string
	}{
		{regexp.MustCompile(`(?i)\bperfect for (families|couples)\b`), "ideal layout"},
		{regexp.MustCompile(`(?i)\bgreat for (families|couples)\b`), "spacious design"},
		{regexp.MustCompile(`(?i)\bideal for (families|couples)\b`), "versatile floor plan"},
		{regexp.MustCompile(`(?i)\badults only\b`), ""},
		{regexp.MustCompile(`(?i)\bno children\b`), ""},
		{regexp.MustCompile(`(?i)\bnear church\b`), "convenient location"},
		{regexp.MustCompile(`(?i)\bnear synagogue\b`), "convenient location"},
		{regexp.MustCompile(`(?i)\bnear temple\b`), "convenient location"},
		{regexp.MustCompile(`(?i)\bnear mosque\b`), "convenient location"},
	}

	whitespaceRun = regexp.MustCompile(`\s+`)
)

// Sanitize removes the most common violations with fixed replacements. This
// is a fallback path only: generation should produce compliant content from
// the start, and detected violations are still surfaced to the caller.
func Sanitize(text string) string {
	result := text
	for _, rule := range sanitizeRules {
		result = rule.pattern.ReplaceAllString(result, rule.replacement)
	}

	return strings.TrimSpace(whitespaceRun.ReplaceAllString(result, " "))
}
