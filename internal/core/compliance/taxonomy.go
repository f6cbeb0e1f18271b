package compliance

import "regexp"

// Prohibited phrase taxonomy for the Federal Fair Housing Act protected
// classes. Categories are matched in declaration order so results are
// deterministic for a given input.
type category struct {
	name       string
	patterns   []*regexp.Regexp
	severity   string
	suggestion string
}

func compilePatterns(exprs ...string) []*regexp.Regexp {
	compiled := make([]*regexp.Regexp, 0, len(exprs))
	for _, expr := range exprs {
		compiled = append(compiled, regexp.MustCompile(`(?i)`+expr))
	}

	return compiled
}

var categories = []category{
	{
		name: "familial_status",
		patterns: compilePatterns(
			`\b(adults?\s+only)\b`,
			`\b(no\s+children)\b`,
			`\b(no\s+kids)\b`,
			`\b(perfect\s+for\s+couples?)\b`,
			`\b(ideal\s+for\s+couples?)\b`,
			`\b(great\s+for\s+couples?)\b`,
			`\b(mature\s+(individual|person|couple|adult)s?)\b`,
			`\b(empty\s+nesters?)\b`,
			`\b(singles?\s+only)\b`,
			`\b(adult\s+(community|living|building|complex))\b`,
			`\b(great\s+for\s+famil(y|ies))\b`,
			`\b(perfect\s+for\s+famil(y|ies))\b`,
			`\b(ideal\s+for\s+famil(y|ies))\b`,
			`\b(growing\s+famil(y|ies))\b`,
			`\b(young\s+famil(y|ies))\b`,
			`\b(married\s+couples?)\b`,
			`\b(newlyweds?)\b`,
		),
		severity:   severityHigh,
		suggestion: "Describe the property features instead (e.g., '4 bedrooms' rather than 'perfect for families')",
	},
	{
		name: "religion",
		patterns: compilePatterns(
			`\b(near\s+(church(es)?|synagogue|temple|mosque))\b`,
			`\b(close\s+to\s+(church(es)?|synagogue|temple|mosque))\b`,
			`\b(walking\s+distance\s+to\s+(church|synagogue|temple|mosque))\b`,
			`\b(christian\s+(community|neighborhood|area))\b`,
			`\b(jewish\s+(community|neighborhood|area))\b`,
			`\b(catholic\s+(community|neighborhood|area))\b`,
			`\b(muslim\s+(community|neighborhood|area))\b`,
			`\b(religious\s+(community|neighborhood))\b`,
		),
		severity:   severityHigh,
		suggestion: "Remove religious references. Focus on nearby amenities like parks, shops, transit.",
	},
	{
		name: "race_ethnicity",
		patterns: compilePatterns(
			`\b(white\s+(community|neighborhood|area))\b`,
			`\b(black\s+(community|neighborhood|area))\b`,
			`\b(asian\s+(community|neighborhood|area))\b`,
			`\b(hispanic\s+(community|neighborhood|area))\b`,
			`\b(latino\s+(community|neighborhood|area))\b`,
			`\b(caucasian)\b`,
			`\b(african[\s-]american\s+(community|neighborhood|area))\b`,
			`\b(integrated\s+(community|neighborhood|area))\b`,
			`\b(diverse\s+(community|neighborhood|area))\b`,
			`\b(ethnic\s+(community|neighborhood|area|enclave))\b`,
			`\b(exclusively\s+\w+\s+neighborhood)\b`,
		),
		severity:   severityHigh,
		suggestion: "Remove all racial/ethnic references. Describe property features and amenities only.",
	},
	{
		name: "disability",
		patterns: compilePatterns(
			`\b(no\s+wheelchairs?)\b`,
			`\b(able[\s-]bodied)\b`,
			`\b(healthy\s+only)\b`,
			`\b(no\s+disabled)\b`,
			`\b(not\s+suitable\s+for\s+disabled)\b`,
			`\b(not\s+handicap(ped)?\s+accessible)\b`,
			`\b(physically\s+fit)\b`,
			`\b(mentally\s+stable)\b`,
		),
		severity:   severityHigh,
		suggestion: "Remove disability references. You may describe accessibility features positively (e.g., 'wheelchair ramp', 'elevator access').",
	},
	{
		name: "gender",
		patterns: compilePatterns(
			`\b(male\s+only)\b`,
			`\b(female\s+only)\b`,
			`\b(males?\s+preferred)\b`,
			`\b(females?\s+preferred)\b`,
			`\b(bachelor\s+(pad|apartment|living))\b`,
			`\b(gentleman('s)?\s+(apartment|residence|quarters))\b`,
			`\b(lad(y|ies)\s+only)\b`,
			`\b(women\s+only)\b`,
			`\b(men\s+only)\b`,
		),
		severity:   severityHigh,
		suggestion: "Remove gender preferences. Housing must be available equally to all.",
	},
	{
		name: "age",
		patterns: compilePatterns(
			`\b(senior(s)?\s+(only|preferred|community|living))\b`,
			`\b(older\s+persons?\s+(only|preferred))\b`,
			`\b(retirees?\s+(only|preferred|community))\b`,
			`\b(golden\s+age)\b`,
			`\b(young\s+professionals?\s+only)\b`,
			`\b(millennials?\s+only)\b`,
			`\b(no\s+seniors?)\b`,
			`\b(age\s+\d+\s*\+?\s+only)\b`,
		),
		severity:   severityHigh,
		suggestion: "Remove age references unless this is a verified 55+ community with legal exemption.",
	},
	{
		name: "national_origin",
		patterns: compilePatterns(
			`\b(american\s+only)\b`,
			`\b(citizens?\s+only)\b`,
			`\b(no\s+immigrants?)\b`,
			`\b(english\s+speakers?\s+only)\b`,
			`\b(must\s+speak\s+english)\b`,
			`\b(foreigners?\s+(not\s+allowed|prohibited))\b`,
		),
		severity:   severityHigh,
		suggestion: "Remove national origin references. Housing must be available to all regardless of origin.",
	},
}
