package refine

import "fmt"

const refinementPromptFormat = `Current content:
---
%s
---

User's refinement request: %s

CRITICAL INSTRUCTIONS:
1. Make ONLY the changes requested by the user
2. Keep all other content exactly the same
3. Maintain the overall structure, tone, and flow
4. Ensure STRICT Fair Housing compliance - NO discriminatory language
5. Return ONLY the updated content - no explanations, no preamble, no "Here's the revised..."
6. If the user's request would violate Fair Housing rules, refuse politely and explain why
%s
Provide the refined content now:`

const propertyContextFormat = `
Property context for reference:
- Address: %s
- Bedrooms: %s
- Bathrooms: %s
- Square Feet: %s
- Price: %s
`

func buildRefinementPrompt(currentContent, instruction string, property *PropertyContext) string {
	propertyContext := ""
	if property != nil {
		propertyContext = fmt.Sprintf(propertyContextFormat,
			orNA(property.FullAddress),
			orNA(property.Bedrooms),
			orNA(property.Bathrooms),
			orNA(property.Sqft),
			orNA(property.Price),
		)
	}

	return fmt.Sprintf(refinementPromptFormat, currentContent, instruction, propertyContext)
}

func orNA(s string) string {
	if s == "" {
		return "N/A"
	}

	return s
}
