package generation

import (
	"encoding/json"
	"strings"
)

// CleanJSONResponse strips a surrounding markdown code fence from a model
// reply. Models frequently wrap JSON in ```json ... ``` despite instructions.
func CleanJSONResponse(content string) string {
	cleaned := strings.TrimSpace(content)

	if strings.HasPrefix(cleaned, "```") {
		if idx := strings.Index(cleaned, "\n"); idx >= 0 {
			cleaned = cleaned[idx+1:]
		} else {
			cleaned = strings.TrimPrefix(cleaned, "```")
		}
	}

	cleaned = strings.TrimSuffix(strings.TrimSpace(cleaned), "```")

	return strings.TrimSpace(cleaned)
}

// ExtractJSON recovers a JSON document embedded in surrounding prose. Arrays
// are preferred over objects. Returns the input unchanged when no valid JSON
// can be found, so callers get the original text in their parse error.
func ExtractJSON(content string) string {
	cleaned := CleanJSONResponse(content)

	if json.Valid([]byte(cleaned)) {
		return cleaned
	}

	if doc := scanForJSON(cleaned, '['); doc != "" {
		return doc
	}

	if doc := scanForJSON(cleaned, '{'); doc != "" {
		return doc
	}

	return content
}

// scanForJSON tries to decode one complete JSON value starting at each
// occurrence of open. Using the decoder's input offset handles brackets
// inside string literals correctly.
func scanForJSON(s string, open byte) string {
	for i := 0; i < len(s); i++ {
		if s[i] != open {
			continue
		}

		dec := json.NewDecoder(strings.NewReader(s[i:]))

		var raw json.RawMessage
		if err := dec.Decode(&raw); err != nil {
			continue
		}

		return s[i : i+int(dec.InputOffset())]
	}

	return ""
}
