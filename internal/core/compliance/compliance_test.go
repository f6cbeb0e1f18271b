package compliance

import (
	"strings"
	"testing"
)

func TestCheck_EmptyInput(t *testing.T) {
	result := Check("")

	if !result.IsCompliant {
		t.Error("empty input should be compliant")
	}

	if len(result.Violations) != 0 {
		t.Errorf("violations = %d, want 0", len(result.Violations))
	}

	if result.Message != "No content to check" {
		t.Errorf("message = %q", result.Message)
	}
}

func TestCheck_CompliantText(t *testing.T) {
	text := "This residence features an open floor plan with hardwood floors throughout. " +
		"The main living area includes large windows providing natural light."

	result := Check(text)

	if !result.IsCompliant {
		t.Errorf("expected compliant, got violations: %+v", result.Violations)
	}

	if result.Message != "Content is Fair Housing compliant" {
		t.Errorf("message = %q", result.Message)
	}
}

func TestCheck_MultipleCategories(t *testing.T) {
	text := "Perfect for families, walking distance to church, adults only community."

	result := Check(text)

	if result.IsCompliant {
		t.Fatal("expected violations")
	}

	got := make(map[string]Violation, len(result.Violations))
	for _, v := range result.Violations {
		got[v.Category] = v
	}

	fam, ok := got["familial_status"]
	if !ok {
		t.Fatal("missing familial_status violation")
	}

	for _, want := range []string{"perfect for families", "adults only"} {
		found := false

		for _, m := range fam.Matches {
			if m == want {
				found = true
				break
			}
		}

		if !found {
			t.Errorf("familial_status matches %v missing %q", fam.Matches, want)
		}
	}

	if _, ok := got["religion"]; !ok {
		t.Error("missing religion violation")
	}

	if !strings.Contains(result.Message, "Familial Status") || !strings.Contains(result.Message, "Religion") {
		t.Errorf("message = %q", result.Message)
	}
}

func TestCheck_CaseInsensitive(t *testing.T) {
	lower := Check("no children allowed here")
	upper := Check("NO CHILDREN ALLOWED HERE")

	if lower.IsCompliant || upper.IsCompliant {
		t.Fatal("both casings should violate")
	}

	if lower.Violations[0].Matches[0] != upper.Violations[0].Matches[0] {
		t.Errorf("matches differ: %q vs %q", lower.Violations[0].Matches[0], upper.Violations[0].Matches[0])
	}
}

func TestCheck_DedupePreservesOrder(t *testing.T) {
	result := Check("adults only. Really, adults only. Also no kids.")

	if result.IsCompliant {
		t.Fatal("expected violations")
	}

	matches := result.Violations[0].Matches
	if len(matches) != 2 {
		t.Fatalf("matches = %v, want 2 entries", matches)
	}

	if matches[0] != "adults only" || matches[1] != "no kids" {
		t.Errorf("matches = %v", matches)
	}
}

func TestCheck_Deterministic(t *testing.T) {
	text := "Ideal for couples near temple in a diverse neighborhood, males preferred, seniors only, citizens only."

	first := Check(text)

	for i := 0; i < 5; i++ {
		again := Check(text)

		if len(again.Violations) != len(first.Violations) {
			t.Fatalf("violation count changed between runs")
		}

		for j := range again.Violations {
			if again.Violations[j].Category != first.Violations[j].Category {
				t.Fatalf("category order changed between runs")
			}
		}
	}
}

func TestCheck_SeverityAlwaysHigh(t *testing.T) {
	result := Check("bachelor pad near mosque, no wheelchairs")

	if result.IsCompliant {
		t.Fatal("expected violations")
	}

	for _, v := range result.Violations {
		if v.Severity != "high" {
			t.Errorf("severity for %s = %q, want high", v.Category, v.Severity)
		}
	}
}

func TestSanitize(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{
			name: "family phrase replaced",
			in:   "Spacious home, perfect for families.",
			want: "Spacious home, ideal layout.",
		},
		{
			name: "prohibition removed",
			in:   "Quiet building, adults only, great views.",
			want: "Quiet building, , great views.",
		},
		{
			name: "religious reference replaced",
			in:   "Located near church and parks.",
			want: "Located convenient location and parks.",
		},
		{
			name: "whitespace collapsed",
			in:   "Lovely   home  with   space",
			want: "Lovely home with space",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Sanitize(tt.in); got != tt.want {
				t.Errorf("Sanitize(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestSanitize_Idempotent(t *testing.T) {
	in := "Charming home perfect for families near synagogue."

	once := Sanitize(in)
	twice := Sanitize(once)

	if once != twice {
		t.Errorf("sanitize not idempotent: %q vs %q", once, twice)
	}
}

func TestSystemPrompt_Variants(t *testing.T) {
	base := SystemPrompt("general")

	for _, ct := range []string{ContentTypeRemarks, ContentTypeFeatures, ContentTypeScript} {
		prompt := SystemPrompt(ct)

		if !strings.Contains(prompt, "CRITICAL FAIR HOUSING COMPLIANCE RULES") {
			t.Errorf("%s prompt missing base rules", ct)
		}

		if len(prompt) <= len(base) {
			t.Errorf("%s prompt should extend the base prompt", ct)
		}
	}

	if !strings.Contains(SystemPrompt(ContentTypeScript), "[EXTERIOR]") {
		t.Error("script prompt missing section marker guidance")
	}
}
