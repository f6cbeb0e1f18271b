package prompts

import (
	"strings"
	"testing"
)

func fullProperty() Property {
	return Property{
		Address:      "123 Maple Street, Austin, TX 78701",
		Street:       "123 Maple Street",
		City:         "Austin",
		State:        "TX",
		ZipCode:      "78701",
		PropertyType: "Townhouse",
		Bedrooms:     4,
		Bathrooms:    2.5,
		SquareFeet:   12345,
		YearBuilt:    1998,
		Price:        525000,
	}
}

func TestFormatPublicRemarksPrompt(t *testing.T) {
	prompt := FormatPublicRemarksPrompt(fullProperty(), 0, []string{"granite countertops", "pool"})

	for _, want := range []string{
		"- Address: 123 Maple Street, Austin, TX 78701",
		"- Bedrooms: 4",
		"- Bathrooms: 2.5",
		"- Square Feet: 12,345",
		"- Year Built: 1998",
		"- Property Type: Townhouse",
		"write a 250-word MLS listing description",
		"**Features to emphasize:** granite countertops, pool",
	} {
		if !strings.Contains(prompt, want) {
			t.Errorf("prompt missing %q", want)
		}
	}

	if strings.Contains(prompt, "{") {
		t.Error("unreplaced placeholder left in prompt")
	}
}

func TestFormatPublicRemarksPrompt_Defaults(t *testing.T) {
	prompt := FormatPublicRemarksPrompt(Property{}, 0, nil)

	for _, want := range []string{
		"- Address: Unknown",
		"- Bedrooms: Unknown",
		"- Bathrooms: Unknown",
		"- Square Feet: Unknown",
		"- Year Built: Unknown",
		"- Property Type: Single Family",
	} {
		if !strings.Contains(prompt, want) {
			t.Errorf("prompt missing default %q", want)
		}
	}

	if strings.Contains(prompt, "**Features to emphasize:**") {
		t.Error("emphasis block should be omitted without highlight features")
	}
}

func TestFormatWalkthruPrompt_WordBudget(t *testing.T) {
	prompt := FormatWalkthruPrompt(fullProperty(), []string{"pool"}, "A lovely home.", 90, "")

	if !strings.Contains(prompt, "Target length: 225 words") {
		t.Error("90 seconds should budget 225 words")
	}

	if !strings.Contains(prompt, "approximately 90 seconds") {
		t.Error("duration should pass through")
	}

	if !strings.Contains(prompt, "Style: conversational and engaging") {
		t.Error("empty style should default to conversational")
	}
}

func TestFormatWalkthruPrompt_Defaults(t *testing.T) {
	prompt := FormatWalkthruPrompt(Property{}, nil, "", 0, "upbeat")

	for _, want := range []string{
		"- Bedrooms: See video",
		"- Bathrooms: See video",
		"- Square Feet: See video",
		"- Key Features: See video tour",
		"Not available",
		"Target length: 225 words",
		"Style: upbeat and engaging",
	} {
		if !strings.Contains(prompt, want) {
			t.Errorf("prompt missing %q", want)
		}
	}
}

func TestFormatWalkthruPrompt_TruncatesFeatures(t *testing.T) {
	features := []string{
		"one", "two", "three", "four", "five",
		"six", "seven", "eight", "nine", "ten", "eleven",
	}

	prompt := FormatWalkthruPrompt(fullProperty(), features, "", 60, "")

	if strings.Contains(prompt, "eleven") {
		t.Error("feature list should be capped at ten entries")
	}

	if !strings.Contains(prompt, "ten") {
		t.Error("tenth feature should survive the cap")
	}
}

func TestFormatFeaturesPrompt(t *testing.T) {
	prompt := FormatFeaturesPrompt(fullProperty(), 0)

	if !strings.Contains(prompt, "Maximum 30 total features") {
		t.Error("max features should default to 30")
	}

	if !strings.Contains(prompt, "- Square Feet: 12,345") {
		t.Error("square feet should be comma grouped")
	}

	capped := FormatFeaturesPrompt(fullProperty(), 15)
	if !strings.Contains(capped, "Maximum 15 total features") {
		t.Error("explicit max features should pass through")
	}
}

func TestFormatRESOPrompt(t *testing.T) {
	prompt := FormatRESOPrompt(fullProperty(), "A stunning townhouse.", []string{"Granite countertops", "Pool"}, "")

	for _, want := range []string{
		"- Street: 123 Maple Street",
		"- City: Austin",
		"- State: TX",
		"- ZIP: 78701",
		"- List Price: 525000",
		"A stunning townhouse.",
		"- Granite countertops\n- Pool",
		"RESO Data Dictionary v2.0 standards",
	} {
		if !strings.Contains(prompt, want) {
			t.Errorf("prompt missing %q", want)
		}
	}
}

func TestFormatRESOPrompt_Defaults(t *testing.T) {
	prompt := FormatRESOPrompt(Property{}, "", nil, "1.7")

	for _, want := range []string{
		"- City: Unknown",
		"- State: Unknown",
		"- Bedrooms: 0",
		"- Square Feet: 0",
		"- List Price: 0",
		"No description available",
		"RESO Data Dictionary v1.7 standards",
	} {
		if !strings.Contains(prompt, want) {
			t.Errorf("prompt missing %q", want)
		}
	}
}

func TestGroupThousands(t *testing.T) {
	cases := map[int]string{
		0:       "0",
		950:     "950",
		1000:    "1,000",
		12345:   "12,345",
		1234567: "1,234,567",
	}

	for n, want := range cases {
		if got := groupThousands(n); got != want {
			t.Errorf("groupThousands(%d) = %q, want %q", n, got, want)
		}
	}
}
