package prompts

import (
	"strconv"
	"strings"
)

const (
	valueUnknown      = "Unknown"
	defaultPropType   = "Single Family"
	defaultRemarks    = "No description available"
	defaultMaxWords   = 250
	defaultMaxFeature = 30
	defaultDuration   = 90
	defaultStyle      = "conversational"
	defaultSchemaVer  = "2.0"

	// Spoken-word pacing used to size walkthru scripts.
	wordsPerSecond = 2.5

	walkthruMaxFeatures = 10
)

// Property carries the listing facts fed into the templates. Zero values
// render as "Unknown" (or the template's own default) so partial listings
// still produce usable prompts.
type Property struct {
	Address      string
	Street       string
	City         string
	State        string
	ZipCode      string
	PropertyType string
	Bedrooms     int
	Bathrooms    float64
	SquareFeet   int
	YearBuilt    int
	Price        float64
}

// FormatPublicRemarksPrompt fills the MLS description template.
// highlightFeatures, when present, become an emphasis block appended to the
// instructions.
func FormatPublicRemarksPrompt(p Property, maxWords int, highlightFeatures []string) string {
	if maxWords <= 0 {
		maxWords = defaultMaxWords
	}

	additional := ""
	if len(highlightFeatures) > 0 {
		additional = "\n**Features to emphasize:** " + strings.Join(highlightFeatures, ", ")
	}

	return strings.NewReplacer(
		"{address}", orUnknown(p.Address),
		"{bedrooms}", intOrUnknown(p.Bedrooms),
		"{bathrooms}", bathroomsOrUnknown(p.Bathrooms),
		"{square_feet}", sqftOrUnknown(p.SquareFeet),
		"{year_built}", intOrUnknown(p.YearBuilt),
		"{property_type}", orDefault(p.PropertyType, defaultPropType),
		"{max_words}", strconv.Itoa(maxWords),
		"{additional_instructions}", additional,
	).Replace(publicRemarksPrompt)
}

// FormatWalkthruPrompt fills the video narration template. The word budget is
// derived from the requested duration at spoken pace; only the first ten
// features are passed through to keep the prompt focused.
func FormatWalkthruPrompt(p Property, features []string, publicRemarks string, durationSeconds int, style string) string {
	if durationSeconds <= 0 {
		durationSeconds = defaultDuration
	}

	if style == "" {
		style = defaultStyle
	}

	if len(features) > walkthruMaxFeatures {
		features = features[:walkthruMaxFeatures]
	}

	featureList := "See video tour"
	if len(features) > 0 {
		featureList = strings.Join(features, ", ")
	}

	remarks := publicRemarks
	if remarks == "" {
		remarks = "Not available"
	}

	targetWords := int(float64(durationSeconds) * wordsPerSecond)

	return strings.NewReplacer(
		"{address}", orUnknown(p.Address),
		"{bedrooms}", intOrDefault(p.Bedrooms, "See video"),
		"{bathrooms}", bathroomsOrDefault(p.Bathrooms, "See video"),
		"{square_feet}", sqftOrDefault(p.SquareFeet, "See video"),
		"{features}", featureList,
		"{public_remarks}", remarks,
		"{target_words}", strconv.Itoa(targetWords),
		"{duration_seconds}", strconv.Itoa(durationSeconds),
		"{style}", style,
	).Replace(walkthruScriptPrompt)
}

// FormatFeaturesPrompt fills the feature-extraction template.
func FormatFeaturesPrompt(p Property, maxFeatures int) string {
	if maxFeatures <= 0 {
		maxFeatures = defaultMaxFeature
	}

	return strings.NewReplacer(
		"{address}", orUnknown(p.Address),
		"{property_type}", orDefault(p.PropertyType, defaultPropType),
		"{bedrooms}", intOrUnknown(p.Bedrooms),
		"{bathrooms}", bathroomsOrUnknown(p.Bathrooms),
		"{square_feet}", sqftOrUnknown(p.SquareFeet),
		"{year_built}", intOrUnknown(p.YearBuilt),
		"{max_features}", strconv.Itoa(maxFeatures),
	).Replace(featuresPrompt)
}

// FormatRESOPrompt fills the RESO extraction template. Features render as a
// dashed list, one per line.
func FormatRESOPrompt(p Property, publicRemarks string, features []string, schemaVersion string) string {
	if schemaVersion == "" {
		schemaVersion = defaultSchemaVer
	}

	remarks := publicRemarks
	if remarks == "" {
		remarks = defaultRemarks
	}

	lines := make([]string, 0, len(features))
	for _, f := range features {
		lines = append(lines, "- "+f)
	}

	return strings.NewReplacer(
		"{address}", orUnknown(p.Address),
		"{street}", orUnknown(p.Street),
		"{city}", orUnknown(p.City),
		"{state}", orUnknown(p.State),
		"{zip_code}", orUnknown(p.ZipCode),
		"{property_type}", orDefault(p.PropertyType, defaultPropType),
		"{bedrooms}", strconv.Itoa(p.Bedrooms),
		"{bathrooms}", formatBathrooms(p.Bathrooms),
		"{square_feet}", strconv.Itoa(p.SquareFeet),
		"{year_built}", strconv.Itoa(p.YearBuilt),
		"{price}", formatPrice(p.Price),
		"{public_remarks}", remarks,
		"{features}", strings.Join(lines, "\n"),
		"{schema_version}", schemaVersion,
	).Replace(resoDataPrompt)
}

func orUnknown(s string) string {
	return orDefault(s, valueUnknown)
}

func orDefault(s, def string) string {
	if s == "" {
		return def
	}

	return s
}

func intOrUnknown(n int) string {
	return intOrDefault(n, valueUnknown)
}

func intOrDefault(n int, def string) string {
	if n <= 0 {
		return def
	}

	return strconv.Itoa(n)
}

func bathroomsOrUnknown(b float64) string {
	return bathroomsOrDefault(b, valueUnknown)
}

func bathroomsOrDefault(b float64, def string) string {
	if b <= 0 {
		return def
	}

	return formatBathrooms(b)
}

func formatBathrooms(b float64) string {
	return strconv.FormatFloat(b, 'f', -1, 64)
}

func sqftOrUnknown(n int) string {
	return sqftOrDefault(n, valueUnknown)
}

func sqftOrDefault(n int, def string) string {
	if n <= 0 {
		return def
	}

	return groupThousands(n)
}

func formatPrice(p float64) string {
	return strconv.FormatFloat(p, 'f', -1, 64)
}

// groupThousands renders 12345 as "12,345".
func groupThousands(n int) string {
	s := strconv.Itoa(n)
	if len(s) <= 3 {
		return s
	}

	var b strings.Builder

	lead := len(s) % 3
	if lead > 0 {
		b.WriteString(s[:lead])
	}

	for i := lead; i < len(s); i += 3 {
		if b.Len() > 0 {
			b.WriteByte(',')
		}

		b.WriteString(s[i : i+3])
	}

	return b.String()
}
