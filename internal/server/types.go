package server

import (
	"strings"
	"time"

	"github.com/listing-magic/content-backend/internal/core/compliance"
	"github.com/listing-magic/content-backend/internal/core/prompts"
	"github.com/listing-magic/content-backend/internal/core/refine"
)

// AddressInput is a property address in a generation request.
type AddressInput struct {
	Street  string `json:"street"`
	City    string `json:"city,omitempty"`
	State   string `json:"state,omitempty"`
	ZipCode string `json:"zip_code"`
	Country string `json:"country,omitempty"`
}

// FullAddress joins the non-empty address parts.
func (a AddressInput) FullAddress() string {
	parts := make([]string, 0, 4)

	for _, p := range []string{a.Street, a.City, a.State, a.ZipCode} {
		if p != "" {
			parts = append(parts, p)
		}
	}

	return strings.Join(parts, ", ")
}

// ImageInput is one photo, either inline base64 or by URL.
type ImageInput struct {
	Base64      string `json:"base64,omitempty"`
	URL         string `json:"url,omitempty"`
	Filename    string `json:"filename,omitempty"`
	ContentType string `json:"content_type,omitempty"`
}

// PropertyDetails carries the listing facts shared by all generation
// requests.
type PropertyDetails struct {
	Address      AddressInput `json:"address"`
	Photos       []ImageInput `json:"photos,omitempty"`
	PropertyType string       `json:"property_type,omitempty"`
	Bedrooms     int          `json:"bedrooms,omitempty"`
	Bathrooms    float64      `json:"bathrooms,omitempty"`
	SquareFeet   int          `json:"square_feet,omitempty"`
	LotSize      string       `json:"lot_size,omitempty"`
	YearBuilt    int          `json:"year_built,omitempty"`
	Price        float64      `json:"price,omitempty"`
	Description  string       `json:"description,omitempty"`
	Features     []string     `json:"features,omitempty"`
	Style        string       `json:"style,omitempty"`
}

// PhotoURLs returns the photo sources as fetchable URLs. Inline base64
// images become data URLs.
func (p PropertyDetails) PhotoURLs() []string {
	urls := make([]string, 0, len(p.Photos))

	for _, photo := range p.Photos {
		switch {
		case photo.URL != "":
			urls = append(urls, photo.URL)
		case photo.Base64 != "":
			mime := photo.ContentType
			if mime == "" {
				mime = "image/jpeg"
			}

			urls = append(urls, "data:"+mime+";base64,"+photo.Base64)
		}
	}

	return urls
}

func (p PropertyDetails) toPromptProperty() prompts.Property {
	return prompts.Property{
		Address:      p.Address.FullAddress(),
		Street:       p.Address.Street,
		City:         p.Address.City,
		State:        p.Address.State,
		ZipCode:      p.Address.ZipCode,
		PropertyType: p.PropertyType,
		Bedrooms:     p.Bedrooms,
		Bathrooms:    p.Bathrooms,
		SquareFeet:   p.SquareFeet,
		YearBuilt:    p.YearBuilt,
		Price:        p.Price,
	}
}

// PublicRemarksRequest asks for an MLS listing description.
type PublicRemarksRequest struct {
	PropertyDetails   PropertyDetails `json:"property_details"`
	MaxWords          int             `json:"max_words,omitempty"`
	HighlightFeatures []string        `json:"highlight_features,omitempty"`
	AnalyzePhotos     *bool           `json:"analyze_photos,omitempty"`
}

// FeaturesRequest asks for a categorized features list.
type FeaturesRequest struct {
	PropertyDetails PropertyDetails `json:"property_details"`
	MaxFeatures     int             `json:"max_features,omitempty"`
}

// RESODataRequest asks for RESO-formatted MLS data.
type RESODataRequest struct {
	PropertyDetails PropertyDetails `json:"property_details"`
	SchemaVersion   string          `json:"schema_version,omitempty"`
	PublicRemarks   string          `json:"public_remarks,omitempty"`
	FeaturesList    []string        `json:"features_list,omitempty"`
}

// DocumentRequest is shared by all document-based generation endpoints.
type DocumentRequest struct {
	UserPrompt   string   `json:"user_prompt"`
	DocumentURLs []string `json:"document_urls,omitempty"`
}

// ComplianceCheckRequest asks for a Fair Housing review of arbitrary text.
// Content is accepted as a legacy alias for Text.
type ComplianceCheckRequest struct {
	Text    string `json:"text"`
	Content string `json:"content,omitempty"`
}

// RefineContentRequest asks for a compliance-gated edit of existing content.
type RefineContentRequest struct {
	ContentType         string                  `json:"content_type"`
	CurrentContent      string                  `json:"current_content"`
	UserInstruction     string                  `json:"user_instruction"`
	ConversationHistory []refine.Message        `json:"conversation_history,omitempty"`
	PropertyContext     *refine.PropertyContext `json:"property_context,omitempty"`
}

// UsageMetrics reports token usage and pricing for one generation.
type UsageMetrics struct {
	InputTokens      int     `json:"input_tokens"`
	OutputTokens     int     `json:"output_tokens"`
	TotalTokens      int     `json:"total_tokens"`
	CostUSD          float64 `json:"cost_usd"`
	GenerationTimeMS int64   `json:"generation_time_ms"`
	ModelUsed        string  `json:"model_used"`
	Provider         string  `json:"provider"`
	IsFallback       bool    `json:"is_fallback"`
}

// PublicRemarksResponse is the outcome of remarks generation. Text is always
// the model's output as generated; when the compliance check finds violations
// they ship in Compliance and SanitizedText offers a best-effort rewrite,
// clearly separated from the original.
type PublicRemarksResponse struct {
	Success        bool               `json:"success"`
	Text           string             `json:"text"`
	WordCount      int                `json:"word_count"`
	PhotosAnalyzed int                `json:"photos_analyzed"`
	Compliance     *compliance.Result `json:"compliance,omitempty"`
	SanitizedText  string             `json:"sanitized_text,omitempty"`
	Usage          UsageMetrics       `json:"usage"`
	GeneratedAt    time.Time          `json:"generated_at"`
	RequestID      string             `json:"request_id,omitempty"`
}

// WalkthruScriptRequest asks for a video narration script. Features and the
// other listing facts ride in on the property details.
type WalkthruScriptRequest struct {
	PropertyDetails PropertyDetails `json:"property_details"`
	DurationSeconds int             `json:"duration_seconds,omitempty"`
	Style           string          `json:"style,omitempty"`
	PublicRemarks   string          `json:"public_remarks,omitempty"`
}

// WalkthruScriptResponse is the outcome of script generation.
type WalkthruScriptResponse struct {
	Success                  bool               `json:"success"`
	Script                   string             `json:"script"`
	WordCount                int                `json:"word_count"`
	EstimatedDurationSeconds int                `json:"estimated_duration_seconds"`
	Compliance               *compliance.Result `json:"compliance,omitempty"`
	SanitizedScript          string             `json:"sanitized_script,omitempty"`
	Usage                    UsageMetrics       `json:"usage"`
	GeneratedAt              time.Time          `json:"generated_at"`
	RequestID                string             `json:"request_id,omitempty"`
}

// FeatureCategory groups related features.
type FeatureCategory struct {
	Name     string   `json:"name"`
	Features []string `json:"features"`
}

// featuresPayload is the JSON shape the model is instructed to return.
type featuresPayload struct {
	Categories        []FeatureCategory `json:"categories"`
	AllFeatures       []string          `json:"all_features"`
	HighlightFeatures []string          `json:"highlight_features"`
}

// FeaturesResponse is the outcome of features generation.
type FeaturesResponse struct {
	Success              bool              `json:"success"`
	FeaturesList         []string          `json:"features_list"`
	CategorizedFeatures  []FeatureCategory `json:"categorized_features"`
	HighlightFeatures    []string          `json:"highlight_features,omitempty"`
	TotalFeatures        int               `json:"total_features"`
	Usage                UsageMetrics      `json:"usage"`
	GeneratedAt          time.Time         `json:"generated_at"`
	RequestID            string            `json:"request_id,omitempty"`
}

// RESODataResponse is the outcome of RESO data generation.
type RESODataResponse struct {
	Success          bool           `json:"success"`
	RESOJSON         map[string]any `json:"reso_json"`
	SchemaVersion    string         `json:"schema_version"`
	ValidationPassed bool           `json:"validation_passed"`
	ValidationErrors []string       `json:"validation_errors"`
	Usage            UsageMetrics   `json:"usage"`
	GeneratedAt      time.Time      `json:"generated_at"`
	RequestID        string         `json:"request_id,omitempty"`
}

// DocumentResponse is shared by all document-based generation endpoints.
type DocumentResponse struct {
	Success       bool   `json:"success"`
	GeneratedText string `json:"generated_text"`
	TokenCount    int    `json:"token_count"`
	Error         string `json:"error,omitempty"`
}

// ComplianceCheckResponse wraps a compliance check with an optional
// sanitized rewrite.
type ComplianceCheckResponse struct {
	compliance.Result
	SanitizedContent string `json:"sanitized_content,omitempty"`
}

// ErrorResponse is the standard error body.
type ErrorResponse struct {
	Success   bool      `json:"success"`
	Error     string    `json:"error"`
	RequestID string    `json:"request_id,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}
