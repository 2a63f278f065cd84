//nolint:revive // types is a standard Go package name pattern
package types

import (
	"github.com/go-playground/validator/v10"
)

// MinTextLength is the shortest article text the analysis service accepts.
const MinTextLength = 100

// AnalyzeURLRequest submits an article by address.
type AnalyzeURLRequest struct {
	URL     string `json:"url" validate:"required,url"`
	Purpose string `json:"purpose,omitempty" validate:"max=500"`
}

// AnalyzeTextRequest submits pasted article text.
type AnalyzeTextRequest struct {
	Text    string `json:"text" validate:"required,min=100"`
	Purpose string `json:"purpose,omitempty" validate:"max=500"`
}

// AnalyzeFileRequest describes an uploaded document. The body is streamed separately.
type AnalyzeFileRequest struct {
	Filename string `validate:"required"`
	Size     int64  `validate:"gt=0"`
	Purpose  string `validate:"max=500"`
}

// Validate validates the AnalyzeURLRequest using the validator.
func (r *AnalyzeURLRequest) Validate() error {
	validate := validator.New()
	return validate.Struct(r)
}

// Validate validates the AnalyzeTextRequest using the validator.
func (r *AnalyzeTextRequest) Validate() error {
	validate := validator.New()
	return validate.Struct(r)
}

// Validate validates the AnalyzeFileRequest using the validator.
func (r *AnalyzeFileRequest) Validate() error {
	validate := validator.New()
	return validate.Struct(r)
}
