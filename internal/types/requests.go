package types

import (
	"github.com/hariombhu/hariombhu-Smart-Resume-Builder/internal/resume"
)

// VisibilityRequest toggles public access to a resume
type VisibilityRequest struct {
	IsPublic *bool `json:"isPublic" validate:"required"`
}

// ImproveRequest asks the writing assistant to rewrite a piece of text
type ImproveRequest struct {
	Text string `json:"text" validate:"required,max=5000"`
	Type string `json:"type" validate:"omitempty,oneof=general action-oriented quantifiable"`
}

// TemplateRequest is the admin create/update body for a template
type TemplateRequest struct {
	Name        string        `json:"name" validate:"required,max=100"`
	Description string        `json:"description" validate:"max=500"`
	Thumbnail   string        `json:"thumbnail"`
	Category    string        `json:"category" validate:"required,oneof=modern classic creative minimal ats custom"`
	Layout      string        `json:"layout" validate:"omitempty,oneof=modern minimal creative classic custom"`
	IsATS       bool          `json:"isATS"`
	IsActive    *bool         `json:"isActive"`
	Styles      resume.Styles `json:"styles"`
}

// ScoreResponse reports a recomputed completeness score
type ScoreResponse struct {
	Completeness int `json:"completeness"`
}

// KeywordsResponse lists suggested keywords for a role
type KeywordsResponse struct {
	Role     string   `json:"role"`
	Keywords []string `json:"keywords"`
}

// ImproveResponse carries rewritten text
type ImproveResponse struct {
	Original string `json:"original"`
	Improved string `json:"improved"`
}

// UploadResponse reports where an uploaded file is served from
type UploadResponse struct {
	URL string `json:"url"`
}

// Validate validates the VisibilityRequest using the validator.
func (r *VisibilityRequest) Validate() error {
	return validate.Struct(r)
}

// Validate validates the ImproveRequest using the validator.
func (r *ImproveRequest) Validate() error {
	return validate.Struct(r)
}

// Validate checks the fields and the style values of a TemplateRequest.
func (r *TemplateRequest) Validate() error {
	if err := validate.Struct(r); err != nil {
		return err
	}
	return validate.Var(styleColors(r.Styles), "dive,omitempty,hexcolor")
}

func styleColors(s resume.Styles) []string {
	return []string{s.PrimaryColor, s.SecondaryColor}
}
