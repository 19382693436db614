package db

import (
	"time"

	"github.com/google/uuid"

	"github.com/hariombhu/hariombhu-Smart-Resume-Builder/internal/resume"
)

// Template categories
const (
	CategoryModern   = "modern"
	CategoryClassic  = "classic"
	CategoryCreative = "creative"
	CategoryMinimal  = "minimal"
	CategoryATS      = "ats"
	CategoryCustom   = "custom"
)

// Template layouts
const (
	LayoutModern   = "modern"
	LayoutMinimal  = "minimal"
	LayoutCreative = "creative"
	LayoutClassic  = "classic"
	LayoutCustom   = "custom"
)

// Template is a named bundle of layout and styling applied to resumes
type Template struct {
	ID                uuid.UUID     `json:"id"`
	Name              string        `json:"name"`
	Description       string        `json:"description"`
	Thumbnail         string        `json:"thumbnail,omitempty"`
	Category          string        `json:"category"`
	IsActive          bool          `json:"isActive"`
	IsATS             bool          `json:"isATS"`
	IsCustom          bool          `json:"isCustom"`
	CustomTemplateURL string        `json:"customTemplateUrl,omitempty"`
	Layout            string        `json:"layout"`
	Styles            resume.Styles `json:"styles"`
	UsageCount        int           `json:"usageCount"`
	CreatedBy         *uuid.UUID    `json:"createdBy,omitempty"`
	CreatedAt         time.Time     `json:"createdAt"`
	UpdatedAt         time.Time     `json:"updatedAt"`
}

// TemplateUsage is a template name with its usage count
type TemplateUsage struct {
	ID         uuid.UUID `json:"id"`
	Name       string    `json:"name"`
	UsageCount int       `json:"usageCount"`
}
