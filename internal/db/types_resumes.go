package db

import (
	"time"

	"github.com/google/uuid"

	"github.com/hariombhu/hariombhu-Smart-Resume-Builder/internal/resume"
)

// Resume is a stored resume: authored content plus ownership, template
// reference, sharing state and the derived completeness score.
type Resume struct {
	ID         uuid.UUID  `json:"id"`
	UserID     uuid.UUID  `json:"userId"`
	TemplateID *uuid.UUID `json:"templateId,omitempty"`
	resume.Resume
	Completeness  int       `json:"completeness"`
	IsPublic      bool      `json:"isPublic"`
	ShareableLink string    `json:"shareableLink"`
	QRCode        string    `json:"qrCode,omitempty"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

// ResumeWithOwner is a resume row joined with its owner for admin listings
type ResumeWithOwner struct {
	Resume
	OwnerName  string `json:"ownerName"`
	OwnerEmail string `json:"ownerEmail"`
}
