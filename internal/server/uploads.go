package server

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"path"
	"strings"
)

// Upload limits
const (
	MaxProfilePhotoBytes   = 5 << 20
	MaxCustomTemplateBytes = 10 << 20
)

// uploadPolicy describes which files an upload endpoint accepts
type uploadPolicy struct {
	field    string
	maxBytes int64
	// allowed maps a lower-case extension to the content type stored with the blob
	allowed map[string]string
	// sniff requires the detected content type to match the extension's
	sniff bool
}

var profilePhotoPolicy = uploadPolicy{
	field:    "profilePhoto",
	maxBytes: MaxProfilePhotoBytes,
	allowed: map[string]string{
		".jpg":  "image/jpeg",
		".jpeg": "image/jpeg",
		".png":  "image/png",
		".gif":  "image/gif",
		".webp": "image/webp",
	},
	sniff: true,
}

var customTemplatePolicy = uploadPolicy{
	field:    "template",
	maxBytes: MaxCustomTemplateBytes,
	allowed: map[string]string{
		".pdf":  "application/pdf",
		".doc":  "application/msword",
		".docx": "application/vnd.openxmlformats-officedocument.wordprocessingml.document",
	},
}

// upload is a validated file read from a multipart form
type upload struct {
	filename    string
	contentType string
	data        []byte
}

// readUpload reads the policy's form field, enforcing size and type
func readUpload(w http.ResponseWriter, r *http.Request, p uploadPolicy) (*upload, error) {
	r.Body = http.MaxBytesReader(w, r.Body, p.maxBytes+1<<20)
	if err := r.ParseMultipartForm(p.maxBytes); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return nil, &ErrUnsupportedUpload{Reason: fmt.Sprintf("file exceeds %d MB", p.maxBytes>>20)}
		}
		return nil, &ErrValidation{Field: p.field, Message: "multipart form expected"}
	}

	file, header, err := r.FormFile(p.field)
	if err != nil {
		return nil, &ErrValidation{Field: p.field, Message: "file is required"}
	}
	defer file.Close()

	if header.Size > p.maxBytes {
		return nil, &ErrUnsupportedUpload{Reason: fmt.Sprintf("file exceeds %d MB", p.maxBytes>>20)}
	}

	ext := strings.ToLower(path.Ext(header.Filename))
	contentType, ok := p.allowed[ext]
	if !ok {
		return nil, &ErrUnsupportedUpload{Reason: fmt.Sprintf("file type %q not allowed", ext)}
	}

	data, err := io.ReadAll(io.LimitReader(file, p.maxBytes+1))
	if err != nil {
		return nil, fmt.Errorf("failed to read upload: %w", err)
	}
	if int64(len(data)) > p.maxBytes {
		return nil, &ErrUnsupportedUpload{Reason: fmt.Sprintf("file exceeds %d MB", p.maxBytes>>20)}
	}
	if p.sniff && http.DetectContentType(data) != contentType {
		return nil, &ErrUnsupportedUpload{Reason: "file content does not match its extension"}
	}

	return &upload{filename: header.Filename, contentType: contentType, data: data}, nil
}
