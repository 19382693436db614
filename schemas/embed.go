// Package schemas embeds the JSON Schemas that request bodies and seed data
// are validated against.
package schemas

import "embed"

// Schema file names
const (
	Resume          = "resume.schema.json"
	TemplateCatalog = "template_catalog.schema.json"
)

// FS holds every *.schema.json file in this directory.
//
//go:embed *.schema.json
var FS embed.FS
