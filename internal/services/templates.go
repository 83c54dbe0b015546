package services

import (
	"embed"
	"fmt"
	"strings"
	"text/template"

	"github.com/pathfinity/pathfinity-backend/internal/types"
)

//go:embed templates/*.tmpl
var containerTemplatesFS embed.FS

// Template names as constants.
const (
	learnTemplate      = "learn.tmpl"
	experienceTemplate = "experience.tmpl"
	discoverTemplate   = "discover.tmpl"
	assessmentTemplate = "assessment.tmpl"
)

var containerTemplates = template.Must(template.ParseFS(containerTemplatesFS, "templates/*.tmpl"))

// containerTemplateData is the view each container template renders from.
type containerTemplateData struct {
	types.MasterNarrative
	HasVideo   bool
	VideoTitle string
}

func renderContainerTemplate(name string, data containerTemplateData) (string, error) {
	var b strings.Builder
	if err := containerTemplates.ExecuteTemplate(&b, name, data); err != nil {
		return "", fmt.Errorf("render %s: %w", name, err)
	}
	return strings.TrimSpace(b.String()), nil
}
