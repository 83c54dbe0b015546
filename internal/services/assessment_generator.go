package services

import (
	"fmt"

	"github.com/pathfinity/pathfinity-backend/internal/logger"
	"github.com/pathfinity/pathfinity-backend/internal/types"
)

// AssessmentGenerator maps a Master Narrative into the Assessment
// container. Fill-in-the-blank questions come from the fill-blank service
// so the answer variants and distractors stay consistent with the rest of
// the platform.
type AssessmentGenerator interface {
	Generate(narrative *types.MasterNarrative) (types.ContainerContent, error)
}

type assessmentGenerator struct {
	log       *logger.Logger
	fillBlank FillBlankService
}

func NewAssessmentGenerator(baseLog *logger.Logger, fillBlank FillBlankService) AssessmentGenerator {
	return &assessmentGenerator{
		log:       baseLog.With("service", "AssessmentGenerator"),
		fillBlank: fillBlank,
	}
}

func (g *assessmentGenerator) Generate(narrative *types.MasterNarrative) (types.ContainerContent, error) {
	intro, err := renderContainerTemplate(assessmentTemplate, containerTemplateData{MasterNarrative: *narrative})
	if err != nil {
		return types.ContainerContent{}, err
	}

	content := types.ContainerContent{
		Container:    types.ContainerAssessment,
		Title:        fmt.Sprintf("Show What You Know: %s", narrative.Skill),
		Introduction: intro,
	}

	for _, statement := range assessmentStatements(narrative) {
		fb, fbErr := g.fillBlank.GenerateFillBlank(statement, narrative.Snippets.Encouragement, narrative.Grade)
		if fbErr != nil {
			g.log.Warn("Skipping unblankable statement", "statement", statement, "error", fbErr)
			continue
		}
		content.Questions = append(content.Questions, types.Question{
			Type:          "fill_blank",
			Text:          fb.Question,
			CorrectAnswer: fb.CorrectAnswer,
			Options:       g.fillBlank.GenerateOptions(fb.CorrectAnswer, narrative.Subject),
			Variants:      fb.Variants,
			Hint:          fb.Hint,
		})
	}

	if len(content.Questions) == 0 {
		return types.ContainerContent{}, fmt.Errorf("no assessment questions could be generated")
	}
	return content, nil
}

// assessmentStatements derives complete sentences to blank from the
// narrative's vocabulary and mission.
func assessmentStatements(narrative *types.MasterNarrative) []string {
	var statements []string
	for classroom, career := range narrative.Vocabulary {
		statements = append(statements,
			fmt.Sprintf("A %s is called a %s at work.", classroom, career))
	}
	statements = append(statements,
		fmt.Sprintf("%s works as a %s.", narrative.Persona.Name, narrative.Career))
	if narrative.Mission != "" {
		statements = append(statements, narrative.Mission)
	}
	return statements
}
