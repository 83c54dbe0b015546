package services

import (
	"fmt"

	"github.com/pathfinity/pathfinity-backend/internal/logger"
	"github.com/pathfinity/pathfinity-backend/internal/types"
)

// ExperienceGenerator maps a Master Narrative into the Experience
// container: a role-play scenario in the career's setting.
type ExperienceGenerator interface {
	Generate(narrative *types.MasterNarrative) (types.ContainerContent, error)
}

type experienceGenerator struct {
	log *logger.Logger
}

func NewExperienceGenerator(baseLog *logger.Logger) ExperienceGenerator {
	return &experienceGenerator{log: baseLog.With("service", "ExperienceGenerator")}
}

func (g *experienceGenerator) Generate(narrative *types.MasterNarrative) (types.ContainerContent, error) {
	intro, err := renderContainerTemplate(experienceTemplate, containerTemplateData{MasterNarrative: *narrative})
	if err != nil {
		return types.ContainerContent{}, err
	}

	content := types.ContainerContent{
		Container:    types.ContainerExperience,
		Title:        fmt.Sprintf("A Day as a %s", narrative.Career),
		Introduction: intro,
		Hints:        []string{narrative.Snippets.Encouragement},
	}

	// Each vocabulary mapping becomes an on-the-job translation task.
	for classroom, career := range narrative.Vocabulary {
		content.Activities = append(content.Activities,
			fmt.Sprintf("At work, %s calls a %q a %q. Use it in a sentence!", narrative.Persona.Name, classroom, career))
	}
	if len(content.Activities) == 0 {
		content.Activities = append(content.Activities, narrative.Mission)
	}

	return content, nil
}
