package services

import (
	"fmt"

	"github.com/pathfinity/pathfinity-backend/internal/logger"
	"github.com/pathfinity/pathfinity-backend/internal/types"
)

// DiscoverGenerator maps a Master Narrative into the Discover container:
// open-ended exploration prompts built from the journey beats.
type DiscoverGenerator interface {
	Generate(narrative *types.MasterNarrative) (types.ContainerContent, error)
}

type discoverGenerator struct {
	log *logger.Logger
}

func NewDiscoverGenerator(baseLog *logger.Logger) DiscoverGenerator {
	return &discoverGenerator{log: baseLog.With("service", "DiscoverGenerator")}
}

func (g *discoverGenerator) Generate(narrative *types.MasterNarrative) (types.ContainerContent, error) {
	intro, err := renderContainerTemplate(discoverTemplate, containerTemplateData{MasterNarrative: *narrative})
	if err != nil {
		return types.ContainerContent{}, err
	}

	content := types.ContainerContent{
		Container:    types.ContainerDiscover,
		Title:        fmt.Sprintf("Discover %s Everywhere", narrative.Skill),
		Introduction: intro,
	}

	for i, beat := range narrative.JourneyBeats {
		content.Activities = append(content.Activities,
			fmt.Sprintf("Story beat %d: %s Where is %s hiding here?", i+1, beat, narrative.Skill))
	}
	content.Hints = []string{
		narrative.Persona.Catchphrase,
		fmt.Sprintf("Look around %s", narrative.Setting),
	}

	return content, nil
}
