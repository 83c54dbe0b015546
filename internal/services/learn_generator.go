package services

import (
	"fmt"

	"github.com/pathfinity/pathfinity-backend/internal/logger"
	"github.com/pathfinity/pathfinity-backend/internal/types"
)

// LearnGenerator maps a Master Narrative (plus the selected video and its
// transcript, when available) into the Learn container.
type LearnGenerator interface {
	Generate(narrative *types.MasterNarrative, video *types.Video, transcript []types.TranscriptSegment) (types.ContainerContent, error)
}

type learnGenerator struct {
	log *logger.Logger
}

func NewLearnGenerator(baseLog *logger.Logger) LearnGenerator {
	return &learnGenerator{log: baseLog.With("service", "LearnGenerator")}
}

func (g *learnGenerator) Generate(narrative *types.MasterNarrative, video *types.Video, transcript []types.TranscriptSegment) (types.ContainerContent, error) {
	data := containerTemplateData{MasterNarrative: *narrative}
	if video != nil {
		data.HasVideo = true
		data.VideoTitle = video.Title
	}

	intro, err := renderContainerTemplate(learnTemplate, data)
	if err != nil {
		return types.ContainerContent{}, err
	}

	content := types.ContainerContent{
		Container:    types.ContainerLearn,
		Title:        fmt.Sprintf("Learn %s with %s", narrative.Skill, narrative.Persona.Name),
		Introduction: intro,
		Video:        video,
		Hints: []string{
			narrative.Snippets.Encouragement,
			fmt.Sprintf("Think about how a %s would do it.", narrative.Career),
		},
	}

	// Activities follow the narrative's journey beats in order.
	for _, beat := range narrative.JourneyBeats {
		content.Activities = append(content.Activities, beat)
	}

	if len(transcript) > 0 {
		// The opening transcript lines seed a talk-about-it prompt.
		preview := transcript[0].Text
		if len(transcript) > 1 {
			preview += " " + transcript[1].Text
		}
		content.Extra = map[string]any{"transcript_preview": preview}
	}

	return content, nil
}
