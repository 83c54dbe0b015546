package types

import "github.com/google/uuid"

// StudentRequest is the input DTO for one full-experience generation.
// Created per UI action; never persisted by this subsystem.
type StudentRequest struct {
	StudentID   uuid.UUID         `json:"student_id"`
	StudentName string            `json:"student_name"`
	Grade       string            `json:"grade" binding:"required"`
	Career      string            `json:"career" binding:"required"`
	Subject     string            `json:"subject" binding:"required"`
	Skill       string            `json:"skill" binding:"required"`
	Preferences map[string]string `json:"preferences,omitempty"`
	Context     string            `json:"context,omitempty"`
}

func (r StudentRequest) NarrativeParams() NarrativeParams {
	return NarrativeParams{
		Career:  r.Career,
		Grade:   r.Grade,
		Subject: r.Subject,
		Skill:   r.Skill,
		Context: r.Context,
	}
}
