package entity

import "github.com/ousmanedev/boutik/internal/domain/enum"

// GoalRecord is a business goal shown on the PIN-gated goal view.
type GoalRecord struct {
	ID                    int64           `json:"id"`
	Date                  string          `json:"date"`
	Title                 string          `json:"title"`
	DesiredCompletionDate string          `json:"desired_completion_date,omitempty"`
	Content               string          `json:"content,omitempty"`
	Status                enum.GoalStatus `json:"status"`
}

// CreateGoalInput is the client-validated payload for a new goal.
type CreateGoalInput struct {
	Date                  string `json:"date" validate:"required"`
	Title                 string `json:"title" validate:"required"`
	DesiredCompletionDate string `json:"desired_completion_date,omitempty"`
	Content               string `json:"content,omitempty"`
}
