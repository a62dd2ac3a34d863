package service

import (
	"context"

	"github.com/christophersalem/hebard-hot-tub/internal/models"
	"github.com/christophersalem/hebard-hot-tub/internal/repository"
)

// EventLog appends controller events to the capped log.
type EventLog interface {
	RecordEvent(ctx context.Context, f models.EventFields) (models.EventRecord, error)
}

// Service aggregates all sub-services.
type Service struct {
	EventLog
}

// NewService wires the repository layer into concrete services.
func NewService(repos *repository.Repository, cfg RecorderConfig) *Service {
	return &Service{
		EventLog: NewRecorder(repos.Sheet, cfg),
	}
}
