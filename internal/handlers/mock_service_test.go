package handlers

import (
	"context"
	"sync"

	"github.com/christophersalem/hebard-hot-tub/internal/models"
	"github.com/christophersalem/hebard-hot-tub/internal/service"

	"github.com/gin-gonic/gin"
)

// ---- Service Mocks ----

type mockEventLog struct {
	mu    sync.Mutex
	err   error
	calls int
	last  models.EventFields
}

func (m *mockEventLog) RecordEvent(ctx context.Context, f models.EventFields) (models.EventRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls++
	m.last = f
	if m.err != nil {
		return models.EventRecord{}, m.err
	}
	return models.EventRecord{
		ID:       "evt-1",
		Pump:     f.Pump,
		Heater:   f.Heater,
		Tub:      f.Tub,
		Solar:    f.Solar,
		Delta:    f.Delta,
		Action:   f.Action,
		Note:     f.Note,
		Duration: f.Duration,
	}, nil
}

// ---- Shared Test Helpers ----

func newTestRouter(s *service.Service, opts ...Option) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := NewHandler(s, nil, opts...)
	return h.InitRoutes()
}
