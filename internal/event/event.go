package event

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/oneee-playground/schedsim/internal/sched"
)

const Topic = "simulation"

type SimulationEvent struct {
	ID        uuid.UUID       `json:"id"`
	Success   bool            `json:"success"`
	Took      time.Duration   `json:"took"`
	Extra     string          `json:"extra"`
	Summaries []sched.Summary `json:"summaries,omitempty"`
}

type Publisher interface {
	Publish(ctx context.Context, e SimulationEvent) error
}
