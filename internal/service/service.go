package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/shareit/sharing-service/internal/repository"
)

// EventPublisher pushes booking lifecycle events to the event stream.
// Publishing is fire-and-forget: a failure is logged, never surfaced.
type EventPublisher interface {
	Publish(ctx context.Context, v any) error
}

type Service struct {
	log    *zap.Logger
	repo   repository.Repository
	events EventPublisher
}

func NewService(repo repository.Repository, events EventPublisher, log *zap.Logger) *Service {
	if events == nil {
		events = nopPublisher{}
	}
	return &Service{
		log:    log,
		repo:   repo,
		events: events,
	}
}

type nopPublisher struct{}

func (nopPublisher) Publish(_ context.Context, _ any) error { return nil }
