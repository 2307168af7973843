// Package events announces committed catalog changes to other services.
package events

import (
	"context"
	"time"
)

const (
	MovieCreated = "movie.created"
	MovieUpdated = "movie.updated"
	MovieDeleted = "movie.deleted"
)

type MovieEvent struct {
	Type       string    `json:"type"`
	MovieID    int       `json:"movieId"`
	Title      string    `json:"title,omitempty"`
	Poster     string    `json:"poster,omitempty"`
	OccurredAt time.Time `json:"occurredAt"`
}

type Publisher interface {
	Publish(ctx context.Context, event MovieEvent) error
}

// NopPublisher drops every event. It is used when no broker is configured.
type NopPublisher struct{}

func (NopPublisher) Publish(context.Context, MovieEvent) error {
	return nil
}
