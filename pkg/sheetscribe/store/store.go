// Package store persists the API key and the last model response between runs.
package store

import (
	"context"
	"errors"
)

// ErrNotFound is returned when a value has never been saved.
var ErrNotFound = errors.New("not found")

// Store holds the credential and the most recent response.
type Store interface {
	APIKey(ctx context.Context) (string, error)
	SetAPIKey(ctx context.Context, key string) error
	LastResponse(ctx context.Context) (string, error)
	SetLastResponse(ctx context.Context, text string) error
}
