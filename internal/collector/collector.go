// Package collector contains interface of the external data collector.
package collector

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/Decentr-net/argus/internal/health"
)

//go:generate mockgen -destination=./mock/collector.go -package=mock -source=collector.go

// NotRegisteredMessage is shown when the collector's workflow is not active.
const NotRegisteredMessage = `El webhook no está activo. Por favor, abre el flujo en n8n y haz clic en "Execute workflow".`

// ErrNotRegistered is returned when the collector doesn't accept triggers.
var ErrNotRegistered = errors.New("webhook is not registered")

// ErrNotConfigured is returned when the collector has no url.
var ErrNotConfigured = errors.New("collector url is not configured")

// Error is returned when the collector rejects a trigger.
type Error struct {
	StatusCode int
	Message    string
	Err        error
}

func (e *Error) Error() string {
	return fmt.Sprintf("collector responded with %d: %s", e.StatusCode, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Result is a collector's response to a trigger.
type Result struct {
	Payload json.RawMessage
}

// Collector requests fresh posts and mentions from the scraping workflow.
// Collected data lands in the storage asynchronously.
type Collector interface {
	health.Pinger

	// Run triggers collection periodically until ctx is done.
	Run(ctx context.Context) error
	// Trigger requests a single collection.
	Trigger(ctx context.Context) (*Result, error)
}
