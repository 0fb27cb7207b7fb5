// Package service contains interface for service business-logic.
package service

import (
	"context"
	"errors"
	"time"

	"github.com/Decentr-net/argus/internal/aggregator"
	"github.com/Decentr-net/argus/internal/collector"
	"github.com/Decentr-net/argus/internal/entities"
	"github.com/Decentr-net/argus/internal/filter"
)

//go:generate mockgen -destination=./mock/service.go -package=mock -source=service.go

var (
	// ErrNotFound is returned when requested entity doesn't exist.
	ErrNotFound = errors.New("not found")
	// ErrInvalidRequest is returned when request can't be served as is.
	ErrInvalidRequest = errors.New("invalid request")
)

// Service ...
type Service interface {
	ListPosts(ctx context.Context, p *ListPostsParams) ([]*entities.Post, error)
	GetPostTracking(ctx context.Context, id int64) (*aggregator.Tracking, error)
	SetTracked(ctx context.Context, id int64, tracked bool) error
	GetOverview(ctx context.Context, window aggregator.Window) (*aggregator.Snapshot, error)

	ListMentions(ctx context.Context, p *ListMentionsParams) ([]*entities.Mention, error)

	ListKeywords(ctx context.Context, search string, includeInactive bool) ([]*entities.Keyword, error)
	GetKeyword(ctx context.Context, id int64) (*entities.Keyword, error)
	CreateKeyword(ctx context.Context, word string, active *bool) (*entities.Keyword, error)
	UpdateKeyword(ctx context.Context, id int64, word *string, active *bool) (*entities.Keyword, error)
	// ToggleKeyword flips activity of the keyword. Keywords are never deleted.
	ToggleKeyword(ctx context.Context, id int64) (*entities.Keyword, error)

	TriggerScrape(ctx context.Context) (*collector.Result, error)
}

// ListPostsParams ...
type ListPostsParams struct {
	Criteria filter.Criteria
	// Limit is applied after filtering. Zero means no limit.
	Limit int
}

// ListMentionsParams ...
type ListMentionsParams struct {
	Query    string
	Platform string
	From     *time.Time
	To       *time.Time
	Limit    int
}
