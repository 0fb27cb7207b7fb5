// Package storage contains a storage interface.
package storage

import (
	"context"
	"fmt"
	"time"

	"github.com/Decentr-net/argus/internal/entities"
)

//go:generate mockgen -destination=./mock/storage.go -package=mock -source=storage.go

// ErrNotFound ...
var ErrNotFound = fmt.Errorf("not found")

// Storage provides methods for interacting with database.
// Posts and mentions are returned as raw records because their schema is not under our control.
type Storage interface {
	Ping(ctx context.Context) error

	ListPosts(ctx context.Context, p *ListPostsParams) ([]entities.RawRecord, error)
	GetPost(ctx context.Context, id int64) (entities.RawRecord, error)
	ListPostMetrics(ctx context.Context, postID int64) ([]*entities.PostMetric, error)
	SetTracked(ctx context.Context, id int64, tracked bool) error

	ListMentions(ctx context.Context, p *ListMentionsParams) ([]entities.RawRecord, error)

	ListKeywords(ctx context.Context, p *ListKeywordsParams) ([]*entities.Keyword, error)
	GetKeyword(ctx context.Context, id int64) (*entities.Keyword, error)
	CreateKeyword(ctx context.Context, word string, active bool) (*entities.Keyword, error)
	UpdateKeyword(ctx context.Context, id int64, p *UpdateKeywordParams) (*entities.Keyword, error)
	ToggleKeyword(ctx context.Context, id int64) (*entities.Keyword, error)
}

// ListPostsParams ...
type ListPostsParams struct {
	// From and To bound publish date inclusively.
	From  *time.Time
	To    *time.Time
	Limit uint16
}

// ListMentionsParams ...
type ListMentionsParams struct {
	From  *time.Time
	To    *time.Time
	Limit uint16
}

// ListKeywordsParams ...
type ListKeywordsParams struct {
	// Search is a case-insensitive substring of the word.
	Search          string
	IncludeInactive bool
}

// UpdateKeywordParams contains fields to update. Nil fields are left as is.
type UpdateKeywordParams struct {
	Word   *string
	Active *bool
}
