// Package filter contains filtering and sorting of canonical posts for table views.
package filter

import (
	"sort"
	"strings"
	"time"

	"github.com/Decentr-net/argus/internal/entities"
	"github.com/Decentr-net/argus/internal/normalizer"
)

// SortType ...
type SortType string

const (
	// DateSortType ...
	DateSortType SortType = "date"
	// LikesSortType ...
	LikesSortType SortType = "likes"
	// CommentsSortType ...
	CommentsSortType SortType = "comments"
	// SharesSortType ...
	SharesSortType SortType = "shares"
	// ViewsSortType ...
	ViewsSortType SortType = "views"
)

// OrderType ...
type OrderType string

const (
	// AscendingOrder ...
	AscendingOrder OrderType = "asc"
	// DescendingOrder ...
	DescendingOrder OrderType = "desc"
)

// Criteria are combined with AND. Zero values don't filter.
type Criteria struct {
	Query       string
	Platform    string
	ContentType entities.ContentType
	Tracked     *bool
	From        *time.Time
	To          *time.Time

	SortBy SortType
	Order  OrderType
}

// IsValidSortType ...
func IsValidSortType(s SortType) bool {
	switch s {
	case DateSortType, LikesSortType, CommentsSortType, SharesSortType, ViewsSortType:
		return true
	default:
		return false
	}
}

// IsValidOrderType ...
func IsValidOrderType(o OrderType) bool {
	return o == AscendingOrder || o == DescendingOrder
}

// Apply returns posts matching c sorted by c. Input slice is not modified.
// Posts with equal sort keys keep their relative order.
func Apply(posts []*entities.Post, c Criteria) []*entities.Post {
	query := strings.ToLower(strings.TrimSpace(c.Query))
	platform := ""
	if strings.TrimSpace(c.Platform) != "" {
		platform = normalizer.CanonicalPlatform(c.Platform)
	}

	out := make([]*entities.Post, 0, len(posts))
	for _, p := range posts {
		if p == nil {
			continue
		}

		if query != "" && !matchQuery(p, query) {
			continue
		}

		if platform != "" && normalizer.CanonicalPlatform(p.Platform) != platform {
			continue
		}

		if c.ContentType != "" && p.ContentType != c.ContentType {
			continue
		}

		if c.Tracked != nil && p.Tracked != *c.Tracked {
			continue
		}

		if c.From != nil && p.PublishedAt.Before(*c.From) {
			continue
		}

		if c.To != nil && p.PublishedAt.After(*c.To) {
			continue
		}

		out = append(out, p)
	}

	key := sortKey(c.SortBy)
	desc := c.Order != AscendingOrder

	sort.SliceStable(out, func(i, j int) bool {
		if desc {
			return key(out[j], out[i])
		}
		return key(out[i], out[j])
	})

	return out
}

func matchQuery(p *entities.Post, query string) bool {
	for _, v := range []string{p.Text, p.Profile, p.ExternalID} {
		if strings.Contains(strings.ToLower(v), query) {
			return true
		}
	}

	return false
}

func sortKey(s SortType) func(a, b *entities.Post) bool {
	switch s {
	case LikesSortType:
		return func(a, b *entities.Post) bool { return a.Likes < b.Likes }
	case CommentsSortType:
		return func(a, b *entities.Post) bool { return a.Comments < b.Comments }
	case SharesSortType:
		return func(a, b *entities.Post) bool { return a.Shares < b.Shares }
	case ViewsSortType:
		return func(a, b *entities.Post) bool { return a.Views < b.Views }
	default:
		return func(a, b *entities.Post) bool { return a.PublishedAt.Before(b.PublishedAt) }
	}
}
