// Package impl is implementation of service interface.
package impl

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/Decentr-net/argus/internal/aggregator"
	"github.com/Decentr-net/argus/internal/collector"
	"github.com/Decentr-net/argus/internal/entities"
	"github.com/Decentr-net/argus/internal/filter"
	"github.com/Decentr-net/argus/internal/normalizer"
	"github.com/Decentr-net/argus/internal/service"
	"github.com/Decentr-net/argus/internal/storage"
)

// maxFetch bounds the number of rows loaded for in-memory filtering.
const maxFetch = 10000

//nolint:gochecknoglobals
var log = logrus.WithFields(logrus.Fields{
	"layer":   "service",
	"package": "impl",
})

// service ...
type srv struct {
	s storage.Storage
	c collector.Collector
	n *normalizer.Normalizer
	a *aggregator.Aggregator
}

// New creates new instance of service.
func New(s storage.Storage, c collector.Collector, n *normalizer.Normalizer, a *aggregator.Aggregator) service.Service {
	return srv{
		s: s,
		c: c,
		n: n,
		a: a,
	}
}

func (s srv) ListPosts(ctx context.Context, p *service.ListPostsParams) ([]*entities.Post, error) {
	if p == nil {
		p = &service.ListPostsParams{}
	}

	if p.Limit < 0 {
		return nil, fmt.Errorf("%w: negative limit", service.ErrInvalidRequest)
	}

	if p.Criteria.SortBy != "" && !filter.IsValidSortType(p.Criteria.SortBy) {
		return nil, fmt.Errorf("%w: unknown sort %q", service.ErrInvalidRequest, p.Criteria.SortBy)
	}

	if p.Criteria.Order != "" && !filter.IsValidOrderType(p.Criteria.Order) {
		return nil, fmt.Errorf("%w: unknown order %q", service.ErrInvalidRequest, p.Criteria.Order)
	}

	raw, err := s.s.ListPosts(ctx, &storage.ListPostsParams{
		From:  p.Criteria.From,
		To:    p.Criteria.To,
		Limit: maxFetch,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list posts on s side: %w", err)
	}

	posts := filter.Apply(s.n.Posts(raw), p.Criteria)
	logDegraded(len(posts), countDegradedPosts(posts))

	if p.Limit > 0 && len(posts) > p.Limit {
		posts = posts[:p.Limit]
	}

	return posts, nil
}

func (s srv) GetPostTracking(ctx context.Context, id int64) (*aggregator.Tracking, error) {
	raw, err := s.s.GetPost(ctx, id)
	if err != nil {
		return nil, wrapStorageError("failed to get post on s side", err)
	}

	history, err := s.s.ListPostMetrics(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to list post metrics on s side: %w", err)
	}

	return aggregator.Track(s.n.Post(raw), history), nil
}

func (s srv) SetTracked(ctx context.Context, id int64, tracked bool) error {
	if err := s.s.SetTracked(ctx, id, tracked); err != nil {
		return wrapStorageError("failed to set tracked on s side", err)
	}

	return nil
}

func (s srv) GetOverview(ctx context.Context, window aggregator.Window) (*aggregator.Snapshot, error) {
	previous := window.Previous()

	if !window.Valid() {
		return s.a.Aggregate(nil, window, previous), nil
	}

	raw, err := s.s.ListPosts(ctx, &storage.ListPostsParams{
		From: &previous.Start,
		To:   &window.End,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list posts on s side: %w", err)
	}

	posts := s.n.Posts(raw)
	logDegraded(len(posts), countDegradedPosts(posts))

	return s.a.Aggregate(posts, window, previous), nil
}

func (s srv) ListMentions(ctx context.Context, p *service.ListMentionsParams) ([]*entities.Mention, error) {
	if p == nil {
		p = &service.ListMentionsParams{}
	}

	if p.Limit < 0 {
		return nil, fmt.Errorf("%w: negative limit", service.ErrInvalidRequest)
	}

	raw, err := s.s.ListMentions(ctx, &storage.ListMentionsParams{
		From:  p.From,
		To:    p.To,
		Limit: maxFetch,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list mentions on s side: %w", err)
	}

	query := strings.ToLower(strings.TrimSpace(p.Query))
	platform := normalizer.CanonicalPlatform(p.Platform)

	out := make([]*entities.Mention, 0, len(raw))
	for _, m := range s.n.Mentions(raw) {
		if p.Platform != "" && normalizer.CanonicalPlatform(m.Platform) != platform {
			continue
		}

		if query != "" &&
			!strings.Contains(strings.ToLower(m.Content), query) &&
			!strings.Contains(strings.ToLower(m.SourceName), query) {
			continue
		}

		out = append(out, m)
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].PublishedAt.After(out[j].PublishedAt)
	})

	if p.Limit > 0 && len(out) > p.Limit {
		out = out[:p.Limit]
	}

	return out, nil
}

func (s srv) ListKeywords(ctx context.Context, search string, includeInactive bool) ([]*entities.Keyword, error) {
	kk, err := s.s.ListKeywords(ctx, &storage.ListKeywordsParams{
		Search:          strings.TrimSpace(search),
		IncludeInactive: includeInactive,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list keywords on s side: %w", err)
	}

	return kk, nil
}

func (s srv) GetKeyword(ctx context.Context, id int64) (*entities.Keyword, error) {
	k, err := s.s.GetKeyword(ctx, id)
	if err != nil {
		return nil, wrapStorageError("failed to get keyword on s side", err)
	}

	return k, nil
}

func (s srv) CreateKeyword(ctx context.Context, word string, active *bool) (*entities.Keyword, error) {
	word = strings.TrimSpace(word)
	if word == "" {
		return nil, fmt.Errorf("%w: word is required", service.ErrInvalidRequest)
	}

	isActive := true
	if active != nil {
		isActive = *active
	}

	k, err := s.s.CreateKeyword(ctx, word, isActive)
	if err != nil {
		return nil, fmt.Errorf("failed to create keyword on s side: %w", err)
	}

	return k, nil
}

func (s srv) UpdateKeyword(ctx context.Context, id int64, word *string, active *bool) (*entities.Keyword, error) {
	var p storage.UpdateKeywordParams

	// blank word keeps the stored one
	if word != nil {
		if w := strings.TrimSpace(*word); w != "" {
			p.Word = &w
		}
	}
	p.Active = active

	k, err := s.s.UpdateKeyword(ctx, id, &p)
	if err != nil {
		return nil, wrapStorageError("failed to update keyword on s side", err)
	}

	return k, nil
}

func (s srv) ToggleKeyword(ctx context.Context, id int64) (*entities.Keyword, error) {
	k, err := s.s.ToggleKeyword(ctx, id)
	if err != nil {
		return nil, wrapStorageError("failed to toggle keyword on s side", err)
	}

	return k, nil
}

func (s srv) TriggerScrape(ctx context.Context) (*collector.Result, error) {
	res, err := s.c.Trigger(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to trigger collector: %w", err)
	}

	return res, nil
}

func wrapStorageError(msg string, err error) error {
	if errors.Is(err, storage.ErrNotFound) {
		return fmt.Errorf("%s: %w", msg, service.ErrNotFound)
	}

	return fmt.Errorf("%s: %w", msg, err)
}

func countDegradedPosts(pp []*entities.Post) int {
	var n int
	for _, p := range pp {
		if p.Degraded {
			n++
		}
	}
	return n
}

func logDegraded(total, degraded int) {
	if degraded > 0 {
		log.WithFields(logrus.Fields{
			"total":    total,
			"degraded": degraded,
		}).Debug("records normalized with fallbacks")
	}
}
