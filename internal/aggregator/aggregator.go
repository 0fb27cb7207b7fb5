// Package aggregator computes dashboard metrics over canonical posts.
package aggregator

import (
	"math"
	"time"

	"github.com/Decentr-net/argus/internal/entities"
)

const dateKeyLayout = "2006-01-02"

// Totals are counters of one window.
type Totals struct {
	PostCount       int64
	TotalReach      int64
	TotalEngagement int64
	AvgEngagement   int64
}

// Changes are percent changes of Totals against the previous window.
type Changes struct {
	PostCount       float64
	TotalReach      float64
	TotalEngagement float64
	AvgEngagement   float64
}

// ContentTypeStats ...
type ContentTypeStats struct {
	ContentType entities.ContentType
	PostCount   int64
	AvgLikes    float64
	AvgComments float64
	AvgShares   float64
	AvgViews    int64
}

// DailyPoint ...
type DailyPoint struct {
	Date       time.Time
	PostCount  int64
	Likes      int64
	Comments   int64
	Shares     int64
	Engagement int64
}

// Snapshot is the result of aggregation. It is never stored.
type Snapshot struct {
	Window   Window
	Previous Window

	Current       Totals
	PreviousTotal Totals
	Changes       Changes

	ByContentType []ContentTypeStats
	TopPost       *entities.Post
	Daily         []DailyPoint
}

// Aggregator ...
type Aggregator struct {
	// TopPostExcluded lists content types which can't be a top post.
	TopPostExcluded []entities.ContentType
}

// New creates new instance of Aggregator which excludes shared posts from the top post.
// Their counters belong to the original post.
func New() *Aggregator {
	return &Aggregator{
		TopPostExcluded: []entities.ContentType{entities.SharedContentType},
	}
}

// Aggregate computes metrics of posts published within window and compares them with previous.
// Empty input or invalid window yield a zero snapshot with an empty series.
func (a *Aggregator) Aggregate(posts []*entities.Post, window, previous Window) *Snapshot {
	s := &Snapshot{
		Window:        window,
		Previous:      previous,
		ByContentType: []ContentTypeStats{},
		Daily:         []DailyPoint{},
	}

	if len(posts) == 0 || !window.Valid() {
		return s
	}

	var current, before []*entities.Post
	for _, p := range posts {
		// fallback records carry a made up date
		if p == nil || p.ContentType == entities.ErrorContentType {
			continue
		}

		switch {
		case window.Contains(p.PublishedAt):
			current = append(current, p)
		case previous.Valid() && previous.Contains(p.PublishedAt):
			before = append(before, p)
		}
	}

	s.Current = totals(current)
	s.PreviousTotal = totals(before)
	s.Changes = Changes{
		PostCount:       PercentChange(s.Current.PostCount, s.PreviousTotal.PostCount),
		TotalReach:      PercentChange(s.Current.TotalReach, s.PreviousTotal.TotalReach),
		TotalEngagement: PercentChange(s.Current.TotalEngagement, s.PreviousTotal.TotalEngagement),
		AvgEngagement:   PercentChange(s.Current.AvgEngagement, s.PreviousTotal.AvgEngagement),
	}

	s.ByContentType = byContentType(current)
	s.TopPost = a.topPost(current)
	s.Daily = daily(current, window)

	return s
}

// PercentChange returns growth of current against previous in percents.
// Growth from zero is reported as 100.
func PercentChange(current, previous int64) float64 {
	if previous == 0 {
		if current > 0 {
			return 100
		}
		return 0
	}

	return float64(current-previous) / float64(previous) * 100
}

func totals(posts []*entities.Post) Totals {
	var t Totals

	for _, p := range posts {
		t.PostCount++
		t.TotalReach = entities.AddCounters(t.TotalReach, p.Views)
		t.TotalEngagement = entities.AddCounters(t.TotalEngagement, p.Engagement())
	}

	if t.PostCount > 0 {
		t.AvgEngagement = int64(math.Round(float64(t.TotalEngagement) / float64(t.PostCount)))
	}

	return t
}

func byContentType(posts []*entities.Post) []ContentTypeStats {
	type sum struct {
		count, likes, comments, shares, views int64
	}

	var order []entities.ContentType
	sums := make(map[entities.ContentType]*sum)

	for _, p := range posts {
		v, ok := sums[p.ContentType]
		if !ok {
			v = &sum{}
			sums[p.ContentType] = v
			order = append(order, p.ContentType)
		}

		v.count++
		v.likes = entities.AddCounters(v.likes, p.Likes)
		v.comments = entities.AddCounters(v.comments, p.Comments)
		v.shares = entities.AddCounters(v.shares, p.Shares)
		v.views = entities.AddCounters(v.views, p.Views)
	}

	out := make([]ContentTypeStats, len(order))
	for i, ct := range order {
		v := sums[ct]
		n := float64(v.count)

		out[i] = ContentTypeStats{
			ContentType: ct,
			PostCount:   v.count,
			AvgLikes:    round1(float64(v.likes) / n),
			AvgComments: round1(float64(v.comments) / n),
			AvgShares:   round1(float64(v.shares) / n),
			AvgViews:    int64(math.Round(float64(v.views) / n)),
		}
	}

	return out
}

func (a *Aggregator) topPost(posts []*entities.Post) *entities.Post {
	var top *entities.Post

	for _, p := range posts {
		if a.excluded(p.ContentType) {
			continue
		}

		if top == nil || p.Engagement() > top.Engagement() {
			top = p
		}
	}

	return top
}

func (a *Aggregator) excluded(ct entities.ContentType) bool {
	for _, v := range a.TopPostExcluded {
		if v == ct {
			return true
		}
	}

	return false
}

func daily(posts []*entities.Post, w Window) []DailyPoint {
	days := w.Days()
	loc := w.Start.Location()

	out := make([]DailyPoint, len(days))
	idx := make(map[string]int, len(days))
	for i, d := range days {
		out[i].Date = d
		idx[d.Format(dateKeyLayout)] = i
	}

	for _, p := range posts {
		i, ok := idx[p.PublishedAt.In(loc).Format(dateKeyLayout)]
		if !ok {
			continue
		}

		out[i].PostCount++
		out[i].Likes = entities.AddCounters(out[i].Likes, p.Likes)
		out[i].Comments = entities.AddCounters(out[i].Comments, p.Comments)
		out[i].Shares = entities.AddCounters(out[i].Shares, p.Shares)
		out[i].Engagement = entities.AddCounters(out[i].Engagement, p.Engagement())
	}

	return out
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
