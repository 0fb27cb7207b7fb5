package aggregator

import (
	"math"
	"sort"
	"time"

	"github.com/Decentr-net/argus/internal/entities"
)

// TrackingPoint is one sample of a post's counters.
type TrackingPoint struct {
	Date           time.Time
	Likes          int64
	Comments       int64
	Shares         int64
	Views          int64
	Interactions   int64
	EngagementRate float64
	// Initial is set for the point derived from the post itself.
	Initial bool
}

// Diff is growth of counters between the first and the latest point.
type Diff struct {
	Likes    int64
	Comments int64
	Shares   int64
	Views    int64
}

// Performance scores are in range [0, 100].
type Performance struct {
	Reach        float64
	Engagement   float64
	Virality     float64
	Conversation float64
}

// Tracking is the evolution of a post.
type Tracking struct {
	Post           entities.Post
	Points         []TrackingPoint
	Diff           Diff
	EngagementRate float64
	Performance    Performance
}

// Track builds the evolution series of post. The first point always comes from the post,
// history follows it in order of collection.
func Track(post entities.Post, history []*entities.PostMetric) *Tracking {
	metrics := make([]*entities.PostMetric, 0, len(history))
	for _, v := range history {
		if v != nil {
			metrics = append(metrics, v)
		}
	}
	sort.SliceStable(metrics, func(i, j int) bool {
		return metrics[i].CollectedAt.Before(metrics[j].CollectedAt)
	})

	initial := TrackingPoint{
		Date:         post.PublishedAt,
		Likes:        post.Likes,
		Comments:     post.Comments,
		Shares:       post.Shares,
		Views:        post.Views,
		Interactions: post.Engagement(),
		Initial:      true,
	}
	initial.EngagementRate = pointRate(initial.Interactions, initial.Views)

	t := &Tracking{
		Post:   post,
		Points: append(make([]TrackingPoint, 0, len(metrics)+1), initial),
	}

	for _, m := range metrics {
		p := TrackingPoint{
			Date:         m.CollectedAt,
			Likes:        m.Likes,
			Comments:     m.Comments,
			Shares:       m.Shares,
			Views:        m.Views,
			Interactions: m.Interactions,
		}
		if p.Interactions == 0 {
			p.Interactions = entities.AddCounters(p.Likes, p.Comments, p.Shares)
		}

		p.EngagementRate = m.EngagementRate
		if p.EngagementRate <= 0 {
			p.EngagementRate = pointRate(p.Interactions, p.Views)
		}
		p.EngagementRate = math.Min(100, p.EngagementRate)

		t.Points = append(t.Points, p)
	}

	latest := t.Points[len(t.Points)-1]
	t.Diff = Diff{
		Likes:    latest.Likes - initial.Likes,
		Comments: latest.Comments - initial.Comments,
		Shares:   latest.Shares - initial.Shares,
		Views:    latest.Views - initial.Views,
	}

	total := post.Engagement()
	t.EngagementRate = round1(rate(total, post.Views))
	t.Performance = Performance{
		Reach:        round1(math.Min(100, math.Log10(float64(post.Views)+1)*25)),
		Engagement:   round1(math.Min(100, rate(total, post.Views)*2)),
		Virality:     round1(math.Min(100, float64(post.Shares)/float64(max1(post.Likes))*50)),
		Conversation: round1(math.Min(100, float64(post.Comments)/float64(max1(total))*100)),
	}

	return t
}

func rate(interactions, views int64) float64 {
	return float64(interactions) / float64(max1(views)) * 100
}

func pointRate(interactions, views int64) float64 {
	return round1(math.Min(100, rate(interactions, views)))
}

func max1(v int64) int64 {
	if v < 1 {
		return 1
	}
	return v
}
