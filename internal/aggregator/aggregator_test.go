package aggregator

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Decentr-net/argus/internal/entities"
)

var loc = time.FixedZone("BOT", -4*60*60)

func testWindow() Window {
	return Window{
		Start: time.Date(2024, 3, 1, 0, 0, 0, 0, loc),
		End:   time.Date(2024, 3, 8, 0, 0, 0, 0, loc).Add(-time.Nanosecond),
	}
}

func TestAggregator_Aggregate_Empty(t *testing.T) {
	w := testWindow()

	s := New().Aggregate(nil, w, w.Previous())

	assert.Equal(t, Totals{}, s.Current)
	assert.Equal(t, Changes{}, s.Changes)
	assert.Nil(t, s.TopPost)
	assert.NotNil(t, s.Daily)
	assert.Empty(t, s.Daily)
	assert.NotNil(t, s.ByContentType)
	assert.Empty(t, s.ByContentType)
}

func TestAggregator_Aggregate_InvalidWindow(t *testing.T) {
	w := testWindow()
	posts := []*entities.Post{{Likes: 1, PublishedAt: w.Start, ContentType: entities.TextContentType}}

	s := New().Aggregate(posts, Window{Start: w.End, End: w.Start}, w.Previous())

	assert.Equal(t, Totals{}, s.Current)
	assert.Empty(t, s.Daily)
}

func TestAggregator_Aggregate(t *testing.T) {
	w := testWindow()

	p1 := &entities.Post{
		ID: 1, ContentType: entities.ImageContentType,
		Likes: 10, Comments: 2, Shares: 3, Views: 100,
		// 22:00 of March 1 in window's location
		PublishedAt: time.Date(2024, 3, 2, 2, 0, 0, 0, time.UTC),
	}
	p2 := &entities.Post{
		ID: 2, ContentType: entities.SharedContentType,
		Likes: 100, Views: 50,
		PublishedAt: time.Date(2024, 3, 3, 23, 30, 0, 0, loc),
	}
	p3 := &entities.Post{
		ID: 3, ContentType: entities.ImageContentType,
		Likes: 4, Comments: 1, Views: 10,
		PublishedAt: time.Date(2024, 3, 3, 0, 0, 0, 0, loc),
	}
	previous := &entities.Post{
		ID: 4, ContentType: entities.VideoContentType,
		Likes: 10, Views: 40,
		PublishedAt: time.Date(2024, 2, 28, 12, 0, 0, 0, loc),
	}
	broken := &entities.Post{
		ID: -1, ContentType: entities.ErrorContentType,
		Likes: 1000, Views: 1000,
		PublishedAt: time.Date(2024, 3, 2, 12, 0, 0, 0, loc),
	}
	outside := &entities.Post{
		ID: 5, ContentType: entities.TextContentType,
		Likes: 1000,
		PublishedAt: time.Date(2024, 3, 10, 12, 0, 0, 0, loc),
	}

	s := New().Aggregate([]*entities.Post{p1, p2, nil, p3, previous, broken, outside}, w, w.Previous())

	assert.Equal(t, Totals{PostCount: 3, TotalReach: 160, TotalEngagement: 120, AvgEngagement: 40}, s.Current)
	assert.Equal(t, Totals{PostCount: 1, TotalReach: 40, TotalEngagement: 10, AvgEngagement: 10}, s.PreviousTotal)
	assert.Equal(t, Changes{PostCount: 200, TotalReach: 300, TotalEngagement: 1100, AvgEngagement: 300}, s.Changes)

	require.NotNil(t, s.TopPost)
	assert.EqualValues(t, 1, s.TopPost.ID)

	assert.Equal(t, []ContentTypeStats{
		{ContentType: entities.ImageContentType, PostCount: 2, AvgLikes: 7, AvgComments: 1.5, AvgShares: 1.5, AvgViews: 55},
		{ContentType: entities.SharedContentType, PostCount: 1, AvgLikes: 100, AvgViews: 50},
	}, s.ByContentType)

	require.Len(t, s.Daily, 7)
	for i, v := range s.Daily {
		assert.Equal(t, time.Date(2024, 3, 1+i, 0, 0, 0, 0, loc), v.Date)
	}
	assert.Equal(t, DailyPoint{Date: s.Daily[0].Date, PostCount: 1, Likes: 10, Comments: 2, Shares: 3, Engagement: 15}, s.Daily[0])
	assert.Equal(t, DailyPoint{Date: s.Daily[2].Date, PostCount: 2, Likes: 104, Comments: 1, Engagement: 105}, s.Daily[2])
	assert.Equal(t, DailyPoint{Date: s.Daily[6].Date}, s.Daily[6])
}

func TestAggregator_Aggregate_HugeCounters(t *testing.T) {
	w := testWindow()

	huge := &entities.Post{
		ID: 1, ContentType: entities.ImageContentType,
		Likes: entities.MaxCounter, Comments: 1, Views: entities.MaxCounter,
		PublishedAt: w.Start,
	}
	small := &entities.Post{
		ID: 2, ContentType: entities.ImageContentType,
		Likes: 5, Views: entities.MaxCounter,
		PublishedAt: w.Start.Add(time.Hour),
	}

	s := New().Aggregate([]*entities.Post{huge, small}, w, w.Previous())

	assert.Equal(t, Totals{
		PostCount:       2,
		TotalReach:      2 * entities.MaxCounter,
		TotalEngagement: entities.MaxCounter + 6,
		AvgEngagement:   int64(math.Round(float64(entities.MaxCounter+6) / 2)),
	}, s.Current)

	require.NotNil(t, s.TopPost)
	assert.EqualValues(t, 1, s.TopPost.ID)
	assert.Equal(t, entities.MaxCounter+6, s.Daily[0].Engagement)
}

func TestAggregator_Aggregate_Saturates(t *testing.T) {
	w := testWindow()

	posts := make([]*entities.Post, 3)
	for i := range posts {
		posts[i] = &entities.Post{
			ID: int64(i + 1), ContentType: entities.VideoContentType,
			Likes: math.MaxInt64, Shares: math.MaxInt64, Views: math.MaxInt64,
			PublishedAt: w.Start,
		}
	}

	s := New().Aggregate(posts, w, w.Previous())

	assert.Equal(t, int64(math.MaxInt64), s.Current.TotalReach)
	assert.Equal(t, int64(math.MaxInt64), s.Current.TotalEngagement)
	assert.Greater(t, s.Current.AvgEngagement, int64(0))
	assert.Equal(t, int64(math.MaxInt64), s.Daily[0].Engagement)
	require.Len(t, s.ByContentType, 1)
	assert.Greater(t, s.ByContentType[0].AvgViews, int64(0))
}

func TestAggregator_Aggregate_GrowthFromZero(t *testing.T) {
	w := testWindow()
	posts := []*entities.Post{
		{ID: 1, Likes: 5, ContentType: entities.TextContentType, PublishedAt: w.Start},
		{ID: 2, Likes: 5, ContentType: entities.TextContentType, PublishedAt: w.End},
	}

	s := New().Aggregate(posts, w, w.Previous())

	assert.EqualValues(t, 2, s.Current.PostCount)
	assert.EqualValues(t, 100, s.Changes.PostCount)
	assert.EqualValues(t, 100, s.Changes.TotalEngagement)
	assert.EqualValues(t, 0, s.Changes.TotalReach)
}

func TestAggregator_Aggregate_TopPost(t *testing.T) {
	w := testWindow()

	t.Run("tie goes to first", func(t *testing.T) {
		posts := []*entities.Post{
			{ID: 1, Likes: 5, ContentType: entities.TextContentType, PublishedAt: w.Start},
			{ID: 2, Shares: 5, ContentType: entities.TextContentType, PublishedAt: w.Start},
		}

		s := New().Aggregate(posts, w, w.Previous())
		require.NotNil(t, s.TopPost)
		assert.EqualValues(t, 1, s.TopPost.ID)
	})

	t.Run("only excluded", func(t *testing.T) {
		posts := []*entities.Post{
			{ID: 1, Likes: 5, ContentType: entities.SharedContentType, PublishedAt: w.Start},
		}

		s := New().Aggregate(posts, w, w.Previous())
		assert.Nil(t, s.TopPost)
	})

	t.Run("custom exclusion", func(t *testing.T) {
		posts := []*entities.Post{
			{ID: 1, Likes: 50, ContentType: entities.ReelContentType, PublishedAt: w.Start},
			{ID: 2, Likes: 5, ContentType: entities.SharedContentType, PublishedAt: w.Start},
		}

		a := &Aggregator{TopPostExcluded: []entities.ContentType{entities.ReelContentType}}
		s := a.Aggregate(posts, w, w.Previous())
		require.NotNil(t, s.TopPost)
		assert.EqualValues(t, 2, s.TopPost.ID)
	})
}

func TestAggregator_Aggregate_Rounding(t *testing.T) {
	w := testWindow()
	posts := []*entities.Post{
		{Likes: 1, Views: 1, ContentType: entities.TextContentType, PublishedAt: w.Start},
		{Likes: 1, Views: 1, ContentType: entities.TextContentType, PublishedAt: w.Start},
		{Likes: 0, Views: 0, ContentType: entities.TextContentType, PublishedAt: w.Start},
	}

	s := New().Aggregate(posts, w, w.Previous())

	require.Len(t, s.ByContentType, 1)
	assert.Equal(t, 0.7, s.ByContentType[0].AvgLikes)
	assert.EqualValues(t, 1, s.ByContentType[0].AvgViews)
	assert.EqualValues(t, 1, s.Current.AvgEngagement)
}

func TestPercentChange(t *testing.T) {
	tt := []struct {
		current, previous int64
		expected          float64
	}{
		{0, 0, 0},
		{5, 0, 100},
		{15, 10, 50},
		{5, 10, -50},
		{10, 10, 0},
	}

	for _, tc := range tt {
		assert.Equal(t, tc.expected, PercentChange(tc.current, tc.previous), "%d vs %d", tc.current, tc.previous)
	}
}
