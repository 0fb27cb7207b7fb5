package filter

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/Decentr-net/argus/internal/entities"
)

func ids(posts []*entities.Post) []int64 {
	out := make([]int64, len(posts))
	for i, v := range posts {
		out[i] = v.ID
	}
	return out
}

func boolPtr(b bool) *bool { return &b }

func timePtr(t time.Time) *time.Time { return &t }

func TestApply_Conjunction(t *testing.T) {
	posts := []*entities.Post{
		{ID: 1, Text: "hola", Platform: "facebook", Tracked: true},
		{ID: 2, Text: "hola", Platform: "instagram", Tracked: false},
	}

	out := Apply(posts, Criteria{Platform: "facebook", Tracked: boolPtr(true)})

	assert.Equal(t, []int64{1}, ids(out))
}

func TestApply(t *testing.T) {
	day := func(d int) time.Time { return time.Date(2024, 3, d, 12, 0, 0, 0, time.UTC) }

	posts := []*entities.Post{
		{ID: 1, Text: "Feria del Libro", Profile: "Biblioteca", Platform: "Facebook", ContentType: entities.ImageContentType, Tracked: true, PublishedAt: day(1)},
		{ID: 2, Text: "Concierto", Profile: "Cultura", Platform: "ig", ContentType: entities.VideoContentType, Tracked: true, PublishedAt: day(2)},
		{ID: 3, Text: "Otra feria", Profile: "Cultura", Platform: "", ContentType: entities.ImageContentType, Tracked: false, PublishedAt: day(3)},
		{ID: 4, Text: "Anuncio", ExternalID: "FERIA-42", Platform: "tiktok", ContentType: entities.ReelContentType, Tracked: true, PublishedAt: day(4)},
	}

	tt := []struct {
		name     string
		c        Criteria
		expected []int64
	}{
		{
			name:     "no criteria",
			expected: []int64{4, 3, 2, 1},
		},
		{
			name:     "query is case insensitive and looks at external id",
			c:        Criteria{Query: " FERIA "},
			expected: []int64{4, 3, 1},
		},
		{
			name:     "query by profile",
			c:        Criteria{Query: "cultura"},
			expected: []int64{3, 2},
		},
		{
			name:     "canonical platform",
			c:        Criteria{Platform: "FB"},
			expected: []int64{3, 1},
		},
		{
			name:     "instagram",
			c:        Criteria{Platform: "instagram"},
			expected: []int64{2},
		},
		{
			name:     "content type",
			c:        Criteria{ContentType: entities.ImageContentType},
			expected: []int64{3, 1},
		},
		{
			name:     "untracked",
			c:        Criteria{Tracked: boolPtr(false)},
			expected: []int64{3},
		},
		{
			name:     "inclusive range",
			c:        Criteria{From: timePtr(day(2)), To: timePtr(day(3))},
			expected: []int64{3, 2},
		},
		{
			name:     "date asc",
			c:        Criteria{SortBy: DateSortType, Order: AscendingOrder},
			expected: []int64{1, 2, 3, 4},
		},
		{
			name:     "nothing",
			c:        Criteria{Query: "nothing"},
			expected: []int64{},
		},
	}

	for i := range tt {
		tc := tt[i]
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, ids(Apply(posts, tc.c)))
		})
	}
}

func TestApply_Stability(t *testing.T) {
	posts := []*entities.Post{
		{ID: 1, Likes: 5},
		{ID: 2, Likes: 10},
		{ID: 3, Likes: 5},
		{ID: 4, Likes: 10},
		nil,
	}

	assert.Equal(t, []int64{2, 4, 1, 3}, ids(Apply(posts, Criteria{SortBy: LikesSortType, Order: DescendingOrder})))
	assert.Equal(t, []int64{1, 3, 2, 4}, ids(Apply(posts, Criteria{SortBy: LikesSortType, Order: AscendingOrder})))
}

func TestApply_DoesNotModifyInput(t *testing.T) {
	posts := []*entities.Post{{ID: 1, Views: 1}, {ID: 2, Views: 2}}

	_ = Apply(posts, Criteria{SortBy: ViewsSortType})

	assert.Equal(t, []int64{1, 2}, ids(posts))
}

func TestIsValid(t *testing.T) {
	assert.True(t, IsValidSortType(SharesSortType))
	assert.False(t, IsValidSortType("updv"))
	assert.True(t, IsValidOrderType(AscendingOrder))
	assert.False(t, IsValidOrderType(""))
}
