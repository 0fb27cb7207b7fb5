package server

import (
	"encoding/json"
	"time"

	"github.com/Decentr-net/argus/internal/aggregator"
	"github.com/Decentr-net/argus/internal/entities"
	"github.com/Decentr-net/argus/internal/normalizer"
)

const maxLimit = 1000
const defaultLimit = 50

// Error ...
// swagger:model
type Error struct {
	Error string `json:"error"`
	// Details is a hint for the operator.
	Details string `json:"details,omitempty"`
}

// Post ...
// swagger:model
type Post struct {
	ID         int64  `json:"id"`
	ExternalID string `json:"external_id"`
	// Platform is kept as stored.
	Platform string `json:"platform"`
	// PlatformLabel is a human readable platform name.
	PlatformLabel string               `json:"platform_label"`
	Profile       string               `json:"profile"`
	Text          string               `json:"text"`
	Likes         int64                `json:"likes"`
	Comments      int64                `json:"comments"`
	Shares        int64                `json:"shares"`
	Views         int64                `json:"views"`
	Engagement    int64                `json:"engagement"`
	PublishedAt   time.Time            `json:"published_at"`
	ContentType   entities.ContentType `json:"content_type"`
	HasImage      bool                 `json:"has_image"`
	ImageURL      string               `json:"image_url,omitempty"`
	Permalink     string               `json:"permalink"`
	Tracked       bool                 `json:"tracked"`
	// Degraded is true when the record was partially recovered.
	Degraded bool `json:"degraded"`
}

// ListPostsResponse ...
// swagger:model
type ListPostsResponse struct {
	Posts []Post `json:"posts"`
}

// TrackingPoint ...
type TrackingPoint struct {
	Date           time.Time `json:"date"`
	Likes          int64     `json:"likes"`
	Comments       int64     `json:"comments"`
	Shares         int64     `json:"shares"`
	Views          int64     `json:"views"`
	Interactions   int64     `json:"interactions"`
	EngagementRate float64   `json:"engagement_rate"`
	Initial        bool      `json:"initial"`
}

// Diff is a difference between the latest and the initial tracking point.
type Diff struct {
	Likes    int64 `json:"likes"`
	Comments int64 `json:"comments"`
	Shares   int64 `json:"shares"`
	Views    int64 `json:"views"`
}

// Performance scores are in [0, 100].
type Performance struct {
	Reach        float64 `json:"reach"`
	Engagement   float64 `json:"engagement"`
	Virality     float64 `json:"virality"`
	Conversation float64 `json:"conversation"`
}

// TrackingResponse ...
// swagger:model
type TrackingResponse struct {
	Post           Post            `json:"post"`
	Tracking       []TrackingPoint `json:"tracking"`
	Diff           Diff            `json:"diff"`
	EngagementRate float64         `json:"engagement_rate"`
	Performance    Performance     `json:"performance"`
	// TotalMetrics is a count of stored samples, the initial point excluded.
	TotalMetrics int `json:"total_metrics"`
}

// SetTrackingRequest ...
// swagger:model
type SetTrackingRequest struct {
	Tracked *bool `json:"tracked"`
}

// SetTrackingResponse ...
// swagger:model
type SetTrackingResponse struct {
	ID      int64 `json:"id"`
	Tracked bool  `json:"tracked"`
}

// Window ...
type Window struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// Totals ...
type Totals struct {
	PostCount       int64 `json:"post_count"`
	TotalReach      int64 `json:"total_reach"`
	TotalEngagement int64 `json:"total_engagement"`
	AvgEngagement   int64 `json:"avg_engagement"`
}

// Changes are percents of growth against the previous window.
type Changes struct {
	PostCount       float64 `json:"post_count"`
	TotalReach      float64 `json:"total_reach"`
	TotalEngagement float64 `json:"total_engagement"`
	AvgEngagement   float64 `json:"avg_engagement"`
}

// ContentTypeStats ...
type ContentTypeStats struct {
	ContentType entities.ContentType `json:"content_type"`
	PostCount   int64                `json:"post_count"`
	AvgLikes    float64              `json:"avg_likes"`
	AvgComments float64              `json:"avg_comments"`
	AvgShares   float64              `json:"avg_shares"`
	AvgViews    int64                `json:"avg_views"`
}

// DailyPoint ...
type DailyPoint struct {
	Date       string `json:"date"`
	PostCount  int64  `json:"post_count"`
	Likes      int64  `json:"likes"`
	Comments   int64  `json:"comments"`
	Shares     int64  `json:"shares"`
	Engagement int64  `json:"engagement"`
}

// OverviewResponse ...
// swagger:model
type OverviewResponse struct {
	Range          aggregator.Range   `json:"range"`
	Window         Window             `json:"window"`
	PreviousWindow Window             `json:"previous_window"`
	Current        Totals             `json:"current"`
	Previous       Totals             `json:"previous"`
	Changes        Changes            `json:"changes"`
	ByContentType  []ContentTypeStats `json:"by_content_type"`
	TopPost        *Post              `json:"top_post"`
	Daily          []DailyPoint       `json:"daily"`
}

// Mention ...
// swagger:model
type Mention struct {
	ID             int64     `json:"id"`
	SourceName     string    `json:"source_name"`
	SourceURL      string    `json:"source_url"`
	Platform       string    `json:"platform"`
	Content        string    `json:"content"`
	MentionURL     string    `json:"mention_url"`
	Image          string    `json:"image,omitempty"`
	ReasonSpecific string    `json:"reason_specific,omitempty"`
	MainComment    string    `json:"main_comment,omitempty"`
	PublishedAt    time.Time `json:"published_at"`
	CollectedAt    time.Time `json:"collected_at"`
	Degraded       bool      `json:"degraded"`
}

// ListMentionsResponse ...
// swagger:model
type ListMentionsResponse struct {
	Mentions []Mention `json:"mentions"`
}

// Keyword ...
// swagger:model
type Keyword struct {
	ID        int64     `json:"id"`
	Word      string    `json:"word"`
	Active    bool      `json:"active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// CreateKeywordRequest ...
// swagger:model
type CreateKeywordRequest struct {
	Word string `json:"word"`
	// Active defaults to true.
	Active *bool `json:"active"`
}

// UpdateKeywordRequest ...
// swagger:model
type UpdateKeywordRequest struct {
	Word   *string `json:"word"`
	Active *bool   `json:"active"`
}

// ToggleKeywordResponse ...
// swagger:model
type ToggleKeywordResponse struct {
	Success bool `json:"success"`
	Active  bool `json:"active"`
}

// ScrapeResponse is the collector's acknowledgement passed through as is.
// swagger:model
type ScrapeResponse json.RawMessage

func toPost(p *entities.Post) Post {
	return Post{
		ID:            p.ID,
		ExternalID:    p.ExternalID,
		Platform:      p.Platform,
		PlatformLabel: normalizer.PlatformLabel(p.Platform),
		Profile:       p.Profile,
		Text:          p.Text,
		Likes:         p.Likes,
		Comments:      p.Comments,
		Shares:        p.Shares,
		Views:         p.Views,
		Engagement:    p.Engagement(),
		PublishedAt:   p.PublishedAt,
		ContentType:   p.ContentType,
		HasImage:      p.HasImage,
		ImageURL:      p.ImageURL,
		Permalink:     p.Permalink,
		Tracked:       p.Tracked,
		Degraded:      p.Degraded,
	}
}

func toPosts(pp []*entities.Post) []Post {
	out := make([]Post, len(pp))
	for i, v := range pp {
		out[i] = toPost(v)
	}
	return out
}

func toTrackingResponse(t *aggregator.Tracking) TrackingResponse {
	points := make([]TrackingPoint, len(t.Points))
	for i, v := range t.Points {
		points[i] = TrackingPoint(v)
	}

	return TrackingResponse{
		Post:           toPost(&t.Post),
		Tracking:       points,
		Diff:           Diff(t.Diff),
		EngagementRate: t.EngagementRate,
		Performance:    Performance(t.Performance),
		TotalMetrics:   len(t.Points) - 1,
	}
}

func toOverviewResponse(r aggregator.Range, s *aggregator.Snapshot) OverviewResponse {
	resp := OverviewResponse{
		Range:          r,
		Window:         Window(s.Window),
		PreviousWindow: Window(s.Previous),
		Current:        Totals(s.Current),
		Previous:       Totals(s.PreviousTotal),
		Changes:        Changes(s.Changes),
		ByContentType:  make([]ContentTypeStats, len(s.ByContentType)),
		Daily:          make([]DailyPoint, len(s.Daily)),
	}

	for i, v := range s.ByContentType {
		resp.ByContentType[i] = ContentTypeStats(v)
	}

	for i, v := range s.Daily {
		resp.Daily[i] = DailyPoint{
			Date:       v.Date.Format(dateLayout),
			PostCount:  v.PostCount,
			Likes:      v.Likes,
			Comments:   v.Comments,
			Shares:     v.Shares,
			Engagement: v.Engagement,
		}
	}

	if s.TopPost != nil {
		p := toPost(s.TopPost)
		resp.TopPost = &p
	}

	return resp
}

func toMentions(mm []*entities.Mention) []Mention {
	out := make([]Mention, len(mm))
	for i, v := range mm {
		out[i] = Mention{
			ID:             v.ID,
			SourceName:     v.SourceName,
			SourceURL:      v.SourceURL,
			Platform:       v.Platform,
			Content:        v.Content,
			MentionURL:     v.MentionURL,
			Image:          v.Image,
			ReasonSpecific: v.ReasonSpecific,
			MainComment:    v.MainComment,
			PublishedAt:    v.PublishedAt,
			CollectedAt:    v.CollectedAt,
			Degraded:       v.Degraded,
		}
	}
	return out
}

func toKeyword(k *entities.Keyword) Keyword {
	return Keyword{
		ID:        k.ID,
		Word:      k.Word,
		Active:    k.Active,
		CreatedAt: k.CreatedAt,
		UpdatedAt: k.UpdatedAt,
	}
}

func toKeywords(kk []*entities.Keyword) []Keyword {
	out := make([]Keyword, len(kk))
	for i, v := range kk {
		out[i] = toKeyword(v)
	}
	return out
}
