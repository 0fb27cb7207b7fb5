// Package entities contains main entities of service.
package entities

import (
	"math"
	"time"
)

// MaxCounter is the ceiling of a normalized counter. Floats represent every integer up to it.
const MaxCounter int64 = 1 << 53

// RawRecord is a post or mention as it is delivered by the data store.
// Field names and value types are not stable across sources.
type RawRecord map[string]interface{}

// ContentType ...
type ContentType string

// Known content types.
const (
	ImageContentType     ContentType = "Imagen"
	VideoContentType     ContentType = "Video"
	SidecarContentType   ContentType = "Sidecar"
	TextContentType      ContentType = "Texto"
	LinkContentType      ContentType = "Enlace"
	SharedContentType    ContentType = "Compartida"
	ReelContentType      ContentType = "Reel"
	StoryContentType     ContentType = "Story"
	OtherContentType     ContentType = "Otro"
	ErrorContentType     ContentType = "error"
	UndefinedContentType ContentType = ""
)

// Post is a canonical social-media post.
type Post struct {
	ID          int64
	ExternalID  string
	Platform    string
	Profile     string
	Text        string
	Likes       int64
	Comments    int64
	Shares      int64
	Views       int64
	PublishedAt time.Time
	ContentType ContentType
	HasImage    bool
	ImageURL    string
	Permalink   string
	Tracked     bool

	// Degraded is set when PublishedAt could not be resolved from the record.
	Degraded bool
}

// Engagement returns likes + comments + shares. Views are reach, not engagement.
func (p Post) Engagement() int64 {
	return AddCounters(p.Likes, p.Comments, p.Shares)
}

// AddCounters sums non-negative counters, saturating at math.MaxInt64.
func AddCounters(vv ...int64) int64 {
	var sum int64
	for _, v := range vv {
		if v > math.MaxInt64-sum {
			return math.MaxInt64
		}
		sum += v
	}
	return sum
}

// Mention ...
type Mention struct {
	ID             int64
	SourceName     string
	SourceURL      string
	Platform       string
	Content        string
	MentionURL     string
	Image          string
	ReasonSpecific string
	MainComment    string
	PublishedAt    time.Time
	CollectedAt    time.Time

	Degraded bool
}

// PostMetric is a point-in-time sample of post counters.
type PostMetric struct {
	ID             int64
	PostID         int64
	Likes          int64
	Comments       int64
	Shares         int64
	Views          int64
	Interactions   int64
	EngagementRate float64
	CollectedAt    time.Time
}

// Keyword is a monitored search term.
type Keyword struct {
	ID        int64
	Word      string
	Active    bool
	CreatedAt time.Time
	UpdatedAt time.Time
}
