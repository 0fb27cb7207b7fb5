package normalizer

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Decentr-net/argus/internal/entities"
)

type sequence struct {
	id  int64
	ext int
}

func (s *sequence) ID() int64 {
	s.id--
	return s.id
}

func (s *sequence) ExternalID() string {
	s.ext++
	return fmt.Sprintf("ext%d", s.ext)
}

var now = time.Date(2025, 10, 15, 12, 0, 0, 0, time.UTC)

func newTestNormalizer() *Normalizer {
	n := New(&sequence{})
	n.now = func() time.Time { return now }

	return n
}

func TestNormalizer_Post(t *testing.T) {
	n := newTestNormalizer()

	p := n.Post(entities.RawRecord{
		"id":              int64(42),
		"id_publicacion":  "1234567890",
		"plataforma":      "Facebook",
		"texto":           "hola",
		"fecha":           time.Date(2025, 10, 1, 9, 30, 0, 0, time.UTC),
		"me_gusta":        int64(10),
		"comentarios":     "3",
		"compartidos":     2.0,
		"vistas":          nil,
		"tipoContenido":   "photo",
		"url_imagen":      "https://cdn.example.com/1.jpg",
		"url_publicacion": "https://facebook.com/posts/1234567890",
		"seguimiento":     false,
	})

	assert.Equal(t, entities.Post{
		ID:          42,
		ExternalID:  "1234567890",
		Platform:    "Facebook",
		Text:        "hola",
		Likes:       10,
		Comments:    3,
		Shares:      2,
		Views:       0,
		PublishedAt: time.Date(2025, 10, 1, 9, 30, 0, 0, time.UTC),
		ContentType: entities.ImageContentType,
		HasImage:    true,
		ImageURL:    "https://cdn.example.com/1.jpg",
		Permalink:   "https://facebook.com/posts/1234567890",
		Tracked:     false,
	}, p)
}

func TestNormalizer_Post_LegacyShape(t *testing.T) {
	n := newTestNormalizer()

	p := n.Post(entities.RawRecord{
		"redsocial":        "instagram",
		"perfil":           "cre.bolivia",
		"text":             "legacy",
		"fechapublicacion": "2025-09-30T18:00:00Z",
		"likes":            []byte("7"),
		"comments":         int32(1),
		"shares":           uint64(4),
		"views":            "1500",
	})

	require.False(t, p.Degraded)
	assert.Equal(t, time.Date(2025, 9, 30, 18, 0, 0, 0, time.UTC), p.PublishedAt)
	assert.Equal(t, "instagram", p.Platform)
	assert.Equal(t, "cre.bolivia", p.Profile)
	assert.EqualValues(t, 7, p.Likes)
	assert.EqualValues(t, 1, p.Comments)
	assert.EqualValues(t, 4, p.Shares)
	assert.EqualValues(t, 1500, p.Views)
	assert.True(t, p.Tracked)

	// no id and no external id: both are synthesized
	assert.EqualValues(t, -1, p.ID)
	assert.Equal(t, "ext1", p.ExternalID)
	assert.Equal(t, "https://www.facebook.com/ext1", p.Permalink)

	// no content type and no image
	assert.Equal(t, entities.TextContentType, p.ContentType)
	assert.False(t, p.HasImage)
}

func TestNormalizer_Post_Date(t *testing.T) {
	tt := []struct {
		name     string
		raw      entities.RawRecord
		expected time.Time
		degraded bool
	}{
		{
			name:     "fecha wins",
			raw:      entities.RawRecord{"fecha": "2025-10-02", "created_at": "2025-10-03"},
			expected: time.Date(2025, 10, 2, 0, 0, 0, 0, time.UTC),
		},
		{
			name:     "invalid fecha falls to created_at",
			raw:      entities.RawRecord{"fecha": "ayer", "created_at": "2025-10-03 10:00:00"},
			expected: time.Date(2025, 10, 3, 10, 0, 0, 0, time.UTC),
		},
		{
			name:     "unix seconds",
			raw:      entities.RawRecord{"fecha": int64(1759312800)},
			expected: time.Unix(1759312800, 0),
		},
		{
			name:     "unix millis",
			raw:      entities.RawRecord{"fecha": float64(1759312800000)},
			expected: time.Unix(1759312800, 0),
		},
		{
			name:     "nothing parses",
			raw:      entities.RawRecord{"fecha": "", "fechapublicacion": "n/a"},
			expected: now,
			degraded: true,
		},
		{
			name:     "absent",
			raw:      entities.RawRecord{"texto": "x"},
			expected: now,
			degraded: true,
		},
	}

	for i := range tt {
		tc := tt[i]

		t.Run(tc.name, func(t *testing.T) {
			p := newTestNormalizer().Post(tc.raw)

			assert.True(t, tc.expected.Equal(p.PublishedAt), "expected %s got %s", tc.expected, p.PublishedAt)
			assert.Equal(t, tc.degraded, p.Degraded)
		})
	}
}

func TestNormalizer_Post_Image(t *testing.T) {
	tt := []struct {
		name     string
		raw      entities.RawRecord
		hasImage bool
		image    string
		content  entities.ContentType
	}{
		{
			name:     "flag",
			raw:      entities.RawRecord{"tiene_imagen": true},
			hasImage: true,
			content:  entities.ImageContentType,
		},
		{
			name:     "flag as string",
			raw:      entities.RawRecord{"tiene_imagen": "false"},
			hasImage: false,
			content:  entities.TextContentType,
		},
		{
			name:     "url_image",
			raw:      entities.RawRecord{"url_image": "https://img/1.png"},
			hasImage: true,
			image:    "https://img/1.png",
			content:  entities.ImageContentType,
		},
		{
			name:     "base64",
			raw:      entities.RawRecord{"image_base64": "iVBORw0KGgo="},
			hasImage: true,
			image:    "data:image/jpeg;base64,iVBORw0KGgo=",
			content:  entities.ImageContentType,
		},
		{
			name:     "blank image",
			raw:      entities.RawRecord{"image": "  "},
			hasImage: false,
			content:  entities.TextContentType,
		},
		{
			name:     "explicit type beats inference",
			raw:      entities.RawRecord{"image": "https://img/1.png", "tipo_contenido": "Video"},
			hasImage: true,
			image:    "https://img/1.png",
			content:  entities.VideoContentType,
		},
	}

	for i := range tt {
		tc := tt[i]

		t.Run(tc.name, func(t *testing.T) {
			p := newTestNormalizer().Post(tc.raw)

			assert.Equal(t, tc.hasImage, p.HasImage)
			assert.Equal(t, tc.image, p.ImageURL)
			assert.Equal(t, tc.content, p.ContentType)
		})
	}
}

func TestNormalizer_Post_Fallback(t *testing.T) {
	n := newTestNormalizer()

	p := n.Post(nil)

	assert.Equal(t, FallbackPostText, p.Text)
	assert.Equal(t, entities.ErrorContentType, p.ContentType)
	assert.Equal(t, now, p.PublishedAt)
	assert.Zero(t, p.Likes+p.Comments+p.Shares+p.Views)
	assert.EqualValues(t, -1, p.ID)
	assert.Equal(t, "ext1", p.ExternalID)
}

// flaky panics on the first call only.
type flaky struct {
	sequence
	calls int
}

func (f *flaky) ID() int64 {
	f.calls++
	if f.calls == 1 {
		panic("broken generator")
	}

	return f.sequence.ID()
}

func TestNormalizer_Post_Recovers(t *testing.T) {
	n := New(&flaky{})
	n.now = func() time.Time { return now }

	var p entities.Post
	require.NotPanics(t, func() {
		p = n.Post(entities.RawRecord{"texto": "x", "fecha": "2025-10-01"})
	})

	assert.Equal(t, entities.ErrorContentType, p.ContentType)
	assert.Equal(t, FallbackPostText, p.Text)
	assert.Equal(t, now, p.PublishedAt)
}

func TestNormalizer_Post_NonNegative(t *testing.T) {
	values := []interface{}{
		int64(-5), -3.2, "-10", "abc", "NaN", "Inf", nil, true, []int{1}, map[string]int{}, "12.9", 1e30,
	}

	n := newTestNormalizer()
	for _, v := range values {
		p := n.Post(entities.RawRecord{
			"me_gusta":    v,
			"comentarios": v,
			"compartidos": v,
			"vistas":      v,
		})

		assert.GreaterOrEqual(t, p.Likes, int64(0), "%v", v)
		assert.GreaterOrEqual(t, p.Comments, int64(0), "%v", v)
		assert.GreaterOrEqual(t, p.Shares, int64(0), "%v", v)
		assert.GreaterOrEqual(t, p.Views, int64(0), "%v", v)
	}

	p := n.Post(entities.RawRecord{"likes": "12.9"})
	assert.EqualValues(t, 12, p.Likes)
}

func TestNormalizer_Post_HugeCounters(t *testing.T) {
	n := newTestNormalizer()

	for _, v := range []interface{}{"1e30", 1e30, uint64(1) << 63, int64(1) << 60} {
		p := n.Post(entities.RawRecord{
			"me_gusta":    v,
			"comentarios": 1,
			"vistas":      v,
		})

		assert.Equal(t, entities.MaxCounter, p.Likes, "%v", v)
		assert.Equal(t, entities.MaxCounter, p.Views, "%v", v)
		assert.Equal(t, entities.MaxCounter+1, p.Engagement(), "%v", v)
	}
}

func TestNormalizer_Post_Idempotent(t *testing.T) {
	n := newTestNormalizer()

	raws := []entities.RawRecord{
		{"plataforma": "TikTok", "me_gusta": 5, "comentarios": 1, "compartidos": 0, "vistas": 99, "tipoContenido": "CAROUSEL"},
		{"redsocial": "fb", "likes": "8", "tipo_contenido": "carrusel de fotos"},
		{"plataforma": "", "tiene_imagen": 1},
		{"plataforma": "Instagram", "content_type": ""},
	}

	for _, raw := range raws {
		first := n.Post(raw)
		second := n.Post(entities.RawRecord{
			"id":             first.ID,
			"id_publicacion": first.ExternalID,
			"plataforma":     first.Platform,
			"me_gusta":       first.Likes,
			"comentarios":    first.Comments,
			"compartidos":    first.Shares,
			"vistas":         first.Views,
			"tipoContenido":  string(first.ContentType),
			"fecha":          first.PublishedAt,
		})

		assert.Equal(t, first.Likes, second.Likes)
		assert.Equal(t, first.Comments, second.Comments)
		assert.Equal(t, first.Shares, second.Shares)
		assert.Equal(t, first.Views, second.Views)
		assert.Equal(t, first.ContentType, second.ContentType)
		assert.Equal(t, first.Platform, second.Platform)
		assert.Equal(t, first.ExternalID, second.ExternalID)
	}
}

func TestNormalizer_Posts(t *testing.T) {
	n := newTestNormalizer()

	p := n.Posts([]entities.RawRecord{{"id": 1}, nil, {"id": "3"}})
	require.Len(t, p, 3)
	assert.EqualValues(t, 1, p[0].ID)
	assert.Equal(t, entities.ErrorContentType, p[1].ContentType)
	assert.EqualValues(t, 3, p[2].ID)
}

func TestNormalizer_Mention(t *testing.T) {
	n := newTestNormalizer()

	m := n.Mention(entities.RawRecord{
		"id":                   int64(7),
		"source_name":          "El Deber",
		"source_url":           "https://eldeber.com.bo",
		"image_base64":         "  aGVsbG8=\n",
		"platform":             "Facebook",
		"content":              "corte de luz",
		"mention_url":          "https://facebook.com/eldeber/1",
		"razon_especifica":     "queja",
		"comentario_principal": "sin luz desde ayer",
		"published_at":         "2025-10-10T08:00:00Z",
		"collected_at":         "2025-10-10T09:00:00Z",
	})

	assert.Equal(t, entities.Mention{
		ID:             7,
		SourceName:     "El Deber",
		SourceURL:      "https://eldeber.com.bo",
		Platform:       "Facebook",
		Content:        "corte de luz",
		MentionURL:     "https://facebook.com/eldeber/1",
		Image:          "data:image/jpeg;base64,aGVsbG8=",
		ReasonSpecific: "queja",
		MainComment:    "sin luz desde ayer",
		PublishedAt:    time.Date(2025, 10, 10, 8, 0, 0, 0, time.UTC),
		CollectedAt:    time.Date(2025, 10, 10, 9, 0, 0, 0, time.UTC),
	}, m)
}

func TestNormalizer_Mention_Date(t *testing.T) {
	n := newTestNormalizer()

	m := n.Mention(entities.RawRecord{"collectedAt": "2025-10-10"})
	assert.False(t, m.Degraded)
	assert.Equal(t, time.Date(2025, 10, 10, 0, 0, 0, 0, time.UTC), m.PublishedAt)

	m = n.Mention(entities.RawRecord{"publishedAt": "garbage"})
	assert.True(t, m.Degraded)
	assert.Equal(t, now, m.PublishedAt)

	m = n.Mention(entities.RawRecord{"image": "not an image!"})
	assert.Empty(t, m.Image)

	m = n.Mention(nil)
	assert.Equal(t, FallbackMentionText, m.Content)
	assert.True(t, m.Degraded)
}
