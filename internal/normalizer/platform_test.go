package normalizer

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Decentr-net/argus/internal/entities"
)

func TestContentType(t *testing.T) {
	tt := map[string]entities.ContentType{
		"photo":      entities.ImageContentType,
		"  FOTO ":    entities.ImageContentType,
		"image":      entities.ImageContentType,
		"vídeo":      entities.VideoContentType,
		"CAROUSEL":   entities.SidecarContentType,
		"sidecar":    entities.SidecarContentType,
		"text":       entities.TextContentType,
		"Enlace":     entities.LinkContentType,
		"shared":     entities.SharedContentType,
		"compartida": entities.SharedContentType,
		"reel":       entities.ReelContentType,
		"Story":      entities.StoryContentType,
		"":           entities.OtherContentType,
		"   ":        entities.OtherContentType,
		"encuesta":   "Encuesta",
		"LIVE video": "Live Video",
	}

	for raw, expected := range tt {
		assert.Equal(t, expected, ContentType(raw), raw)
	}
}

func TestCanonicalPlatform(t *testing.T) {
	tt := map[string]string{
		"":             Facebook,
		"fb":           Facebook,
		" Facebook ":   Facebook,
		"facebook.com": Facebook,
		"IG":           Instagram,
		"Instagram":    Instagram,
		"tt":           TikTok,
		"TikTok":       TikTok,
		"youtube":      "youtube",
	}

	for raw, expected := range tt {
		assert.Equal(t, expected, CanonicalPlatform(raw), raw)
	}
}

func TestPlatformLabel(t *testing.T) {
	tt := map[string]string{
		"instagram": "Instagram",
		"IG":        "Instagram",
		"tiktok":    "TikTok",
		"TT":        "TikTok",
		"Facebook":  "Facebook",
		"fb":        "Facebook",
		"":          UnknownPlatformLabel,
		"youtube":   UnknownPlatformLabel,
	}

	for raw, expected := range tt {
		assert.Equal(t, expected, PlatformLabel(raw), raw)
	}
}

func TestIDGenerator(t *testing.T) {
	g := NewIDGenerator()

	assert.EqualValues(t, -1, g.ID())
	assert.EqualValues(t, -2, g.ID())

	a, b := g.ExternalID(), g.ExternalID()
	assert.NotEqual(t, a, b)
	assert.Regexp(t, `^[0-9a-f]{32}$`, a)
}
