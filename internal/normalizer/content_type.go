package normalizer

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/Decentr-net/argus/internal/entities"
)

// nolint:gochecknoglobals
var contentTypeSynonyms = map[string]entities.ContentType{
	"image":      entities.ImageContentType,
	"imagen":     entities.ImageContentType,
	"photo":      entities.ImageContentType,
	"foto":       entities.ImageContentType,
	"video":      entities.VideoContentType,
	"vídeo":      entities.VideoContentType,
	"sidecar":    entities.SidecarContentType,
	"carousel":   entities.SidecarContentType,
	"carrusel":   entities.SidecarContentType,
	"text":       entities.TextContentType,
	"texto":      entities.TextContentType,
	"link":       entities.LinkContentType,
	"enlace":     entities.LinkContentType,
	"shared":     entities.SharedContentType,
	"compartida": entities.SharedContentType,
	"reel":       entities.ReelContentType,
	"reels":      entities.ReelContentType,
	"story":      entities.StoryContentType,
	"stories":    entities.StoryContentType,
	"otro":       entities.OtherContentType,
	"other":      entities.OtherContentType,
}

// ContentType maps a raw content type onto the canonical vocabulary.
// Unknown values are title-cased and passed through, blank values become Otro.
func ContentType(raw string) entities.ContentType {
	s := strings.ToLower(strings.TrimSpace(raw))
	if s == "" {
		return entities.OtherContentType
	}

	if ct, ok := contentTypeSynonyms[s]; ok {
		return ct
	}

	// Caser keeps state between calls, so it is not shared.
	return entities.ContentType(cases.Title(language.Spanish).String(s))
}
