// Package normalizer turns raw post and mention records into canonical entities.
//
// Records come from a data store whose schema drifted over time, so every field is probed
// under several names and cast tolerantly. Normalization never fails: a record which can't be
// read yields a fallback entity marked with the error content type.
package normalizer

import (
	"errors"
	"fmt"
	"time"

	"github.com/davecgh/go-spew/spew"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/sirupsen/logrus"

	"github.com/Decentr-net/argus/internal/entities"
)

// Placeholder texts of fallback records.
const (
	FallbackPostText    = "Error al cargar esta publicación"
	FallbackMentionText = "Error al cargar esta mención"
)

const permalinkBase = "https://www.facebook.com/"

// ErrMalformedRecord is logged when a record can't be normalized.
var ErrMalformedRecord = errors.New("malformed record")

var log = logrus.WithField("layer", "core").WithField("package", "normalizer")

// nolint:gochecknoglobals
var (
	fallbacksCounter = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "argus",
		Subsystem: "normalizer",
		Name:      "fallbacks_total",
		Help:      "Records replaced with a fallback because they could not be normalized.",
	}, []string{"entity"})

	degradedCounter = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "argus",
		Subsystem: "normalizer",
		Name:      "degraded_dates_total",
		Help:      "Records whose publish date could not be resolved.",
	}, []string{"entity"})
)

// nolint:gochecknoglobals
var (
	postDateFields     = []string{"fecha", "fechapublicacion", "created_at"}
	postImageFlags     = []string{"tiene_imagen"}
	postImageFields    = []string{"url_image", "image", "url_imagen", "image_base64"}
	postContentFields  = []string{"tipoContenido", "tipo_contenido", "content_type"}
	postLinkFields     = []string{"url_publicacion", "url", "permalink_url"}
	postExternalFields = []string{"id_publicacion", "external_id"}
	postPlatformFields = []string{"plataforma", "redsocial"}
	postTrackedFields  = []string{"seguimiento", "tracked"}

	mentionDateFields      = []string{"publishedAt", "published_at", "fecha", "created_at"}
	mentionCollectedFields = []string{"collectedAt", "collected_at"}
)

// Normalizer ...
type Normalizer struct {
	ids IDGenerator
	now func() time.Time
}

// New creates new instance of Normalizer.
func New(ids IDGenerator) *Normalizer {
	return &Normalizer{
		ids: ids,
		now: time.Now,
	}
}

// Posts normalizes every record.
func (n *Normalizer) Posts(raw []entities.RawRecord) []*entities.Post {
	out := make([]*entities.Post, len(raw))
	for i, v := range raw {
		p := n.Post(v)
		out[i] = &p
	}

	return out
}

// Post converts raw record into canonical post. It never panics.
func (n *Normalizer) Post(raw entities.RawRecord) (p entities.Post) {
	defer func() {
		if r := recover(); r != nil {
			p = n.fallbackPost(raw, fmt.Errorf("%w: %v", ErrMalformedRecord, r))
		}
	}()

	if raw == nil {
		return n.fallbackPost(raw, fmt.Errorf("%w: empty record", ErrMalformedRecord))
	}

	return n.post(raw)
}

func (n *Normalizer) post(raw entities.RawRecord) entities.Post {
	p := entities.Post{
		Platform: firstString(raw, postPlatformFields...),
		Profile:  firstString(raw, "perfil", "profile", "autor", "author"),
		Text:     firstString(raw, "texto", "text", "contenido"),
		Likes:    counter(raw, "me_gusta", "likes"),
		Comments: counter(raw, "comentarios", "comments"),
		Shares:   counter(raw, "compartidos", "shares"),
		Views:    counter(raw, "vistas", "views"),
		Tracked:  true,
	}

	if t, ok := firstTime(raw, postDateFields...); ok {
		p.PublishedAt = t
	} else {
		p.PublishedAt = n.now()
		p.Degraded = true
		degradedCounter.WithLabelValues("post").Inc()
		log.WithField("id", raw["id"]).Debug("post has no valid publish date")
	}

	for _, k := range postImageFlags {
		p.HasImage = p.HasImage || truthy(raw[k])
	}
	for _, k := range postImageFields {
		if s := firstString(raw, k); s != "" {
			p.HasImage = true
			if p.ImageURL == "" {
				p.ImageURL = imageURL(s)
			}
		}
	}

	if v, ok := lookup(raw, "id"); ok {
		p.ID = number(v)
	}
	if p.ID == 0 {
		p.ID = n.ids.ID()
	}

	p.ExternalID = firstString(raw, postExternalFields...)
	if p.ExternalID == "" {
		p.ExternalID = n.ids.ExternalID()
	}

	if v, ok := lookup(raw, postContentFields...); ok {
		s, _ := stringValue(v)
		p.ContentType = ContentType(s)
	} else if p.HasImage {
		p.ContentType = ContentType("imagen")
	} else {
		p.ContentType = ContentType("texto")
	}

	p.Permalink = firstString(raw, postLinkFields...)
	if p.Permalink == "" {
		p.Permalink = permalinkBase + p.ExternalID
	}

	if v, ok := lookup(raw, postTrackedFields...); ok {
		p.Tracked = truthy(v)
	}

	return p
}

func (n *Normalizer) fallbackPost(raw entities.RawRecord, err error) entities.Post {
	fallbacksCounter.WithLabelValues("post").Inc()
	log.WithError(err).WithField("raw", spew.Sdump(raw)).Error("failed to normalize post")

	return entities.Post{
		ID:          n.ids.ID(),
		ExternalID:  n.ids.ExternalID(),
		Text:        FallbackPostText,
		PublishedAt: n.now(),
		ContentType: entities.ErrorContentType,
		Tracked:     true,
		Degraded:    true,
	}
}

// Mentions normalizes every record.
func (n *Normalizer) Mentions(raw []entities.RawRecord) []*entities.Mention {
	out := make([]*entities.Mention, len(raw))
	for i, v := range raw {
		m := n.Mention(v)
		out[i] = &m
	}

	return out
}

// Mention converts raw record into canonical mention. It never panics.
func (n *Normalizer) Mention(raw entities.RawRecord) (m entities.Mention) {
	defer func() {
		if r := recover(); r != nil {
			m = n.fallbackMention(raw, fmt.Errorf("%w: %v", ErrMalformedRecord, r))
		}
	}()

	if raw == nil {
		return n.fallbackMention(raw, fmt.Errorf("%w: empty record", ErrMalformedRecord))
	}

	return n.mention(raw)
}

func (n *Normalizer) mention(raw entities.RawRecord) entities.Mention {
	m := entities.Mention{
		SourceName:     firstString(raw, "sourceName", "source_name"),
		SourceURL:      firstString(raw, "sourceUrl", "source_url"),
		Platform:       firstString(raw, "platform", "plataforma"),
		Content:        firstString(raw, "content", "contenido", "texto"),
		MentionURL:     firstString(raw, "mentionUrl", "mention_url", "url"),
		Image:          imageURL(firstString(raw, "image", "image_base64")),
		ReasonSpecific: firstString(raw, "razon_especifica", "reasonSpecific", "reason_specific"),
		MainComment:    firstString(raw, "comentario_principal", "mainComment", "main_comment"),
	}

	if v, ok := lookup(raw, "id"); ok {
		m.ID = number(v)
	}
	if m.ID == 0 {
		m.ID = n.ids.ID()
	}

	collected, hasCollected := firstTime(raw, mentionCollectedFields...)
	if hasCollected {
		m.CollectedAt = collected
	}

	switch t, ok := firstTime(raw, mentionDateFields...); {
	case ok:
		m.PublishedAt = t
	case hasCollected:
		m.PublishedAt = collected
	default:
		m.PublishedAt = n.now()
		m.Degraded = true
		degradedCounter.WithLabelValues("mention").Inc()
		log.WithField("id", raw["id"]).Debug("mention has no valid publish date")
	}

	return m
}

func (n *Normalizer) fallbackMention(raw entities.RawRecord, err error) entities.Mention {
	fallbacksCounter.WithLabelValues("mention").Inc()
	log.WithError(err).WithField("raw", spew.Sdump(raw)).Error("failed to normalize mention")

	return entities.Mention{
		ID:          n.ids.ID(),
		Content:     FallbackMentionText,
		PublishedAt: n.now(),
		Degraded:    true,
	}
}
