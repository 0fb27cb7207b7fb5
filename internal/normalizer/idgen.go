package normalizer

import (
	"strings"
	"sync/atomic"

	"github.com/google/uuid"
)

// IDGenerator synthesizes identifiers for records which come without them.
type IDGenerator interface {
	// ID returns an identifier which never collides with a stored one.
	ID() int64
	// ExternalID returns an alphanumeric token.
	ExternalID() string
}

type generator struct {
	last int64
}

// NewIDGenerator returns generator which hands out negative ids, stored ids are always positive.
func NewIDGenerator() IDGenerator {
	return &generator{}
}

func (g *generator) ID() int64 {
	return atomic.AddInt64(&g.last, -1)
}

func (g *generator) ExternalID() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")
}
