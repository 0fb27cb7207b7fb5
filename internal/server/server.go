// Package server Argus
//
// The Argus is a social-media monitoring service which provides access to collected posts,
// mentions and engagement statistics of an organization.
//
//     Schemes: https
//     BasePath: /v1
//     Version: 1.0.0
//
//     Produces:
//     - application/json
//     Consumes:
//     - application/json
//
// swagger:meta
package server

import (
	"time"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/cors"

	mm "github.com/Decentr-net/argus/internal/middleware"
	"github.com/Decentr-net/argus/internal/service"
)

//go:generate swagger generate spec -t swagger -m -c . -o ../../static/swagger.json

const maxBodySize = 1024

// Config ...
type Config struct {
	// Timeout bounds request processing.
	Timeout time.Duration
	// Cache keeps overview responses for CacheTTL.
	Cache    mm.Storage
	CacheTTL time.Duration
	// Location is used for calendar windows.
	Location *time.Location
}

type server struct {
	s   service.Service
	loc *time.Location
	now func() time.Time
}

// SetupRouter setups handlers to chi router.
func SetupRouter(s service.Service, r chi.Router, c Config) {
	r.Use(
		middleware.RequestID,
		mm.Logger,
		mm.Metrics,
		middleware.StripSlashes,
		cors.AllowAll().Handler,
		middleware.Recoverer,
		middleware.Timeout(c.Timeout),
		mm.BodyLimiter(maxBodySize),
	)

	loc := c.Location
	if loc == nil {
		loc = time.UTC
	}

	srv := server{
		s:   s,
		loc: loc,
		now: time.Now,
	}

	overview := srv.getOverview
	if c.Cache != nil {
		overview = mm.Cached(c.Cache, c.CacheTTL, overview)
	}

	r.Route("/v1", func(r chi.Router) {
		r.Get("/posts", srv.listPosts)
		r.Get("/posts/{id}", srv.getPostTracking)
		r.Patch("/posts/{id}/tracking", srv.setTracking)
		r.Get("/overview", overview)
		r.Get("/mentions", srv.listMentions)
		r.Get("/keywords", srv.listKeywords)
		r.Post("/keywords", srv.createKeyword)
		r.Get("/keywords/{id}", srv.getKeyword)
		r.Patch("/keywords/{id}", srv.updateKeyword)
		r.Delete("/keywords/{id}", srv.toggleKeyword)
		r.Post("/scrape", srv.scrape)
	})
}
