package server

import (
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/go-chi/chi"

	"github.com/Decentr-net/argus/internal/aggregator"
	"github.com/Decentr-net/argus/internal/collector"
	"github.com/Decentr-net/argus/internal/filter"
	"github.com/Decentr-net/argus/internal/normalizer"
	"github.com/Decentr-net/argus/internal/service"
)

const dateLayout = "2006-01-02"

var errInvalidRequest = errors.New("invalid request")

func (s server) listPosts(w http.ResponseWriter, r *http.Request) {
	// swagger:operation GET /posts Posts ListPosts
	//
	// Return normalized posts.
	//
	// ---
	// produces:
	// - application/json
	// parameters:
	// - name: q
	//   description: case-insensitive substring of text, profile or external id
	//   in: query
	//   required: false
	//   example: alcaldía
	// - name: platform
	//   description: filters posts by platform
	//   in: query
	//   required: false
	//   example: facebook
	// - name: contentType
	//   description: filters posts by canonical content type
	//   in: query
	//   required: false
	//   example: Video
	// - name: tracked
	//   description: filters posts by tracking flag
	//   in: query
	//   required: false
	//   type: boolean
	// - name: sortBy
	//   description: sets posts' field to be sorted by
	//   in: query
	//   required: false
	//   default: date
	//   type: string
	//   enum: [date, likes, comments, shares, views]
	// - name: orderBy
	//   description: sets sort's direct
	//   in: query
	//   required: false
	//   default: desc
	//   type: string
	//   enum: [asc, desc]
	// - name: from
	//   description: sets lower publish date bound, unix seconds, RFC3339 or YYYY-MM-DD
	//   in: query
	//   required: false
	//   example: 2024-03-01
	// - name: to
	//   description: sets upper publish date bound, unix seconds, RFC3339 or YYYY-MM-DD
	//   in: query
	//   required: false
	//   example: 2024-03-31
	// - name: limit
	//   description: limits count of returned posts
	//   in: query
	//   required: false
	//   default: 50
	//   minimum: 1
	//   maximum: 1000
	// responses:
	//   '200':
	//     description: Posts
	//     schema:
	//       "$ref": "#/definitions/ListPostsResponse"
	//   '400':
	//     description: bad request
	//     schema:
	//       "$ref": "#/definitions/Error"
	//   '500':
	//     description: internal server error
	//     schema:
	//       "$ref": "#/definitions/Error"

	params, err := s.extractListPostsParams(r.URL.Query())
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	posts, err := s.s.ListPosts(r.Context(), params)
	if err != nil {
		if errors.Is(err, service.ErrInvalidRequest) {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		writeInternalErrorf(r.Context(), w, "failed to list posts: %s", err.Error())
		return
	}

	writeOK(w, http.StatusOK, ListPostsResponse{Posts: toPosts(posts)})
}

func (s server) getPostTracking(w http.ResponseWriter, r *http.Request) {
	// swagger:operation GET /posts/{id} Posts GetPostTracking
	//
	// Get post with the evolution of its counters.
	//
	// ---
	// produces:
	// - application/json
	// parameters:
	// - name: id
	//   in: path
	//   required: true
	//   type: integer
	// responses:
	//   '200':
	//     description: Post tracking
	//     schema:
	//       "$ref": "#/definitions/TrackingResponse"
	//   '400':
	//     description: bad request
	//     schema:
	//       "$ref": "#/definitions/Error"
	//   '404':
	//     description: post not found
	//     schema:
	//       "$ref": "#/definitions/Error"
	//   '500':
	//     description: internal server error
	//     schema:
	//       "$ref": "#/definitions/Error"

	id, err := extractID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	t, err := s.s.GetPostTracking(r.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			writeError(w, http.StatusNotFound, "post not found")
			return
		}
		writeInternalErrorf(r.Context(), w, "failed to get post tracking: %s", err.Error())
		return
	}

	writeOK(w, http.StatusOK, toTrackingResponse(t))
}

func (s server) setTracking(w http.ResponseWriter, r *http.Request) {
	// swagger:operation PATCH /posts/{id}/tracking Posts SetTracking
	//
	// Enable or disable metrics tracking of the post.
	//
	// ---
	// consumes:
	// - application/json
	// produces:
	// - application/json
	// parameters:
	// - name: id
	//   in: path
	//   required: true
	//   type: integer
	// - name: request
	//   in: body
	//   required: true
	//   schema:
	//     "$ref": "#/definitions/SetTrackingRequest"
	// responses:
	//   '200':
	//     description: Tracking flag was updated
	//     schema:
	//       "$ref": "#/definitions/SetTrackingResponse"
	//   '400':
	//     description: bad request
	//     schema:
	//       "$ref": "#/definitions/Error"
	//   '404':
	//     description: post not found
	//     schema:
	//       "$ref": "#/definitions/Error"
	//   '500':
	//     description: internal server error
	//     schema:
	//       "$ref": "#/definitions/Error"

	id, err := extractID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	var req SetTrackingRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	if req.Tracked == nil {
		writeError(w, http.StatusBadRequest, "tracked must be a boolean")
		return
	}

	if err := s.s.SetTracked(r.Context(), id, *req.Tracked); err != nil {
		if errors.Is(err, service.ErrNotFound) {
			writeError(w, http.StatusNotFound, "post not found")
			return
		}
		writeInternalErrorf(r.Context(), w, "failed to set tracked: %s", err.Error())
		return
	}

	writeOK(w, http.StatusOK, SetTrackingResponse{ID: id, Tracked: *req.Tracked})
}

func (s server) getOverview(w http.ResponseWriter, r *http.Request) {
	// swagger:operation GET /overview Overview GetOverview
	//
	// Get engagement statistics of the calendar window compared with the previous one.
	// Responses are cached.
	//
	// ---
	// produces:
	// - application/json
	// parameters:
	// - name: range
	//   in: query
	//   required: false
	//   default: month
	//   type: string
	//   enum: [day, week, month]
	// - name: date
	//   description: a day within the window, YYYY-MM-DD. Defaults to today.
	//   in: query
	//   required: false
	//   example: 2024-03-15
	// responses:
	//   '200':
	//     description: Overview
	//     schema:
	//       "$ref": "#/definitions/OverviewResponse"
	//   '400':
	//     description: bad request
	//     schema:
	//       "$ref": "#/definitions/Error"
	//   '500':
	//     description: internal server error
	//     schema:
	//       "$ref": "#/definitions/Error"

	rng := aggregator.MonthRange
	if v := r.URL.Query().Get("range"); v != "" {
		rng = aggregator.Range(v)
	}

	at := s.now().In(s.loc)
	if v := r.URL.Query().Get("date"); v != "" {
		t, err := time.ParseInLocation(dateLayout, v, s.loc)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid date")
			return
		}
		at = t
	}

	window, err := aggregator.NewWindow(rng, at)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	snapshot, err := s.s.GetOverview(r.Context(), window)
	if err != nil {
		writeInternalErrorf(r.Context(), w, "failed to get overview: %s", err.Error())
		return
	}

	writeOK(w, http.StatusOK, toOverviewResponse(rng, snapshot))
}

func (s server) listMentions(w http.ResponseWriter, r *http.Request) {
	// swagger:operation GET /mentions Mentions ListMentions
	//
	// Return normalized mentions of the organization.
	//
	// ---
	// produces:
	// - application/json
	// parameters:
	// - name: q
	//   description: case-insensitive substring of content or source name
	//   in: query
	//   required: false
	// - name: platform
	//   in: query
	//   required: false
	// - name: from
	//   in: query
	//   required: false
	// - name: to
	//   in: query
	//   required: false
	// - name: limit
	//   in: query
	//   required: false
	//   default: 50
	//   minimum: 1
	//   maximum: 1000
	// responses:
	//   '200':
	//     description: Mentions
	//     schema:
	//       "$ref": "#/definitions/ListMentionsResponse"
	//   '400':
	//     description: bad request
	//     schema:
	//       "$ref": "#/definitions/Error"
	//   '500':
	//     description: internal server error
	//     schema:
	//       "$ref": "#/definitions/Error"

	q := r.URL.Query()

	params := service.ListMentionsParams{
		Query:    q.Get("q"),
		Platform: q.Get("platform"),
	}

	var err error
	if params.From, params.To, err = s.extractRange(q); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	if params.Limit, err = extractLimit(q); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	mentions, err := s.s.ListMentions(r.Context(), &params)
	if err != nil {
		if errors.Is(err, service.ErrInvalidRequest) {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		writeInternalErrorf(r.Context(), w, "failed to list mentions: %s", err.Error())
		return
	}

	writeOK(w, http.StatusOK, ListMentionsResponse{Mentions: toMentions(mentions)})
}

func (s server) listKeywords(w http.ResponseWriter, r *http.Request) {
	// swagger:operation GET /keywords Keywords ListKeywords
	//
	// Return monitored keywords, newest first.
	//
	// ---
	// produces:
	// - application/json
	// parameters:
	// - name: search
	//   in: query
	//   required: false
	// - name: all
	//   description: includes inactive keywords
	//   in: query
	//   required: false
	//   type: boolean
	// responses:
	//   '200':
	//     description: Keywords
	//     schema:
	//       type: array
	//       items:
	//         "$ref": "#/definitions/Keyword"
	//   '400':
	//     description: bad request
	//     schema:
	//       "$ref": "#/definitions/Error"
	//   '500':
	//     description: internal server error
	//     schema:
	//       "$ref": "#/definitions/Error"

	var all bool
	if v := r.URL.Query().Get("all"); v != "" {
		var err error
		if all, err = strconv.ParseBool(v); err != nil {
			writeError(w, http.StatusBadRequest, "invalid all")
			return
		}
	}

	kk, err := s.s.ListKeywords(r.Context(), r.URL.Query().Get("search"), all)
	if err != nil {
		writeInternalErrorf(r.Context(), w, "failed to list keywords: %s", err.Error())
		return
	}

	writeOK(w, http.StatusOK, toKeywords(kk))
}

func (s server) getKeyword(w http.ResponseWriter, r *http.Request) {
	// swagger:operation GET /keywords/{id} Keywords GetKeyword
	//
	// Get keyword by id.
	//
	// ---
	// produces:
	// - application/json
	// parameters:
	// - name: id
	//   in: path
	//   required: true
	//   type: integer
	// responses:
	//   '200':
	//     description: Keyword
	//     schema:
	//       "$ref": "#/definitions/Keyword"
	//   '400':
	//     description: bad request
	//     schema:
	//       "$ref": "#/definitions/Error"
	//   '404':
	//     description: keyword not found
	//     schema:
	//       "$ref": "#/definitions/Error"
	//   '500':
	//     description: internal server error
	//     schema:
	//       "$ref": "#/definitions/Error"

	id, err := extractID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	k, err := s.s.GetKeyword(r.Context(), id)
	if err != nil {
		writeKeywordError(w, r, err)
		return
	}

	writeOK(w, http.StatusOK, toKeyword(k))
}

func (s server) createKeyword(w http.ResponseWriter, r *http.Request) {
	// swagger:operation POST /keywords Keywords CreateKeyword
	//
	// Create keyword. The word is trimmed, activity defaults to true.
	//
	// ---
	// consumes:
	// - application/json
	// produces:
	// - application/json
	// parameters:
	// - name: request
	//   in: body
	//   required: true
	//   schema:
	//     "$ref": "#/definitions/CreateKeywordRequest"
	// responses:
	//   '201':
	//     description: Keyword was created
	//     schema:
	//       "$ref": "#/definitions/Keyword"
	//   '400':
	//     description: bad request
	//     schema:
	//       "$ref": "#/definitions/Error"
	//   '500':
	//     description: internal server error
	//     schema:
	//       "$ref": "#/definitions/Error"

	var req CreateKeywordRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	k, err := s.s.CreateKeyword(r.Context(), req.Word, req.Active)
	if err != nil {
		writeKeywordError(w, r, err)
		return
	}

	writeOK(w, http.StatusCreated, toKeyword(k))
}

func (s server) updateKeyword(w http.ResponseWriter, r *http.Request) {
	// swagger:operation PATCH /keywords/{id} Keywords UpdateKeyword
	//
	// Update keyword. Omitted fields are kept.
	//
	// ---
	// consumes:
	// - application/json
	// produces:
	// - application/json
	// parameters:
	// - name: id
	//   in: path
	//   required: true
	//   type: integer
	// - name: request
	//   in: body
	//   required: true
	//   schema:
	//     "$ref": "#/definitions/UpdateKeywordRequest"
	// responses:
	//   '200':
	//     description: Keyword was updated
	//     schema:
	//       "$ref": "#/definitions/Keyword"
	//   '400':
	//     description: bad request
	//     schema:
	//       "$ref": "#/definitions/Error"
	//   '404':
	//     description: keyword not found
	//     schema:
	//       "$ref": "#/definitions/Error"
	//   '500':
	//     description: internal server error
	//     schema:
	//       "$ref": "#/definitions/Error"

	id, err := extractID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	var req UpdateKeywordRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	k, err := s.s.UpdateKeyword(r.Context(), id, req.Word, req.Active)
	if err != nil {
		writeKeywordError(w, r, err)
		return
	}

	writeOK(w, http.StatusOK, toKeyword(k))
}

func (s server) toggleKeyword(w http.ResponseWriter, r *http.Request) {
	// swagger:operation DELETE /keywords/{id} Keywords ToggleKeyword
	//
	// Toggle keyword activity. Keywords are never removed.
	//
	// ---
	// produces:
	// - application/json
	// parameters:
	// - name: id
	//   in: path
	//   required: true
	//   type: integer
	// responses:
	//   '200':
	//     description: Keyword activity was toggled
	//     schema:
	//       "$ref": "#/definitions/ToggleKeywordResponse"
	//   '400':
	//     description: bad request
	//     schema:
	//       "$ref": "#/definitions/Error"
	//   '404':
	//     description: keyword not found
	//     schema:
	//       "$ref": "#/definitions/Error"
	//   '500':
	//     description: internal server error
	//     schema:
	//       "$ref": "#/definitions/Error"

	id, err := extractID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	k, err := s.s.ToggleKeyword(r.Context(), id)
	if err != nil {
		writeKeywordError(w, r, err)
		return
	}

	writeOK(w, http.StatusOK, ToggleKeywordResponse{Success: true, Active: k.Active})
}

func (s server) scrape(w http.ResponseWriter, r *http.Request) {
	// swagger:operation POST /scrape Scrape TriggerScrape
	//
	// Ask the collector to gather fresh posts and mentions.
	// Collected data lands in storage asynchronously.
	//
	// ---
	// produces:
	// - application/json
	// responses:
	//   '200':
	//     description: Collector acknowledgement
	//     schema:
	//       "$ref": "#/definitions/ScrapeResponse"
	//   '502':
	//     description: collector rejected the request
	//     schema:
	//       "$ref": "#/definitions/Error"
	//   '500':
	//     description: internal server error
	//     schema:
	//       "$ref": "#/definitions/Error"

	res, err := s.s.TriggerScrape(r.Context())
	if err != nil {
		var cerr *collector.Error
		if errors.As(err, &cerr) {
			writeOK(w, http.StatusBadGateway, Error{
				Error:   cerr.Message,
				Details: "the collector workflow is inactive or misconfigured",
			})
			return
		}
		writeInternalErrorf(r.Context(), w, "failed to trigger scrape: %s", err.Error())
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(res.Payload)
}

func writeKeywordError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, service.ErrNotFound):
		writeError(w, http.StatusNotFound, "keyword not found")
	case errors.Is(err, service.ErrInvalidRequest):
		writeError(w, http.StatusBadRequest, err.Error())
	default:
		writeInternalErrorf(r.Context(), w, "failed to process keyword: %s", err.Error())
	}
}

func extractID(r *http.Request) (int64, error) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("%w: invalid id", errInvalidRequest)
	}
	return id, nil
}

func (s server) extractListPostsParams(q url.Values) (*service.ListPostsParams, error) {
	out := service.ListPostsParams{
		Criteria: filter.Criteria{
			Query:    q.Get("q"),
			Platform: q.Get("platform"),
			SortBy:   filter.DateSortType,
			Order:    filter.DescendingOrder,
		},
	}

	if v := q.Get("sortBy"); v != "" {
		if !filter.IsValidSortType(filter.SortType(v)) {
			return nil, fmt.Errorf("%w: invalid sortBy", errInvalidRequest)
		}
		out.Criteria.SortBy = filter.SortType(v)
	}

	if v := q.Get("orderBy"); v != "" {
		if !filter.IsValidOrderType(filter.OrderType(v)) {
			return nil, fmt.Errorf("%w: invalid orderBy", errInvalidRequest)
		}
		out.Criteria.Order = filter.OrderType(v)
	}

	if v := q.Get("contentType"); v != "" {
		out.Criteria.ContentType = normalizer.ContentType(v)
	}

	if v := q.Get("tracked"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return nil, fmt.Errorf("%w: invalid tracked", errInvalidRequest)
		}
		out.Criteria.Tracked = &b
	}

	var err error
	if out.Criteria.From, out.Criteria.To, err = s.extractRange(q); err != nil {
		return nil, err
	}

	if out.Limit, err = extractLimit(q); err != nil {
		return nil, err
	}

	return &out, nil
}

func (s server) extractRange(q url.Values) (from, to *time.Time, err error) {
	if v := q.Get("from"); v != "" {
		t, err := s.parseTime(v, false)
		if err != nil {
			return nil, nil, fmt.Errorf("%w: invalid from", errInvalidRequest)
		}
		from = &t
	}

	if v := q.Get("to"); v != "" {
		t, err := s.parseTime(v, true)
		if err != nil {
			return nil, nil, fmt.Errorf("%w: invalid to", errInvalidRequest)
		}
		to = &t
	}

	if from != nil && to != nil && to.Before(*from) {
		return nil, nil, fmt.Errorf("%w: to is before from", errInvalidRequest)
	}

	return from, to, nil
}

// parseTime accepts unix seconds, RFC3339 and dates. Dates are in the server's location;
// with endOfDay the last nanosecond of the day is returned.
func (s server) parseTime(v string, endOfDay bool) (time.Time, error) {
	if n, err := strconv.ParseInt(v, 10, 64); err == nil {
		return time.Unix(n, 0).In(s.loc), nil
	}

	if t, err := time.Parse(time.RFC3339, v); err == nil {
		return t, nil
	}

	t, err := time.ParseInLocation(dateLayout, v, s.loc)
	if err != nil {
		return time.Time{}, err
	}

	if endOfDay {
		t = t.AddDate(0, 0, 1).Add(-time.Nanosecond)
	}

	return t, nil
}

func extractLimit(q url.Values) (int, error) {
	v := q.Get("limit")
	if v == "" {
		return defaultLimit, nil
	}

	n, err := strconv.ParseUint(v, 10, 64)
	if err != nil || n == 0 {
		return 0, fmt.Errorf("%w: failed to parse limit", errInvalidRequest)
	}

	if n > maxLimit {
		return 0, fmt.Errorf("%w: limit is too big", errInvalidRequest)
	}

	return int(n), nil
}
