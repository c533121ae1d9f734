package server

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/mithrel/sakura/internal/db"
	"github.com/mithrel/sakura/internal/engine"
	"github.com/mithrel/sakura/pkg/api"
)

// Server exposes the search engine over HTTP, backed by a note store.
type Server struct {
	cfg    *viper.Viper
	store  db.Store
	engine *engine.Engine
	log    *log.Logger
}

func New(cfg *viper.Viper, store db.Store, eng *engine.Engine, logger *log.Logger) *Server {
	if logger == nil {
		logger = log.Default()
	}
	return &Server{cfg: cfg, store: store, engine: eng, log: logger}
}

// Router returns an http.Handler with registered routes.
func (s *Server) Router() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("ok"))
	})
	mux.HandleFunc("/v1/search", s.auth(s.handleSearch))
	return mux
}

func (s *Server) auth(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		tok := strings.TrimSpace(s.cfg.GetString("auth.token"))
		got := r.Header.Get("Authorization")
		if tok == "" || !strings.HasPrefix(got, "Bearer ") || strings.TrimSpace(strings.TrimPrefix(got, "Bearer ")) != tok {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}
		next.ServeHTTP(w, r)
	}
}

// searchBody is the POST payload: a full search request plus the snapshot
// scope.
type searchBody struct {
	api.SearchRequest
	ParentID string `json:"parent_id,omitempty"`
}

func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	var (
		req      api.SearchRequest
		parentID string
	)
	switch r.Method {
	case http.MethodGet:
		req = requestFromQuery(s.cfg, r.URL.Query())
		parentID = r.URL.Query().Get("parent_id")
	case http.MethodPost:
		var body searchBody
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			http.Error(w, "bad request body", http.StatusBadRequest)
			return
		}
		req = body.SearchRequest
		parentID = body.ParentID
	default:
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	notes, err := s.store.Snapshot(r.Context(), parentID)
	if err != nil {
		s.log.Printf("search: snapshot failed: %v", err)
		http.Error(w, "snapshot failed", http.StatusInternalServerError)
		return
	}

	if req.StreamResults {
		s.streamSearch(w, notes, req)
		return
	}

	res, err := s.engine.Search(notes, req)
	if err != nil {
		if isRequestError(err) {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		s.log.Printf("search: %v", err)
		http.Error(w, "search failed", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(res)
}

// streamSearch writes one SearchResult per batch as NDJSON.
func (s *Server) streamSearch(w http.ResponseWriter, notes []api.Note, req api.SearchRequest) {
	stream, err := s.engine.StreamSearch(notes, req)
	if err != nil {
		if isRequestError(err) {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		s.log.Printf("stream: %v", err)
		http.Error(w, "search failed", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/x-ndjson")
	enc := json.NewEncoder(w)
	for {
		batch, ok := stream.Next()
		if !ok {
			return
		}
		if err := enc.Encode(batch); err != nil {
			return
		}
		if f, ok := w.(http.Flusher); ok {
			f.Flush()
		}
	}
}

func isRequestError(err error) bool {
	return errors.Is(err, api.ErrEmptyQuery) ||
		errors.Is(err, api.ErrInvalidLimit) ||
		errors.Is(err, api.ErrInvalidSortField)
}

// requestFromQuery maps URL parameters onto a search request, falling back
// to configured defaults for paging and ranking.
func requestFromQuery(cfg *viper.Viper, q url.Values) api.SearchRequest {
	req := api.SearchRequest{
		Query:     q.Get("q"),
		Limit:     cfg.GetInt("search.limit"),
		SortBy:    cfg.GetString("search.sort_by"),
		SortOrder: cfg.GetString("search.sort_order"),
	}
	if v := q.Get("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			req.Limit = n
		}
	}
	if v := q.Get("offset"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			req.Offset = n
		}
	}
	if v := q.Get("sort_by"); v != "" {
		req.SortBy = v
	}
	if v := q.Get("sort_order"); v != "" {
		req.SortOrder = v
	}

	req.FuzzyMatching = boolParam(q, "fuzzy")
	req.FuzzyThreshold = cfg.GetFloat64("search.fuzzy_threshold")
	if v := q.Get("fuzzy_threshold"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			req.FuzzyThreshold = f
		}
	}
	req.EnableBooleanOperators = boolParam(q, "boolean")
	req.EnableFieldQueries = boolParam(q, "fields")
	req.EnableDateQueries = boolParam(q, "dates")
	req.IncludeBody = boolParam(q, "body")
	req.HighlightMatches = boolParam(q, "highlight")
	req.IncludeScores = boolParam(q, "scores")
	req.ReturnPagination = boolParam(q, "pagination")
	req.IncludeSuggestions = boolParam(q, "suggestions")
	req.HighlightTags = [2]string{
		cfg.GetString("search.highlight.open"),
		cfg.GetString("search.highlight.close"),
	}

	if v := q.Get("facets"); v != "" {
		req.IncludeFacets = true
		req.FacetFields = strings.Split(v, ",")
	}

	req.StreamResults = boolParam(q, "stream")
	req.BatchSize = cfg.GetInt("search.batch_size")
	if v := q.Get("batch_size"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			req.BatchSize = n
		}
	}

	req.EnableCache = cfg.GetBool("search.cache.enabled")
	if v := q.Get("cache"); v != "" {
		req.EnableCache = v == "true" || v == "1"
	}
	if ttl, err := time.ParseDuration(cfg.GetString("search.cache.ttl")); err == nil {
		req.CacheTTL = ttl
	}
	return req
}

func boolParam(q url.Values, key string) bool {
	v := q.Get(key)
	return v == "true" || v == "1"
}
