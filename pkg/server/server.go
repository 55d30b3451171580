package server

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sync"

	"github.com/oleksiit/giftrank/internal/store"
	"github.com/oleksiit/giftrank/pkg/catalog"
	"github.com/oleksiit/giftrank/pkg/engine"
)

// Server provides the HTTP API. It owns the current corpus snapshot:
// queries read whichever snapshot is current, reloads build a new one
// from the store and swap it atomically, so no query ever observes a
// partial corpus update.
type Server struct {
	store  store.Store
	engine *engine.Engine
	tax    *catalog.Taxonomy
	port   int

	mu     sync.RWMutex
	corpus *engine.Corpus
}

// New creates a new HTTP server. tax may be nil.
func New(s store.Store, eng *engine.Engine, tax *catalog.Taxonomy, port int) *Server {
	if port == 0 {
		port = 8080
	}
	return &Server{
		store:  s,
		engine: eng,
		tax:    tax,
		port:   port,
	}
}

// Reload pulls the full catalogue from the store, recomputes the
// corpus aggregates and swaps the snapshot.
func (s *Server) Reload(ctx context.Context) error {
	items, err := s.store.ListItems(ctx, store.ListOpts{})
	if err != nil {
		return fmt.Errorf("load catalogue: %w", err)
	}

	corpus := s.engine.LoadCorpus(items)

	s.mu.Lock()
	s.corpus = corpus
	s.mu.Unlock()
	return nil
}

func (s *Server) snapshot() *engine.Corpus {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.corpus == nil {
		return s.engine.LoadCorpus(nil)
	}
	return s.corpus
}

// ListenAndServe starts the HTTP server.
func (s *Server) ListenAndServe() error {
	mux := http.NewServeMux()
	mux.HandleFunc("/health", s.handleHealth)
	mux.HandleFunc("/api/v1/gifts", s.handleGifts)
	mux.HandleFunc("/api/v1/categories", s.handleCategories)
	mux.HandleFunc("/api/v1/taxonomy", s.handleTaxonomy)
	mux.HandleFunc("/api/v1/stats", s.handleStats)
	mux.HandleFunc("/api/v1/reload", s.handleReload)

	addr := fmt.Sprintf(":%d", s.port)
	fmt.Printf("giftrank server listening on %s\n", addr)
	return http.ListenAndServe(addr, mux)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleGifts runs one engine query. Malformed numeric params behave
// as absent filters, matching the engine's lenient parsing.
func (s *Server) handleGifts(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeJSON(w, http.StatusMethodNotAllowed, map[string]string{"error": "method not allowed"})
		return
	}

	params := r.URL.Query()
	q := engine.Query{
		Category:  params.Get("category"),
		Tag:       params.Get("tag"),
		Search:    params.Get("q"),
		MaxPrice:  params.Get("max_price"),
		MinRating: params.Get("min_rating"),
	}

	switch params.Get("quick") {
	case "value":
		q.Sort = engine.SortByValue()
	case "popularity":
		q.Sort = engine.SortByPopularity()
	default:
		if key, ok := engine.ParseSortKey(params.Get("sort")); ok {
			q.Sort = engine.Sort{Key: key, Desc: params.Get("dir") == "desc"}
		}
	}

	corpus := s.snapshot()
	rows := s.engine.Query(corpus, q)

	writeJSON(w, http.StatusOK, map[string]any{
		"data":      rows,
		"count":     len(rows),
		"formula":   corpus.Formula,
		"loaded_at": corpus.LoadedAt,
	})
}

func (s *Server) handleCategories(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeJSON(w, http.StatusMethodNotAllowed, map[string]string{"error": "method not allowed"})
		return
	}

	counts, err := s.store.CountItemsByCategory(r.Context())
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}

	type categoryInfo struct {
		Name  string `json:"name"`
		Items int    `json:"items"`
	}

	corpus := s.snapshot()
	var infos []categoryInfo
	for _, cat := range corpus.Agg.Categories {
		infos = append(infos, categoryInfo{Name: cat, Items: counts[cat]})
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"data":  infos,
		"count": len(infos),
	})
}

func (s *Server) handleTaxonomy(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeJSON(w, http.StatusMethodNotAllowed, map[string]string{"error": "method not allowed"})
		return
	}

	if s.tax == nil {
		writeJSON(w, http.StatusOK, map[string]any{"labels": map[string]string{}, "groups": []catalog.TagGroup{}})
		return
	}
	writeJSON(w, http.StatusOK, s.tax)
}

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeJSON(w, http.StatusMethodNotAllowed, map[string]string{"error": "method not allowed"})
		return
	}

	corpus := s.snapshot()
	writeJSON(w, http.StatusOK, map[string]any{
		"aggregates": corpus.Agg,
		"formula":    corpus.Formula,
		"loaded_at":  corpus.LoadedAt,
	})
}

func (s *Server) handleReload(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeJSON(w, http.StatusMethodNotAllowed, map[string]string{"error": "method not allowed"})
		return
	}

	if err := s.Reload(r.Context()); err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}

	corpus := s.snapshot()
	writeJSON(w, http.StatusOK, map[string]any{
		"reloaded": true,
		"count":    corpus.Agg.Count,
	})
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}
