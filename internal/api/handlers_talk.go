package api

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"golang.org/x/net/html"

	"github.com/dgallion1/talkgest/internal/cache"
	"github.com/dgallion1/talkgest/internal/namespaces"
	"github.com/dgallion1/talkgest/internal/parsoid"
	"github.com/dgallion1/talkgest/internal/stats"
	"github.com/dgallion1/talkgest/internal/talk"
)

func (s *Server) handleTalk(w http.ResponseWriter, r *http.Request) {
	domain := chi.URLParam(r, "domain")
	title := chi.URLParam(r, "title")
	if unescaped, err := url.PathUnescape(title); err == nil {
		title = unescaped
	}
	revision := chi.URLParam(r, "revision")
	if revision != "" {
		if _, err := strconv.ParseUint(revision, 10, 64); err != nil {
			jsonError(w, "revision must be a positive integer", http.StatusBadRequest)
			return
		}
	}
	if title == "" {
		jsonError(w, "title is required", http.StatusBadRequest)
		return
	}
	log := s.log.With("domain", domain, "title", title, "revision", revision)
	ctx := r.Context()

	if revision != "" {
		data, err := s.cache.Get(ctx, cache.Key(domain, title, revision))
		if err == nil {
			log.Debug("cache hit")
			writeTalk(w, data, revision)
			return
		}
		if !errors.Is(err, cache.ErrMiss) {
			log.Warn("cache get failed", "error", err)
		}
	}

	page, err := s.fetcher.FetchHTML(ctx, domain, title, revision)
	if errors.Is(err, parsoid.ErrNotFound) {
		jsonError(w, "page not found", http.StatusNotFound)
		return
	}
	if err != nil {
		log.Error("fetch failed", "error", err)
		jsonError(w, "failed to fetch page html", http.StatusBadGateway)
		return
	}

	rev := page.Revision
	if rev == "" {
		rev = revision
	}

	doc, err := html.Parse(bytes.NewReader(page.HTML))
	if err != nil {
		jsonError(w, "failed to parse page html", http.StatusBadGateway)
		return
	}
	data, err := s.parseDocument(doc, namespaces.LangFromDomain(domain), len(page.HTML), log)
	if err != nil {
		log.Error("encode failed", "error", err)
		jsonError(w, "failed to encode topics", http.StatusInternalServerError)
		return
	}

	if rev != "" {
		if err := s.cache.Set(ctx, cache.Key(domain, title, rev), data); err != nil {
			log.Warn("cache set failed", "error", err)
		}
	}
	writeTalk(w, data, rev)
}

// parseDocument extracts topics from doc, records stats, and returns the
// encoded output.
func (s *Server) parseDocument(doc *html.Node, lang string, size int, log *slog.Logger) ([]byte, error) {
	start := time.Now()
	out := talk.Parse(doc, talk.Options{
		Names:   namespaces.ForLang(lang),
		Workers: s.cfg.TopicWorkers,
		Logger:  log,
	})
	data, err := json.Marshal(out)
	if err != nil {
		return nil, fmt.Errorf("marshal topics: %w", err)
	}

	replies := 0
	for _, t := range out.Topics {
		replies += len(t.Replies)
	}
	s.stats.Record(stats.Sample{
		DurationMs: time.Since(start).Milliseconds(),
		Bytes:      size,
		Topics:     len(out.Topics),
		Replies:    replies,
	})
	return data, nil
}
