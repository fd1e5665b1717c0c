// Package talk turns talk page HTML into threaded topics and replies.
package talk

import (
	"fmt"
	"io"
	"log/slog"
	"time"

	"golang.org/x/net/html"
	"golang.org/x/sync/errgroup"

	"github.com/dgallion1/talkgest/internal/dom"
	"github.com/dgallion1/talkgest/internal/namespaces"
)

// DefaultWorkers bounds concurrent topic builds when Options.Workers is unset.
const DefaultWorkers = 4

// Output is the document returned for a talk page.
type Output struct {
	Topics []Topic `json:"topics"`
}

// Options configure a parse.
type Options struct {
	// Names enables the user-link signature check. Nil disables it.
	Names   *namespaces.Names
	Workers int
	Logger  *slog.Logger
}

func (o Options) logger() *slog.Logger {
	if o.Logger != nil {
		return o.Logger
	}
	return slog.New(slog.DiscardHandler)
}

// ParseHTML parses a talk page from r.
func ParseHTML(r io.Reader, opts Options) (*Output, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("parse talk html: %w", err)
	}
	return Parse(doc, opts), nil
}

// Parse extracts one topic per <section> of doc. Nested sections become
// topics of their own. Topic ids are section positions in document order and
// are kept even when empty topics are dropped. doc is consumed.
func Parse(doc *html.Node, opts Options) *Output {
	start := time.Now()
	log := opts.logger()

	collapseLoneBreaks(doc)

	sections := dom.FindAll(doc, "section")
	for _, s := range sections {
		for _, sub := range dom.FindAll(s, "section") {
			dom.Detach(sub)
		}
	}
	// Every section is now a standalone tree, so topics can be built in parallel.
	for _, s := range sections {
		dom.Detach(s)
	}

	workers := opts.Workers
	if workers <= 0 {
		workers = DefaultWorkers
	}
	topics := make([]Topic, len(sections))
	var g errgroup.Group
	g.SetLimit(workers)
	for i, s := range sections {
		g.Go(func() error {
			topics[i] = buildTopic(i, s, opts.Names, log)
			return nil
		})
	}
	_ = g.Wait()

	out := &Output{Topics: make([]Topic, 0, len(topics))}
	replies := 0
	for _, t := range topics {
		if t.IsEmpty() {
			continue
		}
		out.Topics = append(out.Topics, t)
		replies += len(t.Replies)
	}

	log.Debug("talk page parsed",
		"sections", len(sections),
		"topics", len(out.Topics),
		"replies", replies,
		"duration_ms", time.Since(start).Milliseconds(),
	)
	return out
}

// collapseLoneBreaks unwraps every element whose only child is a <br>, so
// the break splits its surrounding block instead of forming an empty one.
func collapseLoneBreaks(doc *html.Node) {
	for _, br := range dom.FindAll(doc, "br") {
		if br.PrevSibling != nil || br.NextSibling != nil {
			continue
		}
		if dom.IsElement(br.Parent) && !dom.IsElement(br.Parent, "section", "body", "html") {
			dom.Unwrap(br.Parent)
		}
	}
}
