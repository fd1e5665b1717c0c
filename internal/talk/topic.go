package talk

import (
	"log/slog"

	"golang.org/x/net/html"

	"github.com/dgallion1/talkgest/internal/dom"
	"github.com/dgallion1/talkgest/internal/namespaces"
)

// Reply is a single signed contribution within a topic.
type Reply struct {
	Text  string `json:"text"`
	Depth int    `json:"depth"`
	Sha   string `json:"sha"`
}

// Shas fingerprint a topic. HTML covers the header alone; Indicator covers the
// header and every reply, so it changes whenever the topic changes.
type Shas struct {
	HTML      string `json:"html"`
	Indicator string `json:"indicator"`
}

// Topic is one talk page section: its header and the replies beneath it.
type Topic struct {
	ID      int     `json:"id"`
	Depth   int     `json:"depth"`
	HTML    string  `json:"html"`
	Shas    Shas    `json:"shas"`
	Replies []Reply `json:"replies"`
}

// IsEmpty reports whether the topic has neither header text nor replies.
func (t Topic) IsEmpty() bool {
	return t.HTML == "" && len(t.Replies) == 0
}

// buildTopic consumes a standalone section and returns its topic. The section
// is mutated: reply elements are detached as they are read.
func buildTopic(id int, section *html.Node, names *namespaces.Names, log *slog.Logger) Topic {
	cands := extractCandidates(section, names)
	extracted := len(cands)
	cands = foldListItems(cands)
	folded := len(cands)
	cands = mergeUnsigned(cands)

	replies := make([]Reply, 0, len(cands))
	for _, c := range cands {
		if c.Text == "" {
			continue
		}
		replies = append(replies, Reply{Text: c.Text, Depth: c.Depth})
	}
	normalizeDepths(replies)

	t := Topic{ID: id, Depth: 1, Replies: replies}
	if header := dom.FindFirst(section, "h1", "h2", "h3", "h4", "h5", "h6"); header != nil {
		t.Depth = dom.HeadingLevel(header)
		t.HTML = Serialize(header)
	}
	t.fingerprint()

	log.Debug("topic built",
		"id", id,
		"candidates", extracted,
		"after_fold", folded,
		"replies", len(t.Replies),
	)
	return t
}

// normalizeDepths shifts depths so the first reply sits at zero.
func normalizeDepths(replies []Reply) {
	if len(replies) == 0 {
		return
	}
	base := replies[0].Depth
	for i := range replies {
		replies[i].Depth = max(replies[i].Depth-base, 0)
	}
}
