package api

import (
	"encoding/json"
	"net/http"

	"github.com/google/uuid"
)

// talkContentType is the media type of talk page output.
const talkContentType = `application/json; charset=utf-8; profile="https://www.mediawiki.org/wiki/Specs/Talk/0.0.1"`

func jsonError(w http.ResponseWriter, msg string, code int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(map[string]string{"error": msg})
}

// writeTalk sends encoded talk output. The ETag is set only when the revision is known.
func writeTalk(w http.ResponseWriter, data []byte, revision string) {
	if revision != "" {
		w.Header().Set("ETag", etag(revision))
	}
	w.Header().Set("Content-Type", talkContentType)
	w.WriteHeader(http.StatusOK)
	w.Write(data)
}

// etag formats "<revision>/<tid>" where tid is a time-based UUID.
func etag(revision string) string {
	tid, err := uuid.NewUUID()
	if err != nil {
		tid = uuid.New()
	}
	return `"` + revision + "/" + tid.String() + `"`
}
