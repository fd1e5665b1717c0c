package talk

import (
	"crypto/sha256"
	"encoding/hex"
	"strconv"
	"strings"
)

// HashHex returns the hex-encoded SHA-256 of s.
func HashHex(s string) string {
	h := sha256.Sum256([]byte(s))
	return hex.EncodeToString(h[:])
}

// fingerprint fills reply and topic hashes. Reply hashes include the reply's
// position, so moving a reply changes the topic indicator.
func (t *Topic) fingerprint() {
	var all strings.Builder
	all.WriteString(t.HTML)
	for i := range t.Replies {
		r := &t.Replies[i]
		r.Sha = HashHex(strconv.Itoa(i) + r.Text)
		all.WriteString(r.Sha)
	}
	t.Shas = Shas{
		HTML:      HashHex(strconv.Itoa(t.ID) + t.HTML),
		Indicator: HashHex(all.String()),
	}
}
