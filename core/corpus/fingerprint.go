package corpus

import (
	"encoding/hex"
	"strconv"

	"github.com/zeebo/blake3"
)

// Fingerprint returns the hex BLAKE3-256 digest of the normalized corpus.
// Each verse contributes "chapter|verse|normalized\n" in corpus order, so two
// sources that differ only in diacritics or spacing share a fingerprint.
func (c *Corpus) Fingerprint() string {
	h := blake3.New()
	var buf []byte
	for i := range c.verses {
		v := &c.verses[i]
		buf = buf[:0]
		buf = strconv.AppendInt(buf, int64(v.Chapter), 10)
		buf = append(buf, '|')
		buf = strconv.AppendInt(buf, int64(v.Index), 10)
		buf = append(buf, '|')
		buf = append(buf, v.Normalized...)
		buf = append(buf, '\n')
		_, _ = h.Write(buf)
	}
	return hex.EncodeToString(h.Sum(nil))
}
