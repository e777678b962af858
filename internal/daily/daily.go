// internal/daily/daily.go
//
// Daily challenge word selection.
// Every player sees the same answer on a given UTC day: the day key is
// HMAC-SHA256'd with a server-side salt and reduced modulo the answer count,
// so the schedule is stable across restarts but not guessable without the salt.

package daily

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/binary"
	"time"
)

const dateLayout = "2006-01-02"

// DateKey is the UTC calendar day of t, as stored in daily_results.date.
func DateKey(t time.Time) string { return t.UTC().Format(dateLayout) }

// WordIndex picks the answer index for t's day. An empty list yields 0.
func WordIndex(t time.Time, salt string, n int) int {
	if n <= 0 {
		return 0
	}
	mac := hmac.New(sha256.New, []byte(salt))
	mac.Write([]byte(DateKey(t)))
	v := binary.BigEndian.Uint64(mac.Sum(nil))
	return int(v % uint64(n))
}
