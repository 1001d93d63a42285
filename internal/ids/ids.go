// Package ids generates the short prefix+timestamp identifiers used for
// domain records (properties, deals, offers, transactions).
package ids

import (
	"fmt"
	"strings"
	"sync/atomic"
	"time"
)

var lastMillis atomic.Int64

// millis returns the current unix-millisecond timestamp, bumped to stay
// strictly monotonic. Two records generated in the same millisecond would
// otherwise collide on their id suffix.
func millis() int64 {
	for {
		now := time.Now().UnixMilli()
		last := lastMillis.Load()
		if now <= last {
			now = last + 1
		}
		if lastMillis.CompareAndSwap(last, now) {
			return now
		}
	}
}

// Suffix returns the last n digits of a monotonic millisecond timestamp.
func Suffix(n int) string {
	s := fmt.Sprintf("%d", millis())
	if len(s) > n {
		s = s[len(s)-n:]
	}
	return s
}

// Deal returns a deal id of the form DEAL123456.
func Deal() string { return "DEAL" + Suffix(6) }

// Offer returns an offer id of the form OFF123456.
func Offer() string { return "OFF" + Suffix(6) }

// Transaction returns a payment reference of the form TXN12345678.
func Transaction() string { return "TXN" + Suffix(8) }

// Property derives a property id from the city name: the first three
// letters, spaces stripped and uppercased, plus a six-digit suffix
// (e.g. "MUM481736" for Mumbai).
func Property(city string) string {
	prefix := strings.ReplaceAll(city, " ", "")
	if len(prefix) > 3 {
		prefix = prefix[:3]
	}
	return strings.ToUpper(prefix) + Suffix(6)
}
