package models

import (
	"math/rand"
	"strconv"
	"time"
)

const idSuffixLen = 7

// NewID returns a new record id: the current unix time in milliseconds with a
// short random base36 suffix. Ids only need to be unique within one operator's
// database, so no duplicate check is performed on top of this.
func NewID() string {
	return strconv.FormatInt(time.Now().UnixMilli(), 10) + randomSuffix(idSuffixLen)
}

func randomSuffix(n int) string {
	const alphabet = "0123456789abcdefghijklmnopqrstuvwxyz"
	b := make([]byte, n)
	for i := range b {
		b[i] = alphabet[rand.Intn(len(alphabet))]
	}
	return string(b)
}

// Now returns the current time as the ISO-8601 string used in all persisted
// timestamp fields.
func Now() string {
	return time.Now().UTC().Format(time.RFC3339)
}
