package utils

import (
	"crypto/rand"
	"math/big"
	"strconv"
	"sync"
	"time"
)

var (
	idMu   sync.Mutex
	lastID int64
)

// NewID returns a timestamp-derived decimal string, the same shape the
// dashboard has always used for record ids. Two writes inside the same
// millisecond get bumped apart so the value stays unique and monotonic.
func NewID() string {
	idMu.Lock()
	defer idMu.Unlock()

	now := time.Now().UnixMilli()
	if now <= lastID {
		now = lastID + 1
	}
	lastID = now
	return strconv.FormatInt(now, 10)
}

// Characters that are easy to read out loud over the phone: no 0/O, 1/l/I
const passwordChars = "abcdefghjkmnpqrstuvwxyzABCDEFGHJKLMNPQRSTUVWXYZ23456789"

// GeneratePassword builds a random VPN account password
func GeneratePassword(length int) string {
	if length <= 0 {
		length = 8
	}
	out := make([]byte, length)
	max := big.NewInt(int64(len(passwordChars)))
	for i := range out {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			// crypto/rand only fails when the OS entropy source is broken
			out[i] = passwordChars[int(time.Now().UnixNano())%len(passwordChars)]
			continue
		}
		out[i] = passwordChars[n.Int64()]
	}
	return string(out)
}
