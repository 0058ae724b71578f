package util

import (
	"crypto/rand"
	"encoding/binary"
	"strconv"
	"time"
)

// randSuffixLen is the number of base36 digits appended after the
// millisecond timestamp. Two ids minted in the same millisecond still
// differ through this random part.
const randSuffixLen = 11

// NewID mints a record identifier: the creation time in milliseconds,
// base36-encoded, followed by a random base36 suffix.
func NewID() string {
	ts := strconv.FormatInt(time.Now().UnixMilli(), 36)

	var buf [8]byte
	if _, err := rand.Read(buf[:]); err != nil {
		// crypto/rand never fails on supported platforms; fall back to the
		// clock so id generation stays total.
		binary.BigEndian.PutUint64(buf[:], uint64(time.Now().UnixNano()))
	}
	n := binary.BigEndian.Uint64(buf[:])

	suffix := strconv.FormatUint(n, 36)
	if len(suffix) > randSuffixLen {
		suffix = suffix[:randSuffixLen]
	}
	for len(suffix) < randSuffixLen {
		suffix = "0" + suffix
	}
	return ts + suffix
}
