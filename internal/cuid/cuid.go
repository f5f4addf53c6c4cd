// Package cuid generates collision-resistant ids in the cuid layout:
// "c" + base36 millisecond timestamp + counter + host fingerprint +
// random block. Ids sort roughly by creation time and are safe for use
// in URLs and as cache keys.
package cuid

import (
	"crypto/rand"
	"math/big"
	"os"
	"strconv"
	"strings"
	"sync/atomic"
	"time"

	"github.com/iancoleman/strcase"
)

const (
	base      = 36
	blockSize = 4
	// discreteValues is base^blockSize, the modulus for each block.
	discreteValues = 36 * 36 * 36 * 36
)

var counter uint64

// New returns a fresh cuid, e.g. "ckz3r8f2t0001h8x2a9k3j7qw".
func New() string {
	var b strings.Builder
	b.WriteByte('c')
	b.WriteString(timestampBlock())
	b.WriteString(counterBlock())
	b.WriteString(fingerprint)
	b.WriteString(randomBlock())
	b.WriteString(randomBlock())
	return b.String()
}

// Slug returns a shorter, less collision-resistant form for ephemeral
// identifiers (two timestamp chars, counter tail, fingerprint edges,
// one random block).
func Slug() string {
	ts := timestampBlock()
	cnt := counterBlock()
	var b strings.Builder
	b.WriteString(ts[len(ts)-2:])
	b.WriteString(cnt[len(cnt)-2:])
	b.WriteByte(fingerprint[0])
	b.WriteByte(fingerprint[len(fingerprint)-1])
	b.WriteString(randomBlock())
	return b.String()
}

// IsCuid reports whether s looks like a cuid produced by New.
func IsCuid(s string) bool {
	if len(s) < 2 || s[0] != 'c' {
		return false
	}
	for i := 1; i < len(s); i++ {
		c := s[i]
		if (c < '0' || c > '9') && (c < 'a' || c > 'z') {
			return false
		}
	}
	return true
}

// Slugify converts an arbitrary title into a URL slug: kebab-case words
// with everything outside [a-z0-9-] dropped.
func Slugify(title string) string {
	kebab := strcase.ToKebab(title)
	var b strings.Builder
	b.Grow(len(kebab))
	prevDash := true // swallow leading dashes
	for i := 0; i < len(kebab); i++ {
		c := kebab[i]
		switch {
		case c >= 'a' && c <= 'z', c >= '0' && c <= '9':
			b.WriteByte(c)
			prevDash = false
		case c == '-' || c == ' ' || c == '_':
			if !prevDash {
				b.WriteByte('-')
				prevDash = true
			}
		}
	}
	return strings.TrimRight(b.String(), "-")
}

func timestampBlock() string {
	return strconv.FormatInt(time.Now().UnixMilli(), base)
}

func counterBlock() string {
	n := atomic.AddUint64(&counter, 1) % discreteValues
	return pad(strconv.FormatUint(n, base), blockSize)
}

func randomBlock() string {
	n, err := rand.Int(rand.Reader, big.NewInt(discreteValues))
	if err != nil {
		// crypto/rand only fails when the OS entropy source is broken;
		// fall back to the counter rather than returning an error from
		// an id generator.
		return counterBlock()
	}
	return pad(n.Text(base), blockSize)
}

// fingerprint identifies the generating process: two base36 chars from
// the pid and two from the hostname.
var fingerprint = func() string {
	pid := pad(strconv.FormatInt(int64(os.Getpid()), base), 2)

	hostname, err := os.Hostname()
	if err != nil || hostname == "" {
		hostname = "localhost"
	}
	sum := len(hostname) + base
	for _, c := range hostname {
		sum += int(c)
	}
	host := pad(strconv.FormatInt(int64(sum), base), 2)

	return pid[len(pid)-2:] + host[len(host)-2:]
}()

func pad(s string, size int) string {
	if len(s) >= size {
		return s[len(s)-size:]
	}
	return strings.Repeat("0", size-len(s)) + s
}
