// Package blobname generates names for stored photo blobs.
//
// A name combines the form field tag the file arrived under, a
// millisecond timestamp, a random disambiguator and the original file
// extension: "photo-1718000000000-482915377.jpg". The timestamp issued
// by a Generator never decreases, so names sort by creation time and two
// uploads colliding on both the millisecond and the random draw is the
// only way to repeat a name.
package blobname

import (
	"fmt"
	"math/rand"
	"strings"
	"sync"
	"time"
)

// maxDisambiguator bounds the random component of a name.
const maxDisambiguator = 1_000_000_000

// Format builds a blob name from its parts. Pure; all state lives in the
// Generator.
func Format(fieldTag string, timestampMillis, disambiguator int64, ext string) string {
	return fmt.Sprintf("%s-%d-%d%s", sanitizeTag(fieldTag), timestampMillis, disambiguator, sanitizeExt(ext))
}

// Generator produces blob names with a monotonically nondecreasing
// timestamp component. Safe for concurrent use.
type Generator struct {
	mu   sync.Mutex
	now  func() time.Time
	rand *rand.Rand
	last int64
}

// New creates a generator backed by the wall clock and a seeded random
// source.
func New() *Generator {
	return &Generator{
		now:  time.Now,
		rand: rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// Generate returns a fresh blob name for the given field tag and
// extension.
func (g *Generator) Generate(fieldTag, ext string) string {
	g.mu.Lock()
	defer g.mu.Unlock()

	millis := g.now().UnixMilli()
	if millis < g.last {
		millis = g.last
	}
	g.last = millis

	return Format(fieldTag, millis, g.rand.Int63n(maxDisambiguator), ext)
}

// sanitizeTag keeps the field tag filesystem-safe.
func sanitizeTag(tag string) string {
	if tag == "" {
		return "file"
	}
	replacer := strings.NewReplacer(
		"/", "_",
		"\\", "_",
		":", "_",
		"*", "_",
		"?", "_",
		"\"", "_",
		"<", "_",
		">", "_",
		"|", "_",
		" ", "_",
		".", "_",
	)
	return replacer.Replace(tag)
}

// sanitizeExt normalizes the extension to either empty or ".xyz" with no
// path separators.
func sanitizeExt(ext string) string {
	if ext == "" {
		return ""
	}
	ext = strings.TrimLeft(ext, ".")
	if ext == "" {
		return ""
	}
	return "." + sanitizeTag(ext)
}
