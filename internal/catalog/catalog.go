// Package catalog identifies installed fonts against a database of known
// open-source fonts and checks their upstream releases for updates.
package catalog

import (
	_ "embed"
	"encoding/json"
	"strings"
	"sync"

	"github.com/gobwas/glob"

	"github.com/stylesmith/stylesmith/internal/fontutil"
	"github.com/stylesmith/stylesmith/pkg/types"
)

//go:embed data/opensource_fonts.json
var embeddedCatalog []byte

type catalogDoc struct {
	Fonts              []types.FontRecord            `json:"fonts"`
	VersionDifferences map[string]map[string]string `json:"version_differences"`
}

// Catalog is a loaded font database. Immutable after construction.
type Catalog struct {
	records  []types.FontRecord
	verDiffs map[string]string

	mu       sync.Mutex
	compiled map[string]glob.Glob
}

// Load parses a catalog document. A nil or unparseable payload yields an
// empty catalog rather than an error: identification degrades to "unknown".
func Load(raw []byte) *Catalog {
	c := &Catalog{compiled: map[string]glob.Glob{}}
	var doc catalogDoc
	if err := json.Unmarshal(raw, &doc); err != nil {
		return c
	}
	for _, rec := range doc.Fonts {
		if strings.TrimSpace(rec.Name) == "" {
			continue
		}
		c.records = append(c.records, rec)
	}
	c.verDiffs = doc.VersionDifferences["font_substitutes"]
	return c
}

// LoadEmbedded returns the catalog bundled into the binary.
func LoadEmbedded() *Catalog {
	return Load(embeddedCatalog)
}

// Records returns the catalog entries.
func (c *Catalog) Records() []types.FontRecord { return c.records }

// SubstituteVersionDifference reports the legacy value a font-substitute
// key historically mapped to, if the key is a known OS version difference.
func (c *Catalog) SubstituteVersionDifference(key string) (string, bool) {
	v, ok := c.verDiffs[key]
	return v, ok
}

// Identify matches a font name against the catalog's glob patterns. Both
// the normalized name and the raw lowercased name are tried so patterns
// written either way keep matching.
func (c *Catalog) Identify(fontName string) (types.FontRecord, bool) {
	normalized := fontutil.NormalizeFontName(fontName)
	if normalized == "" {
		return types.FontRecord{}, false
	}
	raw := strings.ToLower(strings.TrimSpace(fontName))

	for _, rec := range c.records {
		for _, pattern := range rec.Patterns {
			g := c.compile(strings.ToLower(pattern))
			if g == nil {
				continue
			}
			if g.Match(normalized) || g.Match(raw) {
				return rec, true
			}
		}
	}
	return types.FontRecord{}, false
}

func (c *Catalog) compile(pattern string) glob.Glob {
	c.mu.Lock()
	defer c.mu.Unlock()
	if g, ok := c.compiled[pattern]; ok {
		return g
	}
	g, err := glob.Compile(pattern)
	if err != nil {
		c.compiled[pattern] = nil
		return nil
	}
	c.compiled[pattern] = g
	return g
}

// Merge folds another catalog's records into this one, keeping existing
// entries on name collision (the bundled patterns are hand-tuned; the
// community database is only allowed to add).
func (c *Catalog) Merge(other *Catalog) *Catalog {
	merged := &Catalog{
		records:  append([]types.FontRecord(nil), c.records...),
		verDiffs: c.verDiffs,
		compiled: map[string]glob.Glob{},
	}
	seen := map[string]bool{}
	for _, rec := range c.records {
		seen[strings.ToLower(rec.Name)] = true
	}
	for _, rec := range other.records {
		if !seen[strings.ToLower(rec.Name)] {
			merged.records = append(merged.records, rec)
		}
	}
	return merged
}
