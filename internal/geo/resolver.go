// Package geo binds free-text branch names to geographic coordinates.
package geo

import (
	"sort"
	"strings"

	"github.com/openshelf/branch-events/internal/domain"
)

// Raw location field candidates; spellings vary across feeds.
var (
	branchNameFields = []string{"branchname", "branch_name", "name"}
	latFields        = []string{"lat", "latitude"}
	lngFields        = []string{"lng", "long", "lon", "longitude"}
	physicalFields   = []string{"physicalbranch", "physical_branch", "is_physical"}
	addressFields    = []string{"address", "street_address"}
	phoneFields      = []string{"phone", "telephone"}
)

// stripTokens are suffix/substring tokens removed when generating name
// variants, longest first so "public library" goes before "library".
// "tpl" is the organization abbreviation carried by some feeds.
var stripTokens = []string{"public library", "library", "branch", "tpl"}

// Entry is the coordinate payload shared by every name variant of one
// branch.
type Entry struct {
	Name    string
	Coords  domain.Coordinates
	Address string
	Phone   string
}

// Index maps normalized name variants to branch entries. Many keys point
// to the same entry. Built once per location dataset fetch, read-only
// thereafter.
type Index struct {
	byName  map[string]*Entry
	keys    []string // sorted, for deterministic fuzzy scans
	entries []*Entry // one per branch, insertion order
}

// BuildIndex constructs the name index from raw branch records. Records
// are skipped unless flagged as a physical branch with valid, non-zero
// coordinates.
func BuildIndex(records []domain.RawRecord) *Index {
	ix := &Index{byName: make(map[string]*Entry)}
	for _, rec := range records {
		name := strings.TrimSpace(rec.Text(branchNameFields...))
		if name == "" || !rec.Flag(physicalFields...) {
			continue
		}
		lat, okLat := rec.Number(latFields...)
		lng, okLng := rec.Number(lngFields...)
		if !okLat || !okLng || (lat == 0 && lng == 0) {
			continue
		}
		entry := &Entry{
			Name:    name,
			Coords:  domain.Coordinates{Lat: lat, Lng: lng},
			Address: rec.Text(addressFields...),
			Phone:   rec.Text(phoneFields...),
		}
		ix.entries = append(ix.entries, entry)
		for _, variant := range nameVariants(name) {
			if _, exists := ix.byName[variant]; !exists {
				ix.byName[variant] = entry
				ix.keys = append(ix.keys, variant)
			}
		}
	}
	sort.Strings(ix.keys)
	return ix
}

// AddEntry registers a pre-resolved branch, used for the static fallback
// coordinate table when the branch dataset is unreachable.
func (ix *Index) AddEntry(entry Entry) {
	e := entry
	ix.entries = append(ix.entries, &e)
	for _, variant := range nameVariants(e.Name) {
		if _, exists := ix.byName[variant]; !exists {
			ix.byName[variant] = &e
			ix.keys = append(ix.keys, variant)
		}
	}
	sort.Strings(ix.keys)
}

func NewIndex() *Index {
	return &Index{byName: make(map[string]*Entry)}
}

// nameVariants generates the index keys for one branch name: the name
// as-is, lower-cased, and the lower-cased name with each strip token
// removed. Variants of length <= 1 are dropped.
func nameVariants(name string) []string {
	lower := strings.ToLower(strings.TrimSpace(name))
	variants := []string{strings.TrimSpace(name), lower}
	for _, tok := range stripTokens {
		if stripped := stripToken(lower, tok); stripped != lower {
			variants = append(variants, stripped)
		}
	}
	out := variants[:0]
	for _, v := range variants {
		if len(v) > 1 {
			out = append(out, v)
		}
	}
	return out
}

func stripToken(lower, token string) string {
	return strings.Join(strings.Fields(strings.ReplaceAll(lower, token, " ")), " ")
}

// Resolve binds a free-text branch name to coordinates. Strategies, in
// order: exact key, lower-cased key, stripped query variants, then a
// fuzzy scan where one string contains the other and the length
// difference is at most 5 characters. The fuzzy winner is the key with
// the smallest length difference, ties broken by lexicographic order.
// A false return means "coordinates unknown", not an error.
func (ix *Index) Resolve(name string) (domain.Coordinates, bool) {
	e, ok := ix.Lookup(name)
	if !ok {
		return domain.Coordinates{}, false
	}
	return e.Coords, true
}

const fuzzyMaxLenDiff = 5

// Lookup is Resolve returning the full entry.
func (ix *Index) Lookup(name string) (*Entry, bool) {
	query := strings.TrimSpace(name)
	if query == "" {
		return nil, false
	}

	if e, ok := ix.byName[query]; ok {
		return e, true
	}
	lower := strings.ToLower(query)
	if e, ok := ix.byName[lower]; ok {
		return e, true
	}
	for _, tok := range stripTokens {
		if stripped := stripToken(lower, tok); stripped != lower {
			if e, ok := ix.byName[stripped]; ok {
				return e, true
			}
		}
	}

	// Fuzzy scan over sorted keys: first match at the smallest length
	// difference wins, which makes ties resolve lexicographically.
	var best *Entry
	bestDiff := fuzzyMaxLenDiff + 1
	for _, key := range ix.keys {
		diff := len(key) - len(lower)
		if diff < 0 {
			diff = -diff
		}
		if diff >= bestDiff {
			continue
		}
		if strings.Contains(key, lower) || strings.Contains(lower, key) {
			best = ix.byName[key]
			bestDiff = diff
		}
	}
	if best == nil {
		return nil, false
	}
	return best, true
}

// Branches returns one entry per indexed branch, sorted by name.
func (ix *Index) Branches() []*Entry {
	out := make([]*Entry, len(ix.entries))
	copy(out, ix.entries)
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

func (ix *Index) Len() int { return len(ix.entries) }
