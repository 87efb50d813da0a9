package catalog

import "strings"

// levenshtein returns the edit distance between a and b. No
// Levenshtein implementation exists anywhere in the example corpus
// (see DESIGN.md); this is the standard iterative two-row
// dynamic-programming form, ported from original_source/catalog.cpp's
// SimilarEntryInSchemas helper rather than invented from scratch.
func levenshtein(a, b string) int {
	ar, br := []rune(a), []rune(b)
	if len(ar) == 0 {
		return len(br)
	}
	if len(br) == 0 {
		return len(ar)
	}

	prev := make([]int, len(br)+1)
	cur := make([]int, len(br)+1)
	for j := range prev {
		prev[j] = j
	}
	for i := 1; i <= len(ar); i++ {
		cur[0] = i
		for j := 1; j <= len(br); j++ {
			cost := 1
			if ar[i-1] == br[j-1] {
				cost = 0
			}
			del := prev[j] + 1
			ins := cur[j-1] + 1
			sub := prev[j-1] + cost
			m := del
			if ins < m {
				m = ins
			}
			if sub < m {
				m = sub
			}
			cur[j] = m
		}
		prev, cur = cur, prev
	}
	return prev[len(br)]
}

// Levenshtein exports the edit-distance primitive for callers outside
// this package (the resolver's suggestion engine applies its own,
// per-name distance cap rather than this registry's default one).
func Levenshtein(a, b string) int { return levenshtein(a, b) }

// maxSimilarityDistance is the cap beyond which a candidate is
// considered unrelated rather than a typo (spec.md §4.2's "cap,
// implementation-defined"; DuckDB uses the same constant for
// SimilarEntryInSchemas).
const maxSimilarityDistance = 3

// ClosestMatch returns the live entry in r whose name is closest to
// target by edit distance, provided that distance is within
// maxDistance. Ties are broken by insertion order (Scan's order).
func (r *Registry) ClosestMatch(tx *TxnState, target string, maxDistance int) (entry *Entry, distance int, ok bool) {
	lowerTarget := strings.ToLower(target)
	best := maxDistance + 1
	for _, e := range r.Scan(tx) {
		d := levenshtein(lowerTarget, strings.ToLower(e.Name))
		if d < best {
			best = d
			entry = e
		}
	}
	if entry == nil || best > maxDistance {
		return nil, 0, false
	}
	return entry, best, true
}

// Similar is ClosestMatch with this package's own typo-tolerance cap,
// used by callers with no more specific cap in mind (spec.md §4.2).
func (r *Registry) Similar(tx *TxnState, target string) (entry *Entry, distance int, ok bool) {
	return r.ClosestMatch(tx, target, maxSimilarityDistance)
}
