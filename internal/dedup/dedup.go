package dedup

import "cityforge/internal/catalog"

// Result holds the deduplicated candidates and the rejection accounting.
type Result struct {
	New               []catalog.Candidate
	ExistingMatched   []catalog.Candidate
	DuplicatesDropped int
}

// Run deduplicates candidates by canonical key and splits off those whose
// name slug is already known. First occurrence wins; later collisions are
// dropped with no field reconciliation, insertion order is the only
// tie-break.
func Run(candidates []catalog.Candidate, existingIDs map[string]struct{}) Result {
	seen := make(map[string]struct{}, len(candidates))
	unique := make([]catalog.Candidate, 0, len(candidates))
	dropped := 0
	for _, candidate := range candidates {
		key := candidate.Key()
		if _, dup := seen[key]; dup {
			dropped++
			continue
		}
		seen[key] = struct{}{}
		unique = append(unique, candidate)
	}

	result := Result{DuplicatesDropped: dropped}
	for _, candidate := range unique {
		if _, known := existingIDs[candidate.Slug()]; known {
			result.ExistingMatched = append(result.ExistingMatched, candidate)
		} else {
			result.New = append(result.New, candidate)
		}
	}
	return result
}
