package procurement

import (
	"sort"

	"github.com/vsinha/vendorsupply/pkg/domain/entities"
)

// RankCandidates orders candidates cheapest first. Ties on price go to the
// nearer supplier, then to the lower supplier id, so the order is total.
func RankCandidates(candidates []entities.Candidate) {
	sort.SliceStable(candidates, func(i, j int) bool {
		return candidateLess(candidates[i], candidates[j])
	})
}

// SelectBestCandidate returns the top-ranked candidate, or false when there are none
func SelectBestCandidate(candidates []entities.Candidate) (entities.Candidate, bool) {
	if len(candidates) == 0 {
		return entities.Candidate{}, false
	}

	ranked := make([]entities.Candidate, len(candidates))
	copy(ranked, candidates)
	RankCandidates(ranked)
	return ranked[0], true
}

func candidateLess(a, b entities.Candidate) bool {
	if c := a.Listing.UnitPrice.Cmp(b.Listing.UnitPrice); c != 0 {
		return c < 0
	}
	if c := a.Supplier.Distance.Cmp(b.Supplier.Distance); c != 0 {
		return c < 0
	}
	return a.Supplier.ID < b.Supplier.ID
}
