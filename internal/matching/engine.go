package matching

import (
	"sort"

	id "edumatch/pkg/domain"
)

// Run executes one matching pass over a detached snapshot. It is a pure
// function: identical snapshots produce byte-identical result lists.
//
// The algorithm is single-round, priority-greedy, and quota-respecting (the
// snapshot only contains minted seats, which quota enforcement already
// bounded at mint time):
//
//  1. Candidates are ordered by (aggregate descending, candidate ascending);
//     the secondary key is the deterministic tie-break.
//  2. Each candidate takes the lowest seat id at the first institution, in
//     priority order, with remaining capacity. Institution-scoped candidates
//     only consider their target institutions.
//  3. A candidate who finds no capacity is recorded unmatched. There is no
//     waitlisting or re-ranking: once placed, an assignment is never
//     revisited.
func Run(snap Snapshot) []MatchResult {
	available := make(map[id.InstitutionID][]id.SeatID)
	for _, s := range snap.Seats {
		available[s.Institution] = append(available[s.Institution], s.ID)
	}
	for inst := range available {
		ids := available[inst]
		sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	}

	order := institutionOrder(available, snap.Priority)

	ranked := make([]CandidateRanking, len(snap.Rankings))
	copy(ranked, snap.Rankings)
	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].Aggregate != ranked[j].Aggregate {
			return ranked[i].Aggregate > ranked[j].Aggregate
		}
		return ranked[i].Candidate < ranked[j].Candidate
	})

	results := make([]MatchResult, 0, len(ranked))
	for _, c := range ranked {
		result := MatchResult{
			Candidate: c.Candidate,
			Score:     c.Aggregate,
		}

		for _, inst := range candidateOrder(order, c.Targets) {
			seats := available[inst]
			if len(seats) == 0 {
				continue
			}
			result.Institution = inst
			result.SeatID = seats[0]
			result.Admitted = true
			available[inst] = seats[1:]
			break
		}

		results = append(results, result)
	}
	return results
}

// institutionOrder ranks institutions: the configured priority list first,
// then everything else lexicographically. Keeps runs deterministic with or
// without configuration.
func institutionOrder(available map[id.InstitutionID][]id.SeatID, priority []id.InstitutionID) []id.InstitutionID {
	seen := make(map[id.InstitutionID]bool, len(priority))
	var order []id.InstitutionID
	for _, inst := range priority {
		if _, ok := available[inst]; ok && !seen[inst] {
			order = append(order, inst)
			seen[inst] = true
		}
	}

	var rest []id.InstitutionID
	for inst := range available {
		if !seen[inst] {
			rest = append(rest, inst)
		}
	}
	sort.Slice(rest, func(i, j int) bool { return rest[i] < rest[j] })
	return append(order, rest...)
}

// candidateOrder filters the global order down to the candidate's targets,
// preserving priority. An unscoped candidate competes for every institution.
func candidateOrder(order []id.InstitutionID, targets []id.InstitutionID) []id.InstitutionID {
	if len(targets) == 0 {
		return order
	}
	targetSet := make(map[id.InstitutionID]bool, len(targets))
	for _, t := range targets {
		targetSet[t] = true
	}
	var out []id.InstitutionID
	for _, inst := range order {
		if targetSet[inst] {
			out = append(out, inst)
		}
	}
	return out
}
