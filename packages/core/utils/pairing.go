package utils

import "math"

// DefaultCompatibilityBar is the minimum compatibility a candidate pair must
// reach to be considered a fair fight. Compatibility is 10 minus the gap
// between the two players' historical averages, so the default admits pairs
// up to 3 rating points apart.
const DefaultCompatibilityBar = 7.0

// PairCandidate is one duelist candidate with resolvable league statistics.
type PairCandidate struct {
	PlayerID  uint
	AvgRating float64
}

// Pair is an ordered candidate pairing; Challenger is the lower player id so
// the same two players always produce the same pair.
type Pair struct {
	Challenger    uint
	Rival         uint
	Compatibility float64
}

// Compatibility scores how balanced a duel between two averages would be.
// Identical averages score 10, each point of gap costs one.
func Compatibility(avgA, avgB float64) float64 {
	return round2(10 - math.Abs(avgA-avgB))
}

// BestPair ranks every distinct candidate pair by compatibility and returns
// the best one clearing minBar. The avoid pair (the league's previous duel)
// is skipped as long as some other pair also clears the bar; if the repeat
// pairing is the only fair fight it is allowed. Returns false when no pair
// clears the bar.
func BestPair(candidates []PairCandidate, minBar float64, avoid *Pair) (Pair, bool) {
	var pairs []Pair
	for i := 0; i < len(candidates); i++ {
		for j := i + 1; j < len(candidates); j++ {
			a, b := candidates[i], candidates[j]
			if a.PlayerID == b.PlayerID {
				continue
			}
			p := orderedPair(a.PlayerID, b.PlayerID, Compatibility(a.AvgRating, b.AvgRating))
			if p.Compatibility < minBar {
				continue
			}
			pairs = append(pairs, p)
		}
	}
	if len(pairs) == 0 {
		return Pair{}, false
	}

	best, found := Pair{Compatibility: -1}, false
	for _, p := range pairs {
		if avoid != nil && p.Challenger == avoid.Challenger && p.Rival == avoid.Rival {
			continue
		}
		if better(p, best) {
			best, found = p, true
		}
	}
	if found {
		return best, true
	}

	// Only the repeat pairing cleared the bar.
	best = Pair{Compatibility: -1}
	for _, p := range pairs {
		if better(p, best) {
			best = p
		}
	}
	return best, true
}

// better breaks compatibility ties on the lower (challenger, rival) ids so
// selection is deterministic regardless of candidate order.
func better(p, q Pair) bool {
	if p.Compatibility != q.Compatibility {
		return p.Compatibility > q.Compatibility
	}
	if p.Challenger != q.Challenger {
		return p.Challenger < q.Challenger
	}
	return p.Rival < q.Rival
}

func orderedPair(a, b uint, compat float64) Pair {
	if a > b {
		a, b = b, a
	}
	return Pair{Challenger: a, Rival: b, Compatibility: compat}
}
