package align

import "github.com/smarterGerman/diktat/internal/similarity"

const costEpsilon = 1e-9

// Align computes the minimum-cost edit script between a reference and a
// candidate word sequence. Matching a word costs 0, substituting costs
// 1 − similarity, inserting or deleting costs 1. The backtrace prefers the
// diagonal (match/substitute) over delete over insert when costs tie, which
// keeps the script deterministic and minimizes the op count.
func Align(ref, cand []string, preserveCase bool) []Op {
	n := len(ref)
	m := len(cand)

	cost := make([][]float64, n+1)
	for i := range cost {
		cost[i] = make([]float64, m+1)
	}
	for i := 1; i <= n; i++ {
		cost[i][0] = float64(i)
	}
	for j := 1; j <= m; j++ {
		cost[0][j] = float64(j)
	}
	for i := 1; i <= n; i++ {
		for j := 1; j <= m; j++ {
			diag := cost[i-1][j-1] + pairCost(ref[i-1], cand[j-1], preserveCase)
			del := cost[i-1][j] + 1
			ins := cost[i][j-1] + 1
			best := diag
			if del < best {
				best = del
			}
			if ins < best {
				best = ins
			}
			cost[i][j] = best
		}
	}

	ops := make([]Op, 0, n+m)
	i, j := n, m
	for i > 0 || j > 0 {
		switch {
		case i > 0 && j > 0 && cost[i][j] >= cost[i-1][j-1]+pairCost(ref[i-1], cand[j-1], preserveCase)-costEpsilon:
			kind := Substitute
			if similarity.AreExactlyEqual(ref[i-1], cand[j-1], preserveCase) {
				kind = Match
			}
			ops = append(ops, Op{Kind: kind, RefIndex: i - 1, CandIndex: j - 1})
			i--
			j--
		case i > 0 && cost[i][j] >= cost[i-1][j]+1-costEpsilon:
			ops = append(ops, Op{Kind: Delete, RefIndex: i - 1, CandIndex: -1})
			i--
		default:
			ops = append(ops, Op{Kind: Insert, RefIndex: -1, CandIndex: j - 1})
			j--
		}
	}
	reverseOps(ops)
	return ops
}

// pairCost is 0 for exactly equal words and 1 − similarity otherwise.
func pairCost(ref, cand string, preserveCase bool) float64 {
	if similarity.AreExactlyEqual(ref, cand, preserveCase) {
		return 0
	}
	return 1 - similarity.Similarity(ref, cand)
}

func reverseOps(ops []Op) {
	for l, r := 0, len(ops)-1; l < r; l, r = l+1, r-1 {
		ops[l], ops[r] = ops[r], ops[l]
	}
}
