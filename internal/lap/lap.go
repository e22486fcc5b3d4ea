package lap

import "math"

// inf stands in for the reference algorithm's abstract MaxCost: a sentinel
// slack value no real edge can reach, used to seed the per-round minimum
// search. Kept well below math.MaxFloat64 so additions/subtractions during
// the dual updates never overflow.
const inf = math.MaxFloat64 / 4

// Solve computes the minimum-cost perfect matching of an n x n cost matrix
// via augmenting-path search over the equality subgraph (dual variables
// sourceCost/targetCost maintained tight as the search proceeds). Returns
// rowToCol where rowToCol[i] is the column assigned to row i.
//
// Grounded on the pack's Hungarian-algorithm reference (generic over a Cost
// interface); this version is specialized to float64, with MinCost=0 and
// MaxCost=inf standing in for the identity/bound costs the generic version
// took as options.
func Solve(cost [][]float64) ([]int, error) {
	n := len(cost)
	if n == 0 {
		return nil, nil
	}
	for _, row := range cost {
		if len(row) != n {
			return nil, ErrShapeMismatch
		}
	}

	sourceCost := make([]float64, n+1)
	targetCost := make([]float64, n+1)
	targetSource := make([]int, n+1)
	for i := range targetSource {
		targetSource[i] = n
	}

	minSlack := make([]float64, n+1)
	targetTrail := make([]int, n+1)
	visited := make([]bool, n+1)

	for i := 0; i < n; i++ {
		// Start search for an augmenting path starting at source node i,
		// via a dummy target node n.
		targetSource[n] = i
		currentTarget := n

		for j := 0; j <= n; j++ {
			minSlack[j] = inf
			targetTrail[j] = n
			visited[j] = false
		}

		for targetSource[currentTarget] != n {
			visited[currentTarget] = true
			currentSource := targetSource[currentTarget]
			delta := inf
			nextTarget := 0

			for j := 0; j < n; j++ {
				if visited[j] {
					continue
				}
				slack := cost[currentSource][j] - sourceCost[currentSource] - targetCost[j]
				if slack < minSlack[j] {
					minSlack[j] = slack
					targetTrail[j] = currentTarget
				}
				if minSlack[j] < delta {
					delta = minSlack[j]
					nextTarget = j
				}
			}
			if delta >= inf {
				return nil, ErrInfeasible
			}

			for j := 0; j <= n; j++ {
				if visited[j] {
					i := targetSource[j]
					sourceCost[i] += delta
					targetCost[j] -= delta
				} else {
					minSlack[j] -= delta
				}
			}
			currentTarget = nextTarget
		}

		// Augmenting path found: flip the matching along the trail back to i.
		for currentTarget != n {
			previousTarget := targetTrail[currentTarget]
			targetSource[currentTarget] = targetSource[previousTarget]
			currentTarget = previousTarget
		}
	}

	rowToCol := make([]int, n)
	for j := 0; j < n; j++ {
		rowToCol[targetSource[j]] = j
	}
	return rowToCol, nil
}
