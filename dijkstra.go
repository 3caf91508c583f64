package polynav

import "math"

// dijkstra computes shortest paths from node from over the scratch graph
// and stops as soon as node to is selected. It returns the predecessor of
// every node (-1 for none) and whether to was reached.
//
// The frontier is a plain list scanned for the cheapest unvisited entry;
// the first entry of minimal cost wins, which keeps results deterministic.
// Graphs here have tens of nodes, so the scan beats a heap.
func (s *scratch) dijkstra(from, to int) ([]int, bool) {
	n := len(s.nodes)
	cost := make([]float64, n)
	visited := make([]bool, n)
	prev := make([]int, n)
	for i := range cost {
		cost[i] = math.Inf(1)
		prev[i] = -1
	}
	cost[from] = 0

	frontier := []int{from}
	for len(frontier) > 0 {
		cur, at := -1, -1
		for k, i := range frontier {
			if !visited[i] && (cur < 0 || cost[i] < cost[cur]) {
				cur, at = i, k
			}
		}
		if cur == to {
			return prev, true
		}
		if cur < 0 {
			return prev, false
		}
		frontier = append(frontier[:at], frontier[at+1:]...)
		visited[cur] = true

		s.neighbours(cur, func(j int, c float64) {
			tmp := cost[cur] + c
			if tmp < cost[j] {
				cost[j] = tmp
				prev[j] = cur
				if !visited[j] {
					frontier = append(frontier, j)
				}
			}
		})
	}
	return prev, false
}
