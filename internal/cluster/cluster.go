// Package cluster groups fingerprints connected by near-duplicate matches
// into connected components.
package cluster

import (
	"sort"

	"github.com/ludo-technologies/simdup/internal/simhash"
)

// FindClusters builds an undirected graph whose edges are matches and
// returns its connected components, each sorted ascending. Components are
// themselves ordered by their smallest member so output is deterministic
// regardless of match discovery order. Fingerprints with no match do not
// appear in any cluster.
func FindClusters(matches []simhash.Match) [][]uint64 {
	adj := make(map[uint64][]uint64)
	for _, m := range matches {
		a, b := m[0], m[1]
		adj[a] = append(adj[a], b)
		adj[b] = append(adj[b], a)
	}

	vertices := make([]uint64, 0, len(adj))
	for v := range adj {
		vertices = append(vertices, v)
	}
	sort.Slice(vertices, func(i, j int) bool { return vertices[i] < vertices[j] })

	visited := make(map[uint64]bool, len(adj))
	var clusters [][]uint64

	for _, start := range vertices {
		if visited[start] {
			continue
		}
		visited[start] = true
		queue := []uint64{start}
		component := []uint64{start}

		for len(queue) > 0 {
			cur := queue[0]
			queue = queue[1:]

			neighbors := adj[cur]
			sort.Slice(neighbors, func(i, j int) bool { return neighbors[i] < neighbors[j] })
			for _, n := range neighbors {
				if visited[n] {
					continue
				}
				visited[n] = true
				component = append(component, n)
				queue = append(queue, n)
			}
		}

		sort.Slice(component, func(i, j int) bool { return component[i] < component[j] })
		clusters = append(clusters, component)
	}

	sort.Slice(clusters, func(i, j int) bool { return clusters[i][0] < clusters[j][0] })
	return clusters
}
