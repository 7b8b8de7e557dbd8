package simhash

import (
	"context"
	"sort"
	"sync"

	"github.com/ludo-technologies/simdup/internal/bitutil"
)

// Match is a canonical (min, max) pair of fingerprints within the
// configured Hamming distance.
type Match [2]uint64

// FindMatches runs the permutation-family scan/compare search over s and
// returns every match within Hamming distance d. It parallelizes the outer
// loop over permutations across workers goroutines (workers <= 0 behaves
// as 1); the intra-run pair comparison loop stays lock-free, with results
// merged into the shared match set only at each permutation's join point,
// grounded on the same semaphore-and-waitgroup shape as
// service.ParallelExecutorImpl.
//
// Cancellation is cooperative and checked at permutation boundaries: once
// ctx is done, no further permutations are dispatched and FindMatches
// returns the partial match set gathered so far together with ctx.Err().
func FindMatches(ctx context.Context, s []uint64, b, d, workers int) ([]Match, error) {
	family, err := BuildFamily(b, d)
	if err != nil {
		return nil, err
	}
	if workers <= 0 {
		workers = 1
	}

	v := make([]uint64, len(s))
	copy(v, s)

	matches := make(map[Match]struct{})
	var mu sync.Mutex
	var wg sync.WaitGroup
	sem := make(chan struct{}, workers)

	var cancelled bool
	for _, p := range family.Permutations {
		select {
		case <-ctx.Done():
			cancelled = true
		default:
		}
		if cancelled {
			break
		}

		p := p
		sem <- struct{}{}
		wg.Add(1)
		go func() {
			defer wg.Done()
			defer func() { <-sem }()

			local := scanPermutation(v, p, d)

			mu.Lock()
			for _, m := range local {
				matches[m] = struct{}{}
			}
			mu.Unlock()
		}()
	}
	wg.Wait()

	result := make([]Match, 0, len(matches))
	for m := range matches {
		result = append(result, m)
	}

	if cancelled {
		return result, ctx.Err()
	}
	return result, nil
}

// scanPermutation permutes and sorts a private copy of v, sweeps its
// equal-prefix runs under p's search mask, and returns the canonical
// matches found within those runs. It touches no shared state, so callers
// may run it concurrently across permutations.
func scanPermutation(v []uint64, p *Permutation, d int) []Match {
	scratch := make([]uint64, len(v))
	for i, h := range v {
		scratch[i] = p.Apply(h)
	}
	sort.Slice(scratch, func(i, j int) bool { return scratch[i] < scratch[j] })

	mask := p.SearchMask()
	var local []Match

	start := 0
	for start < len(scratch) {
		prefix := scratch[start] & mask
		end := start + 1
		for end < len(scratch) && scratch[end]&mask == prefix {
			end++
		}

		for i := start; i < end; i++ {
			for j := i + 1; j < end; j++ {
				if bitutil.PopcountXor(scratch[i], scratch[j]) <= d {
					a, b := p.Reverse(scratch[i]), p.Reverse(scratch[j])
					if a > b {
						a, b = b, a
					}
					local = append(local, Match{a, b})
				}
			}
		}
		start = end
	}
	return local
}
