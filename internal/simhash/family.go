package simhash

import "fmt"

// Family is the set of permutations that, between them, guarantee any pair
// of fingerprints within Hamming distance d shares a common high prefix
// under at least one member.
type Family struct {
	Permutations []*Permutation
}

// BuildFamily enumerates the C(B, B-d) permutations required by the
// near-duplicate search: one per size-(B-d) subset of blocks placed in the
// leading prefix in its original relative order, followed by the
// remaining blocks in their original relative order.
func BuildFamily(b, d int) (*Family, error) {
	if d <= 0 || b > Bits || b <= d {
		return nil, fmt.Errorf("simhash: invalid blocks/distance (blocks=%d, distance=%d): require 0 < distance < blocks <= %d", b, d, Bits)
	}

	blocks, err := BlockMasks(b)
	if err != nil {
		return nil, err
	}

	lead := b - d
	subsets := combinations(b, lead)
	perms := make([]*Permutation, 0, len(subsets))
	for _, chosen := range subsets {
		perms = append(perms, permutationFromSubset(blocks, chosen, lead))
	}
	return &Family{Permutations: perms}, nil
}

func permutationFromSubset(blocks []uint64, chosen []int, lead int) *Permutation {
	inChosen := make([]bool, len(blocks))
	for _, idx := range chosen {
		inChosen[idx] = true
	}

	ordered := make([]uint64, 0, len(blocks))
	for _, idx := range chosen {
		ordered = append(ordered, blocks[idx])
	}
	for i, mask := range blocks {
		if !inChosen[i] {
			ordered = append(ordered, mask)
		}
	}
	return NewPermutation(ordered, lead)
}

// combinations returns every size-k subset of {0,...,n-1}, as sorted index
// slices, in lexicographic order. This is the textbook next-combination
// algorithm (the same one Python's itertools.combinations documents as its
// reference implementation).
func combinations(n, k int) [][]int {
	if k < 0 || k > n {
		return nil
	}
	if k == 0 {
		return [][]int{{}}
	}

	indices := make([]int, k)
	for i := range indices {
		indices[i] = i
	}
	result := [][]int{append([]int(nil), indices...)}

	for {
		i := k - 1
		for i >= 0 && indices[i] == i+n-k {
			i--
		}
		if i < 0 {
			return result
		}
		indices[i]++
		for j := i + 1; j < k; j++ {
			indices[j] = indices[j-1] + 1
		}
		result = append(result, append([]int(nil), indices...))
	}
}
