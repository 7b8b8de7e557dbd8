package service

import (
	"context"

	"github.com/ludo-technologies/simdup/domain"
	"github.com/ludo-technologies/simdup/internal/cluster"
	"github.com/ludo-technologies/simdup/internal/simhash"
)

// ClusterServiceImpl implements domain.SimhashService by wiring the
// internal/simhash search engine and internal/cluster's connected
// components onto the domain's fingerprint/match vocabulary.
type ClusterServiceImpl struct{}

// NewClusterService creates a ClusterServiceImpl.
func NewClusterService() domain.SimhashService {
	return &ClusterServiceImpl{}
}

// Fold delegates to simhash.Fold.
func (s *ClusterServiceImpl) Fold(features []uint64) uint64 {
	return simhash.Fold(features)
}

// FindMatches validates blocks/distance preconditions and delegates to
// simhash.FindMatches, translating its internal Match type to domain.Match.
func (s *ClusterServiceImpl) FindMatches(ctx context.Context, fingerprints []uint64, blocks, distance, workers int) ([]domain.Match, error) {
	if err := validateSearchParams(blocks, distance); err != nil {
		return nil, err
	}

	matches, err := simhash.FindMatches(ctx, fingerprints, blocks, distance, workers)

	result := make([]domain.Match, len(matches))
	for i, m := range matches {
		result[i] = domain.Match{m[0], m[1]}
	}
	return result, err
}

// FindClusters delegates to cluster.FindClusters, translating domain.Match
// to the internal package's Match type.
func (s *ClusterServiceImpl) FindClusters(matches []domain.Match) [][]uint64 {
	internalMatches := make([]simhash.Match, len(matches))
	for i, m := range matches {
		internalMatches[i] = simhash.Match{m[0], m[1]}
	}
	return cluster.FindClusters(internalMatches)
}

func validateSearchParams(blocks, distance int) error {
	if blocks <= 0 || blocks > simhash.Bits {
		return domain.NewDomainError(domain.ErrCodeInvalidInput, "blocks must be in (0, 64]", nil)
	}
	if distance <= 0 {
		return domain.NewDomainError(domain.ErrCodeInvalidInput, "distance must be positive", nil)
	}
	if distance >= blocks {
		return domain.NewDomainError(domain.ErrCodeInvalidInput, "distance must be less than blocks", nil)
	}
	return nil
}
