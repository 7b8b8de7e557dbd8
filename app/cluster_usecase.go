// Package app orchestrates the clustering workflow: read records, build
// fingerprints, search for near-duplicate matches, group them into
// clusters, and write the report.
package app

import (
	"context"
	"fmt"
	"io"
	"os"
	"runtime"
	"time"

	"github.com/ludo-technologies/simdup/domain"
	"github.com/ludo-technologies/simdup/service"
)

// InputReader reads records for a clustering run.
type InputReader interface {
	Read(path string, format domain.InputFormat, textColumn, idColumn string, sample int) ([]domain.Record, error)
}

// ClusterFormatter writes a finished ClusterResponse.
type ClusterFormatter interface {
	Format(w io.Writer, resp *domain.ClusterResponse) error
}

// ClusterUseCase wires the reader, fingerprint builder, SimHash service,
// formatter, and output writer into a single end-to-end run, grounded on
// the reference CloneUseCase's Execute/Builder shape.
type ClusterUseCase struct {
	service      domain.SimhashService
	reader       InputReader
	formatter    ClusterFormatter
	outputWriter domain.ReportWriter
	progress     domain.ProgressManager
}

// ClusterUseCaseBuilder constructs a ClusterUseCase, validating that every
// dependency is supplied before Build returns.
type ClusterUseCaseBuilder struct {
	uc *ClusterUseCase
}

// NewClusterUseCaseBuilder starts a new builder.
func NewClusterUseCaseBuilder() *ClusterUseCaseBuilder {
	return &ClusterUseCaseBuilder{uc: &ClusterUseCase{}}
}

func (b *ClusterUseCaseBuilder) WithService(s domain.SimhashService) *ClusterUseCaseBuilder {
	b.uc.service = s
	return b
}

func (b *ClusterUseCaseBuilder) WithReader(r InputReader) *ClusterUseCaseBuilder {
	b.uc.reader = r
	return b
}

func (b *ClusterUseCaseBuilder) WithFormatter(f ClusterFormatter) *ClusterUseCaseBuilder {
	b.uc.formatter = f
	return b
}

func (b *ClusterUseCaseBuilder) WithOutputWriter(w domain.ReportWriter) *ClusterUseCaseBuilder {
	b.uc.outputWriter = w
	return b
}

func (b *ClusterUseCaseBuilder) WithProgress(p domain.ProgressManager) *ClusterUseCaseBuilder {
	b.uc.progress = p
	return b
}

// Build validates all dependencies are set and returns the use case.
func (b *ClusterUseCaseBuilder) Build() (*ClusterUseCase, error) {
	uc := b.uc
	if uc.service == nil {
		return nil, domain.NewConfigError("SimhashService is required", nil)
	}
	if uc.reader == nil {
		return nil, domain.NewConfigError("InputReader is required", nil)
	}
	if uc.formatter == nil {
		return nil, domain.NewConfigError("ClusterFormatter is required", nil)
	}
	if uc.outputWriter == nil {
		return nil, domain.NewConfigError("ReportWriter is required", nil)
	}
	if uc.progress == nil {
		return nil, domain.NewConfigError("ProgressManager is required", nil)
	}
	return uc, nil
}

// Execute runs one clustering pass end to end.
func (uc *ClusterUseCase) Execute(ctx context.Context, req *domain.ClusterRequest) (*domain.ClusterResponse, error) {
	start := time.Now()

	if err := req.Validate(); err != nil {
		return nil, err
	}

	records, err := uc.reader.Read(req.InputPath, req.Format, req.TextColumn, req.IDColumn, req.Sample)
	if err != nil {
		return nil, fmt.Errorf("failed to read input: %w", err)
	}

	builder := service.NewFingerprintBuilder(req.Window)

	uc.progress.Initialize(len(records))
	uc.progress.Start()

	hashToRecords := make(map[uint64][]domain.Record)
	for i, rec := range records {
		hash := rec.Hash
		if req.Format == domain.InputFormatJSON {
			hash = builder.Build(rec.Text)
		}
		hashToRecords[hash] = append(hashToRecords[hash], domain.Record{ID: rec.ID, Text: rec.Text, Hash: hash})
		uc.progress.Update(i+1, len(records))
	}

	fingerprints := make([]uint64, 0, len(hashToRecords))
	for h := range hashToRecords {
		fingerprints = append(fingerprints, h)
	}

	workers := req.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	matches, err := uc.service.FindMatches(ctx, fingerprints, req.Blocks, req.Distance, workers)
	uc.progress.Complete(err == nil)
	if err != nil {
		return nil, fmt.Errorf("failed to search for matches: %w", err)
	}

	rawClusters := uc.service.FindClusters(matches)
	clusters := make([]domain.Cluster, 0, len(rawClusters))
	for idx, hashes := range rawClusters {
		var recs []domain.Record
		for _, h := range hashes {
			recs = append(recs, hashToRecords[h]...)
		}
		clusters = append(clusters, domain.Cluster{Index: idx, Records: recs})
	}

	resp := &domain.ClusterResponse{
		Clusters:    clusters,
		RecordCount: len(records),
		MatchCount:  len(matches),
		Duration:    time.Since(start),
	}

	writeErr := uc.outputWriter.Write(os.Stdout, req.OutputPath, domain.OutputFormatTSV, false, func(w io.Writer) error {
		return uc.formatter.Format(w, resp)
	})
	if writeErr != nil {
		return nil, fmt.Errorf("failed to write output: %w", writeErr)
	}
	resp.GeneratedFile = req.OutputPath

	return resp, nil
}
