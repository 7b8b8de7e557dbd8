package app

import (
	"bytes"
	"context"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ludo-technologies/simdup/domain"
	"github.com/ludo-technologies/simdup/service"
)

type fakeReader struct {
	records []domain.Record
	err     error
}

func (f *fakeReader) Read(path string, format domain.InputFormat, textColumn, idColumn string, sample int) ([]domain.Record, error) {
	return f.records, f.err
}

type fakeProgress struct{}

func (fakeProgress) Initialize(int)             {}
func (fakeProgress) Start()                     {}
func (fakeProgress) Complete(bool)              {}
func (fakeProgress) Update(int, int)            {}
func (fakeProgress) SetWriter(io.Writer)        {}
func (fakeProgress) IsInteractive() bool        { return false }
func (fakeProgress) Close()                     {}

type captureWriter struct {
	buf bytes.Buffer
}

func (c *captureWriter) Write(w io.Writer, outputPath string, format domain.OutputFormat, noOpen bool, writeFunc func(io.Writer) error) error {
	return writeFunc(&c.buf)
}

func buildUseCase(t *testing.T, records []domain.Record) (*ClusterUseCase, *captureWriter) {
	t.Helper()
	cw := &captureWriter{}
	uc, err := NewClusterUseCaseBuilder().
		WithService(service.NewClusterService()).
		WithReader(&fakeReader{records: records}).
		WithFormatter(service.NewClusterFormatter()).
		WithOutputWriter(cw).
		WithProgress(fakeProgress{}).
		Build()
	require.NoError(t, err)
	return uc, cw
}

func TestClusterUseCase_HashFormat(t *testing.T) {
	records := []domain.Record{
		{ID: "1", Hash: 0x0},
		{ID: "2", Hash: 0x1},
		{ID: "3", Hash: 0xF0},
	}
	uc, cw := buildUseCase(t, records)

	req := &domain.ClusterRequest{
		Format:     domain.InputFormatHash,
		TextColumn: "text",
		IDColumn:   "id",
		Window:     5,
		Blocks:     4,
		Distance:   1,
		Workers:    2,
	}

	resp, err := uc.Execute(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, 3, resp.RecordCount)
	assert.Len(t, resp.Clusters, 1)
	assert.Contains(t, cw.buf.String(), "id\thash\tcluster")
}

func TestClusterUseCase_InvalidRequest(t *testing.T) {
	uc, _ := buildUseCase(t, nil)
	req := &domain.ClusterRequest{
		Format:     domain.InputFormatHash,
		TextColumn: "text",
		IDColumn:   "id",
		Window:     5,
		Blocks:     4,
		Distance:   4,
	}
	_, err := uc.Execute(context.Background(), req)
	assert.Error(t, err)
}

func TestClusterUseCase_BuilderRequiresDeps(t *testing.T) {
	_, err := NewClusterUseCaseBuilder().Build()
	assert.Error(t, err)
}
