package service

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ludo-technologies/simdup/domain"
)

func TestClusterFormatter_Format(t *testing.T) {
	resp := &domain.ClusterResponse{
		Clusters: []domain.Cluster{
			{Index: 0, Records: []domain.Record{{ID: "1", Hash: 0x0}, {ID: "2", Hash: 0x1}}},
			{Index: 1, Records: []domain.Record{{ID: "3", Hash: 0x10}}},
		},
	}

	var buf bytes.Buffer
	f := NewClusterFormatter()
	require.NoError(t, f.Format(&buf, resp))

	expected := "id\thash\tcluster\n1\t0\t0\n2\t1\t0\n3\t16\t1\n"
	assert.Equal(t, expected, buf.String())
}

func TestClusterFormatter_NoClusters(t *testing.T) {
	resp := &domain.ClusterResponse{}
	var buf bytes.Buffer
	f := NewClusterFormatter()
	require.NoError(t, f.Format(&buf, resp))
	assert.Equal(t, "id\thash\tcluster\n", buf.String())
}
