package service

import (
	"fmt"
	"io"
	"strconv"

	"github.com/ludo-technologies/simdup/domain"
)

// ClusterFormatter writes clusters as tab-separated rows, grounded on the
// reference binary's write_clusters: header "id\thash\tcluster", one row
// per (id, hash) pair, with a dense cluster index starting at 0.
type ClusterFormatter struct{}

// NewClusterFormatter creates a ClusterFormatter.
func NewClusterFormatter() *ClusterFormatter {
	return &ClusterFormatter{}
}

// Format writes resp.Clusters to w.
func (f *ClusterFormatter) Format(w io.Writer, resp *domain.ClusterResponse) error {
	if _, err := fmt.Fprintln(w, "id\thash\tcluster"); err != nil {
		return domain.NewOutputError("failed to write header", err)
	}

	for clusterID, c := range resp.Clusters {
		for _, rec := range c.Records {
			line := rec.ID + "\t" + strconv.FormatUint(rec.Hash, 10) + "\t" + strconv.Itoa(clusterID)
			if _, err := fmt.Fprintln(w, line); err != nil {
				return domain.NewOutputError("failed to write cluster row", err)
			}
		}
	}
	return nil
}
