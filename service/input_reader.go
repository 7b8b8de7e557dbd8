package service

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"sync"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/ludo-technologies/simdup/domain"
)

// InputReader reads records from a single file, stdin, or a directory of
// shard files, in either hash or json format. Grounded on
// original_source/main.cpp's read_hashes, with directory-of-shards support
// added as a supplemental convenience over the reference binary's
// single-file input.
type InputReader struct {
	executor domain.ParallelExecutor
}

// NewInputReader creates an InputReader. Multi-shard directories are read
// through a ParallelExecutor, grounded on the same SimpleTask-per-unit
// shape service/parallel_executor.go exposes elsewhere.
func NewInputReader() *InputReader {
	return &InputReader{executor: NewParallelExecutor()}
}

// Read loads records from path (a file path, "-" for stdin, or a directory
// of *.tsv/*.jsonl/*.json shards). When sample > 0, reading stops once
// that many records have been collected, which forces sequential reads so
// later shards can be skipped once the sample is full. Otherwise, shards
// read from a directory are fetched concurrently and reassembled in sorted
// order.
func (r *InputReader) Read(path string, format domain.InputFormat, textColumn, idColumn string, sample int) ([]domain.Record, error) {
	files, err := r.resolveFiles(path)
	if err != nil {
		return nil, err
	}

	if sample <= 0 && len(files) > 1 {
		return r.readFilesParallel(files, format, textColumn, idColumn)
	}

	var records []domain.Record
	for _, f := range files {
		remaining := 0
		if sample > 0 {
			remaining = sample - len(records)
			if remaining <= 0 {
				break
			}
		}

		recs, err := r.readFile(f, format, textColumn, idColumn, remaining)
		if err != nil {
			return nil, err
		}
		records = append(records, recs...)
	}
	return records, nil
}

// readFilesParallel reads every shard concurrently through the
// ParallelExecutor and reassembles the per-shard results in the original
// sorted-file order, so the final record order stays deterministic
// regardless of which shard finishes first.
func (r *InputReader) readFilesParallel(files []string, format domain.InputFormat, textColumn, idColumn string) ([]domain.Record, error) {
	results := make([][]domain.Record, len(files))
	var mu sync.Mutex

	tasks := make([]domain.ExecutableTask, len(files))
	for i, f := range files {
		i, f := i, f
		tasks[i] = NewSimpleTask(f, true, func(ctx context.Context) (interface{}, error) {
			recs, err := r.readFile(f, format, textColumn, idColumn, 0)
			if err != nil {
				return nil, err
			}
			mu.Lock()
			results[i] = recs
			mu.Unlock()
			return nil, nil
		})
	}

	if err := r.executor.Execute(context.Background(), tasks); err != nil {
		return nil, err
	}

	var records []domain.Record
	for _, recs := range results {
		records = append(records, recs...)
	}
	return records, nil
}

// resolveFiles expands path into a sorted list of source paths. "-" reads
// from stdin. A directory is expanded via doublestar into its *.tsv,
// *.jsonl, and *.json shards, read in sorted order for determinism.
func (r *InputReader) resolveFiles(path string) ([]string, error) {
	if path == "-" {
		return []string{"-"}, nil
	}

	info, err := os.Stat(path)
	if err != nil {
		return nil, domain.NewFileNotFoundError(path, err)
	}
	if !info.IsDir() {
		return []string{path}, nil
	}

	matches, err := doublestar.Glob(os.DirFS(path), "**/*.{tsv,jsonl,json}")
	if err != nil {
		return nil, domain.NewInvalidInputError(fmt.Sprintf("failed to glob shard directory %s", path), err)
	}
	sort.Strings(matches)

	files := make([]string, len(matches))
	for i, m := range matches {
		files[i] = filepath.Join(path, m)
	}
	return files, nil
}

func (r *InputReader) readFile(path string, format domain.InputFormat, textColumn, idColumn string, limit int) ([]domain.Record, error) {
	var src io.Reader
	if path == "-" {
		src = os.Stdin
	} else {
		f, err := os.Open(path)
		if err != nil {
			return nil, domain.NewFileNotFoundError(path, err)
		}
		defer f.Close()
		src = f
	}

	switch format {
	case domain.InputFormatHash:
		return readHashFormat(src, limit)
	case domain.InputFormatJSON:
		return readJSONFormat(src, textColumn, idColumn, limit)
	default:
		return nil, domain.NewUnsupportedFormatError(string(format))
	}
}

func readHashFormat(src io.Reader, limit int) ([]domain.Record, error) {
	scanner := bufio.NewScanner(src)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	var records []domain.Record
	lineNum := 0
	for scanner.Scan() {
		lineNum++
		if lineNum == 1 {
			continue // header: id\thash
		}
		if limit > 0 && len(records) >= limit {
			break
		}

		line := scanner.Text()
		cols := strings.SplitN(line, "\t", 2)
		if len(cols) != 2 {
			continue
		}
		hash, err := strconv.ParseUint(cols[1], 10, 64)
		if err != nil {
			return nil, domain.NewParseError("input", err)
		}
		records = append(records, domain.Record{ID: cols[0], Hash: hash})
	}
	if err := scanner.Err(); err != nil {
		return nil, domain.NewParseError("input", err)
	}
	return records, nil
}

func readJSONFormat(src io.Reader, textColumn, idColumn string, limit int) ([]domain.Record, error) {
	scanner := bufio.NewScanner(src)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	var records []domain.Record
	for scanner.Scan() {
		if limit > 0 && len(records) >= limit {
			break
		}

		line := scanner.Text()
		if strings.TrimSpace(line) == "" {
			continue
		}

		var row map[string]interface{}
		if err := json.Unmarshal([]byte(line), &row); err != nil {
			return nil, domain.NewParseError("input", err)
		}

		text, _ := row[textColumn].(string)
		id := stringifyID(row[idColumn])
		records = append(records, domain.Record{ID: id, Text: text})
	}
	if err := scanner.Err(); err != nil {
		return nil, domain.NewParseError("input", err)
	}
	return records, nil
}

func stringifyID(v interface{}) string {
	switch t := v.(type) {
	case string:
		return t
	case float64:
		return strconv.FormatInt(int64(t), 10)
	default:
		return fmt.Sprintf("%v", t)
	}
}
