package catalog

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/kbukum/halokit/errors"
	"github.com/kbukum/halokit/logger"
)

const (
	// TypeTag marks shard files as derived object catalogs.
	TypeTag = "halo_catalog"
	// DefaultBaseName is used when the source descriptor has no name.
	DefaultBaseName = "analysis"
	// DefaultExt is the shard file extension.
	DefaultExt = "json"
	// LocalFieldType tags a field as stored in the shard file itself.
	LocalFieldType = "."
)

// Metadata describes one shard.
type Metadata struct {
	// ElementCount is the number of surviving objects in this shard.
	ElementCount int `json:"element_count"`
	// TypeTag identifies the artifact kind.
	TypeTag string `json:"type_tag"`
	// WorkerRank is the rank of the worker that produced this shard.
	WorkerRank int `json:"worker_rank"`
	// RunID identifies the run that produced this shard.
	RunID string `json:"run_id,omitempty"`
}

// Shard is the serialized form of one worker's catalog.
type Shard struct {
	Metadata Metadata `json:"metadata"`
	// FieldTypes maps each quantity key to its storage location; "."
	// means the value columns live in this file.
	FieldTypes map[string]string `json:"field_types"`
	// Columns holds one ordered value sequence per quantity key.
	Columns map[string][]any `json:"columns"`
}

// Writer persists local catalogs under a fixed output directory.
type Writer struct {
	outputDir string
	ext       string
	log       *logger.Logger
}

// Option configures a Writer.
type Option func(*Writer)

// WithExt overrides the shard file extension.
func WithExt(ext string) Option {
	return func(w *Writer) { w.ext = strings.TrimPrefix(ext, ".") }
}

// WithLogger sets the writer's logger.
func WithLogger(log *logger.Logger) Option {
	return func(w *Writer) { w.log = log }
}

// NewWriter creates a Writer rooted at outputDir.
func NewWriter(outputDir string, opts ...Option) *Writer {
	w := &Writer{
		outputDir: outputDir,
		ext:       DefaultExt,
		log:       logger.GetGlobalLogger().WithComponent("catalog"),
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// WriteOptions carries optional overrides for a Write call.
type WriteOptions struct {
	// Columns replaces the payload built from the records. Used when the
	// quantities logically belong to an external dataset.
	Columns map[string][]any
	// FieldTypes overrides per-field storage-location tags.
	FieldTypes map[string]string
	// RunID is attached to the shard metadata.
	RunID string
}

// BaseName derives an output base name from a source descriptor name.
// Any directory prefix and trailing extension are stripped; an empty
// descriptor falls back to DefaultBaseName.
func BaseName(descriptor string) string {
	base := filepath.Base(descriptor)
	if base == "." || base == string(filepath.Separator) || base == "" {
		return DefaultBaseName
	}
	if i := strings.LastIndex(base, "."); i > 0 {
		base = base[:i]
	}
	if base == "" {
		return DefaultBaseName
	}
	return base
}

// Write persists one worker's local catalog shard and returns its path.
// keys fixes the column set and order; records is the catalog, one
// quantity mapping per surviving object in processed order.
func (w *Writer) Write(source string, rank int, keys []string, records []map[string]any, opts WriteOptions) (string, error) {
	base := BaseName(source)
	dir := filepath.Join(w.outputDir, base)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return "", errors.CatalogWrite(dir, err)
	}
	path := filepath.Join(dir, fmt.Sprintf("%s.%d.%s", base, rank, w.ext))

	columns := opts.Columns
	count := len(records)
	if columns == nil {
		columns = make(map[string][]any, len(keys))
		if count > 0 {
			for _, key := range keys {
				col := make([]any, 0, count)
				for _, rec := range records {
					col = append(col, rec[key])
				}
				columns[key] = col
			}
		}
	} else {
		count = 0
		for _, col := range columns {
			if len(col) > count {
				count = len(col)
			}
		}
	}

	fieldTypes := make(map[string]string, len(keys))
	for _, key := range keys {
		fieldTypes[key] = LocalFieldType
	}
	for key, ft := range opts.FieldTypes {
		fieldTypes[key] = ft
	}

	shard := Shard{
		Metadata: Metadata{
			ElementCount: count,
			TypeTag:      TypeTag,
			WorkerRank:   rank,
			RunID:        opts.RunID,
		},
		FieldTypes: fieldTypes,
		Columns:    columns,
	}

	payload, err := json.MarshalIndent(shard, "", "  ")
	if err != nil {
		return "", errors.CatalogWrite(path, err)
	}
	if err := os.WriteFile(path, payload, 0o640); err != nil {
		return "", errors.CatalogWrite(path, err)
	}

	w.log.Info(fmt.Sprintf("saving catalog (%d targets): %s", count, path),
		logger.Fields(logger.FieldWorkerRank, rank, logger.FieldRunID, opts.RunID))
	return path, nil
}

// ReadShard loads a shard file written by Write.
func ReadShard(path string) (*Shard, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("catalog: reading %s: %w", path, err)
	}
	var shard Shard
	if err := json.Unmarshal(data, &shard); err != nil {
		return nil, fmt.Errorf("catalog: parsing %s: %w", path, err)
	}
	return &shard, nil
}
