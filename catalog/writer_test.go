package catalog

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/kbukum/halokit/logger"
)

func testWriter(t *testing.T) (*Writer, string) {
	t.Helper()
	dir := t.TempDir()
	return NewWriter(dir, WithLogger(logger.Nop())), dir
}

func TestBaseName(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"halos_64.0.bin", "halos_64.0"},
		{"catalog.h5", "catalog"},
		{"plain", "plain"},
		{"/data/run7/halos.bin", "halos"},
		{"", "analysis"},
		{".hidden", ".hidden"},
	}
	for _, tt := range tests {
		if got := BaseName(tt.in); got != tt.want {
			t.Errorf("BaseName(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestWrite_ShardLayout(t *testing.T) {
	w, dir := testWriter(t)

	records := []map[string]any{
		{"virial_radius": 1.5, "particle_mass": 2e13},
		{"virial_radius": 2.5, "particle_mass": 3e13},
	}
	path, err := w.Write("halos_64.bin", 0, []string{"virial_radius", "particle_mass"}, records, WriteOptions{RunID: "run-1"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := filepath.Join(dir, "halos_64", "halos_64.0.json")
	if path != want {
		t.Errorf("expected path %s, got %s", want, path)
	}

	shard, err := ReadShard(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if shard.Metadata.ElementCount != 2 {
		t.Errorf("expected element_count 2, got %d", shard.Metadata.ElementCount)
	}
	if shard.Metadata.TypeTag != TypeTag {
		t.Errorf("expected type tag %q, got %q", TypeTag, shard.Metadata.TypeTag)
	}
	if shard.Metadata.RunID != "run-1" {
		t.Errorf("expected run id, got %q", shard.Metadata.RunID)
	}
	if len(shard.Columns["virial_radius"]) != 2 {
		t.Errorf("expected 2 virial_radius values, got %v", shard.Columns["virial_radius"])
	}
	if shard.Columns["virial_radius"][1] != 2.5 {
		t.Errorf("expected ordered column values, got %v", shard.Columns["virial_radius"])
	}
}

func TestWrite_DefaultFieldTypes(t *testing.T) {
	w, _ := testWriter(t)

	path, err := w.Write("c", 0, []string{"a", "b"}, []map[string]any{{"a": 1.0, "b": 2.0}}, WriteOptions{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	shard, err := ReadShard(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if shard.FieldTypes["a"] != LocalFieldType || shard.FieldTypes["b"] != LocalFieldType {
		t.Errorf("expected %q tags, got %v", LocalFieldType, shard.FieldTypes)
	}
}

func TestWrite_FieldTypeOverride(t *testing.T) {
	w, _ := testWriter(t)

	path, err := w.Write("c", 0, []string{"a"}, []map[string]any{{"a": 1.0}},
		WriteOptions{FieldTypes: map[string]string{"a": "external_profiles"}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	shard, err := ReadShard(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if shard.FieldTypes["a"] != "external_profiles" {
		t.Errorf("expected override tag, got %v", shard.FieldTypes)
	}
}

func TestWrite_ExplicitColumns(t *testing.T) {
	w, _ := testWriter(t)

	cols := map[string][]any{"id": {1.0, 2.0, 3.0}}
	path, err := w.Write("c", 1, []string{"id"}, nil, WriteOptions{Columns: cols})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	shard, err := ReadShard(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if shard.Metadata.ElementCount != 3 {
		t.Errorf("expected count from explicit columns, got %d", shard.Metadata.ElementCount)
	}
}

func TestWrite_EmptyCatalog(t *testing.T) {
	w, _ := testWriter(t)

	path, err := w.Write("c", 0, []string{"a"}, nil, WriteOptions{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	shard, err := ReadShard(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if shard.Metadata.ElementCount != 0 {
		t.Errorf("expected empty shard, got %d", shard.Metadata.ElementCount)
	}
	if len(shard.Columns) != 0 {
		t.Errorf("expected no columns for empty catalog, got %v", shard.Columns)
	}
}

func TestWrite_ShardPerRank(t *testing.T) {
	w, dir := testWriter(t)

	for rank := 0; rank < 2; rank++ {
		if _, err := w.Write("halos.bin", rank, []string{"a"}, []map[string]any{{"a": float64(rank)}}, WriteOptions{}); err != nil {
			t.Fatalf("rank %d: %v", rank, err)
		}
	}

	entries, err := os.ReadDir(filepath.Join(dir, "halos"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("expected 2 shard files, got %d", len(entries))
	}

	total := 0
	for _, e := range entries {
		shard, err := ReadShard(filepath.Join(dir, "halos", e.Name()))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		total += shard.Metadata.ElementCount
	}
	if total != 2 {
		t.Errorf("expected element counts to sum to 2, got %d", total)
	}
}

func TestWrite_CustomExt(t *testing.T) {
	dir := t.TempDir()
	w := NewWriter(dir, WithExt(".dat"), WithLogger(logger.Nop()))

	path, err := w.Write("c", 0, nil, nil, WriteOptions{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if filepath.Ext(path) != ".dat" {
		t.Errorf("expected .dat extension, got %s", path)
	}
}
