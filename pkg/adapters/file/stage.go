package file

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/aretw0/stagedup/pkg/domain"
)

// ReadStage decodes a YAML stage file. A missing id is taken from the file name.
func ReadStage(path string) (*domain.StageSnapshot, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read stage file: %w", err)
	}

	snap, err := Decode(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	if snap.ID == "" {
		snap.ID = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	return snap, nil
}

// Decode parses a YAML stage document and checks every prim path.
func Decode(data []byte) (*domain.StageSnapshot, error) {
	snap := domain.NewSnapshot("")
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(snap); err != nil {
		return nil, fmt.Errorf("failed to decode stage: %w", err)
	}

	seen := make(map[domain.Path]bool, len(snap.Prims))
	for _, p := range snap.Prims {
		if _, err := domain.ParsePath(string(p.Path)); err != nil || p.Path.IsRoot() {
			return nil, fmt.Errorf("%w: %q", domain.ErrInvalidPath, p.Path)
		}
		if seen[p.Path] {
			return nil, fmt.Errorf("%w: %s listed twice", domain.ErrPrimExists, p.Path)
		}
		seen[p.Path] = true
	}
	snap.Normalize()
	return snap, nil
}

// Encode renders a snapshot as a YAML document.
func Encode(snap *domain.StageSnapshot) ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(snap); err != nil {
		return nil, fmt.Errorf("failed to encode stage: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("failed to encode stage: %w", err)
	}
	return buf.Bytes(), nil
}

// WriteStage writes snap to path atomically.
// It writes to a temporary file first, syncs via fsync, and then renames it to the destination.
func WriteStage(path string, snap *domain.StageSnapshot) error {
	data, err := Encode(snap)
	if err != nil {
		return err
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to ensure stage directory: %w", err)
	}

	// Same directory so the rename stays on one filesystem.
	tmpFile, err := os.CreateTemp(dir, "tmp-"+filepath.Base(path)+"-*")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpPath := tmpFile.Name()
	defer func() {
		_ = tmpFile.Close()
		_ = os.Remove(tmpPath)
	}()

	if _, err := tmpFile.Write(data); err != nil {
		return fmt.Errorf("failed to write to temp file: %w", err)
	}
	if err := tmpFile.Sync(); err != nil {
		return fmt.Errorf("failed to fsync temp file: %w", err)
	}
	// Windows cannot rename an open file.
	if err := tmpFile.Close(); err != nil {
		return fmt.Errorf("failed to close temp file: %w", err)
	}

	// os.Rename fails on Windows if dest exists.
	if _, err := os.Stat(path); err == nil {
		if err := os.Remove(path); err != nil {
			return fmt.Errorf("failed to remove existing stage file for overwrite: %w", err)
		}
	}
	if err := os.Rename(tmpPath, path); err != nil {
		return fmt.Errorf("failed to rename temp file to stage file: %w", err)
	}
	return nil
}
