package loam

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/aretw0/loam"
	"github.com/mitchellh/mapstructure"

	"github.com/aretw0/stagedup/pkg/domain"
	"github.com/aretw0/stagedup/pkg/ports"
)

// Loader adapts a Loam document directory to the ports.StageLoader interface.
// Every document describes one prim; its location gives the default path, so
// World/Box.md becomes /World/Box.
type Loader struct {
	Repo    *loam.TypedRepository[PrimMetadata]
	StageID string
	UpAxis  domain.Axis
}

var _ ports.StageLoader = (*Loader)(nil)

// New creates a new Loam adapter.
func New(repo *loam.TypedRepository[PrimMetadata], stageID string) *Loader {
	return &Loader{
		Repo:    repo,
		StageID: stageID,
		UpAxis:  domain.AxisZ,
	}
}

// Open initializes a read-only Loam repository at dir and wraps it.
// The stage ID defaults to the directory name.
func Open(dir string) (*Loader, error) {
	absPath, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("invalid path: %w", err)
	}

	// Strict keeps numbers as json.Number instead of float64; read-only avoids
	// Loam's dev sandbox since nothing is ever written back.
	repo, err := loam.Init(absPath,
		loam.WithStrict(true),
		loam.WithReadOnly(true),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize loam: %w", err)
	}
	return New(loam.NewTypedRepository[PrimMetadata](repo), filepath.Base(absPath)), nil
}

// LoadStage reads every document and assembles a snapshot.
// Ancestors that have no document of their own are added as untyped prims.
func (l *Loader) LoadStage(ctx context.Context) (*domain.StageSnapshot, error) {
	docs, err := l.Repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("loam list failed: %w", err)
	}

	snap := domain.NewSnapshot(l.StageID)
	snap.UpAxis = l.UpAxis
	seen := make(map[domain.Path]string, len(docs))

	for _, doc := range docs {
		spec, err := primFromMetadata(doc.ID, doc.Data)
		if err != nil {
			return nil, err
		}
		if existing, ok := seen[spec.Path]; ok {
			return nil, fmt.Errorf("collision detected: prim '%s' is defined in both '%s' and '%s'", spec.Path, existing, doc.ID)
		}
		seen[spec.Path] = doc.ID
		snap.Prims = append(snap.Prims, spec)
	}

	for _, spec := range append([]domain.PrimSpec(nil), snap.Prims...) {
		for p := spec.Path.Parent(); !p.IsRoot(); p = p.Parent() {
			if _, ok := seen[p]; ok {
				continue
			}
			seen[p] = ""
			snap.Prims = append(snap.Prims, domain.PrimSpec{Path: p})
		}
	}

	snap.Normalize()
	return snap, nil
}

func primFromMetadata(docID string, meta PrimMetadata) (domain.PrimSpec, error) {
	raw := meta.Path
	if raw == "" {
		raw = "/" + trimExtension(docID)
	}
	path, err := domain.ParsePath(raw)
	if err != nil || path.IsRoot() {
		return domain.PrimSpec{}, fmt.Errorf("document %s: %w: %q", docID, domain.ErrInvalidPath, raw)
	}

	spec := domain.PrimSpec{
		Path:         path,
		Type:         domain.PrimType(meta.Type),
		Instanceable: meta.Instanceable,
	}
	for _, ref := range meta.References {
		p, err := domain.ParsePath(ref)
		if err != nil {
			return domain.PrimSpec{}, fmt.Errorf("document %s: reference: %w", docID, err)
		}
		spec.References = append(spec.References, p)
	}

	if len(meta.Translate) > 0 {
		v, err := decodeVec3(meta.Translate)
		if err != nil {
			return domain.PrimSpec{}, fmt.Errorf("document %s: translate: %w", docID, err)
		}
		spec.XformOps = []domain.XformOpSpec{{
			Name:  domain.OpTranslate.OpName(),
			Type:  domain.OpTranslate,
			Value: &v,
		}}
	}
	return spec, nil
}

func decodeVec3(raw []any) (domain.Vec3, error) {
	if len(raw) != 3 {
		return domain.Vec3{}, fmt.Errorf("want 3 components, got %d", len(raw))
	}
	var xyz [3]float64
	for i, c := range raw {
		// json.Number is a string kind; weak decoding parses it.
		if err := mapstructure.WeakDecode(c, &xyz[i]); err != nil {
			return domain.Vec3{}, fmt.Errorf("component %d: %w", i, err)
		}
	}
	return domain.Vec3{X: xyz[0], Y: xyz[1], Z: xyz[2]}, nil
}

func trimExtension(id string) string {
	id = filepath.ToSlash(id)
	if ext := filepath.Ext(id); ext != "" {
		id = strings.TrimSuffix(id, ext)
	}
	return strings.TrimPrefix(id, "/")
}
