package scoring

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/dtroode/scorepredictor-server/internal/model"
)

// Source provides artifact documents by name.
type Source interface {
	Download(ctx context.Context, key string) (io.ReadCloser, error)
}

// ArtifactFiles names the four documents a pipeline is built from.
type ArtifactFiles struct {
	Model       string
	Scaler      string
	ModelInfo   string
	FeatureInfo string
}

// DefaultArtifactFiles returns the conventional artifact names.
func DefaultArtifactFiles() ArtifactFiles {
	return ArtifactFiles{
		Model:       "model.json",
		Scaler:      "scaler.json",
		ModelInfo:   "model_info.json",
		FeatureInfo: "feature_info.json",
	}
}

// Keys returns the artifact names in load order.
func (f ArtifactFiles) Keys() []string {
	return []string{f.Model, f.Scaler, f.ModelInfo, f.FeatureInfo}
}

type modelInfo struct {
	Name     string   `json:"model_name"`
	Features []string `json:"features"`
}

// Load reads artifacts from src and builds a pipeline. Every failure wraps
// model.ErrModelLoad.
func Load(ctx context.Context, src Source, files ArtifactFiles) (*Pipeline, error) {
	var (
		lm     LinearModel
		scaler StandardScaler
		info   modelInfo
		bounds map[string]Bounds
	)

	if err := decode(ctx, src, files.Model, &lm); err != nil {
		return nil, err
	}
	if err := decode(ctx, src, files.Scaler, &scaler); err != nil {
		return nil, err
	}
	if err := decode(ctx, src, files.ModelInfo, &info); err != nil {
		return nil, err
	}
	if err := decode(ctx, src, files.FeatureInfo, &bounds); err != nil {
		return nil, err
	}

	n := len(info.Features)
	if len(lm.Coefficients) != n {
		return nil, fmt.Errorf("%w: model has %d coefficients for %d features", model.ErrModelLoad, len(lm.Coefficients), n)
	}
	if len(scaler.Mean) != n || len(scaler.Scale) != n {
		return nil, fmt.Errorf("%w: scaler does not match %d features", model.ErrModelLoad, n)
	}

	descriptor := Descriptor{
		Name:     info.Name,
		Features: info.Features,
		Bounds:   make(map[string]Bounds, n),
	}
	for _, name := range info.Features {
		if b, ok := bounds[name]; ok {
			descriptor.Bounds[name] = b
		}
	}

	return NewPipeline(descriptor, &scaler, &lm)
}

func decode(ctx context.Context, src Source, key string, dst any) error {
	rc, err := src.Download(ctx, key)
	if err != nil {
		return fmt.Errorf("%w: open %s: %v", model.ErrModelLoad, key, err)
	}
	defer rc.Close()

	if err := json.NewDecoder(rc).Decode(dst); err != nil {
		return fmt.Errorf("%w: decode %s: %v", model.ErrModelLoad, key, err)
	}
	return nil
}

// DirSource reads artifacts from a local directory.
type DirSource struct {
	dir string
}

func NewDirSource(dir string) *DirSource {
	return &DirSource{dir: dir}
}

func (s *DirSource) Download(_ context.Context, key string) (io.ReadCloser, error) {
	return os.Open(filepath.Join(s.dir, filepath.Clean("/"+key)))
}
