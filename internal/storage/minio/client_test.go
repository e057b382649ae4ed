package minio

import (
	"bytes"
	"context"
	"errors"
	"io"
	"testing"

	minioLib "github.com/minio/minio-go/v7"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dtroode/scorepredictor-server/internal/model"
	"github.com/dtroode/scorepredictor-server/internal/scoring"
)

// fakeMinio keeps objects in memory and records the names it was asked for.
type fakeMinio struct {
	bucketExists    bool
	bucketExistsErr error
	makeBucketErr   error
	madeBucket      string

	objects map[string][]byte
	putErr  error
	getErr  error
	statErr error

	putNames    []string
	contentType string
}

func newFakeMinio() *fakeMinio {
	return &fakeMinio{bucketExists: true, objects: map[string][]byte{}}
}

func (f *fakeMinio) BucketExists(_ context.Context, _ string) (bool, error) {
	return f.bucketExists, f.bucketExistsErr
}

func (f *fakeMinio) MakeBucket(_ context.Context, name string, _ minioLib.MakeBucketOptions) error {
	f.madeBucket = name
	return f.makeBucketErr
}

func (f *fakeMinio) PutObject(_ context.Context, _ string, name string, r io.Reader, _ int64, opts minioLib.PutObjectOptions) (minioLib.UploadInfo, error) {
	if f.putErr != nil {
		return minioLib.UploadInfo{}, f.putErr
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return minioLib.UploadInfo{}, err
	}
	f.objects[name] = data
	f.putNames = append(f.putNames, name)
	f.contentType = opts.ContentType
	return minioLib.UploadInfo{Key: name, Size: int64(len(data))}, nil
}

func (f *fakeMinio) GetObject(_ context.Context, _ string, name string, _ minioLib.GetObjectOptions) (io.ReadCloser, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	return io.NopCloser(bytes.NewReader(f.objects[name])), nil
}

func (f *fakeMinio) StatObject(_ context.Context, _ string, name string, _ minioLib.StatObjectOptions) (minioLib.ObjectInfo, error) {
	if f.statErr != nil {
		return minioLib.ObjectInfo{}, f.statErr
	}
	data, ok := f.objects[name]
	if !ok {
		return minioLib.ObjectInfo{}, minioLib.ErrorResponse{Code: "NoSuchKey", Key: name}
	}
	return minioLib.ObjectInfo{Key: name, Size: int64(len(data))}, nil
}

func TestNewArtifactStore_Bucket(t *testing.T) {
	ctx := context.Background()

	t.Run("exists", func(t *testing.T) {
		api := newFakeMinio()
		s, err := NewArtifactStore(ctx, api, "models", "")
		require.NoError(t, err)
		assert.Equal(t, "models", s.bucket)
		assert.Empty(t, api.madeBucket)
	})

	t.Run("created", func(t *testing.T) {
		api := newFakeMinio()
		api.bucketExists = false
		_, err := NewArtifactStore(ctx, api, "models", "")
		require.NoError(t, err)
		assert.Equal(t, "models", api.madeBucket)
	})

	t.Run("check fails", func(t *testing.T) {
		api := newFakeMinio()
		api.bucketExistsErr = errors.New("boom")
		s, err := NewArtifactStore(ctx, api, "models", "")
		assert.Nil(t, s)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to ensure bucket exists")
	})

	t.Run("create fails", func(t *testing.T) {
		api := newFakeMinio()
		api.bucketExists = false
		api.makeBucketErr = errors.New("denied")
		s, err := NewArtifactStore(ctx, api, "models", "")
		assert.Nil(t, s)
		require.Error(t, err)
	})
}

func TestArtifactStore_UploadUsesPrefix(t *testing.T) {
	api := newFakeMinio()
	s, err := NewArtifactStore(context.Background(), api, "models", "/releases/v2/")
	require.NoError(t, err)

	require.NoError(t, s.Upload(context.Background(), "model.json", bytes.NewReader([]byte(`{}`))))
	assert.Equal(t, []string{"releases/v2/model.json"}, api.putNames)
	assert.Equal(t, "application/json", api.contentType)

	ok, err := s.Exists(context.Background(), "model.json")
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestArtifactStore_UploadError(t *testing.T) {
	api := newFakeMinio()
	api.putErr = errors.New("put-fail")
	s := &ArtifactStore{api: api, bucket: "models"}

	err := s.Upload(context.Background(), "model.json", bytes.NewReader(nil))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to upload artifact")
}

func TestArtifactStore_Download(t *testing.T) {
	ctx := context.Background()

	t.Run("found", func(t *testing.T) {
		api := newFakeMinio()
		api.objects["model.json"] = []byte("abc")
		s := &ArtifactStore{api: api, bucket: "models"}

		rc, err := s.Download(ctx, "model.json")
		require.NoError(t, err)
		defer rc.Close()
		data, err := io.ReadAll(rc)
		require.NoError(t, err)
		assert.Equal(t, []byte("abc"), data)
	})

	t.Run("missing", func(t *testing.T) {
		s := &ArtifactStore{api: newFakeMinio(), bucket: "models"}
		rc, err := s.Download(ctx, "model.json")
		assert.Nil(t, rc)
		require.ErrorIs(t, err, model.ErrNotFound)
	})

	t.Run("get fails", func(t *testing.T) {
		api := newFakeMinio()
		api.objects["model.json"] = []byte("abc")
		api.getErr = errors.New("get-fail")
		s := &ArtifactStore{api: api, bucket: "models"}

		_, err := s.Download(ctx, "model.json")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to get artifact")
	})
}

func TestArtifactStore_Exists(t *testing.T) {
	ctx := context.Background()

	t.Run("absent", func(t *testing.T) {
		s := &ArtifactStore{api: newFakeMinio(), bucket: "models"}
		ok, err := s.Exists(ctx, "scaler.json")
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("stat fails", func(t *testing.T) {
		api := newFakeMinio()
		api.statErr = errors.New("stat-fail")
		s := &ArtifactStore{api: api, bucket: "models"}
		ok, err := s.Exists(ctx, "scaler.json")
		require.Error(t, err)
		assert.False(t, ok)
	})
}

// The bucket serves as a pipeline source end to end.
func TestArtifactStore_LoadsPipeline(t *testing.T) {
	ctx := context.Background()
	api := newFakeMinio()
	s, err := NewArtifactStore(ctx, api, "models", "current")
	require.NoError(t, err)

	files := scoring.DefaultArtifactFiles()
	docs := map[string]string{
		files.Model:       `{"intercept": 50, "coefficients": [10, 0]}`,
		files.Scaler:      `{"mean": [0, 0], "scale": [1, 1]}`,
		files.ModelInfo:   `{"model_name": "linear", "features": ["study_hours", "attendance"]}`,
		files.FeatureInfo: `{"study_hours": {"min": 0, "max": 12}, "attendance": {"min": 0, "max": 100}}`,
	}
	for key, doc := range docs {
		require.NoError(t, s.Upload(ctx, key, bytes.NewReader([]byte(doc))))
	}

	p, err := scoring.Load(ctx, s, files)
	require.NoError(t, err)

	score, err := p.Predict([]float64{3})
	require.NoError(t, err)
	assert.Equal(t, 80.0, score)
}
