// Command modelctl checks scoring artifacts and publishes them to MinIO.
//
//	modelctl validate -dir ./model
//	modelctl publish -dir ./model
//
// publish reads MinIO settings from the same MINIO_* and MODEL_PREFIX
// variables as the server.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/dtroode/scorepredictor-server/internal/config"
	"github.com/dtroode/scorepredictor-server/internal/model"
	"github.com/dtroode/scorepredictor-server/internal/scoring"
	storage "github.com/dtroode/scorepredictor-server/internal/storage/minio"
)

var errUsage = errors.New("usage: modelctl <validate|publish> -dir <artifact dir>")

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	_ = godotenv.Load()

	if err := run(ctx, os.Args[1:], os.Stdout, connectStore); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string, out io.Writer, connect func(context.Context) (model.ArtifactStorage, error)) error {
	if len(args) == 0 {
		return errUsage
	}

	fs := flag.NewFlagSet(args[0], flag.ContinueOnError)
	fs.SetOutput(out)
	dir := fs.String("dir", "model", "directory holding the artifact files")
	if err := fs.Parse(args[1:]); err != nil {
		return err
	}

	files := scoring.DefaultArtifactFiles()
	pipeline, err := scoring.Load(ctx, scoring.NewDirSource(*dir), files)
	if err != nil {
		return err
	}

	switch args[0] {
	case "validate":
		describe(out, pipeline)
		return nil
	case "publish":
		store, err := connect(ctx)
		if err != nil {
			return err
		}
		if err := publish(ctx, store, *dir, files); err != nil {
			return err
		}

		// Read back what was written so a partial upload is caught here.
		published, err := scoring.Load(ctx, store, files)
		if err != nil {
			return fmt.Errorf("published artifacts do not load: %w", err)
		}
		describe(out, published)
		return nil
	default:
		return errUsage
	}
}

func publish(ctx context.Context, store model.ArtifactStorage, dir string, files scoring.ArtifactFiles) error {
	src := scoring.NewDirSource(dir)
	for _, key := range files.Keys() {
		rc, err := src.Download(ctx, key)
		if err != nil {
			return fmt.Errorf("failed to open %s: %w", key, err)
		}
		err = store.Upload(ctx, key, rc)
		rc.Close()
		if err != nil {
			return err
		}
	}
	return nil
}

func describe(out io.Writer, p *scoring.Pipeline) {
	d := p.Descriptor()
	fmt.Fprintf(out, "model: %s\n", d.Name)
	for i, name := range d.Features {
		if b, ok := d.Bounds[name]; ok {
			fmt.Fprintf(out, "  %d. %s [%g, %g]\n", i+1, name, b.Min, b.Max)
			continue
		}
		fmt.Fprintf(out, "  %d. %s\n", i+1, name)
	}
}

func connectStore(ctx context.Context) (model.ArtifactStorage, error) {
	cfg, err := config.NewConfig()
	if err != nil {
		return nil, err
	}

	store, err := storage.Connect(ctx, storage.Options{
		Endpoint:  cfg.Storage.Endpoint,
		AccessKey: cfg.Storage.AccessKey,
		SecretKey: cfg.Storage.SecretKey,
		UseSSL:    cfg.Storage.UseSSL,
		Bucket:    cfg.Storage.Bucket,
		Prefix:    cfg.Model.Prefix,
	})
	if err != nil {
		return nil, err
	}
	return store, nil
}
