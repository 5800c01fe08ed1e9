package syncer

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"

	"github.com/pelletier/go-toml/v2"

	"macadam/internal/fileutil"
	"macadam/internal/logging"
	"macadam/internal/manifest"
)

// Downloader fetches the encoded bytes of a remote asset. The asset-cloud
// client satisfies it.
type Downloader interface {
	Download(ctx context.Context, id uint64) ([]byte, error)
}

// CacheMapOptions configures CreateCacheMap.
type CacheMapOptions struct {
	CacheDir  string
	IndexFile string
}

// cacheIndex is the TOML document written to the index file: identifier
// string to cached file path.
type cacheIndex struct {
	Assets map[string]string `toml:"assets"`
}

// CreateCacheMap downloads every remote asset recorded in the manifest
// into the cache directory, naming each file by its content hash, and
// writes a TOML index mapping identifiers to cached paths. Local
// identifiers already live on disk and are skipped.
func CreateCacheMap(ctx context.Context, man *manifest.Manifest, client Downloader, logger *slog.Logger, opts CacheMapOptions) error {
	logger = logging.NewComponentLogger(logger, "syncer")

	if err := os.MkdirAll(opts.CacheDir, 0o755); err != nil {
		return fmt.Errorf("ensure cache directory: %w", err)
	}

	names := make([]string, 0, man.Len())
	for name := range man.Inputs {
		names = append(names, name)
	}
	sort.Strings(names)

	index := cacheIndex{Assets: map[string]string{}}
	downloaded := map[uint64]string{}

	for _, name := range names {
		entry := man.Inputs[name]
		remoteID, ok := entry.ID.RemoteID()
		if !ok {
			logger.Debug("skipping local identifier",
				logging.String(logging.FieldAssetName, name))
			continue
		}

		// DPI variants and packed siblings can share one remote asset;
		// fetch each remote ID once.
		cached, ok := downloaded[remoteID]
		if !ok {
			data, err := client.Download(ctx, remoteID)
			if err != nil {
				return fmt.Errorf("download asset %d: %w", remoteID, err)
			}
			fileName := fileutil.HashBytes(data) + ".png"
			cached = filepath.Join(opts.CacheDir, fileName)
			if err := fileutil.AtomicWrite(cached, data, 0o644); err != nil {
				return fmt.Errorf("write cached asset %d: %w", remoteID, err)
			}
			downloaded[remoteID] = cached
			logger.Info("cached remote asset",
				logging.Uint64("id", remoteID),
				logging.String("path", cached))
		}
		index.Assets[entry.ID.String()] = cached
	}

	data, err := toml.Marshal(index)
	if err != nil {
		return fmt.Errorf("encode cache index: %w", err)
	}
	if err := fileutil.AtomicWrite(opts.IndexFile, data, 0o644); err != nil {
		return fmt.Errorf("write cache index: %w", err)
	}
	logger.Info("cache map written",
		logging.Int("assets", len(index.Assets)),
		logging.String("index", opts.IndexFile))
	return nil
}
