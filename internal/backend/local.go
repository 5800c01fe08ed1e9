package backend

import (
	"context"
	"log/slog"
	"path"
	"path/filepath"

	"macadam/internal/assetid"
	"macadam/internal/fileutil"
	"macadam/internal/logging"
	"macadam/internal/services"
)

// localSubdir is where locally synced assets live under the content
// directory.
const localSubdir = ".macadam"

// LocalBackend copies inputs into the configured content directory and
// identifies them by their path relative to that directory. An optional
// scope segments the output so multiple projects can share one directory.
type LocalBackend struct {
	contentDir string
	scope      string
	logger     *slog.Logger
}

// NewLocal returns a backend writing under contentDir. scope may be empty.
func NewLocal(contentDir, scope string, logger *slog.Logger) *LocalBackend {
	return &LocalBackend{
		contentDir: contentDir,
		scope:      scope,
		logger:     logging.NewComponentLogger(logger, "backend"),
	}
}

func (b *LocalBackend) Upload(ctx context.Context, info UploadInfo) (Response, error) {
	rel := path.Join(localSubdir, b.scope, info.Name+".png")
	written, err := fileutil.WriteFileInDir(b.contentDir, filepath.FromSlash(rel), info.Contents)
	if err != nil {
		return Response{}, services.Wrap(services.ErrTransport, "backend", "local upload", "write content file", err)
	}
	b.logger.Info("wrote local asset",
		logging.String(logging.FieldAssetName, info.Name),
		logging.String("path", written))
	return Response{ID: assetid.Local(rel)}, nil
}
