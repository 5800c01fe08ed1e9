package backend

import (
	"context"
	"fmt"

	"macadam/internal/assetid"
	"macadam/internal/debugstore"
	"macadam/internal/fileutil"
	"macadam/internal/services"
)

// DebugBackend simulates the remote service without network access.
// Identifiers are sequential, drawn from a local ledger, and the encoded
// bytes are kept on disk so a pass can be inspected afterwards.
type DebugBackend struct {
	store *debugstore.Store
}

// NewDebug returns a backend backed by the given ledger.
func NewDebug(store *debugstore.Store) *DebugBackend {
	return &DebugBackend{store: store}
}

func (b *DebugBackend) Upload(ctx context.Context, info UploadInfo) (Response, error) {
	id, err := b.store.NextUpload(ctx, info.Name, info.Hash)
	if err != nil {
		return Response{}, services.Wrap(services.ErrTransport, "backend", "debug upload", "record upload", err)
	}
	rel := fmt.Sprintf("%d.png", id)
	if _, err := fileutil.WriteFileInDir(b.store.Dir(), rel, info.Contents); err != nil {
		return Response{}, services.Wrap(services.ErrTransport, "backend", "debug upload", "write debug file", err)
	}
	if err := b.store.RecordPath(ctx, id, rel); err != nil {
		return Response{}, services.Wrap(services.ErrTransport, "backend", "debug upload", "record debug path", err)
	}
	return Response{ID: assetid.Remote(id)}, nil
}
