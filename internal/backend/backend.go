package backend

import (
	"context"

	"macadam/internal/assetid"
)

// UploadInfo is one changed input handed to a backend.
type UploadInfo struct {
	// Name is a cleaned display name for the asset, without extension.
	Name string
	// Contents holds the encoded image bytes after preprocessing.
	Contents []byte
	// Hash is the content hash of Contents.
	Hash string
}

// Response reports where an uploaded input now lives.
type Response struct {
	ID assetid.ID
}

// Backend stores one input somewhere addressable and returns its new
// identifier. Implementations must be safe to call sequentially for the
// whole set of changed inputs in a single pass.
type Backend interface {
	Upload(ctx context.Context, info UploadInfo) (Response, error)
}
