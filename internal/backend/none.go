package backend

import (
	"context"

	"macadam/internal/services"
)

// NoneBackend refuses every upload. It exists so a pass can verify that
// nothing needs syncing: any changed input reaching it is an error.
type NoneBackend struct{}

// NewNone returns the refusing backend.
func NewNone() *NoneBackend {
	return &NoneBackend{}
}

func (*NoneBackend) Upload(ctx context.Context, info UploadInfo) (Response, error) {
	return Response{}, services.Wrap(services.ErrConfiguration, "backend", "none upload",
		"input "+info.Name+" changed but the none target cannot upload", nil)
}
