package backend

import (
	"context"

	"macadam/internal/assetid"
	"macadam/internal/services/assetcloud"
)

// RemoteBackend uploads inputs to the asset-hosting service.
type RemoteBackend struct {
	client *assetcloud.Client
}

// NewRemote wraps a configured asset-cloud client.
func NewRemote(client *assetcloud.Client) *RemoteBackend {
	return &RemoteBackend{client: client}
}

func (b *RemoteBackend) Upload(ctx context.Context, info UploadInfo) (Response, error) {
	id, err := b.client.UploadWithModerationRetry(ctx, assetcloud.UploadRequest{
		Name:     info.Name,
		Contents: info.Contents,
	})
	if err != nil {
		return Response{}, err
	}
	return Response{ID: assetid.Remote(id)}, nil
}
