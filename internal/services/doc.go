// Package services holds the error classification and request-context
// helpers shared by the upload backends and the asset-cloud client.
//
// Errors are tagged with sentinel markers (ErrRateLimited, ErrModerated,
// ErrConfiguration, ErrTransport, ErrResolution, ErrValidation) so the
// dispatcher can decide between retrying, substituting a name, skipping an
// input, or aborting the pass without inspecting message text.
package services
