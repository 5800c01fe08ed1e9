// Package assetcloud implements the HTTP client for the asset-hosting
// service. Uploads are two-phase: a multipart submission returns an
// operation reference, and the operation is polled with a quadratic
// backoff until the service assigns the asset identifier. Moderated
// display names are retried once with a generic substitute.
package assetcloud
