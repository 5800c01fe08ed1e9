// Package assetid models the identifier assigned to an uploaded asset.
//
// An identifier is either a numeric ID handed out by the remote hosting
// service or a relative path inside a local content directory. Both render
// to a URI-like string (remoteasset://<id>, localasset://<path>) that gets
// embedded as a literal in generated code and stored in the sync manifest.
package assetid
