package catalog

import (
	"fmt"
	"path"
	"strings"

	"macadam/internal/assetid"
	"macadam/internal/config"
	"macadam/internal/manifest"
	"macadam/internal/preprocess"
)

// Input is one discovered asset file (or one DPI variant of a logical
// asset), gradually filled in from the filesystem, the previous manifest,
// and upload results. The sync engine owns every Input for the duration of
// a pass; the codegen tree only borrows references.
type Input struct {
	// Name uniquely identifies the asset within the project: the
	// project-relative source path in slash form.
	Name string

	// SourcePath is the absolute filesystem path the bytes were read from.
	SourcePath string

	// CanonicalPath is the project-relative path with any DPI suffix
	// stripped from the file stem. DPI variants of one logical image share
	// a canonical path.
	CanonicalPath string

	// DPIScale is the density multiplier encoded in the filename,
	// 100-based (100 = 1x, 200 = 2x). Defaults to 100.
	DPIScale int

	// Rule carries the per-input settings resolved from the nearest
	// enclosing input rule.
	Rule config.InputRule

	// Contents holds the encoded bytes after preprocessing.
	Contents []byte

	// Hash is the hex SHA-256 digest of Contents.
	Hash string

	// ID is set once an upload succeeds or a manifest entry is carried
	// forward.
	ID *assetid.ID

	// Slice is set when the preprocessor packed this input into a shared
	// spritesheet.
	Slice *preprocess.Slice
}

// UnchangedSince reports whether this input matches the previous sync's
// record. Packability participates because flipping it moves the asset
// between standalone and packed sheets, which changes its identifier.
func (in *Input) UnchangedSince(entry manifest.Entry) bool {
	return in.Hash == entry.Hash && in.Rule.Packable == entry.Packable
}

// HumanName returns a non-unique, log-friendly label for this input.
func (in *Input) HumanName() string {
	stem := strings.TrimSuffix(path.Base(in.CanonicalPath), path.Ext(in.CanonicalPath))
	if in.DPIScale == DefaultDPIScale {
		return stem
	}
	return fmt.Sprintf("%s (%gx)", stem, float64(in.DPIScale)/float64(DefaultDPIScale))
}
