package syncer

import (
	"fmt"
	"io"
	"sort"

	"github.com/jedib0t/go-pretty/v6/table"

	"macadam/internal/manifest"
)

// WriteAssetList writes a sorted "name: identifier" line per manifest
// entry, the machine-friendly form consumed by other tooling.
func WriteAssetList(man *manifest.Manifest, w io.Writer) error {
	names := make([]string, 0, man.Len())
	for name := range man.Inputs {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		if _, err := fmt.Fprintf(w, "%s: %s\n", name, man.Inputs[name].ID); err != nil {
			return fmt.Errorf("write asset list: %w", err)
		}
	}
	return nil
}

// RenderAssetTable renders the manifest as a human-friendly table for
// terminal output.
func RenderAssetTable(man *manifest.Manifest) string {
	names := make([]string, 0, man.Len())
	for name := range man.Inputs {
		names = append(names, name)
	}
	sort.Strings(names)

	t := table.NewWriter()
	t.AppendHeader(table.Row{"Asset", "Identifier", "Packable"})
	for _, name := range names {
		entry := man.Inputs[name]
		t.AppendRow(table.Row{name, entry.ID.String(), entry.Packable})
	}
	t.SetStyle(table.StyleLight)
	return t.Render()
}
