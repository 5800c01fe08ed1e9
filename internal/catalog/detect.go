package catalog

import (
	"log/slog"

	"macadam/internal/logging"
	"macadam/internal/manifest"
)

// Classification partitions the cataloged inputs by whether they need an
// upload. Order within each slice follows discovery order.
type Classification struct {
	Unchanged []*Input
	Changed   []*Input
}

// Classify compares every input against the previous manifest. Unchanged
// inputs carry their recorded identifier forward and skip upload; changed
// inputs keep a nil identifier until the dispatcher assigns one.
func Classify(inputs []*Input, prev *manifest.Manifest, logger *slog.Logger) Classification {
	logger = logging.NewComponentLogger(logger, "catalog")

	var result Classification
	for _, in := range inputs {
		entry, known := prev.Lookup(in.Name)
		if known && in.UnchangedSince(entry) {
			id := entry.ID
			in.ID = &id
			result.Unchanged = append(result.Unchanged, in)
			continue
		}

		in.ID = nil
		result.Changed = append(result.Changed, in)
		if known {
			logger.Debug("input changed since last sync",
				logging.String(logging.FieldAssetName, in.Name),
				logging.Bool("packable_changed", in.Rule.Packable != entry.Packable))
		} else {
			logger.Debug("input is new",
				logging.String(logging.FieldAssetName, in.Name))
		}
	}

	logger.Info("change detection complete",
		logging.Int("unchanged", len(result.Unchanged)),
		logging.Int("changed", len(result.Changed)))
	return result
}
