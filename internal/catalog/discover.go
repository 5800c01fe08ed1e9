package catalog

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"

	"github.com/bmatcuk/doublestar/v4"

	"macadam/internal/config"
	"macadam/internal/fileutil"
	"macadam/internal/logging"
	"macadam/internal/preprocess"
	"macadam/internal/services"
)

// PathError attaches the offending path to a discovery failure so the
// report names exactly which input could not be cataloged.
type PathError struct {
	Path string
	Err  error
}

func (e PathError) Error() string {
	return fmt.Sprintf("%s: %v", e.Path, e.Err)
}

func (e PathError) Unwrap() error { return e.Err }

// Discover walks the project's input rules and builds the full set of
// inputs with contents, hashes, and resolved per-input settings. Failures
// reading or preprocessing one file are collected per path and do not
// abort unrelated inputs. Asset names are unique by construction: each
// matched file contributes exactly one input named by its relative path.
func Discover(cfg *config.Config, pre preprocess.Preprocessor, logger *slog.Logger) ([]*Input, []PathError, error) {
	logger = logging.NewComponentLogger(logger, "catalog")
	root := cfg.ProjectRoot()
	fsys := os.DirFS(root)

	matched := make(map[string]struct{})
	for _, rule := range cfg.Inputs {
		paths, err := doublestar.Glob(fsys, rule.Glob)
		if err != nil {
			return nil, nil, services.Wrap(services.ErrConfiguration, "catalog", "glob", rule.Glob, err)
		}
		for _, rel := range paths {
			matched[rel] = struct{}{}
		}
	}

	// Deterministic discovery order regardless of rule declaration order.
	rels := make([]string, 0, len(matched))
	for rel := range matched {
		rels = append(rels, rel)
	}
	sort.Strings(rels)

	inputs := make([]*Input, 0, len(rels))
	var failed []PathError
	for _, rel := range rels {
		rule, ok := cfg.RuleFor(rel)
		if !ok {
			// Matched a glob during expansion but no rule claims it;
			// cannot happen unless RuleFor and Glob disagree.
			continue
		}

		input, err := buildInput(root, rel, rule, pre)
		if err != nil {
			logger.Error("skipping input",
				logging.String(logging.FieldAssetName, rel),
				logging.Error(err))
			failed = append(failed, PathError{Path: rel, Err: err})
			continue
		}
		inputs = append(inputs, input)
	}

	logger.Debug("catalog built",
		logging.Int("inputs", len(inputs)),
		logging.Int("failed", len(failed)))
	return inputs, failed, nil
}

func buildInput(root, rel string, rule config.InputRule, pre preprocess.Preprocessor) (*Input, error) {
	source := filepath.Join(root, filepath.FromSlash(rel))
	raw, err := os.ReadFile(source)
	if err != nil {
		return nil, fmt.Errorf("read input: %w", err)
	}

	contents, slice, err := pre.Preprocess(raw)
	if err != nil {
		return nil, fmt.Errorf("preprocess input: %w", err)
	}

	canonical, scale := SplitDPISuffix(rel)

	return &Input{
		Name:          rel,
		SourcePath:    source,
		CanonicalPath: canonical,
		DPIScale:      scale,
		Rule:          rule,
		Contents:      contents,
		Hash:          fileutil.HashBytes(contents),
		Slice:         slice,
	}, nil
}
