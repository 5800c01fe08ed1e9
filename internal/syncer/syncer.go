package syncer

import (
	"context"
	"fmt"
	"log/slog"
	"path"
	"strings"
	"time"

	"github.com/gofrs/flock"
	"github.com/google/uuid"

	"macadam/internal/backend"
	"macadam/internal/catalog"
	"macadam/internal/codegen"
	"macadam/internal/config"
	"macadam/internal/debugstore"
	"macadam/internal/fileutil"
	"macadam/internal/logging"
	"macadam/internal/manifest"
	"macadam/internal/preprocess"
	"macadam/internal/services"
	"macadam/internal/services/assetcloud"
)

// Target selects where changed inputs are uploaded.
type Target string

const (
	TargetRemote Target = "remote"
	TargetNone   Target = "none"
	TargetDebug  Target = "debug"
	TargetLocal  Target = "local"
)

// ParseTarget validates a target name from the command line.
func ParseTarget(value string) (Target, error) {
	switch Target(value) {
	case TargetRemote, TargetNone, TargetDebug, TargetLocal:
		return Target(value), nil
	default:
		return "", services.Wrap(services.ErrConfiguration, "syncer", "parse target",
			fmt.Sprintf("unknown target %q (expected remote, none, debug, or local)", value), nil)
	}
}

// Options configures one sync pass.
type Options struct {
	Target     Target
	Retry      int
	RetryDelay time.Duration

	// Backend overrides target-based construction. Tests use it to
	// substitute scripted backends.
	Backend backend.Backend
}

// Syncer runs sync passes over one project. A pass is single-threaded:
// changed inputs are dispatched strictly one at a time, in discovery
// order, and the manifest is written once at the end.
type Syncer struct {
	cfg    *config.Config
	pre    preprocess.Preprocessor
	logger *slog.Logger
	opts   Options
}

// New builds a Syncer for the loaded project configuration.
func New(cfg *config.Config, pre preprocess.Preprocessor, logger *slog.Logger, opts Options) *Syncer {
	return &Syncer{
		cfg:    cfg,
		pre:    pre,
		logger: logging.NewComponentLogger(logger, "syncer"),
		opts:   opts,
	}
}

// Run executes a full sync pass: discover, classify, dispatch, persist,
// generate. It returns an error when any input failed, so callers exit
// non-zero rather than claiming success.
func (s *Syncer) Run(ctx context.Context) error {
	sessionID := uuid.NewString()
	ctx = services.WithSessionID(ctx, sessionID)
	logger := s.logger.With(logging.String(logging.FieldSessionID, sessionID))
	logger.Info("starting sync pass",
		logging.String(logging.FieldTarget, string(s.opts.Target)),
		logging.String("project", s.cfg.Name))

	lock := flock.New(s.cfg.Paths.ManifestPath + ".lock")
	locked, err := lock.TryLock()
	if err != nil {
		return fmt.Errorf("acquire sync lock: %w", err)
	}
	if !locked {
		return services.Wrap(services.ErrConfiguration, "syncer", "lock",
			"another sync pass is already running for this project", nil)
	}
	defer lock.Unlock()

	prev, err := manifest.Load(s.cfg.Paths.ManifestPath)
	if err != nil {
		return fmt.Errorf("load manifest: %w", err)
	}

	inputs, pathErrs, err := catalog.Discover(s.cfg, s.pre, logger)
	if err != nil {
		return fmt.Errorf("discover inputs: %w", err)
	}
	for _, pathErr := range pathErrs {
		logger.Error("input could not be cataloged",
			logging.String("path", pathErr.Path),
			logging.Error(pathErr.Err))
	}

	classified := catalog.Classify(inputs, prev, logger)

	be, cleanup, err := s.buildBackend(logger)
	if err != nil {
		return err
	}
	defer cleanup()
	dispatcher := backend.NewRetry(be, s.opts.Retry, s.opts.RetryDelay, logger)

	failed, fatal := s.dispatch(ctx, logger, dispatcher, classified.Changed)
	if fatal != nil {
		return fatal
	}

	if err := s.saveManifest(inputs, pathErrs, prev); err != nil {
		return err
	}

	if err := s.generate(inputs, logger); err != nil {
		return err
	}

	total := len(failed) + len(pathErrs)
	if total > 0 {
		return fmt.Errorf("sync pass finished with %d failed input(s)", total)
	}
	logger.Info("sync pass complete",
		logging.Int("inputs", len(inputs)),
		logging.Int("uploaded", len(classified.Changed)))
	return nil
}

// dispatch uploads each changed input in order. For the remote and debug
// targets a failed input is recorded and the pass continues; for none and
// local there is no partial-success notion, so the first failure aborts
// the pass. Configuration errors always abort.
func (s *Syncer) dispatch(ctx context.Context, logger *slog.Logger, dispatcher backend.Backend, changed []*catalog.Input) ([]error, error) {
	var failed []error
	for _, input := range changed {
		requestID := uuid.NewString()
		uploadCtx := services.WithRequestID(services.WithAssetName(ctx, input.Name), requestID)

		logger.Info("uploading input",
			logging.String(logging.FieldAssetName, input.Name),
			logging.String(logging.FieldRequestID, requestID))

		resp, err := dispatcher.Upload(uploadCtx, backend.UploadInfo{
			Name:     uploadName(input),
			Contents: input.Contents,
			Hash:     input.Hash,
		})
		if err != nil {
			logger.Error("upload failed",
				logging.String(logging.FieldAssetName, input.Name),
				logging.String(logging.FieldRequestID, requestID),
				logging.Error(err))
			if IsPassFatal(s.opts.Target, err) {
				return nil, fmt.Errorf("upload %s: %w", input.Name, err)
			}
			failed = append(failed, fmt.Errorf("upload %s: %w", input.Name, err))
			continue
		}

		id := resp.ID
		input.ID = &id
		logger.Info("upload complete",
			logging.String(logging.FieldAssetName, input.Name),
			logging.String("id", id.String()))
	}
	return failed, nil
}

// saveManifest writes the pass outcome atomically. Inputs that uploaded
// (or carried an identifier forward) get fresh entries; failed inputs keep
// whatever the previous manifest recorded, so a later pass retries them.
// That covers both upload failures and inputs that could not be cataloged
// at all this pass.
func (s *Syncer) saveManifest(inputs []*catalog.Input, pathErrs []catalog.PathError, prev *manifest.Manifest) error {
	next := manifest.New()
	for _, input := range inputs {
		if input.ID != nil {
			next.Set(input.Name, manifest.Entry{
				Hash:     input.Hash,
				Packable: input.Rule.Packable,
				ID:       *input.ID,
			})
			continue
		}
		if entry, ok := prev.Lookup(input.Name); ok {
			next.Set(input.Name, entry)
		}
	}
	for _, pathErr := range pathErrs {
		if entry, ok := prev.Lookup(pathErr.Path); ok {
			next.Set(pathErr.Path, entry)
		}
	}
	if err := next.Save(s.cfg.Paths.ManifestPath); err != nil {
		return fmt.Errorf("save manifest: %w", err)
	}
	return nil
}

// generate renders both binding files from every input that holds an
// identifier. Inputs that failed this pass are left out rather than
// emitted with stale data.
func (s *Syncer) generate(inputs []*catalog.Input, logger *slog.Logger) error {
	resolved := make([]*catalog.Input, 0, len(inputs))
	for _, input := range inputs {
		if input.ID != nil {
			resolved = append(resolved, input)
		}
	}

	tree, err := codegen.BuildTree(resolved)
	if err != nil {
		return err
	}
	if tree.IsEmpty() {
		logger.Debug("no codegen-eligible inputs, skipping binding output")
		return nil
	}

	luauPath := s.cfg.Codegen.LuauPath
	if err := fileutil.AtomicWrite(luauPath, []byte(codegen.EmitLuau(tree)), 0o644); err != nil {
		return fmt.Errorf("write luau bindings: %w", err)
	}
	tsPath := s.cfg.Codegen.TypeScriptPath
	if err := fileutil.AtomicWrite(tsPath, []byte(codegen.EmitTypeScript(tree)), 0o644); err != nil {
		return fmt.Errorf("write typescript bindings: %w", err)
	}
	logger.Info("bindings generated",
		logging.String("luau", luauPath),
		logging.String("typescript", tsPath))
	return nil
}

// buildBackend constructs the backend for the configured target. The
// returned cleanup releases any resources the backend holds open.
func (s *Syncer) buildBackend(logger *slog.Logger) (backend.Backend, func(), error) {
	noop := func() {}
	if s.opts.Backend != nil {
		return s.opts.Backend, noop, nil
	}

	switch s.opts.Target {
	case TargetRemote:
		if err := s.cfg.ValidateRemote(); err != nil {
			return nil, nil, services.Wrap(services.ErrConfiguration, "syncer", "build backend", err.Error(), nil)
		}
		client, err := assetcloud.New(s.cfg.Remote.BaseURL, assetcloud.Credentials{
			APIKey:  s.cfg.Remote.APIKey,
			GroupID: s.cfg.Remote.GroupID,
			UserID:  s.cfg.Remote.UserID,
		}, logger)
		if err != nil {
			return nil, nil, err
		}
		return backend.NewRemote(client), noop, nil

	case TargetLocal:
		if s.cfg.Paths.ContentDir == "" {
			return nil, nil, services.Wrap(services.ErrConfiguration, "syncer", "build backend",
				"paths.content_dir must be set for the local target", nil)
		}
		return backend.NewLocal(s.cfg.Paths.ContentDir, s.cfg.Name, logger), noop, nil

	case TargetDebug:
		store, err := debugstore.Open(s.cfg.Paths.DebugDir)
		if err != nil {
			return nil, nil, fmt.Errorf("open debug store: %w", err)
		}
		return backend.NewDebug(store), func() { _ = store.Close() }, nil

	case TargetNone:
		return backend.NewNone(), noop, nil

	default:
		return nil, nil, services.Wrap(services.ErrConfiguration, "syncer", "build backend",
			fmt.Sprintf("unknown target %q", s.opts.Target), nil)
	}
}

// uploadName is the display name sent to a backend: the project-relative
// path without its extension, unique per DPI variant.
func uploadName(input *catalog.Input) string {
	return strings.TrimSuffix(input.Name, path.Ext(input.Name))
}

// IsPassFatal reports whether an upload error must abort the whole pass
// instead of being recorded per input.
func IsPassFatal(target Target, err error) bool {
	if services.IsFatal(err) {
		return true
	}
	return target == TargetNone || target == TargetLocal
}
