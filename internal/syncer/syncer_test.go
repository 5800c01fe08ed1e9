package syncer

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gofrs/flock"

	"macadam/internal/assetid"
	"macadam/internal/backend"
	"macadam/internal/logging"
	"macadam/internal/manifest"
	"macadam/internal/preprocess"
	"macadam/internal/services"
	"macadam/internal/testsupport"
)

// recordingBackend assigns sequential remote IDs and optionally fails
// specific names.
type recordingBackend struct {
	nextID uint64
	names  []string
	fail   map[string]error
}

func (b *recordingBackend) Upload(ctx context.Context, info backend.UploadInfo) (backend.Response, error) {
	b.names = append(b.names, info.Name)
	if err, ok := b.fail[info.Name]; ok {
		return backend.Response{}, err
	}
	b.nextID++
	return backend.Response{ID: assetid.Remote(b.nextID)}, nil
}

func TestRunFullPass(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	testsupport.WritePNG(t, filepath.Join(cfg.ProjectRoot(), "assets", "button.png"), 1)
	testsupport.WritePNG(t, filepath.Join(cfg.ProjectRoot(), "assets", "ui", "icon.png"), 2)

	be := &recordingBackend{}
	s := New(cfg, preprocess.Passthrough{}, logging.NewNop(), Options{Target: TargetRemote, Backend: be})

	if err := s.Run(context.Background()); err != nil {
		t.Fatalf("Run: %v", err)
	}

	if want := []string{"assets/button", "assets/ui/icon"}; len(be.names) != 2 || be.names[0] != want[0] || be.names[1] != want[1] {
		t.Errorf("uploads = %v, want %v", be.names, want)
	}

	man, err := manifest.Load(cfg.Paths.ManifestPath)
	if err != nil {
		t.Fatalf("Load manifest: %v", err)
	}
	if man.Len() != 2 {
		t.Errorf("manifest entries = %d, want 2", man.Len())
	}
	entry, ok := man.Lookup("assets/button.png")
	if !ok {
		t.Fatal("manifest missing assets/button.png")
	}
	if _, isRemote := entry.ID.RemoteID(); !isRemote {
		t.Errorf("entry id = %v, want remote", entry.ID)
	}

	luau, err := os.ReadFile(cfg.Codegen.LuauPath)
	if err != nil {
		t.Fatalf("read luau bindings: %v", err)
	}
	if !strings.Contains(string(luau), "button = \"remoteasset://") {
		t.Errorf("luau bindings missing button entry:\n%s", luau)
	}
	if _, err := os.Stat(cfg.Codegen.TypeScriptPath); err != nil {
		t.Errorf("typescript bindings missing: %v", err)
	}
}

func TestRunSecondPassUploadsNothing(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	testsupport.WritePNG(t, filepath.Join(cfg.ProjectRoot(), "assets", "button.png"), 1)

	be := &recordingBackend{}
	s := New(cfg, preprocess.Passthrough{}, logging.NewNop(), Options{Target: TargetRemote, Backend: be})

	if err := s.Run(context.Background()); err != nil {
		t.Fatalf("first Run: %v", err)
	}
	if err := s.Run(context.Background()); err != nil {
		t.Fatalf("second Run: %v", err)
	}
	if len(be.names) != 1 {
		t.Errorf("uploads = %v, want exactly one across both passes", be.names)
	}
}

func TestRunContentChangeForcesReupload(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	target := filepath.Join(cfg.ProjectRoot(), "assets", "button.png")
	testsupport.WritePNG(t, target, 1)

	be := &recordingBackend{}
	s := New(cfg, preprocess.Passthrough{}, logging.NewNop(), Options{Target: TargetRemote, Backend: be})

	if err := s.Run(context.Background()); err != nil {
		t.Fatalf("first Run: %v", err)
	}
	testsupport.WritePNG(t, target, 9)
	if err := s.Run(context.Background()); err != nil {
		t.Fatalf("second Run: %v", err)
	}
	if len(be.names) != 2 {
		t.Errorf("uploads = %v, want two", be.names)
	}
}

func TestRunPartialFailureKeepsOldEntryAndExitsNonZero(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	good := filepath.Join(cfg.ProjectRoot(), "assets", "good.png")
	bad := filepath.Join(cfg.ProjectRoot(), "assets", "bad.png")
	testsupport.WritePNG(t, good, 1)
	testsupport.WritePNG(t, bad, 2)

	// Seed a previous manifest entry for the input that will fail.
	prev := manifest.New()
	prev.Set("assets/bad.png", manifest.Entry{Hash: "stale", ID: assetid.Remote(77)})
	if err := prev.Save(cfg.Paths.ManifestPath); err != nil {
		t.Fatalf("seed manifest: %v", err)
	}

	be := &recordingBackend{fail: map[string]error{
		"assets/bad": services.Wrap(services.ErrTransport, "test", "upload", "boom", nil),
	}}
	s := New(cfg, preprocess.Passthrough{}, logging.NewNop(), Options{Target: TargetRemote, Backend: be})

	err := s.Run(context.Background())
	if err == nil {
		t.Fatal("expected pass failure")
	}

	man, loadErr := manifest.Load(cfg.Paths.ManifestPath)
	if loadErr != nil {
		t.Fatalf("Load manifest: %v", loadErr)
	}
	entry, ok := man.Lookup("assets/bad.png")
	if !ok {
		t.Fatal("failed input lost its manifest entry")
	}
	if entry.Hash != "stale" || entry.ID != assetid.Remote(77) {
		t.Errorf("failed input entry rewritten: %+v", entry)
	}
	if _, ok := man.Lookup("assets/good.png"); !ok {
		t.Error("successful input missing from manifest")
	}
}

func TestRunCatalogFailureKeepsOldEntryAndExitsNonZero(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	good := filepath.Join(cfg.ProjectRoot(), "assets", "good.png")
	broken := filepath.Join(cfg.ProjectRoot(), "assets", "broken.png")
	testsupport.WritePNG(t, good, 1)
	testsupport.WritePNG(t, broken, 2)

	be := &recordingBackend{}
	s := New(cfg, preprocess.Passthrough{}, logging.NewNop(), Options{Target: TargetRemote, Backend: be})
	if err := s.Run(context.Background()); err != nil {
		t.Fatalf("seed pass: %v", err)
	}
	seeded, err := manifest.Load(cfg.Paths.ManifestPath)
	if err != nil {
		t.Fatalf("Load seeded manifest: %v", err)
	}
	want, ok := seeded.Lookup("assets/broken.png")
	if !ok {
		t.Fatal("seed pass did not record assets/broken.png")
	}

	// The file stops decoding as a PNG, so the second pass cannot catalog it.
	testsupport.WriteFile(t, broken, []byte("not a png anymore"))

	if err := s.Run(context.Background()); err == nil {
		t.Fatal("expected pass failure for uncatalogable input")
	}

	man, err := manifest.Load(cfg.Paths.ManifestPath)
	if err != nil {
		t.Fatalf("Load manifest: %v", err)
	}
	entry, ok := man.Lookup("assets/broken.png")
	if !ok {
		t.Fatal("uncatalogable input lost its manifest entry")
	}
	if entry != want {
		t.Errorf("uncatalogable input entry rewritten: got %+v, want %+v", entry, want)
	}
	if _, ok := man.Lookup("assets/good.png"); !ok {
		t.Error("healthy input missing from manifest")
	}
}

func TestRunNoneTargetFailsOnChanges(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	testsupport.WritePNG(t, filepath.Join(cfg.ProjectRoot(), "assets", "button.png"), 1)

	s := New(cfg, preprocess.Passthrough{}, logging.NewNop(), Options{Target: TargetNone})

	err := s.Run(context.Background())
	if !errors.Is(err, services.ErrConfiguration) {
		t.Fatalf("expected configuration error, got %v", err)
	}
	if _, statErr := os.Stat(cfg.Paths.ManifestPath); statErr == nil {
		t.Error("manifest written despite fatal pass failure")
	}
}

func TestRunNoneTargetSucceedsWhenClean(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	testsupport.WritePNG(t, filepath.Join(cfg.ProjectRoot(), "assets", "button.png"), 1)

	be := &recordingBackend{}
	s := New(cfg, preprocess.Passthrough{}, logging.NewNop(), Options{Target: TargetRemote, Backend: be})
	if err := s.Run(context.Background()); err != nil {
		t.Fatalf("seed pass: %v", err)
	}

	verify := New(cfg, preprocess.Passthrough{}, logging.NewNop(), Options{Target: TargetNone})
	if err := verify.Run(context.Background()); err != nil {
		t.Fatalf("verification pass: %v", err)
	}
}

func TestRunDebugTargetAssignsSequentialIDs(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	testsupport.WritePNG(t, filepath.Join(cfg.ProjectRoot(), "assets", "a.png"), 1)
	testsupport.WritePNG(t, filepath.Join(cfg.ProjectRoot(), "assets", "b.png"), 2)

	s := New(cfg, preprocess.Passthrough{}, logging.NewNop(), Options{Target: TargetDebug})
	if err := s.Run(context.Background()); err != nil {
		t.Fatalf("Run: %v", err)
	}

	man, err := manifest.Load(cfg.Paths.ManifestPath)
	if err != nil {
		t.Fatalf("Load manifest: %v", err)
	}
	first, _ := man.Lookup("assets/a.png")
	second, _ := man.Lookup("assets/b.png")
	if first.ID != assetid.Remote(1) || second.ID != assetid.Remote(2) {
		t.Errorf("ids = %v, %v; want sequential from 1", first.ID, second.ID)
	}
}

func TestRunLocalTargetWritesContentDir(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	testsupport.WritePNG(t, filepath.Join(cfg.ProjectRoot(), "assets", "button.png"), 1)

	s := New(cfg, preprocess.Passthrough{}, logging.NewNop(), Options{Target: TargetLocal})
	if err := s.Run(context.Background()); err != nil {
		t.Fatalf("Run: %v", err)
	}

	written := filepath.Join(cfg.Paths.ContentDir, ".macadam", cfg.Name, "assets", "button.png")
	if _, err := os.Stat(written); err != nil {
		t.Errorf("local content file missing: %v", err)
	}

	man, err := manifest.Load(cfg.Paths.ManifestPath)
	if err != nil {
		t.Fatalf("Load manifest: %v", err)
	}
	entry, _ := man.Lookup("assets/button.png")
	if entry.ID.Kind() != assetid.KindLocal {
		t.Errorf("id = %v, want local", entry.ID)
	}
}

func TestRunRefusesConcurrentPass(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	testsupport.WritePNG(t, filepath.Join(cfg.ProjectRoot(), "assets", "button.png"), 1)

	held := flock.New(cfg.Paths.ManifestPath + ".lock")
	locked, err := held.TryLock()
	if err != nil || !locked {
		t.Fatalf("pre-acquire lock: locked=%v err=%v", locked, err)
	}
	defer held.Unlock()

	s := New(cfg, preprocess.Passthrough{}, logging.NewNop(), Options{Target: TargetRemote, Backend: &recordingBackend{}})
	runErr := s.Run(context.Background())
	if !errors.Is(runErr, services.ErrConfiguration) {
		t.Fatalf("expected lock refusal, got %v", runErr)
	}
}

func TestRunDeterministicBindings(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	testsupport.WritePNG(t, filepath.Join(cfg.ProjectRoot(), "assets", "zebra.png"), 1)
	testsupport.WritePNG(t, filepath.Join(cfg.ProjectRoot(), "assets", "apple.png"), 2)

	be := &recordingBackend{}
	s := New(cfg, preprocess.Passthrough{}, logging.NewNop(), Options{Target: TargetRemote, Backend: be})
	if err := s.Run(context.Background()); err != nil {
		t.Fatalf("first Run: %v", err)
	}
	first, err := os.ReadFile(cfg.Codegen.LuauPath)
	if err != nil {
		t.Fatalf("read bindings: %v", err)
	}

	if err := s.Run(context.Background()); err != nil {
		t.Fatalf("second Run: %v", err)
	}
	second, err := os.ReadFile(cfg.Codegen.LuauPath)
	if err != nil {
		t.Fatalf("read bindings: %v", err)
	}
	if string(first) != string(second) {
		t.Error("bindings differ across identical passes")
	}
}

func TestParseTarget(t *testing.T) {
	for _, valid := range []string{"remote", "none", "debug", "local"} {
		if _, err := ParseTarget(valid); err != nil {
			t.Errorf("ParseTarget(%q): %v", valid, err)
		}
	}
	if _, err := ParseTarget("ftp"); !errors.Is(err, services.ErrConfiguration) {
		t.Errorf("expected configuration error, got %v", err)
	}
}
