package builder

import (
	"context"
	"errors"
	"strings"
	"testing"
)

type memoryStore struct {
	pages    map[string]Snapshot
	titles   map[string]string
	loads    int
	failSave error
}

func newMemoryStore() *memoryStore {
	return &memoryStore{pages: map[string]Snapshot{}, titles: map[string]string{}}
}

func (m *memoryStore) LoadPage(_ context.Context, slug string) (Snapshot, error) {
	m.loads++
	return m.pages[slug], nil
}

func (m *memoryStore) SavePage(_ context.Context, slug, title string, snap Snapshot) error {
	if m.failSave != nil {
		return m.failSave
	}
	m.pages[slug] = snap
	m.titles[slug] = title
	return nil
}

func helloSnapshot() Snapshot {
	return Snapshot{
		Document: Document(`{"pages":[{"component":{"type":"text","content":"Hello"}}]}`),
		Markup:   Markup{HTML: `<div id="i1">Hello</div>`, CSS: `#i1{padding:10px;}`},
	}
}

func TestNewSessionConfig(t *testing.T) {
	seed := helloSnapshot()

	seeded, err := NewSession("a", Options{Slug: "x", Title: "X", InitialData: &seed})
	if err != nil {
		t.Fatalf("NewSession: %v", err)
	}
	if seeded.Config().Autoload {
		t.Fatal("seeded session must not autoload")
	}

	lazy, err := NewSession("b", Options{Slug: "x", Title: "X"})
	if err != nil {
		t.Fatalf("NewSession: %v", err)
	}
	if !lazy.Config().Autoload {
		t.Fatal("unseeded session must autoload")
	}

	for _, s := range []*Session{seeded, lazy} {
		cfg := s.Config()
		if cfg.Autosave {
			t.Fatal("autosave must be off")
		}
		if cfg.MediaCondition != "min-width" {
			t.Fatalf("unexpected media condition %q", cfg.MediaCondition)
		}
		if cfg.DefaultDevice != cfg.Devices[0].ID || cfg.Devices[0].WidthMedia != "" {
			t.Fatalf("default device must be the narrowest one without a media query: %+v", cfg.Devices)
		}
	}
}

func TestSessionLazyLoadHappensOnce(t *testing.T) {
	store := newMemoryStore()
	store.pages["promo"] = helloSnapshot()

	s, err := NewSession("id", Options{Slug: "promo", Title: "Promo", Store: store})
	if err != nil {
		t.Fatalf("NewSession: %v", err)
	}
	if store.loads != 0 {
		t.Fatal("content must not be fetched before it is requested")
	}

	for i := 0; i < 2; i++ {
		snap, err := s.Project(context.Background())
		if err != nil {
			t.Fatalf("Project: %v", err)
		}
		if !snap.Document.Equivalent(store.pages["promo"].Document) {
			t.Fatalf("unexpected document %s", snap.Document)
		}
	}
	if store.loads != 1 {
		t.Fatalf("expected one load, got %d", store.loads)
	}
}

func TestSessionStageBeforeLoadSkipsFetch(t *testing.T) {
	store := newMemoryStore()
	store.pages["promo"] = helloSnapshot()

	s, _ := NewSession("id", Options{Slug: "promo", Title: "Promo", Store: store})
	edited := Snapshot{Document: Document(`{"edited":true}`), Markup: Markup{HTML: "<p>Edited</p>"}}
	if err := s.Stage(edited); err != nil {
		t.Fatalf("Stage: %v", err)
	}

	snap, err := s.Project(context.Background())
	if err != nil {
		t.Fatalf("Project: %v", err)
	}
	if !snap.Document.Equivalent(edited.Document) || store.loads != 0 {
		t.Fatalf("staged edits were overwritten by stored content: %s (loads=%d)", snap.Document, store.loads)
	}
}

func TestSessionSaveDefaultsToPageStore(t *testing.T) {
	store := newMemoryStore()
	s, _ := NewSession("id", Options{Slug: "spring-promo", Title: "Spring Promo", Store: store})

	if err := s.Stage(helloSnapshot()); err != nil {
		t.Fatalf("Stage: %v", err)
	}
	if err := s.Save(context.Background()); err != nil {
		t.Fatalf("Save: %v", err)
	}

	saved, ok := store.pages["spring-promo"]
	if !ok {
		t.Fatal("page was not saved under its slug")
	}
	if store.titles["spring-promo"] != "Spring Promo" {
		t.Fatalf("unexpected title %q", store.titles["spring-promo"])
	}
	if !strings.Contains(saved.HTML, "Hello") || saved.CSS == "" || saved.Document.IsEmpty() {
		t.Fatalf("saved snapshot is incomplete: %+v", saved)
	}
}

func TestSessionSaveUsesCustomHandler(t *testing.T) {
	store := newMemoryStore()
	var gotDoc Document
	var gotHTML, gotCSS string

	seed := helloSnapshot()
	s, _ := NewSession("id", Options{
		Slug:        "model-x",
		Title:       "Model X",
		InitialData: &seed,
		Store:       store,
		Save: func(_ context.Context, doc Document, html, css string) error {
			gotDoc, gotHTML, gotCSS = doc, html, css
			return nil
		},
	})

	if err := s.Save(context.Background()); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if len(store.pages) != 0 {
		t.Fatal("custom handler must replace the default page save")
	}
	if !gotDoc.Equivalent(seed.Document) || gotHTML != seed.HTML || gotCSS != seed.CSS {
		t.Fatalf("handler received %s / %q / %q", gotDoc, gotHTML, gotCSS)
	}
}

func TestSessionSaveFailureKeepsEditorState(t *testing.T) {
	store := newMemoryStore()
	store.failSave = errors.New("connection reset")

	s, _ := NewSession("id", Options{Slug: "promo", Title: "Promo", Store: store})
	_ = s.Stage(helloSnapshot())

	err := s.Save(context.Background())
	var saveErr *SaveError
	if !errors.As(err, &saveErr) || !saveErr.Retryable() {
		t.Fatalf("expected retryable SaveError, got %v", err)
	}

	snap, err := s.Project(context.Background())
	if err != nil {
		t.Fatalf("Project: %v", err)
	}
	if !strings.Contains(snap.HTML, "Hello") {
		t.Fatal("editor state was lost after a failed save")
	}

	store.failSave = nil
	if err := s.Save(context.Background()); err != nil {
		t.Fatalf("retry failed: %v", err)
	}
}

func TestSessionSaveRejectsEmptyDocument(t *testing.T) {
	s, _ := NewSession("id", Options{Slug: "promo", Title: "Promo", Store: newMemoryStore()})
	if err := s.Save(context.Background()); !errors.Is(err, ErrEmptyDocument) {
		t.Fatalf("expected ErrEmptyDocument, got %v", err)
	}
}

func TestSessionPreviewDoesNotPersist(t *testing.T) {
	store := newMemoryStore()
	store.pages["promo"] = Snapshot{Document: Document(`{"v":1}`), Markup: Markup{HTML: "<p>Old</p>"}}

	s, _ := NewSession("id", Options{Slug: "promo", Title: "Promo", Store: store})
	_ = s.Stage(Snapshot{Document: Document(`{"v":2}`), Markup: Markup{HTML: "<p>New block</p>", CSS: "p{color:red}"}})

	doc, err := s.Preview()
	if err != nil {
		t.Fatalf("Preview: %v", err)
	}
	if !strings.Contains(doc, "<p>New block</p>") || !strings.Contains(doc, "p{color:red}") {
		t.Fatalf("preview is missing the unsaved markup:\n%s", doc)
	}
	if store.pages["promo"].HTML != "<p>Old</p>" {
		t.Fatal("preview leaked into stored content")
	}
}

func TestSessionCloseDestroysEditor(t *testing.T) {
	editor := NewStagedEditor()
	seed := helloSnapshot()
	s, _ := NewSession("id", Options{Slug: "promo", Title: "Promo", InitialData: &seed, Editor: editor})

	s.Close()
	s.Close()

	if _, err := editor.Export(); !errors.Is(err, ErrSessionClosed) {
		t.Fatalf("editor still usable after close: %v", err)
	}
	if _, err := s.Preview(); !errors.Is(err, ErrSessionClosed) {
		t.Fatalf("expected ErrSessionClosed, got %v", err)
	}
	if err := s.Save(context.Background()); !errors.Is(err, ErrSessionClosed) {
		t.Fatalf("expected ErrSessionClosed, got %v", err)
	}
}

func TestSessionSaveRefusesDocumentWithoutMarkup(t *testing.T) {
	store := newMemoryStore()
	seed := Snapshot{Document: Document(`{"pages":[{"component":"<p>Hello</p>"}]}`)}
	s, _ := NewSession("id", Options{Slug: "promo", Title: "Promo", InitialData: &seed, Store: store})

	if err := s.Save(context.Background()); !errors.Is(err, ErrMissingMarkup) {
		t.Fatalf("expected ErrMissingMarkup, got %v", err)
	}
	if len(store.pages) != 0 {
		t.Fatal("document was stored without its markup")
	}

	if err := s.Stage(helloSnapshot()); err != nil {
		t.Fatalf("Stage: %v", err)
	}
	if err := s.Save(context.Background()); err != nil {
		t.Fatalf("Save after export: %v", err)
	}
}
