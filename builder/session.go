package builder

import (
	"context"
	"fmt"
	"sync"
)

// SaveHandler persists one export of the editor. Hosts that do not store
// into a Page (sub-products, for one) supply their own.
type SaveHandler func(ctx context.Context, doc Document, html, css string) error

// Loader fetches previously saved content on demand.
type Loader func(ctx context.Context) (Snapshot, error)

// PageStore is the default persistence target, keyed by slug.
type PageStore interface {
	LoadPage(ctx context.Context, slug string) (Snapshot, error)
	SavePage(ctx context.Context, slug, title string, snap Snapshot) error
}

type Options struct {
	Host  string
	Slug  string
	Title string

	// InitialData seeds the editor and turns storage autoload off.
	InitialData *Snapshot

	Save  SaveHandler
	Load  Loader
	Store PageStore

	// Editor defaults to a fresh StagedEditor.
	Editor Editor
}

// Session owns one editor instance for the lifetime of an authoring
// session. Nothing is shared between sessions.
type Session struct {
	id     string
	host   string
	slug   string
	title  string
	config Config

	mu     sync.Mutex
	editor Editor
	save   SaveHandler
	load   Loader
	loaded bool
	closed bool
}

func NewSession(id string, opts Options) (*Session, error) {
	editor := opts.Editor
	if editor == nil {
		editor = NewStagedEditor()
	}

	s := &Session{
		id:     id,
		host:   opts.Host,
		slug:   opts.Slug,
		title:  opts.Title,
		config: NewConfig(opts.InitialData != nil),
		editor: editor,
		save:   opts.Save,
		load:   opts.Load,
	}

	if s.save == nil && opts.Store != nil {
		store, slug, title := opts.Store, opts.Slug, opts.Title
		s.save = func(ctx context.Context, doc Document, html, css string) error {
			return store.SavePage(ctx, slug, title, Snapshot{Document: doc, Markup: Markup{HTML: html, CSS: css}})
		}
	}
	if s.load == nil && opts.Store != nil {
		store, slug := opts.Store, opts.Slug
		s.load = func(ctx context.Context) (Snapshot, error) {
			return store.LoadPage(ctx, slug)
		}
	}

	if opts.InitialData != nil {
		if err := editor.Load(*opts.InitialData); err != nil {
			editor.Destroy()
			return nil, err
		}
		s.loaded = true
	}
	return s, nil
}

func (s *Session) ID() string     { return s.id }
func (s *Session) Host() string   { return s.host }
func (s *Session) Slug() string   { return s.slug }
func (s *Session) Title() string  { return s.title }
func (s *Session) Config() Config { return s.config }

// Project returns the editor's document, fetching stored content the first
// time it is asked for when autoload is on.
func (s *Session) Project(ctx context.Context) (Snapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return Snapshot{}, ErrSessionClosed
	}

	if !s.loaded && s.config.Autoload && s.load != nil {
		snap, err := s.load(ctx)
		if err != nil {
			return Snapshot{}, fmt.Errorf("load page content: %w", err)
		}
		if err := s.editor.Load(snap); err != nil {
			return Snapshot{}, err
		}
		s.loaded = true
	}
	return s.editor.Export()
}

// Stage replaces the editor state with what the browser editor exported.
// Nothing is persisted.
func (s *Session) Stage(snap Snapshot) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return ErrSessionClosed
	}
	if err := s.editor.Load(snap); err != nil {
		return err
	}
	s.loaded = true
	return nil
}

// Save exports the editor once and hands document, HTML and CSS to the save
// handler together. A document without exported HTML is refused. On failure
// the editor keeps its state.
func (s *Session) Save(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return ErrSessionClosed
	}
	if s.save == nil {
		return &SaveError{Err: ErrNoSaveTarget}
	}

	snap, err := s.editor.Export()
	if err != nil {
		return &SaveError{Err: err}
	}
	if snap.Document.IsEmpty() {
		return &SaveError{Err: ErrEmptyDocument}
	}
	if snap.HTML == "" {
		return &SaveError{Err: ErrMissingMarkup}
	}

	if err := s.save(ctx, snap.Document, snap.HTML, snap.CSS); err != nil {
		return &SaveError{Err: err}
	}
	return nil
}

// Preview renders the current, possibly unsaved, markup.
func (s *Session) Preview() (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return "", ErrSessionClosed
	}

	snap, err := s.editor.Export()
	if err != nil {
		return "", err
	}
	return RenderDocument(s.title, snap.Markup)
}

// Close destroys the editor. It is safe to call more than once.
func (s *Session) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	s.closed = true
	s.editor.Destroy()
}

func (s *Session) Closed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.closed
}
