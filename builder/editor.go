package builder

import "sync"

// Editor is the narrow boundary around the visual editor. The server never
// renders documents itself, so loading takes the full snapshot the browser
// editor exported.
type Editor interface {
	Load(snap Snapshot) error
	Export() (Snapshot, error)
	Destroy()
}

// StagedEditor keeps the most recent state pushed by the browser editor.
type StagedEditor struct {
	mu        sync.Mutex
	snap      Snapshot
	destroyed bool
}

func NewStagedEditor() *StagedEditor {
	return &StagedEditor{}
}

func (e *StagedEditor) Load(snap Snapshot) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.destroyed {
		return ErrSessionClosed
	}
	e.snap = Snapshot{
		Document: append(Document(nil), snap.Document...),
		Markup:   snap.Markup,
	}
	return nil
}

func (e *StagedEditor) Export() (Snapshot, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.destroyed {
		return Snapshot{}, ErrSessionClosed
	}
	return Snapshot{
		Document: append(Document(nil), e.snap.Document...),
		Markup:   e.snap.Markup,
	}, nil
}

func (e *StagedEditor) Destroy() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.destroyed = true
	e.snap = Snapshot{}
}
