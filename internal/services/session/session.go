// Package session keeps the per-page state the server needs between HTMX
// requests: which forms a page shows, its hydration latch and the last
// snapshot charts it received.
package session

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"fincast/internal/models"
	"fincast/internal/services/hydrator"
)

// Page is the server-side context of one rendered page
type Page struct {
	ID        string
	Kind      models.PageKind
	Suffix    string
	Forms     []models.FormSpec
	HasCharts bool
	Latch     hydrator.Latch

	mu       sync.RWMutex
	charts   *models.Charts
	lastSeen time.Time
}

// Form returns the page's form with the given id
func (p *Page) Form(id string) (models.FormSpec, bool) {
	for _, f := range p.Forms {
		if f.ID == id {
			return f, true
		}
	}
	return models.FormSpec{}, false
}

// SetCharts records the charts of the latest successful snapshot load
func (p *Page) SetCharts(c *models.Charts) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.charts = c
}

// Charts returns the charts of the latest snapshot load, if any
func (p *Page) Charts() *models.Charts {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.charts
}

func (p *Page) touch(now time.Time) {
	p.mu.Lock()
	p.lastSeen = now
	p.mu.Unlock()
}

func (p *Page) idleSince(now time.Time) time.Duration {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return now.Sub(p.lastSeen)
}

// Layout builds a fresh page of the given kind. The dashboard carries the
// chart panels; the input page uses "-alt" element ids.
func Layout(kind models.PageKind) *Page {
	switch kind {
	case models.PageInput:
		return &Page{
			Kind:   kind,
			Suffix: "-alt",
			Forms:  []models.FormSpec{models.ProfileForm("input-form", "-alt")},
		}
	default:
		return &Page{
			Kind:      models.PageDashboard,
			Forms:     []models.FormSpec{models.ProfileForm("prediction-form", "")},
			HasCharts: true,
		}
	}
}

// Store holds live pages. Pages idle longer than the TTL are dropped by
// Sweep.
type Store struct {
	mu    sync.RWMutex
	pages map[string]*Page
	ttl   time.Duration
	now   func() time.Time
}

// NewStore creates an empty store. A ttl of zero keeps pages forever.
func NewStore(ttl time.Duration) *Store {
	return &Store{
		pages: make(map[string]*Page),
		ttl:   ttl,
		now:   time.Now,
	}
}

// Create registers a new page of the given kind
func (s *Store) Create(kind models.PageKind) *Page {
	p := Layout(kind)
	p.ID = uuid.NewString()
	p.lastSeen = s.now()

	s.mu.Lock()
	s.pages[p.ID] = p
	s.mu.Unlock()
	return p
}

// Get returns the page with the given id and marks it as active
func (s *Store) Get(id string) (*Page, bool) {
	s.mu.RLock()
	p, ok := s.pages[id]
	s.mu.RUnlock()
	if !ok {
		return nil, false
	}
	p.touch(s.now())
	return p, true
}

// Len returns the number of live pages
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.pages)
}

// Sweep removes idle pages and returns how many were dropped
func (s *Store) Sweep() int {
	if s.ttl <= 0 {
		return 0
	}
	now := s.now()

	s.mu.Lock()
	defer s.mu.Unlock()
	removed := 0
	for id, p := range s.pages {
		if p.idleSince(now) > s.ttl {
			delete(s.pages, id)
			removed++
		}
	}
	return removed
}

// Run sweeps the store every interval until done is closed
func (s *Store) Run(done <-chan struct{}, interval time.Duration) {
	if s.ttl <= 0 || interval <= 0 {
		return
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-done:
			return
		case <-ticker.C:
			s.Sweep()
		}
	}
}
