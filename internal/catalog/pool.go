// Package catalog loads the static place catalog and manages the
// evolving candidate pool during a planning run.
package catalog

import (
	"github.com/SamTurer/travelbuddy-next-mvp/internal/models"
)

// Pool is the mutable set of placeable candidates for one run.
// Places are deduplicated by normalized name and removed as they are
// committed to the timeline.
type Pool struct {
	byName map[string]*models.Place
	order  []string // Encounter order, preserved for stable tie-breaks
}

// NewPool builds a pool from catalog places, deduplicating by
// normalized name (first entry wins). Each place is copied so the
// catalog snapshot stays untouched.
func NewPool(places []models.Place) *Pool {
	p := &Pool{byName: make(map[string]*models.Place, len(places))}
	p.Merge(places)
	return p
}

// Merge adds places to the pool, skipping names already present
func (p *Pool) Merge(places []models.Place) {
	for i := range places {
		key := models.NormalizeName(places[i].Name)
		if key == "" {
			continue
		}
		if _, exists := p.byName[key]; exists {
			continue
		}
		cp := places[i]
		p.byName[key] = &cp
		p.order = append(p.order, key)
	}
}

// Remove takes a place out of the pool by name
func (p *Pool) Remove(name string) {
	key := models.NormalizeName(name)
	if _, exists := p.byName[key]; !exists {
		return
	}
	delete(p.byName, key)
	for i, k := range p.order {
		if k == key {
			p.order = append(p.order[:i], p.order[i+1:]...)
			break
		}
	}
}

// Get returns the pooled place for a name, or nil
func (p *Pool) Get(name string) *models.Place {
	return p.byName[models.NormalizeName(name)]
}

// All returns the pooled places in encounter order. The slice is a
// fresh copy; the pointed-to places are shared.
func (p *Pool) All() []*models.Place {
	out := make([]*models.Place, 0, len(p.order))
	for _, key := range p.order {
		out = append(out, p.byName[key])
	}
	return out
}

// Names returns the names of every pooled place
func (p *Pool) Names() []string {
	out := make([]string, 0, len(p.order))
	for _, key := range p.order {
		out = append(out, p.byName[key].Name)
	}
	return out
}

// Len reports the number of pooled places
func (p *Pool) Len() int {
	return len(p.order)
}
