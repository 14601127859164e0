package models

import (
	"time"
)

// DataVersion is stamped into the metadata of freshly initialized datasets.
const DataVersion = "1.0.0"

// Metadata describes the persisted aggregate as a whole.
type Metadata struct {
	ProjectName string    `json:"projectName"`
	Version     string    `json:"version"`
	LastUpdated time.Time `json:"lastUpdated"`
}

// ProjectData is the persisted aggregate: one collection per item kind
// plus metadata. Every item's ID is unique within its own collection.
type ProjectData struct {
	Features []Feature `json:"features"`
	Bugs     []Bug     `json:"bugs"`
	Tasks    []Task    `json:"tasks"`
	Metadata Metadata  `json:"metadata"`
}

// NewProjectData returns an empty aggregate for the named project.
func NewProjectData(projectName string) *ProjectData {
	return &ProjectData{
		Features: []Feature{},
		Bugs:     []Bug{},
		Tasks:    []Task{},
		Metadata: Metadata{
			ProjectName: projectName,
			Version:     DataVersion,
			LastUpdated: time.Now().UTC(),
		},
	}
}

// Items returns the collection for the given kind as polymorphic items,
// preserving order.
func (p *ProjectData) Items(kind ItemKind) []Item {
	switch kind {
	case KindFeature:
		out := make([]Item, len(p.Features))
		for i, f := range p.Features {
			out[i] = f
		}
		return out
	case KindBug:
		out := make([]Item, len(p.Bugs))
		for i, b := range p.Bugs {
			out[i] = b
		}
		return out
	case KindTask:
		out := make([]Item, len(p.Tasks))
		for i, t := range p.Tasks {
			out[i] = t
		}
		return out
	}
	return nil
}

// Find locates an item by ID within its kind's collection.
func (p *ProjectData) Find(kind ItemKind, id string) (Item, bool) {
	for _, it := range p.Items(kind) {
		if it.ItemID() == id {
			return it, true
		}
	}
	return nil, false
}

// Append adds an item to the collection matching its kind.
func (p *ProjectData) Append(item Item) {
	switch it := item.(type) {
	case Feature:
		p.Features = append(p.Features, it)
	case Bug:
		p.Bugs = append(p.Bugs, it)
	case Task:
		p.Tasks = append(p.Tasks, it)
	}
}

// Replace swaps the stored item carrying the same ID for the given one.
// It reports whether a matching item was found.
func (p *ProjectData) Replace(item Item) bool {
	switch it := item.(type) {
	case Feature:
		for i := range p.Features {
			if p.Features[i].ID == it.ID {
				p.Features[i] = it
				return true
			}
		}
	case Bug:
		for i := range p.Bugs {
			if p.Bugs[i].ID == it.ID {
				p.Bugs[i] = it
				return true
			}
		}
	case Task:
		for i := range p.Tasks {
			if p.Tasks[i].ID == it.ID {
				p.Tasks[i] = it
				return true
			}
		}
	}
	return false
}

// Remove deletes the item with the given ID from its kind's collection,
// reporting whether anything was removed.
func (p *ProjectData) Remove(kind ItemKind, id string) bool {
	switch kind {
	case KindFeature:
		for i := range p.Features {
			if p.Features[i].ID == id {
				p.Features = append(p.Features[:i], p.Features[i+1:]...)
				return true
			}
		}
	case KindBug:
		for i := range p.Bugs {
			if p.Bugs[i].ID == id {
				p.Bugs = append(p.Bugs[:i], p.Bugs[i+1:]...)
				return true
			}
		}
	case KindTask:
		for i := range p.Tasks {
			if p.Tasks[i].ID == id {
				p.Tasks = append(p.Tasks[:i], p.Tasks[i+1:]...)
				return true
			}
		}
	}
	return false
}

// TotalItems counts items across all collections.
func (p *ProjectData) TotalItems() int {
	return len(p.Features) + len(p.Bugs) + len(p.Tasks)
}
