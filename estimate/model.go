// Package estimate holds the pre-order material tree (Level → Sublevel →
// Family → Material), the pure transforms that update it and the store that
// owns the current snapshot.
package estimate

import (
	"fmt"
	"time"
)

// Status is the approval state of a material line.
type Status string

const (
	StatusPending    Status = "pending"
	StatusApproved   Status = "approved"
	StatusInApproval Status = "in_approval"
)

// Label returns the display label shown in the status badge.
func (s Status) Label() string {
	switch s {
	case StatusApproved:
		return "Aprobado"
	case StatusInApproval:
		return "En aprobación"
	default:
		return "Pendiente"
	}
}

// ParseStatus converts a stored status value. Unknown values are an error.
func ParseStatus(s string) (Status, error) {
	switch Status(s) {
	case StatusPending, StatusApproved, StatusInApproval:
		return Status(s), nil
	}
	return "", fmt.Errorf("estimate: unknown status %q", s)
}

// Comment is an immutable note attached to a material.
type Comment struct {
	ID        string
	Author    string
	Text      string
	CreatedAt time.Time
}

// Material is a single orderable line inside a family.
type Material struct {
	ID             string
	Code           string
	Name           string
	Unit           string
	BudgetQuantity float64
	UnitPrice      float64
	OrderQuantity  float64
	Status         Status
	Comments       []Comment
}

type Family struct {
	ID        string
	Name      string
	Materials []Material
}

type Sublevel struct {
	ID       string
	Name     string
	Depth    int
	Families []Family
}

type Level struct {
	ID        string
	Name      string
	Depth     int
	Sublevels []Sublevel
}

// Tree is the whole pre-order. Values are treated as immutable: transforms
// return a new Tree and share untouched branches with the old one.
type Tree struct {
	Levels []Level
}

// CatalogEntry is a selectable material from the external catalog.
type CatalogEntry struct {
	Code      string
	Name      string
	Unit      string
	UnitPrice float64
}

// Path is the identity path of a node. Indexes are positions inside the
// parent collections of the tree the path was resolved against.
type Path struct {
	LevelID    string
	SublevelID string
	FamilyID   string
	MaterialID string

	level, sublevel, family, material int
}

// LocateFamily resolves the path of a family by ID.
func (t Tree) LocateFamily(familyID string) (Path, bool) {
	if familyID == "" {
		return Path{}, false
	}
	for li, l := range t.Levels {
		for si, s := range l.Sublevels {
			for fi, f := range s.Families {
				if f.ID == familyID {
					return Path{
						LevelID: l.ID, SublevelID: s.ID, FamilyID: f.ID,
						level: li, sublevel: si, family: fi, material: -1,
					}, true
				}
			}
		}
	}
	return Path{}, false
}

// Locate resolves the path of a material by ID.
func (t Tree) Locate(materialID string) (Path, bool) {
	if materialID == "" {
		return Path{}, false
	}
	for li, l := range t.Levels {
		for si, s := range l.Sublevels {
			for fi, f := range s.Families {
				for mi, m := range f.Materials {
					if m.ID == materialID {
						return Path{
							LevelID: l.ID, SublevelID: s.ID, FamilyID: f.ID, MaterialID: m.ID,
							level: li, sublevel: si, family: fi, material: mi,
						}, true
					}
				}
			}
		}
	}
	return Path{}, false
}

// Family returns the family a path points to.
func (t Tree) Family(p Path) Family {
	return t.Levels[p.level].Sublevels[p.sublevel].Families[p.family]
}

// Material returns the material a path points to.
func (t Tree) Material(p Path) Material {
	return t.Family(p).Materials[p.material]
}

// FindFamily returns the family with the given ID.
func (t Tree) FindFamily(familyID string) (Family, bool) {
	p, ok := t.LocateFamily(familyID)
	if !ok {
		return Family{}, false
	}
	return t.Family(p), true
}

// FindMaterial returns the material with the given ID.
func (t Tree) FindMaterial(materialID string) (Material, bool) {
	p, ok := t.Locate(materialID)
	if !ok {
		return Material{}, false
	}
	return t.Material(p), true
}

// HasCode reports whether any material of the family carries code.
func (f Family) HasCode(code string) bool {
	for _, m := range f.Materials {
		if m.Code == code {
			return true
		}
	}
	return false
}
