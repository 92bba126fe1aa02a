package estimate

import (
	"math"
	"slices"
	"strconv"
	"strings"
	"time"
)

// Action is a mutation request understood by Reduce.
type Action interface {
	Op() string
}

// SetOrderQuantity sets a material's order quantity, rejecting values outside
// [0, budget].
type SetOrderQuantity struct {
	MaterialID string
	Quantity   float64
}

// AddMaterial appends a catalog entry to a family as a new pending line.
type AddMaterial struct {
	FamilyID string
	Entry    *CatalogEntry
}

// ReplaceMaterial swaps a material for a catalog entry, keeping its id,
// quantities and comments.
type ReplaceMaterial struct {
	MaterialID string
	Entry      *CatalogEntry
}

// AppendComment adds a comment to a material.
type AppendComment struct {
	MaterialID string
	Text       string
}

func (SetOrderQuantity) Op() string { return "set_order_quantity" }
func (AddMaterial) Op() string      { return "add_material" }
func (ReplaceMaterial) Op() string  { return "replace_material" }
func (AppendComment) Op() string    { return "append_comment" }

// Env supplies the non-deterministic inputs of Reduce.
type Env struct {
	NewID  func() string
	Now    func() time.Time
	Author string
}

// Change describes an applied action: where it landed and the resulting
// material. Comment is set only for AppendComment.
type Change struct {
	Op       string
	Path     Path
	Material Material
	Comment  *Comment
}

// Reduce applies action to tree and returns the new tree. The input tree is
// never modified. When the action cannot be applied the original tree is
// returned with ok=false.
func Reduce(tree Tree, action Action, env Env) (Tree, Change, bool) {
	switch a := action.(type) {
	case SetOrderQuantity:
		return reduceSetOrderQuantity(tree, a)
	case AddMaterial:
		return reduceAddMaterial(tree, a, env)
	case ReplaceMaterial:
		return reduceReplaceMaterial(tree, a)
	case AppendComment:
		return reduceAppendComment(tree, a, env)
	}
	return tree, Change{}, false
}

func reduceSetOrderQuantity(tree Tree, a SetOrderQuantity) (Tree, Change, bool) {
	p, ok := tree.Locate(a.MaterialID)
	if !ok {
		return tree, Change{}, false
	}
	m := tree.Material(p)
	if math.IsNaN(a.Quantity) || a.Quantity < 0 || a.Quantity > m.BudgetQuantity {
		return tree, Change{}, false
	}
	m.OrderQuantity = a.Quantity
	next := withMaterial(tree, p, m)
	return next, Change{Op: a.Op(), Path: p, Material: m}, true
}

func reduceAddMaterial(tree Tree, a AddMaterial, env Env) (Tree, Change, bool) {
	if a.Entry == nil || a.Entry.Code == "" {
		return tree, Change{}, false
	}
	p, ok := tree.LocateFamily(a.FamilyID)
	if !ok {
		return tree, Change{}, false
	}
	f := tree.Family(p)
	if f.HasCode(a.Entry.Code) {
		return tree, Change{}, false
	}

	m := Material{
		ID:        env.NewID(),
		Code:      a.Entry.Code,
		Name:      a.Entry.Name,
		Unit:      a.Entry.Unit,
		UnitPrice: a.Entry.UnitPrice,
		Status:    StatusPending,
	}
	f.Materials = append(slices.Clip(f.Materials), m)
	next := withFamily(tree, p, f)

	p.MaterialID = m.ID
	p.material = len(f.Materials) - 1
	return next, Change{Op: a.Op(), Path: p, Material: m}, true
}

func reduceReplaceMaterial(tree Tree, a ReplaceMaterial) (Tree, Change, bool) {
	if a.Entry == nil || a.Entry.Code == "" {
		return tree, Change{}, false
	}
	p, ok := tree.Locate(a.MaterialID)
	if !ok {
		return tree, Change{}, false
	}
	for _, other := range tree.Family(p).Materials {
		if other.ID != a.MaterialID && other.Code == a.Entry.Code {
			return tree, Change{}, false
		}
	}

	m := tree.Material(p)
	m.Code = a.Entry.Code
	m.Name = a.Entry.Name
	m.Unit = a.Entry.Unit
	m.UnitPrice = a.Entry.UnitPrice
	m.Status = StatusPending
	next := withMaterial(tree, p, m)
	return next, Change{Op: a.Op(), Path: p, Material: m}, true
}

func reduceAppendComment(tree Tree, a AppendComment, env Env) (Tree, Change, bool) {
	text := strings.TrimSpace(a.Text)
	if text == "" {
		return tree, Change{}, false
	}
	p, ok := tree.Locate(a.MaterialID)
	if !ok {
		return tree, Change{}, false
	}

	c := Comment{ID: env.NewID(), Author: env.Author, Text: text, CreatedAt: env.Now()}
	m := tree.Material(p)
	m.Comments = append(slices.Clip(m.Comments), c)
	next := withMaterial(tree, p, m)
	return next, Change{Op: a.Op(), Path: p, Material: m, Comment: &c}, true
}

// withMaterial copies the spine from the root down to the material at p and
// swaps in m. Sibling branches are shared.
func withMaterial(tree Tree, p Path, m Material) Tree {
	f := tree.Family(p)
	f.Materials = slices.Clone(f.Materials)
	f.Materials[p.material] = m
	return withFamily(tree, p, f)
}

func withFamily(tree Tree, p Path, f Family) Tree {
	levels := slices.Clone(tree.Levels)
	l := levels[p.level]
	l.Sublevels = slices.Clone(l.Sublevels)
	s := l.Sublevels[p.sublevel]
	s.Families = slices.Clone(s.Families)
	s.Families[p.family] = f
	l.Sublevels[p.sublevel] = s
	levels[p.level] = l
	return Tree{Levels: levels}
}

// ClampQuantity bounds q to [0, budget]. NaN becomes 0.
func ClampQuantity(q, budget float64) float64 {
	if math.IsNaN(q) || q < 0 {
		return 0
	}
	if budget < 0 {
		budget = 0
	}
	if q > budget {
		return budget
	}
	return q
}

// ParseQuantity reads a quantity typed by the user. Anything that is not a
// finite number parses as 0.
func ParseQuantity(s string) float64 {
	s = strings.TrimSpace(strings.ReplaceAll(s, ",", "."))
	if s == "" {
		return 0
	}
	q, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(q) || math.IsInf(q, 0) {
		return 0
	}
	return q
}
