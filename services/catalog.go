package services

import (
	"prepedido/estimate"
)

// StaticCatalog is an in-memory catalog that keeps entries in the order they
// were supplied.
type StaticCatalog struct {
	entries []estimate.CatalogEntry
	byCode  map[string]int
}

// NewStaticCatalog builds a catalog. A repeated code keeps its first entry.
func NewStaticCatalog(entries []estimate.CatalogEntry) *StaticCatalog {
	c := &StaticCatalog{byCode: make(map[string]int, len(entries))}
	for _, e := range entries {
		if e.Code == "" {
			continue
		}
		if _, dup := c.byCode[e.Code]; dup {
			continue
		}
		c.byCode[e.Code] = len(c.entries)
		c.entries = append(c.entries, e)
	}
	return c
}

func (c *StaticCatalog) All() []estimate.CatalogEntry {
	out := make([]estimate.CatalogEntry, len(c.entries))
	copy(out, c.entries)
	return out
}

func (c *StaticCatalog) Lookup(code string) (estimate.CatalogEntry, bool) {
	i, ok := c.byCode[code]
	if !ok {
		return estimate.CatalogEntry{}, false
	}
	return c.entries[i], true
}

var _ estimate.Catalog = (*StaticCatalog)(nil)

// AddOptions lists the catalog entries that can still be added to family.
func AddOptions(catalog estimate.Catalog, family estimate.Family) []estimate.CatalogEntry {
	var out []estimate.CatalogEntry
	for _, e := range catalog.All() {
		if !family.HasCode(e.Code) {
			out = append(out, e)
		}
	}
	return out
}

// ReplaceOptions lists the catalog entries that can substitute material
// inside family: anything except its own code and codes already present.
func ReplaceOptions(catalog estimate.Catalog, family estimate.Family, material estimate.Material) []estimate.CatalogEntry {
	var out []estimate.CatalogEntry
	for _, e := range catalog.All() {
		if e.Code == material.Code || family.HasCode(e.Code) {
			continue
		}
		out = append(out, e)
	}
	return out
}
