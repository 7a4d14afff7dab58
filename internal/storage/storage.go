// Package storage records the answers of all sources and the value chosen
// for each property.
package storage

import (
	"fmt"
	"slices"
	"strings"

	"github.com/projvar/cli/internal/output"
	"github.com/projvar/cli/internal/property"
)

// Entry is a primary value.
type Entry struct {
	Key   property.Key
	Rated property.Rated
}

// Storage holds, per property, the answer of every source (by source index)
// and the primary value. It is filled by one resolution pass and only read
// afterwards.
type Storage struct {
	all     map[property.Key]map[int]property.Rated
	primary map[property.Key]property.Rated
}

// New creates an empty storage.
func New() *Storage {
	return &Storage{
		all:     make(map[property.Key]map[int]property.Rated),
		primary: make(map[property.Key]property.Rated),
	}
}

// Add records the answer of the source at sourceIndex. The answer always
// becomes the primary value, so sources must be added in ascending priority.
func (s *Storage) Add(key property.Key, sourceIndex int, value property.Rated) {
	perSource, ok := s.all[key]
	if !ok {
		perSource = make(map[int]property.Rated)
		s.all[key] = perSource
	}
	perSource[sourceIndex] = value
	s.primary[key] = value
}

// Get returns the primary value of key.
func (s *Storage) Get(key property.Key) (property.Rated, bool) {
	v, ok := s.primary[key]
	return v, ok
}

// GetAll returns the answers of all sources for key, by source index.
func (s *Storage) GetAll(key property.Key) (map[int]property.Rated, bool) {
	v, ok := s.all[key]
	return v, ok
}

// Len returns the number of properties with a primary value.
func (s *Storage) Len() int {
	return len(s.primary)
}

// Wrapup returns the primary values ordered by key.
func (s *Storage) Wrapup() []Entry {
	keys := make([]property.Key, 0, len(s.primary))
	for k := range s.primary {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	entries := make([]Entry, len(keys))
	for i, k := range keys {
		entries[i] = Entry{Key: k, Rated: s.primary[k]}
	}
	return entries
}

// ToTable renders every answer of every source as a Markdown table with one
// row per property and one column per source.
func (s *Storage) ToTable(prefix string, sourceNames []string) string {
	headers := append([]string{"Property", "Env-Key"}, sourceNames...)
	tbl := output.NewMarkdownTable(headers...)
	for _, k := range property.Keys() {
		row := []string{k.String(), property.Of(k).ExternalKey(prefix)}
		perSource := s.all[k]
		for i := range sourceNames {
			cell := ""
			if v, ok := perSource[i]; ok {
				cell = escapeCell(v.Value)
			}
			row = append(row, cell)
		}
		tbl.Row(row...)
	}
	return tbl.String() + "\n"
}

// ToList renders the primary values as a Markdown list.
func (s *Storage) ToList(prefix string) string {
	var b strings.Builder
	for _, e := range s.Wrapup() {
		fmt.Fprintf(&b, "* %s - %s - %s\n", e.Key, property.Of(e.Key).ExternalKey(prefix), e.Rated.Value)
	}
	return b.String()
}

func escapeCell(v string) string {
	return strings.ReplaceAll(v, "|", `\|`)
}
