package domain

import (
	"sort"
	"strings"
)

// LocationEntry is one row of the static beach coordinate table.
type LocationEntry struct {
	Key         string  `json:"key"`
	DisplayName string  `json:"display_name"`
	Latitude    float64 `json:"latitude"`
	Longitude   float64 `json:"longitude"`
}

// LocationTable is an immutable lookup of beach name to coordinates. It is
// built once at startup and safe for unlimited concurrent reads.
type LocationTable struct {
	entries map[string]LocationEntry
	keys    []string
}

// NewLocationTable builds a table from entries, indexing each by its
// normalized key. Later duplicates overwrite earlier ones.
func NewLocationTable(entries []LocationEntry) *LocationTable {
	t := &LocationTable{entries: make(map[string]LocationEntry, len(entries))}
	for _, e := range entries {
		e.Key = normalizeKey(e.Key)
		t.entries[e.Key] = e
	}
	t.keys = make([]string, 0, len(t.entries))
	for k := range t.entries {
		t.keys = append(t.keys, k)
	}
	sort.Strings(t.keys)
	return t
}

// DefaultBeaches returns the reference deployment's table: nine New York City
// area swimming beaches.
func DefaultBeaches() *LocationTable {
	return NewLocationTable([]LocationEntry{
		{Key: "coney island", DisplayName: "Coney Island Beach", Latitude: 40.5749, Longitude: -73.9850},
		{Key: "brighton beach", DisplayName: "Brighton Beach", Latitude: 40.5776, Longitude: -73.9614},
		{Key: "manhattan beach", DisplayName: "Manhattan Beach", Latitude: 40.5780, Longitude: -73.9430},
		{Key: "rockaway beach", DisplayName: "Rockaway Beach", Latitude: 40.5860, Longitude: -73.8114},
		{Key: "jacob riis park", DisplayName: "Jacob Riis Park", Latitude: 40.5668, Longitude: -73.8760},
		{Key: "orchard beach", DisplayName: "Orchard Beach", Latitude: 40.8670, Longitude: -73.7940},
		{Key: "south beach", DisplayName: "South Beach", Latitude: 40.5830, Longitude: -74.0670},
		{Key: "midland beach", DisplayName: "Midland Beach", Latitude: 40.5700, Longitude: -74.0930},
		{Key: "wolfes pond beach", DisplayName: "Wolfe's Pond Beach", Latitude: 40.5180, Longitude: -74.1880},
	})
}

// Resolve maps a free-form beach name to its table entry. The lookup is
// exact-match only after normalization; no fuzzy matching. On a miss it
// returns a NotFoundError carrying every valid key.
func (t *LocationTable) Resolve(name string) (LocationEntry, error) {
	e, ok := t.entries[normalizeKey(name)]
	if !ok {
		return LocationEntry{}, &NotFoundError{Name: strings.TrimSpace(name), ValidKeys: t.Keys()}
	}
	return e, nil
}

// Keys returns the sorted set of valid lookup keys. The returned slice is a
// copy; callers may not mutate the table through it.
func (t *LocationTable) Keys() []string {
	keys := make([]string, len(t.keys))
	copy(keys, t.keys)
	return keys
}

// Entries returns every table entry ordered by key.
func (t *LocationTable) Entries() []LocationEntry {
	entries := make([]LocationEntry, 0, len(t.keys))
	for _, k := range t.keys {
		entries = append(entries, t.entries[k])
	}
	return entries
}

// Len returns the number of entries in the table.
func (t *LocationTable) Len() int { return len(t.entries) }

// normalizeKey lowercases and collapses all whitespace runs to single spaces,
// so "  Coney   Island " and "CONEY ISLAND" resolve identically.
func normalizeKey(name string) string {
	return strings.ToLower(strings.Join(strings.Fields(name), " "))
}
