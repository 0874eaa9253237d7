package models

import (
	"errors"
	"strings"

	"github.com/google/uuid"
)

var ErrInvalidID = errors.New("invalid identifier")

// NewID returns a new canonical identifier.
func NewID() string {
	return uuid.New().String()
}

// ParseID normalizes any accepted UUID spelling into the canonical
// lowercase hyphenated form used for every stored reference.
func ParseID(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", ErrInvalidID
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return "", ErrInvalidID
	}
	return id.String(), nil
}

// NormalizeSkill maps a category or skill to its match key: lowercased,
// trimmed, with runs of whitespace, hyphens and underscores collapsed to "-".
func NormalizeSkill(s string) string {
	var b strings.Builder
	sep := false
	for _, r := range strings.ToLower(strings.TrimSpace(s)) {
		switch r {
		case ' ', '\t', '\n', '-', '_':
			sep = true
			continue
		}
		if sep && b.Len() > 0 {
			b.WriteByte('-')
		}
		sep = false
		b.WriteRune(r)
	}
	return b.String()
}

// NormalizeSkills trims the given skills, drops empties and duplicates (by
// match key) and returns the display values alongside their keys.
func NormalizeSkills(skills []string) (display []string, keys []string) {
	seen := make(map[string]bool, len(skills))
	for _, s := range skills {
		s = strings.TrimSpace(s)
		key := NormalizeSkill(s)
		if key == "" || seen[key] {
			continue
		}
		seen[key] = true
		display = append(display, s)
		keys = append(keys, key)
	}
	return display, keys
}

// SplitSkills splits a comma separated skills field.
func SplitSkills(raw string) []string {
	return strings.Split(raw, ",")
}
