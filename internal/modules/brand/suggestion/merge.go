package suggestion

import (
	"fmt"
	"strings"

	"github.com/brandhub/core/internal/models"
)

// Diff returns one Change per suggested field whose serialization differs from
// the profile's current value.
func Diff(current *models.BusinessProfile, s *Suggestions) []Change {
	changes := []Change{}
	if current == nil || s == nil {
		return changes
	}
	for _, f := range registry {
		suggested, ok := f.suggested(s)
		if !ok {
			continue
		}
		cur := f.current(current)
		if sameJSON(cur, suggested) {
			continue
		}
		changes = append(changes, Change{
			Path:      f.path,
			Label:     f.label,
			Current:   cur,
			Suggested: suggested,
		})
	}
	return changes
}

// Accept applies the suggested values at paths. Every path is checked before
// anything is written; an unknown path fails the whole call. Arrays are
// replaced wholesale. Returns the paths that were actually applied.
func Accept(current *models.BusinessProfile, s *Suggestions, paths []string) ([]string, error) {
	fields := make([]*field, 0, len(paths))
	var unknown []string
	for _, path := range paths {
		f, ok := registryIndex[strings.TrimSpace(path)]
		if !ok {
			unknown = append(unknown, path)
			continue
		}
		fields = append(fields, f)
	}
	if len(unknown) > 0 {
		return nil, fmt.Errorf("%w: %s", ErrUnknownPath, strings.Join(unknown, ", "))
	}

	applied := []string{}
	if s == nil {
		return applied, nil
	}
	for _, f := range fields {
		if f.apply(current, s) {
			applied = append(applied, f.path)
		}
	}
	return applied, nil
}

// AcceptAll applies every path Diff reports.
func AcceptAll(current *models.BusinessProfile, s *Suggestions) []string {
	changes := Diff(current, s)
	paths := make([]string, len(changes))
	for i, c := range changes {
		paths[i] = c.Path
	}
	applied, _ := Accept(current, s, paths)
	return applied
}
