package mapper

import (
	"strings"
	"time"

	"github.com/akshat1423/memoire/internal/types"
)

// storeDateLayout is the date-only format the store's created_at range
// predicates accept.
const storeDateLayout = "2006-01-02"

// BuildFilter translates UI search filters into the store's structured v2
// filter tree: a logical AND of type-in, tags-contains, location-equals, and
// created_at range predicates. Returns nil when no predicate applies so the
// filters key is omitted from the request entirely.
//
// The structured form is used instead of the flattened query-string grammar
// so filter values containing reserved characters need no escaping.
func BuildFilter(f types.SearchFilters) map[string]any {
	var and []any

	if len(f.Types) > 0 {
		and = append(and, map[string]any{
			"metadata": map[string]any{
				"type": map[string]any{"in": f.Types},
			},
		})
	}
	if len(f.Tags) > 0 {
		and = append(and, map[string]any{
			"metadata": map[string]any{
				"tags": map[string]any{"contains": f.Tags},
			},
		})
	}
	if f.Location != "" {
		and = append(and, map[string]any{
			"metadata": map[string]any{
				"location": f.Location,
			},
		})
	}
	if f.DateFrom != nil || f.DateTo != nil {
		rng := map[string]any{}
		if f.DateFrom != nil {
			rng["gte"] = f.DateFrom.Format(storeDateLayout)
		}
		if f.DateTo != nil {
			rng["lte"] = f.DateTo.Format(storeDateLayout)
		}
		and = append(and, map[string]any{"created_at": rng})
	}

	if len(and) == 0 {
		return nil
	}
	return map[string]any{"AND": and}
}

// DayFilter builds the exact-date filter tree used by the calendar view: the
// same day as both lower and upper bound of a created_at range.
func DayFilter(day time.Time) map[string]any {
	return map[string]any{"AND": []any{dateRangePredicate(day, day)}}
}

func dateRangePredicate(from, to time.Time) map[string]any {
	return map[string]any{
		"created_at": map[string]any{
			"gte": from.Format(storeDateLayout),
			"lte": to.Format(storeDateLayout),
		},
	}
}

// PostFilter re-applies the type and location constraints client-side,
// tolerating a store that ignores or only partially honors filters. Location
// matches case-insensitively against the entry's geotagged city substring.
func PostFilter(entries []types.Entry, f types.SearchFilters) []types.Entry {
	if len(f.Types) == 0 && strings.TrimSpace(f.Location) == "" {
		return entries
	}

	typeSet := make(map[types.EntryType]bool, len(f.Types))
	for _, t := range f.Types {
		typeSet[t] = true
	}
	wantCity := strings.ToLower(strings.TrimSpace(f.Location))

	out := make([]types.Entry, 0, len(entries))
	for _, e := range entries {
		if len(typeSet) > 0 && !typeSet[e.Type] {
			continue
		}
		if wantCity != "" {
			loc := e.Metadata.LocationValue()
			if loc == nil || !strings.Contains(strings.ToLower(loc.City), wantCity) {
				continue
			}
		}
		out = append(out, e)
	}
	return out
}
