package registry

import (
	"sort"
	"strings"
	"time"

	"github.com/montaraz/rutas/pkg/types"
)

// Sort keys for the grouped listing.
const (
	SortByDate     = "date"
	SortByDistance = "distance"
	SortByAscent   = "elevation"
)

// ListOptions filters and orders the grouped listing. The zero value lists
// everything by date, newest first.
type ListOptions struct {
	// Search keeps only routes whose name contains the term,
	// case-insensitively.
	Search string

	// SortBy is one of SortByDate, SortByDistance, SortByAscent.
	SortBy string

	// Ascending flips the default descending order.
	Ascending bool
}

// FolderGroup is one folder's routes in display order.
type FolderGroup struct {
	Folder string
	Routes []types.Route
}

// ListByFolder groups the (optionally filtered) routes by folder and sorts
// each group. Folder headers are locale-sorted with the unlabeled folder
// always first.
func (g *Registry) ListByFolder(opts ListOptions) []FolderGroup {
	g.mu.Lock()
	defer g.mu.Unlock()

	g.recomputeFoldersLocked()
	term := strings.ToLower(strings.TrimSpace(opts.Search))

	groups := make(map[string][]types.Route)
	for _, r := range g.routes {
		if term != "" && !strings.Contains(strings.ToLower(r.Name), term) {
			continue
		}
		f := types.NormalizeFolder(r.Folder)
		groups[f] = append(groups[f], *r)
	}

	keys := make([]string, 0, len(groups))
	for f := range groups {
		keys = append(keys, f)
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i] == "" {
			return true
		}
		if keys[j] == "" {
			return false
		}
		return g.coll.CompareString(keys[i], keys[j]) < 0
	})

	out := make([]FolderGroup, 0, len(keys))
	for _, f := range keys {
		routes := groups[f]
		g.sortRoutes(routes, opts)
		out = append(out, FolderGroup{Folder: f, Routes: routes})
	}
	return out
}

// sortRoutes orders one group by the selected key, descending unless
// Ascending is set, with ties broken by collated name in the same direction.
func (g *Registry) sortRoutes(routes []types.Route, opts ListOptions) {
	dir := -1
	if opts.Ascending {
		dir = 1
	}
	key := func(r types.Route) float64 {
		switch opts.SortBy {
		case SortByDistance:
			return r.DistanceKm
		case SortByAscent:
			return r.AscentM
		default:
			return float64(startDateUnix(r.StartTime))
		}
	}
	sort.SliceStable(routes, func(i, j int) bool {
		ki, kj := key(routes[i]), key(routes[j])
		if ki != kj {
			if dir > 0 {
				return ki < kj
			}
			return ki > kj
		}
		ni, nj := displayName(routes[i]), displayName(routes[j])
		if dir > 0 {
			return g.coll.CompareString(ni, nj) < 0
		}
		return g.coll.CompareString(ni, nj) > 0
	})
}

func displayName(r types.Route) string {
	if r.Name != "" {
		return r.Name
	}
	return r.ID
}

// startDateUnix reduces an ISO timestamp to the Unix time of its date part;
// missing or unparseable timestamps sort as zero.
func startDateUnix(iso *string) int64 {
	if iso == nil {
		return 0
	}
	s := *iso
	if len(s) > 10 {
		s = s[:10]
	}
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return 0
	}
	return t.Unix()
}
