package separation

import (
	"errors"
	"fmt"
	"sort"

	"github.com/shinji-kodama/cityreports/internal/model"
)

var (
	// ErrBaseCityNotFound is returned when no city matches the base-city name.
	ErrBaseCityNotFound = errors.New("separation: base city not found")

	// ErrBaseCityAmbiguous is returned when more than one city matches the
	// base-city name. It wraps ErrBaseCityNotFound: an ambiguous name is
	// handled exactly like a missing one.
	ErrBaseCityAmbiguous = fmt.Errorf("%w: name matches more than one city", ErrBaseCityNotFound)

	// ErrDuplicateCityID is returned when two records share a CityID.
	ErrDuplicateCityID = errors.New("separation: duplicate city id")
)

// Result holds the degree assignment produced by Compute.
type Result struct {
	// Base is the ID of the resolved base city.
	Base model.CityID

	// Degrees maps every city to its degree: 0 for the base, a positive hop
	// count for reachable cities, model.DegreeUnreachable otherwise.
	Degrees map[model.CityID]int

	// Layers[d] lists the cities resolved at degree d, in dataset order.
	// Layers[0] holds only the base city. Unreachable cities are not listed.
	Layers [][]model.CityID
}

// Degree returns the degree of id. ok is false if id was not part of the run.
func (r *Result) Degree(id model.CityID) (degree int, ok bool) {
	degree, ok = r.Degrees[id]
	return degree, ok
}

// MaxDegree returns the largest finite degree assigned (0 when only the
// base city is reachable).
func (r *Result) MaxDegree() int {
	return len(r.Layers) - 1
}

// Unreachable returns the number of cities that resolved to
// model.DegreeUnreachable.
func (r *Result) Unreachable() int {
	n := 0
	for _, d := range r.Degrees {
		if d == model.DegreeUnreachable {
			n++
		}
	}
	return n
}

// FindBase locates the single city whose name matches name case-insensitively.
//
// Returns ErrBaseCityNotFound when nothing matches (including an empty
// dataset) and ErrBaseCityAmbiguous when several cities match. No match is
// ever picked arbitrarily.
func FindBase(cities []model.City, name string) (int, error) {
	found := -1
	for i := range cities {
		if !cities[i].NameMatches(name) {
			continue
		}
		if found >= 0 {
			return -1, fmt.Errorf("%w: %q", ErrBaseCityAmbiguous, name)
		}
		found = i
	}
	if found < 0 {
		return -1, fmt.Errorf("%w: %q", ErrBaseCityNotFound, name)
	}
	return found, nil
}

// walker encapsulates the mutable state of one computation.
type walker struct {
	cities []model.City

	// carriers maps an interstate to the positions of the cities listing it.
	carriers map[string][]int

	// expanded marks interstates already consumed by a frontier. Every
	// carrier of an expanded interstate is resolved, so it never needs a
	// second look.
	expanded map[string]bool

	degree   []int
	resolved []bool
	layers   [][]int
}

// Compute assigns every city its degree of separation from the city named
// baseName.
//
// Each pass collects the interstates of the previous frontier and resolves
// every unresolved city carrying one of them to the next degree. The loop
// stops after a pass that resolves nothing; cities left over are unreachable.
// Degrees are written once, in strictly increasing order, so each reachable
// city receives its minimum hop count.
func Compute(cities []model.City, baseName string) (*Result, error) {
	base, err := FindBase(cities, baseName)
	if err != nil {
		return nil, err
	}

	seen := make(map[model.CityID]struct{}, len(cities))
	for _, c := range cities {
		if _, dup := seen[c.ID]; dup {
			return nil, fmt.Errorf("%w: %d", ErrDuplicateCityID, c.ID)
		}
		seen[c.ID] = struct{}{}
	}

	w := newWalker(cities)
	w.resolve(base, model.DegreeBase)
	w.layers = append(w.layers, []int{base})

	for hop := 1; ; hop++ {
		next := w.expand(w.layers[hop-1], hop)
		if len(next) == 0 {
			break
		}
		w.layers = append(w.layers, next)
	}

	return w.result(base), nil
}

// newWalker indexes cities by interstate.
func newWalker(cities []model.City) *walker {
	w := &walker{
		cities:   cities,
		carriers: make(map[string][]int),
		expanded: make(map[string]bool),
		degree:   make([]int, len(cities)),
		resolved: make([]bool, len(cities)),
	}
	for i := range cities {
		for _, interstate := range cities[i].UniqueInterstates() {
			w.carriers[interstate] = append(w.carriers[interstate], i)
		}
	}
	return w
}

// resolve records the degree of the city at position i.
func (w *walker) resolve(i, degree int) {
	w.degree[i] = degree
	w.resolved[i] = true
}

// expand resolves every unresolved city sharing an interstate with frontier
// to degree hop and returns them in dataset order.
func (w *walker) expand(frontier []int, hop int) []int {
	var next []int
	for _, i := range frontier {
		for _, interstate := range w.cities[i].UniqueInterstates() {
			if w.expanded[interstate] {
				continue
			}
			w.expanded[interstate] = true

			for _, j := range w.carriers[interstate] {
				if w.resolved[j] {
					continue
				}
				w.resolve(j, hop)
				next = append(next, j)
			}
		}
	}
	sort.Ints(next)
	return next
}

// result converts positional state into the ID-keyed Result, resolving the
// remaining cities to model.DegreeUnreachable.
func (w *walker) result(base int) *Result {
	res := &Result{
		Base:    w.cities[base].ID,
		Degrees: make(map[model.CityID]int, len(w.cities)),
		Layers:  make([][]model.CityID, 0, len(w.layers)),
	}
	for i, c := range w.cities {
		if !w.resolved[i] {
			res.Degrees[c.ID] = model.DegreeUnreachable
			continue
		}
		res.Degrees[c.ID] = w.degree[i]
	}
	for _, layer := range w.layers {
		ids := make([]model.CityID, 0, len(layer))
		for _, i := range layer {
			ids = append(ids, w.cities[i].ID)
		}
		res.Layers = append(res.Layers, ids)
	}
	return res
}
