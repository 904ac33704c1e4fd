package report

import (
	"bufio"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/shinji-kodama/cityreports/internal/model"
)

// PopulationEntry is one city listed under a population header.
type PopulationEntry struct {
	Name        string   `json:"name" yaml:"name"`
	State       string   `json:"state" yaml:"state"`
	Interstates []string `json:"interstates" yaml:"interstates"`
}

// PopulationGroup holds every city sharing one population value.
type PopulationGroup struct {
	Population int               `json:"population" yaml:"population"`
	Cities     []PopulationEntry `json:"cities" yaml:"cities"`
}

// PopulationReport is the cities-by-population report.
type PopulationReport struct {
	Groups []PopulationGroup `json:"groups" yaml:"groups"`
}

// Population groups cities by population. Groups are ordered by population
// descending; within a group cities are ordered by state, then name.
func Population(cities []model.City) *PopulationReport {
	ordered := make([]model.City, len(cities))
	copy(ordered, cities)
	sort.SliceStable(ordered, func(i, j int) bool {
		a, b := ordered[i], ordered[j]
		if a.Population != b.Population {
			return a.Population > b.Population
		}
		if a.State != b.State {
			return a.State < b.State
		}
		return a.Name < b.Name
	})

	rep := &PopulationReport{Groups: make([]PopulationGroup, 0)}
	for _, c := range ordered {
		n := len(rep.Groups)
		if n == 0 || rep.Groups[n-1].Population != c.Population {
			rep.Groups = append(rep.Groups, PopulationGroup{Population: c.Population})
			n++
		}
		interstates := make([]string, len(c.Interstates))
		copy(interstates, c.Interstates)
		rep.Groups[n-1].Cities = append(rep.Groups[n-1].Cities, PopulationEntry{
			Name:        c.Name,
			State:       c.State,
			Interstates: interstates,
		})
	}
	return rep
}

// Kind implements Report.
func (r *PopulationReport) Kind() model.ReportKind {
	return model.ReportPopulation
}

// WriteText writes one header per group (the population followed by a
// blank line), then for each city a "<name>, <state>" line, an
// "Interstates: <list>" line, and a blank line.
func (r *PopulationReport) WriteText(w io.Writer) error {
	bw := bufio.NewWriter(w)
	for _, g := range r.Groups {
		fmt.Fprintf(bw, "%d\n\n", g.Population)
		for _, c := range g.Cities {
			fmt.Fprintf(bw, "%s, %s\n", c.Name, c.State)
			fmt.Fprintf(bw, "Interstates: %s\n\n", strings.Join(c.Interstates, ", "))
		}
	}
	return bw.Flush()
}
