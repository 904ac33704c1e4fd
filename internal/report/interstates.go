package report

import (
	"bufio"
	"fmt"
	"io"
	"sort"

	"github.com/shinji-kodama/cityreports/internal/model"
)

// InterstateCount pairs an interstate with the number of cities on it.
type InterstateCount struct {
	Interstate string `json:"interstate" yaml:"interstate"`
	Cities     int    `json:"cities" yaml:"cities"`
}

// InterstateReport is the interstates-by-city report.
type InterstateReport struct {
	Interstates []InterstateCount `json:"interstates" yaml:"interstates"`
}

// Interstates collects the distinct interstates across all cities and counts
// the cities on each. A city listing an interstate twice counts once.
//
// Interstates are ordered by their numeric designation, so "I-5" precedes
// "I-10". Identifiers that are not of the form "I-<number>" sort after all
// numbered ones, lexically.
func Interstates(cities []model.City) *InterstateReport {
	counts := make(map[string]int)
	for _, c := range cities {
		for _, interstate := range c.UniqueInterstates() {
			counts[interstate]++
		}
	}

	rep := &InterstateReport{Interstates: make([]InterstateCount, 0, len(counts))}
	for interstate, n := range counts {
		rep.Interstates = append(rep.Interstates, InterstateCount{Interstate: interstate, Cities: n})
	}
	sort.Slice(rep.Interstates, func(i, j int) bool {
		return interstateLess(rep.Interstates[i].Interstate, rep.Interstates[j].Interstate)
	})
	return rep
}

// interstateLess orders interstate identifiers numerically. Equal numbers
// with different spellings ("I-05", "I-5") fall back to string order.
func interstateLess(a, b string) bool {
	na, okA := model.InterstateNumber(a)
	nb, okB := model.InterstateNumber(b)
	switch {
	case okA && okB:
		if na != nb {
			return na < nb
		}
		return a < b
	case okA:
		return true
	case okB:
		return false
	default:
		return a < b
	}
}

// Kind implements Report.
func (r *InterstateReport) Kind() model.ReportKind {
	return model.ReportInterstates
}

// WriteText writes one "<interstate> <count>" line per interstate.
func (r *InterstateReport) WriteText(w io.Writer) error {
	bw := bufio.NewWriter(w)
	for _, ic := range r.Interstates {
		fmt.Fprintf(bw, "%s %d\n", ic.Interstate, ic.Cities)
	}
	return bw.Flush()
}
