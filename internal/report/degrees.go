package report

import (
	"bufio"
	"fmt"
	"io"
	"math"
	"sort"

	"github.com/shinji-kodama/cityreports/internal/model"
	"github.com/shinji-kodama/cityreports/internal/separation"
)

// DegreeRow is one line of the degrees report.
type DegreeRow struct {
	Degree int    `json:"degree" yaml:"degree"`
	Name   string `json:"name" yaml:"name"`
	State  string `json:"state" yaml:"state"`
}

// DegreesReport is the degrees-from-base-city report.
type DegreesReport struct {
	// Base is the base-city name as requested by the user. It names the
	// output file.
	Base string      `json:"base" yaml:"base"`
	Rows []DegreeRow `json:"rows" yaml:"rows"`
}

// Degrees builds the degrees report from a separation result.
//
// Unreachable cities (-1) come first. The rest follow by degree descending,
// so the base city is last. Ties break on name, then state.
func Degrees(base string, cities []model.City, res *separation.Result) *DegreesReport {
	rows := make([]DegreeRow, 0, len(cities))
	for _, c := range cities {
		d, ok := res.Degree(c.ID)
		if !ok {
			d = model.DegreeUnreachable
		}
		rows = append(rows, DegreeRow{Degree: d, Name: c.Name, State: c.State})
	}

	sort.SliceStable(rows, func(i, j int) bool {
		a, b := rows[i], rows[j]
		if ra, rb := degreeRank(a.Degree), degreeRank(b.Degree); ra != rb {
			return ra > rb
		}
		if a.Name != b.Name {
			return a.Name < b.Name
		}
		return a.State < b.State
	})

	return &DegreesReport{Base: base, Rows: rows}
}

// degreeRank orders model.DegreeUnreachable above every finite degree.
func degreeRank(d int) int {
	if d == model.DegreeUnreachable {
		return math.MaxInt
	}
	return d
}

// Kind implements Report.
func (r *DegreesReport) Kind() model.ReportKind {
	return model.ReportDegrees
}

// WriteText writes one "<degree> <name>, <state>" line per city.
func (r *DegreesReport) WriteText(w io.Writer) error {
	bw := bufio.NewWriter(w)
	for _, row := range r.Rows {
		fmt.Fprintf(bw, "%d %s, %s\n", row.Degree, row.Name, row.State)
	}
	return bw.Flush()
}
