// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package analytics holds the performance report shown on the Analytics tab.
//
// The numbers are fixed sample data; no endpoint serves them yet.
package analytics

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
)

// =============================================================================
// REPORT TYPES
// =============================================================================

// ChartKind selects how a series is drawn.
type ChartKind int

const (
	ChartBar ChartKind = iota
	ChartLine
	ChartShare
	ChartMetrics
)

// String returns the kind name used in exports.
func (k ChartKind) String() string {
	switch k {
	case ChartBar:
		return "bar"
	case ChartLine:
		return "line"
	case ChartShare:
		return "share"
	case ChartMetrics:
		return "metrics"
	default:
		return "unknown"
	}
}

// Point is one labelled value.
type Point struct {
	Label string
	Value float64
}

// Series is one chart.
type Series struct {
	Title  string
	Label  string
	Kind   ChartKind
	Points []Point

	// Max is the scale ceiling for metric charts; 0 means the largest value.
	Max float64
}

// Total sums the series.
func (s Series) Total() float64 {
	var t float64
	for _, p := range s.Points {
		t += p.Value
	}
	return t
}

// Peak returns the largest value, or Max when set.
func (s Series) Peak() float64 {
	if s.Max > 0 {
		return s.Max
	}
	var m float64
	for _, p := range s.Points {
		if p.Value > m {
			m = p.Value
		}
	}
	return m
}

// Share returns each point's fraction of the total. A zero total yields zeros.
func (s Series) Share() []float64 {
	out := make([]float64, len(s.Points))
	total := s.Total()
	if total == 0 {
		return out
	}
	for i, p := range s.Points {
		out[i] = p.Value / total
	}
	return out
}

// Stat is a headline number with a trend against the previous period.
type Stat struct {
	Title string
	Value string
	Trend string
}

// Up reports whether the trend is non-negative.
func (s Stat) Up() bool {
	return len(s.Trend) == 0 || s.Trend[0] != '-'
}

// =============================================================================
// RANGES
// =============================================================================

// Range is the reporting window picked in the range selector.
type Range int

const (
	Last7Days Range = iota
	Last30Days
	Last90Days
)

// Ranges lists the selector options in order.
var Ranges = []Range{Last7Days, Last30Days, Last90Days}

// Label is the selector text.
func (r Range) Label() string {
	switch r {
	case Last30Days:
		return "Last 30 Days"
	case Last90Days:
		return "Last 90 Days"
	default:
		return "Last 7 Days"
	}
}

// Days is the window length.
func (r Range) Days() int {
	switch r {
	case Last30Days:
		return 30
	case Last90Days:
		return 90
	default:
		return 7
	}
}

// Next cycles to the following option.
func (r Range) Next() Range {
	return Ranges[(int(r)+1)%len(Ranges)]
}

// Prev cycles to the preceding option.
func (r Range) Prev() Range {
	return Ranges[(int(r)+len(Ranges)-1)%len(Ranges)]
}

// =============================================================================
// REPORT
// =============================================================================

// Report is everything the Analytics tab shows.
type Report struct {
	Range  Range
	Stats  []Stat
	Charts []Series
}

// Sample returns the built-in report for r. The data does not vary with r.
func Sample(r Range) Report {
	return Report{
		Range: r,
		Stats: []Stat{
			{Title: "Total Messages", Value: "12,847", Trend: "+12%"},
			{Title: "Voice Calls", Value: "892", Trend: "+8%"},
			{Title: "Video Calls", Value: "324", Trend: "-3%"},
			{Title: "Satisfaction", Value: "4.8", Trend: "+15%"},
		},
		Charts: []Series{
			{
				Title: "Monthly Message Volume", Label: "Messages Sent", Kind: ChartBar,
				Points: points([]string{"Jan", "Feb", "Mar", "Apr", "May", "Jun"}, 1200, 1900, 3000, 5000, 2000, 3000),
			},
			{
				Title: "User Engagement", Label: "Active Users", Kind: ChartLine,
				Points: points([]string{"Week 1", "Week 2", "Week 3", "Week 4"}, 400, 600, 800, 1000),
			},
			{
				Title: "Message Distribution", Label: "Message Type", Kind: ChartShare,
				Points: points([]string{"Direct", "Group", "System"}, 300, 50, 100),
			},
			{
				Title: "Skills & Metrics Distribution", Label: "Interaction Metrics", Kind: ChartMetrics, Max: 100,
				Points: points([]string{"Speed", "Quality", "Tone", "Resolution", "Empathy"}, 85, 92, 78, 90, 88),
			},
		},
	}
}

func points(labels []string, values ...float64) []Point {
	out := make([]Point, len(labels))
	for i, l := range labels {
		out[i] = Point{Label: l, Value: values[i]}
	}
	return out
}

// Chart finds a chart by title.
func (r Report) Chart(title string) (Series, bool) {
	for _, s := range r.Charts {
		if s.Title == title {
			return s, true
		}
	}
	return Series{}, false
}

// WriteCSV exports the report as section,label,value rows: stats first,
// then every chart point.
func (r Report) WriteCSV(w io.Writer) error {
	cw := csv.NewWriter(w)
	rows := [][]string{
		{"section", "label", "value", "extra"},
		{"range", r.Range.Label(), strconv.Itoa(r.Range.Days()), ""},
	}
	for _, s := range r.Stats {
		rows = append(rows, []string{"stat", s.Title, s.Value, s.Trend})
	}
	for _, c := range r.Charts {
		for _, p := range c.Points {
			rows = append(rows, []string{c.Title, p.Label, strconv.FormatFloat(p.Value, 'f', -1, 64), c.Kind.String()})
		}
	}
	if err := cw.WriteAll(rows); err != nil {
		return fmt.Errorf("write report: %w", err)
	}
	return nil
}
