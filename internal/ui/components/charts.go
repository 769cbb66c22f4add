// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/chatconnect-tui/internal/analytics"
	"github.com/jeranaias/chatconnect-tui/internal/ui/styles"
	"github.com/jeranaias/chatconnect-tui/internal/util"
)

// =============================================================================
// TEXT CHARTS
// =============================================================================

var sparkLevels = []rune("▁▂▃▄▅▆▇█")

// RenderChart draws s in width columns according to its kind.
func RenderChart(s analytics.Series, width int, theme *styles.Theme) string {
	var body string
	switch s.Kind {
	case analytics.ChartLine:
		body = renderSparkline(s, width, theme)
	case analytics.ChartShare:
		body = renderShare(s, width, theme)
	default:
		body = renderBars(s, width, theme)
	}
	title := theme.CardTitle.Render(strings.ToUpper(s.Title))
	return lipgloss.JoinVertical(lipgloss.Left, title, body)
}

func labelWidth(s analytics.Series) int {
	w := 0
	for _, p := range s.Points {
		w = max(w, util.Width(p.Label))
	}
	return w
}

func fmtValue(v float64) string {
	if v == math.Trunc(v) {
		return fmtNumber(int(v))
	}
	return strconv.FormatFloat(v, 'f', 1, 64)
}

// barLen scales v against peak into at most width cells.
func barLen(v, peak float64, width int) int {
	if peak <= 0 || width <= 0 || v <= 0 {
		return 0
	}
	n := int(math.Round(v / peak * float64(width)))
	return clamp(n, 0, width)
}

// renderBars draws one horizontal bar per point. Metric charts scale to
// their fixed Max.
func renderBars(s analytics.Series, width int, theme *styles.Theme) string {
	lw := labelWidth(s)
	valueW := 7
	barW := max(width-lw-valueW-2, 4)
	peak := s.Peak()

	lines := make([]string, len(s.Points))
	for i, p := range s.Points {
		color := styles.ChartColor(0)
		if s.Kind == analytics.ChartMetrics {
			color = styles.ChartColor(i)
		}
		n := barLen(p.Value, peak, barW)
		bar := lipgloss.NewStyle().Foreground(color).Render(strings.Repeat("█", n)) +
			theme.ScrollTrack.Render(strings.Repeat("░", barW-n))
		lines[i] = fmt.Sprintf("%s %s %s",
			theme.ChartAxis.Render(util.PadRight(p.Label, lw)),
			bar,
			util.PadLeft(fmtValue(p.Value), valueW))
	}
	return strings.Join(lines, "\n")
}

// Sparkline maps values onto eight block levels, lowest to highest.
func Sparkline(values []float64) string {
	if len(values) == 0 {
		return ""
	}
	lo, hi := values[0], values[0]
	for _, v := range values {
		lo = math.Min(lo, v)
		hi = math.Max(hi, v)
	}
	out := make([]rune, len(values))
	for i, v := range values {
		lvl := len(sparkLevels) - 1
		if hi > lo {
			lvl = int((v - lo) / (hi - lo) * float64(len(sparkLevels)-1))
		}
		out[i] = sparkLevels[lvl]
	}
	return string(out)
}

// renderSparkline draws a line series as a spark strip with labelled values.
func renderSparkline(s analytics.Series, width int, theme *styles.Theme) string {
	values := make([]float64, len(s.Points))
	for i, p := range s.Points {
		values[i] = p.Value
	}
	// Stretch each point over a few cells so short series stay readable.
	cell := max(1, min(6, width/max(1, len(values))))
	var spark strings.Builder
	for _, r := range Sparkline(values) {
		spark.WriteString(strings.Repeat(string(r), cell))
	}
	legend := make([]string, len(s.Points))
	for i, p := range s.Points {
		legend[i] = p.Label + " " + fmtValue(p.Value)
	}
	return lipgloss.JoinVertical(lipgloss.Left,
		lipgloss.NewStyle().Foreground(styles.ChartColor(1)).Render(spark.String()),
		theme.Muted.Render(strings.Join(legend, "  ")))
}

// renderShare draws one stacked bar split by share plus a legend.
func renderShare(s analytics.Series, width int, theme *styles.Theme) string {
	barW := max(width, 10)
	shares := s.Share()

	var bar strings.Builder
	used := 0
	for i, f := range shares {
		n := int(math.Round(f * float64(barW)))
		if i == len(shares)-1 {
			n = barW - used
		}
		n = clamp(n, 0, barW-used)
		used += n
		bar.WriteString(lipgloss.NewStyle().Foreground(styles.ChartColor(i)).Render(strings.Repeat("█", n)))
	}

	legend := make([]string, len(s.Points))
	for i, p := range s.Points {
		dot := lipgloss.NewStyle().Foreground(styles.ChartColor(i)).Render("■")
		legend[i] = fmt.Sprintf("%s %s %s (%s)", dot, p.Label, fmtValue(p.Value), fmtPercent(shares[i]))
	}
	return lipgloss.JoinVertical(lipgloss.Left, bar.String(), strings.Join(legend, "\n"))
}

// =============================================================================
// ANALYTICS VIEW
// =============================================================================

// RenderStatCard draws one headline number.
func RenderStatCard(s analytics.Stat, theme *styles.Theme) string {
	trend := theme.TrendUp
	if !s.Up() {
		trend = theme.TrendDown
	}
	return theme.Card.Render(lipgloss.JoinVertical(lipgloss.Left,
		theme.CardTitle.Render(strings.ToUpper(s.Title))+" "+trend.Render(s.Trend),
		theme.CardValue.Render(s.Value),
	))
}

// RenderAnalytics lays out the stat cards and the charts in two columns
// when there is room, one otherwise.
func RenderAnalytics(r analytics.Report, width int, theme *styles.Theme) string {
	cards := make([]string, len(r.Stats))
	for i, s := range r.Stats {
		cards[i] = RenderStatCard(s, theme)
	}
	header := lipgloss.JoinHorizontal(lipgloss.Center,
		theme.PaneTitle.Render("Performance Analytics"),
		"  ",
		theme.ButtonActive.Render("◀ "+r.Range.Label()+" ▶"),
		"  ",
		theme.Muted.Render("[x] Export Report"),
	)

	var cardRows []string
	perRow := max(1, width/20)
	for i := 0; i < len(cards); i += perRow {
		cardRows = append(cardRows, lipgloss.JoinHorizontal(lipgloss.Top, cards[i:min(i+perRow, len(cards))]...))
	}

	cols := 1
	if width >= 90 {
		cols = 2
	}
	chartW := width/cols - 4
	charts := make([]string, len(r.Charts))
	for i, c := range r.Charts {
		charts[i] = theme.Pane.Width(chartW + 2).Render(RenderChart(c, chartW, theme))
	}
	var chartRows []string
	for i := 0; i < len(charts); i += cols {
		chartRows = append(chartRows, lipgloss.JoinHorizontal(lipgloss.Top, charts[i:min(i+cols, len(charts))]...))
	}

	parts := append([]string{header}, cardRows...)
	parts = append(parts, chartRows...)
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}
