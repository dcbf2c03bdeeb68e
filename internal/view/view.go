// Package view renders the posted summary text from a report.
package view

import (
	"embed"
	"fmt"
	"strings"
	"text/template"
	"time"

	"fitpost/internal/report"
	"fitpost/internal/summary"
)

//go:embed templates/*.tmpl
var templates embed.FS

type zoneView struct {
	Label   string
	Minutes int
}

type viewModel struct {
	StartDate        string
	Distance         string
	DurationMin      string
	Pace             string
	Calories         int
	HeartRateAverage int
	HeartRateMax     int
	Zones            []zoneView
	Splits           []string
}

var funcs = template.FuncMap{
	"pad": func(v, width int) string {
		return fmt.Sprintf("%*d", width, v)
	},
	"join": strings.Join,
}

// Render produces the post text for a report. An activity without a
// distance renders as an empty string: there is nothing worth posting.
func Render(r *report.Report) (string, error) {
	if r.Distance == nil {
		return "", nil
	}

	tmpl, err := template.New("post.tmpl").Funcs(funcs).ParseFS(templates, "templates/post.tmpl")
	if err != nil {
		return "", fmt.Errorf("parsing template: %w", err)
	}

	var sb strings.Builder
	if err := tmpl.Execute(&sb, newViewModel(r)); err != nil {
		return "", fmt.Errorf("rendering template: %w", err)
	}
	return sb.String(), nil
}

func newViewModel(r *report.Report) viewModel {
	startDate := r.StartTime
	if t, err := time.Parse(time.RFC3339, r.StartTime); err == nil {
		startDate = t.Format("2006-01-02")
	}

	distance := *r.Distance
	durationMin := float64(r.Duration) / 60.0 / 1000.0

	var pace float64
	if distance > 0 {
		pace = durationMin / distance
	}

	zones := make([]zoneView, 0, len(r.HeartRate.Buckets))
	for _, b := range r.HeartRate.Buckets {
		// One sample per second, so count/60 is minutes in the bucket.
		zones = append(zones, zoneView{Label: b.Label, Minutes: b.Count / 60})
	}

	return viewModel{
		StartDate:        startDate,
		Distance:         fmt.Sprintf("%.3f", distance),
		DurationMin:      fmt.Sprintf("%.3f", durationMin),
		Pace:             fmt.Sprintf("%.3f", pace),
		Calories:         r.Calories,
		HeartRateAverage: r.HeartRate.Average,
		HeartRateMax:     r.HeartRate.Max,
		Zones:            zones,
		Splits:           formatSplits(r.Splits),
	}
}

// formatSplits renders each split's elapsed sample count as m:ss, one
// sample standing in for one second.
func formatSplits(splits summary.Splits) []string {
	out := make([]string, 0, len(splits))
	for _, s := range splits {
		out = append(out, fmt.Sprintf("%d:%02d", s/60, s%60))
	}
	return out
}
