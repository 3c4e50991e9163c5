package config

import (
	"bytes"
	"strconv"
	"strings"
	"text/template"

	"github.com/nexusriot/ducktrend/pkg/trend"
)

var snippet = template.Must(template.New("snippet").Funcs(template.FuncMap{
	"num":   trend.FormatFloat,
	"quote": strconv.Quote,
	"data":  goData,
	"list":  goStrings,
	"ms":    func(c Config) int64 { return c.AutoDraw.Duration.Milliseconds() },
	"deref": func(p *float64) float64 { return *p },
}).Parse(`package main

import (
	"os"
{{- if .AutoDraw.Enabled }}
	"time"
{{- end }}

	"github.com/nexusriot/ducktrend/pkg/trend"
	"github.com/nexusriot/ducktrend/pkg/trend/chart"
)

func main() {
	opts := chart.DefaultOptions()
	opts.Data = {{ data .Data }}
{{- if .Smooth }}
	opts.Smooth = true
	opts.Radius = {{ num .Radius }}
{{- end }}
{{- if .Width }}
	opts.Width = {{ num .Width }}
{{- end }}
{{- if .Height }}
	opts.Height = {{ num .Height }}
{{- end }}
{{- if .Gradient }}
	opts.Gradient = {{ list .Gradient }}
{{- end }}
{{- if .Score }}
	score := float64({{ num (deref .Score) }})
	opts.Score = &score
{{- end }}
{{- if .AutoDraw.Enabled }}
	opts.AutoDraw = true
	opts.AutoDrawDuration = {{ ms . }} * time.Millisecond
	opts.AutoDrawEasing = {{ quote .AutoDraw.Easing }}
{{- end }}
{{- if .Stroke }}
	opts.Attrs["stroke"] = {{ quote .Stroke }}
{{- end }}
{{- if .StrokeWidth }}
	opts.Attrs["stroke-width"] = {{ quote (num .StrokeWidth) }}
{{- end }}
{{- if .StrokeLinecap }}
	opts.Attrs["stroke-linecap"] = {{ quote .StrokeLinecap }}
{{- end }}

	if err := chart.Render(os.Stdout, opts); err != nil {
		panic(err)
	}
}
`))

// Snippet renders Go code that draws the chart described by cfg.
func Snippet(cfg Config) (string, error) {
	var b bytes.Buffer
	if err := snippet.Execute(&b, cfg); err != nil {
		return "", err
	}
	return b.String(), nil
}

func goData(points []trend.DataPoint) string {
	labeled := false
	for _, p := range points {
		if p.Label != "" {
			labeled = true
			break
		}
	}
	var b strings.Builder
	if !labeled {
		b.WriteString("trend.Numbers(")
		for i, p := range points {
			if i > 0 {
				b.WriteString(", ")
			}
			b.WriteString(strconv.FormatFloat(p.Value, 'g', -1, 64))
		}
		b.WriteString(")")
		return b.String()
	}
	b.WriteString("[]trend.DataPoint{\n")
	for _, p := range points {
		b.WriteString("\t\t{Value: ")
		b.WriteString(strconv.FormatFloat(p.Value, 'g', -1, 64))
		if p.Label != "" {
			b.WriteString(", Label: ")
			b.WriteString(strconv.Quote(p.Label))
		}
		b.WriteString("},\n")
	}
	b.WriteString("\t}")
	return b.String()
}

func goStrings(ss []string) string {
	q := make([]string, len(ss))
	for i, s := range ss {
		q[i] = strconv.Quote(s)
	}
	return "[]string{" + strings.Join(q, ", ") + "}"
}
