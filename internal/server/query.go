package server

import (
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/nexusriot/ducktrend/internal/config"
	"github.com/nexusriot/ducktrend/pkg/trend"
)

var ErrBadParam = errors.New("bad query parameter")

// applyQuery overlays query parameters on cfg. Absent parameters keep their
// current value; an empty or non-numeric score removes the marker.
func applyQuery(cfg *config.Config, q url.Values) error {
	var err error
	str := func(key string, dst *string) {
		if q.Has(key) {
			*dst = strings.TrimSpace(q.Get(key))
		}
	}
	num := func(key string, dst *float64) {
		if err != nil || !q.Has(key) {
			return
		}
		v, perr := strconv.ParseFloat(strings.TrimSpace(q.Get(key)), 64)
		if perr != nil {
			err = badParam(key, q.Get(key))
			return
		}
		*dst = v
	}
	flag := func(key string, dst *bool) {
		if err != nil || !q.Has(key) {
			return
		}
		v := strings.TrimSpace(q.Get(key))
		if v == "" || v == "on" {
			// checkbox style
			*dst = true
			return
		}
		b, perr := strconv.ParseBool(v)
		if perr != nil {
			err = badParam(key, v)
			return
		}
		*dst = b
	}

	if q.Has("data") {
		points, perr := trend.ParseData(q.Get("data"))
		if perr != nil {
			return trend.NewOptionError("data", perr)
		}
		cfg.Data = points
	}
	flag("smooth", &cfg.Smooth)
	num("radius", &cfg.Radius)
	num("width", &cfg.Width)
	num("height", &cfg.Height)
	num("padding", &cfg.Padding)
	if q.Has("score") {
		// anything but a finite number draws no marker
		cfg.Score = nil
		v, perr := strconv.ParseFloat(strings.TrimSpace(q.Get("score")), 64)
		if perr == nil && trend.IsScore(v) {
			cfg.Score = &v
		}
	}
	if q.Has("gradient") {
		cfg.Gradient = nil
		for _, c := range strings.Split(q.Get("gradient"), ",") {
			if c = strings.TrimSpace(c); c != "" {
				cfg.Gradient = append(cfg.Gradient, c)
			}
		}
	}
	str("stroke", &cfg.Stroke)
	num("stroke_width", &cfg.StrokeWidth)
	str("stroke_linecap", &cfg.StrokeLinecap)
	flag("auto_draw", &cfg.AutoDraw.Enabled)
	if err == nil && q.Has("auto_draw_duration") {
		d, derr := parseDuration(q.Get("auto_draw_duration"))
		if derr != nil {
			err = badParam("auto_draw_duration", q.Get("auto_draw_duration"))
		}
		cfg.AutoDraw.Duration = d
	}
	str("auto_draw_easing", &cfg.AutoDraw.Easing)
	str("marker_policy", &cfg.Marker.Policy)
	num("marker_radius", &cfg.Marker.Radius)
	flag("minify", &cfg.Minify)
	str("id", &cfg.ID)
	return err
}

// parseDuration accepts Go durations and bare milliseconds.
func parseDuration(s string) (time.Duration, error) {
	s = strings.TrimSpace(s)
	if ms, err := strconv.ParseInt(s, 10, 64); err == nil {
		return time.Duration(ms) * time.Millisecond, nil
	}
	return time.ParseDuration(s)
}

func badParam(key, value string) error {
	return trend.NewOptionError(key, fmt.Errorf("%w: %q", ErrBadParam, value))
}
