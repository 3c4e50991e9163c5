package trend

import (
	"fmt"
	"regexp"
	"slices"
	"strconv"
	"strings"
	"time"
)

// Auto-draw defaults.
const (
	DefaultAutoDrawDuration = 2000 * time.Millisecond
	DefaultAutoDrawEasing   = "ease"
)

// Easings are the CSS timing keywords accepted as auto-draw easing.
var Easings = []string{"ease", "ease-in", "ease-out", "ease-in-out", "linear", "step-start", "step-end"}

var (
	cubicBezier = regexp.MustCompile(`^cubic-bezier\(\s*` + cssNum + `(\s*,\s*` + cssNum + `){3}\s*\)$`)
	stepsFunc   = regexp.MustCompile(`^steps\(\s*[0-9]+\s*(,\s*(jump-start|jump-end|jump-none|jump-both|start|end)\s*)?\)$`)
)

const cssNum = `-?([0-9]+(\.[0-9]*)?|\.[0-9]+)`

// ValidEasing reports whether s is a CSS timing function: a keyword from
// Easings, cubic-bezier() with four numbers or steps().
func ValidEasing(s string) bool {
	return slices.Contains(Easings, s) || cubicBezier.MatchString(s) || stepsFunc.MatchString(s)
}

// IDPrefix namespaces element ids and keyframes of a chart instance.
const IDPrefix = "ducktrend"

// ElementID returns the id of the trend line element of instance id.
func ElementID(id string) string { return IDPrefix + "-" + id }

// GradientID returns the id of the gradient definition of instance id.
func GradientID(id string) string { return IDPrefix + "-gradient-" + id }

// AutoDraw describes a one-shot stroke reveal.
type AutoDraw struct {
	LineLength float64
	Duration   time.Duration
	Easing     string
}

// Validate rejects non-positive durations and anything but a CSS timing
// function as easing. The easing is written into a style element verbatim.
func (a AutoDraw) Validate() error {
	if a.Duration <= 0 {
		return NewOptionError("auto_draw.duration", ErrInvalidAnimation)
	}
	if !ValidEasing(a.Easing) {
		return NewOptionError("auto_draw.easing", ErrInvalidAnimation)
	}
	return nil
}

// CSS returns the keyframes and rule that animate instance id. The line is
// drawn as one dash as long as the line, slid from fully hidden to fully
// shown; a cleanup animation drops the dash once done so later length
// changes do not leave gaps.
func (a AutoDraw) CSS(id string) string {
	length := FormatFloat(a.LineLength)
	ms := strconv.FormatInt(a.Duration.Milliseconds(), 10)
	draw := IDPrefix + "-autodraw-" + id
	cleanup := IDPrefix + "-autodraw-cleanup-" + id

	var b strings.Builder
	fmt.Fprintf(&b, "@keyframes %s {\n", draw)
	fmt.Fprintf(&b, "  0%% { stroke-dasharray: %s; stroke-dashoffset: %s; }\n", length, length)
	fmt.Fprintf(&b, "  100%% { stroke-dasharray: %s; stroke-dashoffset: 0; }\n", length)
	b.WriteString("}\n")
	fmt.Fprintf(&b, "@keyframes %s {\n", cleanup)
	b.WriteString("  to { stroke-dasharray: none; stroke-dashoffset: 0; }\n")
	b.WriteString("}\n")
	fmt.Fprintf(&b, "#%s {\n", ElementID(id))
	fmt.Fprintf(&b, "  animation: %s %sms %s, %s 1ms %sms forwards;\n", draw, ms, a.Easing, cleanup, ms)
	b.WriteString("}\n")
	return b.String()
}

// StyleSheet collects the style rules of chart instances sharing one
// document. It is not safe for concurrent use.
type StyleSheet struct {
	order []string
	rules map[string]string
	refs  map[string]int
}

// NewStyleSheet creates an empty StyleSheet.
func NewStyleSheet() *StyleSheet {
	return &StyleSheet{rules: map[string]string{}, refs: map[string]int{}}
}

// Scope acquires the scope of instance id. Scopes acquired for the same id
// share one set of rules, which stays until every one of them is released.
func (s *StyleSheet) Scope(id string) *StyleScope {
	if s.refs[id] == 0 {
		s.rules[id] = ""
		s.order = append(s.order, id)
	}
	s.refs[id]++
	return &StyleScope{id: id, sheet: s}
}

// Len returns the number of live scopes.
func (s *StyleSheet) Len() int { return len(s.order) }

// String concatenates the rules of all live scopes in acquisition order.
func (s *StyleSheet) String() string {
	var b strings.Builder
	for _, id := range s.order {
		b.WriteString(s.rules[id])
	}
	return b.String()
}

func (s *StyleSheet) release(id string) {
	if s.refs[id] == 0 {
		return
	}
	if s.refs[id]--; s.refs[id] > 0 {
		return
	}
	delete(s.refs, id)
	delete(s.rules, id)
	for i, v := range s.order {
		if v == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
}

// StyleScope is the slice of a StyleSheet owned by one chart instance.
type StyleScope struct {
	id    string
	sheet *StyleSheet
}

// ID returns the instance id of the scope.
func (sc *StyleScope) ID() string { return sc.id }

// Inject sets the scope's rules. Injecting again replaces them.
func (sc *StyleScope) Inject(css string) {
	// released scopes stay released
	if sc.sheet == nil {
		return
	}
	sc.sheet.rules[sc.id] = css
}

// CSS returns the scope's current rules.
func (sc *StyleScope) CSS() string {
	if sc.sheet == nil {
		return ""
	}
	return sc.sheet.rules[sc.id]
}

// Release removes the scope's rules from its sheet. It is safe to call twice.
func (sc *StyleScope) Release() {
	if sc.sheet == nil {
		return
	}
	sc.sheet.release(sc.id)
	sc.sheet = nil
}
