package view

import (
	"strconv"
	"time"

	"github.com/matzehuels/netgraph/pkg/dataset"
	"github.com/matzehuels/netgraph/pkg/force"
)

// Edge opacities. Edges start at OpacityInitial and drop to OpacityIdle
// after the first hover ends.
const (
	OpacityInitial = 1.0
	OpacityIdle    = 0.6
	OpacityTouched = 1.0
	OpacityFaded   = 0.1
)

// TooltipOpacity is the opacity a fully faded-in tooltip reaches.
const TooltipOpacity = 1.0

// Tooltip offset from the pointer.
const (
	TooltipDX = 10.0
	TooltipDY = -10.0
)

// Default fade durations.
const (
	DefaultFadeIn  = 200 * time.Millisecond
	DefaultFadeOut = 500 * time.Millisecond
)

// Interaction is the per-view UI state that lives outside the records and
// the simulation: what is hovered, what is dragged, how the view is zoomed
// and what the tooltip shows.
type Interaction struct {
	Hover   string    `json:"hover,omitempty"`
	Hovered bool      `json:"hovered,omitempty"`
	Drag    string    `json:"drag,omitempty"`
	Zoom    Transform `json:"zoom"`
	Tooltip Tooltip   `json:"tooltip"`
}

// NewInteraction returns the idle state.
func NewInteraction() Interaction {
	return Interaction{Zoom: Identity()}
}

// EdgeOpacity returns the opacity of e given the hovered node id.
func EdgeOpacity(e dataset.EdgeRecord, hover string) float64 {
	switch {
	case hover == "":
		return OpacityIdle
	case e.Touches(hover):
		return OpacityTouched
	default:
		return OpacityFaded
	}
}

// Tooltip is the node detail box. A tooltip with an empty NodeID is hidden.
// Opacity moves linearly from From to To between Start and Start+Duration.
type Tooltip struct {
	NodeID  string      `json:"node,omitempty"`
	At      force.Point `json:"at"`
	Text    TooltipText `json:"text"`
	Opacity float64     `json:"opacity"`

	From     float64       `json:"-"`
	To       float64       `json:"-"`
	Start    time.Time     `json:"-"`
	Duration time.Duration `json:"-"`
}

// Visible reports whether the tooltip should be drawn.
func (t Tooltip) Visible() bool { return t.NodeID != "" && t.Opacity > 0 }

// Fading reports whether the fade is still in progress at now.
func (t Tooltip) Fading(now time.Time) bool {
	return t.Duration > 0 && now.Before(t.Start.Add(t.Duration))
}

// OpacityAt returns the interpolated opacity at now.
func (t Tooltip) OpacityAt(now time.Time) float64 {
	if t.Duration <= 0 {
		return t.To
	}
	if !now.After(t.Start) {
		return t.From
	}
	p := float64(now.Sub(t.Start)) / float64(t.Duration)
	if p >= 1 {
		return t.To
	}
	return t.From + (t.To-t.From)*p
}

// FadeTo starts a new fade from the current opacity toward target.
func (t Tooltip) FadeTo(target float64, now time.Time, d time.Duration) Tooltip {
	t.From = t.OpacityAt(now)
	t.To = target
	t.Start = now
	t.Duration = d
	t.Opacity = t.From
	return t
}

// TooltipText holds the tooltip lines. Missing numbers read "n/a".
type TooltipText struct {
	Name       string `json:"name"`
	Role       string `json:"role"`
	Department string `json:"department"`
	Age        string `json:"age"`
	Friends    string `json:"friends"`
}

// TextFor builds the tooltip text for a node.
func TextFor(n dataset.NodeRecord) TooltipText {
	return TooltipText{
		Name:       n.Name,
		Role:       n.Role,
		Department: n.Department,
		Age:        formatNumber(n.Age),
		Friends:    formatNumber(n.Friends),
	}
}

func formatNumber(v *float64) string {
	if v == nil {
		return "n/a"
	}
	return strconv.FormatFloat(*v, 'f', -1, 64)
}
