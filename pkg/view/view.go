package view

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/matzehuels/netgraph/pkg/dataset"
	neterrors "github.com/matzehuels/netgraph/pkg/errors"
	"github.com/matzehuels/netgraph/pkg/force"
	"github.com/matzehuels/netgraph/pkg/observability"
)

// State is the lifecycle state of a View.
type State string

const (
	StateLoading           State = "loading"
	StateRendered          State = "rendered"
	StateRenderedWithError State = "rendered_with_error"
)

// DefaultFrameInterval is the frame rate of the animation loop.
const DefaultFrameInterval = 16 * time.Millisecond

// Loader produces the dataset a View draws.
type Loader interface {
	Load(ctx context.Context, nodesURI, edgesURI string) dataset.Result
}

// Options configures a View.
type Options struct {
	Force         force.Config
	FrameInterval time.Duration
	FadeIn        time.Duration
	FadeOut       time.Duration
	Logger        *log.Logger

	// Manual disables the frame ticker. Frames advance only through
	// View.Advance.
	Manual bool

	// Now overrides the clock used for tooltip fades.
	Now func() time.Time
}

func (o Options) withDefaults() Options {
	if o.Force.Width <= 0 || o.Force.Height <= 0 {
		o.Force = force.DefaultConfig()
	}
	if o.FrameInterval <= 0 {
		o.FrameInterval = DefaultFrameInterval
	}
	if o.FadeIn <= 0 {
		o.FadeIn = DefaultFadeIn
	}
	if o.FadeOut <= 0 {
		o.FadeOut = DefaultFadeOut
	}
	if o.Logger == nil {
		o.Logger = log.Default()
	}
	if o.Now == nil {
		o.Now = time.Now
	}
	return o
}

// View is one live rendition of a dataset. All mutable state is owned by a
// single loop goroutine; public methods post work to it and wait.
type View struct {
	id     string
	opts   Options
	logger *log.Logger

	events chan func()
	done   chan struct{}
	exited chan struct{}
	loaded chan struct{}
	once   sync.Once
	cancel context.CancelFunc

	// Loop-owned state.
	state     State
	data      *dataset.Dataset
	loadErr   error
	sim       *force.Simulation
	ui        Interaction
	press     *press
	ticker    *time.Ticker
	fadeTimer *time.Timer
	runStart  time.Time
	subs      map[chan Scene]struct{}
	scene     Scene
}

// press tracks a pointer held down since the last "down" event.
type press struct {
	node  string
	last  force.Point
	moved bool
}

// Open creates a View in the Loading state and starts loading both
// resources. The View moves to Rendered or RenderedWithError once the load
// completes. A reload requires a new View.
func Open(ctx context.Context, l Loader, nodesURI, edgesURI string, opts Options) *View {
	ctx, cancel := context.WithCancel(ctx)
	v := newView(opts)
	v.cancel = cancel
	go v.loop(ctx)
	go func() {
		res := l.Load(ctx, nodesURI, edgesURI)
		v.post(func() { v.apply(ctx, res) })
	}()
	return v
}

// FromResult creates a View from an already loaded result.
func FromResult(ctx context.Context, res dataset.Result, opts Options) *View {
	ctx, cancel := context.WithCancel(ctx)
	v := newView(opts)
	v.cancel = cancel
	go v.loop(ctx)
	v.post(func() { v.apply(ctx, res) })
	return v
}

func newView(opts Options) *View {
	opts = opts.withDefaults()
	v := &View{
		id:     uuid.NewString(),
		opts:   opts,
		logger: opts.Logger,
		events: make(chan func()),
		done:   make(chan struct{}),
		exited: make(chan struct{}),
		loaded: make(chan struct{}),
		state:  StateLoading,
		ui:     NewInteraction(),
		subs:   make(map[chan Scene]struct{}),
	}
	v.scene = Scene{ViewID: v.id, State: StateLoading, Width: opts.Force.Width, Height: opts.Force.Height, Interaction: v.ui}
	return v
}

// ID returns the view's unique id.
func (v *View) ID() string { return v.id }

// Loaded is closed once the view has left the Loading state.
func (v *View) Loaded() <-chan struct{} { return v.loaded }

// Wait blocks until the view has loaded, ctx is done or the view closes.
func (v *View) Wait(ctx context.Context) error {
	select {
	case <-v.loaded:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	case <-v.done:
		return neterrors.New(neterrors.ErrCodeNotFound, "view %s closed", v.id)
	}
}

// State returns the lifecycle state.
func (v *View) State() State {
	var s State
	v.read(func() { s = v.state })
	return s
}

// Scene returns the most recent frame.
func (v *View) Scene() Scene {
	var s Scene
	v.read(func() { s = v.scene })
	return s
}

// Advance steps the simulation n times and returns the resulting frame.
// It is how Manual views are driven.
func (v *View) Advance(n int) Scene {
	var s Scene
	v.do(func() {
		for i := 0; i < n; i++ {
			v.frame()
		}
		s = v.scene
	})
	return s
}

// Subscribe returns a channel receiving every published frame. A slow
// subscriber misses intermediate frames but always sees the latest one.
// The cancel func unsubscribes and closes the channel.
func (v *View) Subscribe() (<-chan Scene, func()) {
	ch := make(chan Scene, 1)
	ok := v.do(func() {
		v.subs[ch] = struct{}{}
		deliver(ch, v.scene)
	})
	if !ok {
		close(ch)
		return ch, func() {}
	}
	var once sync.Once
	return ch, func() {
		// After the loop exits, teardown has already closed ch.
		once.Do(func() {
			v.do(func() {
				delete(v.subs, ch)
				close(ch)
			})
		})
	}
}

// Close stops the frame ticker and pending tooltip timers and ends the
// loop. It waits for the loop to exit and is safe to call more than once.
func (v *View) Close() {
	v.once.Do(func() { close(v.done) })
	<-v.exited
}

// do runs fn on the loop and waits. It returns false when the view is
// closed.
func (v *View) do(fn func()) bool {
	ack := make(chan struct{})
	select {
	case v.events <- func() { fn(); close(ack) }:
	case <-v.done:
		return false
	}
	select {
	case <-ack:
		return true
	case <-v.exited:
		return false
	}
}

// read runs fn on the loop, or directly once the loop has exited.
func (v *View) read(fn func()) {
	if !v.do(fn) {
		<-v.exited
		fn()
	}
}

// post queues fn on the loop without waiting.
func (v *View) post(fn func()) {
	select {
	case v.events <- fn:
	case <-v.done:
	}
}

func (v *View) loop(ctx context.Context) {
	defer close(v.exited)
	defer v.teardown()

	var tick <-chan time.Time
	for {
		if v.ticker != nil {
			tick = v.ticker.C
		}
		select {
		case <-v.done:
			return
		case <-ctx.Done():
			v.once.Do(func() { close(v.done) })
			return
		case fn := <-v.events:
			fn()
		case <-tick:
			v.frame()
		}
	}
}

func (v *View) teardown() {
	v.cancel()
	if v.ticker != nil {
		v.ticker.Stop()
		v.ticker = nil
	}
	if v.fadeTimer != nil {
		v.fadeTimer.Stop()
		v.fadeTimer = nil
	}
	for ch := range v.subs {
		close(ch)
	}
	v.subs = nil
	v.logger.Debug("View closed", "view", v.id)
}

// apply installs a load result and leaves the Loading state.
func (v *View) apply(ctx context.Context, res dataset.Result) {
	if v.state != StateLoading {
		return
	}
	v.data = res.Dataset
	v.loadErr = res.Err
	v.sim = force.New(res.Dataset, v.opts.Force)
	v.runStart = time.Now()
	if res.Failed() {
		v.state = StateRenderedWithError
	} else {
		v.state = StateRendered
	}
	close(v.loaded)

	observability.View().OnStateChange(ctx, v.id, string(v.state))
	v.logger.Debug("View ready", "view", v.id, "state", v.state, "nodes", res.Dataset.NodeCount(), "edges", res.Dataset.EdgeCount())

	if !v.opts.Manual {
		v.ticker = time.NewTicker(v.opts.FrameInterval)
	}
	v.publish()
}

// frame advances one animation frame: a simulation step while the layout
// is running, plus tooltip fade progress.
func (v *View) frame() {
	if v.sim == nil {
		return
	}
	now := v.opts.Now()
	changed := v.ui.Tooltip.Fading(now)
	if !v.sim.Settled() {
		v.sim.Step()
		changed = true
		if v.sim.Settled() {
			observability.View().OnSettle(context.Background(), v.id, v.sim.Ticks(), time.Since(v.runStart))
			v.logger.Debug("Layout settled", "view", v.id, "ticks", v.sim.Ticks())
		}
	}
	if changed {
		v.publish()
	}
}

// publish rebuilds the current scene and hands it to subscribers.
func (v *View) publish() {
	now := v.opts.Now()
	ui := v.ui
	ui.Tooltip.Opacity = ui.Tooltip.OpacityAt(now)

	snap := v.sim.Snapshot()
	s := Scene{
		ViewID:      v.id,
		State:       v.state,
		Width:       v.opts.Force.Width,
		Height:      v.opts.Force.Height,
		Nodes:       v.data.Nodes,
		Edges:       v.data.Edges,
		Positions:   snap.Positions,
		Tick:        snap.Tick,
		Alpha:       snap.Alpha,
		Settled:     v.sim.Settled(),
		Interaction: ui,
	}
	if v.loadErr != nil {
		s.LoadError = neterrors.UserMessage(v.loadErr)
	}
	v.scene = s.indexed()
	for ch := range v.subs {
		deliver(ch, v.scene)
	}
}

// deliver sends s, replacing an unread frame rather than blocking.
func deliver(ch chan Scene, s Scene) {
	select {
	case ch <- s:
		return
	default:
	}
	select {
	case <-ch:
	default:
	}
	select {
	case ch <- s:
	default:
	}
}

// Pointer applies a pointer event. Events are processed in order on the
// loop, so a drag start is in effect before the next frame.
func (v *View) Pointer(ev PointerEvent) error {
	var err error
	if !v.do(func() { err = v.pointer(ev) }) {
		return neterrors.New(neterrors.ErrCodeNotFound, "view %s closed", v.id)
	}
	return err
}

func (v *View) pointer(ev PointerEvent) error {
	if v.sim == nil {
		return neterrors.New(neterrors.ErrCodeInvalidInput, "view %s is still loading", v.id)
	}
	at := force.Point{X: ev.X, Y: ev.Y}
	g := v.ui.Zoom.Invert(at)

	switch ev.Type {
	case PointerDown:
		// A down without an up (button released outside the window) ends
		// the previous press first.
		v.release(false)
		id := v.sim.Hit(g)
		v.press = &press{node: id, last: at}
		if id != "" {
			if err := v.sim.DragStart(id); err != nil {
				return err
			}
			v.ui.Drag = id
		}
	case PointerMove:
		if v.press == nil {
			v.hover(v.sim.Hit(g), at)
			break
		}
		if at != v.press.last {
			v.press.moved = true
		}
		if v.press.node != "" {
			if err := v.sim.DragMove(v.press.node, g); err != nil {
				return err
			}
		} else {
			v.ui.Zoom = v.ui.Zoom.Pan(at.X-v.press.last.X, at.Y-v.press.last.Y)
		}
		v.press.last = at
	case PointerUp:
		v.release(true)
	case PointerWheel:
		v.ui.Zoom = v.ui.Zoom.Wheel(ev.DeltaY, at)
	case PointerLeave:
		v.release(false)
		v.hover("", at)
	default:
		return neterrors.New(neterrors.ErrCodeInvalidInput, "unknown pointer event %q", ev.Type)
	}
	v.publish()
	return nil
}

// release ends the active press. A press that did not move counts as a
// click when click is set.
func (v *View) release(click bool) {
	p := v.press
	v.press = nil
	if p == nil || p.node == "" {
		return
	}
	_ = v.sim.DragEnd(p.node)
	v.ui.Drag = ""
	if click && !p.moved {
		v.click(p.node)
	}
}

// hover moves the hover to id, fading the tooltip in or out.
func (v *View) hover(id string, at force.Point) {
	if id == v.ui.Hover {
		return
	}
	now := v.opts.Now()
	v.ui.Hover = id
	if id == "" {
		v.ui.Tooltip = v.ui.Tooltip.FadeTo(0, now, v.opts.FadeOut)
		v.armFade(v.opts.FadeOut)
		return
	}
	v.ui.Hovered = true
	n, _ := v.data.Node(id)
	tip := v.ui.Tooltip
	tip.NodeID = id
	tip.Text = TextFor(n)
	tip.At = force.Point{X: at.X + TooltipDX, Y: at.Y + TooltipDY}
	v.ui.Tooltip = tip.FadeTo(TooltipOpacity, now, v.opts.FadeIn)
	v.armFade(v.opts.FadeIn)
}

// armFade replaces the pending fade timer. When it fires the fade is
// finished on the loop and a fully hidden tooltip is cleared.
func (v *View) armFade(d time.Duration) {
	if v.fadeTimer != nil {
		v.fadeTimer.Stop()
	}
	target := v.ui.Tooltip
	v.fadeTimer = time.AfterFunc(d, func() {
		v.post(func() {
			if v.ui.Tooltip.Start != target.Start || v.sim == nil {
				return
			}
			v.fadeTimer = nil
			v.ui.Tooltip.Duration = 0
			if v.ui.Tooltip.To == 0 {
				v.ui.Tooltip = Tooltip{}
			}
			v.publish()
		})
	})
}

func (v *View) click(id string) {
	n, _ := v.data.Node(id)
	v.logger.Info(fmt.Sprintf("Clicked on: %s Role: %s Department: %s", n.Name, n.Role, n.Department))
	observability.View().OnClick(context.Background(), v.id, id)
}
