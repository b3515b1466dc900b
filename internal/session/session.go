// Package session drives one debate session through request,
// cancellation, and the paced reveal of results.
package session

import (
	"context"
	"log/slog"
	"math"
	"strings"
	"sync"
	"time"

	"github.com/cogitolab/cogito/internal/core"
)

// Panel identifies one of the result panels a sink renders into.
type Panel string

const (
	PanelThesis     Panel = "thesis"
	PanelAntithesis Panel = "antithesis"
	PanelRisks      Panel = "risks"
	PanelSynthesis  Panel = "synthesis"
)

// TriggerRole is the current role of the start/cancel control.
type TriggerRole string

const (
	TriggerStart  TriggerRole = "start"
	TriggerCancel TriggerRole = "cancel"
)

// Sink receives presentation updates from the controller. Calls arrive
// from at most one goroutine at a time.
type Sink interface {
	SetBusy(busy bool)
	SetTriggerRole(role TriggerRole)
	ShowThinking(panel Panel)
	ShowArgument(panel Panel, arg core.Argument)
	ShowRisks(risks []core.Risk)
	ShowSynthesis(s core.Synthesis)
	ShowConfidence(value int)
	ShowValidationError(msg string)
	ShowConnectionError(msg string)
}

// Transport is the capability the controller needs from the service
// client: a debate call abortable through its context, and the
// best-effort out-of-band cancel notification.
type Transport interface {
	Debate(ctx context.Context, topic string) (*core.DebateResult, error)
	NotifyCancel(ctx context.Context)
}

// Pacing holds the fixed delays of the reveal sequence and the
// confidence animation. The values are presentation constants, not
// user configuration; tests compress them.
type Pacing struct {
	Thesis          time.Duration
	Antithesis      time.Duration
	Risks           time.Duration
	Synthesis       time.Duration
	Confidence      time.Duration
	ConfidenceTick  time.Duration
	ConfidenceSteps int
}

// DefaultPacing returns the reveal pacing used in production.
func DefaultPacing() Pacing {
	return Pacing{
		Thesis:          500 * time.Millisecond,
		Antithesis:      800 * time.Millisecond,
		Risks:           500 * time.Millisecond,
		Synthesis:       800 * time.Millisecond,
		Confidence:      500 * time.Millisecond,
		ConfidenceTick:  20 * time.Millisecond,
		ConfidenceSteps: 50,
	}
}

// revealStep is one entry of the ordered reveal sequence.
type revealStep struct {
	delay time.Duration
	apply func()
}

// Controller owns the lifecycle of one debate session. Exactly one
// session may be in flight at a time; Start while a session is awaiting
// its result or revealing is ignored, so timers from two sessions never
// run concurrently. Each session still gets a fresh epoch, and reveal
// timers re-check it before touching the sink; today the Start guard
// alone already rules a stale epoch out, and the checks keep that true
// if the guard is ever loosened to let a new session supersede a
// running reveal.
type Controller struct {
	transport Transport
	sink      Sink
	pacing    Pacing

	mu        sync.Mutex
	phase     core.Phase
	epoch     uint64
	abort     context.CancelFunc
	cancelled bool
	result    *core.DebateResult
	done      chan struct{}
}

// New creates a controller bound to a transport and a presentation sink.
func New(transport Transport, sink Sink, pacing Pacing) *Controller {
	if pacing.ConfidenceSteps <= 0 {
		pacing.ConfidenceSteps = DefaultPacing().ConfidenceSteps
	}
	done := make(chan struct{})
	close(done)
	return &Controller{
		transport: transport,
		sink:      sink,
		pacing:    pacing,
		phase:     core.PhaseIdle,
		done:      done,
	}
}

// Start begins a new debate session for topic. An empty topic (after
// trimming) signals a validation error to the sink and issues no
// request. While a session is awaiting its result or revealing, Start
// is a no-op.
func (c *Controller) Start(topic string) {
	trimmed := strings.TrimSpace(topic)
	if trimmed == "" {
		c.sink.ShowValidationError("Enter a decision topic first.")
		return
	}

	c.mu.Lock()
	if c.phase == core.PhaseAwaitingResult || c.phase == core.PhaseRevealing {
		c.mu.Unlock()
		slog.Warn("Session already in flight, ignoring start", "topic", trimmed)
		return
	}
	c.epoch++
	epoch := c.epoch
	ctx, abort := context.WithCancel(context.Background())
	c.abort = abort
	c.cancelled = false
	c.result = nil
	c.phase = core.PhaseAwaitingResult
	done := make(chan struct{})
	c.done = done
	c.mu.Unlock()

	slog.Debug("Starting debate session", "topic", trimmed, "epoch", epoch)
	c.sink.SetBusy(true)
	c.sink.SetTriggerRole(TriggerCancel)
	for _, p := range []Panel{PanelThesis, PanelAntithesis, PanelRisks, PanelSynthesis} {
		c.sink.ShowThinking(p)
	}

	go c.await(ctx, epoch, trimmed, done)
}

// Cancel aborts the in-flight request. It is only meaningful while the
// session awaits its result; once the reveal has begun, and in any
// terminal phase, it is a no-op.
func (c *Controller) Cancel() {
	c.mu.Lock()
	if c.phase != core.PhaseAwaitingResult {
		c.mu.Unlock()
		return
	}
	c.cancelled = true
	c.phase = core.PhaseCancelled
	c.result = nil
	abort := c.abort
	c.abort = nil
	done := c.done
	c.mu.Unlock()

	if abort != nil {
		abort()
	}

	// Best-effort notification; its latency must never delay the reset.
	go func() {
		ctx, release := context.WithTimeout(context.Background(), 5*time.Second)
		defer release()
		c.transport.NotifyCancel(ctx)
	}()

	slog.Debug("Session cancelled by user")
	c.resetControls()
	close(done)
}

// Phase returns the session's current phase.
func (c *Controller) Phase() core.Phase {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.phase
}

// Result returns the stored decision matrix, or nil when no session has
// completed successfully.
func (c *Controller) Result() *core.DebateResult {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.result
}

// Done returns a channel closed when the current session reaches a
// terminal phase. Before any Start it is already closed.
func (c *Controller) Done() <-chan struct{} {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.done
}

// await blocks on the debate request and dispatches its outcome.
func (c *Controller) await(ctx context.Context, epoch uint64, topic string, done chan struct{}) {
	result, err := c.transport.Debate(ctx, topic)

	c.mu.Lock()
	if epoch != c.epoch || c.cancelled {
		// Cancel already won; a late response never resurrects the session.
		c.mu.Unlock()
		return
	}
	if err != nil {
		c.phase = core.PhaseFailed
		c.abort = nil
		c.mu.Unlock()
		slog.Error("Debate request failed", "topic", topic, "error", err)
		c.sink.ShowConnectionError("Could not reach the analysis service. Is it running?")
		c.resetControls()
		close(done)
		return
	}
	c.result = result
	c.phase = core.PhaseRevealing
	c.abort = nil
	c.mu.Unlock()

	c.reveal(epoch, core.Normalize(result), done)
}

// reveal walks the fixed, ordered reveal sequence. It is not
// cancellable once entered; each step still re-checks the epoch so a
// superseded session's timers go quiet.
func (c *Controller) reveal(epoch uint64, rep core.Report, done chan struct{}) {
	steps := []revealStep{
		{c.pacing.Thesis, func() { c.sink.ShowArgument(PanelThesis, rep.Thesis) }},
		{c.pacing.Antithesis, func() { c.sink.ShowArgument(PanelAntithesis, rep.Antithesis) }},
		{c.pacing.Risks, func() { c.sink.ShowRisks(rep.Risks) }},
		{c.pacing.Synthesis, func() { c.sink.ShowSynthesis(rep.Synthesis) }},
		{c.pacing.Confidence, func() { c.animateConfidence(epoch, rep.Synthesis.Confidence) }},
	}

	for _, step := range steps {
		time.Sleep(step.delay)
		if !c.current(epoch) {
			return
		}
		step.apply()
	}

	c.mu.Lock()
	if epoch == c.epoch && c.phase == core.PhaseRevealing {
		c.phase = core.PhaseCompleted
	}
	c.mu.Unlock()

	slog.Debug("Session completed", "epoch", epoch)
	c.resetControls()
	close(done)
}

// animateConfidence advances the confidence indicator from zero to
// target in fixed ticks, rounding only for display. The final tick
// snaps exactly to the target so rounding never drifts.
func (c *Controller) animateConfidence(epoch uint64, target int) {
	steps := c.pacing.ConfidenceSteps
	inc := float64(target) / float64(steps)
	value := 0.0

	for i := 1; i <= steps; i++ {
		time.Sleep(c.pacing.ConfidenceTick)
		if !c.current(epoch) {
			return
		}
		if i == steps {
			c.sink.ShowConfidence(target)
			return
		}
		value += inc
		c.sink.ShowConfidence(int(math.Round(value)))
	}
}

// resetControls returns the trigger to its start role and re-enables
// input. Idempotent; runs on every terminal phase.
func (c *Controller) resetControls() {
	c.sink.SetBusy(false)
	c.sink.SetTriggerRole(TriggerStart)
}

func (c *Controller) current(epoch uint64) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return epoch == c.epoch
}
