package lint

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/leapstack-labs/leaplint/pkg/core"
	"github.com/leapstack-labs/leaplint/pkg/lint/internal/ast"
)

// binding is a handler owned by the rule in slot.
type binding struct {
	slot    int
	handler Handler
}

type slot struct {
	ctx     *RuleContext
	crashed bool
}

// dispatcher routes every node of one unit to the handlers subscribed to its
// type. Bindings for a selector are kept in activation order.
type dispatcher struct {
	table     map[Selector][]binding
	slots     []*slot
	collector *Collector
	recorder  Recorder
	logger    *slog.Logger
	filename  string
	timed     bool
}

func newDispatcher(filename string, c *Collector, rec Recorder, logger *slog.Logger, timed bool) *dispatcher {
	return &dispatcher{
		table:     make(map[Selector][]binding),
		collector: c,
		recorder:  rec,
		logger:    logger,
		filename:  filename,
		timed:     timed,
	}
}

// add instantiates the rule for this unit and registers its handlers.
// A rule that fails to instantiate is recorded as crashed and skipped.
func (d *dispatcher) add(ctx *RuleContext) {
	idx := len(d.slots)
	s := &slot{ctx: ctx}
	d.slots = append(d.slots, s)

	handlers, err := d.create(ctx)
	if err != nil {
		d.crash(s, nil, err)
		return
	}
	for sel, h := range handlers {
		if h == nil {
			continue
		}
		d.table[sel] = append(d.table[sel], binding{slot: idx, handler: h})
	}
}

func (d *dispatcher) create(ctx *RuleContext) (handlers Handlers, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic: %v", r)
		}
	}()
	return ctx.activation.Rule.Create(ctx)
}

// run walks the tree once, dispatching on enter and on exit.
func (d *dispatcher) run(root *core.Node) {
	if len(d.table) == 0 {
		return
	}
	ast.Walk(root,
		func(n *core.Node) bool {
			d.dispatch(n, PhaseEnter)
			return true
		},
		func(n *core.Node) {
			d.dispatch(n, PhaseExit)
		},
	)
	for _, s := range d.slots {
		s.ctx.node = nil
	}
}

func (d *dispatcher) dispatch(n *core.Node, phase Phase) {
	for _, b := range d.table[Selector{Type: n.Type, Phase: phase}] {
		s := d.slots[b.slot]
		if s.crashed {
			continue
		}
		s.ctx.node = n
		if err := d.invoke(s, b.handler, n); err != nil {
			d.crash(s, n, err)
		}
	}
}

func (d *dispatcher) invoke(s *slot, h Handler, n *core.Node) (err error) {
	if d.timed {
		start := time.Now()
		defer func() {
			d.recorder.ObserveHandler(s.ctx.ID(), time.Since(start))
		}()
	}
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic: %v", r)
		}
	}()
	return h(n)
}

// crash records a rule failure and switches the rule off for the unit.
func (d *dispatcher) crash(s *slot, n *core.Node, err error) {
	s.crashed = true
	p := Problem{
		Kind:     ProblemCrash,
		RuleID:   s.ctx.ID(),
		Filename: d.filename,
		Err:      err,
	}
	if n != nil {
		p.Pos = n.Pos()
		p.Message = fmt.Sprintf("rule crashed on %s: %v", n.Type, err)
	} else {
		p.Message = fmt.Sprintf("rule could not be created: %v", err)
	}
	d.collector.AddProblem(p)
	d.recorder.ObserveProblem(ProblemCrash)
	d.logger.Warn("rule crashed",
		"rule", p.RuleID,
		"file", d.filename,
		"pos", p.Pos.String(),
		"error", err)
}
