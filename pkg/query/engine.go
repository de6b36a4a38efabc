// Package query answers questions about people. It guards the question
// text, lets a language model translate it into conditions, validates and
// standardizes those conditions against the name normalizer and evaluates
// them on the relationship graph.
package query

import (
	"context"
	"time"

	"github.com/OFFIS-RIT/peoplegraph/pkg/common"
	"github.com/OFFIS-RIT/peoplegraph/pkg/errors"
	"github.com/OFFIS-RIT/peoplegraph/pkg/graph"
	"github.com/OFFIS-RIT/peoplegraph/pkg/logger"
	"github.com/OFFIS-RIT/peoplegraph/pkg/normalize"

	gonanoid "github.com/matoous/go-nanoid/v2"
)

// Engine runs queries against an immutable graph. It holds no per-query
// state and may be shared by concurrent callers.
type Engine struct {
	graph      *graph.Graph
	normalizer *normalize.Normalizer
	translator *Translator
	tracer     Tracer
}

// NewEngineParams contains the collaborators of an Engine. Translator may be
// nil, in which case only Run is usable. Tracer receives the events of
// every query.
type NewEngineParams struct {
	Graph      *graph.Graph
	Normalizer *normalize.Normalizer
	Translator *Translator
	Tracer     Tracer
}

// NewEngine creates a new Engine.
func NewEngine(params NewEngineParams) *Engine {
	return &Engine{
		graph:      params.Graph,
		normalizer: params.Normalizer,
		translator: params.Translator,
		tracer:     params.Tracer,
	}
}

// Graph returns the graph queries are evaluated on.
func (e *Engine) Graph() *graph.Graph {
	return e.graph
}

// Normalizer returns the normalizer objects are standardized with.
func (e *Engine) Normalizer() *normalize.Normalizer {
	return e.normalizer
}

// Ask answers a natural language question. The text is checked before the
// language model is called, so disallowed and aggregate questions never
// leave the process. tracers receive this query's events in addition to the
// engine's tracer.
func (e *Engine) Ask(ctx context.Context, text string, tracers ...Tracer) (common.QueryResult, error) {
	id, _ := gonanoid.New()
	log := logger.With("query_id", id)
	tracer := e.tracerFor(tracers)

	if err := CheckText(text); err != nil {
		log.Info("Question rejected", "kind", errors.Kind(err))
		record(tracer, TraceEvent{Kind: TraceEventRejected, Error: err.Error()})
		return common.QueryResult{}, err
	}

	start := time.Now()
	raw, err := e.translator.Translate(ctx, text)
	if err != nil {
		log.Warn("Translation failed", "kind", errors.Kind(err), "error", err)
		record(tracer, TraceEvent{Kind: TraceEventRejected, Error: err.Error(), Duration: time.Since(start)})
		return common.QueryResult{}, err
	}
	record(tracer, TraceEvent{Kind: TraceEventTranslated, RawConditions: raw, Duration: time.Since(start)})

	return e.run(log, id, text, raw, tracer)
}

// Run evaluates conditions supplied directly, skipping the language model.
func (e *Engine) Run(raw []common.RawCondition, tracers ...Tracer) (common.QueryResult, error) {
	id, _ := gonanoid.New()
	return e.run(logger.With("query_id", id), id, "", raw, e.tracerFor(tracers))
}

func (e *Engine) run(log logger.Scoped, id, text string, raw []common.RawCondition, tracer Tracer) (common.QueryResult, error) {
	start := time.Now()
	conditions, err := ValidateAndStandardize(e.normalizer, raw)
	if err != nil {
		log.Info("Conditions rejected", "kind", errors.Kind(err), "error", err)
		record(tracer, TraceEvent{Kind: TraceEventRejected, Error: err.Error()})
		return common.QueryResult{}, err
	}
	record(tracer, TraceEvent{Kind: TraceEventStandardized, Conditions: conditions, Duration: time.Since(start)})

	start = time.Now()
	res := e.graph.Query(common.Query{
		ID:         id,
		Text:       text,
		Conditions: conditions,
	})

	ids := make([]string, len(res.Matches))
	for i, p := range res.Matches {
		ids[i] = p.ID
	}
	record(tracer, TraceEvent{Kind: TraceEventEvaluated, MatchIDs: ids, Duration: time.Since(start)})
	log.Info("Query evaluated", "conditions", len(conditions), "matches", len(res.Matches))

	return res, nil
}

func (e *Engine) tracerFor(extra []Tracer) Tracer {
	if len(extra) == 0 {
		return e.tracer
	}
	return append(MultiTracer{e.tracer}, extra...)
}
