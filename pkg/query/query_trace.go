package query

import (
	"sync"
	"time"

	"github.com/OFFIS-RIT/peoplegraph/pkg/common"
)

type TraceEventKind string

const (
	TraceEventTranslated   TraceEventKind = "translated"
	TraceEventStandardized TraceEventKind = "standardized"
	TraceEventEvaluated    TraceEventKind = "evaluated"
	TraceEventRejected     TraceEventKind = "rejected"
)

// TraceEvent is an extensible event envelope for query tracing.
// Additive changes to this struct are backward compatible for implementers.
type TraceEvent struct {
	Kind TraceEventKind

	RawConditions []common.RawCondition
	Conditions    []common.Condition
	MatchIDs      []string

	Duration time.Duration
	Error    string
}

// Tracer is a sink for query tracing events.
//
// Implementers can forward events to logs or collect them for display.
type Tracer interface {
	Record(event TraceEvent)
}

// MultiTracer fan-outs trace events to multiple tracers.
type MultiTracer []Tracer

func (m MultiTracer) Record(event TraceEvent) {
	for _, t := range m {
		if t == nil {
			continue
		}
		t.Record(event)
	}
}

func record(t Tracer, event TraceEvent) {
	if t == nil {
		return
	}
	t.Record(event)
}

// QueryTrace collects what happened to one question on its way through the
// pipeline: the model's raw conditions, their standardized form and the
// matching people.
//
// QueryTrace is safe for concurrent use.
type QueryTrace struct {
	mu sync.Mutex

	raw        []common.RawCondition
	conditions []common.Condition
	matchIDs   []string
	durations  map[TraceEventKind]time.Duration
	rejection  string
}

// QueryTraceSnapshot is a copy of the collected trace, ready to be encoded.
type QueryTraceSnapshot struct {
	RawConditions []common.RawCondition    `json:"raw_conditions,omitempty"`
	Conditions    []common.Condition       `json:"conditions,omitempty"`
	MatchIDs      []string                 `json:"match_ids,omitempty"`
	DurationsMs   map[TraceEventKind]int64 `json:"durations_ms,omitempty"`
	Rejection     string                   `json:"rejection,omitempty"`
}

func NewQueryTrace() *QueryTrace {
	return &QueryTrace{
		durations: make(map[TraceEventKind]time.Duration),
	}
}

func (t *QueryTrace) Record(event TraceEvent) {
	if t == nil {
		return
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	switch event.Kind {
	case TraceEventTranslated:
		t.raw = append([]common.RawCondition(nil), event.RawConditions...)
	case TraceEventStandardized:
		t.conditions = append([]common.Condition(nil), event.Conditions...)
	case TraceEventEvaluated:
		t.matchIDs = append([]string(nil), event.MatchIDs...)
	case TraceEventRejected:
		t.rejection = event.Error
	default:
		return
	}
	if event.Duration > 0 {
		t.durations[event.Kind] += event.Duration
	}
}

func (t *QueryTrace) Snapshot() QueryTraceSnapshot {
	if t == nil {
		return QueryTraceSnapshot{}
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	s := QueryTraceSnapshot{
		RawConditions: append([]common.RawCondition(nil), t.raw...),
		Conditions:    append([]common.Condition(nil), t.conditions...),
		MatchIDs:      append([]string(nil), t.matchIDs...),
		Rejection:     t.rejection,
	}
	if len(t.durations) > 0 {
		s.DurationsMs = make(map[TraceEventKind]int64, len(t.durations))
		for k, d := range t.durations {
			s.DurationsMs[k] = d.Milliseconds()
		}
	}

	return s
}
