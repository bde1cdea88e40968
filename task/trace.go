package task

import (
	"sync"

	"github.com/google/uuid"

	"github.com/odvcencio/powerquery-parser/ast"
	"github.com/odvcencio/powerquery-parser/parser"
)

// TraceEvent is one recorded rule entry or exit.
type TraceEvent struct {
	SpanId string
	Kind   ast.NodeKind
	Enter  bool
	Err    error
}

// RecordingTraceManager is a parser.TraceManager that keeps every event in
// memory, in emission order — a trace sink a benchmark harness or test can
// inspect after a parse completes. Each span gets a fresh UUID so nested
// or repeated calls to the same rule are distinguishable in the record.
type RecordingTraceManager struct {
	mu     sync.Mutex
	events []TraceEvent
}

// NewRecordingTraceManager returns an empty recorder.
func NewRecordingTraceManager() *RecordingTraceManager {
	return &RecordingTraceManager{}
}

func (m *RecordingTraceManager) OnEnter(kind ast.NodeKind) string {
	spanId := uuid.NewString()
	m.mu.Lock()
	m.events = append(m.events, TraceEvent{SpanId: spanId, Kind: kind, Enter: true})
	m.mu.Unlock()
	return spanId
}

func (m *RecordingTraceManager) OnExit(spanId string, kind ast.NodeKind, err error) {
	m.mu.Lock()
	m.events = append(m.events, TraceEvent{SpanId: spanId, Kind: kind, Enter: false, Err: err})
	m.mu.Unlock()
}

// Events returns every recorded event in emission order.
func (m *RecordingTraceManager) Events() []TraceEvent {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]TraceEvent, len(m.events))
	copy(out, m.events)
	return out
}

// NoopTraceManager disables tracing entirely (spec §6: "a no-op manager
// disables tracing"). It is the zero value of the type, so a nil
// parser.TraceManager and an explicit NoopTraceManager{} behave the same;
// task.New's callers can use whichever reads better at the call site.
type NoopTraceManager struct{}

func (NoopTraceManager) OnEnter(ast.NodeKind) string        { return "" }
func (NoopTraceManager) OnExit(string, ast.NodeKind, error) {}

var _ parser.TraceManager = (*RecordingTraceManager)(nil)
var _ parser.TraceManager = NoopTraceManager{}

// FlagCancellationToken is the simplest parser.CancellationToken: a
// goroutine-safe boolean flag a caller can set from outside the parse.
type FlagCancellationToken struct {
	mu        sync.Mutex
	cancelled bool
}

func (t *FlagCancellationToken) Cancel() {
	t.mu.Lock()
	t.cancelled = true
	t.mu.Unlock()
}

func (t *FlagCancellationToken) IsCancelled() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.cancelled
}

var _ parser.CancellationToken = (*FlagCancellationToken)(nil)
