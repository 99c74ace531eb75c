package mocks

import (
	"context"
	"sync"

	"github.com/yunanyuansyah/listPembelian/domain"
)

// MockAuditLogger implements domain.AuditLogger interface for testing,
// recording every event it receives.
type MockAuditLogger struct {
	mu     sync.Mutex
	Events []*domain.AuditEvent
}

// NewMockAuditLogger creates a new MockAuditLogger
func NewMockAuditLogger() *MockAuditLogger {
	return &MockAuditLogger{}
}

// LogEvent records the event
func (m *MockAuditLogger) LogEvent(_ context.Context, event *domain.AuditEvent) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Events = append(m.Events, event)
}

// EventsOfType returns recorded events matching the given type
func (m *MockAuditLogger) EventsOfType(t domain.AuditEventType) []*domain.AuditEvent {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []*domain.AuditEvent
	for _, e := range m.Events {
		if e.EventType == t {
			out = append(out, e)
		}
	}
	return out
}
