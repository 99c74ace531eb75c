package mocks

import "context"

// MockLoginThrottle implements domain.LoginThrottle interface for testing
type MockLoginThrottle struct {
	AllowFunc         func(ctx context.Context, key string) (bool, error)
	RecordFailureFunc func(ctx context.Context, key string) error
	ResetFunc         func(ctx context.Context, key string) error

	Failures []string
	Resets   []string
}

// NewMockLoginThrottle creates a new MockLoginThrottle with default behaviors
func NewMockLoginThrottle() *MockLoginThrottle {
	return &MockLoginThrottle{}
}

// Allow reports whether another attempt may proceed
func (m *MockLoginThrottle) Allow(ctx context.Context, key string) (bool, error) {
	if m.AllowFunc != nil {
		return m.AllowFunc(ctx, key)
	}
	// Default behavior: always allow
	return true, nil
}

// RecordFailure counts a failed attempt
func (m *MockLoginThrottle) RecordFailure(ctx context.Context, key string) error {
	m.Failures = append(m.Failures, key)
	if m.RecordFailureFunc != nil {
		return m.RecordFailureFunc(ctx, key)
	}
	return nil
}

// Reset clears the counter
func (m *MockLoginThrottle) Reset(ctx context.Context, key string) error {
	m.Resets = append(m.Resets, key)
	if m.ResetFunc != nil {
		return m.ResetFunc(ctx, key)
	}
	return nil
}
