package mocks

// MockPasswordService implements domain.PasswordService interface for testing
type MockPasswordService struct {
	HashFunc          func(password string) (string, error)
	VerifyFunc        func(password, hash string) (bool, error)
	CheckStrengthFunc func(password string) error
}

// NewMockPasswordService creates a new MockPasswordService with default behaviors
func NewMockPasswordService() *MockPasswordService {
	return &MockPasswordService{}
}

// Hash hashes a password
func (m *MockPasswordService) Hash(password string) (string, error) {
	if m.HashFunc != nil {
		return m.HashFunc(password)
	}
	// Default behavior: predictable fake hash
	return "hashed_" + password, nil
}

// Verify compares a password against a stored hash
func (m *MockPasswordService) Verify(password, hash string) (bool, error) {
	if m.VerifyFunc != nil {
		return m.VerifyFunc(password, hash)
	}
	// Default behavior: matches the fake Hash output
	return hash == "hashed_"+password, nil
}

// CheckStrength validates password strength
func (m *MockPasswordService) CheckStrength(password string) error {
	if m.CheckStrengthFunc != nil {
		return m.CheckStrengthFunc(password)
	}
	// Default behavior: accept everything
	return nil
}
