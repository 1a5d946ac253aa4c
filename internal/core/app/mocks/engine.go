package mocks

import (
	"github.com/friendlymustache/KhanAcademyInterview/internal/core/domain"
	"github.com/friendlymustache/KhanAcademyInterview/internal/core/graph"
	"github.com/stretchr/testify/mock"
)

// MockEngine is a mock implementation of app.Engine.
type MockEngine struct {
	mock.Mock
}

// CreateUser mocks the CreateUser method.
func (m *MockEngine) CreateUser(version int) int {
	args := m.Called(version)

	return args.Int(0)
}

// LookupUser mocks the LookupUser method.
func (m *MockEngine) LookupUser(id int) (*domain.User, bool) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Bool(1)
	}

	return args.Get(0).(*domain.User), args.Bool(1)
}

// RemoveUser mocks the RemoveUser method.
func (m *MockEngine) RemoveUser(id int) error {
	args := m.Called(id)

	return args.Error(0)
}

// AddEdge mocks the AddEdge method.
func (m *MockEngine) AddEdge(coachID, studentID int) error {
	args := m.Called(coachID, studentID)

	return args.Error(0)
}

// RemoveEdge mocks the RemoveEdge method.
func (m *MockEngine) RemoveEdge(coachID, studentID int) error {
	args := m.Called(coachID, studentID)

	return args.Error(0)
}

// Users mocks the Users method.
func (m *MockEngine) Users() []*domain.User {
	args := m.Called()
	if args.Get(0) == nil {
		return nil
	}

	return args.Get(0).([]*domain.User)
}

// Clear mocks the Clear method.
func (m *MockEngine) Clear() {
	m.Called()
}

// Components mocks the Components method.
func (m *MockEngine) Components() []domain.Component {
	args := m.Called()
	if args.Get(0) == nil {
		return nil
	}

	return args.Get(0).([]domain.Component)
}

// TotalInfection mocks the TotalInfection method.
func (m *MockEngine) TotalInfection(rootID, version int) (int, error) {
	args := m.Called(rootID, version)

	return args.Int(0), args.Error(1)
}

// LimitedInfectionSimple mocks the LimitedInfectionSimple method.
func (m *MockEngine) LimitedInfectionSimple(target, version int) (int, error) {
	args := m.Called(target, version)

	return args.Int(0), args.Error(1)
}

// ApproximateInfection mocks the ApproximateInfection method.
func (m *MockEngine) ApproximateInfection(version, target int, opts ...graph.SelectOption) (int, error) {
	// Options are closures, match them with mock.Anything
	args := m.Called(version, target, opts)

	return args.Int(0), args.Error(1)
}

// ExactInfection mocks the ExactInfection method.
func (m *MockEngine) ExactInfection(target, version int) (int, error) {
	args := m.Called(target, version)

	return args.Int(0), args.Error(1)
}
