package testutil

import (
	"fmt"
	"sync"

	"github.com/stretchr/testify/mock"
)

// MockUserInteraction is a testify mock of types.UserInteraction.
// Print calls are recorded but need no expectations.
type MockUserInteraction struct {
	mock.Mock

	mu      sync.Mutex
	printed []string
}

// Print records msg
func (m *MockUserInteraction) Print(msg string) { m.record(msg) }

// PrintSuccess records msg
func (m *MockUserInteraction) PrintSuccess(msg string) { m.record(msg) }

// PrintError records msg
func (m *MockUserInteraction) PrintError(msg string) { m.record(msg) }

// GetInput returns the configured answer for prompt
func (m *MockUserInteraction) GetInput(prompt, def string) (string, error) {
	args := m.Called(prompt, def)
	return args.String(0), args.Error(1)
}

// GetSelection returns the configured raw selection for prompt
func (m *MockUserInteraction) GetSelection(prompt string, options []string) (string, error) {
	args := m.Called(prompt, options)
	return args.String(0), args.Error(1)
}

// Printed returns every message printed so far
func (m *MockUserInteraction) Printed() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.printed...)
}

func (m *MockUserInteraction) record(msg string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.printed = append(m.printed, msg)
}

// ScriptedUI answers prompts from a queue and records output by kind.
// An empty queue answers every prompt with the offered default
// (or "1" for selections). Safe for concurrent use.
type ScriptedUI struct {
	mu        sync.Mutex
	responses []string

	Prompts   []string
	Messages  []string
	Successes []string
	Errors    []string
}

// NewScriptedUI returns a ScriptedUI answering with responses in order
func NewScriptedUI(responses ...string) *ScriptedUI {
	return &ScriptedUI{responses: responses}
}

func (s *ScriptedUI) Print(msg string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Messages = append(s.Messages, msg)
}

func (s *ScriptedUI) PrintSuccess(msg string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Successes = append(s.Successes, msg)
}

func (s *ScriptedUI) PrintError(msg string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Errors = append(s.Errors, msg)
}

func (s *ScriptedUI) GetInput(prompt, def string) (string, error) {
	return s.next(prompt, def), nil
}

func (s *ScriptedUI) GetSelection(prompt string, options []string) (string, error) {
	if len(options) == 0 {
		return "", fmt.Errorf("no options for %q", prompt)
	}
	return s.next(prompt, "1"), nil
}

func (s *ScriptedUI) next(prompt, fallback string) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Prompts = append(s.Prompts, prompt)
	if len(s.responses) == 0 {
		return fallback
	}
	r := s.responses[0]
	s.responses = s.responses[1:]
	return r
}
