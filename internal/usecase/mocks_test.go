package usecase_test

import (
	"context"
	"sync"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/xavierca1/lead-intake/internal/entity"
	"github.com/xavierca1/lead-intake/internal/usecase"
)

type MockPrompter struct {
	mock.Mock
}

func (m *MockPrompter) Ask(ctx context.Context, leadID int, question, defaultAnswer string) (string, error) {
	args := m.Called(ctx, leadID, question, defaultAnswer)
	return args.String(0), args.Error(1)
}

func (m *MockPrompter) Choose(ctx context.Context, leadID int, question string, choices []string) (string, error) {
	args := m.Called(ctx, leadID, question, choices)
	return args.String(0), args.Error(1)
}

type MockLeadRecordRepository struct {
	mock.Mock
}

func (m *MockLeadRecordRepository) Save(ctx context.Context, record *entity.LeadRecord) error {
	args := m.Called(ctx, record)
	return args.Error(0)
}

type MockFollowUpStore struct {
	mock.Mock
}

func (m *MockFollowUpStore) MarkSent(ctx context.Context, leadID int, at time.Time) (bool, error) {
	args := m.Called(ctx, leadID, at)
	return args.Bool(0), args.Error(1)
}

type MockEmailService struct {
	mock.Mock
}

func (m *MockEmailService) SendFollowUp(to, name, body string) error {
	args := m.Called(to, name, body)
	return args.Error(0)
}

// recordingMessenger keeps every message so tests can assert on the script.
type recordingMessenger struct {
	mu   sync.Mutex
	sent []usecase.Message
}

func (r *recordingMessenger) Send(_ int, msg usecase.Message) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sent = append(r.sent, msg)
}

func (r *recordingMessenger) titles() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, 0, len(r.sent))
	for _, m := range r.sent {
		out = append(out, m.Title)
	}
	return out
}
