package handler_test

import (
	"context"
	"time"

	"prepgogo/backend/internal/ai"
	"prepgogo/backend/internal/models"

	"github.com/stretchr/testify/mock"
)

// MockStorage is a testify mock of the storage.Storage interface.
type MockStorage struct {
	mock.Mock
}

func (m *MockStorage) SaveUserIfNotExists(id, name string) (*models.User, error) {
	args := m.Called(id, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockStorage) SaveQuestion(q *models.Question) error {
	args := m.Called(q)
	return args.Error(0)
}

func (m *MockStorage) GetRandomQuestion() (*models.Question, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Question), args.Error(1)
}

func (m *MockStorage) GetQuestionByID(id string) (*models.Question, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Question), args.Error(1)
}

func (m *MockStorage) GetQuestionsByTopic(topic, difficulty string, page, limit int) ([]models.Question, int64, error) {
	args := m.Called(topic, difficulty, page, limit)
	if args.Get(0) == nil {
		return nil, args.Get(1).(int64), args.Error(2)
	}
	return args.Get(0).([]models.Question), args.Get(1).(int64), args.Error(2)
}

func (m *MockStorage) SavePerformance(rec *models.PerformanceRecord) error {
	args := m.Called(rec)
	return args.Error(0)
}

func (m *MockStorage) GetPerformanceForUser(userID string) ([]models.PerformanceRecord, error) {
	args := m.Called(userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.PerformanceRecord), args.Error(1)
}

func (m *MockStorage) PublishEvent(roomID string, ev models.Event) error {
	args := m.Called(roomID, ev)
	return args.Error(0)
}

func (m *MockStorage) AddActiveRoom(roomID string) error {
	args := m.Called(roomID)
	return args.Error(0)
}

func (m *MockStorage) RemoveActiveRoom(roomID string) error {
	args := m.Called(roomID)
	return args.Error(0)
}

func (m *MockStorage) GetActiveRoomIDs() ([]string, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func (m *MockStorage) AllowRequest(key string, limit int, window time.Duration) (bool, error) {
	args := m.Called(key, limit, window)
	return args.Bool(0), args.Error(1)
}

// fakeGenerator is a canned ai.Generator for handler tests.
type fakeGenerator struct {
	question *ai.GeneratedQuestion
	hint     string
	solution string
	err      error
}

func (f *fakeGenerator) GenerateQuestion(ctx context.Context, topic, difficulty string) (*ai.GeneratedQuestion, error) {
	return f.question, f.err
}

func (f *fakeGenerator) GenerateHint(ctx context.Context, description, currentCode string) (string, error) {
	return f.hint, f.err
}

func (f *fakeGenerator) GenerateSolution(ctx context.Context, description string) (string, error) {
	return f.solution, f.err
}
