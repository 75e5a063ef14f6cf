package interviewhub_test

import (
	"time"

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

// MockClient is a test double for the interviewhub.Client interface. Events
// the coordinator sends land on RecvChannel.
type MockClient struct {
	connID      string
	userID      string
	username    string
	roomID      string
	closed      bool
	RecvChannel chan models.Event
}

func newMockClient(connID, username string) *MockClient {
	return &MockClient{
		connID:      connID,
		userID:      "user-" + connID,
		username:    username,
		RecvChannel: make(chan models.Event, 10), // Buffered to prevent blocking in tests
	}
}

// newStalledMockClient has an unbuffered receive channel that nothing reads,
// so any send to it fails immediately. Models a consumer that stopped
// draining its connection.
func newStalledMockClient(connID, username string) *MockClient {
	return &MockClient{
		connID:      connID,
		userID:      "user-" + connID,
		username:    username,
		RecvChannel: make(chan models.Event),
	}
}

func (c *MockClient) GetConnID() string   { return c.connID }
func (c *MockClient) GetUserID() string   { return c.userID }
func (c *MockClient) GetUsername() string { return c.username }
func (c *MockClient) GetRoomID() string   { return c.roomID }

func (c *MockClient) SetRoomID(roomID string) { c.roomID = roomID }

func (c *MockClient) GetSendChannel() chan<- models.Event { return c.RecvChannel }

func (c *MockClient) Run() {
	// Not needed for testing
}

func (c *MockClient) Close() {
	c.closed = true
}

// DrainEvents empties the receive channel and returns everything it held.
func (c *MockClient) DrainEvents() []models.Event {
	var events []models.Event
	for {
		select {
		case ev := <-c.RecvChannel:
			events = append(events, ev)
		default:
			return events
		}
	}
}
