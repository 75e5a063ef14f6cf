package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"time"

	"prepgogo/backend/internal/models"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// Storage is the persistence surface the rest of the backend depends on.
// PostgreSQL holds users, questions, and performance records; Redis carries
// the realtime event fan-out, the active-room set, and rate-limit counters.
type Storage interface {
	SaveUserIfNotExists(id, name string) (*models.User, error)

	SaveQuestion(q *models.Question) error
	GetRandomQuestion() (*models.Question, error)
	GetQuestionByID(id string) (*models.Question, error)
	GetQuestionsByTopic(topic, difficulty string, page, limit int) ([]models.Question, int64, error)

	SavePerformance(rec *models.PerformanceRecord) error
	GetPerformanceForUser(userID string) ([]models.PerformanceRecord, error)

	PublishEvent(roomID string, ev models.Event) error
	AddActiveRoom(roomID string) error
	RemoveActiveRoom(roomID string) error
	GetActiveRoomIDs() ([]string, error)

	AllowRequest(key string, limit int, window time.Duration) (bool, error)
}

// eventChannelPrefix namespaces the Redis pub/sub channels used for relaying
// session events between backend instances.
const eventChannelPrefix = "interview:"

type Service struct {
	DB    *gorm.DB
	Redis *redis.Client
	Ctx   context.Context
}

// NewService Constructor
func NewService(db *gorm.DB, rdb *redis.Client) *Service {
	return &Service{
		DB:    db,
		Redis: rdb,
		Ctx:   context.Background(),
	}
}

// SaveUserIfNotExists inserts the user on first contact and is a no-op for
// returning users.
func (s *Service) SaveUserIfNotExists(id, name string) (*models.User, error) {
	user := models.User{ID: id}
	defaults := models.User{ID: id, Name: name}

	result := s.DB.Where("id = ?", id).Attrs(defaults).FirstOrCreate(&user)
	if result.Error != nil {
		log.Printf("ERROR: Failed to save user %s on first contact: %v", id, result.Error)
		return nil, result.Error
	}

	if result.RowsAffected > 0 {
		log.Printf("INFO: New user %s (%s) saved to database.", id, name)
	}
	return &user, nil
}

// SaveQuestion stores a question in PostgreSQL.
func (s *Service) SaveQuestion(q *models.Question) error {
	return s.DB.Save(q).Error
}

// GetRandomQuestion picks one question uniformly at random.
func (s *Service) GetRandomQuestion() (*models.Question, error) {
	var q models.Question
	err := s.DB.Order("RANDOM()").First(&q).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		log.Printf("ERROR: Failed to get random question: %v", err)
		return nil, err
	}
	return &q, nil
}

func (s *Service) GetQuestionByID(id string) (*models.Question, error) {
	var q models.Question
	err := s.DB.Where("id = ?", id).First(&q).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		log.Printf("ERROR: Failed to get question %s: %v", id, err)
		return nil, err
	}
	return &q, nil
}

// GetQuestionsByTopic returns a page of questions plus the total match count.
// difficulty is an optional filter; page is 1-based.
func (s *Service) GetQuestionsByTopic(topic, difficulty string, page, limit int) ([]models.Question, int64, error) {
	if page < 1 {
		page = 1
	}
	if limit <= 0 {
		limit = 10
	}

	query := s.DB.Model(&models.Question{}).Where("topic = ?", topic)
	if difficulty != "" {
		query = query.Where("difficulty = ?", difficulty)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var questions []models.Question
	err := query.Order("created_at desc").
		Limit(limit).
		Offset((page - 1) * limit).
		Find(&questions).Error
	if err != nil {
		log.Printf("ERROR: Failed to list questions for topic %s: %v", topic, err)
		return nil, 0, err
	}
	return questions, total, nil
}

// SavePerformance stores one practice attempt.
func (s *Service) SavePerformance(rec *models.PerformanceRecord) error {
	if err := s.DB.Create(rec).Error; err != nil {
		log.Printf("ERROR: Failed to save performance record for user %s: %v", rec.UserID, err)
		return err
	}
	return nil
}

func (s *Service) GetPerformanceForUser(userID string) ([]models.PerformanceRecord, error) {
	var records []models.PerformanceRecord
	err := s.DB.Where("user_id = ?", userID).Order("created_at desc").Find(&records).Error
	if err != nil {
		log.Printf("ERROR: Failed to get performance records for user %s: %v", userID, err)
		return nil, err
	}
	return records, nil
}

// PublishEvent pushes a session event onto the room's Redis channel so every
// backend instance can relay it to its local connections.
func (s *Service) PublishEvent(roomID string, ev models.Event) error {
	payload, err := json.Marshal(ev)
	if err != nil {
		return err
	}
	return s.Redis.Publish(s.Ctx, eventChannelPrefix+roomID, payload).Err()
}

// SubscribeEvents subscribes to the event channels of every room.
func (s *Service) SubscribeEvents() *redis.PubSub {
	return s.Redis.PSubscribe(s.Ctx, eventChannelPrefix+"*")
}

func (s *Service) AddActiveRoom(roomID string) error {
	return s.Redis.SAdd(s.Ctx, "active_rooms", roomID).Err()
}

func (s *Service) RemoveActiveRoom(roomID string) error {
	return s.Redis.SRem(s.Ctx, "active_rooms", roomID).Err()
}

// GetActiveRoomIDs returns the set of rooms known to have live members.
func (s *Service) GetActiveRoomIDs() ([]string, error) {
	return s.Redis.SMembers(s.Ctx, "active_rooms").Result()
}

// AllowRequest implements a fixed-window counter per key. The first request in
// a window creates the counter with the window as its TTL.
func (s *Service) AllowRequest(key string, limit int, window time.Duration) (bool, error) {
	redisKey := fmt.Sprintf("ratelimit:%s", key)

	count, err := s.Redis.Incr(s.Ctx, redisKey).Result()
	if err != nil {
		return false, err
	}
	if count == 1 {
		if err := s.Redis.Expire(s.Ctx, redisKey, window).Err(); err != nil {
			return false, err
		}
	}
	return count <= int64(limit), nil
}
