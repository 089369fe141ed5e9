package services

import (
	"context"
	"path"
	"sync"

	"github.com/stretchr/testify/mock"

	"github.com/zatekoja/Healthsurveyrecommendationdesign/backend/internal/domain/entities"
	"github.com/zatekoja/Healthsurveyrecommendationdesign/backend/internal/domain/providers"
	"github.com/zatekoja/Healthsurveyrecommendationdesign/backend/internal/domain/repositories"
)

type MockAnswerRepo struct {
	mock.Mock
}

func (m *MockAnswerRepo) CreateSubmission(ctx context.Context, submission *entities.Submission) error {
	args := m.Called(ctx, submission)
	return args.Error(0)
}

func (m *MockAnswerRepo) GetLatestSubmission(ctx context.Context, memberID string) (*entities.Submission, error) {
	args := m.Called(ctx, memberID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Submission), args.Error(1)
}

func (m *MockAnswerRepo) ListMembersPendingAnalysis(ctx context.Context, afterMemberID string, limit int) ([]string, error) {
	args := m.Called(ctx, afterMemberID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

type MockQuestionRepo struct {
	mock.Mock
}

func (m *MockQuestionRepo) List(ctx context.Context) ([]*entities.Question, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.Question), args.Error(1)
}

func (m *MockQuestionRepo) GetByIDs(ctx context.Context, ids []string) ([]*entities.Question, error) {
	args := m.Called(ctx, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.Question), args.Error(1)
}

type MockMemberRepo struct {
	mock.Mock
}

func (m *MockMemberRepo) GetByID(ctx context.Context, id string) (*entities.Member, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Member), args.Error(1)
}

type MockProductRepo struct {
	mock.Mock
}

func (m *MockProductRepo) List(ctx context.Context) ([]*entities.Product, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.Product), args.Error(1)
}

func (m *MockProductRepo) GetByID(ctx context.Context, id string) (*entities.Product, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Product), args.Error(1)
}

type MockProductSearchRepo struct {
	mock.Mock
}

func (m *MockProductSearchRepo) Index(ctx context.Context, product *entities.Product) error {
	args := m.Called(ctx, product)
	return args.Error(0)
}

func (m *MockProductSearchRepo) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockProductSearchRepo) Search(ctx context.Context, params repositories.ProductSearchParams) ([]*entities.Product, int, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]*entities.Product), args.Int(1), args.Error(2)
}

type MockHealthRecordRepo struct {
	mock.Mock
}

func (m *MockHealthRecordRepo) Create(ctx context.Context, record *entities.HealthRecord) error {
	args := m.Called(ctx, record)
	return args.Error(0)
}

func (m *MockHealthRecordRepo) GetLatestByMember(ctx context.Context, memberID string) (*entities.HealthRecord, error) {
	args := m.Called(ctx, memberID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.HealthRecord), args.Error(1)
}

func (m *MockHealthRecordRepo) ListByMember(ctx context.Context, memberID string, filter repositories.HealthRecordFilter) ([]*entities.HealthRecord, error) {
	args := m.Called(ctx, memberID, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.HealthRecord), args.Error(1)
}

// MockCacheProvider is an in-memory CacheProvider with glob-prefix deletes
type MockCacheProvider struct {
	mu       sync.RWMutex
	data     map[string][]byte
	patterns []string
}

func NewMockCacheProvider() *MockCacheProvider {
	return &MockCacheProvider{data: make(map[string][]byte)}
}

func (m *MockCacheProvider) Get(ctx context.Context, key string) ([]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if val, ok := m.data[key]; ok {
		return val, nil
	}
	return nil, providers.ErrCacheMiss
}

func (m *MockCacheProvider) Set(ctx context.Context, key string, value []byte, expirationSeconds int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = value
	return nil
}

func (m *MockCacheProvider) Delete(ctx context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.data, key)
	return nil
}

func (m *MockCacheProvider) DeletePattern(ctx context.Context, pattern string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.patterns = append(m.patterns, pattern)
	for key := range m.data {
		if ok, _ := path.Match(pattern, key); ok {
			delete(m.data, key)
		}
	}
	return nil
}

func (m *MockCacheProvider) Exists(ctx context.Context, key string) (bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	_, ok := m.data[key]
	return ok, nil
}

func (m *MockCacheProvider) Patterns() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return append([]string(nil), m.patterns...)
}

// MockEventBus delivers published events to in-process subscribers
type MockEventBus struct {
	mu          sync.Mutex
	subscribers map[string][]chan *entities.HealthRecordEvent
	published   []*entities.HealthRecordEvent
	publishErr  error
}

func NewMockEventBus() *MockEventBus {
	return &MockEventBus{subscribers: make(map[string][]chan *entities.HealthRecordEvent)}
}

func (m *MockEventBus) Publish(ctx context.Context, channel string, event *entities.HealthRecordEvent) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.publishErr != nil {
		return m.publishErr
	}
	m.published = append(m.published, event)
	for _, ch := range m.subscribers[channel] {
		select {
		case ch <- event:
		default:
		}
	}
	return nil
}

func (m *MockEventBus) Subscribe(ctx context.Context, channel string) (<-chan *entities.HealthRecordEvent, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	ch := make(chan *entities.HealthRecordEvent, 10)
	m.subscribers[channel] = append(m.subscribers[channel], ch)
	return ch, nil
}

func (m *MockEventBus) Close() error {
	return nil
}

func (m *MockEventBus) Published() []*entities.HealthRecordEvent {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]*entities.HealthRecordEvent(nil), m.published...)
}
