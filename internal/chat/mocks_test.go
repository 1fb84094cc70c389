package chat

import (
	"context"
	"errors"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/vitrine-app/vitrine-server/internal/domain"
	"github.com/vitrine-app/vitrine-server/internal/llm"
)

// fakeConversationRepo is an in-memory stand-in for the Mongo repository.
// It honors the append-then-truncate window semantics so store tests can
// exercise read-through behavior against realistic storage.
type fakeConversationRepo struct {
	windows    map[string][]domain.ConversationTurn
	failAppend bool
	failGet    bool
	failDelete bool
	appends    int
}

func newFakeConversationRepo() *fakeConversationRepo {
	return &fakeConversationRepo{windows: make(map[string][]domain.ConversationTurn)}
}

func (f *fakeConversationRepo) AppendTurn(_ context.Context, subjectID string, turn domain.ConversationTurn, maxHistory int) error {
	if f.failAppend {
		return errors.New("storage down")
	}
	f.appends++
	turns := append(f.windows[subjectID], turn)
	if len(turns) > maxHistory {
		turns = turns[len(turns)-maxHistory:]
	}
	f.windows[subjectID] = turns
	return nil
}

func (f *fakeConversationRepo) GetTurns(_ context.Context, subjectID string) ([]domain.ConversationTurn, error) {
	if f.failGet {
		return nil, errors.New("storage down")
	}
	turns := f.windows[subjectID]
	out := make([]domain.ConversationTurn, len(turns))
	copy(out, turns)
	return out, nil
}

func (f *fakeConversationRepo) Delete(_ context.Context, subjectID string) error {
	if f.failDelete {
		return errors.New("storage down")
	}
	delete(f.windows, subjectID)
	return nil
}

// MockCatalogRepository mocks the CatalogRepository interface
type MockCatalogRepository struct {
	mock.Mock
}

func (m *MockCatalogRepository) ListPublished(ctx context.Context) ([]domain.CatalogItem, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.CatalogItem), args.Error(1)
}

// MockPromotionRepository mocks the PromotionRepository interface
type MockPromotionRepository struct {
	mock.Mock
}

func (m *MockPromotionRepository) ListActive(ctx context.Context, now time.Time) ([]domain.Promotion, error) {
	args := m.Called(ctx, now)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Promotion), args.Error(1)
}

// MockProvider mocks the llm.Provider interface
type MockProvider struct {
	mock.Mock
}

func (m *MockProvider) Name() string              { return "mock" }
func (m *MockProvider) AvailableModels() []string { return []string{"mock-1"} }
func (m *MockProvider) DefaultModel() string      { return "mock-1" }
func (m *MockProvider) IsConfigured() bool        { return true }

func (m *MockProvider) Generate(ctx context.Context, messages []llm.Message, cfg llm.SamplingConfig) (*llm.Response, error) {
	args := m.Called(ctx, messages, cfg)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*llm.Response), args.Error(1)
}
