package chat

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/vitrine-app/vitrine-server/internal/domain"
	"github.com/vitrine-app/vitrine-server/internal/llm"
)

type serviceFixture struct {
	service  *Service
	store    *Store
	repo     *fakeConversationRepo
	provider *MockProvider
}

func newServiceFixture(t *testing.T) *serviceFixture {
	t.Helper()

	repo := newFakeConversationRepo()
	store := NewStore(NewHistoryCache(), repo, 5)

	catalog := new(MockCatalogRepository)
	catalog.On("ListPublished", mock.Anything).Return([]domain.CatalogItem{}, nil)
	promotions := new(MockPromotionRepository)
	promotions.On("ListActive", mock.Anything, mock.Anything).Return([]domain.Promotion{}, nil)

	provider := new(MockProvider)
	router := llm.NewRouter("mock")
	router.RegisterProvider(provider)

	assembler := NewAssembler(store, catalog, promotions, "Atelier Mimosa")
	service := NewService(store, assembler, router, llm.SamplingConfig{Temperature: 0.4, MaxOutputTokens: 512})

	return &serviceFixture{service: service, store: store, repo: repo, provider: provider}
}

func TestService_EscalationShortCircuitsGeneration(t *testing.T) {
	f := newServiceFixture(t)

	resp := f.service.HandleMessage(context.Background(), Request{
		SubjectID:   "visitor-1",
		DisplayName: "Chloé",
		Message:     "je veux parler à un humain",
	})

	assert.True(t, resp.NeedsHumanEscalation)
	assert.Equal(t, handoffText, resp.ResponseText)
	f.provider.AssertNumberOfCalls(t, "Generate", 0)

	// Escalated exchanges are not remembered
	turns, _ := f.store.History(context.Background(), "visitor-1")
	assert.Empty(t, turns)
	assert.Zero(t, f.repo.appends)
}

func TestService_ProviderFailureYieldsSafeFallback(t *testing.T) {
	f := newServiceFixture(t)
	f.provider.On("Generate", mock.Anything, mock.Anything, mock.Anything).Return(nil, errors.New("deadline exceeded"))

	resp := f.service.HandleMessage(context.Background(), Request{
		SubjectID:   "visitor-1",
		DisplayName: "Chloé",
		Message:     "Avez-vous des robes ?",
	})

	assert.True(t, resp.NeedsHumanEscalation)
	assert.NotEmpty(t, resp.ResponseText)

	// A failed generation leaves no assistant turn to remember
	turns, _ := f.store.History(context.Background(), "visitor-1")
	assert.Empty(t, turns)
}

func TestService_EmptyProviderResponseIsAFailure(t *testing.T) {
	f := newServiceFixture(t)
	f.provider.On("Generate", mock.Anything, mock.Anything, mock.Anything).Return(&llm.Response{Text: ""}, nil)

	resp := f.service.HandleMessage(context.Background(), Request{
		SubjectID: "visitor-1",
		Message:   "Bonjour",
	})

	assert.True(t, resp.NeedsHumanEscalation)
	assert.Equal(t, fallbackText, resp.ResponseText)
}

func TestService_GenerateRemembersExchangeAndExtractsSuggestions(t *testing.T) {
	f := newServiceFixture(t)
	f.provider.On("Generate", mock.Anything, mock.Anything, mock.Anything).Return(&llm.Response{
		Text: "Je vous conseille /p/robe-lin-bleu et /p/tote-bag-01 !",
	}, nil)

	resp := f.service.HandleMessage(context.Background(), Request{
		SubjectID:   "visitor-1",
		DisplayName: "Chloé",
		Message:     "Une idée de cadeau ?",
		Channel:     "widget",
	})

	assert.False(t, resp.NeedsHumanEscalation)
	assert.Equal(t, []string{"robe-lin-bleu", "tote-bag-01"}, resp.SuggestedProductIDs)

	turns, degraded := f.store.History(context.Background(), "visitor-1")
	assert.False(t, degraded)
	require.Len(t, turns, 2)
	assert.Equal(t, domain.RoleUser, turns[0].Role)
	assert.Equal(t, "Une idée de cadeau ?", turns[0].Content)
	assert.Equal(t, domain.RoleAssistant, turns[1].Role)
	assert.Equal(t, "widget", turns[1].Channel)
}

func TestService_WindowCountsTurnsNotPairs(t *testing.T) {
	f := newServiceFixture(t)
	f.provider.On("Generate", mock.Anything, mock.Anything, mock.Anything).Return(&llm.Response{Text: "Réponse"}, nil)

	ctx := context.Background()
	for i := 0; i < 6; i++ {
		resp := f.service.HandleMessage(ctx, Request{
			SubjectID:   "visitor-1",
			DisplayName: "Chloé",
			Message:     fmt.Sprintf("question %d", i),
		})
		assert.False(t, resp.NeedsHumanEscalation)
	}

	// 12 turns were generated; the window retains the 5 most recent
	turns, degraded := f.store.History(ctx, "visitor-1")
	assert.False(t, degraded)
	require.Len(t, turns, 5)
	assert.Equal(t, domain.RoleAssistant, turns[0].Role)
	assert.Equal(t, "question 4", turns[1].Content)
	assert.Equal(t, domain.RoleAssistant, turns[2].Role)
	assert.Equal(t, "question 5", turns[3].Content)
	assert.Equal(t, domain.RoleAssistant, turns[4].Role)
}

func TestService_EveryResponseCarriesARequestID(t *testing.T) {
	f := newServiceFixture(t)
	f.provider.On("Generate", mock.Anything, mock.Anything, mock.Anything).Return(&llm.Response{Text: "Réponse"}, nil)

	ctx := context.Background()

	generated := f.service.HandleMessage(ctx, Request{SubjectID: "visitor-1", Message: "Bonjour"})
	escalated := f.service.HandleMessage(ctx, Request{SubjectID: "visitor-1", Message: "je veux parler à un humain"})

	_, err := uuid.Parse(generated.RequestID)
	assert.NoError(t, err)
	_, err = uuid.Parse(escalated.RequestID)
	assert.NoError(t, err)
	assert.NotEqual(t, generated.RequestID, escalated.RequestID)
}

func TestService_FallbackCarriesARequestID(t *testing.T) {
	f := newServiceFixture(t)
	f.provider.On("Generate", mock.Anything, mock.Anything, mock.Anything).Return(nil, errors.New("timeout"))

	resp := f.service.HandleMessage(context.Background(), Request{SubjectID: "visitor-1", Message: "Bonjour"})

	_, err := uuid.Parse(resp.RequestID)
	assert.NoError(t, err)
}

func TestService_CampaignChannelUsesCampaignContext(t *testing.T) {
	f := newServiceFixture(t)

	var captured []llm.Message
	f.provider.On("Generate", mock.Anything, mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) {
			captured = args.Get(1).([]llm.Message)
		}).
		Return(&llm.Response{Text: "Réponse campagne"}, nil)

	f.service.HandleMessage(context.Background(), Request{
		SubjectID:       "contact-9",
		DisplayName:     "Marc",
		Message:         "Dites-m'en plus",
		CampaignContext: "Soldes d'été : -20% sur tout",
		Channel:         ChannelCampaign,
	})

	require.Len(t, captured, 3)
	assert.Contains(t, captured[1].Content, "Soldes d'été : -20% sur tout")
	assert.NotContains(t, captured[1].Content, "Catalogue")
	assert.Equal(t, llm.Message{Role: llm.RoleUser, Content: "Dites-m'en plus"}, captured[2])
}
