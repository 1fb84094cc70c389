package chat

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/vitrine-app/vitrine-server/internal/domain"
	"github.com/vitrine-app/vitrine-server/internal/llm"
)

const (
	// ChannelCampaign marks messages arriving from a marketing campaign
	// thread rather than the site chat widget
	ChannelCampaign = "campaign"

	handoffText = `Bien sûr ! Un membre de notre équipe va prendre le relais et vous répondre très vite.`

	fallbackText = `Je rencontre un petit souci technique pour vous répondre.
Un membre de notre équipe va vous recontacter rapidement.`
)

// Request carries one inbound chat message
type Request struct {
	SubjectID       string
	DisplayName     string
	Message         string
	CampaignContext string
	Channel         string
}

// Service orchestrates the handling of inbound chat messages: escalate or
// generate, extract suggestions, remember the exchange
type Service struct {
	store     *Store
	assembler *Assembler
	llmRouter *llm.Router
	sampling  llm.SamplingConfig
}

// NewService creates the chat orchestration service
func NewService(store *Store, assembler *Assembler, llmRouter *llm.Router, sampling llm.SamplingConfig) *Service {
	return &Service{
		store:     store,
		assembler: assembler,
		llmRouter: llmRouter,
		sampling:  sampling,
	}
}

// HandleMessage processes one inbound message and always returns a
// structured response. Runtime faults anywhere in the pipeline degrade to
// a fixed fallback reply flagged for human follow-up; they are never
// surfaced to the caller.
func (s *Service) HandleMessage(ctx context.Context, req Request) domain.AssistantResponse {
	requestID := uuid.New().String()

	if WantsHuman(req.Message) {
		// Hand off without generating. The exchange is not appended to
		// conversational memory: no assistant turn was produced, and the
		// next AI reply should not treat the handoff as its own words.
		log.Info().Str("request_id", requestID).Str("subject_id", req.SubjectID).Msg("escalating to human agent")
		return domain.AssistantResponse{
			RequestID:            requestID,
			ResponseText:         handoffText,
			NeedsHumanEscalation: true,
		}
	}

	messages := s.buildMessages(ctx, req)

	provider, err := s.llmRouter.GetProvider("")
	if err != nil {
		log.Error().Err(err).Str("request_id", requestID).Msg("no usable LLM provider")
		return s.fallback(requestID)
	}

	resp, err := provider.Generate(ctx, messages, s.sampling)
	if err != nil || resp == nil || resp.Text == "" {
		// Fail fast to human follow-up; retrying a generative model in
		// the request path blows the latency budget.
		log.Error().Err(err).Str("request_id", requestID).Str("provider", provider.Name()).Msg("LLM generation failed")
		return s.fallback(requestID)
	}

	s.remember(ctx, req, resp.Text)

	return domain.AssistantResponse{
		RequestID:           requestID,
		ResponseText:        resp.Text,
		SuggestedProductIDs: ExtractProductSlugs(resp.Text),
	}
}

// buildMessages assembles the provider request. Campaign-channel messages
// use the lightweight campaign context; widget messages get the full
// commerce prompt.
func (s *Service) buildMessages(ctx context.Context, req Request) []llm.Message {
	if req.Channel == ChannelCampaign {
		return []llm.Message{
			{Role: llm.RoleSystem, Content: s.assembler.Persona()},
			{Role: llm.RoleSystem, Content: s.assembler.BuildCampaignContext(ctx, req.SubjectID, req.DisplayName, req.CampaignContext)},
			{Role: llm.RoleUser, Content: req.Message},
		}
	}
	return s.assembler.BuildChatMessages(ctx, req.SubjectID, req.DisplayName, req.CampaignContext, req.Message)
}

// remember appends the user turn then the assistant turn, each timestamped
// at append time. Persistence failures are already swallowed by the store.
func (s *Service) remember(ctx context.Context, req Request, responseText string) {
	s.store.Append(ctx, req.SubjectID, domain.ConversationTurn{
		Role:       domain.RoleUser,
		Content:    req.Message,
		OccurredAt: time.Now().UTC(),
		Channel:    req.Channel,
	})
	s.store.Append(ctx, req.SubjectID, domain.ConversationTurn{
		Role:       domain.RoleAssistant,
		Content:    responseText,
		OccurredAt: time.Now().UTC(),
		Channel:    req.Channel,
	})
}

func (s *Service) fallback(requestID string) domain.AssistantResponse {
	return domain.AssistantResponse{
		RequestID:            requestID,
		ResponseText:         fallbackText,
		NeedsHumanEscalation: true,
	}
}
