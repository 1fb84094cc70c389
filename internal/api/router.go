package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/rs/zerolog/log"
	"github.com/vitrine-app/vitrine-server/internal/api/handler"
	custommiddleware "github.com/vitrine-app/vitrine-server/internal/api/middleware"
	"github.com/vitrine-app/vitrine-server/internal/chat"
	"github.com/vitrine-app/vitrine-server/internal/config"
	"github.com/vitrine-app/vitrine-server/internal/llm"
	"github.com/vitrine-app/vitrine-server/internal/llm/gemini"
	"github.com/vitrine-app/vitrine-server/internal/llm/ollama"
	"github.com/vitrine-app/vitrine-server/internal/llm/openai"
	"github.com/vitrine-app/vitrine-server/internal/repository/mongo"
	"github.com/vitrine-app/vitrine-server/internal/repository/redis"
)

// NewRouter creates and configures the HTTP router
func NewRouter(cfg *config.Config, mongoClient *mongo.Client, redisClient *redis.Client) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(custommiddleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(cfg.Server.MiddlewareTimeout))

	// CORS: the chat widget is embedded on customers' storefronts
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type", "X-Subject-ID"},
		ExposedHeaders: []string{"X-Request-ID"},
		MaxAge:         300,
	}))

	// Repositories
	conversationRepo := mongo.NewConversationRepository(mongoClient)
	catalogRepo := mongo.NewCatalogRepository(mongoClient)
	promotionRepo := mongo.NewPromotionRepository(mongoClient)

	// Rate limiting
	rateLimiter := redis.NewRateLimiter(
		redisClient,
		cfg.Security.RateLimit.RequestsPerMinute,
		cfg.Security.RateLimit.Burst,
	)
	rateLimitMiddleware := custommiddleware.NewRateLimitMiddleware(rateLimiter)

	// LLM providers
	llmRouter := llm.NewRouter(cfg.LLM.DefaultProvider)
	log.Info().Msgf("Initializing LLM providers. Default: %s", cfg.LLM.DefaultProvider)

	if cfg.LLM.Gemini.APIKey != "" {
		llmRouter.RegisterProvider(gemini.NewProvider(cfg.LLM.Gemini))
	} else {
		log.Warn().Msg("Gemini API key is empty, skipping registration")
	}
	if cfg.LLM.OpenAI.APIKey != "" {
		llmRouter.RegisterProvider(openai.NewProvider(cfg.LLM.OpenAI.APIKey, cfg.LLM.OpenAI.Model))
	}
	if cfg.LLM.Ollama.Host != "" {
		log.Info().Str("host", cfg.LLM.Ollama.Host).Msg("Registering Ollama provider")
		llmRouter.RegisterProvider(ollama.NewProvider(cfg.LLM.Ollama.Host, cfg.LLM.Ollama.DefaultModel))
	}

	// Chat core
	historyCache := chat.NewHistoryCache()
	store := chat.NewStore(historyCache, conversationRepo, cfg.Chat.MaxHistory)
	assembler := chat.NewAssembler(store, catalogRepo, promotionRepo, cfg.Chat.BusinessName)
	chatService := chat.NewService(store, assembler, llmRouter, llm.SamplingConfig{
		Temperature:     cfg.LLM.Temperature,
		MaxOutputTokens: cfg.LLM.MaxOutputTokens,
	})

	// Handlers
	chatHandler := handler.NewChatHandler(chatService, store)
	catalogHandler := handler.NewCatalogHandler(catalogRepo, promotionRepo)

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/health", handler.HealthCheck)
		r.Get("/ready", handler.ReadyCheck(mongoClient))
		r.Get("/llm-providers", handler.ListLLMProviders(llmRouter))

		r.Get("/catalog/items", catalogHandler.ListItems)
		r.Get("/promotions/active", catalogHandler.ListActivePromotions)

		r.Route("/chat", func(r chi.Router) {
			r.Use(rateLimitMiddleware.Limit)

			r.Post("/message", chatHandler.Message)
			r.Get("/history/{subjectID}", chatHandler.History)
			r.Delete("/history/{subjectID}", chatHandler.ClearHistory)
		})
	})

	return r
}
