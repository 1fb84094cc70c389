package handler

import (
	"net/http"

	"github.com/vitrine-app/vitrine-server/internal/api/response"
	"github.com/vitrine-app/vitrine-server/internal/llm"
	"github.com/vitrine-app/vitrine-server/internal/repository/mongo"
)

// HealthCheck reports process liveness
func HealthCheck(w http.ResponseWriter, r *http.Request) {
	response.OK(w, map[string]string{"status": "ok"})
}

// ReadyCheck reports whether the durable store is reachable
func ReadyCheck(client *mongo.Client) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := client.Ping(r.Context()); err != nil {
			response.Error(w, http.StatusServiceUnavailable, "database unavailable")
			return
		}
		response.OK(w, map[string]string{"status": "ready"})
	}
}

// ListLLMProviders returns the registered providers and their models
func ListLLMProviders(router *llm.Router) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		response.OK(w, router.GetProvidersInfo())
	}
}
