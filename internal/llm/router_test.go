package llm_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vitrine-app/vitrine-server/internal/llm"
)

type stubProvider struct {
	name       string
	configured bool
}

func (p *stubProvider) Name() string              { return p.name }
func (p *stubProvider) AvailableModels() []string { return []string{p.name + "-1"} }
func (p *stubProvider) DefaultModel() string      { return p.name + "-1" }
func (p *stubProvider) IsConfigured() bool        { return p.configured }

func (p *stubProvider) Generate(_ context.Context, _ []llm.Message, _ llm.SamplingConfig) (*llm.Response, error) {
	return &llm.Response{Text: "ok", Model: p.DefaultModel()}, nil
}

func TestRouter_GetProvider(t *testing.T) {
	router := llm.NewRouter("gemini")
	router.RegisterProvider(&stubProvider{name: "gemini", configured: true})
	router.RegisterProvider(&stubProvider{name: "openai", configured: false})

	t.Run("empty name falls back to default", func(t *testing.T) {
		p, err := router.GetProvider("")
		require.NoError(t, err)
		assert.Equal(t, "gemini", p.Name())
	})

	t.Run("unknown provider", func(t *testing.T) {
		_, err := router.GetProvider("mistral")
		assert.Error(t, err)
	})

	t.Run("unconfigured provider", func(t *testing.T) {
		_, err := router.GetProvider("openai")
		assert.Error(t, err)
	})
}

func TestRouter_ListProviders(t *testing.T) {
	router := llm.NewRouter("gemini")
	router.RegisterProvider(&stubProvider{name: "gemini", configured: true})
	router.RegisterProvider(&stubProvider{name: "openai", configured: false})

	assert.Equal(t, []string{"gemini"}, router.ListProviders())

	infos := router.GetProvidersInfo()
	assert.Len(t, infos, 2)
}
