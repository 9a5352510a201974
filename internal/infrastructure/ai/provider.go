package ai

import (
	"github.com/jhoicas/kirana-pos/internal/application/ports"
	"github.com/jhoicas/kirana-pos/pkg/config"
)

// NewFromConfig devuelve el adaptador del proveedor configurado, o nil si el parseo asistido
// está desactivado (AI_PROVIDER=none).
func NewFromConfig(cfg config.AIConfig, opts ...Option) ports.LLMService {
	switch cfg.Provider {
	case config.AIProviderGemini:
		return NewGeminiService(cfg.GeminiAPIKey, cfg.Model, opts...)
	case config.AIProviderAnthropic:
		return NewAnthropicService(cfg.AnthropicAPIKey, cfg.Model, opts...)
	default:
		return nil
	}
}
