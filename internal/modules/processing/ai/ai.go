package ai

import (
	"errors"

	"go.uber.org/zap"

	appcfg "github.com/loci-space/core/internal/config"
	"github.com/loci-space/core/internal/modules/content/note"
)

var errAINotConfigured = errors.New("AI provider is not configured")

// Service runs the AI augmentations around notes: background emotion
// tagging, the streaming conversation and summary generation.
type Service struct {
	notes   *note.Service
	cfg     appcfg.AIConfig
	gateway Gateway
	logger  *zap.Logger
}

func NewService(notes *note.Service, cfg appcfg.AIConfig, gateway Gateway, logger *zap.Logger) *Service {
	return &Service{notes: notes, cfg: cfg, gateway: gateway, logger: logger}
}

func (s *Service) chatProvider() *appcfg.AIProvider {
	return selectAIProvider(s.cfg, s.cfg.ChatModel)
}

func (s *Service) tagProvider() *appcfg.AIProvider {
	return selectAIProvider(s.cfg, s.cfg.TagModel)
}

func (s *Service) summaryProvider() *appcfg.AIProvider {
	return selectAIProvider(s.cfg, s.cfg.SummaryModel)
}
