package ai

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	appcfg "github.com/loci-space/core/internal/config"
	"github.com/loci-space/core/internal/models"
)

// EnqueueTag classifies the emotion of a freshly created note without
// blocking the caller. Classification failures are logged and dropped:
// the note simply keeps its default emotion, and nothing is retried.
func (s *Service) EnqueueTag(noteID, ownerID uint, content string) {
	if strings.TrimSpace(content) == "" {
		return
	}
	provider := s.tagProvider()
	if provider == nil {
		return
	}

	log := s.logger.With(
		zap.String("task", uuid.NewString()),
		zap.Uint("note", noteID),
	)
	go s.tagNote(log, provider, noteID, ownerID, content)
}

func (s *Service) tagNote(log *zap.Logger, provider *appcfg.AIProvider, noteID, ownerID uint, content string) {
	systemPrompt, prompt := buildEmotionPrompt(content)
	raw, err := s.gateway.Complete(context.Background(), provider, systemPrompt, prompt)
	if err != nil {
		log.Warn("emotion classification failed", zap.Error(err))
		return
	}

	emotion := normalizeEmotionLabel(raw)
	if !models.ValidEmotion(emotion) {
		log.Warn("emotion classification returned an unknown label", zap.String("label", emotion))
		return
	}
	if err := s.notes.UpdateEmotion(noteID, ownerID, emotion); err != nil {
		log.Warn("emotion update failed", zap.Error(err))
		return
	}
	log.Info("note tagged", zap.String("emotion", emotion))
}

func normalizeEmotionLabel(raw string) string {
	label := strings.ToLower(strings.TrimSpace(raw))
	return strings.Trim(label, "\"'`.,!?")
}
