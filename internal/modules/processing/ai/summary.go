package ai

import (
	"context"

	"gorm.io/gorm"
)

// GenerateSummary re-reads the note and its full transcript, asks for a
// reflective letter in one single-shot call and overwrites the note's
// ai_summary on success. On any upstream failure the note is left
// unchanged. Ownership is checked before the AI call is made.
func (s *Service) GenerateSummary(ctx context.Context, noteID, ownerID uint) (string, error) {
	n, err := s.notes.GetByID(noteID, ownerID)
	if err != nil {
		return "", err
	}
	if n == nil {
		return "", gorm.ErrRecordNotFound
	}

	provider := s.summaryProvider()
	if provider == nil {
		return "", errAINotConfigured
	}

	chats, err := s.notes.ListChats(noteID, ownerID)
	if err != nil {
		return "", err
	}

	systemPrompt, prompt := buildNoteSummaryPrompt(n.Content, chats)
	raw, err := s.gateway.Complete(ctx, provider, systemPrompt, prompt)
	if err != nil {
		return "", err
	}
	summary, err := extractSummaryFromAIResponse(raw)
	if err != nil {
		return "", err
	}

	if err := s.notes.UpdateSummary(noteID, ownerID, summary); err != nil {
		return "", err
	}
	return summary, nil
}
