package ai

import (
	"context"
	"strings"

	"go.uber.org/zap"
	"gorm.io/gorm"

	appcfg "github.com/loci-space/core/internal/config"
	"github.com/loci-space/core/internal/models"
)

// streamApology is sent in-band as the final chunk when the upstream
// call fails after the response stream has already started.
const streamApology = "（风把话语吹散了……我没能听清，稍后再试一次好吗？）"

// Conversation is one prepared chat invocation: the user's latest turn
// is already persisted, the persona preamble is built.
type Conversation struct {
	NoteID       uint
	OwnerID      uint
	SystemPrompt string
	Turns        []Turn

	provider *appcfg.AIProvider
}

// PrepareConversation checks ownership, persists the trailing user turn
// and assembles the context for the streaming call. A missing or
// foreign note yields gorm.ErrRecordNotFound.
func (s *Service) PrepareConversation(ownerID uint, dto *ChatDTO) (*Conversation, error) {
	provider := s.chatProvider()
	if provider == nil {
		return nil, errAINotConfigured
	}

	n, err := s.notes.GetByID(dto.NoteID, ownerID)
	if err != nil {
		return nil, err
	}
	if n == nil {
		return nil, gorm.ErrRecordNotFound
	}

	if last := dto.Messages[len(dto.Messages)-1]; last.Role == models.RoleUser {
		if _, err := s.notes.AppendChat(dto.NoteID, ownerID, models.RoleUser, last.Content); err != nil {
			return nil, err
		}
	}

	noteContent := dto.NoteContent
	if strings.TrimSpace(noteContent) == "" {
		noteContent = n.Content
	}
	locationName := dto.LocationName
	if strings.TrimSpace(locationName) == "" {
		locationName = n.LocationName
	}

	return &Conversation{
		NoteID:       dto.NoteID,
		OwnerID:      ownerID,
		SystemPrompt: buildChatSystemPrompt(noteContent, locationName),
		Turns:        dto.Messages,
		provider:     provider,
	}, nil
}

// StreamReply relays the assistant's reply token by token through
// onToken. On clean completion the full text is persisted as one
// assistant chat row; on upstream failure nothing is persisted and the
// error is returned so the caller can degrade in-band.
func (s *Service) StreamReply(ctx context.Context, conv *Conversation, onToken func(string)) error {
	reply, err := s.gateway.StreamChat(ctx, conv.provider, conv.SystemPrompt, conv.Turns, onToken)
	if err != nil {
		return err
	}

	if _, err := s.notes.AppendChat(conv.NoteID, conv.OwnerID, models.RoleAssistant, reply); err != nil {
		s.logger.Error("assistant turn not persisted",
			zap.Uint("note", conv.NoteID),
			zap.Error(err))
	}
	return nil
}
