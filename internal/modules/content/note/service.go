package note

import (
	"errors"

	"github.com/loci-space/core/internal/models"
	"github.com/loci-space/core/internal/pkg/geo"
	"github.com/loci-space/core/internal/pkg/pagination"
	"github.com/loci-space/core/internal/pkg/response"
	"gorm.io/gorm"
)

const (
	// NearbyRadiusKm is the surfacing radius for the proximity feed.
	NearbyRadiusKm = 1.0

	nearbyCandidateLimit = 100
	nearbyResultLimit    = 30
)

type Service struct {
	db *gorm.DB
}

func NewService(db *gorm.DB) *Service {
	return &Service{db: db}
}

// DB exposes the underlying handle for cross-module queries.
func (s *Service) DB() *gorm.DB { return s.db }

func (s *Service) Create(ownerID uint, dto *CreateNoteDTO) (*models.NoteModel, error) {
	emotion := dto.Emotion
	if !models.ValidEmotion(emotion) {
		emotion = models.EmotionCalm
	}
	mode := dto.Mode
	if !models.ValidMode(mode) {
		mode = models.ModeTrace
	}

	note := models.NoteModel{
		OwnerID:      ownerID,
		Content:      dto.Content,
		Latitude:     dto.Latitude,
		Longitude:    dto.Longitude,
		LocationName: dto.LocationName,
		Emotion:      emotion,
		Mode:         mode,
		ImageURL:     dto.ImageURL,
	}
	if dto.IsPrivate != nil {
		note.IsPrivate = *dto.IsPrivate
	}

	if err := s.db.Create(&note).Error; err != nil {
		return nil, err
	}
	return &note, nil
}

// GetByID returns the note only when it exists and belongs to ownerID.
// A miss and a foreign note are indistinguishable to the caller.
func (s *Service) GetByID(id, ownerID uint) (*models.NoteModel, error) {
	var note models.NoteModel
	if err := s.db.Where("id = ? AND owner_id = ?", id, ownerID).First(&note).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &note, nil
}

func (s *Service) ListOwn(ownerID uint, q pagination.Query) ([]models.NoteModel, response.Pagination, error) {
	tx := s.db.Model(&models.NoteModel{}).
		Where("owner_id = ?", ownerID).
		Order("created_at DESC, id DESC")

	notes := make([]models.NoteModel, 0)
	pag, err := pagination.Paginate(tx, q, &notes)
	return notes, pag, err
}

func (s *Service) ListPublic(q pagination.Query) ([]models.NoteModel, response.Pagination, error) {
	tx := s.db.Model(&models.NoteModel{}).
		Where("is_private = ?", false).
		Order("created_at DESC, id DESC")

	notes := make([]models.NoteModel, 0)
	pag, err := pagination.Paginate(tx, q, &notes)
	return notes, pag, err
}

// Nearby returns public notes within NearbyRadiusKm of center, newest first.
// A bounding box narrows the candidate set before the exact distance filter.
func (s *Service) Nearby(center geo.Point) ([]models.NoteModel, error) {
	box := geo.BoundingBox(center, NearbyRadiusKm)

	var candidates []models.NoteModel
	err := s.db.
		Where("is_private = ?", false).
		Where("latitude IS NOT NULL AND longitude IS NOT NULL").
		Where("latitude BETWEEN ? AND ?", box.LatMin, box.LatMax).
		Where("longitude BETWEEN ? AND ?", box.LngMin, box.LngMax).
		Order("created_at DESC, id DESC").
		Limit(nearbyCandidateLimit).
		Find(&candidates).Error
	if err != nil {
		return nil, err
	}

	notes := make([]models.NoteModel, 0, len(candidates))
	for _, n := range candidates {
		if !n.HasCoordinates() {
			continue
		}
		p := geo.Point{Latitude: *n.Latitude, Longitude: *n.Longitude}
		if geo.WithinRadius(center, p, NearbyRadiusKm) {
			notes = append(notes, n)
			if len(notes) == nearbyResultLimit {
				break
			}
		}
	}
	return notes, nil
}

// UpdateEmotion overwrites only the emotion column of an owned note.
func (s *Service) UpdateEmotion(id, ownerID uint, emotion string) error {
	if !models.ValidEmotion(emotion) {
		return errors.New("unknown emotion tag")
	}
	return s.db.Model(&models.NoteModel{}).
		Where("id = ? AND owner_id = ?", id, ownerID).
		Update("emotion", emotion).Error
}

// UpdateSummary overwrites only the ai_summary column of an owned note.
func (s *Service) UpdateSummary(id, ownerID uint, summary string) error {
	return s.db.Model(&models.NoteModel{}).
		Where("id = ? AND owner_id = ?", id, ownerID).
		Update("ai_summary", summary).Error
}

// Delete removes an owned note together with its chat transcript.
// Returns (false, nil) when the note does not exist or is not owned.
func (s *Service) Delete(id, ownerID uint) (bool, error) {
	note, err := s.GetByID(id, ownerID)
	if err != nil {
		return false, err
	}
	if note == nil {
		return false, nil
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("note_id = ?", id).Delete(&models.ChatModel{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.NoteModel{}, "id = ?", id).Error
	})
	if err != nil {
		return false, err
	}
	return true, nil
}

// AppendChat persists one conversation turn for an owned note.
func (s *Service) AppendChat(noteID, ownerID uint, role, content string) (*models.ChatModel, error) {
	note, err := s.GetByID(noteID, ownerID)
	if err != nil {
		return nil, err
	}
	if note == nil {
		return nil, gorm.ErrRecordNotFound
	}

	chat := models.ChatModel{
		OwnerID: ownerID,
		NoteID:  noteID,
		Role:    role,
		Content: content,
	}
	if err := s.db.Create(&chat).Error; err != nil {
		return nil, err
	}
	return &chat, nil
}

// ListChats returns the transcript of an owned note in creation order.
func (s *Service) ListChats(noteID, ownerID uint) ([]models.ChatModel, error) {
	note, err := s.GetByID(noteID, ownerID)
	if err != nil {
		return nil, err
	}
	if note == nil {
		return nil, gorm.ErrRecordNotFound
	}

	chats := make([]models.ChatModel, 0)
	err = s.db.Where("note_id = ?", noteID).
		Order("created_at ASC, id ASC").
		Find(&chats).Error
	return chats, err
}
