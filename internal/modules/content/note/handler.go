package note

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/loci-space/core/internal/middleware"
	"github.com/loci-space/core/internal/pkg/geo"
	"github.com/loci-space/core/internal/pkg/pagination"
	"github.com/loci-space/core/internal/pkg/response"
	"gorm.io/gorm"
)

// Tagger enqueues background emotion tagging for freshly created notes.
type Tagger interface {
	EnqueueTag(noteID, ownerID uint, content string)
}

type Handler struct {
	svc    *Service
	tagger Tagger
}

func NewHandler(svc *Service, tagger Tagger) *Handler {
	return &Handler{svc: svc, tagger: tagger}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup, authMW gin.HandlerFunc) {
	public := rg.Group("/public")
	public.GET("/nearby-notes", h.nearbyNotes)
	public.GET("/notes", h.publicNotes)

	notes := rg.Group("/notes", authMW)
	notes.GET("", h.listOwn)
	notes.POST("", h.create)
	notes.GET("/:id", h.getByID)
	notes.PATCH("/:id/summary", h.updateSummary)
	notes.DELETE("/:id", h.delete)
	notes.GET("/:id/chats", h.listChats)
}

// GET /public/nearby-notes?lat=&lng=
func (h *Handler) nearbyNotes(c *gin.Context) {
	lat, err1 := strconv.ParseFloat(c.Query("lat"), 64)
	lng, err2 := strconv.ParseFloat(c.Query("lng"), 64)
	if err1 != nil || err2 != nil {
		response.BadRequest(c, "lat and lng are required numbers")
		return
	}

	center := geo.Point{Latitude: lat, Longitude: lng}
	if !center.Valid() {
		response.BadRequest(c, "coordinates out of range")
		return
	}

	notes, err := h.svc.Nearby(center)
	if err != nil {
		response.InternalError(c, err)
		return
	}
	response.OK(c, notes)
}

// GET /public/notes
func (h *Handler) publicNotes(c *gin.Context) {
	q := pagination.FromContext(c)
	notes, pag, err := h.svc.ListPublic(q)
	if err != nil {
		response.InternalError(c, err)
		return
	}
	response.Paged(c, notes, pag)
}

// GET /notes  [auth]
func (h *Handler) listOwn(c *gin.Context) {
	q := pagination.FromContext(c)
	notes, pag, err := h.svc.ListOwn(middleware.CurrentUserID(c), q)
	if err != nil {
		response.InternalError(c, err)
		return
	}
	response.Paged(c, notes, pag)
}

// POST /notes  [auth]
func (h *Handler) create(c *gin.Context) {
	var dto CreateNoteDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	if (dto.Latitude == nil) != (dto.Longitude == nil) {
		response.BadRequest(c, "latitude and longitude must be provided together")
		return
	}
	if dto.Latitude != nil {
		p := geo.Point{Latitude: *dto.Latitude, Longitude: *dto.Longitude}
		if !p.Valid() {
			response.BadRequest(c, "coordinates out of range")
			return
		}
	}

	ownerID := middleware.CurrentUserID(c)
	note, err := h.svc.Create(ownerID, &dto)
	if err != nil {
		response.InternalError(c, err)
		return
	}

	if h.tagger != nil {
		h.tagger.EnqueueTag(note.ID, ownerID, note.Content)
	}
	response.Created(c, note)
}

// GET /notes/:id  [auth]
func (h *Handler) getByID(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	note, err := h.svc.GetByID(id, middleware.CurrentUserID(c))
	if err != nil {
		response.InternalError(c, err)
		return
	}
	if note == nil {
		response.NotFound(c)
		return
	}
	response.OK(c, note)
}

// PATCH /notes/:id/summary  [auth]
func (h *Handler) updateSummary(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	var dto UpdateSummaryDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	ownerID := middleware.CurrentUserID(c)
	note, err := h.svc.GetByID(id, ownerID)
	if err != nil {
		response.InternalError(c, err)
		return
	}
	if note == nil {
		response.NotFound(c)
		return
	}
	if err := h.svc.UpdateSummary(id, ownerID, dto.AISummary); err != nil {
		response.InternalError(c, err)
		return
	}
	note.AISummary = dto.AISummary
	response.OK(c, note)
}

// DELETE /notes/:id  [auth]
func (h *Handler) delete(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	found, err := h.svc.Delete(id, middleware.CurrentUserID(c))
	if err != nil {
		response.InternalError(c, err)
		return
	}
	if !found {
		response.NotFound(c)
		return
	}
	response.NoContent(c)
}

// GET /notes/:id/chats  [auth]
func (h *Handler) listChats(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	chats, err := h.svc.ListChats(id, middleware.CurrentUserID(c))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			response.NotFound(c)
			return
		}
		response.InternalError(c, err)
		return
	}
	response.OK(c, chats)
}

func parseIDParam(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		response.BadRequest(c, "invalid note id")
		return 0, false
	}
	return uint(id), true
}
