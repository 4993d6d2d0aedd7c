package ai

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/loci-space/core/internal/middleware"
	"github.com/loci-space/core/internal/pkg/response"
)

type Handler struct{ svc *Service }

func NewHandler(svc *Service) *Handler { return &Handler{svc: svc} }

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup, authMW gin.HandlerFunc) {
	g := rg.Group("/ai", authMW)
	g.POST("/chat", h.chat)
	g.POST("/summary", h.summary)
}

// POST /ai/chat  [auth]
//
// The reply is streamed as a plain text body, one chunk per upstream
// token. Configuration and ownership failures are reported as
// structured errors before any byte of the stream is written; once
// streaming has begun, an upstream failure degrades to a fixed apology
// chunk instead.
func (h *Handler) chat(c *gin.Context) {
	var dto ChatDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	conv, err := h.svc.PrepareConversation(middleware.CurrentUserID(c), &dto)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			response.NotFound(c)
			return
		}
		response.InternalError(c, err)
		return
	}

	c.Header("Content-Type", "text/plain; charset=utf-8")
	c.Header("Cache-Control", "no-cache")
	c.Header("X-Accel-Buffering", "no")
	c.Status(http.StatusOK)

	err = h.svc.StreamReply(c.Request.Context(), conv, func(token string) {
		_, _ = c.Writer.WriteString(token)
		c.Writer.Flush()
	})
	if err != nil && c.Request.Context().Err() == nil {
		_, _ = c.Writer.WriteString(streamApology)
		c.Writer.Flush()
	}
}

// POST /ai/summary  [auth]
func (h *Handler) summary(c *gin.Context) {
	var dto SummaryDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	summary, err := h.svc.GenerateSummary(c.Request.Context(), dto.NoteID, middleware.CurrentUserID(c))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			response.NotFound(c)
			return
		}
		response.InternalError(c, err)
		return
	}
	response.OK(c, gin.H{"summary": summary})
}
