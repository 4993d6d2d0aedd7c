package user

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/loci-space/core/internal/middleware"
	"github.com/loci-space/core/internal/pkg/response"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup, authMW gin.HandlerFunc) {
	auth := rg.Group("/auth")
	{
		auth.POST("/register", h.register)
		auth.POST("/login", h.login)
	}
	rg.GET("/me", authMW, h.me)
}

func (h *Handler) register(c *gin.Context) {
	var dto RegisterDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	created, err := h.svc.Register(&dto)
	if err != nil {
		if errors.Is(err, errUsernameTaken) {
			response.Conflict(c, err.Error())
			return
		}
		response.InternalError(c, err)
		return
	}
	response.Created(c, sanitize(created))
}

func (h *Handler) login(c *gin.Context) {
	var dto LoginDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	result, err := h.svc.Login(&dto, c.ClientIP())
	if err != nil {
		if errors.Is(err, errUserNotFound) || errors.Is(err, errWrongPassword) {
			response.Unauthorized(c)
			return
		}
		response.InternalError(c, err)
		return
	}
	response.OK(c, result)
}

func (h *Handler) me(c *gin.Context) {
	uid := middleware.CurrentUserID(c)
	user, err := h.svc.GetByID(uid)
	if err != nil {
		response.InternalError(c, err)
		return
	}
	if user == nil {
		response.NotFound(c)
		return
	}
	response.OK(c, sanitize(user))
}
