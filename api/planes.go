package api

import (
	"github.com/Domenick1991/airline/internal/domain"
	"github.com/Domenick1991/airline/internal/middleware"
	"github.com/Domenick1991/airline/internal/service/planes"
	"github.com/gin-gonic/gin"
)

type PlaneHandler struct {
	service planes.PlaneUseCase
}

func NewPlaneHandler(service planes.PlaneUseCase) *PlaneHandler {
	return &PlaneHandler{service: service}
}

func (h *PlaneHandler) Register(router *gin.RouterGroup, auth *middleware.Auth) {
	write := auth.RequirePermission(middleware.PermissionPlanesWrite)

	router.GET("", h.list)
	router.POST("", write, h.create)
	router.GET("/:id", h.get)
	router.DELETE("/:id", write, h.delete)
}

func (h *PlaneHandler) list(c *gin.Context) {
	planes, err := h.service.List(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	ok(c, planes)
}

func (h *PlaneHandler) get(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		writeError(c, err)
		return
	}
	plane, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		writeError(c, err)
		return
	}
	ok(c, plane)
}

func (h *PlaneHandler) create(c *gin.Context) {
	var input domain.PlaneInput
	if err := c.ShouldBindJSON(&input); err != nil {
		writeError(c, bindError(err))
		return
	}
	plane, err := h.service.Create(c.Request.Context(), input)
	if err != nil {
		writeError(c, err)
		return
	}
	created(c, plane)
}

func (h *PlaneHandler) delete(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		writeError(c, err)
		return
	}
	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		writeError(c, err)
		return
	}
	message(c, "plane deleted")
}
