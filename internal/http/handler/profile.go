package handler

import (
	"net/http"

	"basegraph.app/forum/internal/http/dto"
	"basegraph.app/forum/internal/service"
	"github.com/gin-gonic/gin"
)

type ProfileHandler struct {
	profiles service.ProfileService
}

func NewProfileHandler(profiles service.ProfileService) *ProfileHandler {
	return &ProfileHandler{profiles: profiles}
}

func (h *ProfileHandler) Get(c *gin.Context) {
	profile, err := h.profiles.Get(c.Request.Context(), c.Param("name"))
	if err != nil {
		respondError(c, err, "load profile")
		return
	}

	c.JSON(http.StatusOK, dto.ToProfileResponse(profile))
}
