package api

import (
	"alcyxob/fitness-planner/internal/service"
	"net/http"

	"github.com/gin-gonic/gin"
)

type ProfileHandler struct {
	profileService service.ProfileService
}

func NewProfileHandler(profileService service.ProfileService) *ProfileHandler {
	return &ProfileHandler{profileService: profileService}
}

type CreateProfileRequest struct {
	Age    int     `json:"age" binding:"required,min=1,max=120"`
	Height float64 `json:"height" binding:"required,min=30,max=250"`
	Weight float64 `json:"weight" binding:"required,min=2,max=300"`
}

type UpdateProfileRequest struct {
	Age    *int     `json:"age" binding:"omitempty,min=1,max=120"`
	Height *float64 `json:"height" binding:"omitempty,min=30,max=250"`
	Weight *float64 `json:"weight" binding:"omitempty,min=2,max=300"`
}

func (h *ProfileHandler) Get(c *gin.Context) {
	userID, ok := mustUserID(c)
	if !ok {
		return
	}
	profile, err := h.profileService.Get(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, profile)
}

func (h *ProfileHandler) Create(c *gin.Context) {
	userID, ok := mustUserID(c)
	if !ok {
		return
	}
	var req CreateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, bindError(err))
		return
	}
	profile, err := h.profileService.Create(c.Request.Context(), userID, service.ProfileInput{
		Age:    req.Age,
		Height: req.Height,
		Weight: req.Weight,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, profile)
}

func (h *ProfileHandler) Update(c *gin.Context) {
	userID, ok := mustUserID(c)
	if !ok {
		return
	}
	var req UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, bindError(err))
		return
	}
	profile, err := h.profileService.Update(c.Request.Context(), userID, service.ProfilePatch{
		Age:    req.Age,
		Height: req.Height,
		Weight: req.Weight,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, profile)
}
