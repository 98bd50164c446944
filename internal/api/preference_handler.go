package api

import (
	"alcyxob/fitness-planner/internal/domain"
	"alcyxob/fitness-planner/internal/repository"
	"alcyxob/fitness-planner/internal/service"
	"net/http"

	"github.com/gin-gonic/gin"
)

type PreferenceHandler struct {
	preferenceService service.PreferenceService
}

func NewPreferenceHandler(preferenceService service.PreferenceService) *PreferenceHandler {
	return &PreferenceHandler{preferenceService: preferenceService}
}

type CreatePreferenceRequest struct {
	Gender             string                 `json:"gender" binding:"max=30"`
	Age                *int                   `json:"age" binding:"omitempty,min=1,max=120"`
	Height             *float64               `json:"height" binding:"omitempty,min=30,max=250"`
	Weight             *float64               `json:"weight" binding:"omitempty,min=2,max=300"`
	Goal               string                 `json:"goal" binding:"required,max=150"`
	ExperienceLevel    domain.ExperienceLevel `json:"experience_level" binding:"required,oneof=beginner middle professional"`
	WorkoutFrequency   int                    `json:"workout_frequency" binding:"required,min=1,max=7"`
	PreferredExercises string                 `json:"prefer_workout_ex" binding:"required,max=150"`
	ProgramMonths      int                    `json:"time_of_program" binding:"required,min=1,max=12"`
}

// UpdatePreferenceRequest is a partial update. A field that is present must
// satisfy the same rules as on create.
type UpdatePreferenceRequest struct {
	Gender             *string                 `json:"gender" binding:"omitempty,max=30"`
	Age                *int                    `json:"age" binding:"omitempty,min=1,max=120"`
	Height             *float64                `json:"height" binding:"omitempty,min=30,max=250"`
	Weight             *float64                `json:"weight" binding:"omitempty,min=2,max=300"`
	Goal               *string                 `json:"goal" binding:"omitempty,min=1,max=150"`
	ExperienceLevel    *domain.ExperienceLevel `json:"experience_level" binding:"omitempty,oneof=beginner middle professional"`
	WorkoutFrequency   *int                    `json:"workout_frequency" binding:"omitempty,min=1,max=7"`
	PreferredExercises *string                 `json:"prefer_workout_ex" binding:"omitempty,min=1,max=150"`
	ProgramMonths      *int                    `json:"time_of_program" binding:"omitempty,min=1,max=12"`
}

type PreferenceQuery struct {
	Age                *int   `form:"age" binding:"omitempty,min=1,max=120"`
	Goal               string `form:"goal"`
	ExperienceLevel    string `form:"experience_level" binding:"omitempty,oneof=beginner middle professional"`
	Gender             string `form:"gender"`
	PreferredExercises string `form:"prefer_workout_ex"`
}

// Create godoc
// @Summary Create a workout preference
// @Tags Preferences
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body CreatePreferenceRequest true "Preference"
// @Success 201 {object} domain.Preference
// @Failure 400 {object} errorEnvelope "Validation error"
// @Router /preferences [post]
func (h *PreferenceHandler) Create(c *gin.Context) {
	userID, ok := mustUserID(c)
	if !ok {
		return
	}
	var req CreatePreferenceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, bindError(err))
		return
	}
	pref, err := h.preferenceService.Create(c.Request.Context(), userID, service.PreferenceInput{
		Gender:             req.Gender,
		Age:                req.Age,
		Height:             req.Height,
		Weight:             req.Weight,
		Goal:               req.Goal,
		ExperienceLevel:    req.ExperienceLevel,
		WorkoutFrequency:   req.WorkoutFrequency,
		PreferredExercises: req.PreferredExercises,
		ProgramMonths:      req.ProgramMonths,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, pref)
}

// List godoc
// @Summary List the caller's preferences, newest first
// @Tags Preferences
// @Produce json
// @Security BearerAuth
// @Param age query int false "Exact age"
// @Param goal query string false "Exact goal"
// @Param experience_level query string false "beginner, middle or professional"
// @Param gender query string false "Exact gender"
// @Param prefer_workout_ex query string false "Exact preferred exercises"
// @Success 200 {array} domain.Preference
// @Router /preferences [get]
func (h *PreferenceHandler) List(c *gin.Context) {
	userID, ok := mustUserID(c)
	if !ok {
		return
	}
	var q PreferenceQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		respondError(c, bindError(err))
		return
	}
	prefs, err := h.preferenceService.List(c.Request.Context(), userID, repository.PreferenceFilter{
		Age:                q.Age,
		Goal:               q.Goal,
		ExperienceLevel:    domain.ExperienceLevel(q.ExperienceLevel),
		Gender:             q.Gender,
		PreferredExercises: q.PreferredExercises,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, prefs)
}

func (h *PreferenceHandler) Get(c *gin.Context) {
	userID, ok := mustUserID(c)
	if !ok {
		return
	}
	pref, err := h.preferenceService.Get(c.Request.Context(), userID, c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, pref)
}

// Update godoc
// @Summary Partially update a preference
// @Tags Preferences
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Preference ID"
// @Param body body UpdatePreferenceRequest true "Fields to change"
// @Success 200 {object} domain.Preference
// @Failure 404 {object} errorEnvelope "Not found"
// @Router /preferences/{id} [patch]
func (h *PreferenceHandler) Update(c *gin.Context) {
	userID, ok := mustUserID(c)
	if !ok {
		return
	}
	var req UpdatePreferenceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, bindError(err))
		return
	}
	pref, err := h.preferenceService.Update(c.Request.Context(), userID, c.Param("id"), service.PreferencePatch{
		Gender:             req.Gender,
		Age:                req.Age,
		Height:             req.Height,
		Weight:             req.Weight,
		Goal:               req.Goal,
		ExperienceLevel:    req.ExperienceLevel,
		WorkoutFrequency:   req.WorkoutFrequency,
		PreferredExercises: req.PreferredExercises,
		ProgramMonths:      req.ProgramMonths,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, pref)
}

// Delete godoc
// @Summary Delete a preference and the plans generated from it
// @Tags Preferences
// @Security BearerAuth
// @Param id path string true "Preference ID"
// @Success 204
// @Failure 404 {object} errorEnvelope "Not found"
// @Router /preferences/{id} [delete]
func (h *PreferenceHandler) Delete(c *gin.Context) {
	userID, ok := mustUserID(c)
	if !ok {
		return
	}
	if err := h.preferenceService.Delete(c.Request.Context(), userID, c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
