package api

import (
	"alcyxob/fitness-planner/internal/repository"
	"alcyxob/fitness-planner/internal/service"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

const headerDeletedCount = "X-Deleted-Count"

type PlanHandler struct {
	planService service.PlanService
}

func NewPlanHandler(planService service.PlanService) *PlanHandler {
	return &PlanHandler{planService: planService}
}

type GeneratePlanRequest struct {
	PreferenceID string `json:"preference_id" binding:"required"`
}

type PlanQuery struct {
	PlanID       string `form:"plan_id"`
	PreferenceID string `form:"preference_id"`
}

func (q PlanQuery) filter() repository.PlanFilter {
	return repository.PlanFilter{PlanID: q.PlanID, PreferenceID: q.PreferenceID}
}

// Generate godoc
// @Summary Generate and store a plan for one of the caller's preferences
// @Description Makes one call to the plan generator. The stored plan and the decoded document are returned.
// @Tags Plans
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body GeneratePlanRequest true "Preference to generate from"
// @Success 201 {object} service.GeneratedPlan
// @Failure 400 {object} errorEnvelope "Validation error or malformed generator output"
// @Failure 404 {object} errorEnvelope "Preference not found"
// @Failure 502 {object} errorEnvelope "Generator failed"
// @Failure 504 {object} errorEnvelope "Generator timed out"
// @Router /plans [post]
func (h *PlanHandler) Generate(c *gin.Context) {
	userID, ok := mustUserID(c)
	if !ok {
		return
	}
	var req GeneratePlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, bindError(err))
		return
	}
	res, err := h.planService.Generate(c.Request.Context(), userID, req.PreferenceID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, res)
}

// List godoc
// @Summary List the caller's plans with schedules and exercises
// @Tags Plans
// @Produce json
// @Security BearerAuth
// @Param plan_id query string false "Only this plan"
// @Param preference_id query string false "Only plans of this preference"
// @Success 200 {array} domain.Plan
// @Router /plans [get]
func (h *PlanHandler) List(c *gin.Context) {
	userID, ok := mustUserID(c)
	if !ok {
		return
	}
	var q PlanQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		respondError(c, bindError(err))
		return
	}
	plans, err := h.planService.List(c.Request.Context(), userID, q.filter())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, plans)
}

func (h *PlanHandler) Get(c *gin.Context) {
	userID, ok := mustUserID(c)
	if !ok {
		return
	}
	plan, err := h.planService.Get(c.Request.Context(), userID, c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, plan)
}

// DeleteOne godoc
// @Summary Delete one plan with its schedules and exercises
// @Tags Plans
// @Security BearerAuth
// @Param id path string true "Plan ID"
// @Success 204
// @Failure 404 {object} errorEnvelope "Not found"
// @Router /plans/{id} [delete]
func (h *PlanHandler) DeleteOne(c *gin.Context) {
	h.delete(c, repository.PlanFilter{PlanID: c.Param("id")})
}

// Delete godoc
// @Summary Delete plans by plan_id or preference_id
// @Description At least one of the query parameters is required.
// @Tags Plans
// @Security BearerAuth
// @Param plan_id query string false "Plan ID"
// @Param preference_id query string false "Preference ID"
// @Success 204 "X-Deleted-Count holds the number of removed plans"
// @Failure 400 {object} errorEnvelope "No scope given"
// @Failure 404 {object} errorEnvelope "Nothing matched"
// @Router /plans [delete]
func (h *PlanHandler) Delete(c *gin.Context) {
	var q PlanQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		respondError(c, bindError(err))
		return
	}
	h.delete(c, q.filter())
}

func (h *PlanHandler) delete(c *gin.Context, filter repository.PlanFilter) {
	userID, ok := mustUserID(c)
	if !ok {
		return
	}
	n, err := h.planService.Delete(c.Request.Context(), userID, filter)
	if err != nil {
		respondError(c, err)
		return
	}
	c.Header(headerDeletedCount, strconv.FormatInt(n, 10))
	c.Status(http.StatusNoContent)
}
