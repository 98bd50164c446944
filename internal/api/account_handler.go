package api

import (
	"alcyxob/fitness-planner/internal/service"
	"net/http"

	"github.com/gin-gonic/gin"
)

// AccountHandler serves the /me endpoints of the authenticated user.
type AccountHandler struct {
	accountService service.AccountService
}

func NewAccountHandler(accountService service.AccountService) *AccountHandler {
	return &AccountHandler{accountService: accountService}
}

type UpdateMeRequest struct {
	FirstName *string `json:"first_name" binding:"omitempty,max=150"`
	LastName  *string `json:"last_name" binding:"omitempty,max=150"`
}

type VerifyRequest struct {
	Code string `json:"code" binding:"required,len=6,numeric"`
}

type ChangePasswordRequest struct {
	OldPassword     string `json:"old_password" binding:"required"`
	NewPassword     string `json:"new_password" binding:"required,max=128"`
	ConfirmPassword string `json:"confirm_password" binding:"required"`
}

type AvatarUploadRequest struct {
	FileName    string `json:"file_name" binding:"required,max=255"`
	ContentType string `json:"content_type" binding:"required,max=100"`
}

type AvatarUploadResponse struct {
	UploadURL string `json:"upload_url"`
	ObjectKey string `json:"object_key"`
	ExpiresIn int64  `json:"expires_in"` // seconds
}

// GetMe godoc
// @Summary Get the current user
// @Tags Account
// @Produce json
// @Security BearerAuth
// @Success 200 {object} UserResponse
// @Router /me [get]
func (h *AccountHandler) GetMe(c *gin.Context) {
	userID, ok := mustUserID(c)
	if !ok {
		return
	}
	user, err := h.accountService.Me(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, MapUserToResponse(user))
}

// UpdateMe godoc
// @Summary Update the current user's names
// @Tags Account
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body UpdateMeRequest true "Fields to change"
// @Success 200 {object} UserResponse
// @Router /me [put]
func (h *AccountHandler) UpdateMe(c *gin.Context) {
	userID, ok := mustUserID(c)
	if !ok {
		return
	}
	var req UpdateMeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, bindError(err))
		return
	}
	user, err := h.accountService.UpdateMe(c.Request.Context(), userID, service.UpdateUserInput{
		FirstName: req.FirstName,
		LastName:  req.LastName,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, MapUserToResponse(user))
}

// DeleteMe godoc
// @Summary Delete the current user with all profile, preference and plan data
// @Tags Account
// @Security BearerAuth
// @Success 204
// @Router /me [delete]
func (h *AccountHandler) DeleteMe(c *gin.Context) {
	userID, ok := mustUserID(c)
	if !ok {
		return
	}
	if err := h.accountService.DeleteMe(c.Request.Context(), userID); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// Verify godoc
// @Summary Confirm the email address with the mailed code
// @Tags Account
// @Accept json
// @Security BearerAuth
// @Param body body VerifyRequest true "Verification code"
// @Success 200 {object} map[string]string
// @Failure 400 {object} errorEnvelope "Wrong or expired code, or already verified"
// @Router /me/verify [post]
func (h *AccountHandler) Verify(c *gin.Context) {
	userID, ok := mustUserID(c)
	if !ok {
		return
	}
	var req VerifyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, bindError(err))
		return
	}
	if err := h.accountService.Verify(c.Request.Context(), userID, req.Code); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "email verified"})
}

// ResendCode godoc
// @Summary Mail a new verification code
// @Tags Account
// @Security BearerAuth
// @Success 202 {object} map[string]string
// @Router /me/verify/resend [post]
func (h *AccountHandler) ResendCode(c *gin.Context) {
	userID, ok := mustUserID(c)
	if !ok {
		return
	}
	if err := h.accountService.ResendCode(c.Request.Context(), userID); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusAccepted, gin.H{"message": "verification code sent"})
}

// ChangePassword godoc
// @Summary Change the current user's password
// @Tags Account
// @Accept json
// @Security BearerAuth
// @Param body body ChangePasswordRequest true "Old and new password"
// @Success 200 {object} map[string]string
// @Router /me/password [post]
func (h *AccountHandler) ChangePassword(c *gin.Context) {
	userID, ok := mustUserID(c)
	if !ok {
		return
	}
	var req ChangePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, bindError(err))
		return
	}
	err := h.accountService.ChangePassword(c.Request.Context(), userID, service.ChangePasswordInput{
		OldPassword:     req.OldPassword,
		NewPassword:     req.NewPassword,
		ConfirmPassword: req.ConfirmPassword,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "password changed"})
}

// RequestAvatarUpload godoc
// @Summary Get a presigned URL to upload a new avatar
// @Description The client PUTs the image bytes to upload_url with the same Content-Type.
// @Tags Account
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body AvatarUploadRequest true "File metadata"
// @Success 200 {object} AvatarUploadResponse
// @Router /me/avatar [post]
func (h *AccountHandler) RequestAvatarUpload(c *gin.Context) {
	userID, ok := mustUserID(c)
	if !ok {
		return
	}
	var req AvatarUploadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, bindError(err))
		return
	}
	upload, err := h.accountService.AvatarUploadURL(c.Request.Context(), userID, req.FileName, req.ContentType)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, AvatarUploadResponse{
		UploadURL: upload.UploadURL,
		ObjectKey: upload.ObjectKey,
		ExpiresIn: int64(upload.ExpiresIn.Seconds()),
	})
}

// GetAvatar godoc
// @Summary Get a presigned URL to download the avatar
// @Tags Account
// @Produce json
// @Security BearerAuth
// @Success 200 {object} map[string]string
// @Failure 404 {object} errorEnvelope "No avatar"
// @Router /me/avatar [get]
func (h *AccountHandler) GetAvatar(c *gin.Context) {
	userID, ok := mustUserID(c)
	if !ok {
		return
	}
	url, err := h.accountService.AvatarURL(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"avatar_url": url})
}
