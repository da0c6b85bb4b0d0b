package controller

import (
	"errors"
	"rizhub_backend/internal/service"
	"rizhub_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type UserController struct {
	UserService *service.UserService
}

func NewUserController(userService *service.UserService) *UserController {
	return &UserController{UserService: userService}
}

// Profile godoc
// @Summary Current user's profile with study totals
// @Tags user
// @Produce json
// @Security BearerAuth
// @Success 200 {object} util.Response{data=service.ProfileResponse}
// @Router /api/profile [get]
func (c *UserController) Profile(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	resp, err := c.UserService.Profile(claims.UserID)
	if err != nil {
		if errors.Is(err, util.ErrUserNotFound) {
			util.NotFound(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, resp)
}

// UpdateProfile godoc
// @Summary Update display name
// @Tags user
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body service.UpdateProfileRequest true "profile fields"
// @Success 200 {object} util.Response
// @Router /api/user/profile [put]
func (c *UserController) UpdateProfile(ctx *gin.Context) {
	var req service.UpdateProfileRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	claims := util.GetUserFromContext(ctx)
	user, err := c.UserService.UpdateProfile(claims.UserID, req)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, user)
}

// ChangePassword godoc
// @Summary Change the account password
// @Tags user
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body service.ChangePasswordRequest true "current and new password"
// @Success 200 {object} util.Response
// @Failure 400 {object} util.Response
// @Router /api/user/password [put]
func (c *UserController) ChangePassword(ctx *gin.Context) {
	var req service.ChangePasswordRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	claims := util.GetUserFromContext(ctx)
	if err := c.UserService.ChangePassword(claims.UserID, req); err != nil {
		if errors.Is(err, util.ErrWrongPassword) {
			util.BadRequest(ctx, "current password is incorrect")
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, nil)
}

// UploadAvatar godoc
// @Summary Upload a profile picture
// @Tags user
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param avatar formData file true "image file"
// @Success 200 {object} util.Response
// @Router /api/user/avatar [post]
func (c *UserController) UploadAvatar(ctx *gin.Context) {
	file, err := ctx.FormFile("avatar")
	if err != nil {
		util.BadRequest(ctx, "avatar file is required")
		return
	}

	claims := util.GetUserFromContext(ctx)
	url, err := c.UserService.UploadAvatar(ctx.Request.Context(), claims.UserID, file)
	if err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	util.Success(ctx, gin.H{"avatar": url})
}

// DeleteAccount godoc
// @Summary Delete the account and all its data
// @Tags user
// @Produce json
// @Security BearerAuth
// @Success 200 {object} util.Response
// @Router /api/user/account [delete]
func (c *UserController) DeleteAccount(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if err := c.UserService.DeleteAccount(claims.UserID); err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, nil)
}
