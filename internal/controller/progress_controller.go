package controller

import (
	"errors"
	"rizhub_backend/internal/service"
	"rizhub_backend/internal/util"
	"strconv"

	"github.com/gin-gonic/gin"
)

// ProgressController exposes the staging endpoints and the two lifecycle
// operations: complete and reset.
type ProgressController struct {
	ProgressService *service.ProgressService
}

func NewProgressController(progressService *service.ProgressService) *ProgressController {
	return &ProgressController{ProgressService: progressService}
}

func (c *ProgressController) handleStagingError(ctx *gin.Context, err error) {
	switch {
	case errors.Is(err, util.ErrKabanataNotFound),
		errors.Is(err, util.ErrQuizNotFound),
		errors.Is(err, util.ErrGuessWordNotFound),
		errors.Is(err, util.ErrVideoNotFound):
		util.NotFound(ctx)
	default:
		util.LogInternalError(ctx, err)
	}
}

// StageQuiz godoc
// @Summary Stage a quiz answer for the current session
// @Tags progress
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body service.QuizProgressRequest true "quiz answer"
// @Success 200 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /api/quiz/save-progress [post]
func (c *ProgressController) StageQuiz(ctx *gin.Context) {
	var req service.QuizProgressRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	claims := util.GetUserFromContext(ctx)
	isCorrect, err := c.ProgressService.StageQuizAnswer(ctx.Request.Context(), claims.UserID, req)
	if err != nil {
		c.handleStagingError(ctx, err)
		return
	}
	util.Success(ctx, gin.H{"is_correct": isCorrect})
}

// StageWordGuess godoc
// @Summary Stage a word-guess round for the current session
// @Tags progress
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body service.WordGuessProgressRequest true "word-guess state"
// @Success 200 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /api/guessword/save-progress [post]
func (c *ProgressController) StageWordGuess(ctx *gin.Context) {
	var req service.WordGuessProgressRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	claims := util.GetUserFromContext(ctx)
	isCorrect, err := c.ProgressService.StageWordGuess(ctx.Request.Context(), claims.UserID, req)
	if err != nil {
		c.handleStagingError(ctx, err)
		return
	}
	util.Success(ctx, gin.H{"is_correct": isCorrect})
}

// StageVideo godoc
// @Summary Stage video watch state for the current session
// @Tags progress
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body service.VideoProgressRequest true "watch state"
// @Success 200 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /api/video/save-progress [post]
func (c *ProgressController) StageVideo(ctx *gin.Context) {
	var req service.VideoProgressRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	claims := util.GetUserFromContext(ctx)
	if err := c.ProgressService.StageVideo(ctx.Request.Context(), claims.UserID, req); err != nil {
		c.handleStagingError(ctx, err)
		return
	}
	util.Success(ctx, nil)
}

type CompleteRequest struct {
	KabanataID uint `json:"kabanata_id" binding:"required"`
}

// Complete godoc
// @Summary Commit everything staged for a chapter
// @Description Reconciles staged attempts into the progress tables, recomputes
// @Description stars and progress, and unlocks the next chapter. Served at both
// @Description /quiz/complete and /challenge/complete.
// @Tags progress
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body CompleteRequest true "chapter to complete"
// @Success 200 {object} util.Response{data=service.CompletionResult}
// @Failure 404 {object} util.Response
// @Router /api/challenge/complete [post]
func (c *ProgressController) Complete(ctx *gin.Context) {
	var req CompleteRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	claims := util.GetUserFromContext(ctx)
	result, err := c.ProgressService.CompleteKabanata(ctx.Request.Context(), claims.UserID, req.KabanataID)
	if err != nil {
		if errors.Is(err, util.ErrKabanataNotFound) {
			util.NotFound(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, result)
}

// Reset godoc
// @Summary Wipe a chapter's attempts and lock it again
// @Tags progress
// @Produce json
// @Security BearerAuth
// @Param kabanataId path int true "kabanata id"
// @Success 200 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /api/chapter/{kabanataId}/reset [post]
func (c *ProgressController) Reset(ctx *gin.Context) {
	id, err := strconv.ParseUint(ctx.Param("kabanataId"), 10, 32)
	if err != nil {
		util.BadRequest(ctx, "invalid kabanata id")
		return
	}

	claims := util.GetUserFromContext(ctx)
	if err := c.ProgressService.ResetKabanata(ctx.Request.Context(), claims.UserID, uint(id)); err != nil {
		if errors.Is(err, util.ErrProgressNotFound) {
			util.NotFound(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, nil)
}
