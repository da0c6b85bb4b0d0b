package controller

import (
	"errors"
	"rizhub_backend/internal/service"
	"rizhub_backend/internal/util"
	"strconv"

	"github.com/gin-gonic/gin"
)

type KabanataController struct {
	KabanataService *service.KabanataService
}

func NewKabanataController(kabanataService *service.KabanataService) *KabanataController {
	return &KabanataController{KabanataService: kabanataService}
}

// ChallengeList godoc
// @Summary Paginated chapter list with the caller's progress
// @Tags kabanata
// @Produce json
// @Security BearerAuth
// @Param page query int false "page number" default(1)
// @Param limit query int false "page size" default(10)
// @Success 200 {object} util.Response{data=util.PageResponse}
// @Router /api/challenges [get]
func (c *KabanataController) ChallengeList(ctx *gin.Context) {
	page, _ := strconv.Atoi(ctx.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(ctx.DefaultQuery("limit", "10"))
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 10
	}

	claims := util.GetUserFromContext(ctx)
	items, total, err := c.KabanataService.ChallengeList(claims.UserID, page, limit)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, util.PageResponse{
		List:  items,
		Total: total,
		Page:  page,
		Limit: limit,
	})
}

// List godoc
// @Summary The bare chapter index in reading order
// @Tags kabanata
// @Produce json
// @Security BearerAuth
// @Success 200 {object} util.Response
// @Router /api/kabanatas [get]
func (c *KabanataController) List(ctx *gin.Context) {
	kabanatas, err := c.KabanataService.List()
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, kabanatas)
}

func (c *KabanataController) kabanataID(ctx *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(ctx.Param("id"), 10, 32)
	if err != nil {
		util.BadRequest(ctx, "invalid kabanata id")
		return 0, false
	}
	return uint(id), true
}

// Detail godoc
// @Summary A chapter with its videos, quizzes and word-guess rounds
// @Tags kabanata
// @Produce json
// @Security BearerAuth
// @Param id path int true "kabanata id"
// @Success 200 {object} util.Response{data=service.KabanataDetail}
// @Failure 404 {object} util.Response
// @Router /api/kabanatas/{id} [get]
func (c *KabanataController) Detail(ctx *gin.Context) {
	id, ok := c.kabanataID(ctx)
	if !ok {
		return
	}

	claims := util.GetUserFromContext(ctx)
	detail, err := c.KabanataService.Detail(claims.UserID, id)
	if err != nil {
		if errors.Is(err, util.ErrKabanataNotFound) {
			util.NotFound(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, detail)
}

// Quizzes godoc
// @Summary A chapter's quiz questions, answers hidden
// @Tags kabanata
// @Produce json
// @Security BearerAuth
// @Param id path int true "kabanata id"
// @Success 200 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /api/kabanatas/{id}/quizzes [get]
func (c *KabanataController) Quizzes(ctx *gin.Context) {
	id, ok := c.kabanataID(ctx)
	if !ok {
		return
	}

	quizzes, err := c.KabanataService.Quizzes(id)
	if err != nil {
		if errors.Is(err, util.ErrKabanataNotFound) {
			util.NotFound(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, quizzes)
}

// GuessWords godoc
// @Summary A chapter's word-guess rounds, answers hidden
// @Tags kabanata
// @Produce json
// @Security BearerAuth
// @Param id path int true "kabanata id"
// @Success 200 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /api/kabanatas/{id}/guesswords [get]
func (c *KabanataController) GuessWords(ctx *gin.Context) {
	id, ok := c.kabanataID(ctx)
	if !ok {
		return
	}

	words, err := c.KabanataService.GuessWords(id)
	if err != nil {
		if errors.Is(err, util.ErrKabanataNotFound) {
			util.NotFound(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, words)
}

// Videos godoc
// @Summary A chapter's lesson videos
// @Tags kabanata
// @Produce json
// @Security BearerAuth
// @Param id path int true "kabanata id"
// @Success 200 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /api/kabanatas/{id}/videos [get]
func (c *KabanataController) Videos(ctx *gin.Context) {
	id, ok := c.kabanataID(ctx)
	if !ok {
		return
	}

	videos, err := c.KabanataService.Videos(id)
	if err != nil {
		if errors.Is(err, util.ErrKabanataNotFound) {
			util.NotFound(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, videos)
}
