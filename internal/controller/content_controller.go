package controller

import (
	"errors"
	"rizhub_backend/internal/service"
	"rizhub_backend/internal/util"
	"strconv"

	"github.com/gin-gonic/gin"
)

// ContentController is admin-only; the router guards it with the role gate.
type ContentController struct {
	ContentService *service.ContentService
}

func NewContentController(contentService *service.ContentService) *ContentController {
	return &ContentController{ContentService: contentService}
}

// CreateKabanata godoc
// @Summary Create a chapter
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body service.CreateKabanataRequest true "chapter fields"
// @Success 201 {object} util.Response
// @Router /api/admin/kabanatas [post]
func (c *ContentController) CreateKabanata(ctx *gin.Context) {
	var req service.CreateKabanataRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	kabanata, err := c.ContentService.CreateKabanata(req)
	if err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	util.Created(ctx, kabanata)
}

// CreateQuiz godoc
// @Summary Add a quiz question to a chapter
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body service.CreateQuizRequest true "quiz fields"
// @Success 201 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /api/admin/quizzes [post]
func (c *ContentController) CreateQuiz(ctx *gin.Context) {
	var req service.CreateQuizRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	quiz, err := c.ContentService.CreateQuiz(req)
	if err != nil {
		if errors.Is(err, util.ErrKabanataNotFound) {
			util.NotFound(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Created(ctx, quiz)
}

// CreateGuessWord godoc
// @Summary Add a word-guess round to a chapter
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body service.CreateGuessWordRequest true "word-guess fields"
// @Success 201 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /api/admin/guesswords [post]
func (c *ContentController) CreateGuessWord(ctx *gin.Context) {
	var req service.CreateGuessWordRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	word, err := c.ContentService.CreateGuessWord(req)
	if err != nil {
		if errors.Is(err, util.ErrKabanataNotFound) || errors.Is(err, util.ErrGuessWordNotFound) {
			util.NotFound(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Created(ctx, word)
}

// CreateCharacter godoc
// @Summary Add a character for the word-guess game
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body service.CreateCharacterRequest true "character fields"
// @Success 201 {object} util.Response
// @Router /api/admin/characters [post]
func (c *ContentController) CreateCharacter(ctx *gin.Context) {
	var req service.CreateCharacterRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	character, err := c.ContentService.CreateCharacter(req)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Created(ctx, character)
}

// CreateGalleryImage godoc
// @Summary Add a gallery image to a chapter
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body service.CreateGalleryImageRequest true "image fields"
// @Success 201 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /api/admin/gallery/upload [post]
func (c *ContentController) CreateGalleryImage(ctx *gin.Context) {
	var req service.CreateGalleryImageRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	image, err := c.ContentService.CreateGalleryImage(req)
	if err != nil {
		if errors.Is(err, util.ErrKabanataNotFound) {
			util.NotFound(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Created(ctx, image)
}

// UploadVideo godoc
// @Summary Upload a lesson video for a chapter
// @Description Probes the file for duration, grabs a thumbnail frame and
// @Description pushes both to storage.
// @Tags admin
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param kabanata_id formData int true "kabanata id"
// @Param title formData string true "video title"
// @Param video formData file true "video file"
// @Success 201 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /api/admin/videos/upload [post]
func (c *ContentController) UploadVideo(ctx *gin.Context) {
	kabanataID, err := strconv.ParseUint(ctx.PostForm("kabanata_id"), 10, 32)
	if err != nil {
		util.BadRequest(ctx, "invalid kabanata id")
		return
	}
	title := ctx.PostForm("title")
	if title == "" {
		util.BadRequest(ctx, "title is required")
		return
	}
	file, err := ctx.FormFile("video")
	if err != nil {
		util.BadRequest(ctx, "video file is required")
		return
	}

	video, err := c.ContentService.UploadVideo(ctx.Request.Context(), uint(kabanataID), title, file)
	if err != nil {
		if errors.Is(err, util.ErrKabanataNotFound) {
			util.NotFound(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Created(ctx, video)
}
