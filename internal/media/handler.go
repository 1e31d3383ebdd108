package media

import (
	"errors"
	"mime/multipart"
	"net/http"

	"github.com/LeDuoc95/BE-FEDUU/internal/dto"
	"github.com/LeDuoc95/BE-FEDUU/internal/middleware"
	"github.com/LeDuoc95/BE-FEDUU/pkg/response"

	"github.com/gin-gonic/gin"
)

type MediaHandler struct {
	mediaService *MediaService
}

func NewMediaHandler(mediaService *MediaService) *MediaHandler {
	return &MediaHandler{mediaService: mediaService}
}

// formFile returns nil when field is absent so the service reports it
func formFile(c *gin.Context, field string) (*multipart.FileHeader, bool) {
	fh, err := c.FormFile(field)
	if err == nil {
		return fh, true
	}
	if errors.Is(err, http.ErrMissingFile) || errors.Is(err, http.ErrNotMultipart) {
		return nil, true
	}
	dto.ErrorResponse(c, response.NewBusinessError(
		response.WithErrorCode(response.ParseError),
		response.WithErrorMessage("invalid multipart body: "+err.Error()),
	))
	return nil, false
}

// UploadPhoto
// @Summary Upload a photo
// @Tags user
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param imagesUser formData file true "image"
// @Success 201 {object} response.Response{data=PhotoView}
// @Failure 400 {object} response.Response
// @Router /user/upload-images [post]
func (h *MediaHandler) UploadPhoto(c *gin.Context) {
	fh, ok := formFile(c, PhotoField)
	if !ok {
		return
	}

	view, err := h.mediaService.UploadPhoto(c.Request.Context(), middleware.CurrentUser(c), fh)
	if err != nil {
		dto.ErrorResponse(c, err)
		return
	}
	dto.Created(c, view)
}

// ListPhotos
// @Summary List my photos
// @Tags user
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response{data=[]PhotoView}
// @Router /user/photo [get]
func (h *MediaHandler) ListPhotos(c *gin.Context) {
	views, err := h.mediaService.ListPhotos(c.Request.Context(), middleware.CurrentUser(c))
	if err != nil {
		dto.ErrorResponse(c, err)
		return
	}
	dto.SuccessResponse(c, views)
}

// UploadVideo
// @Summary Upload a lesson video
// @Tags course
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param file formData file true "video"
// @Param title formData string false "title"
// @Success 201 {object} response.Response{data=VideoView}
// @Failure 400 {object} response.Response
// @Router /course/upload-videos [post]
func (h *MediaHandler) UploadVideo(c *gin.Context) {
	fh, ok := formFile(c, VideoField)
	if !ok {
		return
	}

	view, err := h.mediaService.UploadVideo(c.Request.Context(), middleware.CurrentUser(c), fh, c.PostForm("title"))
	if err != nil {
		dto.ErrorResponse(c, err)
		return
	}
	dto.Created(c, view)
}
