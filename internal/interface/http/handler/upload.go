package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	appupload "github.com/xiebiao/mall/internal/application/upload"
	apperrors "github.com/xiebiao/mall/pkg/errors"
	"github.com/xiebiao/mall/pkg/response"
)

// UploadHandler 文件上传接口
type UploadHandler struct {
	uploadUseCase *appupload.UploadUseCase
	maxBodyBytes  int64
}

// NewUploadHandler 创建上传处理器，maxBodyBytes限制整个multipart请求体
func NewUploadHandler(uploadUseCase *appupload.UploadUseCase, maxBodyBytes int64) *UploadHandler {
	return &UploadHandler{uploadUseCase: uploadUseCase, maxBodyBytes: maxBodyBytes}
}

// Image 上传图片
// @Summary      上传图片
// @Description  jpg/jpeg/png/gif/webp，最大10MB，文件内容须与扩展名一致
// @Tags         上传
// @Accept       multipart/form-data
// @Produce      json
// @Security     BearerAuth
// @Param        file formData file true "图片"
// @Success      200 {object} appupload.Response
// @Failure      400 {object} response.ErrorBody
// @Failure      413 {object} response.ErrorBody
// @Router       /uploads/image [post]
func (h *UploadHandler) Image(c *gin.Context) {
	h.upload(c, appupload.KindImage)
}

// Video 上传视频
// @Summary      上传视频
// @Description  mp4/webm/mov，最大100MB
// @Tags         上传
// @Accept       multipart/form-data
// @Produce      json
// @Security     BearerAuth
// @Param        file formData file true "视频"
// @Success      200 {object} appupload.Response
// @Failure      400 {object} response.ErrorBody
// @Failure      413 {object} response.ErrorBody
// @Router       /uploads/video [post]
func (h *UploadHandler) Video(c *gin.Context) {
	h.upload(c, appupload.KindVideo)
}

func (h *UploadHandler) upload(c *gin.Context, kind appupload.Kind) {
	if h.maxBodyBytes > 0 {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.maxBodyBytes)
	}

	fh, err := c.FormFile("file")
	if err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			response.Error(c, appupload.ErrFileTooLarge)
			return
		}
		response.Error(c, apperrors.BadRequest("请选择要上传的文件"))
		return
	}

	file, err := fh.Open()
	if err != nil {
		response.Error(c, apperrors.Wrap(err, "读取上传文件失败"))
		return
	}
	defer file.Close()

	result, err := h.uploadUseCase.Execute(c.Request.Context(), appupload.Request{
		Kind:     kind,
		Filename: fh.Filename,
		Size:     fh.Size,
		Body:     file,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}
