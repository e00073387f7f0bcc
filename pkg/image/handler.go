package image

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"path/filepath"

	"github.com/eventforge/eventforge/internal/errdef"
	"github.com/eventforge/eventforge/internal/handler"
	"github.com/eventforge/eventforge/pkg/message"
	"github.com/eventforge/eventforge/pkg/model"
	"github.com/gin-gonic/gin"
)

func NewHandler(imageService imageService) Handler {
	return Handler{imageService}
}

type Handler struct {
	imageService imageService
}

type imageService interface {
	Upload(ctx context.Context, user *model.User, name string, kind string, body io.Reader, size int64) (*model.Image, error)
	FindByName(ctx context.Context, name string) (*model.Image, error)
	Download(ctx context.Context, name string, dst io.Writer) error
	Delete(ctx context.Context, user *model.User, name string) (string, error)
}

type uploadImageRequest struct {
	Kind string `form:"kind" binding:"omitempty,oneOf=logo cover event"`
}

// Upload image
func (h Handler) Upload(c *gin.Context) {
	// swagger:route POST /images uploadImage
	//
	// Upload image
	//
	// Upload a jpeg or png image. The file name has to be unique.
	//
	// security:
	//   oauth2:
	//
	// responses:
	//   201: Image
	//   400: Error
	//   401: Error
	//   403: Error
	//   409: Error
	user, err := handler.GetUserFromContext(c)
	if err != nil {
		_ = c.Error(err)
		return
	}

	file, err := c.FormFile("file")
	if err != nil {
		_ = c.Error(errdef.NewBadRequest("%s", message.Get("image.missing")))
		return
	}

	var request uploadImageRequest
	if err := c.ShouldBind(&request); err != nil {
		_ = c.Error(errdef.NewBadRequest("error binding form: %v", err))
		return
	}

	f, err := file.Open()
	if err != nil {
		_ = c.Error(err)
		return
	}
	defer f.Close()

	image, err := h.imageService.Upload(c.Request.Context(), user, filepath.Base(file.Filename), request.Kind, f, file.Size)
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusCreated, image)
}

// Download image
func (h Handler) Download(c *gin.Context) {
	// swagger:route GET /images/{name} downloadImage
	//
	// Download image
	//
	// Download an image by its name
	//
	// responses:
	//   200: DownloadImageResponse
	//   404: Error
	name := c.Param("name")
	image, err := h.imageService.FindByName(c.Request.Context(), name)
	if err != nil {
		_ = c.Error(err)
		return
	}

	var buf bytes.Buffer
	err = h.imageService.Download(c.Request.Context(), name, &buf)
	if err != nil {
		_ = c.Error(err)
		return
	}

	contentType := image.ContentType
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	c.Data(http.StatusOK, contentType, buf.Bytes())
}

// Delete image
func (h Handler) Delete(c *gin.Context) {
	// swagger:route DELETE /images/{name} deleteImage
	//
	// Delete image
	//
	// Delete an image and its stored file. Organisations may only delete their own images.
	//
	// security:
	//   oauth2:
	//
	// responses:
	//   202: Message
	//   401: Error
	//   403: Error
	//   404: Error
	user, err := handler.GetUserFromContext(c)
	if err != nil {
		_ = c.Error(err)
		return
	}

	msg, err := h.imageService.Delete(c.Request.Context(), user, c.Param("name"))
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusAccepted, handler.Message{Message: msg})
}
