package handler

import (
	"github.com/eventforge/eventforge/internal/errdef"
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
)

// DataBinder binds a JSON or multipart form body into req and validates it. Any other content type is rejected
// before the body is read.
func DataBinder(c *gin.Context, req any) error {
	var b binding.Binding
	switch c.ContentType() {
	case binding.MIMEJSON:
		b = binding.JSON
	case binding.MIMEMultipartPOSTForm:
		b = binding.FormMultipart
	default:
		return errdef.NewUnsupportedMediaType("%s accepts %s or %s, got %q", c.FullPath(), binding.MIMEJSON, binding.MIMEMultipartPOSTForm, c.ContentType())
	}

	if err := c.ShouldBindWith(req, b); err != nil {
		return errdef.NewBadRequest("invalid request body: %v", err)
	}
	return nil
}
