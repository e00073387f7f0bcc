package image

import (
	"os"

	"github.com/eventforge/eventforge/pkg/model"
)

// swagger:parameters downloadImage deleteImage
type _ struct {
	// in: path
	// required: true
	Name string `json:"name"`
}

// swagger:parameters uploadImage
type _ struct {
	// Image file, jpeg or png
	// in: formData
	// required: true
	// swagger:file
	File *os.File `json:"file"`

	// Image kind, one of logo, cover or event
	// in: formData
	Kind string `json:"kind"`
}

// swagger:response Image
type _ struct {
	// in: body
	Body model.Image
}

// swagger:response DownloadImageResponse
type _ struct {
	// in: body
	File []byte
}
