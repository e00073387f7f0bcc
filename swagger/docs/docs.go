//go:generate swagger generate spec -w ../.. -o ../swagger.yaml --scan-models

// Package docs holds the swagger definitions shared by all routes.
package docs

import "github.com/eventforge/eventforge/internal/handler"

// swagger:response
type Error struct {
	// The error message
	//in: body
	Message string
}

// swagger:response Message
type _ struct {
	// in: body
	Body handler.Message
}
