package handler

// Message is the body of responses which only carry a localized message.
// swagger:model
type Message struct {
	Message string `json:"message"`
}
