// Package httperr defines the JSON envelope for error replies.
package httperr

type errorBody struct {
	Message string `json:"message"`
}

// Response is the error envelope non-2xx JSON replies use. Status is
// carried out of band, only the message and optional detail go over
// the wire.
type Response struct {
	Status int       `json:"-"`
	Error  errorBody `json:"error"`
	Detail any       `json:"detail,omitempty"`
}

// New builds a Response for the given status and message.
func New(status int, msg string) Response {
	return Response{Status: status, Error: errorBody{Message: msg}}
}
