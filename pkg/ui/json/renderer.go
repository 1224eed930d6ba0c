// Package json provides JSON output for machine consumption
package json

import (
	"encoding/json"
	"io"

	"github.com/arthur-debert/deskset/pkg/errors"
)

// Renderer writes results as indented JSON documents.
type Renderer struct {
	encoder *json.Encoder
}

func New(w io.Writer) *Renderer {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return &Renderer{encoder: enc}
}

func (r *Renderer) RenderResult(result interface{}) error {
	return r.encoder.Encode(result)
}

type errorObject struct {
	Error   string                 `json:"error"`
	Code    errors.ErrorCode       `json:"code"`
	Details map[string]interface{} `json:"details,omitempty"`
}

func (r *Renderer) RenderError(err error) error {
	return r.encoder.Encode(errorObject{
		Error:   err.Error(),
		Code:    errors.GetErrorCode(err),
		Details: errors.GetErrorDetails(err),
	})
}

func (r *Renderer) RenderMessage(msg string) error {
	return r.encoder.Encode(map[string]string{"message": msg})
}
