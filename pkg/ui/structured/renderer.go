// Package structured renders results as YAML or TOML documents.
//
// YAML accepts any result. TOML only renders results that carry a
// descriptor, and emits the descriptor document itself so the output can
// be saved and applied as-is.
package structured

import (
	"fmt"
	"io"

	"github.com/arthur-debert/deskset/pkg/commands/initialize"
	"github.com/arthur-debert/deskset/pkg/commands/show"
	"github.com/arthur-debert/deskset/pkg/descriptor"
	"github.com/arthur-debert/deskset/pkg/errors"
	toml "github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

type errorDoc struct {
	Error   string                 `yaml:"error" toml:"error"`
	Code    string                 `yaml:"code" toml:"code"`
	Details map[string]interface{} `yaml:"details,omitempty" toml:"details,omitempty"`
}

func newErrorDoc(err error) errorDoc {
	return errorDoc{
		Error:   err.Error(),
		Code:    string(errors.GetErrorCode(err)),
		Details: errors.GetErrorDetails(err),
	}
}

// YAMLRenderer writes results as YAML documents.
type YAMLRenderer struct {
	output io.Writer
}

func NewYAML(w io.Writer) *YAMLRenderer {
	return &YAMLRenderer{output: w}
}

func (r *YAMLRenderer) encode(v interface{}) error {
	enc := yaml.NewEncoder(r.output)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return errors.Wrap(err, errors.ErrInternal, "failed to encode yaml")
	}
	return enc.Close()
}

func (r *YAMLRenderer) RenderResult(result interface{}) error {
	return r.encode(result)
}

func (r *YAMLRenderer) RenderError(err error) error {
	return r.encode(newErrorDoc(err))
}

func (r *YAMLRenderer) RenderMessage(msg string) error {
	return r.encode(map[string]string{"message": msg})
}

// TOMLRenderer writes descriptor documents as TOML.
type TOMLRenderer struct {
	output io.Writer
}

func NewTOML(w io.Writer) *TOMLRenderer {
	return &TOMLRenderer{output: w}
}

func descriptorOf(result interface{}) *descriptor.Descriptor {
	switch v := result.(type) {
	case *descriptor.Descriptor:
		return v
	case *show.ShowResult:
		return v.Descriptor
	case *initialize.InitResult:
		return v.Descriptor
	}
	return nil
}

func (r *TOMLRenderer) RenderResult(result interface{}) error {
	d := descriptorOf(result)
	if d == nil {
		return errors.Newf(errors.ErrInvalidInput, "toml output is only available for descriptors, got %T", result)
	}
	data, err := d.Marshal()
	if err != nil {
		return err
	}
	_, err = r.output.Write(data)
	return err
}

func (r *TOMLRenderer) RenderError(err error) error {
	data, merr := toml.Marshal(newErrorDoc(err))
	if merr != nil {
		return errors.Wrap(merr, errors.ErrInternal, "failed to encode toml")
	}
	_, werr := r.output.Write(data)
	return werr
}

func (r *TOMLRenderer) RenderMessage(msg string) error {
	_, err := fmt.Fprintf(r.output, "message = %q\n", msg)
	return err
}
