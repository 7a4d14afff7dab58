package config

import (
	_ "embed"
	"fmt"
	"os"
	"strings"
	"time"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	cueerrors "cuelang.org/go/cue/errors"
	"gopkg.in/yaml.v3"

	"github.com/projvar/cli/internal/hosting"
	"github.com/projvar/cli/internal/property"
)

//go:embed schema/config.cue
var configSchemaCUE []byte

// ValidationError represents a configuration validation error.
type ValidationError struct {
	Field   string
	Message string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidationErrors is a collection of validation errors.
type ValidationErrors []ValidationError

// Error implements the error interface.
func (e ValidationErrors) Error() string {
	if len(e) == 0 {
		return "no validation errors"
	}

	var sb strings.Builder
	sb.WriteString("config validation failed:\n")
	for _, err := range e {
		sb.WriteString(fmt.Sprintf("  %s: %s\n", err.Field, err.Message))
	}
	return sb.String()
}

// Validator validates configuration against the embedded CUE schema.
type Validator struct {
	ctx    *cue.Context
	schema cue.Value
}

// NewValidator creates a new configuration validator.
func NewValidator() (*Validator, error) {
	ctx := cuecontext.New()

	schema := ctx.CompileBytes(configSchemaCUE)
	if schema.Err() != nil {
		return nil, fmt.Errorf("compiling schema: %w", schema.Err())
	}

	def := schema.LookupPath(cue.ParsePath("#Config"))
	if !def.Exists() {
		return nil, fmt.Errorf("schema has no #Config definition")
	}

	return &Validator{
		ctx:    ctx,
		schema: def,
	}, nil
}

// ValidateFile validates a configuration file at the given path: first its
// structure against the schema, then the values the schema can not check.
func (v *Validator) ValidateFile(path string) error {
	expanded, err := ExpandPath(path)
	if err != nil {
		return fmt.Errorf("expanding config path: %w", err)
	}
	data, err := os.ReadFile(expanded)
	if err != nil {
		return fmt.Errorf("reading config file: %w", err)
	}
	if err := v.ValidateBytes(data); err != nil {
		return err
	}

	cfg, err := NewLoader().Load(expanded)
	if err != nil {
		return fmt.Errorf("loading config file: %w", err)
	}
	return v.Validate(cfg)
}

// ValidateBytes checks YAML config content against the schema.
func (v *Validator) ValidateBytes(data []byte) error {
	var doc map[string]any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return ValidationErrors{{Field: "(file)", Message: fmt.Sprintf("invalid YAML: %v", err)}}
	}
	if doc == nil {
		// empty file
		return nil
	}

	value := v.ctx.Encode(doc)
	if value.Err() != nil {
		return fmt.Errorf("encoding config: %w", value.Err())
	}

	unified := v.schema.Unify(value)
	if err := unified.Validate(cue.Concrete(true)); err != nil {
		var errs ValidationErrors
		for _, e := range cueerrors.Errors(err) {
			format, args := e.Msg()
			field := strings.Join(e.Path(), ".")
			if field == "" {
				field = "(root)"
			}
			errs = append(errs, ValidationError{
				Field:   field,
				Message: fmt.Sprintf(format, args...),
			})
		}
		if len(errs) == 0 {
			return err
		}
		return errs
	}
	return nil
}

// Validate checks the semantics of loaded values.
func (v *Validator) Validate(cfg *Config) error {
	var errs ValidationErrors

	prefix := property.DefaultKeyPrefix
	if cfg.KeyPrefix != nil {
		prefix = *cfg.KeyPrefix
	}
	for _, list := range []struct {
		field string
		keys  []string
	}{{"require", cfg.Require}, {"requireNot", cfg.RequireNot}} {
		for _, k := range list.keys {
			if _, err := property.ParseKey(prefix, k); err != nil {
				errs = append(errs, ValidationError{Field: list.field, Message: err.Error()})
			}
		}
	}

	if isTrue(cfg.RequireAll) && isTrue(cfg.RequireNone) {
		errs = append(errs, ValidationError{
			Field:   "requireAll",
			Message: "can not be combined with requireNone",
		})
	}

	if _, err := hosting.ParseType(cfg.HostingType); err != nil {
		errs = append(errs, ValidationError{Field: "hostingType", Message: err.Error()})
	}

	if _, err := ParseOverwrite(cfg.Overwrite); err != nil {
		errs = append(errs, ValidationError{Field: "overwrite", Message: err.Error()})
	}

	if cfg.DateFormat != "" && !isTimeLayout(cfg.DateFormat) {
		errs = append(errs, ValidationError{
			Field:   "dateFormat",
			Message: "must be a Go time layout such as \"2006-01-02 15:04:05\"",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// isTimeLayout reports whether a layout formats a reference time into
// something different from the layout itself, i.e. contains any directive.
func isTimeLayout(layout string) bool {
	ref := time.Date(2001, 2, 3, 4, 5, 6, 0, time.UTC)
	return ref.Format(layout) != layout
}

func isTrue(b *bool) bool {
	return b != nil && *b
}
