package config

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// ValidationError collects every rule a Config breaks.
type ValidationError struct {
	Problems []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("config: %d problem(s):\n  %s", len(e.Problems), strings.Join(e.Problems, "\n  "))
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		return keyOf(f)
	})
	v.RegisterStructValidation(labelFits, Config{})
	return v
}

func keyOf(f reflect.StructField) string {
	name, _, _ := strings.Cut(f.Tag.Get("toml"), ",")
	if name == "" || name == "-" {
		return f.Name
	}
	return name
}

// labelFits rejects a label band that runs past the top of the vial.
func labelFits(sl validator.StructLevel) {
	c := sl.Current().Interface().(Config)
	if c.LabelOffsetFromBottom+c.LabelHeight > c.VialHeight {
		sl.ReportError(c.LabelHeight, "label_height", "LabelHeight", "labelfit", "")
	}
	if c.LabelOffsetFromBottom < 0 {
		sl.ReportError(c.LabelOffsetFromBottom, "label_offset_from_bottom", "LabelOffsetFromBottom", "gte", "0")
	}
}

// Validate checks ranges and cross-field consistency. Load does not call
// it; the build path relies on the per-part derivation checks instead.
func Validate(c *Config) error {
	err := validate.Struct(c)
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return fmt.Errorf("config: validate: %w", err)
	}
	problems := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		problems = append(problems, describe(c, fe))
	}
	return &ValidationError{Problems: problems}
}

func describe(c *Config, fe validator.FieldError) string {
	key := fe.Field()
	switch fe.Tag() {
	case "gte":
		if key == "wall_thickness" {
			return fmt.Sprintf("%s: %vmm is below the printable minimum of %smm", key, fe.Value(), fe.Param())
		}
		return fmt.Sprintf("%s: %vmm is below the minimum of %smm", key, fe.Value(), fe.Param())
	case "lte":
		return fmt.Sprintf("%s: %vmm exceeds the maximum of %smm", key, fe.Value(), fe.Param())
	case "ltfield":
		return fmt.Sprintf("%s (%vmm) must be smaller than %s", key, fe.Value(), fieldKey(fe.Param()))
	case "gtfield":
		return fmt.Sprintf("%s (%vmm) must be larger than %s", key, fe.Value(), fieldKey(fe.Param()))
	case "labelfit":
		return fmt.Sprintf("label_offset_from_bottom + label_height (%vmm) exceeds vial_height (%vmm)",
			c.LabelOffsetFromBottom+c.LabelHeight, c.VialHeight)
	default:
		return fmt.Sprintf("%s: failed %q check", key, fe.Tag())
	}
}

// fieldKey maps a Go field name used in a cross-field rule to its key.
func fieldKey(goName string) string {
	if f, ok := reflect.TypeOf(Config{}).FieldByName(goName); ok {
		return keyOf(f)
	}
	return goName
}
