package importer

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
)

var (
	validateOnce sync.Once
	validate     *validator.Validate
)

func schemaValidator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
		validate.RegisterTagNameFunc(func(f reflect.StructField) string {
			name := strings.SplitN(f.Tag.Get("yaml"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			return name
		})
	})
	return validate
}

// ValidateImportSchema checks the schema before conversion and returns every
// problem found.
func ValidateImportSchema(schema *ImportSchema) []error {
	var errs []error

	if err := schemaValidator().Struct(schema); err != nil {
		var verrs validator.ValidationErrors
		if !errors.As(err, &verrs) {
			return []error{err}
		}
		for _, fe := range verrs {
			errs = append(errs, fieldError(fe))
		}
	}

	for i, l := range schema.Estimate.Lines {
		if l.Quantity == "" {
			continue
		}
		if _, err := ParseDecimal(l.Quantity); err != nil {
			errs = append(errs, fmt.Errorf("estimate.lines[%d].quantity: %w", i, err))
		}
	}
	if pl := schema.PriceList; pl != nil {
		for i, e := range pl.Entries {
			for name, v := range map[string]string{"wage": e.Wage, "labor_burden": e.LaborBurden, "labor_overhead": e.LaborOverhead} {
				if v == "" {
					continue
				}
				if _, err := ParseDecimal(v); err != nil {
					errs = append(errs, fmt.Errorf("price_list.entries[%d].%s: %w", i, name, err))
				}
			}
		}
	}
	return errs
}

// fieldError renders a validator failure as "path: message", with the
// path in fixture key names minus the root struct.
func fieldError(fe validator.FieldError) error {
	path := fe.Namespace()
	if i := strings.Index(path, "."); i >= 0 {
		path = path[i+1:]
	}
	switch fe.Tag() {
	case "required":
		return fmt.Errorf("%s is required", path)
	case "gt":
		return fmt.Errorf("%s must be greater than %s", path, fe.Param())
	case "min":
		return fmt.Errorf("%s must have at least %s item(s)", path, fe.Param())
	case "oneof":
		return fmt.Errorf("%s: invalid value %q (expected one of %s)", path, fe.Value(), fe.Param())
	case "datetime":
		return fmt.Errorf("%s: invalid date format %q (expected YYYY-MM-DD)", path, fe.Value())
	default:
		return fmt.Errorf("%s failed %s validation", path, fe.Tag())
	}
}
