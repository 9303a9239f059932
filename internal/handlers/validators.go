package handlers

import (
	"fmt"
	"reflect"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

// RegisterValidators teaches gin's validator about decimal.Decimal fields and
// adds the "dgt0" (decimal greater than zero) tag.
func RegisterValidators() error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return fmt.Errorf("unexpected validator engine %T", binding.Validator.Engine())
	}

	// Struct fields are skipped by tag validation unless they resolve to a
	// scalar, so decimals are validated through their float value.
	v.RegisterCustomTypeFunc(func(field reflect.Value) interface{} {
		if d, ok := field.Interface().(decimal.Decimal); ok {
			return d.InexactFloat64()
		}
		return nil
	}, decimal.Decimal{})

	if err := v.RegisterValidation("dgt0", decimalGreaterThanZero); err != nil {
		return fmt.Errorf("failed to register 'dgt0': %w", err)
	}
	return nil
}

func decimalGreaterThanZero(fl validator.FieldLevel) bool {
	field := fl.Field()
	switch field.Kind() {
	case reflect.Float32, reflect.Float64:
		return field.Float() > 0
	case reflect.String:
		d, err := decimal.NewFromString(field.String())
		return err == nil && d.IsPositive()
	}
	if d, ok := field.Interface().(decimal.Decimal); ok {
		return d.IsPositive()
	}
	return false
}
