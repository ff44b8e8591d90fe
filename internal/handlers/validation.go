package handlers

import (
	"fmt"
	"sync"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

var registerValidatorsOnce sync.Once

// nonNegativeDecimal accepts decimal.Decimal values that are zero or positive.
func nonNegativeDecimal(fl validator.FieldLevel) bool {
	value, ok := fl.Field().Interface().(decimal.Decimal)
	if !ok {
		return false
	}
	return !value.IsNegative()
}

// RegisterValidators installs the custom binding rules on gin's validator engine.
func RegisterValidators() error {
	var err error
	registerValidatorsOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			err = fmt.Errorf("unexpected validator engine %T", binding.Validator.Engine())
			return
		}
		if regErr := v.RegisterValidation("nonnegative_decimal", nonNegativeDecimal); regErr != nil {
			err = fmt.Errorf("failed to register 'nonnegative_decimal': %w", regErr)
		}
	})
	return err
}
