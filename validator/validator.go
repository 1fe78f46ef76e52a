package validator

import (
	"reflect"
	"strconv"
	"strings"
	"sync"

	"github.com/NethermindEth/t9n/core/felt"
	"github.com/go-playground/validator/v10"
)

var (
	once sync.Once
	v    *validator.Validate
)

// validateFeltUint64 checks that a felt, seen through its string form, fits in 64 bits
func validateFeltUint64(fl validator.FieldLevel) bool {
	digits, ok := strings.CutPrefix(fl.Field().String(), "0x")
	if !ok {
		return false
	}
	_, err := strconv.ParseUint(digits, 16, 64)
	return err == nil
}

// Validator returns a singleton that can be used to validate wire transactions
func Validator() *validator.Validate {
	once.Do(func() {
		v = validator.New()

		if err := v.RegisterValidation("felt_uint64", validateFeltUint64); err != nil {
			panic("failed to register validation: " + err.Error())
		}

		// Register these types to use their string representation for validation
		// purposes
		v.RegisterCustomTypeFunc(func(field reflect.Value) any {
			switch f := field.Interface().(type) {
			case felt.Felt:
				return f.String()
			case *felt.Felt:
				return f.String()
			}
			panic("not a felt")
		}, felt.Felt{}, &felt.Felt{})
	})
	return v
}
