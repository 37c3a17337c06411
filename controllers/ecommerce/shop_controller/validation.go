package shop_controller

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/Mininormi/mininormi1210/models"
	"github.com/Mininormi/mininormi1210/services/fitment"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

var registerOnce sync.Once

// RegisterValidators adds the shop rules to gin's validator. Safe to call
// more than once.
func RegisterValidators() {
	registerOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			return
		}

		v.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("form"), ",", 2)[0]
			if name == "" || name == "-" {
				return fld.Name
			}
			return name
		})

		_ = v.RegisterValidation("axle", func(fl validator.FieldLevel) bool {
			_, err := fitment.ParseAxle(fl.Field().String())
			return err == nil
		})

		v.RegisterStructValidation(validateRanges, WheelFilterQuery{})
	})
}

// validateRanges rejects min > max for every range filter.
func validateRanges(sl validator.StructLevel) {
	f := sl.Current().Interface().(WheelFilterQuery)

	if decimalAbove(f.MinPrice, f.MaxPrice) {
		sl.ReportError(f.MaxPrice, "max_price", "MaxPrice", "gtefield", "min_price")
	}
	if decimalAbove(f.MinWidth, f.MaxWidth) {
		sl.ReportError(f.MaxWidth, "max_width", "MaxWidth", "gtefield", "min_width")
	}
	if f.MinOffset != nil && f.MaxOffset != nil && *f.MinOffset > *f.MaxOffset {
		sl.ReportError(f.MaxOffset, "max_offset", "MaxOffset", "gtefield", "min_offset")
	}
}

func decimalAbove(lo, hi *string) bool {
	if lo == nil || hi == nil {
		return false
	}
	l, err1 := decimal.NewFromString(*lo)
	h, err2 := decimal.NewFromString(*hi)
	return err1 == nil && err2 == nil && l.GreaterThan(h)
}

// fieldErrors turns a binding error into per-field messages. Errors that are
// not validation failures (unparseable numbers, bad booleans) become one entry.
func fieldErrors(err error) []models.FieldError {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return []models.FieldError{{Field: "query", Message: err.Error()}}
	}

	out := make([]models.FieldError, 0, len(verrs))
	for _, fe := range verrs {
		out = append(out, models.FieldError{Field: fe.Field(), Message: describe(fe)})
	}
	return out
}

func describe(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "min":
		return fmt.Sprintf("must be at least %s", fe.Param())
	case "max":
		return fmt.Sprintf("must be at most %s", fe.Param())
	case "numeric":
		return "must be a number"
	case "axle":
		return "must be one of front, rear, both"
	case "gtefield":
		return fmt.Sprintf("must not be less than %s", fe.Param())
	}
	return "is invalid"
}
