package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"reflect"
	"regexp"
	"strings"
	"sync"
	"time"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/guttosm/orderpulse/internal/domain/dto"
	"github.com/guttosm/orderpulse/internal/logger"
	"github.com/guttosm/orderpulse/internal/query"
)

var (
	registerOnce sync.Once
	hhmmPattern  = regexp.MustCompile(`^([01]\d|2[0-3]):[0-5]\d$`)
	indexPattern = regexp.MustCompile(`\[(\d+)\]`)
)

// RegisterValidators installs the custom rules used by the request DTOs on gin's
// validator engine. It is idempotent.
//
// Rules:
//   - hhmm: a 24h "HH:MM" clock time.
//   - struct level: non-negative amounts, and from <= to, minA <= maxA, hFrom <= hTo
//     when both sides are present.
//
// A rule that cannot be registered is a startup misconfiguration and exits the process.
//
// Field names in errors are the JSON (or form) names clients send.
func RegisterValidators() {
	registerOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			return
		}
		if err := registerRules(v); err != nil {
			logger.L().Fatal().Err(err).Msg("failed to register request validators")
		}
	})
}

// registerRules is swapped in tests to exercise the startup failure path.
var registerRules = func(v *validator.Validate) error {
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		for _, tag := range []string{"json", "form"} {
			name := strings.SplitN(f.Tag.Get(tag), ",", 2)[0]
			if name != "" && name != "-" {
				return name
			}
		}
		return f.Name
	})
	if err := v.RegisterValidation("hhmm", func(fl validator.FieldLevel) bool {
		return hhmmPattern.MatchString(fl.Field().String())
	}); err != nil {
		return fmt.Errorf("register hhmm: %w", err)
	}
	v.RegisterStructValidation(validateFilterFields, dto.FilterFields{})
	v.RegisterStructValidation(validateTopRestaurants, dto.TopRestaurantsRequest{})
	v.RegisterStructValidation(validateRestaurantsQuery, dto.RestaurantsQuery{})
	return nil
}

func validateFilterFields(sl validator.StructLevel) {
	f := sl.Current().Interface().(dto.FilterFields)
	checkDates(sl, f.From, f.To)
	checkAmounts(sl, f.MinAmount, f.MaxAmount)
	if f.HourFrom != nil && f.HourTo != nil &&
		hhmmPattern.MatchString(*f.HourFrom) && hhmmPattern.MatchString(*f.HourTo) &&
		*f.HourFrom > *f.HourTo {
		sl.ReportError(f.HourTo, "hTo", "HourTo", "after_or_equal", "hFrom")
	}
}

func validateTopRestaurants(sl validator.StructLevel) {
	r := sl.Current().Interface().(dto.TopRestaurantsRequest)
	checkDates(sl, r.From, r.To)
	checkAmounts(sl, r.MinAmount, r.MaxAmount)
}

func validateRestaurantsQuery(sl validator.StructLevel) {
	q := sl.Current().Interface().(dto.RestaurantsQuery)
	checkDates(sl, q.From, q.To)
}

func checkDates(sl validator.StructLevel, from, to *string) {
	if from == nil || to == nil {
		return
	}
	f, errF := time.Parse(query.DateLayout, *from)
	t, errT := time.Parse(query.DateLayout, *to)
	if errF == nil && errT == nil && f.After(t) {
		sl.ReportError(to, "to", "To", "after_or_equal", "from")
	}
}

func checkAmounts(sl validator.StructLevel, minA, maxA *dto.Amount) {
	if minA != nil && minA.IsNegative() {
		sl.ReportError(minA, "minA", "MinAmount", "min", "0")
	}
	if maxA != nil && maxA.IsNegative() {
		sl.ReportError(maxA, "maxA", "MaxAmount", "min", "0")
	}
	if minA != nil && maxA != nil && maxA.LessThan(minA.Decimal) {
		sl.ReportError(maxA, "maxA", "MaxAmount", "gte", "minA")
	}
}

// bindError classifies a binding failure.
//
// Returns the per-field messages for input that was well-formed but invalid
// (rendered as 422), or nil when the payload could not be decoded at all (400).
func bindError(err error) map[string][]string {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		fields := make(map[string][]string, len(verrs))
		for _, fe := range verrs {
			key := fieldKey(fe)
			fields[key] = append(fields[key], fieldMessage(key, fe))
		}
		return fields
	}
	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) && typeErr.Field != "" {
		return map[string][]string{
			typeErr.Field: {fmt.Sprintf("The %s field must be a %s.", typeErr.Field, jsonKind(typeErr.Type))},
		}
	}
	return nil
}

// isEmptyBody reports whether decoding failed only because there was no body.
func isEmptyBody(err error) bool {
	return errors.Is(err, io.EOF)
}

// fieldKey turns "restaurant_ids[2]" into "restaurant_ids.2".
func fieldKey(fe validator.FieldError) string {
	return indexPattern.ReplaceAllString(fe.Field(), ".$1")
}

func fieldMessage(field string, fe validator.FieldError) string {
	label := strings.ReplaceAll(field, "_", " ")
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("The %s field is required.", label)
	case "datetime":
		return fmt.Sprintf("The %s field must match the format Y-m-d.", label)
	case "hhmm":
		return fmt.Sprintf("The %s field must match the format H:i.", label)
	case "min":
		return fmt.Sprintf("The %s field must be at least %s.", label, fe.Param())
	case "max":
		return fmt.Sprintf("The %s field must not be greater than %s.", label, fe.Param())
	case "gt":
		return fmt.Sprintf("The %s field must be greater than %s.", label, fe.Param())
	case "gte":
		return fmt.Sprintf("The %s field must be greater than or equal to %s.", label, fe.Param())
	case "after_or_equal":
		return fmt.Sprintf("The %s field must be a value after or equal to %s.", label, fe.Param())
	case "oneof":
		return fmt.Sprintf("The selected %s is invalid.", label)
	default:
		return fmt.Sprintf("The %s field is invalid.", label)
	}
}

func jsonKind(t reflect.Type) string {
	if t == nil {
		return "valid value"
	}
	switch t.Kind() {
	case reflect.Float32, reflect.Float64, reflect.Int, reflect.Int64, reflect.Int32:
		return "number"
	case reflect.String:
		return "string"
	case reflect.Slice, reflect.Array:
		return "list"
	default:
		return "valid value"
	}
}
