package service

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"time"

	"github.com/Eursukkul/restaurant-ledger/internal/channel"
	"github.com/go-playground/validator/v10"
)

const dateLayout = "2006-01-02"

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// validateInput runs struct tag validation and folds the result into a ValidationError.
func validateInput(in any) error {
	err := validate.Struct(in)
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return &ValidationError{Msg: err.Error()}
	}

	var missing []string
	var problems []string
	for _, fe := range fieldErrs {
		if fe.Tag() == "required" {
			missing = append(missing, fe.Field())
			continue
		}
		problems = append(problems, describe(fe))
	}
	if len(missing) > 0 {
		return missingFields(missing...)
	}
	return &ValidationError{Msg: strings.Join(problems, "; ")}
}

func describe(fe validator.FieldError) string {
	switch fe.Tag() {
	case "gt":
		return fmt.Sprintf("%s must be greater than %s", fe.Field(), fe.Param())
	case "min":
		return fmt.Sprintf("%s must contain at least %s entries", fe.Field(), fe.Param())
	case "datetime":
		return fmt.Sprintf("%s must be a date in YYYY-MM-DD format", fe.Field())
	default:
		return fmt.Sprintf("%s is invalid (%s)", fe.Field(), fe.Tag())
	}
}

func parseDate(date string, loc *time.Location) (time.Time, error) {
	d, err := time.ParseInLocation(dateLayout, date, loc)
	if err != nil {
		return time.Time{}, &ValidationError{
			Fields: []string{"date"},
			Msg:    fmt.Sprintf("date %q must be in YYYY-MM-DD format", date),
		}
	}
	return d, nil
}

// requireNotPast rejects calendar days before today in loc.
func requireNotPast(date string, now time.Time, loc *time.Location) error {
	d, err := parseDate(date, loc)
	if err != nil {
		return err
	}
	now = now.In(loc)
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, loc)
	if d.Before(today) {
		return &ValidationError{
			Fields: []string{"date"},
			Msg:    "reservation date must be today or a future date",
		}
	}
	return nil
}

func parseChannel(v string) (channel.Channel, error) {
	ch, err := channel.Parse(v)
	if err != nil {
		return "", &ValidationError{Fields: []string{"channel"}, Msg: err.Error(), Cause: channel.ErrUnknownChannel}
	}
	return ch, nil
}
