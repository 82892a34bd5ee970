package analysis

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/KaramelBytes/statloom-cli/internal/stats"
	"github.com/KaramelBytes/statloom-cli/internal/timeseries"
)

// Kind selects which engine a Request runs.
type Kind string

const (
	KindColumns    Kind = "columns"
	KindDescribe   Kind = "describe"
	KindCorrelate  Kind = "correlate"
	KindRegress    Kind = "regress"
	KindTimeSeries Kind = "timeseries"
	KindMatrix     Kind = "matrix"
	KindFit        Kind = "fit"
)

// ErrUnknownColumn is returned when a column reference matches no header.
var ErrUnknownColumn = errors.New("unknown column")

// Request names the analysis to run and the columns it reads. Columns are
// header names (case-insensitive) or 0-based indices.
type Request struct {
	Kind    Kind     `json:"kind" validate:"required,oneof=columns describe correlate regress timeseries matrix fit"`
	Column  string   `json:"column" validate:"required_if=Kind describe,required_if=Kind timeseries,required_if=Kind fit"`
	X       string   `json:"x" validate:"required_if=Kind correlate,required_if=Kind regress"`
	Y       string   `json:"y" validate:"required_if=Kind correlate,required_if=Kind regress"`
	Columns []string `json:"columns" validate:"omitempty,dive,required"`

	// Date optionally labels a time series; rows without a date are dropped.
	Date string `json:"date,omitempty" validate:"excluded_unless=Kind timeseries"`
}

// Options controls analysis behavior. Zero values select the defaults of the
// underlying engines, except Horizon where 0 disables the forecast.
type Options struct {
	// Window is the moving-average window.
	Window int `json:"window" validate:"gte=0"`
	// Alpha is the EMA smoothing factor; 0 derives it from the series length.
	Alpha float64 `json:"alpha" validate:"gte=0,lte=1"`
	// Horizon is the number of forecast points.
	Horizon int `json:"horizon" validate:"gte=0"`
	// MaxLag caps the autocorrelation lags.
	MaxLag int `json:"maxLag" validate:"gte=0"`
	// Decimals is the display precision.
	Decimals int `json:"decimals" validate:"gte=0,lte=12"`

	Logger *zap.Logger `json:"-" validate:"-"`
}

// DefaultOptions returns reasonable defaults for dataset analysis.
func DefaultOptions() Options {
	return Options{
		Window:   timeseries.DefaultWindow,
		Horizon:  timeseries.DefaultHorizon,
		MaxLag:   timeseries.DefaultMaxLag,
		Decimals: stats.DefaultDecimals,
	}
}

// FieldError describes one rejected field.
type FieldError struct {
	Field   string
	Message string
}

// ValidationError reports every field that failed validation.
type ValidationError struct {
	Fields []FieldError
	Err    error
}

func (e *ValidationError) Error() string {
	msgs := make([]string, len(e.Fields))
	for i, f := range e.Fields {
		msgs[i] = f.Message
	}
	return "invalid request: " + strings.Join(msgs, "; ")
}

func (e *ValidationError) Unwrap() error { return e.Err }

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// Validate checks the request and options, returning a *ValidationError.
func Validate(req Request, opt Options) error {
	var fields []FieldError
	var last error
	for _, v := range []any{req, opt} {
		err := validate.Struct(v)
		if err == nil {
			continue
		}
		var verrs validator.ValidationErrors
		if !errors.As(err, &verrs) {
			return fmt.Errorf("validate: %w", err)
		}
		for _, fe := range verrs {
			fields = append(fields, FieldError{Field: fe.Field(), Message: formatFieldError(fe)})
		}
		last = verrs
	}
	if len(fields) == 0 {
		return nil
	}
	return &ValidationError{Fields: fields, Err: last}
}

func formatFieldError(err validator.FieldError) string {
	field := err.Field()
	param := err.Param()
	switch err.Tag() {
	case "required", "required_if":
		return fmt.Sprintf("%s is required", field)
	case "excluded_unless":
		return fmt.Sprintf("%s is only allowed when %s", field, strings.Replace(param, " ", " is ", 1))
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", field, strings.ReplaceAll(param, " ", ", "))
	case "gte":
		return fmt.Sprintf("%s must be greater than or equal to %s", field, param)
	case "lte":
		return fmt.Sprintf("%s must be less than or equal to %s", field, param)
	default:
		return fmt.Sprintf("%s failed %s validation", field, err.Tag())
	}
}
