// Package forms holds client-side form state and pre-submit validation.
package forms

import (
	"fmt"
	"maps"
	"math"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/dmitrijs2005/lifedash/internal/client/client"
	"github.com/dmitrijs2005/lifedash/internal/client/models"
	"github.com/dmitrijs2005/lifedash/internal/common"
)

// Field names match the backend's JSON keys so server-side errors map
// directly onto the form.
const (
	FieldTitle            = "title"
	FieldCategory         = "category"
	FieldDescription      = "description"
	FieldType             = "type"
	FieldMetric           = "metric"
	FieldTargetValue      = "target_value"
	FieldStartValue       = "start_value"
	FieldStartDate        = "start_date"
	FieldEndDate          = "end_date"
	FieldFrequency        = "frequency"
	FieldRemindersEnabled = "reminders_enabled"
)

const (
	MsgTitleRequired     = "Title is required"
	MsgCategoryRequired  = "Category is required"
	MsgTargetPositive    = "Target value must be greater than 0"
	MsgStartDateRequired = "Start date is required"
	MsgEndDateRequired   = "End date is required"
	MsgEndAfterStart     = "End date must be after start date"
	MsgStartValueNumber  = "Start value must be a number"
	MsgDateFormat        = "Date must be in YYYY-MM-DD format"
)

// FieldErrors maps a field name to its message.
type FieldErrors map[string]string

func (fe FieldErrors) Error() string {
	keys := slices.Sorted(maps.Keys(fe))
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+fe[k])
	}
	return strings.Join(parts, "; ")
}

// Unwrap lets errors.Is(err, common.ErrValidation) match.
func (fe FieldErrors) Unwrap() error { return common.ErrValidation }

// GoalForm is the raw, string-typed state of the goal composer.
type GoalForm struct {
	Title            string
	Category         string
	Description      string
	Type             string
	Metric           string
	TargetValue      string
	StartValue       string
	StartDate        string
	EndDate          string
	Frequency        string
	RemindersEnabled bool

	Errors FieldErrors
}

// NewGoalForm returns a blank form with the default goal type.
func NewGoalForm() *GoalForm {
	return &GoalForm{Type: string(models.GoalTypeAutomatic), Errors: FieldErrors{}}
}

// GoalFormFrom seeds a form from an existing goal for editing.
func GoalFormFrom(g models.Goal) *GoalForm {
	f := &GoalForm{
		Title:            g.Title,
		Category:         string(g.Category),
		Description:      models.Deref(g.Description),
		Type:             string(g.Type),
		Metric:           models.Deref(g.Metric),
		TargetValue:      formatFloat(g.TargetValue),
		StartValue:       formatFloat(g.StartValue),
		StartDate:        g.StartDate,
		EndDate:          g.EndDate,
		Frequency:        models.Deref(g.Frequency),
		RemindersEnabled: g.RemindersEnabled,
		Errors:           FieldErrors{},
	}
	if f.Type == "" {
		f.Type = string(models.GoalTypeAutomatic)
	}
	return f
}

// Set assigns a field by name and clears any error recorded for it.
func (f *GoalForm) Set(field, value string) error {
	switch field {
	case FieldTitle:
		f.Title = value
	case FieldCategory:
		f.Category = value
	case FieldDescription:
		f.Description = value
	case FieldType:
		f.Type = value
	case FieldMetric:
		f.Metric = value
	case FieldTargetValue:
		f.TargetValue = value
	case FieldStartValue:
		f.StartValue = value
	case FieldStartDate:
		f.StartDate = value
	case FieldEndDate:
		f.EndDate = value
	case FieldFrequency:
		f.Frequency = value
	case FieldRemindersEnabled:
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("%s: %w", field, common.ErrValidation)
		}
		f.RemindersEnabled = b
	default:
		return fmt.Errorf("unknown field %q: %w", field, common.ErrValidation)
	}
	delete(f.Errors, field)
	return nil
}

// Value returns the raw text of a field; reminders_enabled reads as
// "true" or "false". Unknown fields read as "".
func (f *GoalForm) Value(field string) string {
	switch field {
	case FieldTitle:
		return f.Title
	case FieldCategory:
		return f.Category
	case FieldDescription:
		return f.Description
	case FieldType:
		return f.Type
	case FieldMetric:
		return f.Metric
	case FieldTargetValue:
		return f.TargetValue
	case FieldStartValue:
		return f.StartValue
	case FieldStartDate:
		return f.StartDate
	case FieldEndDate:
		return f.EndDate
	case FieldFrequency:
		return f.Frequency
	case FieldRemindersEnabled:
		return strconv.FormatBool(f.RemindersEnabled)
	}
	return ""
}

// Validate records and returns per-field errors; nil means the form may be
// submitted.
func (f *GoalForm) Validate() FieldErrors {
	errs := FieldErrors{}

	if strings.TrimSpace(f.Title) == "" {
		errs[FieldTitle] = MsgTitleRequired
	}
	if f.Category == "" {
		errs[FieldCategory] = MsgCategoryRequired
	}
	if v, err := parseFloat(f.TargetValue); err != nil || v <= 0 {
		errs[FieldTargetValue] = MsgTargetPositive
	}
	if strings.TrimSpace(f.StartValue) != "" {
		if _, err := parseFloat(f.StartValue); err != nil {
			errs[FieldStartValue] = MsgStartValueNumber
		}
	}

	start, startErr := parseDate(f.StartDate)
	end, endErr := parseDate(f.EndDate)
	switch {
	case f.StartDate == "":
		errs[FieldStartDate] = MsgStartDateRequired
	case startErr != nil:
		errs[FieldStartDate] = MsgDateFormat
	}
	switch {
	case f.EndDate == "":
		errs[FieldEndDate] = MsgEndDateRequired
	case endErr != nil:
		errs[FieldEndDate] = MsgDateFormat
	}
	if startErr == nil && endErr == nil && !end.After(start) {
		errs[FieldEndDate] = MsgEndAfterStart
	}

	f.Errors = errs
	if len(errs) == 0 {
		return nil
	}
	return errs
}

// Payload validates the form and converts it to the backend shape. Empty
// optional strings become null and an empty start value becomes 0.
func (f *GoalForm) Payload() (models.Goal, error) {
	if errs := f.Validate(); errs != nil {
		return models.Goal{}, errs
	}

	target, _ := parseFloat(f.TargetValue)
	var startValue float64
	if strings.TrimSpace(f.StartValue) != "" {
		startValue, _ = parseFloat(f.StartValue)
	}

	return models.Goal{
		Title:            f.Title,
		Category:         models.GoalCategory(f.Category),
		Description:      models.StringPtr(f.Description),
		Type:             models.GoalType(f.Type),
		Metric:           models.StringPtr(f.Metric),
		TargetValue:      target,
		StartValue:       startValue,
		StartDate:        f.StartDate,
		EndDate:          f.EndDate,
		Frequency:        models.StringPtr(f.Frequency),
		RemindersEnabled: f.RemindersEnabled,
	}, nil
}

// ApplyServerErrors copies the backend's structured field errors onto the
// form. It reports false when err carries none, in which case the caller
// shows the generic message instead.
func (f *GoalForm) ApplyServerErrors(err error) bool {
	fe := client.FieldErrors(err)
	if len(fe) == 0 {
		return false
	}
	f.Errors = maps.Clone(FieldErrors(fe))
	return true
}

// Reset returns the form to its blank state.
func (f *GoalForm) Reset() {
	*f = *NewGoalForm()
}

// parseFloat accepts finite numbers only; NaN and Inf cannot be encoded as
// JSON.
func parseFloat(s string) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, err
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, strconv.ErrRange
	}
	return v, nil
}

func parseDate(s string) (time.Time, error) {
	return time.Parse(time.DateOnly, strings.TrimSpace(s))
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
