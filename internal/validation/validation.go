package validation

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/forgeboard/forgeboard/internal/types"
)

// ValidationError represents a single field validation failure.
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Collector accumulates validation errors without failing on first.
type Collector struct {
	errors []ValidationError
}

// Add appends a validation error to the collector if non-nil.
func (c *Collector) Add(err *ValidationError) {
	if err != nil {
		c.errors = append(c.errors, *err)
	}
}

// HasErrors returns true if the collector has accumulated any errors.
func (c *Collector) HasErrors() bool {
	return len(c.errors) > 0
}

// Errors returns all accumulated validation errors.
func (c *Collector) Errors() []ValidationError {
	return c.errors
}

// ValidateRequired returns an error if the value is empty or whitespace-only.
func ValidateRequired(field, value string) *ValidationError {
	if strings.TrimSpace(value) == "" {
		return &ValidationError{
			Field:   field,
			Message: "is required",
		}
	}
	return nil
}

// ValidateMaxLength returns an error if the value exceeds max runes.
func ValidateMaxLength(field, value string, max int) *ValidationError {
	if utf8.RuneCountInString(value) > max {
		return &ValidationError{
			Field:   field,
			Message: fmt.Sprintf("exceeds maximum length of %d characters", max),
		}
	}
	return nil
}

// ValidateEnum returns an error if the value is not in the allowed list.
func ValidateEnum(field, value string, allowed []string) *ValidationError {
	for _, a := range allowed {
		if value == a {
			return nil
		}
	}
	return &ValidationError{
		Field:   field,
		Message: fmt.Sprintf("must be one of: %s", strings.Join(allowed, ", ")),
	}
}

// ValidateIntRange returns an error if the value is outside [min, max].
func ValidateIntRange(field string, value, min, max int) *ValidationError {
	if value < min || value > max {
		return &ValidationError{
			Field:   field,
			Message: fmt.Sprintf("must be between %d and %d", min, max),
		}
	}
	return nil
}

// ValidateNonNegative returns an error if the value is below zero.
func ValidateNonNegative(field string, value float64) *ValidationError {
	if value < 0 {
		return &ValidationError{
			Field:   field,
			Message: "must not be negative",
		}
	}
	return nil
}

// ValidatePublishable checks that a request carries everything required to
// publish: a name, a description, and at least one attachment.
func ValidatePublishable(r *types.ProjectRequest) []ValidationError {
	var c Collector
	c.Add(ValidateRequired("project_name", r.ProjectName))
	c.Add(ValidateRequired("description", r.Description))
	if len(r.Attachments) == 0 {
		c.Add(&ValidationError{
			Field:   "attachments",
			Message: "at least one attachment is required",
		})
	}
	return c.Errors()
}

// ValidateProgressRecord checks the invariants of a progress record after a
// patch has been applied. Duplicate "current" milestones are intentionally
// not an error.
func ValidateProgressRecord(p *types.ProjectProgress) []ValidationError {
	var c Collector
	c.Add(ValidateIntRange("progress_percent", p.ProgressPercent, 0, 100))
	c.Add(ValidateNonNegative("hours_spent", p.HoursSpent))
	if p.TasksCompleted < 0 {
		c.Add(&ValidationError{Field: "tasks_completed", Message: "must not be negative"})
	}
	if p.TasksTotal < 0 {
		c.Add(&ValidationError{Field: "tasks_total", Message: "must not be negative"})
	}
	if p.TasksCompleted > p.TasksTotal {
		c.Add(&ValidationError{
			Field:   "tasks_completed",
			Message: fmt.Sprintf("must not exceed tasks_total (%d > %d)", p.TasksCompleted, p.TasksTotal),
		})
	}
	for i, m := range p.Milestones {
		if err := ValidateRequired(fmt.Sprintf("milestones[%d].title", i), m.Title); err != nil {
			c.Add(err)
		}
		if !types.ValidMilestoneStatus(m.Status) {
			c.Add(&ValidationError{
				Field:   fmt.Sprintf("milestones[%d].status", i),
				Message: "must be one of: upcoming, current, completed",
			})
		}
	}
	for i, a := range p.Roster {
		if err := ValidateRequired(fmt.Sprintf("roster[%d].uid", i), a.UID); err != nil {
			c.Add(err)
		}
	}
	return c.Errors()
}
