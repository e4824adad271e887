package worktime

import (
	"github.com/velamar-hotels/hr-backend-go/internal/pkg/validator"
)

type CreateSickLeaveRequest struct {
	EmployeeID int64  `json:"employee_id"`
	Start      string `json:"start"` // YYYY-MM-DD
	End        string `json:"end"`   // YYYY-MM-DD
}

func (r CreateSickLeaveRequest) Validate() error {
	var errs validator.ValidationErrors
	if r.EmployeeID <= 0 {
		errs = append(errs, validator.ValidationError{Field: "employee_id", Message: "must be a positive id"})
	}
	start, okStart := validator.IsValidDate(r.Start)
	if !okStart {
		errs = append(errs, validator.ValidationError{Field: "start", Message: "must be a valid date (YYYY-MM-DD)"})
	}
	end, okEnd := validator.IsValidDate(r.End)
	if !okEnd {
		errs = append(errs, validator.ValidationError{Field: "end", Message: "must be a valid date (YYYY-MM-DD)"})
	}
	if okStart && okEnd && end.Before(start) {
		errs = append(errs, validator.ValidationError{Field: "end", Message: "must not be before start"})
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

type CreateOvertimeRequest struct {
	EmployeeID int64   `json:"employee_id"`
	Date       string  `json:"date"` // YYYY-MM-DD
	Hours      float64 `json:"hours"`
	Reason     string  `json:"reason"`
}

func (r CreateOvertimeRequest) Validate() error {
	var errs validator.ValidationErrors
	if r.EmployeeID <= 0 {
		errs = append(errs, validator.ValidationError{Field: "employee_id", Message: "must be a positive id"})
	}
	if _, ok := validator.IsValidDate(r.Date); !ok {
		errs = append(errs, validator.ValidationError{Field: "date", Message: "must be a valid date (YYYY-MM-DD)"})
	}
	if r.Hours <= 0 {
		errs = append(errs, validator.ValidationError{Field: "hours", Message: "must be positive"})
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}
