package leave

import (
	"github.com/velamar-hotels/hr-backend-go/internal/pkg/validator"
)

type SubmitRequest struct {
	EmployeeID int64  `json:"employee_id"`
	StartDate  string `json:"start_date"` // YYYY-MM-DD
	EndDate    string `json:"end_date"`   // YYYY-MM-DD
	Days       int    `json:"days"`
}

func (r SubmitRequest) Validate() error {
	var errs validator.ValidationErrors
	if r.EmployeeID <= 0 {
		errs = append(errs, validator.ValidationError{Field: "employee_id", Message: "must be a positive id"})
	}
	start, okStart := validator.IsValidDate(r.StartDate)
	if !okStart {
		errs = append(errs, validator.ValidationError{Field: "start_date", Message: "must be a valid date (YYYY-MM-DD)"})
	}
	end, okEnd := validator.IsValidDate(r.EndDate)
	if !okEnd {
		errs = append(errs, validator.ValidationError{Field: "end_date", Message: "must be a valid date (YYYY-MM-DD)"})
	}
	if okStart && okEnd && end.Before(start) {
		errs = append(errs, validator.ValidationError{Field: "end_date", Message: "must not be before start_date"})
	}
	if r.Days <= 0 {
		errs = append(errs, validator.ValidationError{Field: "days", Message: "must be positive"})
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

type RequestResponse struct {
	ID           int64         `json:"id"`
	EmployeeID   int64         `json:"employee_id"`
	EmployeeName *string       `json:"employee_name,omitempty"`
	StartDate    string        `json:"start_date"`
	EndDate      string        `json:"end_date"`
	Days         int           `json:"days"`
	Status       RequestStatus `json:"status"`
	CreatedAt    string        `json:"created_at"`
}

func ToRequestResponse(r Request) RequestResponse {
	return RequestResponse{
		ID:           r.ID,
		EmployeeID:   r.EmployeeID,
		EmployeeName: r.EmployeeName,
		StartDate:    r.StartDate.Format("2006-01-02"),
		EndDate:      r.EndDate.Format("2006-01-02"),
		Days:         r.Days,
		Status:       r.Status,
		CreatedAt:    r.CreatedAt.UTC().Format("2006-01-02T15:04:05Z07:00"),
	}
}

type BalanceResponse struct {
	EmployeeID   int64 `json:"employee_id"`
	Year         int   `json:"year"`
	EntitledDays int   `json:"entitled_days"`
	UsedDays     int   `json:"used_days"`
	Remaining    int   `json:"remaining"`
}

func ToBalanceResponse(b Balance) BalanceResponse {
	return BalanceResponse{
		EmployeeID:   b.EmployeeID,
		Year:         b.Year,
		EntitledDays: b.EntitledDays,
		UsedDays:     b.UsedDays,
		Remaining:    b.Remaining(),
	}
}
