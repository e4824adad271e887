package directory

import "github.com/shopspring/decimal"

type EmployeeResponse struct {
	ID           int64            `json:"id"`
	FirstName    string           `json:"first_name"`
	LastName     string           `json:"last_name"`
	OIB          string           `json:"oib"`
	Email        *string          `json:"email,omitempty"`
	Phone        *string          `json:"phone,omitempty"`
	Status       EmploymentStatus `json:"status"`
	SectorID     *int64           `json:"sector_id,omitempty"`
	PositionID   *int64           `json:"position_id,omitempty"`
	PositionName *string          `json:"position_name,omitempty"`
	HireDate     string           `json:"hire_date"`
}

func ToEmployeeResponse(e Employee) EmployeeResponse {
	return EmployeeResponse{
		ID:           e.ID,
		FirstName:    e.FirstName,
		LastName:     e.LastName,
		OIB:          e.OIB,
		Email:        e.Email,
		Phone:        e.Phone,
		Status:       e.Status,
		SectorID:     e.SectorID,
		PositionID:   e.PositionID,
		PositionName: e.PositionName,
		HireDate:     e.HireDate.Format("2006-01-02"),
	}
}

type SectorResponse struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

type ShiftTemplateResponse struct {
	ID       int64  `json:"id"`
	SectorID int64  `json:"sector_id"`
	Name     string `json:"name"`
	Label    string `json:"label"`
}

func ToShiftTemplateResponse(t ShiftTemplate) ShiftTemplateResponse {
	return ShiftTemplateResponse{
		ID:       t.ID,
		SectorID: t.SectorID,
		Name:     t.Name,
		Label:    t.Label(),
	}
}

type ContractResponse struct {
	ID         int64           `json:"id"`
	EmployeeID int64           `json:"employee_id"`
	Type       string          `json:"type"`
	GrossPay   decimal.Decimal `json:"gross_pay"`
	NetPay     decimal.Decimal `json:"net_pay"`
	StartDate  string          `json:"start_date"`
	EndDate    *string         `json:"end_date,omitempty"`
}

func ToContractResponse(c Contract) ContractResponse {
	resp := ContractResponse{
		ID:         c.ID,
		EmployeeID: c.EmployeeID,
		Type:       c.Type,
		GrossPay:   c.Gross,
		NetPay:     c.Net,
		StartDate:  c.Start.Format("2006-01-02"),
	}
	if c.End != nil {
		end := c.End.Format("2006-01-02")
		resp.EndDate = &end
	}
	return resp
}
