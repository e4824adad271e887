package http

import (
	"net/http"

	"github.com/velamar-hotels/hr-backend-go/internal/handler/http/response"
	directoryservice "github.com/velamar-hotels/hr-backend-go/internal/service/directory"
)

type DirectoryHandler interface {
	ListSectors(w http.ResponseWriter, r *http.Request)
	ListSectorEmployees(w http.ResponseWriter, r *http.Request)
	GetEmployee(w http.ResponseWriter, r *http.Request)
	ListSectorShiftTemplates(w http.ResponseWriter, r *http.Request)
	GetEmployeeContract(w http.ResponseWriter, r *http.Request)
}

type DirectoryHandlerImpl struct {
	directoryService *directoryservice.Service
}

func NewDirectoryHandler(directoryService *directoryservice.Service) DirectoryHandler {
	return &DirectoryHandlerImpl{directoryService: directoryService}
}

// ListSectors implements DirectoryHandler.
func (h *DirectoryHandlerImpl) ListSectors(w http.ResponseWriter, r *http.Request) {
	sectors, err := h.directoryService.Sectors(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, sectors)
}

// ListSectorEmployees implements DirectoryHandler.
func (h *DirectoryHandlerImpl) ListSectorEmployees(w http.ResponseWriter, r *http.Request) {
	sectorID, ok := urlID(r, "id")
	if !ok {
		response.BadRequest(w, "Sector ID is required", nil)
		return
	}
	activeOnly := r.URL.Query().Get("active") == "true"

	employees, err := h.directoryService.SectorEmployees(r.Context(), sectorID, activeOnly)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, employees)
}

// GetEmployee implements DirectoryHandler.
func (h *DirectoryHandlerImpl) GetEmployee(w http.ResponseWriter, r *http.Request) {
	id, ok := urlID(r, "id")
	if !ok {
		response.BadRequest(w, "Employee ID is required", nil)
		return
	}

	employee, err := h.directoryService.Employee(r.Context(), id)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, employee)
}

// ListSectorShiftTemplates implements DirectoryHandler.
func (h *DirectoryHandlerImpl) ListSectorShiftTemplates(w http.ResponseWriter, r *http.Request) {
	sectorID, ok := urlID(r, "id")
	if !ok {
		response.BadRequest(w, "Sector ID is required", nil)
		return
	}

	templates, err := h.directoryService.SectorShiftTemplates(r.Context(), sectorID)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, templates)
}

// GetEmployeeContract implements DirectoryHandler.
func (h *DirectoryHandlerImpl) GetEmployeeContract(w http.ResponseWriter, r *http.Request) {
	employeeID, ok := urlID(r, "id")
	if !ok {
		response.BadRequest(w, "Employee ID is required", nil)
		return
	}

	contract, err := h.directoryService.EmployeeContract(r.Context(), employeeID)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, contract)
}
