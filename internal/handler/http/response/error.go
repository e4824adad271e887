package response

import (
	"errors"
	"net/http"

	"github.com/velamar-hotels/hr-backend-go/internal/domain/auth"
	"github.com/velamar-hotels/hr-backend-go/internal/domain/directory"
	"github.com/velamar-hotels/hr-backend-go/internal/domain/leave"
	"github.com/velamar-hotels/hr-backend-go/internal/domain/notification"
	"github.com/velamar-hotels/hr-backend-go/internal/domain/schedule"
	"github.com/velamar-hotels/hr-backend-go/internal/domain/user"
	"github.com/velamar-hotels/hr-backend-go/internal/domain/worktime"
	"github.com/velamar-hotels/hr-backend-go/internal/pkg/textgen"
	"github.com/velamar-hotels/hr-backend-go/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	switch {
	// Auth
	case errors.Is(err, auth.ErrInvalidCredentials):
		Unauthorized(w, "Invalid username or password")
	case errors.Is(err, auth.ErrInvalidToken):
		Unauthorized(w, "Invalid or expired token")
	case errors.Is(err, auth.ErrForbidden):
		Forbidden(w, "Not allowed for this sector or role")
	case errors.Is(err, user.ErrUserNotFound):
		NotFound(w, "User not found")

	// Directory
	case errors.Is(err, directory.ErrEmployeeNotFound):
		NotFound(w, "Employee not found")
	case errors.Is(err, directory.ErrSectorNotFound):
		NotFound(w, "Sector not found")
	case errors.Is(err, directory.ErrPositionNotFound):
		NotFound(w, "Position not found")
	case errors.Is(err, directory.ErrContractNotFound):
		NotFound(w, "Contract not found")

	// Schedule
	case errors.Is(err, schedule.ErrEntryNotFound):
		NotFound(w, "Schedule entry not found")
	case errors.Is(err, schedule.ErrInvalidDate):
		BadRequest(w, "Invalid date", nil)

	// Leave
	case errors.Is(err, leave.ErrRequestNotFound):
		NotFound(w, "Leave request not found")
	case errors.Is(err, leave.ErrRequestAlreadyProcessed):
		Conflict(w, "Leave request already processed")
	case errors.Is(err, leave.ErrBalanceNotFound):
		NotFound(w, "Leave balance not found")
	case errors.Is(err, leave.ErrBalanceExceeded):
		Conflict(w, "Leave balance exceeded")

	// Worktime
	case errors.Is(err, worktime.ErrOvertimeNotFound):
		NotFound(w, "Overtime entry not found")
	case errors.Is(err, worktime.ErrOvertimeAlreadyApproved):
		Conflict(w, "Overtime entry already approved")
	case errors.Is(err, worktime.ErrSickLeaveNotFound):
		NotFound(w, "Sick leave record not found")

	// Notifications
	case errors.Is(err, notification.ErrInvalidTarget):
		BadRequest(w, "Invalid notification target", nil)

	// AI collaborator
	case errors.Is(err, textgen.ErrTimeout):
		BadGateway(w, "AI provider timed out")
	case errors.Is(err, textgen.ErrUnavailable):
		BadGateway(w, "AI provider unavailable")
	case errors.Is(err, textgen.ErrEmptyResponse):
		BadGateway(w, "AI returned no usable draft")

	default:
		InternalServerError(w, "An unexpected error occurred")
	}
}
