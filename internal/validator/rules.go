package validator

import (
	"log"

	"ewaste_backend/internal/models"

	"github.com/go-playground/validator/v10"
)

// registerCustomRules installs the enum validation tags used by the
// request DTOs.
func registerCustomRules(v *validator.Validate) {
	mustRegister := func(tag string, fn validator.Func) {
		if err := v.RegisterValidation(tag, fn); err != nil {
			// A rule that fails to register is a programming error; the
			// application must not start with half a validator.
			log.Fatalf("failed to register custom validation tag '%s': %v", tag, err)
		}
	}

	// 'is-user-status': admin status overrides must name a real status
	mustRegister("is-user-status", validateUserStatus)

	// 'is-request-status': pickup status transitions
	mustRegister("is-request-status", validateRequestStatus)
}

func validateUserStatus(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	if value == "" {
		return true // empty values are for 'required' to catch
	}

	switch models.UserStatus(value) {
	case models.UserStatusPending, models.UserStatusVerified,
		models.UserStatusRejected, models.UserStatusSuspended:
		return true
	default:
		return false
	}
}

func validateRequestStatus(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	if value == "" {
		return true
	}

	switch models.RequestStatus(value) {
	case models.RequestStatusPending, models.RequestStatusScheduled,
		models.RequestStatusInProgress, models.RequestStatusCompleted,
		models.RequestStatusCancelled, models.RequestStatusRejected:
		return true
	default:
		return false
	}
}
