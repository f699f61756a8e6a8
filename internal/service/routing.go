package service

import "pacho/internal/entity"

// Destination is where the client should land right after login.
type Destination string

const (
	DestPendingExperts Destination = "pending-experts"
	DestUserHome       Destination = "user-home"
	DestTakeTest       Destination = "take-test"
	DestAccessDenied   Destination = "access-denied"
	DestTreatments     Destination = "treatments"
	DestPublicHome     Destination = "home"
)

// DestinationFor is the post-login decision table: role first, then (for
// experts) the aptitude-test state. expert is nil for non-expert roles or
// when the expert row is missing.
func DestinationFor(role entity.UserRole, expert *entity.Expert) Destination {
	switch role {
	case entity.UserRoleSuperAdmin:
		return DestPendingExperts
	case entity.UserRoleUser:
		return DestUserHome
	case entity.UserRoleExpert:
		if expert == nil {
			return DestAccessDenied
		}
		switch expert.TestState {
		case entity.TestStateEnabled:
			return DestTakeTest
		case entity.TestStateApproved:
			return DestTreatments
		case entity.TestStateRejected:
			return DestAccessDenied
		default:
			return DestAccessDenied
		}
	default:
		return DestPublicHome
	}
}
