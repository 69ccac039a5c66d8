package booking

import "github.com/FlareMindsTech/righttouch-backend/models"

// forwardSteps encodes the single-step technician progression. Anything not
// listed here is an illegal transition for the status-update operation.
var forwardSteps = map[models.BookingStatus]models.BookingStatus{
	models.BookingAccepted:   models.BookingOnTheWay,
	models.BookingOnTheWay:   models.BookingReached,
	models.BookingReached:    models.BookingInProgress,
	models.BookingInProgress: models.BookingCompleted,
}

// CanStep reports whether a booking in current may move to next via the
// technician status-update operation.
func CanStep(current, next models.BookingStatus) bool {
	return forwardSteps[current] == next
}

// cancellableFrom is the set of states a customer may cancel out of. Once a
// technician is on the way the booking is locked in.
var cancellableFrom = []models.BookingStatus{
	models.BookingRequested,
	models.BookingBroadcasted,
	models.BookingAccepted,
}

// Cancellable reports whether a booking in the given status may be cancelled.
func Cancellable(status models.BookingStatus) bool {
	for _, s := range cancellableFrom {
		if s == status {
			return true
		}
	}
	return false
}
