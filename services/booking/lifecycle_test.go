package booking

import (
	"testing"

	"github.com/FlareMindsTech/righttouch-backend/models"
)

func TestCanStep(t *testing.T) {
	cases := []struct {
		from models.BookingStatus
		to   models.BookingStatus
		want bool
	}{
		{models.BookingAccepted, models.BookingOnTheWay, true},
		{models.BookingOnTheWay, models.BookingReached, true},
		{models.BookingReached, models.BookingInProgress, true},
		{models.BookingInProgress, models.BookingCompleted, true},

		// Skips and backward moves are rejected.
		{models.BookingAccepted, models.BookingCompleted, false},
		{models.BookingAccepted, models.BookingReached, false},
		{models.BookingOnTheWay, models.BookingCompleted, false},
		{models.BookingReached, models.BookingOnTheWay, false},
		{models.BookingInProgress, models.BookingAccepted, false},

		// Terminal and pre-assignment states have no forward step.
		{models.BookingCompleted, models.BookingCompleted, false},
		{models.BookingCancelled, models.BookingOnTheWay, false},
		{models.BookingRequested, models.BookingOnTheWay, false},
		{models.BookingBroadcasted, models.BookingOnTheWay, false},
	}
	for _, tc := range cases {
		if got := CanStep(tc.from, tc.to); got != tc.want {
			t.Errorf("CanStep(%s, %s) = %v, want %v", tc.from, tc.to, got, tc.want)
		}
	}
}

func TestCancellable(t *testing.T) {
	cases := []struct {
		status models.BookingStatus
		want   bool
	}{
		{models.BookingRequested, true},
		{models.BookingBroadcasted, true},
		{models.BookingAccepted, true},
		{models.BookingOnTheWay, false},
		{models.BookingReached, false},
		{models.BookingInProgress, false},
		{models.BookingCompleted, false},
		{models.BookingCancelled, false},
	}
	for _, tc := range cases {
		if got := Cancellable(tc.status); got != tc.want {
			t.Errorf("Cancellable(%s) = %v, want %v", tc.status, got, tc.want)
		}
	}
}
