package booking

import (
	"fmt"

	"scrapiz/models"
)

// StatusMachine decides which admin status writes are accepted.
type StatusMachine struct {
	strict bool
}

// strictTransitions is used when STRICT_STATUS_TRANSITIONS is on. Completed and cancelled are terminal.
var strictTransitions = map[models.BookingStatus][]models.BookingStatus{
	models.StatusScheduled:  {models.StatusAgentOnWay, models.StatusInProgress, models.StatusCompleted, models.StatusCancelled},
	models.StatusAgentOnWay: {models.StatusScheduled, models.StatusInProgress, models.StatusCompleted, models.StatusCancelled},
	models.StatusInProgress: {models.StatusCompleted, models.StatusCancelled},
	models.StatusCompleted:  {},
	models.StatusCancelled:  {},
}

// NewStatusMachine returns a permissive machine unless strict is set.
func NewStatusMachine(strict bool) StatusMachine {
	return StatusMachine{strict: strict}
}

func (m StatusMachine) Strict() bool { return m.strict }

// Check accepts rewriting the current status. Unknown targets are always rejected.
func (m StatusMachine) Check(from, to models.BookingStatus) error {
	if !to.Valid() {
		return fmt.Errorf("%w: %q", ErrInvalidStatus, to)
	}
	if !m.strict || from == to {
		return nil
	}
	for _, allowed := range strictTransitions[from] {
		if allowed == to {
			return nil
		}
	}
	return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, from, to)
}

// Allowed lists the statuses reachable from the given one.
func (m StatusMachine) Allowed(from models.BookingStatus) []models.BookingStatus {
	if !m.strict {
		return append([]models.BookingStatus(nil), models.AllStatuses...)
	}
	return append([]models.BookingStatus{from}, strictTransitions[from]...)
}
