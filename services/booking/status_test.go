package booking

import (
	"errors"
	"testing"

	"scrapiz/models"
)

func TestPermissiveStatusMachine(t *testing.T) {
	m := NewStatusMachine(false)
	for _, from := range models.AllStatuses {
		for _, to := range models.AllStatuses {
			if err := m.Check(from, to); err != nil {
				t.Errorf("Check(%s, %s) = %v, want nil", from, to, err)
			}
		}
	}
	if err := m.Check(models.StatusScheduled, "lost"); !errors.Is(err, ErrInvalidStatus) {
		t.Errorf("unknown target err = %v", err)
	}
}

func TestStrictStatusMachine(t *testing.T) {
	m := NewStatusMachine(true)

	tests := []struct {
		from, to models.BookingStatus
		ok       bool
	}{
		{models.StatusScheduled, models.StatusAgentOnWay, true},
		{models.StatusAgentOnWay, models.StatusInProgress, true},
		{models.StatusInProgress, models.StatusCompleted, true},
		{models.StatusScheduled, models.StatusCancelled, true},
		{models.StatusCompleted, models.StatusCompleted, true},
		{models.StatusInProgress, models.StatusScheduled, false},
		{models.StatusCompleted, models.StatusScheduled, false},
		{models.StatusCancelled, models.StatusInProgress, false},
	}
	for _, tt := range tests {
		t.Run(string(tt.from)+"->"+string(tt.to), func(t *testing.T) {
			err := m.Check(tt.from, tt.to)
			if tt.ok && err != nil {
				t.Errorf("unexpected error: %v", err)
			}
			if !tt.ok && !errors.Is(err, ErrInvalidTransition) {
				t.Errorf("err = %v, want ErrInvalidTransition", err)
			}
		})
	}
}
