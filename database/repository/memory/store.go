// Package memoryRepo keeps every collection in process. It backs DATABASE_URL=memory:// and the tests.
package memoryRepo

import (
	"sync"
	"time"

	"scrapiz/models"
)

type record[T any] struct {
	seq   int64
	value T
}

// Store holds all collections behind one lock so joins see a consistent view.
type Store struct {
	mu          sync.RWMutex
	seq         int64
	addresses   map[string]record[models.Address]
	bookings    map[string]record[models.Booking]
	photos      map[string]record[models.BookingPhoto]
	profiles    map[string]models.Profile
	submissions map[string]models.BookingSubmission
	faults      map[string]error

	// Now stamps created_at/updated_at.
	Now func() time.Time
}

func NewStore() *Store {
	return &Store{
		addresses:   make(map[string]record[models.Address]),
		bookings:    make(map[string]record[models.Booking]),
		photos:      make(map[string]record[models.BookingPhoto]),
		profiles:    make(map[string]models.Profile),
		submissions: make(map[string]models.BookingSubmission),
		faults:      make(map[string]error),
		Now:         func() time.Time { return time.Now().UTC() },
	}
}

// SetFault makes every call of op fail with err until cleared with a nil err.
// Ops are named "<collection>.<Method>", e.g. "bookings.Count".
func (s *Store) SetFault(op string, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err == nil {
		delete(s.faults, op)
		return
	}
	s.faults[op] = err
}

func (s *Store) fault(op string) error {
	return s.faults[op]
}

func (s *Store) nextSeq() int64 {
	s.seq++
	return s.seq
}

func (s *Store) Addresses() *AddressRepo { return &AddressRepo{s: s} }
func (s *Store) Bookings() *BookingRepo  { return &BookingRepo{s: s} }
func (s *Store) Profiles() *ProfileRepo  { return &ProfileRepo{s: s} }

// newestFirst orders by created_at descending, later inserts first on ties.
func newestFirst(aTime, bTime time.Time, aSeq, bSeq int64) bool {
	if !aTime.Equal(bTime) {
		return aTime.After(bTime)
	}
	return aSeq > bSeq
}
