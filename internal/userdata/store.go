package userdata

import (
	"sync"

	"github.com/ymatsui/kijun/internal/catalog"
)

// Store is the in-memory source of truth for one account's data. All
// mutations go through it, and every mutation notifies subscribers
// synchronously before the mutating call returns. Persistence is layered
// on top via subscription; the store itself never touches the network.
type Store struct {
	mu        sync.Mutex
	data      Data
	listeners map[int]func(Data)
	nextID    int
}

// NewStore creates a Store holding empty data.
func NewStore() *Store {
	return &Store{
		data:      Empty(),
		listeners: make(map[int]func(Data)),
	}
}

// Get returns a snapshot of the current data. The returned value is a
// deep copy; callers may hold it across further mutations.
func (s *Store) Get() Data {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.data.Clone()
}

// Results returns a snapshot of the quiz result record.
func (s *Store) Results() QuizResults {
	return s.Get().QuizResults
}

// Subscribe registers fn to be called with a snapshot after every
// mutation. The returned function unsubscribes.
func (s *Store) Subscribe(fn func(Data)) func() {
	s.mu.Lock()
	id := s.nextID
	s.nextID++
	s.listeners[id] = fn
	s.mu.Unlock()

	return func() {
		s.mu.Lock()
		delete(s.listeners, id)
		s.mu.Unlock()
	}
}

// SetResult records the correctness of the latest answer for a quiz,
// overwriting any prior value.
func (s *Store) SetResult(quizID string, isCorrect bool) {
	s.mutate(func(d *Data) bool {
		d.QuizResults[quizID] = isCorrect
		return true
	})
}

// ToggleBookmark adds the standard to the bookmark list, or removes it
// if already present.
func (s *Store) ToggleBookmark(standardID string) {
	s.mutate(func(d *Data) bool {
		for i, id := range d.BookmarkedStandardIDs {
			if id == standardID {
				d.BookmarkedStandardIDs = append(d.BookmarkedStandardIDs[:i], d.BookmarkedStandardIDs[i+1:]...)
				return true
			}
		}
		d.BookmarkedStandardIDs = append(d.BookmarkedStandardIDs, standardID)
		return true
	})
}

// IsBookmarked reports whether the standard is bookmarked.
func (s *Store) IsBookmarked(standardID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, id := range s.data.BookmarkedStandardIDs {
		if id == standardID {
			return true
		}
	}
	return false
}

// AddViewedStandard records that the standard has been opened. Repeat
// views are no-ops and do not notify subscribers.
func (s *Store) AddViewedStandard(standardID string) {
	s.mutate(func(d *Data) bool {
		for _, id := range d.ViewedStandardIDs {
			if id == standardID {
				return false
			}
		}
		d.ViewedStandardIDs = append(d.ViewedStandardIDs, standardID)
		return true
	})
}

// ResetForStandard removes the result entries for every quiz owned by
// the given standard, leaving all other entries untouched. Calling it
// again is a no-op.
func (s *Store) ResetForStandard(standardID string, cat *catalog.Catalog) {
	s.mutate(func(d *Data) bool {
		changed := false
		for _, q := range cat.QuizzesForStandard(standardID) {
			if _, ok := d.QuizResults[q.ID]; ok {
				delete(d.QuizResults, q.ID)
				changed = true
			}
		}
		return changed
	})
}

// Replace overwrites the whole data value. Used when the remote document
// is (re)loaded: the remote copy is authoritative at that point.
func (s *Store) Replace(d Data) {
	s.mutate(func(cur *Data) bool {
		*cur = Coerce(d).Clone()
		return true
	})
}

// Clear resets all data to empty defaults. Used on sign-out.
func (s *Store) Clear() {
	s.Replace(Empty())
}

// mutate applies fn under the lock and, when fn reports a change,
// notifies subscribers synchronously with a fresh snapshot.
func (s *Store) mutate(fn func(*Data) bool) {
	s.mu.Lock()
	changed := fn(&s.data)
	var snapshot Data
	var fns []func(Data)
	if changed {
		snapshot = s.data.Clone()
		fns = make([]func(Data), 0, len(s.listeners))
		for _, l := range s.listeners {
			fns = append(fns, l)
		}
	}
	s.mu.Unlock()

	for _, fn := range fns {
		fn(snapshot)
	}
}
