package session

import "strconv"

// Sequence generates decimal ids counting up from start ("1", "2", ...).
func Sequence(start int) IDGenerator {
	next := start
	return func() string {
		id := strconv.Itoa(next)
		next++
		return id
	}
}

const maxIDAttempts = 32

// issueID returns an id the session has never handed out. Generators that
// keep colliding fall back to UUIDs.
func (s *Session) issueID() string {
	for range maxIDAttempts {
		id := s.newID()
		if id == "" {
			continue
		}
		if _, used := s.issued[id]; used {
			continue
		}
		s.issued[id] = struct{}{}
		return id
	}
	for {
		id := UUIDs()()
		if _, used := s.issued[id]; !used {
			s.issued[id] = struct{}{}
			return id
		}
	}
}
