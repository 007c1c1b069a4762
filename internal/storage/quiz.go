package storage

import (
	"sync"
	"time"

	"github.com/aliskhannn/times-tables-bot/internal/domain/entities"
)

type quizEntry struct {
	session  *entities.QuizSession
	lastSeen time.Time
}

// QuizStorage provides in-memory storage for quiz sessions by chat ID.
type QuizStorage struct {
	mu       sync.RWMutex
	sessions map[int64]quizEntry
	now      func() time.Time
}

// NewQuizStorage creates a new QuizStorage.
func NewQuizStorage() *QuizStorage {
	return &QuizStorage{
		sessions: make(map[int64]quizEntry),
		now:      time.Now,
	}
}

// Store saves the session for a chat and marks it as seen now.
func (s *QuizStorage) Store(chatID int64, session *entities.QuizSession) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[chatID] = quizEntry{session: session, lastSeen: s.now()}
}

// Get retrieves the session of a chat.
func (s *QuizStorage) Get(chatID int64) (*entities.QuizSession, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	e, ok := s.sessions[chatID]
	return e.session, ok
}

// Touch marks the session of a chat as seen now.
func (s *QuizStorage) Touch(chatID int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if e, ok := s.sessions[chatID]; ok {
		e.lastSeen = s.now()
		s.sessions[chatID] = e
	}
}

// Delete removes the session of a chat.
func (s *QuizStorage) Delete(chatID int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, chatID)
}

// DeleteIdle removes sessions not seen since before and returns their chat IDs.
func (s *QuizStorage) DeleteIdle(before time.Time) []int64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	var removed []int64
	for chatID, e := range s.sessions {
		if e.lastSeen.Before(before) {
			delete(s.sessions, chatID)
			removed = append(removed, chatID)
		}
	}
	return removed
}

// Len returns the number of stored sessions.
func (s *QuizStorage) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}
