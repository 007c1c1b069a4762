package service

import (
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/aliskhannn/times-tables-bot/internal/domain/entities"
)

type QuizStorage interface {
	Store(chatID int64, session *entities.QuizSession)
	Get(chatID int64) (*entities.QuizSession, bool)
	Touch(chatID int64)
	DeleteIdle(before time.Time) []int64
	Len() int
}

// QuizService hosts one quiz session per chat and serialises every action on it.
type QuizService struct {
	mu           sync.Mutex
	storage      QuizStorage
	rnd          entities.Randomizer
	defaultCount int
	logger       *zap.Logger
	now          func() time.Time
}

func NewQuizService(
	storage QuizStorage,
	rnd entities.Randomizer,
	defaultCount int,
	logger *zap.Logger,
) *QuizService {
	return &QuizService{
		storage:      storage,
		rnd:          rnd,
		defaultCount: defaultCount,
		logger:       logger,
		now:          time.Now,
	}
}

// withSession runs fn on the chat's session, creating it on first contact,
// and returns the resulting view.
func (s *QuizService) withSession(chatID int64, fn func(*entities.QuizSession) error) (entities.QuizView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	session, ok := s.storage.Get(chatID)
	if ok {
		s.storage.Touch(chatID)
	} else {
		session = entities.NewQuizSession(s.rnd, s.defaultCount)
		s.storage.Store(chatID, session)
		s.logger.Debug("quiz session created", zap.Int64("chat_id", chatID))
	}

	err := fn(session)
	return session.View(), err
}

// View returns the current state of the chat's session.
func (s *QuizService) View(chatID int64) entities.QuizView {
	v, _ := s.withSession(chatID, func(*entities.QuizSession) error { return nil })
	return v
}

func (s *QuizService) SelectTable(chatID int64, table int) (entities.QuizView, error) {
	return s.withSession(chatID, func(qs *entities.QuizSession) error {
		if err := qs.SelectTable(table); err != nil {
			return fmt.Errorf("select table %d: %w", table, err)
		}
		return nil
	})
}

func (s *QuizService) SelectDifficulty(chatID int64, d entities.Difficulty) (entities.QuizView, error) {
	return s.withSession(chatID, func(qs *entities.QuizSession) error {
		if err := qs.SelectDifficulty(d); err != nil {
			return fmt.Errorf("select difficulty %q: %w", d, err)
		}
		return nil
	})
}

func (s *QuizService) SelectQuestionCount(chatID int64, n int) (entities.QuizView, error) {
	return s.withSession(chatID, func(qs *entities.QuizSession) error {
		if err := qs.SelectQuestionCount(n); err != nil {
			return fmt.Errorf("select question count %d: %w", n, err)
		}
		return nil
	})
}

func (s *QuizService) SelectAllQuestions(chatID int64) (entities.QuizView, error) {
	return s.withSession(chatID, func(qs *entities.QuizSession) error {
		if err := qs.SelectAllQuestions(); err != nil {
			return fmt.Errorf("select all questions: %w", err)
		}
		return nil
	})
}

// Start begins the quiz. ErrNoTableSelected is returned together with a view
// whose Warning flag is set.
func (s *QuizService) Start(chatID int64) (entities.QuizView, error) {
	return s.withSession(chatID, func(qs *entities.QuizSession) error {
		if err := qs.Start(); err != nil {
			return fmt.Errorf("start quiz: %w", err)
		}

		v := qs.View()
		s.logger.Info("quiz started",
			zap.Int64("chat_id", chatID),
			zap.String("session_id", v.SessionID),
			zap.Int("table", v.Table),
			zap.Int("questions", v.QuestionCountChosen),
		)
		return nil
	})
}

// SubmitAnswer grades text against the current question. The returned view
// carries the feedback.
func (s *QuizService) SubmitAnswer(chatID int64, text string) (entities.QuizView, error) {
	return s.withSession(chatID, func(qs *entities.QuizSession) error {
		fb, err := qs.SubmitAnswer(text)
		if err != nil {
			return fmt.Errorf("submit answer: %w", err)
		}

		st := qs.State()
		s.logger.Debug("answer graded",
			zap.Int64("chat_id", chatID),
			zap.String("session_id", qs.ID()),
			zap.Bool("correct", fb.Correct),
			zap.Int("score", st.Score),
		)
		if fb.Final {
			s.logger.Info("quiz completed",
				zap.Int64("chat_id", chatID),
				zap.String("session_id", qs.ID()),
				zap.Int("score", st.Score),
				zap.Int("questions", st.QuestionCountChosen),
			)
		}
		return nil
	})
}

// Acknowledge dismisses the current feedback. A non-empty sessionID must match
// the running quiz, otherwise ErrStaleSession is returned.
func (s *QuizService) Acknowledge(chatID int64, sessionID string) (entities.QuizView, error) {
	return s.withSession(chatID, func(qs *entities.QuizSession) error {
		if sessionID != "" && sessionID != qs.ID() {
			return entities.ErrStaleSession
		}
		if err := qs.Acknowledge(); err != nil {
			return fmt.Errorf("acknowledge feedback: %w", err)
		}
		return nil
	})
}

// Stop abandons a running quiz and resets the session.
func (s *QuizService) Stop(chatID int64) entities.QuizView {
	v, _ := s.withSession(chatID, func(qs *entities.QuizSession) error {
		if qs.State().Active {
			s.logger.Info("quiz stopped",
				zap.Int64("chat_id", chatID),
				zap.String("session_id", qs.ID()),
			)
		}
		qs.Reset()
		return nil
	})
	return v
}

// SweepIdle removes sessions idle for longer than ttl and returns how many
// were removed.
func (s *QuizService) SweepIdle(ttl time.Duration) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	removed := s.storage.DeleteIdle(s.now().Add(-ttl))
	for _, chatID := range removed {
		s.logger.Debug("idle quiz session evicted", zap.Int64("chat_id", chatID))
	}
	return len(removed)
}

// ActiveSessions returns the number of sessions held in memory.
func (s *QuizService) ActiveSessions() int {
	return s.storage.Len()
}
