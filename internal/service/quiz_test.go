package service

import (
	"context"
	"errors"
	"strconv"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/aliskhannn/times-tables-bot/internal/domain/entities"
	"github.com/aliskhannn/times-tables-bot/internal/storage"
)

// orderedRandomizer always returns the lowest unasked index.
type orderedRandomizer struct{ table int }

func (r orderedRandomizer) RandomTable() int { return r.table }

func (r orderedRandomizer) PickUnasked(asked []int, size int) int {
	c := unaskedCandidates(asked, size)
	if len(c) == 0 {
		return 0
	}
	return c[0]
}

func newTestQuizService() *QuizService {
	return NewQuizService(storage.NewQuizStorage(), orderedRandomizer{table: 4}, 2, zap.NewNop())
}

func TestQuizServiceCreatesSessionOnFirstContact(t *testing.T) {
	svc := newTestQuizService()

	v := svc.View(10)
	if v.Phase != entities.PhaseSelecting || v.Table != 4 || v.QuestionCountChosen != 2 {
		t.Fatalf("view = %+v", v)
	}
	if svc.ActiveSessions() != 1 {
		t.Fatalf("ActiveSessions = %d", svc.ActiveSessions())
	}

	svc.View(11)
	svc.View(10)
	if svc.ActiveSessions() != 2 {
		t.Fatalf("ActiveSessions = %d, want 2", svc.ActiveSessions())
	}
}

func TestQuizServiceFullRound(t *testing.T) {
	svc := newTestQuizService()
	const chat = int64(1)

	if _, err := svc.SelectTable(chat, 6); err != nil {
		t.Fatal(err)
	}
	v, err := svc.Start(chat)
	if err != nil {
		t.Fatal(err)
	}
	if v.Phase != entities.PhaseAsking || v.Question != "1 x 6" || v.QuestionCount != 1 {
		t.Fatalf("after start: %+v", v)
	}

	v, err = svc.SubmitAnswer(chat, "6")
	if err != nil {
		t.Fatal(err)
	}
	if !v.Feedback.Correct || v.Phase != entities.PhaseGrading || v.Score != 1 {
		t.Fatalf("after answer: %+v", v)
	}

	v, err = svc.Acknowledge(chat, v.SessionID)
	if err != nil {
		t.Fatal(err)
	}
	if v.Question != "2 x 6" {
		t.Fatalf("next question = %q", v.Question)
	}

	v, err = svc.SubmitAnswer(chat, strconv.Itoa(12))
	if err != nil {
		t.Fatal(err)
	}
	if v.Phase != entities.PhaseFinishing || !v.Feedback.Final {
		t.Fatalf("after last answer: %+v", v)
	}

	v, err = svc.Acknowledge(chat, "")
	if err != nil {
		t.Fatal(err)
	}
	if v.Phase != entities.PhaseSelecting || v.Score != 0 || v.SessionID != "" {
		t.Fatalf("after reset: %+v", v)
	}
}

func TestQuizServiceStartWithoutTable(t *testing.T) {
	svc := newTestQuizService()

	if _, err := svc.SelectDifficulty(1, entities.DifficultyMedium); err != nil {
		t.Fatal(err)
	}

	v, err := svc.Start(1)
	if !errors.Is(err, entities.ErrNoTableSelected) {
		t.Fatalf("err = %v", err)
	}
	if !v.Warning || v.Phase != entities.PhaseSelecting {
		t.Fatalf("view = %+v", v)
	}
}

func TestQuizServiceRejectsStaleAcknowledge(t *testing.T) {
	svc := newTestQuizService()

	v, err := svc.Start(1)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := svc.SubmitAnswer(1, "wrong"); err != nil {
		t.Fatal(err)
	}

	if _, err := svc.Acknowledge(1, "old-session"); !errors.Is(err, entities.ErrStaleSession) {
		t.Fatalf("err = %v, want ErrStaleSession", err)
	}
	if got := svc.View(1).Phase; got != entities.PhaseGrading {
		t.Fatalf("phase = %s, want grading", got)
	}

	if _, err := svc.Acknowledge(1, v.SessionID); err != nil {
		t.Fatal(err)
	}
}

func TestQuizServiceStop(t *testing.T) {
	svc := newTestQuizService()

	if _, err := svc.Start(1); err != nil {
		t.Fatal(err)
	}
	v := svc.Stop(1)
	if v.Phase != entities.PhaseSelecting || v.SessionID != "" {
		t.Fatalf("after stop: %+v", v)
	}
}

func TestQuizServiceWrapsErrors(t *testing.T) {
	svc := newTestQuizService()

	if _, err := svc.SelectTable(1, 99); !errors.Is(err, entities.ErrInvalidTable) {
		t.Fatalf("err = %v", err)
	}
	if _, err := svc.SubmitAnswer(1, "4"); !errors.Is(err, entities.ErrWrongPhase) {
		t.Fatalf("err = %v", err)
	}
}

func TestQuizServiceSweepIdle(t *testing.T) {
	svc := newTestQuizService()
	svc.View(1)
	svc.View(2)

	if n := svc.SweepIdle(time.Hour); n != 0 {
		t.Fatalf("swept %d fresh sessions", n)
	}

	svc.now = func() time.Time { return time.Now().Add(2 * time.Hour) }
	if n := svc.SweepIdle(time.Hour); n != 2 {
		t.Fatalf("swept %d, want 2", n)
	}
	if svc.ActiveSessions() != 0 {
		t.Fatalf("ActiveSessions = %d", svc.ActiveSessions())
	}
}

type countingSweeper struct {
	calls chan time.Duration
}

func (s *countingSweeper) SweepIdle(ttl time.Duration) int {
	s.calls <- ttl
	return 1
}

func TestJanitorRunsSweep(t *testing.T) {
	sweeper := &countingSweeper{calls: make(chan time.Duration, 10)}
	j := NewJanitor(sweeper, "@every 1s", time.Minute, zap.NewNop())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- j.Start(ctx) }()

	select {
	case ttl := <-sweeper.calls:
		if ttl != time.Minute {
			t.Fatalf("ttl = %s", ttl)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("sweep not triggered")
	}

	cancel()
	if err := <-done; err != nil {
		t.Fatal(err)
	}
}

func TestJanitorInvalidSchedule(t *testing.T) {
	j := NewJanitor(&countingSweeper{calls: make(chan time.Duration, 1)}, "not a schedule", time.Minute, zap.NewNop())
	if err := j.Start(context.Background()); err == nil {
		t.Fatal("expected error for invalid schedule")
	}
}
