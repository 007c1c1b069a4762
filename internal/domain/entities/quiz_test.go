package entities

import (
	"errors"
	"strconv"
	"strings"
	"testing"
)

// fakeRandomizer returns a fixed table and serves picks from a script. When
// the script runs out it returns the lowest unasked index.
type fakeRandomizer struct {
	table int
	picks []int
	calls int
}

func (f *fakeRandomizer) RandomTable() int { return f.table }

func (f *fakeRandomizer) PickUnasked(asked []int, size int) int {
	f.calls++
	if len(f.picks) > 0 {
		p := f.picks[0]
		f.picks = f.picks[1:]
		return p
	}

	seen := make(map[int]bool, len(asked))
	for _, a := range asked {
		seen[a] = true
	}
	for i := 0; i < size; i++ {
		if !seen[i] {
			return i
		}
	}
	return 0
}

func answerFor(s *QuizSession) string {
	q, _ := s.questions.At(s.CurrentIndex())
	return strconv.Itoa(q.Answer)
}

func TestNewQuizSessionDefaults(t *testing.T) {
	s := NewQuizSession(&fakeRandomizer{table: 9}, 7)

	v := s.View()
	if v.Phase != PhaseSelecting || v.Table != 9 || v.QuestionCountChosen != 7 {
		t.Fatalf("unexpected defaults: %+v", v)
	}

	st := s.State()
	if st.QuestionCount != 0 || st.Score != 0 || !st.LastAnswerCorrect || st.Active {
		t.Fatalf("unexpected state: %+v", st)
	}
}

func TestNewQuizSessionInvalidDefaultCount(t *testing.T) {
	s := NewQuizSession(&fakeRandomizer{table: 2}, 40)
	if got := s.State().QuestionCountChosen; got != DefaultQuestionCount {
		t.Fatalf("QuestionCountChosen = %d, want %d", got, DefaultQuestionCount)
	}
}

func TestStartWithoutTable(t *testing.T) {
	s := NewQuizSession(&fakeRandomizer{table: 4}, 7)
	if err := s.SelectDifficulty(DifficultyHard); err != nil {
		t.Fatal(err)
	}
	before := s.State()

	err := s.Start()
	if !errors.Is(err, ErrNoTableSelected) {
		t.Fatalf("Start() error = %v, want ErrNoTableSelected", err)
	}

	if s.Phase() != PhaseSelecting {
		t.Fatalf("phase = %s, want selecting", s.Phase())
	}
	if s.State() != before {
		t.Fatalf("state changed: %+v -> %+v", before, s.State())
	}
	if !s.View().Warning {
		t.Fatal("warning flag not raised")
	}

	if err := s.SelectTable(6); err != nil {
		t.Fatal(err)
	}
	if s.View().Warning {
		t.Fatal("selecting a table should clear the warning")
	}
}

func TestSelectionValidation(t *testing.T) {
	s := NewQuizSession(&fakeRandomizer{table: 4}, 7)

	if err := s.SelectTable(0); !errors.Is(err, ErrInvalidTable) {
		t.Errorf("SelectTable(0) = %v", err)
	}
	if err := s.SelectTable(13); !errors.Is(err, ErrInvalidTable) {
		t.Errorf("SelectTable(13) = %v", err)
	}
	if err := s.SelectQuestionCount(0); !errors.Is(err, ErrInvalidQuestionCount) {
		t.Errorf("SelectQuestionCount(0) = %v", err)
	}
	if err := s.SelectQuestionCount(13); !errors.Is(err, ErrInvalidQuestionCount) {
		t.Errorf("SelectQuestionCount(13) = %v", err)
	}
	if err := s.SelectDifficulty("impossible"); !errors.Is(err, ErrInvalidDifficulty) {
		t.Errorf("SelectDifficulty = %v", err)
	}

	if err := s.SelectAllQuestions(); err != nil {
		t.Fatal(err)
	}
	v := s.View()
	if v.QuestionCountChosen != 12 || !v.AllQuestions {
		t.Fatalf("after SelectAllQuestions: %+v", v)
	}

	if err := s.SelectQuestionCount(3); err != nil {
		t.Fatal(err)
	}
	if s.View().AllQuestions {
		t.Fatal("explicit count should clear the all-questions flag")
	}
}

func TestActionsRejectedOutsidePhase(t *testing.T) {
	s := NewQuizSession(&fakeRandomizer{table: 4}, 7)

	if _, err := s.SubmitAnswer("4"); !errors.Is(err, ErrWrongPhase) {
		t.Errorf("SubmitAnswer while selecting = %v", err)
	}
	if err := s.Acknowledge(); !errors.Is(err, ErrWrongPhase) {
		t.Errorf("Acknowledge while selecting = %v", err)
	}

	if err := s.Start(); err != nil {
		t.Fatal(err)
	}
	if err := s.SelectTable(3); !errors.Is(err, ErrWrongPhase) {
		t.Errorf("SelectTable while asking = %v", err)
	}
	if err := s.Start(); !errors.Is(err, ErrWrongPhase) {
		t.Errorf("Start while asking = %v", err)
	}
	if err := s.Acknowledge(); !errors.Is(err, ErrWrongPhase) {
		t.Errorf("Acknowledge while asking = %v", err)
	}

	if _, err := s.SubmitAnswer("nope"); err != nil {
		t.Fatal(err)
	}
	if _, err := s.SubmitAnswer("4"); !errors.Is(err, ErrWrongPhase) {
		t.Errorf("SubmitAnswer while grading = %v", err)
	}
}

func TestCorrectAnswer(t *testing.T) {
	s := NewQuizSession(&fakeRandomizer{table: 5}, 7)
	if err := s.Start(); err != nil {
		t.Fatal(err)
	}
	before := s.State()
	asked := len(s.Asked())

	fb, err := s.SubmitAnswer(" " + answerFor(s) + " ")
	if err != nil {
		t.Fatal(err)
	}

	after := s.State()
	if after.QuestionCount != before.QuestionCount+1 || after.Score != before.Score+1 {
		t.Fatalf("counters: %+v -> %+v", before, after)
	}
	if len(s.Asked()) != asked+1 {
		t.Fatalf("history grew by %d", len(s.Asked())-asked)
	}
	if !fb.Correct || fb.Title != FeedbackCorrect || !strings.Contains(fb.Message, "Your score is 1.") {
		t.Fatalf("feedback = %+v", fb)
	}
	if s.Phase() != PhaseGrading {
		t.Fatalf("phase = %s, want grading", s.Phase())
	}
}

func TestIncorrectAnswerRepeatsQuestion(t *testing.T) {
	for _, input := range []string{"0", "abc", "", "2.5"} {
		s := NewQuizSession(&fakeRandomizer{table: 5, picks: []int{4}}, 7)
		if err := s.Start(); err != nil {
			t.Fatal(err)
		}
		before := s.State()

		fb, err := s.SubmitAnswer(input)
		if err != nil {
			t.Fatalf("%q: %v", input, err)
		}
		if fb.Correct || fb.Title != FeedbackIncorrect {
			t.Fatalf("%q: feedback = %+v", input, fb)
		}

		after := s.State()
		if after.QuestionCount != before.QuestionCount || after.Score != before.Score || after.LastAnswerCorrect {
			t.Fatalf("%q: state %+v -> %+v", input, before, after)
		}

		if err := s.Acknowledge(); err != nil {
			t.Fatal(err)
		}
		if s.CurrentIndex() != 4 || s.LastAskedIndex() != 4 {
			t.Fatalf("%q: next index %d, want 4", input, s.CurrentIndex())
		}
	}
}

func TestNoRepeatsAndFinish(t *testing.T) {
	for n := MinQuestionCount; n <= MaxQuestionCount; n++ {
		s := NewQuizSession(&fakeRandomizer{table: 7}, 7)
		if err := s.SelectQuestionCount(n); err != nil {
			t.Fatal(err)
		}
		if err := s.Start(); err != nil {
			t.Fatal(err)
		}

		seen := map[int]bool{}
		for i := 0; i < n; i++ {
			if s.Phase() != PhaseAsking {
				t.Fatalf("n=%d i=%d: phase %s", n, i, s.Phase())
			}
			idx := s.CurrentIndex()
			if seen[idx] {
				t.Fatalf("n=%d: index %d repeated", n, idx)
			}
			seen[idx] = true

			fb, err := s.SubmitAnswer(answerFor(s))
			if err != nil {
				t.Fatal(err)
			}

			last := i == n-1
			if fb.Final != last {
				t.Fatalf("n=%d i=%d: final = %v", n, i, fb.Final)
			}
			if last {
				if s.Phase() != PhaseFinishing {
					t.Fatalf("n=%d: phase %s, want finishing", n, s.Phase())
				}
				break
			}
			if err := s.Acknowledge(); err != nil {
				t.Fatal(err)
			}
		}

		if got := s.State().QuestionCount; got != n+1 {
			t.Fatalf("n=%d: QuestionCount = %d", n, got)
		}
	}
}

func TestScenarioFiveTimesTable(t *testing.T) {
	rnd := &fakeRandomizer{table: 1, picks: []int{2, 8, 0}}
	s := NewQuizSession(rnd, 7)

	if err := s.SelectTable(5); err != nil {
		t.Fatal(err)
	}
	if err := s.SelectQuestionCount(3); err != nil {
		t.Fatal(err)
	}
	if err := s.Start(); err != nil {
		t.Fatal(err)
	}

	k1 := s.CurrentIndex()
	if s.State().QuestionCount != 1 || s.View().Question != "3 x 5" {
		t.Fatalf("after start: %+v", s.View())
	}

	if _, err := s.SubmitAnswer("15"); err != nil {
		t.Fatal(err)
	}
	if st := s.State(); st.Score != 1 || st.QuestionCount != 2 {
		t.Fatalf("after k1: %+v", st)
	}
	if err := s.Acknowledge(); err != nil {
		t.Fatal(err)
	}

	k2 := s.CurrentIndex()
	if k2 == k1 {
		t.Fatalf("k2 = k1 = %d", k1)
	}

	if _, err := s.SubmitAnswer("1"); err != nil {
		t.Fatal(err)
	}
	if st := s.State(); st.Score != 1 || st.QuestionCount != 2 {
		t.Fatalf("after wrong k2: %+v", st)
	}
	if err := s.Acknowledge(); err != nil {
		t.Fatal(err)
	}
	if s.CurrentIndex() != k2 {
		t.Fatalf("repeat index = %d, want %d", s.CurrentIndex(), k2)
	}

	if _, err := s.SubmitAnswer("45"); err != nil {
		t.Fatal(err)
	}
	if st := s.State(); st.Score != 2 || st.QuestionCount != 3 {
		t.Fatalf("after k2: %+v", st)
	}
	if err := s.Acknowledge(); err != nil {
		t.Fatal(err)
	}

	k3 := s.CurrentIndex()
	if k3 == k1 || k3 == k2 {
		t.Fatalf("k3 = %d repeats %d or %d", k3, k1, k2)
	}

	fb, err := s.SubmitAnswer("5")
	if err != nil {
		t.Fatal(err)
	}
	if st := s.State(); st.Score != 3 || st.QuestionCount != 4 {
		t.Fatalf("after k3: %+v", st)
	}
	if s.Phase() != PhaseFinishing || !fb.Final || !strings.Contains(fb.Message, "Your score was 3.") {
		t.Fatalf("finish: phase %s, feedback %+v", s.Phase(), fb)
	}

	rnd.table = 11
	if err := s.Acknowledge(); err != nil {
		t.Fatal(err)
	}

	st := s.State()
	if st.QuestionCount != 0 || st.Score != 0 || !st.LastAnswerCorrect || st.Active {
		t.Fatalf("after reset: %+v", st)
	}
	if len(s.Asked()) != 0 || s.Phase() != PhaseSelecting || s.View().Table != 11 || s.ID() != "" {
		t.Fatalf("after reset: %+v", s.View())
	}
	if st.QuestionCountChosen != 7 {
		t.Fatalf("QuestionCountChosen = %d, want default 7", st.QuestionCountChosen)
	}
}

func TestStartAssignsNewSessionID(t *testing.T) {
	s := NewQuizSession(&fakeRandomizer{table: 2}, 1)
	if err := s.Start(); err != nil {
		t.Fatal(err)
	}
	first := s.ID()
	if first == "" {
		t.Fatal("empty session id")
	}

	if _, err := s.SubmitAnswer(answerFor(s)); err != nil {
		t.Fatal(err)
	}
	if err := s.Acknowledge(); err != nil {
		t.Fatal(err)
	}
	if err := s.SelectTable(2); err != nil {
		t.Fatal(err)
	}
	if err := s.Start(); err != nil {
		t.Fatal(err)
	}
	if s.ID() == first {
		t.Fatal("session id reused")
	}
}

func TestParseAnswer(t *testing.T) {
	tests := []struct {
		in   string
		want int
		ok   bool
	}{
		{"42", 42, true},
		{"  7\n", 7, true},
		{"1 2", 12, true},
		{"-3", -3, true},
		{"", 0, false},
		{"   ", 0, false},
		{"twelve", 0, false},
		{"3.0", 0, false},
	}

	for _, tt := range tests {
		got, ok := ParseAnswer(tt.in)
		if got != tt.want || ok != tt.ok {
			t.Errorf("ParseAnswer(%q) = %d, %v; want %d, %v", tt.in, got, ok, tt.want, tt.ok)
		}
	}
}
