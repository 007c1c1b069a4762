package entities

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/google/uuid"
)

// Phase is the stage of a quiz session.
type Phase string

const (
	PhaseSelecting Phase = "selecting" // choosing table and question count
	PhaseAsking    Phase = "asking"    // a question is waiting for an answer
	PhaseGrading   Phase = "grading"   // feedback for the last answer is shown
	PhaseFinishing Phase = "finishing" // final feedback is shown, reset on acknowledge
)

// Feedback titles.
const (
	FeedbackCorrect   = "Correct"
	FeedbackIncorrect = "Incorrect"
)

// Randomizer supplies every random choice a session makes.
type Randomizer interface {
	// RandomTable returns a table in [MinTable, MaxTable].
	RandomTable() int
	// PickUnasked returns an index in [0, size) not present in asked,
	// or any index in [0, size) once all of them have been asked.
	PickUnasked(asked []int, size int) int
}

// SessionState holds the counters of a quiz session.
type SessionState struct {
	QuestionCount       int  // questions reached so far, starts at 1 on start
	QuestionCountChosen int  // target number of questions, 1..12
	Score               int  // correct answers
	LastAnswerCorrect   bool // false forces the last question to be asked again
	Active              bool // quiz in progress vs selection screen
}

// Feedback is the result of grading one answer.
type Feedback struct {
	Title   string
	Message string
	Correct bool
	Final   bool // the quiz is complete
}

// QuizView is a read-only snapshot of a session for presentation layers.
type QuizView struct {
	SessionID           string
	Phase               Phase
	Table               int
	Difficulty          Difficulty
	AllQuestions        bool
	QuestionCount       int
	QuestionCountChosen int
	Score               int
	Question            string // set while asking
	Feedback            Feedback
	Warning             bool // start was attempted without a table
}

// QuizSession drives one user's quiz: select -> ask -> grade -> repeat/finish -> reset.
// It is not safe for concurrent use.
type QuizSession struct {
	id           string
	table        int
	difficulty   Difficulty
	allQuestions bool
	defaultCount int

	state     SessionState
	questions QuestionSet
	asked     []int

	phase          Phase
	currentIndex   int
	lastAskedIndex int
	feedback       Feedback
	warning        bool

	rnd Randomizer
}

// NewQuizSession creates a session on the selection screen with a random table
// and defaultCount questions. An out-of-range defaultCount falls back to
// DefaultQuestionCount.
func NewQuizSession(rnd Randomizer, defaultCount int) *QuizSession {
	if !ValidQuestionCount(defaultCount) {
		defaultCount = DefaultQuestionCount
	}

	s := &QuizSession{
		rnd:          rnd,
		defaultCount: defaultCount,
	}
	s.Reset()

	return s
}

// Reset returns the session to its defaults: random table, default question
// count, zero score and an empty history.
func (s *QuizSession) Reset() {
	s.id = ""
	s.table = s.rnd.RandomTable()
	s.difficulty = DifficultyNone
	s.allQuestions = false
	s.state = SessionState{
		QuestionCount:       0,
		QuestionCountChosen: s.defaultCount,
		Score:               0,
		LastAnswerCorrect:   true,
		Active:              false,
	}
	s.questions = nil
	s.asked = nil
	s.phase = PhaseSelecting
	s.currentIndex = 0
	s.lastAskedIndex = 0
	s.feedback = Feedback{}
	s.warning = false
}

// SelectTable chooses the table to practice.
func (s *QuizSession) SelectTable(table int) error {
	if s.phase != PhaseSelecting {
		return ErrWrongPhase
	}
	if !ValidTable(table) {
		return ErrInvalidTable
	}

	s.table = table
	s.difficulty = DifficultyOf(table)
	s.warning = false

	return nil
}

// SelectDifficulty narrows the selection to a difficulty group and clears the
// chosen table, so a table from the group has to be picked next.
func (s *QuizSession) SelectDifficulty(d Difficulty) error {
	if s.phase != PhaseSelecting {
		return ErrWrongPhase
	}
	if !d.Valid() {
		return ErrInvalidDifficulty
	}

	s.difficulty = d
	s.table = NoTable

	return nil
}

// SelectQuestionCount sets how many questions the quiz will ask.
func (s *QuizSession) SelectQuestionCount(n int) error {
	if s.phase != PhaseSelecting {
		return ErrWrongPhase
	}
	if !ValidQuestionCount(n) {
		return ErrInvalidQuestionCount
	}

	s.state.QuestionCountChosen = n
	s.allQuestions = false

	return nil
}

// SelectAllQuestions sets the question count to every question of the table.
func (s *QuizSession) SelectAllQuestions() error {
	if s.phase != PhaseSelecting {
		return ErrWrongPhase
	}

	s.state.QuestionCountChosen = MaxQuestionCount
	s.allQuestions = true

	return nil
}

// Start generates the question set and asks the first question.
// Without a selected table it raises the warning flag and returns
// ErrNoTableSelected, leaving everything else untouched.
func (s *QuizSession) Start() error {
	if s.phase != PhaseSelecting {
		return ErrWrongPhase
	}
	if s.table == NoTable {
		s.warning = true
		return ErrNoTableSelected
	}

	s.id = uuid.NewString()
	s.questions = GenerateQuestionSet(s.table)
	s.asked = nil
	s.state.QuestionCount = 1
	s.state.Score = 0
	s.state.LastAnswerCorrect = true
	s.state.Active = true
	s.warning = false
	s.feedback = Feedback{}

	s.ask()

	return nil
}

// ask picks the question for the Asking phase. A missed question is asked again.
func (s *QuizSession) ask() {
	if s.state.LastAnswerCorrect {
		s.currentIndex = s.rnd.PickUnasked(s.asked, len(s.questions))
	} else {
		s.currentIndex = s.lastAskedIndex
	}
	s.phase = PhaseAsking
}

// SubmitAnswer grades text against the current question. Text that is not a
// number counts as a wrong answer.
func (s *QuizSession) SubmitAnswer(text string) (Feedback, error) {
	if s.phase != PhaseAsking {
		return Feedback{}, ErrWrongPhase
	}

	s.asked = append(s.asked, s.currentIndex)
	s.lastAskedIndex = s.currentIndex

	q, _ := s.questions.At(s.currentIndex)
	answer, ok := ParseAnswer(text)

	var fb Feedback
	if ok && answer == q.Answer {
		s.state.Score++
		s.state.QuestionCount++
		s.state.LastAnswerCorrect = true
		fb = Feedback{
			Title:   FeedbackCorrect,
			Message: fmt.Sprintf("Well done!\nYour score is %d.\nKeep up the good work.", s.state.Score),
			Correct: true,
		}
	} else {
		s.state.LastAnswerCorrect = false
		fb = Feedback{
			Title:   FeedbackIncorrect,
			Message: "Unlucky!\nHave another go.",
		}
	}

	if s.state.QuestionCount > s.state.QuestionCountChosen {
		fb.Final = true
		fb.Message += fmt.Sprintf("\n\nYou've finished all the questions!\nYour score was %d.\nPlay again?", s.state.Score)
		s.phase = PhaseFinishing
	} else {
		s.phase = PhaseGrading
	}

	s.feedback = fb

	return fb, nil
}

// Acknowledge dismisses the current feedback. After regular feedback the next
// question is asked; after the final one the session is reset.
func (s *QuizSession) Acknowledge() error {
	switch s.phase {
	case PhaseGrading:
		s.feedback = Feedback{}
		s.ask()
		return nil
	case PhaseFinishing:
		s.Reset()
		return nil
	default:
		return ErrWrongPhase
	}
}

// ID returns the identifier of the running quiz, empty on the selection screen.
func (s *QuizSession) ID() string { return s.id }

// Phase returns the current phase.
func (s *QuizSession) Phase() Phase { return s.phase }

// State returns a copy of the session counters.
func (s *QuizSession) State() SessionState { return s.state }

// Asked returns a copy of the asked-question history.
func (s *QuizSession) Asked() []int { return append([]int(nil), s.asked...) }

// CurrentIndex returns the index of the question being asked.
func (s *QuizSession) CurrentIndex() int { return s.currentIndex }

// LastAskedIndex returns the index of the most recently answered question.
func (s *QuizSession) LastAskedIndex() int { return s.lastAskedIndex }

// View returns a snapshot for rendering.
func (s *QuizSession) View() QuizView {
	v := QuizView{
		SessionID:           s.id,
		Phase:               s.phase,
		Table:               s.table,
		Difficulty:          s.difficulty,
		AllQuestions:        s.allQuestions,
		QuestionCount:       s.state.QuestionCount,
		QuestionCountChosen: s.state.QuestionCountChosen,
		Score:               s.state.Score,
		Feedback:            s.feedback,
		Warning:             s.warning,
	}

	if s.phase == PhaseAsking {
		if q, ok := s.questions.At(s.currentIndex); ok {
			v.Question = q.Text
		}
	}

	return v
}

// ParseAnswer normalises user input and parses it as an integer.
func ParseAnswer(text string) (int, bool) {
	text = strings.Join(strings.Fields(text), "")
	if text == "" {
		return 0, false
	}

	n, err := strconv.Atoi(text)
	if err != nil {
		return 0, false
	}
	return n, true
}
