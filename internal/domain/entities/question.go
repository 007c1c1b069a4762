package entities

import "fmt"

// QuestionsPerTable is the number of questions generated for a single table.
const QuestionsPerTable = 12

// Question is a single "multiplier x table" prompt with its expected answer.
type Question struct {
	Multiplier int    // left operand, 1..12
	Table      int    // the table being practiced
	Text       string // rendered prompt, e.g. "7 x 5"
	Answer     int    // Multiplier * Table
}

// QuestionSet holds the ordered questions of one table, indexed 0..11.
type QuestionSet []Question

// GenerateQuestionSet returns the 12 questions for table, where index i holds
// "(i+1) x table". The caller is responsible for keeping table in range.
func GenerateQuestionSet(table int) QuestionSet {
	set := make(QuestionSet, 0, QuestionsPerTable)
	for multiplier := 1; multiplier <= QuestionsPerTable; multiplier++ {
		set = append(set, Question{
			Multiplier: multiplier,
			Table:      table,
			Text:       fmt.Sprintf("%d x %d", multiplier, table),
			Answer:     multiplier * table,
		})
	}
	return set
}

// At returns the question at index and whether the index is valid.
func (s QuestionSet) At(index int) (Question, bool) {
	if index < 0 || index >= len(s) {
		return Question{}, false
	}
	return s[index], true
}
