package telegram

import (
	"strconv"
	"strings"

	"github.com/aliskhannn/times-tables-bot/internal/domain/entities"
)

// Callback action constants.
const (
	actionTable = "table"
	actionLevel = "level"
	actionCount = "count"
	actionQuiz  = "quiz"
)

// Count sub-actions.
const (
	countAll = "all"
)

// Quiz sub-actions.
const (
	quizStart = "start"
	quizOK    = "ok"
)

// callbackData represents structured callback data.
type callbackData struct {
	Action string
	Params []string
	Raw    string
}

// encode creates callback string.
func (cd callbackData) encode() string {
	if len(cd.Params) == 0 {
		return cd.Action
	}
	return cd.Action + ":" + strings.Join(cd.Params, ":")
}

// param returns the i-th parameter or an empty string.
func (cd callbackData) param(i int) string {
	if i < 0 || i >= len(cd.Params) {
		return ""
	}
	return cd.Params[i]
}

// decodeCallback parses callback data string.
func decodeCallback(data string) callbackData {
	parts := strings.Split(data, ":")
	return callbackData{
		Action: parts[0],
		Params: parts[1:],
		Raw:    data,
	}
}

// buildTableCallback builds callback data for choosing a table.
func buildTableCallback(table int) string {
	return callbackData{
		Action: actionTable,
		Params: []string{strconv.Itoa(table)},
	}.encode()
}

// buildLevelCallback builds callback data for choosing a difficulty group.
func buildLevelCallback(d entities.Difficulty) string {
	return callbackData{
		Action: actionLevel,
		Params: []string{string(d)},
	}.encode()
}

// buildCountCallback builds callback data for choosing the question count.
func buildCountCallback(n int) string {
	return callbackData{
		Action: actionCount,
		Params: []string{strconv.Itoa(n)},
	}.encode()
}

// buildCountAllCallback builds callback data for answering every question.
func buildCountAllCallback() string {
	return callbackData{
		Action: actionCount,
		Params: []string{countAll},
	}.encode()
}

// buildQuizStartCallback builds callback data for starting a quiz session.
func buildQuizStartCallback() string {
	return callbackData{
		Action: actionQuiz,
		Params: []string{quizStart},
	}.encode()
}

// buildQuizOKCallback builds callback data for acknowledging feedback of a session.
func buildQuizOKCallback(sessionID string) string {
	return callbackData{
		Action: actionQuiz,
		Params: []string{quizOK, sessionID},
	}.encode()
}
