package telegram

import (
	"strconv"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/aliskhannn/times-tables-bot/internal/domain/entities"
)

const (
	firstTableButton = 2 // table 1 is only reachable with /table 1
	buttonsPerRow    = 6
)

var difficultyMarks = map[entities.Difficulty]string{
	entities.DifficultyEasy:   "🟢",
	entities.DifficultyMedium: "🟡",
	entities.DifficultyHard:   "🔴",
}

// buildSelectionKeyboard builds the keyboard of the selection screen.
func buildSelectionKeyboard(v entities.QuizView) tgbotapi.InlineKeyboardMarkup {
	var rows [][]tgbotapi.InlineKeyboardButton

	var levels []tgbotapi.InlineKeyboardButton
	for _, d := range entities.Difficulties {
		label := difficultyMarks[d] + " " + d.Title()
		if v.Difficulty == d && v.Table == entities.NoTable {
			label = "▶️ " + d.Title()
		}
		levels = append(levels, tgbotapi.NewInlineKeyboardButtonData(label, buildLevelCallback(d)))
	}
	rows = append(rows, levels)

	var tables []tgbotapi.InlineKeyboardButton
	for n := firstTableButton; n <= entities.MaxTable; n++ {
		tables = append(tables, tgbotapi.NewInlineKeyboardButtonData(tableLabel(v, n), buildTableCallback(n)))
	}
	rows = append(rows, chunk(tables, buttonsPerRow)...)

	var counts []tgbotapi.InlineKeyboardButton
	for n := entities.MinQuestionCount; n <= entities.MaxQuestionCount; n++ {
		label := strconv.Itoa(n)
		if n == v.QuestionCountChosen && !v.AllQuestions {
			label = "✅ " + label
		}
		counts = append(counts, tgbotapi.NewInlineKeyboardButtonData(label, buildCountCallback(n)))
	}
	rows = append(rows, chunk(counts, buttonsPerRow)...)

	allLabel := "All questions!"
	if v.AllQuestions {
		allLabel = "✅ " + allLabel
	}
	rows = append(rows,
		tgbotapi.NewInlineKeyboardRow(tgbotapi.NewInlineKeyboardButtonData(allLabel, buildCountAllCallback())),
		tgbotapi.NewInlineKeyboardRow(tgbotapi.NewInlineKeyboardButtonData("Let's go!", buildQuizStartCallback())),
	)

	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}

// tableLabel marks the selected table and dims tables outside the selected
// difficulty group.
func tableLabel(v entities.QuizView, n int) string {
	label := strconv.Itoa(n)
	if n == v.Table {
		return "✅ " + label
	}

	d := entities.DifficultyOf(n)
	if v.Difficulty != entities.DifficultyNone && v.Difficulty != d {
		return label
	}
	return difficultyMarks[d] + " " + label
}

// buildFeedbackKeyboard builds the OK button under a feedback message.
func buildFeedbackKeyboard(sessionID string) tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("OK", buildQuizOKCallback(sessionID)),
		),
	)
}

func chunk(buttons []tgbotapi.InlineKeyboardButton, size int) [][]tgbotapi.InlineKeyboardButton {
	var rows [][]tgbotapi.InlineKeyboardButton
	for size < len(buttons) {
		buttons, rows = buttons[size:], append(rows, buttons[:size:size])
	}
	if len(buttons) > 0 {
		rows = append(rows, buttons)
	}
	return rows
}
