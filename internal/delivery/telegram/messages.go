// messages.go contains message templates and formatting functions for Telegram.

package telegram

import (
	"fmt"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/aliskhannn/times-tables-bot/internal/domain/entities"
)

// Plain messages.
const (
	msgInternalError   = "Something went wrong. Please try again."
	msgUnknownCommand  = "Unknown command. Use /play to pick a times table or /help for the command list."
	msgPickTableFirst  = "Select a times table to practice first."
	msgUseTable        = "Use: /table N, where N is from 1 to 12."
	msgUseCount        = "Use: /count N, where N is from 1 to 12, or /count all."
	msgPressOK         = "Tap OK to continue."
	msgNoQuizRunning   = "There is no quiz running. Use /play to start one."
	msgQuizStopped     = "Quiz stopped."
	msgQuizIsOver      = "This quiz is already over."
	msgQuizInProgress  = "A quiz is in progress. Answer the question or use /stop."
	msgTypeYourAnswer  = "Type your answer."
	msgCallbackIgnored = "Nothing to do here."
)

const msgHelp = `TimesTables helps you practice multiplication.

/play — choose a times table and a number of questions
/table N — choose the N times table (1–12)
/count N — choose how many questions to answer (1–12, or "all")
/all — answer all 12 questions
/go — start the quiz
/stop — abandon the running quiz
/help — show this message`

// md escapes plain text for MarkdownV2.
func md(s string) string {
	return tgbotapi.EscapeText(tgbotapi.ModeMarkdownV2, s)
}

func bold(s string) string {
	return "*" + md(s) + "*"
}

// newMessage creates a message with MarkdownV2 parse mode.
func newMessage(chatID int64, text string) tgbotapi.MessageConfig {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ParseMode = tgbotapi.ModeMarkdownV2
	return msg
}

// newPlainMessage creates a plain message without MarkdownV2 parse mode.
func newPlainMessage(chatID int64, text string) tgbotapi.MessageConfig {
	return tgbotapi.NewMessage(chatID, text)
}

// newEdit creates an edit with MarkdownV2 parse mode.
func newEdit(chatID int64, msgID int, text string) tgbotapi.EditMessageTextConfig {
	edit := tgbotapi.NewEditMessageText(chatID, msgID, text)
	edit.ParseMode = tgbotapi.ModeMarkdownV2
	return edit
}

func welcomeText() string {
	var sb strings.Builder

	sb.WriteString(bold("TimesTables"))
	sb.WriteString("\n\n")
	sb.WriteString(md("Pick a times table, choose how many questions you want, and type your answers."))
	sb.WriteString("\n")
	sb.WriteString(md("Miss one and you get another go at the same question."))
	sb.WriteString("\n\n")
	sb.WriteString(md("Use /help to see every command."))

	return sb.String()
}

// selectionText renders the selection screen.
func selectionText(v entities.QuizView) string {
	var sb strings.Builder

	sb.WriteString(bold("What do you want to practice?"))
	sb.WriteString("\n")
	if v.Warning {
		sb.WriteString(md("⚠️ Select a times table to practice to begin."))
	} else {
		sb.WriteString(md("Select a times table to practice to begin."))
	}
	sb.WriteString("\n")

	switch {
	case v.Table != entities.NoTable:
		sb.WriteString(md(fmt.Sprintf("Let's practice the %ds!", v.Table)))
		sb.WriteString("\n")
	case v.Difficulty != entities.DifficultyNone:
		sb.WriteString(md(fmt.Sprintf("Pick one of the %s tables.", strings.ToLower(v.Difficulty.Title()))))
		sb.WriteString("\n")
	}

	sb.WriteString("\n")
	sb.WriteString(bold("How many questions?"))
	sb.WriteString("\n")
	sb.WriteString(md("Select a number of questions to be asked.\nFeeling brainy? Try all the questions!"))
	sb.WriteString("\n")
	if v.AllQuestions {
		sb.WriteString(md(fmt.Sprintf("Questions: all %d", v.QuestionCountChosen)))
	} else {
		sb.WriteString(md(fmt.Sprintf("Questions: %d", v.QuestionCountChosen)))
	}
	sb.WriteString("\n\n")

	sb.WriteString(bold("Ready to practice?"))

	return sb.String()
}

// startedText replaces the selection screen once the quiz has started.
func startedText(v entities.QuizView) string {
	return md(fmt.Sprintf("Let's practice the %ds! %d questions.", v.Table, v.QuestionCountChosen))
}

// questionText renders the question being asked.
func questionText(v entities.QuizView) string {
	return fmt.Sprintf(
		"%s\n\n%s\n\n%s\n\n%s",
		md(fmt.Sprintf("Question %d of %d", v.QuestionCount, v.QuestionCountChosen)),
		bold(v.Question),
		bold(fmt.Sprintf("Score: %d", v.Score)),
		md(msgTypeYourAnswer),
	)
}

// feedbackText renders the grading result.
func feedbackText(fb entities.Feedback) string {
	icon := "❌"
	if fb.Correct {
		icon = "✅"
	}
	return fmt.Sprintf("%s %s\n\n%s", icon, bold(fb.Title), md(fb.Message))
}
