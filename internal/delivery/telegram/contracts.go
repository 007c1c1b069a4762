package telegram

import (
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/aliskhannn/times-tables-bot/internal/domain/entities"
)

// Bot is the part of *tgbotapi.BotAPI the handler uses.
type Bot interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
	Request(c tgbotapi.Chattable) (*tgbotapi.APIResponse, error)
	GetUpdatesChan(config tgbotapi.UpdateConfig) tgbotapi.UpdatesChannel
	StopReceivingUpdates()
}

type QuizService interface {
	View(chatID int64) entities.QuizView
	SelectTable(chatID int64, table int) (entities.QuizView, error)
	SelectDifficulty(chatID int64, d entities.Difficulty) (entities.QuizView, error)
	SelectQuestionCount(chatID int64, n int) (entities.QuizView, error)
	SelectAllQuestions(chatID int64) (entities.QuizView, error)
	Start(chatID int64) (entities.QuizView, error)
	SubmitAnswer(chatID int64, text string) (entities.QuizView, error)
	Acknowledge(chatID int64, sessionID string) (entities.QuizView, error)
	Stop(chatID int64) entities.QuizView
}
