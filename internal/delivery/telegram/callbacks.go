package telegram

import (
	"context"
	"errors"
	"strconv"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"github.com/aliskhannn/times-tables-bot/internal/domain/entities"
)

func (h *Handler) handleCallback(_ context.Context, cb *tgbotapi.CallbackQuery) {
	if cb.Message == nil || cb.Message.Chat == nil {
		h.answerCallback(cb.ID, "")
		return
	}

	chatID := cb.Message.Chat.ID
	msgID := cb.Message.MessageID
	cd := decodeCallback(cb.Data)

	var (
		toast string
		err   error
	)

	switch cd.Action {
	case actionTable:
		n, convErr := strconv.Atoi(cd.param(0))
		if convErr != nil {
			toast = msgCallbackIgnored
			break
		}
		toast, err = h.updateSelection(chatID, msgID, func() (entities.QuizView, error) {
			return h.quizService.SelectTable(chatID, n)
		})

	case actionLevel:
		d := entities.Difficulty(cd.param(0))
		toast, err = h.updateSelection(chatID, msgID, func() (entities.QuizView, error) {
			return h.quizService.SelectDifficulty(chatID, d)
		})

	case actionCount:
		if cd.param(0) == countAll {
			toast, err = h.updateSelection(chatID, msgID, func() (entities.QuizView, error) {
				return h.quizService.SelectAllQuestions(chatID)
			})
			break
		}
		n, convErr := strconv.Atoi(cd.param(0))
		if convErr != nil {
			toast = msgCallbackIgnored
			break
		}
		toast, err = h.updateSelection(chatID, msgID, func() (entities.QuizView, error) {
			return h.quizService.SelectQuestionCount(chatID, n)
		})

	case actionQuiz:
		switch cd.param(0) {
		case quizStart:
			toast, err = h.startFromCallback(chatID, msgID)
		case quizOK:
			toast, err = h.acknowledgeFromCallback(chatID, msgID, cd.param(1))
		default:
			toast = msgCallbackIgnored
		}

	default:
		toast = msgCallbackIgnored
	}

	if err != nil {
		h.logger.Error("callback error",
			zap.Int64("chat_id", chatID),
			zap.String("data", cb.Data),
			zap.Error(err),
		)
		toast = msgInternalError
	}

	h.answerCallback(cb.ID, toast)
}

// updateSelection applies a selection action and redraws the selection message in place.
func (h *Handler) updateSelection(chatID int64, msgID int, apply func() (entities.QuizView, error)) (string, error) {
	v, err := apply()
	switch {
	case errors.Is(err, entities.ErrWrongPhase):
		return msgQuizInProgress, nil
	case errors.Is(err, entities.ErrInvalidTable),
		errors.Is(err, entities.ErrInvalidQuestionCount),
		errors.Is(err, entities.ErrInvalidDifficulty):
		return msgCallbackIgnored, nil
	case err != nil:
		return "", err
	}

	h.editSelection(chatID, msgID, v)
	return "", nil
}

func (h *Handler) startFromCallback(chatID int64, msgID int) (string, error) {
	v, err := h.quizService.Start(chatID)
	switch {
	case errors.Is(err, entities.ErrNoTableSelected):
		h.editSelection(chatID, msgID, v)
		return msgPickTableFirst, nil
	case errors.Is(err, entities.ErrWrongPhase):
		return msgQuizInProgress, nil
	case err != nil:
		return "", err
	}

	_ = h.send(newEdit(chatID, msgID, startedText(v)))

	return "", h.sendQuestion(chatID, v)
}

func (h *Handler) acknowledgeFromCallback(chatID int64, msgID int, sessionID string) (string, error) {
	if sessionID == "" {
		return msgCallbackIgnored, nil
	}

	v, err := h.quizService.Acknowledge(chatID, sessionID)
	switch {
	case errors.Is(err, entities.ErrStaleSession), errors.Is(err, entities.ErrWrongPhase):
		h.removeKeyboard(chatID, msgID)
		return msgQuizIsOver, nil
	case err != nil:
		return "", err
	}

	h.removeKeyboard(chatID, msgID)

	if v.Phase == entities.PhaseAsking {
		return "", h.sendQuestion(chatID, v)
	}
	return "", h.sendSelection(chatID, v)
}

// editSelection redraws the selection screen. Telegram rejects edits that
// change nothing, so failures are only logged.
func (h *Handler) editSelection(chatID int64, msgID int, v entities.QuizView) {
	edit := newEdit(chatID, msgID, selectionText(v))
	kb := buildSelectionKeyboard(v)
	edit.ReplyMarkup = &kb
	_ = h.send(edit)
}

func (h *Handler) removeKeyboard(chatID int64, msgID int) {
	empty := tgbotapi.InlineKeyboardMarkup{InlineKeyboard: [][]tgbotapi.InlineKeyboardButton{}}
	_ = h.send(tgbotapi.NewEditMessageReplyMarkup(chatID, msgID, empty))
}
