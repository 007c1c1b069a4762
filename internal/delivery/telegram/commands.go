package telegram

import (
	"context"
	"errors"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/aliskhannn/times-tables-bot/internal/domain/entities"
)

func (h *Handler) handleCommand(ctx context.Context, chatID int64, command, args string) {
	var fn HandlerFunc

	switch command {
	case "start":
		fn = h.handleStart()
	case "play":
		fn = h.handlePlay()
	case "table":
		fn = h.handleTableCommand(args)
	case "count":
		fn = h.handleCountCommand(args)
	case "all":
		fn = h.handleSelection(func() (entities.QuizView, error) {
			return h.quizService.SelectAllQuestions(chatID)
		})
	case "go":
		fn = h.handleGo()
	case "stop":
		fn = h.handleStop()
	case "help":
		fn = h.handlePlain(msgHelp)
	default:
		fn = h.handlePlain(msgUnknownCommand)
	}

	_ = h.withErrorHandling(fn)(ctx, chatID)
}

func (h *Handler) handlePlain(text string) HandlerFunc {
	return func(_ context.Context, chatID int64) error {
		return h.send(newPlainMessage(chatID, text))
	}
}

// handleStart greets the user and shows the selection screen.
func (h *Handler) handleStart() HandlerFunc {
	return func(ctx context.Context, chatID int64) error {
		if err := h.send(newMessage(chatID, welcomeText())); err != nil {
			return err
		}
		return h.handlePlay()(ctx, chatID)
	}
}

// handlePlay shows the selection screen, or the current question if a quiz is running.
func (h *Handler) handlePlay() HandlerFunc {
	return func(_ context.Context, chatID int64) error {
		v := h.quizService.View(chatID)

		switch v.Phase {
		case entities.PhaseAsking:
			return h.sendQuestion(chatID, v)
		case entities.PhaseGrading, entities.PhaseFinishing:
			return h.sendFeedback(chatID, v)
		default:
			return h.sendSelection(chatID, v)
		}
	}
}

func (h *Handler) handleTableCommand(args string) HandlerFunc {
	return func(ctx context.Context, chatID int64) error {
		n, err := strconv.Atoi(strings.TrimSpace(args))
		if err != nil {
			return h.send(newPlainMessage(chatID, msgUseTable))
		}

		return h.handleSelection(func() (entities.QuizView, error) {
			return h.quizService.SelectTable(chatID, n)
		})(ctx, chatID)
	}
}

func (h *Handler) handleCountCommand(args string) HandlerFunc {
	return func(ctx context.Context, chatID int64) error {
		args = strings.ToLower(strings.TrimSpace(args))
		if args == countAll {
			return h.handleSelection(func() (entities.QuizView, error) {
				return h.quizService.SelectAllQuestions(chatID)
			})(ctx, chatID)
		}

		n, err := strconv.Atoi(args)
		if err != nil {
			return h.send(newPlainMessage(chatID, msgUseCount))
		}

		return h.handleSelection(func() (entities.QuizView, error) {
			return h.quizService.SelectQuestionCount(chatID, n)
		})(ctx, chatID)
	}
}

// handleSelection applies a selection action and shows the updated selection screen.
func (h *Handler) handleSelection(apply func() (entities.QuizView, error)) HandlerFunc {
	return func(_ context.Context, chatID int64) error {
		v, err := apply()
		switch {
		case errors.Is(err, entities.ErrWrongPhase):
			return h.send(newPlainMessage(chatID, msgQuizInProgress))
		case errors.Is(err, entities.ErrInvalidTable):
			return h.send(newPlainMessage(chatID, msgUseTable))
		case errors.Is(err, entities.ErrInvalidQuestionCount):
			return h.send(newPlainMessage(chatID, msgUseCount))
		case err != nil:
			return err
		}

		return h.sendSelection(chatID, v)
	}
}

// handleGo starts the quiz and asks the first question.
func (h *Handler) handleGo() HandlerFunc {
	return func(_ context.Context, chatID int64) error {
		v, err := h.quizService.Start(chatID)
		switch {
		case errors.Is(err, entities.ErrNoTableSelected):
			return h.sendSelection(chatID, v)
		case errors.Is(err, entities.ErrWrongPhase):
			return h.send(newPlainMessage(chatID, msgQuizInProgress))
		case err != nil:
			return err
		}

		return h.sendQuestion(chatID, v)
	}
}

func (h *Handler) handleStop() HandlerFunc {
	return func(_ context.Context, chatID int64) error {
		v := h.quizService.Stop(chatID)
		if err := h.send(newPlainMessage(chatID, msgQuizStopped)); err != nil {
			return err
		}
		return h.sendSelection(chatID, v)
	}
}

// handleText treats free text as an answer to the current question.
func (h *Handler) handleText(text string) HandlerFunc {
	return func(_ context.Context, chatID int64) error {
		v, err := h.quizService.SubmitAnswer(chatID, text)
		if errors.Is(err, entities.ErrWrongPhase) {
			switch v.Phase {
			case entities.PhaseGrading, entities.PhaseFinishing:
				return h.send(newPlainMessage(chatID, msgPressOK))
			default:
				return h.send(newPlainMessage(chatID, msgNoQuizRunning))
			}
		}
		if err != nil {
			return err
		}

		h.logger.Debug("answer submitted",
			zap.Int64("chat_id", chatID),
			zap.Bool("correct", v.Feedback.Correct),
		)

		return h.sendFeedback(chatID, v)
	}
}

func (h *Handler) sendSelection(chatID int64, v entities.QuizView) error {
	msg := newMessage(chatID, selectionText(v))
	msg.ReplyMarkup = buildSelectionKeyboard(v)
	return h.send(msg)
}

func (h *Handler) sendQuestion(chatID int64, v entities.QuizView) error {
	return h.send(newMessage(chatID, questionText(v)))
}

func (h *Handler) sendFeedback(chatID int64, v entities.QuizView) error {
	msg := newMessage(chatID, feedbackText(v.Feedback))
	msg.ReplyMarkup = buildFeedbackKeyboard(v.SessionID)
	return h.send(msg)
}
