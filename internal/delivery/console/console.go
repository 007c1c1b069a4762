package console

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/aliskhannn/times-tables-bot/internal/domain/entities"
)

// chatID keys the single terminal session in the quiz service.
const chatID int64 = 0

type QuizService interface {
	SelectTable(chatID int64, table int) (entities.QuizView, error)
	SelectQuestionCount(chatID int64, n int) (entities.QuizView, error)
	SelectAllQuestions(chatID int64) (entities.QuizView, error)
	Start(chatID int64) (entities.QuizView, error)
	SubmitAnswer(chatID int64, text string) (entities.QuizView, error)
	Acknowledge(chatID int64, sessionID string) (entities.QuizView, error)
}

// NewRootCommand builds the timestables command tree on top of svc.
func NewRootCommand(svc QuizService) *cobra.Command {
	root := &cobra.Command{
		Use:   "timestables",
		Short: "Practice your times tables in the terminal",
		Long: `TimesTables asks multiplication questions from the table you pick.
A wrong answer gets the same question again until you get it right.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	root.AddCommand(newPlayCommand(svc))

	return root
}

type playOptions struct {
	table int
	count int
	all   bool
}

func newPlayCommand(svc QuizService) *cobra.Command {
	var opts playOptions

	cmd := &cobra.Command{
		Use:   "play",
		Short: "Start a quiz",
		Long: `Start a quiz. Without --table a random table is used.
Without --count or --all the configured number of questions is asked.`,
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			p := &player{
				svc: svc,
				in:  bufio.NewReader(cmd.InOrStdin()),
				out: cmd.OutOrStdout(),
			}
			return p.play(opts, cmd.Flags().Changed("table"), cmd.Flags().Changed("count"))
		},
	}

	cmd.Flags().IntVarP(&opts.table, "table", "t", 0, "times table to practice (1-12)")
	cmd.Flags().IntVarP(&opts.count, "count", "c", 0, "number of questions (1-12)")
	cmd.Flags().BoolVarP(&opts.all, "all", "a", false, "answer all 12 questions")
	cmd.MarkFlagsMutuallyExclusive("count", "all")

	return cmd
}

type player struct {
	svc QuizService
	in  *bufio.Reader
	out io.Writer
}

func (p *player) play(opts playOptions, tableSet, countSet bool) error {
	if tableSet {
		if _, err := p.svc.SelectTable(chatID, opts.table); err != nil {
			return fmt.Errorf("--table %d: %w", opts.table, err)
		}
	}

	switch {
	case opts.all:
		if _, err := p.svc.SelectAllQuestions(chatID); err != nil {
			return fmt.Errorf("--all: %w", err)
		}
	case countSet:
		if _, err := p.svc.SelectQuestionCount(chatID, opts.count); err != nil {
			return fmt.Errorf("--count %d: %w", opts.count, err)
		}
	}

	v, err := p.svc.Start(chatID)
	if err != nil {
		return err
	}

	fmt.Fprintf(p.out, "Let's practice the %ds! %d questions.\n", v.Table, v.QuestionCountChosen)

	for v.Phase == entities.PhaseAsking {
		fmt.Fprintf(p.out, "\nQuestion %d of %d (score %d)\n%s = ", v.QuestionCount, v.QuestionCountChosen, v.Score, v.Question)

		answer, err := p.readLine()
		if errors.Is(err, io.EOF) {
			fmt.Fprintln(p.out, "\nBye!")
			return nil
		}
		if err != nil {
			return err
		}

		v, err = p.svc.SubmitAnswer(chatID, answer)
		if err != nil {
			return err
		}

		icon := "❌"
		if v.Feedback.Correct {
			icon = "✅"
		}
		fmt.Fprintf(p.out, "%s %s\n%s\n", icon, v.Feedback.Title, v.Feedback.Message)
		fmt.Fprint(p.out, "Press Enter to continue...")

		if _, err := p.readLine(); err != nil && !errors.Is(err, io.EOF) {
			return err
		}

		v, err = p.svc.Acknowledge(chatID, v.SessionID)
		if err != nil {
			return err
		}
	}

	fmt.Fprintln(p.out)

	return nil
}

// readLine returns the next trimmed line. A last line without a newline is
// returned without error.
func (p *player) readLine() (string, error) {
	line, err := p.in.ReadString('\n')
	if err != nil && !(errors.Is(err, io.EOF) && line != "") {
		return "", err
	}
	return strings.TrimSpace(line), nil
}
