package cli

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/newn79677-coder/PRACTICE-APP/internal/app"
	"github.com/newn79677-coder/PRACTICE-APP/internal/config"
	"github.com/newn79677-coder/PRACTICE-APP/internal/domain"
)

// NewPlayCmd runs a quiz attempt in the terminal. Same trainer, different
// rendering surface.
func NewPlayCmd(configPath *string) *cobra.Command {
	var (
		name      string
		questions int
		minutes   float64
		language  string
	)
	cmd := &cobra.Command{
		Use:   "play",
		Short: "Take a quiz in the terminal",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := domain.QuizConfig{
				Name:          name,
				QuestionCount: questions,
				TimeLimit:     time.Duration(minutes * float64(time.Minute)),
				Language:      language,
			}
			return runPlay(cmd.Context(), *configPath, cfg)
		},
	}
	cmd.Flags().StringVar(&name, "name", "Terminal Quiz", "quiz name")
	cmd.Flags().IntVarP(&questions, "questions", "n", 3, "number of questions")
	cmd.Flags().Float64VarP(&minutes, "minutes", "m", 10, "time limit in minutes")
	cmd.Flags().StringVarP(&language, "lang", "l", domain.DefaultLanguage, "display language")
	return cmd
}

func runPlay(ctx context.Context, configPath string, quizCfg domain.QuizConfig) error {
	log := newLogger()
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	d, err := buildDeps(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer d.cleanup()

	trainer := app.NewTrainer(d.bank, d.store, app.WithLogger(log))
	trainer.Load(ctx)

	snap, err := trainer.StartQuiz(ctx, quizCfg)
	if err != nil {
		return err
	}

	title := color.New(color.FgCyan, color.Bold)
	prompt := color.New(color.Bold)
	faint := color.New(color.Faint)

	title.Printf("%s — %d questions, %s remaining\n\n", snap.QuizName, snap.Total,
		(time.Duration(snap.RemainingMillis) * time.Millisecond).Round(time.Second))

	reader := bufio.NewReader(os.Stdin)
	for {
		if res, submitted := trainer.Tick(time.Now()); submitted {
			color.Yellow("\nTime is up!")
			printResult(res)
			return maybeSave(ctx, trainer, reader)
		}

		snap, err = trainer.Snapshot()
		if err != nil {
			return err
		}
		prompt.Printf("Q%d/%d: %s\n", snap.Index+1, snap.Total, snap.Question.Prompt)
		for _, opt := range snap.Question.Options {
			fmt.Printf("  %s. %s\n", opt.Label, opt.Value)
		}
		faint.Println("  (letter to answer, enter to skip)")

		line, err := reader.ReadString('\n')
		if err != nil {
			break
		}
		if value, ok := pickOption(snap, line); ok {
			if _, err := trainer.AnswerCurrent(value); err != nil {
				return err
			}
		}

		if snap.Index == snap.Total-1 {
			break
		}
		if _, err := trainer.Next(); err != nil {
			return err
		}
	}

	res, err := trainer.Submit()
	if err != nil {
		return err
	}
	printResult(res)
	return maybeSave(ctx, trainer, reader)
}

// pickOption maps a typed letter onto the displayed option value.
func pickOption(snap app.SessionSnapshot, line string) (string, bool) {
	letter := strings.ToUpper(strings.TrimSpace(line))
	if letter == "" {
		return "", false
	}
	for _, opt := range snap.Question.Options {
		if opt.Label == letter {
			return opt.Value, true
		}
	}
	return "", false
}

func printResult(res domain.Result) {
	fmt.Println()
	color.New(color.Bold).Printf("%s: %d/%d (%d%%)\n", res.QuizName, res.CorrectCount, res.TotalQuestions, res.ScorePercent)
	color.Green("  correct:   %d", res.CorrectCount)
	color.Red("  incorrect: %d", res.IncorrectCount)
	color.Yellow("  skipped:   %d", res.SkippedCount)
	fmt.Printf("  time:      %s\n\n", (time.Duration(res.ElapsedMillis) * time.Millisecond).Round(time.Second))
}

func maybeSave(ctx context.Context, trainer *app.Trainer, reader *bufio.Reader) error {
	fmt.Print("Save result to history and leaderboard? [y/N] ")
	line, err := reader.ReadString('\n')
	if err != nil {
		return nil
	}
	if strings.ToLower(strings.TrimSpace(line)) != "y" {
		return nil
	}
	if err := trainer.SaveResult(ctx); err != nil {
		return err
	}
	color.Green("Saved.")
	for i, entry := range trainer.Leaderboard() {
		fmt.Printf("  %d. %s — %d%%\n", i+1, entry.Name, entry.BestScore)
	}
	return nil
}
