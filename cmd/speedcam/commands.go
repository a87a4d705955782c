package main

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/briandowns/spinner"
	"github.com/natexcvi/speedcam-llm/agents"
	"github.com/natexcvi/speedcam-llm/engines"
	"github.com/natexcvi/speedcam-llm/evaluation"
	"github.com/natexcvi/speedcam-llm/prebuilt"
	"github.com/natexcvi/speedcam-llm/tools"
	"github.com/natexcvi/speedcam-llm/web"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var (
	verbose     bool
	repetitions int
)

const rule = "============================================================"

var examplesCmd = &cobra.Command{
	Use:   "examples",
	Short: "Run the predefined example questions.",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()
		assistant, release, err := newAssistant(ctx, cfg)
		if err != nil {
			return err
		}
		defer release()

		out := cmd.OutOrStdout()
		in := bufio.NewReader(cmd.InOrStdin())
		for i, example := range prebuilt.ExampleQuestions {
			fmt.Fprintf(out, "\nEXAMPLE %d/%d\n%s\n", i+1, len(prebuilt.ExampleQuestions), rule)
			if _, err := runTurn(ctx, out, assistant, example.Text); err != nil {
				fmt.Fprintln(out, "\nStopping examples due to error.")
				return nil
			}
			if i < len(prebuilt.ExampleQuestions)-1 {
				fmt.Fprint(out, "Press Enter to continue to next example...")
				if _, err := in.ReadString('\n'); err != nil {
					return nil
				}
			}
		}
		fmt.Fprintf(out, "\n%s\nEXAMPLES COMPLETED\n%s\n", rule, rule)
		return nil
	},
}

var chatCmd = &cobra.Command{
	Use:   "chat",
	Short: "Ask questions about speed cameras interactively.",
	Long: `Ask questions about speed cameras interactively.
Type 'quit', 'exit', or 'q' to stop.

Example questions:
  - Show me cameras in zipcode 10036
  - Are there cameras on 5th Ave in 10036?
  - What's the speed limit on Broadway in 10001?`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()
		assistant, release, err := newAssistant(ctx, cfg)
		if err != nil {
			return err
		}
		defer release()

		out := cmd.OutOrStdout()
		fmt.Fprintln(out, "Ask questions about speed cameras! Type 'quit', 'exit', or 'q' to stop.")
		scanner := bufio.NewScanner(cmd.InOrStdin())
		for {
			fmt.Fprint(out, "\nYou: ")
			if !scanner.Scan() {
				break
			}
			input := strings.TrimSpace(scanner.Text())
			if isQuit(input) {
				break
			}
			if input == "" {
				continue
			}
			// model failures were already printed; keep chatting
			_, _ = runTurn(ctx, out, assistant, input)
			if ctx.Err() != nil {
				break
			}
		}
		fmt.Fprintln(out, "\nGoodbye!")
		return scanner.Err()
	},
}

func isQuit(input string) bool {
	switch strings.ToLower(input) {
	case "quit", "exit", "q":
		return true
	}
	return false
}

var askCmd = &cobra.Command{
	Use:   "ask QUESTION",
	Short: "Ask a single question.",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()
		assistant, release, err := newAssistant(ctx, cfg)
		if err != nil {
			return err
		}
		defer release()

		_, err = runTurn(ctx, cmd.OutOrStdout(), assistant, strings.Join(args, " "))
		return err
	},
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the web chat.",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()
		assistant, release, err := newAssistant(ctx, cfg)
		if err != nil {
			return err
		}
		defer release()

		server := web.NewServer(cfg.ListenAddress, assistant)
		errCh := make(chan error, 1)
		go func() {
			errCh <- server.Start()
		}()
		select {
		case err := <-errCh:
			return err
		case <-ctx.Done():
		}
		log.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	},
}

var modelsCmd = &cobra.Command{
	Use:   "models",
	Short: "List the models available to the configured provider.",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		engine, release, err := newEngine(cmd.Context(), cfg)
		if err != nil {
			return err
		}
		defer release()
		lister, ok := engine.(engines.ModelLister)
		if !ok {
			return fmt.Errorf("%s engine cannot list models", cfg.Provider)
		}
		models, err := lister.ListModels(cmd.Context())
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "Available %s models:\n", cfg.Provider)
		for _, m := range models {
			if m.DisplayName != "" && m.DisplayName != m.Name {
				fmt.Fprintf(out, "  - %s (%s)\n", m.Name, m.DisplayName)
				continue
			}
			fmt.Fprintf(out, "  - %s\n", m.Name)
		}
		return nil
	},
}

var evalCmd = &cobra.Command{
	Use:   "eval",
	Short: "Measure how often the model picks the right function.",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()
		assistant, release, err := newAssistant(ctx, cfg)
		if err != nil {
			return err
		}
		defer release()

		expected := map[string]tools.Function{
			"hello": tools.FunctionUnknown,
		}
		testPack := []string{"hello"}
		for _, example := range prebuilt.ExampleQuestions {
			expected[example.Text] = example.Function
			testPack = append(testPack, example.Text)
		}
		evaluator := evaluation.NewEvaluator(
			evaluation.NewAgentTester[string, *agents.Turn](assistant),
			&evaluation.Options[string, *agents.Turn]{
				GoodnessFunction: evaluation.FunctionSelectionGoodness(expected),
				Repetitions:      repetitions,
			},
		)
		s := spinner.New(spinner.CharSets[14], 100*time.Millisecond)
		s.Suffix = " Evaluating..."
		s.Start()
		report, err := evaluator.Evaluate(ctx, testPack)
		s.Stop()
		if err != nil {
			return err
		}
		scores := make(map[string]float64, len(testPack))
		for i, input := range testPack {
			scores[input] = report[i]
		}
		fmt.Fprint(cmd.OutOrStdout(), evaluation.Report(scores))
		return nil
	},
}

// runTurn runs one turn with a spinner and prints it. Model failures are
// printed and returned.
func runTurn(ctx context.Context, out io.Writer, assistant agents.Agent[string, *agents.Turn], input string) (*agents.Turn, error) {
	fmt.Fprintf(out, "USER: %s\n", input)
	s := spinner.New(spinner.CharSets[14], 100*time.Millisecond)
	s.Suffix = " Just a moment..."
	s.Start()
	turn, err := assistant.Run(ctx, input)
	s.Stop()
	if turn != nil && verbose {
		printFunctionCalls(out, turn)
	}
	if err != nil {
		fmt.Fprintf(out, "\n%s\n", engines.UserMessage(err))
		if engines.IsRateLimited(err) || !errors.Is(err, engines.ErrModelUnavailable) {
			fmt.Fprintf(out, "Technical details: %v\n", err)
		}
		return turn, err
	}
	fmt.Fprintf(out, "ASSISTANT: %s\n", turn.Response)
	return turn, nil
}

func printFunctionCalls(out io.Writer, turn *agents.Turn) {
	for _, result := range turn.Results {
		fmt.Fprintf(out, "\n%s\nFUNCTION CALL DETECTED\n%s\n", rule, rule)
		fmt.Fprintf(out, "Function: %s\n", result.Name)
		fmt.Fprintf(out, "Arguments: %s\n", indentJSON(result.Args))
		fmt.Fprintf(out, "%s\n\nAPI RESPONSE:\n%s\n%s\n\n", rule, indentJSON(result.Payload), rule)
	}
}

func indentJSON(raw json.RawMessage) string {
	var v any
	if err := json.Unmarshal(raw, &v); err != nil {
		return string(raw)
	}
	indented, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return string(raw)
	}
	return string(indented)
}

func init() {
	for _, cmd := range []*cobra.Command{examplesCmd, chatCmd, askCmd} {
		cmd.Flags().BoolVarP(&verbose, "verbose", "v", true, "print function calls and API responses")
	}
	evalCmd.Flags().IntVarP(&repetitions, "repetitions", "n", 3, "how many times to run every question")
}
