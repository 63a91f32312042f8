package cmd

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/briandowns/spinner"
	"github.com/fatih/color"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/helmcode/flowchart-explainer/pkg/analyzer"
	"github.com/helmcode/flowchart-explainer/pkg/client"
	"github.com/helmcode/flowchart-explainer/pkg/config"
	"github.com/helmcode/flowchart-explainer/pkg/formatter"
	"github.com/helmcode/flowchart-explainer/pkg/imagefile"
	"github.com/helmcode/flowchart-explainer/pkg/llm"
	"github.com/helmcode/flowchart-explainer/pkg/logging"
	"github.com/helmcode/flowchart-explainer/pkg/model"
	"github.com/helmcode/flowchart-explainer/pkg/speech"
)

var (
	gatewayURL   string
	outputFormat string
	speak        bool
	speakItems   []int
	verbose      bool
	llmProvider  string
	llmModel     string
)

func NewAnalyzeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "analyze IMAGE",
		Short: "Explain every term in a flowchart image",
		Long: `Upload a flowchart (JPEG or PNG) and get a plain-language explanation of every
term and concept in it.

Examples:
  # Ask the AI provider directly (needs LOVABLE_API_KEY)
  flowchart-explainer analyze login-flow.png

  # Go through a running gateway
  flowchart-explainer analyze login-flow.png --gateway http://localhost:8080

  # Read the explanations aloud
  flowchart-explainer analyze login-flow.png --speak

  # Read items 2 and 4 aloud; press Enter to skip to the next one
  flowchart-explainer analyze login-flow.png --speak-item 2,4

  # Machine-readable output
  flowchart-explainer analyze login-flow.png -o json`,
		Args: cobra.ExactArgs(1),
		RunE: runAnalyze,
	}

	cmd.Flags().StringVarP(&gatewayURL, "gateway", "g", "", "Gateway URL; when empty the AI provider is called directly")
	cmd.Flags().StringVarP(&outputFormat, "output", "o", "human", "Output format (human, json, yaml)")
	cmd.Flags().BoolVarP(&speak, "speak", "s", false, "Read all explanations aloud (Ctrl-C stops)")
	cmd.Flags().IntSliceVar(&speakItems, "speak-item", nil, "Read the given explanations aloud by number (Enter skips, Ctrl-C stops)")
	cmd.MarkFlagsMutuallyExclusive("speak", "speak-item")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "Verbose output")
	cmd.Flags().StringVar(&llmProvider, "provider", "", "AI provider (lovable, openai). Overrides AI_PROVIDER")
	cmd.Flags().StringVar(&llmModel, "model", "", "Model to use (overrides AI_GATEWAY_MODEL)")

	return cmd
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	path := args[0]

	dataURL, err := imagefile.Load(path)
	if err != nil {
		return err
	}

	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if llmProvider != "" {
		cfg.Provider = llm.Provider(llmProvider)
	}
	if llmModel != "" {
		cfg.Model = llmModel
	}

	level := "warn"
	if verbose {
		level = "debug"
	}
	logger := logging.New(os.Stderr, level, "console")

	analyze, err := newAnalyzeFunc(cfg, logger)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	out := cmd.OutOrStdout()
	human := outputFormat == "human" || outputFormat == ""
	if human {
		printHeader(out, path)
	}

	s := spinner.New(spinner.CharSets[11], 100*time.Millisecond, spinner.WithWriter(cmd.ErrOrStderr()))
	s.Suffix = " Analyzing flowchart with AI..."
	if human {
		s.Start()
	}

	explanations, err := analyze(ctx, dataURL)
	s.Stop()
	if err != nil {
		return fmt.Errorf("analysis failed: %w", err)
	}
	if human {
		printSuccess(out, fmt.Sprintf("Analysis complete! Found %d concepts to explain", len(explanations)))
	}

	if err := formatter.DisplayResults(out, explanations, outputFormat); err != nil {
		return err
	}

	switch {
	case len(speakItems) > 0:
		if err := checkItems(speakItems, len(explanations)); err != nil {
			return err
		}
		engine, err := detectEngine()
		if err != nil {
			return err
		}
		printSuccess(out, "Reading selected explanations aloud (Enter skips, Ctrl-C stops)")
		return narrate(ctx, out, cmd.InOrStdin(), speech.NewNarrator(engine), explanations, speakItems)
	case speak && len(explanations) > 0:
		engine, err := detectEngine()
		if err != nil {
			return err
		}
		printSuccess(out, "Reading explanations aloud (Ctrl-C to stop)")
		voice := speech.NewNarrator(engine).NewVoice()
		voice.Toggle(ctx, speech.AllText(explanations))
		return voice.Wait()
	}
	return nil
}

type analyzeFunc func(ctx context.Context, dataURL string) ([]model.Explanation, error)

func newAnalyzeFunc(cfg *config.Config, logger zerolog.Logger) (analyzeFunc, error) {
	if gatewayURL != "" {
		return client.New(gatewayURL, cfg.Timeout+10*time.Second).Analyze, nil
	}
	factory, err := llm.NewFactory(cfg.Provider, cfg.LLMSettings(), logger)
	if err != nil {
		return nil, err
	}
	return analyzer.New(factory, logger).Analyze, nil
}

var detectEngine = func() (speech.Engine, error) { return speech.DetectEngine() }

func checkItems(items []int, count int) error {
	for _, n := range items {
		if n < 1 || n > count {
			return fmt.Errorf("--speak-item %d out of range: %d explanations", n, count)
		}
	}
	return nil
}

// narrate reads the numbered explanations in order, one voice per item. A line on
// in moves to the next item; starting it cancels the one still playing.
func narrate(ctx context.Context, w io.Writer, in io.Reader, n *speech.Narrator, explanations []model.Explanation, items []int) error {
	skip := lineSignals(ctx, in)
	var last *speech.Voice
	for _, num := range items {
		e := explanations[num-1]
		voice := n.NewVoice()
		last = voice
		fmt.Fprintf(w, "🔊 %d. %s\n", num, e.Term)
		voice.Toggle(ctx, speech.ItemText(e))

		finished := make(chan error, 1)
		go func() { finished <- voice.Wait() }()

		select {
		case err := <-finished:
			if err != nil {
				return err
			}
		case <-skip:
		case <-ctx.Done():
			n.Stop()
			return <-finished
		}
	}
	n.Stop()
	return last.Wait()
}

func lineSignals(ctx context.Context, in io.Reader) <-chan struct{} {
	ch := make(chan struct{})
	go func() {
		sc := bufio.NewScanner(in)
		for sc.Scan() {
			select {
			case ch <- struct{}{}:
			case <-ctx.Done():
				return
			}
		}
	}()
	return ch
}

func printHeader(w io.Writer, path string) {
	cyan := color.New(color.FgCyan, color.Bold)
	fmt.Fprintln(w)
	cyan.Fprintln(w, "🧭 Flowchart Explainer")
	fmt.Fprintf(w, "🖼  Image: %s\n", path)
	if gatewayURL != "" {
		fmt.Fprintf(w, "🌐 Gateway: %s\n", gatewayURL)
	}
	fmt.Fprintln(w)
}

func printSuccess(w io.Writer, msg string) {
	green := color.New(color.FgGreen)
	green.Fprintf(w, "✓ %s\n", msg)
}

// PrintError writes err as a red failure line.
func PrintError(w io.Writer, err error) {
	red := color.New(color.FgRed, color.Bold)
	red.Fprintf(w, "✗ Error: %v\n", err)
}
