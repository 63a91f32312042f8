package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/helmcode/flowchart-explainer/cmd"
)

// version is set with -ldflags "-X main.version=..."
var version = "v0.1.0"

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	root := newRootCmd()
	root.SetArgs(args)
	root.SetOut(stdout)
	root.SetErr(stderr)
	if err := root.Execute(); err != nil {
		cmd.PrintError(stderr, err)
		return 1
	}
	return 0
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "flowchart-explainer",
		Short: "Plain-language explanations of flowchart images",
		Long: `flowchart-explainer sends an image of a flowchart to a vision-capable AI model
and explains every term, concept and relationship in it in simple language.

Run "serve" for the HTTP gateway or "analyze" to explain a single image.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.CompletionOptions.DisableDefaultCmd = true
	root.SetVersionTemplate("flowchart-explainer {{.Version}}\n")

	root.AddCommand(cmd.NewServeCmd(), cmd.NewAnalyzeCmd(), &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Args:  cobra.NoArgs,
		Run: func(c *cobra.Command, _ []string) {
			fmt.Fprintf(c.OutOrStdout(), "flowchart-explainer %s\n", version)
		},
	})
	return root
}
