package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"retail-insight/internal/config"
	"retail-insight/internal/parser"
	"retail-insight/internal/service"

	"github.com/spf13/cobra"
)

var Version = "dev"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:     "analyst",
		Short:   "Ask questions about a sales data file from the command line",
		Version: Version,
	}
	root.AddCommand(newAskCmd())
	root.AddCommand(newInfoCmd())
	return root
}

func newAskCmd() *cobra.Command {
	var filePath string

	cmd := &cobra.Command{
		Use:   "ask [question]",
		Short: "Answer one question against a local CSV, TSV or XLSX file",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}

			ds, err := parser.ParseFile(filePath)
			if err != nil {
				return err
			}

			// Offline one-shot: no generator, no query log. Unmatched
			// questions get the apology answer.
			var generator service.Generator
			if cfg.OpenAI.Enabled {
				generator = service.NewOpenAIClient(&cfg.OpenAI)
			}
			engine := service.NewInsightEngine(generator, nil, cfg.Engine)

			resp := engine.Answer(context.Background(), strings.Join(args, " "), ds)
			fmt.Println(resp.Answer)
			return nil
		},
	}

	cmd.Flags().StringVarP(&filePath, "file", "f", "", "path to the data file (required)")
	cmd.MarkFlagRequired("file")
	return cmd
}

func newInfoCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "info [file]",
		Short: "Show the columns and row count of a data file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ds, err := parser.ParseFile(args[0])
			if err != nil {
				return err
			}
			fmt.Printf("Name: %s\n", ds.Name)
			fmt.Printf("Columns: %s\n", strings.Join(ds.Columns, ", "))
			fmt.Printf("Rows: %d\n", ds.RowCount())
			return nil
		},
	}
}
