package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/hariombhu/hariombhu-Smart-Resume-Builder/internal/observability"
	"github.com/hariombhu/hariombhu-Smart-Resume-Builder/internal/resume"
	"github.com/hariombhu/hariombhu-Smart-Resume-Builder/internal/suggestions"
)

var (
	suggestInput string
	suggestRole  string
)

var suggestCmd = &cobra.Command{
	Use:   "suggest",
	Short: "List writing suggestions for a resume file",
	Long:  "Checks a resume JSON file against the section rules and optionally lists keywords for a target role.",
	RunE:  runSuggest,
}

func init() {
	suggestCmd.Flags().StringVarP(&suggestInput, "in", "i", "", "Path to resume JSON file (required)")
	suggestCmd.Flags().StringVar(&suggestRole, "role", "", "Target role for keyword suggestions")

	if err := suggestCmd.MarkFlagRequired("in"); err != nil {
		panic(fmt.Sprintf("failed to mark in flag as required: %v", err))
	}

	rootCmd.AddCommand(suggestCmd)
}

func runSuggest(cmd *cobra.Command, _ []string) error {
	r, err := readResumeFile(suggestInput)
	if err != nil {
		return err
	}

	p := observability.NewPrinter(cmd.OutOrStdout())
	p.PrintSuggestions(suggestions.ForResume(r, resume.Score(r)))
	if suggestRole != "" {
		p.PrintKeywords(suggestRole, suggestions.Keywords(suggestRole))
	}
	return nil
}
