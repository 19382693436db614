package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/hariombhu/hariombhu-Smart-Resume-Builder/internal/observability"
	"github.com/hariombhu/hariombhu-Smart-Resume-Builder/internal/resume"
)

var (
	scoreInput string
	scoreJSON  bool
)

var scoreCmd = &cobra.Command{
	Use:   "score",
	Short: "Compute the completeness score of a resume file",
	Long:  "Scores a resume JSON file from 0 to 100 and lists the points earned per section.",
	RunE:  runScore,
}

func init() {
	scoreCmd.Flags().StringVarP(&scoreInput, "in", "i", "", "Path to resume JSON file (required)")
	scoreCmd.Flags().BoolVar(&scoreJSON, "json", false, "Print the result as JSON")

	if err := scoreCmd.MarkFlagRequired("in"); err != nil {
		panic(fmt.Sprintf("failed to mark in flag as required: %v", err))
	}

	rootCmd.AddCommand(scoreCmd)
}

// scoreReport is the JSON form of a score
type scoreReport struct {
	Completeness int                `json:"completeness"`
	Breakdown    []resume.ScoreItem `json:"breakdown"`
}

func runScore(cmd *cobra.Command, _ []string) error {
	r, err := readResumeFile(scoreInput)
	if err != nil {
		return err
	}

	if !scoreJSON {
		observability.NewPrinter(cmd.OutOrStdout()).PrintScore(r)
		return nil
	}

	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	if err := enc.Encode(scoreReport{Completeness: resume.Score(r), Breakdown: resume.Breakdown(r)}); err != nil {
		return fmt.Errorf("failed to write score: %w", err)
	}
	return nil
}
