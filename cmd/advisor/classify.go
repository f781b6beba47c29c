package main

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/jonathan/admissions-advisor/internal/classify"
	"github.com/jonathan/admissions-advisor/internal/observability"
	"github.com/spf13/cobra"
)

var classifyFormat string

var classifyCmd = &cobra.Command{
	Use:   "classify [text...]",
	Short: "Classify chat text into a profile signal",
	Long: `Classify one sentence of free text into gpa, sat, act, activity, award, school,
goal or unknown. With no arguments, each non-empty line of stdin is classified.`,
	RunE: runClassify,
}

func init() {
	classifyCmd.Flags().StringVarP(&classifyFormat, "format", "f", "json", "Output format: json or text")
	rootCmd.AddCommand(classifyCmd)
}

func runClassify(cmd *cobra.Command, args []string) error {
	if classifyFormat != "json" && classifyFormat != "text" {
		return fmt.Errorf("unknown format %q (want json or text)", classifyFormat)
	}

	var inputs []string
	if len(args) > 0 {
		inputs = []string{strings.Join(args, " ")}
	} else {
		lines, err := readLines(cmd.InOrStdin())
		if err != nil {
			return err
		}
		inputs = lines
	}

	out := cmd.OutOrStdout()
	printer := observability.NewPrinter(out)
	enc := json.NewEncoder(out)
	for _, text := range inputs {
		parsed := classify.Classify(text)
		if classifyFormat == "text" {
			printer.PrintParsed(parsed)
			continue
		}
		if err := enc.Encode(parsed); err != nil {
			return fmt.Errorf("failed to write result: %w", err)
		}
	}
	return nil
}

func readLines(r io.Reader) ([]string, error) {
	var lines []string
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		if line := strings.TrimSpace(scanner.Text()); line != "" {
			lines = append(lines, line)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read input: %w", err)
	}
	return lines, nil
}
