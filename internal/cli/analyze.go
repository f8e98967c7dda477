package cli

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/veridict/veridict/internal/admission"
	"github.com/veridict/veridict/internal/model"
)

var (
	analyzeServer  string
	analyzeTimeout time.Duration
	analyzeJSON    bool
)

// analyzeCmd represents the analyze command
var analyzeCmd = &cobra.Command{
	Use:   "analyze [file]...",
	Short: "Analyze article text against a running Veridict server",
	Long: `Analyze submits article text to a running Veridict server and prints
the verification report. With no file arguments the text is read from
standard input.

A local advisory quota mirrors the server's admission window so a batch
of files stops before burning requests the server would reject anyway.

Example:
  veridict analyze article.txt
  cat article.txt | veridict analyze
  veridict analyze a.txt b.txt --server http://localhost:8080 --json`,
	RunE: runAnalyze,
}

func init() {
	rootCmd.AddCommand(analyzeCmd)

	analyzeCmd.Flags().StringVar(&analyzeServer, "server", "http://localhost:8080", "Veridict server base URL")
	analyzeCmd.Flags().DurationVar(&analyzeTimeout, "timeout", 5*time.Minute, "per-request timeout")
	analyzeCmd.Flags().BoolVar(&analyzeJSON, "json", false, "print the raw JSON response")
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	defaults := model.DefaultConfig()
	gate := admission.NewAdvisoryGate(defaults.Limits.MaxRequests, defaults.Limits.Window)
	client := &http.Client{Timeout: analyzeTimeout}

	inputs, err := readInputs(args)
	if err != nil {
		return err
	}

	for i, input := range inputs {
		if !gate.Allow() {
			return fmt.Errorf("local quota exhausted after %d requests; the server would reject the rest", i)
		}

		result, err := postAnalyze(client, input)
		if err != nil {
			return err
		}

		if analyzeJSON {
			raw, err := json.MarshalIndent(result, "", "  ")
			if err != nil {
				return fmt.Errorf("encode result: %w", err)
			}
			fmt.Println(string(raw))
			continue
		}
		printReport(result)
	}
	return nil
}

func readInputs(args []string) ([]string, error) {
	if len(args) == 0 {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return nil, fmt.Errorf("read stdin: %w", err)
		}
		return []string{string(data)}, nil
	}

	inputs := make([]string, 0, len(args))
	for _, path := range args {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", path, err)
		}
		inputs = append(inputs, string(data))
	}
	return inputs, nil
}

func postAnalyze(client *http.Client, input string) (*model.AnalyzeResult, error) {
	body, err := json.Marshal(map[string]string{"input": input})
	if err != nil {
		return nil, fmt.Errorf("encode request: %w", err)
	}

	resp, err := client.Post(analyzeServer+"/api/analyze", "application/json", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("post analyze: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		var failure struct {
			Error string `json:"error"`
		}
		if json.Unmarshal(raw, &failure) == nil && failure.Error != "" {
			return nil, fmt.Errorf("server rejected request (%d): %s", resp.StatusCode, failure.Error)
		}
		return nil, fmt.Errorf("server rejected request: %d", resp.StatusCode)
	}

	var result model.AnalyzeResult
	if err := json.Unmarshal(raw, &result); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	return &result, nil
}

func printReport(result *model.AnalyzeResult) {
	article := result.Response.Article
	fmt.Printf("Verdict: %s (confidence %.2f)\n", article.Verdict, article.Confidence)
	for _, factor := range article.KeyFactors {
		fmt.Printf("  - %s\n", factor)
	}

	fmt.Println()
	for _, a := range result.Response.Assessments {
		fmt.Printf("[%s] %s (confidence %.2f)\n", a.Label, a.ClaimID, a.Confidence)
		fmt.Printf("    %s\n", a.Rationale)
		if len(a.CitedEvidenceIDs) > 0 {
			fmt.Printf("    evidence: %v\n", a.CitedEvidenceIDs)
		}
	}

	fmt.Printf("\nRemaining requests this window: %d\n", result.RemainingRequests)
}
