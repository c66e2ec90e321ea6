package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/flowqa/caseval/internal/engine"
	"github.com/flowqa/caseval/internal/judge"
)

func main() {
	var (
		datasetPath = flag.String("dataset", "", "Path to dataset JSON file (optional, uses the built-in dataset if not provided)")
		outputPath  = flag.String("output", "", "Path to save the evaluation report (optional, auto-generated if not provided)")
		metricsFlag = flag.String("metrics", "", "Comma-separated metric names (optional, all metrics when omitted)")
		provider    = flag.String("provider", "", "Judge provider hint (optional, uses LLM_PROVIDER default when omitted)")
		limitCases  = flag.Int("limit", 0, "Limit number of test cases to evaluate (0 = all)")
		saveDataset = flag.String("save-dataset", "", "Save the built-in dataset to a file and exit")
		verbose     = flag.Bool("v", false, "Verbose logging")
	)

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s [options]\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Evaluate generated QA test cases against their user story.\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  # Evaluate the built-in dataset with all metrics:\n")
		fmt.Fprintf(os.Stderr, "  %s\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  # Evaluate a custom dataset with two metrics via Gemini:\n")
		fmt.Fprintf(os.Stderr, "  %s -dataset cases.json -metrics faithfulness,relevancy -provider gemini\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  # Save the built-in dataset as a template:\n")
		fmt.Fprintf(os.Stderr, "  %s -save-dataset dataset.json\n\n", os.Args[0])
	}

	flag.Parse()

	logLevel := slog.LevelInfo
	if *verbose {
		logLevel = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel,
	})))

	ctx := context.Background()

	if *saveDataset != "" {
		if err := SaveDataset(*saveDataset, DefaultDataset()); err != nil {
			slog.Error("Failed to save dataset", "error", err)
			os.Exit(1)
		}
		slog.Info("Dataset saved", "path", *saveDataset)
		return
	}

	var ds *Dataset
	if *datasetPath != "" {
		slog.Info("Loading dataset from file", "path", *datasetPath)
		loaded, err := LoadDataset(*datasetPath)
		if err != nil {
			slog.Error("Failed to load dataset", "error", err)
			os.Exit(1)
		}
		ds = loaded
	} else {
		slog.Info("Using built-in dataset")
		ds = DefaultDataset()
	}

	if *limitCases > 0 && *limitCases < len(ds.TestCases) {
		ds.TestCases = ds.TestCases[:*limitCases]
		slog.Info("Limited test cases", "running", len(ds.TestCases))
	}

	// A nil kinds slice selects the engine's full metric set.
	var kinds []engine.Kind
	if *metricsFlag != "" {
		parsed, err := engine.ParseKinds(strings.Split(*metricsFlag, ","))
		if err != nil {
			slog.Error("Invalid metrics flag", "error", err)
			os.Exit(1)
		}
		kinds = parsed
	}

	judges, err := judge.FromEnv(ctx)
	if err != nil {
		slog.Error("Failed to configure judge providers", "error", err)
		os.Exit(1)
	}

	eng := engine.New(judges)

	report, err := eng.EvaluateBatch(ctx, ds.UserStory, ds.TestCases, kinds, *provider)
	if err != nil {
		slog.Error("Evaluation failed", "error", err)
		os.Exit(1)
	}

	outputFile := *outputPath
	if outputFile == "" {
		timestamp := time.Now().Format("20060102_150405")
		outputFile = filepath.Join("eval_results", fmt.Sprintf("testcase_quality_%s.json", timestamp))
	}

	if err := SaveReport(outputFile, report); err != nil {
		slog.Error("Failed to save report", "error", err)
		os.Exit(1)
	}

	fmt.Println()
	PrintSummary(ds, report)
	fmt.Println()
	fmt.Printf("Full report saved to: %s\n", outputFile)

	if report.Summary.LowQualityCount > 0 {
		os.Exit(1)
	}
}

// PrintSummary prints a human-readable summary of the evaluation report.
func PrintSummary(ds *Dataset, report *engine.Report) {
	fmt.Println(strings.Repeat("=", 60))
	fmt.Printf("Test Case Quality Report: %s\n", ds.UserStory.Title)
	fmt.Println(strings.Repeat("=", 60))
	fmt.Printf("Test cases:     %d\n", len(report.Evaluations))
	fmt.Printf("Average score:  %.2f\n", report.Summary.AverageScore)
	fmt.Printf("High quality:   %d\n", report.Summary.HighQualityCount)
	fmt.Printf("Medium quality: %d\n", report.Summary.MediumQualityCount)
	fmt.Printf("Low quality:    %d\n", report.Summary.LowQualityCount)
	fmt.Println()

	for _, ev := range report.Evaluations {
		fmt.Printf("[%s] %s: %.2f (%s)\n", ev.TestCaseID, ev.TestCaseName, ev.OverallScore, ev.QualityLevel)
		for _, kind := range engine.AllKinds() {
			if m, ok := ev.Metrics[kind]; ok {
				fmt.Printf("  %-14s %.2f  %s\n", string(kind)+":", m.Score, m.Explanation)
			}
		}
		for _, s := range ev.Suggestions {
			fmt.Printf("  > %s\n", s)
		}
	}
	fmt.Println(strings.Repeat("=", 60))
}
