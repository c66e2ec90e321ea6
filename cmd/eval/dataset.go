package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/flowqa/caseval/internal/engine"
)

// Dataset is the on-disk input for a CLI evaluation run: one user story
// and the generated test cases to judge against it.
type Dataset struct {
	UserStory engine.UserStory  `json:"userStory"`
	TestCases []engine.TestCase `json:"testCases"`
}

// LoadDataset reads a dataset from a JSON file.
func LoadDataset(path string) (*Dataset, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read dataset: %w", err)
	}

	var ds Dataset
	if err := json.Unmarshal(data, &ds); err != nil {
		return nil, fmt.Errorf("parse dataset: %w", err)
	}
	return &ds, nil
}

// SaveDataset writes a dataset to a JSON file, creating parent
// directories as needed.
func SaveDataset(path string, ds *Dataset) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}

	data, err := json.MarshalIndent(ds, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

// SaveReport writes an evaluation report to a JSON file.
func SaveReport(path string, report *engine.Report) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}

	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

// DefaultDataset returns a small built-in dataset, useful for smoke runs
// and as a template for writing real datasets.
func DefaultDataset() *Dataset {
	return &Dataset{
		UserStory: engine.UserStory{
			Title:       "Password reset via email",
			Description: "As a registered user, I want to reset my password through an emailed link so that I can regain access to my account.",
			AcceptanceCriteria: "The reset link expires after 30 minutes. " +
				"The link can be used only once. " +
				"The user is notified by email after a successful reset.",
		},
		TestCases: []engine.TestCase{
			{
				ID:          "tc-001",
				Name:        "Reset link expires after 30 minutes",
				Description: "Verify that a password reset link older than 30 minutes is rejected.",
				Steps: []engine.Step{
					{
						Step:           "Request a password reset for a registered account",
						ExpectedResult: "A reset email is delivered to the account address",
					},
					{
						Step:           "Wait 31 minutes, then open the reset link",
						ExpectedResult: "The page reports that the link has expired and offers to send a new one",
					},
				},
			},
			{
				ID:          "tc-002",
				Name:        "Reset link is single use",
				Description: "Verify that a reset link cannot be used twice.",
				Steps: []engine.Step{
					{
						Step:           "Complete a password reset using a fresh link",
						ExpectedResult: "The password is changed and a confirmation email is sent",
					},
					{
						Step:           "Open the same reset link again",
						ExpectedResult: "The page rejects the link as already used",
						TestData:       "account: qa-user-1@example.test",
					},
				},
			},
			{
				ID:          "tc-003",
				Name:        "Export account billing history",
				Description: "Verify that the user can download billing history as CSV.",
				Steps: []engine.Step{
					{
						Step:           "Open the billing page and click export",
						ExpectedResult: "A CSV file downloads",
					},
				},
			},
		},
	}
}
