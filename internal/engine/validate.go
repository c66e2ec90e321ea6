package engine

import "fmt"

// ValidateRequest checks the shape of a batch request. It runs before any
// judge call and returns a *ValidationError naming the offending field.
// Steps may be empty but must be present: a nil slice means the field was
// missing from the request.
func ValidateRequest(story UserStory, cases []TestCase) error {
	if len(cases) == 0 {
		return &ValidationError{Field: "testCases", Message: "must be a non-empty array of test cases"}
	}
	if story.Title == "" {
		return &ValidationError{Field: "userStory.title", Message: "is required"}
	}
	if story.Description == "" {
		return &ValidationError{Field: "userStory.description", Message: "is required"}
	}

	for i, tc := range cases {
		field := func(name string) string { return fmt.Sprintf("testCases[%d].%s", i, name) }
		if tc.ID == "" {
			return &ValidationError{Field: field("id"), Message: "is required"}
		}
		if tc.Name == "" {
			return &ValidationError{Field: field("name"), Message: "is required"}
		}
		if tc.Description == "" {
			return &ValidationError{Field: field("description"), Message: "is required"}
		}
		if tc.Steps == nil {
			return &ValidationError{Field: field("steps"), Message: "is required (may be an empty array)"}
		}
	}

	return nil
}
