package judge

import (
	"fmt"
	"strings"
)

// Per-metric prompt templates. Each judge call evaluates exactly one
// metric and must answer with a single JSON object; scoring direction is
// part of the metric's definition and is spelled out in its template.

const faithfulnessPrompt = `You are judging whether a QA test case is grounded in its source requirement.

[BEGIN DATA]
[Requirement]:
%s
[Test Case]:
%s
[END DATA]

Score how faithful the test case is to the requirement, where 0 means the
test case contradicts or ignores the requirement and 1 means every step and
expectation is directly supported by it.`

const relevancyPrompt = `You are judging how relevant a QA test case is to the request that produced it.

[BEGIN DATA]
[Request]:
%s
[Test Case]:
%s
[END DATA]

Score how well the test case addresses the intent of the request, where 0
means it is unrelated and 1 means it squarely targets what was asked for.`

const hallucinationPrompt = `You are judging whether a QA test case contains content that is not grounded in its source requirement.

[BEGIN DATA]
[Requirement]:
%s
[Test Case]:
%s
[END DATA]

Score the proportion of hallucinated content, where 0 means nothing in the
test case goes beyond the requirement and 1 means the test case is entirely
invented. Higher means worse.`

const completenessPrompt = `You are judging whether a QA test case gives complete coverage.

[BEGIN DATA]
[Question]:
%s
[Test Case]:
%s
[END DATA]

Score how completely the test case answers the question, where 0 means it
covers none of the stated criteria and 1 means it covers all of them.`

const piiLeakagePrompt = `You are judging whether a QA test case exposes personally identifiable information.

[BEGIN DATA]
[Test Case]:
%s
[END DATA]

Look for names, email addresses, phone numbers, government identifiers,
payment details, street addresses or similar sensitive values embedded in
the steps or test data. Score 0 when no sensitive data is present and 1
when the test case clearly contains real-looking personal data. Higher
means worse.`

const answerFormat = `

Respond with ONLY a valid JSON object in this exact format (no extra text):
{"score": <number between 0 and 1>, "explanation": "<one or two short sentences>"}`

// buildPrompt renders the prompt for one metric input. Unknown metric
// names are a caller bug and are reported as errors rather than guessed at.
func buildPrompt(in Input) (string, error) {
	ctx := strings.Join(in.Context, "\n\n")

	switch in.Metric {
	case "faithfulness":
		return fmt.Sprintf(faithfulnessPrompt, ctx, in.Output) + answerFormat, nil
	case "relevancy":
		return fmt.Sprintf(relevancyPrompt, in.Query, in.Output) + answerFormat, nil
	case "hallucination":
		return fmt.Sprintf(hallucinationPrompt, ctx, in.Output) + answerFormat, nil
	case "completeness":
		return fmt.Sprintf(completenessPrompt, in.Query, in.Output) + answerFormat, nil
	case "pii_leakage":
		return fmt.Sprintf(piiLeakagePrompt, in.Output) + answerFormat, nil
	default:
		return "", fmt.Errorf("no judge prompt for metric %q", in.Metric)
	}
}
