package questiongen

import (
	"fmt"
	"strings"

	"github.com/abhisek/skillpath/internal/quiz"
)

const systemPrompt = `You write multiple-choice quiz questions for adults changing careers into software and technology roles.

Rules:
- Every question tests understanding of the given topic at the given difficulty level (beginner, intermediate or advanced).
- Each question has exactly 4 answer options and exactly one of them is correct.
- Distractors must be plausible and reflect common misconceptions, not obviously wrong filler.
- Questions are self-contained: no references to "the code above", images or external links.
- Keep question text under 400 characters and each option under 150 characters.
- Do not use "all of the above" or "none of the above".
- Do not repeat or paraphrase any question from the "already in the pool" list.`

// buildUserMessage constructs the user message for one batch.
func buildUserMessage(input quiz.GenerateInput, count int, cfg Config) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Topic: %s\n", input.Topic)
	fmt.Fprintf(&b, "Difficulty: %s\n", input.Difficulty)
	fmt.Fprintf(&b, "Number of questions: %d\n", count)

	b.WriteString("\nAlready in the pool:\n")
	b.WriteString(buildExclude(input.Exclude, cfg.MaxExclude))

	return b.String()
}

// buildExclude formats existing question texts for the prompt, keeping at
// most max of them. Returns "None" for an empty list.
func buildExclude(texts []string, max int) string {
	if len(texts) == 0 {
		return "None"
	}
	if max > 0 && len(texts) > max {
		texts = texts[:max]
	}

	var b strings.Builder
	for i, t := range texts {
		fmt.Fprintf(&b, "%d. %s\n", i+1, t)
	}
	return strings.TrimRight(b.String(), "\n")
}
