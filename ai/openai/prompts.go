package openai

import "fmt"

const summaryPromptTemplate = `You summarize passages from technical and business documents.

Write a single compact summary of the passage the user provides, in at most %d words.
The summary is used as breadcrumb context for smaller passages inside this one, so
favor the passage's subject and scope over its details.

Rules:
- Output the summary text only: no preamble, no labels, no quotation marks.
- Use plain declarative language in the document's own terminology.
- Never mention "the passage", "the text", or "the document".`

// buildSummarySystemPrompt returns the system prompt for node summarization.
func buildSummarySystemPrompt(wordLimit int) string {
	return fmt.Sprintf(summaryPromptTemplate, wordLimit)
}
