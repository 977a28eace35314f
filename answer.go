package canopy

import (
	"context"
	"fmt"
	"strings"

	"github.com/poiesic/canopy/cite"
	"github.com/poiesic/canopy/core"
	"github.com/poiesic/canopy/retrieve"
)

// Answer is a generated response with the retrieved evidence and the
// page citations backing it.
type Answer struct {
	Text      string
	Sources   *cite.Citations
	Retrieved core.RetrievedSet
}

const answerPromptTemplate = `Answer the question using only the context below. If the context does not contain the answer, say so.

Context:
%s

Question: %s

Answer:`

// Ask retrieves context for a question from a collection, generates an
// answer grounded in it, and attaches merged page citations. A question
// with no matching context yields an empty answer with no sources.
func (l *Library) Ask(ctx context.Context, collection, question string, opts ...retrieve.Option) (*Answer, error) {
	retriever, err := l.NewRetriever(opts...)
	if err != nil {
		return nil, err
	}

	retrieved, err := retriever.Retrieve(ctx, collection, question)
	if err != nil {
		return nil, err
	}

	if len(retrieved) == 0 {
		return &Answer{Sources: cite.Merge(nil)}, nil
	}

	var contextText strings.Builder
	for i, rn := range retrieved {
		if i > 0 {
			contextText.WriteString("\n\n---\n\n")
		}
		contextText.WriteString(rn.Node.Text)
	}

	prompt := fmt.Sprintf(answerPromptTemplate, contextText.String(), question)
	text, err := l.provider.Generator().Generate(ctx, prompt)
	if err != nil {
		return nil, err
	}

	return &Answer{
		Text:      text,
		Sources:   cite.Merge(retrieved.Nodes()),
		Retrieved: retrieved,
	}, nil
}
