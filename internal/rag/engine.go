package rag

import (
	"fmt"

	"coderag/internal/llm"
)

const systemPrompt = `You are a helpful assistant specialized in answering questions about code. Answer based on the code context provided, referencing specific files and functions where relevant. If the context does not contain enough information to answer, say so.`

// Engine ties retrieval to the generative collaborator: it assembles a
// context block for a question and forwards it, unmodified, to the LLM.
type Engine struct {
	assembler *Assembler
	generator llm.Generator
	fileLimit int
}

// NewEngine creates an engine answering from the given assembler and
// generator. fileLimit bounds how many files a context block may draw from.
func NewEngine(assembler *Assembler, generator llm.Generator, fileLimit int) *Engine {
	if fileLimit <= 0 {
		fileLimit = 5
	}
	return &Engine{assembler: assembler, generator: generator, fileLimit: fileLimit}
}

// Ask retrieves context for the question and generates an answer. Both the
// answer and the exact context block sent to the model are returned, so the
// caller can render or log what the model saw.
func (e *Engine) Ask(question string) (answer, context string, err error) {
	return e.AskWithHistory(question, nil)
}

// AskWithHistory is Ask with prior conversation turns included.
func (e *Engine) AskWithHistory(question string, history []llm.Message) (answer, context string, err error) {
	context = e.assembler.BuildContext(question, e.fileLimit)

	msgs := make([]llm.Message, 0, len(history)+2)
	msgs = append(msgs, llm.Message{Role: "system", Content: systemPrompt})
	msgs = append(msgs, history...)
	msgs = append(msgs, llm.Message{
		Role: "user",
		Content: fmt.Sprintf("Code context:\n%s\n\nQuestion: %s",
			context, question),
	})

	answer, err = e.generator.Generate(msgs)
	if err != nil {
		return "", context, fmt.Errorf("generate answer: %w", err)
	}
	return answer, context, nil
}
