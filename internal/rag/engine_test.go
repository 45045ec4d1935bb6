package rag

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"coderag/internal/llm"
	"coderag/internal/store"
)

// fakeGenerator records the messages it receives and returns a canned answer.
type fakeGenerator struct {
	got    []llm.Message
	answer string
	err    error
}

func (g *fakeGenerator) Generate(msgs []llm.Message) (string, error) {
	g.got = msgs
	return g.answer, g.err
}

func TestEngineAskBuildsPrompt(t *testing.T) {
	st := &stubStore{hits: []store.Hit{
		hit("1", "Function add from calc.py\ndef add(a, b): return a+b", "calc.py", 0.9),
	}}
	gen := &fakeGenerator{answer: "the add function sums two numbers"}
	e := NewEngine(NewAssembler(st), gen, 5)

	answer, context, err := e.Ask("what does add do?")
	require.NoError(t, err)
	assert.Equal(t, "the add function sums two numbers", answer)
	assert.Contains(t, context, "--- File: calc.py ---")

	require.Len(t, gen.got, 2)
	assert.Equal(t, "system", gen.got[0].Role)
	assert.Equal(t, "user", gen.got[1].Role)
	assert.Contains(t, gen.got[1].Content, "Code context:\n")
	assert.Contains(t, gen.got[1].Content, context)
	assert.Contains(t, gen.got[1].Content, "Question: what does add do?")
}

func TestEngineAskWithHistoryOrdersTurns(t *testing.T) {
	st := &stubStore{hits: []store.Hit{
		hit("1", "Function add from calc.py\ndef add(a, b): return a+b", "calc.py", 0.9),
	}}
	gen := &fakeGenerator{answer: "see above"}
	e := NewEngine(NewAssembler(st), gen, 5)

	history := []llm.Message{
		{Role: "user", Content: "earlier question"},
		{Role: "assistant", Content: "earlier answer"},
	}
	_, _, err := e.AskWithHistory("follow-up", history)
	require.NoError(t, err)

	require.Len(t, gen.got, 4)
	assert.Equal(t, "system", gen.got[0].Role)
	assert.Equal(t, "earlier question", gen.got[1].Content)
	assert.Equal(t, "earlier answer", gen.got[2].Content)
	assert.Equal(t, "user", gen.got[3].Role)
}

func TestEngineAskNoContextStillAnswers(t *testing.T) {
	gen := &fakeGenerator{answer: "I do not have enough context"}
	e := NewEngine(NewAssembler(&stubStore{}), gen, 5)

	answer, context, err := e.Ask("anything")
	require.NoError(t, err)
	assert.Equal(t, NoContextSentinel, context,
		"the sentinel is passed through so the model can say it lacks context")
	assert.NotEmpty(t, answer)
}

func TestEngineAskGeneratorError(t *testing.T) {
	gen := &fakeGenerator{err: errors.New("model unavailable")}
	e := NewEngine(NewAssembler(&stubStore{}), gen, 5)

	answer, context, err := e.Ask("anything")
	require.Error(t, err)
	assert.Empty(t, answer)
	assert.Equal(t, NoContextSentinel, context, "context is returned even on failure")
}
