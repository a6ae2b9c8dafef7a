package tui

import (
	"context"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type scriptedAssistant struct {
	answer    string
	questions []string
}

func (s *scriptedAssistant) Answer(_ context.Context, q string) string {
	s.questions = append(s.questions, q)
	return s.answer
}

func TestIsQuitWord(t *testing.T) {
	for _, word := range []string{"exit", "quit", "EXIT", "Quit", "eXiT"} {
		assert.True(t, isQuitWord(word), word)
	}
	for _, word := range []string{"", "exit now", "quitting", "help"} {
		assert.False(t, isQuitWord(word), word)
	}
}

func TestEnterDispatchesQuestion(t *testing.T) {
	svc := &scriptedAssistant{answer: "I build systems."}
	m := New(svc, "greeting")
	m.input.SetValue("What do you do?")

	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	model := next.(Model)
	require.NotNil(t, cmd)
	assert.True(t, model.waiting)
	assert.Empty(t, model.input.Value())

	// Running the command performs the blocking call and yields the answer.
	msg := cmd()
	answer, ok := msg.(answerMsg)
	require.True(t, ok)
	assert.Equal(t, "What do you do?", answer.question)
	assert.Equal(t, "I build systems.", answer.answer)
	assert.Equal(t, []string{"What do you do?"}, svc.questions)

	next, _ = model.Update(msg)
	model = next.(Model)
	assert.False(t, model.waiting)
	require.Len(t, model.history, 1)
	assert.Equal(t, "I build systems.", model.history[0].answer)
}

func TestEnterOnEmptyInputIsNoOp(t *testing.T) {
	svc := &scriptedAssistant{}
	m := New(svc, "greeting")
	m.input.SetValue("   ")

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	assert.Nil(t, cmd)
	assert.Empty(t, svc.questions)
}

func TestQuitWordQuits(t *testing.T) {
	svc := &scriptedAssistant{}
	m := New(svc, "greeting")
	m.input.SetValue("EXIT")

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)
	assert.Equal(t, tea.Quit(), cmd())
	assert.Empty(t, svc.questions)
}
