package terminal

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	logtest "github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"page_automation/application/actions"
	"page_automation/application/pages"
	"page_automation/domain/interfaces"
	"page_automation/infrastructure/report"
)

type memElement struct {
	selector string
	visible  bool
	value    string
	waits    []time.Duration
}

func (e *memElement) Describe() string { return e.selector }

func (e *memElement) WaitVisible(_ context.Context, timeout time.Duration) error {
	e.waits = append(e.waits, timeout)
	if !e.visible {
		return errors.New("Timeout exceeded")
	}
	return nil
}

func (e *memElement) Click(context.Context) error { return nil }

func (e *memElement) Fill(_ context.Context, text string) error {
	e.value = text
	return nil
}

func (e *memElement) SelectOption(_ context.Context, value string) error {
	e.value = value
	return nil
}

func (e *memElement) Text(context.Context) (string, error) { return e.value, nil }

type memSession struct {
	elements map[string]*memElement
	url      string
	closed   bool
}

func (s *memSession) Element(selector string) interfaces.Element {
	if el, ok := s.elements[selector]; ok {
		return el
	}
	el := &memElement{selector: selector, visible: true}
	s.elements[selector] = el
	return el
}

func (s *memSession) Navigate(_ context.Context, url string) error {
	s.url = url
	return nil
}

func (s *memSession) CurrentURL(context.Context) (string, error) { return s.url, nil }

func (s *memSession) Screenshot(context.Context) ([]byte, error) { return []byte("png"), nil }

func (s *memSession) Close() error {
	s.closed = true
	return nil
}

func newTestTerminal(input string) (*TerminalInterface, *memSession, *bytes.Buffer) {
	logger, _ := logtest.NewNullLogger()
	session := &memSession{elements: map[string]*memElement{
		"#hidden": {selector: "#hidden"},
	}}
	recorder := report.NewStepRecorder(logger, nil)
	wrapper := actions.NewActionWrapper(recorder, nil, logger, 0)
	var out bytes.Buffer
	term := New(session, pages.NewBasePage(session, wrapper), recorder, logger, strings.NewReader(input), &out)
	return term, session, &out
}

func TestRunScript(t *testing.T) {
	t.Parallel()
	script := strings.Join([]string{
		"open /dcim/sites/",
		`fill "#id_name" "  dc-1 " "Site name"`,
		"text #id_name",
		"select select#status B --timeout=2s",
		"text select#status",
		"click #hidden Hidden --timeout=10ms",
		"url",
		"steps",
		"quit",
		"text #never-reached",
	}, "\n")
	term, session, out := newTestTerminal(script)

	require.NoError(t, term.Run())

	output := out.String()
	assert.Equal(t, "/dcim/sites/", session.url)
	assert.Contains(t, output, "> dc-1\n")
	assert.Contains(t, output, "> B\n")
	assert.Contains(t, output, "Error: ")
	assert.Contains(t, output, "Element [Hidden] not visible within 10ms")
	assert.Contains(t, output, "[passed] Enter text in element [Site name]")
	assert.Contains(t, output, "[failed] Click on element [Hidden]")
	assert.Contains(t, output, "Bye!")
	assert.NotContains(t, output, "never-reached")
	assert.Equal(t, []time.Duration{2 * time.Second, 4 * time.Second}, session.elements["select#status"].waits)
}

func TestRunStopsAtEOF(t *testing.T) {
	t.Parallel()
	term, session, out := newTestTerminal("fill #q abc")

	require.NoError(t, term.Run())
	assert.Equal(t, "abc", session.elements["#q"].value)
	assert.NotContains(t, out.String(), "Error")
}

func TestExecuteErrors(t *testing.T) {
	t.Parallel()
	term, _, _ := newTestTerminal("")
	ctx := context.Background()

	assert.ErrorContains(t, term.Execute(ctx, "teleport"), "unknown command")
	assert.ErrorContains(t, term.Execute(ctx, "fill #a"), "usage: fill")
	assert.ErrorContains(t, term.Execute(ctx, "click #a --timeout=soon"), "invalid timeout")
	assert.ErrorContains(t, term.Execute(ctx, `fill "#a abc`), "unterminated quote")
	assert.ErrorIs(t, term.Execute(ctx, "exit"), errQuit)
	assert.NoError(t, term.Execute(ctx, "   "))
}

func TestLoginCommand(t *testing.T) {
	t.Parallel()
	term, session, out := newTestTerminal("")
	session.Element("#navbarDropdown").(*memElement).value = " admin "

	require.NoError(t, term.Execute(context.Background(), "login admin s3cret"))
	assert.Equal(t, "/login/", session.url)
	assert.Equal(t, "s3cret", session.elements["input#id_password"].value)
	assert.Contains(t, out.String(), "Signed in as admin")
}

func TestCloseFlushesAndClosesSession(t *testing.T) {
	t.Parallel()
	term, session, _ := newTestTerminal("")
	require.NoError(t, term.Execute(context.Background(), "click #a"))

	require.NoError(t, term.Close())
	assert.True(t, session.closed)
	assert.Empty(t, term.recorder.Steps())
}

func TestSplitArgs(t *testing.T) {
	t.Parallel()
	tests := []struct {
		line string
		want []string
	}{
		{"click #save", []string{"click", "#save"}},
		{`fill "#name" "Data Center 1"`, []string{"fill", "#name", "Data Center 1"}},
		{"click button[type='submit'] Submit", []string{"click", "button[type='submit']", "Submit"}},
		{`fill #a ''`, []string{"fill", "#a", ""}},
		{"  text\t#x  ", []string{"text", "#x"}},
		{"", nil},
	}
	for _, tt := range tests {
		got, err := splitArgs(tt.line)
		require.NoError(t, err, tt.line)
		assert.Equal(t, tt.want, got, tt.line)
	}
}
