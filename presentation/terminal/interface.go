package terminal

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"page_automation/application/actions"
	"page_automation/application/pages"
	"page_automation/domain/interfaces"
	"page_automation/infrastructure/browser"
	"page_automation/infrastructure/config"
	"page_automation/infrastructure/logging"
	"page_automation/infrastructure/report"
	"page_automation/infrastructure/security"
	"page_automation/infrastructure/storage"

	"github.com/sirupsen/logrus"
)

const helpText = `Commands:
  open <url>                       navigate (relative to BASE_URL)
  click <selector> [name]          click a visible element
  fill <selector> <text> [name]    enter text into a visible element
  select <selector> <value>        select a dropdown option by value
  text <selector>                  print the trimmed text of an element
  login <username> <password>      sign in through the login page
  url                              print the current URL
  screenshot <file>                save a PNG of the page
  steps                            list recorded steps
  help                             show this help
  quit                             exit
Append --timeout=<duration> to override the visibility wait.`

var errQuit = errors.New("quit")

type TerminalInterface struct {
	session  interfaces.Session
	page     *pages.BasePage
	recorder *report.StepRecorder
	logger   logrus.FieldLogger
	reader   *bufio.Reader
	out      io.Writer
}

func NewTerminalInterface() (*TerminalInterface, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	logger := logging.NewLogger(cfg, os.Stderr)

	var store interfaces.ReportStorage
	if cfg.ReportPath != "" {
		store, err = storage.NewReportStore(cfg.ReportPath)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize report storage: %w", err)
		}
	}
	recorder := report.NewStepRecorder(logger, store)

	session, err := browser.NewSession(cfg, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize browser: %w", err)
	}

	wrapper := actions.NewActionWrapper(recorder, security.NewSecurityLayer(logger), logger, cfg.ActionTimeout)

	return New(session, pages.NewBasePage(session, wrapper), recorder, logger, os.Stdin, os.Stdout), nil
}

// New wires a terminal around an existing session and page
func New(session interfaces.Session, page *pages.BasePage, recorder *report.StepRecorder, logger logrus.FieldLogger, in io.Reader, out io.Writer) *TerminalInterface {
	return &TerminalInterface{
		session:  session,
		page:     page,
		recorder: recorder,
		logger:   logger,
		reader:   bufio.NewReader(in),
		out:      out,
	}
}

func (t *TerminalInterface) Run() error {
	fmt.Fprintln(t.out, "Page Automation")
	fmt.Fprintln(t.out, "===============")
	fmt.Fprintln(t.out, "Type 'help' for commands, or 'quit' to exit")
	fmt.Fprintln(t.out)

	for {
		fmt.Fprint(t.out, "> ")
		input, readErr := t.reader.ReadString('\n')

		if strings.TrimSpace(input) != "" {
			err := t.Execute(context.Background(), input)
			if errors.Is(err, errQuit) {
				fmt.Fprintln(t.out, "Bye!")
				return nil
			}
			if err != nil {
				fmt.Fprintf(t.out, "Error: %v\n", err)
			}
		}

		if readErr != nil {
			if errors.Is(readErr, io.EOF) {
				return nil
			}
			return readErr
		}
	}
}

// Execute runs one command line
func (t *TerminalInterface) Execute(ctx context.Context, line string) error {
	args, err := splitArgs(line)
	if err != nil {
		return err
	}
	args, timeout, err := extractTimeout(args)
	if err != nil {
		return err
	}
	if len(args) == 0 {
		return nil
	}

	cmd, args := strings.ToLower(args[0]), args[1:]
	switch cmd {
	case "quit", "exit", "q":
		return errQuit
	case "help":
		fmt.Fprintln(t.out, helpText)
		return nil
	case "open":
		if len(args) != 1 {
			return usage("open <url>")
		}
		return t.page.Open(ctx, args[0])
	case "click":
		if len(args) < 1 || len(args) > 2 {
			return usage("click <selector> [name]")
		}
		return t.page.ClickOnElement(ctx, t.page.Element(args[0]), nameOr(args, 1), timeout)
	case "fill":
		if len(args) < 2 || len(args) > 3 {
			return usage("fill <selector> <text> [name]")
		}
		return t.page.EnterTextInElement(ctx, t.page.Element(args[0]), args[1], nameOr(args, 2), timeout)
	case "select":
		if len(args) != 2 {
			return usage("select <selector> <value>")
		}
		return t.page.SelectOptionFromDropdown(ctx, t.page.Element(args[0]), args[1], timeout)
	case "text":
		if len(args) != 1 {
			return usage("text <selector>")
		}
		text, err := t.page.GetElementText(ctx, t.page.Element(args[0]), timeout)
		if err != nil {
			return err
		}
		fmt.Fprintln(t.out, text)
		return nil
	case "login":
		if len(args) != 2 {
			return usage("login <username> <password>")
		}
		user, err := pages.NewLoginPage(t.page).Login(ctx, args[0], args[1])
		if err != nil {
			return err
		}
		fmt.Fprintf(t.out, "Signed in as %s\n", user)
		return nil
	case "url":
		u, err := t.session.CurrentURL(ctx)
		if err != nil {
			return err
		}
		fmt.Fprintln(t.out, u)
		return nil
	case "screenshot":
		if len(args) != 1 {
			return usage("screenshot <file>")
		}
		data, err := t.session.Screenshot(ctx)
		if err != nil {
			return err
		}
		return os.WriteFile(args[0], data, 0644)
	case "steps":
		t.printSteps()
		return nil
	default:
		return fmt.Errorf("unknown command %q, type 'help'", cmd)
	}
}

func (t *TerminalInterface) printSteps() {
	steps := t.recorder.Steps()
	if len(steps) == 0 {
		fmt.Fprintln(t.out, "No steps recorded")
		return
	}
	for i, s := range steps {
		line := fmt.Sprintf("%2d. [%s] %s (%s)", i+1, s.Status, s.Title, s.Duration.Round(time.Millisecond))
		if s.Error != "" {
			line += ": " + s.Error
		}
		fmt.Fprintln(t.out, line)
	}
}

func (t *TerminalInterface) Close() error {
	if err := t.recorder.Flush(); err != nil {
		t.logger.WithError(err).Error("Failed to save step report")
	}
	return t.session.Close()
}

func usage(s string) error {
	return fmt.Errorf("usage: %s", s)
}

func nameOr(args []string, i int) string {
	if len(args) > i {
		return args[i]
	}
	return args[0]
}

// extractTimeout removes a --timeout=<duration> flag from args
func extractTimeout(args []string) ([]string, time.Duration, error) {
	var timeout time.Duration
	rest := args[:0:0]
	for _, a := range args {
		if v, ok := strings.CutPrefix(a, "--timeout="); ok {
			d, err := time.ParseDuration(v)
			if err != nil {
				return nil, 0, fmt.Errorf("invalid timeout %q: %w", v, err)
			}
			timeout = d
			continue
		}
		rest = append(rest, a)
	}
	return rest, timeout, nil
}

// splitArgs splits a command line on spaces, keeping quoted runs together
func splitArgs(line string) ([]string, error) {
	var args []string
	var cur strings.Builder
	var quote rune
	inArg := false

	for _, r := range strings.TrimSpace(line) {
		switch {
		case quote != 0:
			if r == quote {
				quote = 0
			} else {
				cur.WriteRune(r)
			}
		case (r == '"' || r == '\'') && !inArg:
			quote = r
			inArg = true
		case r == ' ' || r == '\t':
			if inArg {
				args = append(args, cur.String())
				cur.Reset()
				inArg = false
			}
		default:
			cur.WriteRune(r)
			inArg = true
		}
	}
	if quote != 0 {
		return nil, fmt.Errorf("unterminated quote in %q", strings.TrimSpace(line))
	}
	if inArg {
		args = append(args, cur.String())
	}
	return args, nil
}
