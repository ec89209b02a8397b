package console

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/xavierca1/lead-intake/internal/usecase"
)

// ErrInputClosed is returned when the terminal reaches EOF mid-prompt.
var ErrInputClosed = errors.New("console: input closed")

// Console is the agent's terminal. It renders messages as panels and reads
// answers line by line. inMu keeps two prompts from sharing the terminal;
// outMu keeps panels from interleaving.
type Console struct {
	in  *bufio.Reader
	out io.Writer

	inMu  sync.Mutex
	outMu sync.Mutex

	renderer *lipgloss.Renderer
	styles   styles
	delay    time.Duration
	sleep    func(time.Duration)
}

type Option func(*Console)

// WithMessageDelay sets the pause after each panel.
func WithMessageDelay(d time.Duration) Option {
	return func(c *Console) {
		c.delay = d
	}
}

func New(in io.Reader, out io.Writer, opts ...Option) *Console {
	r := lipgloss.NewRenderer(out)
	c := &Console{
		in:       bufio.NewReader(in),
		out:      out,
		renderer: r,
		styles:   newStyles(r),
		delay:    500 * time.Millisecond,
		sleep:    time.Sleep,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Send renders msg in a panel tagged with the lead id.
func (c *Console) Send(leadID int, msg usecase.Message) {
	c.print(c.panel(msg.Title, msg.Body, fmt.Sprintf("Lead %d", leadID), toneColor(msg.Tone)))
	if c.delay > 0 {
		c.sleep(c.delay)
	}
}

// Ask prompts for free text. An empty answer yields defaultAnswer.
func (c *Console) Ask(ctx context.Context, leadID int, question, defaultAnswer string) (string, error) {
	c.inMu.Lock()
	defer c.inMu.Unlock()

	label := c.styles.prompt.Render(question)
	if defaultAnswer != "" {
		label += " " + c.styles.hint.Render("("+defaultAnswer+")")
	}

	answer, err := c.readLine(ctx, label)
	if err != nil {
		return "", err
	}
	if answer == "" {
		return defaultAnswer, nil
	}
	return answer, nil
}

// Choose prompts until the answer matches one of choices, ignoring case and
// surrounding space. The canonical spelling from choices is returned.
func (c *Console) Choose(ctx context.Context, leadID int, question string, choices []string) (string, error) {
	if len(choices) == 0 {
		return "", fmt.Errorf("console: no choices for %q", question)
	}

	c.inMu.Lock()
	defer c.inMu.Unlock()

	label := c.styles.prompt.Render(question) + " " +
		c.styles.hint.Render("["+strings.Join(choices, "/")+"]")

	for {
		answer, err := c.readLine(ctx, label)
		if err != nil {
			return "", err
		}
		for _, choice := range choices {
			if strings.EqualFold(answer, choice) {
				return choice, nil
			}
		}
		c.print(c.styles.warning.Render("Please select one of the available options"))
	}
}

func (c *Console) readLine(ctx context.Context, label string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	c.outMu.Lock()
	fmt.Fprint(c.out, label+": ")
	c.outMu.Unlock()

	line, err := c.in.ReadString('\n')
	if err != nil {
		if errors.Is(err, io.EOF) && line != "" {
			return strings.TrimSpace(line), nil
		}
		if errors.Is(err, io.EOF) {
			return "", ErrInputClosed
		}
		return "", fmt.Errorf("console: read input: %w", err)
	}
	return strings.TrimSpace(line), nil
}

// Header prints the boxed system status banner.
func (c *Console) Header(message string) {
	c.print(c.panel("System Status", message, "", lipgloss.Color("#4FD1C5")))
}

// Banner prints a titled panel that is not tied to a lead.
func (c *Console) Banner(title, body string, tone usecase.Tone) {
	c.print(c.panel(title, body, "", toneColor(tone)))
}

func (c *Console) Divider() {
	c.print(c.styles.dim.Render(strings.Repeat("-", 60)))
}

func (c *Console) Status(format string, args ...any) {
	c.print(c.styles.warning.Render(fmt.Sprintf(format, args...)))
}

func (c *Console) Notice(format string, args ...any) {
	c.print(c.styles.dim.Render(fmt.Sprintf(format, args...)))
}

func (c *Console) Success(format string, args ...any) {
	c.print(c.styles.success.Render(fmt.Sprintf(format, args...)))
}

func (c *Console) panel(title, body, subtitle string, border lipgloss.Color) string {
	parts := []string{c.styles.title.Foreground(border).Render(title), ""}
	parts = append(parts, c.renderer.NewStyle().Width(panelWidth-6).Render(body))
	if subtitle != "" {
		parts = append(parts, "", c.styles.subtitle.Render(subtitle))
	}
	return c.renderer.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(border).
		Padding(1, 2).
		Render(lipgloss.JoinVertical(lipgloss.Left, parts...))
}

func (c *Console) print(s string) {
	c.outMu.Lock()
	defer c.outMu.Unlock()
	fmt.Fprintln(c.out, s)
}
