package narration

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"knight-quest/internal/armor"
)

const (
	FlavorFallback = "Onward, brave soul! Glory awaits!"
	StoryFallback  = "The wind howls through the hollow armor, carrying whispers of a king who traded his shadow for a crown of salt."

	DefaultTimeout = 10 * time.Second
)

var (
	ErrOffline       = errors.New("no text generator configured")
	ErrEmptyResponse = errors.New("empty response")
)

// TextGenerator turns a prompt into text. Implementations may block for as
// long as ctx allows.
type TextGenerator interface {
	GenerateText(ctx context.Context, prompt string) (string, error)
}

// Error is a failed narration call. Op is "flavor" or "story".
type Error struct {
	Op  string
	Err error
}

func (e *Error) Error() string {
	return fmt.Sprintf("narration %s: %v", e.Op, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Client produces flavor lines and story fragments. The exported methods
// never fail: any error becomes the matching fallback text.
type Client struct {
	flavor  TextGenerator
	story   TextGenerator
	timeout time.Duration
}

// NewClient builds a client. A nil generator makes that call always fall back.
func NewClient(flavor, story TextGenerator, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Client{flavor: flavor, story: story, timeout: timeout}
}

// Offline returns a client that only ever answers with fallbacks.
func Offline() *Client {
	return NewClient(nil, nil, DefaultTimeout)
}

func (c *Client) Online() bool {
	return c.flavor != nil || c.story != nil
}

// FlavorText returns a short ambient line about the knight's quest.
func (c *Client) FlavorText(ctx context.Context, set armor.Set, power float64, tasksRemaining int) string {
	text, err := c.fetchFlavor(ctx, set, power, tasksRemaining)
	if err != nil {
		log.Printf("⚠️ Flavor text unavailable: %v", err)
		return FlavorFallback
	}
	return text
}

// StoryFragment returns the next lore fragment given everything told so far.
func (c *Client) StoryFragment(ctx context.Context, history []string, level int) string {
	text, err := c.fetchStory(ctx, history, level)
	if err != nil {
		log.Printf("⚠️ Story fragment unavailable: %v", err)
		return StoryFallback
	}
	return text
}

func (c *Client) fetchFlavor(ctx context.Context, set armor.Set, power float64, tasksRemaining int) (string, error) {
	return c.generate(ctx, "flavor", c.flavor, FlavorPrompt(set, power, tasksRemaining))
}

func (c *Client) fetchStory(ctx context.Context, history []string, level int) (string, error) {
	text, err := c.generate(ctx, "story", c.story, StoryPrompt(history, level))
	if err != nil {
		return "", err
	}
	text = stripQuotes(text)
	if text == "" {
		return "", &Error{Op: "story", Err: ErrEmptyResponse}
	}
	return text, nil
}

func (c *Client) generate(ctx context.Context, op string, gen TextGenerator, prompt string) (string, error) {
	if gen == nil {
		return "", &Error{Op: op, Err: ErrOffline}
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	type result struct {
		text string
		err  error
	}
	done := make(chan result, 1)
	go func() {
		text, err := gen.GenerateText(ctx, prompt)
		done <- result{text, err}
	}()

	var res result
	select {
	case res = <-done:
	case <-ctx.Done():
		return "", &Error{Op: op, Err: ctx.Err()}
	}

	if res.err != nil {
		return "", &Error{Op: op, Err: res.err}
	}
	text := strings.TrimSpace(res.text)
	if text == "" {
		return "", &Error{Op: op, Err: ErrEmptyResponse}
	}
	return text, nil
}

// stripQuotes removes one leading and one trailing double quote.
func stripQuotes(s string) string {
	s = strings.TrimPrefix(s, `"`)
	s = strings.TrimSuffix(s, `"`)
	return s
}
