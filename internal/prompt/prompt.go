// Package prompt reads operator input line by line. Every prompt that
// validates its input re-asks until it gets an acceptable value; the only
// way out is a valid answer or the end of the input stream.
package prompt

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"song-catalog/internal/shared"
)

const (
	MsgRequired      = "This field is required."
	MsgInvalidChoice = "Invalid. Try again."
	MsgInvalidYear   = "Invalid year. Try again."

	choosePrompt = "Choose: "
	customPrompt = "Enter custom value: "
	otherLabel   = "Other"

	// maxLineSize bounds a single answer; pasted URLs can exceed bufio's 64 KiB default.
	maxLineSize = 1 << 20
)

// Console prompts on out and reads answers from in.
type Console struct {
	scanner *bufio.Scanner
	out     io.Writer
}

// NewConsole creates a console over the given streams
func NewConsole(in io.Reader, out io.Writer) *Console {
	scanner := bufio.NewScanner(in)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)
	return &Console{
		scanner: scanner,
		out:     out,
	}
}

// Println writes a plain line to the console output
func (c *Console) Println(a ...interface{}) {
	fmt.Fprintln(c.out, a...)
}

func (c *Console) readLine(label string) (string, error) {
	shared.ColorPrompt.Fprint(c.out, label)
	if !c.scanner.Scan() {
		fmt.Fprintln(c.out)
		if err := c.scanner.Err(); err != nil {
			return "", fmt.Errorf("read input: %w", err)
		}
		return "", shared.ErrInputClosed
	}
	return strings.TrimSpace(c.scanner.Text()), nil
}

func (c *Console) retry(message string) {
	shared.ColorError.Fprintln(c.out, message)
}

// Required asks until a non-empty answer is given
func (c *Console) Required(label string) (string, error) {
	for {
		value, err := c.readLine(label)
		if err != nil {
			return "", err
		}
		if value != "" {
			return value, nil
		}
		c.retry(MsgRequired)
	}
}

// Optional asks once and returns the trimmed answer, possibly empty
func (c *Console) Optional(label string) (string, error) {
	return c.readLine(label)
}

// List asks for a comma separated answer until it holds at least one item
func (c *Console) List(label string) ([]string, error) {
	for {
		raw, err := c.Required(label)
		if err != nil {
			return nil, err
		}
		if items := shared.SplitList(raw); len(items) > 0 {
			return items, nil
		}
		c.retry(MsgRequired)
	}
}

// Choice shows a numbered menu with 0 reserved for a custom value. Choosing
// 0 returns whatever custom value is typed, even an empty one.
func (c *Console) Choice(title string, options []string) (string, error) {
	fmt.Fprintln(c.out)
	shared.ColorHeader.Fprintln(c.out, title)
	for i, opt := range options {
		fmt.Fprintf(c.out, " %d) %s\n", i+1, opt)
	}
	fmt.Fprintf(c.out, " 0) %s\n", otherLabel)

	for {
		sel, err := c.readLine(choosePrompt)
		if err != nil {
			return "", err
		}
		if isDigits(sel) {
			if n, err := strconv.Atoi(sel); err == nil {
				if n == 0 {
					return c.readLine(customPrompt)
				}
				if n >= 1 && n <= len(options) {
					return options[n-1], nil
				}
			}
		}
		c.retry(MsgInvalidChoice)
	}
}

// Year asks for a year, returning def when the answer is blank
func (c *Console) Year(label string, def int) (int, error) {
	for {
		raw, err := c.readLine(label)
		if err != nil {
			return 0, err
		}
		if raw == "" {
			return def, nil
		}
		if year, err := strconv.Atoi(raw); err == nil {
			return year, nil
		}
		c.retry(MsgInvalidYear)
	}
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
