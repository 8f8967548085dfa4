// Package confirm models a pending confirmation as a value.
//
// A destructive command builds a Request, hands it to whoever can ask the
// user, and only performs the action once the request has been approved.
package confirm

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"
)

var (
	// ErrDenied is returned by Run when the request was denied.
	ErrDenied = errors.New("confirmation denied")
	// ErrPending is returned by Run when nobody has answered yet.
	ErrPending = errors.New("confirmation pending")
)

type state int

const (
	pending state = iota
	approved
	denied
)

// Request is a question awaiting an answer.
type Request struct {
	Action string
	Prompt string
	state  state
}

// New creates a pending request.
func New(action, prompt string) *Request {
	return &Request{Action: action, Prompt: prompt}
}

// Approve resolves the request positively. The first answer wins.
func (r *Request) Approve() {
	if r.state == pending {
		r.state = approved
	}
}

// Deny resolves the request negatively. The first answer wins.
func (r *Request) Deny() {
	if r.state == pending {
		r.state = denied
	}
}

func (r *Request) Resolved() bool { return r.state != pending }
func (r *Request) Approved() bool { return r.state == approved }

// Run calls fn only if the request was approved.
func (r *Request) Run(fn func() error) error {
	switch r.state {
	case approved:
		return fn()
	case denied:
		return fmt.Errorf("%s: %w", r.Action, ErrDenied)
	default:
		return fmt.Errorf("%s: %w", r.Action, ErrPending)
	}
}

// Ask writes the prompt to out and resolves the request from one line of in.
// Only "y" or "yes" (any case) approve; anything else, including EOF, denies.
func Ask(r *Request, in io.Reader, out io.Writer) error {
	if _, err := fmt.Fprintf(out, "%s [y/N]: ", r.Prompt); err != nil {
		return err
	}
	line, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "y", "yes":
		r.Approve()
	default:
		r.Deny()
	}
	return nil
}
