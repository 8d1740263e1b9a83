package console

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"sync"

	"github.com/arnavshah/shelter-scheduler-go/pkg/scheduler"
)

type line struct {
	text string
	err  error
}

// Decider answers overflow questions on a terminal
type Decider struct {
	in    *bufio.Reader
	out   io.Writer
	once  sync.Once
	lines chan line
}

// NewDecider reads answers from in and writes prompts to out
func NewDecider(in io.Reader, out io.Writer) *Decider {
	return &Decider{in: bufio.NewReader(in), out: out, lines: make(chan line)}
}

// scan feeds lines to readLine until the input fails, then closes the channel
func (d *Decider) scan() {
	defer close(d.lines)
	for {
		text, err := d.in.ReadString('\n')
		d.lines <- line{text: text, err: err}
		if err != nil {
			return
		}
	}
}

// readLine waits for the next answer or the end of ctx, whichever comes first.
// A line still pending after a cancel is kept for the next call.
func (d *Decider) readLine(ctx context.Context) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	d.once.Do(func() { go d.scan() })

	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case l, ok := <-d.lines:
		if !ok || (errors.Is(l.err, io.EOF) && l.text == "") {
			return "", scheduler.ErrCancelled
		}
		if l.err != nil && !errors.Is(l.err, io.EOF) {
			return "", l.err
		}
		return strings.TrimSpace(l.text), nil
	}
}

// ApproveVolunteer asks whether a backup volunteer can be called for the hour
func (d *Decider) ApproveVolunteer(ctx context.Context, req scheduler.VolunteerRequest) (bool, error) {
	for {
		fmt.Fprintf(d.out, "%s does not fit within its window.\n", req.Label)
		fmt.Fprintf(d.out, "Call a backup volunteer for hour %d? (y/n): ", req.Hour)

		answer, err := d.readLine(ctx)
		if err != nil {
			return false, err
		}
		switch strings.ToLower(answer) {
		case "y", "yes":
			return true, nil
		case "n", "no":
			return false, nil
		case "c", "cancel":
			return false, scheduler.ErrCancelled
		}
		fmt.Fprintln(d.out, scheduler.RepromptMessage)
	}
}

// RescheduleHour asks for a new start hour among the available ones.
// A blank answer skips the item.
func (d *Decider) RescheduleHour(ctx context.Context, req scheduler.RescheduleRequest) (string, error) {
	if req.Problem != nil {
		fmt.Fprintln(d.out, scheduler.RepromptMessage)
	}

	hours := make([]string, 0, len(req.Available))
	for _, h := range req.Available {
		hours = append(hours, strconv.Itoa(h))
	}
	fmt.Fprintf(d.out, "%s cannot be scheduled.\n", req.Label)
	fmt.Fprintf(d.out, "Available hours: %s\n", strings.Join(hours, " "))
	fmt.Fprint(d.out, "New start hour (blank to skip): ")

	answer, err := d.readLine(ctx)
	if err != nil {
		return "", err
	}
	if answer == "" {
		return "", scheduler.ErrCancelled
	}
	return answer, nil
}
