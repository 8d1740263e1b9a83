package console

import (
	"context"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arnavshah/shelter-scheduler-go/pkg/models"
	"github.com/arnavshah/shelter-scheduler-go/pkg/scheduler"
)

func volunteerReq() scheduler.VolunteerRequest {
	return scheduler.VolunteerRequest{Hour: 10, Label: "Give medication for Sly"}
}

func TestApproveVolunteer(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		want   bool
		err    error
		prompt int
	}{
		{name: "yes", input: "y\n", want: true, prompt: 1},
		{name: "no", input: "No\n", want: false, prompt: 1},
		{name: "reprompt", input: "maybe\nyes\n", want: true, prompt: 2},
		{name: "cancel", input: "c\n", err: scheduler.ErrCancelled, prompt: 1},
		{name: "eof", input: "", err: scheduler.ErrCancelled, prompt: 1},
		{name: "last line without newline", input: "y", want: true, prompt: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out strings.Builder
			got, err := NewDecider(strings.NewReader(tt.input), &out).ApproveVolunteer(context.Background(), volunteerReq())
			if tt.err != nil {
				assert.ErrorIs(t, err, tt.err)
			} else {
				require.NoError(t, err)
				assert.Equal(t, tt.want, got)
			}
			assert.Equal(t, tt.prompt, strings.Count(out.String(), "(y/n)"))
			assert.Equal(t, tt.prompt-1, strings.Count(out.String(), scheduler.RepromptMessage))
		})
	}
}

func TestRescheduleHour(t *testing.T) {
	var out strings.Builder
	d := NewDecider(strings.NewReader(" 7 \n"), &out)

	answer, err := d.RescheduleHour(context.Background(), scheduler.RescheduleRequest{
		Label:     "Give medication for Sly",
		Available: []int{2, 3, 7},
		Attempt:   1,
	})
	require.NoError(t, err)
	assert.Equal(t, "7", answer)
	assert.Contains(t, out.String(), "Available hours: 2 3 7\n")
	assert.NotContains(t, out.String(), scheduler.RepromptMessage)
}

func TestRescheduleHour_Reprompt(t *testing.T) {
	var out strings.Builder
	d := NewDecider(strings.NewReader("\n"), &out)

	_, err := d.RescheduleHour(context.Background(), scheduler.RescheduleRequest{
		Available: []int{4},
		Attempt:   2,
		Problem:   scheduler.ErrInvalidHour,
	})
	assert.ErrorIs(t, err, scheduler.ErrCancelled)
	assert.True(t, strings.HasPrefix(out.String(), scheduler.RepromptMessage+"\n"))
}

func TestDecider_ContextCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewDecider(strings.NewReader("y\n"), &strings.Builder{}).ApproveVolunteer(ctx, volunteerReq())
	assert.ErrorIs(t, err, context.Canceled)
}

func TestDecider_CancelWhileWaiting(t *testing.T) {
	r, w := io.Pipe()
	t.Cleanup(func() { _ = w.Close() })
	d := NewDecider(r, &strings.Builder{})

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		_, err := d.RescheduleHour(ctx, scheduler.RescheduleRequest{Available: []int{4}, Attempt: 1})
		done <- err
	}()

	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		assert.ErrorIs(t, err, context.Canceled)
	case <-time.After(2 * time.Second):
		t.Fatal("RescheduleHour did not return after cancel")
	}
}

func TestDecider_KeepsLineAfterCancel(t *testing.T) {
	r, w := io.Pipe()
	d := NewDecider(r, &strings.Builder{})

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	_, err := d.ApproveVolunteer(ctx, volunteerReq())
	require.ErrorIs(t, err, context.DeadlineExceeded)

	go func() {
		_, _ = io.WriteString(w, "y\n")
		_ = w.Close()
	}()
	approved, err := d.ApproveVolunteer(context.Background(), volunteerReq())
	require.NoError(t, err)
	assert.True(t, approved)

	_, err = d.ApproveVolunteer(context.Background(), volunteerReq())
	assert.ErrorIs(t, err, scheduler.ErrCancelled)
}

func TestDecider_DrivesRun(t *testing.T) {
	fox, err := models.NewAnimal(1, "Sly", "fox")
	require.NoError(t, err)
	bandage, err := models.NewTask(7, "Rebandage leg", 60, 1)
	require.NoError(t, err)
	first, err := models.NewTreatment(12, 1, 7, 0)
	require.NoError(t, err)
	second, err := models.NewTreatment(13, 1, 7, 0)
	require.NoError(t, err)
	catalog, err := scheduler.NewCatalog([]*models.Animal{fox}, []models.Task{bandage}, []*models.Treatment{first, second})
	require.NoError(t, err)

	var out strings.Builder
	d := NewDecider(strings.NewReader("n\n0\n4\n"), &out)
	result, err := scheduler.New(nil).Schedule(context.Background(), catalog, d)
	require.NoError(t, err)

	assert.Equal(t, 1, result.Rescheduled)
	assert.Equal(t, 0, result.State.Remaining(4))
	assert.Equal(t, 1, strings.Count(out.String(), scheduler.RepromptMessage))
}
