package tasks

import (
	"testing"

	"github.com/hibiken/asynq"
)

func TestRatingRefreshTaskPayload(t *testing.T) {
	task, opts, err := NewRatingRefreshTask("7d3c0f5e-54a1-4f8e-9c55-2b0f1f7c9a10")
	if err != nil {
		t.Fatal(err)
	}
	if task.Type() != TypeWorkerRatingRefresh {
		t.Fatalf("type = %s", task.Type())
	}
	if len(opts) == 0 {
		t.Fatal("expected retry options")
	}
	p, err := ParseRatingRefreshTask(task)
	if err != nil {
		t.Fatal(err)
	}
	if p.WorkerID != "7d3c0f5e-54a1-4f8e-9c55-2b0f1f7c9a10" {
		t.Fatalf("workerId = %q", p.WorkerID)
	}
}

func TestParseRatingRefreshTaskRejectsBadPayload(t *testing.T) {
	for name, payload := range map[string]string{
		"not json":  "{",
		"no worker": `{"workerId":""}`,
	} {
		t.Run(name, func(t *testing.T) {
			if _, err := ParseRatingRefreshTask(asynq.NewTask(TypeWorkerRatingRefresh, []byte(payload))); err == nil {
				t.Fatal("expected an error")
			}
		})
	}
}
