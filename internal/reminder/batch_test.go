package reminder

import (
	"context"
	"errors"
	"testing"
	"time"

	"planner/internal/auth"
	"planner/internal/email"
	"planner/internal/task"
)

type fakeStore struct {
	users    []DueUser
	fetchErr error

	recordErr   error
	recordCalls []uint64
}

func (f *fakeStore) UsersWithTasksDueToday(ctx context.Context, now time.Time) ([]DueUser, error) {
	return f.users, f.fetchErr
}

func (f *fakeStore) RecordReminders(ctx context.Context, userID uint64, tasks []task.Task, sentAt time.Time) error {
	f.recordCalls = append(f.recordCalls, userID)
	return f.recordErr
}

type fakeSender struct {
	send  func(toEmail string) (string, error)
	calls []string
}

func (f *fakeSender) Send(ctx context.Context, toEmail, toName, subject, htmlContent string) (string, error) {
	f.calls = append(f.calls, toEmail)
	if f.send != nil {
		return f.send(toEmail)
	}
	return "msg-" + toEmail, nil
}

func dueUser(id uint64, emailAddr string, taskCount int) DueUser {
	tasks := make([]task.Task, taskCount)
	for i := range tasks {
		tasks[i] = task.Task{Title: "t", Priority: task.PriorityMedium, Status: task.StatusPending}
	}
	return DueUser{
		User:  auth.User{ID: id, Email: emailAddr, FirstName: "F", LastName: "L"},
		Tasks: tasks,
	}
}

func TestBatchRunSingleUser(t *testing.T) {
	store := &fakeStore{users: []DueUser{dueUser(1, "a@x.test", 2)}}
	sender := &fakeSender{}
	b := NewBatch(store, sender, 0)

	results, err := b.Run(context.Background())
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if len(results) != 1 {
		t.Fatalf("got %d results, want 1", len(results))
	}
	r := results[0]
	if !r.Success || r.UserID != 1 || r.Email != "a@x.test" || r.TasksCount != 2 {
		t.Errorf("unexpected result: %+v", r)
	}
	if r.MessageID != "msg-a@x.test" {
		t.Errorf("MessageID = %q", r.MessageID)
	}
	if r.Error != "" {
		t.Errorf("Error = %q, want empty", r.Error)
	}
	if len(sender.calls) != 1 {
		t.Errorf("sender called %d times, want 1", len(sender.calls))
	}
	if len(store.recordCalls) != 1 || store.recordCalls[0] != 1 {
		t.Errorf("recordCalls = %v, want [1]", store.recordCalls)
	}
}

func TestBatchRunContinuesAfterSendFailure(t *testing.T) {
	store := &fakeStore{users: []DueUser{
		dueUser(1, "a@x.test", 1),
		dueUser(2, "b@x.test", 1),
	}}
	sender := &fakeSender{send: func(string) (string, error) {
		return "", email.ErrNoAPIKey
	}}
	b := NewBatch(store, sender, 0)

	results, err := b.Run(context.Background())
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("got %d results, want 2", len(results))
	}
	for i, r := range results {
		if r.Success {
			t.Errorf("result %d unexpectedly succeeded", i)
		}
		if r.Error != email.ErrNoAPIKey.Error() {
			t.Errorf("result %d error = %q", i, r.Error)
		}
	}
	if len(sender.calls) != 2 {
		t.Errorf("sender called %d times, want 2", len(sender.calls))
	}
	if len(store.recordCalls) != 0 {
		t.Errorf("reminders recorded for failed sends: %v", store.recordCalls)
	}
}

func TestBatchRunNoDueUsers(t *testing.T) {
	store := &fakeStore{}
	sender := &fakeSender{}
	b := NewBatch(store, sender, 0)

	results, err := b.Run(context.Background())
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if results == nil {
		t.Fatal("results is nil, want empty slice")
	}
	if len(results) != 0 {
		t.Errorf("got %d results, want 0", len(results))
	}
	if len(sender.calls) != 0 {
		t.Errorf("sender called %d times, want 0", len(sender.calls))
	}
}

func TestBatchRunPreservesOrderAcrossFailures(t *testing.T) {
	store := &fakeStore{users: []DueUser{
		dueUser(1, "a@x.test", 1),
		dueUser(2, "b@x.test", 1),
		dueUser(3, "c@x.test", 1),
	}}
	sender := &fakeSender{send: func(toEmail string) (string, error) {
		if toEmail == "b@x.test" {
			return "", errors.New("gateway timeout")
		}
		return "msg-" + toEmail, nil
	}}
	b := NewBatch(store, sender, 0)

	results, err := b.Run(context.Background())
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if len(results) != 3 {
		t.Fatalf("got %d results, want 3", len(results))
	}
	wantIDs := []uint64{1, 2, 3}
	for i, r := range results {
		if r.UserID != wantIDs[i] {
			t.Errorf("result %d has UserID %d, want %d", i, r.UserID, wantIDs[i])
		}
	}
	if results[0].Success != true || results[1].Success != false || results[2].Success != true {
		t.Errorf("success pattern = %v %v %v, want true false true",
			results[0].Success, results[1].Success, results[2].Success)
	}
	if results[1].Error != "gateway timeout" {
		t.Errorf("middle result error = %q", results[1].Error)
	}
}

func TestBatchRunFetchErrorIsFatal(t *testing.T) {
	fetchErr := errors.New("connection refused")
	store := &fakeStore{fetchErr: fetchErr}
	b := NewBatch(store, &fakeSender{}, 0)

	results, err := b.Run(context.Background())
	if err == nil {
		t.Fatal("Run returned nil error")
	}
	if !errors.Is(err, fetchErr) {
		t.Errorf("err = %v, want wrapped %v", err, fetchErr)
	}
	if results != nil {
		t.Errorf("results = %v, want nil", results)
	}
}

func TestBatchRunRecordErrorIsPerUser(t *testing.T) {
	store := &fakeStore{
		users:     []DueUser{dueUser(1, "a@x.test", 1), dueUser(2, "b@x.test", 1)},
		recordErr: errors.New("insert failed"),
	}
	sender := &fakeSender{}
	b := NewBatch(store, sender, 0)

	results, err := b.Run(context.Background())
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("got %d results, want 2", len(results))
	}
	for i, r := range results {
		if r.Success {
			t.Errorf("result %d succeeded despite record failure", i)
		}
		if r.Error != "insert failed" {
			t.Errorf("result %d error = %q", i, r.Error)
		}
	}
	// both users were still attempted
	if len(sender.calls) != 2 {
		t.Errorf("sender called %d times, want 2", len(sender.calls))
	}
}

// reentrantSender calls back into the batch from inside Send, simulating a
// manual trigger arriving while the cron run holds the lock.
type reentrantSender struct {
	b   *Batch
	err error
}

func (s *reentrantSender) Send(ctx context.Context, toEmail, toName, subject, htmlContent string) (string, error) {
	_, s.err = s.b.Run(ctx)
	return "msg-1", nil
}

func TestBatchRunRejectsOverlap(t *testing.T) {
	store := &fakeStore{users: []DueUser{dueUser(1, "a@x.test", 1)}}
	sender := &reentrantSender{}
	b := NewBatch(store, sender, 0)
	sender.b = b

	if _, err := b.Run(context.Background()); err != nil {
		t.Fatalf("outer Run: %v", err)
	}
	if !errors.Is(sender.err, ErrRunInProgress) {
		t.Errorf("inner Run err = %v, want ErrRunInProgress", sender.err)
	}

	// the lock is released after the run; a fresh run goes through
	if _, err := b.Run(context.Background()); err != nil {
		t.Errorf("second Run: %v", err)
	}
}

func TestBatchRunSkipsUsersWithoutTasks(t *testing.T) {
	store := &fakeStore{users: []DueUser{
		dueUser(1, "a@x.test", 0),
		dueUser(2, "b@x.test", 1),
	}}
	sender := &fakeSender{}
	b := NewBatch(store, sender, 0)

	results, err := b.Run(context.Background())
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if len(results) != 1 {
		t.Fatalf("got %d results, want 1", len(results))
	}
	if results[0].UserID != 2 {
		t.Errorf("UserID = %d, want 2", results[0].UserID)
	}
	if len(sender.calls) != 1 || sender.calls[0] != "b@x.test" {
		t.Errorf("sender calls = %v", sender.calls)
	}
}
