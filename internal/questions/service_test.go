package questions

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/acqu1red/osnovabot/store"
	"github.com/acqu1red/osnovabot/types"
)

type recordingNotifier struct {
	mu        sync.Mutex
	questions []types.QuestionEvent
	answers   []types.AnswerEvent
	fail      bool
	notified  chan struct{}
}

func newRecordingNotifier() *recordingNotifier {
	return &recordingNotifier{notified: make(chan struct{}, 16)}
}

func (n *recordingNotifier) QuestionCreated(_ context.Context, ev types.QuestionEvent) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.notified <- struct{}{}
	if n.fail {
		return errors.New("endpoint unreachable")
	}
	n.questions = append(n.questions, ev)
	return nil
}

func (n *recordingNotifier) AnswerReady(_ context.Context, ev types.AnswerEvent) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.notified <- struct{}{}
	if n.fail {
		return errors.New("endpoint unreachable")
	}
	n.answers = append(n.answers, ev)
	return nil
}

func (n *recordingNotifier) wait(t *testing.T) {
	t.Helper()
	select {
	case <-n.notified:
	case <-time.After(2 * time.Second):
		t.Fatal("notification never fired")
	}
}

func newTestService(t *testing.T, n Notifier) *Service {
	t.Helper()
	s, err := store.Open(t.TempDir())
	if err != nil {
		t.Fatalf("store.Open: %v", err)
	}
	t.Cleanup(func() { _ = s.Close() })
	return NewService(s, n)
}

func TestSubmitAndAnswerLifecycle(t *testing.T) {
	n := newRecordingNotifier()
	svc := newTestService(t, n)

	if _, err := svc.Submit(types.Question{UserID: 42, Username: "alice", Message: "hi"}); err != nil {
		t.Fatalf("Submit: %v", err)
	}
	n.wait(t)

	qs, err := svc.ListForUser(42)
	if err != nil {
		t.Fatalf("ListForUser: %v", err)
	}
	if len(qs) != 1 {
		t.Fatalf("got %d questions, want 1", len(qs))
	}
	if qs[0].Answered() {
		t.Fatal("fresh question already answered")
	}
	if qs[0].CreatedAt == "" {
		t.Fatal("created_at not stamped")
	}

	count, err := svc.Answer(42, "hello back")
	if err != nil {
		t.Fatalf("Answer: %v", err)
	}
	if count != 1 {
		t.Fatalf("Answer affected %d records, want 1", count)
	}
	n.wait(t)

	qs, err = svc.ListForUser(42)
	if err != nil {
		t.Fatalf("ListForUser: %v", err)
	}
	if !qs[0].Answered() || *qs[0].Answer != "hello back" {
		t.Fatalf("answer = %v, want \"hello back\"", qs[0].Answer)
	}

	// a second answer is a no-op and leaves the stored answer untouched
	count, err = svc.Answer(42, "ignored")
	if err != nil {
		t.Fatalf("second Answer: %v", err)
	}
	if count != 0 {
		t.Fatalf("second Answer affected %d records, want 0", count)
	}
	qs, _ = svc.ListForUser(42)
	if *qs[0].Answer != "hello back" {
		t.Fatalf("stored answer changed to %q", *qs[0].Answer)
	}
}

func TestAnswerOldestFirst(t *testing.T) {
	n := newRecordingNotifier()
	svc := newTestService(t, n)

	for _, msg := range []string{"q1", "q2"} {
		if _, err := svc.Submit(types.Question{UserID: 7, Message: msg}); err != nil {
			t.Fatalf("Submit(%s): %v", msg, err)
		}
		n.wait(t)
	}

	count, err := svc.Answer(7, "a1")
	if err != nil {
		t.Fatalf("Answer: %v", err)
	}
	if count != 1 {
		t.Fatalf("affected %d, want 1", count)
	}
	n.wait(t)

	qs, err := svc.ListForUser(7)
	if err != nil {
		t.Fatalf("ListForUser: %v", err)
	}
	if !qs[0].Answered() || *qs[0].Answer != "a1" {
		t.Fatalf("q1 answer = %v, want \"a1\"", qs[0].Answer)
	}
	if qs[1].Answered() {
		t.Fatal("q2 answered, want unanswered")
	}
}

func TestAnswerSequenceDrainsInOrder(t *testing.T) {
	n := newRecordingNotifier()
	svc := newTestService(t, n)

	const total = 4
	for i := 0; i < total; i++ {
		if _, err := svc.Submit(types.Question{UserID: 9, Message: "q"}); err != nil {
			t.Fatalf("Submit: %v", err)
		}
		n.wait(t)
	}

	answers := []string{"a0", "a1", "a2", "a3"}
	for _, a := range answers {
		count, err := svc.Answer(9, a)
		if err != nil {
			t.Fatalf("Answer(%s): %v", a, err)
		}
		if count != 1 {
			t.Fatalf("Answer(%s) affected %d, want 1", a, count)
		}
		n.wait(t)
	}

	qs, err := svc.ListForUser(9)
	if err != nil {
		t.Fatalf("ListForUser: %v", err)
	}
	for i, q := range qs {
		if !q.Answered() || *q.Answer != answers[i] {
			t.Errorf("question %d answer = %v, want %q", i, q.Answer, answers[i])
		}
	}
}

func TestAnswerConcurrentCallers(t *testing.T) {
	svc := newTestService(t, nil)

	const total = 20
	for i := 0; i < total; i++ {
		if _, err := svc.Submit(types.Question{UserID: 3, Message: fmt.Sprintf("q%d", i)}); err != nil {
			t.Fatalf("Submit: %v", err)
		}
	}

	var answered int64
	var wg sync.WaitGroup
	for i := 0; i < total; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			count, err := svc.Answer(3, fmt.Sprintf("a%d", i))
			if err != nil {
				t.Errorf("Answer: %v", err)
				return
			}
			atomic.AddInt64(&answered, int64(count))
		}(i)
	}
	wg.Wait()

	if answered != total {
		t.Fatalf("answered %d questions across callers, want %d", answered, total)
	}

	qs, err := svc.ListForUser(3)
	if err != nil {
		t.Fatalf("ListForUser: %v", err)
	}
	if len(qs) != total {
		t.Fatalf("got %d questions, want %d", len(qs), total)
	}
	seen := make(map[string]bool, total)
	for i, q := range qs {
		if !q.Answered() {
			t.Fatalf("question %d left unanswered", i)
		}
		if seen[*q.Answer] {
			t.Fatalf("answer %q applied to more than one question", *q.Answer)
		}
		seen[*q.Answer] = true
	}
}

func TestAnswerWithNothingPending(t *testing.T) {
	svc := newTestService(t, nil)

	count, err := svc.Answer(100, "anyone there?")
	if err != nil {
		t.Fatalf("Answer: %v", err)
	}
	if count != 0 {
		t.Fatalf("affected %d records, want 0", count)
	}
}

func TestNotificationFailureDoesNotAffectWrite(t *testing.T) {
	n := newRecordingNotifier()
	n.fail = true
	svc := newTestService(t, n)

	if _, err := svc.Submit(types.Question{UserID: 5, Message: "hi"}); err != nil {
		t.Fatalf("Submit returned %v despite notification being advisory", err)
	}
	n.wait(t)

	qs, err := svc.ListForUser(5)
	if err != nil {
		t.Fatalf("ListForUser: %v", err)
	}
	if len(qs) != 1 {
		t.Fatalf("write rolled back: got %d questions, want 1", len(qs))
	}

	count, err := svc.Answer(5, "still works")
	if err != nil {
		t.Fatalf("Answer returned %v despite notification being advisory", err)
	}
	if count != 1 {
		t.Fatalf("affected %d, want 1", count)
	}
	n.wait(t)

	qs, _ = svc.ListForUser(5)
	if !qs[0].Answered() {
		t.Fatal("answer mutation rolled back")
	}
}

func TestListForUserFiltersOthers(t *testing.T) {
	svc := newTestService(t, nil)

	for _, uid := range []int64{1, 2, 1} {
		if _, err := svc.Submit(types.Question{UserID: uid, Message: "m"}); err != nil {
			t.Fatalf("Submit: %v", err)
		}
	}

	qs, err := svc.ListForUser(1)
	if err != nil {
		t.Fatalf("ListForUser: %v", err)
	}
	if len(qs) != 2 {
		t.Fatalf("got %d questions for user 1, want 2", len(qs))
	}

	all, err := svc.ListAll()
	if err != nil {
		t.Fatalf("ListAll: %v", err)
	}
	if len(all) != 3 {
		t.Fatalf("got %d questions total, want 3", len(all))
	}
}
