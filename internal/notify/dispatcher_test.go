package notify

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/goccy/go-json"

	"github.com/acqu1red/osnovabot/types"
)

func TestQuestionCreatedPayload(t *testing.T) {
	var gotPath string
	var gotBody types.QuestionEvent

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		if err := json.NewDecoder(r.Body).Decode(&gotBody); err != nil {
			t.Errorf("decode: %v", err)
		}
		w.Write([]byte(`{"status":"ok"}`))
	}))
	defer srv.Close()

	d := NewDispatcher(srv.URL, time.Second)
	fileURL := "/uploads/doc.pdf"
	ev := types.QuestionEvent{UserID: 42, Username: "alice", Message: "hi", FileURL: &fileURL}
	if err := d.QuestionCreated(context.Background(), ev); err != nil {
		t.Fatalf("QuestionCreated: %v", err)
	}

	if gotPath != "/webhook_question" {
		t.Errorf("posted to %q, want /webhook_question", gotPath)
	}
	if gotBody.UserID != 42 || gotBody.Username != "alice" || gotBody.Message != "hi" {
		t.Errorf("payload = %+v", gotBody)
	}
	if gotBody.FileURL == nil || *gotBody.FileURL != fileURL {
		t.Errorf("file_url = %v, want %q", gotBody.FileURL, fileURL)
	}
}

func TestAnswerReadyPayload(t *testing.T) {
	var gotPath string
	var gotBody types.AnswerEvent

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		if err := json.NewDecoder(r.Body).Decode(&gotBody); err != nil {
			t.Errorf("decode: %v", err)
		}
		w.Write([]byte(`{"status":"ok"}`))
	}))
	defer srv.Close()

	d := NewDispatcher(srv.URL, time.Second)
	if err := d.AnswerReady(context.Background(), types.AnswerEvent{UserID: 42, Answer: "hello back"}); err != nil {
		t.Fatalf("AnswerReady: %v", err)
	}
	if gotPath != "/webhook_answer" {
		t.Errorf("posted to %q, want /webhook_answer", gotPath)
	}
	if gotBody.UserID != 42 || gotBody.Answer != "hello back" {
		t.Errorf("payload = %+v", gotBody)
	}
}

func TestNon2xxIsAnError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusBadGateway)
	}))
	defer srv.Close()

	d := NewDispatcher(srv.URL, time.Second)
	if err := d.AnswerReady(context.Background(), types.AnswerEvent{UserID: 1, Answer: "x"}); err == nil {
		t.Fatal("expected error for 502 response")
	}
}

func TestUnreachableEndpoint(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // nothing listens anymore

	d := NewDispatcher(srv.URL, 200*time.Millisecond)
	if err := d.QuestionCreated(context.Background(), types.QuestionEvent{UserID: 1}); err == nil {
		t.Fatal("expected error for unreachable endpoint")
	}
}
