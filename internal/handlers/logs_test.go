package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"testing"
	"time"

	"kasa_bridge/internal/models"
	"kasa_bridge/internal/service"
)

func TestEventsHandler_ListAndValidation(t *testing.T) {
	now := time.Now().UTC().Truncate(time.Second)
	events := []models.CommandEvent{
		{EventID: "e1", OccurredAt: now, Type: models.EventOn, Trigger: models.TriggerInteraction, Success: true, Description: "light on"},
		{EventID: "e2", OccurredAt: now.Add(1 * time.Second), Type: models.EventOff, Trigger: models.TriggerSchedule, Success: true, Description: "light off"},
	}
	logs := &mockEventLog{resp: events}
	s := &service.Service{
		Authorization: &mockAuth{parseAdmin: "admin"},
		EventLog:      logs,
	}
	r := newTestRouter(s)

	for _, bad := range []string{
		"/api/v1/events?from=notatime",
		"/api/v1/events?to=notatime",
		"/api/v1/events?limit=-1",
		"/api/v1/events?limit=ten",
		"/api/v1/events?from=2025-08-02&to=2025-08-01",
	} {
		w := doAuthed(r, http.MethodGet, bad, "")
		if w.Code != http.StatusBadRequest {
			t.Fatalf("%s: expected 400, got %d", bad, w.Code)
		}
	}

	// type and trigger are normalized before reaching the service
	q := "/api/v1/events?from=" + now.Format(time.RFC3339) + "&to=" + now.Add(2*time.Second).Format(time.RFC3339) +
		"&type=timed_on&trigger=Schedule&limit=5"
	w := doAuthed(r, http.MethodGet, q, "")
	if w.Code != http.StatusOK {
		t.Fatalf("events status=%d, body=%s", w.Code, w.Body.String())
	}
	var out struct {
		Count  int                   `json:"count"`
		Events []models.CommandEvent `json:"events"`
	}
	_ = json.Unmarshal(w.Body.Bytes(), &out)
	if out.Count != 2 || len(out.Events) != 2 || out.Events[1].Trigger != models.TriggerSchedule {
		t.Fatalf("unexpected response: %+v", out)
	}
	if logs.last.Type != "TIMED_ON" || logs.last.Trigger != "schedule" || logs.last.Limit != 5 {
		t.Fatalf("unexpected filter: %+v", logs.last)
	}
	if !logs.last.From.Equal(now) {
		t.Fatalf("from = %v, want %v", logs.last.From, now)
	}
}

func TestEventsHandler_DateOnlyToIsEndOfDay(t *testing.T) {
	logs := &mockEventLog{}
	r := newTestRouter(&service.Service{Authorization: &mockAuth{}, EventLog: logs})

	w := doAuthed(r, http.MethodGet, "/api/v1/events?to=2025-08-31", "")
	if w.Code != http.StatusOK {
		t.Fatalf("status=%d", w.Code)
	}
	want := time.Date(2025, 8, 31, 23, 59, 59, 999999999, time.UTC)
	if !logs.last.To.Equal(want) {
		t.Fatalf("to = %v, want %v", logs.last.To, want)
	}
}

func TestEventsHandler_ServiceError(t *testing.T) {
	logs := &mockEventLog{err: errors.New("db closed")}
	r := newTestRouter(&service.Service{Authorization: &mockAuth{}, EventLog: logs})

	w := doAuthed(r, http.MethodGet, "/api/v1/events", "")
	if w.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", w.Code)
	}
}
