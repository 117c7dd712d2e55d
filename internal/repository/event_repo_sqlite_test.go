package repository

import (
	"fmt"
	"testing"
	"time"

	"kasa_bridge/internal/models"
	"kasa_bridge/internal/repository/db"
)

func TestEventSQLite_RoundTripInMemory(t *testing.T) {
	conn, err := db.InitDB(fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name()))
	if err != nil {
		t.Fatalf("InitDB: %v", err)
	}
	defer conn.Close()

	repo := NewEventSQLite(conn)
	base := time.Date(2025, 6, 1, 17, 0, 0, 0, time.UTC)
	events := []models.CommandEvent{
		{OccurredAt: base, Type: models.EventOn, Trigger: models.TriggerSchedule, Success: true, Description: "on"},
		{OccurredAt: base.Add(time.Minute), Type: models.EventTimedOn, Trigger: models.TriggerInteraction, Success: false, Error: "exit 1", Description: "timed"},
		{OccurredAt: base.Add(7 * time.Hour), Type: models.EventOff, Trigger: models.TriggerSchedule, Success: true, Description: "off"},
	}
	for _, e := range events {
		if err := repo.Append(ctx(t), e); err != nil {
			t.Fatalf("Append: %v", err)
		}
	}

	all, err := repo.List(ctx(t), EventQuery{})
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(all) != 3 || all[0].Type != models.EventOn || all[2].Type != models.EventOff {
		t.Fatalf("unexpected events: %+v", all)
	}

	sched, err := repo.List(ctx(t), EventQuery{Trigger: "schedule", From: base.Add(time.Second)})
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(sched) != 1 || sched[0].Type != models.EventOff {
		t.Fatalf("unexpected filtered events: %+v", sched)
	}

	last, err := repo.List(ctx(t), EventQuery{Limit: 1})
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(last) != 1 || last[0].Type != models.EventOff {
		t.Fatalf("unexpected limited events: %+v", last)
	}
	if all[1].Success || all[1].Error != "exit 1" {
		t.Fatalf("failure not preserved: %+v", all[1])
	}
}

func TestEventSQLite_SameTimestampKeepsInsertionOrder(t *testing.T) {
	conn, err := db.InitDB(fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name()))
	if err != nil {
		t.Fatalf("InitDB: %v", err)
	}
	defer conn.Close()

	repo := NewEventSQLite(conn)
	at := time.Date(2025, 6, 1, 0, 0, 0, 123_000_000, time.UTC)
	// ids sort opposite to insertion order so the primary key cannot break ties
	for _, id := range []string{"e-3", "e-2", "e-1"} {
		e := models.CommandEvent{EventID: id, OccurredAt: at, Type: models.EventOff, Trigger: models.TriggerSchedule, Success: true}
		if err := repo.Append(ctx(t), e); err != nil {
			t.Fatalf("Append: %v", err)
		}
	}

	all, err := repo.List(ctx(t), EventQuery{})
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(all) != 3 || all[0].EventID != "e-3" || all[1].EventID != "e-2" || all[2].EventID != "e-1" {
		t.Fatalf("expected insertion order, got %+v", all)
	}

	last, err := repo.List(ctx(t), EventQuery{Limit: 2})
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(last) != 2 || last[0].EventID != "e-2" || last[1].EventID != "e-1" {
		t.Fatalf("limit must keep the two newest inserts, got %+v", last)
	}
}
