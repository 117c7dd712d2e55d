package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"kasa_bridge/internal/models"

	"github.com/google/uuid"
)

// tsLayout sorts lexicographically in the same order as time.
const tsLayout = "2006-01-02 15:04:05.000"

const insertEvent = `
		INSERT INTO command_events (id, occurred_at, type, source, success, message, error, meta)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`

const selectEvents = `SELECT id, occurred_at, type, source, success, message, error, meta FROM command_events`

type EventSQLite struct {
	db *sql.DB
}

func NewEventSQLite(db *sql.DB) *EventSQLite { return &EventSQLite{db: db} }

// Append inserts a new event. Missing EventID and OccurredAt are filled in.
func (r *EventSQLite) Append(ctx context.Context, e models.CommandEvent) error {
	if e.EventID == "" {
		e.EventID = uuid.NewString()
	}
	if e.OccurredAt.IsZero() {
		e.OccurredAt = time.Now()
	}
	if e.Trigger == "" {
		e.Trigger = models.TriggerUnknown
	}

	var metaPtr *string
	if e.Metadata != nil {
		if b, err := json.Marshal(e.Metadata); err == nil {
			s := string(b)
			metaPtr = &s
		}
	}

	_, err := r.db.ExecContext(ctx, insertEvent,
		e.EventID,
		e.OccurredAt.UTC().Format(tsLayout),
		strings.ToUpper(strings.TrimSpace(e.Type)),
		string(e.Trigger),
		e.Success,
		e.Description,
		e.Error,
		metaPtr,
	)
	if err != nil {
		return fmt.Errorf("append command event: %w", err)
	}
	return nil
}

// List returns events matching q ordered by time, oldest first. Events
// sharing a timestamp keep insertion order. With a limit, the newest
// q.Limit events are returned (still oldest first).
func (r *EventSQLite) List(ctx context.Context, q EventQuery) ([]models.CommandEvent, error) {
	var (
		conds []string
		args  []any
	)

	if !q.From.IsZero() {
		conds = append(conds, "occurred_at >= ?")
		args = append(args, q.From.UTC().Format(tsLayout))
	}
	if !q.To.IsZero() {
		conds = append(conds, "occurred_at <= ?")
		args = append(args, q.To.UTC().Format(tsLayout))
	}
	if typ := strings.ToUpper(strings.TrimSpace(q.Type)); typ != "" {
		conds = append(conds, "type = ?")
		args = append(args, typ)
	}
	if trig := strings.ToLower(strings.TrimSpace(q.Trigger)); trig != "" {
		conds = append(conds, "source = ?")
		args = append(args, trig)
	}

	query := selectEvents
	if len(conds) > 0 {
		query += " WHERE " + strings.Join(conds, " AND ")
	}
	if q.Limit > 0 {
		query += " ORDER BY occurred_at DESC, rowid DESC LIMIT ?"
		args = append(args, q.Limit)
	} else {
		query += " ORDER BY occurred_at ASC, rowid ASC"
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]models.CommandEvent, 0, 64)
	for rows.Next() {
		var (
			ev      models.CommandEvent
			ts      string
			trigger string
			errText sql.NullString
			metaStr sql.NullString
		)
		if err := rows.Scan(&ev.EventID, &ts, &ev.Type, &trigger, &ev.Success, &ev.Description, &errText, &metaStr); err != nil {
			return nil, err
		}
		at, err := parseTimestamp(ts)
		if err != nil {
			return nil, err
		}
		ev.OccurredAt = at
		ev.Trigger = models.Trigger(trigger)
		ev.Error = errText.String

		if metaStr.Valid && metaStr.String != "" {
			var v any
			if err := json.Unmarshal([]byte(metaStr.String), &v); err == nil {
				ev.Metadata = v
			} else {
				ev.Metadata = metaStr.String
			}
		}
		out = append(out, ev)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if q.Limit > 0 {
		for i, j := 0, len(out)-1; i < j; i, j = i+1, j-1 {
			out[i], out[j] = out[j], out[i]
		}
	}
	return out, nil
}

func parseTimestamp(s string) (time.Time, error) {
	for _, layout := range []string{tsLayout, time.RFC3339Nano} {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid occurred_at %q", s)
}
