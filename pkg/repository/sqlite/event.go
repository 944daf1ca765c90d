package sqlite

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/m-mizutani/goerr/v2"

	"github.com/karbala-lab/daleel/pkg/domain/model"
	"github.com/karbala-lab/daleel/pkg/domain/types"
)

type eventRepository struct {
	db *sql.DB
}

func (r *eventRepository) Append(ctx context.Context, ev *model.Event) error {
	if err := ev.Validate(); err != nil {
		return goerr.Wrap(err, "invalid event")
	}

	_, err := r.db.ExecContext(ctx, `
		INSERT INTO events(ts, user_id, chat_id, event_type, dept, query, extra)
		VALUES(?, ?, ?, ?, ?, ?, ?)
	`, fmtTime(ev.Timestamp), int64(ev.UserID), int64(ev.ChatID), ev.Kind.String(), ev.Department, ev.Query, ev.Extra)
	if err != nil {
		return goerr.Wrap(err, "failed to append event", goerr.V("kind", ev.Kind))
	}
	return nil
}

func (r *eventRepository) LastActivity(ctx context.Context, w types.Window) (time.Time, bool, error) {
	query := `SELECT COALESCE(MAX(ts), '') FROM events`
	var args []any
	query, args = appendWindow(query, args, "ts", w, false)

	var ts string
	if err := r.db.QueryRowContext(ctx, query, args...).Scan(&ts); err != nil {
		return time.Time{}, false, goerr.Wrap(err, "failed to query last activity")
	}
	if ts == "" {
		return time.Time{}, false, nil
	}
	return parseTime(ts), true, nil
}

func (r *eventRepository) TopDepartments(ctx context.Context, w types.Window, kinds []types.EventKind, limit int) ([]model.DepartmentCount, error) {
	query := `
		SELECT dept, COUNT(*) AS c
		FROM events
		WHERE dept <> ''` + kindClause("event_type", kinds)
	args := kindArgs(kinds)
	query, args = appendWindow(query, args, "ts", w, true)
	query += `
		GROUP BY dept
		ORDER BY c DESC, MIN(id) ASC
		LIMIT ?`
	args = append(args, limitArg(limit))

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to query top departments")
	}
	defer func() { _ = rows.Close() }()

	var out []model.DepartmentCount
	for rows.Next() {
		var row model.DepartmentCount
		if err := rows.Scan(&row.Department, &row.Count); err != nil {
			return nil, goerr.Wrap(err, "failed to scan department count")
		}
		out = append(out, row)
	}
	if err := rows.Err(); err != nil {
		return nil, goerr.Wrap(err, "failed to iterate department counts")
	}
	return out, nil
}

func (r *eventRepository) TopUsers(ctx context.Context, w types.Window, kinds []types.EventKind, limit int) ([]model.UserUsage, error) {
	return r.queryUserUsage(ctx, w, kinds, `ORDER BY c DESC, MIN(e.id) ASC`, limit)
}

func (r *eventRepository) UsersUsed(ctx context.Context, w types.Window, kinds []types.EventKind) ([]model.UserUsage, error) {
	return r.queryUserUsage(ctx, w, kinds, `ORDER BY first_used ASC, e.user_id ASC`, 0)
}

// queryUserUsage is the shared per-user grouping with the user table joined
// in the same statement; no per-row user lookups.
func (r *eventRepository) queryUserUsage(ctx context.Context, w types.Window, kinds []types.EventKind, orderBy string, limit int) ([]model.UserUsage, error) {
	query := `
		SELECT e.user_id, COUNT(*) AS c,
		       MIN(e.ts) AS first_used, MAX(e.ts) AS last_used,
		       COALESCE(u.full_name, ''), COALESCE(u.username, '')
		FROM events e
		LEFT JOIN users u ON u.user_id = e.user_id
		WHERE 1 = 1` + kindClause("e.event_type", kinds)
	args := kindArgs(kinds)
	query, args = appendWindow(query, args, "e.ts", w, true)
	query += `
		GROUP BY e.user_id
		` + orderBy + `
		LIMIT ?`
	args = append(args, limitArg(limit))

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to query user usage")
	}
	defer func() { _ = rows.Close() }()

	var out []model.UserUsage
	for rows.Next() {
		var id int64
		var count int64
		var first, last, name, handle string
		if err := rows.Scan(&id, &count, &first, &last, &name, &handle); err != nil {
			return nil, goerr.Wrap(err, "failed to scan user usage")
		}
		out = append(out, model.UserUsage{
			UserID:    types.UserID(id),
			Name:      name,
			Handle:    handle,
			Count:     count,
			FirstUsed: parseTime(first),
			LastUsed:  parseTime(last),
		})
	}
	if err := rows.Err(); err != nil {
		return nil, goerr.Wrap(err, "failed to iterate user usage")
	}
	return out, nil
}

func (r *eventRepository) RecentUsers(ctx context.Context, w types.Window, limit int) ([]model.UserActivity, error) {
	query := `
		SELECT e.user_id, MAX(e.ts) AS last_used,
		       COALESCE(u.full_name, ''), COALESCE(u.username, '')
		FROM events e
		LEFT JOIN users u ON u.user_id = e.user_id
		WHERE 1 = 1`
	var args []any
	query, args = appendWindow(query, args, "e.ts", w, true)
	query += `
		GROUP BY e.user_id
		ORDER BY last_used DESC
		LIMIT ?`
	args = append(args, limitArg(limit))

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to query recent users")
	}
	defer func() { _ = rows.Close() }()

	var out []model.UserActivity
	for rows.Next() {
		var id int64
		var last, name, handle string
		if err := rows.Scan(&id, &last, &name, &handle); err != nil {
			return nil, goerr.Wrap(err, "failed to scan recent user")
		}
		out = append(out, model.UserActivity{
			UserID:   types.UserID(id),
			Name:     name,
			Handle:   handle,
			LastUsed: parseTime(last),
		})
	}
	if err := rows.Err(); err != nil {
		return nil, goerr.Wrap(err, "failed to iterate recent users")
	}
	return out, nil
}

// kindClause builds "AND col IN (?, ...)" for a kind filter; empty kinds
// means no filter.
func kindClause(col string, kinds []types.EventKind) string {
	if len(kinds) == 0 {
		return ""
	}
	placeholders := strings.TrimSuffix(strings.Repeat("?, ", len(kinds)), ", ")
	return " AND " + col + " IN (" + placeholders + ")"
}

func kindArgs(kinds []types.EventKind) []any {
	args := make([]any, 0, len(kinds))
	for _, k := range kinds {
		args = append(args, k.String())
	}
	return args
}

// appendWindow adds inclusive window bounds on col. hasWhere tells whether
// the query already contains a WHERE clause.
func appendWindow(query string, args []any, col string, w types.Window, hasWhere bool) (string, []any) {
	connect := func() string {
		if hasWhere {
			return " AND "
		}
		hasWhere = true
		return " WHERE "
	}
	if w.Start != nil {
		query += connect() + col + " >= ?"
		args = append(args, fmtTime(*w.Start))
	}
	if w.End != nil {
		query += connect() + col + " <= ?"
		args = append(args, fmtTime(*w.End))
	}
	return query, args
}

// limitArg maps "no limit" to SQLite's -1
func limitArg(limit int) int {
	if limit <= 0 {
		return -1
	}
	return limit
}
