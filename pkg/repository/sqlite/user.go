package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/m-mizutani/goerr/v2"

	"github.com/karbala-lab/daleel/pkg/domain/interfaces"
	"github.com/karbala-lab/daleel/pkg/domain/model"
	"github.com/karbala-lab/daleel/pkg/domain/types"
)

type userRepository struct {
	db *sql.DB
}

func (r *userRepository) Upsert(ctx context.Context, id types.UserID, name, handle string, seenAt time.Time) error {
	ts := fmtTime(seenAt)
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO users(user_id, first_seen, last_seen, username, full_name)
		VALUES(?, ?, ?, ?, ?)
		ON CONFLICT(user_id) DO UPDATE SET
			last_seen = excluded.last_seen,
			username  = excluded.username,
			full_name = excluded.full_name
	`, int64(id), ts, ts, handle, name)
	if err != nil {
		return goerr.Wrap(err, "failed to upsert user", goerr.V("id", id))
	}
	return nil
}

func (r *userRepository) Get(ctx context.Context, id types.UserID) (*model.User, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT user_id, first_seen, last_seen, COALESCE(username, ''), COALESCE(full_name, '')
		FROM users WHERE user_id = ?
	`, int64(id))

	user, err := scanUser(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, goerr.Wrap(ErrNotFound, "user not found", goerr.V("id", id))
	}
	if err != nil {
		return nil, goerr.Wrap(err, "failed to get user", goerr.V("id", id))
	}
	return user, nil
}

func (r *userRepository) Count(ctx context.Context, w types.Window) (int64, error) {
	query := `SELECT COUNT(*) FROM users`
	var args []any
	query, args = appendWindow(query, args, "first_seen", w, false)

	var n int64
	if err := r.db.QueryRowContext(ctx, query, args...).Scan(&n); err != nil {
		return 0, goerr.Wrap(err, "failed to count users")
	}
	return n, nil
}

func (r *userRepository) ListPage(ctx context.Context, order interfaces.UserOrder, offset, limit int) ([]*model.User, error) {
	dir := "ASC"
	if order == interfaces.UserOrderFirstSeenDesc {
		dir = "DESC"
	}
	if limit <= 0 {
		limit = -1 // SQLite: no limit
	}

	rows, err := r.db.QueryContext(ctx, `
		SELECT user_id, first_seen, last_seen, COALESCE(username, ''), COALESCE(full_name, '')
		FROM users
		ORDER BY first_seen `+dir+`, user_id `+dir+`
		LIMIT ? OFFSET ?
	`, limit, offset)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to list users")
	}
	defer func() { _ = rows.Close() }()

	var users []*model.User
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			return nil, goerr.Wrap(err, "failed to scan user row")
		}
		users = append(users, user)
	}
	if err := rows.Err(); err != nil {
		return nil, goerr.Wrap(err, "failed to iterate user rows")
	}
	return users, nil
}

func (r *userRepository) ListIDs(ctx context.Context) ([]types.UserID, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT user_id FROM users ORDER BY user_id`)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to list user IDs")
	}
	defer func() { _ = rows.Close() }()

	var ids []types.UserID
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, goerr.Wrap(err, "failed to scan user ID")
		}
		ids = append(ids, types.UserID(id))
	}
	if err := rows.Err(); err != nil {
		return nil, goerr.Wrap(err, "failed to iterate user IDs")
	}
	return ids, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanUser(s scanner) (*model.User, error) {
	var id int64
	var firstSeen, lastSeen, handle, name string
	if err := s.Scan(&id, &firstSeen, &lastSeen, &handle, &name); err != nil {
		return nil, err
	}
	return &model.User{
		ID:        types.UserID(id),
		FirstSeen: parseTime(firstSeen),
		LastSeen:  parseTime(lastSeen),
		Name:      name,
		Handle:    handle,
	}, nil
}
