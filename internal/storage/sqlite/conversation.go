package sqlite

import (
	"context"
	"fmt"
	"slices"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/sandevgo/lexbot/internal/core"
	"github.com/sandevgo/lexbot/pkg/log"
)

const exchangeColumns = `id, session_id, user, user_input, bot_response, kind, created_at`

// ConversationRepo is the append-only conversation log.
type ConversationRepo struct {
	db *sqlx.DB
}

func NewConversationRepo(db *sqlx.DB) *ConversationRepo {
	return &ConversationRepo{db: db}
}

func (r *ConversationRepo) Append(ctx context.Context, ex core.Exchange) (int64, error) {
	if ex.User == "" {
		ex.User = core.GuestUser
	}
	if ex.CreatedAt.IsZero() {
		ex.CreatedAt = time.Now()
	}

	query := `INSERT INTO conversation (session_id, user, user_input, bot_response, kind, created_at)
	          VALUES (:session_id, :user, :user_input, :bot_response, :kind, :created_at)`
	ex.CreatedAt = ex.CreatedAt.UTC()

	res, err := r.db.NamedExecContext(ctx, query, ex)
	if err != nil {
		return 0, fmt.Errorf("failed to insert exchange: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get exchange id: %w", err)
	}
	return id, nil
}

// List returns exchanges oldest first. An empty sessionID lists every session;
// a positive limit keeps only the most recent ones.
func (r *ConversationRepo) List(ctx context.Context, sessionID string, limit int) ([]core.Exchange, error) {
	query := `SELECT ` + exchangeColumns + ` FROM conversation`
	var args []any

	if sessionID != "" {
		query += ` WHERE session_id = ?`
		args = append(args, sessionID)
	}

	if limit > 0 {
		query += ` ORDER BY id DESC LIMIT ?`
		args = append(args, limit)
	} else {
		query += ` ORDER BY id ASC`
	}

	var exchanges []core.Exchange
	if err := r.db.SelectContext(ctx, &exchanges, query, args...); err != nil {
		return nil, fmt.Errorf("failed to query conversation: %w", err)
	}

	if limit > 0 {
		slices.Reverse(exchanges)
	}

	log.FromCtx(ctx).Debug().Int("count", len(exchanges)).Str("session_id", sessionID).Msg("loaded conversation")
	return exchanges, nil
}

// Sessions returns the distinct session ids, most recently active first.
func (r *ConversationRepo) Sessions(ctx context.Context) ([]string, error) {
	var sessions []string
	query := `SELECT session_id FROM conversation GROUP BY session_id ORDER BY MAX(id) DESC`
	if err := r.db.SelectContext(ctx, &sessions, query); err != nil {
		return nil, fmt.Errorf("failed to query sessions: %w", err)
	}
	return sessions, nil
}

var _ core.ConversationRepository = (*ConversationRepo)(nil)
