package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"talent-network-backend/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type friendRepo struct {
	db *pgxpool.Pool
}

// NewFriendRepository creates the repository backing friend requests,
// friendships and rejections.
func NewFriendRepository(db *pgxpool.Pool) domain.FriendRepository {
	return &friendRepo{db: db}
}

// pairClause matches rows between $1 and $2 in either direction.
const pairClause = `((sender_id = $1 AND receiver_id = $2) OR (sender_id = $2 AND receiver_id = $1))`

const requestColumns = `id, sender_id, receiver_id, status, created_at`

func scanRequest(row pgx.Row) (*domain.FriendRequest, error) {
	var req domain.FriendRequest
	if err := row.Scan(&req.ID, &req.SenderID, &req.ReceiverID, &req.Status, &req.CreatedAt); err != nil {
		return nil, err
	}
	return &req, nil
}

func scanRejection(row pgx.Row) (*domain.RejectedRequest, error) {
	var rej domain.RejectedRequest
	if err := row.Scan(&rej.ID, &rej.SenderID, &rej.ReceiverID, &rej.RejectedAt); err != nil {
		return nil, err
	}
	return &rej, nil
}

func (r *friendRepo) FindPendingBetween(ctx context.Context, userA, userB string) (*domain.FriendRequest, error) {
	query := `SELECT ` + requestColumns + ` FROM friend_requests
		WHERE ` + pairClause + ` AND status = 'PENDING'
		LIMIT 1`

	req, err := scanRequest(r.db.QueryRow(ctx, query, userA, userB))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("find pending request: %w", err)
	}
	return req, nil
}

func (r *friendRepo) FindRejectionBetween(ctx context.Context, userA, userB string) (*domain.RejectedRequest, error) {
	query := `SELECT id, sender_id, receiver_id, rejected_at FROM rejected_requests
		WHERE ` + pairClause + `
		ORDER BY rejected_at DESC
		LIMIT 1`

	rej, err := scanRejection(r.db.QueryRow(ctx, query, userA, userB))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("find rejection: %w", err)
	}
	return rej, nil
}

func insertPending(ctx context.Context, tx pgx.Tx, req *domain.FriendRequest) error {
	query := `INSERT INTO friend_requests (id, sender_id, receiver_id, status, created_at)
		VALUES ($1, $2, $3, 'PENDING', $4)`

	req.Status = domain.FriendRequestPending
	if req.CreatedAt.IsZero() {
		req.CreatedAt = time.Now()
	}
	_, err := tx.Exec(ctx, query, req.ID, req.SenderID, req.ReceiverID, req.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicatePending
		}
		return fmt.Errorf("insert friend request: %w", err)
	}
	return nil
}

func (r *friendRepo) CreatePending(ctx context.Context, req *domain.FriendRequest) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	if err := insertPending(ctx, tx, req); err != nil {
		return err
	}
	return tx.Commit(ctx)
}

func (r *friendRepo) ReplaceRejectionWithPending(ctx context.Context, rejectionID string, req *domain.FriendRequest) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	result, err := tx.Exec(ctx, `DELETE FROM rejected_requests WHERE id = $1`, rejectionID)
	if err != nil {
		return fmt.Errorf("delete rejection: %w", err)
	}
	if result.RowsAffected() == 0 {
		return domain.ErrNotFound
	}

	if err := insertPending(ctx, tx, req); err != nil {
		return err
	}
	return tx.Commit(ctx)
}

func (r *friendRepo) GetRequest(ctx context.Context, id string) (*domain.FriendRequest, error) {
	query := `SELECT ` + requestColumns + ` FROM friend_requests WHERE id = $1`
	req, err := scanRequest(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get friend request: %w", err)
	}
	return req, nil
}

// lockPending loads a request FOR UPDATE and checks it is still pending.
func lockPending(ctx context.Context, tx pgx.Tx, id string) (*domain.FriendRequest, error) {
	query := `SELECT ` + requestColumns + ` FROM friend_requests WHERE id = $1 FOR UPDATE`
	req, err := scanRequest(tx.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("lock friend request: %w", err)
	}
	if req.Status != domain.FriendRequestPending {
		return nil, domain.ErrInvalidTransition
	}
	return req, nil
}

// AcceptRequest flips the status and writes both friendship rows in one
// transaction; a failure in either step leaves the request pending.
func (r *friendRepo) AcceptRequest(ctx context.Context, id string) (*domain.FriendRequest, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	req, err := lockPending(ctx, tx, id)
	if err != nil {
		return nil, err
	}

	if _, err := tx.Exec(ctx, `UPDATE friend_requests SET status = 'ACCEPTED' WHERE id = $1`, id); err != nil {
		return nil, fmt.Errorf("accept friend request: %w", err)
	}

	friendshipInsert := `
		INSERT INTO friendships (user_id, friend_id, created_at)
		VALUES ($1, $2, NOW()), ($2, $1, NOW())
		ON CONFLICT (user_id, friend_id) DO NOTHING`
	if _, err := tx.Exec(ctx, friendshipInsert, req.SenderID, req.ReceiverID); err != nil {
		return nil, fmt.Errorf("create friendship: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}

	req.Status = domain.FriendRequestAccepted
	return req, nil
}

// RejectRequest keeps the request row (status REJECTED) and records the rejection.
func (r *friendRepo) RejectRequest(ctx context.Context, id string, rejection *domain.RejectedRequest) (*domain.FriendRequest, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	req, err := lockPending(ctx, tx, id)
	if err != nil {
		return nil, err
	}

	if _, err := tx.Exec(ctx, `UPDATE friend_requests SET status = 'REJECTED' WHERE id = $1`, id); err != nil {
		return nil, fmt.Errorf("reject friend request: %w", err)
	}

	rejection.SenderID = req.SenderID
	rejection.ReceiverID = req.ReceiverID
	if rejection.RejectedAt.IsZero() {
		rejection.RejectedAt = time.Now()
	}
	rejectionInsert := `INSERT INTO rejected_requests (id, sender_id, receiver_id, rejected_at) VALUES ($1, $2, $3, $4)`
	if _, err := tx.Exec(ctx, rejectionInsert, rejection.ID, rejection.SenderID, rejection.ReceiverID, rejection.RejectedAt); err != nil {
		return nil, fmt.Errorf("insert rejection: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}

	req.Status = domain.FriendRequestRejected
	return req, nil
}

func (r *friendRepo) GetRejection(ctx context.Context, id string) (*domain.RejectedRequest, error) {
	query := `SELECT id, sender_id, receiver_id, rejected_at FROM rejected_requests WHERE id = $1`
	rej, err := scanRejection(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get rejection: %w", err)
	}
	return rej, nil
}

func (r *friendRepo) DeleteRejection(ctx context.Context, id string) error {
	result, err := r.db.Exec(ctx, `DELETE FROM rejected_requests WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete rejection: %w", err)
	}
	if result.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func collectIDs(rows pgx.Rows) ([]string, error) {
	defer rows.Close()
	ids := []string{}
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

func (r *friendRepo) RemoveFriendship(ctx context.Context, userA, userB string) ([]string, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	result, err := tx.Exec(ctx, `
		DELETE FROM friendships
		WHERE (user_id = $1 AND friend_id = $2) OR (user_id = $2 AND friend_id = $1)`, userA, userB)
	if err != nil {
		return nil, fmt.Errorf("delete friendship: %w", err)
	}
	if result.RowsAffected() == 0 {
		return nil, domain.ErrNotFound
	}

	rows, err := tx.Query(ctx, `DELETE FROM friend_requests WHERE `+pairClause+` RETURNING id`, userA, userB)
	if err != nil {
		return nil, fmt.Errorf("delete friend requests: %w", err)
	}
	ids, err := collectIDs(rows)
	if err != nil {
		return nil, fmt.Errorf("collect deleted requests: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	return ids, nil
}

func (r *friendRepo) Cleanup(ctx context.Context, userA, userB string) ([]string, int, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, 0, err
	}
	defer tx.Rollback(ctx)

	rows, err := tx.Query(ctx, `DELETE FROM friend_requests WHERE `+pairClause+` AND status = 'PENDING' RETURNING id`, userA, userB)
	if err != nil {
		return nil, 0, fmt.Errorf("delete pending requests: %w", err)
	}
	ids, err := collectIDs(rows)
	if err != nil {
		return nil, 0, fmt.Errorf("collect deleted requests: %w", err)
	}

	result, err := tx.Exec(ctx, `DELETE FROM rejected_requests WHERE `+pairClause, userA, userB)
	if err != nil {
		return nil, 0, fmt.Errorf("delete rejections: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, 0, err
	}
	return ids, int(result.RowsAffected()), nil
}

func (r *friendRepo) listRequests(ctx context.Context, column, userID string) ([]domain.FriendRequest, error) {
	query := `SELECT ` + requestColumns + ` FROM friend_requests
		WHERE ` + column + ` = $1 AND status = 'PENDING'
		ORDER BY created_at DESC`

	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("list friend requests: %w", err)
	}
	defer rows.Close()

	requests := []domain.FriendRequest{}
	for rows.Next() {
		req, err := scanRequest(rows)
		if err != nil {
			return nil, fmt.Errorf("scan friend request: %w", err)
		}
		requests = append(requests, *req)
	}
	return requests, rows.Err()
}

func (r *friendRepo) ListIncomingPending(ctx context.Context, userID string) ([]domain.FriendRequest, error) {
	return r.listRequests(ctx, "receiver_id", userID)
}

func (r *friendRepo) ListOutgoingPending(ctx context.Context, userID string) ([]domain.FriendRequest, error) {
	return r.listRequests(ctx, "sender_id", userID)
}

func (r *friendRepo) ListFriendIDs(ctx context.Context, userID string) ([]string, error) {
	rows, err := r.db.Query(ctx, `SELECT friend_id FROM friendships WHERE user_id = $1 ORDER BY created_at DESC`, userID)
	if err != nil {
		return nil, fmt.Errorf("list friends: %w", err)
	}
	return collectIDs(rows)
}

func (r *friendRepo) AreFriends(ctx context.Context, userA, userB string) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM friendships WHERE user_id = $1 AND friend_id = $2)`, userA, userB,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check friendship: %w", err)
	}
	return exists, nil
}

func (r *friendRepo) ListRejectionsIssuedBy(ctx context.Context, userID string) ([]domain.RejectedRequest, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, sender_id, receiver_id, rejected_at FROM rejected_requests
		WHERE receiver_id = $1
		ORDER BY rejected_at DESC`, userID)
	if err != nil {
		return nil, fmt.Errorf("list rejections: %w", err)
	}
	defer rows.Close()

	rejections := []domain.RejectedRequest{}
	for rows.Next() {
		rej, err := scanRejection(rows)
		if err != nil {
			return nil, fmt.Errorf("scan rejection: %w", err)
		}
		rejections = append(rejections, *rej)
	}
	return rejections, rows.Err()
}
