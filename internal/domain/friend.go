package domain

import (
	"context"
	"sort"
	"time"
)

type FriendRequestStatus string

const (
	FriendRequestPending  FriendRequestStatus = "PENDING"
	FriendRequestAccepted FriendRequestStatus = "ACCEPTED"
	FriendRequestRejected FriendRequestStatus = "REJECTED"
)

type FriendRequest struct {
	ID         string              `json:"id"`
	SenderID   string              `json:"sender_id"`
	ReceiverID string              `json:"receiver_id"`
	Status     FriendRequestStatus `json:"status"`
	CreatedAt  time.Time           `json:"created_at"`
}

// Involves reports whether userID is the sender or the receiver.
func (r FriendRequest) Involves(userID string) bool {
	return r.SenderID == userID || r.ReceiverID == userID
}

// Friendship is one directed row; a friendship is always stored as a pair.
type Friendship struct {
	UserID    string    `json:"user_id"`
	FriendID  string    `json:"friend_id"`
	CreatedAt time.Time `json:"created_at"`
}

// RejectedRequest keeps the direction of the request that was rejected:
// ReceiverID is the user who rejected it.
type RejectedRequest struct {
	ID         string    `json:"id"`
	SenderID   string    `json:"sender_id"`
	ReceiverID string    `json:"receiver_id"`
	RejectedAt time.Time `json:"rejected_at"`
}

// PendingRequestView is a pending request as seen by one of its parties.
// Only the receiver can act on it.
type PendingRequestView struct {
	FriendRequest
	Actionable bool `json:"actionable"`
}

// RelationshipState is the relationship between two users from the caller's side.
type RelationshipState string

const (
	RelationshipNone            RelationshipState = "NONE"
	RelationshipPendingSent     RelationshipState = "PENDING_SENT"
	RelationshipPendingReceived RelationshipState = "PENDING_RECEIVED"
	RelationshipFriends         RelationshipState = "FRIENDS"
	RelationshipRejected        RelationshipState = "REJECTED"
)

// SendOutcome is the non-error result of sending a friend request.
type SendOutcome struct {
	Request        *FriendRequest `json:"request"`
	Created        bool           `json:"created"`
	AlreadyPending bool           `json:"already_pending"`
	InitiatedBy    string         `json:"initiated_by,omitempty"`
}

type CleanupResult struct {
	RemovedRequests   int `json:"removed_requests"`
	RemovedRejections int `json:"removed_rejections"`
}

// MergeFriendRequests merges a previously held list with a freshly fetched one,
// keyed on request id. Fresh entries replace held ones; the result is ordered
// newest first.
func MergeFriendRequests(held, fresh []FriendRequest) []FriendRequest {
	byID := make(map[string]FriendRequest, len(held)+len(fresh))
	for _, r := range held {
		byID[r.ID] = r
	}
	for _, r := range fresh {
		byID[r.ID] = r
	}

	merged := make([]FriendRequest, 0, len(byID))
	for _, r := range byID {
		merged = append(merged, r)
	}
	sort.Slice(merged, func(i, j int) bool {
		if merged[i].CreatedAt.Equal(merged[j].CreatedAt) {
			return merged[i].ID < merged[j].ID
		}
		return merged[i].CreatedAt.After(merged[j].CreatedAt)
	})
	return merged
}

type FriendRepository interface {
	// FindPendingBetween returns the pending request for the unordered pair, or nil.
	FindPendingBetween(ctx context.Context, userA, userB string) (*FriendRequest, error)
	// FindRejectionBetween returns a rejection for the unordered pair, or nil.
	FindRejectionBetween(ctx context.Context, userA, userB string) (*RejectedRequest, error)
	// CreatePending returns ErrDuplicatePending if the pair already has a pending request.
	CreatePending(ctx context.Context, req *FriendRequest) error
	// ReplaceRejectionWithPending deletes rejectionID and creates req in one transaction.
	ReplaceRejectionWithPending(ctx context.Context, rejectionID string, req *FriendRequest) error
	GetRequest(ctx context.Context, id string) (*FriendRequest, error)
	// AcceptRequest marks a pending request accepted and creates both friendship rows atomically.
	AcceptRequest(ctx context.Context, id string) (*FriendRequest, error)
	// RejectRequest marks a pending request rejected and stores rejection atomically.
	RejectRequest(ctx context.Context, id string, rejection *RejectedRequest) (*FriendRequest, error)
	GetRejection(ctx context.Context, id string) (*RejectedRequest, error)
	DeleteRejection(ctx context.Context, id string) error
	// RemoveFriendship drops both friendship rows and every request between the
	// pair, returning the ids of the deleted requests.
	RemoveFriendship(ctx context.Context, userA, userB string) ([]string, error)
	// Cleanup purges pending requests and rejections between the pair.
	Cleanup(ctx context.Context, userA, userB string) ([]string, int, error)
	ListIncomingPending(ctx context.Context, userID string) ([]FriendRequest, error)
	ListOutgoingPending(ctx context.Context, userID string) ([]FriendRequest, error)
	ListFriendIDs(ctx context.Context, userID string) ([]string, error)
	AreFriends(ctx context.Context, userA, userB string) (bool, error)
	ListRejectionsIssuedBy(ctx context.Context, userID string) ([]RejectedRequest, error)
}

type FriendUsecase interface {
	Send(ctx context.Context, senderID, receiverID string, override bool) (*SendOutcome, error)
	Accept(ctx context.Context, userID, requestID string) (*FriendRequest, error)
	Reject(ctx context.Context, userID, requestID string) (*FriendRequest, error)
	UndoRejection(ctx context.Context, userID, rejectionID string) error
	Remove(ctx context.Context, userID, friendID string) error
	Cleanup(ctx context.Context, senderID, receiverID string) (*CleanupResult, error)
	ListPending(ctx context.Context, userID string) ([]PendingRequestView, error)
	ListFriends(ctx context.Context, userID string) ([]string, error)
	ListRejections(ctx context.Context, userID string) ([]RejectedRequest, error)
	Status(ctx context.Context, userID, otherID string) (RelationshipState, error)
}
