package domain

import (
	"context"
	"time"
)

type NotificationType string

const (
	NotificationFriendRequestReceived NotificationType = "FRIEND_REQUEST_RECEIVED"
	NotificationFriendRequestAccepted NotificationType = "FRIEND_REQUEST_ACCEPTED"
	NotificationFriendRemoved         NotificationType = "FRIEND_REMOVED"
)

type Notification struct {
	Type      NotificationType `json:"type"`
	ActorID   string           `json:"actor_id"`
	RequestID string           `json:"request_id,omitempty"`
	CreatedAt time.Time        `json:"created_at"`
}

// RealtimeChannel is the eventually consistent side channel used for realtime
// delivery. Every method must be safe to replay; callers treat failures as
// non-fatal.
type RealtimeChannel interface {
	// MirrorFriendRequest writes the whole request document, recreating it if missing.
	MirrorFriendRequest(ctx context.Context, req FriendRequest) error
	DeleteFriendRequestMirror(ctx context.Context, requestID, senderID, receiverID string) error
	Notify(ctx context.Context, userID string, n Notification) error
	DeleteChatThread(ctx context.Context, userA, userB string) error
}
