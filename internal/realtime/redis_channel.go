// Package realtime projects friend relationship state into redis for realtime
// delivery: request documents as hashes, notifications over pub/sub.
package realtime

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"talent-network-backend/internal/domain"

	goredis "github.com/redis/go-redis/v9"
)

// Key patterns, all under the configured prefix.
const (
	requestKeyFmt      = "friend_request:%s"
	userRequestsKeyFmt = "user:%s:friend_requests"
	notifyChannelFmt   = "notifications:%s"
	chatThreadKeyFmt   = "chat:%s:%s"
	chatMessagesKeyFmt = "chat:%s:%s:messages"
)

// RedisChannel implements domain.RealtimeChannel on top of go-redis.
type RedisChannel struct {
	client *goredis.Client
	prefix string
}

func NewRedisChannel(client *goredis.Client, prefix string) *RedisChannel {
	return &RedisChannel{client: client, prefix: prefix}
}

func (r *RedisChannel) key(format string, args ...interface{}) string {
	return r.prefix + fmt.Sprintf(format, args...)
}

// MirrorFriendRequest writes every field of the document, so replaying it after
// the mirror lost the key recreates it instead of failing.
func (r *RedisChannel) MirrorFriendRequest(ctx context.Context, req domain.FriendRequest) error {
	docKey := r.key(requestKeyFmt, req.ID)

	_, err := r.client.TxPipelined(ctx, func(pipe goredis.Pipeliner) error {
		pipe.HSet(ctx, docKey, map[string]interface{}{
			"id":          req.ID,
			"sender_id":   req.SenderID,
			"receiver_id": req.ReceiverID,
			"status":      string(req.Status),
			"created_at":  req.CreatedAt.UTC().Format(time.RFC3339Nano),
		})
		pipe.SAdd(ctx, r.key(userRequestsKeyFmt, req.SenderID), req.ID)
		pipe.SAdd(ctx, r.key(userRequestsKeyFmt, req.ReceiverID), req.ID)
		return nil
	})
	if err != nil {
		return fmt.Errorf("mirror friend request %s: %w", req.ID, err)
	}
	return nil
}

func (r *RedisChannel) DeleteFriendRequestMirror(ctx context.Context, requestID, senderID, receiverID string) error {
	_, err := r.client.TxPipelined(ctx, func(pipe goredis.Pipeliner) error {
		pipe.Del(ctx, r.key(requestKeyFmt, requestID))
		pipe.SRem(ctx, r.key(userRequestsKeyFmt, senderID), requestID)
		pipe.SRem(ctx, r.key(userRequestsKeyFmt, receiverID), requestID)
		return nil
	})
	if err != nil {
		return fmt.Errorf("delete friend request mirror %s: %w", requestID, err)
	}
	return nil
}

func (r *RedisChannel) Notify(ctx context.Context, userID string, n domain.Notification) error {
	payload, err := json.Marshal(n)
	if err != nil {
		return fmt.Errorf("encode notification: %w", err)
	}
	if err := r.client.Publish(ctx, r.key(notifyChannelFmt, userID), payload).Err(); err != nil {
		return fmt.Errorf("publish notification to %s: %w", userID, err)
	}
	return nil
}

// DeleteChatThread removes the thread between two users. The thread key is
// order independent.
func (r *RedisChannel) DeleteChatThread(ctx context.Context, userA, userB string) error {
	first, second := ThreadParticipants(userA, userB)
	err := r.client.Del(ctx,
		r.key(chatThreadKeyFmt, first, second),
		r.key(chatMessagesKeyFmt, first, second),
	).Err()
	if err != nil {
		return fmt.Errorf("delete chat thread: %w", err)
	}
	return nil
}

// ThreadParticipants orders a pair so both directions map to the same thread.
func ThreadParticipants(userA, userB string) (string, string) {
	if userA <= userB {
		return userA, userB
	}
	return userB, userA
}
