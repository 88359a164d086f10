package realtime

import (
	"context"

	"talent-network-backend/internal/domain"
)

// NoopChannel is used when redis is not configured.
type NoopChannel struct{}

func (NoopChannel) MirrorFriendRequest(context.Context, domain.FriendRequest) error { return nil }

func (NoopChannel) DeleteFriendRequestMirror(context.Context, string, string, string) error {
	return nil
}

func (NoopChannel) Notify(context.Context, string, domain.Notification) error { return nil }

func (NoopChannel) DeleteChatThread(context.Context, string, string) error { return nil }

var (
	_ domain.RealtimeChannel = NoopChannel{}
	_ domain.RealtimeChannel = (*RedisChannel)(nil)
)
