package domain_test

import (
	"testing"
	"time"

	"talent-network-backend/internal/domain"

	"github.com/stretchr/testify/assert"
)

func TestMergeFriendRequests(t *testing.T) {
	base := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	held := []domain.FriendRequest{
		{ID: "r1", SenderID: "a", ReceiverID: "b", Status: domain.FriendRequestPending, CreatedAt: base},
		{ID: "r2", SenderID: "c", ReceiverID: "a", Status: domain.FriendRequestPending, CreatedAt: base.Add(time.Minute)},
	}
	fresh := []domain.FriendRequest{
		{ID: "r2", SenderID: "c", ReceiverID: "a", Status: domain.FriendRequestAccepted, CreatedAt: base.Add(time.Minute)},
		{ID: "r3", SenderID: "a", ReceiverID: "d", Status: domain.FriendRequestPending, CreatedAt: base.Add(2 * time.Minute)},
	}

	merged := domain.MergeFriendRequests(held, fresh)

	assert.Len(t, merged, 3)
	assert.Equal(t, []string{"r3", "r2", "r1"}, []string{merged[0].ID, merged[1].ID, merged[2].ID})
	assert.Equal(t, domain.FriendRequestAccepted, merged[1].Status, "fresh entry wins")
}

func TestMergeFriendRequestsEmpty(t *testing.T) {
	assert.Empty(t, domain.MergeFriendRequests(nil, nil))
	assert.NotNil(t, domain.MergeFriendRequests(nil, nil))
}

func TestFriendRequestInvolves(t *testing.T) {
	r := domain.FriendRequest{SenderID: "a", ReceiverID: "b"}
	assert.True(t, r.Involves("a"))
	assert.True(t, r.Involves("b"))
	assert.False(t, r.Involves("c"))
}
