package usecase

import (
	"context"
	"errors"
	"strings"
	"time"

	"talent-network-backend/internal/domain"
	"talent-network-backend/pkg/apperror"
	"talent-network-backend/pkg/logger"
	"talent-network-backend/pkg/metrics"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

type friendUsecase struct {
	friendRepo domain.FriendRepository
	userRepo   domain.UserRepository
	channel    domain.RealtimeChannel
	// sideTimeout bounds each realtime step run after a commit
	sideTimeout time.Duration
	newID       func() string
	now         func() time.Time
}

// NewFriendUsecase creates the friend relationship state machine. channel
// receives post-commit projections and notifications; its failures are logged
// and never returned.
func NewFriendUsecase(
	friendRepo domain.FriendRepository,
	userRepo domain.UserRepository,
	channel domain.RealtimeChannel,
	sideTimeout time.Duration,
) domain.FriendUsecase {
	if sideTimeout <= 0 {
		sideTimeout = 3 * time.Second
	}
	return &friendUsecase{
		friendRepo:  friendRepo,
		userRepo:    userRepo,
		channel:     channel,
		sideTimeout: sideTimeout,
		newID:       uuid.NewString,
		now:         time.Now,
	}
}

// Send creates a pending request from senderID to receiverID.
// Flow: validate → receiver exists → not friends → pending? → rejection? → insert
func (u *friendUsecase) Send(ctx context.Context, senderID, receiverID string, override bool) (outcome *domain.SendOutcome, err error) {
	defer func() { recordTransition("send", err) }()

	receiverID = strings.TrimSpace(receiverID)
	if senderID == "" {
		return nil, apperror.Unauthorized("User not authenticated")
	}
	if receiverID == "" {
		return nil, apperror.BadRequest("receiver_id is required")
	}
	if senderID == receiverID {
		return nil, apperror.BadRequest("You cannot send a friend request to yourself")
	}

	exists, err := u.userRepo.Exists(ctx, receiverID)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	if !exists {
		return nil, apperror.NotFound("Receiver not found")
	}

	friends, err := u.friendRepo.AreFriends(ctx, senderID, receiverID)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	if friends {
		return nil, apperror.Conflict("You are already friends with this user")
	}

	pending, err := u.friendRepo.FindPendingBetween(ctx, senderID, receiverID)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	if pending != nil {
		return alreadyPending(pending), nil
	}

	rejection, err := u.friendRepo.FindRejectionBetween(ctx, senderID, receiverID)
	if err != nil {
		return nil, apperror.Internal(err)
	}

	req := &domain.FriendRequest{
		ID:         u.newID(),
		SenderID:   senderID,
		ReceiverID: receiverID,
		Status:     domain.FriendRequestPending,
		CreatedAt:  u.now(),
	}

	if rejection != nil {
		// Only the user who issued the rejection may lift it by sending.
		canOverride := rejection.ReceiverID == senderID
		if !override || !canOverride {
			blocked := apperror.Blocked("A previous rejection prevents this friend request", canOverride)
			if canOverride {
				blocked.WithDetail("rejection_id", rejection.ID)
			}
			return nil, blocked
		}
		err = u.friendRepo.ReplaceRejectionWithPending(ctx, rejection.ID, req)
		if errors.Is(err, domain.ErrNotFound) {
			// Rejection vanished concurrently; nothing left to override.
			err = u.friendRepo.CreatePending(ctx, req)
		}
	} else {
		err = u.friendRepo.CreatePending(ctx, req)
	}

	if errors.Is(err, domain.ErrDuplicatePending) {
		// Lost a race with a concurrent send for the same pair.
		pending, findErr := u.friendRepo.FindPendingBetween(ctx, senderID, receiverID)
		if findErr != nil || pending == nil {
			return nil, apperror.Internal(err)
		}
		return alreadyPending(pending), nil
	}
	if err != nil {
		return nil, apperror.Internal(err)
	}

	created := *req
	u.afterCommit(ctx, "send",
		func(ctx context.Context) error { return u.channel.MirrorFriendRequest(ctx, created) },
		func(ctx context.Context) error {
			return u.channel.Notify(ctx, created.ReceiverID, domain.Notification{
				Type:      domain.NotificationFriendRequestReceived,
				ActorID:   created.SenderID,
				RequestID: created.ID,
				CreatedAt: created.CreatedAt,
			})
		},
	)

	return &domain.SendOutcome{Request: req, Created: true}, nil
}

func alreadyPending(req *domain.FriendRequest) *domain.SendOutcome {
	return &domain.SendOutcome{
		Request:        req,
		AlreadyPending: true,
		InitiatedBy:    req.SenderID,
	}
}

// loadForReceiver fetches a request that userID is allowed to act on.
func (u *friendUsecase) loadForReceiver(ctx context.Context, userID, requestID string) (*domain.FriendRequest, error) {
	if userID == "" {
		return nil, apperror.Unauthorized("User not authenticated")
	}
	req, err := u.friendRepo.GetRequest(ctx, requestID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, apperror.NotFound("Friend request not found")
		}
		return nil, apperror.Internal(err)
	}
	if req.ReceiverID != userID {
		return nil, apperror.Forbidden("Only the receiver can respond to this friend request")
	}
	return req, nil
}

// Accept turns a pending request into a friendship. Accepting an already
// accepted request re-projects it and succeeds.
func (u *friendUsecase) Accept(ctx context.Context, userID, requestID string) (result *domain.FriendRequest, err error) {
	defer func() { recordTransition("accept", err) }()

	req, err := u.loadForReceiver(ctx, userID, requestID)
	if err != nil {
		return nil, err
	}

	switch req.Status {
	case domain.FriendRequestAccepted:
		u.mirror(ctx, "accept", *req)
		return req, nil
	case domain.FriendRequestRejected:
		return nil, apperror.Conflict("Friend request was already rejected")
	}

	accepted, err := u.friendRepo.AcceptRequest(ctx, requestID)
	if err != nil {
		return u.transitionError(ctx, requestID, domain.FriendRequestAccepted, err)
	}

	done := *accepted
	u.afterCommit(ctx, "accept",
		func(ctx context.Context) error { return u.channel.MirrorFriendRequest(ctx, done) },
		func(ctx context.Context) error {
			return u.channel.Notify(ctx, done.SenderID, domain.Notification{
				Type:      domain.NotificationFriendRequestAccepted,
				ActorID:   done.ReceiverID,
				RequestID: done.ID,
				CreatedAt: u.now(),
			})
		},
	)
	return accepted, nil
}

// Reject marks the request rejected and records a rejection that blocks new
// requests between the pair until undone. The request row is kept.
func (u *friendUsecase) Reject(ctx context.Context, userID, requestID string) (result *domain.FriendRequest, err error) {
	defer func() { recordTransition("reject", err) }()

	req, err := u.loadForReceiver(ctx, userID, requestID)
	if err != nil {
		return nil, err
	}

	switch req.Status {
	case domain.FriendRequestRejected:
		u.mirror(ctx, "reject", *req)
		return req, nil
	case domain.FriendRequestAccepted:
		return nil, apperror.Conflict("Friend request was already accepted")
	}

	rejection := &domain.RejectedRequest{ID: u.newID(), RejectedAt: u.now()}
	rejected, err := u.friendRepo.RejectRequest(ctx, requestID, rejection)
	if err != nil {
		return u.transitionError(ctx, requestID, domain.FriendRequestRejected, err)
	}

	u.mirror(ctx, "reject", *rejected)
	return rejected, nil
}

// transitionError maps a failed accept/reject. A request that a concurrent
// caller already moved to target is returned as a success.
func (u *friendUsecase) transitionError(ctx context.Context, requestID string, target domain.FriendRequestStatus, err error) (*domain.FriendRequest, error) {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		return nil, apperror.NotFound("Friend request not found")
	case errors.Is(err, domain.ErrInvalidTransition):
		current, getErr := u.friendRepo.GetRequest(ctx, requestID)
		if getErr == nil && current.Status == target {
			return current, nil
		}
		return nil, apperror.Conflict("Friend request is no longer pending")
	default:
		return nil, apperror.Internal(err)
	}
}

// UndoRejection deletes a rejection issued by userID. No request is recreated.
func (u *friendUsecase) UndoRejection(ctx context.Context, userID, rejectionID string) (err error) {
	defer func() { recordTransition("undo_rejection", err) }()

	if userID == "" {
		return apperror.Unauthorized("User not authenticated")
	}
	rejection, err := u.friendRepo.GetRejection(ctx, rejectionID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return apperror.NotFound("Rejection not found")
		}
		return apperror.Internal(err)
	}
	if rejection.ReceiverID != userID {
		return apperror.Forbidden("Only the user who rejected the request can undo it")
	}

	if err := u.friendRepo.DeleteRejection(ctx, rejectionID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return apperror.NotFound("Rejection not found")
		}
		return apperror.Internal(err)
	}
	return nil
}

// Remove drops the friendship in both directions together with every request
// row between the pair, then clears the realtime side state.
func (u *friendUsecase) Remove(ctx context.Context, userID, friendID string) (err error) {
	defer func() { recordTransition("remove", err) }()

	friendID = strings.TrimSpace(friendID)
	if userID == "" {
		return apperror.Unauthorized("User not authenticated")
	}
	if friendID == "" {
		return apperror.BadRequest("friend_id is required")
	}
	if friendID == userID {
		return apperror.BadRequest("You cannot unfriend yourself")
	}

	removed, err := u.friendRepo.RemoveFriendship(ctx, userID, friendID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return apperror.NotFound("Friendship not found")
		}
		return apperror.Internal(err)
	}

	steps := u.mirrorDeletes(removed, userID, friendID)
	steps = append(steps,
		func(ctx context.Context) error { return u.channel.DeleteChatThread(ctx, userID, friendID) },
		func(ctx context.Context) error {
			return u.channel.Notify(ctx, friendID, domain.Notification{
				Type:      domain.NotificationFriendRemoved,
				ActorID:   userID,
				CreatedAt: u.now(),
			})
		},
	)
	u.afterCommit(ctx, "remove", steps...)
	return nil
}

// Cleanup resets a pair by purging pending requests and rejections. Admin only.
func (u *friendUsecase) Cleanup(ctx context.Context, senderID, receiverID string) (result *domain.CleanupResult, err error) {
	defer func() { recordTransition("cleanup", err) }()

	if err := requireRole(ctx, domain.RoleAdmin); err != nil {
		return nil, apperror.Forbidden("Only admins can reset friend relationships")
	}
	senderID = strings.TrimSpace(senderID)
	receiverID = strings.TrimSpace(receiverID)
	if senderID == "" || receiverID == "" {
		return nil, apperror.BadRequest("sender_id and receiver_id are required")
	}
	if senderID == receiverID {
		return nil, apperror.BadRequest("sender_id and receiver_id must differ")
	}

	removed, rejections, err := u.friendRepo.Cleanup(ctx, senderID, receiverID)
	if err != nil {
		return nil, apperror.Internal(err)
	}

	u.afterCommit(ctx, "cleanup", u.mirrorDeletes(removed, senderID, receiverID)...)
	logger.Log.Info("Friend relationship reset",
		"sender_id", senderID,
		"receiver_id", receiverID,
		"removed_requests", len(removed),
		"removed_rejections", rejections,
	)
	return &domain.CleanupResult{RemovedRequests: len(removed), RemovedRejections: rejections}, nil
}

// ListPending returns every pending request involving userID, newest first.
// Only requests where userID is the receiver are actionable.
func (u *friendUsecase) ListPending(ctx context.Context, userID string) ([]domain.PendingRequestView, error) {
	if userID == "" {
		return nil, apperror.Unauthorized("User not authenticated")
	}

	var incoming, outgoing []domain.FriendRequest
	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		incoming, err = u.friendRepo.ListIncomingPending(gCtx, userID)
		return err
	})
	g.Go(func() error {
		var err error
		outgoing, err = u.friendRepo.ListOutgoingPending(gCtx, userID)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, apperror.Internal(err)
	}

	merged := domain.MergeFriendRequests(incoming, outgoing)
	views := make([]domain.PendingRequestView, 0, len(merged))
	for _, req := range merged {
		views = append(views, domain.PendingRequestView{
			FriendRequest: req,
			Actionable:    req.ReceiverID == userID,
		})
	}
	return views, nil
}

func (u *friendUsecase) ListFriends(ctx context.Context, userID string) ([]string, error) {
	if userID == "" {
		return nil, apperror.Unauthorized("User not authenticated")
	}
	ids, err := u.friendRepo.ListFriendIDs(ctx, userID)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	return ids, nil
}

func (u *friendUsecase) ListRejections(ctx context.Context, userID string) ([]domain.RejectedRequest, error) {
	if userID == "" {
		return nil, apperror.Unauthorized("User not authenticated")
	}
	rejections, err := u.friendRepo.ListRejectionsIssuedBy(ctx, userID)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	return rejections, nil
}

// Status derives the relationship between userID and otherID from the
// repository on every call.
func (u *friendUsecase) Status(ctx context.Context, userID, otherID string) (domain.RelationshipState, error) {
	if userID == "" {
		return "", apperror.Unauthorized("User not authenticated")
	}
	if otherID == "" || otherID == userID {
		return "", apperror.BadRequest("A different user id is required")
	}

	friends, err := u.friendRepo.AreFriends(ctx, userID, otherID)
	if err != nil {
		return "", apperror.Internal(err)
	}
	if friends {
		return domain.RelationshipFriends, nil
	}

	pending, err := u.friendRepo.FindPendingBetween(ctx, userID, otherID)
	if err != nil {
		return "", apperror.Internal(err)
	}
	if pending != nil {
		if pending.SenderID == userID {
			return domain.RelationshipPendingSent, nil
		}
		return domain.RelationshipPendingReceived, nil
	}

	rejection, err := u.friendRepo.FindRejectionBetween(ctx, userID, otherID)
	if err != nil {
		return "", apperror.Internal(err)
	}
	if rejection != nil {
		return domain.RelationshipRejected, nil
	}
	return domain.RelationshipNone, nil
}

func (u *friendUsecase) mirror(ctx context.Context, op string, req domain.FriendRequest) {
	u.afterCommit(ctx, op, func(ctx context.Context) error {
		return u.channel.MirrorFriendRequest(ctx, req)
	})
}

func (u *friendUsecase) mirrorDeletes(requestIDs []string, userA, userB string) []func(context.Context) error {
	steps := make([]func(context.Context) error, 0, len(requestIDs))
	for _, id := range requestIDs {
		id := id
		steps = append(steps, func(ctx context.Context) error {
			return u.channel.DeleteFriendRequestMirror(ctx, id, userA, userB)
		})
	}
	return steps
}

// afterCommit runs realtime steps once the primary write is durable. Each step
// gets a context detached from the caller's cancellation. Failures are logged
// and counted, never returned.
func (u *friendUsecase) afterCommit(ctx context.Context, op string, steps ...func(context.Context) error) {
	if len(steps) == 0 {
		return
	}
	sideCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), u.sideTimeout)
	defer cancel()

	for _, step := range steps {
		if err := step(sideCtx); err != nil {
			metrics.RealtimeFailures.WithLabelValues(op).Inc()
			logger.Log.Warn("Realtime side channel failed",
				"operation", op,
				"error", err,
			)
		}
	}
}

func recordTransition(op string, err error) {
	result := "ok"
	if err != nil {
		result = strings.ToLower(string(apperror.KindOf(err)))
	}
	metrics.FriendTransitions.WithLabelValues(op, result).Inc()
}
