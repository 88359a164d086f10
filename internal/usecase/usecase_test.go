package usecase_test

import (
	"context"
	"errors"
	"testing"

	"talent-network-backend/internal/domain"
	"talent-network-backend/internal/usecase"
	"talent-network-backend/pkg/apperror"
	"talent-network-backend/pkg/validation"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// Mock Repositories
type MockCandidateRepo struct {
	mock.Mock
}

func (m *MockCandidateRepo) GetByUserID(ctx context.Context, userID string) (*domain.Candidate, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Candidate), args.Error(1)
}

func (m *MockCandidateRepo) Upsert(ctx context.Context, candidate *domain.Candidate) error {
	return m.Called(ctx, candidate).Error(0)
}

func (m *MockCandidateRepo) ListOpenToWorkByRole(ctx context.Context, role domain.JobRole) ([]domain.Candidate, error) {
	args := m.Called(ctx, role)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Candidate), args.Error(1)
}

type MockUserRepo struct {
	mock.Mock
}

func (m *MockUserRepo) Create(ctx context.Context, user *domain.User) error {
	return m.Called(ctx, user).Error(0)
}
func (m *MockUserRepo) Update(ctx context.Context, user *domain.User) error {
	return m.Called(ctx, user).Error(0)
}
func (m *MockUserRepo) Exists(ctx context.Context, id string) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}
func (m *MockUserRepo) GetByID(ctx context.Context, id string) (*domain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

type MockPreferenceRepo struct {
	mock.Mock
}

func (m *MockPreferenceRepo) CreateWithLimit(ctx context.Context, pref *domain.Preference, limit int) (bool, error) {
	args := m.Called(ctx, pref, limit)
	return args.Bool(0), args.Error(1)
}
func (m *MockPreferenceRepo) GetByID(ctx context.Context, id string) (*domain.Preference, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Preference), args.Error(1)
}
func (m *MockPreferenceRepo) ListByUserID(ctx context.Context, userID string) ([]domain.Preference, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Preference), args.Error(1)
}
func (m *MockPreferenceRepo) Update(ctx context.Context, pref *domain.Preference) error {
	return m.Called(ctx, pref).Error(0)
}
func (m *MockPreferenceRepo) Delete(ctx context.Context, id, userID string) error {
	return m.Called(ctx, id, userID).Error(0)
}

type MockRealtimeChannel struct {
	mock.Mock
}

func (m *MockRealtimeChannel) MirrorFriendRequest(ctx context.Context, req domain.FriendRequest) error {
	return m.Called(ctx, req).Error(0)
}
func (m *MockRealtimeChannel) DeleteFriendRequestMirror(ctx context.Context, requestID, senderID, receiverID string) error {
	return m.Called(ctx, requestID, senderID, receiverID).Error(0)
}
func (m *MockRealtimeChannel) Notify(ctx context.Context, userID string, n domain.Notification) error {
	return m.Called(ctx, userID, n).Error(0)
}
func (m *MockRealtimeChannel) DeleteChatThread(ctx context.Context, userA, userB string) error {
	return m.Called(ctx, userA, userB).Error(0)
}

func ctxAs(userID, role string) context.Context {
	ctx := context.WithValue(context.Background(), domain.KeyUserID, userID)
	return context.WithValue(ctx, domain.KeyUserRole, role)
}

func kindOf(t *testing.T, err error) apperror.Kind {
	t.Helper()
	var appErr *apperror.AppError
	require.True(t, errors.As(err, &appErr), "expected *apperror.AppError, got %v", err)
	return appErr.Kind
}

func validCandidate() *domain.Candidate {
	return &domain.Candidate{
		FullName:       "Ada Lovelace",
		Skills:         []string{"Go", " go ", "SQL"},
		PreferredAreas: []string{"London"},
		ExperienceTier: domain.ExperienceThreeToFiveY,
		OpenToWork:     true,
		Role:           domain.RoleSoftwareEngineer,
	}
}

func TestCandidateIDOR(t *testing.T) {
	mockRepo := new(MockCandidateRepo)
	uc := usecase.NewCandidateUsecase(mockRepo, validation.New())

	t.Run("Should fail when Context UserID does not match Argument UserID", func(t *testing.T) {
		ctx := ctxAs("user1", domain.RoleCandidate)
		_, err := uc.GetProfile(ctx, "user2")
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "only view your own profile")
	})

	t.Run("Should fail safely when Context UserID is nil", func(t *testing.T) {
		ctx := context.Background() // keys missing
		_, err := uc.GetProfile(ctx, "user1")
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "User not authenticated")
	})

	t.Run("Should return not found when profile is missing", func(t *testing.T) {
		ctx := ctxAs("user3", domain.RoleCandidate)
		mockRepo.On("GetByUserID", ctx, "user3").Return(nil, nil).Once()
		_, err := uc.GetProfile(ctx, "user3")
		assert.Equal(t, apperror.KindNotFound, kindOf(t, err))
	})
}

func TestAuthPrivilege(t *testing.T) {
	mockRepo := new(MockUserRepo)
	uc := usecase.NewAuthUsecase(mockRepo)

	t.Run("Should fail if role is not admin", func(t *testing.T) {
		ctx := context.WithValue(context.Background(), domain.KeyUserRole, "candidate")
		err := uc.AssignRole(ctx, "target_user", "admin")
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "Only admins can assign roles")
	})

	t.Run("Should fail safe if role is nil", func(t *testing.T) {
		ctx := context.Background()
		err := uc.AssignRole(ctx, "target_user", "admin")
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "Only admins can assign roles")
	})

	t.Run("Should reject unknown roles", func(t *testing.T) {
		err := uc.AssignRole(ctxAs("root", domain.RoleAdmin), "target_user", "superuser")
		assert.Equal(t, apperror.KindInvalidRequest, kindOf(t, err))
	})

	t.Run("Should update role for admin", func(t *testing.T) {
		ctx := ctxAs("root", domain.RoleAdmin)
		mockRepo.On("GetByID", ctx, "target_user").Return(&domain.User{ID: "target_user", Role: domain.RoleCandidate}, nil).Once()
		mockRepo.On("Update", ctx, mock.MatchedBy(func(u *domain.User) bool {
			return u.ID == "target_user" && u.Role == domain.RoleHR
		})).Return(nil).Once()

		require.NoError(t, uc.AssignRole(ctx, "target_user", domain.RoleHR))
		mockRepo.AssertExpectations(t)
	})
}

func TestEnsureUserExists(t *testing.T) {
	mockRepo := new(MockUserRepo)
	uc := usecase.NewAuthUsecase(mockRepo)
	ctx := context.Background()

	t.Run("Should create with candidate role by default", func(t *testing.T) {
		mockRepo.On("GetByID", ctx, "new").Return(nil, nil).Once()
		mockRepo.On("Create", ctx, mock.MatchedBy(func(u *domain.User) bool {
			return u.Role == domain.RoleCandidate
		})).Return(nil).Once()

		require.NoError(t, uc.EnsureUserExists(ctx, &domain.User{ID: "new", Email: "new@example.com"}))
	})

	t.Run("Should not touch existing users", func(t *testing.T) {
		mockRepo.On("GetByID", ctx, "old").Return(&domain.User{ID: "old", Role: domain.RoleHR}, nil).Once()
		require.NoError(t, uc.EnsureUserExists(ctx, &domain.User{ID: "old"}))
		mockRepo.AssertNotCalled(t, "Create", ctx, mock.MatchedBy(func(u *domain.User) bool { return u.ID == "old" }))
	})
}

func TestCandidateUpdateValidation(t *testing.T) {
	mockRepo := new(MockCandidateRepo)
	uc := usecase.NewCandidateUsecase(mockRepo, validation.New())

	t.Run("Should fail if required fields are missing", func(t *testing.T) {
		ctx := ctxAs("user1", domain.RoleCandidate)
		err := uc.UpdateProfile(ctx, &domain.Candidate{})
		assert.Equal(t, apperror.KindInvalidRequest, kindOf(t, err))
	})

	t.Run("Should reject non candidate accounts", func(t *testing.T) {
		ctx := ctxAs("user1", domain.RoleHR)
		err := uc.UpdateProfile(ctx, validCandidate())
		assert.Equal(t, apperror.KindForbidden, kindOf(t, err))
	})

	t.Run("Should force UserID from context and clean lists", func(t *testing.T) {
		ctx := ctxAs("user1", domain.RoleCandidate)
		profile := validCandidate()
		profile.UserID = "hacker_try"

		mockRepo.On("Upsert", ctx, mock.AnythingOfType("*domain.Candidate")).Return(nil).Run(func(args mock.Arguments) {
			p := args.Get(1).(*domain.Candidate)
			assert.Equal(t, "user1", p.UserID)
			assert.Equal(t, []string{"Go", "SQL"}, p.Skills)
		}).Once()

		require.NoError(t, uc.UpdateProfile(ctx, profile))
		mockRepo.AssertExpectations(t)
	})
}
