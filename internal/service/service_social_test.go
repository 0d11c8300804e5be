package service

import (
	"context"
	"testing"

	"github.com/cardify/cardify-server/internal/logger"
	"github.com/cardify/cardify-server/internal/mock"
	"github.com/cardify/cardify-server/internal/store"
	"github.com/cardify/cardify-server/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

type socialSvcMocks struct {
	users     *mock.MockUserRepository
	decks     *mock.MockDeckRepository
	follows   *mock.MockFollowRepository
	favorites *mock.MockFavoriteRepository
}

// newTestSocialSvc builds a socialService with mocked repositories.
func newTestSocialSvc(t *testing.T, ctrl *gomock.Controller) (SocialService, socialSvcMocks) {
	t.Helper()

	mocks := socialSvcMocks{
		users:     mock.NewMockUserRepository(ctrl),
		decks:     mock.NewMockDeckRepository(ctrl),
		follows:   mock.NewMockFollowRepository(ctrl),
		favorites: mock.NewMockFavoriteRepository(ctrl),
	}

	repos := &store.Repositories{
		UserRepository:     mocks.users,
		DeckRepository:     mocks.decks,
		FollowRepository:   mocks.follows,
		FavoriteRepository: mocks.favorites,
	}

	return NewSocialService(repos, logger.Nop()), mocks
}

func TestSocialService_Follow_Success(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, mocks := newTestSocialSvc(t, ctrl)
	ctx := context.Background()

	mocks.users.EXPECT().GetUserByUsername(gomock.Any(), "alice").
		Return(models.User{ID: 1, Username: "alice"}, nil)
	mocks.users.EXPECT().GetUserByUsername(gomock.Any(), "bob").
		Return(models.User{ID: 2, Username: "bob"}, nil)
	mocks.follows.EXPECT().GetFollow(ctx, int64(1), int64(2)).
		Return(models.Follow{}, store.ErrFollowNotFound)
	mocks.follows.EXPECT().CreateFollow(ctx, int64(1), int64(2)).
		Return(models.Follow{ID: 5, FollowingUserID: 1, FollowedUserID: 2}, nil)

	result, err := svc.Follow(ctx, "alice", "bob")
	require.NoError(t, err)
	assert.Equal(t, int64(5), result.ID)
	assert.Equal(t, "alice subscribed to bob's feed.", result.Message)
}

func TestSocialService_Follow_SelfFollow(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, _ := newTestSocialSvc(t, ctrl)
	ctx := context.Background()

	// Rejected before any lookup, so it fails even for usernames that
	// do not exist.
	_, err := svc.Follow(ctx, "alice", "alice")
	assert.ErrorIs(t, err, store.ErrSelfFollow)

	_, err = svc.Follow(ctx, "nobody", "nobody")
	assert.ErrorIs(t, err, store.ErrSelfFollow)
}

func TestSocialService_Follow_FollowedNotFound(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, mocks := newTestSocialSvc(t, ctrl)
	ctx := context.Background()

	mocks.users.EXPECT().GetUserByUsername(gomock.Any(), "alice").
		Return(models.User{ID: 1, Username: "alice"}, nil).AnyTimes()
	mocks.users.EXPECT().GetUserByUsername(gomock.Any(), "ghost").
		Return(models.User{}, store.ErrUserNotFound)

	_, err := svc.Follow(ctx, "alice", "ghost")
	assert.ErrorIs(t, err, store.ErrUserNotFound)
}

func TestSocialService_Follow_DuplicateEdge(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, mocks := newTestSocialSvc(t, ctrl)
	ctx := context.Background()

	mocks.users.EXPECT().GetUserByUsername(gomock.Any(), "alice").
		Return(models.User{ID: 1, Username: "alice"}, nil)
	mocks.users.EXPECT().GetUserByUsername(gomock.Any(), "bob").
		Return(models.User{ID: 2, Username: "bob"}, nil)
	mocks.follows.EXPECT().GetFollow(ctx, int64(1), int64(2)).
		Return(models.Follow{ID: 5, FollowingUserID: 1, FollowedUserID: 2}, nil)

	_, err := svc.Follow(ctx, "alice", "bob")
	assert.ErrorIs(t, err, store.ErrAlreadyFollowing)
}

func TestSocialService_Follow_RaceLostToConstraint(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, mocks := newTestSocialSvc(t, ctrl)
	ctx := context.Background()

	// The pre-check finds no edge, but a concurrent request wins the insert;
	// the unique constraint surfaces as the same Conflict sentinel.
	mocks.users.EXPECT().GetUserByUsername(gomock.Any(), "alice").
		Return(models.User{ID: 1, Username: "alice"}, nil)
	mocks.users.EXPECT().GetUserByUsername(gomock.Any(), "bob").
		Return(models.User{ID: 2, Username: "bob"}, nil)
	mocks.follows.EXPECT().GetFollow(ctx, int64(1), int64(2)).
		Return(models.Follow{}, store.ErrFollowNotFound)
	mocks.follows.EXPECT().CreateFollow(ctx, int64(1), int64(2)).
		Return(models.Follow{}, store.ErrAlreadyFollowing)

	_, err := svc.Follow(ctx, "alice", "bob")
	assert.ErrorIs(t, err, store.ErrAlreadyFollowing)
}

func TestSocialService_Unfollow_Success(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, mocks := newTestSocialSvc(t, ctrl)
	ctx := context.Background()

	mocks.users.EXPECT().GetUserByUsername(gomock.Any(), "alice").
		Return(models.User{ID: 1, Username: "alice"}, nil)
	mocks.users.EXPECT().GetUserByUsername(gomock.Any(), "bob").
		Return(models.User{ID: 2, Username: "bob"}, nil)
	mocks.follows.EXPECT().DeleteFollow(ctx, int64(1), int64(2)).Return(nil)

	msg, err := svc.Unfollow(ctx, "alice", "bob")
	require.NoError(t, err)
	assert.Equal(t, "alice successfully unfollowed bob.", msg)
}

func TestSocialService_Unfollow_NoEdge(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, mocks := newTestSocialSvc(t, ctrl)
	ctx := context.Background()

	mocks.users.EXPECT().GetUserByUsername(gomock.Any(), "alice").
		Return(models.User{ID: 1, Username: "alice"}, nil)
	mocks.users.EXPECT().GetUserByUsername(gomock.Any(), "bob").
		Return(models.User{ID: 2, Username: "bob"}, nil)
	mocks.follows.EXPECT().DeleteFollow(ctx, int64(1), int64(2)).
		Return(store.ErrFollowNotFound)

	_, err := svc.Unfollow(ctx, "alice", "bob")
	assert.ErrorIs(t, err, store.ErrFollowNotFound)
	assert.Contains(t, err.Error(), "alice is not following bob")
}

func TestSocialService_Favorite_Success(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, mocks := newTestSocialSvc(t, ctrl)
	ctx := context.Background()

	deck := models.Deck{ID: 10, Title: "Spanish Verbs", Slug: "spanish-verbs", Username: "bob"}

	mocks.users.EXPECT().GetUserByUsername(gomock.Any(), "alice").
		Return(models.User{ID: 1, Username: "alice"}, nil)
	mocks.decks.EXPECT().GetDeckByOwnerAndSlug(gomock.Any(), "bob", "spanish-verbs").
		Return(deck, nil)
	mocks.favorites.EXPECT().GetFavorite(ctx, int64(1), int64(10)).
		Return(models.Favorite{}, store.ErrFavoriteNotFound)
	mocks.favorites.EXPECT().CreateFavorite(ctx, int64(1), int64(10)).
		Return(models.Favorite{ID: 7, UserID: 1, DeckID: 10}, nil)

	result, err := svc.Favorite(ctx, "alice", "bob", "spanish-verbs")
	require.NoError(t, err)
	assert.Equal(t, int64(7), result.ID)
	assert.Equal(t, "alice added Spanish Verbs to their favorites.", result.Message)
}

func TestSocialService_Favorite_DeckNotFound(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, mocks := newTestSocialSvc(t, ctrl)
	ctx := context.Background()

	// A dangling deck reference is NotFound, never Conflict.
	mocks.users.EXPECT().GetUserByUsername(gomock.Any(), "alice").
		Return(models.User{ID: 1, Username: "alice"}, nil).AnyTimes()
	mocks.decks.EXPECT().GetDeckByOwnerAndSlug(gomock.Any(), "bob", "missing").
		Return(models.Deck{}, store.ErrDeckNotFound)

	_, err := svc.Favorite(ctx, "alice", "bob", "missing")
	assert.ErrorIs(t, err, store.ErrDeckNotFound)
	assert.NotErrorIs(t, err, store.ErrAlreadyFavorited)
}

func TestSocialService_Favorite_Duplicate(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, mocks := newTestSocialSvc(t, ctrl)
	ctx := context.Background()

	deck := models.Deck{ID: 10, Title: "Spanish Verbs", Slug: "spanish-verbs", Username: "bob"}

	mocks.users.EXPECT().GetUserByUsername(gomock.Any(), "alice").
		Return(models.User{ID: 1, Username: "alice"}, nil)
	mocks.decks.EXPECT().GetDeckByOwnerAndSlug(gomock.Any(), "bob", "spanish-verbs").
		Return(deck, nil)
	mocks.favorites.EXPECT().GetFavorite(ctx, int64(1), int64(10)).
		Return(models.Favorite{ID: 7, UserID: 1, DeckID: 10}, nil)

	_, err := svc.Favorite(ctx, "alice", "bob", "spanish-verbs")
	assert.ErrorIs(t, err, store.ErrAlreadyFavorited)
	assert.Contains(t, err.Error(), "alice has already favorited Spanish Verbs")
}

func TestSocialService_Unfavorite_Success(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, mocks := newTestSocialSvc(t, ctrl)
	ctx := context.Background()

	deck := models.Deck{ID: 10, Title: "Spanish Verbs", Slug: "spanish-verbs", Username: "bob"}

	mocks.users.EXPECT().GetUserByUsername(gomock.Any(), "alice").
		Return(models.User{ID: 1, Username: "alice"}, nil)
	mocks.decks.EXPECT().GetDeckByOwnerAndSlug(gomock.Any(), "bob", "spanish-verbs").
		Return(deck, nil)
	mocks.favorites.EXPECT().DeleteFavorite(ctx, int64(1), int64(10)).Return(nil)

	msg, err := svc.Unfavorite(ctx, "alice", "bob", "spanish-verbs")
	require.NoError(t, err)
	assert.Equal(t, "alice successfully removed Spanish Verbs from their favorites list.", msg)
}

func TestSocialService_Unfavorite_NoEdge(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, mocks := newTestSocialSvc(t, ctrl)
	ctx := context.Background()

	deck := models.Deck{ID: 10, Title: "Spanish Verbs", Slug: "spanish-verbs", Username: "bob"}

	mocks.users.EXPECT().GetUserByUsername(gomock.Any(), "alice").
		Return(models.User{ID: 1, Username: "alice"}, nil)
	mocks.decks.EXPECT().GetDeckByOwnerAndSlug(gomock.Any(), "bob", "spanish-verbs").
		Return(deck, nil)
	mocks.favorites.EXPECT().DeleteFavorite(ctx, int64(1), int64(10)).
		Return(store.ErrFavoriteNotFound)

	_, err := svc.Unfavorite(ctx, "alice", "bob", "spanish-verbs")
	assert.ErrorIs(t, err, store.ErrFavoriteNotFound)
	assert.Contains(t, err.Error(), "alice has not yet favorited Spanish Verbs")
}

func TestSocialService_ListFollowers(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, mocks := newTestSocialSvc(t, ctrl)
	ctx := context.Background()

	edges := []models.Follow{
		{ID: 1, FollowingUserID: 2, FollowedUserID: 1},
		{ID: 4, FollowingUserID: 3, FollowedUserID: 1},
	}

	mocks.users.EXPECT().GetUserByUsername(ctx, "alice").
		Return(models.User{ID: 1, Username: "alice"}, nil)
	mocks.follows.EXPECT().ListFollowers(ctx, int64(1)).Return(edges, nil)

	got, err := svc.ListFollowers(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, edges, got)
}

func TestSocialService_ListFollowing_UserNotFound(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, mocks := newTestSocialSvc(t, ctrl)
	ctx := context.Background()

	mocks.users.EXPECT().GetUserByUsername(ctx, "ghost").
		Return(models.User{}, store.ErrUserNotFound)

	_, err := svc.ListFollowing(ctx, "ghost")
	assert.ErrorIs(t, err, store.ErrUserNotFound)
}
