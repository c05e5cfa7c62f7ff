package service

import (
	"context"
	"database/sql"
	"time"

	"codequest/internal/domain/model"
	"codequest/internal/domain/repository"
)

// Mock repositories override only the methods a test exercises; anything
// else panics through the nil embedded interface.

type mockUserRepo struct {
	repository.UserRepository
	createFn         func(ctx context.Context, user *model.User) error
	findByIDFn       func(ctx context.Context, id string) (*model.User, error)
	findByEmailFn    func(ctx context.Context, email string) (*model.User, error)
	findByUsernameFn func(ctx context.Context, username string) (*model.User, error)
	creditSolveFn    func(ctx context.Context, tx *sql.Tx, userID string, points int) (int, error)
	creditRewardFn   func(ctx context.Context, userID string, points int, expiry time.Time) error
	debitFn          func(ctx context.Context, tx *sql.Tx, userID string, cost int) (bool, error)
	getRewardTimerFn func(ctx context.Context, userID string) (time.Time, error)
}

func (m *mockUserRepo) Create(ctx context.Context, user *model.User) error {
	return m.createFn(ctx, user)
}

func (m *mockUserRepo) FindByID(ctx context.Context, id string) (*model.User, error) {
	return m.findByIDFn(ctx, id)
}

func (m *mockUserRepo) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	return m.findByEmailFn(ctx, email)
}

func (m *mockUserRepo) FindByUsername(ctx context.Context, username string) (*model.User, error) {
	return m.findByUsernameFn(ctx, username)
}

func (m *mockUserRepo) CreditSolve(ctx context.Context, tx *sql.Tx, userID string, points int) (int, error) {
	return m.creditSolveFn(ctx, tx, userID, points)
}

func (m *mockUserRepo) CreditReward(ctx context.Context, userID string, points int, expiry time.Time) error {
	return m.creditRewardFn(ctx, userID, points, expiry)
}

func (m *mockUserRepo) DebitRewardPoints(ctx context.Context, tx *sql.Tx, userID string, cost int) (bool, error) {
	return m.debitFn(ctx, tx, userID, cost)
}

func (m *mockUserRepo) GetRewardTimer(ctx context.Context, userID string) (time.Time, error) {
	return m.getRewardTimerFn(ctx, userID)
}

type mockChallengeRepo struct {
	repository.ChallengeRepository
	findByIDFn func(ctx context.Context, id string) (*model.Challenge, error)
	updateFn   func(ctx context.Context, tx *sql.Tx, challenge *model.Challenge) error
	setTagsFn  func(ctx context.Context, tx *sql.Tx, challengeID string, tagIDs []string) error
	getTagsFn  func(ctx context.Context, challengeID string) ([]model.Tag, error)
}

func (m *mockChallengeRepo) FindByID(ctx context.Context, id string) (*model.Challenge, error) {
	return m.findByIDFn(ctx, id)
}

func (m *mockChallengeRepo) Update(ctx context.Context, tx *sql.Tx, challenge *model.Challenge) error {
	return m.updateFn(ctx, tx, challenge)
}

func (m *mockChallengeRepo) SetTags(ctx context.Context, tx *sql.Tx, challengeID string, tagIDs []string) error {
	return m.setTagsFn(ctx, tx, challengeID, tagIDs)
}

func (m *mockChallengeRepo) GetTags(ctx context.Context, challengeID string) ([]model.Tag, error) {
	return m.getTagsFn(ctx, challengeID)
}

type mockSolveRepo struct {
	repository.SolveRepository
	createFn      func(ctx context.Context, tx *sql.Tx, record *model.SolveRecord) error
	existsFn      func(ctx context.Context, userID, challengeID string) (bool, error)
	listForUserFn func(ctx context.Context, userID string) ([]model.SolveRecord, error)
}

func (m *mockSolveRepo) Create(ctx context.Context, tx *sql.Tx, record *model.SolveRecord) error {
	return m.createFn(ctx, tx, record)
}

func (m *mockSolveRepo) Exists(ctx context.Context, userID, challengeID string) (bool, error) {
	return m.existsFn(ctx, userID, challengeID)
}

func (m *mockSolveRepo) ListForUser(ctx context.Context, userID string) ([]model.SolveRecord, error) {
	return m.listForUserFn(ctx, userID)
}

type mockBadgeRepo struct {
	repository.BadgeRepository
	findByTitleFn func(ctx context.Context, title string) (*model.Badge, error)
	grantFn       func(ctx context.Context, tx *sql.Tx, userID, badgeID string) error
}

func (m *mockBadgeRepo) FindByTitle(ctx context.Context, title string) (*model.Badge, error) {
	return m.findByTitleFn(ctx, title)
}

func (m *mockBadgeRepo) GrantToUser(ctx context.Context, tx *sql.Tx, userID, badgeID string) error {
	return m.grantFn(ctx, tx, userID, badgeID)
}

type mockResourceRepo struct {
	repository.ResourceRepository
	findByIDFn func(ctx context.Context, id string) (*model.Resource, error)
	listFreeFn func(ctx context.Context) ([]model.Resource, error)
}

func (m *mockResourceRepo) FindByID(ctx context.Context, id string) (*model.Resource, error) {
	return m.findByIDFn(ctx, id)
}

func (m *mockResourceRepo) ListFree(ctx context.Context) ([]model.Resource, error) {
	return m.listFreeFn(ctx)
}

type mockPurchaseRepo struct {
	repository.PurchaseRepository
	createFn      func(ctx context.Context, tx *sql.Tx, purchase *model.Purchase) error
	listForUserFn func(ctx context.Context, userID string) ([]model.Purchase, error)
}

func (m *mockPurchaseRepo) Create(ctx context.Context, tx *sql.Tx, purchase *model.Purchase) error {
	return m.createFn(ctx, tx, purchase)
}

func (m *mockPurchaseRepo) ListForUser(ctx context.Context, userID string) ([]model.Purchase, error) {
	return m.listForUserFn(ctx, userID)
}

type mockFriendRepo struct {
	repository.FriendRepository
	createFn      func(ctx context.Context, userA, userB string) error
	deleteFn      func(ctx context.Context, userA, userB string) (bool, error)
	listFriendsFn func(ctx context.Context, userID string) ([]model.User, error)
}

func (m *mockFriendRepo) Create(ctx context.Context, userA, userB string) error {
	return m.createFn(ctx, userA, userB)
}

func (m *mockFriendRepo) Delete(ctx context.Context, userA, userB string) (bool, error) {
	return m.deleteFn(ctx, userA, userB)
}

func (m *mockFriendRepo) ListFriends(ctx context.Context, userID string) ([]model.User, error) {
	return m.listFriendsFn(ctx, userID)
}

type mockLikeRepo struct {
	repository.LikeRepository
	deleteFn func(ctx context.Context, tx *sql.Tx, like model.Like) (bool, error)
	insertFn func(ctx context.Context, tx *sql.Tx, like model.Like) (bool, error)
}

func (m *mockLikeRepo) Delete(ctx context.Context, tx *sql.Tx, like model.Like) (bool, error) {
	return m.deleteFn(ctx, tx, like)
}

func (m *mockLikeRepo) Insert(ctx context.Context, tx *sql.Tx, like model.Like) (bool, error) {
	return m.insertFn(ctx, tx, like)
}

type mockTagRepo struct {
	repository.TagRepository
}
