package repository

import (
	"context"
	"testing"
	"time"

	"campus_voice_backend/internal/model"
	"campus_voice_backend/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFeedbackListOrderingAndCount(t *testing.T) {
	db := testutil.MustOpenTestDB(t)
	ctx := context.Background()
	repo := NewFeedbackRepository(db)

	alice := testutil.CreateUser(t, db, "alice@campus.edu", model.Student)
	bob := testutil.CreateUser(t, db, "bob@campus.edu", model.Student)
	cat := testutil.CreateCategory(t, db, "Library", true)

	base := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	for i, owner := range []uint{alice.ID, alice.ID, bob.ID} {
		f := testutil.CreateFeedback(t, db, owner, cat.ID, "item")
		require.NoError(t, db.Model(f).UpdateColumn("created_at", base.Add(time.Duration(i)*time.Hour)).Error)
	}

	items, total, err := repo.List(ctx, FeedbackFilter{}, 0, 2, true)
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)
	require.Len(t, items, 2)
	assert.Equal(t, uint(3), items[0].ID)
	assert.Equal(t, uint(2), items[1].ID)
	require.NotNil(t, items[0].Owner)
	assert.Equal(t, "bob@campus.edu", items[0].Owner.Email)
	require.NotNil(t, items[0].Category)
	assert.Equal(t, "Library", items[0].Category.Name)

	items, total, err = repo.List(ctx, FeedbackFilter{UserID: &alice.ID}, 0, 10, false)
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	for _, item := range items {
		assert.Equal(t, alice.ID, item.UserID)
		assert.Nil(t, item.Owner)
	}
}

func TestFeedbackListFilters(t *testing.T) {
	db := testutil.MustOpenTestDB(t)
	ctx := context.Background()
	repo := NewFeedbackRepository(db)

	user := testutil.CreateUser(t, db, "carol@campus.edu", model.Student)
	c1 := testutil.CreateCategory(t, db, "Hostel", true)
	c2 := testutil.CreateCategory(t, db, "Dining", true)

	testutil.CreateFeedback(t, db, user.ID, c1.ID, "a")
	f2 := testutil.CreateFeedback(t, db, user.ID, c2.ID, "b")
	require.NoError(t, db.Model(f2).Updates(map[string]interface{}{"status": model.StatusResolved, "priority": model.PriorityHigh}).Error)

	status := model.StatusResolved
	items, total, err := repo.List(ctx, FeedbackFilter{Status: &status}, 0, 10, false)
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	assert.Equal(t, f2.ID, items[0].ID)

	priority := model.PriorityHigh
	_, total, err = repo.List(ctx, FeedbackFilter{Priority: &priority, CategoryID: &c1.ID}, 0, 10, false)
	require.NoError(t, err)
	assert.Equal(t, int64(0), total)

	_, total, err = repo.List(ctx, FeedbackFilter{CategoryID: &c2.ID}, 0, 10, false)
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
}

func TestFeedbackCountRelationsAndStatus(t *testing.T) {
	db := testutil.MustOpenTestDB(t)
	ctx := context.Background()
	repo := NewFeedbackRepository(db)

	user := testutil.CreateUser(t, db, "dave@campus.edu", model.Student)
	other := testutil.CreateUser(t, db, "erin@campus.edu", model.Student)
	cat := testutil.CreateCategory(t, db, "IT", true)
	f1 := testutil.CreateFeedback(t, db, user.ID, cat.ID, "wifi")
	f2 := testutil.CreateFeedback(t, db, user.ID, cat.ID, "printer")

	require.NoError(t, db.Create(&model.Comment{FeedbackID: f1.ID, UserID: user.ID, Content: "any news?"}).Error)
	require.NoError(t, db.Create(&model.Comment{FeedbackID: f1.ID, UserID: other.ID, Content: "same here"}).Error)
	require.NoError(t, db.Create(&model.Vote{FeedbackID: f1.ID, UserID: other.ID, VoteType: model.Upvote}).Error)
	require.NoError(t, db.Model(f2).Update("status", model.StatusRejected).Error)

	counts, err := repo.CountRelations(ctx, []uint{f1.ID, f2.ID})
	require.NoError(t, err)
	assert.Equal(t, model.Counts{Comments: 2, Votes: 1}, counts[f1.ID])
	assert.Equal(t, model.Counts{}, counts[f2.ID])

	byStatus, err := repo.CountByStatus(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), byStatus[model.StatusPending])
	assert.Equal(t, int64(1), byStatus[model.StatusRejected])

	byStatus, err = repo.CountByStatus(ctx, other.ID)
	require.NoError(t, err)
	assert.Empty(t, byStatus)
}

func TestFeedbackDetailAndViews(t *testing.T) {
	db := testutil.MustOpenTestDB(t)
	ctx := context.Background()
	repo := NewFeedbackRepository(db)

	user := testutil.CreateUser(t, db, "frank@campus.edu", model.Student)
	admin := testutil.CreateUser(t, db, "admin@campus.edu", model.Admin)
	cat := testutil.CreateCategory(t, db, "Transport", true)
	f := testutil.CreateFeedback(t, db, user.ID, cat.ID, "bus")

	require.NoError(t, db.Create(&model.Comment{FeedbackID: f.ID, UserID: admin.ID, Content: "on it", IsAdminResponse: true}).Error)
	require.NoError(t, repo.IncrementViews(ctx, f.ID))
	require.NoError(t, repo.IncrementViews(ctx, f.ID))

	detail, err := repo.FindDetail(ctx, f.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, detail.Views)
	require.Len(t, detail.Comments, 1)
	require.NotNil(t, detail.Comments[0].Author)
	assert.Equal(t, admin.ID, detail.Comments[0].Author.ID)
	assert.Empty(t, detail.Comments[0].Author.Email)
	require.NotNil(t, detail.Owner)
	assert.Equal(t, user.ID, detail.Owner.ID)
}
