package repository

import (
	"context"
	"testing"

	"campus_voice_backend/internal/model"
	"campus_voice_backend/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVoteUpsertReplacesEarlierVote(t *testing.T) {
	db := testutil.MustOpenTestDB(t)
	ctx := context.Background()
	repo := NewVoteRepository(db)

	user := testutil.CreateUser(t, db, "gina@campus.edu", model.Student)
	other := testutil.CreateUser(t, db, "hank@campus.edu", model.Student)
	cat := testutil.CreateCategory(t, db, "Dining", true)
	f := testutil.CreateFeedback(t, db, user.ID, cat.ID, "menu")

	require.NoError(t, repo.Upsert(ctx, &model.Vote{FeedbackID: f.ID, UserID: user.ID, VoteType: model.Upvote}))
	require.NoError(t, repo.Upsert(ctx, &model.Vote{FeedbackID: f.ID, UserID: other.ID, VoteType: model.Upvote}))
	require.NoError(t, repo.Upsert(ctx, &model.Vote{FeedbackID: f.ID, UserID: user.ID, VoteType: model.Downvote}))

	var count int64
	require.NoError(t, db.Model(&model.Vote{}).Where("feedback_id = ?", f.ID).Count(&count).Error)
	assert.Equal(t, int64(2), count)

	vote, err := repo.Find(ctx, f.ID, user.ID)
	require.NoError(t, err)
	assert.Equal(t, model.Downvote, vote.VoteType)

	tally, err := repo.Tally(ctx, f.ID)
	require.NoError(t, err)
	assert.Equal(t, VoteTally{Upvotes: 1, Downvotes: 1}, tally)
}
