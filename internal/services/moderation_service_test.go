package services

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/artisle/gallery-backend/internal/dto"
	"github.com/artisle/gallery-backend/internal/models"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileReport(t *testing.T) {
	_, mod, f := newArtworkService(t)
	ctx := context.Background()
	db := mod.db

	t.Run("report resets status and records reporter", func(t *testing.T) {
		artwork := createTestArtwork(t, db, f.owner, "flagged", models.StatusApproved, time.Now())

		require.NoError(t, mod.Report(ctx, artwork.ID, f.other.ID, "copyright"))

		var got models.Artwork
		require.NoError(t, db.Preload("Reports").First(&got, "id = ?", artwork.ID).Error)
		assert.Equal(t, models.StatusPending, got.Status)
		require.Len(t, got.Reports, 1)
		assert.Equal(t, f.other.ID, got.Reports[0].ReporterID)
		assert.Equal(t, "copyright", got.Reports[0].Reason)
		assert.False(t, got.Reports[0].CreatedAt.IsZero())
	})

	t.Run("duplicate report conflicts and leaves ledger unchanged", func(t *testing.T) {
		artwork := createTestArtwork(t, db, f.owner, "flagged-twice", models.StatusApproved, time.Now())

		require.NoError(t, mod.Report(ctx, artwork.ID, f.other.ID, "spam"))
		assert.ErrorIs(t, mod.Report(ctx, artwork.ID, f.other.ID, "spam again"), ErrAlreadyReported)

		var count int64
		db.Model(&models.Report{}).Where("artwork_id = ?", artwork.ID).Count(&count)
		assert.EqualValues(t, 1, count)
	})

	t.Run("different users may each report once", func(t *testing.T) {
		artwork := createTestArtwork(t, db, f.owner, "multi-flagged", models.StatusApproved, time.Now())

		require.NoError(t, mod.Report(ctx, artwork.ID, f.other.ID, "spam"))
		require.NoError(t, mod.Report(ctx, artwork.ID, f.admin.ID, "offensive"))

		var count int64
		db.Model(&models.Report{}).Where("artwork_id = ?", artwork.ID).Count(&count)
		assert.EqualValues(t, 2, count)
	})

	t.Run("empty reason", func(t *testing.T) {
		artwork := createTestArtwork(t, db, f.owner, "needs-reason", models.StatusApproved, time.Now())

		var ve ValidationError
		assert.ErrorAs(t, mod.Report(ctx, artwork.ID, f.other.ID, "   "), &ve)
	})

	t.Run("unknown artwork", func(t *testing.T) {
		assert.ErrorIs(t, mod.Report(ctx, uuid.New(), f.other.ID, "spam"), ErrArtworkNotFound)
	})
}

func TestConcurrentReportsAllRecorded(t *testing.T) {
	_, mod, f := newArtworkService(t)
	ctx := context.Background()
	db := mod.db

	artwork := createTestArtwork(t, db, f.owner, "hot", models.StatusApproved, time.Now())

	reporters := make([]*models.User, 8)
	for i := range reporters {
		reporters[i] = createTestUser(t, db, "reporter"+string(rune('a'+i)), models.RoleUser)
	}

	var wg sync.WaitGroup
	for _, r := range reporters {
		wg.Add(1)
		go func(id uuid.UUID) {
			defer wg.Done()
			_ = mod.Report(ctx, artwork.ID, id, "concurrent")
		}(r.ID)
	}
	wg.Wait()

	var count int64
	db.Model(&models.Report{}).Where("artwork_id = ?", artwork.ID).Count(&count)
	assert.EqualValues(t, len(reporters), count, "no report may be lost to a concurrent write")
}

func TestListPendingIsOldestFirst(t *testing.T) {
	_, mod, f := newArtworkService(t)
	ctx := context.Background()
	db := mod.db

	base := time.Now().Add(-3 * time.Hour)
	second := createTestArtwork(t, db, f.owner, "second", models.StatusPending, base.Add(time.Hour))
	first := createTestArtwork(t, db, f.owner, "first", models.StatusPending, base)
	createTestArtwork(t, db, f.owner, "not-pending", models.StatusApproved, base)

	queue, err := mod.ListPending(ctx)
	require.NoError(t, err)
	require.Len(t, queue, 2)
	assert.Equal(t, first.ID, queue[0].ID)
	assert.Equal(t, second.ID, queue[1].ID)
	assert.Equal(t, f.owner.Name, queue[0].User.Name)

	// A fresh submission joins the back of the queue.
	third := createTestArtwork(t, db, f.owner, "third", models.StatusPending, base.Add(2*time.Hour))
	queue, err = mod.ListPending(ctx)
	require.NoError(t, err)
	require.Len(t, queue, 3)
	assert.Equal(t, first.ID, queue[0].ID)
	assert.Equal(t, third.ID, queue[2].ID)
}

func TestApproveAndReject(t *testing.T) {
	_, mod, f := newArtworkService(t)
	ctx := context.Background()
	db := mod.db

	t.Run("approve", func(t *testing.T) {
		artwork := createTestArtwork(t, db, f.owner, "good", models.StatusPending, time.Now())

		require.NoError(t, mod.Approve(ctx, artwork.ID))

		var got models.Artwork
		require.NoError(t, db.First(&got, "id = ?", artwork.ID).Error)
		assert.Equal(t, models.StatusApproved, got.Status)
	})

	t.Run("reject with reason", func(t *testing.T) {
		artwork := createTestArtwork(t, db, f.owner, "bad", models.StatusPending, time.Now())

		require.NoError(t, mod.Reject(ctx, artwork.ID, "low quality"))

		var got models.Artwork
		require.NoError(t, db.First(&got, "id = ?", artwork.ID).Error)
		assert.Equal(t, models.StatusRejected, got.Status)
		assert.Equal(t, "low quality", got.RejectionReason)
	})

	t.Run("reject without reason is allowed", func(t *testing.T) {
		artwork := createTestArtwork(t, db, f.owner, "bad-no-reason", models.StatusPending, time.Now())
		require.NoError(t, mod.Reject(ctx, artwork.ID, ""))

		var got models.Artwork
		require.NoError(t, db.First(&got, "id = ?", artwork.ID).Error)
		assert.Equal(t, models.StatusRejected, got.Status)
		assert.Empty(t, got.RejectionReason)
	})

	t.Run("approve clears a stale rejection reason", func(t *testing.T) {
		artwork := createTestArtwork(t, db, f.owner, "redeemed", models.StatusPending, time.Now())
		require.NoError(t, mod.Reject(ctx, artwork.ID, "blurry"))
		require.NoError(t, mod.Approve(ctx, artwork.ID))

		var got models.Artwork
		require.NoError(t, db.First(&got, "id = ?", artwork.ID).Error)
		assert.Equal(t, models.StatusApproved, got.Status)
		assert.Empty(t, got.RejectionReason)
	})

	t.Run("unknown artwork", func(t *testing.T) {
		assert.ErrorIs(t, mod.Approve(ctx, uuid.New()), ErrArtworkNotFound)
		assert.ErrorIs(t, mod.Reject(ctx, uuid.New(), ""), ErrArtworkNotFound)
	})
}

func TestListReported(t *testing.T) {
	_, mod, f := newArtworkService(t)
	ctx := context.Background()
	db := mod.db

	reported := createTestArtwork(t, db, f.owner, "reported", models.StatusPending, time.Now())
	createTestArtwork(t, db, f.owner, "clean", models.StatusApproved, time.Now())
	require.NoError(t, mod.Report(ctx, reported.ID, f.other.ID, "offensive"))

	got, err := mod.ListReported(ctx)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, reported.ID, got[0].ID)
	assert.Equal(t, f.owner.Name, got[0].User.Name)
	require.Len(t, got[0].Reports, 1)
	assert.Equal(t, f.other.Name, got[0].Reports[0].Reporter.Name)
}

func TestResolveClearsReportsButNotStatus(t *testing.T) {
	_, mod, f := newArtworkService(t)
	ctx := context.Background()
	db := mod.db

	artwork := createTestArtwork(t, db, f.owner, "contested", models.StatusApproved, time.Now())
	require.NoError(t, mod.Report(ctx, artwork.ID, f.other.ID, "spam"))
	require.NoError(t, mod.Report(ctx, artwork.ID, f.admin.ID, "spam"))

	resolved, err := mod.Resolve(ctx, artwork.ID)
	require.NoError(t, err)
	assert.Empty(t, resolved.Reports)
	// Reporting already moved it to pending; resolving does not approve.
	assert.Equal(t, models.StatusPending, resolved.Status)

	var count int64
	db.Model(&models.Report{}).Where("artwork_id = ?", artwork.ID).Count(&count)
	assert.Zero(t, count)

	// The same users may report again after resolution.
	assert.NoError(t, mod.Report(ctx, artwork.ID, f.other.ID, "still spam"))

	_, err = mod.Resolve(ctx, uuid.New())
	assert.ErrorIs(t, err, ErrArtworkNotFound)
}

func TestSetRecommended(t *testing.T) {
	_, mod, f := newArtworkService(t)
	ctx := context.Background()
	db := mod.db

	// The flag is independent of status: a pending artwork can carry it.
	artwork := createTestArtwork(t, db, f.owner, "curated", models.StatusPending, time.Now())

	require.NoError(t, mod.SetRecommended(ctx, artwork.ID, true))
	var got models.Artwork
	require.NoError(t, db.First(&got, "id = ?", artwork.ID).Error)
	assert.True(t, got.IsRecommended)
	assert.Equal(t, models.StatusPending, got.Status)

	require.NoError(t, mod.SetRecommended(ctx, artwork.ID, false))
	require.NoError(t, db.First(&got, "id = ?", artwork.ID).Error)
	assert.False(t, got.IsRecommended)

	assert.ErrorIs(t, mod.SetRecommended(ctx, uuid.New(), true), ErrArtworkNotFound)
}

// TestModerationRoundTrip walks the full lifecycle: upload, approval, a
// report pulling the artwork off the gallery, resolution, re-approval.
func TestModerationRoundTrip(t *testing.T) {
	svc, mod, f := newArtworkService(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, f.owner.ID, &dto.CreateArtworkRequest{
		Title:       "Harbor at dawn",
		Description: "Watercolor study",
		ImageURL:    "https://images.example.com/harbor.jpg",
	})
	require.NoError(t, err)
	assert.Equal(t, models.StatusPending, created.Status)

	gallery, err := svc.List(ctx, dto.GalleryQuery{})
	require.NoError(t, err)
	assert.Empty(t, gallery, "pending work is not public")

	require.NoError(t, mod.Approve(ctx, created.ID))
	gallery, err = svc.List(ctx, dto.GalleryQuery{})
	require.NoError(t, err)
	require.Len(t, gallery, 1)

	require.NoError(t, mod.Report(ctx, created.ID, f.other.ID, "copyright"))
	gallery, err = svc.List(ctx, dto.GalleryQuery{})
	require.NoError(t, err)
	assert.Empty(t, gallery, "a report pulls the artwork off the gallery")

	assert.ErrorIs(t, mod.Report(ctx, created.ID, f.other.ID, "copyright"), ErrAlreadyReported)

	resolved, err := mod.Resolve(ctx, created.ID)
	require.NoError(t, err)
	assert.Empty(t, resolved.Reports)
	assert.Equal(t, models.StatusPending, resolved.Status)

	require.NoError(t, mod.Approve(ctx, created.ID))
	gallery, err = svc.List(ctx, dto.GalleryQuery{})
	require.NoError(t, err)
	require.Len(t, gallery, 1)
	assert.Equal(t, created.ID, gallery[0].ID)
}
