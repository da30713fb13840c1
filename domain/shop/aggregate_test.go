package shop

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestShop(t *testing.T) *Shop {
	t.Helper()
	s, err := NewShop("AutoSpare Bole", "subadmin-1", "9.01,38.76", "+251911000000")
	require.NoError(t, err)
	s.PullEvents()
	return s
}

func TestNewShopStartsPending(t *testing.T) {
	s, err := NewShop("AutoSpare Bole", "subadmin-1", "9.01,38.76", "+251911000000")
	require.NoError(t, err)

	assert.NotEmpty(t, s.ID())
	assert.Equal(t, ApprovalPending, s.ApprovalStatus())
	assert.False(t, s.IsApproved())
	assert.True(t, s.IsNew())

	events := s.PullEvents()
	require.Len(t, events, 1)
	assert.Equal(t, "shop.registered", events[0].EventName())
}

func TestNewShopValidation(t *testing.T) {
	_, err := NewShop("", "subadmin-1", "", "")
	require.Error(t, err)

	_, err = NewShop("Shop", "", "", "")
	require.Error(t, err)
}

func TestApprove(t *testing.T) {
	s := newTestShop(t)

	require.NoError(t, s.Approve("admin-1"))

	assert.Equal(t, ApprovalApproved, s.ApprovalStatus())
	assert.True(t, s.IsApproved())
	assert.Equal(t, "admin-1", s.ReviewedBy())
	assert.False(t, s.ReviewedAt().IsZero())

	events := s.PullEvents()
	require.Len(t, events, 1)
	assert.Equal(t, "shop.approved", events[0].EventName())
}

func TestReviewIsOneShot(t *testing.T) {
	s := newTestShop(t)
	require.NoError(t, s.Approve("admin-1"))

	err := s.Approve("admin-2")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrReviewConflict)

	err = s.Reject("admin-2", "changed my mind")
	assert.ErrorIs(t, err, ErrReviewConflict)
}

func TestRejectKeepsNote(t *testing.T) {
	s := newTestShop(t)

	require.NoError(t, s.Reject("admin-1", "missing trade license"))

	assert.Equal(t, ApprovalRejected, s.ApprovalStatus())
	assert.Equal(t, "missing trade license", s.ReviewNote())
}

func TestRequestInfoThenResubmit(t *testing.T) {
	s := newTestShop(t)

	require.NoError(t, s.RequestInfo("admin-1", "need license photo"))
	assert.Equal(t, ApprovalInfoRequested, s.ApprovalStatus())

	require.NoError(t, s.Resubmit("AutoSpare Bole 2", "", "+251922000000"))
	assert.Equal(t, ApprovalPending, s.ApprovalStatus())
	assert.Equal(t, "AutoSpare Bole 2", s.Name())
	assert.Equal(t, "+251922000000", s.Phone())
	assert.Empty(t, s.ReviewNote())

	// The resubmitted request is reviewable again.
	require.NoError(t, s.Approve("admin-1"))
}

func TestResubmitOnlyFromInfoRequested(t *testing.T) {
	s := newTestShop(t)

	err := s.Resubmit("New Name", "", "")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrReviewConflict)
}

func TestRebuildFromDTODoesNotEmitEvents(t *testing.T) {
	s := RebuildFromDTO(ReconstructionDTO{
		ID: "s-1", Name: "AutoSpare", OwnerID: "subadmin-1",
		ApprovalStatus: ApprovalApproved, Version: 2,
	})

	assert.Equal(t, "s-1", s.ID())
	assert.True(t, s.IsApproved())
	assert.Equal(t, 2, s.Version())
	assert.False(t, s.IsNew())
	assert.Empty(t, s.PullEvents())
}
