// Package shop implements the shop registration request aggregate. A shop
// comes into being through a request reviewed exactly once by a platform
// admin; approval is what provisions the shop's wallet.
package shop

import (
	"fmt"
	"time"

	"github.com/Gift5848/gethub222-sub001/domain/shared"

	"github.com/google/uuid"
)

// ApprovalStatus of a shop registration request.
type ApprovalStatus string

const (
	ApprovalPending       ApprovalStatus = "pending"
	ApprovalApproved      ApprovalStatus = "approved"
	ApprovalRejected      ApprovalStatus = "rejected"
	ApprovalInfoRequested ApprovalStatus = "info_requested"
)

// Shop aggregate root.
type Shop struct {
	id       string
	name     string
	ownerID  string // subadmin who registered the shop
	location string
	phone    string

	approvalStatus ApprovalStatus
	reviewNote     string // set by reject / request-info
	reviewedBy     string
	reviewedAt     time.Time

	version   int
	createdAt time.Time
	updatedAt time.Time

	events []shared.DomainEvent
	isNew  bool
}

// NewShop registers a new shop request in pending status.
func NewShop(name, ownerID, location, phone string) (*Shop, error) {
	if name == "" {
		return nil, shared.NewValidationError("shop", "name", "shop name is required")
	}
	if ownerID == "" {
		return nil, shared.NewValidationError("shop", "owner_id", "owner is required")
	}

	id, err := uuid.NewV7()
	if err != nil {
		return nil, fmt.Errorf("failed to generate shop ID: %w", err)
	}

	now := time.Now()
	s := &Shop{
		id:             id.String(),
		name:           name,
		ownerID:        ownerID,
		location:       location,
		phone:          phone,
		approvalStatus: ApprovalPending,
		version:        0,
		createdAt:      now,
		updatedAt:      now,
		events:         make([]shared.DomainEvent, 0),
		isNew:          true,
	}
	s.events = append(s.events, NewShopRegisteredEvent(s.id, name, ownerID))
	return s, nil
}

// Approve accepts the request. Review is one-shot: only a pending request
// can be decided.
func (s *Shop) Approve(reviewerID string) error {
	if err := s.guardPending(); err != nil {
		return err
	}
	s.applyReview(ApprovalApproved, reviewerID, "")
	s.events = append(s.events, NewShopApprovedEvent(s.id, s.ownerID, reviewerID))
	return nil
}

// Reject declines the request with a note for the owner.
func (s *Shop) Reject(reviewerID, note string) error {
	if err := s.guardPending(); err != nil {
		return err
	}
	s.applyReview(ApprovalRejected, reviewerID, note)
	s.events = append(s.events, NewShopRejectedEvent(s.id, s.ownerID, reviewerID, note))
	return nil
}

// RequestInfo asks the owner for more information. Unlike approve/reject
// this leaves the request open for resubmission.
func (s *Shop) RequestInfo(reviewerID, note string) error {
	if err := s.guardPending(); err != nil {
		return err
	}
	s.applyReview(ApprovalInfoRequested, reviewerID, note)
	s.events = append(s.events, NewShopInfoRequestedEvent(s.id, s.ownerID, reviewerID, note))
	return nil
}

// Resubmit moves an info_requested shop back to pending with updated details.
func (s *Shop) Resubmit(name, location, phone string) error {
	if s.approvalStatus != ApprovalInfoRequested {
		return NewReviewConflictError(s.id, s.approvalStatus)
	}
	if name != "" {
		s.name = name
	}
	if location != "" {
		s.location = location
	}
	if phone != "" {
		s.phone = phone
	}
	s.approvalStatus = ApprovalPending
	s.reviewNote = ""
	s.reviewedBy = ""
	s.reviewedAt = time.Time{}
	s.updatedAt = time.Now()
	return nil
}

func (s *Shop) guardPending() error {
	if s.approvalStatus != ApprovalPending {
		return NewReviewConflictError(s.id, s.approvalStatus)
	}
	return nil
}

func (s *Shop) applyReview(status ApprovalStatus, reviewerID, note string) {
	now := time.Now()
	s.approvalStatus = status
	s.reviewedBy = reviewerID
	s.reviewNote = note
	s.reviewedAt = now
	s.updatedAt = now
}

// IsApproved reports whether the shop is live.
func (s *Shop) IsApproved() bool { return s.approvalStatus == ApprovalApproved }

func (s *Shop) ID() string                     { return s.id }
func (s *Shop) Name() string                   { return s.name }
func (s *Shop) OwnerID() string                { return s.ownerID }
func (s *Shop) Location() string               { return s.location }
func (s *Shop) Phone() string                  { return s.phone }
func (s *Shop) ApprovalStatus() ApprovalStatus { return s.approvalStatus }
func (s *Shop) ReviewNote() string             { return s.reviewNote }
func (s *Shop) ReviewedBy() string             { return s.reviewedBy }
func (s *Shop) ReviewedAt() time.Time          { return s.reviewedAt }
func (s *Shop) Version() int                   { return s.version }
func (s *Shop) CreatedAt() time.Time           { return s.createdAt }
func (s *Shop) UpdatedAt() time.Time           { return s.updatedAt }

// IsNew reports whether the aggregate was created in this session.
func (s *Shop) IsNew() bool { return s.isNew }

// ClearDirtyTracking resets change tracking after a successful save.
func (s *Shop) ClearDirtyTracking() { s.isNew = false }

// IncrementVersionForSave bumps the optimistic-lock version after the
// repository committed the guarded update.
func (s *Shop) IncrementVersionForSave() {
	s.version++
	s.updatedAt = time.Now()
}

// PullEvents returns and clears recorded domain events.
func (s *Shop) PullEvents() []shared.DomainEvent {
	events := make([]shared.DomainEvent, len(s.events))
	copy(events, s.events)
	s.events = make([]shared.DomainEvent, 0)
	return events
}

// ReconstructionDTO rebuilds a shop from persistence. Repository use only.
type ReconstructionDTO struct {
	ID             string
	Name           string
	OwnerID        string
	Location       string
	Phone          string
	ApprovalStatus ApprovalStatus
	ReviewNote     string
	ReviewedBy     string
	ReviewedAt     time.Time
	Version        int
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// RebuildFromDTO reconstructs the aggregate without triggering events.
func RebuildFromDTO(dto ReconstructionDTO) *Shop {
	return &Shop{
		id:             dto.ID,
		name:           dto.Name,
		ownerID:        dto.OwnerID,
		location:       dto.Location,
		phone:          dto.Phone,
		approvalStatus: dto.ApprovalStatus,
		reviewNote:     dto.ReviewNote,
		reviewedBy:     dto.ReviewedBy,
		reviewedAt:     dto.ReviewedAt,
		version:        dto.Version,
		createdAt:      dto.CreatedAt,
		updatedAt:      dto.UpdatedAt,
	}
}

var _ shared.AggregateRoot = (*Shop)(nil)
