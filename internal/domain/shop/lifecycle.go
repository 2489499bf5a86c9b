package shop

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Admin review transitions. Approved and rejected are mutually reachable and
// re-applying the same decision is allowed so concurrent identical reviews both succeed.
var validTransitions = map[Status][]Status{
	StatusPending: {
		StatusApproved,
		StatusRejected,
	},
	StatusApproved: {
		StatusApproved,
		StatusRejected,
	},
	StatusRejected: {
		StatusApproved,
		StatusRejected,
	},
}

// ValidateStatusTransition checks if status transition is allowed
func ValidateStatusTransition(current, next Status) error {
	allowed, exists := validTransitions[current]
	if !exists {
		return fmt.Errorf("%w: unknown current status %q", ErrInvalidStatusTransition, current)
	}

	for _, candidate := range allowed {
		if candidate == next {
			return nil
		}
	}

	return fmt.Errorf("%w: cannot move from %s to %s", ErrInvalidStatusTransition, current, next)
}

// AllowedTransitions returns the statuses reachable from current
func AllowedTransitions(current Status) []Status {
	return validTransitions[current]
}

// Approve moves the shop to approved and drops any earlier rejection reason.
func (s *Shop) Approve(reviewer uuid.UUID, at time.Time) error {
	if err := ValidateStatusTransition(s.Status, StatusApproved); err != nil {
		return err
	}

	s.Status = StatusApproved
	s.RejectionReason = nil
	s.ReviewedBy = &reviewer
	s.ReviewedAt = &at
	return nil
}

// Reject moves the shop to rejected, defaulting an empty reason.
func (s *Shop) Reject(reviewer uuid.UUID, reason string, at time.Time) error {
	if err := ValidateStatusTransition(s.Status, StatusRejected); err != nil {
		return err
	}

	reason = strings.TrimSpace(reason)
	if reason == "" {
		reason = DefaultRejectionReason
	}

	s.Status = StatusRejected
	s.RejectionReason = &reason
	s.ReviewedBy = &reviewer
	s.ReviewedAt = &at
	return nil
}

// CanCreateItems is the approval gate for a seller's shop. A nil shop means the
// seller has none, which is reported separately from an unapproved one.
func CanCreateItems(s *Shop) error {
	if s == nil {
		return ErrShopNotFound
	}
	if !s.IsApproved() {
		return ErrShopNotApproved
	}
	if !s.IsActive {
		return ErrShopInactive
	}
	return nil
}
