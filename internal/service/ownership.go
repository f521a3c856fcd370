package service

import (
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/supply-portal/internal/session"
	apperrors "github.com/spec-kit/supply-portal/pkg/util/errorutil"
)

// canModify reports whether owner may change a record created by createdBy.
// Admins may change anything; records without a creator belong to admins.
func canModify(owner session.Owner, createdBy *string) bool {
	if owner.IsAdmin() {
		return true
	}
	return createdBy != nil && *createdBy == owner.ID
}

// creatorOf returns the value stored as created_by for owner.
func creatorOf(owner session.Owner) *string {
	if owner.Kind != session.OwnerUser {
		return nil
	}
	id := owner.ID
	return &id
}

func notFoundOr(err error, resource, id string) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return apperrors.NewNotFound(resource, map[string]any{"id": id})
	}
	return err
}
