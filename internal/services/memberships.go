package services

import (
	"context"

	"github.com/collabsphere/collabsphere/internal/models"
	"github.com/collabsphere/collabsphere/internal/store"
	"gorm.io/gorm"
)

// upsertMember is the only write into the membership ledger. Callers have
// already authorized the change.
func (w *Workflow) upsertMember(ctx context.Context, tx *gorm.DB, projectID, userID uint) (bool, error) {
	created, err := store.NewMembershipStore(tx).Upsert(ctx, projectID, userID)
	if err != nil {
		return false, storageError("record membership", err)
	}
	return created, nil
}

func (w *Workflow) ListMembers(ctx context.Context, projectID uint) ([]models.ProjectMembership, error) {
	members, err := store.NewMembershipStore(w.db).ListForProject(ctx, projectID)
	if err != nil {
		return nil, storageError("list members", err)
	}
	return members, nil
}
