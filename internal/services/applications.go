package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/collabsphere/collabsphere/internal/models"
	"github.com/collabsphere/collabsphere/internal/store"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// Apply records the caller's application to an approved project and notifies
// the owner. An expired deadline closes the project (committed) and fails the
// call with a deadline error.
func (w *Workflow) Apply(ctx context.Context, projectID uint, applicant Actor) error {
	expired := false

	err := w.inTx(ctx, func(tx *gorm.DB, out *outbox) error {
		project, err := store.NewProjectStore(tx).GetForUpdate(ctx, projectID)
		if err != nil {
			return lookupError(err, "project not found")
		}
		if expired, err = w.expireIfDue(ctx, tx, project); err != nil || expired {
			return err
		}
		if project.Status != models.ProjectApproved {
			return newError(KindInvalidState, "applications are closed for this project")
		}
		if project.OwnerID == applicant.ID {
			return newError(KindForbidden, "you cannot apply to your own project")
		}

		apps := store.NewApplicationStore(tx)
		if _, err := apps.Find(ctx, projectID, applicant.ID); err == nil {
			return newError(KindDuplicateApplication, "you have already applied")
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return storageError("load application", err)
		}

		app := models.Application{ProjectID: projectID, UserID: applicant.ID, Status: models.ApplicationApplied}
		if err := apps.Create(ctx, &app); err != nil {
			if isDuplicate(err) {
				return newError(KindDuplicateApplication, "you have already applied")
			}
			return storageError("create application", err)
		}

		user, err := store.NewUserStore(tx).Get(ctx, applicant.ID)
		if err != nil {
			return lookupError(err, "user not found")
		}

		msg := fmt.Sprintf("%s applied to your project: %s.", user.Name, project.Title)
		return w.notify(ctx, tx, out, project.OwnerID, models.NotifyApplication, msg, projectLink(projectID),
			map[string]interface{}{"project_id": projectID, "applicant_id": applicant.ID})
	})
	if err != nil {
		return err
	}
	if expired {
		return newError(KindDeadlineExpired, "the application deadline has passed")
	}

	w.log.WithFields(logrus.Fields{"project_id": projectID, "applicant_id": applicant.ID}).Info("application submitted")
	return nil
}

// authorizeSelection loads the project under lock and checks that the actor
// may decide on its applicants.
func (w *Workflow) authorizeSelection(ctx context.Context, tx *gorm.DB, projectID uint, actor Actor) (*models.Project, error) {
	project, err := store.NewProjectStore(tx).GetForUpdate(ctx, projectID)
	if err != nil {
		return nil, lookupError(err, "project not found")
	}
	if project.OwnerID != actor.ID && !actor.IsAdmin {
		return nil, newError(KindForbidden, "only the project owner or an admin can manage applicants")
	}
	return project, nil
}

// AcceptApplicant selects the applicant, adds them to the membership ledger
// and notifies them. Accepting an accepted applicant again changes nothing.
func (w *Workflow) AcceptApplicant(ctx context.Context, projectID, applicantID uint, actor Actor) error {
	return w.inTx(ctx, func(tx *gorm.DB, out *outbox) error {
		project, err := w.authorizeSelection(ctx, tx, projectID, actor)
		if err != nil {
			return err
		}

		apps := store.NewApplicationStore(tx)
		app, err := apps.Find(ctx, projectID, applicantID)
		if err != nil {
			return lookupError(err, "application not found")
		}

		switch app.Status {
		case models.ApplicationAccepted:
			_, err := w.upsertMember(ctx, tx, projectID, applicantID)
			return err
		case models.ApplicationRejected:
			return newError(KindAlreadyProcessed, "application already processed")
		}

		changed, err := apps.CompareAndSetStatus(ctx, projectID, applicantID, models.ApplicationApplied, models.ApplicationAccepted)
		if err != nil {
			return storageError("accept application", err)
		}
		if !changed {
			return newError(KindAlreadyProcessed, "application already processed")
		}
		if _, err := w.upsertMember(ctx, tx, projectID, applicantID); err != nil {
			return err
		}

		w.log.WithFields(logrus.Fields{"project_id": projectID, "applicant_id": applicantID, "actor_id": actor.ID}).Info("applicant accepted")
		msg := fmt.Sprintf("You've been selected for %q!", project.Title)
		return w.notify(ctx, tx, out, applicantID, models.NotifyApplicationAccepted, msg, projectLink(projectID),
			map[string]interface{}{"project_id": projectID})
	})
}

// RejectApplicant declines the applicant and notifies them. The membership
// ledger is not touched.
func (w *Workflow) RejectApplicant(ctx context.Context, projectID, applicantID uint, actor Actor) error {
	return w.inTx(ctx, func(tx *gorm.DB, out *outbox) error {
		project, err := w.authorizeSelection(ctx, tx, projectID, actor)
		if err != nil {
			return err
		}

		apps := store.NewApplicationStore(tx)
		app, err := apps.Find(ctx, projectID, applicantID)
		if err != nil {
			return lookupError(err, "application not found")
		}

		switch app.Status {
		case models.ApplicationRejected:
			return nil
		case models.ApplicationAccepted:
			return newError(KindAlreadyProcessed, "application already processed")
		}

		changed, err := apps.CompareAndSetStatus(ctx, projectID, applicantID, models.ApplicationApplied, models.ApplicationRejected)
		if err != nil {
			return storageError("reject application", err)
		}
		if !changed {
			return newError(KindAlreadyProcessed, "application already processed")
		}

		w.log.WithFields(logrus.Fields{"project_id": projectID, "applicant_id": applicantID, "actor_id": actor.ID}).Info("applicant rejected")
		msg := fmt.Sprintf("Your application for %q was not selected.", project.Title)
		return w.notify(ctx, tx, out, applicantID, models.NotifyApplicationRejected, msg, "/profile.html",
			map[string]interface{}{"project_id": projectID})
	})
}

// ListApplicants returns every application with the applicant profile,
// newest first. Owner or admin only.
func (w *Workflow) ListApplicants(ctx context.Context, projectID uint, actor Actor) ([]models.Application, error) {
	project, err := store.NewProjectStore(w.db).Get(ctx, projectID)
	if err != nil {
		return nil, lookupError(err, "project not found")
	}
	if project.OwnerID != actor.ID && !actor.IsAdmin {
		return nil, newError(KindForbidden, "only the project owner or an admin can view applicants")
	}

	apps, err := store.NewApplicationStore(w.db).ListForProject(ctx, projectID)
	if err != nil {
		return nil, storageError("list applicants", err)
	}
	return apps, nil
}

func (w *Workflow) ListMyApplications(ctx context.Context, actor Actor) ([]models.Application, error) {
	apps, err := store.NewApplicationStore(w.db).ListForUser(ctx, actor.ID)
	if err != nil {
		return nil, storageError("list applications", err)
	}
	return apps, nil
}
