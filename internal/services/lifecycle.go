package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/collabsphere/collabsphere/internal/models"
	"github.com/collabsphere/collabsphere/internal/store"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

const relayTimeout = 10 * time.Second

type CreateProjectInput struct {
	Title          string `validate:"required,max=200"`
	Description    string `validate:"required,max=5000"`
	RequiredPeople int    `validate:"required,min=1"`
	Deadline       *time.Time
	Amount         float64 `validate:"min=0"`
}

// ProjectDetail is the read model behind the project page.
type ProjectDetail struct {
	Project             models.Project
	Feedbacks           []models.Feedback
	ApplicantCount      int64
	Members             []models.ProjectMembership
	MyApplicationStatus *models.ApplicationStatus
}

func projectLink(id uint) string {
	return fmt.Sprintf("/project.html?id=%d", id)
}

// CreateProject stores a pending project and notifies every admin.
func (w *Workflow) CreateProject(ctx context.Context, owner Actor, in CreateProjectInput) (*models.Project, error) {
	in.Title = strings.TrimSpace(in.Title)
	in.Description = strings.TrimSpace(in.Description)
	if err := w.validateInput(in); err != nil {
		return nil, err
	}

	adminIDs, err := w.admins.AdminIDs(ctx)
	if err != nil {
		return nil, storageError("list admins", err)
	}
	if len(adminIDs) == 0 {
		w.log.Warn("no admin recipients configured, new project will not be announced")
	}

	project := models.Project{
		OwnerID:        owner.ID,
		Title:          in.Title,
		Description:    in.Description,
		RequiredPeople: in.RequiredPeople,
		Deadline:       in.Deadline,
		Amount:         in.Amount,
		Status:         models.ProjectPending,
	}
	var ownerUser *models.User

	err = w.inTx(ctx, func(tx *gorm.DB, out *outbox) error {
		u, err := store.NewUserStore(tx).Get(ctx, owner.ID)
		if err != nil {
			return lookupError(err, "user not found")
		}
		ownerUser = u

		if err := store.NewProjectStore(tx).Create(ctx, &project); err != nil {
			return storageError("create project", err)
		}

		msg := fmt.Sprintf("A new project, %q, requires your approval.", project.Title)
		for _, adminID := range adminIDs {
			err := w.notify(ctx, tx, out, adminID, models.NotifyNewProject, msg, "/admin.html",
				map[string]interface{}{"project_id": project.ID})
			if err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	project.Owner = *ownerUser
	w.log.WithFields(logrus.Fields{"project_id": project.ID, "owner_id": owner.ID}).Info("project submitted for approval")

	if w.relay != nil {
		go w.announce(project, *ownerUser)
	}
	return &project, nil
}

func (w *Workflow) announce(project models.Project, owner models.User) {
	ctx, cancel := context.WithTimeout(context.Background(), relayTimeout)
	defer cancel()

	if err := w.relay.ProjectSubmitted(ctx, project, owner); err != nil {
		w.log.WithField("project_id", project.ID).WithError(err).Warn("admin relay failed")
	}
}

func (w *Workflow) ApproveProject(ctx context.Context, projectID uint, actor Actor) error {
	return w.review(ctx, projectID, actor, models.ProjectApproved)
}

func (w *Workflow) RejectProject(ctx context.Context, projectID uint, actor Actor) error {
	return w.review(ctx, projectID, actor, models.ProjectRejected)
}

// review applies an admin decision to a pending project and tells the owner.
func (w *Workflow) review(ctx context.Context, projectID uint, actor Actor, to models.ProjectStatus) error {
	if err := w.requireAdmin(actor); err != nil {
		return err
	}

	return w.inTx(ctx, func(tx *gorm.DB, out *outbox) error {
		projects := store.NewProjectStore(tx)
		project, err := projects.GetForUpdate(ctx, projectID)
		if err != nil {
			return lookupError(err, "project not found")
		}

		if err := models.ValidateProjectTransition(project.Status, to); err != nil {
			return newError(KindInvalidState, fmt.Sprintf("project is %s, only pending projects can be reviewed", project.Status))
		}
		changed, err := projects.CompareAndSetStatus(ctx, project.ID, project.Status, to)
		if err != nil {
			return storageError("update project status", err)
		}
		if !changed {
			return newError(KindInvalidState, "project was reviewed concurrently")
		}

		typ := models.NotifyApprovalSuccess
		msg := fmt.Sprintf("Your project %q has been approved and is now live!", project.Title)
		link := projectLink(project.ID)
		if to == models.ProjectRejected {
			typ = models.NotifyApprovalRejected
			msg = fmt.Sprintf("Your project %q was reviewed and rejected by the Admin.", project.Title)
			link = "/profile.html"
		}

		w.log.WithFields(logrus.Fields{"project_id": project.ID, "status": to, "admin_id": actor.ID}).Info("project reviewed")
		return w.notify(ctx, tx, out, project.OwnerID, typ, msg, link, map[string]interface{}{"project_id": project.ID})
	})
}

// CloseProject stops applications on an approved project. Owner only.
func (w *Workflow) CloseProject(ctx context.Context, projectID uint, actor Actor) error {
	return w.inTx(ctx, func(tx *gorm.DB, out *outbox) error {
		projects := store.NewProjectStore(tx)
		project, err := projects.GetForUpdate(ctx, projectID)
		if err != nil {
			return lookupError(err, "project not found")
		}
		if project.OwnerID != actor.ID {
			return newError(KindForbidden, "only the owner can close applications")
		}

		if err := models.ValidateProjectTransition(project.Status, models.ProjectClosed); err != nil {
			if project.Status == models.ProjectClosed {
				return newError(KindInvalidState, "project is already closed")
			}
			return newError(KindInvalidState, fmt.Sprintf("project is %s, only approved projects can be closed", project.Status))
		}
		changed, err := projects.CompareAndSetStatus(ctx, project.ID, models.ProjectApproved, models.ProjectClosed)
		if err != nil {
			return storageError("close project", err)
		}
		if !changed {
			return newError(KindInvalidState, "project is already closed")
		}
		return nil
	})
}

// expireIfDue closes an approved project whose deadline has passed. It must be
// called with the project row read inside the same transaction, and reports
// whether the deadline has passed.
func (w *Workflow) expireIfDue(ctx context.Context, tx *gorm.DB, project *models.Project) (bool, error) {
	if !project.DeadlinePassed(w.now()) {
		return false, nil
	}
	if project.Status != models.ProjectApproved {
		return project.Status == models.ProjectClosed, nil
	}

	changed, err := store.NewProjectStore(tx).CompareAndSetStatus(ctx, project.ID, models.ProjectApproved, models.ProjectClosed)
	if err != nil {
		return false, storageError("expire project", err)
	}
	if changed {
		project.Status = models.ProjectClosed
		w.log.WithField("project_id", project.ID).Info("project closed after deadline")
	}
	return true, nil
}

func (w *Workflow) ListPublicProjects(ctx context.Context) ([]models.Project, error) {
	projects, err := store.NewProjectStore(w.db).ListByStatus(ctx, models.ProjectApproved, models.ProjectClosed)
	if err != nil {
		return nil, storageError("list projects", err)
	}
	return projects, nil
}

func (w *Workflow) ListPendingProjects(ctx context.Context, actor Actor) ([]models.Project, error) {
	if err := w.requireAdmin(actor); err != nil {
		return nil, err
	}
	projects, err := store.NewProjectStore(w.db).ListByStatus(ctx, models.ProjectPending)
	if err != nil {
		return nil, storageError("list pending projects", err)
	}
	return projects, nil
}

func (w *Workflow) ListOwnedProjects(ctx context.Context, actor Actor) ([]models.Project, error) {
	projects, err := store.NewProjectStore(w.db).ListByOwner(ctx, actor.ID)
	if err != nil {
		return nil, storageError("list owned projects", err)
	}
	return projects, nil
}

// GetProjectDetail loads the project page. caller may be nil for anonymous
// visitors.
func (w *Workflow) GetProjectDetail(ctx context.Context, projectID uint, caller *Actor) (*ProjectDetail, error) {
	project, err := store.NewProjectStore(w.db).Get(ctx, projectID)
	if err != nil {
		return nil, lookupError(err, "project not found")
	}

	detail := &ProjectDetail{Project: *project}

	if detail.Feedbacks, err = store.NewFeedbackStore(w.db).ListForProject(ctx, projectID); err != nil {
		return nil, storageError("list feedback", err)
	}

	apps := store.NewApplicationStore(w.db)
	if detail.ApplicantCount, err = apps.CountForProject(ctx, projectID); err != nil {
		return nil, storageError("count applications", err)
	}

	if detail.Members, err = w.ListMembers(ctx, projectID); err != nil {
		return nil, err
	}

	if caller != nil {
		app, err := apps.Find(ctx, projectID, caller.ID)
		switch {
		case err == nil:
			status := app.Status
			detail.MyApplicationStatus = &status
		case !errors.Is(err, gorm.ErrRecordNotFound):
			return nil, storageError("load application", err)
		}
	}

	return detail, nil
}

// PendingProjectCount backs the admin badge.
func (w *Workflow) PendingProjectCount(ctx context.Context, actor Actor) (int64, error) {
	if err := w.requireAdmin(actor); err != nil {
		return 0, err
	}
	count, err := store.NewProjectStore(w.db).CountByStatus(ctx, models.ProjectPending)
	if err != nil {
		return 0, storageError("count pending projects", err)
	}
	return count, nil
}

func (w *Workflow) validateInput(in interface{}) error {
	if err := w.validate.Struct(in); err != nil {
		return ValidationFailed(err)
	}
	return nil
}
