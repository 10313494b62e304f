package services

import (
	"context"
	"fmt"
	"io"
	"sync"
	"testing"
	"time"

	"github.com/collabsphere/collabsphere/internal/models"
	"github.com/collabsphere/collabsphere/internal/store"
	"github.com/collabsphere/collabsphere/internal/testutil"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type recordingPublisher struct {
	mu   sync.Mutex
	sent []models.Notification
}

func (p *recordingPublisher) Publish(n models.Notification) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.sent = append(p.sent, n)
}

func (p *recordingPublisher) count() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.sent)
}

type channelRelay struct {
	submitted chan models.Project
}

func (r *channelRelay) ProjectSubmitted(_ context.Context, project models.Project, _ models.User) error {
	r.submitted <- project
	return nil
}

type fixture struct {
	db        *gorm.DB
	workflow  *Workflow
	publisher *recordingPublisher
}

func newFixture(t *testing.T, opts ...Option) *fixture {
	t.Helper()

	gdb := testutil.NewDB(t)
	log := logrus.New()
	log.SetOutput(io.Discard)

	publisher := &recordingPublisher{}
	opts = append([]Option{WithPublisher(publisher)}, opts...)
	return &fixture{
		db:        gdb,
		workflow:  New(gdb, store.NewUserStore(gdb), log, opts...),
		publisher: publisher,
	}
}

func actorOf(u models.User) Actor {
	return Actor{ID: u.ID, IsAdmin: u.IsAdmin}
}

func (f *fixture) notifications(t *testing.T, user models.User, typ models.NotificationType) []models.Notification {
	t.Helper()
	var list []models.Notification
	require.NoError(t, f.db.Where("user_id = ? AND type = ?", user.ID, typ).Find(&list).Error)
	return list
}

func (f *fixture) projectStatus(t *testing.T, id uint) models.ProjectStatus {
	t.Helper()
	var p models.Project
	require.NoError(t, f.db.First(&p, id).Error)
	return p.Status
}

func (f *fixture) applicationCount(t *testing.T, projectID uint) int64 {
	t.Helper()
	var count int64
	require.NoError(t, f.db.Model(&models.Application{}).Where("project_id = ?", projectID).Count(&count).Error)
	return count
}

func TestCreateProject_NotifiesEveryAdmin(t *testing.T) {
	relay := &channelRelay{submitted: make(chan models.Project, 1)}
	f := newFixture(t, WithAdminRelay(relay))
	ctx := context.Background()

	first := testutil.CreateUser(t, f.db, "admin-one", true)
	second := testutil.CreateUser(t, f.db, "admin-two", true)
	owner := testutil.CreateUser(t, f.db, "owner", false)

	project, err := f.workflow.CreateProject(ctx, actorOf(owner), CreateProjectInput{
		Title:          "  Logo Design ",
		Description:    "A logo for a bakery",
		RequiredPeople: 2,
		Amount:         150,
	})
	require.NoError(t, err)
	require.Equal(t, models.ProjectPending, project.Status)
	require.Equal(t, "Logo Design", project.Title)
	require.Equal(t, owner.Name, project.Owner.Name)

	for _, admin := range []models.User{first, second} {
		list := f.notifications(t, admin, models.NotifyNewProject)
		require.Len(t, list, 1)
		require.Equal(t, "/admin.html", list[0].Link)
		require.Contains(t, list[0].Message, "Logo Design")
	}
	require.Empty(t, f.notifications(t, owner, models.NotifyNewProject))
	require.Equal(t, 2, f.publisher.count())

	select {
	case announced := <-relay.submitted:
		require.Equal(t, project.ID, announced.ID)
	case <-time.After(2 * time.Second):
		t.Fatal("admin relay was not called")
	}
}

func TestCreateProject_Validation(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	owner := testutil.CreateUser(t, f.db, "owner", false)

	cases := map[string]CreateProjectInput{
		"missing title":     {Description: "d", RequiredPeople: 1},
		"blank description": {Title: "t", Description: "   ", RequiredPeople: 1},
		"no people":         {Title: "t", Description: "d"},
		"negative amount":   {Title: "t", Description: "d", RequiredPeople: 1, Amount: -5},
		"negative people":   {Title: "t", Description: "d", RequiredPeople: -1},
	}
	for name, in := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := f.workflow.CreateProject(ctx, actorOf(owner), in)
			require.ErrorIs(t, err, ErrValidation)
			require.Contains(t, err.Error(), "failed on the")
		})
	}

	var count int64
	require.NoError(t, f.db.Model(&models.Project{}).Count(&count).Error)
	require.Zero(t, count)
}

func TestReviewProject(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	admin := testutil.CreateUser(t, f.db, "admin", true)
	owner := testutil.CreateUser(t, f.db, "owner", false)
	toApprove := testutil.CreateProject(t, f.db, owner, models.ProjectPending)
	toReject := testutil.CreateProject(t, f.db, owner, models.ProjectPending)

	err := f.workflow.ApproveProject(ctx, toApprove.ID, actorOf(owner))
	require.ErrorIs(t, err, ErrForbidden)
	require.Equal(t, models.ProjectPending, f.projectStatus(t, toApprove.ID))

	require.NoError(t, f.workflow.ApproveProject(ctx, toApprove.ID, actorOf(admin)))
	require.Equal(t, models.ProjectApproved, f.projectStatus(t, toApprove.ID))
	approved := f.notifications(t, owner, models.NotifyApprovalSuccess)
	require.Len(t, approved, 1)
	require.Equal(t, projectLink(toApprove.ID), approved[0].Link)

	err = f.workflow.ApproveProject(ctx, toApprove.ID, actorOf(admin))
	require.ErrorIs(t, err, ErrInvalidState)
	err = f.workflow.RejectProject(ctx, toApprove.ID, actorOf(admin))
	require.ErrorIs(t, err, ErrInvalidState)
	require.Len(t, f.notifications(t, owner, models.NotifyApprovalSuccess), 1)

	require.NoError(t, f.workflow.RejectProject(ctx, toReject.ID, actorOf(admin)))
	require.Equal(t, models.ProjectRejected, f.projectStatus(t, toReject.ID))
	rejected := f.notifications(t, owner, models.NotifyApprovalRejected)
	require.Len(t, rejected, 1)
	require.Equal(t, "/profile.html", rejected[0].Link)

	err = f.workflow.ApproveProject(ctx, toReject.ID+100, actorOf(admin))
	require.ErrorIs(t, err, ErrNotFound)
}

func TestCloseProject(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	owner := testutil.CreateUser(t, f.db, "owner", false)
	stranger := testutil.CreateUser(t, f.db, "stranger", false)
	project := testutil.CreateProject(t, f.db, owner, models.ProjectApproved)
	pending := testutil.CreateProject(t, f.db, owner, models.ProjectPending)

	err := f.workflow.CloseProject(ctx, project.ID, actorOf(stranger))
	require.ErrorIs(t, err, ErrForbidden)
	require.Equal(t, models.ProjectApproved, f.projectStatus(t, project.ID))

	require.NoError(t, f.workflow.CloseProject(ctx, project.ID, actorOf(owner)))
	require.Equal(t, models.ProjectClosed, f.projectStatus(t, project.ID))

	err = f.workflow.CloseProject(ctx, project.ID, actorOf(owner))
	require.ErrorIs(t, err, ErrInvalidState)
	require.Equal(t, "project is already closed", err.Error())

	err = f.workflow.CloseProject(ctx, pending.ID, actorOf(owner))
	require.ErrorIs(t, err, ErrInvalidState)
	require.Equal(t, models.ProjectPending, f.projectStatus(t, pending.ID))

	err = f.workflow.CloseProject(ctx, pending.ID+100, actorOf(owner))
	require.ErrorIs(t, err, ErrNotFound)
}

func TestApply_NotifiesOwner(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	owner := testutil.CreateUser(t, f.db, "owner", false)
	applicant := testutil.CreateUser(t, f.db, "dana", false)
	project := testutil.CreateProject(t, f.db, owner, models.ProjectApproved)

	require.NoError(t, f.workflow.Apply(ctx, project.ID, actorOf(applicant)))

	list := f.notifications(t, owner, models.NotifyApplication)
	require.Len(t, list, 1)
	require.Equal(t, "dana applied to your project: Logo Design.", list[0].Message)
	require.Equal(t, projectLink(project.ID), list[0].Link)
	require.Equal(t, 1, f.publisher.count())

	err := f.workflow.Apply(ctx, project.ID, actorOf(applicant))
	require.ErrorIs(t, err, ErrDuplicateApplication)
	require.EqualValues(t, 1, f.applicationCount(t, project.ID))
	require.Len(t, f.notifications(t, owner, models.NotifyApplication), 1)

	err = f.workflow.Apply(ctx, project.ID, actorOf(owner))
	require.ErrorIs(t, err, ErrForbidden)

	err = f.workflow.Apply(ctx, project.ID+100, actorOf(applicant))
	require.ErrorIs(t, err, ErrNotFound)
}

func TestApply_RequiresApprovedProject(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	owner := testutil.CreateUser(t, f.db, "owner", false)
	applicant := testutil.CreateUser(t, f.db, "applicant", false)

	for _, status := range []models.ProjectStatus{models.ProjectPending, models.ProjectRejected, models.ProjectClosed} {
		project := testutil.CreateProject(t, f.db, owner, status)

		err := f.workflow.Apply(ctx, project.ID, actorOf(applicant))
		require.ErrorIs(t, err, ErrInvalidState, "status %s", status)
		require.Zero(t, f.applicationCount(t, project.ID))
	}
	require.Empty(t, f.notifications(t, owner, models.NotifyApplication))
}

func TestApply_DeadlinePassedClosesProject(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	owner := testutil.CreateUser(t, f.db, "owner", false)
	applicant := testutil.CreateUser(t, f.db, "applicant", false)
	project := testutil.CreateProject(t, f.db, owner, models.ProjectApproved)

	yesterday := time.Now().Add(-24 * time.Hour)
	require.NoError(t, f.db.Model(&project).Update("deadline", yesterday).Error)

	err := f.workflow.Apply(ctx, project.ID, actorOf(applicant))
	require.ErrorIs(t, err, ErrDeadlineExpired)
	require.Equal(t, models.ProjectClosed, f.projectStatus(t, project.ID))
	require.Zero(t, f.applicationCount(t, project.ID))
	require.Empty(t, f.notifications(t, owner, models.NotifyApplication))

	err = f.workflow.Apply(ctx, project.ID, actorOf(applicant))
	require.ErrorIs(t, err, ErrDeadlineExpired)

	own := testutil.CreateProject(t, f.db, owner, models.ProjectApproved)
	require.NoError(t, f.db.Model(&own).Update("deadline", yesterday).Error)

	err = f.workflow.Apply(ctx, own.ID, actorOf(owner))
	require.ErrorIs(t, err, ErrDeadlineExpired)
	require.Equal(t, models.ProjectClosed, f.projectStatus(t, own.ID))
}

func TestApply_DeadlineUsesInjectedClock(t *testing.T) {
	deadline := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	now := deadline.Add(-time.Minute)
	f := newFixture(t, WithClock(func() time.Time { return now }))
	ctx := context.Background()
	owner := testutil.CreateUser(t, f.db, "owner", false)
	early := testutil.CreateUser(t, f.db, "early", false)
	late := testutil.CreateUser(t, f.db, "late", false)
	project := testutil.CreateProject(t, f.db, owner, models.ProjectApproved)
	require.NoError(t, f.db.Model(&project).Update("deadline", deadline).Error)

	require.NoError(t, f.workflow.Apply(ctx, project.ID, actorOf(early)))

	now = deadline.Add(time.Second)
	err := f.workflow.Apply(ctx, project.ID, actorOf(late))
	require.ErrorIs(t, err, ErrDeadlineExpired)
	require.Equal(t, models.ProjectClosed, f.projectStatus(t, project.ID))
	require.EqualValues(t, 1, f.applicationCount(t, project.ID))
}

func TestApply_ConcurrentDuplicates(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	owner := testutil.CreateUser(t, f.db, "owner", false)
	applicant := testutil.CreateUser(t, f.db, "applicant", false)
	project := testutil.CreateProject(t, f.db, owner, models.ProjectApproved)

	const attempts = 4
	errs := make([]error, attempts)
	var wg sync.WaitGroup
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			errs[i] = f.workflow.Apply(ctx, project.ID, actorOf(applicant))
		}(i)
	}
	wg.Wait()

	succeeded := 0
	for _, err := range errs {
		if err == nil {
			succeeded++
			continue
		}
		require.ErrorIs(t, err, ErrDuplicateApplication)
	}
	require.Equal(t, 1, succeeded)
	require.EqualValues(t, 1, f.applicationCount(t, project.ID))
	require.Len(t, f.notifications(t, owner, models.NotifyApplication), 1)
}

func TestApply_ConcurrentAfterDeadline(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	owner := testutil.CreateUser(t, f.db, "owner", false)
	project := testutil.CreateProject(t, f.db, owner, models.ProjectApproved)
	require.NoError(t, f.db.Model(&project).Update("deadline", time.Now().Add(-time.Hour)).Error)

	const attempts = 5
	applicants := make([]models.User, attempts)
	for i := range applicants {
		applicants[i] = testutil.CreateUser(t, f.db, fmt.Sprintf("applicant-%d", i), false)
	}

	errs := make([]error, attempts)
	var wg sync.WaitGroup
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			errs[i] = f.workflow.Apply(ctx, project.ID, actorOf(applicants[i]))
		}(i)
	}
	wg.Wait()

	for _, err := range errs {
		require.ErrorIs(t, err, ErrDeadlineExpired)
	}
	require.Equal(t, models.ProjectClosed, f.projectStatus(t, project.ID))
	require.Zero(t, f.applicationCount(t, project.ID))
	require.Empty(t, f.notifications(t, owner, models.NotifyApplication))
}

func TestApply_NotificationFailureRollsBack(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	owner := testutil.CreateUser(t, f.db, "owner", false)
	applicant := testutil.CreateUser(t, f.db, "applicant", false)
	project := testutil.CreateProject(t, f.db, owner, models.ProjectApproved)

	require.NoError(t, f.db.Migrator().DropTable(&models.Notification{}))

	err := f.workflow.Apply(ctx, project.ID, actorOf(applicant))
	require.ErrorIs(t, err, ErrStorage)
	require.Zero(t, f.applicationCount(t, project.ID))
	require.Zero(t, f.publisher.count())
}

func TestAcceptApplicant_IsIdempotent(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	owner := testutil.CreateUser(t, f.db, "owner", false)
	applicant := testutil.CreateUser(t, f.db, "applicant", false)
	project := testutil.CreateProject(t, f.db, owner, models.ProjectApproved)
	require.NoError(t, f.workflow.Apply(ctx, project.ID, actorOf(applicant)))

	require.NoError(t, f.workflow.AcceptApplicant(ctx, project.ID, applicant.ID, actorOf(owner)))
	require.NoError(t, f.workflow.AcceptApplicant(ctx, project.ID, applicant.ID, actorOf(owner)))

	members, err := f.workflow.ListMembers(ctx, project.ID)
	require.NoError(t, err)
	require.Len(t, members, 1)
	require.Equal(t, applicant.ID, members[0].UserID)

	accepted := f.notifications(t, applicant, models.NotifyApplicationAccepted)
	require.Len(t, accepted, 1)
	require.Equal(t, `You've been selected for "Logo Design"!`, accepted[0].Message)

	err = f.workflow.RejectApplicant(ctx, project.ID, applicant.ID, actorOf(owner))
	require.ErrorIs(t, err, ErrAlreadyProcessed)
}

func TestAcceptApplicant_Concurrent(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	owner := testutil.CreateUser(t, f.db, "owner", false)
	admin := testutil.CreateUser(t, f.db, "admin", true)
	applicant := testutil.CreateUser(t, f.db, "applicant", false)
	project := testutil.CreateProject(t, f.db, owner, models.ProjectApproved)
	require.NoError(t, f.workflow.Apply(ctx, project.ID, actorOf(applicant)))

	const attempts = 6
	errs := make([]error, attempts)
	var wg sync.WaitGroup
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			actor := actorOf(owner)
			if i%2 == 1 {
				actor = actorOf(admin)
			}
			errs[i] = f.workflow.AcceptApplicant(ctx, project.ID, applicant.ID, actor)
		}(i)
	}
	wg.Wait()

	for _, err := range errs {
		require.NoError(t, err)
	}

	members, err := f.workflow.ListMembers(ctx, project.ID)
	require.NoError(t, err)
	require.Len(t, members, 1)
	require.Len(t, f.notifications(t, applicant, models.NotifyApplicationAccepted), 1)
}

func TestAcceptApplicant_Authorization(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	owner := testutil.CreateUser(t, f.db, "owner", false)
	admin := testutil.CreateUser(t, f.db, "admin", true)
	stranger := testutil.CreateUser(t, f.db, "stranger", false)
	applicant := testutil.CreateUser(t, f.db, "applicant", false)
	project := testutil.CreateProject(t, f.db, owner, models.ProjectApproved)
	require.NoError(t, f.workflow.Apply(ctx, project.ID, actorOf(applicant)))

	err := f.workflow.AcceptApplicant(ctx, project.ID, applicant.ID, actorOf(stranger))
	require.ErrorIs(t, err, ErrForbidden)

	_, err = f.workflow.ListApplicants(ctx, project.ID, actorOf(stranger))
	require.ErrorIs(t, err, ErrForbidden)

	err = f.workflow.AcceptApplicant(ctx, project.ID, stranger.ID, actorOf(owner))
	require.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, f.workflow.AcceptApplicant(ctx, project.ID, applicant.ID, actorOf(admin)))

	applicants, err := f.workflow.ListApplicants(ctx, project.ID, actorOf(owner))
	require.NoError(t, err)
	require.Len(t, applicants, 1)
	require.Equal(t, models.ApplicationAccepted, applicants[0].Status)
	require.Equal(t, applicant.Name, applicants[0].User.Name)
}

func TestRejectApplicant(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	owner := testutil.CreateUser(t, f.db, "owner", false)
	applicant := testutil.CreateUser(t, f.db, "applicant", false)
	project := testutil.CreateProject(t, f.db, owner, models.ProjectApproved)
	require.NoError(t, f.workflow.Apply(ctx, project.ID, actorOf(applicant)))

	require.NoError(t, f.workflow.RejectApplicant(ctx, project.ID, applicant.ID, actorOf(owner)))
	require.NoError(t, f.workflow.RejectApplicant(ctx, project.ID, applicant.ID, actorOf(owner)))

	rejected := f.notifications(t, applicant, models.NotifyApplicationRejected)
	require.Len(t, rejected, 1)
	require.Equal(t, "/profile.html", rejected[0].Link)

	err := f.workflow.AcceptApplicant(ctx, project.ID, applicant.ID, actorOf(owner))
	require.ErrorIs(t, err, ErrAlreadyProcessed)

	members, err := f.workflow.ListMembers(ctx, project.ID)
	require.NoError(t, err)
	require.Empty(t, members)
}

func TestMarkNotificationRead(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	owner := testutil.CreateUser(t, f.db, "owner", false)
	applicant := testutil.CreateUser(t, f.db, "applicant", false)
	project := testutil.CreateProject(t, f.db, owner, models.ProjectApproved)
	require.NoError(t, f.workflow.Apply(ctx, project.ID, actorOf(applicant)))

	list, err := f.workflow.ListNotifications(ctx, actorOf(owner))
	require.NoError(t, err)
	require.Len(t, list, 1)
	n := list[0]

	err = f.workflow.MarkNotificationRead(ctx, n.ID, actorOf(applicant))
	require.ErrorIs(t, err, ErrForbidden)

	err = f.workflow.MarkNotificationRead(ctx, n.ID+100, actorOf(owner))
	require.ErrorIs(t, err, ErrNotFound)

	unread, err := f.workflow.UnreadCount(ctx, actorOf(owner))
	require.NoError(t, err)
	require.EqualValues(t, 1, unread)

	require.NoError(t, f.workflow.MarkNotificationRead(ctx, n.ID, actorOf(owner)))
	require.NoError(t, f.workflow.MarkNotificationRead(ctx, n.ID, actorOf(owner)))

	unread, err = f.workflow.UnreadCount(ctx, actorOf(owner))
	require.NoError(t, err)
	require.Zero(t, unread)
}

func TestListNotifications_NewestFirst(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	admin := testutil.CreateUser(t, f.db, "admin", true)
	owner := testutil.CreateUser(t, f.db, "owner", false)

	for _, title := range []string{"First", "Second"} {
		_, err := f.workflow.CreateProject(ctx, actorOf(owner), CreateProjectInput{Title: title, Description: "d", RequiredPeople: 1})
		require.NoError(t, err)
	}

	list, err := f.workflow.ListNotifications(ctx, actorOf(admin))
	require.NoError(t, err)
	require.Len(t, list, 2)
	require.Contains(t, list[0].Message, "Second")
	require.Contains(t, list[1].Message, "First")
}

func TestPendingProjectCountAndQueue(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	admin := testutil.CreateUser(t, f.db, "admin", true)
	owner := testutil.CreateUser(t, f.db, "owner", false)
	testutil.CreateProject(t, f.db, owner, models.ProjectPending)
	testutil.CreateProject(t, f.db, owner, models.ProjectPending)
	testutil.CreateProject(t, f.db, owner, models.ProjectApproved)

	_, err := f.workflow.PendingProjectCount(ctx, actorOf(owner))
	require.ErrorIs(t, err, ErrForbidden)
	_, err = f.workflow.ListPendingProjects(ctx, actorOf(owner))
	require.ErrorIs(t, err, ErrForbidden)

	count, err := f.workflow.PendingProjectCount(ctx, actorOf(admin))
	require.NoError(t, err)
	require.EqualValues(t, 2, count)

	queue, err := f.workflow.ListPendingProjects(ctx, actorOf(admin))
	require.NoError(t, err)
	require.Len(t, queue, 2)
	require.Equal(t, owner.Name, queue[0].Owner.Name)
}

func TestListPublicProjects(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	owner := testutil.CreateUser(t, f.db, "owner", false)
	member := testutil.CreateUser(t, f.db, "member", false)
	live := testutil.CreateProject(t, f.db, owner, models.ProjectApproved)
	testutil.CreateProject(t, f.db, owner, models.ProjectPending)
	testutil.CreateProject(t, f.db, owner, models.ProjectRejected)

	require.NoError(t, f.workflow.Apply(ctx, live.ID, actorOf(member)))
	require.NoError(t, f.workflow.AcceptApplicant(ctx, live.ID, member.ID, actorOf(owner)))
	require.NoError(t, f.workflow.CloseProject(ctx, live.ID, actorOf(owner)))

	list, err := f.workflow.ListPublicProjects(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	require.Equal(t, models.ProjectClosed, list[0].Status)
	require.Len(t, list[0].Memberships, 1)
	require.Equal(t, member.Name, list[0].Memberships[0].User.Name)
}

func TestGetProjectDetail(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	owner := testutil.CreateUser(t, f.db, "owner", false)
	applicant := testutil.CreateUser(t, f.db, "applicant", false)
	visitor := testutil.CreateUser(t, f.db, "visitor", false)
	project := testutil.CreateProject(t, f.db, owner, models.ProjectApproved)

	require.NoError(t, f.workflow.Apply(ctx, project.ID, actorOf(applicant)))
	_, err := f.workflow.AddFeedback(ctx, project.ID, actorOf(visitor), FeedbackInput{Message: "Looks great"})
	require.NoError(t, err)

	caller := actorOf(applicant)
	detail, err := f.workflow.GetProjectDetail(ctx, project.ID, &caller)
	require.NoError(t, err)
	require.Equal(t, owner.Name, detail.Project.Owner.Name)
	require.EqualValues(t, 1, detail.ApplicantCount)
	require.Len(t, detail.Feedbacks, 1)
	require.Equal(t, visitor.Name, detail.Feedbacks[0].User.Name)
	require.NotNil(t, detail.MyApplicationStatus)
	require.Equal(t, models.ApplicationApplied, *detail.MyApplicationStatus)

	detail, err = f.workflow.GetProjectDetail(ctx, project.ID, nil)
	require.NoError(t, err)
	require.Nil(t, detail.MyApplicationStatus)

	_, err = f.workflow.GetProjectDetail(ctx, project.ID+100, nil)
	require.ErrorIs(t, err, ErrNotFound)
}

func TestAddFeedback_Validation(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	owner := testutil.CreateUser(t, f.db, "owner", false)
	project := testutil.CreateProject(t, f.db, owner, models.ProjectApproved)

	_, err := f.workflow.AddFeedback(ctx, project.ID, actorOf(owner), FeedbackInput{Message: "  "})
	require.ErrorIs(t, err, ErrValidation)

	_, err = f.workflow.AddFeedback(ctx, project.ID+100, actorOf(owner), FeedbackInput{Message: "hello"})
	require.ErrorIs(t, err, ErrNotFound)
}
