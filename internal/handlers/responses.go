package handlers

import (
	"time"

	"github.com/collabsphere/collabsphere/internal/models"
	"github.com/collabsphere/collabsphere/internal/services"
	"github.com/collabsphere/collabsphere/internal/types"
	"gorm.io/datatypes"
)

type OwnerResponse struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
}

// ContactResponse is shown for project owners so applicants can reach them.
type ContactResponse struct {
	ID       uint   `json:"id"`
	Name     string `json:"name"`
	Email    string `json:"email"`
	Whatsapp string `json:"whatsapp"`
}

type MemberResponse struct {
	UserID uint   `json:"user_id"`
	Name   string `json:"name"`
	Email  string `json:"email"`
	Status string `json:"status"`
}

type ProjectResponse struct {
	ID             uint             `json:"id"`
	Title          string           `json:"title"`
	Description    string           `json:"description"`
	RequiredPeople int              `json:"required_people"`
	Deadline       *time.Time       `json:"deadline"`
	Amount         float64          `json:"amount"`
	Status         string           `json:"status"`
	CreatedAt      time.Time        `json:"created_at"`
	Owner          ContactResponse  `json:"owner"`
	Members        []MemberResponse `json:"members"`
}

type FeedbackResponse struct {
	ID        uint          `json:"id"`
	Message   string        `json:"message"`
	Author    OwnerResponse `json:"author"`
	CreatedAt time.Time     `json:"created_at"`
}

type ProjectDetailResponse struct {
	ProjectResponse
	Feedbacks           []FeedbackResponse `json:"feedbacks"`
	ApplicantCount      int64              `json:"applicant_count"`
	MyApplicationStatus *string            `json:"my_application_status"`
}

type ApplicantResponse struct {
	UserID    uint      `json:"user_id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Bio       string    `json:"bio"`
	Portfolio string    `json:"portfolio"`
	Whatsapp  string    `json:"whatsapp"`
	Status    string    `json:"status"`
	AppliedAt time.Time `json:"applied_at"`
}

type MyApplicationResponse struct {
	ProjectID    uint      `json:"project_id"`
	ProjectTitle string    `json:"project_title"`
	Status       string    `json:"status"`
	AppliedAt    time.Time `json:"applied_at"`
}

type NotificationResponse struct {
	ID        uint           `json:"id"`
	Type      string         `json:"type"`
	Message   string         `json:"message"`
	Link      string         `json:"link"`
	IsRead    bool           `json:"is_read"`
	Payload   datatypes.JSON `json:"payload,omitempty"`
	CreatedAt time.Time      `json:"created_at"`
}

func toUserResponse(u models.User) types.UserResponse {
	return types.UserResponse{ID: u.ID, Name: u.Name, Email: u.Email, IsAdmin: u.IsAdmin}
}

func toProfileResponse(u models.User) types.ProfileResponse {
	return types.ProfileResponse{
		UserResponse: toUserResponse(u),
		Bio:          u.Bio,
		Portfolio:    u.Portfolio,
		Whatsapp:     u.Whatsapp,
		Gender:       u.Gender,
		Age:          u.Age,
	}
}

func toProjectResponse(p models.Project) ProjectResponse {
	members := make([]MemberResponse, 0, len(p.Memberships))
	for _, m := range p.Memberships {
		members = append(members, MemberResponse{UserID: m.UserID, Name: m.User.Name, Email: m.User.Email, Status: m.Status})
	}
	return ProjectResponse{
		ID:             p.ID,
		Title:          p.Title,
		Description:    p.Description,
		RequiredPeople: p.RequiredPeople,
		Deadline:       p.Deadline,
		Amount:         p.Amount,
		Status:         string(p.Status),
		CreatedAt:      p.CreatedAt,
		Members:        members,
		Owner: ContactResponse{
			ID:       p.OwnerID,
			Name:     p.Owner.Name,
			Email:    p.Owner.Email,
			Whatsapp: p.Owner.Whatsapp,
		},
	}
}

func toProjectResponses(list []models.Project) []ProjectResponse {
	out := make([]ProjectResponse, 0, len(list))
	for _, p := range list {
		out = append(out, toProjectResponse(p))
	}
	return out
}

func toProjectDetailResponse(d *services.ProjectDetail) ProjectDetailResponse {
	project := d.Project
	project.Memberships = d.Members

	feedbacks := make([]FeedbackResponse, 0, len(d.Feedbacks))
	for _, f := range d.Feedbacks {
		feedbacks = append(feedbacks, FeedbackResponse{
			ID:        f.ID,
			Message:   f.Message,
			Author:    OwnerResponse{ID: f.UserID, Name: f.User.Name},
			CreatedAt: f.CreatedAt,
		})
	}

	resp := ProjectDetailResponse{
		ProjectResponse: toProjectResponse(project),
		Feedbacks:       feedbacks,
		ApplicantCount:  d.ApplicantCount,
	}
	if d.MyApplicationStatus != nil {
		status := string(*d.MyApplicationStatus)
		resp.MyApplicationStatus = &status
	}
	return resp
}

func toApplicantResponses(list []models.Application) []ApplicantResponse {
	out := make([]ApplicantResponse, 0, len(list))
	for _, a := range list {
		out = append(out, ApplicantResponse{
			UserID:    a.UserID,
			Name:      a.User.Name,
			Email:     a.User.Email,
			Bio:       a.User.Bio,
			Portfolio: a.User.Portfolio,
			Whatsapp:  a.User.Whatsapp,
			Status:    string(a.Status),
			AppliedAt: a.CreatedAt,
		})
	}
	return out
}

func toNotificationResponse(n models.Notification) NotificationResponse {
	return NotificationResponse{
		ID:        n.ID,
		Type:      string(n.Type),
		Message:   n.Message,
		Link:      n.Link,
		IsRead:    n.IsRead,
		Payload:   n.Payload,
		CreatedAt: n.CreatedAt,
	}
}
