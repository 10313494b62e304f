package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/collabsphere/collabsphere/internal/auth"
	"github.com/collabsphere/collabsphere/internal/models"
	"github.com/collabsphere/collabsphere/internal/services"
	"github.com/collabsphere/collabsphere/internal/store"
	"github.com/collabsphere/collabsphere/internal/types"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const sessionMaxAge = 60 * 60 * 24 * 7

type CreateUserRequest struct {
	Name     string `json:"name" binding:"required,max=100"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
}

type LoginUserRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
}

func (h *Handler) setSessionCookie(ctx *gin.Context, token string, maxAge int) {
	http.SetCookie(ctx.Writer, &http.Cookie{
		Name:     types.TokenCookieName,
		Value:    token,
		Path:     "/",
		Domain:   h.Config.CookieDomain,
		MaxAge:   maxAge,
		Secure:   true,
		HttpOnly: true,
		SameSite: http.SameSiteNoneMode,
	})
}

// issueSession sets the session cookie and returns the token for clients that
// use the Authorization header instead.
func (h *Handler) issueSession(ctx *gin.Context, status int, user models.User) {
	token, err := auth.GenerateJWT(user.ID, user.Email)
	if err != nil {
		h.respondError(ctx, internalError("generate token", err))
		return
	}

	h.setSessionCookie(ctx, token, sessionMaxAge)
	ctx.JSON(status, gin.H{
		"user":  toUserResponse(user),
		"token": token,
	})
}

func (h *Handler) Register(ctx *gin.Context) {
	var body CreateUserRequest
	if !h.bindJSON(ctx, &body) {
		return
	}

	body.Email = strings.ToLower(strings.TrimSpace(body.Email))

	passwordHash, err := bcrypt.GenerateFromPassword([]byte(body.Password), bcrypt.DefaultCost)
	if err != nil {
		h.respondError(ctx, internalError("hash password", err))
		return
	}

	user := models.User{
		Name:         strings.TrimSpace(body.Name),
		Email:        body.Email,
		PasswordHash: string(passwordHash),
		IsAdmin:      h.Config.IsAdminEmail(body.Email),
	}

	if err := h.Users.Create(ctx.Request.Context(), &user); err != nil {
		if errors.Is(err, store.ErrDuplicate) {
			h.respondError(ctx, &services.Error{Kind: services.KindValidation, Message: "Email already exists"})
			return
		}
		h.respondError(ctx, internalError("create user", err))
		return
	}

	h.Log.WithFields(logrus.Fields{"user_id": user.ID, "is_admin": user.IsAdmin}).Info("User registered")
	h.issueSession(ctx, http.StatusCreated, user)
}

func (h *Handler) Login(ctx *gin.Context) {
	var body LoginUserRequest
	if !h.bindJSON(ctx, &body) {
		return
	}

	user, err := h.Users.FindByEmail(ctx.Request.Context(), strings.ToLower(strings.TrimSpace(body.Email)))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			h.respondError(ctx, &services.Error{Kind: services.KindUnauthorized, Message: "Invalid email or password"})
			return
		}
		h.respondError(ctx, internalError("find user", err))
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(body.Password)); err != nil {
		h.respondError(ctx, &services.Error{Kind: services.KindUnauthorized, Message: "Invalid email or password"})
		return
	}

	h.issueSession(ctx, http.StatusOK, *user)
}

func (h *Handler) Logout(ctx *gin.Context) {
	h.setSessionCookie(ctx, "", -1)
	ctx.JSON(http.StatusOK, gin.H{"message": "Logged out successfully"})
}

func (h *Handler) Me(ctx *gin.Context) {
	actor, ok := h.actor(ctx)
	if !ok {
		return
	}

	user, err := h.Users.Get(ctx.Request.Context(), actor.ID)
	if err != nil {
		h.respondError(ctx, internalError("load user", err))
		return
	}

	unread, err := h.Workflow.UnreadCount(ctx.Request.Context(), actor)
	if err != nil {
		h.respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"user":         toUserResponse(*user),
		"unread_count": unread,
	})
}
