package handlers

import (
	"errors"
	"net/http"

	"github.com/collabsphere/collabsphere/internal/config"
	"github.com/collabsphere/collabsphere/internal/services"
	"github.com/collabsphere/collabsphere/internal/store"
	"github.com/collabsphere/collabsphere/internal/types"
	"github.com/collabsphere/collabsphere/internal/utils"
	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// Handler holds the dependencies shared by every route.
type Handler struct {
	DB       *gorm.DB
	Workflow *services.Workflow
	Users    *store.UserStore
	Hub      *NotificationHub
	Config   config.Config
	Log      *logrus.Logger
}

func statusFor(kind services.Kind) int {
	switch kind {
	case services.KindValidation:
		return http.StatusBadRequest
	case services.KindUnauthorized:
		return http.StatusUnauthorized
	case services.KindForbidden:
		return http.StatusForbidden
	case services.KindNotFound:
		return http.StatusNotFound
	case services.KindInvalidState, services.KindAlreadyProcessed, services.KindDuplicateApplication:
		return http.StatusConflict
	case services.KindDeadlineExpired:
		return http.StatusGone
	default:
		return http.StatusInternalServerError
	}
}

// respondError writes {"error", "kind"}. Storage failures are logged and
// hidden behind a generic message.
func (h *Handler) respondError(ctx *gin.Context, err error) {
	kind := services.KindOf(err)
	status := statusFor(kind)

	message := err.Error()
	var svcErr *services.Error
	if errors.As(err, &svcErr) {
		message = svcErr.Message
	}

	if kind == services.KindStorage {
		_ = ctx.Error(err)
		h.Log.WithFields(logrus.Fields{
			"request_id": ctx.GetString(types.ContextRequestIDKey),
			"path":       ctx.FullPath(),
		}).WithError(err).Error("Request failed")
		message = "Internal server error"
	}

	ctx.JSON(status, gin.H{"error": message, "kind": kind})
}

// bindJSON decodes the body and reports binding failures as validation errors.
func (h *Handler) bindJSON(ctx *gin.Context, dst interface{}) bool {
	if err := ctx.ShouldBindJSON(dst); err != nil {
		var fieldErrs validator.ValidationErrors
		if errors.As(err, &fieldErrs) {
			h.respondError(ctx, services.ValidationFailed(err))
		} else {
			h.respondError(ctx, &services.Error{Kind: services.KindValidation, Message: "Invalid request body"})
		}
		return false
	}
	return true
}

func (h *Handler) actor(ctx *gin.Context) (services.Actor, bool) {
	actor, err := utils.GetActor(ctx)
	if err != nil {
		h.respondError(ctx, &services.Error{Kind: services.KindUnauthorized, Message: "User not authenticated"})
		return services.Actor{}, false
	}
	return actor, true
}

func (h *Handler) uintParam(ctx *gin.Context, name string) (uint, bool) {
	id, err := utils.GetUintParam(ctx, name)
	if err != nil {
		h.respondError(ctx, &services.Error{Kind: services.KindValidation, Message: err.Error()})
		return 0, false
	}
	return id, true
}

func internalError(op string, err error) error {
	return &services.Error{Kind: services.KindStorage, Message: op, Err: err}
}
