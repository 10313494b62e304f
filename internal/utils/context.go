package utils

import (
	"fmt"
	"strconv"

	"github.com/collabsphere/collabsphere/internal/middleware"
	"github.com/collabsphere/collabsphere/internal/services"
	"github.com/collabsphere/collabsphere/internal/types"
	"github.com/gin-gonic/gin"
)

func GetCurrentUser(ctx *gin.Context) (middleware.AuthenticatedUser, error) {
	user, exists := ctx.Get(types.ContextUserKey)

	if !exists {
		return middleware.AuthenticatedUser{}, fmt.Errorf("User not authenticated")
	}

	authenticatedUser, ok := user.(middleware.AuthenticatedUser)

	if !ok {
		return middleware.AuthenticatedUser{}, fmt.Errorf("Invalid user type in context")
	}

	return authenticatedUser, nil
}

func GetCurrentUserID(ctx *gin.Context) (uint, error) {
	user, err := GetCurrentUser(ctx)

	if err != nil {
		return 0, err
	}

	return user.ID, nil
}

// GetActor returns the caller as a workflow actor.
func GetActor(ctx *gin.Context) (services.Actor, error) {
	user, err := GetCurrentUser(ctx)
	if err != nil {
		return services.Actor{}, err
	}
	return services.Actor{ID: user.ID, IsAdmin: user.IsAdmin}, nil
}

// GetUintParam parses a positive numeric path parameter.
func GetUintParam(ctx *gin.Context, name string) (uint, error) {
	raw := ctx.Param(name)
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || id == 0 {
		return 0, fmt.Errorf("Invalid %s", name)
	}
	return uint(id), nil
}
