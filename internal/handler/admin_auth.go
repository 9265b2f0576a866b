package handler

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/havenlist/estate-api/internal/auth"
	"github.com/havenlist/estate-api/internal/config"
	"github.com/havenlist/estate-api/internal/repository"
	"github.com/havenlist/estate-api/internal/utils"
)

// AdminAuthHandler bundles dependencies for admin auth endpoints.  Admin
// accounts are provisioned out of band; there is no registration route.
type AdminAuthHandler struct {
	Cfg    config.Config
	Codec  *auth.Codec
	Admins *repository.AdminRepo
}

func NewAdminAuthHandler(cfg config.Config, codec *auth.Codec, a *repository.AdminRepo) *AdminAuthHandler {
	return &AdminAuthHandler{Cfg: cfg, Codec: codec, Admins: a}
}

type adminPart struct {
	ID          uint64   `json:"id"`
	Email       string   `json:"email"`
	Permissions []string `json:"permissions,omitempty"`
}

// Login verifies admin credentials and returns an admin-kind token.  The
// admin's email and permission set travel inside the credential so the
// permission middleware never needs a database round trip.
func (h *AdminAuthHandler) Login(c echo.Context) error {
	var req loginReq
	if err := c.Bind(&req); err != nil {
		return utils.Fail(c, http.StatusBadRequest, "login failed", utils.CodeValidation, "invalid body")
	}
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	if req.Email == "" || req.Password == "" {
		return utils.Fail(c, http.StatusBadRequest, "login failed", utils.CodeValidation, "email/password required")
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	a, err := h.Admins.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return utils.Fail(c, http.StatusUnauthorized, "login failed", utils.CodeUnauthorized, "invalid credentials")
		}
		return utils.Fail(c, http.StatusInternalServerError, "login failed", utils.CodeInternal, "")
	}
	if !utils.VerifyPassword(a.PasswordHash, req.Password) {
		return utils.Fail(c, http.StatusUnauthorized, "login failed", utils.CodeUnauthorized, "invalid credentials")
	}

	extra := map[string]any{"email": a.Email}
	if perms := a.PermissionList(); perms != nil {
		extra["permissions"] = perms
	}
	token, err := h.Codec.Issue(a.ID, auth.KindAdmin, extra)
	if err != nil {
		return utils.Fail(c, http.StatusInternalServerError, "login failed", utils.CodeInternal, "")
	}

	return utils.OK(c, http.StatusOK, "login successful", echo.Map{
		"token": token,
		"admin": adminPart{ID: a.ID, Email: a.Email, Permissions: a.PermissionList()},
	})
}
