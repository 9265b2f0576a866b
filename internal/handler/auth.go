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
	"github.com/havenlist/estate-api/internal/middleware"
	"github.com/havenlist/estate-api/internal/repository"
	"github.com/havenlist/estate-api/internal/utils"
)

// AuthHandler bundles dependencies for end-user auth endpoints.
type AuthHandler struct {
	Cfg   config.Config
	Codec *auth.Codec
	Users *repository.UserRepo
}

func NewAuthHandler(cfg config.Config, codec *auth.Codec, u *repository.UserRepo) *AuthHandler {
	return &AuthHandler{Cfg: cfg, Codec: codec, Users: u}
}

// ----- DTOs -----

type registerReq struct {
	FullName string `json:"fullName"`
	Email    string `json:"email"`
	Password string `json:"password"`
}
type loginReq struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type userPart struct {
	ID       uint64 `json:"id"`
	Email    string `json:"email"`
	FullName string `json:"fullName"`
}

// Register creates a user and returns a credential immediately.  The
// credential is the session; nothing else is stored server-side.
func (h *AuthHandler) Register(c echo.Context) error {
	var req registerReq
	if err := c.Bind(&req); err != nil {
		return utils.Fail(c, http.StatusBadRequest, "registration failed", utils.CodeValidation, "invalid body")
	}
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	if req.Email == "" || req.Password == "" {
		return utils.Fail(c, http.StatusBadRequest, "registration failed", utils.CodeValidation, "email/password required")
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	uid, err := h.Users.Create(ctx, req.Email, req.Password, strings.TrimSpace(req.FullName), h.Cfg.BcryptCost)
	if err != nil {
		if errors.Is(err, repository.ErrEmailExists) {
			return utils.Fail(c, http.StatusConflict, "registration failed", utils.CodeValidation, "email already exists")
		}
		return utils.Fail(c, http.StatusInternalServerError, "registration failed", utils.CodeInternal, "")
	}

	token, err := h.Codec.Issue(uid, auth.KindUser, nil)
	if err != nil {
		return utils.Fail(c, http.StatusInternalServerError, "registration failed", utils.CodeInternal, "")
	}

	return utils.OK(c, http.StatusCreated, "user registered", echo.Map{
		"token": token,
		"user":  userPart{ID: uid, Email: req.Email, FullName: strings.TrimSpace(req.FullName)},
	})
}

// Login verifies credentials and returns a fresh token.
func (h *AuthHandler) Login(c echo.Context) error {
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

	u, err := h.Users.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return utils.Fail(c, http.StatusUnauthorized, "login failed", utils.CodeUnauthorized, "invalid credentials")
		}
		return utils.Fail(c, http.StatusInternalServerError, "login failed", utils.CodeInternal, "")
	}
	if !utils.VerifyPassword(u.PasswordHash, req.Password) {
		return utils.Fail(c, http.StatusUnauthorized, "login failed", utils.CodeUnauthorized, "invalid credentials")
	}

	token, err := h.Codec.Issue(u.ID, auth.KindUser, nil)
	if err != nil {
		return utils.Fail(c, http.StatusInternalServerError, "login failed", utils.CodeInternal, "")
	}

	return utils.OK(c, http.StatusOK, "login successful", echo.Map{
		"token": token,
		"user":  userPart{ID: u.ID, Email: u.Email, FullName: u.FullName},
	})
}

// Me is a simple protected endpoint returning the authenticated subject.
func (h *AuthHandler) Me(c echo.Context) error {
	return utils.OK(c, http.StatusOK, "authenticated", echo.Map{
		"userId": middleware.SubjectID(c, middleware.CtxUserID),
	})
}
