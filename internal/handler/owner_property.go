package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/havenlist/estate-api/internal/middleware"
	"github.com/havenlist/estate-api/internal/repository"
	"github.com/havenlist/estate-api/internal/utils"
)

// OwnerPropertyHandler serves the write side for listing owners: create,
// update, delete, and document attachments.
type OwnerPropertyHandler struct {
	Properties *repository.PropertyRepo
	Documents  *repository.DocumentRepo
}

func NewOwnerPropertyHandler(p *repository.PropertyRepo, d *repository.DocumentRepo) *OwnerPropertyHandler {
	return &OwnerPropertyHandler{Properties: p, Documents: d}
}

type propertyReq struct {
	Details  json.RawMessage `json:"details"`
	Location json.RawMessage `json:"location"`
	Pricing  json.RawMessage `json:"pricing"`
	Media    json.RawMessage `json:"media"`
}

type documentReq struct {
	Kind     string `json:"kind"`
	FileName string `json:"fileName"`
	FileURL  string `json:"fileUrl"`
}

// Create inserts a new listing for the authenticated user.  Listings start
// inactive until an admin review activates them.
func (h *OwnerPropertyHandler) Create(c echo.Context) error {
	uid := middleware.SubjectID(c, middleware.CtxUserID)

	var req propertyReq
	if err := c.Bind(&req); err != nil {
		return utils.Fail(c, http.StatusBadRequest, "create failed", utils.CodeValidation, "invalid body")
	}
	if len(req.Details) == 0 {
		return utils.Fail(c, http.StatusBadRequest, "create failed", utils.CodeValidation, "details required")
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	id, err := h.Properties.Create(ctx, uid, req.Details, req.Location, req.Pricing, req.Media)
	if err != nil {
		return utils.Fail(c, http.StatusInternalServerError, "create failed", utils.CodeInternal, "")
	}

	return utils.OK(c, http.StatusCreated, "property created", echo.Map{"id": id})
}

// Update replaces the listing documents.  Only the owner may update.
func (h *OwnerPropertyHandler) Update(c echo.Context) error {
	uid := middleware.SubjectID(c, middleware.CtxUserID)
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return utils.Fail(c, http.StatusBadRequest, "update failed", utils.CodeValidation, "invalid property id")
	}

	var req propertyReq
	if err := c.Bind(&req); err != nil {
		return utils.Fail(c, http.StatusBadRequest, "update failed", utils.CodeValidation, "invalid body")
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	switch err := h.Properties.Update(ctx, id, uid, req.Details, req.Location, req.Pricing, req.Media); {
	case errors.Is(err, repository.ErrNotFound):
		return utils.Fail(c, http.StatusNotFound, "update failed", utils.CodeNotFound, "")
	case errors.Is(err, repository.ErrNotOwner):
		return utils.Fail(c, http.StatusForbidden, "update failed", utils.CodeForbidden, "not the owner")
	case err != nil:
		return utils.Fail(c, http.StatusInternalServerError, "update failed", utils.CodeInternal, "")
	}

	return utils.OK(c, http.StatusOK, "property updated", nil)
}

// Delete removes the listing.  Only the owner may delete.
func (h *OwnerPropertyHandler) Delete(c echo.Context) error {
	uid := middleware.SubjectID(c, middleware.CtxUserID)
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return utils.Fail(c, http.StatusBadRequest, "delete failed", utils.CodeValidation, "invalid property id")
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	switch err := h.Properties.Delete(ctx, id, uid); {
	case errors.Is(err, repository.ErrNotFound):
		return utils.Fail(c, http.StatusNotFound, "delete failed", utils.CodeNotFound, "")
	case errors.Is(err, repository.ErrNotOwner):
		return utils.Fail(c, http.StatusForbidden, "delete failed", utils.CodeForbidden, "not the owner")
	case err != nil:
		return utils.Fail(c, http.StatusInternalServerError, "delete failed", utils.CodeInternal, "")
	}

	return utils.OK(c, http.StatusOK, "property deleted", nil)
}

// AttachDocument records document metadata for an owned listing.  The file
// bytes themselves are handled by external object storage.
func (h *OwnerPropertyHandler) AttachDocument(c echo.Context) error {
	uid := middleware.SubjectID(c, middleware.CtxUserID)
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return utils.Fail(c, http.StatusBadRequest, "attach failed", utils.CodeValidation, "invalid property id")
	}

	var req documentReq
	if err := c.Bind(&req); err != nil {
		return utils.Fail(c, http.StatusBadRequest, "attach failed", utils.CodeValidation, "invalid body")
	}
	if strings.TrimSpace(req.FileURL) == "" {
		return utils.Fail(c, http.StatusBadRequest, "attach failed", utils.CodeValidation, "fileUrl required")
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	p, err := h.Properties.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return utils.Fail(c, http.StatusNotFound, "attach failed", utils.CodeNotFound, "")
		}
		return utils.Fail(c, http.StatusInternalServerError, "attach failed", utils.CodeInternal, "")
	}
	if p.OwnerID != uid {
		return utils.Fail(c, http.StatusForbidden, "attach failed", utils.CodeForbidden, "not the owner")
	}

	docID, err := h.Documents.Create(ctx, id, strings.TrimSpace(req.Kind), strings.TrimSpace(req.FileName), strings.TrimSpace(req.FileURL))
	if err != nil {
		return utils.Fail(c, http.StatusInternalServerError, "attach failed", utils.CodeInternal, "")
	}

	return utils.OK(c, http.StatusCreated, "document attached", echo.Map{"id": docID})
}

// ListDocuments returns the documents attached to an owned listing.
func (h *OwnerPropertyHandler) ListDocuments(c echo.Context) error {
	uid := middleware.SubjectID(c, middleware.CtxUserID)
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return utils.Fail(c, http.StatusBadRequest, "fetch failed", utils.CodeValidation, "invalid property id")
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	p, err := h.Properties.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return utils.Fail(c, http.StatusNotFound, "fetch failed", utils.CodeNotFound, "")
		}
		return utils.Fail(c, http.StatusInternalServerError, "fetch failed", utils.CodeInternal, "")
	}
	if p.OwnerID != uid {
		return utils.Fail(c, http.StatusForbidden, "fetch failed", utils.CodeForbidden, "not the owner")
	}

	docs, err := h.Documents.ListByProperty(ctx, id)
	if err != nil {
		return utils.Fail(c, http.StatusInternalServerError, "fetch failed", utils.CodeInternal, "")
	}

	views := make([]documentView, 0, len(docs))
	for _, d := range docs {
		views = append(views, documentView{
			ID:        d.ID,
			Kind:      d.Kind,
			FileName:  d.FileName,
			FileURL:   d.FileURL,
			CreatedAt: d.CreatedAt,
		})
	}
	return utils.OK(c, http.StatusOK, "documents fetched", echo.Map{"documents": views})
}

type documentView struct {
	ID        uint64    `json:"id"`
	Kind      string    `json:"kind"`
	FileName  string    `json:"fileName"`
	FileURL   string    `json:"fileUrl"`
	CreatedAt time.Time `json:"createdAt"`
}
