package handler

import (
	"context"
	"errors"
	"log"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/havenlist/estate-api/internal/middleware"
	"github.com/havenlist/estate-api/internal/query"
	"github.com/havenlist/estate-api/internal/queue"
	"github.com/havenlist/estate-api/internal/repository"
	queue_publisher "github.com/havenlist/estate-api/internal/service"
	"github.com/havenlist/estate-api/internal/utils"
)

// AdminPropertyHandler serves the admin console surface: the same search
// engine as the public side (inactive rows included unless filtered) plus
// the review workflow.
type AdminPropertyHandler struct {
	Properties *repository.PropertyRepo
	Likes      *repository.LikeRepo
}

func NewAdminPropertyHandler(p *repository.PropertyRepo, l *repository.LikeRepo) *AdminPropertyHandler {
	return &AdminPropertyHandler{Properties: p, Likes: l}
}

type reviewReq struct {
	Active     bool   `json:"active"`
	ReviewNote string `json:"reviewNote"`
}

// List runs the shared search engine for the admin console.
func (h *AdminPropertyHandler) List(c echo.Context) error {
	f := buildFilter(c)
	pg := query.ParsePage(c.QueryParam("page"), c.QueryParam("limit"))

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	rows, total, err := h.Properties.Search(ctx, f, pg)
	if err != nil {
		return utils.Fail(c, http.StatusInternalServerError, "search failed", utils.CodeInternal, "")
	}

	ids := make([]uint64, len(rows))
	for i, p := range rows {
		ids[i] = p.ID
	}
	likesByProperty, err := h.Likes.ListByProperties(ctx, ids)
	if err != nil {
		return utils.Fail(c, http.StatusInternalServerError, "search failed", utils.CodeInternal, "")
	}

	views := make([]propertyView, 0, len(rows))
	for _, p := range rows {
		views = append(views, newPropertyView(p, likesByProperty[p.ID]))
	}

	return utils.OK(c, http.StatusOK, "properties fetched", echo.Map{
		"properties": views,
		"meta":       query.NewMeta(total, pg),
	})
}

// Review sets a property's visibility and review note, and publishes a
// review event for downstream consumers.
func (h *AdminPropertyHandler) Review(c echo.Context) error {
	adminID := middleware.SubjectID(c, middleware.CtxAdminID)
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return utils.Fail(c, http.StatusBadRequest, "review failed", utils.CodeValidation, "invalid property id")
	}

	var req reviewReq
	if err := c.Bind(&req); err != nil {
		return utils.Fail(c, http.StatusBadRequest, "review failed", utils.CodeValidation, "invalid body")
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if err := h.Properties.SetReview(ctx, id, req.Active, strings.TrimSpace(req.ReviewNote)); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return utils.Fail(c, http.StatusNotFound, "review failed", utils.CodeNotFound, "")
		}
		return utils.Fail(c, http.StatusInternalServerError, "review failed", utils.CodeInternal, "")
	}

	event := queue.EngagementEvent{
		Type:       queue.EventPropertyReviewed,
		PropertyID: id,
		AdminID:    adminID,
		Active:     req.Active,
		ReviewNote: strings.TrimSpace(req.ReviewNote),
		OccurredAt: time.Now().UTC().Format(time.RFC3339),
	}
	go func() {
		pubCtx, pubCancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer pubCancel()
		if err := queue_publisher.PublishEngagement(pubCtx, event); err != nil {
			log.Printf("review: publish engagement event failed: %v", err)
		}
	}()

	return utils.OK(c, http.StatusOK, "property reviewed", echo.Map{
		"id":     id,
		"active": req.Active,
	})
}
