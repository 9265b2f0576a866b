package handler

import (
	"context"
	"errors"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/havenlist/estate-api/internal/middleware"
	"github.com/havenlist/estate-api/internal/queue"
	"github.com/havenlist/estate-api/internal/repository"
	queue_publisher "github.com/havenlist/estate-api/internal/service"
	"github.com/havenlist/estate-api/internal/utils"
)

// LikeHandler records a user's liked state toward a property.
type LikeHandler struct {
	Properties *repository.PropertyRepo
	Likes      *repository.LikeRepo
}

func NewLikeHandler(p *repository.PropertyRepo, l *repository.LikeRepo) *LikeHandler {
	return &LikeHandler{Properties: p, Likes: l}
}

type likeReq struct {
	Liked   bool   `json:"liked"`
	LikedID uint64 `json:"likedId,omitempty"`
}

// Like inserts or updates the user's like state.  When likedId is supplied
// the existing row is updated; otherwise a new event row is inserted.
// Current-state uniqueness per (user, property) is this lookup-then-write
// convention, not a storage constraint.  A like event is published for
// downstream consumers; publish failures never fail the request.
func (h *LikeHandler) Like(c echo.Context) error {
	uid := middleware.SubjectID(c, middleware.CtxUserID)
	propertyID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return utils.Fail(c, http.StatusBadRequest, "like failed", utils.CodeValidation, "invalid property id")
	}

	var req likeReq
	if err := c.Bind(&req); err != nil {
		return utils.Fail(c, http.StatusBadRequest, "like failed", utils.CodeValidation, "invalid body")
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if _, err := h.Properties.GetByID(ctx, propertyID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return utils.Fail(c, http.StatusNotFound, "like failed", utils.CodeNotFound, "")
		}
		return utils.Fail(c, http.StatusInternalServerError, "like failed", utils.CodeInternal, "")
	}

	likeID := req.LikedID
	if likeID != 0 {
		ev, err := h.Likes.GetByID(ctx, likeID)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return utils.Fail(c, http.StatusNotFound, "like failed", utils.CodeNotFound, "like not found")
			}
			return utils.Fail(c, http.StatusInternalServerError, "like failed", utils.CodeInternal, "")
		}
		if ev.UserID != uid || ev.PropertyID != propertyID {
			return utils.Fail(c, http.StatusForbidden, "like failed", utils.CodeForbidden, "")
		}
		if err := h.Likes.UpdateLiked(ctx, likeID, req.Liked); err != nil {
			return utils.Fail(c, http.StatusInternalServerError, "like failed", utils.CodeInternal, "")
		}
	} else {
		likeID, err = h.Likes.Insert(ctx, uid, propertyID, req.Liked)
		if err != nil {
			return utils.Fail(c, http.StatusInternalServerError, "like failed", utils.CodeInternal, "")
		}
	}

	event := queue.EngagementEvent{
		Type:       queue.EventPropertyLiked,
		PropertyID: propertyID,
		LikeID:     likeID,
		UserID:     uid,
		Liked:      req.Liked,
		OccurredAt: time.Now().UTC().Format(time.RFC3339),
	}
	go func() {
		pubCtx, pubCancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer pubCancel()
		if err := queue_publisher.PublishEngagement(pubCtx, event); err != nil {
			log.Printf("like: publish engagement event failed: %v", err)
		}
	}()

	return utils.OK(c, http.StatusOK, "like recorded", echo.Map{
		"likedId": likeID,
		"liked":   req.Liked,
	})
}
