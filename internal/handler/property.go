package handler

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/havenlist/estate-api/internal/engagement"
	"github.com/havenlist/estate-api/internal/model"
	"github.com/havenlist/estate-api/internal/query"
	"github.com/havenlist/estate-api/internal/repository"
	"github.com/havenlist/estate-api/internal/utils"
)

// PropertyHandler serves the read side of the marketplace: search,
// listing detail, and the derived engagement numbers.
type PropertyHandler struct {
	Properties *repository.PropertyRepo
	Likes      *repository.LikeRepo
}

func NewPropertyHandler(p *repository.PropertyRepo, l *repository.LikeRepo) *PropertyHandler {
	return &PropertyHandler{Properties: p, Likes: l}
}

// propertyView is the display payload for one listing.  The engagement
// numbers are derived per request; the stored row is never mutated.
type propertyView struct {
	ID           uint64         `json:"id"`
	OwnerID      uint64         `json:"ownerId"`
	Active       bool           `json:"active"`
	Details      map[string]any `json:"details"`
	Location     map[string]any `json:"location"`
	Pricing      map[string]any `json:"pricing"`
	Media        map[string]any `json:"media"`
	ReviewNote   string         `json:"reviewNote,omitempty"`
	LikedCount   int            `json:"likedCount"`
	LikedAtMonth string         `json:"likedAtMonth,omitempty"`
	CreatedAt    time.Time      `json:"createdAt"`
}

func newPropertyView(p model.Property, events []model.LikeEvent) propertyView {
	eng := engagement.Derive(events)
	v := propertyView{
		ID:           p.ID,
		OwnerID:      p.OwnerID,
		Active:       p.IsActive,
		Details:      model.Doc(p.Details),
		Location:     model.Doc(p.Location),
		Pricing:      model.Doc(p.Pricing),
		Media:        model.Doc(p.Media),
		LikedCount:   eng.LikedCount,
		LikedAtMonth: eng.LikedAtMonth,
		CreatedAt:    p.CreatedAt,
	}
	if p.ReviewNote.Valid {
		v.ReviewNote = p.ReviewNote.String
	}
	return v
}

// buildFilter assembles the search predicate from the request's optional
// query parameters.  Absent parameters add no clause.
func buildFilter(c echo.Context) query.Filter {
	return query.NewPropertyFilter().
		TitleContains(c.QueryParam("title")).
		ListingTypeEquals(c.QueryParam("listingType")).
		PropertyTypeEquals(c.QueryParam("propertyType")).
		ActiveFlag(c.QueryParam("active")).
		Search(c.QueryParam("search")).
		Build()
}

// List runs the search engine: filter, paginate, derive engagement, and
// assemble meta from the pre-pagination total.
func (h *PropertyHandler) List(c echo.Context) error {
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

// Get returns one listing with its engagement view.
func (h *PropertyHandler) Get(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return utils.Fail(c, http.StatusBadRequest, "invalid property id", utils.CodeValidation, "")
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	p, err := h.Properties.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return utils.Fail(c, http.StatusNotFound, "property not found", utils.CodeNotFound, "")
		}
		return utils.Fail(c, http.StatusInternalServerError, "fetch failed", utils.CodeInternal, "")
	}
	events, err := h.Likes.ListByProperty(ctx, id)
	if err != nil {
		return utils.Fail(c, http.StatusInternalServerError, "fetch failed", utils.CodeInternal, "")
	}

	return utils.OK(c, http.StatusOK, "property fetched", echo.Map{
		"property": newPropertyView(p, events),
	})
}
