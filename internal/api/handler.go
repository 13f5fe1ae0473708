package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/guttosm/orderpulse/internal/domain/dto"
	"github.com/guttosm/orderpulse/internal/middleware"
	"github.com/guttosm/orderpulse/internal/query"
	"github.com/guttosm/orderpulse/internal/service"
	"github.com/guttosm/orderpulse/internal/storage"
)

const cachedSuffix = " (cached)"

// Handler provides HTTP handlers for the restaurant, order and analytics endpoints.
//
// Responsibilities:
//   - Bind and validate request bodies and query strings
//   - Reject unknown restaurant ids before any analytic runs
//   - Translate validated input into filter params for the service layer
//   - Return the standard success / error envelopes
type Handler struct {
	analytics   service.AnalyticsService
	orders      service.OrderService
	restaurants service.RestaurantService
}

// NewHandler constructs a new Handler instance.
//
// Parameters:
//   - analytics (service.AnalyticsService): cached trends and rankings.
//   - orders (service.OrderService): paginated order listing.
//   - restaurants (service.RestaurantService): restaurant lookup, listing and existence checks.
//
// Returns:
//   - *Handler: A handler ready to be registered with the router.
func NewHandler(analytics service.AnalyticsService, orders service.OrderService, restaurants service.RestaurantService) *Handler {
	RegisterValidators()
	return &Handler{analytics: analytics, orders: orders, restaurants: restaurants}
}

// ListRestaurants godoc
// @Summary      List restaurants
// @Description  Paginated restaurants with order count and order amount sum, optionally scoped to a date range
// @Tags         restaurants
// @Produce      json
// @Param        search    query     string  false  "Matches name or location (case-insensitive)"
// @Param        sort      query     string  false  "name|location|orders|order_amount|created_at"  default(name)
// @Param        dir       query     string  false  "asc|desc"  default(asc)
// @Param        from      query     string  false  "YYYY-MM-DD"
// @Param        to        query     string  false  "YYYY-MM-DD"
// @Param        per_page  query     int     false  "1..100"  default(10)
// @Param        page      query     int     false  "1-based page"  default(1)
// @Success      200       {object}  dto.PaginatedResponse[models.RestaurantSummary]
// @Failure      422       {object}  dto.ErrorResponse
// @Failure      500       {object}  dto.ErrorResponse
// @Router       /api/restaurants [get]
func (h *Handler) ListRestaurants(c *gin.Context) {
	var q dto.RestaurantsQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		renderBindError(c, err)
		return
	}

	from, to := parseDate(q.From), parseDate(q.To)
	page, err := h.restaurants.ListRestaurants(c.Request.Context(), service.RestaurantListing{
		Search: q.Search,
		Sort:   q.Sort,
		Dir:    q.Dir,
		From:   from,
		To:     to,
		Page:   query.NewPage(q.Page, q.PerPage),
	})
	if err != nil {
		middleware.AbortWithError(c, http.StatusInternalServerError, "Failed to fetch restaurants", err)
		return
	}
	c.JSON(http.StatusOK, dto.NewPaginatedResponse("Restaurants fetched successfully", page))
}

// GetRestaurant godoc
// @Summary      Get restaurant
// @Tags         restaurants
// @Produce      json
// @Param        id   path      int  true  "Restaurant id"
// @Success      200  {object}  dto.Response[models.Restaurant]
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/restaurants/{id} [get]
func (h *Handler) GetRestaurant(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		middleware.AbortWithError(c, http.StatusBadRequest, "Invalid restaurant id", err)
		return
	}

	rest, err := h.restaurants.GetRestaurant(c.Request.Context(), id)
	if errors.Is(err, storage.ErrNotFound) {
		middleware.AbortWithError(c, http.StatusNotFound, "Restaurant not found", nil)
		return
	}
	if err != nil {
		middleware.AbortWithError(c, http.StatusInternalServerError, "Failed to fetch restaurant", err)
		return
	}
	c.JSON(http.StatusOK, dto.NewResponse("Restaurant fetched successfully", rest))
}

// ListOrders godoc
// @Summary      List orders of a restaurant
// @Description  Filtered orders, newest first, paginated. Never cached.
// @Tags         orders
// @Accept       json
// @Produce      json
// @Param        request  body      dto.OrdersRequest  true  "Filters"
// @Success      200      {object}  dto.PaginatedResponse[models.Order]
// @Failure      400      {object}  dto.ErrorResponse
// @Failure      422      {object}  dto.ErrorResponse
// @Failure      500      {object}  dto.ErrorResponse
// @Router       /api/orders [post]
func (h *Handler) ListOrders(c *gin.Context) {
	var req dto.OrdersRequest
	if !bindJSON(c, &req) {
		return
	}
	ctx := c.Request.Context()
	if !h.checkRestaurantsExist(ctx, c, []int64{req.RestaurantID}, func(int) string { return "restaurant_id" }) {
		return
	}

	page, err := h.orders.ListOrders(ctx, req.RestaurantID, filterParams(req.FilterFields), query.NewPage(deref(req.Page), deref(req.PerPage)))
	if err != nil {
		middleware.AbortWithError(c, http.StatusInternalServerError, "Failed to fetch orders", err)
		return
	}
	c.JSON(http.StatusOK, dto.NewPaginatedResponse("Orders retrieved successfully", page))
}

// RestaurantTrends godoc
// @Summary      Restaurant order trends
// @Description  Daily and hourly order count, amount sum and average per restaurant. Cached for 60 seconds.
// @Tags         analytics
// @Accept       json
// @Produce      json
// @Param        request  body      dto.TrendsRequest  false  "Filters"
// @Success      200      {object}  dto.Response[[]models.RestaurantTrends]
// @Failure      400      {object}  dto.ErrorResponse
// @Failure      422      {object}  dto.ErrorResponse
// @Failure      500      {object}  dto.ErrorResponse
// @Router       /api/analytics/restaurant-trends [post]
func (h *Handler) RestaurantTrends(c *gin.Context) {
	var req dto.TrendsRequest
	if !bindJSON(c, &req) {
		return
	}
	ctx := c.Request.Context()
	if !h.checkRestaurantsExist(ctx, c, req.RestaurantIDs, listKey("restaurant_ids")) {
		return
	}

	trends, cached, err := h.analytics.RestaurantTrends(ctx, query.NewScope(req.RestaurantIDs), filterParams(req.FilterFields))
	if err != nil {
		middleware.AbortWithError(c, http.StatusInternalServerError, "Failed to compute restaurant trends", err)
		return
	}
	c.JSON(http.StatusOK, dto.NewResponse(withCached("Restaurants trends fetched successfully", cached), trends))
}

// TopRestaurants godoc
// @Summary      Top restaurants by revenue
// @Description  The three restaurants with the highest order amount sum (ties by id). Cached for 60 seconds.
// @Tags         analytics
// @Accept       json
// @Produce      json
// @Param        request  body      dto.TopRestaurantsRequest  false  "Filters"
// @Success      200      {object}  dto.Response[[]models.RestaurantSummary]
// @Failure      400      {object}  dto.ErrorResponse
// @Failure      422      {object}  dto.ErrorResponse
// @Failure      500      {object}  dto.ErrorResponse
// @Router       /api/analytics/top-restaurants [post]
func (h *Handler) TopRestaurants(c *gin.Context) {
	var req dto.TopRestaurantsRequest
	if !bindJSON(c, &req) {
		return
	}
	ctx := c.Request.Context()
	if !h.checkRestaurantsExist(ctx, c, req.RestaurantIDs, listKey("restaurant_ids")) {
		return
	}

	params := filterParams(dto.FilterFields{From: req.From, To: req.To, MinAmount: req.MinAmount, MaxAmount: req.MaxAmount})
	top, cached, err := h.analytics.TopRestaurants(ctx, query.NewScope(req.RestaurantIDs), params)
	if err != nil {
		middleware.AbortWithError(c, http.StatusInternalServerError, "Failed to compute top restaurants", err)
		return
	}
	c.JSON(http.StatusOK, dto.NewResponse(withCached("Top restaurants fetched successfully", cached), top))
}

// checkRestaurantsExist renders a 422 naming every position whose id is unknown.
func (h *Handler) checkRestaurantsExist(ctx context.Context, c *gin.Context, ids []int64, key func(i int) string) bool {
	if len(ids) == 0 {
		return true
	}
	missing, err := h.restaurants.MissingRestaurants(ctx, ids)
	if err != nil {
		middleware.AbortWithError(c, http.StatusInternalServerError, "Failed to validate restaurants", err)
		return false
	}
	if len(missing) == 0 {
		return true
	}
	unknown := make(map[int64]bool, len(missing))
	for _, id := range missing {
		unknown[id] = true
	}
	fields := map[string][]string{}
	for i, id := range ids {
		if unknown[id] {
			k := key(i)
			fields[k] = append(fields[k], fmt.Sprintf("The selected %s is invalid.", k))
		}
	}
	c.AbortWithStatusJSON(http.StatusUnprocessableEntity, dto.NewValidationErrorResponse(fields))
	return false
}

func listKey(name string) func(int) string {
	return func(i int) string { return name + "." + strconv.Itoa(i) }
}

// bindJSON decodes and validates the body; an empty body is validated as an
// empty request. It renders the error response and returns false on failure.
func bindJSON(c *gin.Context, req any) bool {
	err := c.ShouldBindJSON(req)
	if err != nil && isEmptyBody(err) {
		err = binding.Validator.ValidateStruct(req)
	}
	if err != nil {
		renderBindError(c, err)
		return false
	}
	return true
}

func renderBindError(c *gin.Context, err error) {
	if fields := bindError(err); fields != nil {
		_ = c.Error(err).SetType(gin.ErrorTypeBind)
		c.AbortWithStatusJSON(http.StatusUnprocessableEntity, dto.NewValidationErrorResponse(fields))
		return
	}
	middleware.AbortWithError(c, http.StatusBadRequest, "Malformed request", err)
}

// filterParams converts validated request filters into query params.
func filterParams(f dto.FilterFields) query.Params {
	return query.Params{
		From:      parseDate(f.From),
		To:        parseDate(f.To),
		MinAmount: f.MinAmount.DecimalPtr(),
		MaxAmount: f.MaxAmount.DecimalPtr(),
		HourFrom:  deref(f.HourFrom),
		HourTo:    deref(f.HourTo),
	}
}

func parseDate(s *string) *time.Time {
	if s == nil || *s == "" {
		return nil
	}
	t, err := time.Parse(query.DateLayout, *s)
	if err != nil {
		return nil
	}
	return &t
}

func deref[T any](p *T) T {
	var zero T
	if p == nil {
		return zero
	}
	return *p
}

func withCached(message string, cached bool) string {
	if cached {
		return message + cachedSuffix
	}
	return message
}
