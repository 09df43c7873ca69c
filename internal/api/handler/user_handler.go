package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/chronoworks/timetrack-system/internal/api/metrics"
	"github.com/chronoworks/timetrack-system/internal/core/ports"
)

// UserHandler handles HTTP requests for the account directory.
type UserHandler struct {
	service ports.UserService
}

func NewUserHandler(service ports.UserService) *UserHandler {
	return &UserHandler{service: service}
}

// Create handles POST /v1/users.
//
// @Summary      Create a user
// @Tags         users
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createUserRequest  true  "User details"
// @Success      201   {object}  userResponse
// @Failure      400   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Failure      409   {object}  errorResponse
// @Router       /v1/users [post]
func (h *UserHandler) Create(c echo.Context) error {
	principal, err := ctxPrincipal(c)
	if err != nil {
		return err
	}

	var req createUserRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	user, err := h.service.Create(c.Request().Context(), ports.CreateUserInput{
		Email:                      req.Email,
		Password:                   req.Password,
		Name:                       req.Name,
		Role:                       req.Role,
		PreferredWorkingHourPerDay: req.PreferredWorkingHourPerDay,
	}, principal)
	if err != nil {
		return err
	}

	metrics.UsersCreatedTotal.WithLabelValues(user.Role).Inc()

	return c.JSON(http.StatusCreated, toUserResponse(user))
}

// List handles GET /v1/users with optional exact-match filters.
//
// @Summary      List users
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Param        name       query     string  false  "Exact name filter"
// @Param        email      query     string  false  "Exact email filter"
// @Param        role       query     string  false  "Exact role filter"
// @Param        page       query     int     false  "Page number"       default(1)
// @Param        perPage    query     int     false  "Items per page"    default(30)
// @Param        sortBy     query     string  false  "Sort field"        Enums(name, email, role, createdAt)
// @Param        sortOrder  query     int     false  "1 asc, -1 desc"
// @Success      200        {object}  listUsersResponse
// @Failure      400        {object}  errorResponse
// @Failure      403        {object}  errorResponse
// @Router       /v1/users [get]
func (h *UserHandler) List(c echo.Context) error {
	page, err := parsePageParams(c, userSortSpec)
	if err != nil {
		return err
	}

	result, err := h.service.List(c.Request().Context(), ports.ListUsersInput{
		Name:  c.QueryParam("name"),
		Email: c.QueryParam("email"),
		Role:  c.QueryParam("role"),
		Page:  page,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, toListUsersResponse(result))
}

// Search handles GET /v1/users/search. An empty query matches everyone.
//
// @Summary      Search users by name or email
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Param        query      query     string  false  "Case-insensitive substring"
// @Param        page       query     int     false  "Page number"     default(1)
// @Param        perPage    query     int     false  "Items per page"  default(30)
// @Param        sortBy     query     string  false  "Sort field"      Enums(name, email, role, createdAt)
// @Param        sortOrder  query     int     false  "1 asc, -1 desc"
// @Success      200        {object}  listUsersResponse
// @Failure      400        {object}  errorResponse
// @Failure      403        {object}  errorResponse
// @Router       /v1/users/search [get]
func (h *UserHandler) Search(c echo.Context) error {
	page, err := parsePageParams(c, userSortSpec)
	if err != nil {
		return err
	}

	result, err := h.service.Search(c.Request().Context(), c.QueryParam("query"), page)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, toListUsersResponse(result))
}

// Profile handles GET /v1/users/profile for the authenticated account.
//
// @Summary      Get own profile
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  userResponse
// @Failure      401  {object}  errorResponse
// @Router       /v1/users/profile [get]
func (h *UserHandler) Profile(c echo.Context) error {
	principal, err := ctxPrincipal(c)
	if err != nil {
		return err
	}

	user, err := h.service.Get(c.Request().Context(), principal.ID)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, toUserResponse(user))
}

// Get handles GET /v1/users/:userId.
//
// @Summary      Get a user by id
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Param        userId  path      string  true  "User id"
// @Success      200     {object}  userResponse
// @Failure      403     {object}  errorResponse
// @Failure      404     {object}  errorResponse
// @Router       /v1/users/{userId} [get]
func (h *UserHandler) Get(c echo.Context) error {
	user, err := h.service.Get(c.Request().Context(), c.Param("userId"))
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, toUserResponse(user))
}

// Update handles PATCH /v1/users/:userId with a partial payload.
//
// @Summary      Update a user
// @Tags         users
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        userId  path      string             true  "User id"
// @Param        body    body      updateUserRequest  true  "Fields to change"
// @Success      200     {object}  userResponse
// @Failure      400     {object}  errorResponse
// @Failure      403     {object}  errorResponse
// @Failure      404     {object}  errorResponse
// @Failure      409     {object}  errorResponse
// @Router       /v1/users/{userId} [patch]
func (h *UserHandler) Update(c echo.Context) error {
	principal, err := ctxPrincipal(c)
	if err != nil {
		return err
	}

	var req updateUserRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	user, err := h.service.Update(c.Request().Context(), c.Param("userId"), ports.UpdateUserInput{
		Email:                      req.Email,
		Password:                   req.Password,
		Name:                       req.Name,
		Role:                       req.Role,
		PreferredWorkingHourPerDay: req.PreferredWorkingHourPerDay,
	}, principal)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, toUserResponse(user))
}

// Delete handles DELETE /v1/users/:userId.
//
// @Summary      Delete a user
// @Tags         users
// @Security     BearerAuth
// @Param        userId  path  string  true  "User id"
// @Success      204
// @Failure      403  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /v1/users/{userId} [delete]
func (h *UserHandler) Delete(c echo.Context) error {
	if err := h.service.Delete(c.Request().Context(), c.Param("userId")); err != nil {
		return err
	}

	return c.NoContent(http.StatusNoContent)
}
