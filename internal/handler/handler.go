package handler

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"linkshort/internal/domain"
	"linkshort/internal/service"
	"linkshort/internal/validation"
)

const (
	defaultLimit  = 10
	defaultOffset = 0
)

var (
	errInvalidBody   = map[string]string{"error": "invalid request body"}
	errInvalidLimit  = map[string]string{"error": "limit must be an integer"}
	errInvalidOffset = map[string]string{"error": "offset must be an integer"}
	errLinkNotFound  = map[string]string{"error": "link not found"}
	errLinkExpired   = map[string]string{"error": "link has expired"}
	errCreateFailed  = map[string]string{"error": "failed to create link"}
	errListFailed    = map[string]string{"error": "failed to list links"}
	errResolveFailed = map[string]string{"error": "failed to resolve link"}
	errDeleteFailed  = map[string]string{"error": "failed to delete link"}
	respHealthOK     = map[string]string{"status": "ok"}
)

type Handler struct {
	links  LinkService
	logger *slog.Logger
}

func New(links LinkService, logger *slog.Logger) *Handler {
	return &Handler{
		links:  links,
		logger: logger,
	}
}

func (h *Handler) Register(e *echo.Echo) {
	e.GET("/health", h.Health)
	e.POST("/links", h.CreateLink)
	e.GET("/links", h.ListLinks)
	e.DELETE("/links/:id", h.DeleteLink)
	e.GET("/r/:slug", h.Redirect)
}

func (h *Handler) Health(c echo.Context) error {
	return c.JSON(http.StatusOK, respHealthOK)
}

func (h *Handler) CreateLink(c echo.Context) error {
	var req domain.CreateLinkRequest
	if err := c.Bind(&req); err != nil {
		h.logger.Error("failed to bind request", slog.String("error", err.Error()))
		return c.JSON(http.StatusBadRequest, errInvalidBody)
	}

	resp, err := h.links.CreateLink(c.Request().Context(), req)
	if err != nil {
		if isValidationError(err) {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
		}
		h.logger.Error("failed to create link", slog.String("error", err.Error()))
		return c.JSON(http.StatusInternalServerError, errCreateFailed)
	}

	return c.JSON(http.StatusCreated, resp)
}

func (h *Handler) Redirect(c echo.Context) error {
	slug := c.Param("slug")

	originalURL, err := h.links.ResolveSlug(c.Request().Context(), slug)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrLinkNotFound):
			return c.JSON(http.StatusNotFound, errLinkNotFound)
		case errors.Is(err, service.ErrLinkExpired):
			return c.JSON(http.StatusGone, errLinkExpired)
		}
		h.logger.Error("failed to resolve slug",
			slog.String("slug", slug),
			slog.String("error", err.Error()))
		return c.JSON(http.StatusInternalServerError, errResolveFailed)
	}

	return c.Redirect(http.StatusFound, originalURL)
}

func (h *Handler) ListLinks(c echo.Context) error {
	limit, err := queryInt(c, "limit", defaultLimit)
	if err != nil {
		return c.JSON(http.StatusBadRequest, errInvalidLimit)
	}
	offset, err := queryInt(c, "offset", defaultOffset)
	if err != nil {
		return c.JSON(http.StatusBadRequest, errInvalidOffset)
	}

	resp, err := h.links.ListLinks(c.Request().Context(), limit, offset)
	if err != nil {
		if isValidationError(err) {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
		}
		h.logger.Error("failed to list links", slog.String("error", err.Error()))
		return c.JSON(http.StatusInternalServerError, errListFailed)
	}

	return c.JSON(http.StatusOK, resp)
}

func (h *Handler) DeleteLink(c echo.Context) error {
	id := c.Param("id")

	if err := h.links.DeleteLink(c.Request().Context(), id); err != nil {
		if errors.Is(err, service.ErrLinkNotFound) {
			return c.JSON(http.StatusNotFound, errLinkNotFound)
		}
		h.logger.Error("failed to delete link",
			slog.String("id", id),
			slog.String("error", err.Error()))
		return c.JSON(http.StatusInternalServerError, errDeleteFailed)
	}

	return c.NoContent(http.StatusNoContent)
}

func queryInt(c echo.Context, name string, fallback int) (int, error) {
	raw := c.QueryParam(name)
	if raw == "" {
		return fallback, nil
	}
	return strconv.Atoi(raw)
}

func isValidationError(err error) bool {
	return errors.Is(err, validation.ErrEmptyURL) ||
		errors.Is(err, validation.ErrInvalidURLFormat) ||
		errors.Is(err, validation.ErrUnsafeProtocol) ||
		errors.Is(err, validation.ErrURLTooLong) ||
		errors.Is(err, validation.ErrPrivateHost) ||
		errors.Is(err, validation.ErrExpiryNotFuture) ||
		errors.Is(err, validation.ErrLimitOutOfRange) ||
		errors.Is(err, validation.ErrOffsetNegative)
}
