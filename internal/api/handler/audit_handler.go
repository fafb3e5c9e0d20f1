package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
)

type AuditHandler struct {
	audit AuditLog
}

func NewAuditHandler(audit AuditLog) *AuditHandler {
	return &AuditHandler{audit: audit}
}

// Recent handles GET /admin/audit.
//
// @Summary      Recent console activity
// @Tags         audit
// @Produce      json
// @Param        actor  query  string  false  "Only this staff member's actions"
// @Param        limit  query  int     false  "Max entries (default 50, max 500)"
// @Success      200  {object}  auditResponse
// @Router       /admin/audit [get]
func (h *AuditHandler) Recent(c echo.Context) error {
	var q auditQuery
	if err := echo.QueryParamsBinder(c).String("actor", &q.Actor).Int("limit", &q.Limit).BindError(); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid audit query")
	}
	if err := c.Validate(&q); err != nil {
		return err
	}
	entries, err := h.audit.Recent(c.Request().Context(), q.Actor, q.Limit)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, auditResponse{Entries: entries, At: time.Now().UTC()})
}
