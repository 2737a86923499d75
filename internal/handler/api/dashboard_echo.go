package api

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	models "MacroBoard/internal/domain/models"
	imetrics "MacroBoard/internal/service/metrics"
	"MacroBoard/internal/usecase"
	xhttp "MacroBoard/pkg/http"
	xlogger "MacroBoard/pkg/logger"

	"github.com/labstack/echo/v4"
)

const contentTypeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// DashboardEchoHandler serves the dashboard render and its export.
type DashboardEchoHandler struct {
	logger  *xlogger.Logger
	builder *usecase.DashboardBuilder
}

func NewDashboardEchoHandler(logger *xlogger.Logger, builder *usecase.DashboardBuilder) *DashboardEchoHandler {
	return &DashboardEchoHandler{logger: logger, builder: builder}
}

func (h *DashboardEchoHandler) RegisterRoutes(e *echo.Echo) {
	imetrics.Register()
	g := e.Group("/api")
	g.GET("/dashboard", h.Dashboard)
	g.GET("/export", h.Export)
}

// Dashboard runs a full render and returns the view model. ?force=true
// bypasses the fetch-result cache.
func (h *DashboardEchoHandler) Dashboard(c echo.Context) error {
	start := time.Now()
	req := &models.DashboardRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}

	d, err := h.render(c, req.Force)
	if err != nil {
		return h.renderError(c, err)
	}
	imetrics.RenderLatency.WithLabelValues("dashboard").Observe(time.Since(start).Seconds())

	c.Response().Header().Set(echo.HeaderCacheControl, "private, max-age=60")
	return xhttp.SuccessResponse(c, d)
}

// Export runs a render and streams it as a two-sheet workbook.
func (h *DashboardEchoHandler) Export(c echo.Context) error {
	start := time.Now()
	req := &models.ExportRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}

	d, err := h.render(c, false)
	if err != nil {
		return h.renderError(c, err)
	}

	blob, err := usecase.ExportWorkbook(d)
	if err != nil {
		h.logger.Error("export failed", xlogger.Error(err))
		imetrics.RenderErrors.WithLabelValues("export").Inc()
		return xhttp.InternalServerErrorResponse(c)
	}
	imetrics.RenderLatency.WithLabelValues("export").Observe(time.Since(start).Seconds())

	name := req.Filename
	if name == "" {
		name = fmt.Sprintf("macro_dashboard_%s.xlsx", time.Now().Format("20060102"))
	}
	c.Response().Header().Set(echo.HeaderContentDisposition,
		fmt.Sprintf(`attachment; filename=%q`, name))
	return c.Blob(http.StatusOK, contentTypeXLSX, blob)
}

func (h *DashboardEchoHandler) render(c echo.Context, force bool) (*models.Dashboard, error) {
	ctx := c.Request().Context()
	if force {
		if err := h.builder.Invalidate(ctx); err != nil {
			h.logger.Warn("cache invalidate failed", xlogger.Error(err))
		}
	}
	return h.builder.Build(ctx)
}

func (h *DashboardEchoHandler) renderError(c echo.Context, err error) error {
	imetrics.RenderErrors.WithLabelValues("dashboard").Inc()
	if errors.Is(err, usecase.ErrNoData) {
		h.logger.Error("render failed: no data", xlogger.Error(err))
		appErr := xhttp.NewAppError("ERR_NO_DATA", "",
			"No data could be loaded. Please refresh or try again.",
			http.StatusServiceUnavailable).WithError(err)
		return xhttp.AppErrorResponse(c, appErr)
	}
	h.logger.Error("render failed", xlogger.Error(err))
	return xhttp.InternalServerErrorResponse(c)
}
