package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"

	"PivotBoard/internal/calculator"
	"PivotBoard/internal/collector"
	"PivotBoard/internal/formatter"
	"PivotBoard/internal/model"
	"PivotBoard/internal/strategy"
)

// Analyzer produces the indicator view of one symbol.
type Analyzer interface {
	Analyze(ctx context.Context, symbol, period string) (*collector.Analysis, error)
}

// Handler serves the read-only stock endpoints.
type Handler struct {
	analyzer      Analyzer
	defaultPeriod string
	validate      *validator.Validate
}

func NewHandler(a Analyzer, defaultPeriod string) *Handler {
	if defaultPeriod == "" {
		defaultPeriod = collector.DefaultPeriod
	}
	return &Handler{analyzer: a, defaultPeriod: defaultPeriod, validate: validator.New()}
}

func (h *Handler) RegisterRoutes(e *echo.Echo) {
	e.GET("/healthz", h.Health)

	g := e.Group("/api/v1")
	g.GET("/symbols", h.Symbols)
	g.GET("/stocks/:symbol/levels", h.Levels)
	g.GET("/stocks/:symbol/table", h.Table)
	g.GET("/stocks/:symbol/export.csv", h.Export)
	g.GET("/stocks/:symbol/signals", h.Signals)
}

type stockRequest struct {
	Symbol string `param:"symbol" validate:"required,max=24"`
	Period string `query:"period" validate:"oneof=1mo 3mo 6mo 1y 2y 5y"`
	Limit  int    `query:"limit" validate:"gte=0"`
}

type errorBody struct {
	Error string `json:"error"`
}

type symbolView struct {
	Symbol      string `json:"symbol"`
	Display     string `json:"display"`
	TradingView string `json:"tradingview"`
	CompanyName string `json:"company_name"`
}

type levelsView struct {
	Symbol       string            `json:"symbol"`
	CompanyName  string            `json:"company_name,omitempty"`
	AsOf         string            `json:"as_of"`
	CurrentPrice float64           `json:"current_price"`
	Resistances  []float64         `json:"resistances"`
	Pivot        float64           `json:"pivot"`
	Supports     []float64         `json:"supports"`
	Levels       model.PivotLevels `json:"levels"`
}

type tableView struct {
	Symbol string               `json:"symbol"`
	Period string               `json:"period"`
	Total  int                  `json:"total"`
	Rows   []model.IndicatorRow `json:"rows"`
}

type signalsView struct {
	Symbol      string        `json:"symbol"`
	TradingView string        `json:"tradingview"`
	Summary     model.Summary `json:"summary"`
	Flips       []model.Flip  `json:"flips"`
}

func (h *Handler) Health(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handler) Symbols(c echo.Context) error {
	list := collector.NSESymbols()
	out := make([]symbolView, len(list))
	for i, l := range list {
		out[i] = symbolView{
			Symbol:      l.Symbol,
			Display:     collector.DisplaySymbol(l.Symbol),
			TradingView: collector.TradingViewSymbol(l.Symbol),
			CompanyName: l.CompanyName,
		}
	}
	return c.JSON(http.StatusOK, out)
}

func (h *Handler) Levels(c echo.Context) error {
	a, err := h.analyze(c)
	if err != nil {
		return err
	}
	view := levelsView{
		Symbol:       a.Symbol,
		AsOf:         a.Summary.AsOf.Format("2006-01-02"),
		CurrentPrice: calculator.Round2(a.LastClose()),
		Resistances:  a.Levels.Resistances(),
		Pivot:        a.Levels.Pivot,
		Supports:     a.Levels.Supports(),
		Levels:       a.Levels,
	}
	if a.Info != nil {
		view.CompanyName = a.Info.CompanyName
	}
	return c.JSON(http.StatusOK, view)
}

func (h *Handler) Table(c echo.Context) error {
	req, err := h.bind(c)
	if err != nil {
		return err
	}
	a, err := h.run(c, req)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, tableView{
		Symbol: a.Symbol,
		Period: a.Period,
		Total:  len(a.Table.Rows),
		Rows:   a.Table.Head(req.Limit),
	})
}

func (h *Handler) Export(c echo.Context) error {
	a, err := h.analyze(c)
	if err != nil {
		return err
	}
	name := formatter.ExportFilename(collector.DisplaySymbol(a.Symbol))
	c.Response().Header().Set(echo.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", name))
	c.Response().Header().Set(echo.HeaderContentType, "text/csv; charset=utf-8")
	c.Response().WriteHeader(http.StatusOK)
	return formatter.WriteCSV(c.Response(), a.Table.Rows)
}

func (h *Handler) Signals(c echo.Context) error {
	a, err := h.analyze(c)
	if err != nil {
		return err
	}
	flips := strategy.DetectFlips(a.Rows)
	if flips == nil {
		flips = []model.Flip{}
	}
	return c.JSON(http.StatusOK, signalsView{
		Symbol:      a.Symbol,
		TradingView: collector.TradingViewSymbol(a.Symbol),
		Summary:     a.Summary,
		Flips:       flips,
	})
}

func (h *Handler) analyze(c echo.Context) (*collector.Analysis, error) {
	req, err := h.bind(c)
	if err != nil {
		return nil, err
	}
	return h.run(c, req)
}

func (h *Handler) bind(c echo.Context) (*stockRequest, error) {
	req := &stockRequest{}
	if err := c.Bind(req); err != nil {
		return nil, echo.NewHTTPError(http.StatusBadRequest, "invalid request parameters")
	}
	if req.Period == "" {
		req.Period = h.defaultPeriod
	}
	if err := h.validate.StructCtx(c.Request().Context(), req); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			fe := verrs[0]
			return nil, echo.NewHTTPError(http.StatusBadRequest,
				fmt.Sprintf("%s failed %s validation", fe.Field(), fe.Tag()))
		}
		return nil, echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return req, nil
}

func (h *Handler) run(c echo.Context, req *stockRequest) (*collector.Analysis, error) {
	a, err := h.analyzer.Analyze(c.Request().Context(), req.Symbol, req.Period)
	if err != nil {
		return nil, toHTTPError(c, err)
	}
	return a, nil
}

// toHTTPError maps domain errors to status codes.
func toHTTPError(c echo.Context, err error) *echo.HTTPError {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, collector.ErrInvalidPeriod),
		errors.Is(err, collector.ErrInvalidSymbol),
		errors.Is(err, calculator.ErrInvalidSeries):
		status = http.StatusBadRequest
	case errors.Is(err, collector.ErrNoData):
		status = http.StatusNotFound
	case errors.Is(err, calculator.ErrInsufficientData):
		status = http.StatusUnprocessableEntity
	case errors.Is(err, collector.ErrFetch):
		status = http.StatusBadGateway
	}
	if status >= http.StatusInternalServerError {
		log.Error().Err(err).Str("path", c.Path()).Msg("request failed")
	}
	return echo.NewHTTPError(status, err.Error()).SetInternal(err)
}
