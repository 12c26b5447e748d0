package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"QuantLab/internal/domain/models"
	"QuantLab/internal/middleware"
	"QuantLab/internal/repository"
	icache "QuantLab/internal/service/cache"
	ametrics "QuantLab/internal/service/metrics"
	"QuantLab/internal/service/ratelimit"
	"QuantLab/internal/usecase"
	xhttp "QuantLab/pkg/http"
	xlogger "QuantLab/pkg/logger"
	xutil "QuantLab/pkg/util"
)

// LabHandler exposes the computation service over HTTP.
type LabHandler struct {
	lab       *usecase.Lab
	coalescer *middleware.Coalescer
	cache     icache.BytesCache
	rl        *ratelimit.Limiter
	logger    *xlogger.Logger
}

func NewLabHandler(lab *usecase.Lab, coalescer *middleware.Coalescer, logger *xlogger.Logger) *LabHandler {
	ametrics.Register()
	return &LabHandler{
		lab:       lab,
		coalescer: coalescer,
		rl:        ratelimit.New(),
		logger:    logger,
	}
}

// SetCache injects a response cache for the read-only endpoints.
func (h *LabHandler) SetCache(c icache.BytesCache) { h.cache = c }

func (h *LabHandler) RegisterRoutes(e *echo.Echo) {
	e.GET("/healthz", h.Health)

	g := e.Group("/api")
	g.POST("/price", h.Price)
	g.POST("/simulate/gbm", h.SimulateGBM)
	g.POST("/simulate/cir", h.SimulateCIR)
	g.POST("/simulate/jump", h.SimulateJump)
	g.POST("/simulate/portfolio", h.SimulatePortfolio)
	g.POST("/risk", h.Risk)
	g.POST("/vol/forecast", h.VolForecast)
	g.POST("/allocate", h.Allocate)
	g.POST("/signals/pairs", h.Pairs)
	g.POST("/dist/tails", h.Tails)
	g.GET("/symbols", h.Symbols)
	g.GET("/series", h.Series)
}

func (h *LabHandler) Health(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

// observe wraps an endpoint body with latency and error accounting.
func (h *LabHandler) observe(endpoint string, fn func() error) error {
	start := time.Now()
	err := fn()
	ametrics.APILatency.WithLabelValues(endpoint).Observe(time.Since(start).Seconds())
	if err != nil {
		ametrics.APIErrors.WithLabelValues(endpoint).Inc()
	}
	return err
}

// fail logs the error and picks the response shape: unknown symbols map to
// 404, everything else to 500.
func (h *LabHandler) fail(c echo.Context, endpoint string, err error) error {
	h.logger.Error(endpoint+" usecase error", xlogger.Error(err))
	if errors.Is(err, repository.ErrUnknownSymbol) {
		return xhttp.AppErrorResponse(c, xhttp.NewAppError("ERR_NOT_FOUND", "symbol", err.Error(), http.StatusNotFound))
	}
	return xhttp.AppErrorResponse(c, err)
}

// coKey builds the coalescing key from the endpoint and full request body.
func coKey(endpoint string, req interface{}) string {
	raw, err := json.Marshal(req)
	if err != nil {
		return endpoint
	}
	return endpoint + ":" + string(raw)
}

func (h *LabHandler) Price(c echo.Context) error {
	return h.observe("price", func() error {
		req := &models.PriceRequest{}
		if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
			return xhttp.BadRequestResponse(c, verr)
		}
		res, err := h.lab.Price(c.Request().Context(), *req)
		if err != nil {
			return h.fail(c, "price", err)
		}
		return xhttp.SuccessResponse(c, res)
	})
}

func (h *LabHandler) SimulateGBM(c echo.Context) error {
	return h.observe("simulate_gbm", func() error {
		req := &models.SimulateGBMRequest{}
		if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
			return xhttp.BadRequestResponse(c, verr)
		}
		if !h.rl.Allow(c.RealIP()+":simulate", 10, 5) {
			return c.JSON(http.StatusTooManyRequests, map[string]string{"error": "rate limited"})
		}
		res, err := h.coalescer.Do(c.Request().Context(), coKey("simulate_gbm", req), func() (interface{}, error) {
			return h.lab.SimulateGBM(c.Request().Context(), *req)
		})
		if err != nil {
			return h.fail(c, "gbm", err)
		}
		return xhttp.SuccessResponse(c, res)
	})
}

func (h *LabHandler) SimulateCIR(c echo.Context) error {
	return h.observe("simulate_cir", func() error {
		req := &models.SimulateCIRRequest{}
		if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
			return xhttp.BadRequestResponse(c, verr)
		}
		if !h.rl.Allow(c.RealIP()+":simulate", 10, 5) {
			return c.JSON(http.StatusTooManyRequests, map[string]string{"error": "rate limited"})
		}
		res, err := h.coalescer.Do(c.Request().Context(), coKey("simulate_cir", req), func() (interface{}, error) {
			return h.lab.SimulateCIR(c.Request().Context(), *req)
		})
		if err != nil {
			return h.fail(c, "cir", err)
		}
		return xhttp.SuccessResponse(c, res)
	})
}

func (h *LabHandler) SimulateJump(c echo.Context) error {
	return h.observe("simulate_jump", func() error {
		req := &models.SimulateJumpRequest{}
		if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
			return xhttp.BadRequestResponse(c, verr)
		}
		if !h.rl.Allow(c.RealIP()+":simulate", 10, 5) {
			return c.JSON(http.StatusTooManyRequests, map[string]string{"error": "rate limited"})
		}
		res, err := h.coalescer.Do(c.Request().Context(), coKey("simulate_jump", req), func() (interface{}, error) {
			return h.lab.SimulateJump(c.Request().Context(), *req)
		})
		if err != nil {
			return h.fail(c, "jump", err)
		}
		return xhttp.SuccessResponse(c, res)
	})
}

func (h *LabHandler) SimulatePortfolio(c echo.Context) error {
	return h.observe("simulate_portfolio", func() error {
		req := &models.SimulatePortfolioRequest{}
		if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
			return xhttp.BadRequestResponse(c, verr)
		}
		if !h.rl.Allow(c.RealIP()+":simulate", 10, 5) {
			return c.JSON(http.StatusTooManyRequests, map[string]string{"error": "rate limited"})
		}
		res, err := h.coalescer.Do(c.Request().Context(), coKey("simulate_portfolio", req), func() (interface{}, error) {
			return h.lab.SimulatePortfolio(c.Request().Context(), *req)
		})
		if err != nil {
			return h.fail(c, "portfolio", err)
		}
		return xhttp.SuccessResponse(c, res)
	})
}

func (h *LabHandler) Risk(c echo.Context) error {
	return h.observe("risk", func() error {
		req := &models.RiskRequest{}
		if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
			return xhttp.BadRequestResponse(c, verr)
		}
		res, err := h.lab.Risk(c.Request().Context(), *req)
		if err != nil {
			return h.fail(c, "risk", err)
		}
		return xhttp.SuccessResponse(c, res)
	})
}

func (h *LabHandler) VolForecast(c echo.Context) error {
	return h.observe("vol_forecast", func() error {
		req := &models.VolForecastRequest{}
		if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
			return xhttp.BadRequestResponse(c, verr)
		}
		if !req.StationaryOK() {
			return xhttp.BadRequestResponse(c, []xhttp.ValidationError{{
				Code:    "ERR_NONSTATIONARY",
				Field:   "alpha",
				Message: "alpha+beta must be below 1",
			}})
		}
		res, err := h.lab.VolForecast(c.Request().Context(), *req)
		if err != nil {
			return h.fail(c, "vol", err)
		}
		return xhttp.SuccessResponse(c, res)
	})
}

func (h *LabHandler) Allocate(c echo.Context) error {
	return h.observe("allocate", func() error {
		req := &models.AllocateRequest{}
		if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
			return xhttp.BadRequestResponse(c, verr)
		}
		res, err := h.lab.Allocate(c.Request().Context(), *req)
		if err != nil {
			return h.fail(c, "allocate", err)
		}
		return xhttp.SuccessResponse(c, res)
	})
}

func (h *LabHandler) Pairs(c echo.Context) error {
	return h.observe("pairs", func() error {
		req := &models.PairsRequest{}
		if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
			return xhttp.BadRequestResponse(c, verr)
		}
		res, err := h.lab.Pairs(c.Request().Context(), *req)
		if err != nil {
			return h.fail(c, "pairs", err)
		}
		return xhttp.SuccessResponse(c, res)
	})
}

func (h *LabHandler) Tails(c echo.Context) error {
	return h.observe("tails", func() error {
		req := &models.TailsRequest{}
		if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
			return xhttp.BadRequestResponse(c, verr)
		}
		res, err := h.lab.Tails(c.Request().Context(), *req)
		if err != nil {
			return h.fail(c, "tails", err)
		}
		return xhttp.SuccessResponse(c, res)
	})
}

func (h *LabHandler) Symbols(c echo.Context) error {
	return h.observe("symbols", func() error {
		syms, err := h.lab.Symbols(c.Request().Context())
		if err != nil {
			return h.fail(c, "symbols", err)
		}
		return xhttp.SuccessResponse(c, syms)
	})
}

// Series serves raw history. Responses are small and immutable for a day,
// so they go through the byte cache when one is configured.
func (h *LabHandler) Series(c echo.Context) error {
	return h.observe("series", func() error {
		symbol := c.QueryParam("symbol")
		if symbol == "" {
			return xhttp.BadRequestResponse(c, []xhttp.ValidationError{{
				Code:    "ERR_REQUIRED",
				Field:   "symbol",
				Message: "symbol is required",
			}})
		}
		n := xutil.ParseIntDefault(c.QueryParam("n"), 0)

		cacheKey := "series:" + symbol + ":" + c.QueryParam("n")
		if h.cache != nil {
			if b, ok, err := h.cache.GetBytes(cacheKey); err != nil {
				h.logger.Warn("series cache read failed", xlogger.Error(err))
			} else if ok {
				ametrics.APICacheHits.WithLabelValues("series").Inc()
				return c.JSONBlob(http.StatusOK, b)
			}
		}

		series, err := h.lab.Series(c.Request().Context(), symbol, n)
		if err != nil {
			return h.fail(c, "series", err)
		}

		body, err := json.Marshal(xhttp.APIResponse{
			Status:  http.StatusOK,
			Message: http.StatusText(http.StatusOK),
			Data:    series,
		})
		if err != nil {
			return xhttp.InternalServerErrorResponse(c)
		}
		if h.cache != nil {
			if err := h.cache.SetBytes(cacheKey, body, time.Hour); err != nil {
				h.logger.Warn("series cache write failed", xlogger.Error(err))
			}
		}
		return c.JSONBlob(http.StatusOK, body)
	})
}
