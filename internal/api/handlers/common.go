package handlers

import (
	"context"
	"errors"
	"io"
	"log"
	"net/http"

	"budget-impact/internal/api/models"
	"budget-impact/internal/config"
	"budget-impact/internal/enhanced"
	"budget-impact/internal/model"
	"budget-impact/internal/params"
	"budget-impact/internal/report"
	"budget-impact/internal/runs"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
)

// Env is shared by every run handler: server-wide defaults and the run cache.
type Env struct {
	Defaults *config.Config
	Cache    *runs.Cache
}

func respondError(c *gin.Context, status int, code string, err error) {
	c.JSON(status, models.ErrorResponse{
		Error: models.ErrorDetail{
			Code:    code,
			Message: err.Error(),
		},
	})
}

// respondCalcError maps engine errors onto HTTP statuses.
func respondCalcError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, params.ErrUnknownParameter):
		respondError(c, http.StatusBadRequest, "UNKNOWN_PARAMETER", err)
	case errors.Is(err, model.ErrYearOutOfRange):
		respondError(c, http.StatusBadRequest, "INVALID_HORIZON", err)
	case errors.Is(err, enhanced.ErrIterationsOutOfRange):
		respondError(c, http.StatusBadRequest, "INVALID_ITERATIONS", err)
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		respondError(c, http.StatusRequestTimeout, "CANCELLED", err)
	default:
		log.Printf("API: calculation failed: %v", err)
		respondError(c, http.StatusInternalServerError, "CALCULATION_ERROR", err)
	}
}

type runRequest interface {
	Run() models.RunRequest
}

// bindRun decodes the body into req and builds inputs from its embedded
// RunRequest. It writes the error response itself and reports false on failure.
func (e *Env) bindRun(c *gin.Context, req runRequest) (*model.ExtendedInputs, bool) {
	err := c.ShouldBindJSON(req)
	if errors.Is(err, io.EOF) {
		// Empty body: defaults only, but required fields still apply.
		err = binding.Validator.ValidateStruct(req)
	}
	if err != nil {
		respondError(c, http.StatusBadRequest, "INVALID_REQUEST", err)
		return nil, false
	}
	in, err := e.buildInputs(req.Run())
	if err != nil {
		respondError(c, http.StatusBadRequest, "INVALID_CONFIG", err)
		return nil, false
	}
	return in, true
}

// buildInputs layers a request over the server defaults. A request country
// replaces any country file from the defaults.
func (e *Env) buildInputs(req models.RunRequest) (*model.ExtendedInputs, error) {
	var cfg config.Config
	if e.Defaults != nil {
		cfg = *e.Defaults
	}
	if req.Country != "" {
		cfg.Country = req.Country
		cfg.CountryFile = ""
		cfg.CountryOverride = model.CountryConfig{}
	}
	if req.Scenario != "" {
		cfg.Scenario = req.Scenario
	}
	if req.Subgroups != nil {
		cfg.Subgroups = req.Subgroups
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	in, err := cfg.Inputs()
	if err != nil {
		return nil, err
	}
	if err := config.ApplyOverrides(in, req.Overrides); err != nil {
		return nil, err
	}
	return in, nil
}

// store caches a result and writes the standard run envelope.
func (e *Env) store(c *gin.Context, kind string, in *model.ExtendedInputs, summary map[string]any, result any) {
	id := e.Cache.Put(kind, result)
	var warnings []string
	if in != nil {
		warnings = in.Validate()
	}
	if summary != nil {
		summary = report.RoundSummary(summary, 2)
	}
	c.JSON(http.StatusOK, models.RunResponse{
		ID:       id,
		Kind:     kind,
		Summary:  summary,
		Warnings: warnings,
		Result:   result,
	})
}

// GetRun handles GET /api/v1/runs/:id
func (e *Env) GetRun(c *gin.Context) {
	id := c.Param("id")
	entry, ok := e.Cache.Get(id)
	if !ok {
		respondError(c, http.StatusNotFound, "RUN_NOT_FOUND", errors.New("run "+id+" not found or expired"))
		return
	}
	c.JSON(http.StatusOK, entry)
}
