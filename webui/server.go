// Package webui serves the form-based surface: upload a FIT file, adjust
// trimming and step-protocol parameters, and view the fitted threshold
// plot. Every request re-runs the full pipeline from the posted bytes;
// nothing is shared between sessions.
package webui

import (
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"ramptest"
	"ramptest/pipeline"
)

// NewRouter builds the gin engine with all routes registered.
func NewRouter(cfg *Config) *gin.Engine {
	r := gin.New()
	r.Use(Logger(), gin.Recovery())
	r.MaxMultipartMemory = cfg.MaxUploadBytes

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/", func(c *gin.Context) {
		c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(indexHTML))
	})

	h := &analyzeHandler{maxUploadBytes: cfg.MaxUploadBytes}
	r.POST("/analyze", h.plot)
	r.POST("/threshold", h.threshold)

	return r
}

type analyzeHandler struct {
	maxUploadBytes int64
}

// plot responds with the rendered PNG.
func (h *analyzeHandler) plot(c *gin.Context) {
	res, ok := h.run(c)
	if !ok {
		return
	}
	c.Data(http.StatusOK, "image/png", res.Files["plot.png"])
}

// threshold responds with the fitted threshold as JSON.
func (h *analyzeHandler) threshold(c *gin.Context) {
	res, ok := h.run(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, res.Threshold)
}

func (h *analyzeHandler) run(c *gin.Context) (*pipeline.BytesResult, bool) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing file upload"})
		return nil, false
	}
	if fileHeader.Size > h.maxUploadBytes {
		c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": "uploaded file is too large"})
		return nil, false
	}

	f, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "cannot read uploaded file"})
		return nil, false
	}
	defer f.Close()
	data, err := io.ReadAll(io.LimitReader(f, h.maxUploadBytes))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "cannot read uploaded file"})
		return nil, false
	}

	opts := pipeline.BytesOptions{
		SourceFileName: fileHeader.Filename,
		FitData:        data,
		Format:         "csv",
		UseDeviceSpeed: boolField(c, "use_device_speed"),
		AllData:        boolField(c, "all_data"),
		Title:          c.PostForm("title"),
	}
	fields := []struct {
		name string
		dst  *float64
	}{
		{"start_minutes", &opts.StartMinutes},
		{"end_minutes", &opts.EndMinutes},
		{"speed_min", &opts.SpeedMinKPH},
		{"speed_step", &opts.SpeedStepKPH},
		{"time_step", &opts.TimeStepMinutes},
		{"text_size", &opts.TextSize},
	}
	for _, fld := range fields {
		v, err := floatField(c, fld.name)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid value for " + fld.name})
			return nil, false
		}
		*fld.dst = v
	}

	res, err := pipeline.RunBytes(opts)
	if err != nil {
		c.JSON(statusForError(err), gin.H{"error": err.Error()})
		return nil, false
	}
	return res, true
}

// statusForError maps the analysis error taxonomy to response codes. Every
// taxonomy error is a user-correctable input problem.
func statusForError(err error) int {
	var (
		missing *ramptest.MissingColumnError
		empty   *ramptest.EmptyWindowError
		noFit   *ramptest.FitNotFoundError
	)
	if errors.As(err, &missing) || errors.As(err, &empty) || errors.As(err, &noFit) {
		return http.StatusUnprocessableEntity
	}
	return http.StatusBadRequest
}

func floatField(c *gin.Context, name string) (float64, error) {
	raw := c.PostForm(name)
	if raw == "" {
		return 0, nil
	}
	return strconv.ParseFloat(raw, 64)
}

func boolField(c *gin.Context, name string) bool {
	switch c.PostForm(name) {
	case "1", "true", "on", "yes":
		return true
	}
	return false
}
