// Package api provides the REST API server for fuse2tone
package api

import (
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/mustangtools/fuse2tone/pkg/convert"
	"github.com/mustangtools/fuse2tone/pkg/registry"
	"github.com/mustangtools/fuse2tone/pkg/tone"
)

// @title fuse2tone API
// @version 1.0
// @description API for converting Fender FUSE presets to the Tone JSON format
// @host localhost:8080
// @BasePath /api/v1

// StartServer starts the API server on the specified port
func StartServer(port int) error {
	// One converter per server; the gap table accumulates schema
	// discoveries across requests.
	conv := convert.New(registry.Builtin(), convert.NewGapTable())

	return newRouter(conv).Run(fmt.Sprintf(":%d", port))
}

func newRouter(conv *convert.Converter) *gin.Engine {
	r := gin.Default()

	// CORS middleware
	r.Use(corsMiddleware())

	// Health check
	r.GET("/health", healthCheck)

	// API v1 routes
	v1 := r.Group("/api/v1")
	{
		v1.GET("/health", healthCheck)
		v1.POST("/convert/preset", handleConvertPreset(conv))
		v1.POST("/extract", handleExtract)
		v1.GET("/modules", handleListModules(conv))
		v1.GET("/gaps", handleListGaps(conv))
	}

	// Swagger docs
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	return r
}

func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}

// healthCheck godoc
// @Summary Health check endpoint
// @Description Returns the health status of the API
// @Tags health
// @Produce json
// @Success 200 {object} map[string]string
// @Router /health [get]
func healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"service": "fuse2tone",
	})
}

// handleConvertPreset godoc
// @Summary Convert a FUSE preset to Tone JSON
// @Description Upload a .fuse XML preset and receive the canonical Tone JSON document plus conversion diagnostics
// @Tags convert
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "FUSE preset file to convert"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} map[string]string
// @Router /api/v1/convert/preset [post]
func handleConvertPreset(conv *convert.Converter) gin.HandlerFunc {
	return func(c *gin.Context) {
		data, ok := readUpload(c)
		if !ok {
			return
		}

		result, err := conv.ConvertPreset(data)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		response := gin.H{
			"name":        result.Name,
			"diagnostics": result.Diagnostics,
			"complete":    result.Complete(),
		}
		if result.Complete() {
			doc, err := result.ToneDocument("mustang-lt")
			if err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
				return
			}
			response["preset"] = doc
		}

		display := make(map[string]map[string]string)
		for i, slot := range result.Slots {
			if slot != nil {
				display[string(registry.SlotOrder[i])] = slot.Display
			}
		}
		response["display"] = display

		c.JSON(http.StatusOK, response)
	}
}

// handleExtract godoc
// @Summary Extract canonical Tone snippets from a strings dump
// @Description Upload the printable-strings dump of a Tone executable and receive deduplicated canonical snippets with an occurrence report
// @Tags extract
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "Line-oriented strings dump"
// @Param family query string false "Product family (default: mustang)"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} map[string]string
// @Router /api/v1/extract [post]
func handleExtract(c *gin.Context) {
	data, ok := readUpload(c)
	if !ok {
		return
	}

	family := c.DefaultQuery("family", "mustang")
	result := tone.Scan(strings.Split(string(data), "\n"), family)

	snippets := make([]gin.H, 0, len(result.Snippets))
	for _, s := range result.Sorted() {
		snippets = append(snippets, gin.H{
			"filename":    s.Filename,
			"role":        s.Role,
			"name":        s.Name,
			"fingerprint": s.Fingerprint,
			"lines":       s.Lines,
		})
	}

	c.JSON(http.StatusOK, gin.H{
		"family":      family,
		"snippets":    snippets,
		"report":      result.Report(),
		"diagnostics": result.Diagnostics,
	})
}

// handleListModules godoc
// @Summary List mapped modules
// @Description Returns every module descriptor the registry can convert
// @Tags info
// @Produce json
// @Success 200 {object} map[string][]map[string]interface{}
// @Router /api/v1/modules [get]
func handleListModules(conv *convert.Converter) gin.HandlerFunc {
	return func(c *gin.Context) {
		modules := make([]gin.H, 0)
		for _, d := range conv.Registry().All() {
			modules = append(modules, gin.H{
				"category":    string(d.Category),
				"id":          d.NativeID,
				"fenderId":    d.FenderID,
				"displayName": d.DisplayName,
				"params":      len(d.Slots),
			})
		}
		c.JSON(http.StatusOK, gin.H{"modules": modules})
	}
}

// handleListGaps godoc
// @Summary List unmapped parameter sightings
// @Description Returns the schema-discovery table of parameters seen without a mapped slot
// @Tags info
// @Produce json
// @Success 200 {object} map[string][]map[string]interface{}
// @Router /api/v1/gaps [get]
func handleListGaps(conv *convert.Converter) gin.HandlerFunc {
	return func(c *gin.Context) {
		gaps := make([]gin.H, 0)
		for _, k := range conv.Gaps().Keys() {
			gaps = append(gaps, gin.H{
				"category": string(k.Category),
				"position": k.Position,
				"value":    k.Raw,
				"count":    conv.Gaps().Count(k.Category, k.Position, k.Raw),
			})
		}
		c.JSON(http.StatusOK, gin.H{"gaps": gaps})
	}
}

func readUpload(c *gin.Context) ([]byte, bool) {
	file, _, err := c.Request.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No file uploaded"})
		return nil, false
	}
	defer func() { _ = file.Close() }()

	data, err := io.ReadAll(file)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Failed to read file"})
		return nil, false
	}
	return data, true
}
