package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/thec1rclehost123-cmd/thec1rcle-sub002/internal/model"
	"github.com/thec1rclehost123-cmd/thec1rcle-sub002/internal/service"
)

type ScanHandler struct {
	service service.ScanService
}

func NewScanHandler(service service.ScanService) *ScanHandler {
	return &ScanHandler{service: service}
}

func (h *ScanHandler) RegisterRoutes(r *gin.Engine) {
	router := r.Group("/api/v1")
	{
		router.POST("scan", h.Scan)
	}
}

func (h *ScanHandler) Scan(c *gin.Context) {
	var req model.ScanRequest
	if err := BindJson(c, &req); err != nil {
		return
	}
	req.ScannerID = c.GetHeader(HeaderScannerID)

	result, err := h.service.Scan(c, req)
	if err != nil {
		handleError(c, err, "Scan")
		return
	}

	respond(c, http.StatusOK, result)
}
