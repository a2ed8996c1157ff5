package public

import (
	"strings"

	"github.com/maisdocacau/storefront/internal/http/response"

	"github.com/gin-gonic/gin"
)

// ListDeliveryZones 配送区域表
func (h *Handler) ListDeliveryZones(c *gin.Context) {
	response.Success(c, h.DeliveryZoneService.Zones())
}

// ListNeighborhoods 全部可配送街区
func (h *Handler) ListNeighborhoods(c *gin.Context) {
	response.Success(c, h.DeliveryZoneService.ListAllNeighborhoods())
}

// LookupNeighborhood 查询街区运费与预计时间
func (h *Handler) LookupNeighborhood(c *gin.Context) {
	neighborhood := strings.TrimSpace(c.Query("neighborhood"))
	if neighborhood == "" {
		respondError(c, response.CodeBadRequest, "error.bad_request", nil)
		return
	}
	zones := h.DeliveryZoneService
	fee := zones.FeeFor(neighborhood)
	response.Success(c, gin.H{
		"neighborhood":   neighborhood,
		"serviceable":    zones.IsServiceable(neighborhood),
		"zone":           zones.ZoneNameFor(neighborhood),
		"fee":            fee,
		"fee_formatted":  fee.Format(),
		"estimated_time": zones.ETAFor(neighborhood),
	})
}
