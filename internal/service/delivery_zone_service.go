package service

import (
	"fmt"
	"strings"

	"github.com/maisdocacau/storefront/internal/config"
	"github.com/maisdocacau/storefront/internal/models"
)

// DeliveryZoneService 配送区域查询表，只读
type DeliveryZoneService struct {
	zones []models.DeliveryZone
}

// NewDeliveryZoneService 创建配送区域表，zones 为空时使用默认圣保罗区域
func NewDeliveryZoneService(zones []models.DeliveryZone) *DeliveryZoneService {
	if len(zones) == 0 {
		zones = models.DefaultDeliveryZones()
	}
	copied := make([]models.DeliveryZone, len(zones))
	for i, zone := range zones {
		copied[i] = zone
		copied[i].Neighborhoods = append([]string(nil), zone.Neighborhoods...)
	}
	return &DeliveryZoneService{zones: copied}
}

// DeliveryZonesFromConfig 将配置转换为区域表，未配置时返回 nil
func DeliveryZonesFromConfig(cfg config.DeliveryConfig) ([]models.DeliveryZone, error) {
	if len(cfg.Zones) == 0 {
		return nil, nil
	}
	zones := make([]models.DeliveryZone, 0, len(cfg.Zones))
	for _, item := range cfg.Zones {
		fee, err := models.ParseMoney(strings.TrimSpace(item.Fee))
		if err != nil {
			return nil, fmt.Errorf("delivery zone %q fee invalid: %w", item.Name, err)
		}
		if fee.IsNegative() {
			return nil, fmt.Errorf("delivery zone %q fee must not be negative", item.Name)
		}
		neighborhoods := make([]string, 0, len(item.Neighborhoods))
		for _, name := range item.Neighborhoods {
			if name = strings.TrimSpace(name); name != "" {
				neighborhoods = append(neighborhoods, name)
			}
		}
		zones = append(zones, models.DeliveryZone{
			Name:          strings.TrimSpace(item.Name),
			Neighborhoods: neighborhoods,
			Fee:           fee,
			EstimatedTime: strings.TrimSpace(item.EstimatedTime),
		})
	}
	return zones, nil
}

// Lookup 查找街区所属区域
func (s *DeliveryZoneService) Lookup(neighborhood string) (models.DeliveryZone, bool) {
	needle := strings.TrimSpace(neighborhood)
	if needle == "" {
		return models.DeliveryZone{}, false
	}
	for _, zone := range s.zones {
		for _, candidate := range zone.Neighborhoods {
			if strings.EqualFold(candidate, needle) {
				return zone, true
			}
		}
	}
	return models.DeliveryZone{}, false
}

// IsServiceable 是否在配送范围
func (s *DeliveryZoneService) IsServiceable(neighborhood string) bool {
	_, ok := s.Lookup(neighborhood)
	return ok
}

// FeeFor 配送费，不在范围返回 0
func (s *DeliveryZoneService) FeeFor(neighborhood string) models.Money {
	zone, ok := s.Lookup(neighborhood)
	if !ok {
		return models.Money{}
	}
	return zone.Fee
}

// ETAFor 预计送达时间，不在范围返回空串
func (s *DeliveryZoneService) ETAFor(neighborhood string) string {
	zone, _ := s.Lookup(neighborhood)
	return zone.EstimatedTime
}

// ZoneNameFor 区域名称，不在范围返回空串
func (s *DeliveryZoneService) ZoneNameFor(neighborhood string) string {
	zone, _ := s.Lookup(neighborhood)
	return zone.Name
}

// ListAllNeighborhoods 按区域表顺序展开全部街区
func (s *DeliveryZoneService) ListAllNeighborhoods() []string {
	out := make([]string, 0, len(s.zones)*8)
	for _, zone := range s.zones {
		out = append(out, zone.Neighborhoods...)
	}
	return out
}

// Zones 返回区域表副本
func (s *DeliveryZoneService) Zones() []models.DeliveryZone {
	out := make([]models.DeliveryZone, len(s.zones))
	for i, zone := range s.zones {
		out[i] = zone
		out[i].Neighborhoods = append([]string(nil), zone.Neighborhoods...)
	}
	return out
}
