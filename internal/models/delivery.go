package models

import (
	"database/sql/driver"
	"encoding/json"
)

// DeliveryZone 配送区域：一组街区共享同一运费与预计送达时间
type DeliveryZone struct {
	Name          string   `json:"name"`
	Neighborhoods []string `json:"neighborhoods"`
	Fee           Money    `json:"fee"`
	EstimatedTime string   `json:"estimated_time"`
}

// DefaultDeliveryZones 圣保罗配送区域表
func DefaultDeliveryZones() []DeliveryZone {
	return []DeliveryZone{
		{
			Name:          "Zona Central",
			Neighborhoods: []string{"Sé", "República", "Santa Cecília", "Consolação", "Bela Vista", "Liberdade", "Cambuci", "Bom Retiro"},
			Fee:           MustMoney("12.90"),
			EstimatedTime: "30-45 min",
		},
		{
			Name:          "Zona Oeste",
			Neighborhoods: []string{"Pinheiros", "Alto de Pinheiros", "Jardim Paulista", "Itaim Bibi", "Perdizes", "Vila Madalena", "Lapa", "Butantã"},
			Fee:           MustMoney("14.90"),
			EstimatedTime: "40-55 min",
		},
		{
			Name:          "Zona Sul",
			Neighborhoods: []string{"Vila Mariana", "Moema", "Ipiranga", "Saúde", "Campo Belo", "Brooklin", "Jabaquara", "Santo Amaro"},
			Fee:           MustMoney("16.90"),
			EstimatedTime: "45-60 min",
		},
		{
			Name:          "Zona Leste",
			Neighborhoods: []string{"Tatuapé", "Mooca", "Belém", "Penha", "Vila Formosa", "Carrão", "Vila Prudente", "Anália Franco"},
			Fee:           MustMoney("18.90"),
			EstimatedTime: "50-65 min",
		},
		{
			Name:          "Zona Norte",
			Neighborhoods: []string{"Santana", "Tucuruvi", "Vila Guilherme", "Casa Verde", "Mandaqui", "Tremembé", "Jaçanã", "Vila Maria"},
			Fee:           MustMoney("18.90"),
			EstimatedTime: "50-65 min",
		},
	}
}

// DeliveryAddress 收货地址，complement 为可选项
type DeliveryAddress struct {
	FullName     string `json:"full_name"`
	Street       string `json:"street"`
	Number       string `json:"number"`
	Complement   string `json:"complement,omitempty"`
	Neighborhood string `json:"neighborhood"`
	City         string `json:"city"`
	State        string `json:"state"`
	ZipCode      string `json:"zip_code"`
	Phone        string `json:"phone"`
}

// Value 实现 driver.Valuer 接口（订单地址快照）
func (a DeliveryAddress) Value() (driver.Value, error) {
	payload, err := json.Marshal(a)
	if err != nil {
		return nil, err
	}
	return string(payload), nil
}

// Scan 实现 sql.Scanner 接口
func (a *DeliveryAddress) Scan(value interface{}) error {
	raw, err := scanJSONBytes(value)
	if err != nil {
		return err
	}
	if len(raw) == 0 {
		*a = DeliveryAddress{}
		return nil
	}
	return json.Unmarshal(raw, a)
}

// DeliveryInfo 最近一次通过校验的配送信息，结算重入时回填
type DeliveryInfo struct {
	Address       DeliveryAddress `json:"address"`
	Fee           Money           `json:"fee"`
	EstimatedTime string          `json:"estimated_time"`
	Zone          string          `json:"zone"`
}
