package service

import (
	"strings"
	"time"

	"github.com/maisdocacau/storefront/internal/constants"
	"github.com/maisdocacau/storefront/internal/models"
)

// ZoneLookup 结算需要的配送区域查询
type ZoneLookup interface {
	Lookup(neighborhood string) (models.DeliveryZone, bool)
}

// CheckoutSession 结算会话：address -> payment -> confirmation
type CheckoutSession struct {
	Step          string                 `json:"step"`
	Address       models.DeliveryAddress `json:"address"`
	PaymentMethod string                 `json:"payment_method,omitempty"`
	Zone          string                 `json:"zone,omitempty"`
	EstimatedTime string                 `json:"estimated_time,omitempty"`
	Fee           models.Money           `json:"fee"`
	Subtotal      models.Money           `json:"subtotal"`
	Total         models.Money           `json:"total"`
	OrderNo       string                 `json:"order_no,omitempty"`
	Items         []CartLine             `json:"items,omitempty"`
	CartCleared   bool                   `json:"cart_cleared"`
	CreatedAt     time.Time              `json:"created_at"`
}

// NewCheckoutSession 新建结算会话，停留在地址步骤
func NewCheckoutSession(address models.DeliveryAddress, now time.Time) *CheckoutSession {
	return &CheckoutSession{
		Step:      constants.CheckoutStepAddress,
		Address:   address,
		CreatedAt: now,
	}
}

// validStep 反序列化后校验步骤值
func (s *CheckoutSession) validStep() bool {
	switch s.Step {
	case constants.CheckoutStepAddress, constants.CheckoutStepPayment, constants.CheckoutStepConfirmation:
		return true
	}
	return false
}

// Completed 是否已到达确认步骤
func (s *CheckoutSession) Completed() bool {
	return s.Step == constants.CheckoutStepConfirmation
}

// SubmitAddress 提交地址，校验通过后进入支付步骤
func (s *CheckoutSession) SubmitAddress(address models.DeliveryAddress, zones ZoneLookup) error {
	if s.Step != constants.CheckoutStepAddress {
		return ErrInvalidCheckoutStep
	}
	address = normalizeDeliveryAddress(address)
	zone, err := ValidateDeliveryAddress(address, zones)
	if err != nil {
		return err
	}
	s.Address = address
	s.Zone = zone.Name
	s.Fee = zone.Fee
	s.EstimatedTime = zone.EstimatedTime
	s.Step = constants.CheckoutStepPayment
	return nil
}

// Back 仅允许从支付返回地址
func (s *CheckoutSession) Back() error {
	if s.Step != constants.CheckoutStepPayment {
		return ErrInvalidCheckoutStep
	}
	s.Step = constants.CheckoutStepAddress
	s.PaymentMethod = ""
	return nil
}

// Quote 按当前运费计算合计
func (s *CheckoutSession) Quote(subtotal models.Money) {
	s.Subtotal = subtotal
	s.Total = subtotal.Add(s.Fee)
}

// Confirm 支付成功后进入确认步骤（终态），记录订单号与商品快照
func (s *CheckoutSession) Confirm(orderNo, paymentMethod string, lines []CartLine) error {
	if s.Step != constants.CheckoutStepPayment {
		return ErrInvalidCheckoutStep
	}
	s.OrderNo = orderNo
	s.PaymentMethod = paymentMethod
	s.Items = cloneCartLines(lines)
	s.Step = constants.CheckoutStepConfirmation
	return nil
}

// DeliveryInfo 当前地址对应的配送信息
func (s *CheckoutSession) DeliveryInfo() models.DeliveryInfo {
	return models.DeliveryInfo{
		Address:       s.Address,
		Fee:           s.Fee,
		EstimatedTime: s.EstimatedTime,
		Zone:          s.Zone,
	}
}

// ValidateDeliveryAddress 先校验必填项，再校验街区是否可配送
func ValidateDeliveryAddress(address models.DeliveryAddress, zones ZoneLookup) (models.DeliveryZone, error) {
	if missing := missingAddressFields(address); len(missing) > 0 {
		return models.DeliveryZone{}, &AddressValidationError{MissingFields: missing}
	}
	zone, ok := zones.Lookup(address.Neighborhood)
	if !ok {
		return models.DeliveryZone{}, &AddressValidationError{Neighborhood: strings.TrimSpace(address.Neighborhood)}
	}
	return zone, nil
}

func missingAddressFields(address models.DeliveryAddress) []string {
	required := []struct {
		name  string
		value string
	}{
		{"full_name", address.FullName},
		{"street", address.Street},
		{"number", address.Number},
		{"neighborhood", address.Neighborhood},
		{"city", address.City},
		{"state", address.State},
		{"zip_code", address.ZipCode},
		{"phone", address.Phone},
	}
	var missing []string
	for _, field := range required {
		if strings.TrimSpace(field.value) == "" {
			missing = append(missing, field.name)
		}
	}
	return missing
}

func normalizeDeliveryAddress(address models.DeliveryAddress) models.DeliveryAddress {
	return models.DeliveryAddress{
		FullName:     strings.TrimSpace(address.FullName),
		Street:       strings.TrimSpace(address.Street),
		Number:       strings.TrimSpace(address.Number),
		Complement:   strings.TrimSpace(address.Complement),
		Neighborhood: strings.TrimSpace(address.Neighborhood),
		City:         strings.TrimSpace(address.City),
		State:        strings.TrimSpace(address.State),
		ZipCode:      strings.TrimSpace(address.ZipCode),
		Phone:        strings.TrimSpace(address.Phone),
	}
}
