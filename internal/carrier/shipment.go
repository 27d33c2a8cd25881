package carrier

import (
	"strings"
	"unicode"

	"github.com/google/uuid"
	"github.com/rookgm/cargolabel/internal/models"
	"github.com/shopspring/decimal"
)

// field length limits accepted by the carrier
const (
	maxNameLen      = 60
	maxAddressLen   = 250
	maxCityLen      = 40
	maxContentLen   = 100
	maxPhoneDigits  = 10
	referenceLength = 10
	defaultContent  = "E-commerce order"
)

// PaymentType tells the carrier who pays for shipping
type PaymentType int

const (
	PaymentSender   PaymentType = 1
	PaymentReceiver PaymentType = 2
)

// Shipment is the carrier booking payload
type Shipment struct {
	ReferenceCode     string      `json:"reference_code"`
	RecipientName     string      `json:"recipient_name"`
	RecipientAddress  string      `json:"recipient_address"`
	RecipientPhone    string      `json:"recipient_phone"`
	RecipientCity     string      `json:"recipient_city"`
	RecipientDistrict string      `json:"recipient_district"`
	PaymentType       PaymentType `json:"payment_type"`
	ParcelCount       int         `json:"parcel_count"`
	Desi              string      `json:"desi"`
	Weight            string      `json:"weight"`
	Content           string      `json:"content"`
	SenderName        string      `json:"sender_name"`
	SenderAddress     string      `json:"sender_address"`
	SenderPhone       string      `json:"sender_phone"`
	SenderCity        string      `json:"sender_city"`
	SenderDistrict    string      `json:"sender_district"`
}

// NewReferenceCode returns a 10 character uppercase code used as tracking and idempotency reference
func NewReferenceCode() string {
	raw := strings.ReplaceAll(uuid.NewString(), "-", "")
	return strings.ToUpper(raw[:referenceLength])
}

// BuildShipment maps order and sender to the carrier payload
func BuildShipment(order models.Order, sender models.SenderAddress, desi decimal.Decimal, reference string) Shipment {
	city, district := NormalizeLocation(order.ShippingCity, order.ShippingDistrict)
	senderCity, senderDistrict := NormalizeLocation(sender.City, sender.District)

	weight := decimal.Zero
	if order.Weight.Valid {
		weight = order.Weight.Decimal
	}

	content := strings.TrimSpace(order.Content)
	if content == "" {
		content = defaultContent
	}

	return Shipment{
		ReferenceCode:     truncate(reference, referenceLength),
		RecipientName:     truncate(order.CustomerName, maxNameLen),
		RecipientAddress:  truncate(order.ShippingAddress, maxAddressLen),
		RecipientPhone:    SanitizePhone(order.CustomerPhone),
		RecipientCity:     truncate(city, maxCityLen),
		RecipientDistrict: truncate(district, maxCityLen),
		PaymentType:       PaymentSender,
		ParcelCount:       1,
		Desi:              desi.StringFixed(2),
		Weight:            weight.StringFixed(2),
		Content:           truncate(content, maxContentLen),
		SenderName:        truncate(sender.Name, maxNameLen),
		SenderAddress:     truncate(sender.Address, maxAddressLen),
		SenderPhone:       SanitizePhone(sender.Phone),
		SenderCity:        truncate(senderCity, maxCityLen),
		SenderDistrict:    truncate(senderDistrict, maxCityLen),
	}
}

// SanitizePhone keeps digits only and at most the last 10 of them, dropping country and trunk prefixes
func SanitizePhone(phone string) string {
	digits := strings.Map(func(r rune) rune {
		if r >= '0' && r <= '9' {
			return r
		}
		return -1
	}, phone)

	if len(digits) > maxPhoneDigits {
		digits = digits[len(digits)-maxPhoneDigits:]
	}

	return digits
}

func truncate(s string, limit int) string {
	s = strings.TrimFunc(s, unicode.IsSpace)
	r := []rune(s)
	if len(r) <= limit {
		return s
	}
	return strings.TrimRightFunc(string(r[:limit]), unicode.IsSpace)
}
