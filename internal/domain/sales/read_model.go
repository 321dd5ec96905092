package sales

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// TransactionListItem is the read model for the transaction list
type TransactionListItem struct {
	ID                        uuid.UUID       `json:"id"`
	Amount                    decimal.Decimal `json:"amount"`
	Currency                  Currency        `json:"currency"`
	PaymentType               PaymentType     `json:"payment_type"`
	CreatedAt                 time.Time       `json:"created_at"`
	CustomerInformation       string          `json:"customer_information"`
	DeviceInformation         string          `json:"device_information"`
	VendingProductInformation string          `json:"vending_product_information"`
}

// TransactionDetails is the read model for a single transaction
type TransactionDetails struct {
	TransactionListItem
	DeviceID            uuid.UUID `json:"device_id"`
	VendingProductID    uuid.UUID `json:"vending_product_id"`
	PaymentDeviceSerial string    `json:"payment_device_serial"`
	RecordedAt          time.Time `json:"recorded_at"`
}
