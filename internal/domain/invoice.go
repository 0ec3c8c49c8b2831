package domain

import "time"

type Invoice struct {
	ID           int64     `json:"id"`
	Status       string    `json:"status"`
	DeliveryDate time.Time `json:"deliveryDate"`
	OrderID      int64     `json:"orderId"`
}

const (
	InvoiceStatusPending = "Pending"

	// InvoiceDeliveryLeadTime is how far after completion an invoice is due.
	InvoiceDeliveryLeadTime = 7 * 24 * time.Hour
)

// NewPendingInvoice builds the invoice issued when an order is completed at
// the given instant. The delivery date is always expressed in UTC and at
// whole-second precision, which is what the DATETIME column stores.
func NewPendingInvoice(orderID int64, completedAt time.Time) Invoice {
	return Invoice{
		Status:       InvoiceStatusPending,
		DeliveryDate: completedAt.UTC().Add(InvoiceDeliveryLeadTime).Truncate(time.Second),
		OrderID:      orderID,
	}
}
