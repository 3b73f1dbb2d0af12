package order

import (
	"time"

	"ordering/internal/core/domain/model/kernel"
)

// EventType names what happened to the order in the committed unit of work.
type EventType string

const (
	EventFinalized        EventType = "order.finalized"
	EventItemsEdited      EventType = "order.items_edited"
	EventStatusChanged    EventType = "order.status_changed"
	EventPaymentConfirmed EventType = "order.payment_confirmed"
	EventCourierChanged   EventType = "order.courier_changed"
)

// Event is the domain event produced after a successful commit. It is a flat snapshot
// so that receivers never need to read the order back.
type Event struct {
	ID          string      `json:"id"`
	Type        EventType   `json:"type"`
	OrderID     string      `json:"order_id"`
	TenantID    string      `json:"tenant_id"`
	Number      int64       `json:"number"`
	Channel     string      `json:"channel"`
	Status      string      `json:"status"`
	Subtotal    string      `json:"subtotal"`
	Discount    string      `json:"discount"`
	DeliveryFee string      `json:"delivery_fee"`
	ServiceFee  string      `json:"service_fee"`
	Total       string      `json:"total"`
	CourierID   string      `json:"courier_id,omitempty"`
	Items       []EventItem `json:"items"`
	OccurredAt  time.Time   `json:"occurred_at"`
}

type EventItem struct {
	ID          int    `json:"id"`
	ProductRef  string `json:"product_ref"`
	ProductName string `json:"product_name"`
	Quantity    int    `json:"quantity"`
	UnitPrice   string `json:"unit_price"`
	LineTotal   string `json:"line_total"`
	Note        string `json:"note,omitempty"`
}

// NewEvent snapshots the order's current state.
func (o *Order) NewEvent(eventType EventType, at time.Time) Event {
	items := make([]EventItem, 0, len(o.items))
	for _, item := range o.items {
		items = append(items, EventItem{
			ID:          item.ID(),
			ProductRef:  item.ProductRef(),
			ProductName: item.ProductName(),
			Quantity:    item.Quantity(),
			UnitPrice:   item.UnitPrice().String(),
			LineTotal:   item.LineTotal().String(),
			Note:        item.Note(),
		})
	}

	var courier string
	if o.courierID != nil {
		courier = o.courierID.String()
	}

	return Event{
		ID:          kernel.NewUUID().String(),
		Type:        eventType,
		OrderID:     o.id.String(),
		TenantID:    o.tenantID.String(),
		Number:      o.number,
		Channel:     o.channel.String(),
		Status:      o.status.String(),
		Subtotal:    o.totals.Subtotal().String(),
		Discount:    o.totals.Discount().String(),
		DeliveryFee: o.totals.DeliveryFee().String(),
		ServiceFee:  o.totals.ServiceFee().String(),
		Total:       o.totals.Total().String(),
		CourierID:   courier,
		Items:       items,
		OccurredAt:  at,
	}
}
