// Package orderrepo maps the order aggregate, its items and its status history onto
// relational tables and back.
package orderrepo

import (
	"time"

	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/core/domain/model/order"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OrderDTO is one row of the orders table. Items and history live in child tables.
type OrderDTO struct {
	ID                   uuid.UUID       `gorm:"type:uuid;primaryKey"`
	TenantID             uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex:idx_orders_tenant_number,priority:1"`
	Number               int64           `gorm:"not null;uniqueIndex:idx_orders_tenant_number,priority:2"`
	Channel              string          `gorm:"type:varchar(16);not null"`
	Status               string          `gorm:"type:varchar(24);not null;index"`
	PaymentMethod        string          `gorm:"type:varchar(24);not null"`
	Subtotal             decimal.Decimal `gorm:"type:numeric(12,2);not null"`
	Discount             decimal.Decimal `gorm:"type:numeric(12,2);not null"`
	DeliveryFee          decimal.Decimal `gorm:"type:numeric(12,2);not null"`
	ServiceFee           decimal.Decimal `gorm:"type:numeric(12,2);not null"`
	Total                decimal.Decimal `gorm:"type:numeric(12,2);not null"`
	TableRef             string          `gorm:"type:varchar(32)"`
	CustomerID           *uuid.UUID      `gorm:"type:uuid"`
	CourierID            *uuid.UUID      `gorm:"type:uuid;index"`
	AddressID            *uuid.UUID      `gorm:"type:uuid"`
	CouponID             *uuid.UUID      `gorm:"type:uuid"`
	PaymentTransactionID *uuid.UUID      `gorm:"type:uuid"`
	Address              AddressDTO      `gorm:"embedded;embeddedPrefix:delivery_"`
	CreatedAt            time.Time       `gorm:"not null;autoCreateTime:false"`
	UpdatedAt            time.Time       `gorm:"not null;autoUpdateTime:false"`
	Version              int             `gorm:"not null"`
	Items                []ItemDTO       `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
	History              []HistoryDTO    `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
}

func (OrderDTO) TableName() string {
	return "orders"
}

// AddressDTO is the delivery snapshot. An empty neighborhood means the order has none.
type AddressDTO struct {
	Street       string `gorm:"type:varchar(255)"`
	Number       string `gorm:"type:varchar(32)"`
	Complement   string `gorm:"type:varchar(255)"`
	Neighborhood string `gorm:"type:varchar(255)"`
	City         string `gorm:"type:varchar(255)"`
	State        string `gorm:"type:varchar(64)"`
	PostalCode   string `gorm:"type:varchar(16)"`
}

type ItemDTO struct {
	OrderID     uuid.UUID       `gorm:"type:uuid;primaryKey"`
	ID          int             `gorm:"primaryKey;autoIncrement:false"`
	ProductRef  string          `gorm:"type:varchar(64);not null"`
	ProductName string          `gorm:"type:varchar(255);not null"`
	UnitPrice   decimal.Decimal `gorm:"type:numeric(12,2);not null"`
	Quantity    int             `gorm:"not null"`
	Note        string          `gorm:"type:varchar(280)"`
}

func (ItemDTO) TableName() string {
	return "order_items"
}

// HistoryDTO is one append-only status change.
type HistoryDTO struct {
	OrderID    uuid.UUID `gorm:"type:uuid;primaryKey"`
	Sequence   int       `gorm:"primaryKey;autoIncrement:false"`
	FromStatus string    `gorm:"type:varchar(24);not null"`
	ToStatus   string    `gorm:"type:varchar(24);not null"`
	Reason     string    `gorm:"type:varchar(255)"`
	Actor      string    `gorm:"type:varchar(64)"`
	At         time.Time `gorm:"not null"`
}

func (HistoryDTO) TableName() string {
	return "order_status_history"
}

// SequenceDTO holds the last order number handed out to a tenant.
type SequenceDTO struct {
	TenantID   uuid.UUID `gorm:"type:uuid;primaryKey"`
	LastNumber int64     `gorm:"not null"`
}

func (SequenceDTO) TableName() string {
	return "order_sequences"
}

// Models lists every table owned by this package, for AutoMigrate.
func Models() []any {
	return []any{&OrderDTO{}, &ItemDTO{}, &HistoryDTO{}, &SequenceDTO{}}
}

func fromDomain(o *order.Order) OrderDTO {
	id := o.ID().Bytes()
	totals := o.Totals()

	dto := OrderDTO{
		ID:                   id,
		TenantID:             o.TenantID().Bytes(),
		Number:               o.Number(),
		Channel:              o.Channel().String(),
		Status:               o.Status().String(),
		PaymentMethod:        o.PaymentMethod().String(),
		Subtotal:             totals.Subtotal().Decimal(),
		Discount:             totals.Discount().Decimal(),
		DeliveryFee:          totals.DeliveryFee().Decimal(),
		ServiceFee:           totals.ServiceFee().Decimal(),
		Total:                totals.Total().Decimal(),
		TableRef:             o.TableRef(),
		CustomerID:           kernel.BytesPtr(o.CustomerID()),
		CourierID:            kernel.BytesPtr(o.CourierID()),
		AddressID:            kernel.BytesPtr(o.AddressID()),
		CouponID:             kernel.BytesPtr(o.CouponID()),
		PaymentTransactionID: kernel.BytesPtr(o.PaymentTransactionID()),
		CreatedAt:            o.CreatedAt(),
		UpdatedAt:            o.UpdatedAt(),
		Version:              o.Version(),
		Items:                itemsFromDomain(id, o.Items()),
	}

	if a := o.DeliveryAddress(); a != nil {
		dto.Address = AddressDTO{
			Street:       a.Street(),
			Number:       a.Number(),
			Complement:   a.Complement(),
			Neighborhood: a.Neighborhood(),
			City:         a.City(),
			State:        a.State(),
			PostalCode:   a.PostalCode(),
		}
	}

	return dto
}

func itemsFromDomain(orderID uuid.UUID, items []*order.Item) []ItemDTO {
	dtos := make([]ItemDTO, 0, len(items))
	for _, item := range items {
		dtos = append(dtos, ItemDTO{
			OrderID:     orderID,
			ID:          item.ID(),
			ProductRef:  item.ProductRef(),
			ProductName: item.ProductName(),
			UnitPrice:   item.UnitPrice().Decimal(),
			Quantity:    item.Quantity(),
			Note:        item.Note(),
		})
	}
	return dtos
}

func historyFromDomain(orderID uuid.UUID, entries []order.HistoryEntry) []HistoryDTO {
	dtos := make([]HistoryDTO, 0, len(entries))
	for _, h := range entries {
		dtos = append(dtos, HistoryDTO{
			OrderID:    orderID,
			Sequence:   h.Sequence(),
			FromStatus: h.From().String(),
			ToStatus:   h.To().String(),
			Reason:     h.Reason(),
			Actor:      h.Actor(),
			At:         h.At(),
		})
	}
	return dtos
}

// toDomain rebuilds the aggregate. dto.Items and dto.History must already be sorted.
func toDomain(dto OrderDTO) (*order.Order, error) {
	state := order.State{
		TableRef:  dto.TableRef,
		CreatedAt: dto.CreatedAt,
		UpdatedAt: dto.UpdatedAt,
		Version:   dto.Version,
		Number:    dto.Number,
	}

	var err error
	if state.ID, err = kernel.UUIDFromBytes(dto.ID[:]); err != nil {
		return nil, err
	}
	if state.TenantID, err = kernel.UUIDFromBytes(dto.TenantID[:]); err != nil {
		return nil, err
	}
	if state.Channel, err = order.ParseChannel(dto.Channel); err != nil {
		return nil, err
	}
	if state.Status, err = order.ParseStatus(dto.Status); err != nil {
		return nil, err
	}
	if state.PaymentMethod, err = order.ParsePaymentMethod(dto.PaymentMethod); err != nil {
		return nil, err
	}
	if state.Totals, err = totalsToDomain(dto); err != nil {
		return nil, err
	}

	for _, ref := range []struct {
		raw *uuid.UUID
		dst **kernel.UUID
	}{
		{dto.CustomerID, &state.CustomerID},
		{dto.CourierID, &state.CourierID},
		{dto.AddressID, &state.AddressID},
		{dto.CouponID, &state.CouponID},
		{dto.PaymentTransactionID, &state.PaymentTransactionID},
	} {
		if *ref.dst, err = kernel.UUIDPtrFromBytes(ref.raw); err != nil {
			return nil, err
		}
	}

	if dto.Address.Neighborhood != "" {
		a := dto.Address
		address, addrErr := kernel.NewAddress(a.Street, a.Number, a.Complement, a.Neighborhood, a.City, a.State, a.PostalCode)
		if addrErr != nil {
			return nil, addrErr
		}
		state.DeliveryAddress = &address
	}

	state.Items = make([]*order.Item, 0, len(dto.Items))
	for _, i := range dto.Items {
		price, priceErr := kernel.NewMoney(i.UnitPrice)
		if priceErr != nil {
			return nil, priceErr
		}
		item, itemErr := order.RestoreItem(i.ID, i.ProductRef, i.ProductName, price, i.Quantity, i.Note)
		if itemErr != nil {
			return nil, itemErr
		}
		state.Items = append(state.Items, item)
	}

	state.History = make([]order.HistoryEntry, 0, len(dto.History))
	for _, h := range dto.History {
		from, fromErr := order.ParseStatus(h.FromStatus)
		if fromErr != nil {
			return nil, fromErr
		}
		to, toErr := order.ParseStatus(h.ToStatus)
		if toErr != nil {
			return nil, toErr
		}
		state.History = append(state.History, order.RestoreHistoryEntry(h.Sequence, from, to, h.Reason, h.Actor, h.At))
	}

	return order.RestoreOrder(state)
}

func totalsToDomain(dto OrderDTO) (order.Totals, error) {
	amounts := make([]kernel.Money, 0, 4)
	for _, d := range []decimal.Decimal{dto.Subtotal, dto.Discount, dto.DeliveryFee, dto.ServiceFee} {
		m, err := kernel.NewMoney(d)
		if err != nil {
			return order.Totals{}, err
		}
		amounts = append(amounts, m)
	}
	return order.NewTotals(amounts[0], amounts[1], amounts[2], amounts[3]), nil
}
