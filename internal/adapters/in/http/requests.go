package http

import (
	"fmt"

	"ordering/internal/core/application/usecases/commands"
	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/core/domain/model/order"
	"ordering/internal/pkg/errs"
)

type orderLineRequest struct {
	ProductRef string `json:"product_ref"`
	Quantity   int    `json:"quantity"`
	Note       string `json:"note"`
}

type addressRequest struct {
	Street       string `json:"street"`
	Number       string `json:"number"`
	Complement   string `json:"complement"`
	Neighborhood string `json:"neighborhood"`
	City         string `json:"city"`
	State        string `json:"state"`
	PostalCode   string `json:"postal_code"`
}

type finalizeOrderRequest struct {
	Channel       string             `json:"channel"`
	PaymentMethod string             `json:"payment_method"`
	Items         []orderLineRequest `json:"items"`
	Address       *addressRequest    `json:"address"`
	AddressID     string             `json:"address_id"`
	CouponID      string             `json:"coupon_id"`
	TableRef      string             `json:"table_ref"`
	CustomerID    string             `json:"customer_id"`
	Actor         string             `json:"actor"`
}

func (r finalizeOrderRequest) toCommand(tenantID kernel.UUID) (commands.FinalizeOrderCommand, error) {
	channel, err := order.ParseChannel(r.Channel)
	if err != nil {
		return commands.FinalizeOrderCommand{}, err
	}
	method, err := order.ParsePaymentMethod(r.PaymentMethod)
	if err != nil {
		return commands.FinalizeOrderCommand{}, err
	}

	var address *kernel.Address
	if r.Address != nil {
		a, addrErr := kernel.NewAddress(
			r.Address.Street, r.Address.Number, r.Address.Complement,
			r.Address.Neighborhood, r.Address.City, r.Address.State, r.Address.PostalCode,
		)
		if addrErr != nil {
			return commands.FinalizeOrderCommand{}, addrErr
		}
		address = &a
	}

	addressID, err := optionalUUID("address_id", r.AddressID)
	if err != nil {
		return commands.FinalizeOrderCommand{}, err
	}
	couponID, err := optionalUUID("coupon_id", r.CouponID)
	if err != nil {
		return commands.FinalizeOrderCommand{}, err
	}
	customerID, err := optionalUUID("customer_id", r.CustomerID)
	if err != nil {
		return commands.FinalizeOrderCommand{}, err
	}

	lines := make([]commands.OrderLine, len(r.Items))
	for i, item := range r.Items {
		lines[i] = commands.OrderLine{ProductRef: item.ProductRef, Quantity: item.Quantity, Note: item.Note}
	}

	return commands.NewFinalizeOrderCommand(
		tenantID, channel, method, lines, address, addressID, couponID, r.TableRef, customerID, r.Actor,
	)
}

type itemChangeRequest struct {
	Op         string  `json:"op"`
	ProductRef string  `json:"product_ref"`
	ItemID     int     `json:"item_id"`
	Quantity   *int    `json:"quantity"`
	Note       *string `json:"note"`
}

type editOrderItemsRequest struct {
	Changes []itemChangeRequest `json:"changes"`
	Actor   string              `json:"actor"`
}

func (r editOrderItemsRequest) toCommand(orderID kernel.UUID) (commands.EditOrderItemsCommand, error) {
	changes := make([]commands.ItemChange, 0, len(r.Changes))
	for i, change := range r.Changes {
		switch change.Op {
		case "add":
			quantity, note := 0, ""
			if change.Quantity != nil {
				quantity = *change.Quantity
			}
			if change.Note != nil {
				note = *change.Note
			}
			changes = append(changes, commands.AddItemChange(change.ProductRef, quantity, note))
		case "update":
			changes = append(changes, commands.UpdateItemChange(change.ItemID, change.Quantity, change.Note))
		case "remove":
			changes = append(changes, commands.RemoveItemChange(change.ItemID))
		default:
			return commands.EditOrderItemsCommand{}, errs.NewValueIsInvalidErrorWithCause(
				"change op", fmt.Errorf("changes[%d]: %q is not add, update or remove", i, change.Op))
		}
	}
	return commands.NewEditOrderItemsCommand(orderID, changes, r.Actor)
}

type changeStatusRequest struct {
	Status string `json:"status"`
	Reason string `json:"reason"`
	Actor  string `json:"actor"`
}

type linkCourierRequest struct {
	CourierID string `json:"courier_id"`
}

type initiatePaymentRequest struct {
	Method  string `json:"method"`
	Gateway string `json:"gateway"`
	Amount  string `json:"amount"`
}

func (r initiatePaymentRequest) toCommand(orderID kernel.UUID) (commands.InitiatePaymentCommand, error) {
	method, err := order.ParsePaymentMethod(r.Method)
	if err != nil {
		return commands.InitiatePaymentCommand{}, err
	}
	amount, err := kernel.MoneyFromString(r.Amount)
	if err != nil {
		return commands.InitiatePaymentCommand{}, err
	}
	return commands.NewInitiatePaymentCommand(orderID, method, r.Gateway, amount)
}

func optionalUUID(name, raw string) (*kernel.UUID, error) {
	if raw == "" {
		return nil, nil
	}
	id, err := kernel.UUIDFromString(raw)
	if err != nil {
		return nil, errs.NewValueIsInvalidErrorWithCause(name, err)
	}
	return &id, nil
}
