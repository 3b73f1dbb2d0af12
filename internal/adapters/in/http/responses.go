package http

import (
	"time"

	"ordering/internal/core/application/usecases/queries"
	"ordering/internal/core/domain/model/order"
	"ordering/internal/core/domain/model/payment"
)

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type totalsResponse struct {
	Subtotal    string `json:"subtotal"`
	Discount    string `json:"discount"`
	DeliveryFee string `json:"delivery_fee"`
	ServiceFee  string `json:"service_fee"`
	Total       string `json:"total"`
}

type itemResponse struct {
	ID          int    `json:"id"`
	ProductRef  string `json:"product_ref"`
	ProductName string `json:"product_name"`
	UnitPrice   string `json:"unit_price"`
	Quantity    int    `json:"quantity"`
	Note        string `json:"note,omitempty"`
}

type orderResponse struct {
	ID            string         `json:"id"`
	TenantID      string         `json:"tenant_id"`
	Number        int64          `json:"number"`
	Channel       string         `json:"channel"`
	Status        string         `json:"status"`
	PaymentMethod string         `json:"payment_method"`
	Totals        totalsResponse `json:"totals"`
	TableRef      string         `json:"table_ref,omitempty"`
	CourierID     string         `json:"courier_id,omitempty"`
	Items         []itemResponse `json:"items"`
	UpdatedAt     time.Time      `json:"updated_at"`
	Version       int            `json:"version"`
}

func newOrderResponse(o *order.Order) orderResponse {
	totals := o.Totals()
	response := orderResponse{
		ID:            o.ID().String(),
		TenantID:      o.TenantID().String(),
		Number:        o.Number(),
		Channel:       o.Channel().String(),
		Status:        o.Status().String(),
		PaymentMethod: o.PaymentMethod().String(),
		Totals: totalsResponse{
			Subtotal:    totals.Subtotal().String(),
			Discount:    totals.Discount().String(),
			DeliveryFee: totals.DeliveryFee().String(),
			ServiceFee:  totals.ServiceFee().String(),
			Total:       totals.Total().String(),
		},
		TableRef:  o.TableRef(),
		UpdatedAt: o.UpdatedAt(),
		Version:   o.Version(),
	}
	if o.CourierID() != nil {
		response.CourierID = o.CourierID().String()
	}
	items := o.Items()
	response.Items = make([]itemResponse, len(items))
	for i, item := range items {
		response.Items[i] = itemResponse{
			ID:          item.ID(),
			ProductRef:  item.ProductRef(),
			ProductName: item.ProductName(),
			UnitPrice:   item.UnitPrice().String(),
			Quantity:    item.Quantity(),
			Note:        item.Note(),
		}
	}
	return response
}

func newOrderViewResponse(v *queries.GetOrderQueryResponse) orderResponse {
	response := orderResponse{
		ID:            v.ID.String(),
		TenantID:      v.TenantID.String(),
		Number:        v.Number,
		Channel:       v.Channel,
		Status:        v.Status,
		PaymentMethod: v.PaymentMethod,
		Totals: totalsResponse{
			Subtotal:    v.Subtotal.StringFixed(2),
			Discount:    v.Discount.StringFixed(2),
			DeliveryFee: v.DeliveryFee.StringFixed(2),
			ServiceFee:  v.ServiceFee.StringFixed(2),
			Total:       v.Total.StringFixed(2),
		},
		TableRef:  v.TableRef,
		UpdatedAt: v.UpdatedAt,
		Version:   v.Version,
	}
	if v.CourierID != nil {
		response.CourierID = v.CourierID.String()
	}
	response.Items = make([]itemResponse, len(v.Items))
	for i, item := range v.Items {
		response.Items[i] = itemResponse{
			ID:          item.ID,
			ProductRef:  item.ProductRef,
			ProductName: item.ProductName,
			UnitPrice:   item.UnitPrice.StringFixed(2),
			Quantity:    item.Quantity,
			Note:        item.Note,
		}
	}
	return response
}

type transactionResponse struct {
	ID           string `json:"id"`
	OrderID      string `json:"order_id"`
	Gateway      string `json:"gateway"`
	Method       string `json:"method"`
	Amount       string `json:"amount"`
	Currency     string `json:"currency"`
	Status       string `json:"status"`
	ProviderTxID string `json:"provider_tx_id,omitempty"`
	QRCode       string `json:"qr_code,omitempty"`
}

func newTransactionResponse(tx *payment.Transaction) transactionResponse {
	return transactionResponse{
		ID:           tx.ID().String(),
		OrderID:      tx.OrderID().String(),
		Gateway:      tx.Gateway(),
		Method:       tx.Method(),
		Amount:       tx.Amount().String(),
		Currency:     tx.Currency(),
		Status:       tx.Status().String(),
		ProviderTxID: tx.ProviderTxID(),
		QRCode:       tx.QRCode(),
	}
}

type historyEntryResponse struct {
	Sequence int       `json:"sequence"`
	From     string    `json:"from"`
	To       string    `json:"to"`
	Reason   string    `json:"reason,omitempty"`
	Actor    string    `json:"actor,omitempty"`
	At       time.Time `json:"at"`
}

type pendingPaymentResponse struct {
	TransactionID string    `json:"transaction_id"`
	OrderID       string    `json:"order_id"`
	OrderNumber   int64     `json:"order_number"`
	Gateway       string    `json:"gateway"`
	Method        string    `json:"method"`
	Amount        string    `json:"amount"`
	ProviderTxID  string    `json:"provider_tx_id"`
	UpdatedAt     time.Time `json:"updated_at"`
}

type courierResponse struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Phone string `json:"phone,omitempty"`
}
