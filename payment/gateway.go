package payment

import "context"

// Order — непрозрачный ордер платёжного шлюза, возвращается клиенту для
// завершения оплаты на его стороне.
type Order struct {
	ID       string `json:"order_id"`
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
	KeyID    string `json:"key_id"`
}

// Gateway — граница с внешним платёжным шлюзом. Ядро требует от него только
// создание ордера и детерминированную проверку подписи по общему секрету.
type Gateway interface {
	CreateOrder(ctx context.Context, amount int64, currency, receipt string, notes map[string]string) (*Order, error)

	// VerifyPaymentSignature проверяет подпись client-redirect подтверждения
	// (HMAC-SHA256 от "orderID|paymentID").
	VerifyPaymentSignature(orderID, paymentID, signature string) bool

	// VerifyWebhookSignature проверяет подпись webhook-доставки по сырому телу
	// запроса и отдельному webhook-секрету.
	VerifyWebhookSignature(payload []byte, signature string) bool
}
