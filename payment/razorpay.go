package payment

import (
	"context"
	"errors"
	"fmt"

	razorpay "github.com/razorpay/razorpay-go"
)

type RazorpayConfig struct {
	KeyID         string
	KeySecret     string
	WebhookSecret string
}

type razorpayGateway struct {
	client        *razorpay.Client
	keyID         string
	keySecret     string
	webhookSecret string
}

// NewRazorpayGateway создаёт шлюз поверх официального Razorpay SDK.
func NewRazorpayGateway(cfg RazorpayConfig) (Gateway, error) {
	if cfg.KeyID == "" || cfg.KeySecret == "" {
		return nil, errors.New("invalid razorpay configuration: key id and secret are required")
	}
	return &razorpayGateway{
		client:        razorpay.NewClient(cfg.KeyID, cfg.KeySecret),
		keyID:         cfg.KeyID,
		keySecret:     cfg.KeySecret,
		webhookSecret: cfg.WebhookSecret,
	}, nil
}

// CreateOrder создаёт ордер в Razorpay. Сумма принимается в рупиях и
// конвертируется в пайсы здесь — минорные единицы являются заботой шлюза,
// а не ядра регистрации.
func (g *razorpayGateway) CreateOrder(ctx context.Context, amount int64, currency, receipt string, notes map[string]string) (*Order, error) {
	// SDK не принимает context; тайм-ауты ограничиваются его HTTP-клиентом.
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data := map[string]interface{}{
		"amount":   amount * 100,
		"currency": currency,
		"receipt":  receipt,
	}
	if len(notes) > 0 {
		noteData := make(map[string]interface{}, len(notes))
		for k, v := range notes {
			noteData[k] = v
		}
		data["notes"] = noteData
	}

	body, err := g.client.Order.Create(data, nil)
	if err != nil {
		return nil, fmt.Errorf("razorpay order create failed: %w", err)
	}

	orderID, ok := body["id"].(string)
	if !ok || orderID == "" {
		return nil, errors.New("razorpay order create: response missing order id")
	}

	return &Order{
		ID:       orderID,
		Amount:   amount,
		Currency: currency,
		KeyID:    g.keyID,
	}, nil
}

func (g *razorpayGateway) VerifyPaymentSignature(orderID, paymentID, signature string) bool {
	return VerifyOrderSignature(g.keySecret, orderID, paymentID, signature)
}

func (g *razorpayGateway) VerifyWebhookSignature(payload []byte, signature string) bool {
	if g.webhookSecret == "" {
		return false
	}
	return VerifyWebhookSignature(g.webhookSecret, payload, signature)
}
