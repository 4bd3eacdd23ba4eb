package payment

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
)

// ComputeOrderSignature считает подпись подтверждения оплаты:
// HMAC-SHA256(secret, orderID + "|" + paymentID) в hex.
func ComputeOrderSignature(secret, orderID, paymentID string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(orderID + "|" + paymentID))
	return hex.EncodeToString(mac.Sum(nil))
}

// VerifyOrderSignature сравнивает подпись за константное время.
func VerifyOrderSignature(secret, orderID, paymentID, signature string) bool {
	expected := ComputeOrderSignature(secret, orderID, paymentID)
	return hmac.Equal([]byte(expected), []byte(signature))
}

// VerifyWebhookSignature проверяет подпись webhook-доставки: HMAC-SHA256 от
// сырого тела запроса с отдельным webhook-секретом.
func VerifyWebhookSignature(secret string, payload []byte, signature string) bool {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(payload)
	expected := hex.EncodeToString(mac.Sum(nil))
	return hmac.Equal([]byte(expected), []byte(signature))
}
