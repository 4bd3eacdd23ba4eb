package payment

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"testing"
)

func TestVerifyOrderSignature(t *testing.T) {
	const secret = "test_secret"

	sig := ComputeOrderSignature(secret, "order_1", "pay_1")
	if sig == "" {
		t.Fatal("empty signature")
	}

	if !VerifyOrderSignature(secret, "order_1", "pay_1", sig) {
		t.Error("valid signature rejected")
	}
	if VerifyOrderSignature(secret, "order_1", "pay_2", sig) {
		t.Error("signature for a different payment accepted")
	}
	if VerifyOrderSignature(secret, "order_2", "pay_1", sig) {
		t.Error("signature for a different order accepted")
	}
	if VerifyOrderSignature("other_secret", "order_1", "pay_1", sig) {
		t.Error("signature verified with a different secret")
	}
	if VerifyOrderSignature(secret, "order_1", "pay_1", "") {
		t.Error("empty signature accepted")
	}
}

func TestComputeOrderSignatureDeterministic(t *testing.T) {
	a := ComputeOrderSignature("s", "o", "p")
	b := ComputeOrderSignature("s", "o", "p")
	if a != b {
		t.Errorf("signature is not deterministic: %q vs %q", a, b)
	}
}

func TestVerifyWebhookSignature(t *testing.T) {
	const secret = "webhook_secret"
	payload := []byte(`{"event":"payment.captured"}`)

	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(payload)
	valid := hex.EncodeToString(mac.Sum(nil))

	if !VerifyWebhookSignature(secret, payload, valid) {
		t.Error("valid webhook signature rejected")
	}
	if VerifyWebhookSignature(secret, []byte(`{"event":"tampered"}`), valid) {
		t.Error("tampered payload accepted")
	}
	if VerifyWebhookSignature("wrong", payload, valid) {
		t.Error("signature verified with a different secret")
	}
}
