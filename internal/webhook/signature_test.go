package webhook

import (
	"strings"
	"testing"
)

func TestComputeHMAC_Format(t *testing.T) {
	sig := ComputeHMAC([]byte(`{"event":"rules.updated"}`), "secret")
	if !strings.HasPrefix(sig, "sha256=") {
		t.Errorf("signature missing sha256= prefix: %q", sig)
	}
	// sha256= plus 64 hex chars
	if len(sig) != len("sha256=")+64 {
		t.Errorf("unexpected signature length: %d", len(sig))
	}
}

func TestVerifySignature(t *testing.T) {
	payload := []byte(`{"event":"rules.updated","etag":"abc"}`)
	sig := ComputeHMAC(payload, "secret")

	if !VerifySignature(payload, sig, "secret") {
		t.Error("valid signature rejected")
	}
	if VerifySignature(payload, sig, "other-secret") {
		t.Error("signature verified with wrong secret")
	}
	if VerifySignature([]byte(`{}`), sig, "secret") {
		t.Error("signature verified for different payload")
	}
	if VerifySignature(payload, "sha256=deadbeef", "secret") {
		t.Error("bogus signature verified")
	}
}

func TestComputeHMAC_Deterministic(t *testing.T) {
	payload := []byte("payload")
	if ComputeHMAC(payload, "s") != ComputeHMAC(payload, "s") {
		t.Error("HMAC not deterministic")
	}
	if ComputeHMAC(payload, "s") == ComputeHMAC(payload, "t") {
		t.Error("different secrets produced identical signatures")
	}
}
