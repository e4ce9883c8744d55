package external

import (
	"context"
	"crypto/subtle"
	"encoding/hex"
	"fmt"
	"sync"

	"github.com/shopspring/decimal"
	"github.com/zeebo/blake3"
)

// SandboxGateway is a local stand-in for a real payment provider. Signatures
// are keyed hashes of gatewayOrderID|paymentID, so clients in development can
// compute them with SignatureFor. Never wire it in production.
type SandboxGateway struct {
	key      [32]byte
	mu       sync.Mutex
	amounts  map[string]decimal.Decimal
	currency string
}

func NewSandboxGateway(secret string) *SandboxGateway {
	return &SandboxGateway{
		key:      blake3.Sum256([]byte("sandbox-gateway:" + secret)),
		amounts:  make(map[string]decimal.Decimal),
		currency: "INR",
	}
}

func (g *SandboxGateway) CreateOrder(ctx context.Context, orderID string, amount decimal.Decimal) (*GatewayOrder, error) {
	id := "gw_" + orderID

	g.mu.Lock()
	g.amounts[id] = amount
	g.mu.Unlock()

	return &GatewayOrder{ID: id, Amount: amount, Currency: g.currency}, nil
}

func (g *SandboxGateway) VerifyPayment(ctx context.Context, gatewayOrderID, paymentID, signature string) (*PaymentVerification, error) {
	g.mu.Lock()
	amount, ok := g.amounts[gatewayOrderID]
	g.mu.Unlock()
	if !ok {
		return nil, fmt.Errorf("sandbox: unknown gateway order %s", gatewayOrderID)
	}

	want := g.SignatureFor(gatewayOrderID, paymentID)
	verified := subtle.ConstantTimeCompare([]byte(want), []byte(signature)) == 1
	return &PaymentVerification{Verified: verified, Amount: amount}, nil
}

func (g *SandboxGateway) SignatureFor(gatewayOrderID, paymentID string) string {
	hasher, err := blake3.NewKeyed(g.key[:])
	if err != nil {
		panic("sandbox: keyed hash initialization failed: " + err.Error())
	}
	_, _ = hasher.Write([]byte(gatewayOrderID + "|" + paymentID))
	return hex.EncodeToString(hasher.Sum(nil))
}
