// Package qr builds and checks signed entry payloads of the form identifier:signature.
package qr

import (
	"crypto/subtle"
	"encoding/hex"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/zeebo/blake3"

	apperrors "github.com/thec1rclehost123-cmd/thec1rcle-sub002/pkg/app_errors"
)

type Kind string

const (
	KindUnit       Kind = "u"
	KindAssignment Kind = "a"
	KindBundle     Kind = "g"
)

const sep = "~"

// Subject is the structured identifier carried inside a payload.
type Subject struct {
	Kind         Kind
	OrderID      string
	TierID       string
	Unit         int
	AssignmentID string
	BundleID     string
}

func UnitSubject(orderID, tierID string, unit int) Subject {
	return Subject{Kind: KindUnit, OrderID: orderID, TierID: tierID, Unit: unit}
}

func AssignmentSubject(assignmentID string) Subject {
	return Subject{Kind: KindAssignment, AssignmentID: assignmentID}
}

func BundleSubject(bundleID string) Subject {
	return Subject{Kind: KindBundle, BundleID: bundleID}
}

// Identifier is the canonical string form; it is also the scan record key.
func (s Subject) Identifier() string {
	switch s.Kind {
	case KindUnit:
		return strings.Join([]string{string(KindUnit), s.OrderID, s.TierID, strconv.Itoa(s.Unit)}, sep)
	case KindAssignment:
		return string(KindAssignment) + sep + s.AssignmentID
	case KindBundle:
		return string(KindBundle) + sep + s.BundleID
	}
	return ""
}

var errMalformed = errors.New("malformed ticket identifier")

// CheckID reports whether id can be embedded in an identifier and parsed back.
func CheckID(id string) error {
	if strings.Contains(id, sep) {
		return fmt.Errorf("id %q must not contain %q", id, sep)
	}
	return nil
}

func ParseIdentifier(identifier string) (Subject, error) {
	parts := strings.Split(identifier, sep)
	switch Kind(parts[0]) {
	case KindUnit:
		if len(parts) != 4 || parts[1] == "" || parts[2] == "" {
			return Subject{}, errMalformed
		}
		unit, err := strconv.Atoi(parts[3])
		if err != nil || unit < 1 {
			return Subject{}, errMalformed
		}
		return UnitSubject(parts[1], parts[2], unit), nil
	case KindAssignment:
		if len(parts) != 2 || parts[1] == "" {
			return Subject{}, errMalformed
		}
		return AssignmentSubject(parts[1]), nil
	case KindBundle:
		if len(parts) != 2 || parts[1] == "" {
			return Subject{}, errMalformed
		}
		return BundleSubject(parts[1]), nil
	}
	return Subject{}, errMalformed
}

// Signer produces keyed BLAKE3 signatures. It holds no state beyond the key.
type Signer struct {
	key [32]byte
}

func NewSigner(secret string) (*Signer, error) {
	if secret == "" {
		return nil, errors.New("qr: empty signing secret")
	}
	return &Signer{key: blake3.Sum256([]byte(secret))}, nil
}

func (s *Signer) mac(identifier string) []byte {
	hasher, err := blake3.NewKeyed(s.key[:])
	if err != nil {
		panic("qr: keyed hash initialization failed: " + err.Error())
	}
	_, _ = hasher.Write([]byte(identifier))
	return hasher.Sum(nil)
}

// Sign returns identifier:hex(signature).
func (s *Signer) Sign(subject Subject) string {
	identifier := subject.Identifier()
	return identifier + ":" + hex.EncodeToString(s.mac(identifier))
}

// Verify checks the signature and decodes the identifier. Every failure
// wraps ErrInvalidSignature.
func (s *Signer) Verify(payload string) (Subject, error) {
	idx := strings.LastIndex(payload, ":")
	if idx <= 0 || idx == len(payload)-1 {
		return Subject{}, fmt.Errorf("%w: missing signature", apperrors.ErrInvalidSignature)
	}
	identifier, sig := payload[:idx], payload[idx+1:]

	got, err := hex.DecodeString(sig)
	if err != nil {
		return Subject{}, fmt.Errorf("%w: signature is not hex", apperrors.ErrInvalidSignature)
	}
	if subtle.ConstantTimeCompare(got, s.mac(identifier)) != 1 {
		return Subject{}, apperrors.ErrInvalidSignature
	}

	subject, err := ParseIdentifier(identifier)
	if err != nil {
		return Subject{}, fmt.Errorf("%w: %v", apperrors.ErrInvalidSignature, err)
	}
	return subject, nil
}
