package application

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"strconv"
	"strings"

	"github.com/Apurer/cafe-api/internal/domains/orders/domain"
	"github.com/Apurer/cafe-api/internal/domains/orders/ports"
)

type normalizedCheckout struct {
	Channel   domain.Channel   `json:"channel"`
	Email     string           `json:"email,omitempty"`
	FirstName string           `json:"firstName,omitempty"`
	LastName  string           `json:"lastName,omitempty"`
	MemberID  int64            `json:"memberId,omitempty"`
	Lines     []normalizedLine `json:"lines"`
}

type normalizedLine struct {
	ProductID int64 `json:"productId"`
	Quantity  int   `json:"quantity"`
}

// FingerprintGuestCheckout hashes the guest checkout payload, excluding the idempotency key.
func FingerprintGuestCheckout(input ports.GuestCheckoutInput) (string, error) {
	return fingerprint(normalizedCheckout{
		Channel:   domain.ChannelGuest,
		Email:     normalizeEmail(input.Contact.Email),
		FirstName: strings.TrimSpace(input.Contact.FirstName),
		LastName:  strings.TrimSpace(input.Contact.LastName),
		Lines:     normalizeLines(input.Lines),
	})
}

// FingerprintMemberCheckout hashes the member checkout payload, excluding the idempotency key.
func FingerprintMemberCheckout(input ports.MemberCheckoutInput) (string, error) {
	return fingerprint(normalizedCheckout{
		Channel:  domain.ChannelMember,
		MemberID: input.MemberID,
		Lines:    normalizeLines(input.Lines),
	})
}

// scopedKey namespaces a client key by channel and caller so keys never collide across buyers.
func scopedKey(channel domain.Channel, caller, key string) string {
	sum := sha256.Sum256([]byte(string(channel) + "\x00" + caller + "\x00" + key))
	return hex.EncodeToString(sum[:])
}

func guestScopedKey(input ports.GuestCheckoutInput) string {
	return scopedKey(domain.ChannelGuest, normalizeEmail(input.Contact.Email), input.IdempotencyKey)
}

func memberScopedKey(input ports.MemberCheckoutInput) string {
	return scopedKey(domain.ChannelMember, strconv.FormatInt(input.MemberID, 10), input.IdempotencyKey)
}

func fingerprint(v normalizedCheckout) (string, error) {
	payload, err := json.Marshal(v)
	if err != nil {
		return "", err
	}
	sum := sha256.Sum256(payload)
	return hex.EncodeToString(sum[:]), nil
}

// Line order is significant: items are stored in submission order.
func normalizeLines(lines []domain.CartLine) []normalizedLine {
	out := make([]normalizedLine, 0, len(lines))
	for _, line := range lines {
		out = append(out, normalizedLine{ProductID: line.ProductID, Quantity: line.Quantity})
	}
	return out
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
