// Package whatsapp builds wa.me share links so an invoice summary can be
// handed to the customer through the WhatsApp click-to-chat flow. No
// message is sent from the server; the client opens the link.
package whatsapp

import (
	"net/url"
	"strings"
)

// LinkBuilder implements billing.ShareLinkBuilder on top of the public
// click-to-chat endpoint.
type LinkBuilder struct {
	base string
}

// NewLinkBuilder builds the link builder. base is normally https://wa.me.
func NewLinkBuilder(base string) *LinkBuilder {
	return &LinkBuilder{base: strings.TrimRight(base, "/")}
}

// ShareLink returns <base>/<digits>?text=<message>. The phone keeps only
// its digits: wa.me wants the international number without +, spaces or
// dashes.
func (b *LinkBuilder) ShareLink(phone, message string) string {
	var digits strings.Builder
	for _, r := range phone {
		if r >= '0' && r <= '9' {
			digits.WriteRune(r)
		}
	}
	q := url.Values{}
	q.Set("text", message)
	return b.base + "/" + digits.String() + "?" + q.Encode()
}
