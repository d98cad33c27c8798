package whatsapp

import (
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestShareLink_StripsPhoneFormatting(t *testing.T) {
	b := NewLinkBuilder("https://wa.me")

	link := b.ShareLink("+91 98765-43210", "hello")
	assert.True(t, strings.HasPrefix(link, "https://wa.me/919876543210?"))
}

func TestShareLink_EncodesMessage(t *testing.T) {
	b := NewLinkBuilder("https://wa.me/")

	msg := "Invoice INV-0042 from Sharma & Sons\nTotal: ₹1,180.00"
	link := b.ShareLink("9876543210", msg)

	u, err := url.Parse(link)
	require.NoError(t, err)
	assert.Equal(t, "/9876543210", u.Path)
	assert.Equal(t, msg, u.Query().Get("text"), "message must survive the round trip")
}
