package telegram

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractInvoiceSlug(t *testing.T) {
	cases := []struct {
		url  string
		want string
	}{
		{"https://t.me/invoice/abc123", "abc123"},
		{"https://t.me/$/invoice/xyz", "xyz"},
		{"https://t.me/bot?start=slug99", "slug99"},
		{"https://t.me/bot?foo=1&start=slug99", "slug99"},
		{"https://example.com/pay/xyz", ""},
		{"", ""},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, ExtractInvoiceSlug(tc.url), tc.url)
	}
}

func TestOpenInvoiceURLPrefersSlug(t *testing.T) {
	bridge := NewWebAppBridge()
	require.NoError(t, OpenInvoiceURL(bridge, "https://t.me/invoice/abc"))

	directives := bridge.Directives()
	require.Len(t, directives, 1)
	assert.Equal(t, "open_invoice", directives[0].Action)
	assert.Equal(t, "abc", directives[0].Slug)
}

func TestOpenInvoiceURLFallsBackToLink(t *testing.T) {
	bridge := NewWebAppBridge()
	require.NoError(t, OpenInvoiceURL(bridge, "https://example.com/pay/xyz"))

	directives := bridge.Directives()
	require.Len(t, directives, 1)
	assert.Equal(t, "open_link", directives[0].Action)
	assert.Equal(t, "https://example.com/pay/xyz", directives[0].URL)
}

func TestNullBridgeRefusesEverything(t *testing.T) {
	var b Bridge = NullBridge{}
	assert.False(t, b.Available())
	assert.ErrorIs(t, b.OpenInvoice("abc"), ErrUnavailable)
	assert.ErrorIs(t, b.OpenLink("https://t.me"), ErrUnavailable)
}
