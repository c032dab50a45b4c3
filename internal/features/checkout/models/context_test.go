package models

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"storefront-gateway/internal/platform/backend"
)

func TestParsePrice(t *testing.T) {
	cases := []struct {
		raw  string
		want float64
	}{
		{"25", 25},
		{"25€", 25},
		{"25 €", 25},
		{"19.99$", 19.99},
		{" 10 ", 10},
	}
	for _, tc := range cases {
		got, err := ParsePrice(tc.raw)
		require.NoError(t, err, tc.raw)
		assert.Equal(t, tc.want, got, tc.raw)
	}

	_, err := ParsePrice("abc")
	assert.Error(t, err)
}

func TestFormatPrice(t *testing.T) {
	assert.Equal(t, "25", FormatPrice(25))
	assert.Equal(t, "19.99", FormatPrice(19.99))
}

func TestContextQueryRoundTrip(t *testing.T) {
	original := Context{
		Type:  TypeProduct,
		ID:    "p1",
		Price: 49.5,
		Shipping: &backend.Shipping{
			FirstName: "Ann",
			LastName:  "Lee",
			Address:   "1 Main St",
			City:      "Berlin",
			ZipCode:   "10115",
			Country:   "DE",
		},
	}

	parsed, err := ParseContext(original.Query())
	require.NoError(t, err)
	assert.Equal(t, original, parsed)
}

func TestContextQueryOmitsEmptyMessage(t *testing.T) {
	values := Context{Type: TypeDonation, Price: 25}.Query()
	_, present := values["message"]
	assert.False(t, present)
}

func TestDonationPaymentRoute(t *testing.T) {
	route := Context{Type: TypeDonation, Price: 25, Message: "congrats"}.PaymentRoute()

	parsed, err := url.Parse(route)
	require.NoError(t, err)
	assert.Equal(t, "/payment", parsed.Path)

	query := parsed.Query()
	assert.Equal(t, "donation", query.Get("type"))
	assert.Equal(t, "25", query.Get("price"))
	assert.Equal(t, "congrats", query.Get("message"))
}

func TestParseContextRejectsUnknownType(t *testing.T) {
	values := url.Values{}
	values.Set("type", "mystery")
	values.Set("id", "x")

	_, err := ParseContext(values)
	assert.Error(t, err)
}

func TestParseContextRequiresIDExceptDonation(t *testing.T) {
	values := url.Values{}
	values.Set("type", TypeProduct)
	_, err := ParseContext(values)
	assert.Error(t, err)

	values.Set("type", TypeDonation)
	values.Set("price", "10")
	ctx, err := ParseContext(values)
	require.NoError(t, err)
	assert.Equal(t, "DONATION", ctx.Items()[0].ID)
}

func TestBackendOrderType(t *testing.T) {
	assert.Equal(t, "PRODUCT", Context{Type: TypeProduct}.BackendOrderType())
	assert.Equal(t, "CUSTOM_VIDEO", Context{Type: TypeCustomVideo}.BackendOrderType())
	assert.Equal(t, "DONATION", Context{Type: TypeDonation}.BackendOrderType())
}
