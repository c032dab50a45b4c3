// Package telegram models the Telegram WebApp bridge as an injected
// capability instead of a global object. The gateway cannot reach into
// the Mini App shell directly, so the production bridge records the
// host-side actions (open invoice, open link) as directives the shell
// executes; availability is derived from whether the caller presented
// validated init data.
package telegram

import (
	"fmt"
	"net/url"
	"strings"
)

type Bridge interface {
	Available() bool
	// OpenInvoice asks the host to open a Stars invoice by slug.
	OpenInvoice(slug string) error
	// OpenLink asks the host to open an external Telegram link.
	OpenLink(rawURL string) error
	Ready()
	Expand()
}

// ErrUnavailable is returned by bridge actions outside a Telegram host.
var ErrUnavailable = fmt.Errorf("telegram webapp bridge unavailable")

// NullBridge is the fallback used when the caller is not inside
// Telegram. Every action fails; paying with Stars outside Telegram is
// explicitly unsupported.
type NullBridge struct{}

func (NullBridge) Available() bool          { return false }
func (NullBridge) OpenInvoice(string) error { return ErrUnavailable }
func (NullBridge) OpenLink(string) error    { return ErrUnavailable }
func (NullBridge) Ready()                   {}
func (NullBridge) Expand()                  {}

// Directive is a host action to be executed by the Mini App shell.
type Directive struct {
	Action string `json:"action"` // "open_invoice" | "open_link"
	Slug   string `json:"slug,omitempty"`
	URL    string `json:"url,omitempty"`
}

// WebAppBridge represents a live Telegram host on the other side of the
// request. Actions are collected as directives for the response payload.
type WebAppBridge struct {
	directives []Directive
}

func NewWebAppBridge() *WebAppBridge {
	return &WebAppBridge{}
}

func (b *WebAppBridge) Available() bool { return true }

func (b *WebAppBridge) OpenInvoice(slug string) error {
	if slug == "" {
		return fmt.Errorf("empty invoice slug")
	}
	b.directives = append(b.directives, Directive{Action: "open_invoice", Slug: slug})
	return nil
}

func (b *WebAppBridge) OpenLink(rawURL string) error {
	if rawURL == "" {
		return fmt.Errorf("empty link")
	}
	b.directives = append(b.directives, Directive{Action: "open_link", URL: rawURL})
	return nil
}

func (b *WebAppBridge) Ready()  {}
func (b *WebAppBridge) Expand() {}

// Directives returns the host actions recorded during the request.
func (b *WebAppBridge) Directives() []Directive {
	return b.directives
}

// ExtractInvoiceSlug pulls the opaque invoice slug out of an invoice URL.
// Two shapes are supported: ".../invoice/{slug}" and "...?start={slug}".
// An empty string means the slug could not be extracted and the raw URL
// should be opened as an external link instead.
func ExtractInvoiceSlug(invoiceURL string) string {
	u, err := url.Parse(invoiceURL)
	if err != nil {
		return ""
	}

	if start := u.Query().Get("start"); start != "" {
		return start
	}

	const marker = "/invoice/"
	if idx := strings.Index(u.Path, marker); idx >= 0 {
		slug := u.Path[idx+len(marker):]
		if cut := strings.IndexByte(slug, '/'); cut >= 0 {
			slug = slug[:cut]
		}
		return slug
	}

	return ""
}

// OpenInvoiceURL opens an invoice through the bridge, preferring the
// in-app invoice view and falling back to the raw URL as an external
// link when the slug cannot be extracted.
func OpenInvoiceURL(b Bridge, invoiceURL string) error {
	if slug := ExtractInvoiceSlug(invoiceURL); slug != "" {
		if err := b.OpenInvoice(slug); err == nil {
			return nil
		}
	}
	return b.OpenLink(invoiceURL)
}
