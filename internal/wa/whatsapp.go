// Package wa builds WhatsApp deep links for billing reminders and chat
// replies. There is no WhatsApp API call here: the dashboard hands the
// operator a wa.me URL and the phone does the rest.
package wa

import (
	"net/url"
	"strings"

	"sirekap-dgn/internal/format"
	"sirekap-dgn/internal/models"
)

// DefaultBillingTemplate is the reminder text offered by the billing screen
const DefaultBillingTemplate = `Yth. Bpk/Ibu {nama_pelanggan},

Kami dari *{nama_perusahaan}* ingin memberitahukan bahwa tagihan internet Anda untuk bulan *{bulan_tagihan}* sebesar *{jumlah_tagihan}* telah jatuh tempo.

Mohon untuk segera melakukan pembayaran agar layanan Anda tidak terganggu.

Terima kasih.`

// SendDelayMillis is the pause the client should keep between opening two
// links so the browser's popup blocker stays quiet
const SendDelayMillis = 500

// FormatPhone normalizes a phone number for wa.me: strip everything but
// digits, rewrite a leading "0" to the country code "62", and prefix "62"
// when the number carries no country code at all.
func FormatPhone(phone string) string {
	var b strings.Builder
	for _, r := range phone {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	cleaned := b.String()

	switch {
	case strings.HasPrefix(cleaned, "0"):
		cleaned = "62" + cleaned[1:]
	case !strings.HasPrefix(cleaned, "62"):
		cleaned = "62" + cleaned
	}
	return cleaned
}

// Link builds the deep link that opens a prefilled WhatsApp chat
func Link(phone, text string) string {
	return "https://wa.me/" + FormatPhone(phone) + "?text=" + url.QueryEscape(text)
}

// RenderBillingTemplate fills the billing placeholders for one customer
func RenderBillingTemplate(template string, customer models.Customer, companyName, billingMonth string) string {
	r := strings.NewReplacer(
		"{nama_pelanggan}", customer.Name,
		"{nama_perusahaan}", companyName,
		"{jumlah_tagihan}", format.IDR(customer.Fee),
		"{bulan_tagihan}", billingMonth,
	)
	return r.Replace(template)
}
