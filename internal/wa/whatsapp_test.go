package wa

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"sirekap-dgn/internal/models"
)

func TestFormatPhone(t *testing.T) {
	assert.Equal(t, "6281234567890", FormatPhone("081234567890"))
	assert.Equal(t, "6281234567890", FormatPhone("6281234567890"))
	assert.Equal(t, "6281234567890", FormatPhone("81234567890"))
	assert.Equal(t, "6281234567890", FormatPhone("+62 812-3456-7890"))
	assert.Equal(t, "6281234567890", FormatPhone("0812 3456 7890"))
}

func TestLink(t *testing.T) {
	link := Link("081234567890", "Halo, tagihan Anda Rp 100.000")
	assert.Equal(t, "https://wa.me/6281234567890?text=Halo%2C+tagihan+Anda+Rp+100.000", link)
}

func TestRenderBillingTemplate(t *testing.T) {
	customer := models.Customer{Name: "Budi", Fee: 150000}
	msg := RenderBillingTemplate(DefaultBillingTemplate, customer, "Sirekap DGN", "Januari 2026")

	assert.Contains(t, msg, "Yth. Bpk/Ibu Budi,")
	assert.Contains(t, msg, "*Sirekap DGN*")
	assert.Contains(t, msg, "*Rp 150.000*")
	assert.Contains(t, msg, "bulan *Januari 2026*")
	assert.NotContains(t, msg, "{nama_pelanggan}")
}
