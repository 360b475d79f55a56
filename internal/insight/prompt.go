package insight

import (
	"strings"

	"grafik/internal/chart"
	"grafik/internal/core"
)

// BuildPrompt renders a natural-language analysis request embedding the
// series' formatted rupiah values. One prompt shape per chart kind.
func BuildPrompt(s chart.Series) string {
	var b strings.Builder

	switch s.Kind {
	case chart.KindTrend:
		b.WriteString("Berikut total pengeluaran harian saya selama beberapa hari terakhir (label = tanggal):\n")
	case chart.KindComparison:
		b.WriteString("Berikut perbandingan total pemasukan dan pengeluaran saya:\n")
	default:
		b.WriteString("Berikut alokasi dana saya per kategori:\n")
	}

	for _, p := range s.Points {
		b.WriteString("- ")
		b.WriteString(p.Label)
		b.WriteString(": ")
		b.WriteString(core.FormatRupiah(p.Value))
		b.WriteString("\n")
	}
	b.WriteString("Total: ")
	b.WriteString(core.FormatRupiah(s.Total()))
	b.WriteString("\n\n")
	b.WriteString("Berikan analisis singkat (maksimal 3 paragraf) tentang kondisi keuangan ini beserta satu saran praktis. Jawab dalam bahasa Indonesia.")
	return b.String()
}
