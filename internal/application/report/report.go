package report

import (
	"fmt"
	"html/template"
	"strings"
	"time"

	"github.com/nakliye-kontrol-api/internal/domain"
)

// Totals are the footer figures of a period report. TotalAmount and
// TotalSystem sum the stored toplam/sistem columns as-is; the server never
// recomputes a record's own total from its fee parts.
type Totals struct {
	TotalAmount  float64 `json:"total_amount"`
	TotalSystem  float64 `json:"total_system"`
	TotalDeposit float64 `json:"total_deposit"`
	Difference   float64 `json:"difference"`
}

// ComputeTotals aggregates the report figures for a set of shipment and
// deposit rows. Difference is what remains owed after deposits.
func ComputeTotals(shipments []domain.NakliyeRecord, deposits []domain.YatanTutarRecord) Totals {
	var t Totals
	for _, s := range shipments {
		t.TotalAmount += s.Toplam
		t.TotalSystem += s.Sistem
	}
	for _, d := range deposits {
		t.TotalDeposit += d.Tutar
	}
	t.Difference = t.TotalAmount - t.TotalDeposit
	return t
}

// Backup is the full-ledger snapshot written by the backup endpoint.
// Storage-internal attributes (search_text) are excluded via the entity
// JSON tags; only API-visible fields are serialized.
type Backup struct {
	SchemaVersion int                      `json:"schema_version"`
	GeneratedAt   time.Time                `json:"generated_at"`
	Nakliye       []domain.NakliyeRecord   `json:"nakliye_kayitlari"`
	YatanTutar    []domain.YatanTutarRecord `json:"yatan_tutarlar"`
}

const backupSchemaVersion = 1

var reportTmpl = template.Must(template.New("report").Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<style>
  body { font-family: Arial, sans-serif; font-size: 12px; }
  h1 { color: #1e2563; font-size: 20px; }
  h2 { color: #333; font-size: 15px; margin-top: 24px; }
  table { width: 100%; border-collapse: collapse; margin-top: 8px; }
  th, td { border: 1px solid #999; padding: 4px 6px; text-align: left; }
  th { background-color: #f0f0f0; }
  td.num, th.num { text-align: right; }
  tfoot td { font-weight: bold; background-color: #f8f9fa; }
</style>
</head>
<body>
<h1>ARKAS LOJİSTİK — Nakliye Raporu</h1>
<p>Dönem: {{.Period}}</p>

<h2>Nakliye Kayıtları</h2>
<table>
<thead>
<tr><th>Tarih</th><th>Sıra No</th><th>Müşteri</th><th>İrsaliye No</th><th class="num">Toplam</th><th class="num">Sistem</th></tr>
</thead>
<tbody>
{{range .Shipments}}<tr><td>{{.Tarih.Format "02.01.2006"}}</td><td>{{.SiraNo}}</td><td>{{.Musteri}}</td><td>{{.IrsaliyeNo}}</td><td class="num">{{printf "%.2f" .Toplam}}</td><td class="num">{{printf "%.2f" .Sistem}}</td></tr>
{{end}}</tbody>
<tfoot>
<tr><td colspan="4">Toplam</td><td class="num">{{printf "%.2f" .Totals.TotalAmount}}</td><td class="num">{{printf "%.2f" .Totals.TotalSystem}}</td></tr>
</tfoot>
</table>

{{if .Deposits}}
<h2>Yatan Tutarlar</h2>
<table>
<thead>
<tr><th>Yatma Tarihi</th><th>Dönem</th><th>Açıklama</th><th class="num">Tutar</th></tr>
</thead>
<tbody>
{{range .Deposits}}<tr><td>{{.YatmaTarihi.Format "02.01.2006"}}</td><td>{{.DonemBaslangic.Format "02.01.2006"}} — {{.DonemBitis.Format "02.01.2006"}}</td><td>{{.Aciklama}}</td><td class="num">{{printf "%.2f" .Tutar}}</td></tr>
{{end}}</tbody>
<tfoot>
<tr><td colspan="3">Toplam Yatan</td><td class="num">{{printf "%.2f" .Totals.TotalDeposit}}</td></tr>
<tr><td colspan="3">Fark</td><td class="num">{{printf "%.2f" .Totals.Difference}}</td></tr>
</tfoot>
</table>
{{end}}
</body>
</html>
`))

// BuildReportHTML renders the tabular period report handed to the PDF
// renderer. When deposits is empty the deposit section is omitted entirely.
func BuildReportHTML(shipments []domain.NakliyeRecord, deposits []domain.YatanTutarRecord, period string) (string, error) {
	var b strings.Builder
	err := reportTmpl.Execute(&b, struct {
		Period    string
		Shipments []domain.NakliyeRecord
		Deposits  []domain.YatanTutarRecord
		Totals    Totals
	}{
		Period:    period,
		Shipments: shipments,
		Deposits:  deposits,
		Totals:    ComputeTotals(shipments, deposits),
	})
	if err != nil {
		return "", fmt.Errorf("execute report template: %w", err)
	}
	return b.String(), nil
}
