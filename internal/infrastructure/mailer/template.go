package mailer

import (
	"bytes"
	"html/template"
	"strings"

	"github.com/kkmjpaibot/sgsh/internal/domain/intake"
)

// summaryTemplate is an inline-styled card layout; table rows are rendered
// from label/value pairs.
var summaryTemplate = template.Must(template.New("summary").Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="UTF-8">
<meta name="viewport" content="width=device-width, initial-scale=1.0">
</head>
<body style="margin:0;padding:0;background:#f4f6fb;font-family:'Segoe UI', Roboto, Helvetica, Arial, sans-serif;color:#1f2937;">
<table width="100%" cellpadding="0" cellspacing="0">
<tr>
<td align="center" style="padding:40px 15px;">
  <table width="100%" style="max-width:600px;background:#ffffff;border-radius:16px;box-shadow:0 10px 30px rgba(0,0,0,0.08);overflow:hidden;">
    <tr>
    <td style="background:linear-gradient(135deg,#2563eb,#1e40af);padding:28px 30px;color:#ffffff;">
      <h1 style="margin:0;font-size:22px;font-weight:600;">Your Income Protection Summary</h1>
      <p style="margin:6px 0 0;opacity:0.9;font-size:14px;">Satu Gaji Satu Harapan</p>
    </td>
    </tr>
    <tr>
    <td style="padding:30px;">
      <p style="font-size:16px;margin-top:0;">Hi <b>{{.Name}}</b> &#128075;</p>
      <p style="color:#4b5563;">Thank you for completing your personalised income protection review. Here's a clear summary prepared just for you:</p>
      <table width="100%" cellpadding="0" cellspacing="0" style="margin:25px 0;border-collapse:collapse;font-size:14px;">
        {{- range .Rows}}
        <tr>
          <td style="padding:12px 10px;color:#6b7280;border-bottom:1px solid #e5e7eb;width:45%;">{{.Label}}</td>
          <td style="padding:12px 10px;font-weight:600;border-bottom:1px solid #e5e7eb;color:#111827;">{{.Value}}</td>
        </tr>
        {{- end}}
      </table>
      <div style="background:#f1f5f9;padding:18px;border-radius:12px;text-align:center;margin-top:30px;">
        <p style="margin:0 0 10px;font-size:15px;">Our licensed advisor will reach out to you shortly.</p>
        <a href="{{.WhatsAppLink}}" style="display:inline-block;padding:12px 22px;background:#22c55e;color:#ffffff;text-decoration:none;font-weight:600;border-radius:999px;font-size:14px;">&#128172; Chat on WhatsApp</a>
      </div>
    </td>
    </tr>
    <tr>
    <td style="padding:22px 30px;background:#f9fafb;border-top:1px solid #e5e7eb;font-size:12px;color:#6b7280;">
      <p style="margin:0 0 10px;">Subject to policy terms and final approval by authorised representatives.</p>
      <p style="margin:0;">Warm regards,<br><b>{{.Sender}}</b></p>
    </td>
    </tr>
  </table>
</td>
</tr>
</table>
</body>
</html>
`))

type summaryRow struct {
	Label string
	Value string
}

type summaryData struct {
	Name         string
	Rows         []summaryRow
	WhatsAppLink string
	Sender       string
}

// BuildSummaryHTML renders the summary card for one intake record. The CTA
// points at the fixed advisor WhatsApp number, not the customer's, and the
// footer signs off with the configured sender name.
func BuildSummaryHTML(rec intake.Record, advisorWhatsApp, senderName string) (string, error) {
	data := summaryData{
		Name: orDash(rec.Name),
		Rows: []summaryRow{
			{"Age", orDash(rec.Age)},
			{"Life Stage", orDash(rec.LifeStage)},
			{"Dependents", orDash(rec.Dependents)},
			{"Protection Level", orDash(rec.ProtectionLevel)},
			{"Monthly Budget", orDash(rec.MonthlyBudget)},
			{"Annual Income", orDash(rec.Income)},
			{"Phone", orDash(rec.Phone)},
		},
		WhatsAppLink: "https://wa.me/" + strings.TrimPrefix(advisorWhatsApp, "+"),
		Sender:       senderName,
	}

	var buf bytes.Buffer
	if err := summaryTemplate.Execute(&buf, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}

func orDash(v string) string {
	if strings.TrimSpace(v) == "" {
		return "—"
	}
	return v
}
