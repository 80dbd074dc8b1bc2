package notify

import (
	htmltemplate "html/template"
	"strings"
	texttemplate "text/template"
	"time"
)

var turkishMonths = [...]string{
	"Ocak", "Şubat", "Mart", "Nisan", "Mayıs", "Haziran",
	"Temmuz", "Ağustos", "Eylül", "Ekim", "Kasım", "Aralık",
}

func formatTurkishDate(t time.Time) string {
	return t.Format("2") + " " + turkishMonths[t.Month()-1] + " " + t.Format("2006 15:04")
}

var templateFuncs = map[string]any{
	"lines": func(s string) []string { return strings.Split(strings.ReplaceAll(s, "\r\n", "\n"), "\n") },
	"date":  formatTurkishDate,
}

const row = `<tr><td style="padding:10px 0;border-bottom:1px solid #eee;font-weight:bold;width:40%;">`
const cell = `</td><td style="padding:10px 0;border-bottom:1px solid #eee;">`

var contactHTML = htmltemplate.Must(htmltemplate.New("contact.html").Funcs(templateFuncs).Parse(`<!DOCTYPE html>
<html lang="tr">
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1.0">
<title>Yeni İletişim Formu Mesajı</title>
</head>
<body style="font-family:Arial,'Helvetica Neue',Helvetica,sans-serif;line-height:1.6;color:#333;max-width:600px;margin:0 auto;background-color:#f9f9f9;padding:20px;">
<div style="border:1px solid #e0e0e0;border-radius:5px;background-color:#ffffff;">
<div style="background-color:#004d99;color:white;padding:20px;text-align:center;border-radius:5px 5px 0 0;">
<h2 style="margin:0;font-size:24px;">Yeni İletişim Formu Mesajı</h2>
</div>
<div style="padding:30px;">
<table style="width:100%;border-collapse:collapse;">
` + row + `İsim Soyisim:` + cell + `{{.Name}}</td></tr>
{{if .CompanyName}}` + row + `Firma Adı:` + cell + `{{.CompanyName}}</td></tr>{{end}}
` + row + `E-posta:` + cell + `<a href="mailto:{{.Email}}" style="color:#004d99;text-decoration:none;">{{.Email}}</a></td></tr>
{{if .Phone}}` + row + `Telefon:` + cell + `<a href="tel:{{.Phone}}" style="color:#004d99;text-decoration:none;">{{.Phone}}</a></td></tr>{{end}}
` + row + `Konu:` + cell + `{{.Subject}}</td></tr>
` + row + `Mesaj:` + cell + `{{range $i, $l := lines .Message}}{{if $i}}<br>{{end}}{{$l}}{{end}}</td></tr>
{{if .Product}}` + row + `İlgilenilen Ürün:` + cell + `{{.Product}}</td></tr>{{end}}
{{if .IsQuote}}` + row + `Teklif İsteği:` + cell + `Evet</td></tr>{{end}}
</table>
<div style="margin-top:30px;padding:15px;background-color:#f5f5f5;border-radius:5px;border-left:4px solid #004d99;">
<p style="margin:0;font-size:14px;"><strong>Not:</strong> Bu mesaj web sitesi iletişim formundan doğrudan gönderilmiştir. Lütfen yanıtlamak için "Yanıtla" (Reply) düğmesini kullanın.</p>
</div>
</div>
<div style="text-align:center;font-size:12px;color:#777;margin-top:20px;padding:20px;background-color:#f5f5f5;border-radius:0 0 5px 5px;border-top:1px solid #eee;">
<p>Bu e-posta {{.SiteName}} web sitesi iletişim formundan otomatik olarak gönderilmiştir.</p>
<p>&copy; {{.SentAt.Year}} {{.SiteName}}. Tüm hakları saklıdır.</p>
<p style="margin-top:15px;font-size:11px;color:#999;">Gönderim tarihi: {{date .SentAt}}</p>
</div>
</div>
</body>
</html>
`))

var contactText = texttemplate.Must(texttemplate.New("contact.txt").Funcs(templateFuncs).Parse(`Yeni İletişim Formu Mesajı

İsim Soyisim: {{.Name}}
{{if .CompanyName}}Firma Adı: {{.CompanyName}}
{{end}}E-posta: {{.Email}}
{{if .Phone}}Telefon: {{.Phone}}
{{end}}Konu: {{.Subject}}
Mesaj: {{.Message}}
{{if .Product}}İlgilenilen Ürün: {{.Product}}
{{end}}{{if .IsQuote}}Teklif İsteği: Evet
{{end}}
Bu e-posta {{.SiteName}} web sitesi iletişim formundan otomatik olarak gönderilmiştir.
© {{.SentAt.Year}} {{.SiteName}}. Tüm hakları saklıdır.

Gönderim tarihi: {{date .SentAt}}
`))
