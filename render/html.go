package render

import (
	"bytes"
	"html/template"

	"msilva-backend/document"
	"msilva-backend/pricing"
)

var previewTmpl = template.Must(template.New("proposal").Funcs(template.FuncMap{
	"money": func(doc document.Document, v float64) string { return pricing.FormatMoney(doc.Language, v) },
	"price": func(doc document.Document, ln document.Line) string {
		return pricing.PriceLabel(doc.Language, ln.PricingType, ln.UnitPrice, ln.PriceNote)
	},
	"optPrice": func(doc document.Document, o document.Option) string {
		return pricing.PriceLabel(doc.Language, o.PricingType, o.UnitPrice, o.PriceNote)
	},
	"qty": func(doc document.Document, ln document.Line) string {
		return pricing.QuantityLabel(doc.Language, ln.PricingType, ln.Quantity)
	},
	"total": lineTotal,
	"lines": pricing.SplitLines,
	"withLines": func(v view, lines []document.Line) lineBlock { return lineBlock{Root: v, Lines: lines} },
}).Parse(previewHTML))

type view struct {
	Doc    document.Document
	Labels document.Labels
}

type lineBlock struct {
	Root  view
	Lines []document.Line
}

// HTML renders the print preview. All document text is escaped.
func HTML(doc document.Document) (string, error) {
	var buf bytes.Buffer
	err := previewTmpl.Execute(&buf, view{Doc: doc, Labels: doc.Labels()})
	if err != nil {
		return "", err
	}
	return buf.String(), nil
}

const previewHTML = `<!DOCTYPE html>
<html lang="{{.Doc.Language}}">
<head>
<meta charset="utf-8">
<title>{{.Doc.DocumentTitle}}</title>
<style>
body{font-family:Georgia,serif;color:#222;max-width:820px;margin:32px auto;padding:0 24px}
h1{font-size:20px;text-align:center;margin:24px 0 4px}
h2{font-size:15px;color:#785e3c;border-bottom:1px solid #ccc;padding-bottom:4px;margin-top:28px}
.eyebrow{float:right;color:#777;font-size:12px}
.muted{color:#777;font-size:12px}
.center{text-align:center}
table{width:100%;border-collapse:collapse}
td{padding:3px 4px;vertical-align:top}
td.num{text-align:right;white-space:nowrap}
.service td{font-weight:bold;padding-top:10px}
ul{margin:2px 0 6px 18px;padding:0;font-size:13px}
.totals td{padding:4px}
.grand td{font-weight:bold;font-size:16px;color:#785e3c}
@media print{body{margin:0}}
</style>
</head>
<body>
<header>
<span class="eyebrow">{{.Labels.Eyebrow}}</span>
<strong style="font-size:22px;color:#785e3c">{{.Doc.CompanyName}}</strong>
{{with .Doc.CompanyTagline}}<div class="muted"><em>{{.}}</em></div>{{end}}
{{with .Doc.CompanyContact}}<div class="muted">{{.Phone}}{{if and .Phone .Email}} · {{end}}{{.Email}}{{if .Website}} · {{.Website}}{{end}}</div>
{{with .Address}}<div class="muted">{{.}}</div>{{end}}{{end}}
</header>

<h1>{{.Doc.Title}}</h1>
{{with .Doc.GuestBasis}}<p class="center muted">{{.}}</p>{{end}}
<p class="center muted">{{.Doc.VATNote}}</p>

<h2>{{.Labels.Client}}</h2>
<table>
{{with .Doc.ClientName}}<tr><td><strong>{{$.Labels.Name}}</strong></td><td>{{.}}</td></tr>{{end}}
{{with .Doc.ClientEmail}}<tr><td><strong>{{$.Labels.Email}}</strong></td><td>{{.}}</td></tr>{{end}}
{{with .Doc.ClientPhone}}<tr><td><strong>{{$.Labels.Phone}}</strong></td><td>{{.}}</td></tr>{{end}}
{{with .Doc.ClientCompany}}<tr><td><strong>{{$.Labels.Company}}</strong></td><td>{{.}}</td></tr>{{end}}
{{with .Doc.ClientNIF}}<tr><td><strong>{{$.Labels.NIF}}</strong></td><td>{{.}}</td></tr>{{end}}
</table>

<h2>{{.Labels.Event}}</h2>
<table>
{{with .Doc.EventType}}<tr><td><strong>{{$.Labels.Event}}</strong></td><td>{{.}}</td></tr>{{end}}
{{with .Doc.EventTitle}}<tr><td><strong>{{$.Labels.Title}}</strong></td><td>{{.}}</td></tr>{{end}}
{{with .Doc.EventDate}}<tr><td><strong>{{$.Labels.Date}}</strong></td><td>{{.}}</td></tr>{{end}}
{{with .Doc.EventLocation}}<tr><td><strong>{{$.Labels.Location}}</strong></td><td>{{.}}</td></tr>{{end}}
{{with .Doc.GuestCount}}<tr><td><strong>{{$.Labels.Guests}}</strong></td><td>{{.}}</td></tr>{{end}}
</table>

{{range .Doc.Sections}}
<h2>{{.Title}}</h2>
{{range lines .Body}}<p>{{.}}</p>{{end}}
{{end}}

<h2>{{.Labels.ServicesSelected}}</h2>
{{if not .Doc.Services}}<p class="muted"><em>{{.Labels.NoServices}}</em></p>{{end}}
{{template "serviceLines" withLines $ .Doc.Services}}

{{if .Doc.OptionalServices}}
<h2>{{.Labels.OptionsPresented}}</h2>
{{template "serviceLines" withLines $ .Doc.OptionalServices}}
{{end}}

<table class="totals">
<tr><td></td><td class="num">{{.Labels.Subtotal}}</td><td class="num">{{money .Doc .Doc.Subtotal}}</td></tr>
{{if .Doc.ShowVAT}}<tr><td></td><td class="num">{{.Labels.VAT}}</td><td class="num">{{money .Doc .Doc.VATAmount}}</td></tr>{{end}}
<tr class="grand"><td></td><td class="num">{{.Labels.Total}}</td><td class="num">{{money .Doc .Doc.Total}}</td></tr>
</table>

{{with .Doc.FooterNotes}}
<h2>{{$.Labels.GeneralTerms}}</h2>
{{range lines .}}<p class="muted">{{.}}</p>{{end}}
{{end}}
</body>
</html>

{{define "serviceLines"}}
<table>
{{$root := .Root}}
{{range .Lines}}
<tr class="service"><td>{{.Name}}</td><td class="num">{{qty $root.Doc .}}</td><td class="num">{{price $root.Doc .}}</td><td class="num">{{total $root.Doc .TotalPrice .PriceNote}}</td></tr>
{{if .IncludedItems}}<tr><td colspan="4"><span class="muted">{{$root.Labels.Includes}}</span><ul>{{range .IncludedItems}}<li>{{.}}</li>{{end}}</ul></td></tr>{{end}}
{{if .Options}}<tr><td colspan="4"><span class="muted">{{$root.Labels.Options}}</span><ul>{{range .Options}}<li>{{.Name}} &ndash; {{optPrice $root.Doc .}}{{if not .PriceNote}} ({{total $root.Doc .TotalPrice .PriceNote}}){{end}}</li>{{end}}</ul></td></tr>{{end}}
{{end}}
</table>
{{end}}`
