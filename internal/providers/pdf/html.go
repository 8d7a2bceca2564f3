package pdf

import (
	"bytes"
	"context"
	"html/template"
)

var ticketTemplate = template.Must(template.New("ticket").Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<style>
 body { font-family: Helvetica, Arial, sans-serif; margin: 40px; color: #1a1a2e; }
 .card { border: 2px solid #1a1a2e; border-radius: 12px; padding: 32px; max-width: 520px; }
 h1 { margin: 0 0 4px 0; font-size: 28px; }
 .venue { color: #555; margin-bottom: 16px; }
 .code { font-size: 36px; letter-spacing: 8px; font-weight: bold; margin: 24px 0; }
 .qr img { width: 200px; height: 200px; }
 .meta { font-size: 13px; color: #555; margin-top: 16px; }
</style>
</head>
<body>
<div class="card">
 <h1>{{.EventName}}</h1>
 <div class="venue">{{.Venue}} &middot; {{.Date}}</div>
 {{if .QRDataURL}}<div class="qr"><img src="{{.QRDataURL}}" alt="QR"></div>{{end}}
 <div class="code">{{.TicketCode}}</div>
 <div class="meta">Paid {{.Amount}}{{if .Email}} &middot; {{.Email}}{{end}}</div>
 <div class="meta">Present this code or QR at the entrance. Valid for one entry.</div>
</div>
</body>
</html>`))

func renderTicketHTML(data TicketData) ([]byte, error) {
	var buf bytes.Buffer
	if err := ticketTemplate.Execute(&buf, data); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// HTMLProvider is the last-resort fallback: it hands back the HTML bytes
// so delivery still attaches something readable.
type HTMLProvider struct{}

func (p *HTMLProvider) Name() string { return "html" }

func (p *HTMLProvider) RenderTicket(ctx context.Context, data TicketData) (RenderResult, error) {
	html, err := renderTicketHTML(data)
	if err != nil {
		return RenderResult{}, err
	}
	return RenderResult{
		Data:        html,
		ContentType: "text/html",
		Filename:    "ticket-" + data.TicketCode + ".html",
	}, nil
}
