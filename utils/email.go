package utils

import (
	"bytes"
	"html/template"
	"os"
	"strconv"

	"restaurant_manager/logger"
	"restaurant_manager/model"

	"gopkg.in/gomail.v2"
)

var lowStockTmpl = template.Must(template.New("lowstock").Parse(`
<h3>Low stock alert</h3>
<p>The following inventory items are at or below their reorder level:</p>
<table border="1" cellpadding="4">
  <tr><th>Item</th><th>Quantity</th><th>Reorder level</th><th>Supplier</th></tr>
  {{range .}}
  <tr>
    <td>{{.Name}}</td>
    <td>{{.Quantity}} {{.Unit}}</td>
    <td>{{.ReorderLevel}} {{.Unit}}</td>
    <td>{{.Supplier}}</td>
  </tr>
  {{end}}
</table>
`))

// SendLowStockAlert mails the low-stock summary. Sending runs async so the
// caller never waits on SMTP.
func SendLowStockAlert(to string, items []model.InventoryItem) {
	go func() {
		var body bytes.Buffer
		if err := lowStockTmpl.Execute(&body, items); err != nil {
			logger.Log.Error("render low stock email: " + err.Error())
			return
		}

		host := os.Getenv("SMTP_HOST")
		port, _ := strconv.Atoi(os.Getenv("SMTP_PORT"))
		username := os.Getenv("SMTP_USERNAME")
		password := os.Getenv("SMTP_PASSWORD")
		from := os.Getenv("SMTP_FROM")
		if host == "" || to == "" {
			return
		}

		m := gomail.NewMessage()
		m.SetHeader("From", from)
		m.SetHeader("To", to)
		m.SetHeader("Subject", "Inventory low stock alert")
		m.SetBody("text/html", body.String())

		d := gomail.NewDialer(host, port, username, password)
		if err := d.DialAndSend(m); err != nil {
			logger.Log.Error("send low stock email: " + err.Error())
			return
		}
		logger.Log.Info("low stock alert sent")
	}()
}
