package email

import (
	"fmt"
	"html"
	"strings"

	"github.com/example/medstore/internal/checkout"
)

// BuildOrderNotificationBody builds the HTML body sent to the store for a new order
func BuildOrderNotificationBody(sub checkout.Submission) string {
	var itemsHTML strings.Builder
	for _, line := range strings.Split(sub.RenderedItems, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		itemsHTML.WriteString(fmt.Sprintf(
			`<tr>
				<td style="padding: 10px; border-bottom: 1px solid #eee;">%s</td>
			</tr>`,
			html.EscapeString(strings.TrimPrefix(line, "- ")),
		))
	}

	placedAt := ""
	if !sub.PlacedAt.IsZero() {
		placedAt = sub.PlacedAt.UTC().Format("2006-01-02 15:04 MST")
	}

	return fmt.Sprintf(`<!DOCTYPE html>
<html>
<head>
	<meta charset="UTF-8">
	<meta name="viewport" content="width=device-width, initial-scale=1.0">
</head>
<body style="font-family: -apple-system, BlinkMacSystemFont, 'Segoe UI', Roboto, sans-serif; line-height: 1.6; color: #333; max-width: 600px; margin: 0 auto; padding: 20px;">
	<div style="background: linear-gradient(135deg, #0f766e 0%%, #14b8a6 100%%); padding: 30px; border-radius: 10px 10px 0 0;">
		<h1 style="color: white; margin: 0; font-size: 24px;">New Order</h1>
	</div>

	<div style="background: #fff; padding: 30px; border: 1px solid #eee; border-top: none; border-radius: 0 0 10px 10px;">
		<div style="background: #f8f9fa; padding: 15px; border-radius: 5px; margin: 0 0 20px 0;">
			<p style="margin: 0; font-size: 14px; color: #666;">Order reference</p>
			<p style="margin: 5px 0 0 0; font-size: 16px; font-weight: bold; font-family: monospace;">%s</p>
			<p style="margin: 5px 0 0 0; font-size: 12px; color: #999;">%s</p>
		</div>

		<h2 style="font-size: 18px; border-bottom: 2px solid #0f766e; padding-bottom: 10px;">Customer</h2>
		<table style="width: 100%%; border-collapse: collapse; margin: 10px 0 20px 0;">
			<tr><td style="padding: 6px; color: #666; width: 100px;">Name</td><td style="padding: 6px;">%s</td></tr>
			<tr><td style="padding: 6px; color: #666;">Phone</td><td style="padding: 6px;">%s</td></tr>
			<tr><td style="padding: 6px; color: #666;">Address</td><td style="padding: 6px;">%s</td></tr>
		</table>

		<h2 style="font-size: 18px; border-bottom: 2px solid #0f766e; padding-bottom: 10px;">Items</h2>
		<table style="width: 100%%; border-collapse: collapse; margin: 10px 0 20px 0;">
			<tbody>
				%s
			</tbody>
		</table>

		<div style="text-align: right; padding: 20px; background: #f8f9fa; border-radius: 5px;">
			<p style="margin: 0; font-size: 14px; color: #666;">Shipping: %s</p>
			<span style="font-size: 14px; color: #666;">Total</span>
			<span style="font-size: 24px; font-weight: bold; color: #0f766e; margin-left: 10px;">%s</span>
		</div>
	</div>
</body>
</html>`,
		html.EscapeString(sub.OrderRef),
		placedAt,
		html.EscapeString(sub.CustomerName),
		html.EscapeString(sub.CustomerPhone),
		html.EscapeString(sub.CustomerAddress),
		itemsHTML.String(),
		html.EscapeString(sub.ShippingLabel),
		html.EscapeString(sub.TotalFormatted),
	)
}
