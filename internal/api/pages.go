package api

import (
	"html/template"
	"net/http"

	"github.com/gin-gonic/gin"
)

// Simulated pages that generated tracking and checkout URLs point at.

var trackingTmpl = template.Must(template.New("track").Parse(`<html>
  <head><title>UnBolt Tracking</title></head>
  <body style="font-family: Arial, sans-serif; padding: 20px;">
    <h1>UnBolt Tracking Page</h1>
    <p>This simulates the mobile tracking interface</p>
    <div style="background: #f0f8ff; padding: 15px; border-radius: 8px;">
      <h3>Booking Status: In Progress</h3>
      <p>Technician: John Smith</p>
      <p>ETA: 15 minutes</p>
      <p>Status: On the way</p>
    </div>
  </body>
</html>
`))

var successTmpl = template.Must(template.New("success").Parse(`<html>
  <head><title>Payment Successful</title></head>
  <body style="font-family: Arial, sans-serif; padding: 20px; text-align: center;">
    <h1 style="color: #28a745;">Payment Successful!</h1>
    <p>Thank you for your booking with UnBolt</p>
    <div style="background: #d4edda; padding: 15px; border-radius: 8px; margin: 20px 0;">
      <p>A technician will arrive shortly</p>
      <p>Booking ID: {{.BookingID}}</p>
    </div>
  </body>
</html>
`))

func (h *Handler) trackingPage(c *gin.Context) {
	renderHTML(c, trackingTmpl, nil)
}

func (h *Handler) successPage(c *gin.Context) {
	bookingID := c.Query("booking_id")
	if bookingID == "" {
		bookingID = "N/A"
	}
	renderHTML(c, successTmpl, gin.H{"BookingID": bookingID})
}

func renderHTML(c *gin.Context, tmpl *template.Template, data gin.H) {
	c.Header("Content-Type", "text/html; charset=utf-8")
	c.Status(http.StatusOK)
	if err := tmpl.Execute(c.Writer, data); err != nil {
		_ = c.Error(err)
	}
}
