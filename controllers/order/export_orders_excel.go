package orderControllers

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/mohamedkhalil99/ecommerce-api/models"
	"github.com/tealeg/xlsx"
	"gorm.io/gorm"
)

// GET /order/admin/export (admin) — download all orders as an Excel sheet.
func ExportOrdersToExcel(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var orders []models.Order
		if err := db.Preload("Items").Order("created_at DESC").Find(&orders).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"status": 500, "error": "Failed to fetch orders"})
			return
		}

		file := xlsx.NewFile()
		sheet, err := file.AddSheet("Orders")
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"status": 500, "error": "Failed to create Excel sheet"})
			return
		}

		headers := []string{
			"ID", "User", "Items", "Tax", "ShippingFees", "CashOnDelivery",
			"TotalPrice", "PaymentMethod", "IsPaid", "PaidAt", "IsDeliverd",
			"DeliverdAt", "City", "CreatedAt",
		}
		headerRow := sheet.AddRow()
		for _, h := range headers {
			headerRow.AddCell().SetValue(h)
		}

		for _, o := range orders {
			row := sheet.AddRow()

			row.AddCell().SetValue(o.ID)
			row.AddCell().SetValue(o.UserID)
			row.AddCell().SetValue(len(o.Items))
			row.AddCell().SetValue(o.Tax)
			row.AddCell().SetValue(o.ShippingFees)
			row.AddCell().SetValue(o.CashOnDelivery)
			row.AddCell().SetValue(o.OrderTotalPrice)
			row.AddCell().SetValue(string(o.PaymentMethod))
			row.AddCell().SetValue(o.IsPaid)
			row.AddCell().SetValue(formatTime(o.PaidAt))
			row.AddCell().SetValue(o.IsDeliverd)
			row.AddCell().SetValue(formatTime(o.DeliverdAt))
			row.AddCell().SetValue(o.ShippingAddress.City)
			row.AddCell().SetValue(o.CreatedAt.Format("2006-01-02 15:04:05"))
		}

		filename := fmt.Sprintf("orders_%s.xlsx", time.Now().Format("2006-01-02"))
		c.Header("Content-Disposition", "attachment; filename="+filename)
		c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		if err := file.Write(c.Writer); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"status": 500, "error": "Failed to write Excel file"})
		}
	}
}

func formatTime(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format("2006-01-02 15:04:05")
}
