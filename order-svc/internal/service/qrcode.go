package service

import (
	"fmt"

	"github.com/skip2/go-qrcode"
)

// DefaultQRGenerator encodes a link to the public order receipt page.
type DefaultQRGenerator struct {
	BaseURL string
	Size    int
}

func (g DefaultQRGenerator) Generate(orderID int) ([]byte, error) {
	size := g.Size
	if size <= 0 {
		size = 256
	}
	return qrcode.Encode(g.ReceiptURL(orderID), qrcode.Medium, size)
}

func (g DefaultQRGenerator) ReceiptURL(orderID int) string {
	return fmt.Sprintf("%s/orders/%d", g.BaseURL, orderID)
}
