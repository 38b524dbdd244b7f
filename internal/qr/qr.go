// Package qr builds the QR code images attached to warehouse items. The
// encoded payload carries the stock ID so a scanned label resolves back to
// the item via the dual-key lookup endpoint.
package qr

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"warehouse-backend/internal/storage"

	qrcode "github.com/skip2/go-qrcode"
)

const imageSize = 512

// Payload is the JSON document encoded into an item's QR code.
type Payload struct {
	ID        string `json:"id"` // stock ID
	Type      string `json:"type"`
	Timestamp string `json:"timestamp"`
}

func NewPayload(stockID string) ([]byte, error) {
	return json.Marshal(Payload{
		ID:        stockID,
		Type:      "warehouse_item",
		Timestamp: time.Now().Format(time.RFC3339),
	})
}

// GenerateAndUpload renders data as a 512px PNG with error correction
// level H (printed labels get scuffed) and stores it under
// qrcodes/<filename>. Returns the public URL.
func GenerateAndUpload(ctx context.Context, store storage.Storage, data []byte, filename string) (string, error) {
	png, err := qrcode.Encode(string(data), qrcode.High, imageSize)
	if err != nil {
		return "", fmt.Errorf("encode qr code: %w", err)
	}
	return store.Upload(ctx, "qrcodes/"+filename, "image/png", png)
}
