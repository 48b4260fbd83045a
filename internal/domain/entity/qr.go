package entity

import "encoding/json"

// QRCode código QR de un activo (relación 1:1, asset_id único).
// QRURL guarda la imagen como data URI base64; Payload es el JSON
// {asset_id, asset_url}. La imagen codifica solo la URL, no datos del activo,
// para que el escaneo sea liviano y estable ante cambios del activo.
type QRCode struct {
	ID      string
	AssetID string
	QRURL   string
	Payload json.RawMessage
}

// QRPayload estructura persistida en QRCode.Payload.
type QRPayload struct {
	AssetID  string `json:"asset_id"`
	AssetURL string `json:"asset_url"`
}
