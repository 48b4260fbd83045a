package usecase

// QRGenerator renderiza un código QR PNG para una URL y lo devuelve como
// data URI base64. La imagen codifica solo la URL, nunca datos del activo.
type QRGenerator interface {
	GenerateDataURI(url string) (string, error)
}
