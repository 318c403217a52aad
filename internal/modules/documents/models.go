package documents

import "github.com/plutopets/pluto-backend/internal/filehost"

// --- DTOs ---

type CreateDocumentRequest struct {
	Name     string `json:"name"`
	Type     string `json:"type"`
	Date     string `json:"date"`
	FileURL  string `json:"fileUrl"`
	FileID   string `json:"fileId"`
	FileSize int64  `json:"fileSize"`
	MimeType string `json:"mimeType"`
}

type RenameDocumentRequest struct {
	Name string `json:"name"`
}

// UploadSignatureResponse bundles the signature with the host endpoint the
// client should POST the file to.
type UploadSignatureResponse struct {
	filehost.UploadSignature
	UploadURL string `json:"uploadUrl"`
}
