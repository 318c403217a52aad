package documents

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/plutopets/pluto-backend/internal/filehost"
	"github.com/plutopets/pluto-backend/internal/store"
)

var (
	ErrDocumentNotFound = errors.New("document not found")
)

type Service struct {
	store     store.Store
	files     *filehost.Client
	uploadURL string
}

func NewService(st store.Store, files *filehost.Client, uploadURL string) *Service {
	return &Service{store: st, files: files, uploadURL: uploadURL}
}

func (s *Service) List(ownerID string) ([]store.PetDocument, error) {
	return s.store.GetDocuments(ownerID)
}

func (s *Service) Add(ownerID string, req CreateDocumentRequest) (*store.PetDocument, error) {
	docType := req.Type
	switch docType {
	case store.DocTypePrescription, store.DocTypeBill, store.DocTypeReport, store.DocTypeNote:
	default:
		docType = store.DocTypeNote
	}

	date := req.Date
	if date == "" {
		date = time.Now().Format("2006-01-02")
	}

	doc := store.PetDocument{
		ID:       uuid.NewString(),
		Name:     req.Name,
		Type:     docType,
		Date:     date,
		FileURL:  req.FileURL,
		FileID:   req.FileID,
		FileSize: req.FileSize,
		MimeType: req.MimeType,
	}

	docs, err := s.store.GetDocuments(ownerID)
	if err != nil {
		return nil, err
	}
	docs = append(docs, doc)
	if err := s.store.SaveDocuments(ownerID, docs); err != nil {
		return nil, err
	}
	return &doc, nil
}

func (s *Service) Rename(ownerID, id, name string) (*store.PetDocument, error) {
	docs, err := s.store.GetDocuments(ownerID)
	if err != nil {
		return nil, err
	}
	for i := range docs {
		if docs[i].ID != id {
			continue
		}
		docs[i].Name = name
		if err := s.store.SaveDocuments(ownerID, docs); err != nil {
			return nil, err
		}
		out := docs[i]
		return &out, nil
	}
	return nil, ErrDocumentNotFound
}

// Delete removes the metadata and the hosted file. A file the host no longer
// knows about still deletes cleanly; any other host failure aborts before
// the metadata is touched.
func (s *Service) Delete(ctx context.Context, ownerID, id string) error {
	docs, err := s.store.GetDocuments(ownerID)
	if err != nil {
		return err
	}
	idx := -1
	for i := range docs {
		if docs[i].ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return nil
	}

	if docs[idx].FileID != "" {
		if err := s.files.Delete(ctx, docs[idx].FileID); err != nil {
			return fmt.Errorf("delete hosted file: %w", err)
		}
	}

	docs = append(docs[:idx], docs[idx+1:]...)
	return s.store.SaveDocuments(ownerID, docs)
}

// NewUploadSignature issues the token/signature pair for a direct client
// upload.
func (s *Service) NewUploadSignature() UploadSignatureResponse {
	return UploadSignatureResponse{
		UploadSignature: s.files.NewUploadSignature(10 * time.Minute),
		UploadURL:       s.uploadURL,
	}
}
