package documents

import (
	"context"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/plutopets/pluto-backend/internal/filehost"
	"github.com/plutopets/pluto-backend/internal/store"
)

func newTestService(t *testing.T, hostStatus int, hostCalls *int) *Service {
	t.Helper()
	st, err := store.NewFileStore(filepath.Join(t.TempDir(), "store.json"))
	if err != nil {
		t.Fatalf("file store: %v", err)
	}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if hostCalls != nil {
			*hostCalls++
		}
		w.WriteHeader(hostStatus)
	}))
	t.Cleanup(srv.Close)
	client := filehost.NewClient(srv.URL, "test-key", 5*time.Second)
	return NewService(st, client, srv.URL+"/upload")
}

func TestAddDefaultsTypeAndDate(t *testing.T) {
	svc := newTestService(t, http.StatusOK, nil)

	doc, err := svc.Add("owner-1", CreateDocumentRequest{Name: "scan.png", Type: "weird", FileURL: "https://host/scan.png"})
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	if doc.Type != store.DocTypeNote {
		t.Fatalf("unknown type should default to note, got %q", doc.Type)
	}
	if doc.Date == "" {
		t.Fatal("date should default to today")
	}
}

func TestRename(t *testing.T) {
	svc := newTestService(t, http.StatusOK, nil)

	doc, _ := svc.Add("owner-1", CreateDocumentRequest{Name: "old.pdf", FileURL: "u"})
	renamed, err := svc.Rename("owner-1", doc.ID, "new.pdf")
	if err != nil {
		t.Fatalf("rename: %v", err)
	}
	if renamed.Name != "new.pdf" {
		t.Fatalf("rename did not apply: %+v", renamed)
	}

	if _, err := svc.Rename("owner-1", "missing", "x"); err != ErrDocumentNotFound {
		t.Fatalf("expected ErrDocumentNotFound, got %v", err)
	}
}

func TestDeleteRemovesRemoteFileFirst(t *testing.T) {
	calls := 0
	svc := newTestService(t, http.StatusNoContent, &calls)

	doc, _ := svc.Add("owner-1", CreateDocumentRequest{Name: "bill.pdf", FileURL: "u", FileID: "file-1"})
	if err := svc.Delete(context.Background(), "owner-1", doc.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if calls != 1 {
		t.Fatalf("expected one host delete, got %d", calls)
	}
	docs, _ := svc.List("owner-1")
	if len(docs) != 0 {
		t.Fatalf("metadata should be gone: %+v", docs)
	}
}

func TestDeleteHostNotFoundStillDeletesMetadata(t *testing.T) {
	svc := newTestService(t, http.StatusNotFound, nil)

	doc, _ := svc.Add("owner-1", CreateDocumentRequest{Name: "gone.pdf", FileURL: "u", FileID: "file-1"})
	if err := svc.Delete(context.Background(), "owner-1", doc.ID); err != nil {
		t.Fatalf("404 from host should not fail delete: %v", err)
	}
	docs, _ := svc.List("owner-1")
	if len(docs) != 0 {
		t.Fatalf("metadata should be gone: %+v", docs)
	}
}

func TestDeleteHostFailureKeepsMetadata(t *testing.T) {
	svc := newTestService(t, http.StatusInternalServerError, nil)

	doc, _ := svc.Add("owner-1", CreateDocumentRequest{Name: "kept.pdf", FileURL: "u", FileID: "file-1"})
	if err := svc.Delete(context.Background(), "owner-1", doc.ID); err == nil {
		t.Fatal("expected error when host delete fails")
	}
	docs, _ := svc.List("owner-1")
	if len(docs) != 1 {
		t.Fatalf("metadata must survive a failed host delete: %+v", docs)
	}
}

func TestDeleteMissingIsNoOp(t *testing.T) {
	calls := 0
	svc := newTestService(t, http.StatusOK, &calls)

	if err := svc.Delete(context.Background(), "owner-1", "missing"); err != nil {
		t.Fatalf("delete missing: %v", err)
	}
	if calls != 0 {
		t.Fatal("missing doc should not hit the host")
	}
}

func TestUploadSignatureIncludesUploadURL(t *testing.T) {
	svc := newTestService(t, http.StatusOK, nil)

	sig := svc.NewUploadSignature()
	if sig.Token == "" || sig.Signature == "" || sig.UploadURL == "" {
		t.Fatalf("incomplete signature response: %+v", sig)
	}
}
