package service

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"clientdesk/internal/model"
	"clientdesk/internal/repository"
	"clientdesk/pkg/datauri"
	"clientdesk/pkg/util"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	pdfmodel "github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
)

const pdfMIMEType = "application/pdf"

// MergeService concatenates stored PDF files into one new document and
// manages the merged-document collection.
type MergeService struct {
	clients *ClientService
	repo    repository.IMergedRepository
	log     *slog.Logger
	conf    *pdfmodel.Configuration
}

// NewMergeService creates a new merge service
func NewMergeService(clients *ClientService, repo repository.IMergedRepository, log *slog.Logger) *MergeService {
	conf := pdfmodel.NewDefaultConfiguration()
	conf.ValidationMode = pdfmodel.ValidationRelaxed
	return &MergeService{clients: clients, repo: repo, log: log, conf: conf}
}

// Merge resolves the referenced files in the given order, concatenates all
// their pages (file 1's pages before file 2's, and so on) and persists the
// result as a MergedDocument. The first undecodable input aborts the whole
// merge; nothing partial is ever persisted.
func (s *MergeService) Merge(ctx context.Context, name string, refs []model.FileRef) (*model.MergedDocument, error) {
	if len(refs) == 0 {
		return nil, ErrNoFilesSelected
	}
	if strings.TrimSpace(name) == "" {
		return nil, ErrEmptyName
	}

	readers := make([]io.ReadSeeker, 0, len(refs))
	var totalSize int64
	clientNames := []string{}
	seenNames := map[string]bool{}

	// Inputs are decoded one at a time; the reader order fixes the page
	// order of the output.
	for _, ref := range refs {
		client, err := s.clients.GetByID(ctx, ref.ClientID)
		if err != nil {
			return nil, fmt.Errorf("%w: client %s", ErrInvalidPDF, ref.ClientID)
		}
		file, err := s.clients.GetFile(ctx, ref.ClientID, ref.FileID)
		if err != nil {
			return nil, fmt.Errorf("%w: file %s", ErrInvalidPDF, ref.FileID)
		}
		if !isPDF(file) {
			return nil, fmt.Errorf("%w: %s", ErrInvalidPDF, file.Name)
		}

		_, data, err := datauri.Decode(file.Content)
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %v", ErrInvalidPDF, file.Name, err)
		}
		rs := bytes.NewReader(data)
		if _, err := api.PageCount(rs, s.conf); err != nil {
			return nil, fmt.Errorf("%w: %s: %v", ErrInvalidPDF, file.Name, err)
		}
		if _, err := rs.Seek(0, io.SeekStart); err != nil {
			return nil, fmt.Errorf("%w: %s: %v", ErrInvalidPDF, file.Name, err)
		}

		readers = append(readers, rs)
		totalSize += file.Size
		if !seenNames[client.LegalName] {
			seenNames[client.LegalName] = true
			clientNames = append(clientNames, client.LegalName)
		}
	}

	var buf bytes.Buffer
	if err := api.MergeRaw(readers, &buf, false, s.conf); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidPDF, err)
	}

	doc := &model.MergedDocument{
		ID:          util.NewID(),
		Name:        util.EnsureExtension(strings.TrimSpace(name), ".pdf"),
		Content:     datauri.Encode(pdfMIMEType, buf.Bytes()),
		Size:        totalSize,
		ClientNames: clientNames,
		FileCount:   len(refs),
		CreatedAt:   time.Now(),
	}
	if err := s.repo.Create(ctx, doc); err != nil {
		return nil, err
	}

	s.log.Info("merged pdfs",
		"name", doc.Name,
		"files", doc.FileCount,
		"clients", len(doc.ClientNames),
		"size", util.FormatFileSize(int64(buf.Len())),
	)
	return doc, nil
}

func isPDF(file *model.File) bool {
	return file.MIMEType == pdfMIMEType ||
		strings.HasSuffix(strings.ToLower(file.Name), ".pdf")
}

// GenerateMergedName derives the default output name from the distinct
// contributing client names and a date: one contributor keeps its name, two
// are joined, three or more collapse into a count.
func GenerateMergedName(clientNames []string, now time.Time) string {
	date := now.Format("2006-01-02")
	switch len(clientNames) {
	case 0:
		return "Fusionado_" + date
	case 1:
		return clientNames[0] + "_" + date
	case 2:
		return clientNames[0] + "_" + clientNames[1] + "_" + date
	default:
		return fmt.Sprintf("Fusionado_%d_clientes_%s", len(clientNames), date)
	}
}

// List returns every merged document.
func (s *MergeService) List(ctx context.Context) ([]*model.MergedDocument, error) {
	return s.repo.FindAll(ctx)
}

// Get returns one merged document or ErrNotFound.
func (s *MergeService) Get(ctx context.Context, id string) (*model.MergedDocument, error) {
	doc, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if doc == nil {
		return nil, ErrNotFound
	}
	return doc, nil
}

// Delete removes one merged document; stale ids no-op.
func (s *MergeService) Delete(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}

// Clear removes every merged document.
func (s *MergeService) Clear(ctx context.Context) error {
	return s.repo.DeleteAll(ctx)
}

// MergeCandidates lists, per client, the stored files that qualify for
// merging: PDFs matching the optional year/period filter.
func (s *MergeService) MergeCandidates(ctx context.Context, filter FileFilter) ([]model.ClientFiles, error) {
	groups, err := s.clients.GetAllFiles(ctx, filter)
	if err != nil {
		return nil, err
	}
	result := []model.ClientFiles{}
	for _, group := range groups {
		pdfs := []model.File{}
		for _, f := range group.Files {
			if isPDF(&f) {
				pdfs = append(pdfs, f)
			}
		}
		if len(pdfs) > 0 {
			result = append(result, model.ClientFiles{Client: group.Client, Files: pdfs})
		}
	}
	return result, nil
}
