package service

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"testing"
	"time"

	"clientdesk/internal/config"
	"clientdesk/internal/model"
	"clientdesk/internal/repository"
	"clientdesk/pkg/datauri"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	pdfmodel "github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// buildPDF assembles a syntactically complete single-xref PDF with the given
// number of empty pages. Offsets are computed while writing so the xref table
// is exact.
func buildPDF(pages int) []byte {
	return buildPDFWithHeight(pages, 792)
}

// buildPDFWithHeight sets a distinguishing MediaBox height on every page, so
// page provenance stays observable after a merge.
func buildPDFWithHeight(pages, height int) []byte {
	var buf bytes.Buffer
	offsets := []int{}

	addObj := func(body string) {
		offsets = append(offsets, buf.Len())
		buf.WriteString(body)
	}

	buf.WriteString("%PDF-1.4\n")
	addObj("1 0 obj\n<< /Type /Catalog /Pages 2 0 R >>\nendobj\n")

	kids := make([]string, pages)
	for i := 0; i < pages; i++ {
		kids[i] = fmt.Sprintf("%d 0 R", i+3)
	}
	addObj(fmt.Sprintf("2 0 obj\n<< /Type /Pages /Kids [%s] /Count %d >>\nendobj\n",
		strings.Join(kids, " "), pages))
	for i := 0; i < pages; i++ {
		addObj(fmt.Sprintf("%d 0 obj\n<< /Type /Page /Parent 2 0 R /MediaBox [0 0 612 %d] >>\nendobj\n", i+3, height))
	}

	xrefOffset := buf.Len()
	fmt.Fprintf(&buf, "xref\n0 %d\n", len(offsets)+1)
	buf.WriteString("0000000000 65535 f \n")
	for _, off := range offsets {
		fmt.Fprintf(&buf, "%010d 00000 n \n", off)
	}
	fmt.Fprintf(&buf, "trailer\n<< /Size %d /Root 1 0 R >>\nstartxref\n%d\n%%%%EOF\n",
		len(offsets)+1, xrefOffset)
	return buf.Bytes()
}

type mergeFixture struct {
	clients *ClientService
	merge   *MergeService
}

func newMergeFixture() *mergeFixture {
	clients := NewClientService(config.New(), repository.NewMemoryClientRepository())
	merge := NewMergeService(clients, repository.NewMemoryMergedRepository(), discardLogger())
	return &mergeFixture{clients: clients, merge: merge}
}

func (fx *mergeFixture) addPDF(t *testing.T, clientName, fileName string, pages int) model.FileRef {
	t.Helper()
	ctx := context.Background()
	client, err := fx.clients.Create(ctx, model.ClientFields{NIT: "1", Email: "x@x.co", LegalName: clientName})
	require.NoError(t, err)
	data := buildPDF(pages)
	file, err := fx.clients.AddFile(ctx, client.ID, model.File{
		Name:     fileName,
		MIMEType: "application/pdf",
		Size:     int64(len(data)),
		Content:  datauri.Encode("application/pdf", data),
		Year:     "2024",
		Period:   "Enero",
	})
	require.NoError(t, err)
	return model.FileRef{ClientID: client.ID, FileID: file.ID}
}

func TestBuildPDFFixtureIsParseable(t *testing.T) {
	conf := pdfmodel.NewDefaultConfiguration()
	conf.ValidationMode = pdfmodel.ValidationRelaxed
	for _, pages := range []int{1, 2, 5} {
		n, err := api.PageCount(bytes.NewReader(buildPDF(pages)), conf)
		require.NoError(t, err)
		assert.Equal(t, pages, n)
	}
}

func TestMergeConcatenatesAllPages(t *testing.T) {
	fx := newMergeFixture()
	ctx := context.Background()
	ref1 := fx.addPDF(t, "Acme", "iva.pdf", 1)
	ref2 := fx.addPDF(t, "Globex", "renta.pdf", 2)

	doc, err := fx.merge.Merge(ctx, "Consolidado", []model.FileRef{ref1, ref2})
	require.NoError(t, err)

	assert.Equal(t, "Consolidado.pdf", doc.Name)
	assert.Equal(t, 2, doc.FileCount)
	assert.Equal(t, []string{"Acme", "Globex"}, doc.ClientNames)
	assert.NotEmpty(t, doc.ID)
	assert.False(t, doc.CreatedAt.IsZero())

	mime, data, err := datauri.Decode(doc.Content)
	require.NoError(t, err)
	assert.Equal(t, "application/pdf", mime)

	conf := pdfmodel.NewDefaultConfiguration()
	conf.ValidationMode = pdfmodel.ValidationRelaxed
	n, err := api.PageCount(bytes.NewReader(data), conf)
	require.NoError(t, err)
	assert.Equal(t, 3, n, "every page of every input must survive the merge")

	stored, err := fx.merge.List(ctx)
	require.NoError(t, err)
	require.Len(t, stored, 1)
	assert.Equal(t, doc.ID, stored[0].ID)
}

func TestMergePreservesInputListPageOrder(t *testing.T) {
	// Each input gets a distinct page height, so the merged document betrays
	// any reordering: all of file 1's pages must precede all of file 2's.
	fx := newMergeFixture()
	ctx := context.Background()

	heights := []int{700, 800, 900}
	refs := make([]model.FileRef, 0, len(heights))
	for i, h := range heights {
		client, err := fx.clients.Create(ctx, model.ClientFields{
			NIT: "1", Email: "x@x.co", LegalName: fmt.Sprintf("Cliente %d", i+1),
		})
		require.NoError(t, err)
		data := buildPDFWithHeight(2, h)
		file, err := fx.clients.AddFile(ctx, client.ID, model.File{
			Name:     fmt.Sprintf("doc%d.pdf", i+1),
			MIMEType: "application/pdf",
			Size:     int64(len(data)),
			Content:  datauri.Encode("application/pdf", data),
		})
		require.NoError(t, err)
		refs = append(refs, model.FileRef{ClientID: client.ID, FileID: file.ID})
	}

	doc, err := fx.merge.Merge(ctx, "orden", refs)
	require.NoError(t, err)

	_, data, err := datauri.Decode(doc.Content)
	require.NoError(t, err)

	conf := pdfmodel.NewDefaultConfiguration()
	conf.ValidationMode = pdfmodel.ValidationRelaxed
	dims, err := api.PageDims(bytes.NewReader(data), conf)
	require.NoError(t, err)

	got := make([]float64, 0, len(dims))
	for _, d := range dims {
		got = append(got, d.Height)
	}
	assert.Equal(t, []float64{700, 700, 800, 800, 900, 900}, got)
}

func TestMergeSizeIsSumOfInputs(t *testing.T) {
	fx := newMergeFixture()
	ref1 := fx.addPDF(t, "Acme", "a.pdf", 1)
	ref2 := fx.addPDF(t, "Globex", "b.pdf", 1)

	f1, err := fx.clients.GetFile(context.Background(), ref1.ClientID, ref1.FileID)
	require.NoError(t, err)
	f2, err := fx.clients.GetFile(context.Background(), ref2.ClientID, ref2.FileID)
	require.NoError(t, err)

	doc, err := fx.merge.Merge(context.Background(), "suma", []model.FileRef{ref1, ref2})
	require.NoError(t, err)
	assert.Equal(t, f1.Size+f2.Size, doc.Size)
}

func TestMergeDeduplicatesClientNames(t *testing.T) {
	fx := newMergeFixture()
	ctx := context.Background()
	client, err := fx.clients.Create(ctx, model.ClientFields{NIT: "1", Email: "a@a.co", LegalName: "Acme"})
	require.NoError(t, err)

	refs := []model.FileRef{}
	for _, name := range []string{"a.pdf", "b.pdf"} {
		data := buildPDF(1)
		file, err := fx.clients.AddFile(ctx, client.ID, model.File{
			Name:    name,
			Size:    int64(len(data)),
			Content: datauri.Encode("application/pdf", data),
		})
		require.NoError(t, err)
		refs = append(refs, model.FileRef{ClientID: client.ID, FileID: file.ID})
	}

	doc, err := fx.merge.Merge(ctx, "mismo cliente", refs)
	require.NoError(t, err)
	assert.Equal(t, []string{"Acme"}, doc.ClientNames)
	assert.Equal(t, 2, doc.FileCount)
}

func TestMergeValidation(t *testing.T) {
	fx := newMergeFixture()
	ctx := context.Background()
	ref := fx.addPDF(t, "Acme", "a.pdf", 1)

	_, err := fx.merge.Merge(ctx, "x", nil)
	assert.ErrorIs(t, err, ErrNoFilesSelected)

	_, err = fx.merge.Merge(ctx, "   ", []model.FileRef{ref})
	assert.ErrorIs(t, err, ErrEmptyName)
}

func TestMergeRejectsNonPDFAndPersistsNothing(t *testing.T) {
	fx := newMergeFixture()
	ctx := context.Background()
	client, err := fx.clients.Create(ctx, model.ClientFields{NIT: "1", Email: "a@a.co", LegalName: "Acme"})
	require.NoError(t, err)
	file, err := fx.clients.AddFile(ctx, client.ID, model.File{
		Name:     "foto.png",
		MIMEType: "image/png",
		Content:  datauri.Encode("image/png", []byte{0x89, 0x50}),
	})
	require.NoError(t, err)

	_, err = fx.merge.Merge(ctx, "x", []model.FileRef{{ClientID: client.ID, FileID: file.ID}})
	assert.ErrorIs(t, err, ErrInvalidPDF)

	stored, err := fx.merge.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, stored)
}

func TestMergeRejectsCorruptPDF(t *testing.T) {
	fx := newMergeFixture()
	ctx := context.Background()
	client, err := fx.clients.Create(ctx, model.ClientFields{NIT: "1", Email: "a@a.co", LegalName: "Acme"})
	require.NoError(t, err)
	file, err := fx.clients.AddFile(ctx, client.ID, model.File{
		Name:     "roto.pdf",
		MIMEType: "application/pdf",
		Content:  datauri.Encode("application/pdf", []byte("this is not a pdf")),
	})
	require.NoError(t, err)

	good := fx.addPDF(t, "Globex", "ok.pdf", 1)
	_, err = fx.merge.Merge(ctx, "x", []model.FileRef{good, {ClientID: client.ID, FileID: file.ID}})
	assert.ErrorIs(t, err, ErrInvalidPDF)

	stored, err := fx.merge.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, stored, "a failed merge must not persist anything")
}

func TestMergeUnknownRef(t *testing.T) {
	fx := newMergeFixture()
	_, err := fx.merge.Merge(context.Background(), "x", []model.FileRef{{ClientID: "nope", FileID: "nope"}})
	assert.ErrorIs(t, err, ErrInvalidPDF)
}

func TestMergedDocumentLifecycle(t *testing.T) {
	fx := newMergeFixture()
	ctx := context.Background()
	ref := fx.addPDF(t, "Acme", "a.pdf", 1)

	doc, err := fx.merge.Merge(ctx, "uno", []model.FileRef{ref})
	require.NoError(t, err)

	got, err := fx.merge.Get(ctx, doc.ID)
	require.NoError(t, err)
	assert.Equal(t, doc.Name, got.Name)

	_, err = fx.merge.Get(ctx, "missing")
	assert.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, fx.merge.Delete(ctx, doc.ID))
	require.NoError(t, fx.merge.Delete(ctx, doc.ID), "stale delete no-ops")

	_, err = fx.merge.Merge(ctx, "dos", []model.FileRef{ref})
	require.NoError(t, err)
	require.NoError(t, fx.merge.Clear(ctx))
	stored, err := fx.merge.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, stored)
}

func TestMergeCandidatesKeepsOnlyPDFs(t *testing.T) {
	fx := newMergeFixture()
	ctx := context.Background()
	client, err := fx.clients.Create(ctx, model.ClientFields{NIT: "1", Email: "a@a.co", LegalName: "Acme"})
	require.NoError(t, err)
	_, err = fx.clients.AddFile(ctx, client.ID, model.File{Name: "a.pdf", MIMEType: "application/pdf", Year: "2024"})
	require.NoError(t, err)
	_, err = fx.clients.AddFile(ctx, client.ID, model.File{Name: "foto.png", MIMEType: "image/png", Year: "2024"})
	require.NoError(t, err)

	groups, err := fx.merge.MergeCandidates(ctx, FileFilter{Year: "2024"})
	require.NoError(t, err)
	require.Len(t, groups, 1)
	require.Len(t, groups[0].Files, 1)
	assert.Equal(t, "a.pdf", groups[0].Files[0].Name)

	groups, err = fx.merge.MergeCandidates(ctx, FileFilter{Year: "2025"})
	require.NoError(t, err)
	assert.Empty(t, groups)
}

func TestGenerateMergedName(t *testing.T) {
	now := time.Date(2024, 3, 15, 10, 0, 0, 0, time.UTC)
	tests := []struct {
		name    string
		clients []string
		want    string
	}{
		{"no clients", nil, "Fusionado_2024-03-15"},
		{"one client", []string{"Acme"}, "Acme_2024-03-15"},
		{"two clients", []string{"Acme", "Globex"}, "Acme_Globex_2024-03-15"},
		{"three clients", []string{"A", "B", "C"}, "Fusionado_3_clientes_2024-03-15"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, GenerateMergedName(tt.clients, now))
		})
	}
}
