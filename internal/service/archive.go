package service

import (
	"archive/zip"
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"clientdesk/internal/model"
	"clientdesk/pkg/datauri"
	"clientdesk/pkg/util"

	"github.com/klauspost/compress/flate"
)

// Archive is a packed zip ready to be offered as a download.
type Archive struct {
	Name string
	Data []byte
}

// ArchiveService packs stored files into compressed zip archives, flat for
// a single client or grouped into per-client folders for the "all clients"
// mode. Compression is always DEFLATE level 9; that is policy, not a knob.
type ArchiveService struct {
	clients *ClientService
	log     *slog.Logger
}

// NewArchiveService creates a new archive service
func NewArchiveService(clients *ClientService, log *slog.Logger) *ArchiveService {
	return &ArchiveService{clients: clients, log: log}
}

type zipEntry struct {
	path string
	file model.File
}

// PackClient archives one client's files matching the filter under flat
// entry names.
func (s *ArchiveService) PackClient(ctx context.Context, clientID string, filter FileFilter) (*Archive, error) {
	client, err := s.clients.GetByID(ctx, clientID)
	if err != nil {
		return nil, err
	}
	files, err := s.clients.GetFiles(ctx, clientID, filter)
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return nil, ErrNothingToCompress
	}

	entries := make([]zipEntry, 0, len(files))
	for _, f := range files {
		entries = append(entries, zipEntry{path: f.Name, file: f})
	}
	data, err := s.pack(entries)
	if err != nil {
		return nil, err
	}

	name := BuildClientArchiveName(client.LegalName, filter.Year, filter.Period)
	s.log.Info("packed archive", "name", name, "files", len(files), "size", util.FormatFileSize(int64(len(data))))
	return &Archive{Name: name, Data: data}, nil
}

// PackAll archives every client's matching files, one sanitized folder per
// client. Clients with no matching files contribute no folder.
func (s *ArchiveService) PackAll(ctx context.Context, filter FileFilter) (*Archive, error) {
	groups, err := s.clients.GetAllFiles(ctx, filter)
	if err != nil {
		return nil, err
	}
	entries := []zipEntry{}
	for _, group := range groups {
		folder := SanitizeOwnerName(group.Client.LegalName)
		for _, f := range group.Files {
			entries = append(entries, zipEntry{path: folder + "/" + f.Name, file: f})
		}
	}
	if len(entries) == 0 {
		return nil, ErrNothingToCompress
	}

	data, err := s.pack(entries)
	if err != nil {
		return nil, err
	}

	name := BuildAllClientsArchiveName(filter.Year, filter.Period)
	s.log.Info("packed archive", "name", name, "files", len(entries), "size", util.FormatFileSize(int64(len(data))))
	return &Archive{Name: name, Data: data}, nil
}

// pack writes entries sequentially, in input order, decoding one payload at
// a time. Any failure aborts the whole archive.
func (s *ArchiveService) pack(entries []zipEntry) ([]byte, error) {
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	zw.RegisterCompressor(zip.Deflate, func(out io.Writer) (io.WriteCloser, error) {
		return flate.NewWriter(out, flate.BestCompression)
	})

	used := map[string]int{}
	for _, e := range entries {
		path := uniquePath(used, e.path)
		w, err := zw.Create(path)
		if err != nil {
			return nil, fmt.Errorf("compress %s: %w", e.path, err)
		}
		_, data, err := datauri.Decode(e.file.Content)
		if err != nil {
			return nil, fmt.Errorf("compress %s: %w", e.path, err)
		}
		if _, err := w.Write(data); err != nil {
			return nil, fmt.Errorf("compress %s: %w", e.path, err)
		}
	}
	if err := zw.Close(); err != nil {
		return nil, fmt.Errorf("compress: %w", err)
	}
	return buf.Bytes(), nil
}

// uniquePath disambiguates repeated entry paths; some zip readers choke on
// duplicates. "a.pdf" seen twice becomes "a_2.pdf".
func uniquePath(used map[string]int, path string) string {
	used[path]++
	if used[path] == 1 {
		return path
	}
	ext := ""
	base := path
	if idx := strings.LastIndex(path, "."); idx > strings.LastIndex(path, "/") {
		base, ext = path[:idx], path[idx:]
	}
	return fmt.Sprintf("%s_%d%s", base, used[path], ext)
}

// SanitizeOwnerName replaces the characters that are unsafe as archive path
// segments with underscores.
func SanitizeOwnerName(name string) string {
	return util.SanitizeFilename(name)
}

// BuildAllClientsArchiveName is the download name for "all clients" mode.
func BuildAllClientsArchiveName(year, period string) string {
	name := "Todos_los_clientes"
	if year != "" {
		name += "_" + year
	}
	if period != "" {
		name += "_" + period
	}
	return name + ".zip"
}

// BuildClientArchiveName is the download name for single-client mode, with
// whitespace runs collapsed to underscores.
func BuildClientArchiveName(clientName, year, period string) string {
	name := clientName
	if year != "" {
		name += "_" + year
	}
	if period != "" {
		name += "_" + period
	}
	name += ".zip"
	return strings.Join(strings.Fields(name), "_")
}
