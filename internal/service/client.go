package service

import (
	"context"
	"sort"
	"strings"
	"time"

	"clientdesk/internal/config"
	"clientdesk/internal/model"
	"clientdesk/internal/repository"
	"clientdesk/pkg/util"
)

// FileFilter narrows a client's files by classification tags. Empty fields
// match everything.
type FileFilter struct {
	Year   string
	Period string
}

// ClientService is the record store and query engine over clients. All
// mutations are total: unknown client or file ids no-op instead of failing,
// so a stale id from another tab never crashes the caller.
type ClientService struct {
	repo repository.IClientRepository
	cfg  *config.Config
}

// NewClientService creates a new client service
func NewClientService(cfg *config.Config, repo repository.IClientRepository) *ClientService {
	return &ClientService{repo: repo, cfg: cfg}
}

// Create assigns a fresh id, stamps the creation time and persists the new
// client with empty file and annotation collections.
func (s *ClientService) Create(ctx context.Context, fields model.ClientFields) (*model.Client, error) {
	client := &model.Client{
		ID:          util.NewID(),
		Files:       []model.File{},
		Annotations: []model.Annotation{},
		CreatedAt:   time.Now(),
	}
	applyFields(client, fields)
	if err := s.repo.Create(ctx, client); err != nil {
		return nil, err
	}
	return client, nil
}

// Update replaces every mutable attribute of an existing client with the
// given fields; callers send the full field set, so an omitted optional
// field clears its stored value. Files, annotations and mark selections are
// untouched. Unknown ids no-op.
func (s *ClientService) Update(ctx context.Context, id string, fields model.ClientFields) error {
	client, err := s.repo.FindByID(ctx, id)
	if err != nil || client == nil {
		return err
	}
	applyFields(client, fields)
	return s.repo.Replace(ctx, client)
}

// Delete removes a client and, with it, every owned file and annotation.
func (s *ClientService) Delete(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}

// GetByID returns the client or ErrNotFound.
func (s *ClientService) GetByID(ctx context.Context, id string) (*model.Client, error) {
	client, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if client == nil {
		return nil, ErrNotFound
	}
	return client, nil
}

func applyFields(client *model.Client, f model.ClientFields) {
	client.NIT = f.NIT
	client.Email = f.Email
	client.Secret = f.Secret
	client.LegalName = f.LegalName
	client.TaxpayerType = f.TaxpayerType
	client.EntityType = f.EntityType
	client.Contact = f.Contact
	client.Administration = f.Administration
	client.Billing = f.Billing
	client.Regime = f.Regime
	client.Activity = f.Activity
	client.Address = f.Address
}

// AddFile appends a file to the owning client. Id and upload time are
// stamped here when the caller left them empty. No-op if the client is gone.
func (s *ClientService) AddFile(ctx context.Context, clientID string, file model.File) (*model.File, error) {
	client, err := s.repo.FindByID(ctx, clientID)
	if err != nil || client == nil {
		return nil, err
	}
	if file.ID == "" {
		file.ID = util.NewID()
	}
	if file.UploadedAt.IsZero() {
		file.UploadedAt = time.Now()
	}
	client.Files = append(client.Files, file)
	if err := s.repo.Replace(ctx, client); err != nil {
		return nil, err
	}
	return &file, nil
}

// DeleteFile removes one file from the owning client; stale ids no-op.
func (s *ClientService) DeleteFile(ctx context.Context, clientID, fileID string) error {
	client, err := s.repo.FindByID(ctx, clientID)
	if err != nil || client == nil {
		return err
	}
	kept := client.Files[:0]
	for _, f := range client.Files {
		if f.ID != fileID {
			kept = append(kept, f)
		}
	}
	client.Files = kept
	return s.repo.Replace(ctx, client)
}

// GetFile returns one stored file, for viewing or download.
func (s *ClientService) GetFile(ctx context.Context, clientID, fileID string) (*model.File, error) {
	client, err := s.repo.FindByID(ctx, clientID)
	if err != nil {
		return nil, err
	}
	if client == nil {
		return nil, ErrNotFound
	}
	for i := range client.Files {
		if client.Files[i].ID == fileID {
			return &client.Files[i], nil
		}
	}
	return nil, ErrNotFound
}

// GetFiles returns the client's files, filtered by year/period when set,
// in upload order. An unknown client yields an empty slice.
func (s *ClientService) GetFiles(ctx context.Context, clientID string, filter FileFilter) ([]model.File, error) {
	client, err := s.repo.FindByID(ctx, clientID)
	if err != nil {
		return nil, err
	}
	if client == nil {
		return []model.File{}, nil
	}
	return filterFiles(client.Files, filter), nil
}

// GetAllFiles projects the filtered files of every client, omitting
// clients with no matching files.
func (s *ClientService) GetAllFiles(ctx context.Context, filter FileFilter) ([]model.ClientFiles, error) {
	clients, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	result := []model.ClientFiles{}
	for _, client := range clients {
		files := filterFiles(client.Files, filter)
		if len(files) > 0 {
			result = append(result, model.ClientFiles{Client: client, Files: files})
		}
	}
	return result, nil
}

func filterFiles(files []model.File, filter FileFilter) []model.File {
	out := []model.File{}
	for _, f := range files {
		if filter.Year != "" && f.Year != filter.Year {
			continue
		}
		if filter.Period != "" && f.Period != filter.Period {
			continue
		}
		out = append(out, f)
	}
	return out
}

// AddAnnotation appends a note to the client; no-op when the client is gone.
func (s *ClientService) AddAnnotation(ctx context.Context, clientID, text string) (*model.Annotation, error) {
	client, err := s.repo.FindByID(ctx, clientID)
	if err != nil || client == nil {
		return nil, err
	}
	annotation := model.Annotation{
		ID:        util.NewID(),
		Text:      text,
		CreatedAt: time.Now(),
	}
	client.Annotations = append(client.Annotations, annotation)
	if err := s.repo.Replace(ctx, client); err != nil {
		return nil, err
	}
	return &annotation, nil
}

// DeleteAnnotation removes one note; stale ids no-op.
func (s *ClientService) DeleteAnnotation(ctx context.Context, clientID, annotationID string) error {
	client, err := s.repo.FindByID(ctx, clientID)
	if err != nil || client == nil {
		return err
	}
	kept := client.Annotations[:0]
	for _, a := range client.Annotations {
		if a.ID != annotationID {
			kept = append(kept, a)
		}
	}
	client.Annotations = kept
	return s.repo.Replace(ctx, client)
}

// UpdateAnnotation replaces a note's text and stamps the modification time.
func (s *ClientService) UpdateAnnotation(ctx context.Context, clientID, annotationID, text string) error {
	client, err := s.repo.FindByID(ctx, clientID)
	if err != nil || client == nil {
		return err
	}
	for i := range client.Annotations {
		if client.Annotations[i].ID == annotationID {
			now := time.Now()
			client.Annotations[i].Text = text
			client.Annotations[i].ModifiedAt = &now
		}
	}
	return s.repo.Replace(ctx, client)
}

// GetAnnotations lists a client's notes; unknown client yields empty.
func (s *ClientService) GetAnnotations(ctx context.Context, clientID string) ([]model.Annotation, error) {
	client, err := s.repo.FindByID(ctx, clientID)
	if err != nil {
		return nil, err
	}
	if client == nil {
		return []model.Annotation{}, nil
	}
	return client.Annotations, nil
}

// SetMarks replaces the client's control-mark selections. Selections are
// weak references into the catalog; they are stored as-is.
func (s *ClientService) SetMarks(ctx context.Context, clientID string, selections []model.MarkSelection) error {
	client, err := s.repo.FindByID(ctx, clientID)
	if err != nil || client == nil {
		return err
	}
	client.Marks = selections
	return s.repo.Replace(ctx, client)
}

// Search filters clients by a case-insensitive substring over NIT, email,
// legal name and contact. An empty term returns the collection unfiltered.
func (s *ClientService) Search(ctx context.Context, term string) ([]*model.Client, error) {
	clients, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	return searchClients(clients, term), nil
}

func searchClients(clients []*model.Client, term string) []*model.Client {
	if term == "" {
		return clients
	}
	t := strings.ToLower(term)
	out := []*model.Client{}
	for _, c := range clients {
		if strings.Contains(strings.ToLower(c.NIT), t) ||
			strings.Contains(strings.ToLower(c.Email), t) ||
			strings.Contains(strings.ToLower(c.LegalName), t) ||
			strings.Contains(strings.ToLower(c.Contact), t) {
			out = append(out, c)
		}
	}
	return out
}

// FilterByLastDigit keeps clients whose NIT, with every non-digit removed,
// ends in the given digit. An empty digit returns the collection unfiltered.
func (s *ClientService) FilterByLastDigit(ctx context.Context, digit string) ([]*model.Client, error) {
	clients, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	return filterByLastDigit(clients, digit), nil
}

func filterByLastDigit(clients []*model.Client, digit string) []*model.Client {
	if digit == "" {
		return clients
	}
	out := []*model.Client{}
	for _, c := range clients {
		nit := stripNonDigits(c.NIT)
		if nit == "" {
			continue
		}
		if nit[len(nit)-1:] == digit {
			out = append(out, c)
		}
	}
	return out
}

func stripNonDigits(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// List applies the digit filter, then the search term, then slices out one
// page. Both filters are independent predicates, so the order only matters
// for matching the original table's behavior, not the result set.
func (s *ClientService) List(ctx context.Context, term, digit string, page, pageSize int) (*model.ClientPage, error) {
	clients, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	filtered := searchClients(filterByLastDigit(clients, digit), term)

	if pageSize <= 0 {
		pageSize = config.DefaultPageSize
	}
	if pageSize > config.MaxPageSize {
		pageSize = config.MaxPageSize
	}
	if page <= 0 {
		page = 1
	}

	start := (page - 1) * pageSize
	end := start + pageSize
	if start > len(filtered) {
		start = len(filtered)
	}
	if end > len(filtered) {
		end = len(filtered)
	}

	return &model.ClientPage{
		Clients:  filtered[start:end],
		Total:    len(filtered),
		Page:     page,
		PageSize: pageSize,
	}, nil
}

// Years lists every distinct file year across all clients, newest first.
func (s *ClientService) Years(ctx context.Context) ([]string, error) {
	clients, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	seen := map[string]bool{}
	years := []string{}
	for _, c := range clients {
		for _, f := range c.Files {
			if f.Year != "" && !seen[f.Year] {
				seen[f.Year] = true
				years = append(years, f.Year)
			}
		}
	}
	sort.Sort(sort.Reverse(sort.StringSlice(years)))
	return years, nil
}

// Periods lists every distinct file period across all clients in calendar
// order, optionally narrowed to one year.
func (s *ClientService) Periods(ctx context.Context, year string) ([]string, error) {
	clients, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	seen := map[string]bool{}
	periods := []string{}
	for _, c := range clients {
		for _, f := range c.Files {
			if year != "" && f.Year != year {
				continue
			}
			if f.Period != "" && !seen[f.Period] {
				seen[f.Period] = true
				periods = append(periods, f.Period)
			}
		}
	}
	return SortPeriods(periods), nil
}
