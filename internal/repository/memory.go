package repository

import (
	"context"
	"sync"

	"clientdesk/internal/model"
)

// In-process map implementations of the repositories. They back the unit
// tests, where spinning up MongoDB would be noise; the contract (total
// deletes/replaces, nil on not-found) matches the mongo implementations.

// MemoryClientRepository is an in-memory IClientRepository
type MemoryClientRepository struct {
	mu      sync.RWMutex
	clients map[string]*model.Client
	order   []string
}

func NewMemoryClientRepository() *MemoryClientRepository {
	return &MemoryClientRepository{clients: map[string]*model.Client{}}
}

func copyClient(c *model.Client) *model.Client {
	cp := *c
	cp.Files = append([]model.File(nil), c.Files...)
	cp.Annotations = append([]model.Annotation(nil), c.Annotations...)
	cp.Marks = append([]model.MarkSelection(nil), c.Marks...)
	return &cp
}

func (r *MemoryClientRepository) FindAll(ctx context.Context) ([]*model.Client, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*model.Client, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, copyClient(r.clients[id]))
	}
	return out, nil
}

func (r *MemoryClientRepository) FindByID(ctx context.Context, id string) (*model.Client, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	c, ok := r.clients[id]
	if !ok {
		return nil, nil
	}
	return copyClient(c), nil
}

func (r *MemoryClientRepository) Create(ctx context.Context, client *model.Client) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.clients[client.ID] = copyClient(client)
	r.order = append(r.order, client.ID)
	return nil
}

func (r *MemoryClientRepository) Replace(ctx context.Context, client *model.Client) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.clients[client.ID]; !ok {
		return nil
	}
	r.clients[client.ID] = copyClient(client)
	return nil
}

func (r *MemoryClientRepository) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.clients[id]; !ok {
		return nil
	}
	delete(r.clients, id)
	for i, oid := range r.order {
		if oid == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return nil
}

func (r *MemoryClientRepository) ReplaceAll(ctx context.Context, clients []*model.Client) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.clients = map[string]*model.Client{}
	r.order = nil
	for _, c := range clients {
		r.clients[c.ID] = copyClient(c)
		r.order = append(r.order, c.ID)
	}
	return nil
}

// MemoryMergedRepository is an in-memory IMergedRepository
type MemoryMergedRepository struct {
	mu    sync.RWMutex
	docs  map[string]*model.MergedDocument
	order []string
}

func NewMemoryMergedRepository() *MemoryMergedRepository {
	return &MemoryMergedRepository{docs: map[string]*model.MergedDocument{}}
}

func (r *MemoryMergedRepository) FindAll(ctx context.Context) ([]*model.MergedDocument, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*model.MergedDocument, 0, len(r.order))
	for _, id := range r.order {
		d := *r.docs[id]
		out = append(out, &d)
	}
	return out, nil
}

func (r *MemoryMergedRepository) FindByID(ctx context.Context, id string) (*model.MergedDocument, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	doc, ok := r.docs[id]
	if !ok {
		return nil, nil
	}
	d := *doc
	return &d, nil
}

func (r *MemoryMergedRepository) Create(ctx context.Context, doc *model.MergedDocument) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	d := *doc
	r.docs[doc.ID] = &d
	r.order = append(r.order, doc.ID)
	return nil
}

func (r *MemoryMergedRepository) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.docs[id]; !ok {
		return nil
	}
	delete(r.docs, id)
	for i, oid := range r.order {
		if oid == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return nil
}

func (r *MemoryMergedRepository) DeleteAll(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.docs = map[string]*model.MergedDocument{}
	r.order = nil
	return nil
}

func (r *MemoryMergedRepository) ReplaceAll(ctx context.Context, docs []*model.MergedDocument) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.docs = map[string]*model.MergedDocument{}
	r.order = nil
	for _, doc := range docs {
		d := *doc
		r.docs[doc.ID] = &d
		r.order = append(r.order, doc.ID)
	}
	return nil
}

// MemoryMarkRepository is an in-memory IMarkRepository
type MemoryMarkRepository struct {
	mu    sync.RWMutex
	marks map[string]*model.ControlMark
	order []string
}

func NewMemoryMarkRepository() *MemoryMarkRepository {
	return &MemoryMarkRepository{marks: map[string]*model.ControlMark{}}
}

func copyMark(m *model.ControlMark) *model.ControlMark {
	cp := *m
	cp.SubMarks = append([]model.SubMark(nil), m.SubMarks...)
	return &cp
}

func (r *MemoryMarkRepository) FindAll(ctx context.Context) ([]*model.ControlMark, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*model.ControlMark, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, copyMark(r.marks[id]))
	}
	return out, nil
}

func (r *MemoryMarkRepository) FindByID(ctx context.Context, id string) (*model.ControlMark, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	m, ok := r.marks[id]
	if !ok {
		return nil, nil
	}
	return copyMark(m), nil
}

func (r *MemoryMarkRepository) Create(ctx context.Context, mark *model.ControlMark) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.marks[mark.ID] = copyMark(mark)
	r.order = append(r.order, mark.ID)
	return nil
}

func (r *MemoryMarkRepository) Replace(ctx context.Context, mark *model.ControlMark) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.marks[mark.ID]; !ok {
		return nil
	}
	r.marks[mark.ID] = copyMark(mark)
	return nil
}

func (r *MemoryMarkRepository) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.marks[id]; !ok {
		return nil
	}
	delete(r.marks, id)
	for i, oid := range r.order {
		if oid == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return nil
}

func (r *MemoryMarkRepository) ReplaceAll(ctx context.Context, marks []*model.ControlMark) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.marks = map[string]*model.ControlMark{}
	r.order = nil
	for _, m := range marks {
		r.marks[m.ID] = copyMark(m)
		r.order = append(r.order, m.ID)
	}
	return nil
}

// MemoryCredentialsRepository is an in-memory ICredentialsRepository
type MemoryCredentialsRepository struct {
	mu    sync.RWMutex
	creds *model.Credentials
}

func NewMemoryCredentialsRepository() *MemoryCredentialsRepository {
	return &MemoryCredentialsRepository{}
}

func (r *MemoryCredentialsRepository) Get(ctx context.Context) (*model.Credentials, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if r.creds == nil {
		return nil, nil
	}
	c := *r.creds
	return &c, nil
}

func (r *MemoryCredentialsRepository) Put(ctx context.Context, creds *model.Credentials) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	c := *creds
	c.ID = model.CredentialsDocID
	r.creds = &c
	return nil
}
