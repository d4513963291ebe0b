// Package testutil provides in-memory stand-ins for the stores, used by service and handler tests.
package testutil

import (
	"context"
	"io"
	"path"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/photobook/user-image-service/internal/domain/entity"
	"github.com/photobook/user-image-service/internal/domain/repository"
	"github.com/photobook/user-image-service/internal/infrastructure/storage"
)

// Users is a UserRepository that enforces the unique email constraint like the database does.
type Users struct {
	mu     sync.Mutex
	nextID int64
	rows   map[uuid.UUID]entity.User

	// Err, when set, is returned by every call.
	Err error
	// BeforeCreate runs inside Create and can simulate a concurrent insert.
	BeforeCreate func(u *entity.User)
}

func NewUsers() *Users {
	return &Users{rows: map[uuid.UUID]entity.User{}}
}

func (r *Users) Create(_ context.Context, u *entity.User) error {
	if r.Err != nil {
		return r.Err
	}
	if r.BeforeCreate != nil {
		r.BeforeCreate(u)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, row := range r.rows {
		if row.Email == u.Email {
			return repository.ErrDuplicate
		}
	}
	r.nextID++
	now := time.Now()
	u.ID, u.CreatedAt, u.UpdatedAt = r.nextID, now, now
	r.rows[u.UUID] = *u
	return nil
}

// Seed inserts u directly, bypassing hooks and errors.
func (r *Users) Seed(u entity.User) entity.User {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	if u.UUID == uuid.Nil {
		u.UUID = uuid.New()
	}
	if u.Role == "" {
		u.Role = entity.RoleUser
	}
	now := time.Now()
	u.ID, u.CreatedAt, u.UpdatedAt = r.nextID, now, now
	r.rows[u.UUID] = u
	return u
}

func (r *Users) GetByEmail(_ context.Context, email string) (*entity.User, error) {
	if r.Err != nil {
		return nil, r.Err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, row := range r.rows {
		if row.Email == email {
			u := row
			return &u, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *Users) GetByUUID(_ context.Context, id uuid.UUID) (*entity.User, error) {
	if r.Err != nil {
		return nil, r.Err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	row, ok := r.rows[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &row, nil
}

func (r *Users) List(_ context.Context) ([]entity.User, error) {
	if r.Err != nil {
		return nil, r.Err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]entity.User, 0, len(r.rows))
	for _, row := range r.rows {
		row.Password = ""
		out = append(out, row)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *Users) UpdatePhoto(_ context.Context, id uuid.UUID, photo string) (*entity.User, error) {
	if r.Err != nil {
		return nil, r.Err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	row, ok := r.rows[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	row.Photo = &photo
	row.UpdatedAt = time.Now()
	r.rows[id] = row
	return &row, nil
}

func (r *Users) Count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.rows)
}

// Images is an ImageRepository backed by a slice.
type Images struct {
	mu   sync.Mutex
	rows []entity.Image
	Err  error
}

func NewImages() *Images { return &Images{} }

func (r *Images) Create(_ context.Context, img *entity.Image) error {
	if r.Err != nil {
		return r.Err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	now := time.Now()
	img.ID = int64(len(r.rows) + 1)
	img.CreatedAt, img.UpdatedAt = now, now
	r.rows = append(r.rows, *img)
	return nil
}

func (r *Images) GetByID(_ context.Context, id int64) (*entity.Image, error) {
	if r.Err != nil {
		return nil, r.Err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, row := range r.rows {
		if row.ID == id {
			img := row
			return &img, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *Images) Count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.rows)
}

// Files is a FileStore that keeps file contents in memory.
type Files struct {
	mu    sync.Mutex
	Saved map[string][]byte
	Err   error
}

func NewFiles() *Files { return &Files{Saved: map[string][]byte{}} }

func (f *Files) Save(_ context.Context, originalName, _ string, r io.Reader) (string, error) {
	if f.Err != nil {
		return "", f.Err
	}
	b, err := io.ReadAll(r)
	if err != nil {
		return "", err
	}
	ref := path.Join("uploads", storage.ObjectName(originalName))
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Saved[ref] = b
	return ref, nil
}

func (f *Files) Delete(_ context.Context, ref string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.Saved, ref)
	return nil
}

func (f *Files) Close() error { return nil }

func (f *Files) Count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.Saved)
}

// Publisher records published jobs.
type Publisher struct {
	mu   sync.Mutex
	Jobs []any
	Err  error
}

func (p *Publisher) PublishJSON(_ context.Context, body any) error {
	if p.Err != nil {
		return p.Err
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	p.Jobs = append(p.Jobs, body)
	return nil
}

var (
	_ repository.UserRepository  = (*Users)(nil)
	_ repository.ImageRepository = (*Images)(nil)
	_ storage.FileStore          = (*Files)(nil)
)
