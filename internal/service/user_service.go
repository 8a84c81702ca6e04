package service

import (
	"context"
	"encoding/json"
	"time"

	"go-userapi/internal/domain/model"
	"go-userapi/internal/pkg/cache"
	"go-userapi/internal/util/apperr"
	"go-userapi/internal/validation"
)

// UserRepository is the record-store contract the service depends on.
// *dao.UserDAO is the production implementation; tests substitute an
// in-memory fake.
type UserRepository interface {
	FindByID(ctx context.Context, id int64) (*model.User, error)
	FindAll(ctx context.Context) ([]model.User, error)
	Save(ctx context.Context, u *model.User) error
	Delete(ctx context.Context, id int64) error
	ExistsByID(ctx context.Context, id int64) (bool, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
}

type UserService struct {
	Repo    UserRepository
	ListC   cache.Cache   // key -> json([]UserDTO)
	ListTTL time.Duration // 列表缓存 TTL

	now func() time.Time
}

func NewUserService(repo UserRepository) *UserService {
	return &UserService{Repo: repo, ListC: cache.NewSimpleAdapter(cache.New(30 * time.Second)), ListTTL: 30 * time.Second, now: time.Now}
}

// NewUserServiceWithCache 注入统一缓存（LayeredCache）
func NewUserServiceWithCache(repo UserRepository, c cache.Cache, listTTL time.Duration) *UserService {
	if listTTL <= 0 {
		listTTL = 30 * time.Second
	}
	return &UserService{Repo: repo, ListC: c, ListTTL: listTTL, now: time.Now}
}

// UserDTO is the read-only wire projection of a stored record.
type UserDTO struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Age       int       `json:"age"`
	CreatedAt time.Time `json:"createdAt"`
}

func toDTO(u *model.User) *UserDTO {
	return &UserDTO{ID: u.ID, Name: u.Name, Email: u.Email, Age: u.Age, CreatedAt: u.CreatedAt}
}

const listKey = "user:list"

// Create validates the input, enforces email uniqueness, assigns the id and
// creation timestamp, and persists the record.
func (s *UserService) Create(ctx context.Context, in validation.UserInput) (*UserDTO, error) {
	if fields := validation.CheckUser(in); fields != nil {
		return nil, apperr.Validation(fields)
	}
	exists, err := s.Repo.ExistsByEmail(ctx, in.Email)
	if err != nil {
		return nil, apperr.Storage(err)
	}
	if exists {
		return nil, apperr.DuplicateEmail(in.Email)
	}
	u := &model.User{Name: in.Name, Email: in.Email, Age: *in.Age, CreatedAt: s.now()}
	if err := s.Repo.Save(ctx, u); err != nil {
		return nil, apperr.Storage(err)
	}
	s.invalidate()
	return toDTO(u), nil
}

// List returns every stored record in store-native order. An empty store
// yields an empty slice, never an error.
func (s *UserService) List(ctx context.Context) ([]UserDTO, error) {
	if s.ListC != nil {
		if v, _ := s.ListC.Get(ctx, listKey); v != "" {
			var cached []UserDTO
			if json.Unmarshal([]byte(v), &cached) == nil {
				return cached, nil
			}
		}
	}
	users, err := s.Repo.FindAll(ctx)
	if err != nil {
		return nil, apperr.Storage(err)
	}
	res := make([]UserDTO, 0, len(users))
	for i := range users {
		res = append(res, *toDTO(&users[i]))
	}
	if s.ListC != nil {
		b, _ := json.Marshal(res)
		_ = s.ListC.SetEX(ctx, listKey, string(b), s.ListTTL)
	}
	return res, nil
}

// GetByID looks up a record by identifier.
func (s *UserService) GetByID(ctx context.Context, id int64) (*UserDTO, error) {
	u, err := s.Repo.FindByID(ctx, id)
	if err != nil {
		return nil, apperr.Storage(err)
	}
	if u == nil {
		return nil, apperr.UserNotFound(id)
	}
	return toDTO(u), nil
}

// Update applies name/email/age onto an existing record. The identifier and
// creation timestamp never change. The uniqueness check runs against the new
// email unconditionally (no self-exclusion), matching the legacy service:
// re-submitting a user's current email collides with the record itself.
func (s *UserService) Update(ctx context.Context, id int64, in validation.UserInput) (*UserDTO, error) {
	u, err := s.Repo.FindByID(ctx, id)
	if err != nil {
		return nil, apperr.Storage(err)
	}
	if u == nil {
		return nil, apperr.UserNotFound(id)
	}
	if fields := validation.CheckUser(in); fields != nil {
		return nil, apperr.Validation(fields)
	}
	exists, err := s.Repo.ExistsByEmail(ctx, in.Email)
	if err != nil {
		return nil, apperr.Storage(err)
	}
	if exists {
		return nil, apperr.DuplicateEmail(in.Email)
	}
	u.Name = in.Name
	u.Email = in.Email
	u.Age = *in.Age
	if err := s.Repo.Save(ctx, u); err != nil {
		return nil, apperr.Storage(err)
	}
	s.invalidate()
	return toDTO(u), nil
}

// Delete removes the record after an existence check.
func (s *UserService) Delete(ctx context.Context, id int64) error {
	exists, err := s.Repo.ExistsByID(ctx, id)
	if err != nil {
		return apperr.Storage(err)
	}
	if !exists {
		return apperr.UserNotFound(id)
	}
	if err := s.Repo.Delete(ctx, id); err != nil {
		return apperr.Storage(err)
	}
	s.invalidate()
	return nil
}

func (s *UserService) invalidate() {
	if s.ListC != nil {
		_ = s.ListC.Del(context.Background(), listKey)
	}
}
