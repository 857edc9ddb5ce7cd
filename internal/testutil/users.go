package testutil

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"bookstore-api/internal/domains/user/model"
	"bookstore-api/internal/domains/user/repository"
)

// Users is an in-memory identity store.
type Users struct {
	mu    sync.Mutex
	users map[string]model.User
	roles map[string]bool

	// Err, when set, is returned by every call.
	Err error
}

var _ repository.UserRepository = (*Users)(nil)

func NewUsers() *Users {
	return &Users{
		users: make(map[string]model.User),
		roles: make(map[string]bool),
	}
}

// Add stores a user with a bcrypt hash of password at the minimum cost.
func (u *Users) Add(userName, email, password string, roles ...string) model.User {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		panic(err)
	}

	usr := model.User{
		ID:           uuid.New(),
		UserName:     userName,
		Email:        email,
		PasswordHash: string(hash),
		Roles:        roles,
	}

	u.mu.Lock()
	defer u.mu.Unlock()
	u.users[userName] = usr
	for _, r := range roles {
		u.roles[r] = true
	}
	return usr
}

// HasRole reports whether role has been created.
func (u *Users) HasRole(role string) bool {
	u.mu.Lock()
	defer u.mu.Unlock()
	return u.roles[role]
}

func (u *Users) FindByUserName(ctx context.Context, userName string) (*model.User, error) {
	if u.Err != nil {
		return nil, u.Err
	}
	u.mu.Lock()
	defer u.mu.Unlock()

	usr, ok := u.users[userName]
	if !ok {
		return nil, model.ErrUserNotFound
	}
	return &usr, nil
}

func (u *Users) ExistsByUserName(ctx context.Context, userName string) (bool, error) {
	if u.Err != nil {
		return false, u.Err
	}
	u.mu.Lock()
	defer u.mu.Unlock()
	_, ok := u.users[userName]
	return ok, nil
}

func (u *Users) Create(ctx context.Context, usr *model.User) error {
	if u.Err != nil {
		return u.Err
	}
	u.mu.Lock()
	defer u.mu.Unlock()

	if _, ok := u.users[usr.UserName]; ok {
		return model.ErrUserExists
	}
	for _, r := range usr.Roles {
		if !u.roles[r] {
			return model.ErrUnknownRole
		}
	}
	u.users[usr.UserName] = *usr
	return nil
}

func (u *Users) EnsureRole(ctx context.Context, name string) (bool, error) {
	if u.Err != nil {
		return false, u.Err
	}
	u.mu.Lock()
	defer u.mu.Unlock()

	if u.roles[name] {
		return false, nil
	}
	u.roles[name] = true
	return true, nil
}
