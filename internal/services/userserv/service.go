// Package userserv demonstrates the result convention on a small user
// registry: validation failures are ordinary Err results, while the value
// handed back by Register is shape checked in development builds.
package userserv

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/patrickmn/go-cache"
	"github.com/zeebo/errs"

	"github.com/Philanthropists/checked/internal/logging"
	"github.com/Philanthropists/checked/pkg/check"
	"github.com/Philanthropists/checked/pkg/result"
	"github.com/Philanthropists/checked/pkg/shape"
)

const defaultExpiration = cache.NoExpiration

type User struct {
	Email    string
	Username string
	FullName string
}

// UserShape declares the value Register promises inside an Ok result.
var UserShape = shape.Struct(map[string]shape.Shape{
	"Email":    shape.String(),
	"Username": shape.String(),
	"FullName": shape.String(),
})

var requiredFields = []string{"email", "username"}

func missingRequiredFields(fields map[string]string) []string {
	var missing []string
	for _, f := range requiredFields {
		if strings.TrimSpace(fields[f]) == "" {
			missing = append(missing, f)
		}
	}
	return missing
}

// CreateUser builds a User from raw input fields. Bad input is a runtime
// condition, reported as an Err result, never a panic.
func CreateUser(fields map[string]string) result.Result[User] {
	if missing := missingRequiredFields(fields); len(missing) > 0 {
		return result.Err[User]("missing required fields: %s", strings.Join(missing, ", "))
	}

	email := strings.TrimSpace(fields["email"])
	if !strings.Contains(email, "@") {
		return result.Err[User]("email %q is not an address", email)
	}

	return result.Ok(User{
		Email:    email,
		Username: strings.TrimSpace(fields["username"]),
		FullName: strings.TrimSpace(fields["name"]),
	})
}

type inMemoryCache interface {
	Set(k string, v any, t time.Duration)
	Get(k string) (any, bool)
}

// Registry stores registered users in memory. The zero value is ready to
// use; entries live for TTL (forever when zero).
type Registry struct {
	TTL time.Duration

	once     sync.Once
	store    inMemoryCache
	register func(map[string]string) result.Result[User]
}

func (r *Registry) init() {
	r.once.Do(func() {
		ttl := r.TTL
		if ttl == 0 {
			ttl = defaultExpiration
		}

		r.store = cache.New(ttl, 0)
		r.register = check.Func(UserShape, r.doRegister)
	})
}

func (r *Registry) doRegister(fields map[string]string) result.Result[User] {
	res := CreateUser(fields)
	if res.IsErr() {
		return res
	}

	u := res.Value()
	if _, exists := r.store.Get(u.Email); exists {
		return result.Err[User]("user %s is already registered", u.Email)
	}

	r.store.Set(u.Email, u, cache.DefaultExpiration)

	return res
}

// Register validates fields and stores the resulting user, rejecting
// duplicate emails.
func (r *Registry) Register(ctx context.Context, fields map[string]string) result.Result[User] {
	r.init()

	res := r.register(fields)

	log := logging.FromContext(ctx)
	if res.IsErr() {
		log.Debug("registration rejected", logging.Error(res.Err()))
	} else {
		log.Debug("user registered", logging.String("email", res.Value().Email))
	}

	return res
}

// Lookup returns the user registered under email.
func (r *Registry) Lookup(email string) result.Result[User] {
	r.init()

	v, ok := r.store.Get(email)
	if !ok {
		return result.Err[User]("no user registered with email %s", email)
	}

	u, ok := v.(User)
	if !ok {
		return result.ErrCause[User](
			errs.New("stored value has type %T", v),
			"corrupt registry entry for %s", email,
		)
	}

	return result.Ok(u)
}
