package services

import (
	"context"
	"net/url"
	"strings"
	"time"

	"luxeStore/entities"
	"luxeStore/models"

	"github.com/sirupsen/logrus"
)

const (
	LoginPath  = "/auth/login"
	avatarBase = "https://api.dicebear.com/7.x/avataaars/svg?seed="
)

// LoginRedirect is where unauthenticated shoppers are sent, carrying the
// page they wanted.
func LoginRedirect(dest string) *entities.RedirectError {
	return &entities.RedirectError{Location: LoginPath + "?redirect=" + url.QueryEscape(dest)}
}

// SafeRedirect keeps post-login navigation on this site.
func SafeRedirect(redirect string) string {
	if !strings.HasPrefix(redirect, "/") || strings.HasPrefix(redirect, "//") || strings.Contains(redirect, "\\") {
		return "/"
	}
	return redirect
}

func UserFromEmail(email string) models.User {
	name, _, _ := strings.Cut(email, "@")
	return models.User{
		Name:   name,
		Email:  email,
		Avatar: avatarBase + email,
	}
}

type UserService struct {
	delay  time.Duration
	guards *guards
}

func NewUserService(loginDelay time.Duration) UserService {
	return UserService{
		delay:  loginDelay,
		guards: &guards{},
	}
}

func (us *UserService) Forget(store *Store) {
	us.guards.Drop(store)
}

// Login accepts any well-formed credentials after the simulated delay.
func (us *UserService) Login(ctx context.Context, store *Store, creds models.Credentials, redirect string) (resp entities.LoginResponse, err error) {
	if verrs := ValidateCredentials(creds); verrs != nil {
		err = verrs
		return
	}
	g := us.guards.For(store)
	if !g.Begin() {
		err = models.ErrInProgress
		return
	}
	defer g.End()

	user, err := Simulate(ctx, us.delay, func() (models.User, error) {
		return UserFromEmail(creds.Email), nil
	})
	if err != nil {
		logrus.Warnf("Login: %v", err)
		return
	}
	store.Login(user)
	logrus.WithField("state", store.Name()).Info("logged in")
	resp = entities.LoginResponse{
		User:     user,
		Redirect: SafeRedirect(redirect),
	}
	return
}

func (us *UserService) Logout(store *Store) {
	store.Logout()
	logrus.WithField("state", store.Name()).Info("logged out")
}

func (us *UserService) CurrentUser(store *Store) (user models.User, err error) {
	user, exists := store.User()
	if !exists || !store.IsLoggedIn() {
		err = models.ErrUnauthorized
	}
	return
}
