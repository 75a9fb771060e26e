package cli

import (
	"context"
	"log"

	"github.com/dmitrijs2005/campusmarket/internal/client/models"
)

// Login prompts for credentials and runs the session login flow. Success and
// failure messages come from the session store's notifier.
func (a *App) Login(ctx context.Context) {
	email, err := GetSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		log.Printf("error: %v", err)
		return
	}

	password, err := GetPassword(a.out)
	if err != nil {
		log.Printf("error: %v", err)
		return
	}

	_ = a.session.Login(ctx, models.Credentials{Email: email, Password: password})
}

// Register prompts for account details and runs the registration flow.
func (a *App) Register(ctx context.Context) {
	name, err := GetSimpleText(a.reader, "Enter your name", a.out)
	if err != nil {
		log.Printf("error: %v", err)
		return
	}

	email, err := GetSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		log.Printf("error: %v", err)
		return
	}

	college, err := GetSimpleText(a.reader, "Enter your college", a.out)
	if err != nil {
		log.Printf("error: %v", err)
		return
	}

	password, err := GetPassword(a.out)
	if err != nil {
		log.Printf("error: %v", err)
		return
	}

	_ = a.session.Register(ctx, models.Registration{
		Name:     name,
		Email:    email,
		Password: password,
		College:  college,
	})
}

// Logout ends the session; local state is cleared even when the server call
// fails.
func (a *App) Logout(ctx context.Context) {
	a.session.Logout(ctx)
}
