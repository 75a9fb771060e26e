package cli

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/campusmarket/internal/client/models"
)

// Profile prints the authenticated user's account details.
func (a *App) Profile(ctx context.Context) {
	u := a.session.User()
	if u == nil {
		fmt.Fprintln(a.out, "Not logged in")
		return
	}
	fmt.Fprintf(a.out, "%s\n", u.Name)
	fmt.Fprintf(a.out, "  email:   %s\n", u.Email)
	fmt.Fprintf(a.out, "  college: %s\n", u.College)
	if u.Avatar != "" {
		fmt.Fprintf(a.out, "  avatar:  %s\n", u.Avatar)
	}
	fmt.Fprintf(a.out, "  joined:  %s\n", u.CreatedAt.Format("2006-01-02"))
}

// EditProfile prompts for the editable fields and refreshes the session's
// user copy afterwards.
func (a *App) EditProfile(ctx context.Context) {
	u := a.session.User()
	if u == nil {
		fmt.Fprintln(a.out, "Not logged in")
		return
	}

	name, err := GetOptionalText(a.reader, fmt.Sprintf("Name [%s]", u.Name), u.Name, a.out)
	if err != nil {
		a.Error(err.Error())
		return
	}
	college, err := GetOptionalText(a.reader, fmt.Sprintf("College [%s]", u.College), u.College, a.out)
	if err != nil {
		a.Error(err.Error())
		return
	}
	avatar, err := GetOptionalText(a.reader, "Avatar URL (empty keeps current)", u.Avatar, a.out)
	if err != nil {
		a.Error(err.Error())
		return
	}

	update := models.ProfileUpdate{Name: &name, College: &college, Avatar: &avatar}
	if _, err := a.profile.UpdateProfile(ctx, update); err != nil {
		a.Error(errText(err, "Failed to update profile"))
		return
	}

	if err := a.session.RefreshUser(ctx); err != nil {
		a.Error(errText(err, "Session expired"))
		return
	}
	a.Success("Profile updated!")
}

// ChangePassword swaps the account password.
func (a *App) ChangePassword(ctx context.Context) {
	fmt.Fprint(a.out, "Current password. ")
	current, err := GetPassword(a.out)
	if err != nil {
		a.Error(err.Error())
		return
	}
	fmt.Fprint(a.out, "New password. ")
	next, err := GetPassword(a.out)
	if err != nil {
		a.Error(err.Error())
		return
	}

	change := models.PasswordChange{CurrentPassword: current, NewPassword: next}
	if err := a.profile.ChangePassword(ctx, change); err != nil {
		a.Error(errText(err, "Failed to change password"))
		return
	}
	a.Success("Password changed!")
}
