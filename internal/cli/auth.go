package cli

import (
	"context"
	"fmt"

	"github.com/hospitalapp/client-go/internal/common"
	"github.com/hospitalapp/client-go/internal/services"
)

// getSimpleText and getPassword are indirections used to facilitate
// testing. They point to the interactive input helpers.
var getSimpleText = GetSimpleText
var getPassword = GetPassword

// Register prompts for the account fields and creates a new account. The
// user logs in separately afterwards.
func (a *App) Register(ctx context.Context) error {
	userID, err := getSimpleText(a.reader, "Choose a login id", a.out)
	if err != nil {
		return err
	}

	password, err := getPassword(a.out, "Choose a password")
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	email, err := getSimpleText(a.reader, "Email", a.out)
	if err != nil {
		return err
	}
	birthdate, err := getSimpleText(a.reader, "Birthdate (YYYY-MM-DD)", a.out)
	if err != nil {
		return err
	}
	phone, err := getSimpleText(a.reader, "Phone", a.out)
	if err != nil {
		return err
	}
	address, err := getSimpleText(a.reader, "Address", a.out)
	if err != nil {
		return err
	}
	addressDetail, err := getSimpleText(a.reader, "Address detail", a.out)
	if err != nil {
		return err
	}

	err = a.users.Register(ctx, services.RegisterRequest{
		UserID:        userID,
		Password:      string(password),
		Email:         email,
		Birthdate:     birthdate,
		Phone:         phone,
		Address:       address,
		AddressDetail: addressDetail,
	})
	if err != nil {
		fmt.Fprintln(a.out, "Registration failed:", err)
		return err
	}

	fmt.Fprintln(a.out, "Account created, you can log in now.")
	return nil
}

// Login prompts for credentials and authenticates.
func (a *App) Login(ctx context.Context) error {
	userID, err := getSimpleText(a.reader, "Login id", a.out)
	if err != nil {
		return err
	}

	password, err := getPassword(a.out, "Password")
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	remember, err := getSimpleText(a.reader, "Stay logged in? (y/n)", a.out)
	if err != nil {
		return err
	}

	user, err := a.users.Login(ctx, userID, string(password), remember == "y")
	if err != nil {
		fmt.Fprintln(a.out, "Login failed:", err)
		return err
	}

	fmt.Fprintf(a.out, "Welcome, %s!\n", user.UserName)
	return nil
}

// Logout ends the session. Local state is cleared even when the server
// cannot be reached.
func (a *App) Logout(ctx context.Context) error {
	a.store.Logout(ctx)
	fmt.Fprintln(a.out, "Logged out.")
	return nil
}

// Whoami prints the current profile.
func (a *App) Whoami(ctx context.Context) error {
	u := a.store.Current()
	if u == nil {
		fmt.Fprintln(a.out, "Not logged in.")
		return nil
	}
	fmt.Fprintf(a.out, "%s <%s>\n", u.UserName, u.Email)
	if u.Phone != "" {
		fmt.Fprintln(a.out, "Phone:", u.Phone)
	}
	if u.Address != "" {
		fmt.Fprintln(a.out, "Address:", u.Address, u.AddressDetail)
	}
	return nil
}

// UpdateProfile prompts for the contact fields and pushes the change.
// Empty input keeps the current value.
func (a *App) UpdateProfile(ctx context.Context) error {
	cur := a.store.Current()
	if cur == nil {
		fmt.Fprintln(a.out, "Log in first.")
		return common.ErrNotLoggedIn
	}

	email, err := getSimpleText(a.reader, fmt.Sprintf("Email [%s]", cur.Email), a.out)
	if err != nil {
		return err
	}
	if email == "" {
		email = cur.Email
	}
	phone, err := getSimpleText(a.reader, fmt.Sprintf("Phone [%s]", cur.Phone), a.out)
	if err != nil {
		return err
	}
	if phone == "" {
		phone = cur.Phone
	}
	birthdate, err := getSimpleText(a.reader, fmt.Sprintf("Birthdate [%s]", cur.Birthdate), a.out)
	if err != nil {
		return err
	}
	if birthdate == "" {
		birthdate = cur.Birthdate
	}
	address, err := getSimpleText(a.reader, fmt.Sprintf("Address [%s]", cur.Address), a.out)
	if err != nil {
		return err
	}
	if address == "" {
		address = cur.Address
	}
	addressDetail, err := getSimpleText(a.reader, fmt.Sprintf("Address detail [%s]", cur.AddressDetail), a.out)
	if err != nil {
		return err
	}
	if addressDetail == "" {
		addressDetail = cur.AddressDetail
	}

	if err := a.users.UpdateProfile(ctx, email, phone, birthdate, address, addressDetail); err != nil {
		fmt.Fprintln(a.out, "Update failed:", err)
		return err
	}
	fmt.Fprintln(a.out, "Profile updated.")
	return nil
}

// ChangePassword prompts for the current and the new password.
func (a *App) ChangePassword(ctx context.Context) error {
	current, err := getPassword(a.out, "Current password")
	if err != nil {
		return err
	}
	defer common.WipeByteArray(current)

	next, err := getPassword(a.out, "New password")
	if err != nil {
		return err
	}
	defer common.WipeByteArray(next)

	if err := a.users.ChangePassword(ctx, string(current), string(next)); err != nil {
		fmt.Fprintln(a.out, "Password change failed:", err)
		return err
	}
	fmt.Fprintln(a.out, "Password changed.")
	return nil
}

// Withdraw deletes the account after confirmation.
func (a *App) Withdraw(ctx context.Context) error {
	confirm, err := getSimpleText(a.reader, "Delete your account? Type 'yes' to confirm", a.out)
	if err != nil {
		return err
	}
	if confirm != "yes" {
		fmt.Fprintln(a.out, "Cancelled.")
		return nil
	}

	password, err := getPassword(a.out, "Password")
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	if err := a.users.Withdraw(ctx, string(password)); err != nil {
		fmt.Fprintln(a.out, "Withdrawal failed:", err)
		return err
	}
	fmt.Fprintln(a.out, "Account deleted.")
	return nil
}
