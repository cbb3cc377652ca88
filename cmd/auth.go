package cmd

import (
	"errors"
	"fmt"

	"github.com/sportbook-io/sportbook-cli/internal/api"
	"github.com/sportbook-io/sportbook-cli/internal/identity"
	"github.com/sportbook-io/sportbook-cli/internal/model"
	"github.com/sportbook-io/sportbook-cli/internal/tui"
	"github.com/spf13/cobra"
)

var (
	loginEmail    string
	loginPassword string
)

var LoginCmd = &cobra.Command{
	Use:   "login",
	Short: "Log in to your account",
	Long: `Log in with your email and password. Any reservations booked
anonymously from this machine are transferred to your account.

The password can be passed with --password for scripting; omit it to be
prompted securely.
`,
	RunE: runLogin,
}

var LogoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Log out and clear local session state",
	RunE:  runLogout,
}

var RegisterCmd = &cobra.Command{
	Use:   "register",
	Short: "Create a new account",
	RunE:  runRegister,
}

var WhoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show the current identity",
	RunE:  runWhoami,
}

func init() {
	LoginCmd.Flags().StringVarP(&loginEmail, "email", "e", "", "Account email")
	LoginCmd.Flags().StringVarP(&loginPassword, "password", "p", "", "Account password (prompted when omitted)")
}

func runLogin(cmd *cobra.Command, args []string) error {
	app, err := newApp()
	if err != nil {
		return err
	}
	defer app.Close()

	email := loginEmail
	if email == "" {
		email, err = tui.RunInput("Email:", "you@example.com", "")
		if err != nil {
			return err
		}
	}
	if err := identity.ValidateEmail(email); err != nil {
		return err
	}

	password := loginPassword
	if password == "" {
		password, err = tui.RunPassword("Password:")
		if err != nil {
			return err
		}
	}
	if err := identity.ValidatePassword(password); err != nil {
		return err
	}

	pending, err := app.Reservations.Count()
	if err != nil {
		pending = 0
	}

	user, err := app.Identity.Login(commandContext(), email, password)
	if err != nil {
		if errors.Is(err, api.ErrInvalidCredentials) {
			return fmt.Errorf("wrong email or password")
		}
		return fmt.Errorf("login failed: %w", err)
	}

	fmt.Println(tui.RenderSuccess(fmt.Sprintf("Welcome back, %s %s!", user.FirstName, user.LastName)))

	// Login swallows link failures, so the local count tells whether
	// the transfer actually went through.
	remaining, err := app.Reservations.Count()
	if err != nil {
		remaining = pending
	}
	if msg := transferSummary(pending, remaining); msg != "" {
		fmt.Println(msg)
	}
	return nil
}

func transferSummary(pending, remaining int) string {
	switch {
	case pending == 0:
		return ""
	case remaining == 0:
		return tui.RenderInfo(fmt.Sprintf("%d anonymous reservation(s) were transferred to your account.", pending))
	default:
		return tui.RenderWarning(fmt.Sprintf("%d reservation(s) are still stored locally; transfer them with: sportbook reservations link", remaining))
	}
}

func runLogout(cmd *cobra.Command, args []string) error {
	app, err := newApp()
	if err != nil {
		return err
	}
	defer app.Close()

	viewer, err := app.Viewer()
	if err != nil {
		return err
	}
	if _, ok := viewer.(model.Authenticated); !ok {
		fmt.Println(tui.RenderInfo("You are not logged in."))
		return nil
	}

	// Logging out discards any reservations still held only locally.
	if count, err := app.Reservations.Count(); err == nil && count > 0 {
		ok, err := tui.RunConfirm(
			fmt.Sprintf("%d locally stored reservation(s) will be discarded. Log out anyway?", count),
			false)
		if err != nil {
			return err
		}
		if !ok {
			fmt.Println(tui.RenderInfo("Staying logged in."))
			return nil
		}
	}

	if err := app.Identity.Logout(); err != nil {
		return fmt.Errorf("logout failed: %w", err)
	}
	fmt.Println(tui.RenderSuccess("Logged out."))
	return nil
}

func runRegister(cmd *cobra.Command, args []string) error {
	app, err := newApp()
	if err != nil {
		return err
	}
	defer app.Close()

	name, err := tui.RunInput("First name:", "", "")
	if err != nil {
		return err
	}
	if err := identity.ValidateName(name); err != nil {
		return err
	}

	surname, err := tui.RunInput("Last name:", "", "")
	if err != nil {
		return err
	}
	if err := identity.ValidateName(surname); err != nil {
		return err
	}

	email, err := tui.RunInput("Email:", "you@example.com", "")
	if err != nil {
		return err
	}
	if err := identity.ValidateEmail(email); err != nil {
		return err
	}

	password, err := tui.RunPassword("Password (min 8 characters):")
	if err != nil {
		return err
	}
	if err := identity.ValidatePassword(password); err != nil {
		return err
	}

	if err := app.Identity.Register(commandContext(), name, surname, email, password); err != nil {
		if errors.Is(err, api.ErrRegistrationRejected) {
			return fmt.Errorf("registration rejected; the email may already be in use")
		}
		return fmt.Errorf("registration failed: %w", err)
	}

	fmt.Println(tui.RenderSuccess("Account created."))
	fmt.Println(tui.RenderInfo("Log in with: sportbook login"))
	return nil
}

func runWhoami(cmd *cobra.Command, args []string) error {
	app, err := newApp()
	if err != nil {
		return err
	}
	defer app.Close()

	viewer, err := app.Viewer()
	if err != nil {
		return err
	}

	switch v := viewer.(type) {
	case model.Authenticated:
		fmt.Println(tui.RenderInfo(fmt.Sprintf("Logged in as %s %s (user #%d).", v.FirstName, v.LastName, v.ID)))
	case model.Anonymous:
		fmt.Println(tui.RenderInfo("Anonymous."))
		fmt.Println(tui.MutedStyle.Render(fmt.Sprintf("Local id: %s", v.LocalID)))
		if count, err := app.Reservations.Count(); err == nil && count > 0 {
			fmt.Println(tui.MutedStyle.Render(fmt.Sprintf("%d local reservation(s); they transfer when you log in.", count)))
		}
	}
	return nil
}
