package cli

import (
	"context"
	"fmt"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"
)

var authCmd = &cobra.Command{
	Use:   "auth",
	Short: "Manage your account",
	Long:  `Sign in, register, and inspect the current session.`,
}

var authLoginCmd = &cobra.Command{
	Use:   "login",
	Short: "Sign in",
	RunE:  runAuthLogin,
}

var authRegisterCmd = &cobra.Command{
	Use:   "register",
	Short: "Create an account",
	RunE:  runAuthRegister,
}

var authLogoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Sign out",
	RunE:  runAuthLogout,
}

var authStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the current session",
	RunE:  runAuthStatus,
}

func init() {
	authCmd.AddCommand(authLoginCmd)
	authCmd.AddCommand(authRegisterCmd)
	authCmd.AddCommand(authLogoutCmd)
	authCmd.AddCommand(authStatusCmd)
	rootCmd.AddCommand(authCmd)
}

func runAuthLogin(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	st, err := openStore()
	if err != nil {
		return err
	}
	defer st.Close()

	authSvc, err := newAuthService(st)
	if err != nil {
		return err
	}

	var email, password string
	form := huh.NewForm(huh.NewGroup(
		huh.NewInput().Title("Email").Value(&email),
		huh.NewInput().Title("Password").EchoMode(huh.EchoModePassword).Value(&password),
	))
	if err := form.Run(); err != nil {
		return err
	}

	user, err := authSvc.Login(ctx, email, password)
	if err != nil {
		return err
	}

	fmt.Printf("Signed in as %s <%s>\n", user.Name, user.Email)
	return nil
}

func runAuthRegister(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	st, err := openStore()
	if err != nil {
		return err
	}
	defer st.Close()

	authSvc, err := newAuthService(st)
	if err != nil {
		return err
	}

	var name, email, password string
	form := huh.NewForm(huh.NewGroup(
		huh.NewInput().Title("Name").Value(&name),
		huh.NewInput().Title("Email").Value(&email),
		huh.NewInput().Title("Password").EchoMode(huh.EchoModePassword).Value(&password),
	))
	if err := form.Run(); err != nil {
		return err
	}

	user, err := authSvc.Register(ctx, name, email, password)
	if err != nil {
		return err
	}

	fmt.Printf("Welcome, %s. You are signed in.\n", user.Name)
	return nil
}

func runAuthLogout(cmd *cobra.Command, args []string) error {
	st, err := openStore()
	if err != nil {
		return err
	}
	defer st.Close()

	authSvc, err := newAuthService(st)
	if err != nil {
		return err
	}

	if err := authSvc.Logout(); err != nil {
		return err
	}
	fmt.Println("Signed out")
	return nil
}

func runAuthStatus(cmd *cobra.Command, args []string) error {
	st, err := openStore()
	if err != nil {
		return err
	}
	defer st.Close()

	authSvc, err := newAuthService(st)
	if err != nil {
		return err
	}

	user := authSvc.CurrentUser()
	if JSONOutput() {
		return printJSON(map[string]any{
			"authenticated": user != nil,
			"user":          user,
		})
	}

	if user == nil {
		fmt.Println("Not signed in. Run 'chime auth login'")
		return nil
	}
	fmt.Printf("Signed in as %s <%s>\n", user.Name, user.Email)
	return nil
}
