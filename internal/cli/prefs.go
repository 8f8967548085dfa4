package cli

import (
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"github.com/roach88/researchhub/internal/prefs"
)

// NewThemeCommand creates the theme command.
func NewThemeCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "theme",
		Short: "Show the chart theme",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(rootOpts, cmd, func(a *app) error {
				theme, err := a.prefs.Theme(cmd.Context())
				if err != nil {
					return a.out.Fail(err)
				}
				return writeTheme(a.out, theme)
			})
		},
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "toggle",
		Short: "Switch between the dark and light theme",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(rootOpts, cmd, func(a *app) error {
				theme, err := a.prefs.ToggleTheme(cmd.Context())
				if err != nil {
					return a.out.Fail(err)
				}
				return writeTheme(a.out, theme)
			})
		},
	})
	return cmd
}

func writeTheme(out *OutputFormatter, theme prefs.Theme) error {
	return out.Result(map[string]string{"theme": string(theme)}, func(w io.Writer) error {
		_, err := fmt.Fprintf(w, "Theme: %s\n", theme)
		return err
	})
}

// NewLoginCommand creates the login command.
func NewLoginCommand(rootOpts *RootOptions) *cobra.Command {
	var remember bool
	cmd := &cobra.Command{
		Use:   "login <user>",
		Short: "Mark a local user as signed in",
		Long: `Mark a local user as signed in. Nothing is verified.

Without --remember the session lasts only for the current command: it ends
when this command exits, so a later "researchhub whoami" reports no session.
Use --remember to keep it across runs until "researchhub logout".`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(rootOpts, cmd, func(a *app) error {
				s, err := a.prefs.Login(cmd.Context(), args[0], remember)
				if err != nil {
					return a.out.Fail(err)
				}
				data := map[string]any{"user": s.User, "at": s.At, "remembered": remember}
				return a.out.Result(data, func(w io.Writer) error {
					if _, err := fmt.Fprintf(w, "Signed in as %s\n", s.User); err != nil {
						return err
					}
					if !remember {
						_, err := fmt.Fprintln(w, "Session lasts for this command only; pass --remember to keep it.")
						return err
					}
					return nil
				})
			})
		},
	}
	cmd.Flags().BoolVar(&remember, "remember", false, "keep the session across runs")
	return cmd
}

// NewLogoutCommand creates the logout command.
func NewLogoutCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Clear the local session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(rootOpts, cmd, func(a *app) error {
				if err := a.prefs.Logout(cmd.Context()); err != nil {
					return a.out.Fail(err)
				}
				return a.out.Result(map[string]bool{"signed_in": false}, func(w io.Writer) error {
					_, err := fmt.Fprintln(w, "Signed out.")
					return err
				})
			})
		},
	}
}

// NewWhoamiCommand creates the whoami command.
func NewWhoamiCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the signed-in user",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(rootOpts, cmd, func(a *app) error {
				s, ok, err := a.prefs.Session(cmd.Context())
				if err != nil {
					return a.out.Fail(err)
				}
				data := map[string]any{"signed_in": ok}
				if ok {
					data["user"] = s.User
					data["at"] = s.At
				}
				return a.out.Result(data, func(w io.Writer) error {
					if !ok {
						_, err := fmt.Fprintln(w, "Not signed in.")
						return err
					}
					since := time.UnixMilli(s.At).UTC().Format(time.RFC3339)
					_, err := fmt.Fprintf(w, "%s (since %s)\n", s.User, since)
					return err
				})
			})
		},
	}
}
