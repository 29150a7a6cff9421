package cli

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/crmdesk/crm-system/internal/core/analytics"
	"github.com/crmdesk/crm-system/internal/core/domain"
	"github.com/crmdesk/crm-system/internal/session"
)

type appKey struct{}

// appFrom returns the App attached by the root PersistentPreRunE.
func appFrom(cmd *cobra.Command) *App {
	return cmd.Context().Value(appKey{}).(*App)
}

// NewRootCommand builds the crm command tree. boot runs once per
// invocation, after which any persisted session is verified.
func NewRootCommand(boot Bootstrap) *cobra.Command {
	root := &cobra.Command{
		Use:           "crm",
		Short:         "Track clients, statuses and daily reports",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}
			app, err := boot(ctx)
			if err != nil {
				return err
			}
			app.Out = cmd.OutOrStdout()
			app.Err = cmd.ErrOrStderr()
			if err := app.Session.Verify(ctx); err != nil {
				fmt.Fprintln(app.Err, mutedStyle.Render(err.Error()))
			}
			cmd.SetContext(context.WithValue(ctx, appKey{}, app))
			return nil
		},
	}

	root.AddCommand(
		newLoginCommand(),
		newRegisterCommand(),
		newLogoutCommand(),
		newWhoamiCommand(),
		newClientsCommand(),
		newStatusTypesCommand(),
		newActionTypesCommand(),
		newStatsCommand(),
		newSummaryCommand(),
		newReportsCommand(),
	)
	return root
}

func newLoginCommand() *cobra.Command {
	var email, password string
	cmd := &cobra.Command{
		Use:   "login",
		Short: "Log in and remember the session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			app := appFrom(cmd)
			id, err := app.Session.Login(cmd.Context(), email, password)
			if err != nil {
				return err
			}
			fmt.Fprintln(app.Out, okStyle.Render("logged in as "+RenderIdentity(id)))
			return nil
		},
	}
	cmd.Flags().StringVar(&email, "email", "", "account email")
	cmd.Flags().StringVar(&password, "password", "", "account password")
	_ = cmd.MarkFlagRequired("email")
	_ = cmd.MarkFlagRequired("password")
	return cmd
}

func newRegisterCommand() *cobra.Command {
	var email, password, name string
	cmd := &cobra.Command{
		Use:   "register",
		Short: "Create an account and log in",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			app := appFrom(cmd)
			id, err := app.Session.Register(cmd.Context(), email, password, name)
			if err != nil {
				return err
			}
			fmt.Fprintln(app.Out, okStyle.Render("registered "+RenderIdentity(id)))
			return nil
		},
	}
	cmd.Flags().StringVar(&email, "email", "", "account email")
	cmd.Flags().StringVar(&password, "password", "", "account password (min 6 characters)")
	cmd.Flags().StringVar(&name, "name", "", "full name")
	_ = cmd.MarkFlagRequired("email")
	_ = cmd.MarkFlagRequired("password")
	_ = cmd.MarkFlagRequired("name")
	return cmd
}

func newLogoutCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Forget the stored session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			app := appFrom(cmd)
			app.Session.Logout(cmd.Context())
			fmt.Fprintln(app.Out, "logged out")
			return nil
		},
	}
}

func newWhoamiCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the logged in operator",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			app := appFrom(cmd)
			id, ok := app.Session.Identity()
			if !ok {
				return session.ErrNotLoggedIn
			}
			fmt.Fprintln(app.Out, RenderIdentity(id))
			return nil
		},
	}
}

func newStatsCommand() *cobra.Command {
	var fromServer bool
	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Count clients per action status",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			app := appFrom(cmd)
			ws := app.Workspace
			ctx := cmd.Context()

			stats, err := ws.Statistics(ctx)
			if fromServer && err == nil {
				stats, err = ws.ServerStatistics(ctx)
			}
			if err != nil {
				return err
			}
			types, err := ws.ActionStatusTypes(ctx)
			if err != nil {
				return err
			}
			fmt.Fprint(app.Out, RenderStatistics(ws, stats, types))
			return nil
		},
	}
	cmd.Flags().BoolVar(&fromServer, "server", false, "aggregate on the server instead of locally")
	return cmd
}

func newSummaryCommand() *cobra.Command {
	var fromServer bool
	cmd := &cobra.Command{
		Use:   "summary",
		Short: "Show order and debt totals with monthly progress",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			app := appFrom(cmd)
			ws := app.Workspace
			ctx := cmd.Context()

			summary, err := ws.Summary(ctx)
			if fromServer && err == nil {
				summary, err = ws.ServerSummary(ctx)
			}
			if err != nil {
				return err
			}
			fmt.Fprint(app.Out, RenderSummary(summary, analytics.ComputeProgress(summary)))
			return nil
		},
	}
	cmd.Flags().BoolVar(&fromServer, "server", false, "aggregate on the server instead of locally")
	return cmd
}

// parseFlags reads key=bool pairs. A bare key means true.
func parseFlags(args []string) (domain.ActionStatusBitmap, error) {
	out := make(domain.ActionStatusBitmap, len(args))
	for _, arg := range args {
		key, raw, found := strings.Cut(arg, "=")
		value := true
		if found {
			v, err := strconv.ParseBool(raw)
			if err != nil {
				return nil, fmt.Errorf("%w: %q is not a boolean", domain.ErrValidation, raw)
			}
			value = v
		}
		if !domain.ValidKey(key) {
			return nil, fmt.Errorf("%w: %q", domain.ErrInvalidKey, key)
		}
		out[key] = value
	}
	return out, nil
}

// IsAuthError reports whether err asks the operator to log in.
func IsAuthError(err error) bool {
	var ae *session.AuthError
	return errors.As(err, &ae) || errors.Is(err, domain.ErrUnauthenticated)
}
