package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/crmdesk/crm-system/internal/core/domain"
	"github.com/crmdesk/crm-system/internal/core/ports"
)

// clientFields binds the editable client fields to flags.
type clientFields struct {
	firstName, lastName, phone, status, link string
	expectedSets, orderedSets                int
	expectedAmount, orderedAmount, debt      float64
	lastContact, task, comment               string
}

func (f *clientFields) bind(fs *pflag.FlagSet) {
	fs.StringVar(&f.firstName, "first-name", "", "first name")
	fs.StringVar(&f.lastName, "last-name", "", "last name")
	fs.StringVar(&f.phone, "phone", "", "phone number")
	fs.StringVar(&f.status, "status", "", "client status type name")
	fs.StringVar(&f.link, "crm-link", "", "link to the client in an external CRM")
	fs.IntVar(&f.expectedSets, "expected-sets", 0, "expected order sets")
	fs.Float64Var(&f.expectedAmount, "expected-amount", 0, "expected order amount")
	fs.IntVar(&f.orderedSets, "ordered-sets", 0, "sets ordered this month")
	fs.Float64Var(&f.orderedAmount, "ordered-amount", 0, "amount ordered this month")
	fs.Float64Var(&f.debt, "debt", 0, "outstanding debt")
	fs.StringVar(&f.lastContact, "last-contact", "", "last contact date (YYYY-MM-DD)")
	fs.StringVar(&f.task, "task", "", "task description")
	fs.StringVar(&f.comment, "comment", "", "free-form comment")
}

func (f *clientFields) input(flags domain.ActionStatusBitmap) ports.ClientInput {
	return ports.ClientInput{
		FirstName:            f.firstName,
		LastName:             f.lastName,
		Phone:                f.phone,
		ClientStatus:         f.status,
		CRMLink:              f.link,
		ExpectedOrderSets:    f.expectedSets,
		ExpectedOrderAmount:  f.expectedAmount,
		SetsOrderedThisMonth: f.orderedSets,
		AmountThisMonth:      f.orderedAmount,
		Debt:                 f.debt,
		LastContactDate:      f.lastContact,
		TaskDescription:      f.task,
		Comment:              f.comment,
		ActionStatus:         flags,
	}
}

// patch carries only the flags set on the command line.
func (f *clientFields) patch(fs *pflag.FlagSet) ports.ClientPatch {
	var p ports.ClientPatch
	str := func(name string, v string, dst **string) {
		if fs.Changed(name) {
			*dst = &v
		}
	}
	str("first-name", f.firstName, &p.FirstName)
	str("last-name", f.lastName, &p.LastName)
	str("phone", f.phone, &p.Phone)
	str("status", f.status, &p.ClientStatus)
	str("crm-link", f.link, &p.CRMLink)
	str("last-contact", f.lastContact, &p.LastContactDate)
	str("task", f.task, &p.TaskDescription)
	str("comment", f.comment, &p.Comment)
	if fs.Changed("expected-sets") {
		p.ExpectedOrderSets = &f.expectedSets
	}
	if fs.Changed("ordered-sets") {
		p.SetsOrderedThisMonth = &f.orderedSets
	}
	if fs.Changed("expected-amount") {
		p.ExpectedOrderAmount = &f.expectedAmount
	}
	if fs.Changed("ordered-amount") {
		p.AmountThisMonth = &f.orderedAmount
	}
	if fs.Changed("debt") {
		p.Debt = &f.debt
	}
	return p
}

func newClientsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "clients",
		Aliases: []string{"client"},
		Short:   "List and edit clients",
	}
	cmd.AddCommand(
		newClientsListCommand(),
		newClientsShowCommand(),
		newClientsAddCommand(),
		newClientsUpdateCommand(),
		newClientsCommentCommand(),
		newClientsFlagCommand(),
		newClientsToggleCommand(),
		newClientsDeleteCommand(),
	)
	return cmd
}

func newClientsListCommand() *cobra.Command {
	var filter string
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List clients, optionally filtered by one status",
		Long: `List clients. --filter takes one criterion: "all", "has_debt",
an action status key, or a client status name.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			app := appFrom(cmd)
			ws := app.Workspace
			ws.SetFilter(filter)
			clients, err := ws.Visible(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprint(app.Out, RenderClients(ws, clients, filter))
			return nil
		},
	}
	cmd.Flags().StringVarP(&filter, "filter", "f", "", "status criterion")
	return cmd
}

func newClientsShowCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "show ID",
		Short: "Show one client",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app := appFrom(cmd)
			c, err := app.Workspace.Client(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			fmt.Fprint(app.Out, RenderClient(app.Workspace, c))
			return nil
		},
	}
}

func newClientsAddCommand() *cobra.Command {
	var (
		fields clientFields
		flags  []string
	)
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Create a client",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			app := appFrom(cmd)
			bitmap, err := parseFlags(flags)
			if err != nil {
				return err
			}
			c, err := app.Workspace.CreateClient(cmd.Context(), fields.input(bitmap))
			if err != nil {
				return err
			}
			fmt.Fprintln(app.Out, okStyle.Render("created client "+c.ID))
			return nil
		},
	}
	fields.bind(cmd.Flags())
	cmd.Flags().StringSliceVar(&flags, "flag", nil, "action flag as key or key=bool (repeatable)")
	_ = cmd.MarkFlagRequired("first-name")
	_ = cmd.MarkFlagRequired("last-name")
	_ = cmd.MarkFlagRequired("status")
	return cmd
}

func newClientsUpdateCommand() *cobra.Command {
	var fields clientFields
	cmd := &cobra.Command{
		Use:   "update ID",
		Short: "Change the given fields of a client",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app := appFrom(cmd)
			patch := fields.patch(cmd.Flags())
			if patch.IsEmpty() {
				return domain.ErrNothingToApply
			}
			c, err := app.Workspace.UpdateClient(cmd.Context(), args[0], patch)
			if err != nil {
				return err
			}
			fmt.Fprintln(app.Out, okStyle.Render("updated client "+c.ID))
			return nil
		},
	}
	fields.bind(cmd.Flags())
	return cmd
}

func newClientsCommentCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "comment ID TEXT",
		Short: "Replace a client's comment",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			app := appFrom(cmd)
			if err := app.Workspace.UpdateComment(cmd.Context(), args[0], args[1]); err != nil {
				return err
			}
			fmt.Fprintln(app.Out, okStyle.Render("comment saved"))
			return nil
		},
	}
}

func newClientsFlagCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "flag ID KEY[=BOOL]...",
		Short: "Set action flags of a client, leaving the others unchanged",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			app := appFrom(cmd)
			bitmap, err := parseFlags(args[1:])
			if err != nil {
				return err
			}
			c, err := app.Workspace.SetActionFlags(cmd.Context(), args[0], bitmap)
			if err != nil {
				return err
			}
			fmt.Fprintln(app.Out, activeFlags(app.Workspace.Flags(c)))
			return nil
		},
	}
}

func newClientsToggleCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "toggle ID KEY",
		Short: "Flip one action flag of a client",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			app := appFrom(cmd)
			c, err := app.Workspace.ToggleActionFlag(cmd.Context(), args[0], args[1])
			if err != nil {
				return err
			}
			state := "off"
			if c.ActionStatus.Has(args[1]) {
				state = "on"
			}
			fmt.Fprintln(app.Out, Swatch(app.Workspace.ActionColor(args[1]), args[1]+" "+state))
			return nil
		},
	}
}

func newClientsDeleteCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "delete ID",
		Short: "Delete a client",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app := appFrom(cmd)
			if err := app.Workspace.DeleteClient(cmd.Context(), args[0]); err != nil {
				return err
			}
			fmt.Fprintln(app.Out, okStyle.Render("deleted client "+args[0]))
			return nil
		},
	}
}
