package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/crmdesk/crm-system/internal/core/ports"
)

type reportFields struct {
	in ports.ReportInput
}

func (f *reportFields) bind(fs *pflag.FlagSet) {
	fs.StringVar(&f.in.Date, "date", "", "report date (YYYY-MM-DD)")
	fs.IntVar(&f.in.OrdersInAssembly, "orders", 0, "orders in assembly")
	fs.IntVar(&f.in.SetsCount, "sets", 0, "sets count")
	fs.Float64Var(&f.in.OrdersAmount, "amount", 0, "orders amount")
	fs.Float64Var(&f.in.MoneyReceivedToday, "received", 0, "money received today")
	fs.IntVar(&f.in.CallAttempts, "calls", 0, "call attempts")
	fs.IntVar(&f.in.SuccessfulCalls, "successful-calls", 0, "successful calls")
	fs.IntVar(&f.in.SelfMessagedClient, "self-messaged", 0, "clients who messaged first")
	fs.IntVar(&f.in.Responses, "responses", 0, "responses")
	fs.IntVar(&f.in.ChatsToday, "chats", 0, "chats today")
	fs.IntVar(&f.in.ClientsNoOrder, "no-order", 0, "clients without an order")
	fs.StringVar(&f.in.Comment, "comment", "", "comment")
}

func (f *reportFields) patch(fs *pflag.FlagSet) ports.ReportPatch {
	var p ports.ReportPatch
	in := f.in
	if fs.Changed("date") {
		p.Date = &in.Date
	}
	ints := map[string]**int{
		"orders":           &p.OrdersInAssembly,
		"sets":             &p.SetsCount,
		"calls":            &p.CallAttempts,
		"successful-calls": &p.SuccessfulCalls,
		"self-messaged":    &p.SelfMessagedClient,
		"responses":        &p.Responses,
		"chats":            &p.ChatsToday,
		"no-order":         &p.ClientsNoOrder,
	}
	values := map[string]*int{
		"orders":           &in.OrdersInAssembly,
		"sets":             &in.SetsCount,
		"calls":            &in.CallAttempts,
		"successful-calls": &in.SuccessfulCalls,
		"self-messaged":    &in.SelfMessagedClient,
		"responses":        &in.Responses,
		"chats":            &in.ChatsToday,
		"no-order":         &in.ClientsNoOrder,
	}
	for name, dst := range ints {
		if fs.Changed(name) {
			*dst = values[name]
		}
	}
	if fs.Changed("amount") {
		p.OrdersAmount = &in.OrdersAmount
	}
	if fs.Changed("received") {
		p.MoneyReceivedToday = &in.MoneyReceivedToday
	}
	if fs.Changed("comment") {
		p.Comment = &in.Comment
	}
	return p
}

func newReportsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "reports",
		Short: "Manage daily activity reports",
	}

	list := &cobra.Command{
		Use:   "list",
		Short: "List reports, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			app := appFrom(cmd)
			reports, err := app.Workspace.Reports(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprint(app.Out, RenderReports(reports))
			return nil
		},
	}

	var addFields reportFields
	add := &cobra.Command{
		Use:   "add",
		Short: "File the report for a date",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			app := appFrom(cmd)
			r, err := app.Workspace.CreateReport(cmd.Context(), addFields.in)
			if err != nil {
				return err
			}
			fmt.Fprintln(app.Out, okStyle.Render("created report "+r.ID+" for "+r.Date))
			return nil
		},
	}
	addFields.bind(add.Flags())
	_ = add.MarkFlagRequired("date")

	var updateFields reportFields
	update := &cobra.Command{
		Use:   "update ID",
		Short: "Change the given fields of a report",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app := appFrom(cmd)
			r, err := app.Workspace.UpdateReport(cmd.Context(), args[0], updateFields.patch(cmd.Flags()))
			if err != nil {
				return err
			}
			fmt.Fprintln(app.Out, okStyle.Render("updated report "+r.ID))
			return nil
		},
	}
	updateFields.bind(update.Flags())

	del := &cobra.Command{
		Use:   "delete ID",
		Short: "Delete a report",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app := appFrom(cmd)
			if err := app.Workspace.DeleteReport(cmd.Context(), args[0]); err != nil {
				return err
			}
			fmt.Fprintln(app.Out, okStyle.Render("deleted report "+args[0]))
			return nil
		},
	}

	cmd.AddCommand(list, add, update, del)
	return cmd
}
