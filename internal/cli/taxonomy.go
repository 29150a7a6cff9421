package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newStatusTypesCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "status-types",
		Short: "Manage client status types",
	}

	list := &cobra.Command{
		Use:   "list",
		Short: "List client status types",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			app := appFrom(cmd)
			types, err := app.Workspace.ClientStatusTypes(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprint(app.Out, RenderClientStatusTypes(types))
			return nil
		},
	}

	var color string
	set := &cobra.Command{
		Use:   "set NAME",
		Short: "Create a status type or recolor an existing one",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app := appFrom(cmd)
			t, err := app.Workspace.UpsertClientStatusType(cmd.Context(), args[0], color)
			if err != nil {
				return err
			}
			fmt.Fprintln(app.Out, Swatch(t.Color, t.Name))
			return nil
		},
	}
	set.Flags().StringVar(&color, "color", "", "hex color like #3B82F6")

	var renameColor string
	rename := &cobra.Command{
		Use:   "rename ID NAME",
		Short: "Rename a status type; clients keep the old name",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			app := appFrom(cmd)
			t, err := app.Workspace.RenameClientStatusType(cmd.Context(), args[0], args[1], renameColor)
			if err != nil {
				return err
			}
			fmt.Fprintln(app.Out, Swatch(t.Color, t.Name))
			return nil
		},
	}
	rename.Flags().StringVar(&renameColor, "color", "", "hex color like #3B82F6")

	del := &cobra.Command{
		Use:   "delete ID",
		Short: "Delete a status type; clients using it keep the name",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app := appFrom(cmd)
			if err := app.Workspace.DeleteClientStatusType(cmd.Context(), args[0]); err != nil {
				return err
			}
			fmt.Fprintln(app.Out, okStyle.Render("deleted status type "+args[0]))
			return nil
		},
	}

	cmd.AddCommand(list, set, rename, del)
	return cmd
}

func newActionTypesCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "action-types",
		Short: "Manage action status types",
	}

	list := &cobra.Command{
		Use:   "list",
		Short: "List action status types",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			app := appFrom(cmd)
			types, err := app.Workspace.ActionStatusTypes(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprint(app.Out, RenderActionStatusTypes(types))
			return nil
		},
	}

	var color string
	set := &cobra.Command{
		Use:   "set KEY NAME",
		Short: "Create an action status type or update the one with KEY",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			app := appFrom(cmd)
			t, err := app.Workspace.UpsertActionStatusType(cmd.Context(), args[1], args[0], color)
			if err != nil {
				return err
			}
			fmt.Fprintln(app.Out, Swatch(app.Workspace.ActionColor(t.Key), t.Name+" ("+t.Key+")"))
			return nil
		},
	}
	set.Flags().StringVar(&color, "color", "", "hex color like #22C55E")

	del := &cobra.Command{
		Use:   "delete ID",
		Short: "Delete an action status type; existing flags become legacy",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app := appFrom(cmd)
			if err := app.Workspace.DeleteActionStatusType(cmd.Context(), args[0]); err != nil {
				return err
			}
			fmt.Fprintln(app.Out, okStyle.Render("deleted action status type "+args[0]))
			return nil
		},
	}

	cmd.AddCommand(list, set, del)
	return cmd
}
