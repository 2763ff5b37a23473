package main

import (
	"github.com/spf13/cobra"
)

func newCartCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cart",
		Short: "Manage the shopping cart",
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	cmd.AddCommand(newCartShowCommand())
	cmd.AddCommand(newCartAddCommand())
	cmd.AddCommand(newCartUpdateCommand())
	cmd.AddCommand(newCartRemoveCommand())
	cmd.AddCommand(newCartClearCommand())
	return cmd
}

func newCartShowCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show the current cart",
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := newApp()
			if err != nil {
				return err
			}
			cart, err := app.cart.Get(cmd.Context())
			if err != nil {
				return err
			}
			return printJSON(cart)
		},
	}
}

func newCartAddCommand() *cobra.Command {
	var quantity int

	cmd := &cobra.Command{
		Use:   "add <product-id>",
		Short: "Add a product to the cart",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := newApp()
			if err != nil {
				return err
			}
			cart, err := app.cart.Add(cmd.Context(), args[0], quantity)
			if err != nil {
				return err
			}
			return printJSON(cart)
		},
	}

	cmd.Flags().IntVar(&quantity, "quantity", 1, "Units to add")
	return cmd
}

func newCartUpdateCommand() *cobra.Command {
	var quantity int

	cmd := &cobra.Command{
		Use:   "update <product-id>",
		Short: "Set the quantity of a cart line",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := newApp()
			if err != nil {
				return err
			}
			cart, err := app.cart.UpdateItem(cmd.Context(), args[0], quantity)
			if err != nil {
				return err
			}
			return printJSON(cart)
		},
	}

	cmd.Flags().IntVar(&quantity, "quantity", 1, "New quantity")
	_ = cmd.MarkFlagRequired("quantity")
	return cmd
}

func newCartRemoveCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "remove <product-id>",
		Short: "Remove a product from the cart",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := newApp()
			if err != nil {
				return err
			}
			cart, err := app.cart.Remove(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return printJSON(cart)
		},
	}
}

func newCartClearCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Empty the cart",
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := newApp()
			if err != nil {
				return err
			}
			cart, err := app.cart.Clear(cmd.Context())
			if err != nil {
				return err
			}
			return printJSON(cart)
		},
	}
}
