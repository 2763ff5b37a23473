package main

import (
	"github.com/spf13/cobra"

	"shopfront/internal/domain"
)

func newOrdersCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "orders",
		Short: "Place and manage orders",
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	cmd.AddCommand(newOrdersCreateCommand())
	cmd.AddCommand(newOrdersListCommand())
	cmd.AddCommand(newOrdersGetCommand())
	cmd.AddCommand(newOrdersCancelCommand())
	cmd.AddCommand(newOrdersPayCommand())
	return cmd
}

func newOrdersCreateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "create",
		Short: "Place an order from the current cart",
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := newApp()
			if err != nil {
				return err
			}
			order, err := app.orders.Create(cmd.Context())
			if err != nil {
				return err
			}
			return printJSON(order)
		},
	}
}

func newOrdersListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List your orders",
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := newApp()
			if err != nil {
				return err
			}
			orders, err := app.orders.List(cmd.Context())
			if err != nil {
				return err
			}
			return printJSON(orders)
		},
	}
}

func newOrdersGetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "get <id>",
		Short: "Show one order",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := newApp()
			if err != nil {
				return err
			}
			order, err := app.orders.Get(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return printJSON(order)
		},
	}
}

func newOrdersCancelCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "cancel <id>",
		Short: "Cancel an unpaid order",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := newApp()
			if err != nil {
				return err
			}
			order, err := app.orders.Cancel(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return printJSON(order)
		},
	}
}

func newOrdersPayCommand() *cobra.Command {
	var paymentID string

	cmd := &cobra.Command{
		Use:   "pay <order-id>",
		Short: "Apply a payment to an order",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := newApp()
			if err != nil {
				return err
			}
			order, err := app.orders.Pay(cmd.Context(), domain.PaymentInput{
				PaymentID: paymentID,
				OrderID:   args[0],
			})
			if err != nil {
				return err
			}
			return printJSON(order)
		},
	}

	cmd.Flags().StringVar(&paymentID, "payment-id", "", "Payment reference from the payment provider")
	_ = cmd.MarkFlagRequired("payment-id")
	return cmd
}
