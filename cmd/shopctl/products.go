package main

import (
	"github.com/spf13/cobra"

	"shopfront/internal/domain"
)

func newProductsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "products",
		Short: "Browse and manage the catalog",
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	cmd.AddCommand(newProductsListCommand())
	cmd.AddCommand(newProductsGetCommand())
	cmd.AddCommand(newProductsCreateCommand())
	cmd.AddCommand(newProductsUpdateCommand())
	cmd.AddCommand(newProductsDeleteCommand())
	return cmd
}

func newProductsListCommand() *cobra.Command {
	var (
		page, limit        int
		search             string
		minPrice, maxPrice float64
		sortBy, sortOrder  string
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List catalog products",
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := newApp()
			if err != nil {
				return err
			}

			query := domain.ProductQuery{
				Page:      page,
				Limit:     limit,
				Search:    search,
				SortBy:    sortBy,
				SortOrder: sortOrder,
			}
			if cmd.Flags().Changed("min-price") {
				query.MinPrice = &minPrice
			}
			if cmd.Flags().Changed("max-price") {
				query.MaxPrice = &maxPrice
			}

			result, err := app.products.List(cmd.Context(), query)
			if err != nil {
				return err
			}
			return printJSON(result)
		},
	}

	cmd.Flags().IntVar(&page, "page", 1, "Page number")
	cmd.Flags().IntVar(&limit, "limit", 10, "Page size")
	cmd.Flags().StringVar(&search, "search", "", "Filter by name")
	cmd.Flags().Float64Var(&minPrice, "min-price", 0, "Minimum price")
	cmd.Flags().Float64Var(&maxPrice, "max-price", 0, "Maximum price")
	cmd.Flags().StringVar(&sortBy, "sort-by", "", "Sort field (name, price, createdAt)")
	cmd.Flags().StringVar(&sortOrder, "sort-order", "", "Sort direction (asc, desc)")
	return cmd
}

func newProductsGetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "get <id>",
		Short: "Show one product",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := newApp()
			if err != nil {
				return err
			}
			product, err := app.products.Get(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return printJSON(product)
		},
	}
}

func newProductsCreateCommand() *cobra.Command {
	var input domain.CreateProductInput

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Add a product to the catalog",
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := newApp()
			if err != nil {
				return err
			}
			product, err := app.products.Create(cmd.Context(), input)
			if err != nil {
				return err
			}
			return printJSON(product)
		},
	}

	cmd.Flags().StringVar(&input.Name, "name", "", "Product name")
	cmd.Flags().StringVar(&input.Description, "description", "", "Product description")
	cmd.Flags().Float64Var(&input.Price, "price", 0, "Product price")
	cmd.Flags().StringVar(&input.Image, "image", "", "Product image URL")
	_ = cmd.MarkFlagRequired("name")
	_ = cmd.MarkFlagRequired("price")
	return cmd
}

func newProductsUpdateCommand() *cobra.Command {
	var (
		name, description, image string
		price                    float64
	)

	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Update product fields; only given flags are sent",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := newApp()
			if err != nil {
				return err
			}

			var input domain.UpdateProductInput
			if cmd.Flags().Changed("name") {
				input.Name = &name
			}
			if cmd.Flags().Changed("description") {
				input.Description = &description
			}
			if cmd.Flags().Changed("price") {
				input.Price = &price
			}
			if cmd.Flags().Changed("image") {
				input.Image = &image
			}

			product, err := app.products.Update(cmd.Context(), args[0], input)
			if err != nil {
				return err
			}
			return printJSON(product)
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Product name")
	cmd.Flags().StringVar(&description, "description", "", "Product description")
	cmd.Flags().Float64Var(&price, "price", 0, "Product price")
	cmd.Flags().StringVar(&image, "image", "", "Product image URL")
	return cmd
}

func newProductsDeleteCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Remove a product from the catalog",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := newApp()
			if err != nil {
				return err
			}
			return app.products.Delete(cmd.Context(), args[0])
		},
	}
}
