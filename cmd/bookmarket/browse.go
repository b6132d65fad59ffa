package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/bookmarketapp/bookmarket-client/internal/catalog"
	"github.com/bookmarketapp/bookmarket-client/internal/domain"
)

var storesCmd = &cobra.Command{
	Use:   "stores",
	Short: "List public bookstores",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}

		stores, err := a.client.ListBookstores(cmd.Context())
		if err != nil {
			return err
		}
		if len(stores) == 0 {
			fmt.Println("No bookstores are open right now.")
			return nil
		}
		for _, s := range stores {
			fmt.Printf("%s  %s\n", s.ID, s.Name)
			if s.Description != "" {
				fmt.Printf("    %s\n", s.Description)
			}
		}
		return nil
	},
}

var (
	flagGenre string
	flagPages int
)

var browseCmd = &cobra.Command{
	Use:   "browse",
	Short: "Browse a bookstore's catalog page by page",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		ctrl, err := a.controller()
		if err != nil {
			return err
		}

		ctx := cmd.Context()
		if err := ctrl.LoadStore(ctx); err != nil {
			return err
		}

		store := ctrl.Bookstore()
		fmt.Printf("%s\n", store.Name)
		if logo := ctrl.CacheBustedURL(store.Logo); logo != "" {
			fmt.Printf("logo: %s\n", logo)
		}

		if flagGenre != "" {
			genre, ok := findGenre(ctrl.Genres(), flagGenre)
			if !ok {
				return fmt.Errorf("unknown genre %q", flagGenre)
			}
			if err := ctrl.SetGenreFilter(ctx, genre); err != nil {
				return err
			}
		}

		printPage(ctrl, ctrl.Items())
		for page := 1; page < flagPages && !ctrl.Exhausted(); page++ {
			before := len(ctrl.Items())
			if err := ctrl.LoadMore(ctx); err != nil {
				return err
			}
			printPage(ctrl, ctrl.Items()[before:])
		}
		if ctrl.Exhausted() {
			fmt.Println("-- end of catalog --")
		}
		return nil
	},
}

var bookCmd = &cobra.Command{
	Use:   "book",
	Short: "Inspect and manage books",
}

var bookGetCmd = &cobra.Command{
	Use:   "get <book-id>",
	Short: "Show a single book",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}

		book, err := a.client.GetBook(cmd.Context(), args[0])
		if err != nil {
			return err
		}

		fmt.Printf("%s by %s\n", book.Title, book.Author)
		if book.Genre.Resolved() {
			fmt.Printf("genre: %s\n", book.Genre.Name())
		}
		fmt.Printf("price: %.2f\n", book.Price)
		fmt.Printf("status: %s\n", book.Purchasable())
		if book.Description != "" {
			fmt.Printf("\n%s\n", book.Description)
		}
		return nil
	},
}

func init() {
	browseCmd.Flags().StringVar(&flagGenre, "genre", "", "filter by genre name")
	browseCmd.Flags().IntVar(&flagPages, "pages", 1, "number of pages to load")

	bookCmd.AddCommand(bookGetCmd)
}

func findGenre(genres []domain.Genre, name string) (domain.Genre, bool) {
	if name == domain.AllGenres.Name {
		return domain.AllGenres, true
	}
	for _, g := range genres {
		if g.Name == name {
			return g, true
		}
	}
	return domain.Genre{}, false
}

func printPage(ctrl *catalog.Controller, books []domain.Book) {
	for _, b := range books {
		fmt.Printf("%s  %-30s %-20s %8.2f  %s\n", b.ID, b.Title, b.Genre.Name(), b.Price, b.Purchasable())
		if cover := ctrl.CacheBustedURL(b.Cover); cover != "" {
			fmt.Printf("    cover: %s\n", cover)
		}
	}
}
