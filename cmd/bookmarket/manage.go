package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/bookmarketapp/bookmarket-client/internal/catalog"
	"github.com/bookmarketapp/bookmarket-client/internal/domain"
)

// bookFlags mirrors the book form: everything is a string until Coerce
// turns it into the wire payload.
type bookFlags struct {
	title        string
	description  string
	author       string
	genre        string
	price        string
	availability string
	stock        string
	publisher    string
	year         string
}

func (f *bookFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.title, "title", "", "book title")
	cmd.Flags().StringVar(&f.description, "description", "", "book description")
	cmd.Flags().StringVar(&f.author, "author", "", "book author")
	cmd.Flags().StringVar(&f.genre, "genre", "", "genre id")
	cmd.Flags().StringVar(&f.price, "price", "", "price, e.g. 12.50")
	cmd.Flags().StringVar(&f.availability, "availability", "false", "true or false")
	cmd.Flags().StringVar(&f.stock, "stock", "", "stock count")
	cmd.Flags().StringVar(&f.publisher, "publisher", "", "publisher name")
	cmd.Flags().StringVar(&f.year, "year", "", "publication year")
}

func (f *bookFlags) form() catalog.BookForm {
	return catalog.BookForm{
		Title:           f.title,
		Description:     f.description,
		Author:          f.author,
		Genre:           domain.GenreID(f.genre),
		Price:           f.price,
		Availability:    f.availability,
		Stock:           f.stock,
		Publisher:       f.publisher,
		PublicationYear: f.year,
	}
}

// ownerController loads a controller with the store and genre set ready,
// which mutations need for genre resolution.
func ownerController(cmd *cobra.Command) (*app, *catalog.Controller, error) {
	a, err := newApp()
	if err != nil {
		return nil, nil, err
	}
	ctrl, err := a.controller()
	if err != nil {
		return nil, nil, err
	}
	if err := ctrl.LoadStore(cmd.Context()); err != nil {
		return nil, nil, err
	}
	return a, ctrl, nil
}

var createFlags bookFlags

var bookCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Add a book to the catalog",
	RunE: func(cmd *cobra.Command, args []string) error {
		_, ctrl, err := ownerController(cmd)
		if err != nil {
			return err
		}
		book, err := ctrl.Create(cmd.Context(), createFlags.form())
		if err != nil {
			return err
		}
		fmt.Printf("created %s  %s\n", book.ID, book.Title)
		return nil
	},
}

var updateFlags bookFlags

var bookUpdateCmd = &cobra.Command{
	Use:   "update <book-id>",
	Short: "Update a book",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		_, ctrl, err := ownerController(cmd)
		if err != nil {
			return err
		}
		book, err := ctrl.Update(cmd.Context(), args[0], updateFlags.form())
		if err != nil {
			return err
		}
		fmt.Printf("updated %s  %s\n", book.ID, book.Title)
		return nil
	},
}

var bookDeleteCmd = &cobra.Command{
	Use:   "delete <book-id>",
	Short: "Delete a book (an archive snapshot is kept)",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		_, ctrl, err := ownerController(cmd)
		if err != nil {
			return err
		}
		if err := ctrl.Delete(cmd.Context(), args[0]); err != nil {
			return err
		}
		fmt.Printf("deleted %s\n", args[0])
		return nil
	},
}

var bookArchivesCmd = &cobra.Command{
	Use:   "archives <book-id>",
	Short: "List the archived snapshots of a book",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		_, ctrl, err := ownerController(cmd)
		if err != nil {
			return err
		}
		archives, err := ctrl.Archives(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		if len(archives) == 0 {
			fmt.Println("no archives")
			return nil
		}
		for _, a := range archives {
			fmt.Printf("%s  %-30s %8.2f  archived %s\n", a.ID, a.Title, a.Price, a.CreatedAt.Format("2006-01-02 15:04"))
		}
		return nil
	},
}

var flagArchive string

var bookRestoreCmd = &cobra.Command{
	Use:   "restore <book-id>",
	Short: "Restore a book from one of its archives",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		_, ctrl, err := ownerController(cmd)
		if err != nil {
			return err
		}

		archives, err := ctrl.Archives(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		if len(archives) == 0 {
			return fmt.Errorf("no archives for book %s", args[0])
		}

		// Default to the newest snapshot.
		chosen := archives[len(archives)-1]
		if flagArchive != "" {
			found := false
			for _, a := range archives {
				if a.ID == flagArchive {
					chosen = a
					found = true
					break
				}
			}
			if !found {
				return fmt.Errorf("archive %s does not reference book %s", flagArchive, args[0])
			}
		}

		book, err := ctrl.Restore(cmd.Context(), chosen)
		if err != nil {
			return err
		}
		fmt.Printf("restored %s  %s\n", book.ID, book.Title)
		return nil
	},
}

var genreCmd = &cobra.Command{
	Use:   "genre",
	Short: "Manage the store's genre set",
}

var genreCreateCmd = &cobra.Command{
	Use:   "create <name>",
	Short: "Add a genre",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		_, ctrl, err := ownerController(cmd)
		if err != nil {
			return err
		}
		genre, err := ctrl.CreateGenre(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		fmt.Printf("created %s  %s\n", genre.ID, genre.Name)
		return nil
	},
}

var genreDeleteCmd = &cobra.Command{
	Use:   "delete <genre-id>",
	Short: "Remove a genre (books keep their snapshot)",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		_, ctrl, err := ownerController(cmd)
		if err != nil {
			return err
		}
		if err := ctrl.DeleteGenre(cmd.Context(), args[0]); err != nil {
			return err
		}
		fmt.Printf("deleted %s\n", args[0])
		return nil
	},
}

var genreListCmd = &cobra.Command{
	Use:   "list",
	Short: "List the store's genres",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		if flagStore == "" {
			return fmt.Errorf("--store is required")
		}
		genres, err := a.client.ListGenres(cmd.Context(), flagStore)
		if err != nil {
			return err
		}
		for _, g := range genres {
			fmt.Printf("%s  %s\n", g.ID, g.Name)
		}
		return nil
	},
}

func init() {
	createFlags.register(bookCreateCmd)
	updateFlags.register(bookUpdateCmd)
	bookRestoreCmd.Flags().StringVar(&flagArchive, "archive", "", "archive id to restore (default: newest)")

	bookCmd.AddCommand(bookCreateCmd)
	bookCmd.AddCommand(bookUpdateCmd)
	bookCmd.AddCommand(bookDeleteCmd)
	bookCmd.AddCommand(bookArchivesCmd)
	bookCmd.AddCommand(bookRestoreCmd)

	genreCmd.AddCommand(genreListCmd)
	genreCmd.AddCommand(genreCreateCmd)
	genreCmd.AddCommand(genreDeleteCmd)
}
