package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/bookmarketapp/bookmarket-client/internal/domain"
)

var flagYes bool

var coverCmd = &cobra.Command{
	Use:   "cover",
	Short: "Manage book cover images",
}

var coverUploadCmd = &cobra.Command{
	Use:   "upload <book-id> <image-file>",
	Short: "Upload a cover image",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		_, ctrl, err := ownerController(cmd)
		if err != nil {
			return err
		}

		file, err := os.Open(args[1])
		if err != nil {
			return err
		}
		defer file.Close()

		asset, err := ctrl.UploadCover(cmd.Context(), args[0], filepath.Base(args[1]), file)
		if err != nil {
			return err
		}
		fmt.Printf("uploaded %s\n", ctrl.CacheBustedURL(&asset))
		return nil
	},
}

var coverDeleteCmd = &cobra.Command{
	Use:   "delete <book-id>",
	Short: "Delete a cover image",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		_, ctrl, err := ownerController(cmd)
		if err != nil {
			return err
		}

		// Deletion is two-phase; --yes supplies the confirmation.
		ctrl.RequestDeleteCover(args[0])
		if !flagYes {
			ctrl.CancelDelete()
			return fmt.Errorf("deleting a cover is permanent; re-run with --yes to confirm")
		}
		if err := ctrl.ConfirmDelete(cmd.Context()); err != nil {
			return err
		}
		fmt.Printf("cover deleted for %s\n", args[0])
		return nil
	},
}

var logoCmd = &cobra.Command{
	Use:   "logo",
	Short: "Manage the store logo",
}

var logoUploadCmd = &cobra.Command{
	Use:   "upload <image-file>",
	Short: "Upload the store logo",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		_, ctrl, err := ownerController(cmd)
		if err != nil {
			return err
		}

		file, err := os.Open(args[0])
		if err != nil {
			return err
		}
		defer file.Close()

		asset, err := ctrl.UploadLogo(cmd.Context(), filepath.Base(args[0]), file)
		if err != nil {
			return err
		}
		fmt.Printf("uploaded %s\n", ctrl.CacheBustedURL(&asset))
		return nil
	},
}

var logoDeleteCmd = &cobra.Command{
	Use:   "delete",
	Short: "Delete the store logo",
	RunE: func(cmd *cobra.Command, args []string) error {
		_, ctrl, err := ownerController(cmd)
		if err != nil {
			return err
		}

		ctrl.RequestDeleteLogo()
		if !flagYes {
			ctrl.CancelDelete()
			return fmt.Errorf("deleting the logo is permanent; re-run with --yes to confirm")
		}
		if err := ctrl.ConfirmDelete(cmd.Context()); err != nil {
			return err
		}
		fmt.Println("logo deleted")
		return nil
	},
}

var profileFlags struct {
	name         string
	description  string
	phone        string
	email        string
	address      string
	shippingRate float64
}

var profileCmd = &cobra.Command{
	Use:   "profile",
	Short: "Manage the store profile",
}

var profileUpdateCmd = &cobra.Command{
	Use:   "update",
	Short: "Update the store profile",
	RunE: func(cmd *cobra.Command, args []string) error {
		_, ctrl, err := ownerController(cmd)
		if err != nil {
			return err
		}

		store, err := ctrl.UpdateProfile(cmd.Context(), domain.BookstorePatch{
			Name:         profileFlags.name,
			Description:  profileFlags.description,
			Phone:        profileFlags.phone,
			Email:        profileFlags.email,
			Address:      profileFlags.address,
			ShippingRate: profileFlags.shippingRate,
		})
		if err != nil {
			return err
		}
		fmt.Printf("updated %s\n", store.Name)
		return nil
	},
}

func init() {
	coverDeleteCmd.Flags().BoolVar(&flagYes, "yes", false, "confirm the deletion")
	logoDeleteCmd.Flags().BoolVar(&flagYes, "yes", false, "confirm the deletion")

	coverCmd.AddCommand(coverUploadCmd)
	coverCmd.AddCommand(coverDeleteCmd)
	logoCmd.AddCommand(logoUploadCmd)
	logoCmd.AddCommand(logoDeleteCmd)

	profileUpdateCmd.Flags().StringVar(&profileFlags.name, "name", "", "store name")
	profileUpdateCmd.Flags().StringVar(&profileFlags.description, "description", "", "store description")
	profileUpdateCmd.Flags().StringVar(&profileFlags.phone, "phone", "", "contact phone")
	profileUpdateCmd.Flags().StringVar(&profileFlags.email, "email", "", "contact email")
	profileUpdateCmd.Flags().StringVar(&profileFlags.address, "address", "", "street address")
	profileUpdateCmd.Flags().Float64Var(&profileFlags.shippingRate, "shipping-rate", 0, "flat shipping rate")

	profileCmd.AddCommand(profileUpdateCmd)
}
