package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/vk/flowbricks/internal/catalogstore"
)

func newIndexCmd(s *session) *cobra.Command {
	return &cobra.Command{
		Use:   "index",
		Short: "Validate the units at --catalog and store them in --catalog-db",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if s.config.CatalogPath == "" || s.config.CatalogDB == "" {
				return usageError(errors.New("index needs both --catalog and --catalog-db"))
			}
			ctx := s.app.Context(cmd.Context())

			store, err := catalogstore.Open(ctx, s.config.CatalogDB)
			if err != nil {
				return err
			}
			defer store.Close()

			n, err := s.app.IndexCatalog(ctx, store)
			if err != nil {
				return err
			}
			fmt.Fprintf(s.outW, "indexed %d units into %s\n", n, s.config.CatalogDB)
			return nil
		},
	}
}
