package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/BilawalArif/redfin-clone/internal/domain"
	"github.com/BilawalArif/redfin-clone/internal/repository"
	"github.com/BilawalArif/redfin-clone/internal/service"
	"github.com/spf13/cobra"
)

func newImportCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "import <file.json>",
		Short: "Bulk import listings",
		Long:  "Insert every listing from a JSON array. Import stops at the first listing that fails.",
		Args:  cobra.ExactArgs(1),
		RunE:  runImport,
	}
}

func runImport(cmd *cobra.Command, args []string) error {
	f, err := os.Open(args[0])
	if err != nil {
		return fmt.Errorf("opening %s: %w", args[0], err)
	}
	defer func() { _ = f.Close() }()

	properties, err := decodeProperties(f)
	if err != nil {
		return err
	}

	db, err := openDB(cmd.Context())
	if err != nil {
		return err
	}
	defer closeDB(db)

	svc := service.NewPropertyService(repository.NewPropertyRepository(db), nil)
	return importProperties(cmd, svc, properties)
}

func importProperties(cmd *cobra.Command, svc service.PropertyService, properties []*domain.Property) error {
	imported, err := svc.Import(cmd.Context(), properties)
	fmt.Fprintf(cmd.OutOrStdout(), "Imported %d of %d properties\n", imported, len(properties))
	return err
}

// decodeProperties reads a JSON array of listings
func decodeProperties(r io.Reader) ([]*domain.Property, error) {
	var properties []*domain.Property
	if err := json.NewDecoder(r).Decode(&properties); err != nil {
		return nil, fmt.Errorf("decoding properties: %w", err)
	}
	if len(properties) == 0 {
		return nil, errors.New("no properties found in file")
	}
	for i, p := range properties {
		if p == nil {
			return nil, fmt.Errorf("property %d is null", i)
		}
	}
	return properties, nil
}
