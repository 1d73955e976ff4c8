package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/joho/godotenv"

	"github.com/streetside/storefront-backend/internal/legacyimport"
	"github.com/streetside/storefront-backend/pkg/logger"
)

// import-legacy is a one-shot offline tool. It reads a legacy catalog per an
// explicit mapping version and creates products through the running API's
// admin endpoints.
func main() {
	ctx := context.Background()
	logg := logger.New(logger.Options{ServiceName: "import-legacy"})

	_ = godotenv.Load()

	mappingVersion := flag.String("mapping", "v1", "source mapping version")
	sourceDSN := flag.String("source-dsn", os.Getenv("STOREFRONT_IMPORT_SOURCE_DSN"), "legacy database DSN")
	apiURL := flag.String("api", "http://localhost:8787", "storefront API base URL")
	email := flag.String("email", os.Getenv("STOREFRONT_IMPORT_ADMIN_EMAIL"), "admin email")
	password := flag.String("password", os.Getenv("STOREFRONT_IMPORT_ADMIN_PASSWORD"), "admin password")
	dryRun := flag.Bool("dry-run", false, "read and map rows without creating products")
	flag.Parse()

	if *email == "" || *password == "" {
		fmt.Fprintln(os.Stderr, "admin credentials are required (-email/-password)")
		os.Exit(1)
	}

	mapping, err := legacyimport.MappingFor(*mappingVersion)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	source, err := legacyimport.OpenSource(*sourceDSN, mapping)
	if err != nil {
		logg.Error(ctx, "failed to open source database", err)
		os.Exit(1)
	}
	defer source.Close()

	client := legacyimport.NewAdminClient(*apiURL)
	if err := client.Login(ctx, *email, *password); err != nil {
		logg.Error(ctx, "failed to authenticate against admin api", err)
		os.Exit(1)
	}

	importer, err := legacyimport.NewImporter(legacyimport.ImporterParams{
		Mapping: mapping,
		Source:  source,
		API:     client,
		Logger:  logg,
		DryRun:  *dryRun,
	})
	if err != nil {
		logg.Error(ctx, "failed to build importer", err)
		os.Exit(1)
	}

	summary, runErr := importer.Run(ctx)
	fmt.Printf("created=%d skipped=%d failed=%d\n", summary.Created, summary.Skipped, summary.Failed)
	if runErr != nil {
		logg.Error(ctx, "import finished with row failures", runErr)
		os.Exit(1)
	}
}
