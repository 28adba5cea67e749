package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"chatops.app/courier/common/logger"
	"chatops.app/courier/core/config"
	"chatops.app/courier/core/kv"
	"chatops.app/courier/internal/importer"
	"chatops.app/courier/internal/service"
	"chatops.app/courier/internal/store"
)

func main() {
	formatFlag := flag.String("format", "vcard", "document format: vcard or csv")
	fileFlag := flag.String("file", "", "path to the contact document (default: stdin)")
	timeoutFlag := flag.Duration("timeout", 30*time.Second, "overall import deadline")
	flag.Parse()

	cfg, err := config.Load(config.ServiceTypeImporter)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	logger.Setup(cfg)

	format, err := importer.ParseFormat(*formatFlag)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(2)
	}

	document, err := readDocument(*fileFlag)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to read document: %v\n", err)
		os.Exit(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), *timeoutFlag)
	defer cancel()

	handle, err := kv.New(ctx, cfg.Redis)
	if err != nil {
		slog.ErrorContext(ctx, "failed to connect to redis", "error", err)
		os.Exit(1)
	}
	defer handle.Close()

	imports := service.NewImportService(store.NewDirectoryStore(handle))

	result, err := imports.Import(ctx, document, format)
	if err != nil {
		var parseErr *importer.ParseError
		if errors.As(err, &parseErr) {
			fmt.Fprintf(os.Stderr, "document rejected: %v\n", parseErr)
			os.Exit(2)
		}
		slog.ErrorContext(ctx, "import failed", "error", err)
		os.Exit(1)
	}

	fmt.Printf("import %s: %d added, %d skipped, %d total\n",
		result.ImportID, result.Added, result.Skipped, result.Total)
}

func readDocument(path string) (string, error) {
	if path == "" {
		data, err := io.ReadAll(os.Stdin)
		return string(data), err
	}
	data, err := os.ReadFile(path)
	return string(data), err
}
