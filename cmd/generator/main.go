// Command generator scans the package it is invoked in for constructor
// functions annotated with @provide, and generates an InstallProviders
// function registering each of them on a singlet.Collection.
//
// It is meant to be driven by go generate, for example with a registry.go
// file containing:
//
//	//go:generate go run github.com/a-peyrard/singlet/cmd/generator
//
// which produces a registry_gen.go file next to it.
package main

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/a-peyrard/singlet/slices"
	"github.com/rs/zerolog"
	"golang.org/x/tools/go/packages"
)

const (
	provideAnnotationTag = "@provide"
	modulePath           = "github.com/a-peyrard/singlet"
)

func main() {
	dryRun := os.Getenv("DRY_RUN") == "true"

	zerolog.SetGlobalLevel(zerolog.DebugLevel)
	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.DateTime}).
		With().
		Timestamp().
		Logger()

	// capture the target file/package, set by go generate
	targetFile := os.Getenv("GOFILE")
	targetPackage := os.Getenv("GOPACKAGE")
	if targetFile == "" || targetPackage == "" {
		logger.Error().Msg("GOFILE and GOPACKAGE are not set, this command must be run through go generate")
		os.Exit(1)
	}

	startScan := time.Now()

	cfg := &packages.Config{
		Mode: packages.NeedName | packages.NeedFiles | packages.NeedSyntax,
	}
	pkgs, err := packages.Load(cfg, ".")
	if err != nil {
		logger.Error().Err(err).Msg("Failed to load the target package")
		os.Exit(1)
	}

	imports := newImportTable()
	var providers []providerDefinition
	for _, pkg := range pkgs {
		if pkg.Name != targetPackage {
			continue
		}
		logger := logger.With().Str("package", pkg.Name).Logger()
		logger.Debug().Msg("Scanning package")

		found, err := scanProviders(&logger, pkg, imports)
		if err != nil {
			logger.Error().Err(err).Msg("Failed to scan package")
			os.Exit(1)
		}
		providers = append(providers, found...)
	}

	logger.Info().Msgf("🎯 %d providers found in package %s", len(providers), targetPackage)
	definitionsLogs := slices.Map(providers, providerDefinition.String)
	logger.Debug().Msgf("Providers:\n%s", strings.Join(definitionsLogs, "\n----\n"))
	logger.Info().Msgf("🕵️ Scanning completed in %s", time.Since(startScan))

	outputPath := strings.TrimSuffix(targetFile, ".go") + "_gen.go"
	if dryRun {
		outputPath = filepath.Join("/tmp", outputPath)
	}

	if err := generate(outputPath, targetPackage, providers, imports); err != nil {
		logger.Error().Err(err).Msgf("Failed to generate code in %s", outputPath)
		os.Exit(1)
	}
	logger.Info().Msgf("✅ Code generated in %s", outputPath)
}
