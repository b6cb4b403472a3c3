package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"

	"berichtsheft/internal/app"
	"berichtsheft/internal/config"
	"berichtsheft/internal/form"
	"berichtsheft/internal/overlay"
)

// assignments collects repeated -set name=value flags.
type assignments map[string]string

func (a assignments) String() string {
	pairs := make([]string, 0, len(a))
	for k, v := range a {
		pairs = append(pairs, k+"="+v)
	}
	return strings.Join(pairs, ",")
}

func (a assignments) Set(s string) error {
	name, value, ok := strings.Cut(s, "=")
	if !ok || strings.TrimSpace(name) == "" {
		return errors.Errorf("expected name=value, got %q", s)
	}
	a[strings.TrimSpace(name)] = strings.ReplaceAll(value, `\n`, "\n")
	return nil
}

func main() {
	defaultConfig, err := config.DefaultPath()
	if err != nil {
		defaultConfig = ".berichtsheft_generator/config.json"
	}

	values := assignments{}
	templatePath := flag.String("template", defaultTemplatePath(), "PDF template to fill")
	configPath := flag.String("config", defaultConfig, "config file (.json, .yaml)")
	outDir := flag.String("out-dir", "", "directory for generated reports (overrides config)")
	generate := flag.Bool("generate", false, "generate once from config and flags, then exit")
	calibrate := flag.String("calibrate", "", "write a copy of the template with field names at their positions")
	noCompress := flag.Bool("no-compress", false, "do not compress the overlay content stream")
	flag.Var(values, "set", "set a field, name=value (repeatable, \\n for line breaks)")
	flag.Parse()

	logger := log.New(os.Stderr, "berichtsheft: ", log.LstdFlags)

	if _, err := os.Stat(*templatePath); err != nil {
		logger.Fatalf("template file not found at %s", *templatePath)
	}

	a := app.New(*templatePath, config.Store{Path: *configPath},
		app.WithLogger(logger),
		app.WithCompositor(overlay.New(
			overlay.WithCompression(!*noCompress),
			overlay.WithLogger(logger),
		)),
	)
	a.Start()

	for name, value := range values {
		if err := a.Session().Set(name, value); err != nil {
			logger.Fatalf("-set: %v", err)
		}
	}
	if *outDir != "" {
		_ = a.Session().Set(form.OutputDirectory, *outDir)
	}

	switch {
	case *calibrate != "":
		if err := a.Calibrate(*calibrate); err != nil {
			logger.Fatalf("calibrate: %v", err)
		}
		fmt.Printf("Calibration sheet written to %s\n", *calibrate)
	case *generate:
		path, err := a.Generate()
		if err != nil {
			logger.Fatalf("Error generating PDF: %v", err)
		}
		fmt.Printf("PDF generated successfully: %s\n", path)
	default:
		fmt.Println("Starting Berichtsheft Generator...")
		if err := a.Run(context.Background()); err != nil {
			logger.Fatal(err)
		}
	}
}

// defaultTemplatePath looks for the template next to the executable and
// falls back to the working directory.
func defaultTemplatePath() string {
	rel := filepath.Join("assets", "templates", "berichtsheft_wochenlich_template.pdf")
	if exe, err := os.Executable(); err == nil {
		candidate := filepath.Join(filepath.Dir(exe), rel)
		if _, err := os.Stat(candidate); err == nil {
			return candidate
		}
	}
	return rel
}
