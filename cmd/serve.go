package main

import (
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sells-group/schemaform/internal/compare"
	"github.com/sells-group/schemaform/internal/form"
	"github.com/sells-group/schemaform/internal/render"
	"github.com/sells-group/schemaform/internal/schema"
	"github.com/sells-group/schemaform/internal/web"
)

var (
	servePort    int
	serveCompare string
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve forms for every schema in the schema directory",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		spacing := render.ParseSpacing(cfg.Form.Spacing)

		schemas, err := loadSchemas(cfg.Form.SchemaDir)
		if err != nil {
			return err
		}
		if len(schemas) == 0 {
			return eris.Errorf("serve: no schemas found in %s", cfg.Form.SchemaDir)
		}

		srv := web.NewServer()
		for name, s := range schemas {
			if name == serveCompare {
				left := form.New(name+"_left", s, form.WithSpacing(spacing))
				right := form.New(name+"_right", s, form.WithSpacing(spacing))
				pair, err := compare.NewPair(name, left, right,
					compare.WithLabels("Left", "Right"))
				if err != nil {
					return err
				}
				if err := srv.RegisterPair(pair); err != nil {
					return err
				}
				continue
			}
			if err := srv.RegisterForm(form.New(name, s, form.WithSpacing(spacing))); err != nil {
				return err
			}
		}

		port := servePort
		if port == 0 {
			port = cfg.Server.Port
		}
		return srv.Start(ctx, port)
	},
}

// loadSchemas reads every *.yaml schema in dir, keyed by file stem.
func loadSchemas(dir string) (map[string]*schema.Schema, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, eris.Wrapf(err, "serve: read schema dir %s", dir)
	}
	out := map[string]*schema.Schema{}
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".yaml") {
			continue
		}
		s, err := schema.LoadFile(filepath.Join(dir, e.Name()))
		if err != nil {
			return nil, err
		}
		name := strings.TrimSuffix(e.Name(), ".yaml")
		out[name] = s
		zap.L().Info("loaded schema", zap.String("name", name), zap.Int("fields", len(s.Fields)))
	}
	return out, nil
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 0, "server port (default from config)")
	serveCmd.Flags().StringVar(&serveCompare, "compare", "", "serve the named schema as a comparison pair instead of a single form")
	rootCmd.AddCommand(serveCmd)
}
