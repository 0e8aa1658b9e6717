package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/fsnotify/fsnotify"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/lvillar/calcpdf/doctpl"
)

// NewTemplateCommand creates the template subcommand.
func NewTemplateCommand(a *app) *cobra.Command {
	var (
		outFlag   string
		watchFlag bool
	)

	cmd := &cobra.Command{
		Use:   "template [file]",
		Short: "Render a JSON or YAML document template",
		Long: `Render a declarative document template made of headings, paragraphs, tables,
lists, images, spacers and rules. With --watch the template is rendered again
each time it changes, until interrupted.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			in := args[0]
			out := outFlag
			if out == "" {
				out = strings.TrimSuffix(in, filepath.Ext(in)) + ".pdf"
			}
			render := func() error {
				return a.renderTemplate(in, out)
			}
			if err := render(); err != nil {
				if !watchFlag {
					return err
				}
				a.logger.WithError(err).Error("Template failed.")
			}
			if !watchFlag {
				return nil
			}
			return watchFile(cmd.Context(), in, render, a.logger)
		},
	}

	cmd.Flags().StringVarP(&outFlag, "out", "o", "", "output file (default: template name with .pdf)")
	cmd.Flags().BoolVarP(&watchFlag, "watch", "w", false, "render again when the template changes")

	return cmd
}

func (a *app) renderTemplate(in, out string) error {
	src, err := os.ReadFile(in)
	if err != nil {
		return err
	}
	f, err := os.Create(out)
	if err != nil {
		return err
	}
	if err := doctpl.Render(f, src, a.cfg.DocumentOptions()...); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	a.logger.WithFields(logrus.Fields{"template": in, "file": out}).Info("Template rendered.")
	return nil
}

// watchFile calls render each time path is written, until ctx is done.
// Render errors are logged and do not stop the watch.
func watchFile(ctx context.Context, path string, render func() error, logger logrus.FieldLogger) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("watch: %w", err)
	}
	defer watcher.Close()

	abs, err := filepath.Abs(path)
	if err != nil {
		return err
	}
	// editors replace files, so the directory is watched
	if err := watcher.Add(filepath.Dir(abs)); err != nil {
		return fmt.Errorf("watch: %w", err)
	}
	logger.WithField("template", path).Info("Watching template.")

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != abs || !event.Has(fsnotify.Write|fsnotify.Create) {
				continue
			}
			if err := render(); err != nil {
				logger.WithError(err).Error("Template failed.")
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.WithError(err).Warn("Watch error.")
		}
	}
}
