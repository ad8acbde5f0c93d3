package main

import (
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/rotisserie/eris"
	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/willimj3/bella-document-review/internal/chat"
	"github.com/willimj3/bella-document-review/internal/export"
	"github.com/willimj3/bella-document-review/internal/extract"
	"github.com/willimj3/bella-document-review/internal/model"
	"github.com/willimj3/bella-document-review/internal/parse"
	"github.com/willimj3/bella-document-review/internal/store"
	"github.com/willimj3/bella-document-review/internal/template"
	"github.com/willimj3/bella-document-review/pkg/anthropic"
)

var (
	runDocsDir      string
	runTemplateName string
	runTemplateFile string
	runOutFile      string
	runFormat       string
	runProjectName  string
	runIncludeConf  bool
	runIncludeQuote bool
	runChat         bool
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Bulk-extract a directory of documents and export the grid",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		if cfg.Anthropic.Key == "" {
			return eris.New("anthropic API key is not configured (set BELLA_ANTHROPIC_KEY)")
		}

		tmpl, err := resolveTemplate()
		if err != nil {
			return err
		}

		session := store.NewSession(runProjectName)
		if _, err := session.ApplyTemplate(tmpl); err != nil {
			return err
		}

		if err := ingestDocuments(cmd, session); err != nil {
			return err
		}
		if len(session.Documents()) == 0 {
			return eris.Errorf("no supported documents found in %s", runDocsDir)
		}

		client := anthropic.NewClient(cfg.Anthropic.Key)
		protocol := extract.NewProtocol(client, cfg.Anthropic.Model, cfg.Extract)
		scheduler := extract.NewScheduler(protocol, cfg.Extract)

		bar := progressbar.NewOptions(len(session.SelectedDocuments())*len(session.Columns()),
			progressbar.OptionSetDescription("extracting"),
			progressbar.OptionShowCount(),
		)
		onProgress := func(current, total int) {
			// The scheduler reports the diffed work list, which may be smaller
			// than the full grid.
			bar.ChangeMax(total)
			_ = bar.Set(current)
		}
		onResult := func(documentID, columnID string, res model.ExtractionResult) {
			session.SetResult(documentID, columnID, res)
		}

		runErr := scheduler.Run(ctx, session.SelectedDocuments(), session.Columns(), session.Results(), onProgress, onResult)
		_ = bar.Finish()
		fmt.Fprintln(cmd.OutOrStdout())
		if runErr != nil {
			return eris.Wrap(runErr, "bulk run")
		}

		if err := writeExport(session); err != nil {
			return err
		}

		if runChat {
			analyst := chat.NewAnalyst(client, cfg.Anthropic.Model, cfg.Chat)
			return chatLoop(ctx, cmd.InOrStdin(), cmd.OutOrStdout(), analyst, session, cfg.Chat.MaxContextChars)
		}
		return nil
	},
}

// resolveTemplate picks the column template: an explicit file wins over a
// built-in name.
func resolveTemplate() (model.Template, error) {
	if runTemplateFile != "" {
		return template.Load(runTemplateFile)
	}
	if runTemplateName == "" {
		return model.Template{}, eris.New("either --template or --template-file is required")
	}
	tmpl, ok := template.FindBuiltIn(runTemplateName)
	if !ok {
		return model.Template{}, eris.Errorf("unknown template %q (see `bella templates`)", runTemplateName)
	}
	return tmpl, nil
}

func ingestDocuments(cmd *cobra.Command, session *store.Session) error {
	parser := parse.NewParser(cfg.Parse.PdfToTextPath)

	entries, err := os.ReadDir(runDocsDir)
	if err != nil {
		return eris.Wrapf(err, "read documents dir %s", runDocsDir)
	}

	for _, entry := range entries {
		if entry.IsDir() || !parse.SupportedFile(entry.Name()) {
			continue
		}
		doc, err := parser.ParseFile(cmd.Context(), filepath.Join(runDocsDir, entry.Name()))
		if err != nil {
			zap.L().Warn("skipping document",
				zap.String("file", entry.Name()),
				zap.Error(err),
			)
			continue
		}
		session.AddDocuments(doc)
		zap.L().Info("document ingested",
			zap.String("name", doc.Name),
			zap.Int("pages", doc.PageCount),
			zap.Int("chars", len(doc.Content)),
		)
	}
	return nil
}

func writeExport(session *store.Session) error {
	f, err := os.Create(runOutFile)
	if err != nil {
		return eris.Wrapf(err, "create output %s", runOutFile)
	}
	defer f.Close()

	docs := session.Documents()
	cols := session.Columns()
	results := session.Results()

	switch strings.ToLower(runFormat) {
	case "csv":
		return export.WriteCSV(f, docs, cols, results, export.CSVOptions{
			IncludeConfidence: runIncludeConf,
			IncludeQuotes:     runIncludeQuote,
		})
	case "json":
		return export.WriteJSON(f, session.ProjectName(), docs, cols, results)
	case "xlsx":
		return export.WriteXLSX(f, docs, cols, results)
	default:
		return eris.Errorf("unknown export format %q (csv, json, xlsx)", runFormat)
	}
}

func init() {
	runCmd.Flags().StringVar(&runDocsDir, "docs", ".", "directory of documents to review (pdf, docx, txt)")
	runCmd.Flags().StringVar(&runTemplateName, "template", "", "built-in template name")
	runCmd.Flags().StringVar(&runTemplateFile, "template-file", "", "YAML template file")
	runCmd.Flags().StringVar(&runOutFile, "out", "extractions.csv", "output file path")
	runCmd.Flags().StringVar(&runFormat, "format", "csv", "export format: csv, json, or xlsx")
	runCmd.Flags().StringVar(&runProjectName, "project", "", "project name for exports")
	runCmd.Flags().BoolVar(&runIncludeConf, "include-confidence", false, "add per-column confidence columns to CSV")
	runCmd.Flags().BoolVar(&runIncludeQuote, "include-quotes", false, "add per-column quote columns to CSV")
	runCmd.Flags().BoolVar(&runChat, "chat", false, "ask questions about the extracted data after the run")
	rootCmd.AddCommand(runCmd)
}
