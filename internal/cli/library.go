package cli

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"lexis/config"
	"lexis/internal/adapter/fs"
	"lexis/internal/adapter/nlp"
	"lexis/internal/adapter/store"
	"lexis/internal/domain"
	"lexis/internal/usecase"
)

var (
	librarySearchK int
	libraryWord    string
	libraryOut     string
	libraryRefresh bool
	libraryText    bool
)

var libraryCmd = &cobra.Command{
	Use:     "library",
	Aliases: []string{"lib"},
	Short:   "Keep documents and their reports between runs",
	Long: `The library stores documents in .lexis/library.db within the project
directory, together with the last report made for each document and word.
Documents can be referred to by a unique prefix of their ID.

Examples:
  lexis library add essay.txt notes.md
  lexis library import ./corpus
  lexis library list
  lexis library analyze 3f2a --word bank`,
}

var libraryAddCmd = &cobra.Command{
	Use:   "add <file>...",
	Short: "Add documents to the library",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runLibraryAdd,
}

var libraryImportCmd = &cobra.Command{
	Use:   "import [dir]",
	Short: "Add every matching document under a directory",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runLibraryImport,
}

var libraryListCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List stored documents",
	Args:    cobra.NoArgs,
	RunE:    runLibraryList,
}

var libraryShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show a document and its last saved report",
	Args:  cobra.ExactArgs(1),
	RunE:  runLibraryShow,
}

var libraryRemoveCmd = &cobra.Command{
	Use:     "remove <id>",
	Aliases: []string{"rm"},
	Short:   "Remove a document and its reports",
	Args:    cobra.ExactArgs(1),
	RunE:    runLibraryRemove,
}

var libraryAnalyzeCmd = &cobra.Command{
	Use:   "analyze <id>",
	Short: "Analyze a stored document, reusing its saved report",
	Args:  cobra.ExactArgs(1),
	RunE:  runLibraryAnalyze,
}

var librarySearchCmd = &cobra.Command{
	Use:   "search <words>...",
	Short: "Rank stored documents by how much they use the given words",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runLibrarySearch,
}

func init() {
	rootCmd.AddCommand(libraryCmd)
	libraryCmd.AddCommand(libraryAddCmd, libraryImportCmd, libraryListCmd, libraryShowCmd, libraryRemoveCmd, libraryAnalyzeCmd, librarySearchCmd)

	libraryShowCmd.Flags().StringVarP(&libraryWord, "word", "w", "", "show the report saved for this word")
	libraryShowCmd.Flags().BoolVar(&libraryText, "text", false, "print the document text")
	libraryAnalyzeCmd.Flags().StringVarP(&libraryWord, "word", "w", "", "word to report on")
	libraryAnalyzeCmd.Flags().StringVarP(&libraryOut, "out", "o", "", "also write the report to a .json or .yaml file")
	libraryAnalyzeCmd.Flags().BoolVar(&libraryRefresh, "refresh", false, "ignore the saved report and analyze again")
	librarySearchCmd.Flags().IntVarP(&librarySearchK, "top-k", "k", 10, "number of results")
}

// openStore opens the library store and migrates it when needed.
func openStore() (*store.BoltStore, error) {
	cfg := GetConfig()
	dbPath := cfg.LibraryPath(GetRootDir())
	if err := config.EnsureDir(dbPath); err != nil {
		return nil, fmt.Errorf("failed to create library directory: %w", err)
	}

	st, err := store.NewBoltStore(dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open library: %w", err)
	}

	result, err := st.Migrate(cfg)
	if err != nil {
		st.Close()
		return nil, fmt.Errorf("migration failed: %w", err)
	}
	if result.StaleReports || (result.NeedsMigration && result.OldVersion > 0) {
		GetLogger().Info("library migrated", "reason", result.Reason, "from", result.OldVersion, "to", result.NewVersion)
	}
	return st, nil
}

// openLibrary opens the store and builds the library use case over it.
// The caller closes the store.
func openLibrary() (*usecase.LibraryUseCase, *store.BoltStore, error) {
	st, err := openStore()
	if err != nil {
		return nil, nil, err
	}

	analyzer, err := newAnalyzer()
	if err != nil {
		st.Close()
		return nil, nil, err
	}

	uc := usecase.NewLibraryUseCase(st, analyzer, fs.NewTextReader(), analyzer.Backend(), GetLogger())
	return uc, st, nil
}

func runLibraryAdd(cmd *cobra.Command, args []string) error {
	lib, st, err := openLibrary()
	if err != nil {
		return err
	}
	defer st.Close()

	out := cmd.OutOrStdout()
	for _, path := range args {
		doc, added, err := lib.AddFile(path)
		if err != nil {
			return err
		}
		if added {
			fmt.Fprintf(out, "Added %s as %s (%d words)\n", doc.Title, shortID(doc.ID), doc.Words)
		} else {
			fmt.Fprintf(out, "Skipped %s: same text as %s (%s)\n", path, shortID(doc.ID), doc.Title)
		}
	}
	return nil
}

func runLibraryImport(cmd *cobra.Command, args []string) error {
	path := GetRootDir()
	if len(args) > 0 {
		var err error
		path, err = filepath.Abs(args[0])
		if err != nil {
			return fmt.Errorf("invalid path: %w", err)
		}
	}
	if info, err := os.Stat(path); err != nil {
		return fmt.Errorf("path does not exist: %w", err)
	} else if !info.IsDir() {
		return fmt.Errorf("path is not a directory: %s", path)
	}

	lib, st, err := openLibrary()
	if err != nil {
		return err
	}
	defer st.Close()

	cfg := GetConfig()
	walker := fs.NewWalker(cfg.Batch.Includes, cfg.Batch.Excludes)
	result, err := lib.Import(walker, path, newProgress(cmd.ErrOrStderr(), "Importing"))
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Import complete:\n")
	fmt.Fprintf(out, "  Added:   %d\n", result.Added)
	fmt.Fprintf(out, "  Skipped: %d (already in library)\n", result.Skipped)
	if len(result.Errors) > 0 {
		fmt.Fprintf(out, "\nWarnings:\n")
		for _, e := range result.Errors {
			fmt.Fprintf(out, "  - %s\n", e)
		}
	}
	return nil
}

func runLibraryList(cmd *cobra.Command, args []string) error {
	lib, st, err := openLibrary()
	if err != nil {
		return err
	}
	defer st.Close()

	docs, err := lib.List()
	if err != nil {
		return err
	}
	if docs == nil {
		docs = []domain.Document{}
	}
	return render(cmd.OutOrStdout(), docs, func(w io.Writer) { printDocuments(w, docs) })
}

func runLibraryShow(cmd *cobra.Command, args []string) error {
	lib, st, err := openLibrary()
	if err != nil {
		return err
	}
	defer st.Close()

	doc, text, err := lib.Text(args[0])
	if err != nil {
		return err
	}
	saved, err := lib.SavedReport(doc.ID, libraryWord)
	if err != nil {
		return err
	}

	view := struct {
		Document domain.Document     `json:"document" yaml:"document"`
		Report   *domain.SavedReport `json:"report,omitempty" yaml:"report,omitempty"`
	}{Document: doc, Report: saved}

	return render(cmd.OutOrStdout(), view, func(w io.Writer) {
		fmt.Fprintf(w, "ID:      %s\n", doc.ID)
		fmt.Fprintf(w, "Title:   %s\n", doc.Title)
		if doc.Path != "" {
			fmt.Fprintf(w, "Path:    %s\n", doc.Path)
		}
		fmt.Fprintf(w, "Words:   %d\n", doc.Words)
		fmt.Fprintf(w, "Added:   %s\n", doc.AddedAt.Format("2006-01-02 15:04:05"))
		if libraryText {
			fmt.Fprintf(w, "\n%s\n", text)
		}
		if saved == nil {
			fmt.Fprintln(w, "\nNo saved report. Run 'lexis library analyze' first.")
			return
		}
		fmt.Fprintf(w, "\nReport from %s (%s backend):\n\n", saved.CreatedAt.Format("2006-01-02 15:04:05"), saved.Backend)
		printReport(w, saved.Report)
	})
}

func runLibraryRemove(cmd *cobra.Command, args []string) error {
	lib, st, err := openLibrary()
	if err != nil {
		return err
	}
	defer st.Close()

	doc, err := lib.Remove(args[0])
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Removed %s (%s)\n", doc.Title, shortID(doc.ID))
	return nil
}

func runLibraryAnalyze(cmd *cobra.Command, args []string) error {
	lib, st, err := openLibrary()
	if err != nil {
		return err
	}
	defer st.Close()

	saved, reused, err := lib.Analyze(cmd.Context(), args[0], libraryWord, libraryRefresh)
	if err != nil {
		return err
	}
	if reused {
		GetLogger().Info("using saved report", "id", saved.DocID, "created", saved.CreatedAt)
	}

	if libraryOut != "" {
		if err := export(libraryOut, saved.Report); err != nil {
			return err
		}
	}

	return render(cmd.OutOrStdout(), saved.Report, func(w io.Writer) { printReport(w, saved.Report) })
}

func runLibrarySearch(cmd *cobra.Command, args []string) error {
	st, err := openStore()
	if err != nil {
		return err
	}
	defer st.Close()

	backendNLP, err := nlp.New(GetConfig().NLP.Backend)
	if err != nil {
		return err
	}

	query := strings.Join(args, " ")
	hits, err := usecase.NewSearchUseCase(st, backendNLP).Search(cmd.Context(), query, librarySearchK)
	if err != nil {
		return fmt.Errorf("search failed: %w", err)
	}
	if hits == nil {
		hits = []domain.SearchHit{}
	}

	return render(cmd.OutOrStdout(), hits, func(w io.Writer) {
		if len(hits) == 0 {
			fmt.Fprintln(w, "No results found.")
			return
		}
		fmt.Fprintf(w, "Found %d documents for: %s\n\n", len(hits), query)
		for i, h := range hits {
			fmt.Fprintf(w, "%2d. [%.2f] %s  %s (%d words)\n", i+1, h.Score, shortID(h.Document.ID), h.Document.Title, h.Document.Words)
		}
	})
}
