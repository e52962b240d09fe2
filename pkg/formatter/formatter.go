package formatter

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/fatih/color"
	"github.com/pmezard/go-difflib/difflib"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/siyuan-infoblox/rs-imports-group/pkg/errors"
	"github.com/siyuan-infoblox/rs-imports-group/pkg/logging"
	"github.com/siyuan-infoblox/rs-imports-group/pkg/parser"
	"github.com/siyuan-infoblox/rs-imports-group/pkg/rustfmt"
	"github.com/siyuan-infoblox/rs-imports-group/pkg/usetree"
	"github.com/siyuan-infoblox/rs-imports-group/pkg/utils"
)

const stdinName = "<stdin>"

type FormatterConfig struct {
	InPlace     bool     // whether to modify files in place
	Check       bool     // only report files whose imports would change
	Diff        bool     // print unified diffs instead of the formatted source
	SkipRustfmt bool     // don't pass results through rustfmt
	RustfmtPath string   // rustfmt binary
	RustfmtArgs []string // extra arguments passed to rustfmt
	Edition     string   // rustfmt edition, inferred from Cargo.toml when empty
	StdCrates   []string // extra crates grouped with std, core and alloc
	Exclude     []string // directory names skipped when walking directories
	Jobs        int      // files processed in parallel, GOMAXPROCS when 0
	Logger      *zap.Logger
	Out         io.Writer // destination of formatted source and status messages, stdout when nil
}

var (
	warnColor    = color.New(color.FgYellow)
	errorColor   = color.New(color.FgRed)
	successColor = color.New(color.FgGreen)
	addedColor   = color.New(color.FgGreen)
	removedColor = color.New(color.FgRed)
	hunkColor    = color.New(color.FgCyan)
)

// formatter handles the use declaration grouping of files
type formatter struct {
	config     FormatterConfig
	classifier *usetree.Classifier
	logger     *zap.Logger
	out        io.Writer
}

// New creates a new formatter with the given configuration
func New(config FormatterConfig) *formatter {
	out := config.Out
	if out == nil {
		out = os.Stdout
	}
	return &formatter{
		config:     config,
		classifier: usetree.NewClassifier(config.StdCrates...),
		logger:     logging.OrNop(config.Logger),
		out:        out,
	}
}

func (g *formatter) getJobs() int {
	if g.config.Jobs <= 0 {
		return runtime.GOMAXPROCS(0)
	}
	return g.config.Jobs
}

func (g *formatter) getRustfmt(dir string) rustfmt.Runner {
	edition := g.config.Edition
	if edition == "" {
		edition = utils.GetCrateEdition(dir)
	}
	return rustfmt.Runner{
		Path:    g.config.RustfmtPath,
		Edition: edition,
		Args:    g.config.RustfmtArgs,
	}
}

// Format merges the use declarations of one source file and passes the result through rustfmt.
// path is only used for logging and edition lookup; it is empty for stdin.
func (g *formatter) Format(ctx context.Context, path string, src []byte) ([]byte, error) {
	name, dir := path, filepath.Dir(path)
	if path == "" {
		name, dir = stdinName, "."
	}

	p := parser.New()
	defer p.Close()

	runs, err := p.Parse(ctx, src)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", errors.ErrMsgFailedToParseFile, err)
	}

	output, collisions := replaceImports(src, runs, g.classifier)
	g.logger.Debug("merged use declarations",
		zap.String("file", name),
		zap.Int("runs", len(runs)),
		zap.Int("declarations", countDeclarations(runs)))

	for _, c := range collisions {
		decls := make([]string, 0, len(c.Declarations))
		for _, d := range c.Declarations {
			decls = append(decls, d.String())
		}
		g.logger.Warn("name imported more than once",
			zap.String("file", name),
			zap.String("name", c.Name),
			zap.Strings("declarations", decls))
	}

	if g.config.SkipRustfmt {
		return output, nil
	}

	runner := g.getRustfmt(dir)
	g.logger.Debug("running rustfmt", zap.String("file", name), zap.Strings("args", runner.CommandArgs()))
	formatted, err := runner.Format(ctx, output)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", errors.ErrMsgFailedToFormatFile, err)
	}
	return formatted, nil
}

func countDeclarations(runs []parser.Run) int {
	n := 0
	for _, run := range runs {
		n += len(run.Declarations)
	}
	return n
}

// processFile formats one file and writes it back when running in place
func (g *formatter) processFile(ctx context.Context, filePath string) Result {
	res := Result{Path: filePath}

	src, err := os.ReadFile(filePath)
	if err != nil {
		res.Err = fmt.Errorf("%s: %w", errors.ErrMsgFailedToReadFile, err)
		return res
	}

	formatted, err := g.Format(ctx, filePath, src)
	if err != nil {
		res.Err = err
		return res
	}

	res.Original = src
	res.Formatted = formatted
	res.Changed = string(src) != string(formatted)

	if g.config.InPlace && res.Changed {
		info, err := os.Stat(filePath)
		if err != nil {
			res.Err = fmt.Errorf("%s: %w", errors.ErrMsgFailedToStatFile, err)
			return res
		}
		if err := os.WriteFile(filePath, formatted, info.Mode().Perm()); err != nil {
			res.Err = fmt.Errorf("%s: %w", errors.ErrMsgFailedToWriteFile, err)
		}
	}
	return res
}

// writeDiff prints a unified diff between the original and formatted source
func (g *formatter) writeDiff(res Result) error {
	if !res.Changed {
		return nil
	}
	diff, err := difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
		A:        difflib.SplitLines(string(res.Original)),
		B:        difflib.SplitLines(string(res.Formatted)),
		FromFile: "a/" + res.Path,
		ToFile:   "b/" + res.Path,
		Context:  3,
	})
	if err != nil {
		return err
	}

	for _, line := range strings.SplitAfter(diff, "\n") {
		switch {
		case strings.HasPrefix(line, "---"), strings.HasPrefix(line, "+++"):
			fmt.Fprint(g.out, line)
		case strings.HasPrefix(line, "+"):
			addedColor.Fprint(g.out, line)
		case strings.HasPrefix(line, "-"):
			removedColor.Fprint(g.out, line)
		case strings.HasPrefix(line, "@@"):
			hunkColor.Fprint(g.out, line)
		default:
			fmt.Fprint(g.out, line)
		}
	}
	return nil
}

// ProcessStdin formats source read from in and writes the result to the output
func (g *formatter) ProcessStdin(ctx context.Context, in io.Reader) error {
	src, err := io.ReadAll(in)
	if err != nil {
		return fmt.Errorf("%s: %w", errors.ErrMsgFailedToReadStdin, err)
	}

	formatted, err := g.Format(ctx, "", src)
	if err != nil {
		return err
	}

	res := Result{Path: stdinName, Original: src, Formatted: formatted, Changed: string(src) != string(formatted)}
	switch {
	case g.config.Check:
		if res.Changed {
			return fmt.Errorf(errors.ErrMsgFileNeedsReformatting, stdinName)
		}
		return nil
	case g.config.Diff:
		return g.writeDiff(res)
	default:
		_, err = g.out.Write(formatted)
		return err
	}
}

// ProcessFile processes a single Rust source file
func (g *formatter) ProcessFile(ctx context.Context, filePath string) error {
	res := g.processFile(ctx, filePath)
	if res.Err != nil {
		return res.Err
	}

	switch {
	case g.config.Check:
		if res.Changed {
			fmt.Fprintln(g.out, filePath)
			return fmt.Errorf(errors.ErrMsgFileNeedsReformatting, filePath)
		}
	case g.config.Diff:
		return g.writeDiff(res)
	case g.config.InPlace:
		successColor.Fprintf(g.out, errors.InfoMsgProcessedFiles+"\n", filePath)
	default:
		_, err := g.out.Write(res.Formatted)
		return err
	}
	return nil
}

// ProcessFiles processes multiple Rust source files in parallel and reports the results in input order
func (g *formatter) ProcessFiles(ctx context.Context, filePaths []string) error {
	results := make([]Result, len(filePaths))

	if len(filePaths) > 0 {
		eg, egCtx := errgroup.WithContext(ctx)
		eg.SetLimit(min(g.getJobs(), len(filePaths)))

		for i, filePath := range filePaths {
			eg.Go(func() error {
				if err := egCtx.Err(); err != nil {
					return err
				}
				results[i] = g.processFile(egCtx, filePath)
				return nil
			})
		}
		if err := eg.Wait(); err != nil {
			return err
		}
	}

	return g.report(results)
}

func (g *formatter) report(results []Result) error {
	processedCount := 0
	errorCount := 0
	changedCount := 0

	for _, res := range results {
		if res.Err != nil {
			errorColor.Fprintf(g.out, errors.InfoMsgErrorProcessing+"\n", res.Path, res.Err)
			errorCount++
			continue
		}
		processedCount++
		if res.Changed {
			changedCount++
		}

		switch {
		case g.config.Check:
			if res.Changed {
				fmt.Fprintln(g.out, res.Path)
			}
		case g.config.Diff:
			if err := g.writeDiff(res); err != nil {
				return err
			}
		case g.config.InPlace:
			successColor.Fprintf(g.out, errors.InfoMsgProcessedFiles+"\n", res.Path)
		}
	}

	fmt.Fprintf(g.out, errors.InfoMsgProcessedCount, processedCount)
	if errorCount > 0 {
		fmt.Fprintf(g.out, errors.InfoMsgErrorCount, errorCount)
	}
	if g.config.Check && changedCount > 0 {
		fmt.Fprintf(g.out, errors.InfoMsgChangedCount, changedCount)
	}
	fmt.Fprintln(g.out)

	if errorCount > 0 {
		return fmt.Errorf(errors.ErrMsgFilesFailedToProcess, errorCount)
	}
	if g.config.Check && changedCount > 0 {
		return fmt.Errorf(errors.ErrMsgFilesNeedReformatting, changedCount)
	}
	return nil
}

// ProcessPath processes a file or directory path
func (g *formatter) ProcessPath(ctx context.Context, path string) error {
	isDir, err := utils.IsDirectory(path)
	if err != nil {
		return fmt.Errorf("%s: %w", errors.ErrMsgFailedToCheckPath, err)
	}

	if !isDir {
		return g.ProcessFile(ctx, path)
	}

	// Only in-place, check and diff runs produce anything useful for a directory
	if !g.config.InPlace && !g.config.Check && !g.config.Diff {
		warnColor.Fprintln(g.out, errors.WarnMsgProcessingDirWithoutInPlace)
		fmt.Fprint(g.out, errors.InfoMsgUseInPlaceFlag+"\n\n")
	}

	rustFiles, err := utils.FindRustFiles(path, g.config.Exclude)
	if err != nil {
		return fmt.Errorf("%s: %w", errors.ErrMsgFailedToFindRustFiles, err)
	}

	if len(rustFiles) == 0 {
		fmt.Fprintf(g.out, errors.InfoMsgNoRustFilesFound+"\n", path)
		return nil
	}

	fmt.Fprintf(g.out, errors.InfoMsgFoundRustFiles+"\n\n", len(rustFiles), path)
	g.logger.Debug("processing directory", zap.String("path", path), zap.Int("files", len(rustFiles)), zap.Int("jobs", g.getJobs()))

	return g.ProcessFiles(ctx, rustFiles)
}
