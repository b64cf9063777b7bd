package services

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"time"

	"github.com/ledongthuc/pdf"
	"go.uber.org/zap"

	"journal-craft/models"
)

const (
	texFileName = "article.tex"
	pdfFileName = "article.pdf"
	classFile   = "scd.cls"
	imageDir    = "img"

	// enginePasses is the fixed number of engine invocations: pass one
	// resolves forward references, pass two finalizes them. Not a retry
	// loop; a pass-one failure aborts immediately.
	enginePasses = 2
)

// CompileResult is a successful compilation artifact. Pages is a best-effort
// page count (0 when the artifact could not be parsed).
type CompileResult struct {
	PDF   []byte
	Pages int
}

// CompileService materializes an article's LaTeX source into an isolated
// scratch directory and runs the typesetting engine over it.
type CompileService interface {
	Compile(ctx context.Context, article *models.Article) (*CompileResult, error)
}

type compileService struct {
	latex       LatexService
	logger      *zap.Logger
	engineBin   string
	assetsDir   string
	scratchRoot string
	passTimeout time.Duration
}

func NewCompileService(latex LatexService, logger *zap.Logger, engineBin, assetsDir, scratchRoot string, passTimeout time.Duration) CompileService {
	return &compileService{
		latex:       latex,
		logger:      logger,
		engineBin:   engineBin,
		assetsDir:   assetsDir,
		scratchRoot: scratchRoot,
		passTimeout: passTimeout,
	}
}

// Compile renders the article and runs the engine twice. Each call claims a
// uniquely named scratch directory, so concurrent compilations never share
// state; the directory is removed on every path, best-effort.
func (s *compileService) Compile(ctx context.Context, article *models.Article) (*CompileResult, error) {
	scratch, err := os.MkdirTemp(s.scratchRoot, "latex-")
	if err != nil {
		return nil, fmt.Errorf("creating scratch directory: %w", err)
	}
	defer os.RemoveAll(scratch)

	if err := s.stageAssets(scratch); err != nil {
		return nil, err
	}

	texSource := s.latex.RenderDocument(article)
	if err := os.WriteFile(filepath.Join(scratch, texFileName), []byte(texSource), 0o644); err != nil {
		return nil, fmt.Errorf("writing %s: %w", texFileName, err)
	}

	start := time.Now()
	for pass := 1; pass <= enginePasses; pass++ {
		if err := s.runEngine(ctx, scratch, pass); err != nil {
			return nil, err
		}
	}

	pdfPath := filepath.Join(scratch, pdfFileName)
	pdfBytes, err := os.ReadFile(pdfPath)
	if err != nil {
		// Exit code said success but the artifact is missing.
		return nil, models.NewCompileError("", "engine reported success but produced no %s", pdfFileName)
	}

	pages := countPages(pdfPath)
	s.logger.Info("compiled article",
		zap.String("title", article.Metadata.TitleTurkish),
		zap.Int("pdf_bytes", len(pdfBytes)),
		zap.Int("pages", pages),
		zap.Duration("took", time.Since(start)))

	return &CompileResult{PDF: pdfBytes, Pages: pages}, nil
}

// stageAssets copies the document class and the optional image directory
// into the scratch directory. A missing class file is fatal; a missing
// image directory is replaced by an empty one.
func (s *compileService) stageAssets(scratch string) error {
	if err := copyFile(filepath.Join(s.assetsDir, classFile), filepath.Join(scratch, classFile)); err != nil {
		return fmt.Errorf("copying %s: %w", classFile, err)
	}

	imgDest := filepath.Join(scratch, imageDir)
	if err := copyDir(filepath.Join(s.assetsDir, imageDir), imgDest); err != nil {
		if err := os.MkdirAll(imgDest, 0o755); err != nil {
			return fmt.Errorf("creating %s: %w", imageDir, err)
		}
	}
	return nil
}

// runEngine executes one engine pass non-interactively, halting on the
// first fatal error. The pass context carries a timeout that kills a hung
// engine process.
func (s *compileService) runEngine(ctx context.Context, scratch string, pass int) error {
	passCtx := ctx
	if s.passTimeout > 0 {
		var cancel context.CancelFunc
		passCtx, cancel = context.WithTimeout(ctx, s.passTimeout)
		defer cancel()
	}

	cmd := exec.CommandContext(passCtx, s.engineBin, "-interaction=nonstopmode", "-halt-on-error", texFileName)
	cmd.Dir = scratch
	// Stop waiting on output pipes held open by engine children once the
	// process itself has been killed.
	cmd.WaitDelay = 2 * time.Second

	output, err := cmd.CombinedOutput()
	if err != nil {
		if passCtx.Err() == context.DeadlineExceeded {
			s.logger.Warn("engine pass timed out", zap.Int("pass", pass), zap.Duration("timeout", s.passTimeout))
			return models.NewCompileError(string(output), "%s pass %d timed out after %s", s.engineBin, pass, s.passTimeout)
		}
		s.logger.Warn("engine pass failed", zap.Int("pass", pass), zap.Error(err))
		return models.NewCompileError(string(output), "%s failed on pass %d: %v", s.engineBin, pass, err)
	}
	return nil
}

// countPages parses the artifact to report its page count. Best-effort: an
// unparsable PDF yields 0, never an error.
func countPages(path string) (pages int) {
	// The parser can panic on truncated engine output.
	defer func() {
		if recover() != nil {
			pages = 0
		}
	}()

	f, r, err := pdf.Open(path)
	if err != nil {
		return 0
	}
	defer f.Close()
	return r.NumPage()
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	defer out.Close()

	_, err = io.Copy(out, in)
	return err
}

func copyDir(src, dst string) error {
	entries, err := os.ReadDir(src)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(dst, 0o755); err != nil {
		return err
	}
	for _, entry := range entries {
		srcPath := filepath.Join(src, entry.Name())
		dstPath := filepath.Join(dst, entry.Name())
		if entry.IsDir() {
			if err := copyDir(srcPath, dstPath); err != nil {
				return err
			}
			continue
		}
		if err := copyFile(srcPath, dstPath); err != nil {
			return err
		}
	}
	return nil
}
