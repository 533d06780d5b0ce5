// Package corpus discovers prediction files and pairs them with their gold
// standard counterparts.
package corpus

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"

	"github.com/samber/lo"
)

// Document is a prediction paired with its gold file. Paths are slash-separated
// and relative to their directories.
type Document struct {
	Prediction string
	Gold       string
	Filename   string // prediction base name without the prediction extension
	Doctype    string // extension of Filename, without the dot
	Connector  string // first directory of Prediction; empty at the top level
}

// Skip records a file left out of the evaluation.
type Skip struct {
	Path   string
	Reason string
}

// Options control pairing.
type Options struct {
	// OutputList restricts predictions to these paths (relative to the output dir).
	OutputList []string
	// SourceList restricts gold files to these paths (relative to the source dir).
	SourceList []string
	// PredictionExt and GoldExt are file extensions without the dot.
	PredictionExt string
	GoldExt       string
}

// Result is the outcome of Pair.
type Result struct {
	Documents []Document
	Skipped   []Skip
}

// ListFiles returns every regular, non-hidden file under dir as sorted
// slash-separated paths relative to dir.
func ListFiles(dir string) ([]string, error) {
	var files []string
	err := filepath.WalkDir(dir, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if strings.HasPrefix(d.Name(), ".") && p != dir {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if d.IsDir() {
			return nil
		}

		rel, err := filepath.Rel(dir, p)
		if err != nil {
			return err
		}
		files = append(files, filepath.ToSlash(rel))
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("read dir: %w", err)
	}

	sort.Strings(files)
	return files, nil
}

// Pair matches every prediction under outputDir with a gold file under
// sourceDir. The gold file for "<dir>/<name>.<PredictionExt>" is
// "<name>.<GoldExt>", looked up in the same relative directory first and at the
// top level of sourceDir second. Unpaired files are reported in Skipped.
func Pair(outputDir, sourceDir string, opts Options) (Result, error) {
	preds, missingPreds, err := candidates(outputDir, opts.OutputList)
	if err != nil {
		return Result{}, fmt.Errorf("listing predictions: %w", err)
	}
	golds, missingGolds, err := candidates(sourceDir, opts.SourceList)
	if err != nil {
		return Result{}, fmt.Errorf("listing gold standards: %w", err)
	}

	var res Result
	for _, p := range missingPreds {
		res.Skipped = append(res.Skipped, Skip{Path: p, Reason: "prediction file not found"})
	}
	for _, g := range missingGolds {
		res.Skipped = append(res.Skipped, Skip{Path: g, Reason: "gold standard file not found"})
	}

	predSuffix := "." + opts.PredictionExt
	goldSuffix := "." + opts.GoldExt
	goldSet := lo.SliceToMap(golds, func(g string) (string, bool) { return g, true })
	paired := make(map[string]bool)

	for _, pred := range preds {
		if !strings.HasSuffix(pred, predSuffix) {
			if opts.OutputList != nil {
				res.Skipped = append(res.Skipped, Skip{Path: pred, Reason: "not a " + predSuffix + " file"})
			}
			continue
		}

		filename := strings.TrimSuffix(path.Base(pred), predSuffix)
		dir := path.Dir(pred)
		goldName := filename + goldSuffix

		gold, ok := lookup(goldSet, path.Join(dir, goldName), goldName)
		if !ok {
			res.Skipped = append(res.Skipped, Skip{Path: pred, Reason: "no gold standard " + goldName})
			continue
		}
		paired[gold] = true

		res.Documents = append(res.Documents, Document{
			Prediction: pred,
			Gold:       gold,
			Filename:   filename,
			Doctype:    strings.TrimPrefix(path.Ext(filename), "."),
			Connector:  connector(dir),
		})
	}

	// A restricted output list leaves gold files unpaired on purpose.
	if opts.OutputList == nil {
		for _, g := range golds {
			if strings.HasSuffix(g, goldSuffix) && !paired[g] {
				res.Skipped = append(res.Skipped, Skip{Path: g, Reason: "no prediction for gold standard"})
			}
		}
	}

	return res, nil
}

// candidates lists dir, or, when list is set, splits the listed paths into
// existing and missing files.
func candidates(dir string, list []string) (found, missing []string, err error) {
	if list == nil {
		found, err = ListFiles(dir)
		return found, nil, err
	}

	files := lo.Uniq(lo.Map(list, func(p string, _ int) string {
		return path.Clean(filepath.ToSlash(p))
	}))
	sort.Strings(files)

	for _, f := range files {
		_, err := os.Stat(filepath.Join(dir, filepath.FromSlash(f)))
		switch {
		case err == nil:
			found = append(found, f)
		case errors.Is(err, fs.ErrNotExist):
			missing = append(missing, f)
		default:
			return nil, nil, fmt.Errorf("stat %s: %w", f, err)
		}
	}
	return found, missing, nil
}

func lookup(set map[string]bool, names ...string) (string, bool) {
	for _, n := range names {
		if set[n] {
			return n, true
		}
	}
	return "", false
}

func connector(dir string) string {
	if dir == "." {
		return ""
	}
	first, _, _ := strings.Cut(dir, "/")
	return first
}
