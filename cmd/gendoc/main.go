package main

import (
	"compress/gzip"
	"io"
	"os"
	"path/filepath"

	"github.com/owenthereal/tilde/cmd/tilde/command"
	"github.com/owenthereal/tilde/internal/logging"
	"github.com/owenthereal/tilde/internal/version"
	"github.com/spf13/cobra/doc"
	"github.com/spf13/pflag"
)

func main() {
	root := pflag.String("dir", ".", "output root for docs/ and etc/")
	gz := pflag.Bool("gzip", false, "compress the man pages")
	pflag.Parse()

	logger := logging.Must(logging.Writer(os.Stderr))
	if err := generate(*root, *gz); err != nil {
		logger.Error("error generating docs", "error", err)
		os.Exit(1)
	}
}

func generate(root string, gz bool) error {
	rootCmd := command.Root()
	rootCmd.DisableAutoGenTag = true

	docsDir := filepath.Join(root, "docs")
	manDir := filepath.Join(root, "etc", "man", "man1")
	completionDir := filepath.Join(root, "etc", "completion")
	for _, dir := range []string{docsDir, manDir, completionDir} {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return err
		}
	}

	if err := doc.GenMarkdownTree(rootCmd, docsDir); err != nil {
		return err
	}

	header := &doc.GenManHeader{
		Title:   "TILDE",
		Section: "1",
		Source:  "Tilde " + version.String(),
		Manual:  "Tilde Manual",
	}
	if err := doc.GenManTree(rootCmd, header, manDir); err != nil {
		return err
	}

	if gz {
		pages, err := filepath.Glob(filepath.Join(manDir, "*.1"))
		if err != nil {
			return err
		}
		for _, page := range pages {
			if err := compressFile(page); err != nil {
				return err
			}
		}
	}

	if err := rootCmd.GenBashCompletionFile(filepath.Join(completionDir, "tilde.bash_completion.sh")); err != nil {
		return err
	}
	return rootCmd.GenZshCompletionFile(filepath.Join(completionDir, "tilde.zsh_completion"))
}

func compressFile(filename string) error {
	file, err := os.Open(filename)
	if err != nil {
		return err
	}
	defer file.Close()

	compressedFile, err := os.Create(filename + ".gz")
	if err != nil {
		return err
	}
	defer compressedFile.Close()

	gzipWriter := gzip.NewWriter(compressedFile)
	if _, err := io.Copy(gzipWriter, file); err != nil {
		return err
	}
	if err := gzipWriter.Close(); err != nil {
		return err
	}

	return os.Remove(filename)
}
