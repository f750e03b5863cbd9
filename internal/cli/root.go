// Package cli is the profanity command line: check, censor and inspect text
// with the same engine and word lists the API serves
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"unicode/utf8"

	"profanity/internal/core/dataset"
	"profanity/internal/core/profanity"
	"profanity/internal/platform/config"
	"profanity/internal/platform/logger"
	"profanity/internal/services/profanity/domain"
	profmod "profanity/internal/services/profanity/module"
	"profanity/internal/services/profanity/service"
	"profanity/internal/services/profanity/wordfile"

	"github.com/spf13/cobra"
)

// errFound makes exists exit 1 without printing an error
var errFound = errors.New("profanity found")

type options struct {
	langs       []string
	wholeWord   bool
	grawlix     string
	grawlixChar string
	censorType  string

	add       []string
	remove    []string
	whitelist []string
	wordsFile string
	dataset   string
}

// NewRootCmd builds the command tree. Flag defaults come from CORE_PROFANITY_*
func NewRootCmd(cfg config.Conf) *cobra.Command {
	def := profmod.FromConfig(cfg)
	o := &options{
		langs:      def.Engine.Languages,
		wholeWord:  def.Engine.WholeWord,
		grawlix:    def.Engine.Grawlix,
		censorType: def.CensorType.String(),
		wordsFile:  def.WordsFile,
		dataset:    def.DatasetFile,
	}
	if def.Engine.GrawlixChar != 0 {
		o.grawlixChar = string(def.Engine.GrawlixChar)
	}

	root := &cobra.Command{
		Use:           "profanity",
		Short:         "Detect and censor profanity in text",
		Long:          "Reads text from the arguments, or from stdin when there are none, and checks or censors it against per-language word lists.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	pf := root.PersistentFlags()
	pf.StringSliceVarP(&o.langs, "lang", "l", o.langs, "Languages to check (comma separated)")
	pf.BoolVar(&o.wholeWord, "whole-word", o.wholeWord, "Only match whole words")
	pf.StringVar(&o.grawlix, "grawlix", o.grawlix, "Replacement for censor type word")
	pf.StringVar(&o.grawlixChar, "grawlix-char", o.grawlixChar, "Replacement character for the other censor types")
	pf.StringSliceVar(&o.add, "add", nil, "Extra words to treat as profane")
	pf.StringSliceVar(&o.remove, "remove", nil, "Words that no longer count as profane")
	pf.StringSliceVar(&o.whitelist, "whitelist", nil, "Words never to censor")
	pf.StringVar(&o.wordsFile, "words", o.wordsFile, "YAML word file with whitelist, blacklist and removed lists")
	pf.StringVar(&o.dataset, "dataset", o.dataset, "YAML dataset overlaying the built-in languages")

	root.AddCommand(
		existsCmd(o),
		censorCmd(o),
		matchesCmd(o),
		languagesCmd(o),
		versionCmd(),
	)
	return root
}

// Execute runs the CLI and returns the process exit code
func Execute() int {
	opts := logger.FromEnv()
	opts.Writer = os.Stderr
	if os.Getenv("LOG_LEVEL") == "" {
		opts.Level = "warn"
	}
	logger.Init(opts)

	cmd := NewRootCmd(config.New())
	if err := cmd.Execute(); err != nil {
		if errors.Is(err, errFound) {
			return 1
		}
		fmt.Fprintln(os.Stderr, "error:", err)
		return 2
	}
	return 0
}

// build assembles a service from the flags. Custom lists apply in the same
// order a restore from storage uses
func (o *options) build(ctx context.Context) (*service.Service, error) {
	var data dataset.Provider
	base, err := dataset.Load()
	if err != nil {
		return nil, err
	}
	data = base
	if o.dataset != "" {
		extra, err := dataset.LoadFile(o.dataset)
		if err != nil {
			return nil, err
		}
		data = dataset.Merge(base, extra)
	}

	eopts := profanity.Options{
		Languages: o.langs,
		WholeWord: o.wholeWord,
		Grawlix:   o.grawlix,
	}
	if o.grawlixChar != "" {
		eopts.GrawlixChar, _ = utf8.DecodeRuneInString(o.grawlixChar)
	}
	ct, err := profanity.ParseCensorType(o.censorType)
	if err != nil {
		return nil, err
	}
	svc := service.New(profanity.New(data, eopts), service.Config{CensorType: ct})

	if o.wordsFile != "" {
		ls, err := wordfile.Load(o.wordsFile)
		if err != nil {
			return nil, err
		}
		if err := wordfile.Apply(ctx, svc, domain.Lists{}, ls); err != nil {
			return nil, err
		}
	}
	steps := []struct {
		words []string
		fn    func(context.Context, domain.WordsInput) (domain.ListsResult, error)
	}{
		{o.whitelist, svc.AddWhitelist},
		{o.remove, svc.RemoveWords},
		{o.add, svc.AddWords},
	}
	for _, st := range steps {
		if len(st.words) == 0 {
			continue
		}
		if _, err := st.fn(ctx, domain.WordsInput{Words: st.words}); err != nil {
			return nil, err
		}
	}
	return svc, nil
}

// input joins args, or reads all of stdin when there are none
func input(cmd *cobra.Command, args []string) (string, error) {
	if len(args) > 0 {
		return strings.Join(args, " "), nil
	}
	b, err := io.ReadAll(cmd.InOrStdin())
	if err != nil {
		return "", fmt.Errorf("read stdin: %w", err)
	}
	return string(b), nil
}
