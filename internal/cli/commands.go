package cli

import (
	"encoding/json"
	"fmt"
	"strings"

	"profanity/internal/core/version"
	"profanity/internal/services/profanity/domain"

	"github.com/spf13/cobra"
)

func existsCmd(o *options) *cobra.Command {
	return &cobra.Command{
		Use:   "exists [text...]",
		Short: "Print whether text contains profanity; exits 1 when it does",
		RunE: func(cmd *cobra.Command, args []string) error {
			text, err := input(cmd, args)
			if err != nil {
				return err
			}
			svc, err := o.build(cmd.Context())
			if err != nil {
				return err
			}
			res, err := svc.Exists(cmd.Context(), domain.ExistsInput{Text: text})
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), res.Exists)
			if res.Exists {
				return errFound
			}
			return nil
		},
	}
}

func censorCmd(o *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "censor [text...]",
		Short: "Print text with profanity censored",
		RunE: func(cmd *cobra.Command, args []string) error {
			text, err := input(cmd, args)
			if err != nil {
				return err
			}
			svc, err := o.build(cmd.Context())
			if err != nil {
				return err
			}
			res, err := svc.Censor(cmd.Context(), domain.CensorInput{Text: text, CensorType: o.censorType})
			if err != nil {
				return err
			}
			out, _ := res.Text.(string)
			fmt.Fprint(cmd.OutOrStdout(), out)
			if !strings.HasSuffix(out, "\n") {
				fmt.Fprintln(cmd.OutOrStdout())
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&o.censorType, "type", "t", o.censorType,
		"Censor type: word, word_length, first_char, first_vowel, all_vowels")
	return cmd
}

func matchesCmd(o *options) *cobra.Command {
	return &cobra.Command{
		Use:   "matches [text...]",
		Short: "Print the profane spans of text as JSON",
		RunE: func(cmd *cobra.Command, args []string) error {
			text, err := input(cmd, args)
			if err != nil {
				return err
			}
			svc, err := o.build(cmd.Context())
			if err != nil {
				return err
			}
			res, err := svc.Matches(cmd.Context(), domain.MatchesInput{Text: text})
			if err != nil {
				return err
			}
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(res.Matches)
		},
	}
}

func languagesCmd(o *options) *cobra.Command {
	return &cobra.Command{
		Use:   "languages",
		Short: "List the dataset languages",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			svc, err := o.build(cmd.Context())
			if err != nil {
				return err
			}
			res, err := svc.Languages(cmd.Context())
			if err != nil {
				return err
			}
			for _, l := range res.Languages {
				fmt.Fprintln(cmd.OutOrStdout(), l)
			}
			return nil
		},
	}
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			out, _ := json.MarshalIndent(version.Info(), "", "  ")
			fmt.Fprintln(cmd.OutOrStdout(), string(out))
		},
	}
}
