package creatorly

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/arthur-debert/creatorly/internal/version"
	"github.com/arthur-debert/creatorly/pkg/commands"
	"github.com/arthur-debert/creatorly/pkg/commands/generate"
	"github.com/arthur-debert/creatorly/pkg/config"
	"github.com/arthur-debert/creatorly/pkg/errors"
	"github.com/arthur-debert/creatorly/pkg/logging"
	"github.com/arthur-debert/creatorly/pkg/paths"
	"github.com/arthur-debert/creatorly/pkg/renderer"
	"github.com/arthur-debert/creatorly/pkg/types"
	"github.com/arthur-debert/creatorly/pkg/ui/prompt"
	"github.com/arthur-debert/creatorly/pkg/ui/styles"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/spf13/cobra/doc"
)

// globalOptions are the persistent flags
type globalOptions struct {
	verbosity   int
	renderer    string
	yes         bool
	configFile  string
	concurrency int
	lenient     bool
}

// app carries what every command needs once flags are parsed
type app struct {
	opts           globalOptions
	cfg            *config.Config
	ui             types.UserInteraction
	nonInteractive bool

	// stdin is checked for a terminal; tests replace it
	stdin *os.File
}

// NewRootCmd creates and returns the root command
func NewRootCmd() *cobra.Command {
	initTemplateFormatting()

	a := &app{stdin: os.Stdin}

	rootCmd := &cobra.Command{
		Use:     "creatorly",
		Short:   MsgRootShort,
		Long:    MsgRootLong,
		Version: version.Version,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			logging.SetupLogger(a.opts.verbosity)
			log.Debug().Str("command", cmd.Name()).Msg("Command started")
			return a.setup(cmd)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			_ = cmd.Help()
			return fmt.Errorf(MsgErrNoCommand)
		},
		SilenceUsage:      true,
		SilenceErrors:     true,
		DisableAutoGenTag: true,
	}

	// Global flags
	pf := rootCmd.PersistentFlags()
	pf.CountVarP(&a.opts.verbosity, "verbose", "v", MsgFlagVerbose)
	pf.StringVar(&a.opts.renderer, "renderer", "", MsgFlagRenderer)
	pf.BoolVarP(&a.opts.yes, "yes", "y", false, MsgFlagYes)
	pf.StringVarP(&a.opts.configFile, "config", "c", "", MsgFlagConfig)
	pf.IntVar(&a.opts.concurrency, "concurrency", 0, MsgFlagConcurrency)
	pf.BoolVar(&a.opts.lenient, "lenient", false, MsgFlagLenient)

	_ = rootCmd.RegisterFlagCompletionFunc("renderer", func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		return renderer.Names(), cobra.ShellCompDirectiveNoFileComp
	})

	rootCmd.AddGroup(&cobra.Group{ID: "core", Title: "COMMANDS:"})
	rootCmd.AddGroup(&cobra.Group{ID: "misc", Title: "MISC:"})
	rootCmd.SetHelpCommandGroupID("misc")
	rootCmd.SetUsageTemplate(MsgUsageTemplate)

	rootCmd.AddCommand(newGenerateCmd(a))
	rootCmd.AddCommand(newCreateCmd(a))
	rootCmd.AddCommand(newCheckCmd(a))
	rootCmd.AddCommand(newConfigCmd(a))
	rootCmd.AddCommand(newVersionCmd())
	rootCmd.AddCommand(newCompletionCmd())
	rootCmd.AddCommand(newManCmd())

	return rootCmd
}

// setup loads the configuration, flags last, and picks the user interaction
func (a *app) setup(cmd *cobra.Command) error {
	flags := cmd.Flags()
	overrides := map[string]interface{}{}
	if flags.Changed("renderer") {
		overrides["render.renderer"] = a.opts.renderer
	}
	if flags.Changed("concurrency") {
		overrides["render.concurrency"] = a.opts.concurrency
	}
	if flags.Changed("lenient") {
		overrides["answers.lenient_selection"] = a.opts.lenient
	}

	cfg, err := config.Load(config.LoadOptions{
		ConfigFile: paths.ExpandHome(a.opts.configFile),
		Overrides:  overrides,
	})
	if err != nil {
		return err
	}
	a.cfg = cfg

	a.nonInteractive = a.opts.yes || !styles.IsTerminal(a.stdin)
	a.ui = newUI(cmd.OutOrStdout(), cmd.ErrOrStderr(), a.nonInteractive)
	if !a.opts.yes && a.nonInteractive {
		log.Debug().Msg(MsgNonInteractiveNote)
	}
	return nil
}

func newUI(out, errOut io.Writer, nonInteractive bool) types.UserInteraction {
	f, ok := out.(*os.File)
	printer := prompt.NewPrinter(out, errOut, ok && styles.ColorEnabled(f))
	if nonInteractive {
		return &prompt.Defaults{Printer: printer}
	}
	return &prompt.Console{Printer: printer}
}

func newGenerateCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "generate",
		Short:   MsgGenerateShort,
		Long:    MsgGenerateLong,
		Example: MsgGenerateExample,
		GroupID: "core",
		Args:    cobra.NoArgs,
	}

	var (
		templatePath, destination string
		remotePath, branch, clone string
		dryRun                    bool
	)

	run := func(cmd *cobra.Command, opts commands.GenerateOptions) error {
		opts.Destination = absPath(destination)
		opts.DryRun = dryRun
		opts.NonInteractive = a.nonInteractive
		opts.Config = a.cfg
		opts.UI = a.ui

		log.Info().
			Str("source", string(opts.Source)).
			Str("location", opts.Location).
			Str("destination", opts.Destination).
			Bool("dryRun", dryRun).
			Msg("Generating project")

		if _, err := commands.Generate(cmd.Context(), opts); err != nil {
			return fmt.Errorf(MsgErrGenerate, err)
		}
		return nil
	}

	local := &cobra.Command{
		Use:   "local",
		Short: MsgGenerateLocalShort,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, commands.GenerateOptions{
				Source:   generate.SourceLocal,
				Location: absPath(templatePath),
			})
		},
	}
	local.Flags().StringVarP(&templatePath, "template-path", "t", "", MsgFlagTemplatePath)
	_ = local.MarkFlagRequired("template-path")
	_ = local.MarkFlagDirname("template-path")

	git := &cobra.Command{
		Use:   "git",
		Short: MsgGenerateGitShort,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, commands.GenerateOptions{
				Source:   generate.SourceGit,
				Location: remotePath,
				Branch:   branch,
				CloneDir: absPath(clone),
			})
		},
	}
	git.Flags().StringVarP(&remotePath, "remote-path", "r", "", MsgFlagRemotePath)
	git.Flags().StringVarP(&branch, "branch", "b", "", MsgFlagBranch)
	git.Flags().StringVarP(&clone, "input-path", "i", "", MsgFlagInputPath)
	_ = git.MarkFlagRequired("remote-path")

	for _, sub := range []*cobra.Command{local, git} {
		sub.Flags().StringVarP(&destination, "destination-path", "d", "", MsgFlagDestinationPath)
		sub.Flags().BoolVar(&dryRun, "dry-run", false, MsgFlagDryRun)
		_ = sub.MarkFlagRequired("destination-path")
		_ = sub.MarkFlagDirname("destination-path")
		cmd.AddCommand(sub)
	}

	return cmd
}

func newCreateCmd(a *app) *cobra.Command {
	var entryDir string

	cmd := &cobra.Command{
		Use:     "create",
		Short:   MsgCreateShort,
		Long:    MsgCreateLong,
		Example: MsgCreateExample,
		GroupID: "core",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := commands.Create(cmd.Context(), commands.CreateOptions{
				EntryDir:       absPath(entryDir),
				NonInteractive: a.nonInteractive,
				Config:         a.cfg,
				UI:             a.ui,
			})
			if err != nil {
				return fmt.Errorf(MsgErrCreate, err)
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&entryDir, "entry-dir", "e", ".", MsgFlagEntryDir)
	_ = cmd.MarkFlagDirname("entry-dir")

	return cmd
}

func newCheckCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:     "check <template-path>",
		Short:   MsgCheckShort,
		Long:    MsgCheckLong,
		Example: MsgCheckExample,
		GroupID: "core",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := absPath(args[0])

			result, err := commands.Check(cmd.Context(), commands.CheckOptions{
				Path:   path,
				Config: a.cfg,
				UI:     a.ui,
			})
			if err != nil {
				return fmt.Errorf(MsgErrCheck, err)
			}

			if result.IsValid() {
				a.ui.PrintSuccess(fmt.Sprintf(MsgCheckPassedFormat, path))
				return nil
			}

			a.ui.PrintError(fmt.Sprintf(MsgCheckFailedFormat, path, len(result.Issues)))
			for _, issue := range result.Issues {
				a.ui.PrintError(fmt.Sprintf(MsgCheckIssueFormat, issue.String()))
			}
			return errors.Newf(errors.ErrValidation, MsgErrCheckIssues, len(result.Issues)).
				WithDetail("path", path)
		},
	}
}

func newConfigCmd(a *app) *cobra.Command {
	var defaults, write bool

	cmd := &cobra.Command{
		Use:     "config",
		Short:   MsgConfigShort,
		Long:    MsgConfigLong,
		GroupID: "misc",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			result, err := commands.GenConfig(commands.GenConfigOptions{
				Config:   a.cfg,
				Defaults: defaults,
				Write:    write,
			})
			if err != nil {
				return fmt.Errorf(MsgErrConfig, err)
			}

			if !write {
				_, _ = fmt.Fprint(cmd.OutOrStdout(), result.Content)
				return nil
			}
			if result.FileWritten == "" {
				a.ui.Print(MsgConfigExists)
				return nil
			}
			a.ui.PrintSuccess(fmt.Sprintf(MsgConfigWritten, result.FileWritten))
			return nil
		},
	}
	cmd.Flags().BoolVar(&defaults, "defaults", false, MsgFlagDefaults)
	cmd.Flags().BoolVarP(&write, "write", "w", false, MsgFlagWrite)

	return cmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "version",
		Short:   MsgVersionShort,
		GroupID: "misc",
		Args:    cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			_, _ = fmt.Fprint(cmd.OutOrStdout(), version.Info())
		},
	}
}

func newCompletionCmd() *cobra.Command {
	return &cobra.Command{
		Use:                   "completion [bash|zsh|fish|powershell]",
		Short:                 MsgCompletionShort,
		Long:                  MsgCompletionLong,
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		GroupID:               "misc",
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			switch args[0] {
			case "bash":
				return cmd.Root().GenBashCompletionV2(out, true)
			case "zsh":
				return cmd.Root().GenZshCompletion(out)
			case "fish":
				return cmd.Root().GenFishCompletion(out, true)
			case "powershell":
				return cmd.Root().GenPowerShellCompletionWithDesc(out)
			}
			return nil
		},
	}
}

func newManCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "man",
		Short:   MsgManShort,
		GroupID: "misc",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return doc.GenMan(cmd.Root(), ManHeader(), cmd.OutOrStdout())
		},
	}
}

// ManHeader is the header of the generated man page
func ManHeader() *doc.GenManHeader {
	return &doc.GenManHeader{
		Title:   "CREATORLY",
		Section: "1",
		Source:  version.Short(),
		Manual:  "creatorly manual",
	}
}

// absPath makes path absolute so messages and destination checks compare
// like with like; it returns path unchanged when that fails
func absPath(path string) string {
	if path == "" {
		return path
	}
	abs, err := filepath.Abs(paths.ExpandHome(path))
	if err != nil {
		return path
	}
	return abs
}
