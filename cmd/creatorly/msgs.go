package creatorly

import (
	_ "embed"
	"strings"
)

// Short messages (one-liners)
const (
	// Command descriptions
	MsgRootShort          = "Scaffold projects from parameterized templates"
	MsgGenerateShort      = "Render a template into a destination directory"
	MsgGenerateLocalShort = "Render a template from a local directory"
	MsgGenerateGitShort   = "Render a template cloned from a git repository"
	MsgCreateShort        = "Write the specification file of a directory from its placeholders"
	MsgCheckShort         = "Validate a template without writing anything"
	MsgConfigShort        = "Print the effective configuration"
	MsgVersionShort       = "Print version information"
	MsgCompletionShort    = "Generate shell completion script"
	MsgManShort           = "Generate the man page"

	// Status messages
	MsgCheckPassedFormat  = "Template %s is valid"
	MsgCheckFailedFormat  = "Template %s has %d issue(s):"
	MsgCheckIssueFormat   = "  %s"
	MsgConfigWritten      = "Configuration written to %s"
	MsgConfigExists       = "Configuration file already exists, nothing written"
	MsgAdviceFormat       = "Hint: %s"
	MsgErrorFormat        = "Error: %v"
	MsgNonInteractiveNote = "Standard input is not a terminal, using default answers"

	// Error messages
	MsgErrNoCommand   = "no command specified"
	MsgErrGenerate    = "failed to generate project: %w"
	MsgErrCheck       = "failed to check template: %w"
	MsgErrCheckIssues = "template check found %d issue(s)"
	MsgErrCreate      = "failed to create specification: %w"
	MsgErrConfig      = "failed to generate configuration: %w"

	// Flag descriptions
	MsgFlagVerbose         = "Increase verbosity (-v INFO, -vv DEBUG, -vvv TRACE)"
	MsgFlagRenderer        = "Renderer to use: liquid, literal or gotemplate"
	MsgFlagYes             = "Accept every default answer without asking"
	MsgFlagConfig          = "Config file (default $XDG_CONFIG_HOME/creatorly/config.toml)"
	MsgFlagConcurrency     = "Maximum files rendered at once (0 for no limit)"
	MsgFlagLenient         = "Pick the first option when a selection is not a number"
	MsgFlagTemplatePath    = "Directory of the template"
	MsgFlagDestinationPath = "Directory the project is written to; it is replaced"
	MsgFlagDryRun          = "List the files that would be written without writing them"
	MsgFlagRemotePath      = "URL of the git repository holding the template"
	MsgFlagBranch          = "Branch to clone (default from config, usually main)"
	MsgFlagInputPath       = "Directory remote templates are cloned into"
	MsgFlagEntryDir        = "Directory to scan for placeholders"
	MsgFlagDefaults        = "Print the built-in defaults, commented out"
	MsgFlagWrite           = "Write the configuration to the user config file"
)

// Long messages from embedded files
var (
	//go:embed msgs/root-long.txt
	msgRootLongRaw string
	MsgRootLong    = strings.TrimSpace(msgRootLongRaw)

	//go:embed msgs/generate-long.txt
	msgGenerateLongRaw string
	MsgGenerateLong    = strings.TrimSpace(msgGenerateLongRaw)

	//go:embed msgs/generate-example.txt
	msgGenerateExampleRaw string
	MsgGenerateExample    = strings.TrimRight(msgGenerateExampleRaw, "\n")

	//go:embed msgs/create-long.txt
	msgCreateLongRaw string
	MsgCreateLong    = strings.TrimSpace(msgCreateLongRaw)

	//go:embed msgs/create-example.txt
	msgCreateExampleRaw string
	MsgCreateExample    = strings.TrimRight(msgCreateExampleRaw, "\n")

	//go:embed msgs/check-long.txt
	msgCheckLongRaw string
	MsgCheckLong    = strings.TrimSpace(msgCheckLongRaw)

	//go:embed msgs/check-example.txt
	msgCheckExampleRaw string
	MsgCheckExample    = strings.TrimRight(msgCheckExampleRaw, "\n")

	//go:embed msgs/config-long.txt
	msgConfigLongRaw string
	MsgConfigLong    = strings.TrimSpace(msgConfigLongRaw)

	//go:embed msgs/completion-long.txt
	msgCompletionLongRaw string
	MsgCompletionLong    = strings.TrimSpace(msgCompletionLongRaw)

	//go:embed msgs/usage-template.txt
	msgUsageTemplateRaw string
	MsgUsageTemplate    = strings.TrimSpace(msgUsageTemplateRaw)
)
