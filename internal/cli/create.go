package cli

import (
	"fmt"
	"path/filepath"

	"github.com/kcmaker-dev/kcmaker/internal/ctxlog"
	"github.com/kcmaker-dev/kcmaker/internal/output"
	"github.com/kcmaker-dev/kcmaker/internal/prompt"
	"github.com/kcmaker-dev/kcmaker/internal/scaffold"
	"github.com/spf13/cobra"
)

var (
	createTemplate    string
	createPackageName string
	createOverwrite   string
)

var overwriteModes = map[string]scaffold.OverwriteMode{
	"fail":   scaffold.OverwriteFail,
	"empty":  scaffold.OverwriteEmpty,
	"ignore": scaffold.OverwriteIgnore,
}

func init() {
	createCmd.Flags().StringVarP(&createTemplate, "template", "t", "", "Project template (vanilla-ts, vanilla-js)")
	createCmd.Flags().StringVar(&createPackageName, "package-name", "", "package.json name (defaults to the directory name)")
	createCmd.Flags().StringVar(&createOverwrite, "overwrite", "", "What to do with a non-empty directory: fail, empty, ignore")
	rootCmd.AddCommand(createCmd)
}

var createCmd = &cobra.Command{
	Use:   "create [project-name]",
	Short: "Scaffold a new customization project",
	Long: `Create a new customization project from an embedded template.

The project gets a package.json wired to this CLI, webpack dependencies,
the app configuration accessor under src/global, and an app template under
templates/app that "app" copies for every new app.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runCreate,
}

func runCreate(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	logger := ctxlog.FromContext(cmd.Context())

	var target string
	if len(args) == 1 {
		target = scaffold.FormatTargetDir(args[0])
	}
	if target == "" {
		name, err := prompt.ProjectName()
		if err != nil {
			return err
		}
		target = name
	}

	dir := target
	if !filepath.IsAbs(dir) {
		dir = filepath.Join(rootDir, target)
	}

	mode := scaffold.OverwriteFail
	empty, err := scaffold.IsEmptyDir(dir)
	if err != nil {
		return err
	}
	if !empty {
		if createOverwrite != "" {
			m, ok := overwriteModes[createOverwrite]
			if !ok {
				return fmt.Errorf("invalid --overwrite value %q (fail, empty, ignore)", createOverwrite)
			}
			mode = m
		} else {
			if mode, err = prompt.ChooseOverwrite(target); err != nil {
				return err
			}
			if mode == scaffold.OverwriteFail {
				return prompt.ErrCancelled
			}
		}
	}

	packageName := createPackageName
	if packageName == "" {
		base := filepath.Base(dir)
		if scaffold.IsValidPackageName(base) {
			packageName = base
		} else if packageName, err = prompt.PackageName(base); err != nil {
			return err
		}
	} else if !scaffold.IsValidPackageName(packageName) {
		return fmt.Errorf("invalid package name %q", packageName)
	}

	templateName := createTemplate
	if templateName == "" {
		if templateName, err = prompt.Template(); err != nil {
			return err
		}
	}

	output.Step(out, "Scaffolding project in %s", dir)
	result, err := scaffold.GenerateProject(templateName, scaffold.NewProjectData(filepath.Base(dir), packageName, ""), dir, mode)
	if err != nil {
		return err
	}
	logger.Debug("project generated", "dir", result.OutputDir, "files", len(result.Files))

	output.Success(out, "Done. Now run:")
	if target != "." {
		output.Info(out, "  cd %s", target)
	}
	output.Info(out, "  npm install")
	return nil
}
