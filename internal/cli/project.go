package cli

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/piwi3910/floorplan/internal/model"
	"github.com/piwi3910/floorplan/internal/project"
)

// recentLimit is how many recent projects the config remembers.
const recentLimit = 10

// projectPath resolves a project argument: a bare name goes to the
// project directory and gets the project extension.
func projectPath(arg string) string {
	if strings.ContainsRune(arg, filepath.Separator) || strings.HasSuffix(arg, ".json") {
		return arg
	}
	return filepath.Join(project.DefaultProjectDir(), arg+project.ProjectExt)
}

// saveProject writes p and records it as recently used.
func (c *CLI) saveProject(path string, p model.Project) error {
	if err := project.SaveProject(path, p); err != nil {
		return err
	}
	if abs, err := filepath.Abs(path); err == nil {
		path = abs
	}
	project.AddRecentProject(&c.Config, path, recentLimit)
	if err := project.SaveAppConfig(c.ConfigPath, c.Config); err != nil {
		c.Logger.Warn("could not update recent projects", "err", err)
	}
	return nil
}

func (c *CLI) newCommand() *cobra.Command {
	var (
		templateName string
		material     string
		length       float64
		width        float64
		out          string
	)

	cmd := &cobra.Command{
		Use:   "new <name>",
		Short: "Create a project from the configured defaults or a template",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := args[0]
			p := model.NewProject()
			p.Name = name
			c.Config.ApplyToProject(&p)

			if templateName != "" {
				store, err := project.LoadTemplates(project.DefaultTemplatePath())
				if err != nil {
					return err
				}
				t, ok := project.FindTemplate(store, templateName)
				if !ok {
					return fmt.Errorf("template %q not found", templateName)
				}
				p = t.ToProject(name)
			}
			if material != "" {
				m, ok := model.FindMaterial(material)
				if !ok {
					return fmt.Errorf("unknown material %q", material)
				}
				p.Layers = []model.Layer{model.NewLayer(m)}
			}
			if length > 0 || width > 0 {
				l, w := p.Room.LengthMm, p.Room.WidthMm
				if length > 0 {
					l = length
				}
				if width > 0 {
					w = width
				}
				p.Room = model.NewRectangularRoom(l, w, p.Room.ExpansionGapMm)
			}

			path := out
			if path == "" {
				path = projectPath(name)
			}
			if err := c.saveProject(path, p); err != nil {
				return err
			}
			printSuccess(cmd.OutOrStdout(), "Created project %s", name)
			printFile(cmd.OutOrStdout(), path)
			return nil
		},
	}

	cmd.Flags().StringVarP(&templateName, "template", "t", "", "template ID or name")
	cmd.Flags().StringVarP(&material, "material", "m", "", "material key, e.g. laminate or ceramic_tile")
	cmd.Flags().Float64Var(&length, "length", 0, "room length in mm")
	cmd.Flags().Float64Var(&width, "width", 0, "room width in mm")
	cmd.Flags().StringVarP(&out, "output", "o", "", "project file (default: project directory)")
	return cmd
}

func (c *CLI) listCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list [dir]",
		Short: "List saved projects, newest first",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := project.DefaultProjectDir()
			if len(args) == 1 {
				dir = args[0]
			}
			infos, err := project.ListProjects(dir)
			if err != nil {
				return err
			}
			w := cmd.OutOrStdout()
			if len(infos) == 0 {
				printDetail(w, "No projects in %s", dir)
				return nil
			}
			for _, info := range infos {
				printKeyValue(w, info.Name, info.Modified.Format("2006-01-02 15:04"))
			}
			return nil
		},
	}
}

func (c *CLI) migrateCommand() *cobra.Command {
	var out string

	cmd := &cobra.Command{
		Use:   "migrate <project>",
		Short: "Rewrite a project file in the current schema",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			in := args[0]
			p, err := project.LoadProject(in)
			if err != nil {
				return err
			}
			path := out
			if path == "" {
				path = in
			}
			if err := project.SaveProject(path, p); err != nil {
				return err
			}
			printSuccess(cmd.OutOrStdout(), "Migrated %s to schema %d", p.Name, model.SchemaVersion)
			printFile(cmd.OutOrStdout(), path)
			return nil
		},
	}

	cmd.Flags().StringVarP(&out, "output", "o", "", "output file (default: overwrite input)")
	return cmd
}
