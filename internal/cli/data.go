package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/piwi3910/floorplan/internal/export"
	"github.com/piwi3910/floorplan/internal/model"
	"github.com/piwi3910/floorplan/internal/project"
)

func (c *CLI) materialsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "materials",
		Short: "List the built-in materials",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			t := export.Table{Headers: []string{"Key", "Name", "Unit", "Size(mm)", "Thickness(mm)"}}
			for _, m := range model.MaterialPresets() {
				size := ""
				if m.DefaultLengthMm > 0 {
					size = fmt.Sprintf("%.0f x %.0f", m.DefaultLengthMm, m.DefaultWidthMm)
				}
				t.Rows = append(t.Rows, []string{m.Key, m.Name, string(m.Unit), size, strconv.FormatFloat(m.DefaultThicknessMm, 'f', -1, 64)})
			}
			printTable(cmd.OutOrStdout(), t)
			return nil
		},
	}
}

func (c *CLI) inventoryCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "inventory",
		Short: "Manage saved stock presets",
	}
	cmd.AddCommand(c.inventoryListCommand())
	cmd.AddCommand(c.inventoryImportCommand())
	cmd.AddCommand(c.inventoryUseCommand())
	return cmd
}

func (c *CLI) inventoryListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List stock presets",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			inv, _, err := project.LoadOrCreateInventory()
			if err != nil {
				return err
			}
			t := export.Table{Headers: []string{"ID", "Name", "Material", "Size(mm)", "Price"}}
			for _, s := range inv.Stocks {
				price := ""
				if s.PricePerUnit != nil {
					price = fmt.Sprintf("%.2f", *s.PricePerUnit)
				}
				t.Rows = append(t.Rows, []string{s.ID, s.Name, s.MaterialKey, fmt.Sprintf("%.0f x %.0f", s.LengthMm, s.WidthMm), price})
			}
			printTable(cmd.OutOrStdout(), t)
			return nil
		},
	}
}

func (c *CLI) inventoryImportCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "import <file>",
		Short: "Merge presets from an inventory JSON file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			inv, path, err := project.LoadOrCreateInventory()
			if err != nil {
				return err
			}
			before := len(inv.Stocks)
			inv, err = project.ImportInventory(args[0], inv)
			if err != nil {
				return fmt.Errorf("failed to import inventory: %w", err)
			}
			if err := project.SaveInventory(path, inv); err != nil {
				return err
			}
			printSuccess(cmd.OutOrStdout(), "Added %d stock presets", len(inv.Stocks)-before)
			return nil
		},
	}
}

func (c *CLI) inventoryUseCommand() *cobra.Command {
	var (
		qty       int
		setLayer  bool
		layerFlag int
	)

	cmd := &cobra.Command{
		Use:   "use <preset> <project>",
		Short: "Add a stock preset to a project's stock",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			inv, _, err := project.LoadOrCreateInventory()
			if err != nil {
				return err
			}
			preset := inv.FindStockByID(args[0])
			if preset == nil {
				preset = inv.FindStockByName(args[0])
			}
			if preset == nil {
				return fmt.Errorf("stock preset %q not found", args[0])
			}

			path := projectPath(args[1])
			p, err := project.LoadProject(path)
			if err != nil {
				return err
			}
			if qty > 0 {
				p.Stock = append(p.Stock, preset.ToStockItem(qty))
				p.UseStock = true
			}
			if setLayer {
				layer := layerFlag
				if layer < 0 {
					layer = p.ActiveLayer()
				}
				if layer < 0 || layer >= len(p.Layers) {
					return fmt.Errorf("project %q has no layer %d", p.Name, layer)
				}
				preset.ApplyToLayer(&p.Layers[layer])
			}
			p.Result = nil
			if err := c.saveProject(path, p); err != nil {
				return err
			}
			printSuccess(cmd.OutOrStdout(), "Applied %s to %s", preset.Name, p.Name)
			return nil
		},
	}

	cmd.Flags().IntVarP(&qty, "quantity", "q", 0, "units to add to the project's stock")
	cmd.Flags().BoolVar(&setLayer, "set-layer", false, "also use the preset's size and price for the layer")
	cmd.Flags().IntVar(&layerFlag, "layer", -1, "layer index (default: first visible layer)")
	return cmd
}

func (c *CLI) templatesCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "templates",
		Short: "List templates or save a project as one",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := project.LoadTemplates(project.DefaultTemplatePath())
			if err != nil {
				return err
			}
			t := export.Table{Headers: []string{"ID", "Name", "Description"}}
			for _, tpl := range project.AllTemplates(store) {
				t.Rows = append(t.Rows, []string{tpl.ID, tpl.Name, tpl.Description})
			}
			printTable(cmd.OutOrStdout(), t)
			return nil
		},
	}
	cmd.AddCommand(c.templateSaveCommand())
	cmd.AddCommand(c.templateDeleteCommand())
	return cmd
}

func (c *CLI) templateSaveCommand() *cobra.Command {
	var (
		name        string
		description string
	)

	cmd := &cobra.Command{
		Use:   "save <project>",
		Short: "Save a project's room, layers and stock as a template",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := project.LoadProject(projectPath(args[0]))
			if err != nil {
				return err
			}
			if name == "" {
				name = p.Name
			}
			path := project.DefaultTemplatePath()
			store, err := project.LoadTemplates(path)
			if err != nil {
				return err
			}
			tpl := model.NewProjectTemplate(name, description, p)
			store.Add(tpl)
			if err := project.SaveTemplates(path, store); err != nil {
				return err
			}
			printSuccess(cmd.OutOrStdout(), "Saved template %s (%s)", tpl.Name, tpl.ID)
			return nil
		},
	}

	cmd.Flags().StringVarP(&name, "name", "n", "", "template name (default: project name)")
	cmd.Flags().StringVarP(&description, "description", "d", "", "template description")
	return cmd
}

func (c *CLI) templateDeleteCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a user template",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := project.DefaultTemplatePath()
			store, err := project.LoadTemplates(path)
			if err != nil {
				return err
			}
			if !store.Remove(args[0]) {
				return fmt.Errorf("template %q not found", args[0])
			}
			if err := project.SaveTemplates(path, store); err != nil {
				return err
			}
			printSuccess(cmd.OutOrStdout(), "Deleted template %s", args[0])
			return nil
		},
	}
}

func (c *CLI) backupCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "backup",
		Short: "Export or restore config, inventory and templates",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "export <file>",
		Short: "Write config, inventory and templates to one JSON file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			inv, _, err := project.LoadOrCreateInventory()
			if err != nil {
				return err
			}
			store, err := project.LoadTemplates(project.DefaultTemplatePath())
			if err != nil {
				return err
			}
			if err := project.ExportAllData(args[0], c.Config, inv, store); err != nil {
				return err
			}
			printSuccess(cmd.OutOrStdout(), "Backup written")
			printFile(cmd.OutOrStdout(), args[0])
			return nil
		},
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "import <file>",
		Short: "Restore config, inventory and templates from a backup",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			backup, err := project.ImportAllData(args[0])
			if err != nil {
				return err
			}
			invPath, err := project.DefaultInventoryPath()
			if err != nil {
				return err
			}
			if err := project.SaveAppConfig(c.ConfigPath, backup.Config); err != nil {
				return err
			}
			if err := project.SaveInventory(invPath, backup.Inventory); err != nil {
				return err
			}
			if err := project.SaveTemplates(project.DefaultTemplatePath(), backup.Templates); err != nil {
				return err
			}
			c.Config = backup.Config
			printSuccess(cmd.OutOrStdout(), "Restored backup %s from %s", backup.Version, backup.CreatedAt)
			return nil
		},
	})
	return cmd
}
