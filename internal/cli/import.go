package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/piwi3910/floorplan/internal/importer"
	"github.com/piwi3910/floorplan/internal/model"
	"github.com/piwi3910/floorplan/internal/project"
)

func (c *CLI) importRoomCommand() *cobra.Command {
	var (
		scale     float64
		tolerance float64
		gap       float64
	)

	cmd := &cobra.Command{
		Use:   "import-room <project> <file>",
		Short: "Replace the room of a project with an outline from DXF or scanned segments",
		Long: `Replace the room of a project with a polygon outline.

A .dxf file is searched for closed LWPOLYLINEs and chains of LINE and ARC
entities; the largest outline wins. A .json file holds wall segments as
[{"start":{"x":0,"y":0},"end":{"x":4000,"y":0}}, ...] which are chained
into a closed loop.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := projectPath(args[0])
			p, err := project.LoadProject(path)
			if err != nil {
				return err
			}
			if !cmd.Flags().Changed("gap") {
				gap = p.Room.ExpansionGapMm
			}

			w := cmd.OutOrStdout()
			var room model.Room
			switch strings.ToLower(filepath.Ext(args[1])) {
			case ".dxf":
				result := importer.ImportRoomDXF(args[1], importer.DXFOptions{
					Scale:            scale,
					ChainToleranceMm: tolerance,
					ExpansionGapMm:   gap,
				})
				for _, msg := range result.Warnings {
					printWarning(w, "%s", msg)
				}
				if result.Room == nil {
					return fmt.Errorf("no room outline in %s: %s", args[1], strings.Join(result.Errors, "; "))
				}
				room = *result.Room
			case ".json":
				data, err := os.ReadFile(args[1])
				if err != nil {
					return err
				}
				var segs []importer.Segment
				if err := json.Unmarshal(data, &segs); err != nil {
					return fmt.Errorf("failed to parse segments: %w", err)
				}
				room, err = importer.RoomFromSegments(segs, tolerance, gap)
				if err != nil {
					return err
				}
			default:
				return fmt.Errorf("unsupported room file %q (use .dxf or .json)", args[1])
			}

			room.Name = p.Room.Name
			room.Pattern = p.Room.Pattern
			room.AngleDegrees = p.Room.AngleDegrees
			p.Room = room
			p.Result = nil
			if err := c.saveProject(path, p); err != nil {
				return err
			}
			printSuccess(w, "Imported %d-corner room, %.2f m² usable", len(room.Points), room.UsableAreaM2())
			return nil
		},
	}

	cmd.Flags().Float64Var(&scale, "scale", 1, "drawing units to mm, e.g. 1000 for metres")
	cmd.Flags().Float64Var(&tolerance, "tolerance", 0, "endpoint join tolerance in mm (default: 1 for DXF, 150 for segments)")
	cmd.Flags().Float64Var(&gap, "gap", 0, "expansion gap in mm (default: keep the project's)")
	return cmd
}

func (c *CLI) importStockCommand() *cobra.Command {
	var replace bool

	cmd := &cobra.Command{
		Use:   "import-stock <project> <file>",
		Short: "Add stock from a CSV or Excel list to a project",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := projectPath(args[0])
			p, err := project.LoadProject(path)
			if err != nil {
				return err
			}

			result := importer.ImportStockFile(args[1])
			w := cmd.OutOrStdout()
			for _, msg := range result.Warnings {
				printWarning(w, "%s", msg)
			}
			for _, msg := range result.Errors {
				c.Logger.Error(msg)
			}
			if len(result.Stock) == 0 {
				return fmt.Errorf("no stock rows imported from %s", args[1])
			}

			if replace {
				p.Stock = result.Stock
			} else {
				p.Stock = append(p.Stock, result.Stock...)
			}
			p.UseStock = true
			p.Result = nil
			if err := c.saveProject(path, p); err != nil {
				return err
			}
			printSuccess(w, "Imported %d stock entries into %s", len(result.Stock), p.Name)
			return nil
		},
	}

	cmd.Flags().BoolVar(&replace, "replace", false, "replace the project's stock instead of appending")
	return cmd
}
