package cli

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/piwi3910/floorplan/internal/engine"
	"github.com/piwi3910/floorplan/internal/export"
	"github.com/piwi3910/floorplan/internal/model"
	"github.com/piwi3910/floorplan/internal/project"
)

// Export formats accepted by --export.
const (
	formatCSV    = "csv"
	formatXLSX   = "xlsx"
	formatPDF    = "pdf"
	formatLabels = "labels"
)

// loadRequest loads a project and builds the request for one of its
// layers. layer < 0 picks the first visible layer.
func loadRequest(path string, layer int) (model.Project, engine.Request, int, error) {
	p, err := project.LoadProject(path)
	if err != nil {
		return model.Project{}, engine.Request{}, 0, err
	}
	if layer < 0 {
		layer = p.ActiveLayer()
		if layer < 0 {
			return p, engine.Request{}, 0, fmt.Errorf("project %q has no visible layer", p.Name)
		}
	}
	req, err := engine.RequestFromProject(p, layer)
	if err != nil {
		return p, engine.Request{}, 0, err
	}
	if err := req.Room.Validate(); err != nil {
		return p, engine.Request{}, 0, fmt.Errorf("project %q: %w", p.Name, err)
	}
	return p, req, layer, nil
}

// generate runs the engine and logs how long it took.
func (c *CLI) generate(req engine.Request) (model.LayoutResult, error) {
	prog := newProgress(c.Logger)
	res, err := engine.Generate(req)
	if errors.Is(err, engine.ErrTooManyPieces) {
		return res, fmt.Errorf("%w (max %d); use larger units or a smaller room", err, engine.MaxPlacements)
	}
	if err != nil {
		return res, err
	}
	prog.done(fmt.Sprintf("Laid out %d pieces", len(res.Pieces)))
	return res, nil
}

func (c *CLI) layoutCommand() *cobra.Command {
	var (
		layer   int
		formats []string
		outDir  string
		save    bool
		details bool
	)

	cmd := &cobra.Command{
		Use:   "layout <project>",
		Short: "Compute the layout for a project and print or export it",
		Long: `Compute the layout for one layer of a project.

The summary shows piece counts, areas, cost and what to buy. --export writes
the placement, cut, remaining and purchase views as csv, xlsx, a pdf report
or a pdf sheet of piece labels.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := projectPath(args[0])
			p, req, _, err := loadRequest(path, layer)
			if err != nil {
				return err
			}
			c.Logger.Debug("layout request",
				"material", req.Material.Key,
				"shape", req.Room.Shape,
				"pattern", req.Room.Pattern,
				"stock", len(req.Stock))

			res, err := c.generate(req)
			if err != nil {
				return err
			}

			report := export.Report{
				ProjectName: p.Name,
				Room:        p.Room,
				Material:    req.Material,
				Result:      res,
				Currency:    c.Config.Currency,
			}
			w := cmd.OutOrStdout()
			printReport(w, report, details)

			if len(formats) > 0 {
				dir := outDir
				if dir == "" {
					dir = filepath.Dir(path)
				}
				paths, err := exportReport(dir, baseName(path), report, formats)
				for _, f := range paths {
					printFile(w, f)
				}
				if err != nil {
					return err
				}
			}

			if save {
				p.Result = &res
				if err := c.saveProject(path, p); err != nil {
					return err
				}
				printSuccess(w, "Saved result to %s", path)
			}
			return nil
		},
	}

	cmd.Flags().IntVar(&layer, "layer", -1, "layer index (default: first visible layer)")
	cmd.Flags().StringSliceVarP(&formats, "export", "e", nil, "export formats: csv, xlsx, pdf, labels")
	cmd.Flags().StringVarP(&outDir, "output", "o", "", "export directory (default: next to the project)")
	cmd.Flags().BoolVar(&save, "save", false, "store the result in the project file")
	cmd.Flags().BoolVar(&details, "details", false, "print the placement, cut and remaining tables")
	return cmd
}

// baseName strips the project extension from path.
func baseName(path string) string {
	name := filepath.Base(path)
	name = strings.TrimSuffix(name, project.ProjectExt)
	return strings.TrimSuffix(name, filepath.Ext(name))
}

// exportReport writes r in each format to dir and returns the files written.
func exportReport(dir, base string, r export.Report, formats []string) ([]string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create export directory: %w", err)
	}
	var written []string
	for _, f := range formats {
		switch strings.ToLower(strings.TrimSpace(f)) {
		case formatCSV:
			paths, err := export.ExportCSV(dir, base, r.Result)
			written = append(written, paths...)
			if err != nil {
				return written, err
			}
		case formatXLSX:
			path := filepath.Join(dir, base+".xlsx")
			if err := export.ExportXLSX(path, r); err != nil {
				return written, err
			}
			written = append(written, path)
		case formatPDF:
			path := filepath.Join(dir, base+".pdf")
			if err := export.ExportPDF(path, r); err != nil {
				return written, err
			}
			written = append(written, path)
		case formatLabels:
			path := filepath.Join(dir, base+"_labels.pdf")
			if err := export.ExportLabels(path, r.Result); err != nil {
				return written, err
			}
			written = append(written, path)
		default:
			return written, fmt.Errorf("unknown export format %q", f)
		}
	}
	return written, nil
}

func printReport(w io.Writer, r export.Report, details bool) {
	printTitle(w, r.ProjectName)
	for _, row := range export.SummaryRows(r) {
		printKeyValue(w, row[0], row[1])
	}
	if !r.Result.IsComplete() && len(r.Result.Pieces) > 0 {
		printWarning(w, "%.2f m² still to buy", r.Result.NeededAreaM2)
	}
	if details {
		printTable(w, export.PlacementTable(r.Result))
		printTable(w, export.CutTable(r.Result))
		printTable(w, export.RemainingTable(r.Result))
	}
	printTable(w, export.PurchaseTable(r.Result))
}

func (c *CLI) compareCommand() *cobra.Command {
	var layer int

	cmd := &cobra.Command{
		Use:   "compare <project>",
		Short: "Compare the current layout against what-if variants",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, req, _, err := loadRequest(projectPath(args[0]), layer)
			if err != nil {
				return err
			}

			prog := newProgress(c.Logger)
			results := engine.CompareScenarios(engine.BuildDefaultScenarios(req))
			prog.done(fmt.Sprintf("Compared %d scenarios", len(results)))

			printTable(cmd.OutOrStdout(), comparisonTable(results, c.Config.Currency))
			return nil
		},
	}

	cmd.Flags().IntVar(&layer, "layer", -1, "layer index (default: first visible layer)")
	return cmd
}

// comparisonTable has one row per scenario. Failed scenarios show the
// error in place of their numbers.
func comparisonTable(results []engine.ComparisonResult, currency string) export.Table {
	t := export.Table{
		Name:    "Comparison",
		Headers: []string{"Scenario", "Pieces", "To buy", "Cuts", "Needed m²", "Waste m²", "Waste %", "Cost " + currency},
	}
	for _, r := range results {
		if r.Err != nil {
			t.Rows = append(t.Rows, []string{r.Scenario.Name, r.Err.Error(), "", "", "", "", "", ""})
			continue
		}
		t.Rows = append(t.Rows, []string{
			r.Scenario.Name,
			strconv.Itoa(r.PieceCount),
			strconv.Itoa(r.NeededCount),
			strconv.Itoa(r.CutCount),
			fmt.Sprintf("%.2f", r.NeededAreaM2),
			fmt.Sprintf("%.2f", r.WasteAreaM2),
			fmt.Sprintf("%.1f", r.WastePercent),
			fmt.Sprintf("%.2f", r.TotalCost),
		})
	}
	return t
}

func (c *CLI) estimateCommand() *cobra.Command {
	var (
		layer      int
		openings   float64
		boardLen   float64
		skirtWaste float64
	)

	cmd := &cobra.Command{
		Use:   "estimate <project>",
		Short: "Quick area-based purchase estimate and skirting length",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, req, _, err := loadRequest(projectPath(args[0]), layer)
			if err != nil {
				return err
			}
			w := cmd.OutOrStdout()

			unitL, unitW, price := unitOf(req)
			printTitle(w, "Purchase estimate")
			if unitL > 0 && unitW > 0 {
				est := model.CalculatePurchaseEstimate(p.Room, unitL, unitW, p.WasteFactorPercent, price)
				printKeyValue(w, "Usable area", fmt.Sprintf("%.2f m²", est.UsableAreaM2))
				printKeyValue(w, "Unit", fmt.Sprintf("%.0f x %.0f mm", unitL, unitW))
				printKeyValue(w, "Units (exact)", fmt.Sprintf("%.2f", est.UnitsNeededExact))
				printKeyValue(w, "Units", strconv.Itoa(est.UnitsNeededMin))
				printKeyValue(w, "With waste", fmt.Sprintf("%d (+%.0f%%)", est.UnitsWithWaste, est.WastePercent))
				if price > 0 {
					printKeyValue(w, "Cost", fmt.Sprintf("%.2f %s", est.EstimatedCost, c.Config.Currency))
				}
			} else {
				qty, unit, mode := engine.ContinuousCalculator{}.Quantity(req)
				printKeyValue(w, "Usable area", fmt.Sprintf("%.2f m²", p.Room.UsableAreaM2()))
				printKeyValue(w, "Quantity", fmt.Sprintf("%.2f %s", qty, unit))
				printKeyValue(w, "Basis", string(mode))
			}

			s := model.CalculateSkirting(p.Room, openings, boardLen, skirtWaste)
			printTitle(w, "Skirting")
			printKeyValue(w, "Perimeter", fmt.Sprintf("%.0f mm", s.PerimeterMm))
			printKeyValue(w, "Walls", strconv.Itoa(s.WallCount))
			printKeyValue(w, "Length", fmt.Sprintf("%.0f mm", s.TotalWithWasteMM))
			if s.BoardsNeeded > 0 {
				printKeyValue(w, "Boards", fmt.Sprintf("%d x %.0f mm", s.BoardsNeeded, s.BoardLengthMm))
			}
			return nil
		},
	}

	cmd.Flags().IntVar(&layer, "layer", -1, "layer index (default: first visible layer)")
	cmd.Flags().Float64Var(&openings, "openings", 0, "total width of door openings in mm")
	cmd.Flags().Float64Var(&boardLen, "board-length", 2400, "skirting board length in mm")
	cmd.Flags().Float64Var(&skirtWaste, "skirting-waste", 10, "skirting waste percentage")
	return cmd
}

// unitOf returns the unit size and price the request lays, or zeros for
// continuous materials.
func unitOf(req engine.Request) (float64, float64, float64) {
	price := func(p *float64) float64 {
		if p == nil {
			return 0
		}
		return *p
	}
	switch {
	case engine.KindFor(req.Material) == engine.KindContinuous:
		return 0, 0, 0
	case req.Plank != nil:
		return req.Plank.DefaultLengthMm, req.Plank.DefaultWidthMm, price(req.Plank.DefaultPricePerPlank)
	case req.Tile != nil:
		return req.Tile.CellLengthMm(), req.Tile.CellWidthMm(), price(req.Tile.DefaultPricePerTile)
	}
	return 0, 0, 0
}

func (c *CLI) leftoverCommand() *cobra.Command {
	var layer int

	cmd := &cobra.Command{
		Use:   "leftover <project> <next-project>",
		Short: "Carry unused stock and offcuts into another project",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, req, _, err := loadRequest(projectPath(args[0]), layer)
			if err != nil {
				return err
			}
			res, err := c.generate(req)
			if err != nil {
				return err
			}

			nextPath := projectPath(args[1])
			next, err := project.LoadProject(nextPath)
			if err != nil {
				return err
			}
			carried := model.LeftoverStock(res, req.Stock)
			next.Stock = append(next.Stock, carried...)
			if len(carried) > 0 {
				next.UseStock = true
			}
			if err := c.saveProject(nextPath, next); err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			printSuccess(w, "Carried %d stock entries into %s", len(carried), next.Name)
			for _, s := range carried {
				printDetail(w, "%d x %.0f x %.0f mm %s", s.Quantity, s.LengthMm, s.WidthMm, s.Label)
			}
			return nil
		},
	}

	cmd.Flags().IntVar(&layer, "layer", -1, "layer index (default: first visible layer)")
	return cmd
}
