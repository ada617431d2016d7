package system

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/julianstephens/studyplan/internal/cli"
	"github.com/julianstephens/studyplan/internal/export"
	"github.com/julianstephens/studyplan/internal/render"
)

type ExportCmd struct {
	Pdf ExportPDFCmd `cmd:"" name:"pdf" help:"Write the weekly schedule and assignment list to a PDF."`
}

type ExportPDFCmd struct {
	Out string `arg:"" help:"Output file (.pdf)." type:"path"`
}

func (c *ExportPDFCmd) Validate() error {
	if !strings.EqualFold(filepath.Ext(c.Out), ".pdf") {
		return fmt.Errorf("output file must end in .pdf: %s", c.Out)
	}
	return nil
}

func (c *ExportPDFCmd) Run(ctx *cli.Context) error {
	p := ctx.Planner()
	generated := now()
	grid := render.Schedule(p.Classes())
	items := render.Assignments(p.Assignments(), generated, p.Location())

	if err := export.PDF(c.Out, grid, items, generated.In(p.Location())); err != nil {
		return fmt.Errorf("failed to export PDF: %w", err)
	}
	ctx.Printf("✓ Exported %d classes and %d assignments to %s\n", len(p.Classes()), len(items), c.Out)
	return nil
}
