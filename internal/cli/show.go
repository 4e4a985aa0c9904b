package cli

import (
	"fmt"
	"io"

	"github.com/aretw0/stagedup/internal/presentation/graph"
	"github.com/aretw0/stagedup/internal/presentation/tui"
	"github.com/aretw0/stagedup/internal/validator"
	"github.com/aretw0/stagedup/pkg/adapters/file"
)

// Show prints a Markdown report of a stage file. When rich is set the report
// is rendered for the terminal with glamour.
func Show(stagePath string, out io.Writer, rich bool) error {
	snap, err := file.ReadStage(stagePath)
	if err != nil {
		return err
	}

	md := tui.StageReport(snap)
	if rich {
		rendered, err := tui.NewRenderer()(md)
		if err == nil {
			md = rendered
		}
	}
	_, err = fmt.Fprint(out, md)
	return err
}

// Graph prints the Mermaid flowchart of a stage file.
func Graph(stagePath string, out io.Writer) error {
	snap, err := file.ReadStage(stagePath)
	if err != nil {
		return err
	}
	_, err = fmt.Fprint(out, graph.GenerateMermaid(snap, nil))
	return err
}

// Validate checks a stage file and prints "ok" when it is well formed.
func Validate(stagePath string, out io.Writer) error {
	snap, err := file.ReadStage(stagePath)
	if err != nil {
		return err
	}
	if err := validator.ValidateStage(snap); err != nil {
		return fmt.Errorf("%s: %w", stagePath, err)
	}
	_, err = fmt.Fprintf(out, "%s: ok (%d prims)\n", stagePath, len(snap.Prims))
	return err
}
