package tui

import (
	"github.com/muesli/termenv"

	"github.com/aretw0/stagedup/pkg/domain"
)

// StatusLine colours the status of a result: red for rejections, yellow when
// nothing was created, green otherwise.
func StatusLine(res domain.Result, p termenv.Profile) string {
	color := "#22c55e"
	switch {
	case res.Err != nil:
		color = "#ef4444"
	case res.Created == 0:
		color = "#eab308"
	}
	return p.String(res.Status).Foreground(p.Color(color)).String()
}
