package simulate

import (
	"fmt"
	"io"
	"strconv"

	"github.com/pterm/pterm"

	"github.com/okian/playcard/internal/domain/ledger"
)

// Render writes the final standings of every game and a summary box to w.
func Render(w io.Writer, res *Result) error {
	for _, g := range res.Games {
		data := pterm.TableData{{"Rank", "Player", "Total"}}
		for _, s := range ledger.RankPlayers(g.Players) {
			data = append(data, []string{strconv.Itoa(s.Rank), s.Name, strconv.FormatInt(s.TotalPoints, 10)})
		}
		table, err := pterm.DefaultTable.WithHasHeader().WithBoxed().WithData(data).Srender()
		if err != nil {
			return fmt.Errorf("render standings for %s: %w", g.ID, err)
		}
		if _, err := fmt.Fprintf(w, "%s (%d rounds)\n%s\n", pterm.LightCyan("Game "+g.ID), len(g.Rounds), table); err != nil {
			return fmt.Errorf("write standings: %w", err)
		}
	}

	status := pterm.LightGreen("PASSED")
	if len(res.Problems) > 0 {
		status = pterm.LightRed(fmt.Sprintf("FAILED (%d problems)", len(res.Problems)))
	}
	summary := pterm.Sprintfln("Games created:   %d", res.Stats.GamesCreated) +
		pterm.Sprintfln("Rounds recorded: %d", res.Stats.RoundsRecorded) +
		pterm.Sprintfln("Point entries:   %d", res.Stats.PointEntries) +
		pterm.Sprintfln("Unknown entries: %d", res.Stats.UnknownEntries) +
		pterm.Sprintfln("Duration:        %s", res.Stats.Duration) +
		pterm.Sprintf("Result:          %s", status)

	box := pterm.DefaultBox.WithHorizontalPadding(4).WithTopPadding(1).WithBottomPadding(1).
		WithTitle(pterm.LightYellow("|SIMULATION|")).WithTitleTopCenter()
	if _, err := fmt.Fprintln(w, box.Sprint(summary)); err != nil {
		return fmt.Errorf("write summary: %w", err)
	}
	return nil
}
