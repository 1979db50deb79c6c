package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dmoraes/inscrito/internal/engine"
	"github.com/dmoraes/inscrito/internal/model"
)

// addPickFlag registers the shared --pick flag on commands that resolve
// their target event from a search term.
func addPickFlag(cmd *cobra.Command, pick *int) {
	cmd.Flags().IntVar(pick, "pick", 0, "select the Nth match (1-based) when the term is ambiguous")
}

// resolveEvent resolves a search term to exactly one event. The term uses
// the search semantics: a numeric term selects by display position, anything
// else matches names case-insensitively as a substring. A single match wins
// outright. Multiple matches print the ordered candidate list and ask for
// --pick N, which selects 1-based from that same list; an out-of-range pick
// is a recoverable input error, never fatal.
func resolveEvent(cmd *cobra.Command, f *OutputFormatter, e *engine.Engine, term string, pick int) (*model.Event, error) {
	matches, err := e.SearchEvents(cmd.Context(), term)
	if err != nil {
		return nil, reportEngineError(f, err)
	}
	if len(matches) == 0 {
		return nil, reportEngineError(f, engine.NewNotFound("event", term))
	}

	if pick != 0 {
		if pick < 1 || pick > len(matches) {
			return nil, NewExitError(ExitCommandError,
				fmt.Sprintf("--pick %d is out of range: %d event(s) match %q", pick, len(matches), term))
		}
		return &matches[pick-1], nil
	}

	if len(matches) > 1 {
		if f.Format == "json" {
			_ = f.Error("AMBIGUOUS_TERM", fmt.Sprintf("%d events match %q", len(matches), term), matches)
		} else {
			fmt.Fprint(f.Writer, renderEvents(matches))
		}
		return nil, NewExitError(ExitCommandError,
			fmt.Sprintf("%d events match %q; rerun with --pick N", len(matches), term))
	}
	return &matches[0], nil
}
