package tuiapp

import (
	"context"

	"github.com/google/uuid"

	"rdoc/internal/docerr"
	"rdoc/internal/docgraph"
	"rdoc/internal/docir"
	"rdoc/internal/docpage"
	"rdoc/internal/logging"
	"rdoc/internal/navigator"
	"rdoc/internal/workerproto"
)

// RunWorker owns nav exclusively (§5: "the worker goroutine owns the
// *navigator.Navigator exclusively; the UI thread never touches it"),
// draining ch.Commands until it's closed and answering on ch.Responses.
// Every command is handled synchronously and in submission order —
// §5's "single in-flight request" discipline is the UI side's job
// (it doesn't send a second command before the first answers).
func RunWorker(ctx context.Context, nav *navigator.Navigator, ch *workerproto.Channels) {
	log := logging.Get(logging.CategoryWorker)
	for {
		select {
		case <-ctx.Done():
			return
		case cmd, ok := <-ch.Commands:
			if !ok {
				return
			}
			resp := handle(ctx, nav, cmd)
			select {
			case ch.Responses <- resp:
			case <-ctx.Done():
				return
			}
			log.Debug("handled command %s kind=%d", cmd.ID, cmd.Kind)
		}
	}
}

func handle(ctx context.Context, nav *navigator.Navigator, cmd workerproto.UiCommand) workerproto.RequestResponse {
	switch cmd.Kind {
	case workerproto.CommandNavigate:
		return formatRef(cmd.ID, cmd.NavigateTarget)

	case workerproto.CommandNavigateToPath:
		result := nav.ResolvePath(ctx, cmd.Path)
		if !result.Found {
			names := make([]string, 0, len(result.Suggestions))
			for _, s := range result.Suggestions {
				names = append(names, s.Name)
			}
			return workerproto.RequestResponse{
				CommandID:   cmd.ID,
				Suggestions: names,
				Err:         docerr.New(docerr.KindNotFound, "no item found at %q", cmd.Path),
			}
		}
		return formatRef(cmd.ID, result.Ref)

	case workerproto.CommandSearch:
		return search(ctx, nav, cmd)

	case workerproto.CommandList:
		return listCrates(cmd, nav)

	case workerproto.CommandToggleSource:
		// Source priority is fixed at Navigator construction (§4.D); the
		// worker has nothing to toggle, so it just acknowledges.
		return workerproto.RequestResponse{CommandID: cmd.ID}

	default:
		return workerproto.RequestResponse{CommandID: cmd.ID, Err: docerr.New(docerr.KindInternal, "unhandled command kind %d", cmd.Kind)}
	}
}

func formatRef(id uuid.UUID, ref docgraph.Ref) workerproto.RequestResponse {
	if ref.IsZero() {
		return workerproto.RequestResponse{CommandID: id, Err: docerr.New(docerr.KindInternal, "formatted a zero ref")}
	}
	return workerproto.RequestResponse{CommandID: id, Document: docpage.Format(ref)}
}

func search(ctx context.Context, nav *navigator.Navigator, cmd workerproto.UiCommand) workerproto.RequestResponse {
	cratePart := cmd.DefaultCrate
	if cmd.AllCrates || cratePart == "" {
		result := nav.ResolvePath(ctx, cmd.Query)
		if result.Found {
			return workerproto.RequestResponse{CommandID: cmd.ID, Document: docpage.Format(result.Ref)}
		}
		return workerproto.RequestResponse{CommandID: cmd.ID, Suggestions: suggestionNames(result), Document: searchListing(result)}
	}
	result := nav.ResolvePath(ctx, cratePart+"::"+cmd.Query)
	if result.Found {
		return workerproto.RequestResponse{CommandID: cmd.ID, Document: docpage.Format(result.Ref)}
	}
	return workerproto.RequestResponse{CommandID: cmd.ID, Suggestions: suggestionNames(result), Document: searchListing(result)}
}

func suggestionNames(result navigator.ResolveResult) []string {
	names := make([]string, 0, len(result.Suggestions))
	for _, s := range result.Suggestions {
		names = append(names, s.Name)
	}
	return names
}

// searchListing renders a no-match search result as a Document so the
// UI has something to paint instead of an empty viewport: a heading plus
// a bulleted list of the ranked suggestions, each navigable by path text.
func searchListing(result navigator.ResolveResult) Document {
	items := make([][]docir.Node, 0, len(result.Suggestions))
	for _, s := range result.Suggestions {
		items = append(items, []docir.Node{docir.Paragraph{
			Spans: []docir.Span{{Text: s.Name, Action: docir.NavigateToPath{Path: s.Name}}},
		}})
	}
	return []docir.Node{
		docir.Heading{Level: docir.HeadingSection, Spans: []docir.Span{{Text: "No exact match — closest names"}}},
		docir.List{Items: items},
	}
}

func listCrates(cmd workerproto.UiCommand, nav *navigator.Navigator) workerproto.RequestResponse {
	crates := nav.ListAvailableCrates()
	items := make([][]docir.Node, 0, len(crates))
	for _, c := range crates {
		label := c.Name.String() + " (" + c.Provenance.String() + ")"
		items = append(items, []docir.Node{docir.Paragraph{
			Spans: []docir.Span{{Text: label, Action: docir.NavigateToPath{Path: c.Name.String()}}},
		}})
	}
	doc := []docir.Node{
		docir.Heading{Level: docir.HeadingSection, Spans: []docir.Span{{Text: "Available crates"}}},
		docir.List{Items: items},
	}
	return workerproto.RequestResponse{CommandID: cmd.ID, Document: doc}
}
