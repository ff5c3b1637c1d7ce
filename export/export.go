// Package export orchestrates the final leg of a drafting session: finalize
// the remote record status, substitute the merge tags into the editor's
// HTML, and deliver the artifact. The remote record is advisory; the local
// artifact is the thing that must always come out when the editor produced
// HTML.
package export

import (
	"context"
	"errors"
	"log"
	"sync/atomic"
	"time"

	"github.com/lakshay-nasa/city-scout/lifecycle"
	"github.com/lakshay-nasa/city-scout/models"
	"github.com/lakshay-nasa/city-scout/template"
	"github.com/lakshay-nasa/city-scout/utils"
)

// ErrExportInProgress rejects a re-entrant export while the previous one
// has not cleared.
var ErrExportInProgress = errors.New("export: already in progress")

const transitionTimeout = 5 * time.Second

// transitioner is the slice of the record store the pipeline needs.
type transitioner interface {
	Transition(ctx context.Context, id string) error
}

// Request carries everything one export run consumes. EditorHTML is the
// opaque text the WYSIWYG collaborator handed back; Places and Profile are
// read fresh so edits made since the preview are reflected.
type Request struct {
	DocID      string
	EditorHTML string
	Places     []models.Place
	Profile    models.Profile
}

// ChannelResult reports one delivery channel's outcome.
type ChannelResult struct {
	OK    bool   `json:"ok"`
	Error string `json:"error,omitempty"`
}

// Result is what the UI shows the user after an export run.
type Result struct {
	Filename  string        `json:"filename"`
	HTML      string        `json:"html"`
	Success   bool          `json:"success"`
	Message   string        `json:"message,omitempty"`
	Warnings  []string      `json:"warnings,omitempty"`
	Clipboard ChannelResult `json:"clipboard"`
	Download  ChannelResult `json:"download"`
}

// Pipeline runs exports one at a time.
type Pipeline struct {
	records    transitioner
	clipboard  Deliverer
	download   Deliverer
	inProgress atomic.Bool
}

func NewPipeline(records transitioner, clipboard, download Deliverer) *Pipeline {
	return &Pipeline{records: records, clipboard: clipboard, download: download}
}

// Run executes the export sequence. The status transition is best-effort
// and bounded by its own timeout: a failing or hung record store downgrades
// to a warning and the artifact still ships. Success is declared on the
// clipboard channel resolving, matching what the user is actually waiting
// for; the download is fire-and-forget.
func (p *Pipeline) Run(ctx context.Context, req Request) (Result, error) {
	if !p.inProgress.CompareAndSwap(false, true) {
		return Result{}, ErrExportInProgress
	}
	defer p.inProgress.Store(false)

	var res Result

	tctx, cancel := context.WithTimeout(ctx, transitionTimeout)
	err := p.records.Transition(tctx, req.DocID)
	cancel()
	switch {
	case errors.Is(err, lifecycle.ErrNoRecord):
		log.Println("⚠️ No record id for this session; metadata update skipped")
		res.Warnings = append(res.Warnings, "No remote record for this session; metadata update skipped")
	case err != nil:
		log.Printf("⚠️ Metadata status update failed, proceeding with export anyway: %v", err)
		res.Warnings = append(res.Warnings, "Metadata status update failed; exported anyway")
	}

	fragment := template.RenderPlaceListFragment(req.Places)
	res.HTML = template.RenderFinal(req.EditorHTML, template.FinalValues{
		TripListHTML: fragment,
		Name:         req.Profile.Name,
		Subtitle:     req.Profile.Subtitle,
	})
	res.Filename = "itinerary_" + utils.Slugify(req.Profile.Name) + ".html"

	// channels are independent; one failing must not mute the other
	res.Download = p.deliver(p.download, res.Filename, res.HTML)
	res.Clipboard = p.deliver(p.clipboard, res.Filename, res.HTML)

	if res.Clipboard.OK {
		res.Success = true
		res.Message = "Metadata Finalized & HTML Copied! 🚀"
	}
	return res, nil
}

func (p *Pipeline) deliver(d Deliverer, filename, html string) ChannelResult {
	if err := d.Deliver(filename, html); err != nil {
		log.Printf("⚠️ %s delivery failed: %v", d.Name(), err)
		return ChannelResult{Error: err.Error()}
	}
	return ChannelResult{OK: true}
}
