package export

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/atotto/clipboard"

	"github.com/lakshay-nasa/city-scout/utils"
)

// Deliverer hands the finished artifact to the user over one channel.
// Channels fail independently; the pipeline reports each outcome on its
// own.
type Deliverer interface {
	Name() string
	Deliver(filename, html string) error
}

// FileDeliverer writes the artifact into the export directory, where the
// static download route serves it.
type FileDeliverer struct {
	Dir string
}

func (d FileDeliverer) Name() string { return "download" }

func (d FileDeliverer) Deliver(filename, html string) error {
	if err := utils.EnsureDir(d.Dir); err != nil {
		return fmt.Errorf("create export dir: %w", err)
	}
	return os.WriteFile(filepath.Join(d.Dir, filename), []byte(html), 0644)
}

// ClipboardDeliverer copies the artifact text to the system clipboard.
type ClipboardDeliverer struct{}

func (ClipboardDeliverer) Name() string { return "clipboard" }

func (ClipboardDeliverer) Deliver(_, html string) error {
	return clipboard.WriteAll(html)
}
