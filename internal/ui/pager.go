package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/noborus/ov/oviewer"
)

// pageContent shows a note in the ov pager, taking over the terminal until
// the pager exits
func (m *Model) pageContent(title, content string) error {
	if m.program == nil {
		return fmt.Errorf("program not set")
	}

	// Release terminal control to run ov
	if err := m.program.ReleaseTerminal(); err != nil {
		return err
	}
	defer func() {
		// Small delay so ov has fully exited before the modal redraws
		time.Sleep(100 * time.Millisecond)
		_ = m.program.RestoreTerminal()
	}()

	root, err := oviewer.NewRoot(strings.NewReader(content))
	if err != nil {
		return err
	}

	cfg := oviewer.NewConfig()
	cfg.IsWriteOnExit = false
	cfg.IsWriteOriginal = false
	root.SetConfig(cfg)

	if doc := root.Doc; doc != nil {
		doc.Caption = title
	}

	return root.Run()
}
