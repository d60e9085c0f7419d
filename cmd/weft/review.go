package main

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"strings"

	"github.com/fluxlocale/weft"
)

// editorReviewer pauses a batch between translation and write and hands the
// flat text to $EDITOR, one line per text leaf. Edits rebind to leaves by
// line position. Saving an empty file declines the write for that locale.
type editorReviewer struct {
	editor string
}

func newEditorReviewer() *editorReviewer {
	editor := os.Getenv("EDITOR")
	if editor == "" {
		editor = "vi"
	}
	return &editorReviewer{editor: editor}
}

func (r *editorReviewer) Review(ctx context.Context, target weft.LocaleTarget, result *weft.TranslationResult) (*weft.TranslationResult, bool, error) {
	flat := weft.FlatText(result)

	f, err := os.CreateTemp("", fmt.Sprintf("weft-review-%s-*.txt", target.Tag))
	if err != nil {
		return nil, false, fmt.Errorf("creating review file: %w", err)
	}
	path := f.Name()
	defer os.Remove(path)

	if _, err := f.WriteString(flat + "\n"); err != nil {
		f.Close()
		return nil, false, fmt.Errorf("writing review file: %w", err)
	}
	f.Close()

	logInfo("Reviewing %s in %s (empty file skips the locale)", target.Tag, r.editor)
	cmd := exec.CommandContext(ctx, r.editor, path)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return nil, false, fmt.Errorf("editor: %w", err)
	}

	edited, err := os.ReadFile(path)
	if err != nil {
		return nil, false, fmt.Errorf("reading review file: %w", err)
	}

	text := strings.TrimSpace(string(edited))
	if text == "" {
		return nil, false, nil
	}
	if weft.HashText(text) == weft.HashText(flat) {
		return nil, true, nil
	}
	return weft.ApplyFlatEdit(result, text), true, nil
}

var _ weft.Reviewer = (*editorReviewer)(nil)
