package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/sonnes/parashu/convo"
	"github.com/sonnes/parashu/core"
	"github.com/sonnes/parashu/export"
)

// loadConversation reads and normalizes a single-conversation JSON file.
// Returns the conversation and the source file name for the manifest.
func loadConversation(path string) (*core.Conversation, string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, "", fmt.Errorf("read conversation: %w", err)
	}

	rec, err := export.Parse(data)
	if err != nil {
		return nil, "", err
	}

	c, err := convo.Normalize(rec)
	if err != nil {
		return nil, "", err
	}

	return c, filepath.Base(path), nil
}
