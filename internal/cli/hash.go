package cli

import (
	"fmt"

	"github.com/jakoblorz/go-autoclaude/internal/dirhash"
	"github.com/jakoblorz/go-autoclaude/internal/filesystem"
	"github.com/spf13/cobra"
)

// HashCommand handles the hash command
type HashCommand struct {
	fs filesystem.FileSystem
}

// NewHashCommand creates a new hash command
func NewHashCommand(fs filesystem.FileSystem) *cobra.Command {
	cmd := &HashCommand{fs: fs}

	return &cobra.Command{
		Use:   "hash <dir>",
		Short: "Print the change-detection fingerprint of a directory",
		Long: `Prints the 16 character fingerprint used to detect source changes.

Housekeeping entries (.git, node_modules, __pycache__, .env, specs, ...) are
not part of the fingerprint.`,
		Args: cobra.ExactArgs(1),
		RunE: cmd.Run,
	}
}

// Run executes the hash command
func (c *HashCommand) Run(cmd *cobra.Command, args []string) error {
	dir, err := c.fs.Abs(args[0])
	if err != nil {
		return fmt.Errorf("failed to resolve %s: %w", args[0], err)
	}
	if !c.fs.IsDir(dir) {
		return fmt.Errorf("not a directory: %s", dir)
	}

	hash, err := dirhash.Compute(c.fs, dir)
	if err != nil {
		return err
	}

	fmt.Fprintln(cmd.OutOrStdout(), hash)
	return nil
}
