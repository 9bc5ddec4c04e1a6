// Package all imports all shell commands.
package all

import (
	// drive commands.
	_ "github.com/robotalks/vescdrive/pkg/cli/cmds/drive"
)
