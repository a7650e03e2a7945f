// Package all links every lvc command into the registry.
package all

import (
	_ "github.com/keshon/lvc/internal/command/add"
	_ "github.com/keshon/lvc/internal/command/add-remote"
	_ "github.com/keshon/lvc/internal/command/branch"
	_ "github.com/keshon/lvc/internal/command/branches"
	_ "github.com/keshon/lvc/internal/command/checkout"
	_ "github.com/keshon/lvc/internal/command/commit"
	_ "github.com/keshon/lvc/internal/command/fetch"
	_ "github.com/keshon/lvc/internal/command/find"
	_ "github.com/keshon/lvc/internal/command/global-log"
	_ "github.com/keshon/lvc/internal/command/init"
	_ "github.com/keshon/lvc/internal/command/log"
	_ "github.com/keshon/lvc/internal/command/merge"
	_ "github.com/keshon/lvc/internal/command/pull"
	_ "github.com/keshon/lvc/internal/command/push"
	_ "github.com/keshon/lvc/internal/command/reset"
	_ "github.com/keshon/lvc/internal/command/rm"
	_ "github.com/keshon/lvc/internal/command/rm-branch"
	_ "github.com/keshon/lvc/internal/command/rm-remote"
	_ "github.com/keshon/lvc/internal/command/status"
	_ "github.com/keshon/lvc/internal/command/verify"
)
