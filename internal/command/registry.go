package command

import "sort"

var registry = map[string]Command{}

// RegisterCommand adds a command to the global registry
func RegisterCommand(cmd Command) {
	if _, dup := registry[cmd.Name()]; dup {
		panic("command already registered: " + cmd.Name())
	}
	registry[cmd.Name()] = cmd
}

// GetCommand returns a command by name or alias
func GetCommand(name string) (Command, bool) {
	if cmd, ok := registry[name]; ok {
		return cmd, true
	}
	for _, cmd := range registry {
		for _, a := range cmd.Aliases() {
			if a == name {
				return cmd, true
			}
		}
	}
	return nil, false
}

// AllCommands returns every registered command sorted by name.
func AllCommands() []Command {
	cmds := make([]Command, 0, len(registry))
	for _, cmd := range registry {
		cmds = append(cmds, cmd)
	}
	sort.Slice(cmds, func(i, j int) bool { return cmds[i].Name() < cmds[j].Name() })
	return cmds
}
