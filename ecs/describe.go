package ecs

import (
	"fmt"
	"io"
)

// Describe writes the registered systems followed by every entity and its
// components, one per line.
func (s *Scheduler) Describe(w io.Writer) error {
	if _, err := fmt.Fprintln(w, "Systems:"); err != nil {
		return err
	}
	for i, entry := range s.entries {
		state := "enabled"
		if t, ok := entry.system.(toggleable); ok && !t.Enabled() {
			state = "disabled"
		}
		if _, err := fmt.Fprintf(w, "  - [%d] %s (%s)\n", i, entry.stats.name, state); err != nil {
			return err
		}
	}
	return s.storage.Describe(w)
}

// Describe writes every entity in insertion order followed by its components.
func (s *Storage) Describe(w io.Writer) error {
	if _, err := fmt.Fprintln(w, "Entities:"); err != nil {
		return err
	}
	for _, e := range s.order {
		state := ""
		if !e.Enabled {
			state = " (disabled)"
		}
		if _, err := fmt.Fprintf(w, "  - %s%s\n", e.Identity, state); err != nil {
			return err
		}
		for _, t := range e.ComponentTypes() {
			c := e.components[t]
			if _, err := fmt.Fprintf(w, "    + %s %s\n", s.registry.Name(t), c.Ident()); err != nil {
				return err
			}
		}
	}
	return nil
}
