package cli

import (
	"context"
	"fmt"

	"github.com/google/uuid"
)

// parseID parses the first argument as an id.
func parseID(args []string, usage string) (uuid.UUID, error) {
	if len(args) == 0 {
		return uuid.Nil, fmt.Errorf("usage: %s", usage)
	}
	id, err := uuid.Parse(args[0])
	if err != nil {
		return uuid.Nil, fmt.Errorf("invalid id %q: %w", args[0], err)
	}
	return id, nil
}

// parseOptionalID turns "" into nil.
func parseOptionalID(s string) (*uuid.UUID, error) {
	if s == "" {
		return nil, nil
	}
	id, err := uuid.Parse(s)
	if err != nil {
		return nil, fmt.Errorf("invalid id %q: %w", s, err)
	}
	return &id, nil
}

// ListGroups prints every group with its parent.
func (a *App) ListGroups(ctx context.Context, _ []string) error {
	groups, err := a.vault.Groups()
	if err != nil {
		return err
	}
	if len(groups) == 0 {
		fmt.Fprintln(a.out, "No groups.")
		return nil
	}

	names := make(map[uuid.UUID]string, len(groups))
	for _, g := range groups {
		names[g.ID] = g.Name
	}

	for _, g := range groups {
		line := fmt.Sprintf("%s  %s", g.ID, g.Name)
		if g.ParentID != nil {
			parent, ok := names[*g.ParentID]
			if !ok {
				parent = g.ParentID.String()
			}
			line += "  (in " + parent + ")"
		}
		fmt.Fprintln(a.out, line)
	}
	return nil
}

// AddGroup prompts for a name and an optional parent group.
func (a *App) AddGroup(ctx context.Context, _ []string) error {
	name, err := getSimpleText(a.reader, "Group name", a.out)
	if err != nil {
		return err
	}
	if name == "" {
		return fmt.Errorf("group name must not be empty")
	}

	parentText, err := getSimpleText(a.reader, "Parent group id (empty for none)", a.out)
	if err != nil {
		return err
	}
	parent, err := parseOptionalID(parentText)
	if err != nil {
		return err
	}

	id, err := a.vault.CreateGroup(name, parent)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Group added: %s\n", id)
	return nil
}

// EditGroup renames or moves a group. Empty answers keep the current value;
// "-" as parent makes it a top-level group.
func (a *App) EditGroup(ctx context.Context, args []string) error {
	id, err := parseID(args, "editgroup <id>")
	if err != nil {
		return err
	}
	g, err := a.vault.Group(id)
	if err != nil {
		return err
	}

	name, err := getSimpleText(a.reader, fmt.Sprintf("Group name [%s]", g.Name), a.out)
	if err != nil {
		return err
	}
	if name == "" {
		name = g.Name
	}

	current := "none"
	if g.ParentID != nil {
		current = g.ParentID.String()
	}
	parentText, err := getSimpleText(a.reader, fmt.Sprintf("Parent group id [%s] ('-' for none)", current), a.out)
	if err != nil {
		return err
	}

	parent := g.ParentID
	switch parentText {
	case "":
	case "-":
		parent = nil
	default:
		if parent, err = parseOptionalID(parentText); err != nil {
			return err
		}
	}

	if err := a.vault.UpdateGroup(id, name, parent); err != nil {
		return err
	}
	fmt.Fprintln(a.out, "Group updated.")
	return nil
}

// DeleteGroup removes a group after confirmation. Its items stay in the
// vault without a group.
func (a *App) DeleteGroup(ctx context.Context, args []string) error {
	id, err := parseID(args, "delgroup <id>")
	if err != nil {
		return err
	}
	g, err := a.vault.Group(id)
	if err != nil {
		return err
	}

	ok, err := Confirm(a.reader, fmt.Sprintf("Delete group %q?", g.Name), a.out)
	if err != nil || !ok {
		return err
	}

	if err := a.vault.DeleteGroup(id); err != nil {
		return err
	}
	fmt.Fprintln(a.out, "Group deleted.")
	return nil
}
