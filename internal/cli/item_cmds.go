package cli

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/dmitrijs2005/vaultura/internal/common"
	"github.com/dmitrijs2005/vaultura/internal/models"
	"github.com/dmitrijs2005/vaultura/internal/passgen"
)

const masked = "********"

// List prints the items, optionally only those in one group.
func (a *App) List(ctx context.Context, args []string) error {
	var groupText string
	if len(args) > 0 {
		groupText = args[0]
	}
	group, err := parseOptionalID(groupText)
	if err != nil {
		return err
	}
	if group != nil {
		if _, err := a.vault.Group(*group); err != nil {
			return err
		}
	}

	items, err := a.vault.ItemsInGroup(group)
	if err != nil {
		return err
	}
	a.printItems(items)
	return nil
}

// Search prints the items matching every word of the query.
func (a *App) Search(ctx context.Context, args []string) error {
	items, err := a.vault.Search(strings.Join(args, " "))
	if err != nil {
		return err
	}
	a.printItems(items)
	return nil
}

func (a *App) printItems(items []models.Item) {
	if len(items) == 0 {
		fmt.Fprintln(a.out, "No items.")
		return
	}
	for _, it := range items {
		line := fmt.Sprintf("%s  %s", it.ID, it.Title)
		if it.Username != "" {
			line += "  <" + it.Username + ">"
		}
		fmt.Fprintln(a.out, line)
	}
}

func hasFlag(args []string, flag string) bool {
	for _, a := range args {
		if a == flag {
			return true
		}
	}
	return false
}

// Show prints one item. The password is masked unless -p is given.
func (a *App) Show(ctx context.Context, args []string) error {
	id, err := parseID(args, "show <id> [-p]")
	if err != nil {
		return err
	}
	it, err := a.vault.Item(id)
	if err != nil {
		return err
	}

	password := masked
	if it.Password == "" {
		password = ""
	} else if hasFlag(args[1:], "-p") {
		password = it.Password
	}

	group := ""
	if it.GroupID != nil {
		if g, err := a.vault.Group(*it.GroupID); err == nil {
			group = g.Name
		} else {
			group = it.GroupID.String()
		}
	}

	fmt.Fprintf(a.out, "ID:        %s\n", it.ID)
	fmt.Fprintf(a.out, "Title:     %s\n", it.Title)
	fmt.Fprintf(a.out, "Username:  %s\n", it.Username)
	fmt.Fprintf(a.out, "Password:  %s\n", password)
	fmt.Fprintf(a.out, "URL:       %s\n", it.URL)
	fmt.Fprintf(a.out, "Group:     %s\n", group)
	fmt.Fprintf(a.out, "Tags:      %s\n", strings.Join(it.Tags, ", "))
	fmt.Fprintf(a.out, "Created:   %s\n", it.CreatedAt.Local().Format(time.DateTime))
	fmt.Fprintf(a.out, "Modified:  %s\n", it.ModifiedAt.Local().Format(time.DateTime))
	if len(it.PasswordHistory) > 0 {
		fmt.Fprintf(a.out, "History:   %d previous passwords\n", len(it.PasswordHistory))
	}
	if it.Notes != "" {
		fmt.Fprintf(a.out, "Notes:\n%s\n", it.Notes)
	}
	return nil
}

// readItemPassword reads a password; an empty answer yields ok=false.
func (a *App) readItemPassword(prompt string) (string, bool, error) {
	pw, err := getPassword(a.reader, prompt, a.out)
	if err != nil {
		return "", false, err
	}
	defer common.WipeByteArray(pw)

	if len(pw) == 0 {
		return "", false, nil
	}
	return string(pw), true, nil
}

// Add prompts for a new item. An empty password is replaced by a generated one.
func (a *App) Add(ctx context.Context, _ []string) error {
	var (
		d   models.ItemDraft
		err error
	)

	if d.Title, err = getSimpleText(a.reader, "Title", a.out); err != nil {
		return err
	}
	if d.Title == "" {
		return errors.New("title must not be empty")
	}
	if d.Username, err = getSimpleText(a.reader, "Username", a.out); err != nil {
		return err
	}

	pw, ok, err := a.readItemPassword("Password (empty to generate)")
	if err != nil {
		return err
	}
	if !ok {
		if pw, err = passgen.Generate(passgen.DefaultOptions()); err != nil {
			return err
		}
		fmt.Fprintln(a.out, "A password was generated, use 'copy <id> pass' to use it.")
	}
	d.Password = pw

	if d.URL, err = getSimpleText(a.reader, "URL", a.out); err != nil {
		return err
	}
	if d.Notes, err = GetMultiline(a.reader, "Notes", a.out); err != nil {
		return err
	}
	if d.Tags, err = GetTags(a.reader, "Tags (comma separated)", a.out); err != nil {
		return err
	}

	groupText, err := getSimpleText(a.reader, "Group id (empty for none)", a.out)
	if err != nil {
		return err
	}
	if d.GroupID, err = parseOptionalID(groupText); err != nil {
		return err
	}
	if d.GroupID != nil {
		if _, err := a.vault.Group(*d.GroupID); err != nil {
			return err
		}
	}

	id, err := a.vault.CreateItem(d)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Item added: %s\n", id)
	return nil
}

// keepOr returns current for an empty answer, "" for "-", else answer.
func keepOr(answer, current string) string {
	switch answer {
	case "":
		return current
	case "-":
		return ""
	}
	return answer
}

// Edit walks through the fields of an item. Empty answers keep the current
// value and "-" clears a field. Changing the password records the old one
// in the item's history.
func (a *App) Edit(ctx context.Context, args []string) error {
	id, err := parseID(args, "edit <id>")
	if err != nil {
		return err
	}
	it, err := a.vault.Item(id)
	if err != nil {
		return err
	}
	d := it.Draft()

	title, err := getSimpleText(a.reader, fmt.Sprintf("Title [%s]", d.Title), a.out)
	if err != nil {
		return err
	}
	if title != "" {
		d.Title = title
	}

	username, err := getSimpleText(a.reader, fmt.Sprintf("Username [%s] ('-' to clear)", d.Username), a.out)
	if err != nil {
		return err
	}
	d.Username = keepOr(username, d.Username)

	pw, ok, err := a.readItemPassword("New password (empty keeps current, 'gen' generates)")
	if err != nil {
		return err
	}
	if ok {
		if pw == "gen" {
			if pw, err = passgen.Generate(passgen.DefaultOptions()); err != nil {
				return err
			}
			fmt.Fprintln(a.out, "A new password was generated.")
		}
		d.Password = pw
	}

	url, err := getSimpleText(a.reader, fmt.Sprintf("URL [%s] ('-' to clear)", d.URL), a.out)
	if err != nil {
		return err
	}
	d.URL = keepOr(url, d.URL)

	notes, err := GetMultiline(a.reader, "Notes (empty keeps current, '-' clears)", a.out)
	if err != nil {
		return err
	}
	d.Notes = keepOr(notes, d.Notes)

	tags, err := getSimpleText(a.reader, fmt.Sprintf("Tags [%s] ('-' to clear)", strings.Join(d.Tags, ", ")), a.out)
	if err != nil {
		return err
	}
	switch tags {
	case "":
	case "-":
		d.Tags = nil
	default:
		d.Tags = splitTags(tags)
	}

	current := "none"
	if d.GroupID != nil {
		current = d.GroupID.String()
	}
	groupText, err := getSimpleText(a.reader, fmt.Sprintf("Group id [%s] ('-' for none)", current), a.out)
	if err != nil {
		return err
	}
	switch groupText {
	case "":
	case "-":
		d.GroupID = nil
	default:
		if d.GroupID, err = parseOptionalID(groupText); err != nil {
			return err
		}
		if _, err := a.vault.Group(*d.GroupID); err != nil {
			return err
		}
	}

	if err := a.vault.UpdateItem(id, d); err != nil {
		return err
	}
	fmt.Fprintln(a.out, "Item updated.")
	return nil
}

// Delete removes an item after confirmation.
func (a *App) Delete(ctx context.Context, args []string) error {
	id, err := parseID(args, "delete <id>")
	if err != nil {
		return err
	}
	it, err := a.vault.Item(id)
	if err != nil {
		return err
	}

	ok, err := Confirm(a.reader, fmt.Sprintf("Delete item %q?", it.Title), a.out)
	if err != nil || !ok {
		return err
	}

	if err := a.vault.DeleteItem(id); err != nil {
		return err
	}
	fmt.Fprintln(a.out, "Item deleted.")
	return nil
}

// History lists previous passwords, oldest first. They are masked unless
// -p is given.
func (a *App) History(ctx context.Context, args []string) error {
	id, err := parseID(args, "history <id> [-p]")
	if err != nil {
		return err
	}
	it, err := a.vault.Item(id)
	if err != nil {
		return err
	}
	if len(it.PasswordHistory) == 0 {
		fmt.Fprintln(a.out, "No password history.")
		return nil
	}

	reveal := hasFlag(args[1:], "-p")
	for _, h := range it.PasswordHistory {
		pw := masked
		if reveal {
			pw = h.Password
		}
		fmt.Fprintf(a.out, "%s  %s\n", h.ChangedAt.Local().Format(time.DateTime), pw)
	}
	return nil
}

// Copy puts a field of an item on the clipboard; the password by default.
func (a *App) Copy(ctx context.Context, args []string) error {
	id, err := parseID(args, "copy <id> [user|pass|url]")
	if err != nil {
		return err
	}
	if a.clipboard == nil {
		return fmt.Errorf("%w: clipboard is not available", common.ErrClipboard)
	}

	field := "pass"
	if len(args) > 1 {
		field = args[1]
	}

	it, err := a.vault.Item(id)
	if err != nil {
		return err
	}

	var text, label string
	switch field {
	case "pass", "password":
		text, label = it.Password, "password"
	case "user", "username":
		text, label = it.Username, "username"
	case "url":
		text, label = it.URL, "URL"
	default:
		return fmt.Errorf("unknown field %q, use user, pass or url", field)
	}

	if err := a.clipboard.Copy(ctx, text); err != nil {
		return err
	}

	if d := a.clipboard.Delay(); d > 0 {
		fmt.Fprintf(a.out, "Copied %s to clipboard, clearing in %s.\n", label, d)
	} else {
		fmt.Fprintf(a.out, "Copied %s to clipboard.\n", label)
	}
	return nil
}

// Generate prints a random password of the given length (20 by default).
// It works while the vault is locked.
func (a *App) Generate(ctx context.Context, args []string) error {
	opts := passgen.DefaultOptions()
	if len(args) > 0 {
		n, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("usage: gen [len]")
		}
		opts.Length = n
	}

	pw, err := passgen.Generate(opts)
	if err != nil {
		return err
	}
	fmt.Fprintln(a.out, pw)
	return nil
}
