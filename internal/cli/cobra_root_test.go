package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"todo-manager/internal/clock"
	"todo-manager/internal/config"
)

// Wednesday, May 1, 2024 at noon.
var now = time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

// runCLI executes one command against the store in dir, the way a separate
// process invocation would.
func runCLI(t *testing.T, dir, stdin string, args ...string) (string, error) {
	t.Helper()

	var out bytes.Buffer
	root := NewRootCommand(
		WithBootstrap(NewBootstrap(clock.Fixed(now))),
		WithRootIO(strings.NewReader(stdin), &out),
	)
	root.SetArgs(append([]string{"--data-dir", dir, "--timezone", "UTC"}, args...))
	err := root.Execute()
	return out.String(), err
}

func mustRun(t *testing.T, dir string, args ...string) string {
	t.Helper()
	out, err := runCLI(t, dir, "", args...)
	require.NoError(t, err)
	return out
}

var addedID = regexp.MustCompile(`Added task (\S+):`)

func TestRoot_ListSeed(t *testing.T) {
	dir := t.TempDir()

	out := mustRun(t, dir, "list")
	assert.Contains(t, out, "All (3)")
	assert.Contains(t, out, "[ ] 1 Write the project proposal (Work) today 14:00 · 2 hours 0 minutes left")
	assert.Contains(t, out, "Grocery shopping (Personal) 2 days from now 12:00 · 2 days left")
	assert.Contains(t, out, "      Check the budget with the marketing team")

	out = mustRun(t, dir, "list", "today")
	assert.Contains(t, out, "Today (2)")
	assert.NotContains(t, out, "Grocery shopping")

	out = mustRun(t, dir, "list", "--category", "completed")
	assert.Contains(t, out, "Completed (0)")
	assert.Contains(t, out, "No completed tasks yet.")

	_, err := os.Stat(filepath.Join(dir, config.DefaultConfigFileName))
	assert.NoError(t, err, "config file is created on first run")
}

func TestRoot_ListRejectsUnknownCategory(t *testing.T) {
	_, err := runCLI(t, t.TempDir(), "", "list", "someday")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid input for category")
}

func TestRoot_NoSeed(t *testing.T) {
	out := mustRun(t, t.TempDir(), "--seed=false", "list")
	assert.Contains(t, out, "All (0)")
	assert.Contains(t, out, "No tasks. Add one to get started.")
}

func TestRoot_AddPersists(t *testing.T) {
	dir := t.TempDir()

	out := mustRun(t, dir, "add", "Pay", "rent", "--due", "2024-05-02", "--at", "09:00", "--folder", "per", "--memo", "before noon")
	match := addedID.FindStringSubmatch(out)
	require.Len(t, match, 2, out)

	out = mustRun(t, dir, "list", "--folder", "personal")
	assert.Contains(t, out, "Pay rent (Personal) tomorrow 09:00")
	assert.Contains(t, out, "Grocery shopping")
	assert.NotContains(t, out, "Write the project proposal")

	out = mustRun(t, dir, "show", match[1])
	assert.Contains(t, out, "Title:     Pay rent")
	assert.Contains(t, out, "Memo:      before noon")
	assert.Contains(t, out, "Folder:    Personal")
	assert.Contains(t, out, "Due:       2024-05-02 09:00 (tomorrow)")
}

func TestRoot_AddDateOnlyDefaultsToEndOfDay(t *testing.T) {
	dir := t.TempDir()

	out := mustRun(t, dir, "add", "File taxes", "--due", "2024-05-01")
	match := addedID.FindStringSubmatch(out)
	require.Len(t, match, 2, out)

	out = mustRun(t, dir, "show", match[1])
	assert.Contains(t, out, "Due:       2024-05-01 23:59 (today)")
}

func TestRoot_AddRejectsBadInput(t *testing.T) {
	dir := t.TempDir()

	_, err := runCLI(t, dir, "", "add", "Pay rent", "--due", "05/02/2024")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "due_date")

	_, err = runCLI(t, dir, "", "add", "Pay rent", "--at", "09:00")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "due_time")

	_, err = runCLI(t, dir, "", "add", "Pay rent", "--folder", "nope")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "folder not found")

	_, err = runCLI(t, dir, "", "add", "   ")
	require.Error(t, err)

	out := mustRun(t, dir, "list")
	assert.Contains(t, out, "All (3)")
	assert.NotContains(t, out, "Pay rent")
}

func TestRoot_Toggle(t *testing.T) {
	dir := t.TempDir()

	out := mustRun(t, dir, "toggle", "1")
	assert.Equal(t, "Marked 1 done: Write the project proposal\n", out)

	out = mustRun(t, dir, "list", "completed")
	assert.Contains(t, out, "[x] 1 Write the project proposal (Work) today 14:00")
	assert.NotContains(t, out, "left")

	out = mustRun(t, dir, "done", "1")
	assert.Equal(t, "Marked 1 open: Write the project proposal\n", out)

	_, err := runCLI(t, dir, "", "toggle", "99")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "task not found")
}

func TestRoot_Edit(t *testing.T) {
	dir := t.TempDir()

	out := mustRun(t, dir, "edit", "1", "--title", "Rewrite the proposal", "--clear-due")
	assert.Equal(t, "Updated task 1: Rewrite the proposal\n", out)

	out = mustRun(t, dir, "show", "1")
	assert.Contains(t, out, "Title:     Rewrite the proposal")
	assert.NotContains(t, out, "Due:")

	mustRun(t, dir, "edit", "3", "--at", "08:00")
	out = mustRun(t, dir, "show", "3")
	assert.Contains(t, out, "Due:       2024-05-03 08:00", "date is kept when only the time changes")

	mustRun(t, dir, "edit", "3", "--due", "2024-05-20")
	out = mustRun(t, dir, "show", "3")
	assert.Contains(t, out, "Due:       2024-05-20 08:00", "time is kept when only the date changes")

	mustRun(t, dir, "edit", "2", "--unfile", "--memo", "")
	out = mustRun(t, dir, "show", "2")
	assert.NotContains(t, out, "Folder:")
	assert.NotContains(t, out, "Memo:")

	out = mustRun(t, dir, "edit", "2")
	assert.Equal(t, "Nothing to change.\n", out)

	_, err := runCLI(t, dir, "", "edit", "2", "--title", "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to edit task")
}

func TestRoot_DeleteAsksForConfirmation(t *testing.T) {
	dir := t.TempDir()

	out, err := runCLI(t, dir, "n\n", "delete", "2")
	require.NoError(t, err)
	assert.Contains(t, out, `Delete task "Study Go concurrency"? [y/N]: `)
	assert.Contains(t, out, "Delete cancelled.")

	out, err = runCLI(t, dir, "y\n", "delete", "2")
	require.NoError(t, err)
	assert.Contains(t, out, "Deleted task: Study Go concurrency")

	out = mustRun(t, dir, "rm", "--yes", "3")
	assert.Equal(t, "Deleted task: Grocery shopping\n", out)

	out = mustRun(t, dir, "list")
	assert.Contains(t, out, "All (1)")
}

func TestRoot_Folders(t *testing.T) {
	dir := t.TempDir()

	out := mustRun(t, dir, "folder", "add", "Side", "project", "--color", "#abcdef")
	assert.Contains(t, out, "Added folder")
	assert.Contains(t, out, "Side project")

	out = mustRun(t, dir, "folder")
	assert.Contains(t, out, "work Work ")
	assert.Contains(t, out, "#ABCDEF 0")

	out = mustRun(t, dir, "folder", "edit", "study", "--name", "Learning")
	assert.Equal(t, "Updated folder study: Learning\n", out)

	out = mustRun(t, dir, "folder", "delete", "work", "--yes")
	assert.Equal(t, "Deleted folder: Work (1 tasks unfiled)\n", out)

	out = mustRun(t, dir, "show", "1")
	assert.NotContains(t, out, "Folder:")

	out = mustRun(t, dir, "folder", "list")
	assert.NotContains(t, out, "Work")
	assert.Contains(t, out, "Learning")

	_, err := runCLI(t, dir, "", "folder", "add", "x", "--color", "red")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to add folder")
}

func TestRoot_Counts(t *testing.T) {
	dir := t.TempDir()
	mustRun(t, dir, "toggle", "2")

	out := mustRun(t, dir, "counts")
	assert.Contains(t, out, "All        2\n")
	assert.Contains(t, out, "Today      1\n")
	assert.Contains(t, out, "This Week  1\n")
	assert.Contains(t, out, "Later      0\n")
	assert.Contains(t, out, "Completed  1\n")
	assert.Contains(t, out, "Study      0\n")
	assert.Contains(t, out, "Unfiled    0\n")
}

func TestRoot_Dashboard(t *testing.T) {
	dir := t.TempDir()

	out := mustRun(t, dir, "dashboard")
	assert.Contains(t, out, "May 1 (Wed)")
	assert.Contains(t, out, "Pending: 3  Completed today: 0")
	assert.Contains(t, out, "Today (2)")
	assert.NotContains(t, out, "Overdue")

	for _, day := range []string{"2024-04-26", "2024-04-27", "2024-04-28", "2024-04-29"} {
		mustRun(t, dir, "add", "Late "+day, "--due", day)
	}
	mustRun(t, dir, "toggle", "1")

	out = mustRun(t, dir, "dashboard")
	assert.Contains(t, out, "Pending: 6  Completed today: 1")
	assert.Contains(t, out, "Overdue (4)")
	assert.Contains(t, out, "Late 2024-04-26")
	assert.NotContains(t, out, "Late 2024-04-29")
	assert.Contains(t, out, "+1 more")
}

func TestRoot_ExportImport(t *testing.T) {
	dir := t.TempDir()

	_, err := runCLI(t, dir, "", "export")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "nothing stored under todos yet")

	mustRun(t, dir, "toggle", "1")

	out := mustRun(t, dir, "export")
	assert.Contains(t, out, `"title":"Write the project proposal"`)
	assert.Contains(t, out, `"completed":true`)

	out = mustRun(t, dir, "export", "--format", "csv")
	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 4)
	assert.Equal(t, "ID,Title,Memo,Folder,Due,Completed,Created At,Completed At", lines[0])
	assert.True(t, strings.HasPrefix(lines[1], "1,Write the project proposal,Check the budget with the marketing team,Work,2024-05-01T14:00:00Z,true,"), lines[1])

	out = mustRun(t, dir, "export", "--key", "folders", "--format", "csv")
	assert.Contains(t, out, "work,Work,#FFB5BA")

	_, err = runCLI(t, dir, "", "export", "--format", "xml")
	require.Error(t, err)

	doc := `[{"id":"imp-1","title":"Imported task","memo":"","dueDate":null,"folderId":null,"completed":false,"createdAt":"2024-04-30T10:00:00.000Z","completedAt":null}]`
	path := filepath.Join(t.TempDir(), "todos.json")
	require.NoError(t, os.WriteFile(path, []byte(doc), 0o644))

	out = mustRun(t, dir, "import", path)
	assert.Contains(t, out, "Imported todos")

	out = mustRun(t, dir, "list")
	assert.Contains(t, out, "All (1)")
	assert.Contains(t, out, "imp-1 Imported task")

	out, err = runCLI(t, dir, `{"not":"a list"}`, "import", "-")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to import todos")
	assert.Empty(t, out)

	out = mustRun(t, dir, "list")
	assert.Contains(t, out, "imp-1 Imported task", "a rejected import leaves the stored data alone")
}

func TestRoot_ImportFoldersUnfilesOrphanedTasks(t *testing.T) {
	dir := t.TempDir()
	mustRun(t, dir, "toggle", "3")
	mustRun(t, dir, "toggle", "3")

	path := filepath.Join(t.TempDir(), "folders.json")
	require.NoError(t, os.WriteFile(path, []byte(`[{"id":"work","name":"Work","color":"#FFB5BA"}]`), 0o644))
	mustRun(t, dir, "import", "--key", "folders", path)

	out := mustRun(t, dir, "counts")
	assert.Contains(t, out, "Unfiled    2")

	out = mustRun(t, dir, "edit", "2", "--title", "Study channels")
	assert.Contains(t, out, "Updated task 2: Study channels")
}

func TestRoot_ImportRejectsDuplicateIDs(t *testing.T) {
	dir := t.TempDir()
	doc := `[{"id":"x","title":"One","createdAt":"2024-04-30T10:00:00Z"},{"id":"x","title":"Two","createdAt":"2024-04-30T10:00:00Z"}]`

	_, err := runCLI(t, dir, doc, "import", "-")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to import todos: todos document is malformed: invalid input for id: duplicate task id")

	out := mustRun(t, dir, "export", "--list")
	assert.Equal(t, "Nothing stored yet.\n", out)
}

func TestRoot_ListDocumentsAndReset(t *testing.T) {
	dir := t.TempDir()
	mustRun(t, dir, "folder", "add", "Errands")

	out := mustRun(t, dir, "export", "--list")
	assert.Equal(t, "folders\n", out)

	out, err := runCLI(t, dir, "n\n", "reset")
	require.NoError(t, err)
	assert.Contains(t, out, "Reset cancelled.")

	out = mustRun(t, dir, "reset", "--yes")
	assert.Contains(t, out, "Removed stored data. 3 tasks loaded.")

	out = mustRun(t, dir, "export", "--list")
	assert.Equal(t, "Nothing stored yet.\n", out)

	out = mustRun(t, dir, "folder", "list")
	assert.NotContains(t, out, "Errands")
}

func TestRoot_HelpDoesNotOpenStore(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "never-created")

	out, err := runCLI(t, dir, "", "--help")
	require.NoError(t, err)
	assert.Contains(t, out, "todo keeps a list of tasks")

	_, err = os.Stat(dir)
	assert.True(t, os.IsNotExist(err))
}

func TestRoot_ConfigFlagNeverCreatesTheFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(t.TempDir(), "elsewhere.toml")

	out := mustRun(t, dir, "--config", path, "counts")
	assert.Contains(t, out, "All        3\n")

	_, err := os.Stat(path)
	assert.True(t, os.IsNotExist(err), "--config must not write a default file")

	custom := filepath.Join(t.TempDir(), "custom.toml")
	require.NoError(t, os.WriteFile(custom, []byte("[time]\ntimezone = \"Mars/Olympus\"\n"), 0o644))
	_, err = runCLI(t, dir, "", "--config", custom, "counts")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to load configuration")
}

func TestRoot_InvalidTimezone(t *testing.T) {
	_, err := runCLI(t, t.TempDir(), "", "--timezone", "Mars/Olympus", "list")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to load configuration")
}
